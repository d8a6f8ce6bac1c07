/*
NaiveSystems ApplyTidy - A tool for applying clang-tidy fixes at scale
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

/*
This package should not import any other packages of the orchestrator to
avoid recursive import.
*/
package basic

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/golang/glog"
)

// CmdRunner is the boundary between the pipeline and the external tools it
// drives. Callers prepare an *exec.Cmd; implementations decide how it runs.
type CmdRunner interface {
	// Run executes cmd, streaming its output to the parent process.
	Run(cmd *exec.Cmd) error
	// Output executes cmd and returns its captured stdout. Stderr still
	// goes to the parent process.
	Output(cmd *exec.Cmd) ([]byte, error)
}

// ExecRunner runs commands for real. External tools print directly to the
// user, so stdout and stderr are inherited except where captured.
type ExecRunner struct{}

func (ExecRunner) Run(cmd *exec.Cmd) error {
	glog.Info("executing: ", cmd.String())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Start()
	if err != nil {
		return err
	}
	return cmd.Wait()
}

func (ExecRunner) Output(cmd *exec.Cmd) ([]byte, error) {
	glog.Info("executing: ", cmd.String())
	var b bytes.Buffer
	cmd.Stdout = &b
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	return b.Bytes(), err
}

// ExitStatus maps the error of a finished command to its exit status.
// Returns 0 on nil and -1 when the command did not run at all.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}

func PrintfWithTimeStamp(format string, arg ...any) {
	prefix := fmt.Sprintf("%v ", time.Now().Format("2006-01-02 15:04:05"))
	message := fmt.Sprintf(prefix+format, arg...)
	fmt.Println(message)
	glog.Info(message)
}

func FormatTimeDuration(d time.Duration) string {
	s := d / time.Second
	ms := (d - s*time.Second) / time.Millisecond
	if ms == 0 {
		return fmt.Sprintf("%ds", s)
	}
	frac := strings.TrimRight(fmt.Sprintf("%03d", ms), "0")
	return fmt.Sprintf("%d.%ss", s, frac)
}
