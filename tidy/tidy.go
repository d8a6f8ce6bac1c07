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

package tidy

import (
	"os/exec"
	"strconv"

	"github.com/golang/glog"
	"golang.org/x/text/message"

	"naive.systems/applytidy/basic"
	"naive.systems/applytidy/toolchain"
)

// Invocation describes one run of the external run-clang-tidy wrapper. The
// wrapper handles parallel dispatch and fix application on its own.
type Invocation struct {
	WorkDir string
	// BuildPath is the directory passed as -p, where the wrapper discovers
	// compile_commands.json. Usually WorkDir, unless a filtered copy of the
	// database is used.
	BuildPath  string
	PythonBin  string
	Jobs       int
	ApplyFixes bool
	ExtraArgs  []string
}

func (inv *Invocation) Command() *exec.Cmd {
	tc := toolchain.New(inv.WorkDir)
	buildPath := inv.BuildPath
	if buildPath == "" {
		buildPath = inv.WorkDir
	}
	args := []string{
		tc.RunnerScriptPath(),
		"-p", buildPath,
		"-allow-no-checks",
		"-clang-tidy-binary", tc.TidyBinaryPath(),
		"-clang-apply-replacements-binary", tc.ReplacementsBinaryPath(),
	}
	if inv.ApplyFixes {
		args = append(args, "-fix")
	}
	if inv.Jobs > 0 {
		args = append(args, "-j", strconv.Itoa(inv.Jobs))
	}
	for _, arg := range inv.ExtraArgs {
		args = append(args, "-extra-arg", arg)
	}
	return exec.Command(inv.PythonBin, args...)
}

// Run invokes run-clang-tidy and returns its exit status. A nonzero status
// means clang-tidy reported findings, which is the expected outcome of an
// analysis, so it is logged and never escalated into a failure of the run.
func (inv *Invocation) Run(runner basic.CmdRunner, printer *message.Printer) int {
	basic.PrintfWithTimeStamp(printer.Sprintf("Running clang-tidy"))
	err := runner.Run(inv.Command())
	status := basic.ExitStatus(err)
	if err != nil {
		glog.Warningf("run-clang-tidy exited with status %d: %v", status, err)
	}
	return status
}
