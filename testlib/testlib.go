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

// Package testlib provides a recording CmdRunner so pipeline logic can be
// tested without spawning the real external tools.
package testlib

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"naive.systems/applytidy/toolchain"
)

// FakeRunner records every command it is asked to execute instead of
// running it.
type FakeRunner struct {
	// Commands holds the argv of each executed command, in order.
	Commands [][]string
	// RunErr is returned from Run for every command.
	RunErr error
	// OutputPayload is returned from Output as captured stdout.
	OutputPayload []byte
	// OutputErr is returned from Output for every command.
	OutputErr error
}

func (f *FakeRunner) Run(cmd *exec.Cmd) error {
	f.Commands = append(f.Commands, cmd.Args)
	return f.RunErr
}

func (f *FakeRunner) Output(cmd *exec.Cmd) ([]byte, error) {
	f.Commands = append(f.Commands, cmd.Args)
	return f.OutputPayload, f.OutputErr
}

// CreateTestToolchain writes placeholder tool files into workDir at the
// conventional paths, with the clang-tidy binary's mtime set to mtime.
func CreateTestToolchain(t *testing.T, workDir string, mtime time.Time) {
	t.Helper()
	tc := toolchain.New(workDir)
	for _, path := range []string{tc.RunnerScriptPath(), tc.TidyBinaryPath(), tc.ReplacementsBinaryPath()} {
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			t.Fatalf("os.MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte("placeholder"), 0755); err != nil {
			t.Fatalf("os.WriteFile: %v", err)
		}
	}
	if err := os.Chtimes(tc.TidyBinaryPath(), mtime, mtime); err != nil {
		t.Fatalf("os.Chtimes: %v", err)
	}
}
