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

package tidy_test

import (
	"errors"
	"strings"
	"testing"

	"naive.systems/applytidy/i18n"
	"naive.systems/applytidy/testlib"
	"naive.systems/applytidy/tidy"
)

func TestCommand(t *testing.T) {
	for _, testCase := range [...]struct {
		name       string
		invocation tidy.Invocation
		expected   []string
		unexpected []string
	}{
		{
			name: "defaults with fixes",
			invocation: tidy.Invocation{
				WorkDir:    "out/Default",
				PythonBin:  "python3",
				ApplyFixes: true,
			},
			expected: []string{
				"python3",
				"out/Default/tools/clang/third_party/llvm/clang-tools-extra/clang-tidy/tool/run-clang-tidy.py",
				"-p out/Default",
				"-allow-no-checks",
				"-clang-tidy-binary out/Default/tools/clang/third_party/llvm/build/bin/clang-tidy",
				"-clang-apply-replacements-binary out/Default/tools/clang/third_party/llvm/build/bin/clang-apply-replacements",
				"-fix",
			},
			unexpected: []string{"-j", "-extra-arg"},
		},
		{
			name: "fixes disabled",
			invocation: tidy.Invocation{
				WorkDir:   "out/Default",
				PythonBin: "python3",
			},
			unexpected: []string{"-fix"},
		},
		{
			name: "jobs and extra args",
			invocation: tidy.Invocation{
				WorkDir:    "out/Default",
				PythonBin:  "python3",
				Jobs:       16,
				ApplyFixes: true,
				ExtraArgs:  []string{"-Wno-unknown-pragmas", "-isystem /opt/sysroot"},
			},
			expected: []string{
				"-j 16",
				"-extra-arg -Wno-unknown-pragmas",
				"-extra-arg -isystem /opt/sysroot",
			},
		},
		{
			name: "filtered database dir",
			invocation: tidy.Invocation{
				WorkDir:   "out/Default",
				BuildPath: "/tmp/filtered123",
				PythonBin: "python3",
			},
			expected:   []string{"-p /tmp/filtered123"},
			unexpected: []string{"-p out/Default"},
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			argv := strings.Join(testCase.invocation.Command().Args, " ")
			for _, part := range testCase.expected {
				if !strings.Contains(argv, part) {
					t.Errorf("command %q does not contain %q", argv, part)
				}
			}
			for _, part := range testCase.unexpected {
				if strings.Contains(argv, part) {
					t.Errorf("command %q should not contain %q", argv, part)
				}
			}
		})
	}
}

func TestRunToleratesFindings(t *testing.T) {
	runner := &testlib.FakeRunner{RunErr: errors.New("exit status 1")}
	inv := &tidy.Invocation{WorkDir: "out/Default", PythonBin: "python3", ApplyFixes: true}
	status := inv.Run(runner, i18n.GetPrinter("en"))
	if status == 0 {
		t.Error("expected a nonzero status to be reported")
	}
	if len(runner.Commands) != 1 {
		t.Errorf("expected exactly one runner process, got %d", len(runner.Commands))
	}
}

func TestRunCleanExit(t *testing.T) {
	runner := &testlib.FakeRunner{}
	inv := &tidy.Invocation{WorkDir: "out/Default", PythonBin: "python3", ApplyFixes: true}
	if status := inv.Run(runner, i18n.GetPrinter("en")); status != 0 {
		t.Errorf("Run() = %d, expected 0", status)
	}
}
