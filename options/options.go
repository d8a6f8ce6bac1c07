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

package options

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/shlex"
)

type ArrayFlags []string

func (i *ArrayFlags) String() string {
	return "array flags"
}

func (i *ArrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

type Options struct {
	WorkDir           *string
	PythonBin         *string
	ExtraArgs         *string
	Jobs              *int
	ApplyFixes        *bool
	ShowLineCount     *bool
	DebugMode         *bool
	Lang              *string
	IgnoreDirPatterns ArrayFlags
}

var Defaults = struct {
	WorkDir       string
	PythonBin     string
	ExtraArgs     string
	Jobs          int
	ApplyFixes    bool
	ShowLineCount bool
	DebugMode     bool
	Lang          string
}{
	WorkDir:       "out/Default",
	PythonBin:     "python3",
	ExtraArgs:     "",
	Jobs:          0,
	ApplyFixes:    true,
	ShowLineCount: true,
	DebugMode:     false,
	Lang:          "en",
}

func NewOptions() *Options {
	option := &Options{}

	option.WorkDir = flag.String("work-dir", Defaults.WorkDir, "The gn out dir the toolchain and compilation database live in")
	flag.StringVar(option.WorkDir, "w", Defaults.WorkDir, "Shorthand for -work-dir")
	option.PythonBin = flag.String("python_bin", Defaults.PythonBin, "Python binary location")
	option.ExtraArgs = flag.String("extra_args", Defaults.ExtraArgs, "Additional compiler arguments for clang-tidy, quoted like a shell command line")
	option.Jobs = flag.Int("jobs", Defaults.Jobs, "Number of clang-tidy instances to run in parallel. 0 lets the runner decide")
	option.ApplyFixes = flag.Bool("apply_fixes", Defaults.ApplyFixes, "Apply suggested fixes to the source tree")
	option.ShowLineCount = flag.Bool("show_line_count", Defaults.ShowLineCount, "Show line count information before the analysis")
	option.DebugMode = flag.Bool("debug_mode", Defaults.DebugMode, "Whether to display error information")
	option.Lang = flag.String("lang", Defaults.Lang, "Language of progress messages")

	flag.Var(&option.IgnoreDirPatterns, "ignore_dir", "Shell file name pattern to a directory that will be ignored")

	return option
}

func (s Options) GetWorkDir() string {
	return *s.WorkDir
}

func (s Options) GetPythonBin() string {
	return *s.PythonBin
}

func (s Options) GetExtraArgs() string {
	return *s.ExtraArgs
}

func (s Options) GetJobs() int {
	return *s.Jobs
}

func (s Options) GetApplyFixes() bool {
	return *s.ApplyFixes
}

func (s Options) GetShowLineCount() bool {
	return *s.ShowLineCount
}

func (s Options) GetDebugMode() bool {
	return *s.DebugMode
}

func (s Options) GetLang() string {
	return *s.Lang
}

// ValidateWorkDir checks that path references an existing directory. All
// later steps run relative to the work dir, so this must fail before any
// subprocess is spawned.
func ValidateWorkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("work dir %s does not exist", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("work dir %s is not a directory", path)
	}
	return nil
}

// ParseExtraArgs splits the extra_args flag the way a POSIX shell would,
// so quoted include paths with spaces survive.
func (s Options) ParseExtraArgs() ([]string, error) {
	if s.GetExtraArgs() == "" {
		return nil, nil
	}
	return shlex.Split(s.GetExtraArgs())
}
