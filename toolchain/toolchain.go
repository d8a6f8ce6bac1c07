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

// Package toolchain locates the clang-tidy tools inside the work dir and
// rebuilds them when they are missing or stale.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"golang.org/x/text/message"

	"naive.systems/applytidy/basic"
)

// BuildScript is relative to the source root.
const BuildScript = "tools/clang/scripts/build_clang_tools_extra.py"

// These are relative to the work dir.
const (
	llvmDir            = "tools/clang/third_party/llvm"
	RunnerScript       = llvmDir + "/clang-tools-extra/clang-tidy/tool/run-clang-tidy.py"
	TidyBinary         = llvmDir + "/build/bin/clang-tidy"
	ReplacementsBinary = llvmDir + "/build/bin/clang-apply-replacements"
)

// Upstream updates clang-tidy at least once every 30 days, so an older
// binary gets recompiled.
const MaxBinaryAgeDays = 30

type Toolchain struct {
	WorkDir string
}

func New(workDir string) *Toolchain {
	return &Toolchain{WorkDir: workDir}
}

func (t *Toolchain) RunnerScriptPath() string {
	return filepath.Join(t.WorkDir, RunnerScript)
}

func (t *Toolchain) TidyBinaryPath() string {
	return filepath.Join(t.WorkDir, TidyBinary)
}

func (t *Toolchain) ReplacementsBinaryPath() string {
	return filepath.Join(t.WorkDir, ReplacementsBinary)
}

// NeedsRebuild reports whether any of the three tools is missing, or the
// clang-tidy binary itself is at least MaxBinaryAgeDays old.
func (t *Toolchain) NeedsRebuild(now time.Time) bool {
	for _, path := range []string{t.RunnerScriptPath(), t.TidyBinaryPath(), t.ReplacementsBinaryPath()} {
		if _, err := os.Stat(path); err != nil {
			glog.Infof("%s not found, toolchain must be built", path)
			return true
		}
	}
	info, err := os.Stat(t.TidyBinaryPath())
	if err != nil {
		return true
	}
	ageInDays := now.Sub(info.ModTime()).Hours() / 24
	if ageInDays < MaxBinaryAgeDays {
		return false
	}
	glog.Infof("clang-tidy binary is %d days old, recompiling", int(ageInDays))
	return true
}

// EnsureBuilt fetches and builds clang-tidy and clang-apply-replacements
// into the work dir unless a fresh build is already present. A failed build
// is a hard error, there is no retry.
func (t *Toolchain) EnsureBuilt(runner basic.CmdRunner, pythonBin string, printer *message.Printer) error {
	if !t.NeedsRebuild(time.Now()) {
		glog.Info("clang-tidy tools are up to date")
		return nil
	}
	basic.PrintfWithTimeStamp(printer.Sprintf("Fetching and building clang-tidy"))
	cmd := exec.Command(pythonBin, BuildScript, "--fetch", t.WorkDir, "clang-tidy", "clang-apply-replacements")
	if err := runner.Run(cmd); err != nil {
		return fmt.Errorf("failed to build clang-tidy tools: %v", err)
	}
	return nil
}
