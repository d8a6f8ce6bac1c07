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

// apply_clang_tidy runs clang-tidy across the source tree and applies the
// suggested fixes. The checks that get applied are listed in the toplevel
// .clang-tidy file. The pipeline is strictly sequential: validate the work
// dir, rebuild the clang-tidy tools if they are missing or stale, regenerate
// the compilation database, then hand off to the external run-clang-tidy
// wrapper.
package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	"golang.org/x/text/message"

	"naive.systems/applytidy/basic"
	"naive.systems/applytidy/compdb"
	"naive.systems/applytidy/compilecommand"
	"naive.systems/applytidy/i18n"
	"naive.systems/applytidy/options"
	"naive.systems/applytidy/stats"
	"naive.systems/applytidy/tidy"
	"naive.systems/applytidy/tidyconfig"
	"naive.systems/applytidy/toolchain"
	"naive.systems/applytidy/worktree"
)

func main() {
	option := options.NewOptions()
	flag.Parse()
	defer glog.Flush()

	printer := i18n.GetPrinter(option.GetLang())

	if !option.GetDebugMode() {
		err := flag.Set("stderrthreshold", "FATAL")
		if err != nil {
			glog.Fatalf("failed to set default stderrthreshold: %v", err)
		}
	}

	workDir := option.GetWorkDir()
	err := options.ValidateWorkDir(workDir)
	if err != nil {
		glog.Fatal(err)
	}

	runner := basic.ExecRunner{}
	summary := stats.NewRunSummary(workDir)

	reportWorktree(option, summary, printer)
	reportTidyConfig()

	start := time.Now()
	tc := toolchain.New(workDir)
	err = tc.EnsureBuilt(runner, option.GetPythonBin(), printer)
	if err != nil {
		glog.Fatalf("toolchain.EnsureBuilt: %v", err)
	}
	summary.AddStage("build_tools", time.Since(start))

	start = time.Now()
	compileCommandsPath, err := compdb.Generate(runner, option.GetPythonBin(), workDir, printer)
	if err != nil {
		glog.Fatalf("compdb.Generate: %v", err)
	}
	summary.AddStage("generate_compdb", time.Since(start))

	inv := &tidy.Invocation{
		WorkDir:    workDir,
		PythonBin:  option.GetPythonBin(),
		Jobs:       option.GetJobs(),
		ApplyFixes: option.GetApplyFixes(),
	}
	inv.ExtraArgs, err = option.ParseExtraArgs()
	if err != nil {
		glog.Fatalf("malformed -extra_args: %v", err)
	}

	if len(option.IgnoreDirPatterns) > 0 {
		filteredDir, kept, err := compilecommand.CreateTempDirWithFilteredDatabase(compileCommandsPath, option.IgnoreDirPatterns)
		if err != nil {
			glog.Fatalf("compilecommand.CreateTempDirWithFilteredDatabase: %v", err)
		}
		defer os.RemoveAll(filteredDir)
		inv.BuildPath = filteredDir
		summary.DatabaseEntries = kept
	} else if commands, err := compilecommand.ReadCompileCommandsFromFile(compileCommandsPath); err == nil {
		summary.DatabaseEntries = len(*commands)
	}

	if option.GetShowLineCount() {
		lines, err := compilecommand.CountLines(compileCommandsPath, option.IgnoreDirPatterns)
		if err != nil {
			glog.Errorf("compilecommand.CountLines: %v", err)
		} else {
			summary.CodeLines = lines
			basic.PrintfWithTimeStamp(printer.Sprintf("About to analyze %d lines of C/C++ code in %d translation units", lines, summary.DatabaseEntries))
		}
	}

	start = time.Now()
	summary.TidyExitStatus = inv.Run(runner, printer)
	summary.AddStage("run_clang_tidy", time.Since(start))

	err = summary.Write()
	if err != nil {
		glog.Errorf("failed to write run summary: %v", err)
	}
	basic.PrintfWithTimeStamp(printer.Sprintf("Total time: %s", basic.FormatTimeDuration(time.Since(summary.StartedAt))))
}

// reportWorktree logs the state of the checkout. Fixes rewrite files in
// place, so uncommitted changes are worth a warning before the run starts.
func reportWorktree(option *options.Options, summary *stats.RunSummary, printer *message.Printer) {
	status, err := worktree.Inspect(".")
	if err != nil {
		glog.Warningf("failed to inspect git worktree: %v", err)
		return
	}
	summary.HeadCommit = status.HeadCommit
	summary.WorktreeDirty = status.Dirty
	glog.Infof("HEAD is at %s", worktree.ShortHash(status.HeadCommit))
	if status.Dirty && option.GetApplyFixes() {
		basic.PrintfWithTimeStamp(printer.Sprintf("Warning: worktree has uncommitted changes, fixes will be applied on top of them"))
	}
}

func reportTidyConfig() {
	config, err := tidyconfig.Load(".")
	if err != nil {
		glog.Warningf("no usable %s found: %v", tidyconfig.FileName, err)
		return
	}
	checks := config.EnabledChecks()
	if len(checks) == 0 {
		glog.Warningf("%s enables no checks", tidyconfig.FileName)
		return
	}
	glog.Infof("active checks: %s", strings.Join(checks, ", "))
}
