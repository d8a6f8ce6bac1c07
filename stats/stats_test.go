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

package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunSummaryWrite(t *testing.T) {
	workDir := t.TempDir()
	summary := NewRunSummary(workDir)
	if summary.RunID == "" {
		t.Fatal("expected a run ID")
	}
	summary.DatabaseEntries = 42
	summary.TidyExitStatus = 1
	summary.AddStage("build_tools", 2*time.Second)
	summary.AddStage("run_clang_tidy", 90*time.Second)

	err := summary.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(workDir, SummaryFile))
	if err != nil {
		t.Fatalf("os.ReadFile: %v", err)
	}
	var read RunSummary
	err = json.Unmarshal(content, &read)
	if err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if read.RunID != summary.RunID {
		t.Errorf("run ID %s does not match %s", read.RunID, summary.RunID)
	}
	if read.DatabaseEntries != 42 || read.TidyExitStatus != 1 {
		t.Errorf("unexpected summary: %+v", read)
	}
	if len(read.Stages) != 2 || read.Stages[1].Stage != "run_clang_tidy" {
		t.Errorf("unexpected stages: %v", read.Stages)
	}
	if read.FinishedAt.Before(read.StartedAt) {
		t.Errorf("finished %v before started %v", read.FinishedAt, read.StartedAt)
	}
}

func TestRunSummaryWriteReplacesPrevious(t *testing.T) {
	workDir := t.TempDir()
	first := NewRunSummary(workDir)
	if err := first.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}
	second := NewRunSummary(workDir)
	if err := second.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(workDir, SummaryFile))
	if err != nil {
		t.Fatalf("os.ReadFile: %v", err)
	}
	var read RunSummary
	if err := json.Unmarshal(content, &read); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if read.RunID != second.RunID {
		t.Errorf("summary was not replaced, found run %s", read.RunID)
	}
}
