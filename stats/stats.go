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
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"naive.systems/applytidy/atomic"
)

const SummaryFile = "apply_clang_tidy_summary.json"

type StageDuration struct {
	Stage   string  `json:"stage"`
	Seconds float64 `json:"seconds"`
}

// RunSummary records what a single run did: which tree state it started
// from, how large the database was, and how each stage went.
type RunSummary struct {
	RunID           string          `json:"run_id"`
	StartedAt       time.Time       `json:"started_at"`
	FinishedAt      time.Time       `json:"finished_at"`
	WorkDir         string          `json:"work_dir"`
	HeadCommit      string          `json:"head_commit,omitempty"`
	WorktreeDirty   bool            `json:"worktree_dirty,omitempty"`
	DatabaseEntries int             `json:"database_entries"`
	CodeLines       int             `json:"code_lines,omitempty"`
	TidyExitStatus  int             `json:"tidy_exit_status"`
	Stages          []StageDuration `json:"stages"`
}

func NewRunSummary(workDir string) *RunSummary {
	return &RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		WorkDir:   workDir,
	}
}

func (s *RunSummary) AddStage(stage string, elapsed time.Duration) {
	s.Stages = append(s.Stages, StageDuration{Stage: stage, Seconds: elapsed.Seconds()})
}

// Write stores the summary inside the work dir, replacing the one from the
// previous run.
func (s *RunSummary) Write() error {
	s.FinishedAt = time.Now()
	content, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return atomic.Write(filepath.Join(s.WorkDir, SummaryFile), content)
}
