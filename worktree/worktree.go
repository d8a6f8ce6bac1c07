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

// Package worktree inspects the git checkout before fixes are applied.
// Applying fixes rewrites source files in place, so the user should know
// what state the tree was in.
package worktree

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v33"
)

type Status struct {
	HeadCommit string
	Dirty      bool
}

func Inspect(srcDir string) (*Status, error) {
	repo, err := git2go.OpenRepository(srcDir)
	if err != nil {
		return nil, fmt.Errorf("git2go.OpenRepository failed: %v", err)
	}
	defer repo.Free()

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %v", err)
	}
	defer head.Free()
	status := &Status{HeadCommit: head.Target().String()}

	statusList, err := repo.StatusList(&git2go.StatusOptions{
		Show:  git2go.StatusShowIndexAndWorkdir,
		Flags: git2go.StatusOptIncludeUntracked,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.StatusList failed: %v", err)
	}
	defer statusList.Free()

	entryCount, err := statusList.EntryCount()
	if err != nil {
		return nil, fmt.Errorf("statusList.EntryCount failed: %v", err)
	}
	status.Dirty = entryCount > 0
	return status, nil
}

// ShortHash truncates a full commit hash for log lines.
func ShortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
