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

package tidyconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `---
Checks: >
  -*,
  modernize-use-nullptr,
  readability-redundant-smartptr-get
HeaderFilterRegex: '.*'
FormatStyle: file
`
	err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644)
	if err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	config, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.HeaderFilterRegex != ".*" {
		t.Errorf("unexpected HeaderFilterRegex %q", config.HeaderFilterRegex)
	}
	expected := []string{"modernize-use-nullptr", "readability-redundant-smartptr-get"}
	if got := config.EnabledChecks(); !reflect.DeepEqual(got, expected) {
		t.Errorf("EnabledChecks() = %v, expected %v", got, expected)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestEnabledChecks(t *testing.T) {
	for _, testCase := range [...]struct {
		name     string
		checks   string
		expected []string
	}{
		{
			name:     "only removals",
			checks:   "-*,-clang-analyzer-*",
			expected: nil,
		},
		{
			name:     "empty value",
			checks:   "",
			expected: nil,
		},
		{
			name:     "whitespace between entries",
			checks:   " -*, misc-no-recursion ,\nbugprone-use-after-move",
			expected: []string{"misc-no-recursion", "bugprone-use-after-move"},
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			config := Config{Checks: testCase.checks}
			if got := config.EnabledChecks(); !reflect.DeepEqual(got, testCase.expected) {
				t.Errorf("EnabledChecks() = %v, expected %v", got, testCase.expected)
			}
		})
	}
}
