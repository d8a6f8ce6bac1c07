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

// Package tidyconfig reads the toplevel .clang-tidy file. The checks that
// will be applied live there, not on the command line.
package tidyconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const FileName = ".clang-tidy"

// Config is the subset of clang-tidy configuration keys the orchestrator
// reports to the user. Everything else is passed through untouched.
type Config struct {
	Checks            string `yaml:"Checks"`
	WarningsAsErrors  string `yaml:"WarningsAsErrors"`
	HeaderFilterRegex string `yaml:"HeaderFilterRegex"`
	FormatStyle       string `yaml:"FormatStyle"`
}

func Load(srcDir string) (*Config, error) {
	path := filepath.Join(srcDir, FileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var config Config
	err = yaml.Unmarshal(content, &config)
	if err != nil {
		return nil, fmt.Errorf("malformed %s: %v", path, err)
	}
	return &config, nil
}

// EnabledChecks returns the positive entries of the Checks value. Globs
// starting with '-' remove checks and are not reported.
func (c *Config) EnabledChecks() []string {
	var checks []string
	for _, check := range strings.Split(c.Checks, ",") {
		check = strings.TrimSpace(check)
		if check == "" || strings.HasPrefix(check, "-") {
			continue
		}
		checks = append(checks, check)
	}
	return checks
}
