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

package compilecommand

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"
	"github.com/hhatto/gocloc"
	"golang.org/x/exp/slices"

	"naive.systems/applytidy/atomic"
)

// CompileCommand is one entry of a JSON compilation database.
type CompileCommand struct {
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	File      string   `json:"file"`
	Directory string   `json:"directory"`
	Output    string   `json:"output,omitempty"`
}

const CCJson string = "compile_commands.json"

const CC1 string = "-cc1"

func (cc CompileCommand) ContainsCC1() bool {
	for _, v := range cc.Arguments {
		if v == CC1 {
			return true
		}
	}
	return false
}

var assemblySuffixes = []string{".s", ".S"}

// IsAssembly reports whether the entry compiles an assembly source.
// clang-tidy has nothing to say about those.
func (cc CompileCommand) IsAssembly() bool {
	return slices.Contains(assemblySuffixes, filepath.Ext(cc.File)) ||
		slices.Contains(assemblySuffixes, filepath.Ext(cc.Output))
}

func ReadCompileCommandsFromFile(compileCommandsPath string) (*[]CompileCommand, error) {
	ccFile, err := os.Open(compileCommandsPath)
	if err != nil {
		glog.Error(err)
		return nil, err
	}

	defer ccFile.Close()

	byteContent, err := io.ReadAll(ccFile)
	if err != nil {
		return nil, err
	}

	commands := []CompileCommand{}
	err = json.Unmarshal(byteContent, &commands)
	if err != nil {
		return nil, err
	}

	return &commands, nil
}

func WriteCompileCommandsToFile(compileCommandsPath string, commands []CompileCommand) error {
	content, err := json.Marshal(commands)
	if err != nil {
		return fmt.Errorf("json.Marshal: %v", err)
	}
	return atomic.Write(compileCommandsPath, content)
}

func MatchIgnoreDirPatterns(ignoreDirPatterns []string, filePath string) (bool, error) {
	matched := false
	var err error
	for _, ignoreDirPattern := range ignoreDirPatterns {
		matched, err = doublestar.Match(ignoreDirPattern, filePath)
		if err != nil {
			return matched, fmt.Errorf("malformed ignore_dir pattern %s", ignoreDirPattern)
		}
		if matched {
			glog.Infof("Source file %s ignored due to pattern %s", filePath, ignoreDirPattern)
			break
		}
	}
	return matched, nil
}

// FilterCommands drops -cc1 internal invocations, assembly sources, and
// entries whose file matches one of the ignore_dir patterns.
func FilterCommands(commands []CompileCommand, ignoreDirPatterns []string) ([]CompileCommand, error) {
	filtered := make([]CompileCommand, 0, len(commands))
	for _, command := range commands {
		if command.ContainsCC1() || command.IsAssembly() {
			continue
		}
		matched, err := MatchIgnoreDirPatterns(ignoreDirPatterns, command.File)
		if err != nil {
			return nil, err
		}
		if matched {
			continue
		}
		filtered = append(filtered, command)
	}
	return filtered, nil
}

// CreateTempDirWithFilteredDatabase writes a filtered copy of the database
// into a fresh directory next to the original, so tools that discover
// compile_commands.json via -p can be pointed at the filtered view while the
// original file stays untouched. The caller removes the directory.
func CreateTempDirWithFilteredDatabase(compileCommandsPath string, ignoreDirPatterns []string) (string, int, error) {
	commands, err := ReadCompileCommandsFromFile(compileCommandsPath)
	if err != nil {
		return "", 0, err
	}
	filtered, err := FilterCommands(*commands, ignoreDirPatterns)
	if err != nil {
		return "", 0, err
	}

	dir := filepath.Dir(compileCommandsPath)
	tmpDir, err := os.MkdirTemp(dir, "")
	if err != nil {
		return "", 0, err
	}
	err = WriteCompileCommandsToFile(filepath.Join(tmpDir, CCJson), filtered)
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", 0, err
	}
	return tmpDir, len(filtered), nil
}

var countLangs = []string{"C", "C++", "C Header", "C++ Header", "Objective-C", "Objective-C++"}

func countLinesOfPaths(paths []string, ignoreDirPatterns []string) (int, error) {
	clocOpts := gocloc.NewClocOptions()
	languages := gocloc.NewDefinedLanguages()
	for _, lang := range countLangs {
		if _, exists := languages.Langs[lang]; exists {
			clocOpts.IncludeLangs[lang] = struct{}{}
		}
	}
	processor := gocloc.NewProcessor(languages, clocOpts)
	result, err := processor.Analyze(paths)
	if err != nil {
		glog.Errorf("gocloc fail: %v", err)
		return 0, err
	}
	sum := 0
	for _, file := range result.Files {
		matched, err := MatchIgnoreDirPatterns(ignoreDirPatterns, file.Name)
		if err != nil {
			glog.Error(err)
			continue
		}
		if matched {
			continue
		}
		sum += int(file.Code)
	}

	return sum, nil
}

// CountLines counts the C/C++ code lines of the files referenced by the
// compilation database, skipping ignored files. Only the files listed in
// the database are counted, not their siblings.
func CountLines(compileCommandsPath string, ignoreDirPatterns []string) (int, error) {
	commandsPtr, err := ReadCompileCommandsFromFile(compileCommandsPath)
	if err != nil {
		glog.Errorf("failed to read compile commands: %v", err)
		return 0, err
	}

	sourcePaths := []string{}
	pathMap := map[string]struct{}{}
	for _, command := range *commandsPtr {
		matched, err := MatchIgnoreDirPatterns(ignoreDirPatterns, command.File)
		if err != nil {
			glog.Error(err)
			continue
		}
		if matched {
			continue
		}
		sourcePath := command.File
		if !filepath.IsAbs(sourcePath) {
			sourcePath = filepath.Join(command.Directory, command.File)
		}
		if _, exists := pathMap[sourcePath]; !exists {
			pathMap[sourcePath] = struct{}{}
			sourcePaths = append(sourcePaths, sourcePath)
		}
	}
	if len(sourcePaths) == 0 {
		return 0, nil
	}
	return countLinesOfPaths(sourcePaths, ignoreDirPatterns)
}
