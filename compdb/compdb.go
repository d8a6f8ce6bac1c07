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

package compdb

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/golang/glog"
	"golang.org/x/text/message"

	"naive.systems/applytidy/atomic"
	"naive.systems/applytidy/basic"
	"naive.systems/applytidy/compilecommand"
)

// GeneratorScript is relative to the source root.
const GeneratorScript = "tools/clang/scripts/generate_compdb.py"

// Generate regenerates compile_commands.json inside the work dir. Whatever
// the previous run left behind is overwritten.
func Generate(runner basic.CmdRunner, pythonBin, workDir string, printer *message.Printer) (string, error) {
	basic.PrintfWithTimeStamp(printer.Sprintf("Generating compile commands file"))
	cmd := exec.Command(pythonBin, GeneratorScript, "-p", workDir)
	out, err := runner.Output(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to generate compilation database: %v", err)
	}
	compileCommandsPath := filepath.Join(workDir, compilecommand.CCJson)
	err = atomic.Write(compileCommandsPath, out)
	if err != nil {
		return "", fmt.Errorf("failed to write compilation database: %v", err)
	}
	glog.Info("compileCommandsPath ", compileCommandsPath)
	return compileCommandsPath, nil
}
