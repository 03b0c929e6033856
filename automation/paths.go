package automation

import (
	"strings"

	"github.com/jsontools/npp-ui-tests/config"
)

const editorExecutable = `notepad++.exe`

// ExecutablePath returns where a given Notepad++ installation lives. The latest version is
// installed in "Notepad++"; older versions are expected side by side in "Notepad++ <version>".
// The 32-bit installations are under Program Files (x86).
func ExecutablePath(cfg config.EditorConfig, version string, x64, latest bool) string {
	root := cfg.ProgramFiles
	if !x64 {
		root = cfg.ProgramFilesX86
	}
	dir := "Notepad++"
	if !latest {
		dir += " " + version
	}
	return strings.TrimRight(root, `\`) + `\` + dir + `\` + editorExecutable
}
