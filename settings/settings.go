// Package settings reads and edits the JsonTools plugin's settings file.
//
// The file is written by the plugin in an INI-like format: "key=value" lines, "[section]"
// headers and ";" comments. Edits here change exactly one line and leave every other byte
// of the file alone, so the plugin's own layout, comments and line endings survive.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	fileName = "JsonTools.ini"
	utf8BOM  = "\xEF\xBB\xBF"
)

// DefaultPath returns %AppData%\notepad++\plugins\config\JsonTools.ini, or its equivalent
// under the user configuration directory on other systems.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating application data directory: %w", err)
	}
	return filepath.Join(dir, "notepad++", "plugins", "config", fileName), nil
}

// Read returns every setting in the file. If a key appears more than once, the first
// occurrence wins, since that is the line Write would change.
func Read(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		if _, seen := values[key]; !seen {
			values[key] = value
		}
	}
	return values, nil
}

// Write sets key to value by rewriting the first line that defines key. It returns false,
// and leaves the file untouched, if no such line exists. A missing file is an error
// satisfying errors.Is(err, fs.ErrNotExist).
func Write(path, key, value string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	lines := strings.SplitAfter(string(data), "\n")
	for i, line := range lines {
		k, _, ok := parseLine(line)
		if !ok || k != key {
			continue
		}
		content := strings.TrimRight(line, "\r\n")
		ending := line[len(content):]
		prefix := ""
		if i == 0 && strings.HasPrefix(content, utf8BOM) {
			prefix = utf8BOM
		}
		lines[i] = prefix + key + "=" + value + ending
		if err := os.WriteFile(path, []byte(strings.Join(lines, "")), info.Mode().Perm()); err != nil {
			return false, fmt.Errorf("writing %s: %w", path, err)
		}
		return true, nil
	}
	return false, nil
}

func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(strings.TrimPrefix(line, utf8BOM))
	if line == "" || line[0] == '[' || line[0] == ';' {
		return "", "", false
	}
	key, value, _ = strings.Cut(line, "=")
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// File is a settings file at a known location.
type File struct {
	Path string
}

// Get returns the value of one setting, and whether it was present.
func (f File) Get(key string) (string, bool, error) {
	values, err := Read(f.Path)
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set changes one setting; see Write.
func (f File) Set(key, value string) (bool, error) {
	return Write(f.Path, key, value)
}
