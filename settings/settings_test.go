package settings

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	helpers "github.com/launchdarkly/go-test-helpers/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSettings = "[JSON]\r\n" +
	"; whether to lint JSON\r\n" +
	"linting=False\r\n" +
	"indent_pretty_print = 4\r\n" +
	"\r\n" +
	"[Miscellaneous]\r\n" +
	"tree_node_images=True\r\n" +
	"linting=True\r\n" +
	"sort_keys=True"

// withFileData runs action with the path of a temporary file holding data.
func withFileData(t *testing.T, data string, action func(path string)) {
	helpers.WithTempFile(func(path string) {
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
		action(path)
	})
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRead(t *testing.T) {
	withFileData(t, sampleSettings, func(path string) {
		values, err := Read(path)
		require.NoError(t, err)
		expected := map[string]string{
			"linting":             "False",
			"indent_pretty_print": "4",
			"tree_node_images":    "True",
			"sort_keys":           "True",
		}
		if diff := cmp.Diff(expected, values); diff != "" {
			t.Errorf("unexpected settings (-want +got):\n%s", diff)
		}
	})
}

func TestWriteChangesOnlyTheFirstMatchingLine(t *testing.T) {
	withFileData(t, sampleSettings, func(path string) {
		changed, err := Write(path, "linting", "True")
		require.NoError(t, err)
		assert.True(t, changed)

		expected := "[JSON]\r\n" +
			"; whether to lint JSON\r\n" +
			"linting=True\r\n" +
			"indent_pretty_print = 4\r\n" +
			"\r\n" +
			"[Miscellaneous]\r\n" +
			"tree_node_images=True\r\n" +
			"linting=True\r\n" +
			"sort_keys=True"
		if diff := cmp.Diff(expected, readFile(t, path)); diff != "" {
			t.Errorf("unexpected file content (-want +got):\n%s", diff)
		}
	})
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	withFileData(t, sampleSettings, func(path string) {
		f := File{Path: path}
		for _, key := range []string{"linting", "indent_pretty_print", "sort_keys"} {
			changed, err := f.Set(key, "some value")
			require.NoError(t, err)
			require.True(t, changed, key)

			value, ok, err := f.Get(key)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "some value", value, key)
		}
	})
}

func TestWriteKeepsLastLineWithoutTerminator(t *testing.T) {
	withFileData(t, sampleSettings, func(path string) {
		_, err := Write(path, "sort_keys", "False")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(readFile(t, path), "\r\nlinting=True\r\nsort_keys=False"))
	})
}

func TestWriteMissingKeyLeavesFileUnchanged(t *testing.T) {
	withFileData(t, sampleSettings, func(path string) {
		changed, err := Write(path, "no_such_setting", "1")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, sampleSettings, readFile(t, path))
	})
}

func TestWriteDoesNotMatchKeyPrefixesOrComments(t *testing.T) {
	content := "; linting=off\nlinting_max_errors=10\nlinting=False\n"
	withFileData(t, content, func(path string) {
		changed, err := Write(path, "linting", "True")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "; linting=off\nlinting_max_errors=10\nlinting=True\n", readFile(t, path))
	})
}

func TestWritePreservesByteOrderMark(t *testing.T) {
	content := utf8BOM + "linting=False\nsort_keys=True\n"
	withFileData(t, content, func(path string) {
		values, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, "False", values["linting"])

		changed, err := Write(path, "linting", "True")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, utf8BOM+"linting=True\nsort_keys=True\n", readFile(t, path))
	})
}

func TestMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)

	_, err := Read(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	changed, err := Write(path, "linting", "True")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, changed)
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, _, err = File{Path: path}.Get("linting")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDefaultPath(t *testing.T) {
	dir, err := os.UserConfigDir()
	if err != nil {
		t.Skip("no user config directory in this environment")
	}
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notepad++", "plugins", "config", "JsonTools.ini"), path)
}
