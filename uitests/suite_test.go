package uitests

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsontools/npp-ui-tests/automation"
	"github.com/jsontools/npp-ui-tests/automation/automationtest"
	"github.com/jsontools/npp-ui-tests/framework"
	"github.com/jsontools/npp-ui-tests/settings"

	helpers "github.com/launchdarkly/go-test-helpers/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonToolsSettings = "[JSON]\r\nlinting = False\r\nsort_keys=True\r\n"

// withFileData runs action with the path of a temporary file holding data.
func withFileData(t *testing.T, data string, action func(path string)) {
	helpers.WithTempFile(func(path string) {
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
		action(path)
	})
}

type recordingRunner struct {
	commands [][]string
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.commands = append(r.commands, append([]string{name}, args...))
	return nil
}

// decliningOperator says yes to the first few scenarios and no after that.
type decliningOperator struct {
	approvals int
	asked     int
}

func (o *decliningOperator) Acknowledge(string, string) (bool, error) { return true, nil }

func (o *decliningOperator) Continue(string) (bool, error) {
	o.asked++
	return o.asked <= o.approvals, nil
}

type fixture struct {
	desktop  *automationtest.Desktop
	plugin   *automationtest.Plugin
	commands *recordingRunner
	env      *Environment
}

func newFixture(settingsPath string) *fixture {
	desktop := automationtest.NewDesktop()
	plugin := newFakeJsonTools()
	plugin.Install(desktop)
	commands := &recordingRunner{}
	editor := automation.NewEditor(desktop, nil, nil, automation.WithSleep(func(time.Duration) {}))
	return &fixture{
		desktop:  desktop,
		plugin:   plugin,
		commands: commands,
		env: &Environment{
			Editor:   editor,
			Open:     automation.OpenOptions{Version: "latest", X64: true, Latest: true},
			Settings: settings.File{Path: settingsPath},
			Commands: commands,
		},
	}
}

func (f *fixture) run(filter framework.Filter) framework.Results {
	return RunTestSuite(f.env, filter, nil)
}

func only(pattern string) framework.Filter {
	var filters framework.RegexFilters
	if err := filters.MustMatch.Set(pattern); err != nil {
		panic(err)
	}
	return filters.AsFilter
}

func testIDs(results []framework.TestResult) []string {
	var ids []string
	for _, r := range results {
		ids = append(ids, r.TestID.String())
	}
	return ids
}

func TestAllScenariosPass(t *testing.T) {
	withFileData(t, jsonToolsSettings, func(path string) {
		f := newFixture(path)

		results := f.run(nil)

		assert.True(t, results.OK(), "failures: %v", results.Failures)
		assert.Equal(t, []string{
			"formatting/compress",
			"formatting/pretty print",
			"formatting/big ints parsed as floats",
			"formatting",
			"culture/german culture floats",
			"culture",
			"tree/tree query",
			"tree/JSON to CSV",
			"tree",
			"linting/linter",
			"linting",
		}, testIDs(results.Tests))

		assert.False(t, f.desktop.Running)
		assert.Len(t, f.desktop.Documents(), 0)
		assert.Equal(t, [][]string{
			{"powershell", "Set-Culture", "de-DE"},
			{"powershell", "Set-Culture", "en-US"},
		}, f.commands.commands)

		values, err := settings.Read(path)
		require.NoError(t, err)
		assert.Equal(t, "False", values["linting"])
	})
}

func TestEveryScenarioLaunchesTheEditor(t *testing.T) {
	withFileData(t, jsonToolsSettings, func(path string) {
		f := newFixture(path)

		require.True(t, f.run(nil).OK())

		// the culture scenario restarts the editor
		assert.Len(t, f.desktop.Launched, 8)
		for _, p := range f.desktop.Launched {
			assert.Equal(t, `C:\Program Files\Notepad++\notepad++.exe`, p)
		}
	})
}

func TestWrongOutputFailsScenarioAndRunContinues(t *testing.T) {
	withFileData(t, jsonToolsSettings, func(path string) {
		f := newFixture(path)
		f.plugin.Compress = func(text string) (string, error) { return text, nil }

		results := f.run(only("formatting"))

		assert.Nil(t, results.Aborted)
		assert.Equal(t, []string{
			"formatting/compress",
			"formatting/big ints parsed as floats",
		}, testIDs(results.Failures))
		assert.False(t, f.desktop.Running)
		assert.Len(t, f.desktop.Documents(), 0)
	})
}

func TestOperatorDeclinesAfterScenario(t *testing.T) {
	withFileData(t, jsonToolsSettings, func(path string) {
		f := newFixture(path)
		operator := &decliningOperator{approvals: 1}
		f.env.Operator = operator

		results := f.run(nil)

		assert.False(t, results.OK())
		assert.True(t, errors.Is(results.Aborted, framework.ErrOperatorDeclined))
		assert.Len(t, results.Failures, 0)
		assert.Equal(t, 2, operator.asked)
		assert.Equal(t, []string{
			"formatting/compress",
			"formatting/pretty print",
			"formatting",
		}, testIDs(results.Tests))
		// the declined scenario was still torn down
		assert.False(t, f.desktop.Running)
		assert.Len(t, f.desktop.Launched, 2)
	})
}

func TestUnexpectedParseErrorAbortsWithoutTeardown(t *testing.T) {
	withFileData(t, jsonToolsSettings, func(path string) {
		f := newFixture(path)
		f.plugin.Linting = false

		results := f.run(only("linting"))

		require.Error(t, results.Aborted)
		assert.Contains(t, results.Aborted.Error(), "Linting must be turned on before starting these tests")
		assert.Equal(t, []string{"linting/linter"}, testIDs(results.Failures))
		assert.True(t, f.desktop.Running)
		assert.Contains(t, f.desktop.ExtraTitles, automationtest.ParseErrorTitle)

		// the setting is not restored once the run has been aborted
		values, err := settings.Read(path)
		require.NoError(t, err)
		assert.Equal(t, "True", values["linting"])
	})
}

func TestLinterKeepsSettingThatWasAlreadyOn(t *testing.T) {
	withFileData(t, "[JSON]\r\nlinting=True\r\n", func(path string) {
		f := newFixture(path)

		results := f.run(only("linting"))

		assert.True(t, results.OK(), "failures: %v", results.Failures)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[JSON]\r\nlinting=True\r\n", string(data))
	})
}

func TestMissingSettingsFileFailsLinter(t *testing.T) {
	f := newFixture(filepath.Join(t.TempDir(), "JsonTools.ini"))

	results := f.run(only("linting"))

	assert.Nil(t, results.Aborted)
	require.Equal(t, []string{"linting/linter"}, testIDs(results.Failures))
	require.NotEmpty(t, results.Failures[0].Errors)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "JsonTools.ini")
	assert.False(t, f.desktop.Running)
}

func TestEditorThatCannotBeLaunchedFailsEveryScenario(t *testing.T) {
	withFileData(t, jsonToolsSettings, func(path string) {
		f := newFixture(path)
		f.desktop.LaunchFails = errors.New("file not found")

		results := f.run(only("tree"))

		assert.Nil(t, results.Aborted)
		assert.Equal(t, []string{"tree/tree query", "tree/JSON to CSV"}, testIDs(results.Failures))
	})
}

func TestChecksDoNotEndTheScenario(t *testing.T) {
	f := newFixture("")
	f.env.Operator = framework.AutoApprove{}
	reached := false

	results := framework.Run(nil, nil, func(c *framework.Context) {
		newTestScope(c, f.env).Scenario("mismatch", func(t *T) {
			t.NewFile()
			t.TypeKeys("b")
			t.CheckText("a", t.Contents())
			t.CheckContains("abc", "z")
			reached = true
		})
	})

	assert.True(t, reached)
	require.Equal(t, []string{"mismatch"}, testIDs(results.Failures))
	assert.Len(t, results.Failures[0].Errors, 2)
	assert.False(t, f.desktop.Running)
}
