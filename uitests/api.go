package uitests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jsontools/npp-ui-tests/automation"
	"github.com/jsontools/npp-ui-tests/config"
	"github.com/jsontools/npp-ui-tests/framework"
	"github.com/jsontools/npp-ui-tests/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const continuePrompt = "Do you want to continue the tests (Y/N)?"

// Environment is everything the scenarios share for the length of a run.
type Environment struct {
	Editor   *automation.Editor
	Open     automation.OpenOptions
	Settings settings.File
	Commands automation.CommandRunner
	// Operator is asked after every scenario whether to go on.
	Operator framework.Operator
	// Logger receives debug output in addition to each test's captured output.
	Logger framework.Logger
}

// T represents a test or subtest in our UI test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that
// is outside of the Go test runner. To make test assertions, you can use the assert and
// require packages, passing the *T as if it were a *testing.T.
//
// Its action methods send input to Notepad++ through the automation package. They fail
// the test and exit it immediately if the input cannot be sent, since nothing sensible can
// be checked after that.
type T struct {
	context  *framework.Context
	env      *Environment
	editor   *automation.Editor
	logger   framework.Logger
	cleanups []func()
}

func newTestScope(context *framework.Context, env *Environment) *T {
	logger := framework.TeeLogger(context.DebugLogger(), env.Logger)
	return &T{
		context: context,
		env:     env,
		editor:  env.Editor.WithLogger(logger),
		logger:  logger,
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a group of subtests. Use Scenario for a test that drives the editor.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Scenario runs a subtest that opens Notepad++ first and tears everything down afterwards,
// even if the test fails. After teardown the operator is asked whether to continue.
func (t *T) Scenario(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		t1 := newTestScope(c, t.env)
		defer t1.tearDown()
		t1.setUp()
		action(t1)
	})
}

func (t *T) setUp() {
	t.context.Enter(framework.PhaseOpening)
	t.OpenEditor()
	t.context.Enter(framework.PhaseReady)
}

// Cleanup registers a function to be called when the scenario ends, before the document and
// the editor are closed. Cleanups run in reverse order even if the scenario failed, but not
// if the run is being aborted.
func (t *T) Cleanup(f func()) {
	t.cleanups = append(t.cleanups, f)
}

// tearDown never exits the test early, so that every step is attempted.
func (t *T) tearDown() {
	if t.context.Aborting() {
		return
	}
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		t.runCleanup(t.cleanups[i])
	}
	t.context.Enter(framework.PhaseTearingDown)
	if err := t.editor.EmptyAndClose(); err != nil {
		t.Errorf("emptying and closing the document: %s", err)
	}
	if err := t.editor.Close(); err != nil {
		t.Errorf("closing Notepad++: %s", err)
	}
	t.context.Enter(framework.PhaseNotStarted)

	ok, err := t.env.Operator.Continue(continuePrompt)
	if err != nil {
		t.Errorf("%s", err)
	}
	if !ok {
		t.context.Abort(framework.ErrOperatorDeclined)
	}
}

// runCleanup keeps a failed cleanup from skipping the rest of the teardown.
func (t *T) runCleanup(f func()) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*framework.Context); !ok || t.context.Aborting() {
				panic(r)
			}
		}
	}()
	f()
}

// Abort fails the test and stops the whole run at once, without teardown. It is for when
// the editor is in a state where any further keystrokes could do damage.
func (t *T) Abort(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	t.Errorf("%s", err)
	t.context.Abort(fmt.Errorf("unexpected application state: %w", err))
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.logger.Printf(format, args...)
}

func (t *T) stimulate() {
	t.context.Enter(framework.PhaseStimulating)
}

func (t *T) observe() {
	t.context.Enter(framework.PhaseObserving)
}

// OpenEditor starts Notepad++ and waits for its window.
func (t *T) OpenEditor() {
	require.NoError(t, t.editor.Open(context.Background(), t.env.Open))
}

// CloseEditor closes Notepad++.
func (t *T) CloseEditor() {
	t.stimulate()
	require.NoError(t, t.editor.Close())
}

// NewFile opens a new, empty document.
func (t *T) NewFile() {
	t.stimulate()
	require.NoError(t, t.editor.NewFile())
}

// TypeKeys presses one key per character of text in the editor.
func (t *T) TypeKeys(text string) {
	t.stimulate()
	require.NoError(t, t.editor.TypeKeys(text))
}

// Write types text into whatever has focus.
func (t *T) Write(text string) {
	t.stimulate()
	require.NoError(t, t.editor.Write(text))
}

// Press presses keys one at a time, for navigating dialogs.
func (t *T) Press(keys ...automation.Key) {
	t.stimulate()
	require.NoError(t, t.editor.Press(keys...))
}

func (t *T) Compress() {
	t.stimulate()
	require.NoError(t, t.editor.ToggleCompress())
}

func (t *T) PrettyPrint() {
	t.stimulate()
	require.NoError(t, t.editor.TogglePrettyPrint())
}

func (t *T) JSONToCSV() {
	t.stimulate()
	require.NoError(t, t.editor.JSONToCSV())
}

func (t *T) OpenFileWithName(name string) {
	t.stimulate()
	require.NoError(t, t.editor.OpenFileWithName(name))
}

// EmptyAndClose empties and closes the current document.
func (t *T) EmptyAndClose() {
	t.stimulate()
	require.NoError(t, t.editor.EmptyAndClose())
}

// Pause waits for the editor to catch up.
func (t *T) Pause(d time.Duration) {
	t.editor.Pause(d)
}

// Delays returns the configured settle times.
func (t *T) Delays() config.Delays {
	return t.editor.Delays()
}

// SetCulture changes the Windows culture. A failure is only logged, since a culture that
// did not change shows up in the assertions anyway.
func (t *T) SetCulture(identifier string) {
	t.stimulate()
	if err := automation.SetCulture(context.Background(), t.env.Commands, identifier); err != nil {
		t.Debug("Could not set culture to %s: %s", identifier, err)
	}
}

// Query runs a JsonTools query on the current document and returns the result.
func (t *T) Query(query string) string {
	t.stimulate()
	result, err := t.editor.RunQuery(query)
	require.NoError(t, err)
	t.observe()
	return result
}

// Contents returns the text of the current document.
func (t *T) Contents() string {
	t.observe()
	text, err := t.editor.ClipboardText()
	require.NoError(t, err)
	return text
}

// WindowOpen reports whether a window with exactly this title is open.
func (t *T) WindowOpen(title string) bool {
	t.observe()
	titles, err := t.editor.WindowTitles()
	require.NoError(t, err)
	for _, open := range titles {
		if open == title {
			return true
		}
	}
	return false
}

// Setting returns the current value of a JsonTools setting. The test fails if the settings
// file is missing or does not have the setting.
func (t *T) Setting(key string) string {
	t.observe()
	value, ok, err := t.env.Settings.Get(key)
	require.NoError(t, err)
	require.True(t, ok, "setting %q not found in %s", key, t.env.Settings.Path)
	return value
}

// ChangeSetting sets a JsonTools setting, failing the test if it is not in the file.
func (t *T) ChangeSetting(key, value string) {
	t.stimulate()
	changed, err := t.env.Settings.Set(key, value)
	require.NoError(t, err)
	require.True(t, changed, "setting %q not found in %s", key, t.env.Settings.Path)
}

// CheckText checks the observed text against the exact expected text. A mismatch fails
// the test but does not end it.
func (t *T) CheckText(expected, actual string) {
	t.context.Enter(framework.PhaseAsserting)
	assert.Equal(t, expected, actual)
}

// CheckContains checks that the observed text includes every expected substring. Missing
// substrings fail the test but do not end it.
func (t *T) CheckContains(actual string, expected ...string) {
	t.context.Enter(framework.PhaseAsserting)
	for _, e := range expected {
		assert.Contains(t, actual, e)
	}
}

// crlf converts a multi-line literal to Windows line endings.
func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}
