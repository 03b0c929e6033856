package uitests

import (
	"github.com/jsontools/npp-ui-tests/automation"
)

const (
	lintingSetting = "linting"
	// parseErrorTitle is the message box JsonTools shows instead of lint output when
	// linting is off.
	parseErrorTitle = "Error while trying to parse JSON"
)

func DoLintingTests(t *T) {
	t.Scenario("linter", func(t *T) {
		delays := t.Delays()
		original := t.Setting(lintingSetting)
		t.Pause(delays.SettingsSettle)
		t.ChangeSetting(lintingSetting, "True")
		if original != "True" {
			t.Cleanup(func() { t.ChangeSetting(lintingSetting, "False") })
		}
		t.Pause(delays.SettingsSettle)

		t.NewFile()
		t.TypeKeys("{'a': [1 2")
		t.Pause(delays.Compress)
		t.Compress()
		t.Pause(delays.LintSettle)
		if t.WindowOpen(parseErrorTitle) {
			t.Abort("Linting must be turned on before starting these tests")
		}

		// dismiss the lint summary, which opens the full lint output in a new tab
		t.Press(automation.KeyEnter)
		t.OpenFileWithName("new 2")
		lint := t.Contents()
		t.CheckContains(lint,
			`Strings must be quoted with " rather than '`,
			"No comma between array members",
			"Unterminated array",
			"Unterminated object",
		)
		t.EmptyAndClose()
	})
}
