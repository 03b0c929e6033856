package uitests

import (
	"github.com/jsontools/npp-ui-tests/automation"
)

func DoCultureTests(t *T) {
	// JsonTools must format numbers the same way whatever the Windows culture is.
	t.Scenario("german culture floats", func(t *T) {
		t.CloseEditor()
		t.SetCulture(automation.CultureGerman)
		t.Cleanup(func() { t.SetCulture(automation.CultureUS) })
		t.OpenEditor()
		t.NewFile()
		t.TypeKeys("1.5")
		t.Compress()
		t.CheckText("1.5", t.Contents())
	})
}
