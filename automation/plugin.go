package automation

// Hotkeys the operator must have bound before running the tests.
var (
	comboOpenTree    = []Key{KeyCtrl, KeyAlt, KeyShift, "j"}
	comboCompress    = []Key{KeyCtrl, KeyAlt, KeyShift, "c"}
	comboPrettyPrint = []Key{KeyCtrl, KeyAlt, KeyShift, "p"}
	comboNavigateTo  = []Key{KeyCtrl, ","}
)

// OpenTree toggles the JsonTools tree view for the current document.
func (e *Editor) OpenTree() error {
	if err := e.hotkey(comboOpenTree...); err != nil {
		return err
	}
	e.Pause(e.delays.OpenTree)
	return nil
}

// ToggleCompress reformats the current document as compact JSON.
func (e *Editor) ToggleCompress() error {
	if err := e.hotkey(comboCompress...); err != nil {
		return err
	}
	e.Pause(e.delays.Compress)
	return nil
}

// TogglePrettyPrint reformats the current document as indented JSON.
func (e *Editor) TogglePrettyPrint() error {
	if err := e.hotkey(comboPrettyPrint...); err != nil {
		return err
	}
	e.Pause(e.delays.PrettyPrint)
	return nil
}

// RunQuery opens the tree view, runs query against the current document, and returns the
// query result. The tab holding the result is emptied and closed before returning.
func (e *Editor) RunQuery(query string) (string, error) {
	if err := e.OpenTree(); err != nil {
		return "", err
	}
	if err := e.Write(query); err != nil {
		return "", err
	}
	// submit the query
	if err := e.Press(KeyTab, KeyEnter); err != nil {
		return "", err
	}
	e.Pause(e.delays.QueryStep)
	// open the result in a new tab
	if err := e.Press(KeyTab, KeyTab, KeyEnter); err != nil {
		return "", err
	}
	e.Pause(e.delays.QueryStep)
	// back to the editor
	if err := e.Press(KeyEscape); err != nil {
		return "", err
	}
	text, err := e.ClipboardText()
	if err != nil {
		return "", err
	}
	if err := e.EmptyAndClose(); err != nil {
		return "", err
	}
	return text, nil
}

// JSONToCSV converts the current document to CSV with the default options of the
// JSON-to-CSV form, which opens the CSV in a new tab and makes it current. The tree view
// is closed again afterwards.
func (e *Editor) JSONToCSV() error {
	if err := e.OpenTree(); err != nil {
		return err
	}
	e.Pause(e.delays.OpenTree)
	// open the JSON to CSV form
	if err := e.Press(KeyTab, KeyTab, KeyEnter); err != nil {
		return err
	}
	e.Pause(e.delays.FormStep)
	// make the CSV
	if err := e.Press(KeyTab, KeyTab, KeyTab, KeyTab, KeyEnter); err != nil {
		return err
	}
	e.Pause(e.delays.FormStep)
	// the form opens again afterwards
	if err := e.Press(KeyEscape); err != nil {
		return err
	}
	e.Pause(e.delays.FormStep)
	if err := e.OpenTree(); err != nil {
		return err
	}
	e.Pause(e.delays.QueryStep)
	return nil
}

// OpenFileWithName switches to an already open tab by name. This needs the NavigateTo
// plugin, bound to Ctrl+Comma.
func (e *Editor) OpenFileWithName(name string) error {
	if err := e.hotkey(comboNavigateTo...); err != nil {
		return err
	}
	e.Pause(e.delays.NavigateTo)
	if err := e.Write(name); err != nil {
		return err
	}
	e.Pause(e.delays.KeySettle)
	if err := e.Press(KeyEnter); err != nil {
		return err
	}
	e.Pause(e.delays.NavigateTo)
	return nil
}
