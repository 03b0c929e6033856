package automationtest

import (
	"strings"

	"github.com/jsontools/npp-ui-tests/automation"
)

// ParseErrorTitle is the title of the message box JsonTools shows when it cannot parse a
// document and linting is off.
const ParseErrorTitle = "Error while trying to parse JSON"

// Plugin imitates the parts of JsonTools, and of the NavigateTo plugin, that the UI tests
// use. Each function gets the current document's text; a nil function leaves the document
// alone.
type Plugin struct {
	Compress    func(text string) (string, error)
	PrettyPrint func(text string) (string, error)
	Query       func(text, query string) (string, error)
	ToCSV       func(text string) (string, error)
	// Lint lists the syntax errors in a document. It is only used when Linting is true.
	Lint    func(text string) []string
	Linting bool
}

// Install binds the plugin's hotkeys on d.
func (p *Plugin) Install(d *Desktop) {
	d.Handle("ctrl+alt+shift+c", func(d *Desktop) { p.reformat(d, p.Compress) })
	d.Handle("ctrl+alt+shift+p", func(d *Desktop) { p.reformat(d, p.PrettyPrint) })
	d.Handle("ctrl+alt+shift+j", p.toggleTree)
	d.Handle("ctrl+,", func(d *Desktop) { d.ShowForm(&navigateTo{}) })
}

func (p *Plugin) reformat(d *Desktop, fn func(string) (string, error)) {
	doc := d.Current()
	if doc == nil || fn == nil {
		return
	}
	out, err := fn(doc.Text)
	if err == nil {
		doc.Text = out
		d.selected = false
		return
	}
	if p.Linting && p.Lint != nil {
		lint := p.Lint(doc.Text)
		d.ShowForm(&messageBox{onEnter: func(d *Desktop) {
			d.OpenDocument("", strings.Join(lint, "\r\n"))
		}})
		return
	}
	d.ExtraTitles = append(d.ExtraTitles, ParseErrorTitle)
	d.ShowForm(&messageBox{title: ParseErrorTitle})
}

func (p *Plugin) toggleTree(d *Desktop) {
	if len(d.forms) > 0 {
		if _, ok := d.forms[len(d.forms)-1].(*treeView); ok {
			d.HideForm()
			return
		}
	}
	if doc := d.Current(); doc != nil {
		d.ShowForm(&treeView{plugin: p, doc: doc})
	}
}

// treeView has a query box followed by a submit button, a JSON to CSV button and a button
// that opens the last query result in a new tab. tabs is the position of the focused control.
type treeView struct {
	plugin *Plugin
	doc    *Document
	query  strings.Builder
	tabs   int
	result string
}

func (t *treeView) Input(d *Desktop, key automation.Key) {
	switch {
	case key == automation.KeyEscape:
		d.HideForm()
	case key == automation.KeyTab:
		t.tabs++
	case key == automation.KeyEnter:
		t.press(d)
	case key.IsChar() && t.tabs == 0:
		t.query.WriteString(string(key))
	}
}

func (t *treeView) press(d *Desktop) {
	switch t.tabs {
	case 1:
		if t.plugin.Query != nil {
			if result, err := t.plugin.Query(t.doc.Text, t.query.String()); err == nil {
				t.result = result
			}
		}
	case 2:
		d.ShowForm(&csvForm{plugin: t.plugin, doc: t.doc})
	case 3:
		d.OpenDocument("", t.result)
	}
}

// csvForm converts when its fifth control, the "Generate CSV" button, is pressed. It stays
// open afterwards.
type csvForm struct {
	plugin *Plugin
	doc    *Document
	tabs   int
}

func (c *csvForm) Input(d *Desktop, key automation.Key) {
	switch key {
	case automation.KeyEscape:
		d.HideForm()
	case automation.KeyTab:
		c.tabs++
	case automation.KeyEnter:
		if c.tabs == 4 && c.plugin.ToCSV != nil {
			if csv, err := c.plugin.ToCSV(c.doc.Text); err == nil {
				d.OpenDocument("", csv)
			}
		}
		c.tabs = 0
	}
}

type navigateTo struct {
	name strings.Builder
}

func (n *navigateTo) Input(d *Desktop, key automation.Key) {
	switch {
	case key == automation.KeyEscape:
		d.HideForm()
	case key == automation.KeyEnter:
		d.HideForm()
		d.SwitchTo(n.name.String())
	case key.IsChar():
		n.name.WriteString(string(key))
	}
}

type messageBox struct {
	title   string
	onEnter func(*Desktop)
}

func (m *messageBox) Input(d *Desktop, key automation.Key) {
	if key != automation.KeyEnter && key != automation.KeyEscape {
		return
	}
	d.HideForm()
	if m.title != "" {
		for i, t := range d.ExtraTitles {
			if t == m.title {
				d.ExtraTitles = append(d.ExtraTitles[:i], d.ExtraTitles[i+1:]...)
				break
			}
		}
	}
	if key == automation.KeyEnter && m.onEnter != nil {
		m.onEnter(d)
	}
}
