// Package automationtest provides an in-memory stand-in for the Windows desktop with a
// very small imitation of Notepad++ running on it, for testing code that uses the
// automation package without a real GUI.
//
// The fake editor understands the keystrokes the harness relies on: typing, select all,
// backspace, copy, new tab, close tab and close editor. Anything else, such as plugin
// hotkeys or dialogs, is supplied by the test with Handle and ShowForm.
package automationtest

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jsontools/npp-ui-tests/automation"
)

const titleSuffix = " - Notepad++"

// Document is an open tab.
type Document struct {
	Name string
	Text string
}

// Form receives all keyboard input while it is shown, standing in for plugin dialogs and
// the tree view.
type Form interface {
	Input(d *Desktop, key automation.Key)
}

// Desktop implements automation.Desktop.
type Desktop struct {
	// Running is true while the fake editor is open.
	Running bool
	// Launched records every path passed to Launch.
	Launched []string
	// Events records every key event as "down:<key>" or "up:<key>", and every Type call
	// as "type:<text>".
	Events []string
	// ExtraTitles are the titles of other windows, such as message boxes.
	ExtraTitles []string
	// LaunchFails makes Launch return an error.
	LaunchFails error
	// WindowAppearsAfter is how many Windows calls after a Launch pass before the editor
	// window shows up.
	WindowAppearsAfter int

	docs      []*Document
	current   int
	newCount  int
	selected  bool
	clipboard string
	held      map[automation.Key]bool
	hotkeys   map[string]func(*Desktop)
	forms     []Form
	pending   int
	focused   int
}

// NewDesktop returns a desktop with the editor not running.
func NewDesktop() *Desktop {
	return &Desktop{
		held:    make(map[automation.Key]bool),
		hotkeys: make(map[string]func(*Desktop)),
	}
}

// Handle registers an action for a key combination such as "ctrl+alt+shift+c". Modifiers
// are written in the order ctrl, alt, shift.
func (d *Desktop) Handle(combo string, action func(*Desktop)) {
	d.hotkeys[combo] = action
}

// Transform registers a hotkey that replaces the current document's text.
func (d *Desktop) Transform(combo string, fn func(string) string) {
	d.Handle(combo, func(d *Desktop) {
		if doc := d.Current(); doc != nil {
			doc.Text = fn(doc.Text)
			d.selected = false
		}
	})
}

// ShowForm gives keyboard input to f until HideForm is called.
func (d *Desktop) ShowForm(f Form) {
	d.forms = append(d.forms, f)
}

// HideForm closes the most recently shown form.
func (d *Desktop) HideForm() {
	if len(d.forms) > 0 {
		d.forms = d.forms[:len(d.forms)-1]
	}
}

// FormShown reports whether any form is shown.
func (d *Desktop) FormShown() bool {
	return len(d.forms) > 0
}

// Start opens the fake editor, keeping whatever tabs were open when it was closed.
func (d *Desktop) Start() {
	d.Running = true
}

// OpenDocument opens a tab and makes it current. An empty name picks the next "new N".
func (d *Desktop) OpenDocument(name, text string) *Document {
	if name == "" {
		d.newCount++
		name = fmt.Sprintf("new %d", d.newCount)
	}
	doc := &Document{Name: name, Text: text}
	d.docs = append(d.docs, doc)
	d.current = len(d.docs) - 1
	d.selected = false
	return doc
}

// Current returns the current document, or nil if none is open.
func (d *Desktop) Current() *Document {
	if !d.Running || len(d.docs) == 0 {
		return nil
	}
	return d.docs[d.current]
}

// Documents returns the open tabs.
func (d *Desktop) Documents() []Document {
	var ret []Document
	for _, doc := range d.docs {
		ret = append(ret, *doc)
	}
	return ret
}

// SetClipboard replaces the clipboard contents.
func (d *Desktop) SetClipboard(text string) {
	d.clipboard = text
}

// FocusCount is how many times the editor window was activated.
func (d *Desktop) FocusCount() int {
	return d.focused
}

func (d *Desktop) Windows() ([]automation.Window, error) {
	var ret []automation.Window
	if d.Running {
		if d.pending > 0 {
			d.pending--
		} else {
			title := "(no documents)" + titleSuffix
			if doc := d.Current(); doc != nil {
				title = doc.Name + titleSuffix
			}
			ret = append(ret, &window{desktop: d, title: title})
		}
	}
	for _, t := range d.ExtraTitles {
		ret = append(ret, &window{desktop: d, title: t})
	}
	return ret, nil
}

func (d *Desktop) Launch(path string) error {
	d.Launched = append(d.Launched, path)
	if d.LaunchFails != nil {
		return d.LaunchFails
	}
	if !d.Running {
		d.pending = d.WindowAppearsAfter
		d.Start()
	}
	return nil
}

func (d *Desktop) Clipboard() (string, error) {
	return d.clipboard, nil
}

func (d *Desktop) Type(text string) error {
	d.Events = append(d.Events, "type:"+text)
	for _, k := range automation.KeysOf(text) {
		d.input(k)
	}
	return nil
}

func (d *Desktop) KeyDown(key automation.Key) error {
	if key == "" {
		return errors.New("empty key")
	}
	d.Events = append(d.Events, "down:"+string(key))
	if key.IsModifier() {
		d.held[key] = true
		return nil
	}
	combo := d.combo(key)
	if action, ok := d.hotkeys[combo]; ok {
		action(d)
		return nil
	}
	if combo == string(key) || combo == "shift+"+string(key) {
		d.input(key)
		return nil
	}
	d.builtin(combo)
	return nil
}

func (d *Desktop) KeyUp(key automation.Key) error {
	d.Events = append(d.Events, "up:"+string(key))
	delete(d.held, key)
	return nil
}

func (d *Desktop) combo(key automation.Key) string {
	var parts []string
	for _, m := range []automation.Key{automation.KeyCtrl, automation.KeyAlt, automation.KeyShift} {
		if d.held[m] {
			parts = append(parts, string(m))
		}
	}
	return strings.Join(append(parts, string(key)), "+")
}

func (d *Desktop) builtin(combo string) {
	if !d.Running {
		return
	}
	switch combo {
	case "ctrl+a":
		d.selected = true
	case "ctrl+c":
		if doc := d.Current(); doc != nil && d.selected {
			d.clipboard = doc.Text
		}
	case "ctrl+n":
		d.OpenDocument("", "")
	case "ctrl+w":
		d.closeCurrent()
	case "alt+f4":
		d.Running = false
		d.forms = nil
	}
}

// input handles a key with no modifiers other than shift.
func (d *Desktop) input(key automation.Key) {
	if len(d.forms) > 0 {
		d.forms[len(d.forms)-1].Input(d, key)
		return
	}
	doc := d.Current()
	if doc == nil {
		return
	}
	switch {
	case key == automation.KeyBackspace:
		if d.selected {
			doc.Text = ""
		} else if r := []rune(doc.Text); len(r) > 0 {
			doc.Text = string(r[:len(r)-1])
		}
		d.selected = false
	case key == automation.KeyEnter:
		d.insert("\r\n")
	case key.IsChar():
		d.insert(string(key))
	}
}

func (d *Desktop) insert(s string) {
	doc := d.Current()
	if d.selected {
		doc.Text = ""
		d.selected = false
	}
	doc.Text += s
}

// closeCurrent closes the current tab. Once no tabs are left, "new N" numbering starts
// over, as it does in Notepad++.
func (d *Desktop) closeCurrent() {
	if len(d.docs) == 0 {
		return
	}
	d.docs = append(d.docs[:d.current], d.docs[d.current+1:]...)
	d.selected = false
	if len(d.docs) == 0 {
		d.newCount = 0
		d.current = 0
		return
	}
	if d.current >= len(d.docs) {
		d.current = len(d.docs) - 1
	}
}

// SwitchTo makes the named tab current. It returns false if no such tab is open.
func (d *Desktop) SwitchTo(name string) bool {
	for i, doc := range d.docs {
		if doc.Name == name {
			d.current = i
			d.selected = false
			return true
		}
	}
	return false
}

// DocumentNames lists the open tabs in order.
func (d *Desktop) DocumentNames() []string {
	var names []string
	for _, doc := range d.docs {
		names = append(names, doc.Name)
	}
	return names
}

// HeldKeys returns the keys that are currently down, sorted.
func (d *Desktop) HeldKeys() []string {
	var keys []string
	for k := range d.held {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

type window struct {
	desktop *Desktop
	title   string
}

func (w *window) Title() string   { return w.title }
func (w *window) Maximize() error { return nil }

func (w *window) Activate() error {
	w.desktop.focused++
	return nil
}
