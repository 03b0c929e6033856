// Package automation is the action layer of the UI tests: it drives a running Notepad++
// through simulated keyboard input and reads back what it shows via the clipboard.
//
// Nothing here gets an acknowledgement from the editor. Every action is followed by a
// fixed settle delay (see config.Delays), so callers must assume UI state is only
// eventually consistent with the keys they sent.
package automation

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrWindowNotFound means no Notepad++ window is currently open.
	ErrWindowNotFound = errors.New("no Notepad++ window found")
	// ErrUnsupportedPlatform is returned by NewDesktop where GUI automation is not implemented.
	ErrUnsupportedPlatform = errors.New("GUI automation is only supported on Windows")
)

// Key is a key symbol: either a named key such as "ctrl" or "f4", or a single character.
type Key string

const (
	KeyCtrl      Key = "ctrl"
	KeyAlt       Key = "alt"
	KeyShift     Key = "shift"
	KeyEnter     Key = "enter"
	KeyTab       Key = "tab"
	KeyEscape    Key = "escape"
	KeyBackspace Key = "backspace"
	KeyF4        Key = "f4"
)

// IsChar is true for keys that stand for one printable character.
func (k Key) IsChar() bool {
	return utf8.RuneCountInString(string(k)) == 1
}

// IsModifier is true for ctrl, alt and shift.
func (k Key) IsModifier() bool {
	return k == KeyCtrl || k == KeyAlt || k == KeyShift
}

// KeysOf returns one key per character of text.
func KeysOf(text string) []Key {
	keys := make([]Key, 0, len(text))
	for _, r := range text {
		keys = append(keys, Key(string(r)))
	}
	return keys
}

// Window is a top-level window of some application.
type Window interface {
	Title() string
	Maximize() error
	Activate() error
}

// Desktop is the operating system's window manager, keyboard and clipboard.
type Desktop interface {
	// Windows lists the visible top-level windows, frontmost first.
	Windows() ([]Window, error)
	KeyDown(key Key) error
	KeyUp(key Key) error
	// Type enters literal text into whatever has keyboard focus.
	Type(text string) error
	// Launch starts a program without waiting for it.
	Launch(path string) error
	Clipboard() (string, error)
}
