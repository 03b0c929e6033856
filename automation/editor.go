package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jsontools/npp-ui-tests/config"
	"github.com/jsontools/npp-ui-tests/framework"
)

var (
	comboCloseEditor = []Key{KeyAlt, KeyF4}
	comboNewFile     = []Key{KeyCtrl, "n"}
	comboSelectAll   = []Key{KeyCtrl, "a"}
	comboCopy        = []Key{KeyCtrl, "c"}
	comboCloseFile   = []Key{KeyCtrl, "w"}
)

// Editor performs user actions on a Notepad++ instance.
type Editor struct {
	desktop     Desktop
	editorCfg   config.EditorConfig
	delays      config.Delays
	logger      framework.Logger
	sleep       func(time.Duration)
	titleSuffix string
}

// EditorOption customizes an Editor.
type EditorOption func(*Editor)

// WithSleep replaces time.Sleep for every settle delay.
func WithSleep(sleep func(time.Duration)) EditorOption {
	return func(e *Editor) { e.sleep = sleep }
}

// NewEditor creates an Editor. It does not touch the desktop.
func NewEditor(desktop Desktop, cfg *config.Config, logger framework.Logger, options ...EditorOption) *Editor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	e := &Editor{
		desktop:     desktop,
		editorCfg:   cfg.Editor,
		delays:      cfg.Delays,
		logger:      logger,
		sleep:       time.Sleep,
		titleSuffix: cfg.Editor.WindowTitleSuffix,
	}
	for _, o := range options {
		o(e)
	}
	return e
}

// WithLogger returns a copy of the Editor that logs somewhere else.
func (e *Editor) WithLogger(logger framework.Logger) *Editor {
	e1 := *e
	e1.logger = logger
	return &e1
}

// Delays returns the settle times this Editor uses.
func (e *Editor) Delays() config.Delays {
	return e.delays
}

// Pause waits for the editor to catch up.
func (e *Editor) Pause(d time.Duration) {
	if d > 0 {
		e.sleep(d)
	}
}

// FindWindow makes one pass over the open windows and returns the first Notepad++ window.
func (e *Editor) FindWindow() (Window, error) {
	windows, err := e.desktop.Windows()
	if err != nil {
		return nil, fmt.Errorf("listing windows: %w", err)
	}
	for _, w := range windows {
		if strings.HasSuffix(w.Title(), e.titleSuffix) {
			return w, nil
		}
	}
	return nil, ErrWindowNotFound
}

// WindowTitles returns the titles of all open windows, such as message boxes.
func (e *Editor) WindowTitles() ([]string, error) {
	windows, err := e.desktop.Windows()
	if err != nil {
		return nil, fmt.Errorf("listing windows: %w", err)
	}
	titles := make([]string, 0, len(windows))
	for _, w := range windows {
		titles = append(titles, w.Title())
	}
	return titles, nil
}

// WaitForWindow polls until a Notepad++ window appears. It waits at most the configured
// window timeout, or forever if that is zero, unless ctx ends first.
func (e *Editor) WaitForWindow(ctx context.Context) (Window, error) {
	if e.editorCfg.WindowTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.editorCfg.WindowTimeout)
		defer cancel()
	}
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for Notepad++ window: %w", ctx.Err())
		default:
		}
		e.sleep(e.delays.WindowPoll)
		w, err := e.FindWindow()
		if err == nil {
			e.logger.Printf("Found editor window %q", w.Title())
			return w, nil
		}
		if !errors.Is(err, ErrWindowNotFound) {
			return nil, err
		}
	}
}

// Focus maximizes and activates the Notepad++ window. It returns ErrWindowNotFound if
// the editor is not running.
func (e *Editor) Focus() error {
	w, err := e.FindWindow()
	if err != nil {
		return err
	}
	if err := w.Maximize(); err != nil {
		return fmt.Errorf("maximizing %q: %w", w.Title(), err)
	}
	if err := w.Activate(); err != nil {
		return fmt.Errorf("activating %q: %w", w.Title(), err)
	}
	return nil
}

// OpenOptions selects which Notepad++ installation to run.
type OpenOptions struct {
	Version string
	X64     bool
	// Latest runs the unversioned installation and ignores Version.
	Latest bool
	// ForceClose empties and closes the current document first.
	ForceClose bool
}

// Open starts Notepad++, or brings an already running instance forward, and waits for
// its window.
func (e *Editor) Open(ctx context.Context, opts OpenOptions) error {
	if opts.ForceClose {
		if err := e.EmptyAndClose(); err != nil {
			if !errors.Is(err, ErrWindowNotFound) {
				return err
			}
			e.logger.Printf("Nothing to close before opening the editor")
		}
	}
	if err := e.Focus(); err != nil {
		e.logger.Printf("Could not focus an existing editor: %s", err)
	}
	path := ExecutablePath(e.editorCfg, opts.Version, opts.X64, opts.Latest)
	e.logger.Printf("Launching %s", path)
	if err := e.desktop.Launch(path); err != nil {
		return fmt.Errorf("launching %s: %w", path, err)
	}
	_, err := e.WaitForWindow(ctx)
	return err
}

// SendOptions controls how SendKeys delivers keys.
type SendOptions struct {
	// Simultaneous holds all keys down together, as for a hotkey. Otherwise each key is
	// pressed and released in turn.
	Simultaneous bool
	// NoFocus sends the keys to whatever has focus instead of focusing the editor first.
	NoFocus bool
}

// SendKeys presses the given keys and then waits for the key settle delay.
func (e *Editor) SendKeys(opts SendOptions, keys ...Key) error {
	if !opts.NoFocus {
		if err := e.Focus(); err != nil {
			return err
		}
	}
	var err error
	if opts.Simultaneous {
		err = e.chord(keys)
	} else {
		err = e.press(keys...)
	}
	e.sleep(e.delays.KeySettle)
	return err
}

func (e *Editor) hotkey(keys ...Key) error {
	return e.SendKeys(SendOptions{Simultaneous: true}, keys...)
}

func (e *Editor) press(keys ...Key) error {
	for _, k := range keys {
		if err := e.desktop.KeyDown(k); err != nil {
			return fmt.Errorf("pressing %q: %w", k, err)
		}
		if err := e.desktop.KeyUp(k); err != nil {
			return fmt.Errorf("releasing %q: %w", k, err)
		}
	}
	return nil
}

// chord releases every key it managed to press, even if a later key fails.
func (e *Editor) chord(keys []Key) error {
	var pressed []Key
	var err error
	for _, k := range keys {
		if err = e.desktop.KeyDown(k); err != nil {
			err = fmt.Errorf("pressing %q: %w", k, err)
			break
		}
		pressed = append(pressed, k)
	}
	for _, k := range pressed {
		if upErr := e.desktop.KeyUp(k); upErr != nil && err == nil {
			err = fmt.Errorf("releasing %q: %w", k, upErr)
		}
	}
	return err
}

// TypeKeys focuses the editor and presses one key per character of text.
func (e *Editor) TypeKeys(text string) error {
	return e.SendKeys(SendOptions{}, KeysOf(text)...)
}

// Write types text into whatever has focus, such as a form field.
func (e *Editor) Write(text string) error {
	return e.desktop.Type(text)
}

// Press presses keys one at a time without focusing the editor or waiting afterwards.
// It is meant for navigating dialogs.
func (e *Editor) Press(keys ...Key) error {
	return e.press(keys...)
}

// Close closes Notepad++.
func (e *Editor) Close() error {
	return e.hotkey(comboCloseEditor...)
}

// NewFile opens a new, empty document.
func (e *Editor) NewFile() error {
	return e.hotkey(comboNewFile...)
}

// EmptyAndClose deletes the contents of the current document and closes it, so that
// closing never stops at an unsaved-changes prompt.
func (e *Editor) EmptyAndClose() error {
	if err := e.hotkey(comboSelectAll...); err != nil {
		return err
	}
	if err := e.SendKeys(SendOptions{}, KeyBackspace); err != nil {
		return err
	}
	return e.hotkey(comboCloseFile...)
}

// ClipboardText selects and copies the whole current document, then returns the clipboard.
// A failed copy cannot be detected; the clipboard will just hold stale text.
func (e *Editor) ClipboardText() (string, error) {
	if err := e.hotkey(comboSelectAll...); err != nil {
		return "", err
	}
	if err := e.hotkey(comboCopy...); err != nil {
		return "", err
	}
	text, err := e.desktop.Clipboard()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}
