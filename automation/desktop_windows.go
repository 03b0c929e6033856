//go:build windows

package automation

import (
	"fmt"
	"sync"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows         = user32.NewProc("EnumWindows")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procGetWindowTextLength = user32.NewProc("GetWindowTextLengthW")
	procIsWindowVisible     = user32.NewProc("IsWindowVisible")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procSendInput           = user32.NewProc("SendInput")
	procVkKeyScanW          = user32.NewProc("VkKeyScanW")
)

const (
	inputKeyboard      = 1
	keyEventKeyUp      = 0x0002
	keyEventUnicode    = 0x0004
	showWindowMaximize = 3
	showWindowNormal   = 1
)

// keybdInput and input mirror KEYBDINPUT and INPUT. The padding makes input as large as
// the union's biggest member, MOUSEINPUT, on both 32 and 64 bit.
type keybdInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keybdInput
	padding   uint64
}

type win32Desktop struct {
	keys *keyTracker
}

// NewDesktop returns the Windows desktop.
func NewDesktop() (Desktop, error) {
	if err := user32.Load(); err != nil {
		return nil, err
	}
	return &win32Desktop{keys: newKeyTracker(vkScan)}, nil
}

func vkScan(r rune) (uint16, bool) {
	scan, _, _ := procVkKeyScanW.Call(uintptr(r))
	if int16(scan) == -1 {
		return 0, false
	}
	return uint16(scan & 0xFF), true
}

var (
	enumLock     sync.Mutex
	enumFound    []windows.HWND
	enumCallback = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(uintptr(hwnd)); visible != 0 {
			enumFound = append(enumFound, hwnd)
		}
		return 1
	})
)

func (d *win32Desktop) Windows() ([]Window, error) {
	enumLock.Lock()
	defer enumLock.Unlock()
	enumFound = nil
	if ret, _, err := procEnumWindows.Call(enumCallback, 0); ret == 0 {
		return nil, fmt.Errorf("EnumWindows: %w", err)
	}
	var result []Window
	for _, hwnd := range enumFound {
		if title := windowText(hwnd); title != "" {
			result = append(result, win32Window{hwnd: hwnd, title: title})
		}
	}
	return result, nil
}

func windowText(hwnd windows.HWND) string {
	length, _, _ := procGetWindowTextLength.Call(uintptr(hwnd))
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

type win32Window struct {
	hwnd  windows.HWND
	title string
}

func (w win32Window) Title() string { return w.title }

func (w win32Window) Maximize() error {
	// ShowWindow returns the previous visibility, not success.
	procShowWindow.Call(uintptr(w.hwnd), showWindowMaximize)
	return nil
}

func (w win32Window) Activate() error {
	if ret, _, err := procSetForegroundWindow.Call(uintptr(w.hwnd)); ret == 0 {
		return fmt.Errorf("SetForegroundWindow: %w", err)
	}
	return nil
}

func (d *win32Desktop) KeyDown(key Key) error {
	s, err := d.keys.press(key)
	if err != nil {
		return err
	}
	if err := sendStroke(s, 0); err != nil {
		d.keys.release(key)
		return err
	}
	return nil
}

func (d *win32Desktop) KeyUp(key Key) error {
	s, err := d.keys.release(key)
	if err != nil {
		return err
	}
	return sendStroke(s, keyEventKeyUp)
}

func sendStroke(s keyStroke, flags uint32) error {
	if s.vk != 0 {
		return sendInputs(keyboardEvent(s.vk, 0, flags))
	}
	events := make([]input, 0, len(s.units))
	for _, unit := range s.units {
		events = append(events, keyboardEvent(0, unit, flags|keyEventUnicode))
	}
	return sendInputs(events...)
}

// Type sends every character as unicode input, pressed and released in turn.
func (d *win32Desktop) Type(text string) error {
	for _, k := range KeysOf(text) {
		s := keyStroke{units: utf16.Encode([]rune(string(k)))}
		if err := sendStroke(s, 0); err != nil {
			return err
		}
		if err := sendStroke(s, keyEventKeyUp); err != nil {
			return err
		}
	}
	return nil
}

func (d *win32Desktop) Launch(path string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	return windows.ShellExecute(0, verb, file, nil, nil, showWindowNormal)
}

func (d *win32Desktop) Clipboard() (string, error) {
	return readClipboard()
}

func keyboardEvent(vk, scan uint16, flags uint32) input {
	return input{
		inputType: inputKeyboard,
		ki:        keybdInput{vk: vk, scan: scan, flags: flags},
	}
}

func sendInputs(events ...input) error {
	if len(events) == 0 {
		return nil
	}
	sent, _, err := procSendInput.Call(
		uintptr(len(events)),
		uintptr(unsafe.Pointer(&events[0])),
		unsafe.Sizeof(events[0]),
	)
	if int(sent) != len(events) {
		return fmt.Errorf("SendInput: %w", err)
	}
	return nil
}
