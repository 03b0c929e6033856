package automation

import (
	"fmt"
	"unicode/utf16"
)

// Virtual key codes of the named keys.
var virtualKeys = map[Key]uint16{
	KeyCtrl:      0x11,
	KeyAlt:       0x12,
	KeyShift:     0x10,
	KeyEnter:     0x0D,
	KeyTab:       0x09,
	KeyEscape:    0x1B,
	KeyBackspace: 0x08,
	KeyF4:        0x73,
	"space":      0x20,
	"delete":     0x2E,
	"up":         0x26,
	"down":       0x28,
	"left":       0x25,
	"right":      0x27,
}

// keyStroke is what is actually sent for a key: either a virtual key code, or UTF-16 code
// units sent as unicode input when vk is zero.
type keyStroke struct {
	vk    uint16
	units []uint16
}

// keyTracker chooses the stroke for each key and remembers it while the key is down, so
// that a key is released exactly as it was pressed even if the modifiers changed in between.
type keyTracker struct {
	// vkScan maps a character to its virtual key on the current keyboard layout.
	vkScan func(r rune) (uint16, bool)
	down   map[Key]keyStroke
}

func newKeyTracker(vkScan func(r rune) (uint16, bool)) *keyTracker {
	return &keyTracker{vkScan: vkScan, down: make(map[Key]keyStroke)}
}

// strokeFor uses virtual key codes for named keys and for characters pressed together with
// ctrl or alt, since hotkeys only see virtual keys. Other characters are sent as unicode so
// that the keyboard layout and shift state do not matter.
func (k *keyTracker) strokeFor(key Key) (keyStroke, error) {
	if vk, ok := virtualKeys[key]; ok {
		return keyStroke{vk: vk}, nil
	}
	if !key.IsChar() {
		return keyStroke{}, fmt.Errorf("unknown key %q", key)
	}
	r := []rune(string(key))[0]
	_, ctrl := k.down[KeyCtrl]
	_, alt := k.down[KeyAlt]
	if ctrl || alt {
		vk, ok := k.vkScan(r)
		if !ok {
			return keyStroke{}, fmt.Errorf("no virtual key for %q", key)
		}
		return keyStroke{vk: vk}, nil
	}
	return keyStroke{units: utf16.Encode([]rune{r})}, nil
}

// press returns the stroke for pressing key and records it as down.
func (k *keyTracker) press(key Key) (keyStroke, error) {
	s, err := k.strokeFor(key)
	if err != nil {
		return keyStroke{}, err
	}
	k.down[key] = s
	return s, nil
}

// release returns the stroke key was pressed with, or the stroke it would get now if it
// is not down.
func (k *keyTracker) release(key Key) (keyStroke, error) {
	if s, ok := k.down[key]; ok {
		delete(k.down, key)
		return s, nil
	}
	return k.strokeFor(key)
}
