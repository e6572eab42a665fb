// Package keycode defines USB HID keyboard usage codes and the split between
// modifier usages and ordinary keys used when packing boot reports.
package keycode

import "fmt"

// Code is a usage ID on the HID Keyboard/Keypad page (0x07).
type Code uint8

// IsModifier reports whether c is one of the eight modifier usages
// (LeftCtrl through RightGUI).
func (c Code) IsModifier() bool {
	return c >= KeyLeftCtrl && c <= KeyRightGUI
}

// ModifierBit returns the boot report bitmask for a modifier usage, or 0 for
// any other code.
func (c Code) ModifierBit() uint8 {
	if !c.IsModifier() {
		return 0
	}
	return 1 << (c - KeyLeftCtrl)
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("0x%02X", uint8(c))
}
