// Package report packs held keycodes into the 8-byte boot keyboard report.
package report

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/Alia5/matrixfw/keycode"
)

const (
	// Size of a boot keyboard input report in bytes.
	Size = 8
	// MaxKeys is the number of non-modifier key slots.
	MaxKeys = 6
)

// Report is a boot keyboard input report.
//
// Report layout (8 bytes):
//
//	Byte 0: Modifiers (LCtrl, LShift, LAlt, LGui, RCtrl, RShift, RAlt, RGui)
//	Byte 1: Reserved (0x00)
//	Bytes 2-7: Up to six key usage codes, zero padded
type Report struct {
	Modifiers uint8
	Keys      [MaxKeys]keycode.Code
}

// Build folds codes into a report. Modifier usages set their bit; other
// codes take the key slots in sequence order. Once the slots are full the
// remaining codes are left out.
func Build(codes iter.Seq[keycode.Code]) Report {
	var r Report
	n := 0
	for c := range codes {
		if c.IsModifier() {
			r.Modifiers |= c.ModifierBit()
			continue
		}
		if c == keycode.KeyNone || r.Pressed(c) || n == MaxKeys {
			continue
		}
		r.Keys[n] = c
		n++
	}
	return r
}

// Pressed reports whether c is present in the report.
func (r Report) Pressed(c keycode.Code) bool {
	if c.IsModifier() {
		return r.Modifiers&c.ModifierBit() != 0
	}
	if c == keycode.KeyNone {
		return false
	}
	for _, k := range r.Keys {
		if k == c {
			return true
		}
	}
	return false
}

// Bytes encodes the report.
func (r Report) Bytes() [Size]byte {
	var b [Size]byte
	b[0] = r.Modifiers
	b[1] = 0x00 // Reserved
	for i, k := range r.Keys {
		b[2+i] = uint8(k)
	}
	return b
}

// MarshalBinary encodes the report into a new 8-byte slice.
func (r Report) MarshalBinary() ([]byte, error) {
	b := r.Bytes()
	return b[:], nil
}

// UnmarshalBinary decodes an 8-byte report. The reserved byte is ignored.
func (r *Report) UnmarshalBinary(data []byte) error {
	if len(data) < Size {
		return io.ErrUnexpectedEOF
	}
	r.Modifiers = data[0]
	for i := range r.Keys {
		r.Keys[i] = keycode.Code(data[2+i])
	}
	return nil
}

func (r Report) String() string {
	var parts []string
	for bit := 0; bit < 8; bit++ {
		if r.Modifiers&(1<<bit) != 0 {
			parts = append(parts, (keycode.KeyLeftCtrl + keycode.Code(bit)).String())
		}
	}
	for _, k := range r.Keys {
		if k != keycode.KeyNone {
			parts = append(parts, k.String())
		}
	}
	if len(parts) == 0 {
		return "[]"
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, " "))
}
