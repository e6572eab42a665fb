package keyboard

import (
	"io"

	"github.com/Alia5/matrixfw/keycode"
)

// LEDState represents the state of keyboard LEDs controlled by the host.
type LEDState struct {
	NumLock    bool
	CapsLock   bool
	ScrollLock bool
	Compose    bool
	Kana       bool
}

// UnmarshalBinary decodes a 1-byte LED bitmask into LEDState.
func (st *LEDState) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return io.ErrUnexpectedEOF
	}
	b := data[0]
	st.NumLock = b&keycode.LEDNumLock != 0
	st.CapsLock = b&keycode.LEDCapsLock != 0
	st.ScrollLock = b&keycode.LEDScrollLock != 0
	st.Compose = b&keycode.LEDCompose != 0
	st.Kana = b&keycode.LEDKana != 0
	return nil
}
