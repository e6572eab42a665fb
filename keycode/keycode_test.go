package keycode_test

import (
	"testing"

	"github.com/Alia5/matrixfw/keycode"
	"github.com/stretchr/testify/assert"
)

func TestModifierBits(t *testing.T) {
	cases := []struct {
		code keycode.Code
		bit  uint8
	}{
		{keycode.KeyLeftCtrl, keycode.ModLeftCtrl},
		{keycode.KeyLeftShift, keycode.ModLeftShift},
		{keycode.KeyLeftAlt, keycode.ModLeftAlt},
		{keycode.KeyLeftGUI, keycode.ModLeftGUI},
		{keycode.KeyRightCtrl, keycode.ModRightCtrl},
		{keycode.KeyRightShift, keycode.ModRightShift},
		{keycode.KeyRightAlt, keycode.ModRightAlt},
		{keycode.KeyRightGUI, keycode.ModRightGUI},
	}
	for _, c := range cases {
		t.Run(c.code.String(), func(t *testing.T) {
			assert.True(t, c.code.IsModifier())
			assert.Equal(t, c.bit, c.code.ModifierBit())
		})
	}
}

func TestNonModifiers(t *testing.T) {
	for _, c := range []keycode.Code{keycode.KeyNone, keycode.KeyA, keycode.KeyGrave, keycode.KeyUndo, 0xDF, 0xE8} {
		assert.False(t, c.IsModifier(), "code %s", c)
		assert.Zero(t, c.ModifierBit(), "code %s", c)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "Grave", keycode.KeyGrave.String())
	assert.Equal(t, "LeftShift", keycode.KeyLeftShift.String())
	assert.Equal(t, "0xA5", keycode.Code(0xA5).String())
}
