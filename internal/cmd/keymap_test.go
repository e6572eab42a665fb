package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Alia5/matrixfw/device/keyboard"
	"github.com/Alia5/matrixfw/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeymapPrintsAllLayers(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&Keymap{Layer: -1, Out: &out}).Run())

	s := out.String()
	for _, name := range []string{"layer 0 (base)", "layer 1 (shift)", "layer 2 (mod3)", "layer 3 (mod4)", "layer 4 (fn)"} {
		assert.Contains(t, s, name)
	}
	assert.Contains(t, s, "RightAlt+Minus")
	assert.Contains(t, s, "L2")
}

func TestKeymapSingleLayer(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&Keymap{Layer: 4, Out: &out}).Run())

	s := out.String()
	assert.Equal(t, 1, strings.Count(s, "layer "))
	assert.Contains(t, s, "F12")
	assert.Contains(t, s, "___")

	err := (&Keymap{Layer: 9, Out: &out}).Run()
	assert.ErrorIs(t, err, layout.ErrBadLayer)
}

func TestDescribe(t *testing.T) {
	var out bytes.Buffer
	d := &Describe{USB: keyboard.Config{QueueDepth: 1, VendorID: 0x1209, ProductID: 0x8000}, Out: &out}
	require.NoError(t, d.Run())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "device        12 01 00 02"))
	assert.Contains(t, lines[0], "40 09 12 00 80")
	assert.True(t, strings.HasPrefix(lines[1], "configuration 09 02 29 00 01"))
	assert.True(t, strings.HasPrefix(lines[2], "report        05 01 09 06"))
	assert.Equal(t, "string 0      04 03 09 04", lines[3])
	assert.Contains(t, lines[4], `"matrixfw"`)
}
