// Package keymap holds the reference layout of the 10x8 split board: a
// Neo-style base layer with momentary symbol (Mod3), navigation/numpad
// (Mod4) and function layers.
package keymap

import (
	. "github.com/Alia5/matrixfw/keycode"
	"github.com/Alia5/matrixfw/layout"
)

const (
	Rows = 10
	Cols = 8
)

// Layer ids.
const (
	Base = iota
	Shift
	Mod3
	Mod4
	Fn
)

var (
	k   = layout.K
	m   = layout.M
	s   = layout.S
	l   = layout.L
	___ = layout.Trans
	xxx = layout.NoOp
)

// ralt is the AltGr chord used by the symbol layers.
func ralt(c Code) layout.Action {
	return m(KeyRightAlt, c)
}

func transRow() []layout.Action {
	return []layout.Action{xxx, ___, ___, ___, ___, ___, ___, ___}
}

// Layers returns a fresh copy of the reference action table.
func Layers() [][][]layout.Action {
	return [][][]layout.Action{
		{
			// Base
			{xxx, k(KeyEscape), k(KeyGrave), k(Key1), k(Key2), k(Key3), k(Key4), k(Key5)},
			{xxx, k(KeyTab), k(KeyMinus), k(KeyX), k(KeyV), k(KeyL), k(KeyC), k(KeyW)},
			{xxx, l(Mod3), xxx, k(KeyU), k(KeyI), k(KeyA), k(KeyE), k(KeyO)},
			{xxx, k(KeyLeftShift), k(KeyLeftBrace), k(KeySemicolon), k(KeyApostrophe), k(KeyP), k(KeyY), k(KeyBackspace)},
			{xxx, k(KeyLeftCtrl), l(Fn), xxx, xxx, k(KeyLeftGUI), k(KeySpace), k(KeyLeftAlt)},
			{xxx, k(Key6), k(Key7), k(Key8), k(Key9), k(Key0), k(KeyT), k(KeyPageUp)},
			{xxx, k(KeyK), k(KeyH), k(KeyG), k(KeyF), k(KeyQ), k(KeyZ), k(KeyPageDown)},
			{xxx, k(KeyS), k(KeyN), k(KeyR), k(KeyT), k(KeyD), xxx, l(Mod3)},
			{xxx, xxx, k(KeyB), k(KeyM), k(KeyComma), k(KeyPeriod), k(KeyJ), k(KeyRightShift)},
			{xxx, k(KeyRightShift), k(KeyEnter), l(Mod4), xxx, xxx, l(Fn), k(KeyRightCtrl)},
		},
		{
			// Shift
			{xxx, k(KeyEscape), s(KeyGrave), k(Key1), k(Key2), k(Key3), k(Key4), k(Key5)},
			{xxx, k(KeyTab), k(KeyMinus), s(KeyX), s(KeyV), s(KeyL), s(KeyC), s(KeyW)},
			{xxx, ___, xxx, s(KeyU), s(KeyI), s(KeyA), s(KeyE), s(KeyO)},
			{xxx, ___, s(KeyLeftBrace), s(KeySemicolon), s(KeyApostrophe), s(KeyP), s(KeyY), k(KeyBackspace)},
			transRow(),
			{xxx, k(Key6), k(Key7), k(Key8), k(Key9), k(Key0), k(KeyT), k(KeyPageUp)},
			{xxx, s(KeyK), s(KeyH), s(KeyG), s(KeyF), s(KeyQ), s(KeyZ), k(KeyPageDown)},
			{xxx, s(KeyS), s(KeyN), s(KeyR), s(KeyT), s(KeyD), xxx, ___},
			{xxx, xxx, s(KeyB), s(KeyM), s(KeyComma), s(KeyPeriod), s(KeyJ), ___},
			transRow(),
		},
		{
			// Mod3: symbols
			transRow(),
			{xxx, ___, ___, ralt(KeyPeriod), s(KeySlash), ralt(Key8), ralt(Key9), k(KeyGrave)},
			{xxx, ___, xxx, ralt(KeyMinus), s(Key7), ralt(Key7), ralt(Key0), s(KeyRightBrace)},
			{xxx, ___, k(KeyNonUSHash), s(Key4), ralt(KeyNonUSBackslash), ralt(KeyRightBrace), s(KeyEqual), k(KeyBackspace)},
			transRow(),
			transRow(),
			{xxx, s(Key1), k(KeyNonUSBackslash), s(KeyNonUSBackslash), s(Key0), s(Key6), ralt(KeyQ), k(KeyPageDown)},
			{xxx, s(KeyMinus), s(Key8), s(Key9), k(KeySlash), s(KeyPeriod), xxx, ___},
			{xxx, xxx, k(KeyRightBrace), s(Key5), s(Key2), s(KeyNonUSHash), s(KeyComma), ___},
			transRow(),
		},
		{
			// Mod4: navigation and numpad
			transRow(),
			{xxx, ___, ___, k(KeyPageUp), k(KeyBackspace), k(KeyUp), k(KeyDelete), k(KeyDelete)},
			{xxx, ___, xxx, k(KeyHome), k(KeyLeft), k(KeyDown), k(KeyRight), k(KeyEnd)},
			{xxx, ___, k(KeyEscape), k(KeyTab), k(KeyInsert), k(KeyEnter), k(KeyUndo), ___},
			{xxx, ___, ___, ___, ___, ___, k(Key0), ___},
			transRow(),
			{xxx, ralt(Key1), k(Key7), k(Key8), k(Key9), k(KeyRightBrace), ___, ___},
			{xxx, ralt(KeyMinus), k(Key4), k(Key5), k(Key6), k(KeyComma), xxx, ___},
			{xxx, xxx, s(KeyPeriod), k(Key1), k(Key2), k(Key3), s(KeyComma), ___},
			{xxx, ___, s(KeyPeriod), k(Key1), k(Key2), k(Key3), s(KeyComma), ___},
		},
		{
			// Fn
			{xxx, k(KeyEscape), ___, k(KeyF1), k(KeyF2), k(KeyF3), k(KeyF4), k(KeyF5)},
			{xxx, k(KeyF6), k(KeyF7), k(KeyF8), k(KeyF9), k(KeyF10), k(KeyF11), k(KeyF12)},
			transRow(),
			transRow(),
			transRow(),
			transRow(),
			transRow(),
			transRow(),
			transRow(),
			transRow(),
		},
	}
}

// New validates and returns the reference layout.
func New() (*layout.Layout, error) {
	return layout.New(Rows, Cols, Layers())
}
