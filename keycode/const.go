package keycode

// Modifier key bitmasks as they appear in byte 0 of a boot report.
const (
	ModLeftCtrl   = 0x01
	ModLeftShift  = 0x02
	ModLeftAlt    = 0x04
	ModLeftGUI    = 0x08 // Windows/Command key
	ModRightCtrl  = 0x10
	ModRightShift = 0x20
	ModRightAlt   = 0x40
	ModRightGUI   = 0x80
)

// LED bitmasks of the host output report.
const (
	LEDNumLock    = 0x01
	LEDCapsLock   = 0x02
	LEDScrollLock = 0x04
	LEDCompose    = 0x08
	LEDKana       = 0x10
)

// HID Usage codes for keyboard keys (USB HID Keyboard/Keypad usage page)
const (
	KeyNone Code = 0x00

	// Letters A-Z
	KeyA Code = 0x04
	KeyB Code = 0x05
	KeyC Code = 0x06
	KeyD Code = 0x07
	KeyE Code = 0x08
	KeyF Code = 0x09
	KeyG Code = 0x0A
	KeyH Code = 0x0B
	KeyI Code = 0x0C
	KeyJ Code = 0x0D
	KeyK Code = 0x0E
	KeyL Code = 0x0F
	KeyM Code = 0x10
	KeyN Code = 0x11
	KeyO Code = 0x12
	KeyP Code = 0x13
	KeyQ Code = 0x14
	KeyR Code = 0x15
	KeyS Code = 0x16
	KeyT Code = 0x17
	KeyU Code = 0x18
	KeyV Code = 0x19
	KeyW Code = 0x1A
	KeyX Code = 0x1B
	KeyY Code = 0x1C
	KeyZ Code = 0x1D

	// Numbers 1-0 (top row)
	Key1 Code = 0x1E
	Key2 Code = 0x1F
	Key3 Code = 0x20
	Key4 Code = 0x21
	Key5 Code = 0x22
	Key6 Code = 0x23
	Key7 Code = 0x24
	Key8 Code = 0x25
	Key9 Code = 0x26
	Key0 Code = 0x27

	// Special keys
	KeyEnter      Code = 0x28
	KeyEscape     Code = 0x29
	KeyBackspace  Code = 0x2A
	KeyTab        Code = 0x2B
	KeySpace      Code = 0x2C
	KeyMinus      Code = 0x2D // - and _
	KeyEqual      Code = 0x2E // = and +
	KeyLeftBrace  Code = 0x2F // [ and {
	KeyRightBrace Code = 0x30 // ] and }
	KeyBackslash  Code = 0x31 // \ and |
	KeyNonUSHash  Code = 0x32 // Non-US # and ~
	KeySemicolon  Code = 0x33 // ; and :
	KeyApostrophe Code = 0x34 // ' and "
	KeyGrave      Code = 0x35 // ` and ~
	KeyComma      Code = 0x36 // , and <
	KeyPeriod     Code = 0x37 // . and >
	KeySlash      Code = 0x38 // / and ?
	KeyCapsLock   Code = 0x39

	// Function keys
	KeyF1  Code = 0x3A
	KeyF2  Code = 0x3B
	KeyF3  Code = 0x3C
	KeyF4  Code = 0x3D
	KeyF5  Code = 0x3E
	KeyF6  Code = 0x3F
	KeyF7  Code = 0x40
	KeyF8  Code = 0x41
	KeyF9  Code = 0x42
	KeyF10 Code = 0x43
	KeyF11 Code = 0x44
	KeyF12 Code = 0x45

	// Control keys
	KeyPrintScreen Code = 0x46
	KeyScrollLock  Code = 0x47
	KeyPause       Code = 0x48
	KeyInsert      Code = 0x49
	KeyHome        Code = 0x4A
	KeyPageUp      Code = 0x4B
	KeyDelete      Code = 0x4C
	KeyEnd         Code = 0x4D
	KeyPageDown    Code = 0x4E

	// Arrow keys
	KeyRight Code = 0x4F
	KeyLeft  Code = 0x50
	KeyDown  Code = 0x51
	KeyUp    Code = 0x52

	KeyNonUSBackslash Code = 0x64 // Non-US \ and |
	KeyApplication    Code = 0x65 // Application (Windows Menu key)

	KeyUndo Code = 0x7A

	// Modifier usages. They never occupy one of the six key slots of a
	// boot report; they map onto the modifier bitmask instead.
	KeyLeftCtrl   Code = 0xE0
	KeyLeftShift  Code = 0xE1
	KeyLeftAlt    Code = 0xE2
	KeyLeftGUI    Code = 0xE3
	KeyRightCtrl  Code = 0xE4
	KeyRightShift Code = 0xE5
	KeyRightAlt   Code = 0xE6
	KeyRightGUI   Code = 0xE7
)

var names = map[Code]string{
	KeyNone: "None",

	// Letters
	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F", KeyG: "G",
	KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L", KeyM: "M", KeyN: "N",
	KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R", KeyS: "S", KeyT: "T", KeyU: "U",
	KeyV: "V", KeyW: "W", KeyX: "X", KeyY: "Y", KeyZ: "Z",

	// Numbers
	Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",

	KeyEnter:      "Enter",
	KeyEscape:     "Escape",
	KeyBackspace:  "Backspace",
	KeyTab:        "Tab",
	KeySpace:      "Space",
	KeyMinus:      "Minus",
	KeyEqual:      "Equal",
	KeyLeftBrace:  "LeftBrace",
	KeyRightBrace: "RightBrace",
	KeyBackslash:  "Backslash",
	KeyNonUSHash:  "NonUSHash",
	KeySemicolon:  "Semicolon",
	KeyApostrophe: "Apostrophe",
	KeyGrave:      "Grave",
	KeyComma:      "Comma",
	KeyPeriod:     "Period",
	KeySlash:      "Slash",
	KeyCapsLock:   "CapsLock",

	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",

	KeyPrintScreen: "PrintScreen",
	KeyScrollLock:  "ScrollLock",
	KeyPause:       "Pause",
	KeyInsert:      "Insert",
	KeyHome:        "Home",
	KeyPageUp:      "PageUp",
	KeyDelete:      "Delete",
	KeyEnd:         "End",
	KeyPageDown:    "PageDown",

	KeyRight: "Right",
	KeyLeft:  "Left",
	KeyDown:  "Down",
	KeyUp:    "Up",

	KeyNonUSBackslash: "NonUSBackslash",
	KeyApplication:    "Application",
	KeyUndo:           "Undo",

	KeyLeftCtrl:   "LeftCtrl",
	KeyLeftShift:  "LeftShift",
	KeyLeftAlt:    "LeftAlt",
	KeyLeftGUI:    "LeftGUI",
	KeyRightCtrl:  "RightCtrl",
	KeyRightShift: "RightShift",
	KeyRightAlt:   "RightAlt",
	KeyRightGUI:   "RightGUI",
}
