package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a layout-independent virtual key code. Values mirror the GLFW key
// tokens so a glfw.Key converts directly.
type Key int

// ScanCode is a layout-dependent physical key identifier as reported by the
// windowing system. Zero means the event carried no scan code.
type ScanCode int

// Code identifies a key in either keyspace. Key and ScanCode implement it.
type Code interface {
	held(g *generation) bool
	fmt.Stringer
}

const NoScanCode ScanCode = 0

// Virtual key codes
const (
	KeyUnknown Key = -1

	KeySpace        Key = 32
	KeyApostrophe   Key = 39
	KeyComma        Key = 44
	KeyMinus        Key = 45
	KeyPeriod       Key = 46
	KeySlash        Key = 47
	Key0            Key = 48
	Key1            Key = 49
	Key2            Key = 50
	Key3            Key = 51
	Key4            Key = 52
	Key5            Key = 53
	Key6            Key = 54
	Key7            Key = 55
	Key8            Key = 56
	Key9            Key = 57
	KeySemicolon    Key = 59
	KeyEqual        Key = 61
	KeyA            Key = 65
	KeyB            Key = 66
	KeyC            Key = 67
	KeyD            Key = 68
	KeyE            Key = 69
	KeyF            Key = 70
	KeyG            Key = 71
	KeyH            Key = 72
	KeyI            Key = 73
	KeyJ            Key = 74
	KeyK            Key = 75
	KeyL            Key = 76
	KeyM            Key = 77
	KeyN            Key = 78
	KeyO            Key = 79
	KeyP            Key = 80
	KeyQ            Key = 81
	KeyR            Key = 82
	KeyS            Key = 83
	KeyT            Key = 84
	KeyU            Key = 85
	KeyV            Key = 86
	KeyW            Key = 87
	KeyX            Key = 88
	KeyY            Key = 89
	KeyZ            Key = 90
	KeyLeftBracket  Key = 91
	KeyBackslash    Key = 92
	KeyRightBracket Key = 93
	KeyGraveAccent  Key = 96

	KeyEscape       Key = 256
	KeyEnter        Key = 257
	KeyTab          Key = 258
	KeyBackspace    Key = 259
	KeyInsert       Key = 260
	KeyDelete       Key = 261
	KeyArrowRight   Key = 262
	KeyArrowLeft    Key = 263
	KeyArrowDown    Key = 264
	KeyArrowUp      Key = 265
	KeyPageUp       Key = 266
	KeyPageDown     Key = 267
	KeyHome         Key = 268
	KeyEnd          Key = 269
	KeyF1           Key = 290
	KeyF2           Key = 291
	KeyF3           Key = 292
	KeyF4           Key = 293
	KeyF5           Key = 294
	KeyF6           Key = 295
	KeyF7           Key = 296
	KeyF8           Key = 297
	KeyF9           Key = 298
	KeyF10          Key = 299
	KeyF11          Key = 300
	KeyF12          Key = 301
	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyLeftAlt      Key = 342
	KeyLeftSuper    Key = 343
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
	KeyRightAlt     Key = 346
	KeyRightSuper   Key = 347
)

var keyNames = map[Key]string{
	KeySpace: "Space", KeyApostrophe: "Apostrophe", KeyComma: "Comma",
	KeyMinus: "Minus", KeyPeriod: "Period", KeySlash: "Slash",
	KeySemicolon: "Semicolon", KeyEqual: "Equal",
	KeyLeftBracket: "LeftBracket", KeyBackslash: "Backslash",
	KeyRightBracket: "RightBracket", KeyGraveAccent: "GraveAccent",
	KeyEscape: "Escape", KeyEnter: "Enter", KeyTab: "Tab",
	KeyBackspace: "Backspace", KeyInsert: "Insert", KeyDelete: "Delete",
	KeyArrowRight: "Right", KeyArrowLeft: "Left", KeyArrowDown: "Down", KeyArrowUp: "Up",
	KeyPageUp: "PageUp", KeyPageDown: "PageDown", KeyHome: "Home", KeyEnd: "End",
	KeyLeftShift: "LeftShift", KeyLeftControl: "LeftControl",
	KeyLeftAlt: "LeftAlt", KeyLeftSuper: "LeftSuper",
	KeyRightShift: "RightShift", KeyRightControl: "RightControl",
	KeyRightAlt: "RightAlt", KeyRightSuper: "RightSuper",
}

var keysByName map[string]Key

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + (k - KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + (k - Key0)))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		keyNames[k] = "F" + strconv.Itoa(int(k-KeyF1)+1)
	}

	keysByName = make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		keysByName[strings.ToLower(name)] = k
	}
}

func (k Key) held(g *generation) bool { return g.keys[k] }

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

func (s ScanCode) held(g *generation) bool { return g.scans[s] }

func (s ScanCode) String() string {
	return "scan:" + strconv.Itoa(int(s))
}

// ParseCode resolves a key name ("W", "LeftShift", "f5") or a scan code
// written as "scan:<n>". Names are case-insensitive.
func ParseCode(name string) (Code, error) {
	name = strings.TrimSpace(name)
	if rest, ok := strings.CutPrefix(strings.ToLower(name), "scan:"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%q: invalid scan code", name)
		}
		return ScanCode(n), nil
	}
	if k, ok := keysByName[strings.ToLower(name)]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("%q: unknown key name", name)
}
