package common

// Key is a virtual key code for cross-platform input handling.
// Values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key uint32

const (
	KeyW         Key = 87  // W key (ASCII)
	KeyA         Key = 65  // A key (ASCII)
	KeyS         Key = 83  // S key (ASCII)
	KeyD         Key = 68  // D key (ASCII)
	KeyQ         Key = 81  // Q key (ASCII)
	KeyE         Key = 69  // E key (ASCII)
	KeyF         Key = 70  // F key (ASCII)
	KeyR         Key = 82  // R key (ASCII)
	KeyX         Key = 88  // X key (ASCII)
	KeyZ         Key = 90  // Z key (ASCII)
	KeySpace     Key = 32  // Spacebar (ASCII)
	KeyBackspace Key = 259 // Backspace key (GLFW)
	KeyEsc       Key = 256 // Escape key (GLFW)

	KeyRight Key = 262 // Right arrow (GLFW)
	KeyLeft  Key = 263 // Left arrow (GLFW)
	KeyDown  Key = 264 // Down arrow (GLFW)
	KeyUp    Key = 265 // Up arrow (GLFW)

	KeyPageUp   Key = 266 // Page Up (GLFW)
	KeyPageDown Key = 267 // Page Down (GLFW)

	KeyLeftShift  Key = 340 // Left Shift (GLFW)
	KeyRightShift Key = 344 // Right Shift (GLFW)
)

// MouseButton identifies a pointer button. Values match GLFW mouse button codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButton
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
	MouseButton4      MouseButton = 3
	MouseButton5      MouseButton = 4
)

// keyNames maps the named keys to their config-file spelling.
var keyNames = map[Key]string{
	KeyW: "KeyW", KeyA: "KeyA", KeyS: "KeyS", KeyD: "KeyD",
	KeyQ: "KeyQ", KeyE: "KeyE", KeyF: "KeyF", KeyR: "KeyR",
	KeyX: "KeyX", KeyZ: "KeyZ",
	KeySpace:      "Space",
	KeyBackspace:  "Backspace",
	KeyEsc:        "Escape",
	KeyRight:      "ArrowRight",
	KeyLeft:       "ArrowLeft",
	KeyDown:       "ArrowDown",
	KeyUp:         "ArrowUp",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyLeftShift:  "ShiftLeft",
	KeyRightShift: "ShiftRight",
}

var buttonNames = map[MouseButton]string{
	MouseButtonLeft:   "MouseLeft",
	MouseButtonRight:  "MouseRight",
	MouseButtonMiddle: "MouseMiddle",
	MouseButton4:      "MouseBack",
	MouseButton5:      "MouseForward",
}

// KeyName returns the config-file name of a key. Printable ASCII letters and digits
// without an explicit entry are spelled "Key<char>" and "Digit<char>".
//
// Parameters:
//   - k: the key code
//
// Returns:
//   - string: the key name
//   - bool: false if the key has no name
func KeyName(k Key) (string, bool) {
	if name, ok := keyNames[k]; ok {
		return name, true
	}
	switch {
	case k >= 'A' && k <= 'Z':
		return "Key" + string(rune(k)), true
	case k >= '0' && k <= '9':
		return "Digit" + string(rune(k)), true
	}
	return "", false
}

// ParseKey is the inverse of KeyName.
//
// Parameters:
//   - name: the key name (e.g. "KeyX", "Digit1", "Escape")
//
// Returns:
//   - Key: the key code
//   - bool: false if the name is unknown
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	if len(name) == 4 && name[:3] == "Key" && name[3] >= 'A' && name[3] <= 'Z' {
		return Key(name[3]), true
	}
	if len(name) == 6 && name[:5] == "Digit" && name[5] >= '0' && name[5] <= '9' {
		return Key(name[5]), true
	}
	return 0, false
}

// ButtonName returns the config-file name of a mouse button.
func ButtonName(b MouseButton) (string, bool) {
	name, ok := buttonNames[b]
	return name, ok
}

// ParseButton is the inverse of ButtonName.
func ParseButton(name string) (MouseButton, bool) {
	for b, n := range buttonNames {
		if n == name {
			return b, true
		}
	}
	return 0, false
}
