// package input turns raw window events into per-frame snapshots and names the keys and buttons that camera
// controls can be bound to.
package input

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"gopkg.in/yaml.v3"
)

// ErrUnknownBinding is returned when a binding name does not match any key or mouse button.
var ErrUnknownBinding = errors.New("unknown input binding")

// Kind discriminates the device a Binding refers to.
type Kind uint8

const (
	// KindKey is a keyboard key binding.
	KindKey Kind = iota + 1
	// KindMouseButton is a pointer button binding.
	KindMouseButton
)

// Binding identifies exactly one keyboard key or one mouse button.
// Bindings are comparable and can be used directly as map keys.
type Binding struct {
	kind Kind
	code uint32
}

// KeyBinding returns the binding for a keyboard key.
func KeyBinding(k common.Key) Binding {
	return Binding{kind: KindKey, code: uint32(k)}
}

// ButtonBinding returns the binding for a mouse button.
func ButtonBinding(b common.MouseButton) Binding {
	return Binding{kind: KindMouseButton, code: uint32(b)}
}

// ParseBinding parses the text form of a binding, e.g. "KeyX" or "MouseRight".
//
// Parameters:
//   - name: the binding name
//
// Returns:
//   - Binding: the parsed binding
//   - error: ErrUnknownBinding (wrapped) if the name is not recognized
func ParseBinding(name string) (Binding, error) {
	if b, ok := common.ParseButton(name); ok {
		return ButtonBinding(b), nil
	}
	if k, ok := common.ParseKey(name); ok {
		return KeyBinding(k), nil
	}
	return Binding{}, fmt.Errorf("%w: %q", ErrUnknownBinding, name)
}

// Kind returns which device the binding refers to. The zero Binding has kind 0.
func (b Binding) Kind() Kind {
	return b.kind
}

// AsKey narrows the binding to a key.
//
// Returns:
//   - common.Key: the key code
//   - bool: false if the binding is not a key binding
func (b Binding) AsKey() (common.Key, bool) {
	if b.kind != KindKey {
		return 0, false
	}
	return common.Key(b.code), true
}

// AsButton narrows the binding to a mouse button.
//
// Returns:
//   - common.MouseButton: the button
//   - bool: false if the binding is not a mouse button binding
func (b Binding) AsButton() (common.MouseButton, bool) {
	if b.kind != KindMouseButton {
		return 0, false
	}
	return common.MouseButton(b.code), true
}

// String returns the config-file spelling of the binding.
func (b Binding) String() string {
	switch b.kind {
	case KindKey:
		if name, ok := common.KeyName(common.Key(b.code)); ok {
			return name
		}
		return fmt.Sprintf("Key(%d)", b.code)
	case KindMouseButton:
		if name, ok := common.ButtonName(common.MouseButton(b.code)); ok {
			return name
		}
		return fmt.Sprintf("MouseButton(%d)", b.code)
	}
	return "None"
}

// MarshalYAML implements yaml.Marshaler.
func (b Binding) MarshalYAML() (any, error) {
	if b.kind == 0 {
		return nil, fmt.Errorf("%w: empty binding", ErrUnknownBinding)
	}
	return b.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Binding) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("input: decode binding: %w", err)
	}
	parsed, err := ParseBinding(name)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
