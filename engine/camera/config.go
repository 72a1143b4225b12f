package camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
)

// Pitch is the fixed downward tilt in radians applied to the follow orientation (about 37 degrees).
const Pitch float32 = 0.65

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid camera config")

// Mode is the interactive state of the pointer subsystem.
type Mode uint8

const (
	// ModeMove is the default mode: edge panning is active.
	ModeMove Mode = iota
	// ModeRotate is active exactly while the rotate binding is held.
	ModeRotate
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "Move"
	case ModeRotate:
		return "Rotate"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Zoom bounds the horizontal distance of the camera behind its focus point.
type Zoom struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
	// Speed is the fraction of the remaining distance to the zoom target covered each frame, in (0, 1].
	Speed float32 `yaml:"speed"`
	// Step is the change of the zoom target per scroll notch, in world units.
	Step float32 `yaml:"step"`
}

// Height bounds the vertical offset of the camera above its focus point.
type Height struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
	// Speed is the rate of the height keys in world units per second.
	Speed float32 `yaml:"speed"`
}

// Config is the user-tunable part of a top-down camera.
type Config struct {
	// Follow makes the camera re-center on its target every frame.
	Follow bool `yaml:"follow"`

	CursorEnabled bool `yaml:"cursor_enabled"`
	// CursorMoveSpeed scales the edge-pan velocity.
	CursorMoveSpeed float32 `yaml:"cursor_move_speed"`
	// CursorMaxSpeed is the edge-pan speed with the pointer on the literal screen edge.
	CursorMaxSpeed float32 `yaml:"cursor_max_speed"`
	// CursorEdgeMargin is the width of the edge-pan band in pixels, horizontal then vertical.
	CursorEdgeMargin [2]float32 `yaml:"cursor_edge_margin,flow"`
	// CursorRotateSpeed is the yaw in radians per pixel of horizontal drag.
	CursorRotateSpeed float32 `yaml:"cursor_rotate_speed"`

	ZoomEnabled bool `yaml:"zoom_enabled"`
	Zoom        Zoom `yaml:"zoom"`

	Height            Height        `yaml:"height"`
	HeightKeysEnabled bool          `yaml:"height_keys_enabled"`
	HeightRiseKey     input.Binding `yaml:"height_rise_key"`
	HeightLowerKey    input.Binding `yaml:"height_lower_key"`

	// RotateKey switches the camera to ModeRotate while held.
	RotateKey input.Binding `yaml:"rotate_key"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Follow:            false,
		CursorEnabled:     true,
		CursorMoveSpeed:   0.2,
		CursorMaxSpeed:    200,
		CursorEdgeMargin:  [2]float32{30, 30},
		CursorRotateSpeed: 0.01,
		ZoomEnabled:       true,
		Zoom:              Zoom{Min: 5, Max: 50, Speed: 0.3, Step: 2},
		Height:            Height{Min: 5, Max: 50, Speed: 10},
		HeightKeysEnabled: true,
		HeightRiseKey:     input.KeyBinding(common.KeyX),
		HeightLowerKey:    input.KeyBinding(common.KeyZ),
		RotateKey:         input.ButtonBinding(common.MouseButtonRight),
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
//
// Returns:
//   - error: nil if the config is usable
func (c Config) Validate() error {
	switch {
	case c.Zoom.Min > c.Zoom.Max:
		return fmt.Errorf("%w: zoom.min %v > zoom.max %v", ErrInvalidConfig, c.Zoom.Min, c.Zoom.Max)
	case c.Zoom.Min < 0:
		return fmt.Errorf("%w: zoom.min %v is negative", ErrInvalidConfig, c.Zoom.Min)
	case c.Zoom.Speed <= 0 || c.Zoom.Speed > 1:
		return fmt.Errorf("%w: zoom.speed %v outside (0, 1]", ErrInvalidConfig, c.Zoom.Speed)
	case c.Zoom.Step < 0:
		return fmt.Errorf("%w: zoom.step %v is negative", ErrInvalidConfig, c.Zoom.Step)
	case c.Height.Min > c.Height.Max:
		return fmt.Errorf("%w: height.min %v > height.max %v", ErrInvalidConfig, c.Height.Min, c.Height.Max)
	case c.Height.Speed < 0:
		return fmt.Errorf("%w: height.speed %v is negative", ErrInvalidConfig, c.Height.Speed)
	case c.CursorMoveSpeed < 0:
		return fmt.Errorf("%w: cursor_move_speed %v is negative", ErrInvalidConfig, c.CursorMoveSpeed)
	case c.CursorMaxSpeed < 0:
		return fmt.Errorf("%w: cursor_max_speed %v is negative", ErrInvalidConfig, c.CursorMaxSpeed)
	case c.CursorRotateSpeed < 0:
		return fmt.Errorf("%w: cursor_rotate_speed %v is negative", ErrInvalidConfig, c.CursorRotateSpeed)
	case c.CursorEdgeMargin[0] < 0 || c.CursorEdgeMargin[1] < 0:
		return fmt.Errorf("%w: cursor_edge_margin %v is negative", ErrInvalidConfig, c.CursorEdgeMargin)
	}
	return nil
}

// followOffset is the vertical and depth offset of the follow placement.
func (c Config) followOffset() float32 {
	return c.Height.Max / 3
}
