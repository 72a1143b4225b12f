package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Follow)
	assert.True(t, cfg.ZoomEnabled)
	assert.Equal(t, float32(5), cfg.Zoom.Min)
	assert.Equal(t, float32(50), cfg.Zoom.Max)
	assert.Equal(t, float32(0.3), cfg.Zoom.Speed)
	assert.True(t, cfg.CursorEnabled)
	assert.Equal(t, float32(0.2), cfg.CursorMoveSpeed)
	assert.Equal(t, float32(200), cfg.CursorMaxSpeed)
	assert.Equal(t, float32(0.01), cfg.CursorRotateSpeed)
	assert.Equal(t, [2]float32{30, 30}, cfg.CursorEdgeMargin)
	assert.Equal(t, float32(5), cfg.Height.Min)
	assert.Equal(t, float32(50), cfg.Height.Max)
	assert.True(t, cfg.HeightKeysEnabled)
	assert.Equal(t, input.KeyBinding(common.KeyX), cfg.HeightRiseKey)
	assert.Equal(t, input.KeyBinding(common.KeyZ), cfg.HeightLowerKey)
	assert.Equal(t, input.ButtonBinding(common.MouseButtonRight), cfg.RotateKey)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"inverted zoom", func(c *Config) { c.Zoom.Min, c.Zoom.Max = 50, 5 }},
		{"negative zoom", func(c *Config) { c.Zoom.Min = -1 }},
		{"zero zoom speed", func(c *Config) { c.Zoom.Speed = 0 }},
		{"zoom speed above one", func(c *Config) { c.Zoom.Speed = 1.5 }},
		{"negative zoom step", func(c *Config) { c.Zoom.Step = -2 }},
		{"inverted height", func(c *Config) { c.Height.Min, c.Height.Max = 10, 1 }},
		{"negative height speed", func(c *Config) { c.Height.Speed = -1 }},
		{"negative move speed", func(c *Config) { c.CursorMoveSpeed = -0.2 }},
		{"negative max speed", func(c *Config) { c.CursorMaxSpeed = -1 }},
		{"negative rotate speed", func(c *Config) { c.CursorRotateSpeed = -0.01 }},
		{"negative margin", func(c *Config) { c.CursorEdgeMargin[1] = -30 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("equal bounds are valid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Zoom.Min, cfg.Zoom.Max = 20, 20
		cfg.Height.Min, cfg.Height.Max = 10, 10
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfigYAML(t *testing.T) {
	cfg := DefaultConfig()
	doc := `
follow: true
zoom:
  min: 2
  max: 80
  speed: 0.5
  step: 4
height_rise_key: KeyQ
rotate_key: MouseMiddle
cursor_edge_margin: [10, 20]
`
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))

	assert.True(t, cfg.Follow)
	assert.Equal(t, Zoom{Min: 2, Max: 80, Speed: 0.5, Step: 4}, cfg.Zoom)
	assert.Equal(t, input.KeyBinding(common.KeyQ), cfg.HeightRiseKey)
	assert.Equal(t, input.ButtonBinding(common.MouseButtonMiddle), cfg.RotateKey)
	assert.Equal(t, [2]float32{10, 20}, cfg.CursorEdgeMargin)
	// untouched fields keep their defaults
	assert.Equal(t, input.KeyBinding(common.KeyZ), cfg.HeightLowerKey)
	assert.Equal(t, float32(200), cfg.CursorMaxSpeed)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Move", ModeMove.String())
	assert.Equal(t, "Rotate", ModeRotate.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
