// Package config loads the settings file of a top-down application: window, engine loop and camera sections
// in YAML. Missing sections and fields keep their defaults. Settings are only ever read; nothing is written back.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
	"gopkg.in/yaml.v3"
)

// ErrNoPath is returned when a settings path is required but empty.
var ErrNoPath = errors.New("config: no settings path")

// Default window and engine values.
const (
	DefaultTitle    = "oxy top-down"
	DefaultWidth    = 1280
	DefaultHeight   = 720
	DefaultTickRate = 60.0
)

// WindowSettings configures the application window.
type WindowSettings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// EngineSettings configures the engine loops.
type EngineSettings struct {
	// TickRate is the update rate in ticks per second.
	TickRate float64 `yaml:"tick_rate"`
	// RenderFrameLimit caps the render loop in frames per second; 0 is uncapped.
	RenderFrameLimit float64 `yaml:"render_frame_limit"`
	// VSync selects vertical-blank presentation.
	VSync bool `yaml:"vsync"`
	// Profiling enables the periodic profiler log line.
	Profiling bool `yaml:"profiling"`
	// ComputeWorkers sizes the scene worker pool; 0 picks a default from the CPU count.
	ComputeWorkers int `yaml:"compute_workers"`
}

// Settings is the whole settings file.
type Settings struct {
	Window WindowSettings `yaml:"window"`
	Engine EngineSettings `yaml:"engine"`
	Camera camera.Config  `yaml:"camera"`
}

// Default returns the settings used when no file is given.
//
// Returns:
//   - Settings: the defaults
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Title:  DefaultTitle,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Engine: EngineSettings{
			TickRate: DefaultTickRate,
			VSync:    true,
		},
		Camera: camera.DefaultConfig(),
	}
}

// Parse decodes settings from YAML on top of the defaults and validates them.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Settings: the decoded settings
//   - error: a decode error, or camera.ErrInvalidConfig (wrapped) for an invalid camera section
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	// explicit zeros mean "use the default"
	s.Window.Title = common.Coalesce(s.Window.Title, DefaultTitle)
	s.Window.Width = common.Coalesce(s.Window.Width, DefaultWidth)
	s.Window.Height = common.Coalesce(s.Window.Height, DefaultHeight)
	s.Engine.TickRate = common.Coalesce(s.Engine.TickRate, DefaultTickRate)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads and parses a settings file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Settings: the decoded settings
//   - error: ErrNoPath, a read error, or any Parse error
func Load(path string) (Settings, error) {
	if path == "" {
		return Settings{}, ErrNoPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Validate checks every section.
//
// Returns:
//   - error: the first problem found, or nil
func (s Settings) Validate() error {
	switch {
	case s.Window.Width < 0 || s.Window.Height < 0:
		return fmt.Errorf("config: window size %dx%d is negative", s.Window.Width, s.Window.Height)
	case s.Engine.TickRate < 0:
		return fmt.Errorf("config: tick rate %v is negative", s.Engine.TickRate)
	case s.Engine.RenderFrameLimit < 0:
		return fmt.Errorf("config: render frame limit %v is negative", s.Engine.RenderFrameLimit)
	case s.Engine.ComputeWorkers < 0:
		return fmt.Errorf("config: compute workers %d is negative", s.Engine.ComputeWorkers)
	}
	if err := s.Camera.Validate(); err != nil {
		return fmt.Errorf("config: camera: %w", err)
	}
	return nil
}
