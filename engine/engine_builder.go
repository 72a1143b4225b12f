package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-topdown/engine/config"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
	"github.com/Carmen-Shannon/oxy-topdown/engine/renderer"
	"github.com/Carmen-Shannon/oxy-topdown/engine/scene"
	"github.com/Carmen-Shannon/oxy-topdown/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithWindow sets the window the engine runs the message loop of and reads input from.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer used by the render loop. Without one the engine runs headless.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithInput replaces the engine's input state, e.g. to drive a headless engine from code.
//
// Parameters:
//   - state: the input state
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInput(state input.State) EngineBuilderOption {
	return func(e *engine) {
		e.input = state
	}
}

// WithLogger sets the engine's logger. Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index determining update order (lower first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameInterval(fps)
	}
}

// WithGrid sets the ground grid drawn under the scene. A halfExtent of 0 hides it.
//
// Parameters:
//   - halfExtent: distance from the origin to the grid edge
//   - spacing: distance between grid lines
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGrid(halfExtent, spacing float32) EngineBuilderOption {
	return func(e *engine) {
		e.gridExtent = halfExtent
		e.gridSpacing = spacing
	}
}

// WithSettings applies the engine section of a settings file: tick rate, frame limit and profiling.
// VSync and compute workers are consumed by the renderer and scene constructors.
//
// Parameters:
//   - s: the engine settings
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSettings(s config.EngineSettings) EngineBuilderOption {
	return func(e *engine) {
		WithTickRate(s.TickRate)(e)
		WithRenderFrameLimit(s.RenderFrameLimit)(e)
		WithProfiling(s.Profiling)(e)
	}
}
