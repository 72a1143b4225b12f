package engine

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
	"github.com/Carmen-Shannon/oxy-topdown/engine/profiler"
	"github.com/Carmen-Shannon/oxy-topdown/engine/renderer"
	"github.com/Carmen-Shannon/oxy-topdown/engine/renderer/lines"
	"github.com/Carmen-Shannon/oxy-topdown/engine/scene"
	"github.com/Carmen-Shannon/oxy-topdown/engine/window"
)

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup
	mu      *sync.RWMutex // guards scenes and callbacks

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	input    input.State
	logger   *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	gridExtent       float32
	gridSpacing      float32
	markerSize       float32
}

// Engine is the main entry point for the engine.
// It orchestrates the engine loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Input returns the input state fed by the window and snapshotted once per tick.
	//
	// Returns:
	//   - input.State: the input state
	Input() input.State

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after every active scene has updated.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Active scenes are updated in ascending key order; the lowest active scene with a camera is drawn.
	//
	// Parameters:
	//   - key: the z-index determining update order (lower first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Start launches the tick and render goroutines without blocking.
	Start()

	// Run starts the engine and runs the window message loop, blocking until the window closes.
	// The engine is stopped before Run returns.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Wait blocks until every goroutine started by Start has exited.
	Wait()
}

// NewEngine creates a new Engine instance with the provided options.
// When a window is given its input callbacks are bound to the engine's input state, and resizes
// reconfigure the renderer and every scene camera's aspect ratio.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		mu:              &sync.RWMutex{},
		scenes:          make(map[int]scene.Scene),
		engineTickRate:  time.Second / 60,
		gridExtent:      50,
		gridSpacing:     2,
		markerSize:      0.5,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.input == nil {
		width, height := 0, 0
		if e.window != nil {
			width, height = e.window.Width(), e.window.Height()
		}
		e.input = input.NewState(width, height)
	}
	e.profiler = profiler.NewProfiler(
		profiler.WithLogger(e.logger),
		profiler.WithReporter(e.report),
	)

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
		e.window.BindInput(e.input)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Input() input.State {
	return e.input
}

// resize reconfigures the surface and every scene camera for a new framebuffer size.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	for _, s := range e.Scenes() {
		if c := s.Camera(); c != nil {
			c.SetAspect(float32(width) / float32(height))
		}
	}
}

// report adds the active object count and the state of the drawn camera to the profiler line.
func (e *engine) report() []any {
	var objects int
	var cc camera.CameraController
	for _, s := range e.activeScenes() {
		objects += s.Count()
		if cam := s.Camera(); cam != nil && cc == nil {
			cc = cam.Controller()
		}
	}
	attrs := []any{"objects", objects}
	if cc != nil {
		x, y, z := cc.Position()
		attrs = append(attrs, "camera_mode", cc.Mode().String(), "follow", cc.Follow(), "camera_position", [3]float32{x, y, z})
	}
	return attrs
}

func (e *engine) Start() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()
	e.handle()
}

func (e *engine) Run() {
	e.Start()
	e.window.ProcessMessages()
	e.Quit()
	e.Wait()
	if e.renderer != nil {
		e.renderer.Release()
	}
	if err := e.window.Close(); err != nil {
		e.logger.Warn("window close failed", "error", err)
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Wait() {
	e.wg.Wait()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// handle launches the engine, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleRender()
	go e.handleQuit()
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Each tick snapshots the input once and updates every active scene with that snapshot, then fires
// the tick callback. Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	e.mu.RLock()
	rate := e.engineTickRate
	e.mu.RUnlock()
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			snap := e.input.Snapshot()
			for _, s := range e.activeScenes() {
				s.Update(dt, snap)
			}

			e.mu.RLock()
			cb := e.tickCallback
			e.mu.RUnlock()
			if cb != nil {
				cb(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

// frame builds the render frame for the lowest active scene with a camera.
//
// Returns:
//   - renderer.Frame: the camera uniform and line list
//   - bool: false when no active scene has a camera
func (e *engine) frame() (renderer.Frame, bool) {
	for _, s := range e.activeScenes() {
		cam := s.Camera()
		if cam == nil {
			continue
		}
		vertices := lines.Grid(e.gridExtent, e.gridSpacing, lines.GridColor)
		vertices = lines.FromObjects(vertices, s.Objects(), e.markerSize)
		return renderer.Frame{Camera: cam.Uniform(), Vertices: vertices}, true
	}
	return renderer.Frame{}, false
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Draws the first active scene that has a camera, then fires the render callback.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			if e.renderer != nil {
				if f, ok := e.frame(); ok {
					if err := e.renderer.Render(f); err != nil {
						// outdated surfaces are expected around resizes
						e.logger.Debug("frame skipped", "error", err)
					}
				}
			}

			e.mu.RLock()
			cb := e.renderCallback
			limit := e.renderFrameLimit
			profiling := e.profilingEnabled
			e.mu.RUnlock()

			if cb != nil {
				cb(dt)
			}

			if profiling {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if limit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := limit - elapsed; remaining > 0 {
					select {
					case <-time.After(remaining):
					case <-e.quitChannel:
						return
					}
				}
			} else if e.renderer == nil {
				// headless: yield instead of spinning
				time.Sleep(time.Millisecond)
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()
	if !running {
		return
	}

	// Non-blocking send; a pending value is replaced
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameInterval(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// tickInterval converts a tick rate to a ticker period, treating fps <= 0 as 60.
func tickInterval(fps float64) time.Duration {
	fps = common.Coalesce(max(fps, 0), 60)
	return time.Duration(float64(time.Second) / fps)
}

// frameInterval converts a frame cap to a minimum frame duration, 0 for uncapped.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
