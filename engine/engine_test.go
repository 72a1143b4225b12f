package engine

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
	"github.com/Carmen-Shannon/oxy-topdown/engine/config"
	"github.com/Carmen-Shannon/oxy-topdown/engine/game_object"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
	"github.com/Carmen-Shannon/oxy-topdown/engine/renderer/lines"
	"github.com/Carmen-Shannon/oxy-topdown/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T, name string, options ...scene.SceneBuilderOption) scene.Scene {
	t.Helper()
	s := scene.NewScene(name, append([]scene.SceneBuilderOption{scene.WithComputeWorkers(1)}, options...)...)
	t.Cleanup(s.Close)
	return s
}

func TestTickUpdatesActiveScenesWithSnapshot(t *testing.T) {
	state := input.NewState(800, 600)
	active := newTestScene(t, "active", scene.WithActive(true))
	inactive := newTestScene(t, "inactive")

	frames := make(chan scene.Frame, 16)
	require.NoError(t, active.AddSystem(scene.StageUpdate, "probe", scene.SystemFunc(func(f scene.Frame) {
		select {
		case frames <- f:
		default:
		}
	})))
	var mu sync.Mutex
	var inactiveCalls int
	require.NoError(t, inactive.AddSystem(scene.StageUpdate, "probe", scene.SystemFunc(func(scene.Frame) {
		mu.Lock()
		inactiveCalls++
		mu.Unlock()
	})))

	e := NewEngine(WithInput(state), WithScene(0, active), WithScene(1, inactive), WithTickRate(200))
	state.KeyDown(common.KeyW)
	e.Start()
	defer func() {
		e.Quit()
		e.Wait()
	}()

	select {
	case f := <-frames:
		assert.Same(t, active, f.Scene)
		assert.Positive(t, f.DeltaTime)
		assert.True(t, f.Input.Held(input.KeyBinding(common.KeyW)))
	case <-time.After(5 * time.Second):
		t.Fatal("active scene never updated")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, inactiveCalls)
}

func TestTickCallbackRunsAfterSceneUpdate(t *testing.T) {
	s := newTestScene(t, "main", scene.WithActive(true))
	var mu sync.Mutex
	var order []string
	require.NoError(t, s.AddSystem(scene.StageUpdate, "probe", scene.SystemFunc(func(scene.Frame) {
		mu.Lock()
		order = append(order, "scene")
		mu.Unlock()
	})))

	e := NewEngine(WithScene(0, s), WithTickRate(200))
	e.SetTickCallback(func(float32) {
		mu.Lock()
		order = append(order, "tick")
		mu.Unlock()
	})
	e.Start()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) >= 2
	}, 5*time.Second, 5*time.Millisecond)
	e.Quit()
	e.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"scene", "tick"}, order[:2])
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	e.Start()
	e.Quit()
	e.Quit()
	e.Wait()
}

func TestSetTickRateWhileRunning(t *testing.T) {
	e := NewEngine(WithTickRate(100))
	impl := e.(*engine)
	assert.Equal(t, 10*time.Millisecond, impl.engineTickRate)

	e.Start()
	e.SetTickRate(50)
	e.SetTickRate(250)
	require.Eventually(t, func() bool {
		impl.mu.RLock()
		defer impl.mu.RUnlock()
		return impl.engineTickRate == 4*time.Millisecond
	}, 5*time.Second, 5*time.Millisecond)
	e.Quit()
	e.Wait()

	// stopped engines take the new rate directly
	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, impl.engineTickRate)
}

func TestRenderCallbackRunsHeadless(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(500))
	done := make(chan struct{})
	var once sync.Once
	e.SetRenderCallback(func(float32) { once.Do(func() { close(done) }) })
	e.Start()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("render callback never fired")
	}
	e.Quit()
	e.Wait()
}

func TestIntervals(t *testing.T) {
	assert.Equal(t, time.Second/60, tickInterval(0))
	assert.Equal(t, time.Second/60, tickInterval(-5))
	assert.Equal(t, 8*time.Millisecond, tickInterval(125))
	// fractional rates are not truncated
	assert.Equal(t, time.Duration(float64(time.Second)/59.94), tickInterval(59.94))

	assert.Zero(t, frameInterval(0))
	assert.Equal(t, 4*time.Millisecond, frameInterval(250))
}

func TestFrameUsesLowestActiveSceneWithCamera(t *testing.T) {
	cam := camera.NewCamera()
	noCamera := newTestScene(t, "ui", scene.WithActive(true))
	world := newTestScene(t, "world",
		scene.WithActive(true),
		scene.WithCamera(cam),
		scene.WithObjects(
			game_object.NewGameObject(game_object.WithPosition(3, 0, 3), game_object.WithCameraTarget()),
			game_object.NewGameObject(game_object.WithPosition(-3, 0, 1)),
		),
	)

	e := NewEngine(WithScene(0, noCamera), WithScene(1, world), WithGrid(4, 2)).(*engine)
	f, ok := e.frame()
	require.True(t, ok)
	assert.Equal(t, cam.Uniform(), f.Camera)
	// 5 grid lines each way, two crosses
	assert.Len(t, f.Vertices, 5*4+2*6)
	assert.Equal(t, lines.TargetColor, f.Vertices[20].Color)

	world.SetActive(false)
	_, ok = e.frame()
	assert.False(t, ok)
}

func TestResizeUpdatesCameraAspect(t *testing.T) {
	cam := camera.NewCamera()
	s := newTestScene(t, "world", scene.WithCamera(cam))
	e := NewEngine(WithScene(0, s)).(*engine)

	e.resize(800, 400)
	assert.Equal(t, float32(2), cam.Aspect())

	e.resize(0, 400)
	assert.Equal(t, float32(2), cam.Aspect())
}

func TestSceneRegistry(t *testing.T) {
	a := newTestScene(t, "a", scene.WithActive(true))
	b := newTestScene(t, "b")
	e := NewEngine(WithScene(2, a))
	e.AddScene(1, b)

	assert.Same(t, a, e.Scene(2))
	assert.Nil(t, e.Scene(3))

	scenes := e.Scenes()
	require.Len(t, scenes, 2)
	delete(scenes, 1)
	assert.Len(t, e.Scenes(), 2)

	assert.Equal(t, []scene.Scene{a}, e.(*engine).activeScenes())
	e.RemoveScene(2)
	assert.Empty(t, e.(*engine).activeScenes())
}

func TestProfilerReport(t *testing.T) {
	var buf bytes.Buffer
	s := newTestScene(t, "world", scene.WithActive(true), scene.WithObjects(
		game_object.NewGameObject(), game_object.NewGameObject(),
	))
	e := NewEngine(WithScene(0, s), WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))).(*engine)
	assert.Equal(t, []any{"objects", 2}, e.report())

	cc, err := camera.NewCameraController(camera.WithFollow(true))
	require.NoError(t, err)
	s.SetCamera(camera.NewCamera(camera.WithController(cc)))
	attrs := e.report()
	require.Len(t, attrs, 8)
	assert.Equal(t, []any{"camera_mode", "Move", "follow", true}, attrs[2:6])
	x, y, z := cc.Position()
	assert.Equal(t, [3]float32{x, y, z}, attrs[7])
}

func TestWithSettings(t *testing.T) {
	e := NewEngine(WithSettings(config.EngineSettings{TickRate: 120, RenderFrameLimit: 100, Profiling: true})).(*engine)
	assert.Equal(t, time.Duration(float64(time.Second)/120), e.engineTickRate)
	assert.Equal(t, 10*time.Millisecond, e.renderFrameLimit)
	assert.True(t, e.profilingEnabled)

	e.DisableProfiler()
	assert.False(t, e.profilingEnabled)
	e.EnableProfiler()
	assert.True(t, e.profilingEnabled)
}
