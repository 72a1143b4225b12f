package scene

import (
	"cmp"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
	"github.com/Carmen-Shannon/oxy-topdown/engine/game_object"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
)

// Scene manages a registry of GameObjects, an optional Camera lens, and a staged schedule of systems that
// Update runs once per frame. Scenes can be hot-swapped via the Active flag to switch between levels.
// Thread-safe for concurrent access; systems run without the scene lock held so they may call back into it.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for updates and rendering.
	Active() bool

	// SetActive sets whether this scene is active.
	SetActive(active bool)

	// Camera returns the scene's camera lens, or nil.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera lens.
	//
	// Parameters:
	//   - cam: the new camera, may be nil
	SetCamera(cam camera.Camera)

	// Logger returns the scene's logger. Systems and plugins log through it.
	Logger() *slog.Logger

	// Count returns the number of GameObjects in the registry.
	//
	// Returns:
	//   - int: count of registered objects
	Count() int

	// Add registers a GameObject. Objects without an ID are assigned the next free one.
	// Children are not registered implicitly but are still reached by transform propagation through their root.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject from the registry by ID. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all objects from the registry. Registered systems stay.
	Clear()

	// Objects returns the registered objects sorted by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the objects in ID order
	Objects() []game_object.GameObject

	// AddSystem registers a system under a unique set name in a stage.
	//
	// Parameters:
	//   - stage: the stage to run in
	//   - set: the unique name other systems can order against
	//   - sys: the system
	//   - options: Before/After constraints
	//
	// Returns:
	//   - error: ErrDuplicateSystem or ErrOrderingCycle (wrapped), in which case nothing is registered
	AddSystem(stage Stage, set SystemSet, sys System, options ...SystemOption) error

	// RemoveSystem unregisters a system set.
	//
	// Parameters:
	//   - set: the set to remove
	//
	// Returns:
	//   - bool: true if the set was registered
	RemoveSystem(set SystemSet) bool

	// SystemOrder returns the resolved run order of a stage.
	//
	// Parameters:
	//   - stage: the stage to inspect
	//
	// Returns:
	//   - []SystemSet: set names in run order
	SystemOrder(stage Stage) []SystemSet

	// AddPlugin lets a plugin register its systems and resources.
	//
	// Parameters:
	//   - p: the plugin
	//
	// Returns:
	//   - error: the plugin's build error, wrapped with its name
	AddPlugin(p Plugin) error

	// Update runs every stage once. Concurrent calls are serialized.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	//   - snap: the input captured for this frame
	Update(deltaTime float32, snap input.Snapshot)

	// Close stops the scene's worker pool. The scene must not be updated afterwards.
	Close()
}

type scene struct {
	mu       *sync.RWMutex
	updateMu *sync.Mutex

	name   string
	active bool
	cam    camera.Camera
	logger *slog.Logger

	registry map[uint64]game_object.GameObject
	nextID   uint64

	sched schedule

	// computePool runs root subtrees of the transform propagation in parallel. Workers persist across
	// frames; a WaitGroup provides the per-frame barrier.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the built-in transform propagation and camera update systems registered.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		updateMu:       &sync.Mutex{},
		name:           name,
		registry:       make(map[uint64]game_object.GameObject),
		nextID:         1,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("scene", s.name)

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	// built-ins cannot collide on an empty schedule
	_ = s.sched.add(StagePostUpdate, SetTransformPropagate, SystemFunc(s.propagateTransforms))
	_ = s.sched.add(StageLast, SetCameraUpdate, SystemFunc(updateCamera))
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Logger() *slog.Logger {
	return s.logger
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(obj)
}

// addLocked registers obj. Caller must hold the write lock.
func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	id := obj.ID()
	if id == 0 {
		id = s.nextID
		obj.SetID(id)
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}
	s.registry[id] = obj
	return id
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.registry)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	out := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		out = append(out, obj)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b game_object.GameObject) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}

func (s *scene) AddSystem(stage Stage, set SystemSet, sys System, options ...SystemOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sched.add(stage, set, sys, options...); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}
	s.logger.Debug("system registered", "set", set, "stage", stage, "order", s.sched.order(stage))
	return nil
}

func (s *scene) RemoveSystem(set SystemSet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.remove(set)
}

func (s *scene) SystemOrder(stage Stage) []SystemSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.order(stage)
}

func (s *scene) AddPlugin(p Plugin) error {
	if err := p.Build(s); err != nil {
		return fmt.Errorf("plugin %s: %w", p.Name(), err)
	}
	s.logger.Info("plugin added", "plugin", p.Name())
	return nil
}

func (s *scene) Update(deltaTime float32, snap input.Snapshot) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.RLock()
	stages := s.sched.snapshot()
	s.mu.RUnlock()

	f := Frame{Scene: s, DeltaTime: deltaTime, Input: snap}
	for _, systems := range stages {
		for _, e := range systems {
			e.system.Update(f)
		}
	}
}

func (s *scene) Close() {
	s.computePool.Stop()
}

// propagateTransforms writes every object's world transform from its parent chain. Each root subtree is
// independent, so roots are fanned out across the compute pool.
func (s *scene) propagateTransforms(f Frame) {
	var roots []game_object.GameObject
	for _, obj := range s.Objects() {
		if obj.Parent() == nil {
			roots = append(roots, obj)
		}
	}

	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		rootCap := root
		s.computePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				propagate(rootCap, common.NewTransform())
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// propagate walks a subtree depth first composing local transforms onto parentGlobal.
func propagate(obj game_object.GameObject, parentGlobal common.Transform) {
	global := parentGlobal.Mul(obj.Transform())
	obj.SetGlobalTransform(global)
	for _, child := range obj.Children() {
		propagate(child, global)
	}
}

// updateCamera refreshes the lens matrices after every transform write of the frame.
func updateCamera(f Frame) {
	if cam := f.Scene.Camera(); cam != nil {
		cam.Update()
	}
}
