package game_object

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
)

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool

	local  common.Transform
	global common.Transform
	world  [16]float32

	parent   GameObject
	children []GameObject

	cameraTarget bool
	controller   camera.CameraController
}

// GameObject defines the interface for a scene entity: a local transform inside an optional parent hierarchy,
// the world placement computed from it, and the components the top-down camera systems look for.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID, 0 until the object is added to a Scene
	ID() uint64

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the name, possibly empty
	Name() string

	// Enabled returns whether this object takes part in camera targeting and rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Position returns the local position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the local rotation.
	//
	// Returns:
	//   - common.Quat: the unit rotation quaternion
	Rotation() common.Quat

	// Scale returns the local scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// Transform returns a copy of the local transform.
	//
	// Returns:
	//   - common.Transform: the local transform
	Transform() common.Transform

	// GlobalTransform returns the world placement computed by the last transform propagation.
	//
	// Returns:
	//   - common.Transform: the world transform
	GlobalTransform() common.Transform

	// WorldMatrix returns the column-major world matrix computed by the last transform propagation.
	//
	// Returns:
	//   - [16]float32: the world matrix
	WorldMatrix() [16]float32

	// Parent returns the parent object, or nil for a root.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns a copy of the child list.
	//
	// Returns:
	//   - []GameObject: the children in attach order
	Children() []GameObject

	// CameraTarget reports whether the object is marked as a target for the top-down camera to follow.
	//
	// Returns:
	//   - bool: true if marked
	CameraTarget() bool

	// CameraController returns the camera controller component, or nil if the object is not a camera.
	//
	// Returns:
	//   - camera.CameraController: the controller or nil
	CameraController() camera.CameraController

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetName sets the object's display name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// SetEnabled sets whether the object is enabled.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition sets the local position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation sets the local rotation. The quaternion is normalized.
	//
	// Parameters:
	//   - q: the new rotation
	SetRotation(q common.Quat)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)

	// SetTransform replaces the whole local transform.
	//
	// Parameters:
	//   - t: the new local transform
	SetTransform(t common.Transform)

	// Translate moves the object by a delta in its parent's space.
	//
	// Parameters:
	//   - dx, dy, dz: the offset to add
	Translate(dx, dy, dz float32)

	// SetGlobalTransform stores the propagated world placement and its matrix.
	// Called by the scene's transform propagation, not by user code.
	//
	// Parameters:
	//   - t: the world transform
	SetGlobalTransform(t common.Transform)

	// AddChild attaches a child, detaching it from any previous parent first.
	// Attaching an object to itself or to one of its own descendants is ignored.
	//
	// Parameters:
	//   - child: the object to attach
	AddChild(child GameObject)

	// RemoveChild detaches a child. Unknown children are ignored.
	//
	// Parameters:
	//   - child: the object to detach
	RemoveChild(child GameObject)

	// SetCameraTarget marks or unmarks the object as a camera target.
	//
	// Parameters:
	//   - target: true to mark
	SetCameraTarget(target bool)

	// SetCameraController attaches a camera controller component. Pass nil to detach.
	//
	// Parameters:
	//   - cc: the controller or nil
	SetCameraController(cc camera.CameraController)

	// setParent records the parent link; only AddChild and RemoveChild call it.
	setParent(p GameObject)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject at the origin configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		local: common.NewTransform(),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	obj.global = obj.local
	obj.world = obj.local.Matrix()
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) Name() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.local.Position[0], g.local.Position[1], g.local.Position[2]
}

func (g *gameObject) Rotation() common.Quat {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.local.Rotation
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.local.Scale[0], g.local.Scale[1], g.local.Scale[2]
}

func (g *gameObject) Transform() common.Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.local
}

func (g *gameObject) GlobalTransform() common.Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.global
}

func (g *gameObject) WorldMatrix() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world
}

func (g *gameObject) Parent() GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.children)
}

func (g *gameObject) CameraTarget() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cameraTarget
}

func (g *gameObject) CameraController() camera.CameraController {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.controller
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetName(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.name = name
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.local.Position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(q common.Quat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.local.Rotation = q.Normalize()
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.local.Scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) SetTransform(t common.Transform) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.local = t
}

func (g *gameObject) Translate(dx, dy, dz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.local.Position = common.AddVec3(g.local.Position, [3]float32{dx, dy, dz})
}

func (g *gameObject) SetGlobalTransform(t common.Transform) {
	m := t.Matrix()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.global = t
	g.world = m
}

func (g *gameObject) AddChild(child GameObject) {
	if child == nil || isAncestorOrSelf(child, g) {
		return
	}
	if old := child.Parent(); old != nil {
		old.RemoveChild(child)
	}
	g.mu.Lock()
	g.children = append(g.children, child)
	g.mu.Unlock()
	child.setParent(g)
}

func (g *gameObject) RemoveChild(child GameObject) {
	g.mu.Lock()
	idx := slices.Index(g.children, child)
	if idx < 0 {
		g.mu.Unlock()
		return
	}
	g.children = slices.Delete(g.children, idx, idx+1)
	g.mu.Unlock()
	child.setParent(nil)
}

func (g *gameObject) SetCameraTarget(target bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cameraTarget = target
}

func (g *gameObject) SetCameraController(cc camera.CameraController) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controller = cc
}

func (g *gameObject) setParent(p GameObject) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.parent = p
}

// isAncestorOrSelf walks up from node and reports whether candidate is on the path.
func isAncestorOrSelf(candidate, node GameObject) bool {
	for n := node; n != nil; n = n.Parent() {
		if n == candidate {
			return true
		}
	}
	return false
}
