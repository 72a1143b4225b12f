package camera

import (
	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
)

// CameraController is a top-down camera: it owns the camera transform, the user configuration and the runtime
// state driven by pointer input and target follow. The lens (Camera) reads the transform each frame.
//
// Free-roam placement is derived from a focus point on the ground, a yaw about world up, a height above the
// focus and a horizontal zoom distance behind it. Follow placement is derived from the target position alone.
type CameraController interface {
	// Config returns a copy of the current configuration.
	//
	// Returns:
	//   - Config: the configuration
	Config() Config

	// SetConfig validates and replaces the configuration. Runtime state is kept; zoom and height are
	// re-clamped into the new bounds.
	//
	// Parameters:
	//   - cfg: the new configuration
	//
	// Returns:
	//   - error: ErrInvalidConfig (wrapped) if cfg is invalid, in which case nothing changes
	SetConfig(cfg Config) error

	// ReloadConfig is SetConfig for a reloaded settings file: the live follow flag, which may have been toggled
	// at runtime, wins over the file's value.
	//
	// Parameters:
	//   - cfg: the reloaded configuration
	//
	// Returns:
	//   - error: ErrInvalidConfig (wrapped) if cfg is invalid, in which case nothing changes
	ReloadConfig(cfg Config) error

	// Follow reports whether the camera re-centers on its target every frame.
	//
	// Returns:
	//   - bool: the follow flag
	Follow() bool

	// SetFollow sets the follow flag. The next SyncTargets observes the new value.
	//
	// Parameters:
	//   - follow: the follow flag
	SetFollow(follow bool)

	// ToggleFollow flips the follow flag.
	//
	// Returns:
	//   - bool: the new value
	ToggleFollow() bool

	// Mode returns the interactive mode set by the last HandleInput.
	//
	// Returns:
	//   - Mode: ModeMove or ModeRotate
	Mode() Mode

	// InitialSetup reports whether the camera has received its first follow placement. Never reverts.
	//
	// Returns:
	//   - bool: true after the first successful SyncTargets
	InitialSetup() bool

	// Transform returns the camera's world transform.
	//
	// Returns:
	//   - common.Transform: the transform
	Transform() common.Transform

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Focus returns the free-roam focus point the camera hovers over.
	//
	// Returns:
	//   - [3]float32: the focus point
	Focus() [3]float32

	// SetFocus moves the free-roam focus point and recomposes the transform.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetFocus(x, y, z float32)

	// Yaw returns the free-roam rotation about world up in radians.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// ZoomLevel returns the current (interpolated) zoom distance.
	//
	// Returns:
	//   - float32: zoom distance
	ZoomLevel() float32

	// ZoomTarget returns the zoom distance the current zoom is converging to.
	//
	// Returns:
	//   - float32: zoom target
	ZoomTarget() float32

	// HeightLevel returns the current height above the focus point.
	//
	// Returns:
	//   - float32: height
	HeightLevel() float32

	// HandleInput runs the pointer subsystem for one frame: mode machine, edge pan, drag rotate, zoom and
	// height keys. The transform is rewritten only when one of its inputs changed.
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	//   - snap: the input snapshot for this frame
	//
	// Returns:
	//   - bool: true if the transform changed
	HandleInput(deltaTime float32, snap input.Snapshot) bool

	// SyncTargets runs the follow sync for one frame. It is a no-op when there are no targets, or when the
	// initial placement already happened and follow is off. The last target wins.
	//
	// Parameters:
	//   - targets: world transforms of the tracked targets, in iteration order
	//
	// Returns:
	//   - bool: true if the transform was written
	SyncTargets(targets []common.Transform) bool

	// Advance runs HandleInput then SyncTargets and returns the resulting transform. Hosts without a scene
	// call it once per frame before any transform propagation or render preparation.
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	//   - snap: the input snapshot for this frame
	//   - targets: world transforms of the tracked targets
	//
	// Returns:
	//   - common.Transform: the camera transform for this frame
	Advance(deltaTime float32, snap input.Snapshot, targets []common.Transform) common.Transform
}
