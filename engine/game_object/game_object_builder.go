package game_object

import (
	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the display name of the GameObject.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled. Objects are enabled by default.
//
// Parameters:
//   - enabled: false to create the object disabled
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial local position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.local.Position = [3]float32{x, y, z}
	}
}

// WithScale sets the initial local scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.local.Scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the initial local rotation of the GameObject.
//
// Parameters:
//   - q: the rotation, normalized before use
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(q common.Quat) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.local.Rotation = q.Normalize()
	}
}

// WithTransform sets the whole initial local transform.
//
// Parameters:
//   - t: the transform
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the transform
func WithTransform(t common.Transform) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.local = t
	}
}

// WithCameraTarget marks the GameObject as a target the top-down camera follows.
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the marker
func WithCameraTarget() GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.cameraTarget = true
	}
}

// WithCameraController makes the GameObject the camera entity driven by the given controller.
//
// Parameters:
//   - cc: the controller component
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach the controller
func WithCameraController(cc camera.CameraController) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.controller = cc
	}
}
