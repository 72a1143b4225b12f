package camera

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithConfig replaces the whole configuration. Later options override individual fields.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - CameraControllerOption: functional option to set the configuration
func WithConfig(cfg Config) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg = cfg
	}
}

// WithFollow sets whether the camera follows its target.
//
// Parameters:
//   - follow: the follow flag
//
// Returns:
//   - CameraControllerOption: functional option to set follow
func WithFollow(follow bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.Follow = follow
	}
}

// WithZoom sets the zoom bounds and interpolation speed.
//
// Parameters:
//   - zoom: the zoom settings
//
// Returns:
//   - CameraControllerOption: functional option to set zoom
func WithZoom(zoom Zoom) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.Zoom = zoom
	}
}

// WithZoomEnabled enables or disables scroll zoom.
func WithZoomEnabled(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.ZoomEnabled = enabled
	}
}

// WithHeight sets the height bounds and key rate.
//
// Parameters:
//   - height: the height settings
//
// Returns:
//   - CameraControllerOption: functional option to set height
func WithHeight(height Height) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.Height = height
	}
}

// WithHeightKeys sets the rise and lower bindings and enables the height keys.
//
// Parameters:
//   - rise: binding that raises the camera
//   - lower: binding that lowers the camera
//
// Returns:
//   - CameraControllerOption: functional option to set the height keys
func WithHeightKeys(rise, lower input.Binding) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.HeightKeysEnabled = true
		cc.cfg.HeightRiseKey = rise
		cc.cfg.HeightLowerKey = lower
	}
}

// WithRotateKey sets the binding that switches to ModeRotate while held.
func WithRotateKey(binding input.Binding) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.RotateKey = binding
	}
}

// WithCursor configures edge panning.
//
// Parameters:
//   - enabled: whether edge panning is active
//   - moveSpeed: scale applied to the edge-pan velocity
//   - maxSpeed: edge-pan speed at the literal screen edge
//   - margin: edge band width in pixels (horizontal, vertical)
//
// Returns:
//   - CameraControllerOption: functional option to set edge panning
func WithCursor(enabled bool, moveSpeed, maxSpeed float32, margin [2]float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.CursorEnabled = enabled
		cc.cfg.CursorMoveSpeed = moveSpeed
		cc.cfg.CursorMaxSpeed = maxSpeed
		cc.cfg.CursorEdgeMargin = margin
	}
}

// WithRotateSpeed sets the drag-rotate rate in radians per pixel.
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.CursorRotateSpeed = speed
	}
}

// WithFocus sets the initial free-roam focus point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the focus
func WithFocus(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.focus = [3]float32{x, y, z}
	}
}

// WithYaw sets the initial free-roam yaw in radians.
func WithYaw(yaw float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.yaw = yaw
	}
}

// WithLogger sets the logger used for warnings. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.logger = logger
	}
}
