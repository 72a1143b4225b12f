package camera

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
)

// cameraControllerImpl is the single implementation of CameraController.
// The pointer subsystem edits the free-roam state (focus, yaw, zoom, height) and recomposes the transform;
// the follow sync writes the transform directly and re-seeds the free-roam state to match it.
type cameraControllerImpl struct {
	mu *sync.Mutex

	cfg Config

	mode         Mode
	initialSetup bool

	transform common.Transform

	// Free-roam state
	focus      [3]float32
	yaw        float32
	zoom       float32
	zoomTarget float32
	height     float32

	logger *slog.Logger
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a top-down camera controller from DefaultConfig and the given options.
// Zoom and height start at a third of the maximum height, clamped into their bounds.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
//   - error: ErrInvalidConfig (wrapped) if the resulting configuration is invalid
func NewCameraController(options ...CameraControllerOption) (CameraController, error) {
	cc := &cameraControllerImpl{
		mu:        &sync.Mutex{},
		cfg:       DefaultConfig(),
		mode:      ModeMove,
		transform: common.NewTransform(),
	}
	for _, option := range options {
		option(cc)
	}
	if err := cc.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new camera controller: %w", err)
	}
	if cc.logger == nil {
		cc.logger = slog.Default()
	}

	seed := cc.cfg.followOffset()
	cc.zoom = common.Clamp(seed, cc.cfg.Zoom.Min, cc.cfg.Zoom.Max)
	cc.zoomTarget = cc.zoom
	cc.height = common.Clamp(seed, cc.cfg.Height.Min, cc.cfg.Height.Max)
	cc.compose()
	return cc, nil
}

// --- internal helpers ---

// compose rebuilds the transform from the free-roam state.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) compose() {
	yawRot := common.QuatFromAxisAngle(common.AxisY, cc.yaw)
	offset := yawRot.Rotate([3]float32{0, cc.height, cc.zoom})
	cc.transform.Position = common.AddVec3(cc.focus, offset)
	cc.transform.Rotation = yawRot.Mul(common.QuatFromAxisAngle(common.AxisX, -Pitch))
}

// groundAxes returns the yaw-projected right and forward axes on the ground plane.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) groundAxes() (right, forward [3]float32) {
	yawRot := common.QuatFromAxisAngle(common.AxisY, cc.yaw)
	return yawRot.Rotate(common.AxisX), yawRot.Rotate(common.Forward)
}

// --- CameraController methods ---

func (cc *cameraControllerImpl) Config() Config {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cfg
}

func (cc *cameraControllerImpl) SetConfig(cfg Config) error {
	return cc.applyConfig(cfg, false)
}

func (cc *cameraControllerImpl) ReloadConfig(cfg Config) error {
	return cc.applyConfig(cfg, true)
}

func (cc *cameraControllerImpl) applyConfig(cfg Config, keepFollow bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("set camera config: %w", err)
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if keepFollow {
		cfg.Follow = cc.cfg.Follow
	}
	cc.cfg = cfg
	zoom := common.Clamp(cc.zoom, cfg.Zoom.Min, cfg.Zoom.Max)
	height := common.Clamp(cc.height, cfg.Height.Min, cfg.Height.Max)
	cc.zoomTarget = common.Clamp(cc.zoomTarget, cfg.Zoom.Min, cfg.Zoom.Max)
	if zoom != cc.zoom || height != cc.height {
		cc.zoom, cc.height = zoom, height
		cc.compose()
	}
	return nil
}

func (cc *cameraControllerImpl) Follow() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cfg.Follow
}

func (cc *cameraControllerImpl) SetFollow(follow bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cfg.Follow = follow
}

func (cc *cameraControllerImpl) ToggleFollow() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cfg.Follow = !cc.cfg.Follow
	cc.logger.Debug("camera follow toggled", "follow", cc.cfg.Follow)
	return cc.cfg.Follow
}

func (cc *cameraControllerImpl) Mode() Mode {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mode
}

func (cc *cameraControllerImpl) InitialSetup() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.initialSetup
}

func (cc *cameraControllerImpl) Transform() common.Transform {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.transform
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.transform.Position[0], cc.transform.Position[1], cc.transform.Position[2]
}

func (cc *cameraControllerImpl) Focus() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.focus
}

func (cc *cameraControllerImpl) SetFocus(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.focus = [3]float32{x, y, z}
	cc.compose()
}

func (cc *cameraControllerImpl) Yaw() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.yaw
}

func (cc *cameraControllerImpl) ZoomLevel() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoom
}

func (cc *cameraControllerImpl) ZoomTarget() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomTarget
}

func (cc *cameraControllerImpl) HeightLevel() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.height
}

func (cc *cameraControllerImpl) HandleInput(deltaTime float32, snap input.Snapshot) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.handleInput(deltaTime, snap)
}

func (cc *cameraControllerImpl) SyncTargets(targets []common.Transform) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.syncTargets(targets)
}

func (cc *cameraControllerImpl) Advance(deltaTime float32, snap input.Snapshot, targets []common.Transform) common.Transform {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.handleInput(deltaTime, snap)
	cc.syncTargets(targets)
	return cc.transform
}
