// Package topdown wires the top-down camera controller into a scene: it finds the camera entity and its
// targets every frame, runs the pointer subsystem and the follow sync in that order, and writes the resulting
// transform back onto the camera entity before transform propagation.
package topdown

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
	"github.com/Carmen-Shannon/oxy-topdown/engine/game_object"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
	"github.com/Carmen-Shannon/oxy-topdown/engine/scene"
)

// System sets registered by the plugin. Both run in scene.StagePostUpdate ahead of
// scene.SetTransformPropagate, so host systems can order against them.
const (
	SetCameraInput scene.SystemSet = "TopDownCameraInput"
	SetCameraSync  scene.SystemSet = "TopDownCameraSync"
)

type plugin struct {
	mu *sync.Mutex

	toggleKey    input.Binding
	hasToggleKey bool

	// last warned counts, so a steady misconfiguration logs once
	warnedCameras int
	warnedTargets int
}

var _ scene.Plugin = &plugin{}

// NewPlugin creates the top-down camera plugin.
//
// Parameters:
//   - options: functional options to configure the plugin
//
// Returns:
//   - scene.Plugin: the plugin, ready for Scene.AddPlugin
func NewPlugin(options ...PluginOption) scene.Plugin {
	p := &plugin{mu: &sync.Mutex{}}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *plugin) Name() string {
	return "topdown"
}

func (p *plugin) Build(s scene.Scene) error {
	if err := s.AddSystem(scene.StagePostUpdate, SetCameraInput, scene.SystemFunc(p.cameraInput),
		scene.Before(SetCameraSync), scene.Before(scene.SetTransformPropagate)); err != nil {
		return err
	}
	return s.AddSystem(scene.StagePostUpdate, SetCameraSync, scene.SystemFunc(p.cameraSync),
		scene.After(SetCameraInput), scene.Before(scene.SetTransformPropagate))
}

// cameraInput runs the pointer subsystem on the camera entity and writes its transform back.
func (p *plugin) cameraInput(f scene.Frame) {
	obj, cc := p.cameraEntity(f.Scene)
	if cc == nil {
		return
	}
	if p.hasToggleKey && f.Input.JustPressed(p.toggleKey) {
		follow := cc.ToggleFollow()
		f.Scene.Logger().Info("camera follow toggled", "follow", follow)
	}
	cc.HandleInput(f.DeltaTime, f.Input)
	setWorldTransform(obj, cc.Transform())
	p.attachLens(f.Scene, cc)
}

// cameraSync places the camera on its targets and writes its transform back.
func (p *plugin) cameraSync(f scene.Frame) {
	obj, cc := p.cameraEntity(f.Scene)
	if cc == nil {
		return
	}
	targets := p.targets(f.Scene)
	if cc.SyncTargets(targets) {
		setWorldTransform(obj, cc.Transform())
	}
}

// cameraEntity returns the single object carrying a camera controller. None or several yield nil.
func (p *plugin) cameraEntity(s scene.Scene) (game_object.GameObject, camera.CameraController) {
	var found []game_object.GameObject
	for _, obj := range s.Objects() {
		if obj.CameraController() != nil {
			found = append(found, obj)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	switch len(found) {
	case 0:
		p.warnedCameras = 0
		return nil, nil
	case 1:
		p.warnedCameras = 0
		return found[0], found[0].CameraController()
	default:
		if p.warnedCameras != len(found) {
			p.warnedCameras = len(found)
			s.Logger().Warn("more than one top-down camera, camera systems skipped", "cameras", len(found))
		}
		return nil, nil
	}
}

// targets collects the world transforms of enabled target objects in ID order.
func (p *plugin) targets(s scene.Scene) []common.Transform {
	var out []common.Transform
	for _, obj := range s.Objects() {
		if obj.Enabled() && obj.CameraTarget() {
			out = append(out, worldTransform(obj))
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(out) > 1 && p.warnedTargets != len(out) {
		s.Logger().Warn("more than one camera target, following the last one", "targets", len(out))
	}
	p.warnedTargets = len(out)
	return out
}

// attachLens points the scene's camera lens at the controller if it is not already.
func (p *plugin) attachLens(s scene.Scene, cc camera.CameraController) {
	cam := s.Camera()
	if cam == nil || cam.Controller() == cc {
		return
	}
	cam.SetController(cc)
	s.Logger().Debug("camera lens attached to top-down controller")
}

// worldTransform composes the object's current local transform onto its parent's last propagated placement.
// Root objects therefore report this frame's position even though propagation runs later in the stage.
func worldTransform(obj game_object.GameObject) common.Transform {
	local := obj.Transform()
	if parent := obj.Parent(); parent != nil {
		return parent.GlobalTransform().Mul(local)
	}
	return local
}

// setWorldTransform stores a world placement as the object's local transform, expressed against the parent's last
// propagated placement when there is one.
func setWorldTransform(obj game_object.GameObject, world common.Transform) {
	if parent := obj.Parent(); parent != nil {
		world = parent.GlobalTransform().Inverse().Mul(world)
	}
	obj.SetTransform(world)
}
