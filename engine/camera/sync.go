package camera

import (
	"github.com/Carmen-Shannon/oxy-topdown/common"
)

// lookAheadDistance is how far down -Z the level follow orientation looks before the pitch is applied.
const lookAheadDistance = 10000

// FollowTransform returns the follow placement for one target: a level look toward -Z at the target's height,
// pitched down by Pitch about world X, offset behind and above the target by heightMax/3 on both axes.
//
// Parameters:
//   - target: the target's world transform
//   - heightMax: the configured maximum height
//
// Returns:
//   - common.Transform: the camera placement
func FollowTransform(target common.Transform, heightMax float32) common.Transform {
	p := target.Position
	// direction from the target to (x, y, z-lookAheadDistance)
	level := common.LookRotation([3]float32{0, 0, -lookAheadDistance}, common.AxisY)

	offset := heightMax / 3
	out := common.NewTransform()
	out.Rotation = common.QuatFromAxisAngle(common.AxisX, -Pitch).Mul(level)
	out.Position = common.AddVec3(p, [3]float32{0, offset, offset})
	return out
}

// syncTargets runs one frame of the follow sync.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) syncTargets(targets []common.Transform) bool {
	if cc.initialSetup && !cc.cfg.Follow {
		return false
	}
	if len(targets) == 0 {
		return false
	}

	for _, target := range targets {
		placed := FollowTransform(target, cc.cfg.Height.Max)
		cc.transform.Rotation = placed.Rotation
		cc.transform.Position = placed.Position
	}

	// re-seed free roam so turning follow off does not jump: compose() of the seeded
	// state must land on the follow placement even when the seed is clamped
	seed := cc.cfg.followOffset()
	cc.yaw = 0
	cc.height = common.Clamp(seed, cc.cfg.Height.Min, cc.cfg.Height.Max)
	cc.zoom = common.Clamp(seed, cc.cfg.Zoom.Min, cc.cfg.Zoom.Max)
	cc.zoomTarget = cc.zoom
	cc.focus = common.SubVec3(cc.transform.Position, [3]float32{0, cc.height, cc.zoom})

	if !cc.initialSetup {
		cc.initialSetup = true
		cc.logger.Debug("camera placed on target", "position", cc.transform.Position, "targets", len(targets))
	}
	return true
}
