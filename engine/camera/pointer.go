package camera

import (
	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
)

// zoomSnapEpsilon is the distance at which the interpolated zoom snaps onto its target.
const zoomSnapEpsilon = 1e-3

// EdgePanVelocity returns the edge-pan velocity for a pointer position: x is along screen right, y along screen
// up (toward the top edge). Per axis the speed is 0 on the margin boundary and grows linearly to maxSpeed at the
// window edge. A zero margin or window size disables that axis.
//
// Parameters:
//   - pointer: the pointer position in window pixels, origin top-left
//   - window: the window size in pixels
//   - margin: the edge band widths in pixels (horizontal, vertical)
//   - maxSpeed: the speed on the literal window edge
//
// Returns:
//   - [2]float32: the velocity (right, up)
func EdgePanVelocity(pointer, window, margin [2]float32, maxSpeed float32) [2]float32 {
	var v [2]float32
	for axis := range 2 {
		m, size := margin[axis], window[axis]
		if m <= 0 || size <= 0 {
			continue
		}
		low := common.Clamp((m-pointer[axis])/m, 0, 1)
		high := common.Clamp((pointer[axis]-(size-m))/m, 0, 1)
		v[axis] = common.Lerp(0, maxSpeed, high) - common.Lerp(0, maxSpeed, low)
	}
	// pixel rows grow downward
	v[1] = -v[1]
	return v
}

// handleInput runs one frame of the pointer subsystem.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) handleInput(deltaTime float32, snap input.Snapshot) bool {
	cfg := &cc.cfg
	changed := false

	if snap.Held(cfg.RotateKey) {
		cc.mode = ModeRotate
	} else {
		cc.mode = ModeMove
	}

	if cfg.CursorEnabled && cc.mode == ModeMove && snap.PointerInWindow {
		v := EdgePanVelocity(snap.Pointer, snap.Window, cfg.CursorEdgeMargin, cfg.CursorMaxSpeed)
		if v != [2]float32{} {
			scale := cfg.CursorMoveSpeed * deltaTime
			right, forward := cc.groundAxes()
			pan := common.AddVec3(common.ScaleVec3(right, v[0]*scale), common.ScaleVec3(forward, v[1]*scale))
			if pan != [3]float32{} {
				cc.focus = common.AddVec3(cc.focus, pan)
				changed = true
			}
		}
	}

	if cc.mode == ModeRotate && snap.PointerDelta[0] != 0 && cfg.CursorRotateSpeed != 0 {
		cc.yaw -= snap.PointerDelta[0] * cfg.CursorRotateSpeed
		changed = true
	}

	if cfg.ZoomEnabled && snap.Scroll != 0 {
		cc.zoomTarget = common.Clamp(cc.zoomTarget-snap.Scroll*cfg.Zoom.Step, cfg.Zoom.Min, cfg.Zoom.Max)
	}
	if cc.zoom != cc.zoomTarget {
		next := common.Lerp(cc.zoom, cc.zoomTarget, cfg.Zoom.Speed)
		if diff := cc.zoomTarget - next; diff < zoomSnapEpsilon && diff > -zoomSnapEpsilon {
			next = cc.zoomTarget
		}
		cc.zoom = common.Clamp(next, cfg.Zoom.Min, cfg.Zoom.Max)
		changed = true
	}

	if cfg.HeightKeysEnabled {
		step := cfg.Height.Speed * deltaTime
		height := cc.height
		if snap.Held(cfg.HeightRiseKey) {
			height += step
		}
		if snap.Held(cfg.HeightLowerKey) {
			height -= step
		}
		height = common.Clamp(height, cfg.Height.Min, cfg.Height.Max)
		if height != cc.height {
			cc.height = height
			changed = true
		}
	}

	if changed {
		cc.compose()
	}
	return changed
}
