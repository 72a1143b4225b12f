// Package lines builds the colored line-list geometry drawn by the renderer: a ground grid,
// a cross at each scene object and a marker at the camera focus.
package lines

import (
	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/game_object"
)

// VertexSize is the size of one common.Vertex in a vertex buffer.
const VertexSize = 24

// Colors used by FromObjects.
var (
	GridColor   = [3]float32{0.3, 0.3, 0.3}
	AxisColor   = [3]float32{0.55, 0.55, 0.55}
	ObjectColor = [3]float32{0.2, 0.6, 1.0}
	TargetColor = [3]float32{1.0, 0.75, 0.2}
	FocusColor  = [3]float32{0.9, 0.2, 0.2}
)

// Marshal returns the vertices as raw bytes for queue.WriteBuffer.
// The result aliases vs and is only valid until vs is modified.
//
// Parameters:
//   - vs: the vertices
//
// Returns:
//   - []byte: len(vs)*VertexSize bytes, nil for no vertices
func Marshal(vs []common.Vertex) []byte {
	return common.SliceToBytes(vs)
}

// Segment returns the two vertices of a line from a to b.
func Segment(a, b, color [3]float32) []common.Vertex {
	return []common.Vertex{{Position: a, Color: color}, {Position: b, Color: color}}
}

// Grid returns a square grid on the ground plane (y = 0) centered on the origin.
// The lines through the origin use AxisColor.
//
// Parameters:
//   - halfExtent: distance from the origin to the grid edge
//   - spacing: distance between lines
//   - color: color of the other lines
//
// Returns:
//   - []common.Vertex: line-list vertices, nil if halfExtent or spacing is not positive
func Grid(halfExtent, spacing float32, color [3]float32) []common.Vertex {
	if halfExtent <= 0 || spacing <= 0 {
		return nil
	}
	n := int(halfExtent / spacing)
	out := make([]common.Vertex, 0, (2*n+1)*4)
	for i := -n; i <= n; i++ {
		c := color
		if i == 0 {
			c = AxisColor
		}
		d := float32(i) * spacing
		out = append(out, Segment([3]float32{d, 0, -halfExtent}, [3]float32{d, 0, halfExtent}, c)...)
		out = append(out, Segment([3]float32{-halfExtent, 0, d}, [3]float32{halfExtent, 0, d}, c)...)
	}
	return out
}

// Cross returns three axis-aligned segments of length 2*size centered on center.
func Cross(center [3]float32, size float32, color [3]float32) []common.Vertex {
	x, y, z := center[0], center[1], center[2]
	out := make([]common.Vertex, 0, 6)
	out = append(out, Segment([3]float32{x - size, y, z}, [3]float32{x + size, y, z}, color)...)
	out = append(out, Segment([3]float32{x, y - size, z}, [3]float32{x, y + size, z}, color)...)
	out = append(out, Segment([3]float32{x, y, z - size}, [3]float32{x, y, z + size}, color)...)
	return out
}

// FromObjects appends a cross for every enabled object at its global position.
// Camera targets are drawn in TargetColor, objects that carry a camera controller are
// skipped and the controller's focus is drawn in FocusColor instead.
//
// Parameters:
//   - dst: the slice to append to
//   - objs: the scene objects
//   - size: half length of each cross arm
//
// Returns:
//   - []common.Vertex: dst with the crosses appended
func FromObjects(dst []common.Vertex, objs []game_object.GameObject, size float32) []common.Vertex {
	for _, obj := range objs {
		if !obj.Enabled() {
			continue
		}
		if cc := obj.CameraController(); cc != nil {
			dst = append(dst, Cross(cc.Focus(), size*0.5, FocusColor)...)
			continue
		}
		color := ObjectColor
		if obj.CameraTarget() {
			color = TargetColor
		}
		dst = append(dst, Cross(obj.GlobalTransform().Position, size, color)...)
	}
	return dst
}
