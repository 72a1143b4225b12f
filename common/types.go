// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Transform is a local or world-space placement: translation, unit rotation quaternion and per-axis scale.
type Transform struct {
	// Position is the translation in world units.
	Position [3]float32
	// Rotation is the orientation as a unit quaternion.
	Rotation Quat
	// Scale is the per-axis scale factor.
	Scale [3]float32
}

// NewTransform returns a transform at the origin with no rotation and unit scale.
func NewTransform() Transform {
	return Transform{
		Rotation: IdentityQuat(),
		Scale:    [3]float32{1, 1, 1},
	}
}

// TransformAt returns a transform at the given position with no rotation and unit scale.
func TransformAt(x, y, z float32) Transform {
	t := NewTransform()
	t.Position = [3]float32{x, y, z}
	return t
}

// Mul composes a child transform expressed in t's space into t's parent space.
// Non-uniform parent scale combined with a rotated child is approximated per axis (no shear).
func (t Transform) Mul(child Transform) Transform {
	scaled := [3]float32{
		child.Position[0] * t.Scale[0],
		child.Position[1] * t.Scale[1],
		child.Position[2] * t.Scale[2],
	}
	return Transform{
		Position: AddVec3(t.Position, t.Rotation.Rotate(scaled)),
		Rotation: t.Rotation.Mul(child.Rotation),
		Scale: [3]float32{
			t.Scale[0] * child.Scale[0],
			t.Scale[1] * child.Scale[1],
			t.Scale[2] * child.Scale[2],
		},
	}
}

// Inverse returns the transform that undoes t, so t.Mul(t.Inverse().Mul(w)) == w.
// Exact for uniform scale; a zero scale axis stays zero.
func (t Transform) Inverse() Transform {
	var inv Transform
	inv.Rotation = t.Rotation.Conjugate()
	for i, s := range t.Scale {
		if s != 0 {
			inv.Scale[i] = 1 / s
		}
	}
	p := inv.Rotation.Rotate(t.Position)
	for i := range p {
		inv.Position[i] = -p[i] * inv.Scale[i]
	}
	return inv
}

// Matrix returns the column-major world matrix of the transform.
func (t Transform) Matrix() [16]float32 {
	var m [16]float32
	TransformMatrix(m[:], t)
	return m
}

// Vertex is a colored line vertex as laid out in GPU vertex buffers.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}
