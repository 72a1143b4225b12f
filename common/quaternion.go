package common

import "github.com/chewxy/math32"

// Quat is a rotation quaternion with X, Y, Z and W components.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// Axis vectors of the engine's right-handed, Y-up coordinate system. Forward is -Z.
var (
	AxisX   = [3]float32{1, 0, 0}
	AxisY   = [3]float32{0, 1, 0}
	AxisZ   = [3]float32{0, 0, 1}
	Forward = [3]float32{0, 0, -1}
)

// IdentityQuat returns the quaternion representing no rotation.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns the rotation of angle radians about a unit axis.
//
// Parameters:
//   - axis: the unit rotation axis
//   - angle: the rotation angle in radians (right-handed)
//
// Returns:
//   - Quat: the rotation quaternion
func QuatFromAxisAngle(axis [3]float32, angle float32) Quat {
	halfAngle := angle / 2
	s := math32.Sin(halfAngle)
	return Quat{
		X: axis[0] * s,
		Y: axis[1] * s,
		Z: axis[2] * s,
		W: math32.Cos(halfAngle),
	}
}

// QuatFromBasis returns the rotation whose matrix has the given orthonormal columns.
//
// Parameters:
//   - right: the first column (local +X in world space)
//   - up: the second column (local +Y in world space)
//   - back: the third column (local +Z in world space)
//
// Returns:
//   - Quat: the rotation quaternion
func QuatFromBasis(right, up, back [3]float32) Quat {
	m11, m12, m13 := right[0], up[0], back[0]
	m21, m22, m23 := right[1], up[1], back[1]
	m31, m32, m33 := right[2], up[2], back[2]
	trace := m11 + m22 + m33

	var q Quat
	var s float32
	if trace > 0 {
		s = 0.5 / math32.Sqrt(trace+1.0)
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	} else if m11 > m22 && m11 > m33 {
		s = 2.0 * math32.Sqrt(1.0+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	} else if m22 > m33 {
		s = 2.0 * math32.Sqrt(1.0+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	} else {
		s = 2.0 * math32.Sqrt(1.0+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}
	return q
}

// LookRotation returns the rotation that points local forward (-Z) along direction,
// keeping local up as close to up as possible.
// If direction is zero or parallel to up the identity rotation is returned.
//
// Parameters:
//   - direction: the world-space direction to face
//   - up: the world-space reference up vector
//
// Returns:
//   - Quat: the rotation quaternion
func LookRotation(direction, up [3]float32) Quat {
	back := NormalizeVec3(ScaleVec3(direction, -1))
	right := CrossVec3(up, back)
	if LengthVec3(right) < 1e-8 || LengthVec3(back) < 1e-8 {
		return IdentityQuat()
	}
	right = NormalizeVec3(right)
	return QuatFromBasis(right, CrossVec3(back, right), back)
}

// Mul returns q * other: the rotation other followed by q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.X*other.W + q.W*other.X + q.Y*other.Z - q.Z*other.Y,
		Y: q.Y*other.W + q.W*other.Y + q.Z*other.X - q.X*other.Z,
		Z: q.Z*other.W + q.W*other.Z + q.X*other.Y - q.Y*other.X,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Length returns the length of this quaternion.
func (q Quat) Length() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns q scaled to unit length; a zero quaternion becomes the identity.
func (q Quat) Normalize() Quat {
	l := q.Length()
	if l == 0 {
		return IdentityQuat()
	}
	l = 1 / l
	return Quat{X: q.X * l, Y: q.Y * l, Z: q.Z * l, W: q.W * l}
}

// Conjugate returns the conjugate of q, which is its inverse for unit quaternions.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to a vector.
//
// Parameters:
//   - v: the vector to rotate
//
// Returns:
//   - [3]float32: the rotated vector
func (q Quat) Rotate(v [3]float32) [3]float32 {
	u := [3]float32{q.X, q.Y, q.Z}
	t := ScaleVec3(CrossVec3(u, v), 2)
	return AddVec3(AddVec3(v, ScaleVec3(t, q.W)), CrossVec3(u, t))
}

// Pitch returns the rotation angle about the local X axis in radians, assuming the
// rotation is composed as yaw (Y) then pitch (X) with no roll.
func (q Quat) Pitch() float32 {
	f := q.Rotate(Forward)
	horizontal := math32.Sqrt(f[0]*f[0] + f[2]*f[2])
	return math32.Atan2(f[1], horizontal)
}
