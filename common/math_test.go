package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul4Identity(t *testing.T) {
	var id, out [16]float32
	Identity(id[:])
	m := TransformAt(1, 2, 3).Matrix()

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{
		Position: [3]float32{10, 0, -5},
		Rotation: QuatFromAxisAngle(AxisY, math32.Pi/2),
		Scale:    [3]float32{2, 2, 2},
	}
	m := tr.Matrix()

	// local +X scaled by 2, yawed a quarter turn to -Z, then translated
	assertVec3InDelta(t, [3]float32{10, 0, -7}, TransformPoint(m[:], AxisX))
	assertVec3InDelta(t, tr.Position, TransformPoint(m[:], [3]float32{}))
}

func TestTransformMulMatchesMatrixProduct(t *testing.T) {
	parent := Transform{
		Position: [3]float32{1, 2, 3},
		Rotation: QuatFromAxisAngle(AxisY, 0.7),
		Scale:    [3]float32{2, 2, 2},
	}
	child := Transform{
		Position: [3]float32{0, 1, -4},
		Rotation: QuatFromAxisAngle(AxisX, -0.3),
		Scale:    [3]float32{1, 1, 1},
	}
	world := parent.Mul(child)

	pm, cm := parent.Matrix(), child.Matrix()
	var want [16]float32
	Mul4(want[:], pm[:], cm[:])
	got := world.Matrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "element %d", i)
	}

	assert.Equal(t, child, NewTransform().Mul(child))
}

func TestTransformInverse(t *testing.T) {
	parent := Transform{
		Position: [3]float32{5, 1, -2},
		Rotation: QuatFromAxisAngle(AxisY, 0.9),
		Scale:    [3]float32{2, 2, 2},
	}
	world := Transform{
		Position: [3]float32{-3, 7, 4},
		Rotation: QuatFromAxisAngle(AxisX, -0.65),
		Scale:    [3]float32{1, 1, 1},
	}

	local := parent.Inverse().Mul(world)
	got := parent.Mul(local)
	for i := range 3 {
		assert.InDelta(t, world.Position[i], got.Position[i], 1e-4)
		assert.InDelta(t, world.Scale[i], got.Scale[i], 1e-4)
	}
	assert.InDelta(t, world.Rotation.X, got.Rotation.X, 1e-4)
	assert.InDelta(t, world.Rotation.Y, got.Rotation.Y, 1e-4)
	assert.InDelta(t, world.Rotation.Z, got.Rotation.Z, 1e-4)
	assert.InDelta(t, world.Rotation.W, got.Rotation.W, 1e-4)

	flat := Transform{Rotation: IdentityQuat(), Scale: [3]float32{1, 0, 1}}
	assert.Equal(t, float32(0), flat.Inverse().Scale[1])
}

func TestInvert4(t *testing.T) {
	tr := Transform{
		Position: [3]float32{3, 4, 5},
		Rotation: QuatFromAxisAngle(AxisX, -0.65),
		Scale:    [3]float32{1, 1, 1},
	}
	m := tr.Matrix()
	var inv, prod, id [16]float32
	require.True(t, Invert4(inv[:], m[:]))
	Mul4(prod[:], m[:], inv[:])
	Identity(id[:])
	for i := range id {
		assert.InDelta(t, id[i], prod[i], eps)
	}

	var singular [16]float32
	assert.False(t, Invert4(inv[:], singular[:]))
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 10, 10, 0, 0, 0, 0, 1, 0)
	assertVec3InDelta(t, [3]float32{}, TransformPoint(view[:], [3]float32{0, 10, 10}))
	// the target lies straight ahead on -Z in view space
	p := TransformPoint(view[:], [3]float32{})
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 0, p[1], eps)
	assert.Less(t, p[2], float32(0))
}

func TestVec3Helpers(t *testing.T) {
	a := [3]float32{1, 2, 3}
	b := [3]float32{4, 5, 6}
	assert.Equal(t, [3]float32{5, 7, 9}, AddVec3(a, b))
	assert.Equal(t, [3]float32{-3, -3, -3}, SubVec3(a, b))
	assert.Equal(t, [3]float32{2, 4, 6}, ScaleVec3(a, 2))
	assert.Equal(t, float32(32), DotVec3(a, b))
	assert.Equal(t, AxisZ, CrossVec3(AxisX, AxisY))
	assert.Equal(t, float32(5), LengthVec3([3]float32{3, 4, 0}))
	assert.Equal(t, [3]float32{0, 1, 0}, NormalizeVec3([3]float32{0, 7, 0}))
	assert.Equal(t, [3]float32{}, NormalizeVec3([3]float32{}))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes[float32](nil))
	assert.Len(t, SliceToBytes([]Vertex{{}, {}}), 48)
}

func TestClampLerpCoalesce(t *testing.T) {
	assert.Equal(t, float32(5), Clamp(float32(1), 5, 50))
	assert.Equal(t, float32(50), Clamp(float32(99), 5, 50))
	assert.Equal(t, 7, Clamp(7, 5, 50))
	assert.Equal(t, float32(100), Lerp(0, 200, 0.5))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestKeyNames(t *testing.T) {
	name, ok := KeyName(KeyX)
	require.True(t, ok)
	assert.Equal(t, "KeyX", name)

	name, ok = KeyName(Key('B'))
	require.True(t, ok)
	assert.Equal(t, "KeyB", name)

	k, ok := ParseKey("Digit7")
	require.True(t, ok)
	assert.Equal(t, Key('7'), k)

	k, ok = ParseKey("Escape")
	require.True(t, ok)
	assert.Equal(t, KeyEsc, k)

	_, ok = ParseKey("Hyper")
	assert.False(t, ok)
	_, ok = KeyName(Key(9999))
	assert.False(t, ok)

	b, ok := ParseButton("MouseRight")
	require.True(t, ok)
	assert.Equal(t, MouseButtonRight, b)
	name, ok = ButtonName(MouseButtonMiddle)
	require.True(t, ok)
	assert.Equal(t, "MouseMiddle", name)
	_, ok = ParseButton("MouseSixth")
	assert.False(t, ok)
}
