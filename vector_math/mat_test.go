package vector_math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotationAxes(t *testing.T) {
	quarter := ToRad(90)

	rx := NewRotation(quarter, Vec3{X: 1})
	assert.InDelta(t, 1, Apply(Vec3{Y: 1}, 1, rx).Z, 1e-6)

	ry := NewRotation(quarter, Vec3{Y: 1})
	assert.InDelta(t, 1, Apply(Vec3{Z: 1}, 1, ry).X, 1e-6)

	rz := NewRotation(quarter, Vec3{Z: 1})
	assert.InDelta(t, 1, Apply(Vec3{X: 1}, 1, rz).Y, 1e-6)
}

func TestArbitraryRotation(t *testing.T) {
	mr := NewRotation(ToRad(-74), Vec3{X: -0.5, Y: 1, Z: 1})
	expected := NewUnitMat()
	expected[0][0] = 0.3561221
	expected[0][1] = 0.47987163
	expected[0][2] = -0.8018106

	expected[1][0] = -0.8018106
	expected[1][1] = 0.5975763
	expected[1][2] = 0.0015183985

	expected[2][0] = 0.47987163
	expected[2][1] = 0.6423595
	expected[2][2] = 0.5975763

	assert.True(t, mr.ApproxEquals(expected, 1e-5), "actual:\n%s", mr.ToString())
}

func TestMultAppliesRightOperandFirst(t *testing.T) {
	tr := NewTranslation(Vec3{X: 1})
	sc := NewScale(Vec3{X: 2, Y: 2, Z: 2})

	p := Apply(Vec3{X: 1}, 1, tr.Mult(sc))
	assert.InDelta(t, 3, p.X, 1e-6)

	p = Apply(Vec3{X: 1}, 1, sc.Mult(tr))
	assert.InDelta(t, 4, p.X, 1e-6)
}

func TestColumnMajor(t *testing.T) {
	m := NewTranslation(Vec3{X: 1, Y: 2, Z: 3})
	f := m.ColumnMajor()
	assert.Equal(t, [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		1, 2, 3, 1,
	}, f)
	assert.Equal(t, m, m.Transpose().Transpose())
}

func TestPerspectiveDepthRange(t *testing.T) {
	cam := NewCamera(45, 0.1, 10)
	cam.Pos = Vec3{}
	cam.Target = Vec3{Z: 1}
	vp := cam.ViewProjection()

	near := Apply(Vec3{Z: 0.1}, 1, vp)
	far := Apply(Vec3{Z: 10}, 1, vp)
	assert.InDelta(t, 0, near.Z, 1e-5)
	assert.InDelta(t, 1, far.Z, 1e-5)
}

func TestOrthographicMapsCuboid(t *testing.T) {
	cam := NewCamera(45, 1, 5)
	cam.Projection = CAM_ORTHOGRAPHIC_PROJECTION
	cam.Aspect = 2
	p := cam.GetProjection()

	assert.InDelta(t, -1, Apply(Vec3{X: -2, Y: -1, Z: 1}, 1, p).X, 1e-6)
	assert.InDelta(t, 1, Apply(Vec3{X: 2, Y: 1, Z: 5}, 1, p).Y, 1e-6)
	assert.InDelta(t, 1, Apply(Vec3{X: 2, Y: 1, Z: 5}, 1, p).Z, 1e-6)
}

func TestTargetViewLooksDownZ(t *testing.T) {
	v := NewTargetView(Vec3{Z: -3}, Vec3{}, Vec3{Y: -1})
	p := Apply(Vec3{}, 1, v)
	assert.InDelta(t, 0, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
	assert.InDelta(t, 3, p.Z, 1e-6)
}

func TestFlattenRoundTrip(t *testing.T) {
	vs := []Vec3{{X: 1, Y: 2, Z: 3}, {X: -1}}
	f := Flatten(vs)
	assert.Equal(t, []float32{1, 2, 3, -1, 0, 0}, f)
	assert.Equal(t, vs, Unflatten(f))
	assert.Equal(t, Vec3{}, Vec3{}.Norm())
}

func TestOrbitKeepsTargetCenteredAndUpOnTop(t *testing.T) {
	cam := NewCamera(45, 0.1, 100)
	cam.Up = Vec3{Z: 1}
	cam.Orbit(4, 0.3, 1.5)
	assert.InDelta(t, float32(math.Sqrt(16+1.5*1.5)), cam.Pos.Len(), 1e-5)

	vp := cam.ViewProjection()
	center := Apply(Vec3{}, 1, vp)
	assert.InDelta(t, 0, center.X, 1e-5)
	assert.InDelta(t, 0, center.Y, 1e-5)
	assert.True(t, center.Z > 0 && center.Z < 1)

	// Vulkan's clip space y points down, so points above the target land at negative y
	above := Apply(Vec3{Z: 1}, 1, vp)
	assert.Less(t, above.Y, float32(0))
}
