package config

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraEyeOrbits(t *testing.T) {
	cam := Default(SHAPE_CUBE).Camera
	e0 := cam.Eye(0)
	assert.InDelta(t, 0, e0.X(), 1e-6)
	assert.InDelta(t, -cam.Distance, e0.Y(), 1e-6)
	assert.InDelta(t, cam.Height, e0.Z(), 1e-6)

	e1 := cam.Eye(1)
	assert.InDelta(t, cam.Distance, e1.Vec2().Len(), 1e-5)
	assert.NotEqual(t, e0, e1)

	still := Default(SHAPE_CONE).Camera
	assert.Equal(t, still.Eye(0), still.Eye(10))
}

func TestGLViewProjection(t *testing.T) {
	cam := Default(SHAPE_CONE).Camera
	vp := mgl32.Mat4(cam.GLViewProjection(1, 0))

	origin := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := origin.Vec3().Mul(1 / origin.W())
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1)

	top := vp.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	assert.Greater(t, top.Y()/top.W(), float32(0), "z up appears at the top in GL")
}
