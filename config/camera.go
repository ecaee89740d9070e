package config

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Angle is the orbit angle after seconds of animation.
func (c Camera) Angle(seconds float32) float32 {
	return c.Spin * seconds
}

// Eye is the camera position orbiting the z axis, the up axis of both shapes.
func (c Camera) Eye(seconds float32) mgl32.Vec3 {
	a := c.Angle(seconds)
	return mgl32.Vec3{c.Distance * math32.Sin(a), -c.Distance * math32.Cos(a), c.Height}
}

// GLViewProjection is the column-major transform for GL clip space (depth in
// [-1, 1], y up) looking from Eye at the origin.
func (c Camera) GLViewProjection(aspect float32, seconds float32) [16]float32 {
	proj := mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
	view := mgl32.LookAtV(c.Eye(seconds), mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})
	return proj.Mul4(view)
}
