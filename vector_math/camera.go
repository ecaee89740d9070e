package vector_math

import (
	"log"

	"github.com/chewxy/math32"
)

const (
	CAM_PERSPECTIVE_PROJECTION = iota
	CAM_ORTHOGRAPHIC_PROJECTION
)

// Camera produces the view-projection transform the desktop hosts hand to
// the shaders as uTransform.
type Camera struct {
	Projection int

	// Projection matrix precursors
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	Pos    Vec3
	Target Vec3
	Up     Vec3
}

func NewCamera(fov float32, near float32, far float32) *Camera {
	return &Camera{
		Fov:    fov,
		Aspect: 1,
		Near:   near,
		Far:    far,
		Pos:    Vec3{Z: -3},
		Up:     Vec3{Y: -1},
	}
}

// Orbit places the camera on a circle of the given radius around the z axis
// through Target, at angle rad and lifted by height along z. Hosts drawing
// the z-up shapes pair it with Up {Z: 1}.
func (c *Camera) Orbit(radius float32, rad float32, height float32) {
	c.Pos = c.Target.Add(Vec3{
		X: radius * math32.Sin(rad),
		Y: -radius * math32.Cos(rad),
		Z: height,
	})
}

func (c *Camera) GetProjection() Mat4 {
	switch c.Projection {
	case CAM_PERSPECTIVE_PROJECTION:
		return newPerspectiveProjection(ToRad(c.Fov), c.Aspect, c.Near, c.Far)
	case CAM_ORTHOGRAPHIC_PROJECTION:
		return newOrthographicProjection(
			Vec3{X: -c.Aspect, Y: -1, Z: c.Near}, Vec3{X: c.Aspect, Y: 1, Z: c.Far},
		)
	default:
		log.Printf("Failed to select projection type, returning identity.")
		return NewUnitMat()
	}
}

func (c *Camera) GetView() Mat4 {
	return NewTargetView(c.Pos, c.Target, c.Up)
}

func (c *Camera) ViewProjection() Mat4 {
	return c.GetProjection().Mult(c.GetView())
}

// newPerspectiveProjection maps the view frustum on to Vulkan's canonical view
// volume, which has depth in [0, 1].
func newPerspectiveProjection(fovy float32, aspect float32, near float32, far float32) Mat4 {
	focalLen := 1 / math32.Tan(fovy/2)
	var m Mat4
	m[0][0] = focalLen / aspect
	m[1][1] = focalLen
	m[2][2] = far / (far - near)
	m[2][3] = -(far * near) / (far - near)
	m[3][2] = 1
	return m
}

// newOrthographicProjection moves the cuboid spanning from lbn (Left-Bottom-Near)
// to rtf (Right-Top-Far) into the canonical view volume.
func newOrthographicProjection(lbn Vec3, rtf Vec3) Mat4 {
	mScale := NewScale(Vec3{
		X: 2 / (rtf.X - lbn.X),
		Y: 2 / (rtf.Y - lbn.Y),
		Z: 1 / (rtf.Z - lbn.Z),
	})
	mTrans := NewTranslation(Vec3{
		X: -(rtf.X + lbn.X) / 2,
		Y: -(rtf.Y + lbn.Y) / 2,
		Z: -lbn.Z,
	})
	return mScale.Mult(mTrans)
}

func NewDirectionView(pos Vec3, dir Vec3, up Vec3) Mat4 {
	// orthonormal basis
	w := dir.Norm()
	u := w.Cross(up).Norm()
	v := w.Cross(u)
	m := NewUnitMat()
	m[0][0], m[0][1], m[0][2] = u.X, u.Y, u.Z
	m[1][0], m[1][1], m[1][2] = v.X, v.Y, v.Z
	m[2][0], m[2][1], m[2][2] = w.X, w.Y, w.Z
	m[0][3] = -u.Dot(pos)
	m[1][3] = -v.Dot(pos)
	m[2][3] = -w.Dot(pos)
	return m
}

func NewTargetView(pos Vec3, target Vec3, up Vec3) Mat4 {
	d := target.Sub(pos)
	if d.Len() == 0 {
		log.Printf("Failed to calculate view direction, target - position = [0,0,0]. Setting d to z-axis.")
		d = Vec3{Z: 1}
	}
	return NewDirectionView(pos, d, up)
}
