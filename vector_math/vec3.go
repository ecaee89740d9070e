package vector_math

import "github.com/chewxy/math32"

type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: (v.Y * w.Z) - (v.Z * w.Y),
		Y: (v.Z * w.X) - (v.X * w.Z),
		Z: (v.X * w.Y) - (v.Y * w.X),
	}
}

func (v Vec3) Dot(w Vec3) float32 {
	return (v.X * w.X) + (v.Y * w.Y) + (v.Z * w.Z)
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

func (v Vec3) ScalarMul(factor float32) Vec3 {
	return Vec3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

func (v Vec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Norm returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.ScalarMul(1 / l)
}

// Flatten packs vectors into the x,y,z,x,y,z,... layout vertex buffers expect.
func Flatten(vs []Vec3) []float32 {
	f := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		f = append(f, v.X, v.Y, v.Z)
	}
	return f
}

// Unflatten is the inverse of Flatten. Trailing values that do not form a
// full triple are dropped.
func Unflatten(f []float32) []Vec3 {
	vs := make([]Vec3, len(f)/3)
	for i := range vs {
		vs[i] = Vec3{X: f[3*i], Y: f[3*i+1], Z: f[3*i+2]}
	}
	return vs
}
