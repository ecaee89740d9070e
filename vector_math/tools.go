package vector_math

import "github.com/chewxy/math32"

// ToRad turns degrees into radians
func ToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// ToDeg turns radians into degrees
func ToDeg(rad float32) float32 {
	return rad * 180 / math32.Pi
}

// Apply transforms v by m using the homogeneous coordinate w and performs the
// perspective divide when the result's w is neither 0 nor 1.
func Apply(v Vec3, w float32, m Mat4) Vec3 {
	in := [4]float32{v.X, v.Y, v.Z, w}
	var out [4]float32
	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			out[i] += m[i][k] * in[k]
		}
	}
	if out[3] != 0 && out[3] != 1 {
		return Vec3{X: out[0] / out[3], Y: out[1] / out[3], Z: out[2] / out[3]}
	}
	return Vec3{X: out[0], Y: out[1], Z: out[2]}
}
