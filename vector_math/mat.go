package vector_math

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Mat4 is a row-major 4x4 matrix. Points are column vectors, so
// a.Mult(b) applies b first.
type Mat4 [4][4]float32

const MAT4_BYTE_SIZE = 16 * 4

func NewUnitMat() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func (m Mat4) Mult(b Mat4) Mat4 {
	var c Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				c[i][j] += m[i][k] * b[k][j]
			}
		}
	}
	return c
}

func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for i := range m {
		for j := range m[i] {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// ApproxEquals compares element-wise with an absolute tolerance.
func (m Mat4) ApproxEquals(b Mat4, eps float32) bool {
	for i := range m {
		for j := range m[i] {
			if math32.Abs(m[i][j]-b[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// ColumnMajor unrolls the matrix in the order GLSL mat4 uniforms and push
// constants are laid out in memory.
func (m Mat4) ColumnMajor() [16]float32 {
	var f [16]float32
	for c, col := range m.Transpose() {
		copy(f[c*4:], col[:])
	}
	return f
}

func (m Mat4) ToString() string {
	mStr := strings.Builder{}
	for i := range m {
		if i > 0 {
			mStr.WriteString("\n")
		}
		mStr.WriteString(fmt.Sprintf("%v", m[i]))
	}
	return mStr.String()
}

func NewRotation(rad float32, axis Vec3) Mat4 {
	u := axis.Norm()
	cosT := math32.Cos(rad)
	sinT := math32.Sin(rad)
	rm := NewUnitMat()
	rm[0][0] = cosT + (u.X*u.X)*(1-cosT)
	rm[0][1] = (u.X*u.Y)*(1-cosT) - (u.Z * sinT)
	rm[0][2] = (u.X*u.Z)*(1-cosT) + (u.Y * sinT)

	rm[1][0] = (u.Y*u.X)*(1-cosT) + (u.Z * sinT)
	rm[1][1] = cosT + (u.Y*u.Y)*(1-cosT)
	rm[1][2] = (u.Y*u.Z)*(1-cosT) - (u.X * sinT)

	rm[2][0] = (u.Z*u.X)*(1-cosT) - (u.Y * sinT)
	rm[2][1] = (u.Z*u.Y)*(1-cosT) + (u.X * sinT)
	rm[2][2] = cosT + (u.Z*u.Z)*(1-cosT)
	return rm
}

func NewScale(s Vec3) Mat4 {
	sm := NewUnitMat()
	sm[0][0] = s.X
	sm[1][1] = s.Y
	sm[2][2] = s.Z
	return sm
}

func NewTranslation(t Vec3) Mat4 {
	tm := NewUnitMat()
	tm[0][3] = t.X
	tm[1][3] = t.Y
	tm[2][3] = t.Z
	return tm
}
