package raster

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"GPU_shape_exercises/gfx"
)

const MAX_ATTRIBS = 2

// Attribute and uniform names the software pipeline understands, with the
// locations programs report for them.
var (
	attribLocations = map[string]int{
		"aPosition": 0,
		"aColor":    1,
	}
	uniformLocations = map[string]int{
		"uTransform": UNIFORM_TRANSFORM,
		"t":          UNIFORM_TIME,
	}
)

const (
	UNIFORM_TRANSFORM = iota
	UNIFORM_TIME
)

// Uniforms is the uniform block every software shader receives.
type Uniforms struct {
	Transform mgl32.Mat4
	T         float32
}

// VertexShader turns the attributes of one vertex into a clip space position
// and a varying that is interpolated across the triangle.
type VertexShader func(attribs *[MAX_ATTRIBS]mgl32.Vec4, u *Uniforms) (position mgl32.Vec4, varying mgl32.Vec4)

// FragmentShader returns the RGBA color, each channel in [0, 1].
type FragmentShader func(varying mgl32.Vec4, u *Uniforms) mgl32.Vec4

// ShaderLibrary resolves shader identifiers to Go shader functions, taking
// the place of the <script> elements a browser page would hold.
type ShaderLibrary struct {
	vertex   map[string]VertexShader
	fragment map[string]FragmentShader
}

func NewShaderLibrary() *ShaderLibrary {
	return &ShaderLibrary{
		vertex:   map[string]VertexShader{},
		fragment: map[string]FragmentShader{},
	}
}

func (l *ShaderLibrary) AddVertex(id string, s VertexShader) {
	l.vertex[id] = s
}

func (l *ShaderLibrary) AddFragment(id string, s FragmentShader) {
	l.fragment[id] = s
}

func (l *ShaderLibrary) lookup(vertexID, fragmentID string) (VertexShader, FragmentShader, error) {
	vs, ok := l.vertex[vertexID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: no vertex shader %q", gfx.ErrUnknownShader, vertexID)
	}
	fs, ok := l.fragment[fragmentID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: no fragment shader %q", gfx.ErrUnknownShader, fragmentID)
	}
	return vs, fs, nil
}

// DefaultShaders holds the Go versions of the cone and cube shaders shipped
// in shaders/ and web/.
func DefaultShaders() *ShaderLibrary {
	l := NewShaderLibrary()
	l.AddVertex("Cone-vertex-shader", coneVertex)
	l.AddFragment("Cone-fragment-shader", passColor)
	l.AddVertex("Cube-vertex-shader", cubeVertex)
	l.AddFragment("Cube-fragment-shader", passColor)
	return l
}

// coneVertex centers the cone on its half height and shades it from the
// base toward the apex.
func coneVertex(a *[MAX_ATTRIBS]mgl32.Vec4, u *Uniforms) (mgl32.Vec4, mgl32.Vec4) {
	p := a[0].Vec3().Sub(mgl32.Vec3{0, 0, 0.5})
	z := a[0].Z()
	return u.Transform.Mul4x1(p.Vec4(1)), mgl32.Vec4{0.9, 0.4 + 0.5*z, 0.2, 1}
}

// cubeVertex spins the cube about its center by t radians and colors each
// corner by its position.
func cubeVertex(a *[MAX_ATTRIBS]mgl32.Vec4, u *Uniforms) (mgl32.Vec4, mgl32.Vec4) {
	center := mgl32.Vec3{0.5, 0.5, 0.5}
	rot := mgl32.HomogRotate3D(u.T, mgl32.Vec3{1, 1, 0}.Normalize())
	p := rot.Mul4x1(a[0].Vec3().Sub(center).Vec4(1))
	return u.Transform.Mul4x1(p), a[0].Vec3().Vec4(1)
}

func passColor(v mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	return v
}
