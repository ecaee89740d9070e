package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/gfx"
	"GPU_shape_exercises/model"
)

func assertColorNear(t *testing.T, expected, actual color.NRGBA, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.R, actual.R, delta, "R")
	assert.InDelta(t, expected.G, actual.G, delta, "G")
	assert.InDelta(t, expected.B, actual.B, delta, "B")
	assert.Equal(t, expected.A, actual.A, "A")
}

func TestCubeDepthTest(t *testing.T) {
	for _, tc := range []struct {
		depthTest bool
		center    color.NRGBA
	}{
		// the back face sits nearer to the viewer in normalized device coordinates
		{depthTest: true, center: color.NRGBA{R: 132, G: 124, B: 0, A: 255}},
		// without depth testing the front face, drawn later, wins
		{depthTest: false, center: color.NRGBA{R: 132, G: 124, B: 255, A: 255}},
	} {
		ctx := New(64, 64, 1, DefaultShaders())
		ctx.SetClearColor(1, 1, 1, 1)
		ctx.EnableDepthTest(tc.depthTest)
		ctx.Clear()

		cube, err := model.NewCube(ctx)
		require.NoError(t, err)
		require.NoError(t, cube.Render())

		assert.Equal(t, 4, ctx.Triangles, "side faces are edge on and skipped")
		img := ctx.color
		assertColorNear(t, tc.center, img.NRGBAAt(32, 32), 3)
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(0, 0))
	}
}

func TestConeCoversDisk(t *testing.T) {
	ctx := New(64, 64, 1, DefaultShaders())
	ctx.SetClearColor(0.3, 0.6, 0.9, 1)
	ctx.Clear()

	cone, err := model.NewCone(ctx)
	require.NoError(t, err)
	require.NoError(t, cone.Render())

	assert.Equal(t, 40, ctx.Triangles)
	sky := toNRGBA(mgl32.Vec4{0.3, 0.6, 0.9, 1})
	assert.Equal(t, sky, ctx.color.NRGBAAt(1, 1))
	assert.NotEqual(t, sky, ctx.color.NRGBAAt(32, 32))
	assert.NotEqual(t, sky, ctx.color.NRGBAAt(50, 32))
}

func TestTimeRotatesCube(t *testing.T) {
	render := func(seconds float32) color.NRGBA {
		ctx := New(64, 64, 1, DefaultShaders())
		ctx.EnableDepthTest(true)
		cube, err := model.NewCube(ctx)
		require.NoError(t, err)
		cube.SetTime(seconds)
		require.NoError(t, cube.Render())
		return ctx.color.NRGBAAt(32, 32)
	}
	assert.NotEqual(t, render(0), render(1))
}

func TestUnknownShaderIsShaderError(t *testing.T) {
	ctx := New(8, 8, 1, DefaultShaders())
	_, err := model.NewCone(ctx, model.WithShaders("Cone-vertex-shader", "nope"))
	var se *gfx.ShaderError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, gfx.ErrUnknownShader)
}

func TestLocations(t *testing.T) {
	ctx := New(8, 8, 1, DefaultShaders())
	p, err := ctx.CreateProgram("Cube-vertex-shader", "Cube-fragment-shader")
	require.NoError(t, err)

	loc, err := ctx.AttribLocation(p, "aPosition")
	require.NoError(t, err)
	assert.Equal(t, 0, loc)
	_, err = ctx.AttribLocation(p, "aNormal")
	assert.ErrorIs(t, err, gfx.ErrUnknownAttribute)
	_, err = ctx.UniformLocation(p, "uColor")
	assert.ErrorIs(t, err, gfx.ErrUnknownUniform)
	_, err = ctx.AttribLocation(gfx.Program(9), "aPosition")
	assert.ErrorIs(t, err, gfx.ErrUnknownProgram)
}

func TestDrawOutOfRangeDrawsNothing(t *testing.T) {
	ctx := New(8, 8, 1, DefaultShaders())
	p, err := ctx.CreateProgram("Cube-vertex-shader", "Cube-fragment-shader")
	require.NoError(t, err)
	ib, err := ctx.CreateBuffer(gfx.ElementArrayBuffer, gfx.Uint16Bytes([]uint16{0, 1, 2}))
	require.NoError(t, err)

	ctx.UseProgram(p)
	ctx.BindIndexBuffer(ib)
	ctx.DrawElements(gfx.Triangles, 3, gfx.UnsignedShort, 2)
	ctx.UnbindIndexBuffer()
	ctx.DrawElements(gfx.Triangles, 3, gfx.UnsignedShort, 0)
	assert.Equal(t, 0, ctx.Triangles)
}

func TestExplicitTransformOverridesViewProjection(t *testing.T) {
	ctx := New(32, 32, 1, DefaultShaders())
	ctx.SetViewProjection(mgl32.Scale3D(0, 0, 0))
	cone, err := model.NewCone(ctx)
	require.NoError(t, err)
	require.NoError(t, cone.Render())
	assert.Equal(t, 0, ctx.Triangles, "collapsed transform leaves only degenerate triangles")

	p, err := ctx.CreateProgram("Cone-vertex-shader", "Cone-fragment-shader")
	require.NoError(t, err)
	loc, err := ctx.UniformLocation(p, "uTransform")
	require.NoError(t, err)
	ctx.UseProgram(p)
	ctx.UniformMatrix4fv(loc, mgl32.Ident4())
	assert.True(t, ctx.programs[p-1].hasTransform)
}

func TestSupersampledPNG(t *testing.T) {
	ctx := New(16, 12, 3, DefaultShaders())
	ctx.SetClearColor(0, 0, 0, 1)
	ctx.Clear()

	var buf bytes.Buffer
	require.NoError(t, ctx.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())
	r, g, b, a := img.At(8, 6).RGBA()
	assert.Equal(t, []uint32{0, 0, 0, 0xffff}, []uint32{r, g, b, a})
}
