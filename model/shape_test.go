package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/gfx"
	"GPU_shape_exercises/gfx/gfxtest"
)

func TestCubeRenderSequence(t *testing.T) {
	rec := gfxtest.NewRecorder()
	cube, err := NewCube(rec)
	require.NoError(t, err)
	require.Equal(t, Ready, cube.State())

	rec.Reset()
	require.NoError(t, cube.Render())

	ops := rec.Ops()
	assert.Equal(t, []string{"UseProgram", "EnableVertexAttrib", "BindIndexBuffer"}, ops[:3])
	assert.Equal(t, []string{"DisableVertexAttrib", "UnbindIndexBuffer"}, ops[len(ops)-2:])

	require.Len(t, rec.Draws, 12)
	for i, d := range rec.Draws {
		assert.Equal(t, gfxtest.Draw{Mode: gfx.Triangles, Count: 3, Type: gfx.UnsignedShort, ByteOffset: i * 6}, d)
	}
}

func TestConeRenderSequence(t *testing.T) {
	rec := gfxtest.NewRecorder()
	cone, err := NewCone(rec)
	require.NoError(t, err)
	assert.Equal(t, 22, cone.Geometry().VertexCount())

	rec.Reset()
	require.NoError(t, cone.Render())
	assert.Equal(t, []gfxtest.Draw{
		{Mode: gfx.TriangleFan, Count: 22, Type: gfx.UnsignedShort, ByteOffset: 0},
		{Mode: gfx.TriangleFan, Count: 22, Type: gfx.UnsignedShort, ByteOffset: 44},
	}, rec.Draws)
}

func TestRenderRestoresStateAndRepeats(t *testing.T) {
	rec := gfxtest.NewRecorder()
	cube, err := NewCube(rec)
	require.NoError(t, err)

	assert.Empty(t, rec.Enabled)
	assert.Equal(t, gfx.NoBuffer, rec.Index)

	rec.Reset()
	require.NoError(t, cube.Render())
	first := rec.Calls

	assert.Empty(t, rec.Enabled)
	assert.Equal(t, gfx.NoBuffer, rec.Index)

	rec.Reset()
	require.NoError(t, cube.Render())
	assert.Equal(t, first, rec.Calls)
}

func TestInvalidShaderFailsConstruction(t *testing.T) {
	rec := gfxtest.NewRecorder()
	rec.FailShaders["missing-fragment"] = true

	cube, err := NewCube(rec, WithShaders("", "missing-fragment"))
	require.Error(t, err)

	var se *gfx.ShaderError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Cube", se.Shape)
	assert.Equal(t, "Cube-vertex-shader", se.VertexID)
	assert.Equal(t, "missing-fragment", se.FragmentID)
	assert.ErrorIs(t, err, gfx.ErrUnknownShader)

	assert.Equal(t, Failed, cube.State())
	assert.Equal(t, []string{"CreateProgram"}, rec.Ops(), "no buffers are created after a failed compile")

	rec.Reset()
	assert.ErrorIs(t, cube.Render(), gfx.ErrNotReady)
	assert.ErrorIs(t, cube.Render(), gfx.ErrNotReady)
	assert.Empty(t, rec.Calls)
	assert.Empty(t, rec.Draws)
}

func TestDefaultAndOverriddenShaderIDs(t *testing.T) {
	rec := gfxtest.NewRecorder()
	_, err := NewCone(rec)
	require.NoError(t, err)
	assert.Equal(t, []any{"Cone-vertex-shader", "Cone-fragment-shader"}, rec.Calls[0].Args)

	rec = gfxtest.NewRecorder()
	_, err = NewCone(rec, WithShaders("v", "f"), WithSides(5))
	require.NoError(t, err)
	assert.Equal(t, []any{"v", "f"}, rec.Calls[0].Args)
}

func TestCubeIgnoresSides(t *testing.T) {
	rec := gfxtest.NewRecorder()
	cube, err := NewCube(rec, WithSides(3))
	require.NoError(t, err)
	assert.Equal(t, 24, cube.Geometry().VertexCount())
}

func TestConeSidesOption(t *testing.T) {
	rec := gfxtest.NewRecorder()
	cone, err := NewCone(rec, WithSides(7))
	require.NoError(t, err)
	assert.Equal(t, 9, cone.Geometry().VertexCount())

	_, err = NewCone(rec, WithSides(2))
	assert.Error(t, err)
}

func TestSetTime(t *testing.T) {
	rec := gfxtest.NewRecorder()
	rec.Uniforms = map[string]bool{"t": true}
	cube, err := NewCube(rec)
	require.NoError(t, err)
	require.True(t, cube.HasTime())

	cube.SetTime(1.5)
	assert.Contains(t, rec.Values1f, 0)
	assert.Equal(t, float32(1.5), rec.Values1f[0])

	rec = gfxtest.NewRecorder()
	rec.Uniforms = map[string]bool{}
	cone, err := NewCone(rec)
	require.NoError(t, err)
	assert.False(t, cone.HasTime())
	rec.Reset()
	cone.SetTime(1)
	assert.Empty(t, rec.Calls)
}

func TestTimeUniformLookupFailure(t *testing.T) {
	lost := errors.New("context lost")
	rec := gfxtest.NewRecorder()
	rec.UniformErr = lost
	cube, err := NewCube(rec)
	assert.ErrorIs(t, err, lost)
	assert.Equal(t, Failed, cube.State())

	rec.Reset()
	assert.ErrorIs(t, cube.Render(), gfx.ErrNotReady)
	assert.Empty(t, rec.Draws)
}

func TestNilContext(t *testing.T) {
	s, err := NewCube(nil)
	assert.Error(t, err)
	assert.Equal(t, Failed, s.State())
	assert.ErrorIs(t, s.Render(), gfx.ErrNotReady)

	var none *Shape
	assert.Equal(t, Uninitialized, none.State())
	assert.ErrorIs(t, none.Render(), gfx.ErrNotReady)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Ready", Ready.String())
	assert.Equal(t, "State(9)", State(9).String())
}
