package gfx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/gfx"
	"GPU_shape_exercises/gfx/gfxtest"
)

func TestIndexTypeByteWidth(t *testing.T) {
	assert.Equal(t, 2, gfx.UnsignedShort.ByteWidth())
	assert.Equal(t, 4, gfx.UnsignedInt.ByteWidth())
}

func TestByteEncoding(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, gfx.Float32Bytes([]float32{1}))
	assert.Equal(t, []byte{0x01, 0x00, 0x02, 0x01}, gfx.Uint16Bytes([]uint16{1, 258}))
}

func TestAttributeUploadsAndToggles(t *testing.T) {
	rec := gfxtest.NewRecorder()
	p, err := rec.CreateProgram("v", "f")
	require.NoError(t, err)

	a, err := gfx.NewAttribute(rec, p, []float32{0, 0, 0, 1, 1, 1}, "aPosition", 3, gfx.Float)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Count)
	assert.Equal(t, gfx.ArrayBuffer, rec.Targets[a.Buffer])
	assert.Len(t, rec.Buffers[a.Buffer], 24)

	a.Enable()
	assert.Equal(t, a.Buffer, rec.Enabled[a.Location])
	a.Disable()
	assert.Empty(t, rec.Enabled)
}

func TestAttributeRejectsRaggedData(t *testing.T) {
	rec := gfxtest.NewRecorder()
	p, _ := rec.CreateProgram("v", "f")
	_, err := gfx.NewAttribute(rec, p, []float32{0, 1}, "aPosition", 3, gfx.Float)
	assert.Error(t, err)
	_, err = gfx.NewAttribute(rec, gfx.Program(42), []float32{0, 1, 2}, "aPosition", 3, gfx.Float)
	assert.ErrorIs(t, err, gfx.ErrUnknownProgram)
}

func TestIndicesExposeCountAndType(t *testing.T) {
	rec := gfxtest.NewRecorder()
	ix, err := gfx.NewIndices(rec, []uint16{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Count)
	assert.Equal(t, gfx.UnsignedShort, ix.Type)
	assert.Equal(t, gfx.ElementArrayBuffer, rec.Targets[ix.Buffer])

	ix.Enable()
	assert.Equal(t, ix.Buffer, rec.Index)
	ix.Disable()
	assert.Equal(t, gfx.NoBuffer, rec.Index)

	_, err = gfx.NewIndices(rec, nil)
	assert.Error(t, err)
}

func TestUniformSet(t *testing.T) {
	rec := gfxtest.NewRecorder()
	rec.Uniforms = map[string]bool{"t": true}
	p, _ := rec.CreateProgram("v", "f")

	u, err := gfx.NewUniform(rec, p, "t")
	require.NoError(t, err)
	u.Set1f(2.5)
	assert.Equal(t, float32(2.5), rec.Values1f[u.Location])

	_, err = gfx.NewUniform(rec, p, "uMissing")
	assert.ErrorIs(t, err, gfx.ErrUnknownUniform)
}

func TestShaderErrorNamesBothShaders(t *testing.T) {
	cause := errors.New("compile failed")
	err := error(&gfx.ShaderError{Shape: "Cube", VertexID: "Cube-vertex-shader", FragmentID: "Cube-fragment-shader", Err: cause})

	assert.Contains(t, err.Error(), "Cube-vertex-shader")
	assert.Contains(t, err.Error(), "Cube-fragment-shader")
	assert.ErrorIs(t, err, cause)

	var se *gfx.ShaderError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Cube", se.Shape)
}
