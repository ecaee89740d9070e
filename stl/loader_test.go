package stl

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/model"
)

func TestCubeRoundTrip(t *testing.T) {
	cube := model.NewCubeGeometry()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "Cube", cube))
	assert.Equal(t, HEADER_SIZE+4+12*TRIANGLE_SIZE, buf.Len())
	assert.Equal(t, "Cube", string(buf.Bytes()[:4]))

	g, err := Decode(&buf)
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	assert.Equal(t, 36, g.VertexCount())

	// triangle soup reproduces the positions of the expanded source triangles
	for i, tri := range cube.Triangles() {
		for v := 0; v < 3; v++ {
			assert.Equal(t, cube.Vertex(tri[v]), g.Vertex(uint32(3*i+v)))
		}
	}
}

func TestConeNormals(t *testing.T) {
	cone, err := model.NewConeGeometry(8)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "Cone", cone))

	// the first triangle belongs to the base fan, which faces -Z
	first := buf.Bytes()[HEADER_SIZE+4:]
	n := toVec3(first[:12])
	assert.InDelta(t, -1, n.Z, 1e-6)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cone.stl")
	cone, err := model.NewConeGeometry(5)
	require.NoError(t, err)
	require.NoError(t, WriteStlFile(path, "Cone", cone))

	g, err := ReadStlFile(path)
	require.NoError(t, err)
	assert.Len(t, g.Triangles(), len(cone.Triangles()))
}

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode(bytes.NewReader(make([]byte, 10)))
	assert.ErrorIs(t, err, ErrTruncated)

	header := make([]byte, HEADER_SIZE+4)
	header[HEADER_SIZE] = 2
	_, err = Decode(bytes.NewReader(append(header, make([]byte, TRIANGLE_SIZE)...)))
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = Decode(bytes.NewReader(make([]byte, HEADER_SIZE+4)))
	assert.Error(t, err)
}
