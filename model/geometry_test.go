package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/gfx"
)

func TestCubePositions(t *testing.T) {
	g := NewCubeGeometry()
	require.NoError(t, g.Validate())
	require.Equal(t, 24, g.VertexCount())

	expected := []float32{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, // back
		1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 1, 1, // right
		0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, // front
		0, 0, 0, 0, 0, 1, 0, 1, 1, 0, 1, 0, // left
		0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1, 0, // top
		0, 0, 0, 1, 0, 0, 1, 0, 1, 0, 0, 1, // bottom
	}
	assert.Equal(t, expected, g.Positions)
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func triangleNormal(g *Geometry, tri []uint16) [3]float32 {
	a, b, c := g.Vertex(uint32(tri[0])), g.Vertex(uint32(tri[1])), g.Vertex(uint32(tri[2]))
	return cross3(sub3(b, a), sub3(c, a))
}

func TestCubeFacesAreSimpleQuads(t *testing.T) {
	g := NewCubeGeometry()
	require.Len(t, g.Indices, 36)

	for f := 0; f < 6; f++ {
		first := triangleNormal(g, g.Indices[6*f:6*f+3])
		second := triangleNormal(g, g.Indices[6*f+3:6*f+6])

		// each half of a unit face covers half of it
		assert.Equal(t, float32(1), dot3(first, first), "face %d first triangle", f)
		assert.Equal(t, float32(1), dot3(second, second), "face %d second triangle", f)
		// crossed corners flip the second triangle over the shared diagonal
		assert.Equal(t, float32(1), dot3(first, second), "face %d winds consistently", f)
	}
}

func TestCubeIndices(t *testing.T) {
	g := NewCubeGeometry()
	require.Len(t, g.Indices, 36)
	require.Len(t, g.Batches, 12)
	for _, b := range g.Batches {
		assert.Equal(t, Batch{Mode: gfx.Triangles, Count: 3}, b)
	}
	for _, idx := range g.Indices {
		assert.Less(t, int(idx), 24)
	}
	// the two triangles of a face only use that face's vertices
	for f := 0; f < 6; f++ {
		for _, idx := range g.Indices[f*6 : (f+1)*6] {
			assert.Equal(t, f, int(idx)/4)
		}
	}
}

func TestConePositions(t *testing.T) {
	for _, n := range []int{3, 8, 20} {
		g, err := NewConeGeometry(n)
		require.NoError(t, err)
		require.NoError(t, g.Validate())
		require.Equal(t, n+2, g.VertexCount())

		assert.Equal(t, []float32{0, 0, 0}, g.Positions[:3], "center")
		for i := 0; i < n; i++ {
			p := g.Positions[3*(i+1) : 3*(i+2)]
			theta := 2 * math.Pi * float64(i) / float64(n)
			assert.InDelta(t, math.Cos(theta), p[0], 1e-6)
			assert.InDelta(t, math.Sin(theta), p[1], 1e-6)
			assert.Equal(t, float32(0), p[2])
		}
		assert.Equal(t, []float32{0, 0, 1}, g.Positions[3*(n+1):], "apex")
	}
}

func TestConeFans(t *testing.T) {
	g, err := NewConeGeometry(4)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 4, 3, 2, 1, 4, 5, 1, 2, 3, 4, 1}, g.Indices)
	assert.Equal(t, []Batch{{gfx.TriangleFan, 6}, {gfx.TriangleFan, 6}}, g.Batches)
}

func TestConeRejectsDegenerateSides(t *testing.T) {
	_, err := NewConeGeometry(2)
	assert.Error(t, err)
	_, err = NewConeGeometry(CONE_MAX_SIDES + 1)
	assert.Error(t, err)
}

func TestBatchOffsetsCoverIndexTable(t *testing.T) {
	cone, _ := NewConeGeometry(20)
	for _, g := range []*Geometry{NewCubeGeometry(), cone} {
		offsets := g.Offsets(gfx.UnsignedShort)
		require.Len(t, offsets, len(g.Batches))
		assert.Equal(t, 0, offsets[0])
		for i := 1; i < len(offsets); i++ {
			step := offsets[i] - offsets[i-1]
			assert.Equal(t, g.Batches[i-1].Count*2, step)
		}
		last := len(offsets) - 1
		assert.Equal(t, len(g.Indices)*2, offsets[last]+g.Batches[last].Count*2)
	}
}

func TestValidateRejectsBrokenTables(t *testing.T) {
	g := &Geometry{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:   []uint16{0, 1, 3},
		Batches:   []Batch{{gfx.Triangles, 3}},
	}
	assert.Error(t, g.Validate())

	g.Indices = []uint16{0, 1, 2}
	assert.NoError(t, g.Validate())

	g.Batches = []Batch{{gfx.Triangles, 2}}
	assert.Error(t, g.Validate())

	g.Batches = nil
	assert.Error(t, g.Validate())

	g.Positions = g.Positions[:8]
	assert.Error(t, g.Validate())
}

func TestTrianglesExpandBatches(t *testing.T) {
	cone, err := NewConeGeometry(6)
	require.NoError(t, err)
	// n triangles for the base fan plus n for the lateral fan
	assert.Len(t, cone.Triangles(), 12)
	assert.Len(t, NewCubeGeometry().Triangles(), 12)
	assert.Equal(t, [3]float32{0, 0, 1}, cone.Vertex(7))
}
