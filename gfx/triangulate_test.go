package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriangulate(t *testing.T) {
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {3, 4, 5}}, Triangulate(Triangles, []uint32{0, 1, 2, 3, 4, 5, 6}))
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {0, 2, 3}, {0, 3, 1}}, Triangulate(TriangleFan, []uint32{0, 1, 2, 3, 1}))
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {2, 1, 3}}, Triangulate(TriangleStrip, []uint32{0, 1, 2, 3}))
	assert.Nil(t, Triangulate(TriangleFan, []uint32{0, 1}))
}
