package webgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/gfx"
)

func TestFloat32Words(t *testing.T) {
	values := []float32{0, 1, -0.5, 3.25}
	words, err := float32Words(gfx.Float32Bytes(values))
	require.NoError(t, err)
	assert.Equal(t, values, words)

	_, err = float32Words([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestUint16Words(t *testing.T) {
	indices := []uint16{0, 4, 3, 2, 1, 65535}
	words, err := uint16Words(gfx.Uint16Bytes(indices))
	require.NoError(t, err)
	assert.Equal(t, indices, words)

	// a 32 bit index splits into its low and high halves
	words, err = uint16Words([]byte{0x01, 0x00, 0x02, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2}, words)

	_, err = uint16Words([]byte{1})
	assert.Error(t, err)
}
