package gfxtest

import (
	"errors"
	"go/format"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/gfx"
)

func TestSourcesAreGofmtClean(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		src, err := os.ReadFile(f)
		require.NoError(t, err)
		formatted, err := format.Source(src)
		require.NoError(t, err, f)
		assert.Equal(t, string(formatted), string(src), "%s is not gofmt-clean", f)
	}
}

func TestUniformLookup(t *testing.T) {
	r := NewRecorder()
	_, err := r.UniformLocation(1, "t")
	assert.ErrorIs(t, err, gfx.ErrUnknownProgram)

	p, err := r.CreateProgram("v", "f")
	require.NoError(t, err)
	loc, err := r.UniformLocation(p, "t")
	require.NoError(t, err)
	assert.Equal(t, 0, loc)

	r.Uniforms = map[string]bool{"uTransform": true}
	_, err = r.UniformLocation(p, "t")
	assert.ErrorIs(t, err, gfx.ErrUnknownUniform)

	lost := errors.New("context lost")
	r.UniformErr = lost
	_, err = r.UniformLocation(p, "uTransform")
	assert.ErrorIs(t, err, lost)
}
