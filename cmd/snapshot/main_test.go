package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/config"
	"GPU_shape_exercises/stl"
)

func TestSnapshotWritesPNGAndSTL(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(config.SHAPE_CONE)
	cfg.Snapshot.Width, cfg.Snapshot.Height, cfg.Snapshot.Supersample = 64, 48, 1
	cfg.Snapshot.Output = filepath.Join(dir, "cone.png")
	cfg.Snapshot.STL = filepath.Join(dir, "cone.stl")
	require.NoError(t, snapshot(cfg))

	f, err := os.Open(cfg.Snapshot.Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	g, err := stl.ReadStlFile(cfg.Snapshot.STL)
	require.NoError(t, err)
	assert.Len(t, g.Triangles(), 2*cfg.Sides)
}

func TestSnapshotCube(t *testing.T) {
	cfg := config.Default(config.SHAPE_CUBE)
	cfg.Snapshot.Width, cfg.Snapshot.Height, cfg.Snapshot.Supersample = 32, 32, 2
	cfg.Snapshot.Output = filepath.Join(t.TempDir(), "cube.png")
	require.NoError(t, snapshot(cfg))
	assert.FileExists(t, cfg.Snapshot.Output)
}

func TestSnapshotUnknownShader(t *testing.T) {
	cfg := config.Default(config.SHAPE_CUBE)
	cfg.VertexShader, cfg.FragmentShader = "missing-vertex", "missing-fragment"
	cfg.Snapshot.Output = filepath.Join(t.TempDir(), "cube.png")
	err := snapshot(cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing-vertex")
	assert.NoFileExists(t, cfg.Snapshot.Output)
}
