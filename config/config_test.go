package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cone := Default(SHAPE_CONE)
	assert.Equal(t, [4]float32{0.3, 0.6, 0.9, 1}, cone.ClearColor)
	assert.Equal(t, 20, cone.Sides)
	assert.False(t, cone.Animate)
	assert.False(t, cone.DepthTest)
	assert.NoError(t, cone.Validate())

	cube := Default(SHAPE_CUBE)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, cube.ClearColor)
	assert.True(t, cube.Animate)
	assert.True(t, cube.DepthTest)
	assert.NoError(t, cube.Validate())
}

func TestLoadToml(t *testing.T) {
	path := writeFile(t, "cone.toml", `
sides = 12
vertex_shader = "Custom-vertex"
clear_color = [0.0, 0.0, 0.0, 1.0]

[window]
width = 800
`)
	c, err := Load(path, SHAPE_CONE)
	require.NoError(t, err)
	assert.Equal(t, 12, c.Sides)
	assert.Equal(t, "Custom-vertex", c.VertexShader)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, c.ClearColor)
	assert.Equal(t, int32(800), c.Window.Width)
	assert.Equal(t, int32(512), c.Window.Height, "unset keys keep their defaults")
	assert.Equal(t, "Cone", c.Window.Title)
}

func TestLoadYaml(t *testing.T) {
	path := writeFile(t, "cube.yaml", `
animate: false
snapshot:
  time: 1.25
  output: out.png
`)
	c, err := Load(path, SHAPE_CUBE)
	require.NoError(t, err)
	assert.False(t, c.Animate)
	assert.True(t, c.DepthTest)
	assert.Equal(t, float32(1.25), c.Snapshot.Time)
	assert.Equal(t, "out.png", c.Snapshot.Output)
}

func TestLoadRejects(t *testing.T) {
	_, err := Load(writeFile(t, "cone.json", `{}`), SHAPE_CONE)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(writeFile(t, "cone.toml", `sides = 2`), SHAPE_CONE)
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", `shape = "torus"`), SHAPE_CONE)
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yml", `clear_color: [2, 0, 0, 1]`), SHAPE_CUBE)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"), SHAPE_CONE)
	assert.Error(t, err)
}

func TestValidateConeSides(t *testing.T) {
	c := Default(SHAPE_CONE)
	for _, n := range []int{model.CONE_MIN_SIDES, 20, model.CONE_MAX_SIDES} {
		c.Sides = n
		assert.NoError(t, c.Validate(), "sides %d", n)
	}
	for _, n := range []int{model.CONE_MIN_SIDES - 1, model.CONE_MAX_SIDES + 1, 70000} {
		c.Sides = n
		assert.Error(t, c.Validate(), "sides %d", n)
	}

	// the cube ignores the side count
	cube := Default(SHAPE_CUBE)
	cube.Sides = 70000
	assert.NoError(t, cube.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault("", SHAPE_CUBE)
	require.NoError(t, err)
	assert.Equal(t, Default(SHAPE_CUBE), c)
}

func TestShapeOptions(t *testing.T) {
	assert.Len(t, Default(SHAPE_CONE).ShapeOptions(), 2)
}
