// Package config holds the settings shared by the cone and cube programs.
// Files are decoded over the shape's defaults, so a config only has to name
// what it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"GPU_shape_exercises/model"
)

const (
	SHAPE_CONE = "cone"
	SHAPE_CUBE = "cube"
)

var ErrUnknownFormat = errors.New("config: unknown file format")

type Window struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int32  `toml:"width" yaml:"width"`
	Height int32  `toml:"height" yaml:"height"`
}

type Camera struct {
	Fov      float32 `toml:"fov" yaml:"fov"`
	Near     float32 `toml:"near" yaml:"near"`
	Far      float32 `toml:"far" yaml:"far"`
	Distance float32 `toml:"distance" yaml:"distance"`
	// Height lifts the camera above the shape's center.
	Height float32 `toml:"height" yaml:"height"`
	// Spin is the orbit speed in radians per second. Zero keeps the camera still.
	Spin float32 `toml:"spin" yaml:"spin"`
}

type Snapshot struct {
	Width       int     `toml:"width" yaml:"width"`
	Height      int     `toml:"height" yaml:"height"`
	Supersample int     `toml:"supersample" yaml:"supersample"`
	Time        float32 `toml:"time" yaml:"time"`
	Output      string  `toml:"output" yaml:"output"`
	STL         string  `toml:"stl" yaml:"stl"`
}

type Config struct {
	Shape          string     `toml:"shape" yaml:"shape"`
	Sides          int        `toml:"sides" yaml:"sides"`
	VertexShader   string     `toml:"vertex_shader" yaml:"vertex_shader"`
	FragmentShader string     `toml:"fragment_shader" yaml:"fragment_shader"`
	ShaderDir      string     `toml:"shader_dir" yaml:"shader_dir"`
	ClearColor     [4]float32 `toml:"clear_color" yaml:"clear_color"`
	DepthTest      bool       `toml:"depth_test" yaml:"depth_test"`
	Animate        bool       `toml:"animate" yaml:"animate"`
	Validation     bool       `toml:"validation" yaml:"validation"`
	Window         Window     `toml:"window" yaml:"window"`
	Camera         Camera     `toml:"camera" yaml:"camera"`
	Snapshot       Snapshot   `toml:"snapshot" yaml:"snapshot"`
}

// Default returns the settings the exercises were written with. The cone is
// drawn once on a sky blue background. The cube spins on white with depth
// testing enabled.
func Default(shape string) Config {
	c := Config{
		Shape:     shape,
		ShaderDir: "shaders",
		Window:    Window{Width: 512, Height: 512},
		Camera:    Camera{Fov: 45, Near: 0.1, Far: 100, Distance: 4, Height: 1.5},
		Snapshot:  Snapshot{Width: 512, Height: 512, Supersample: 2},
	}
	switch shape {
	case SHAPE_CUBE:
		c.Sides = model.CUBE_DEFAULT_SIDES
		c.ClearColor = [4]float32{1, 1, 1, 1}
		c.DepthTest = true
		c.Animate = true
		c.Camera.Spin = 0.5
		c.Window.Title = "Cube"
		c.Snapshot.Output = "cube.png"
	default:
		c.Sides = model.CONE_DEFAULT_SIDES
		c.ClearColor = [4]float32{0.3, 0.6, 0.9, 1}
		c.Window.Title = "Cone"
		c.Snapshot.Output = "cone.png"
	}
	return c
}

// Load decodes the file at path over Default(shape). The format is picked by
// extension: .toml, .yaml or .yml.
func Load(path string, shape string) (Config, error) {
	c := Default(shape)
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &c)
	default:
		return c, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, c.Validate()
}

// LoadOrDefault returns Default(shape) when path is empty.
func LoadOrDefault(path string, shape string) (Config, error) {
	if path == "" {
		return Default(shape), nil
	}
	return Load(path, shape)
}

func (c Config) Validate() error {
	if c.Shape != SHAPE_CONE && c.Shape != SHAPE_CUBE {
		return fmt.Errorf("config: unknown shape %q", c.Shape)
	}
	if c.Shape == SHAPE_CONE && (c.Sides < model.CONE_MIN_SIDES || c.Sides > model.CONE_MAX_SIDES) {
		return fmt.Errorf("config: cone side count %d outside [%d, %d]", c.Sides, model.CONE_MIN_SIDES, model.CONE_MAX_SIDES)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 || c.Snapshot.Supersample <= 0 {
		return fmt.Errorf("config: invalid snapshot size %dx%d (x%d)", c.Snapshot.Width, c.Snapshot.Height, c.Snapshot.Supersample)
	}
	for _, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: clear color %v out of range [0, 1]", c.ClearColor)
		}
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("config: invalid camera depth range [%v, %v]", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// ShapeOptions translates the shader and tessellation settings.
func (c Config) ShapeOptions() []model.Option {
	return []model.Option{
		model.WithSides(c.Sides),
		model.WithShaders(c.VertexShader, c.FragmentShader),
	}
}
