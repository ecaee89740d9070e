// Command snapshot renders one frame of a shape with the software rasterizer
// and writes it as PNG, optionally exporting the geometry as binary STL.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"GPU_shape_exercises/config"
	"GPU_shape_exercises/gfx"
	"GPU_shape_exercises/model"
	"GPU_shape_exercises/raster"
	"GPU_shape_exercises/stl"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	shape := flag.String("shape", config.SHAPE_CONE, "shape to render: cone or cube")
	configPath := flag.String("config", "", "TOML or YAML configuration file")
	sides := flag.Int("sides", 0, "cone sides, overrides the configuration when > 0")
	out := flag.String("o", "", "PNG output path, overrides the configuration")
	stlPath := flag.String("stl", "", "also write the geometry as binary STL to this path")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath, *shape)
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}
	if *sides > 0 {
		cfg.Sides = *sides
	}
	if *out != "" {
		cfg.Snapshot.Output = *out
	}
	if *stlPath != "" {
		cfg.Snapshot.STL = *stlPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%s", err)
	}
	if err := snapshot(cfg); err != nil {
		var shaderErr *gfx.ShaderError
		if errors.As(err, &shaderErr) {
			log.Printf("%s", shaderErr)
			os.Exit(1)
		}
		log.Fatalf("Snapshot failed: %s", err)
	}
}

func newShape(ctx gfx.Context, cfg config.Config) (*model.Shape, error) {
	if cfg.Shape == config.SHAPE_CUBE {
		return model.NewCube(ctx, cfg.ShapeOptions()...)
	}
	return model.NewCone(ctx, cfg.ShapeOptions()...)
}

func snapshot(cfg config.Config) error {
	s := cfg.Snapshot
	ctx := raster.New(s.Width, s.Height, s.Supersample, raster.DefaultShaders())
	ctx.SetClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3])
	ctx.EnableDepthTest(cfg.DepthTest)
	aspect := float32(s.Width) / float32(s.Height)
	ctx.SetViewProjection(mgl32.Mat4(cfg.Camera.GLViewProjection(aspect, s.Time)))

	shape, err := newShape(ctx, cfg)
	if err != nil {
		return err
	}
	shape.SetTime(s.Time)
	ctx.Clear()
	if err := shape.Render(); err != nil {
		return fmt.Errorf("render %s: %w", shape.Name(), err)
	}
	if err := ctx.SavePNG(s.Output); err != nil {
		return fmt.Errorf("write %s: %w", s.Output, err)
	}
	log.Printf("Successfully rendered %s (%d triangles) to %s", shape.Name(), ctx.Triangles, s.Output)

	if s.STL != "" {
		if err := stl.WriteStlFile(s.STL, shape.Name(), shape.Geometry()); err != nil {
			return fmt.Errorf("write %s: %w", s.STL, err)
		}
		log.Printf("Successfully exported %s geometry to %s", shape.Name(), s.STL)
	}
	return nil
}
