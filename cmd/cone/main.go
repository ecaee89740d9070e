//go:build !js

package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	"GPU_shape_exercises/config"
	"GPU_shape_exercises/gfx"
	"GPU_shape_exercises/model"
	"GPU_shape_exercises/renderer"
	vm "GPU_shape_exercises/vector_math"
)

func init() {
	// SDL and the Vulkan surface must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "", "TOML or YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath, config.SHAPE_CONE)
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}
	os.Exit(run(cfg))
}

func run(cfg config.Config) int {
	core := renderer.NewCore(renderer.Options{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		ClearColor: cfg.ClearColor,
		DepthTest:  cfg.DepthTest,
		Continuous: cfg.Animate,
		ShaderDir:  cfg.ShaderDir,
		Validation: cfg.Validation,
	})
	defer core.Destroy()

	cam := vm.NewCamera(cfg.Camera.Fov, cfg.Camera.Near, cfg.Camera.Far)
	cam.Up = vm.Vec3{Z: 1}
	cam.Orbit(cfg.Camera.Distance, 0, cfg.Camera.Height)
	core.Cam = cam

	cone, err := model.NewCone(core, cfg.ShapeOptions()...)
	var shaderErr *gfx.ShaderError
	if errors.As(err, &shaderErr) {
		log.Printf("%s", shaderErr)
		return 1
	} else if err != nil {
		log.Printf("Failed to create cone: %s", err)
		return 1
	}

	err = core.Loop(nil, func(elapsed time.Duration, _ *renderer.Core) error {
		if cfg.Animate {
			secs := float32(elapsed.Seconds())
			cam.Orbit(cfg.Camera.Distance, cfg.Camera.Angle(secs), cfg.Camera.Height)
			cone.SetTime(secs)
		}
		return cone.Render()
	})
	if err != nil {
		log.Printf("Render loop stopped: %s", err)
		return 1
	}
	return 0
}
