//go:build js && wasm

package main

import (
	"errors"
	"log"
	"syscall/js"

	"GPU_shape_exercises/config"
	"GPU_shape_exercises/gfx"
	"GPU_shape_exercises/model"
	"GPU_shape_exercises/webgl"
)

func main() {
	log.SetFlags(log.Lshortfile)
	cfg := config.Default(config.SHAPE_CONE)

	ctx, err := webgl.FromCanvas("webgl-canvas")
	if err != nil {
		alert(err)
		return
	}
	ctx.Resize()
	ctx.SetClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3])
	ctx.EnableDepthTest(cfg.DepthTest)
	ctx.SetViewProjection(cfg.Camera.GLViewProjection(ctx.Aspect(), 0))

	cone, err := model.NewCone(ctx, model.WithSides(cfg.Sides))
	if err != nil {
		alert(err)
		return
	}
	ctx.Clear()
	if err := cone.Render(); err != nil {
		log.Printf("Failed to render cone: %s", err)
	}
}

// alert shows construction failures on the page. A *gfx.ShaderError names both shader ids.
func alert(err error) {
	log.Printf("%s", err)
	var shaderErr *gfx.ShaderError
	if errors.As(err, &shaderErr) {
		js.Global().Call("alert", err.Error())
	}
}
