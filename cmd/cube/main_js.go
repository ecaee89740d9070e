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
	cfg := config.Default(config.SHAPE_CUBE)

	ctx, err := webgl.FromCanvas("webgl-canvas")
	if err != nil {
		log.Printf("%s", err)
		return
	}
	ctx.SetClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3])
	ctx.EnableDepthTest(cfg.DepthTest)

	cube, err := model.NewCube(ctx)
	var shaderErr *gfx.ShaderError
	if errors.As(err, &shaderErr) {
		js.Global().Call("alert", shaderErr.Error())
		return
	} else if err != nil {
		log.Printf("Failed to create cube: %s", err)
		return
	}

	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		secs := float32(args[0].Float() * 0.001)
		ctx.Resize()
		ctx.SetViewProjection(cfg.Camera.GLViewProjection(ctx.Aspect(), secs))
		ctx.Clear()
		cube.SetTime(secs)
		if err := cube.Render(); err != nil {
			log.Printf("Failed to render cube: %s", err)
			frame.Release()
			return nil
		}
		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", frame)

	// Keep the Go runtime alive for the animation callbacks
	select {}
}
