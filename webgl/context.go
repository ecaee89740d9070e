//go:build js && wasm

// Package webgl implements gfx.Context on a browser WebGL context. Shader
// identifiers name <script> elements of the page holding GLSL ES source.
package webgl

import (
	"errors"
	"fmt"
	"log"
	"syscall/js"

	wgl "github.com/seqsense/webgl-go"

	"GPU_shape_exercises/gfx"
)

type program struct {
	handle       wgl.Program
	transform    int
	hasTransform bool
}

// Context wraps the canvas' rendering context.
type Context struct {
	gl       *wgl.WebGL
	document js.Value

	programs []program
	buffers  []wgl.Buffer
	uniforms []wgl.Location

	depthTest      bool
	viewProjection [16]float32
}

// FromCanvas creates the rendering context of the canvas element with the given id.
func FromCanvas(canvasID string) (*Context, error) {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", canvasID)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("webgl: no canvas with id %q", canvasID)
	}
	gl, err := wgl.New(canvas)
	if err != nil {
		return nil, fmt.Errorf("webgl: %w", err)
	}
	return New(gl, doc), nil
}

func New(gl *wgl.WebGL, document js.Value) *Context {
	return &Context{
		gl:             gl,
		document:       document,
		viewProjection: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
	}
}

func (c *Context) SetClearColor(r, g, b, a float32) {
	c.gl.ClearColor(r, g, b, a)
}

func (c *Context) EnableDepthTest(enabled bool) {
	c.depthTest = enabled
	if enabled {
		c.gl.Enable(c.gl.DEPTH_TEST)
	} else {
		c.gl.Disable(c.gl.DEPTH_TEST)
	}
}

// SetViewProjection sets the column-major transform uploaded to the
// uTransform uniform of programs that never set it themselves.
func (c *Context) SetViewProjection(m [16]float32) {
	c.viewProjection = m
}

// Clear clears the color buffer and, with depth testing on, the depth buffer.
func (c *Context) Clear() {
	mask := c.gl.COLOR_BUFFER_BIT
	if c.depthTest {
		mask |= c.gl.DEPTH_BUFFER_BIT
	}
	c.gl.Clear(mask)
}

// Resize matches the drawing buffer to the canvas' displayed size.
func (c *Context) Resize() {
	canvas := c.gl.JS().Get("canvas")
	w, h := canvas.Get("clientWidth").Int(), canvas.Get("clientHeight").Int()
	if w > 0 && h > 0 && (canvas.Get("width").Int() != w || canvas.Get("height").Int() != h) {
		canvas.Set("width", w)
		canvas.Set("height", h)
	}
	c.gl.Viewport(0, 0, canvas.Get("width").Int(), canvas.Get("height").Int())
}

// Aspect is the drawing buffer's width over its height.
func (c *Context) Aspect() float32 {
	w, h := c.gl.JS().Get("drawingBufferWidth").Float(), c.gl.JS().Get("drawingBufferHeight").Float()
	if h == 0 {
		return 1
	}
	return float32(w / h)
}

func (c *Context) shaderSource(id string) (string, error) {
	el := c.document.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return "", fmt.Errorf("%w: no element with id %q", gfx.ErrUnknownShader, id)
	}
	return el.Get("text").String(), nil
}

func (c *Context) compileShader(kind wgl.ShaderType, id string) (wgl.Shader, error) {
	src, err := c.shaderSource(id)
	if err != nil {
		return wgl.Shader(js.Null()), err
	}
	shader := c.gl.CreateShader(kind)
	c.gl.ShaderSource(shader, src)
	c.gl.CompileShader(shader)
	if !c.gl.GetShaderParameter(shader, c.gl.COMPILE_STATUS).Bool() {
		return shader, fmt.Errorf("compiling %q: %s", id, c.gl.GetShaderInfoLog(shader))
	}
	return shader, nil
}

func (c *Context) CreateProgram(vertexID, fragmentID string) (gfx.Program, error) {
	vs, err := c.compileShader(c.gl.VERTEX_SHADER, vertexID)
	if err != nil {
		return gfx.NoProgram, err
	}
	fs, err := c.compileShader(c.gl.FRAGMENT_SHADER, fragmentID)
	if err != nil {
		return gfx.NoProgram, err
	}
	handle := c.gl.CreateProgram()
	c.gl.AttachShader(handle, vs)
	c.gl.AttachShader(handle, fs)
	c.gl.LinkProgram(handle)
	if !c.gl.GetProgramParameter(handle, c.gl.LINK_STATUS).Bool() {
		return gfx.NoProgram, fmt.Errorf("linking %q and %q: %s", vertexID, fragmentID, c.gl.GetProgramInfoLog(handle))
	}

	p := program{handle: handle, transform: -1}
	if loc := c.gl.GetUniformLocation(handle, "uTransform"); !js.Value(loc).IsNull() {
		c.uniforms = append(c.uniforms, loc)
		p.transform = len(c.uniforms) - 1
	}
	c.programs = append(c.programs, p)
	log.Printf("Successfully linked program from %q and %q", vertexID, fragmentID)
	return gfx.Program(len(c.programs)), nil
}

func (c *Context) program(p gfx.Program) (*program, bool) {
	if p == gfx.NoProgram || int(p) > len(c.programs) {
		return nil, false
	}
	return &c.programs[p-1], true
}

func (c *Context) UseProgram(p gfx.Program) {
	prog, ok := c.program(p)
	if !ok {
		c.gl.UseProgram(wgl.Program(js.Null()))
		return
	}
	c.gl.UseProgram(prog.handle)
	if prog.transform >= 0 && !prog.hasTransform {
		c.gl.UniformMatrix4fv(c.uniforms[prog.transform], false, c.viewProjection[:])
	}
}

func (c *Context) AttribLocation(p gfx.Program, name string) (int, error) {
	prog, ok := c.program(p)
	if !ok {
		return -1, gfx.ErrUnknownProgram
	}
	loc := c.gl.GetAttribLocation(prog.handle, name)
	if loc < 0 {
		return -1, fmt.Errorf("%w: %q", gfx.ErrUnknownAttribute, name)
	}
	return loc, nil
}

func (c *Context) UniformLocation(p gfx.Program, name string) (int, error) {
	prog, ok := c.program(p)
	if !ok {
		return -1, gfx.ErrUnknownProgram
	}
	loc := c.gl.GetUniformLocation(prog.handle, name)
	if js.Value(loc).IsNull() {
		return -1, fmt.Errorf("%w: %q", gfx.ErrUnknownUniform, name)
	}
	c.uniforms = append(c.uniforms, loc)
	return len(c.uniforms) - 1, nil
}

func (c *Context) CreateBuffer(target gfx.BufferTarget, data []byte) (gfx.Buffer, error) {
	buffer := c.gl.CreateBuffer()
	if js.Value(buffer).IsNull() {
		return gfx.NoBuffer, errors.New("webgl: createBuffer failed")
	}
	if target == gfx.ElementArrayBuffer {
		words, err := uint16Words(data)
		if err != nil {
			return gfx.NoBuffer, err
		}
		c.gl.BindBuffer(c.gl.ELEMENT_ARRAY_BUFFER, buffer)
		c.gl.BufferData(c.gl.ELEMENT_ARRAY_BUFFER, wgl.Uint16ArrayBuffer(words), c.gl.STATIC_DRAW)
		c.gl.BindBuffer(c.gl.ELEMENT_ARRAY_BUFFER, wgl.Buffer(js.Null()))
	} else {
		words, err := float32Words(data)
		if err != nil {
			return gfx.NoBuffer, err
		}
		c.gl.BindBuffer(c.gl.ARRAY_BUFFER, buffer)
		c.gl.BufferData(c.gl.ARRAY_BUFFER, wgl.Float32ArrayBuffer(words), c.gl.STATIC_DRAW)
		c.gl.BindBuffer(c.gl.ARRAY_BUFFER, wgl.Buffer(js.Null()))
	}
	c.buffers = append(c.buffers, buffer)
	return gfx.Buffer(len(c.buffers)), nil
}

func (c *Context) buffer(b gfx.Buffer) wgl.Buffer {
	if b == gfx.NoBuffer || int(b) > len(c.buffers) {
		return wgl.Buffer(js.Null())
	}
	return c.buffers[b-1]
}

func (c *Context) EnableVertexAttrib(loc int, b gfx.Buffer, components int, typ gfx.ComponentType) {
	c.gl.BindBuffer(c.gl.ARRAY_BUFFER, c.buffer(b))
	c.gl.EnableVertexAttribArray(loc)
	c.gl.VertexAttribPointer(loc, components, c.gl.FLOAT, false, 0, 0)
}

func (c *Context) DisableVertexAttrib(loc int) {
	c.gl.DisableVertexAttribArray(loc)
}

func (c *Context) BindIndexBuffer(b gfx.Buffer) {
	c.gl.BindBuffer(c.gl.ELEMENT_ARRAY_BUFFER, c.buffer(b))
}

func (c *Context) UnbindIndexBuffer() {
	c.gl.BindBuffer(c.gl.ELEMENT_ARRAY_BUFFER, wgl.Buffer(js.Null()))
}

func (c *Context) Uniform1f(loc int, v float32) {
	if loc < 0 || loc >= len(c.uniforms) {
		return
	}
	c.gl.Uniform1f(c.uniforms[loc], v)
}

func (c *Context) UniformMatrix4fv(loc int, m [16]float32) {
	if loc < 0 || loc >= len(c.uniforms) {
		return
	}
	for i := range c.programs {
		if c.programs[i].transform == loc {
			c.programs[i].hasTransform = true
		}
	}
	c.gl.UniformMatrix4fv(c.uniforms[loc], false, m[:])
}

func (c *Context) mode(m gfx.Mode) wgl.DrawMode {
	switch m {
	case gfx.TriangleFan:
		return c.gl.TRIANGLE_FAN
	case gfx.TriangleStrip:
		return c.gl.TRIANGLE_STRIP
	}
	return c.gl.TRIANGLES
}

func (c *Context) DrawElements(mode gfx.Mode, count int, typ gfx.IndexType, byteOffset int) {
	t := c.gl.UNSIGNED_SHORT
	if typ == gfx.UnsignedInt {
		t = c.gl.UNSIGNED_INT
	}
	c.gl.DrawElements(c.mode(mode), count, t, byteOffset)
}
