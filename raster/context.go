// Package raster is a software implementation of gfx.Context. It draws into
// an in-memory image so shapes can be rendered without a GPU or window.
package raster

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"GPU_shape_exercises/gfx"
)

type program struct {
	vertex       VertexShader
	fragment     FragmentShader
	uniforms     Uniforms
	hasTransform bool
}

type buffer struct {
	target gfx.BufferTarget
	data   []byte
}

type binding struct {
	buffer     gfx.Buffer
	components int
}

// Context renders into a color and depth buffer that are supersample times
// the requested size in each direction.
type Context struct {
	width, height int
	supersample   int

	color      *image.NRGBA
	depth      []float32
	clearColor color.NRGBA
	depthTest  bool

	shaders        *ShaderLibrary
	programs       []*program
	buffers        []buffer
	attribs        map[int]binding
	index          gfx.Buffer
	current        gfx.Program
	viewProjection mgl32.Mat4

	// Triangles counts rasterized triangles since the last Clear.
	Triangles int
}

func New(width, height, supersample int, shaders *ShaderLibrary) *Context {
	if supersample < 1 {
		supersample = 1
	}
	w, h := width*supersample, height*supersample
	c := &Context{
		width:          width,
		height:         height,
		supersample:    supersample,
		color:          image.NewNRGBA(image.Rect(0, 0, w, h)),
		depth:          make([]float32, w*h),
		shaders:        shaders,
		attribs:        map[int]binding{},
		viewProjection: mgl32.Ident4(),
		clearColor:     color.NRGBA{A: 255},
	}
	c.Clear()
	return c
}

func (c *Context) SetClearColor(r, g, b, a float32) {
	c.clearColor = toNRGBA(mgl32.Vec4{r, g, b, a})
}

func (c *Context) EnableDepthTest(enabled bool) {
	c.depthTest = enabled
}

// SetViewProjection is the transform handed to programs that never set
// uTransform themselves.
func (c *Context) SetViewProjection(m mgl32.Mat4) {
	c.viewProjection = m
}

// Clear resets color and depth.
func (c *Context) Clear() {
	pix := c.color.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.clearColor.R, c.clearColor.G, c.clearColor.B, c.clearColor.A
	}
	for i := range c.depth {
		c.depth[i] = float32(math.Inf(1))
	}
	c.Triangles = 0
}

func (c *Context) program(p gfx.Program) (*program, bool) {
	if p == gfx.NoProgram || int(p) > len(c.programs) {
		return nil, false
	}
	return c.programs[p-1], true
}

func (c *Context) CreateProgram(vertexID, fragmentID string) (gfx.Program, error) {
	vs, fs, err := c.shaders.lookup(vertexID, fragmentID)
	if err != nil {
		return gfx.NoProgram, err
	}
	c.programs = append(c.programs, &program{vertex: vs, fragment: fs})
	return gfx.Program(len(c.programs)), nil
}

func (c *Context) UseProgram(p gfx.Program) {
	c.current = p
}

func (c *Context) AttribLocation(p gfx.Program, name string) (int, error) {
	if _, ok := c.program(p); !ok {
		return -1, gfx.ErrUnknownProgram
	}
	loc, ok := attribLocations[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", gfx.ErrUnknownAttribute, name)
	}
	return loc, nil
}

func (c *Context) UniformLocation(p gfx.Program, name string) (int, error) {
	if _, ok := c.program(p); !ok {
		return -1, gfx.ErrUnknownProgram
	}
	loc, ok := uniformLocations[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", gfx.ErrUnknownUniform, name)
	}
	return loc, nil
}

func (c *Context) CreateBuffer(target gfx.BufferTarget, data []byte) (gfx.Buffer, error) {
	c.buffers = append(c.buffers, buffer{target: target, data: append([]byte(nil), data...)})
	return gfx.Buffer(len(c.buffers)), nil
}

func (c *Context) buffer(b gfx.Buffer) ([]byte, bool) {
	if b == gfx.NoBuffer || int(b) > len(c.buffers) {
		return nil, false
	}
	return c.buffers[b-1].data, true
}

func (c *Context) EnableVertexAttrib(loc int, b gfx.Buffer, components int, typ gfx.ComponentType) {
	if loc < 0 || loc >= MAX_ATTRIBS {
		log.Printf("Ignoring vertex attribute at unsupported location %d", loc)
		return
	}
	c.attribs[loc] = binding{buffer: b, components: components}
}

func (c *Context) DisableVertexAttrib(loc int) {
	delete(c.attribs, loc)
}

func (c *Context) BindIndexBuffer(b gfx.Buffer) {
	c.index = b
}

func (c *Context) UnbindIndexBuffer() {
	c.index = gfx.NoBuffer
}

func (c *Context) Uniform1f(loc int, v float32) {
	p, ok := c.program(c.current)
	if !ok || loc != UNIFORM_TIME {
		return
	}
	p.uniforms.T = v
}

func (c *Context) UniformMatrix4fv(loc int, m [16]float32) {
	p, ok := c.program(c.current)
	if !ok || loc != UNIFORM_TRANSFORM {
		return
	}
	p.uniforms.Transform = mgl32.Mat4(m)
	p.hasTransform = true
}

// DrawElements runs the current program over the indexed primitives. Calls
// with no program, no index buffer or an out of range slice draw nothing,
// as a GL context would flag them with an error and skip the draw.
func (c *Context) DrawElements(mode gfx.Mode, count int, typ gfx.IndexType, byteOffset int) {
	p, ok := c.program(c.current)
	if !ok {
		log.Printf("DrawElements without a program in use")
		return
	}
	data, ok := c.buffer(c.index)
	if !ok {
		log.Printf("DrawElements without a bound index buffer")
		return
	}
	width := typ.ByteWidth()
	if byteOffset < 0 || byteOffset%width != 0 || byteOffset+count*width > len(data) {
		log.Printf("DrawElements range [%d, +%d) outside index buffer of %d bytes", byteOffset, count*width, len(data))
		return
	}
	indices := make([]uint32, count)
	for i := range indices {
		at := byteOffset + i*width
		if typ == gfx.UnsignedInt {
			indices[i] = binary.LittleEndian.Uint32(data[at:])
		} else {
			indices[i] = uint32(binary.LittleEndian.Uint16(data[at:]))
		}
	}

	u := p.uniforms
	if !p.hasTransform {
		u.Transform = c.viewProjection
	}
	for _, tri := range gfx.Triangulate(mode, indices) {
		var verts [3]shadedVertex
		for i, idx := range tri {
			attribs := c.fetch(idx)
			verts[i].position, verts[i].varying = p.vertex(&attribs, &u)
		}
		c.rasterize(verts, p.fragment, &u)
	}
}

// fetch reads vertex idx from the enabled attributes. Missing components
// default to (0, 0, 0, 1).
func (c *Context) fetch(idx uint32) [MAX_ATTRIBS]mgl32.Vec4 {
	var out [MAX_ATTRIBS]mgl32.Vec4
	for loc := range out {
		out[loc] = mgl32.Vec4{0, 0, 0, 1}
		b, ok := c.attribs[loc]
		if !ok {
			continue
		}
		data, ok := c.buffer(b.buffer)
		if !ok {
			continue
		}
		start := int(idx) * b.components * 4
		if start+b.components*4 > len(data) {
			continue
		}
		for k := 0; k < b.components; k++ {
			out[loc][k] = math.Float32frombits(binary.LittleEndian.Uint32(data[start+4*k:]))
		}
	}
	return out
}
