package renderer

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"

	com "GPU_shape_exercises/common"
	"GPU_shape_exercises/gfx"
)

// Core implements gfx.Context. Resources are created immediately, draw calls are recorded into the command
// buffer of the frame currently being built by Loop.

type program struct {
	vertexID, fragmentID string
	vert, frag           vk.ShaderModule
	constants            pushConstants
}

type vertexBinding struct {
	buffer     gfx.Buffer
	components int
}

var _ gfx.Context = (*Core)(nil)

func (c *Core) program(p gfx.Program) (*program, bool) {
	if p == gfx.NoProgram || int(p) > len(c.programs) {
		return nil, false
	}
	return c.programs[p-1], true
}

func (c *Core) buffer(b gfx.Buffer) (*com.Buffer, bool) {
	if b == gfx.NoBuffer || int(b) > len(c.buffers) {
		return nil, false
	}
	return c.buffers[b-1], true
}

// CreateProgram loads both SPIR-V modules from the shader directory. Pipelines are built on first draw.
func (c *Core) CreateProgram(vertexID, fragmentID string) (gfx.Program, error) {
	vert, err := loadShaderModule(c.device.D, c.opts.ShaderDir, vertexID)
	if err != nil {
		return gfx.NoProgram, err
	}
	frag, err := loadShaderModule(c.device.D, c.opts.ShaderDir, fragmentID)
	if err != nil {
		vk.DestroyShaderModule(c.device.D, vert, nil)
		return gfx.NoProgram, err
	}
	c.programs = append(c.programs, &program{vertexID: vertexID, fragmentID: fragmentID, vert: vert, frag: frag})
	return gfx.Program(len(c.programs)), nil
}

func (c *Core) UseProgram(p gfx.Program) {
	c.current = p
}

func (c *Core) AttribLocation(p gfx.Program, name string) (int, error) {
	if _, ok := c.program(p); !ok {
		return -1, fmt.Errorf("%w: %d", gfx.ErrUnknownProgram, p)
	}
	loc, ok := ATTRIB_LOCATIONS[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", gfx.ErrUnknownAttribute, name)
	}
	return loc, nil
}

func (c *Core) UniformLocation(p gfx.Program, name string) (int, error) {
	if _, ok := c.program(p); !ok {
		return -1, fmt.Errorf("%w: %d", gfx.ErrUnknownProgram, p)
	}
	loc, ok := UNIFORM_LOCATIONS[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", gfx.ErrUnknownUniform, name)
	}
	return loc, nil
}

func (c *Core) CreateBuffer(target gfx.BufferTarget, data []byte) (gfx.Buffer, error) {
	if len(data) == 0 {
		return gfx.NoBuffer, fmt.Errorf("empty %v", target)
	}
	buf, err := c.uploadBuffer(data, bufferUsage(target))
	if err != nil {
		return gfx.NoBuffer, fmt.Errorf("upload %v: %w", target, err)
	}
	c.buffers = append(c.buffers, buf)
	log.Printf("Created %v (%d Byte)", target, len(data))
	return gfx.Buffer(len(c.buffers)), nil
}

func (c *Core) EnableVertexAttrib(loc int, b gfx.Buffer, components int, typ gfx.ComponentType) {
	if loc < 0 || loc >= MAX_ATTRIBS {
		log.Printf("EnableVertexAttrib location %d out of range", loc)
		return
	}
	if _, err := attributeFormat(components, typ); err != nil {
		log.Printf("EnableVertexAttrib location %d: %s", loc, err)
		return
	}
	c.attribs[loc] = vertexBinding{buffer: b, components: components}
}

func (c *Core) DisableVertexAttrib(loc int) {
	if loc >= 0 && loc < MAX_ATTRIBS {
		c.attribs[loc] = vertexBinding{}
	}
}

func (c *Core) BindIndexBuffer(b gfx.Buffer) {
	c.index = b
}

func (c *Core) UnbindIndexBuffer() {
	c.index = gfx.NoBuffer
}

func (c *Core) Uniform1f(loc int, v float32) {
	if p, ok := c.program(c.current); ok {
		p.constants.set1f(loc, v)
	}
}

func (c *Core) UniformMatrix4fv(loc int, m [16]float32) {
	if p, ok := c.program(c.current); ok {
		p.constants.setMatrix4(loc, m)
	}
}

func (c *Core) layout() vertexLayout {
	var l vertexLayout
	for loc, b := range c.attribs {
		l[loc] = b.components
	}
	return l
}

// DrawElements records an indexed draw into the current frame. Invalid calls are logged and skipped.
func (c *Core) DrawElements(mode gfx.Mode, count int, typ gfx.IndexType, byteOffset int) {
	if c.frame == nil {
		log.Printf("DrawElements: %s", gfx.ErrNoFrame)
		return
	}
	prog, ok := c.program(c.current)
	if !ok {
		log.Printf("DrawElements without a program in use")
		return
	}
	index, ok := c.buffer(c.index)
	if !ok {
		log.Printf("DrawElements without a bound index buffer")
		return
	}
	width := typ.ByteWidth()
	if count <= 0 || byteOffset < 0 || byteOffset%width != 0 || vk.DeviceSize(byteOffset+count*width) > index.Size {
		log.Printf("DrawElements range [%d, +%d) outside index buffer of %d bytes", byteOffset, count*width, index.Size)
		return
	}
	pipeline, err := c.pipeline(pipelineKey{program: c.current, mode: mode, layout: c.layout()})
	if err != nil {
		log.Printf("DrawElements: %s", err)
		return
	}

	vk.CmdBindPipeline(c.frame, vk.PipelineBindPointGraphics, pipeline)
	for loc, b := range c.attribs {
		if b.components == 0 {
			continue
		}
		vb, ok := c.buffer(b.buffer)
		if !ok {
			log.Printf("DrawElements: location %d bound to unknown buffer %d", loc, b.buffer)
			return
		}
		vk.CmdBindVertexBuffers(c.frame, uint32(loc), 1, []vk.Buffer{vb.Handle}, []vk.DeviceSize{0})
	}
	vk.CmdBindIndexBuffer(c.frame, index.Handle, vk.DeviceSize(byteOffset), indexType(typ))
	prog.constants.push(c.frame, c.pipelineLayout, c.viewProjection)
	vk.CmdDrawIndexed(c.frame, uint32(count), 1, 0, 0, 0)
}
