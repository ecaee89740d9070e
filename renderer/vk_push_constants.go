package renderer

import (
	"unsafe"

	vk "github.com/goki/vulkan"

	"GPU_shape_exercises/gfx"
)

// Uniforms live in a single push constant block shared by both stages:
//
//	layout(push_constant) uniform PushConstants { mat4 uTransform; float t; };
const (
	PUSH_TRANSFORM_OFFSET = 0
	PUSH_TIME_OFFSET      = 64
	PUSH_CONSTANTS_SIZE   = 80
)

var PUSH_CONSTANTS_STAGES = vk.ShaderStageFlags(vk.ShaderStageVertexBit | vk.ShaderStageFragmentBit)

type pushConstants struct {
	transform [16]float32
	t         float32

	// explicit is set once the program wrote uTransform itself.
	explicit bool
}

func (p *pushConstants) set1f(loc int, v float32) bool {
	if loc != UNIFORM_TIME {
		return false
	}
	p.t = v
	return true
}

func (p *pushConstants) setMatrix4(loc int, m [16]float32) bool {
	if loc != UNIFORM_TRANSFORM {
		return false
	}
	p.transform = m
	p.explicit = true
	return true
}

// bytes lays out the block, substituting viewProjection unless the program set its own transform.
func (p *pushConstants) bytes(viewProjection [16]float32) []byte {
	values := make([]float32, PUSH_CONSTANTS_SIZE/4)
	if p.explicit {
		copy(values, p.transform[:])
	} else {
		copy(values, viewProjection[:])
	}
	values[PUSH_TIME_OFFSET/4] = p.t
	return gfx.Float32Bytes(values)
}

func (p *pushConstants) push(cb vk.CommandBuffer, layout vk.PipelineLayout, viewProjection [16]float32) {
	data := p.bytes(viewProjection)
	vk.CmdPushConstants(cb, layout, PUSH_CONSTANTS_STAGES, 0, PUSH_CONSTANTS_SIZE, unsafe.Pointer(&data[0]))
}
