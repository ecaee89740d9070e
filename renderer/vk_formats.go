package renderer

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"GPU_shape_exercises/gfx"
)

// MAX_ATTRIBS is the number of vertex input locations the shaders may declare.
const MAX_ATTRIBS = 2

// Vertex inputs are bound by name through a fixed table, one binding per location.
var ATTRIB_LOCATIONS = map[string]int{
	"aPosition": 0,
	"aColor":    1,
}

const (
	UNIFORM_TRANSFORM = iota
	UNIFORM_TIME
)

var UNIFORM_LOCATIONS = map[string]int{
	"uTransform": UNIFORM_TRANSFORM,
	"t":          UNIFORM_TIME,
}

func topology(m gfx.Mode) (vk.PrimitiveTopology, error) {
	switch m {
	case gfx.Triangles:
		return vk.PrimitiveTopologyTriangleList, nil
	case gfx.TriangleFan:
		return vk.PrimitiveTopologyTriangleFan, nil
	case gfx.TriangleStrip:
		return vk.PrimitiveTopologyTriangleStrip, nil
	}
	return 0, fmt.Errorf("unsupported primitive mode %v", m)
}

func indexType(t gfx.IndexType) vk.IndexType {
	if t == gfx.UnsignedInt {
		return vk.IndexTypeUint32
	}
	return vk.IndexTypeUint16
}

func attributeFormat(components int, typ gfx.ComponentType) (vk.Format, error) {
	if typ != gfx.Float {
		return vk.FormatUndefined, fmt.Errorf("unsupported component type %d", typ)
	}
	switch components {
	case 1:
		return vk.FormatR32Sfloat, nil
	case 2:
		return vk.FormatR32g32Sfloat, nil
	case 3:
		return vk.FormatR32g32b32Sfloat, nil
	case 4:
		return vk.FormatR32g32b32a32Sfloat, nil
	}
	return vk.FormatUndefined, fmt.Errorf("unsupported component count %d", components)
}

func bufferUsage(target gfx.BufferTarget) vk.BufferUsageFlags {
	if target == gfx.ElementArrayBuffer {
		return vk.BufferUsageFlags(vk.BufferUsageTransferDstBit | vk.BufferUsageIndexBufferBit)
	}
	return vk.BufferUsageFlags(vk.BufferUsageTransferDstBit | vk.BufferUsageVertexBufferBit)
}
