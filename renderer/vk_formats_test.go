package renderer

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GPU_shape_exercises/gfx"
)

func TestTopology(t *testing.T) {
	cases := map[gfx.Mode]vk.PrimitiveTopology{
		gfx.Triangles:     vk.PrimitiveTopologyTriangleList,
		gfx.TriangleFan:   vk.PrimitiveTopologyTriangleFan,
		gfx.TriangleStrip: vk.PrimitiveTopologyTriangleStrip,
	}
	for mode, want := range cases {
		got, err := topology(mode)
		require.NoError(t, err)
		assert.Equal(t, want, got, mode.String())
	}
	_, err := topology(gfx.Mode(42))
	assert.Error(t, err)
}

func TestIndexType(t *testing.T) {
	assert.Equal(t, vk.IndexTypeUint16, indexType(gfx.UnsignedShort))
	assert.Equal(t, vk.IndexTypeUint32, indexType(gfx.UnsignedInt))
}

func TestAttributeFormat(t *testing.T) {
	f, err := attributeFormat(3, gfx.Float)
	require.NoError(t, err)
	assert.Equal(t, vk.FormatR32g32b32Sfloat, f)
	_, err = attributeFormat(5, gfx.Float)
	assert.Error(t, err)
	_, err = attributeFormat(0, gfx.Float)
	assert.Error(t, err)
}

func TestVertexLayout(t *testing.T) {
	bindings, attributes, err := vertexLayout{3, 0}.vertexInput()
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	require.Len(t, attributes, 1)
	assert.Equal(t, uint32(0), bindings[0].Binding)
	assert.Equal(t, uint32(12), bindings[0].Stride)
	assert.Equal(t, vk.FormatR32g32b32Sfloat, attributes[0].Format)

	bindings, attributes, err = vertexLayout{3, 4}.vertexInput()
	require.NoError(t, err)
	assert.Len(t, bindings, 2)
	assert.Equal(t, uint32(1), attributes[1].Location)
	assert.Equal(t, uint32(1), attributes[1].Binding)
	assert.Equal(t, uint32(16), bindings[1].Stride)
}

func TestPipelineKeyDistinguishesModeAndLayout(t *testing.T) {
	pipelines := map[pipelineKey]int{}
	pipelines[pipelineKey{program: 1, mode: gfx.TriangleFan, layout: vertexLayout{3, 0}}]++
	pipelines[pipelineKey{program: 1, mode: gfx.TriangleFan, layout: vertexLayout{3, 0}}]++
	pipelines[pipelineKey{program: 1, mode: gfx.Triangles, layout: vertexLayout{3, 0}}]++
	pipelines[pipelineKey{program: 1, mode: gfx.Triangles, layout: vertexLayout{3, 4}}]++
	assert.Len(t, pipelines, 3)
}

func floatAt(b []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[offset:]))
}

func TestPushConstantsLayout(t *testing.T) {
	var vp [16]float32
	for i := range vp {
		vp[i] = float32(i + 1)
	}
	var pc pushConstants
	assert.True(t, pc.set1f(UNIFORM_TIME, 2.5))
	assert.False(t, pc.set1f(UNIFORM_TRANSFORM, 7))

	b := pc.bytes(vp)
	require.Len(t, b, PUSH_CONSTANTS_SIZE)
	assert.Equal(t, float32(1), floatAt(b, PUSH_TRANSFORM_OFFSET))
	assert.Equal(t, float32(16), floatAt(b, PUSH_TRANSFORM_OFFSET+60))
	assert.Equal(t, float32(2.5), floatAt(b, PUSH_TIME_OFFSET))

	var own [16]float32
	own[0], own[5], own[10], own[15] = 2, 2, 2, 1
	assert.True(t, pc.setMatrix4(UNIFORM_TRANSFORM, own))
	assert.False(t, pc.setMatrix4(UNIFORM_TIME, own))
	b = pc.bytes(vp)
	assert.Equal(t, float32(2), floatAt(b, PUSH_TRANSFORM_OFFSET))
	assert.Equal(t, float32(0), floatAt(b, PUSH_TRANSFORM_OFFSET+4))
	assert.Equal(t, float32(2.5), floatAt(b, PUSH_TIME_OFFSET))
}

func TestLocationTables(t *testing.T) {
	assert.Equal(t, 0, ATTRIB_LOCATIONS["aPosition"])
	assert.Equal(t, 1, ATTRIB_LOCATIONS["aColor"])
	for _, loc := range ATTRIB_LOCATIONS {
		assert.Less(t, loc, MAX_ATTRIBS)
	}
	assert.Equal(t, UNIFORM_TRANSFORM, UNIFORM_LOCATIONS["uTransform"])
	assert.Equal(t, UNIFORM_TIME, UNIFORM_LOCATIONS["t"])
}

func TestShaderFiles(t *testing.T) {
	assert.Equal(t, filepath.Join("shaders", "Cone-vertex-shader.spv"), shaderPath("shaders", "Cone-vertex-shader"))

	words, err := parseSpirv("ok", []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, uint32(SPIRV_MAGIC), words[0])

	_, err = parseSpirv("glsl", []byte("#version 450\n\n\n\n"))
	assert.ErrorContains(t, err, "not SPIR-V")
	_, err = parseSpirv("short", []byte{1, 2})
	assert.Error(t, err)
}
