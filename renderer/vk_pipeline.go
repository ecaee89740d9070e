package renderer

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"

	com "GPU_shape_exercises/common"
	"GPU_shape_exercises/gfx"
)

// vertexLayout holds the component count bound at each location, 0 meaning disabled.
type vertexLayout [MAX_ATTRIBS]int

// pipelineKey identifies a graphics pipeline. Everything else about a pipeline is fixed for the Core's lifetime.
type pipelineKey struct {
	program gfx.Program
	mode    gfx.Mode
	layout  vertexLayout
}

// vertexInput describes one tightly packed binding per enabled location, binding index equal to the location.
func (l vertexLayout) vertexInput() ([]vk.VertexInputBindingDescription, []vk.VertexInputAttributeDescription, error) {
	var bindings []vk.VertexInputBindingDescription
	var attributes []vk.VertexInputAttributeDescription
	for loc, components := range l {
		if components == 0 {
			continue
		}
		format, err := attributeFormat(components, gfx.Float)
		if err != nil {
			return nil, nil, fmt.Errorf("location %d: %w", loc, err)
		}
		bindings = append(bindings, vk.VertexInputBindingDescription{
			Binding:   uint32(loc),
			Stride:    uint32(components * gfx.Float.ByteWidth()),
			InputRate: vk.VertexInputRateVertex,
		})
		attributes = append(attributes, vk.VertexInputAttributeDescription{
			Location: uint32(loc),
			Binding:  uint32(loc),
			Format:   format,
		})
	}
	return bindings, attributes, nil
}

func (c *Core) createPipelineLayout() {
	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		PushConstantRangeCount: 1,
		PPushConstantRanges: []vk.PushConstantRange{{
			StageFlags: PUSH_CONSTANTS_STAGES,
			Offset:     0,
			Size:       PUSH_CONSTANTS_SIZE,
		}},
	}
	layout, err := com.VkCreatePipelineLayout(c.device.D, &pipelineLayoutInfo)
	if err != nil {
		log.Panicf("Failed to create pipeline layout: %s", err)
	}
	c.pipelineLayout = layout
}

// pipeline returns the pipeline for key, creating it on first use.
func (c *Core) pipeline(key pipelineKey) (vk.Pipeline, error) {
	if p, ok := c.pipelines[key]; ok {
		return p, nil
	}
	prog, ok := c.program(key.program)
	if !ok {
		return nil, fmt.Errorf("%w: %d", gfx.ErrUnknownProgram, key.program)
	}
	topo, err := topology(key.mode)
	if err != nil {
		return nil, err
	}
	bindings, attributes, err := key.layout.vertexInput()
	if err != nil {
		return nil, err
	}

	dynamicStates := []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor}
	depthTest := vk.Bool32(vk.False)
	if c.opts.DepthTest {
		depthTest = vk.True
	}
	pipelineInfo := vk.GraphicsPipelineCreateInfo{
		SType:      vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount: 2,
		PStages: []vk.PipelineShaderStageCreateInfo{
			shaderStage(vk.ShaderStageVertexBit, prog.vert),
			shaderStage(vk.ShaderStageFragmentBit, prog.frag),
		},
		PVertexInputState: &vk.PipelineVertexInputStateCreateInfo{
			SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
			VertexBindingDescriptionCount:   uint32(len(bindings)),
			PVertexBindingDescriptions:      bindings,
			VertexAttributeDescriptionCount: uint32(len(attributes)),
			PVertexAttributeDescriptions:    attributes,
		},
		PInputAssemblyState: &vk.PipelineInputAssemblyStateCreateInfo{
			SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology: topo,
		},
		PViewportState: &vk.PipelineViewportStateCreateInfo{
			SType:         vk.StructureTypePipelineViewportStateCreateInfo,
			ViewportCount: 1,
			ScissorCount:  1,
		},
		// Both windings are visible, fans of the cone base and sides wind in opposite directions
		PRasterizationState: &vk.PipelineRasterizationStateCreateInfo{
			SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
			PolygonMode: vk.PolygonModeFill,
			CullMode:    vk.CullModeFlags(vk.CullModeNone),
			FrontFace:   vk.FrontFaceCounterClockwise,
			LineWidth:   1.0,
		},
		PMultisampleState: &vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
			MinSampleShading:     1.0,
		},
		PDepthStencilState: &vk.PipelineDepthStencilStateCreateInfo{
			SType:            vk.StructureTypePipelineDepthStencilStateCreateInfo,
			DepthTestEnable:  depthTest,
			DepthWriteEnable: depthTest,
			DepthCompareOp:   vk.CompareOpLess,
			MaxDepthBounds:   1,
		},
		PColorBlendState: &vk.PipelineColorBlendStateCreateInfo{
			SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
			LogicOp:         vk.LogicOpCopy,
			AttachmentCount: 1,
			PAttachments: []vk.PipelineColorBlendAttachmentState{{
				ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
			}},
		},
		PDynamicState: &vk.PipelineDynamicStateCreateInfo{
			SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
			DynamicStateCount: uint32(len(dynamicStates)),
			PDynamicStates:    dynamicStates,
		},
		Layout:            c.pipelineLayout,
		RenderPass:        c.renderPass,
		BasePipelineIndex: -1,
	}
	pipeline, err := com.VkCreateGraphicsPipeline(c.device.D, pipelineInfo)
	if err != nil {
		return nil, fmt.Errorf("create %v pipeline for program %d: %w", key.mode, key.program, err)
	}
	c.pipelines[key] = pipeline
	log.Printf("Successfully created %v graphics pipeline for program %d", key.mode, key.program)
	return pipeline, nil
}
