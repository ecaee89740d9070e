package renderer

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	vk "github.com/goki/vulkan"

	com "GPU_shape_exercises/common"
	"GPU_shape_exercises/gfx"
)

const SPIRV_MAGIC = 0x07230203

// shaderPath resolves a shader identifier to its compiled SPIR-V file.
func shaderPath(dir, id string) string {
	return filepath.Join(dir, id+".spv")
}

// parseSpirv checks the SPIR-V magic number and returns the code words.
func parseSpirv(id string, code []byte) ([]uint32, error) {
	words, err := com.AsUint32Arr(code)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", id, err)
	}
	if words[0] != SPIRV_MAGIC {
		return nil, fmt.Errorf("shader %q is not SPIR-V (magic %#08x)", id, words[0])
	}
	return words, nil
}

// loadShaderModule reads <dir>/<id>.spv into a shader module. A missing file reports gfx.ErrUnknownShader.
func loadShaderModule(d vk.Device, dir, id string) (vk.ShaderModule, error) {
	path := shaderPath(dir, id)
	code, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q (%s)", gfx.ErrUnknownShader, id, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read shader %q: %w", id, err)
	}
	words, err := parseSpirv(id, code)
	if err != nil {
		return nil, err
	}
	createInfo := &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(code)),
		PCode:    words,
	}
	module, err := com.VkCreateShaderModule(d, createInfo)
	if err != nil {
		return nil, fmt.Errorf("create shader module %q: %w", id, err)
	}
	log.Printf("Created shader module %q from %s (%d Byte)", id, path, len(code))
	return module, nil
}

func shaderStage(stage vk.ShaderStageFlagBits, module vk.ShaderModule) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: module,
		PName:  "main\x00",
	}
}
