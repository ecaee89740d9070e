package common

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// Slightly altered versions of the raw bindings and wrappers. They only hide default values that do not change for
// this renderer. Names are prefixed with VKS which stands for (V)ul(K)an (S)implified.

// VKSAllocateCommandBuffers assumes the number of CommandBuffers is given by pAllocateInfo.
func VKSAllocateCommandBuffers(device vk.Device, pAllocateInfo *vk.CommandBufferAllocateInfo) ([]vk.CommandBuffer, error) {
	var buffers = make([]vk.CommandBuffer, pAllocateInfo.CommandBufferCount)
	err := vk.Error(vk.AllocateCommandBuffers(device, pAllocateInfo, buffers))
	if err != nil {
		return nil, err
	}
	return buffers, nil
}

// VKSCreateCommandPool only takes the two interesting values of the CreateInfo.
func VKSCreateCommandPool(device vk.Device, flags vk.CommandPoolCreateFlags, queueFamilyIndex uint32) (vk.CommandPool, error) {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            flags,
		QueueFamilyIndex: queueFamilyIndex,
	}
	return VkCreateCommandPool(device, &poolInfo)
}

// VKSCreateImageView2D creates a single level, single layer view with identity swizzle.
func VKSCreateImageView2D(device vk.Device, image vk.Image, format vk.Format, aspect vk.ImageAspectFlags) (vk.ImageView, error) {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: aspect,
			LevelCount: 1,
			LayerCount: 1,
		},
	}
	return VkCreateImageView(device, createInfo)
}

// VKSBeginSingleTimeCommands allocates a primary command buffer from pool and starts recording it for one submit.
func VKSBeginSingleTimeCommands(device vk.Device, pool vk.CommandPool) (vk.CommandBuffer, error) {
	allocInfo := &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	buffers, err := VKSAllocateCommandBuffers(device, allocInfo)
	if err != nil {
		return nil, fmt.Errorf("allocate single time command buffer: %w", err)
	}
	beginInfo := &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(buffers[0], beginInfo)); err != nil {
		vk.FreeCommandBuffers(device, pool, 1, buffers)
		return nil, fmt.Errorf("begin single time command buffer: %w", err)
	}
	return buffers[0], nil
}

// VKSEndSingleTimeCommands submits cb to q, waits for the queue to idle and frees the buffer.
func VKSEndSingleTimeCommands(device vk.Device, pool vk.CommandPool, q vk.Queue, cb vk.CommandBuffer) error {
	defer vk.FreeCommandBuffers(device, pool, 1, []vk.CommandBuffer{cb})
	if err := vk.Error(vk.EndCommandBuffer(cb)); err != nil {
		return fmt.Errorf("end single time command buffer: %w", err)
	}
	submitInfo := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cb},
	}}
	if err := vk.Error(vk.QueueSubmit(q, 1, submitInfo, nil)); err != nil {
		return fmt.Errorf("submit single time command buffer: %w", err)
	}
	return vk.Error(vk.QueueWaitIdle(q))
}
