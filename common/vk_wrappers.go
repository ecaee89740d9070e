package common

import (
	"errors"
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

// Handle-returning forms of the vulkan create calls used by the renderer. All of them run with the
// default allocator, and a failing call is reported under its vulkan name.

var ErrNoQueueFamily = errors.New("queue family was not selected")

func vkCheck(call string, r vk.Result) error {
	if err := vk.Error(r); err != nil {
		return fmt.Errorf("%s: %w", call, err)
	}
	return nil
}

func VkCreateInstance(info *vk.InstanceCreateInfo) (vk.Instance, error) {
	var in vk.Instance
	if err := vkCheck("vkCreateInstance", vk.CreateInstance(info, nil, &in)); err != nil {
		return nil, err
	}
	if err := vk.InitInstance(in); err != nil {
		return nil, fmt.Errorf("loading instance functions: %w", err)
	}
	return in, nil
}

func SdlCreateVkSurface(win *sdl.Window, instance vk.Instance) (vk.Surface, error) {
	ptr, err := win.VulkanCreateSurface(instance)
	if err != nil {
		return nil, fmt.Errorf("SDL_Vulkan_CreateSurface: %w", err)
	}
	return vk.SurfaceFromPointer(uintptr(ptr)), nil
}

func VkCreateDevice(pd vk.PhysicalDevice, info *vk.DeviceCreateInfo) (vk.Device, error) {
	var d vk.Device
	err := vkCheck("vkCreateDevice", vk.CreateDevice(pd, info, nil, &d))
	return d, err
}

// VkGetDeviceQueue fetches the first queue of a selected family.
func VkGetDeviceQueue(device vk.Device, family *uint32) (vk.Queue, error) {
	if family == nil {
		return nil, ErrNoQueueFamily
	}
	var q vk.Queue
	vk.GetDeviceQueue(device, *family, 0, &q)
	return q, nil
}

func VkCreateSwapChain(device vk.Device, info *vk.SwapchainCreateInfo) (vk.Swapchain, error) {
	var sc vk.Swapchain
	err := vkCheck("vkCreateSwapchainKHR", vk.CreateSwapchain(device, info, nil, &sc))
	return sc, err
}

func VkCreateImageView(device vk.Device, info *vk.ImageViewCreateInfo) (vk.ImageView, error) {
	var view vk.ImageView
	err := vkCheck("vkCreateImageView", vk.CreateImageView(device, info, nil, &view))
	return view, err
}

func VkCreateRenderPass(device vk.Device, info *vk.RenderPassCreateInfo) (vk.RenderPass, error) {
	var rp vk.RenderPass
	err := vkCheck("vkCreateRenderPass", vk.CreateRenderPass(device, info, nil, &rp))
	return rp, err
}

func VkCreateFrameBuffer(device vk.Device, info *vk.FramebufferCreateInfo) (vk.Framebuffer, error) {
	var fb vk.Framebuffer
	err := vkCheck("vkCreateFramebuffer", vk.CreateFramebuffer(device, info, nil, &fb))
	return fb, err
}

func VkCreatePipelineLayout(device vk.Device, info *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, error) {
	var layout vk.PipelineLayout
	err := vkCheck("vkCreatePipelineLayout", vk.CreatePipelineLayout(device, info, nil, &layout))
	return layout, err
}

// VkCreateGraphicsPipeline creates one pipeline without a pipeline cache.
func VkCreateGraphicsPipeline(device vk.Device, info vk.GraphicsPipelineCreateInfo) (vk.Pipeline, error) {
	pipelines := make([]vk.Pipeline, 1)
	infos := []vk.GraphicsPipelineCreateInfo{info}
	if err := vkCheck("vkCreateGraphicsPipelines", vk.CreateGraphicsPipelines(device, nil, 1, infos, nil, pipelines)); err != nil {
		return nil, err
	}
	return pipelines[0], nil
}

func VkCreateShaderModule(device vk.Device, info *vk.ShaderModuleCreateInfo) (vk.ShaderModule, error) {
	var module vk.ShaderModule
	err := vkCheck("vkCreateShaderModule", vk.CreateShaderModule(device, info, nil, &module))
	return module, err
}

func VkCreateCommandPool(device vk.Device, info *vk.CommandPoolCreateInfo) (vk.CommandPool, error) {
	var pool vk.CommandPool
	err := vkCheck("vkCreateCommandPool", vk.CreateCommandPool(device, info, nil, &pool))
	return pool, err
}

func VkCreateBuffer(device vk.Device, info *vk.BufferCreateInfo) (vk.Buffer, error) {
	var buf vk.Buffer
	err := vkCheck("vkCreateBuffer", vk.CreateBuffer(device, info, nil, &buf))
	return buf, err
}

func VkAllocateMemory(device vk.Device, info *vk.MemoryAllocateInfo) (vk.DeviceMemory, error) {
	var mem vk.DeviceMemory
	err := vkCheck("vkAllocateMemory", vk.AllocateMemory(device, info, nil, &mem))
	return mem, err
}

// VkMapMemory maps size bytes of memory from its start.
func VkMapMemory(device vk.Device, memory vk.DeviceMemory, size vk.DeviceSize) (unsafe.Pointer, error) {
	var data unsafe.Pointer
	err := vkCheck("vkMapMemory", vk.MapMemory(device, memory, 0, size, 0, &data))
	return data, err
}

func VkCreateImage(device vk.Device, info *vk.ImageCreateInfo) (vk.Image, error) {
	var img vk.Image
	err := vkCheck("vkCreateImage", vk.CreateImage(device, info, nil, &img))
	return img, err
}

func VkCreateSemaphore(device vk.Device) (vk.Semaphore, error) {
	var s vk.Semaphore
	info := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	err := vkCheck("vkCreateSemaphore", vk.CreateSemaphore(device, &info, nil, &s))
	return s, err
}

func VkCreateFence(device vk.Device, flags vk.FenceCreateFlags) (vk.Fence, error) {
	var f vk.Fence
	info := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo, Flags: flags}
	err := vkCheck("vkCreateFence", vk.CreateFence(device, &info, nil, &f))
	return f, err
}
