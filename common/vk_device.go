package common

import (
	"log"

	vk "github.com/goki/vulkan"
)

var VALIDATION_LAYERS = []string{
	"VK_LAYER_KHRONOS_validation",
}

var DEVICE_EXTENSIONS = []string{
	"VK_KHR_swapchain",
}

// Device bundles the selected GPU, its logical device and the queues the renderer submits to.
type Device struct {
	PD            vk.PhysicalDevice
	PdProps       vk.PhysicalDeviceProperties
	PdMemoryProps vk.PhysicalDeviceMemoryProperties
	QFamilies     QueueFamilyIndices

	D         vk.Device
	GraphicsQ vk.Queue
	PresentQ  vk.Queue
}

// NewDevice picks the best suited physical device for the window's surface and creates a logical device on it.
func NewDevice(w *Window, validation bool) *Device {
	dc := &Device{}
	dc.selectPhysicalDevice(w.Inst, w.Surf)
	dc.createLogicalDevice(validation)
	return dc
}

// Destroy only destroys the logical device. The window stays owned by the caller.
func (dc *Device) Destroy() {
	vk.DestroyDevice(dc.D, nil)
}

// WaitIdle blocks until all queues of the logical device are idle.
func (dc *Device) WaitIdle() {
	if err := vk.Error(vk.DeviceWaitIdle(dc.D)); err != nil {
		log.Printf("Failed to wait for device idle: %s", err)
	}
}

func (dc *Device) selectPhysicalDevice(in vk.Instance, su vk.Surface) {
	bestScore := 0
	for _, pd := range ReadPhysicalDevices(in) {
		score := rateDevice(pd, su)
		if score > bestScore {
			bestScore = score
			dc.PD = pd
		}
	}
	if dc.PD == nil {
		log.Panicf("No suitable physical device (GPU) found")
	}
	qf, err := findQueueFamilies(dc.PD, su)
	if err != nil {
		log.Panicf("Failed to read queue families from selected device due to: %s", err)
	}
	dc.QFamilies = *qf
	dc.PdProps = ReadPhysicalDeviceProperties(dc.PD)
	dc.PdMemoryProps = ReadDeviceMemoryProperties(dc.PD)
	log.Printf("Selected physical device %q", vk.ToString(dc.PdProps.DeviceName[:]))
}

func rateDevice(pd vk.PhysicalDevice, su vk.Surface) int {
	pdProps := ReadPhysicalDeviceProperties(pd)
	log.Printf("Physical device\n%s", ToStringPhysicalDevice(pdProps, ReadQueueFamilies(pd)))

	if _, err := findQueueFamilies(pd, su); err != nil {
		log.Printf("Failed to get required queue families: %s", err)
		return 0
	}
	if !IsSubset(DEVICE_EXTENSIONS, ReadDeviceExtensionNames(pd)) {
		log.Printf("Device lacks required extensions %v", DEVICE_EXTENSIONS)
		return 0
	}
	if !ReadSwapChainSupportDetails(pd, su).IsAdequate() {
		log.Printf("Device swap chain support is not adequate")
		return 0
	}
	return deviceTypeScore(pdProps.DeviceType)
}

// deviceTypeScore ranks usable devices, discrete GPUs first.
func deviceTypeScore(dt vk.PhysicalDeviceType) int {
	switch dt {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return 4
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return 3
	case vk.PhysicalDeviceTypeVirtualGpu:
		return 2
	default:
		return 1
	}
}

func (dc *Device) createLogicalDevice(validation bool) {
	queueInfos := dc.QFamilies.toQueueCreateInfos()
	deviceCreateInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(DEVICE_EXTENSIONS)),
		PpEnabledExtensionNames: TerminatedStrs(DEVICE_EXTENSIONS),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
	}
	if validation {
		deviceCreateInfo.EnabledLayerCount = uint32(len(VALIDATION_LAYERS))
		deviceCreateInfo.PpEnabledLayerNames = TerminatedStrs(VALIDATION_LAYERS)
	}

	var err error
	dc.D, err = VkCreateDevice(dc.PD, deviceCreateInfo)
	if err != nil {
		log.Panicf("Failed create logical device due to: %s", err)
	}
	dc.GraphicsQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.GraphicsFamily)
	if err != nil {
		log.Panicf("Failed to get 'graphics' device queue: %s", err)
	}
	dc.PresentQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.PresentFamily)
	if err != nil {
		log.Panicf("Failed to get 'present' device queue: %s", err)
	}
	log.Println("Successfully created logical device")
}
