package common

import (
	"errors"

	vk "github.com/goki/vulkan"
)

var ErrNoGraphicsQueue = errors.New("unable to find graphics capable queue family")
var ErrNoPresentQueue = errors.New("unable to find present capable queue family for given surface")

type QueueFamilyIndices struct {
	GraphicsFamily *uint32
	PresentFamily  *uint32
}

func findQueueFamilies(pd vk.PhysicalDevice, surf vk.Surface) (*QueueFamilyIndices, error) {
	qFamilies := ReadQueueFamilies(pd)
	return selectQueueFamilies(qFamilies, func(i uint32) bool {
		var presentSupport vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(pd, i, surf, &presentSupport)
		return presentSupport > 0
	})
}

// selectQueueFamilies prefers a single family serving both graphics and presentation, then falls back to the
// first family of each kind.
func selectQueueFamilies(qFamilies []vk.QueueFamilyProperties, canPresent func(uint32) bool) (*QueueFamilyIndices, error) {
	indices := &QueueFamilyIndices{}
	for i := range qFamilies {
		idx := uint32(i)
		graphics := vk.QueueFlagBits(qFamilies[i].QueueFlags)&vk.QueueGraphicsBit > 0
		present := canPresent(idx)
		if graphics && present {
			indices.GraphicsFamily, indices.PresentFamily = &idx, &idx
			return indices, nil
		}
		if graphics && indices.GraphicsFamily == nil {
			indices.GraphicsFamily = &idx
		}
		if present && indices.PresentFamily == nil {
			indices.PresentFamily = &idx
		}
	}
	if indices.GraphicsFamily == nil {
		return nil, ErrNoGraphicsQueue
	}
	if indices.PresentFamily == nil {
		return nil, ErrNoPresentQueue
	}
	return indices, nil
}

// IsShared reports whether graphics and presentation run on the same family.
func (q *QueueFamilyIndices) IsShared() bool {
	return *q.GraphicsFamily == *q.PresentFamily
}

// Unique lists the distinct family indices, graphics first.
func (q *QueueFamilyIndices) Unique() []uint32 {
	if q.IsShared() {
		return []uint32{*q.GraphicsFamily}
	}
	return []uint32{*q.GraphicsFamily, *q.PresentFamily}
}

func (q *QueueFamilyIndices) toQueueCreateInfos() []vk.DeviceQueueCreateInfo {
	uniq := q.Unique()
	infos := make([]vk.DeviceQueueCreateInfo, len(uniq))
	for i := range uniq {
		infos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uniq[i],
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}
	return infos
}
