package renderer

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"

	com "GPU_shape_exercises/common"
)

// Helpers tied to a Core that assume the renderer's defaults, unlike the general VKS functions in common.

// uploadBuffer moves payload into a new device local buffer through a host visible staging buffer.
func (c *Core) uploadBuffer(payload []byte, usage vk.BufferUsageFlags) (*com.Buffer, error) {
	size := vk.DeviceSize(len(payload))
	stg, err := com.CreateBuffer(
		c.device,
		size,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
	)
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer com.DestroyBuffer(c.device, stg)
	if err := com.CopyToDeviceBuffer(c.device, stg, payload); err != nil {
		return nil, err
	}

	dst, err := com.CreateBuffer(c.device, size, usage, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return nil, fmt.Errorf("create device buffer: %w", err)
	}
	if err := c.copyBuffer(stg, dst, size); err != nil {
		com.DestroyBuffer(c.device, dst)
		return nil, err
	}
	return dst, nil
}

// copyBuffer records a single copy into a one time command buffer and waits for the graphics queue.
func (c *Core) copyBuffer(src *com.Buffer, dst *com.Buffer, s vk.DeviceSize) error {
	cmdBuf, err := com.VKSBeginSingleTimeCommands(c.device.D, c.commandPool)
	if err != nil {
		return err
	}
	vk.CmdCopyBuffer(cmdBuf, src.Handle, dst.Handle, 1, []vk.BufferCopy{{Size: s}})
	if err := com.VKSEndSingleTimeCommands(c.device.D, c.commandPool, c.device.GraphicsQ, cmdBuf); err != nil {
		return fmt.Errorf("copy buffer: %w", err)
	}
	return nil
}

func (c *Core) findDepthFormat() vk.Format {
	candidates := []vk.Format{vk.FormatD32Sfloat, vk.FormatD32SfloatS8Uint, vk.FormatD24UnormS8Uint}
	features := vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit)
	for _, format := range candidates {
		var fProps vk.FormatProperties
		vk.GetPhysicalDeviceFormatProperties(c.device.PD, format, &fProps)
		fProps.Deref()
		if fProps.OptimalTilingFeatures&features == features {
			return format
		}
	}
	log.Panicf("No supported depth format found")
	return vk.FormatUndefined
}
