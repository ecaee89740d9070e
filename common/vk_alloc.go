package common

import (
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"
)

// Allocation helpers for buffers and images on the selected device.

var ErrNoMemoryType = errors.New("no suitable memory type")

type Buffer struct {
	Handle    vk.Buffer
	DeviceMem vk.DeviceMemory
	Size      vk.DeviceSize
	Usage     vk.BufferUsageFlags
	props     vk.MemoryPropertyFlags
}

// CreateBuffer creates a buffer of the given size and binds freshly allocated memory with props to it.
func CreateBuffer(dc *Device, size vk.DeviceSize, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags) (*Buffer, error) {
	bufferInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}
	buf, err := VkCreateBuffer(dc.D, &bufferInfo)
	if err != nil {
		return nil, fmt.Errorf("create buffer: %w", err)
	}

	req := ReadBufferMemoryRequirements(dc.D, buf)
	memType, err := FindMemoryType(dc.PdMemoryProps, req.MemoryTypeBits, props)
	if err != nil {
		vk.DestroyBuffer(dc.D, buf, nil)
		return nil, err
	}
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  req.Size,
		MemoryTypeIndex: memType,
	}
	mem, err := VkAllocateMemory(dc.D, &allocInfo)
	if err != nil {
		vk.DestroyBuffer(dc.D, buf, nil)
		return nil, fmt.Errorf("allocate buffer memory: %w", err)
	}
	if err := vk.Error(vk.BindBufferMemory(dc.D, buf, mem, 0)); err != nil {
		vk.DestroyBuffer(dc.D, buf, nil)
		vk.FreeMemory(dc.D, mem, nil)
		return nil, fmt.Errorf("bind buffer memory: %w", err)
	}
	return &Buffer{Handle: buf, DeviceMem: mem, Size: size, Usage: usage, props: props}, nil
}

// CopyToDeviceBuffer maps the buffer, copies payload to offset 0 and unmaps it again. The buffer must be host
// visible and coherent, and payload must fill it exactly.
func CopyToDeviceBuffer(dc *Device, b *Buffer, payload []byte) error {
	hostFlags := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	if b.props&hostFlags != hostFlags {
		return errors.New("buffer memory is not host visible and coherent")
	}
	if b.Size != vk.DeviceSize(len(payload)) {
		return fmt.Errorf("payload of %d bytes does not match buffer size %d", len(payload), b.Size)
	}
	pData, err := VkMapMemory(dc.D, b.DeviceMem, b.Size)
	if err != nil {
		return fmt.Errorf("map buffer memory: %w", err)
	}
	vk.Memcopy(pData, payload)
	vk.UnmapMemory(dc.D, b.DeviceMem)
	return nil
}

func DestroyBuffer(dc *Device, b *Buffer) {
	vk.DestroyBuffer(dc.D, b.Handle, nil)
	vk.FreeMemory(dc.D, b.DeviceMem, nil)
}

type Image struct {
	Handle    vk.Image
	DeviceMem vk.DeviceMemory
	View      vk.ImageView
	Format    vk.Format
}

// CreateImage2D creates a single level optimal tiling image with bound memory and a view for aspect.
func CreateImage2D(dc *Device, w, h uint32, format vk.Format, usage vk.ImageUsageFlags, aspect vk.ImageAspectFlags) (*Image, error) {
	imageInfo := &vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     vk.ImageType2d,
		Format:        format,
		Extent:        vk.Extent3D{Width: w, Height: h, Depth: 1},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       vk.SampleCount1Bit,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         usage,
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}
	img, err := VkCreateImage(dc.D, imageInfo)
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	req := ReadImageMemoryRequirements(dc.D, img)
	memType, err := FindMemoryType(dc.PdMemoryProps, req.MemoryTypeBits, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		vk.DestroyImage(dc.D, img, nil)
		return nil, err
	}
	allocInfo := &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  req.Size,
		MemoryTypeIndex: memType,
	}
	mem, err := VkAllocateMemory(dc.D, allocInfo)
	if err != nil {
		vk.DestroyImage(dc.D, img, nil)
		return nil, fmt.Errorf("allocate image memory: %w", err)
	}
	if err := vk.Error(vk.BindImageMemory(dc.D, img, mem, 0)); err != nil {
		vk.DestroyImage(dc.D, img, nil)
		vk.FreeMemory(dc.D, mem, nil)
		return nil, fmt.Errorf("bind image memory: %w", err)
	}
	view, err := VKSCreateImageView2D(dc.D, img, format, aspect)
	if err != nil {
		vk.DestroyImage(dc.D, img, nil)
		vk.FreeMemory(dc.D, mem, nil)
		return nil, fmt.Errorf("create image view: %w", err)
	}
	return &Image{Handle: img, DeviceMem: mem, View: view, Format: format}, nil
}

func DestroyImage(dc *Device, img *Image) {
	vk.DestroyImageView(dc.D, img.View, nil)
	vk.DestroyImage(dc.D, img.Handle, nil)
	vk.FreeMemory(dc.D, img.DeviceMem, nil)
}

// FindMemoryType returns the first memory type allowed by typeFilter that carries all propFlags.
func FindMemoryType(memProps vk.PhysicalDeviceMemoryProperties, typeFilter uint32, propFlags vk.MemoryPropertyFlags) (uint32, error) {
	for i := uint32(0); i < memProps.MemoryTypeCount; i++ {
		ofType := typeFilter&(1<<i) > 0
		hasProperties := memProps.MemoryTypes[i].PropertyFlags&propFlags == propFlags
		if ofType && hasProperties {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w (filter %032b, flags %d)", ErrNoMemoryType, typeFilter, propFlags)
}
