package common

import (
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
)

// Human readable renditions of device properties, used when logging the device selection.

func ToStringPhysicalDevice(pdProps vk.PhysicalDeviceProperties, qFamilies []vk.QueueFamilyProperties) string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("%s:\n|_api: %s, driver: %s, vendor: %s, type: %s\n",
		vk.ToString(pdProps.DeviceName[:]),
		vk.Version(pdProps.ApiVersion).String(),
		AsDriverVersion(vk.VendorId(pdProps.VendorID), pdProps.DriverVersion),
		AsVendorName(vk.VendorId(pdProps.VendorID)),
		ToStringDeviceType(pdProps.DeviceType),
	))
	for i := range qFamilies {
		prefix := "| "
		if i == len(qFamilies)-1 {
			prefix = "|_"
		}
		b.WriteString(fmt.Sprintf("%sQfamily[%d] count: %d, flags: %v\n",
			prefix, i, qFamilies[i].QueueCount, ToStringQueueFlags(qFamilies[i].QueueFlags)))
	}
	return b.String()
}

func AsVendorName(v vk.VendorId) string {
	switch v {
	case 0x1002:
		return "AMD"
	case 0x1010:
		return "ImgTec"
	case 0x10DE:
		return "NVIDIA"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x8086:
		return "INTEL"
	case 0x10005:
		return "Mesa"
	default:
		return "unknown"
	}
}

// AsDriverVersion decodes the packed driver version. NVIDIA uses its own 10.8.8.6 bit layout.
func AsDriverVersion(vendor vk.VendorId, raw uint32) string {
	if vendor == 0x10DE {
		return fmt.Sprintf("%d.%d.%d.%d", (raw>>22)&0x3ff, (raw>>14)&0x0ff, (raw>>6)&0x0ff, raw&0x003f)
	}
	return vk.Version(raw).String()
}

func ToStringDeviceType(dt vk.PhysicalDeviceType) string {
	switch dt {
	case vk.PhysicalDeviceTypeOther:
		return "other"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated Gpu"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete Gpu"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual Gpu"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func ToStringQueueFlags(bits vk.QueueFlags) []string {
	var properties []string
	flags := vk.QueueFlagBits(bits)
	if flags&vk.QueueGraphicsBit > 0 {
		properties = append(properties, "GRAPHICS")
	}
	if flags&vk.QueueComputeBit > 0 {
		properties = append(properties, "COMPUTE")
	}
	if flags&vk.QueueTransferBit > 0 {
		properties = append(properties, "TRANSFER")
	}
	if flags&vk.QueueSparseBindingBit > 0 {
		properties = append(properties, "SPARSE_BINDING")
	}
	if flags&vk.QueueProtectedBit > 0 {
		properties = append(properties, "PROTECTED")
	}
	return properties
}
