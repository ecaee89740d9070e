package common

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
)

type SwapChain struct {
	details SwapChainDetails
	Handle  vk.Swapchain

	Format      vk.SurfaceFormat
	PresentMode vk.PresentMode
	Extent      vk.Extent2D
	Aspect      float32

	Images       []vk.Image
	ImgViews     []vk.ImageView
	FrameBuffers []vk.Framebuffer
}

// NewSwapChain creates a swap chain matching the window's drawable size together with one image view per image.
func NewSwapChain(dc *Device, w *Window) (*SwapChain, error) {
	sc := &SwapChain{details: ReadSwapChainSupportDetails(dc.PD, w.Surf)}
	sc.Format = sc.details.SelectSurfaceFormat(vk.FormatB8g8r8a8Unorm, vk.ColorSpaceSrgbNonlinear)
	sc.PresentMode = sc.details.SelectPresentMode(vk.PresentModeMailbox)
	dw, dh := w.Win.VulkanGetDrawableSize()
	sc.Extent = sc.details.SelectExtent(uint32(dw), uint32(dh))
	if sc.Extent.Width == 0 || sc.Extent.Height == 0 {
		return nil, fmt.Errorf("swap chain extent %dx%d is empty", sc.Extent.Width, sc.Extent.Height)
	}
	sc.Aspect = float32(sc.Extent.Width) / float32(sc.Extent.Height)

	if err := sc.createHandle(dc, w); err != nil {
		return nil, err
	}
	sc.Images = ReadSwapChainImages(dc.D, sc.Handle)
	sc.ImgViews = make([]vk.ImageView, len(sc.Images))
	for i := range sc.Images {
		view, err := VKSCreateImageView2D(dc.D, sc.Images[i], sc.Format.Format, vk.ImageAspectFlags(vk.ImageAspectColorBit))
		if err != nil {
			sc.Destroy(dc)
			return nil, fmt.Errorf("create swap chain image view %d: %w", i, err)
		}
		sc.ImgViews[i] = view
	}
	log.Printf("Successfully created swap chain with %d images (%dx%d)", len(sc.Images), sc.Extent.Width, sc.Extent.Height)
	return sc, nil
}

func (sc *SwapChain) createHandle(dc *Device, w *Window) error {
	createInfo := &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          w.Surf,
		MinImageCount:    sc.details.ImageCount(),
		ImageFormat:      sc.Format.Format,
		ImageColorSpace:  sc.Format.ColorSpace,
		ImageExtent:      sc.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     sc.details.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      sc.PresentMode,
		Clipped:          vk.True,
	}
	// Images are shared between two families when graphics and presentation are split
	if !dc.QFamilies.IsShared() {
		families := dc.QFamilies.Unique()
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
		createInfo.QueueFamilyIndexCount = uint32(len(families))
		createInfo.PQueueFamilyIndices = families
	}
	handle, err := VkCreateSwapChain(dc.D, createInfo)
	if err != nil {
		return fmt.Errorf("create swap chain: %w", err)
	}
	sc.Handle = handle
	return nil
}

// CreateFrameBuffers creates one frame buffer per swap chain image. A non-nil depthView is attached to all of them.
func (sc *SwapChain) CreateFrameBuffers(dc *Device, renderPass vk.RenderPass, depthView *vk.ImageView) error {
	sc.FrameBuffers = make([]vk.Framebuffer, 0, len(sc.ImgViews))
	for i := range sc.ImgViews {
		attachments := []vk.ImageView{sc.ImgViews[i]}
		if depthView != nil {
			attachments = append(attachments, *depthView)
		}
		framebufferInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      renderPass,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           sc.Extent.Width,
			Height:          sc.Extent.Height,
			Layers:          1,
		}
		fb, err := VkCreateFrameBuffer(dc.D, &framebufferInfo)
		if err != nil {
			return fmt.Errorf("create frame buffer %d: %w", i, err)
		}
		sc.FrameBuffers = append(sc.FrameBuffers, fb)
	}
	log.Printf("Successfully created %d frame buffers", len(sc.FrameBuffers))
	return nil
}

func (sc *SwapChain) Destroy(dc *Device) {
	for i := range sc.FrameBuffers {
		vk.DestroyFramebuffer(dc.D, sc.FrameBuffers[i], nil)
	}
	for i := range sc.ImgViews {
		if sc.ImgViews[i] != nil {
			vk.DestroyImageView(dc.D, sc.ImgViews[i], nil)
		}
	}
	vk.DestroySwapchain(dc.D, sc.Handle, nil)
}

type SwapChainDetails struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

func (s *SwapChainDetails) IsAdequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

func (s *SwapChainDetails) SelectSurfaceFormat(desiredFormat vk.Format, desiredColorSpace vk.ColorSpace) vk.SurfaceFormat {
	for _, af := range s.Formats {
		if af.Format == desiredFormat && af.ColorSpace == desiredColorSpace {
			return af
		}
	}
	log.Printf("Did not find preferred SurfaceFormat, selecting first one available. (%v)", s.Formats[0])
	return s.Formats[0]
}

// SelectPresentMode falls back to FIFO which every implementation must support.
func (s *SwapChainDetails) SelectPresentMode(desiredMode vk.PresentMode) vk.PresentMode {
	for _, pm := range s.PresentModes {
		if pm == desiredMode {
			return pm
		}
	}
	return vk.PresentModeFifo
}

// SelectExtent uses the surface's current extent unless the surface leaves it to the application
// (width 0xFFFFFFFF), in which case the drawable size is clamped into the allowed range.
func (s *SwapChainDetails) SelectExtent(drawableW, drawableH uint32) vk.Extent2D {
	c := s.Capabilities
	if c.CurrentExtent.Width != ^uint32(0) {
		return c.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampU32(drawableW, c.MinImageExtent.Width, c.MaxImageExtent.Width),
		Height: clampU32(drawableH, c.MinImageExtent.Height, c.MaxImageExtent.Height),
	}
}

// ImageCount asks for one image more than the minimum, bounded by the maximum when there is one.
func (s *SwapChainDetails) ImageCount() uint32 {
	n := s.Capabilities.MinImageCount + 1
	if s.Capabilities.MaxImageCount > 0 && n > s.Capabilities.MaxImageCount {
		n = s.Capabilities.MaxImageCount
	}
	return n
}

func clampU32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
