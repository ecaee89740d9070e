package renderer

import (
	"fmt"
	"log"
	"math"
	"time"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"

	com "GPU_shape_exercises/common"
	"GPU_shape_exercises/gfx"
	vm "GPU_shape_exercises/vector_math"
)

const MAX_FRAMES_IN_FLIGHT = 2

// Options fixes the global state of a Core. It does not change after NewCore.
type Options struct {
	Title         string
	Width, Height int32
	ClearColor    [4]float32
	DepthTest     bool
	// Continuous redraws every iteration. Otherwise a frame is only drawn after the window was exposed or resized.
	Continuous bool
	ShaderDir  string
	Validation bool
}

type Core struct {
	opts Options

	// OS/Window level
	Win    *com.Window
	device *com.Device

	// Target level
	swapChain   *com.SwapChain
	depthFormat vk.Format
	depth       *com.Image

	// Drawing infrastructure level
	renderPass     vk.RenderPass
	pipelineLayout vk.PipelineLayout
	pipelines      map[pipelineKey]vk.Pipeline
	commandPool    vk.CommandPool

	// Frame level
	commandBuffers     []vk.CommandBuffer
	currentFrameIdx    int32
	imageAvailableSems []vk.Semaphore
	renderFinishedSems []vk.Semaphore
	inFlightFens       []vk.Fence
	frame              vk.CommandBuffer

	// Cam, when set, supplies the transform of programs that never set uTransform.
	Cam            *vm.Camera
	viewProjection [16]float32

	// gfx.Context state
	programs []*program
	buffers  []*com.Buffer
	attribs  [MAX_ATTRIBS]vertexBinding
	index    gfx.Buffer
	current  gfx.Program
}

// NewCore opens the window and builds everything needed to record frames. Setup failures panic.
func NewCore(opts Options) *Core {
	c := &Core{
		opts:           opts,
		pipelines:      map[pipelineKey]vk.Pipeline{},
		viewProjection: vm.NewUnitMat().ColumnMajor(),
	}
	var layers []string
	if opts.Validation {
		layers = com.VALIDATION_LAYERS
	}
	c.Win = com.NewWindow(opts.Title, opts.Width, opts.Height, layers)
	c.device = com.NewDevice(c.Win, opts.Validation)
	c.depthFormat = c.findDepthFormat()

	var err error
	c.swapChain, err = com.NewSwapChain(c.device, c.Win)
	if err != nil {
		log.Panicf("Failed to create swap chain: %s", err)
	}
	c.createRenderPass()
	c.createPipelineLayout()
	c.createCommandPool()
	if err := c.createSwapChainDerivatives(); err != nil {
		log.Panicf("Failed to create frame buffers: %s", err)
	}
	c.createCommandBuffers()
	c.createSyncObjects()
	return c
}

// IterationHandler sees every SDL event after the window flags were updated.
type IterationHandler func(sdl.Event, *Core)

// DrawHandler issues the draw calls of one frame. Returning an error stops the loop.
type DrawHandler func(time.Duration, *Core) error

// Loop is the event loop. It closes on the window's close button or ESC, does not render while minimized and
// in non continuous mode sleeps until an event requires a redraw.
func (c *Core) Loop(ih IterationHandler, dh DrawHandler) error {
	t0 := time.Now()
	frames := 0
	c.Win.Close = false
	for !c.Win.Close {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			c.Win.HandleEvent(event)
			if ih != nil {
				ih(event, c)
			}
		}
		if c.Win.Close {
			break
		}
		if c.Win.Minimized || !(c.opts.Continuous || c.Win.Exposed || c.Win.Resized) {
			sdl.WaitEvent()
			continue
		}
		c.Win.Exposed = false
		if err := c.drawFrame(time.Since(t0), dh); err != nil {
			return err
		}
		frames++
	}
	dt := time.Since(t0)
	log.Printf("Elapsed: %v, frames: %d, rough avg fps: %.1f", dt, frames, float64(frames)/dt.Seconds())
	return nil
}

func (c *Core) Destroy() {
	// Wait for the last submitted frame before tearing down
	c.device.WaitIdle()
	c.destroySwapChainAndDerivatives()

	for _, b := range c.buffers {
		com.DestroyBuffer(c.device, b)
	}
	for _, p := range c.programs {
		vk.DestroyShaderModule(c.device.D, p.vert, nil)
		vk.DestroyShaderModule(c.device.D, p.frag, nil)
	}
	for i := 0; i < MAX_FRAMES_IN_FLIGHT; i++ {
		vk.DestroySemaphore(c.device.D, c.imageAvailableSems[i], nil)
		vk.DestroySemaphore(c.device.D, c.renderFinishedSems[i], nil)
		vk.DestroyFence(c.device.D, c.inFlightFens[i], nil)
	}
	vk.DestroyCommandPool(c.device.D, c.commandPool, nil)
	for _, p := range c.pipelines {
		vk.DestroyPipeline(c.device.D, p, nil)
	}
	vk.DestroyPipelineLayout(c.device.D, c.pipelineLayout, nil)
	vk.DestroyRenderPass(c.device.D, c.renderPass, nil)

	c.device.Destroy()
	c.Win.Destroy()
}

func (c *Core) Aspect() float32 {
	return c.swapChain.Aspect
}

func (c *Core) createSwapChainDerivatives() error {
	depth, err := com.CreateImage2D(
		c.device,
		c.swapChain.Extent.Width,
		c.swapChain.Extent.Height,
		c.depthFormat,
		vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit),
		vk.ImageAspectFlags(vk.ImageAspectDepthBit),
	)
	if err != nil {
		return fmt.Errorf("depth image: %w", err)
	}
	c.depth = depth
	return c.swapChain.CreateFrameBuffers(c.device, c.renderPass, &c.depth.View)
}

func (c *Core) destroySwapChainAndDerivatives() {
	if c.depth != nil {
		com.DestroyImage(c.device, c.depth)
		c.depth = nil
	}
	c.swapChain.Destroy(c.device)
}

func (c *Core) createRenderPass() {
	colorAttachment := vk.AttachmentDescription{
		Format:         c.swapChain.Format.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}
	depthAttachment := vk.AttachmentDescription{
		Format:         c.depthFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpDontCare,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
	}
	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments: []vk.AttachmentReference{{
			Attachment: 0,
			Layout:     vk.ImageLayoutColorAttachmentOptimal,
		}},
		PDepthStencilAttachment: &vk.AttachmentReference{
			Attachment: 1,
			Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
		},
	}
	stages := vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit)
	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  stages,
		DstStageMask:  stages,
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessDepthStencilAttachmentWriteBit),
	}
	renderPassInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 2,
		PAttachments:    []vk.AttachmentDescription{colorAttachment, depthAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
	var err error
	c.renderPass, err = com.VkCreateRenderPass(c.device.D, &renderPassInfo)
	if err != nil {
		log.Panicf("Failed create render pass due to: %s", err)
	}
	log.Println("Successfully created render pass")
}

func (c *Core) createCommandPool() {
	commandPool, err := com.VKSCreateCommandPool(
		c.device.D,
		vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		*c.device.QFamilies.GraphicsFamily,
	)
	if err != nil {
		log.Panicf("Failed to create command pool: %s", err)
	}
	log.Printf("Successfully created command pool")
	c.commandPool = commandPool
}

func (c *Core) createCommandBuffers() {
	buffers, err := com.VKSAllocateCommandBuffers(c.device.D, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: MAX_FRAMES_IN_FLIGHT,
	})
	if err != nil {
		log.Panicf("Failed to allocate command buffers: %s", err)
	}
	log.Printf("Successfully allocated %d command buffers", len(buffers))
	c.commandBuffers = buffers
}

func (c *Core) createSyncObjects() {
	c.imageAvailableSems = make([]vk.Semaphore, MAX_FRAMES_IN_FLIGHT)
	c.renderFinishedSems = make([]vk.Semaphore, MAX_FRAMES_IN_FLIGHT)
	c.inFlightFens = make([]vk.Fence, MAX_FRAMES_IN_FLIGHT)
	for i := 0; i < MAX_FRAMES_IN_FLIGHT; i++ {
		var errs [3]error
		c.imageAvailableSems[i], errs[0] = com.VkCreateSemaphore(c.device.D)
		c.renderFinishedSems[i], errs[1] = com.VkCreateSemaphore(c.device.D)
		c.inFlightFens[i], errs[2] = com.VkCreateFence(c.device.D, vk.FenceCreateFlags(vk.FenceCreateSignaledBit))
		for _, err := range errs {
			if err != nil {
				log.Panicf("Failed to create sync objects for frame %d: %s", i, err)
			}
		}
	}
}

// Drawing and derivative functionality

func (c *Core) beginFrame(buffer vk.CommandBuffer, imageIdx uint32) error {
	beginInfo := vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo}
	if err := vk.Error(vk.BeginCommandBuffer(buffer, &beginInfo)); err != nil {
		return fmt.Errorf("begin command buffer: %w", err)
	}
	cc := c.opts.ClearColor
	clearValues := []vk.ClearValue{
		vk.NewClearValue(cc[:]),
		vk.NewClearDepthStencil(1, 0),
	}
	renderPassInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  c.renderPass,
		Framebuffer: c.swapChain.FrameBuffers[imageIdx],
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: c.swapChain.Extent,
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(buffer, &renderPassInfo, vk.SubpassContentsInline)
	vk.CmdSetViewport(buffer, 0, 1, []vk.Viewport{{
		Width:    float32(c.swapChain.Extent.Width),
		Height:   float32(c.swapChain.Extent.Height),
		MaxDepth: 1.0,
	}})
	vk.CmdSetScissor(buffer, 0, 1, []vk.Rect2D{{Extent: c.swapChain.Extent}})
	return nil
}

func (c *Core) drawFrame(elapsed time.Duration, dh DrawHandler) error {
	fence := []vk.Fence{c.inFlightFens[c.currentFrameIdx]}
	vk.WaitForFences(c.device.D, 1, fence, vk.True, math.MaxUint64)

	var imgIdx uint32
	result := vk.AcquireNextImage(c.device.D, c.swapChain.Handle, math.MaxUint64, c.imageAvailableSems[c.currentFrameIdx], nil, &imgIdx)
	if result == vk.ErrorOutOfDate {
		c.recreateSwapChain()
		return nil
	} else if result != vk.Success && result != vk.Suboptimal {
		return fmt.Errorf("acquire swap chain image: %w", vk.Error(result))
	}

	// Only reset the fence once work that signals it is certain to be submitted
	vk.ResetFences(c.device.D, 1, fence)
	cb := c.commandBuffers[c.currentFrameIdx]
	vk.ResetCommandBuffer(cb, 0)
	if err := c.beginFrame(cb, imgIdx); err != nil {
		return err
	}
	if c.Cam != nil {
		c.Cam.Aspect = c.swapChain.Aspect
		c.viewProjection = c.Cam.ViewProjection().ColumnMajor()
	}

	c.frame = cb
	drawErr := dh(elapsed, c)
	c.frame = nil

	vk.CmdEndRenderPass(cb)
	if err := vk.Error(vk.EndCommandBuffer(cb)); err != nil {
		return fmt.Errorf("record command buffer: %w", err)
	}

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{c.imageAvailableSems[c.currentFrameIdx]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{cb},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{c.renderFinishedSems[c.currentFrameIdx]},
	}
	if err := vk.Error(vk.QueueSubmit(c.device.GraphicsQ, 1, []vk.SubmitInfo{submitInfo}, c.inFlightFens[c.currentFrameIdx])); err != nil {
		return fmt.Errorf("submit command buffer: %w", err)
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.renderFinishedSems[c.currentFrameIdx]},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{c.swapChain.Handle},
		PImageIndices:      []uint32{imgIdx},
	}
	result = vk.QueuePresent(c.device.PresentQ, &presentInfo)
	if result == vk.ErrorOutOfDate || result == vk.Suboptimal || c.Win.Resized {
		c.recreateSwapChain()
	} else if result != vk.Success {
		return fmt.Errorf("present swap chain image: %w", vk.Error(result))
	}

	c.currentFrameIdx = (c.currentFrameIdx + 1) % MAX_FRAMES_IN_FLIGHT
	return drawErr
}

// recreateSwapChain rebuilds the swap chain for the new window size. An empty drawable (e.g. while minimizing)
// keeps Resized set so the next frame tries again.
func (c *Core) recreateSwapChain() {
	if w, h := c.Win.Win.VulkanGetDrawableSize(); w == 0 || h == 0 {
		c.Win.Resized = true
		return
	}
	c.device.WaitIdle()
	c.destroySwapChainAndDerivatives()
	sc, err := com.NewSwapChain(c.device, c.Win)
	if err != nil {
		log.Panicf("Failed to recreate swap chain: %s", err)
	}
	c.swapChain = sc
	if err := c.createSwapChainDerivatives(); err != nil {
		log.Panicf("Failed to recreate frame buffers: %s", err)
	}
	c.Win.Resized = false
	c.Win.Exposed = true
}
