package common

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

const APPLICATION_NAME = "GPU shape exercises"
const APP_MAJOR, APP_MINOR, APP_PATCH = 1, 0, 0
const ENGINE_NAME = "No Engine"
const ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH = 1, 0, 0

const SDL_MAJOR, SDL_MINOR, SDL_PATCH = int(sdl.MAJOR_VERSION), int(sdl.MINOR_VERSION), int(sdl.PATCHLEVEL)

// Vulkan API version requested from the driver. The shapes need nothing beyond 1.0.
const VK_API_MAJOR, VK_API_MINOR, VK_API_PATCH int = 1, 0, 0

// Window owns the SDL window together with the Vulkan instance and surface created for it. The flags are updated
// by the render loop from SDL window events.
type Window struct {
	sdlVersion string
	vkVersion  string

	Win       *sdl.Window
	Resized   bool
	Minimized bool
	Exposed   bool
	Close     bool

	Inst vk.Instance
	Surf vk.Surface
}

// NewWindow initializes SDL, loads Vulkan through SDL and creates the instance and surface. An empty
// validationLayers slice disables validation. Tear down with Destroy.
func NewWindow(title string, w int32, h int32, validationLayers []string) *Window {
	window := &Window{
		sdlVersion: fmt.Sprintf("v%d.%d.%d", SDL_MAJOR, SDL_MINOR, SDL_PATCH),
		vkVersion:  fmt.Sprintf("v%d.%d.%d", VK_API_MAJOR, VK_API_MINOR, VK_API_PATCH),
		Exposed:    true,
	}
	window.initSDLWindow(title, w, h)
	window.initVulkan()
	window.createVulkanInstance(validationLayers)
	window.createSdlVkSurface()
	log.Printf("Generated SDL/Vulkan window - SDL: %s Vulkan API: %s", window.sdlVersion, window.vkVersion)
	return window
}

// Destroy tears down the surface, the instance and the SDL window in reverse creation order.
func (w *Window) Destroy() {
	vk.DestroySurface(w.Inst, w.Surf, nil)
	vk.DestroyInstance(w.Inst, nil)
	if err := w.Win.Destroy(); err != nil {
		log.Printf("Failed to destroy SDL window: %v", err)
	}
	sdl.Quit()
}

// HandleEvent folds window relevant SDL events into the window flags.
func (w *Window) HandleEvent(event sdl.Event) {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		w.Close = true
	case *sdl.WindowEvent:
		switch ev.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			w.Resized = true
			w.Exposed = true
		case sdl.WINDOWEVENT_MINIMIZED:
			w.Minimized = true
		case sdl.WINDOWEVENT_RESTORED:
			w.Minimized = false
			w.Exposed = true
		case sdl.WINDOWEVENT_EXPOSED, sdl.WINDOWEVENT_SHOWN:
			w.Exposed = true
		case sdl.WINDOWEVENT_CLOSE:
			w.Close = true
		}
	case *sdl.KeyboardEvent:
		if ev.Keysym.Sym == sdl.K_ESCAPE {
			w.Close = true
		}
	}
}

func (w *Window) initSDLWindow(title string, width int32, height int32) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Panicf("Failed to initialize SDL: %v", err)
	}
	log.Println("Initialized SDL")
	win, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		width,
		height,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_VULKAN,
	)
	if err != nil {
		log.Panicf("Failed to create SDL window for use with Vulkan: %v", err)
	}
	log.Printf("Created SDL window for use with Vulkan. Title: \"%s\", Width: %d, Height: %d", title, width, height)
	w.Win = win
}

func (w *Window) initVulkan() {
	vk.SetGetInstanceProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err := vk.Init(); err != nil {
		log.Panicf("Failed to initialize Vulkan API: %v", err)
	}
}

func (w *Window) createVulkanInstance(validationLayers []string) {
	requiredExtensions := w.Win.VulkanGetInstanceExtensions()
	checkSupport("instance extensions", requiredExtensions, ReadInstanceExtensionPropertyNames())
	if len(validationLayers) > 0 {
		checkSupport("validation layers", validationLayers, ReadInstanceLayerPropertyNames())
	}

	applicationInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   TerminatedStr(APPLICATION_NAME),
		ApplicationVersion: vk.MakeVersion(APP_MAJOR, APP_MINOR, APP_PATCH),
		PEngineName:        TerminatedStr(ENGINE_NAME),
		EngineVersion:      vk.MakeVersion(ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH),
		ApiVersion:         vk.MakeVersion(VK_API_MAJOR, VK_API_MINOR, VK_API_PATCH),
	}
	createInfo := &vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        applicationInfo,
		EnabledExtensionCount:   uint32(len(requiredExtensions)),
		PpEnabledExtensionNames: TerminatedStrs(requiredExtensions),
		EnabledLayerCount:       uint32(len(validationLayers)),
		PpEnabledLayerNames:     TerminatedStrs(validationLayers),
	}
	ins, err := VkCreateInstance(createInfo)
	if err != nil {
		log.Panicf("Failed to create vk instance, due to: %v", err)
	}
	w.Inst = ins
}

func checkSupport(what string, required []string, supported []string) {
	log.Printf("Required %s: %v", what, required)
	log.Printf("Available %s (%d)", what, len(supported))
	if !IsSubset(required, supported) {
		log.Panicf("At least one of the required %s is not supported", what)
	}
	log.Printf("Success - All required %s are supported", what)
}

func (w *Window) createSdlVkSurface() {
	surf, err := SdlCreateVkSurface(w.Win, w.Inst)
	if err != nil {
		log.Panicf("Failed to create SDL window's Vulkan-surface, due to: %v", err)
	}
	w.Surf = surf
}
