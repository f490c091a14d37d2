package vulkan

import (
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/platform"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

const (
	// Shared device-local buffers for all mesh data.
	vertexBufferSize uint64 = 8 * 1024 * 1024
	indexBufferSize  uint64 = 2 * 1024 * 1024
	// One vec3 world offset, padded to 16 bytes.
	pushConstantSize uint64 = 16
)

/**
 * @brief Render API-specific data hung off a metadata.Material: the
 * descriptor set carrying its uniform blocks and texture bindings.
 */
type VulkanMaterialData struct {
	DescriptorSet vk.DescriptorSet
}

type VulkanRenderer struct {
	platform                *platform.Platform
	FrameNumber             uint64
	context                 *VulkanContext
	cachedFramebufferWidth  uint32
	cachedFramebufferHeight uint32

	assetRoot     string
	materialCount uint32
	debug         bool

	materialLayout vk.DescriptorSetLayout
	descriptorPool vk.DescriptorPool
	vertStage      *VulkanShaderStage
	fragStage      *VulkanShaderStage
	pipeline       *VulkanPipeline

	// One matrices block for the scene view, one for the skybox view,
	// and the single shared parameter block. All host visible so the
	// per-frame update is a plain memory copy.
	sceneMatricesBuffer  *VulkanBuffer
	skyboxMatricesBuffer *VulkanBuffer
	paramsBuffer         *VulkanBuffer

	vertexBuffer *VulkanBuffer
	indexBuffer  *VulkanBuffer
	vertexOffset uint64
	indexOffset  uint64
	geometries   []*VulkanGeometryData

	// Command buffers are recorded up front from the draw list and only
	// re-recorded when the list, a material or the framebuffer changes.
	lastPacket *metadata.RenderPacket
}

func New(p *platform.Platform, assetRoot string, materialCount uint32) *VulkanRenderer {
	return &VulkanRenderer{
		platform:      p,
		FrameNumber:   0,
		assetRoot:     assetRoot,
		materialCount: materialCount,
		context: &VulkanContext{
			FramebufferWidth:  0,
			FramebufferHeight: 0,
			Allocator:         nil,
		},
		debug: true,
	}
}

func (vr *VulkanRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		err := fmt.Errorf("func Initialize - GetInstanceProcAddress is nil")
		core.LogError(err.Error())
		return err
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		core.LogError("failed to initialize vk: %s", err)
		return err
	}

	vr.context.Allocator = nil
	vr.context.FramebufferWidth = appWidth
	vr.context.FramebufferHeight = appHeight

	// Setup Vulkan instance.
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("Aura Engine"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	// Obtain a list of required extensions
	requiredExtensions := []string{"VK_KHR_surface"}
	requiredExtensions = append(requiredExtensions, vr.platform.GetRequiredExtensionNames()...)

	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
	}

	if vr.debug {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugUtilsExtensionName, vk.ExtDebugReportExtensionName)
		core.LogInfo("Required extensions:")
		for i := 0; i < len(requiredExtensions); i++ {
			core.LogInfo(requiredExtensions[i])
		}
	}

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)

	// Validation layers. Only enabled on non-release builds.
	requiredValidationLayerNames := []string{}
	if vr.debug {
		core.LogInfo("Validation layers enabled. Enumerating...")
		requiredValidationLayerNames = []string{"VK_LAYER_KHRONOS_validation"}

		if runtime.GOOS == "darwin" {
			createInfo.Flags |= 1
		}

		var availableLayerCount uint32
		if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, nil); res != vk.Success {
			err := fmt.Errorf("func Initialize - failed to enumerate instance layer properties")
			core.LogError(err.Error())
			return err
		}
		availableLayers := make([]vk.LayerProperties, availableLayerCount)
		if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, availableLayers); res != vk.Success {
			err := fmt.Errorf("func Initialize - failed to enumerate instance layer properties")
			core.LogError(err.Error())
			return err
		}

		// Verify all required layers are available.
		for i := range requiredValidationLayerNames {
			found := false
			for j := range availableLayers {
				availableLayers[j].Deref()
				end := FindFirstZeroInByteArray(availableLayers[j].LayerName[:])
				if requiredValidationLayerNames[i] == vk.ToString(availableLayers[j].LayerName[:end+1]) {
					found = true
					break
				}
			}
			if !found {
				err := fmt.Errorf("func Initialize - required validation layer is missing: %s", requiredValidationLayerNames[i])
				core.LogError(err.Error())
				return err
			}
		}
		core.LogInfo("All required validation layers are present.")
	}

	createInfo.EnabledLayerCount = uint32(len(requiredValidationLayerNames))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(requiredValidationLayerNames)

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		err := fmt.Errorf("func Initialize - failed creating the Vulkan instance with error '%s'", VulkanResultString(res, true))
		core.LogError(err.Error())
		return err
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		core.LogError(err.Error())
		return err
	}
	core.LogInfo("Vulkan instance created.")

	// Debugger
	if vr.debug {
		core.LogDebug("Creating Vulkan debugger...")
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
			PfnCallback: dbgCallbackFunc,
			PNext:       nil,
		}

		var dbg vk.DebugReportCallback
		if err := vk.Error(vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, nil, &dbg)); err != nil {
			core.LogError("vk.CreateDebugReportCallback failed with %s", err)
			return err
		}
		vr.context.debugMessenger = dbg
		core.LogDebug("Vulkan debugger created.")
	}

	// Surface
	core.LogDebug("Creating Vulkan surface...")
	surface, err := vr.platform.Window.CreateWindowSurface(vr.context.Instance, nil)
	if err != nil {
		core.LogError("Vulkan surface creation failed.")
		return err
	}
	vr.context.Surface = vk.SurfaceFromPointer(surface)
	core.LogDebug("Vulkan surface created.")

	// Device creation
	if err := DeviceCreate(vr.context); err != nil {
		core.LogError("Failed to create device!")
		return err
	}

	// Swapchain
	sc, err := SwapchainCreate(vr.context, vr.context.FramebufferWidth, vr.context.FramebufferHeight)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc

	rp, err := RenderpassCreate(
		vr.context,
		0, 0, float32(vr.context.FramebufferWidth), float32(vr.context.FramebufferHeight),
		0.0, 0.0, 0.2, 1.0,
		1.0,
		0)
	if err != nil {
		return err
	}
	vr.context.MainRenderpass = rp

	// Swapchain framebuffers.
	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(vr.context.Swapchain, vr.context.MainRenderpass); err != nil {
		return err
	}

	if err := vr.createCommandBuffers(); err != nil {
		return err
	}

	// Sync objects.
	vr.context.ImageAvailableSemaphores = make([]vk.Semaphore, vr.context.Swapchain.MaxFramesInFlight)
	vr.context.QueueCompleteSemaphores = make([]vk.Semaphore, vr.context.Swapchain.MaxFramesInFlight)
	vr.context.InFlightFences = make([]*VulkanFence, vr.context.Swapchain.MaxFramesInFlight)

	for i := 0; i < int(vr.context.Swapchain.MaxFramesInFlight); i++ {
		semaphoreCreateInfo := vk.SemaphoreCreateInfo{
			SType: vk.StructureTypeSemaphoreCreateInfo,
		}

		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.ImageAvailableSemaphores[i]); res != vk.Success {
			err := fmt.Errorf("func Initialize - failed to create semaphore on image available")
			core.LogError(err.Error())
			return err
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.QueueCompleteSemaphores[i]); res != vk.Success {
			err := fmt.Errorf("func Initialize - failed to create semaphore on queue complete")
			core.LogError(err.Error())
			return err
		}

		// Created in a signaled state so the first frame does not wait on
		// a fence that was never submitted.
		f, err := NewFence(vr.context, true)
		if err != nil {
			return err
		}
		vr.context.InFlightFences[i] = f
	}

	vr.context.ImagesInFlight = make([]*VulkanFence, vr.context.Swapchain.ImageCount)

	// Descriptor layout and pool, sized exactly for the configured
	// material roster.
	layout, err := MaterialDescriptorLayoutCreate(vr.context)
	if err != nil {
		return err
	}
	vr.materialLayout = layout

	pool, err := DescriptorPoolCreate(vr.context, vr.materialCount)
	if err != nil {
		return err
	}
	vr.descriptorPool = pool

	// Uniform blocks.
	if vr.sceneMatricesBuffer, err = vr.createUniformBuffer(metadata.UBOMatricesSize); err != nil {
		return err
	}
	if vr.skyboxMatricesBuffer, err = vr.createUniformBuffer(metadata.UBOMatricesSize); err != nil {
		return err
	}
	if vr.paramsBuffer, err = vr.createUniformBuffer(metadata.UBOParamsSize); err != nil {
		return err
	}

	// Shared geometry buffers.
	if vr.vertexBuffer, err = BufferCreate(vr.context, vertexBufferSize,
		vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit)|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)); err != nil {
		return err
	}
	if vr.indexBuffer, err = BufferCreate(vr.context, indexBufferSize,
		vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit)|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)); err != nil {
		return err
	}
	vr.geometries = make([]*VulkanGeometryData, 0, VULKAN_MAX_GEOMETRY_COUNT)

	if err := vr.createPipeline(); err != nil {
		return err
	}

	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *VulkanRenderer) createUniformBuffer(size uint64) (*VulkanBuffer, error) {
	return BufferCreate(vr.context, size,
		vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))
}

// createPipeline builds the one graphics pipeline everything draws with:
// interleaved position/normal/uv vertices, front-face culling, depth
// testing and a single vec3 push constant for the per-draw world offset.
func (vr *VulkanRenderer) createPipeline() error {
	vert, err := NewShaderStage(vr.context, filepath.Join(vr.assetRoot, "shaders", "pbr.vert.spv"), vk.ShaderStageVertexBit)
	if err != nil {
		return err
	}
	vr.vertStage = vert

	frag, err := NewShaderStage(vr.context, filepath.Join(vr.assetRoot, "shaders", "pbr.frag.spv"), vk.ShaderStageFragmentBit)
	if err != nil {
		return err
	}
	vr.fragStage = frag

	attributes := []vk.VertexInputAttributeDescription{
		{Location: 0, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: 0},
		{Location: 1, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: metadata.Vertex3DNormalOffset},
		{Location: 2, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: metadata.Vertex3DTexCoordOffset},
	}

	pipelineConfig := &VulkanPipelineConfig{
		Renderpass:           vr.context.MainRenderpass,
		Stride:               metadata.Vertex3DSize,
		Attributes:           attributes,
		DescriptorSetLayouts: []vk.DescriptorSetLayout{vr.materialLayout},
		Stages: []vk.PipelineShaderStageCreateInfo{
			vr.vertStage.ShaderStageCreateInfo,
			vr.fragStage.ShaderStageCreateInfo,
		},
		Viewport: vk.Viewport{
			X: 0, Y: 0,
			Width:    float32(vr.context.FramebufferWidth),
			Height:   float32(vr.context.FramebufferHeight),
			MinDepth: 0.0, MaxDepth: 1.0,
		},
		Scissor: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: vk.Extent2D{Width: vr.context.FramebufferWidth, Height: vr.context.FramebufferHeight},
		},
		CullMode:  metadata.FaceCullModeFront,
		DepthTest: true,
		PushConstantRanges: []metadata.MemoryRange{
			{Offset: 0, Size: pushConstantSize},
		},
	}

	pipeline, err := NewGraphicsPipeline(vr.context, pipelineConfig)
	if err != nil {
		return err
	}
	vr.pipeline = pipeline
	return nil
}

func (vr *VulkanRenderer) Shutdown() error {
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	// Destroy in the opposite order of creation.
	if vr.pipeline != nil {
		vr.pipeline.Destroy(vr.context)
		vr.pipeline = nil
	}
	if vr.vertStage != nil {
		vr.vertStage.Destroy(vr.context)
		vr.vertStage = nil
	}
	if vr.fragStage != nil {
		vr.fragStage.Destroy(vr.context)
		vr.fragStage = nil
	}

	if vr.vertexBuffer != nil {
		vr.vertexBuffer.Destroy(vr.context)
		vr.vertexBuffer = nil
	}
	if vr.indexBuffer != nil {
		vr.indexBuffer.Destroy(vr.context)
		vr.indexBuffer = nil
	}
	if vr.sceneMatricesBuffer != nil {
		vr.sceneMatricesBuffer.Destroy(vr.context)
		vr.sceneMatricesBuffer = nil
	}
	if vr.skyboxMatricesBuffer != nil {
		vr.skyboxMatricesBuffer.Destroy(vr.context)
		vr.skyboxMatricesBuffer = nil
	}
	if vr.paramsBuffer != nil {
		vr.paramsBuffer.Destroy(vr.context)
		vr.paramsBuffer = nil
	}

	if vr.descriptorPool != nil {
		vk.DestroyDescriptorPool(vr.context.Device.LogicalDevice, vr.descriptorPool, vr.context.Allocator)
		vr.descriptorPool = nil
	}
	if vr.materialLayout != nil {
		vk.DestroyDescriptorSetLayout(vr.context.Device.LogicalDevice, vr.materialLayout, vr.context.Allocator)
		vr.materialLayout = nil
	}

	// Sync objects
	for i := 0; i < int(vr.context.Swapchain.MaxFramesInFlight); i++ {
		if vr.context.ImageAvailableSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.context.ImageAvailableSemaphores[i], vr.context.Allocator)
			vr.context.ImageAvailableSemaphores[i] = vk.NullSemaphore
		}
		if vr.context.QueueCompleteSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.context.QueueCompleteSemaphores[i], vr.context.Allocator)
			vr.context.QueueCompleteSemaphores[i] = vk.NullSemaphore
		}
		vr.context.InFlightFences[i].FenceDestroy(vr.context)
	}
	vr.context.ImageAvailableSemaphores = nil
	vr.context.QueueCompleteSemaphores = nil
	vr.context.InFlightFences = nil
	vr.context.ImagesInFlight = nil

	// Command buffers
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		if vr.context.GraphicsCommandBuffers[i].Handle != nil {
			vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
	}
	vr.context.GraphicsCommandBuffers = nil

	// Framebuffers
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		vr.context.Swapchain.Framebuffers[i].Destroy(vr.context)
	}

	vr.context.MainRenderpass.RenderpassDestroy(vr.context)
	vr.context.Swapchain.SwapchainDestroy(vr.context)

	core.LogDebug("Destroying Vulkan device...")
	DeviceDestroy(vr.context)

	core.LogDebug("Destroying Vulkan surface...")
	if vr.context.Surface != vk.NullSurface {
		vk.DestroySurface(vr.context.Instance, vr.context.Surface, vr.context.Allocator)
		vr.context.Surface = vk.NullSurface
	}

	if vr.debug {
		core.LogDebug("Destroying Vulkan debugger...")
		if vr.context.debugMessenger != vk.NullDebugReportCallback {
			vk.DestroyDebugReportCallback(vr.context.Instance, vr.context.debugMessenger, vr.context.Allocator)
		}
	}

	core.LogDebug("Destroying Vulkan instance...")
	vk.DestroyInstance(vr.context.Instance, vr.context.Allocator)

	return nil
}

func (vr *VulkanRenderer) Resized(width, height uint16) error {
	// Bump the framebuffer size generation. The next DrawFrame sees the
	// mismatch and recreates the swapchain before drawing.
	vr.cachedFramebufferWidth = uint32(width)
	vr.cachedFramebufferHeight = uint32(height)
	vr.context.FramebufferSizeGeneration++

	core.LogInfo("Vulkan renderer backend->resized: w/h/gen: %d/%d/%d", width, height, vr.context.FramebufferSizeGeneration)
	return nil
}

// CreateGeometry uploads the vertex and index data of a mesh into the
// shared buffers and records its placement.
func (vr *VulkanRenderer) CreateGeometry(config *metadata.GeometryConfig, geometry *metadata.Geometry) error {
	if len(config.Vertices) == 0 || len(config.Indices) == 0 {
		err := fmt.Errorf("func CreateGeometry - geometry '%s' has no vertex or index data", config.Name)
		core.LogError(err.Error())
		return err
	}
	if uint32(len(vr.geometries)) >= VULKAN_MAX_GEOMETRY_COUNT {
		err := fmt.Errorf("func CreateGeometry - geometry budget exhausted: %w", core.ErrResourceExhaustion)
		core.LogError(err.Error())
		return err
	}

	vertexBytes := unsafe.Slice((*byte)(unsafe.Pointer(&config.Vertices[0])), len(config.Vertices)*int(metadata.Vertex3DSize))
	indexBytes := unsafe.Slice((*byte)(unsafe.Pointer(&config.Indices[0])), len(config.Indices)*4)

	if vr.vertexOffset+uint64(len(vertexBytes)) > vertexBufferSize || vr.indexOffset+uint64(len(indexBytes)) > indexBufferSize {
		err := fmt.Errorf("func CreateGeometry - shared geometry buffers exhausted: %w", core.ErrResourceExhaustion)
		core.LogError(err.Error())
		return err
	}

	data := &VulkanGeometryData{
		ID:                 geometry.ID,
		VertexCount:        uint32(len(config.Vertices)),
		VertexBufferOffset: vr.vertexOffset,
		IndexCount:         uint32(len(config.Indices)),
		IndexBufferOffset:  vr.indexOffset,
	}

	if err := uploadDataRange(vr.context, vr.vertexBuffer, data.VertexBufferOffset, vertexBytes); err != nil {
		return err
	}
	if err := uploadDataRange(vr.context, vr.indexBuffer, data.IndexBufferOffset, indexBytes); err != nil {
		return err
	}

	vr.vertexOffset += uint64(len(vertexBytes))
	vr.indexOffset += uint64(len(indexBytes))

	geometry.InternalID = uint32(len(vr.geometries))
	geometry.VertexCount = data.VertexCount
	geometry.IndexCount = data.IndexCount
	geometry.Generation++
	data.Generation = uint32(geometry.Generation)
	vr.geometries = append(vr.geometries, data)

	return nil
}

// AcquireTextureMap uploads pixel data for a texture map and builds its
// sampler.
func (vr *VulkanRenderer) AcquireTextureMap(tm *metadata.TextureMap, pixels []uint8) error {
	return TextureMapAcquireResources(vr.context, tm, pixels)
}

func (vr *VulkanRenderer) ReleaseTextureMap(tm *metadata.TextureMap) {
	TextureMapReleaseResources(vr.context, tm)
}

// CreateMaterial allocates and fills the descriptor set of a material
// whose texture maps have all been acquired. Skybox materials read the
// skybox view matrices instead of the scene ones; everything else about
// the set is identical.
func (vr *VulkanRenderer) CreateMaterial(material *metadata.Material, skybox bool) error {
	set, err := MaterialDescriptorSetAllocate(vr.context, vr.descriptorPool, vr.materialLayout)
	if err != nil {
		return err
	}

	matrices := vr.sceneMatricesBuffer
	if skybox {
		matrices = vr.skyboxMatricesBuffer
	}
	if err := MaterialDescriptorSetUpdate(vr.context, set, matrices, vr.paramsBuffer, &material.Maps); err != nil {
		return err
	}

	material.InternalData = &VulkanMaterialData{DescriptorSet: set}
	material.Generation++
	return nil
}

// UpdateMatrices writes both view matrix blocks for the next frame.
func (vr *VulkanRenderer) UpdateMatrices(scene, skybox *metadata.UBOMatrices) error {
	if err := vr.sceneMatricesBuffer.LoadData(vr.context, 0, metadata.UBOMatricesSize, StructBytes(scene)); err != nil {
		return err
	}
	return vr.skyboxMatricesBuffer.LoadData(vr.context, 0, metadata.UBOMatricesSize, StructBytes(skybox))
}

// UpdateParams writes the shared lighting parameter block.
func (vr *VulkanRenderer) UpdateParams(params *metadata.UBOParams) error {
	return vr.paramsBuffer.LoadData(vr.context, 0, metadata.UBOParamsSize, StructBytes(params))
}

// RecordCommandBuffers re-records every swapchain command buffer from the
// given draw list. Called when the draw list changes, not per frame.
// Waits for the device to go idle first, so toggling scene content stalls
// the frame loop for one round trip.
func (vr *VulkanRenderer) RecordCommandBuffers(packet *metadata.RenderPacket) error {
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)
	vr.lastPacket = packet

	viewport := vk.Viewport{
		X: 0, Y: 0,
		Width:    float32(vr.context.FramebufferWidth),
		Height:   float32(vr.context.FramebufferHeight),
		MinDepth: 0.0, MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{Width: vr.context.FramebufferWidth, Height: vr.context.FramebufferHeight},
	}

	vr.context.MainRenderpass.X = 0
	vr.context.MainRenderpass.Y = 0
	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)

	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		commandBuffer := vr.context.GraphicsCommandBuffers[i]
		commandBuffer.Reset()
		if err := commandBuffer.Begin(false, false, false); err != nil {
			return err
		}

		vk.CmdSetViewport(commandBuffer.Handle, 0, 1, []vk.Viewport{viewport})
		vk.CmdSetScissor(commandBuffer.Handle, 0, 1, []vk.Rect2D{scissor})

		vr.context.MainRenderpass.RenderpassBegin(commandBuffer, vr.context.Swapchain.Framebuffers[i].Handle)

		vr.pipeline.Bind(commandBuffer, vk.PipelineBindPointGraphics)

		for _, item := range packet.Items {
			if err := vr.recordDrawItem(commandBuffer, &item); err != nil {
				return err
			}
		}

		vr.context.MainRenderpass.RenderpassEnd(commandBuffer)
		if err := commandBuffer.End(); err != nil {
			return err
		}
	}

	return nil
}

func (vr *VulkanRenderer) recordDrawItem(commandBuffer *VulkanCommandBuffer, item *metadata.DrawItem) error {
	if item.Material == nil || item.Material.InternalData == nil {
		err := fmt.Errorf("func recordDrawItem - draw item has no built material")
		core.LogError(err.Error())
		return err
	}
	materialData, ok := item.Material.InternalData.(*VulkanMaterialData)
	if !ok {
		err := fmt.Errorf("func recordDrawItem - material '%s' carries no descriptor set", item.Material.Name)
		core.LogError(err.Error())
		return err
	}
	if item.MeshIndex >= uint32(len(vr.geometries)) {
		err := fmt.Errorf("func recordDrawItem - mesh index %d out of range", item.MeshIndex)
		core.LogError(err.Error())
		return err
	}

	vk.CmdBindDescriptorSets(commandBuffer.Handle, vk.PipelineBindPointGraphics,
		vr.pipeline.PipelineLayout, 0, 1, []vk.DescriptorSet{materialData.DescriptorSet}, 0, nil)

	offset := [4]float32{item.WorldOffset.X(), item.WorldOffset.Y(), item.WorldOffset.Z(), 0}
	vk.CmdPushConstants(commandBuffer.Handle, vr.pipeline.PipelineLayout,
		vk.ShaderStageFlags(vk.ShaderStageVertexBit), 0, uint32(pushConstantSize), unsafe.Pointer(&offset[0]))

	vr.geometries[item.MeshIndex].Draw(commandBuffer, vr.vertexBuffer, vr.indexBuffer)
	return nil
}

// DrawFrame submits the pre-recorded command buffer for the next
// swapchain image and presents it.
func (vr *VulkanRenderer) DrawFrame(deltaTime float64) error {
	device := vr.context.Device

	// Boot out while a swapchain recreation is in flight.
	if vr.context.RecreatingSwapchain {
		result := vk.DeviceWaitIdle(device.LogicalDevice)
		if !VulkanResultIsSuccess(result) {
			err := fmt.Errorf("func DrawFrame - vkDeviceWaitIdle failed: '%s'", VulkanResultString(result, true))
			core.LogError(err.Error())
			return err
		}
		return core.ErrSwapchainBooting
	}

	// A resize invalidates the swapchain and the recorded buffers.
	if vr.context.FramebufferSizeGeneration != vr.context.FramebufferSizeLastGeneration {
		result := vk.DeviceWaitIdle(device.LogicalDevice)
		if !VulkanResultIsSuccess(result) {
			err := fmt.Errorf("func DrawFrame - vkDeviceWaitIdle failed: '%s'", VulkanResultString(result, true))
			core.LogError(err.Error())
			return err
		}
		if !vr.recreateSwapchain() {
			return core.ErrSwapchainBooting
		}
		if vr.lastPacket != nil {
			if err := vr.RecordCommandBuffers(vr.lastPacket); err != nil {
				return err
			}
		}
		core.LogInfo("Resized, booting.")
		return core.ErrSwapchainBooting
	}

	if !vr.context.InFlightFences[vr.context.CurrentFrame].FenceWait(vr.context, math.MaxUint64) {
		err := fmt.Errorf("func DrawFrame - in-flight fence wait failure")
		core.LogWarn(err.Error())
		return err
	}

	imageIndex, ok := vr.context.Swapchain.SwapchainAcquireNextImageIndex(vr.context, math.MaxUint64, vr.context.ImageAvailableSemaphores[vr.context.CurrentFrame], vk.NullFence)
	if !ok {
		return core.ErrSwapchainBooting
	}
	vr.context.ImageIndex = imageIndex

	// Make sure the previous frame is not still using this image.
	if vr.context.ImagesInFlight[vr.context.ImageIndex] != nil {
		vr.context.ImagesInFlight[vr.context.ImageIndex].FenceWait(vr.context, math.MaxUint64)
	}
	vr.context.ImagesInFlight[vr.context.ImageIndex] = vr.context.InFlightFences[vr.context.CurrentFrame]

	if err := vr.context.InFlightFences[vr.context.CurrentFrame].FenceReset(vr.context); err != nil {
		return err
	}

	commandBuffer := vr.context.GraphicsCommandBuffers[vr.context.ImageIndex]

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{commandBuffer.Handle},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{vr.context.QueueCompleteSemaphores[vr.context.CurrentFrame]},
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{vr.context.ImageAvailableSemaphores[vr.context.CurrentFrame]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
	}

	if result := vk.QueueSubmit(vr.context.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, vr.context.InFlightFences[vr.context.CurrentFrame].Handle); result != vk.Success {
		err := fmt.Errorf("func DrawFrame - vkQueueSubmit failed with result: %s", VulkanResultString(result, true))
		core.LogError(err.Error())
		return err
	}
	commandBuffer.UpdateSubmitted()

	vr.context.Swapchain.SwapchainPresent(
		vr.context,
		vr.context.Device.GraphicsQueue,
		vr.context.Device.PresentQueue,
		vr.context.QueueCompleteSemaphores[vr.context.CurrentFrame],
		vr.context.ImageIndex)

	vr.FrameNumber++
	return nil
}

func (vr *VulkanRenderer) createCommandBuffers() error {
	if len(vr.context.GraphicsCommandBuffers) == 0 {
		vr.context.GraphicsCommandBuffers = make([]*VulkanCommandBuffer, vr.context.Swapchain.ImageCount)
	}
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		if vr.context.GraphicsCommandBuffers[i] != nil && vr.context.GraphicsCommandBuffers[i].Handle != nil {
			vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
		cb, err := NewVulkanCommandBuffer(vr.context, vr.context.Device.GraphicsCommandPool, true)
		if err != nil {
			return err
		}
		vr.context.GraphicsCommandBuffers[i] = cb
	}

	core.LogDebug("Vulkan command buffers created.")
	return nil
}

func (vr *VulkanRenderer) regenerateFramebuffers(swapchain *VulkanSwapchain, renderpass *VulkanRenderpass) error {
	for i := 0; i < int(swapchain.ImageCount); i++ {
		attachments := []vk.ImageView{
			swapchain.Views[i],
			swapchain.DepthAttachment.View,
		}
		fb, err := FramebufferCreate(vr.context, renderpass, vr.context.FramebufferWidth, vr.context.FramebufferHeight, attachments)
		if err != nil {
			return err
		}
		swapchain.Framebuffers[i] = fb
	}
	return nil
}

func (vr *VulkanRenderer) recreateSwapchain() bool {
	if vr.context.RecreatingSwapchain {
		core.LogDebug("recreateSwapchain called when already recreating. Booting.")
		return false
	}

	// Detect if the window is too small to be drawn to.
	if vr.cachedFramebufferWidth == 0 || vr.cachedFramebufferHeight == 0 {
		core.LogDebug("recreateSwapchain called when window is < 1 in a dimension. Booting.")
		return false
	}

	vr.context.RecreatingSwapchain = true
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		vr.context.ImagesInFlight[i] = nil
	}

	// Requery support
	DeviceQuerySwapchainSupport(vr.context.Device.PhysicalDevice, vr.context.Surface, vr.context.Device.SwapchainSupport)
	DeviceDetectDepthFormat(vr.context.Device)

	// Old framebuffers reference the old swapchain views.
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		vr.context.Swapchain.Framebuffers[i].Destroy(vr.context)
	}

	sc, err := vr.context.Swapchain.SwapchainRecreate(vr.context, vr.cachedFramebufferWidth, vr.cachedFramebufferHeight)
	if err != nil {
		vr.context.RecreatingSwapchain = false
		return false
	}
	vr.context.Swapchain = sc

	vr.context.FramebufferWidth = vr.cachedFramebufferWidth
	vr.context.FramebufferHeight = vr.cachedFramebufferHeight
	vr.cachedFramebufferWidth = 0
	vr.cachedFramebufferHeight = 0
	vr.context.FramebufferSizeLastGeneration = vr.context.FramebufferSizeGeneration

	vr.context.MainRenderpass.X = 0
	vr.context.MainRenderpass.Y = 0
	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(vr.context.Swapchain, vr.context.MainRenderpass); err != nil {
		vr.context.RecreatingSwapchain = false
		return false
	}

	if err := vr.createCommandBuffers(); err != nil {
		vr.context.RecreatingSwapchain = false
		return false
	}

	vr.context.RecreatingSwapchain = false
	return true
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("ERROR: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogInfo("INFORMATION: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
