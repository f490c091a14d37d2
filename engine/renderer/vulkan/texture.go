package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

/**
 * @brief Render API-specific data hung off a metadata.TextureMap. Holds
 * the uploaded image and the sampler built from the map configuration.
 */
type VulkanTextureData struct {
	Image   *VulkanImage
	Sampler vk.Sampler
}

// TextureCreate uploads RGBA pixel data into a new device-local sampled
// image. All maps go through the same path regardless of role, dummy
// placeholders included.
func TextureCreate(context *VulkanContext, texture *metadata.Texture, pixels []uint8) (*VulkanImage, error) {
	imageSize := uint64(texture.Width) * uint64(texture.Height) * uint64(texture.ChannelCount)
	if uint64(len(pixels)) < imageSize {
		err := fmt.Errorf("func TextureCreate - texture '%s' pixel data is %d bytes, expected %d", texture.Name, len(pixels), imageSize)
		core.LogError(err.Error())
		return nil, err
	}

	// NOTE: assumes 8 bits per channel.
	imageFormat := vk.FormatR8g8b8a8Unorm

	staging, err := BufferCreate(context, imageSize,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return nil, err
	}
	defer staging.Destroy(context)

	if err := staging.LoadData(context, 0, imageSize, pixels); err != nil {
		return nil, err
	}

	image, err := ImageCreate(context, vk.ImageType2d, texture.Width, texture.Height, imageFormat,
		vk.ImageTilingOptimal,
		vk.ImageUsageFlags(vk.ImageUsageTransferDstBit)|vk.ImageUsageFlags(vk.ImageUsageSampledBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
		true,
		vk.ImageAspectFlags(vk.ImageAspectColorBit))
	if err != nil {
		return nil, err
	}

	commandBuffer, err := AllocateAndBeginSingleUse(context, context.Device.GraphicsCommandPool)
	if err != nil {
		image.ImageDestroy(context)
		return nil, err
	}

	// Transition to a layout optimal for data transfer, copy, then
	// transition to the shader-readable layout.
	if err := image.ImageTransitionLayout(context, commandBuffer, imageFormat, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		image.ImageDestroy(context)
		return nil, err
	}
	image.ImageCopyFromBuffer(context, staging, commandBuffer)
	if err := image.ImageTransitionLayout(context, commandBuffer, imageFormat, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal); err != nil {
		image.ImageDestroy(context)
		return nil, err
	}

	if err := commandBuffer.EndSingleUse(context, context.Device.GraphicsCommandPool, context.Device.GraphicsQueue); err != nil {
		image.ImageDestroy(context)
		return nil, err
	}

	texture.Generation++
	return image, nil
}

// TextureMapAcquireResources uploads the map's texture and builds its
// sampler, storing both in the map's internal data.
func TextureMapAcquireResources(context *VulkanContext, tm *metadata.TextureMap, pixels []uint8) error {
	image, err := TextureCreate(context, tm.Texture, pixels)
	if err != nil {
		return err
	}

	samplerCreateInfo := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MinFilter:               convertFilterType(tm.FilterMinify),
		MagFilter:               convertFilterType(tm.FilterMagnify),
		AddressModeU:            convertRepeatType(tm.RepeatU),
		AddressModeV:            convertRepeatType(tm.RepeatV),
		AddressModeW:            convertRepeatType(tm.RepeatV),
		AnisotropyEnable:        vk.True,
		MaxAnisotropy:           16,
		BorderColor:             vk.BorderColorIntOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
		CompareEnable:           vk.False,
		CompareOp:               vk.CompareOpAlways,
		MipmapMode:              vk.SamplerMipmapModeLinear,
		MipLodBias:              0.0,
		MinLod:                  0.0,
		MaxLod:                  0.0,
	}

	var sampler vk.Sampler
	if res := vk.CreateSampler(context.Device.LogicalDevice, &samplerCreateInfo, context.Allocator, &sampler); res != vk.Success {
		image.ImageDestroy(context)
		err := fmt.Errorf("func TextureMapAcquireResources - failed to create sampler for texture '%s' with error '%s'", tm.Texture.Name, VulkanResultString(res, true))
		core.LogError(err.Error())
		return err
	}

	tm.InternalData = &VulkanTextureData{
		Image:   image,
		Sampler: sampler,
	}
	return nil
}

// TextureMapReleaseResources destroys the sampler and image of a map.
func TextureMapReleaseResources(context *VulkanContext, tm *metadata.TextureMap) {
	data, ok := tm.InternalData.(*VulkanTextureData)
	if !ok || data == nil {
		return
	}
	vk.DeviceWaitIdle(context.Device.LogicalDevice)
	if data.Sampler != nil {
		vk.DestroySampler(context.Device.LogicalDevice, data.Sampler, context.Allocator)
		data.Sampler = nil
	}
	if data.Image != nil {
		data.Image.ImageDestroy(context)
		data.Image = nil
	}
	tm.InternalData = nil
}

func convertFilterType(filter metadata.TextureFilter) vk.Filter {
	if filter == metadata.TextureFilterModeNearest {
		return vk.FilterNearest
	}
	return vk.FilterLinear
}

func convertRepeatType(repeat metadata.TextureRepeat) vk.SamplerAddressMode {
	switch repeat {
	case metadata.TextureRepeatMirroredRepeat:
		return vk.SamplerAddressModeMirroredRepeat
	case metadata.TextureRepeatClampToEdge:
		return vk.SamplerAddressModeClampToEdge
	case metadata.TextureRepeatClampToBorder:
		return vk.SamplerAddressModeClampToBorder
	default:
		return vk.SamplerAddressModeRepeat
	}
}
