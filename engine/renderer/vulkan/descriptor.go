package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

/**
 * @brief Creates the single descriptor set layout shared by every material.
 *
 * Binding 0 holds the matrices uniform block, binding 1 the shading
 * parameter block. Bindings 2..6 are the combined image samplers of the
 * texture set, in the fixed role order albedo, normal, roughness,
 * metallic, ambient occlusion.
 */
func MaterialDescriptorLayoutCreate(context *VulkanContext) (vk.DescriptorSetLayout, error) {
	bindings := make([]vk.DescriptorSetLayoutBinding, 0, metadata.BindingCount)

	bindings = append(bindings,
		vk.DescriptorSetLayoutBinding{
			Binding:         metadata.BindingSlotMatrices,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit) | vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
		},
		vk.DescriptorSetLayoutBinding{
			Binding:         metadata.BindingSlotParams,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
		},
	)

	for _, role := range metadata.AllTextureRoles() {
		bindings = append(bindings, vk.DescriptorSetLayoutBinding{
			Binding:         role.BindingSlot(),
			DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
		})
	}

	layoutCreateInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}

	var layout vk.DescriptorSetLayout
	if res := vk.CreateDescriptorSetLayout(context.Device.LogicalDevice, &layoutCreateInfo, context.Allocator, &layout); res != vk.Success {
		err := fmt.Errorf("func MaterialDescriptorLayoutCreate - failed to create descriptor set layout with error '%s'", VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}
	return layout, nil
}

// DescriptorPoolCreate creates a descriptor pool sized exactly for the
// given number of material sets. Each set consumes two uniform buffer
// descriptors and one sampler descriptor per texture role, so the pool
// has no slack and an over-allocation fails loudly instead of silently
// growing.
func DescriptorPoolCreate(context *VulkanContext, materialCount uint32) (vk.DescriptorPool, error) {
	if materialCount == 0 {
		err := fmt.Errorf("func DescriptorPoolCreate - material count must be greater than zero")
		core.LogError(err.Error())
		return nil, err
	}

	poolSizes := []vk.DescriptorPoolSize{
		{
			Type:            vk.DescriptorTypeUniformBuffer,
			DescriptorCount: metadata.UniformBindingCount * materialCount,
		},
		{
			Type:            vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: metadata.SamplerBindingCount * materialCount,
		},
	}

	poolCreateInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    poolSizes,
		MaxSets:       materialCount,
	}

	var pool vk.DescriptorPool
	if res := vk.CreateDescriptorPool(context.Device.LogicalDevice, &poolCreateInfo, context.Allocator, &pool); res != vk.Success {
		err := fmt.Errorf("func DescriptorPoolCreate - failed to create descriptor pool with error '%s'", VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}
	return pool, nil
}

// MaterialDescriptorSetAllocate allocates one descriptor set from the
// material pool. Pool exhaustion is surfaced as ErrResourceExhaustion so
// callers can tell a sizing bug apart from a driver failure.
func MaterialDescriptorSetAllocate(context *VulkanContext, pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, error) {
	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout},
	}

	sets := make([]vk.DescriptorSet, 1)
	res := vk.AllocateDescriptorSets(context.Device.LogicalDevice, &allocateInfo, &sets[0])
	switch res {
	case vk.Success:
		return sets[0], nil
	case vk.ErrorOutOfPoolMemory, vk.ErrorFragmentedPool:
		err := fmt.Errorf("func MaterialDescriptorSetAllocate - descriptor pool exhausted: %w", core.ErrResourceExhaustion)
		core.LogError(err.Error())
		return nil, err
	default:
		err := fmt.Errorf("func MaterialDescriptorSetAllocate - failed to allocate descriptor set with error '%s'", VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}
}

// MaterialDescriptorSetUpdate writes the two uniform blocks and all five
// texture maps of a material into its descriptor set. The maps array is
// indexed by texture role and every entry must carry uploaded Vulkan
// texture data.
func MaterialDescriptorSetUpdate(context *VulkanContext, set vk.DescriptorSet, matrices, params *VulkanBuffer, maps *[metadata.TextureRoleCount]*metadata.TextureMap) error {
	matricesInfo := vk.DescriptorBufferInfo{
		Buffer: matrices.Handle,
		Offset: 0,
		Range:  vk.DeviceSize(matrices.TotalSize),
	}
	paramsInfo := vk.DescriptorBufferInfo{
		Buffer: params.Handle,
		Offset: 0,
		Range:  vk.DeviceSize(params.TotalSize),
	}

	writes := make([]vk.WriteDescriptorSet, 0, metadata.BindingCount)
	writes = append(writes,
		vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      metadata.BindingSlotMatrices,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			DescriptorCount: 1,
			PBufferInfo:     []vk.DescriptorBufferInfo{matricesInfo},
		},
		vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      metadata.BindingSlotParams,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			DescriptorCount: 1,
			PBufferInfo:     []vk.DescriptorBufferInfo{paramsInfo},
		},
	)

	for _, role := range metadata.AllTextureRoles() {
		tm := maps[role]
		if tm == nil || tm.InternalData == nil {
			err := fmt.Errorf("func MaterialDescriptorSetUpdate - missing %s texture map", role.String())
			core.LogError(err.Error())
			return err
		}
		data, ok := tm.InternalData.(*VulkanTextureData)
		if !ok || data.Sampler == nil {
			err := fmt.Errorf("func MaterialDescriptorSetUpdate - %s texture map has no uploaded texture data", role.String())
			core.LogError(err.Error())
			return err
		}

		imageInfo := vk.DescriptorImageInfo{
			Sampler:     data.Sampler,
			ImageView:   data.Image.View,
			ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
		}
		writes = append(writes, vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      role.BindingSlot(),
			DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: 1,
			PImageInfo:      []vk.DescriptorImageInfo{imageInfo},
		})
	}

	vk.UpdateDescriptorSets(context.Device.LogicalDevice, uint32(len(writes)), writes, 0, nil)
	return nil
}
