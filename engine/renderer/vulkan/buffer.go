package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/aura/engine/core"
)

/**
 * @brief A raw Vulkan buffer and its backing memory. Used for vertex
 * and index data, staging uploads and the shared uniform blocks.
 */
type VulkanBuffer struct {
	/** @brief The internal buffer Handle. */
	Handle vk.Buffer
	/** @brief The backing device Memory. */
	Memory vk.DeviceMemory
	/** @brief The total size of the buffer in bytes. */
	TotalSize uint64
	/** @brief The buffer usage flags it was created with. */
	Usage vk.BufferUsageFlags
	/** @brief The memory property flags it was created with. */
	MemoryPropertyFlags vk.MemoryPropertyFlags
}

func BufferCreate(context *VulkanContext, size uint64, usage vk.BufferUsageFlags, memoryPropertyFlags vk.MemoryPropertyFlags) (*VulkanBuffer, error) {
	outBuffer := &VulkanBuffer{
		TotalSize:           size,
		Usage:               usage,
		MemoryPropertyFlags: memoryPropertyFlags,
	}

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive, // NOTE: Only used in one queue.
	}

	var handle vk.Buffer
	if res := vk.CreateBuffer(context.Device.LogicalDevice, &bufferCreateInfo, context.Allocator, &handle); res != vk.Success {
		err := fmt.Errorf("func BufferCreate - failed to create buffer with error '%s'", VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}
	outBuffer.Handle = handle

	// Gather memory requirements.
	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(context.Device.LogicalDevice, outBuffer.Handle, &requirements)
	requirements.Deref()

	memoryIndex := context.FindMemoryIndex(requirements.MemoryTypeBits, uint32(memoryPropertyFlags))
	if memoryIndex == -1 {
		err := fmt.Errorf("func BufferCreate - required memory type not found, buffer not valid")
		core.LogError(err.Error())
		return nil, err
	}

	// Allocate memory
	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}
	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(context.Device.LogicalDevice, &allocateInfo, context.Allocator, &memory); res != vk.Success {
		err := fmt.Errorf("func BufferCreate - failed to allocate buffer memory")
		core.LogError(err.Error())
		return nil, err
	}
	outBuffer.Memory = memory

	if res := vk.BindBufferMemory(context.Device.LogicalDevice, outBuffer.Handle, outBuffer.Memory, 0); res != vk.Success {
		err := fmt.Errorf("func BufferCreate - failed to bind buffer memory")
		core.LogError(err.Error())
		return nil, err
	}

	return outBuffer, nil
}

func (vb *VulkanBuffer) Destroy(context *VulkanContext) {
	if vb.Memory != nil {
		vk.FreeMemory(context.Device.LogicalDevice, vb.Memory, context.Allocator)
		vb.Memory = nil
	}
	if vb.Handle != nil {
		vk.DestroyBuffer(context.Device.LogicalDevice, vb.Handle, context.Allocator)
		vb.Handle = nil
	}
	vb.TotalSize = 0
}

// LoadData maps the buffer memory, copies the given bytes at offset and
// unmaps again. Only valid on host-visible buffers.
func (vb *VulkanBuffer) LoadData(context *VulkanContext, offset, size uint64, data []byte) error {
	var pData unsafe.Pointer
	if res := vk.MapMemory(context.Device.LogicalDevice, vb.Memory, vk.DeviceSize(offset), vk.DeviceSize(size), 0, &pData); res != vk.Success {
		err := fmt.Errorf("func LoadData - failed to map buffer memory with error '%s'", VulkanResultString(res, true))
		core.LogError(err.Error())
		return err
	}
	dst := unsafe.Slice((*byte)(pData), size)
	copy(dst, data[:size])
	vk.UnmapMemory(context.Device.LogicalDevice, vb.Memory)
	return nil
}

// CopyTo copies a region of this buffer into dest using a single-use
// command buffer on the graphics queue.
func (vb *VulkanBuffer) CopyTo(context *VulkanContext, sourceOffset uint64, dest *VulkanBuffer, destOffset, size uint64) error {
	if res := vk.QueueWaitIdle(context.Device.GraphicsQueue); res != vk.Success {
		err := fmt.Errorf("func CopyTo - queue failed to wait in idle mode")
		core.LogError(err.Error())
		return err
	}

	// Create a one-time-use command buffer.
	commandBuffer, err := AllocateAndBeginSingleUse(context, context.Device.GraphicsCommandPool)
	if err != nil {
		return err
	}

	copyRegion := vk.BufferCopy{
		SrcOffset: vk.DeviceSize(sourceOffset),
		DstOffset: vk.DeviceSize(destOffset),
		Size:      vk.DeviceSize(size),
	}
	vk.CmdCopyBuffer(commandBuffer.Handle, vb.Handle, dest.Handle, 1, []vk.BufferCopy{copyRegion})

	// Submit the buffer for execution and wait for it to complete.
	return commandBuffer.EndSingleUse(context, context.Device.GraphicsCommandPool, context.Device.GraphicsQueue)
}

// StructBytes reinterprets a pointer to a fixed-layout struct as its raw
// bytes, for uploading std140 uniform blocks without an encode step.
func StructBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
