package vulkan

import (
	vk "github.com/goki/vulkan"
)

/**
 * @brief Internal buffer placement for one uploaded geometry. Vertex and
 * index data for every mesh share two device-local buffers; each
 * geometry only records its counts and byte offsets within them.
 */
type VulkanGeometryData struct {
	/** @brief The unique geometry identifier. */
	ID uint32
	/** @brief The geometry generation. Incremented every time the geometry data changes. */
	Generation uint32
	/** @brief The vertex count. */
	VertexCount uint32
	/** @brief The offset in bytes in the shared vertex buffer. */
	VertexBufferOffset uint64
	/** @brief The index count. */
	IndexCount uint32
	/** @brief The offset in bytes in the shared index buffer. */
	IndexBufferOffset uint64
}

// uploadDataRange pushes data into a device-local buffer region through a
// host-visible staging buffer.
func uploadDataRange(context *VulkanContext, dest *VulkanBuffer, destOffset uint64, data []byte) error {
	size := uint64(len(data))

	staging, err := BufferCreate(context, size,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return err
	}
	defer staging.Destroy(context)

	if err := staging.LoadData(context, 0, size, data); err != nil {
		return err
	}
	return staging.CopyTo(context, 0, dest, destOffset, size)
}

// Draw binds the shared buffers at this geometry's offsets and issues the
// indexed draw. Assumes the pipeline and descriptor set are already bound.
func (g *VulkanGeometryData) Draw(commandBuffer *VulkanCommandBuffer, vertexBuffer, indexBuffer *VulkanBuffer) {
	vk.CmdBindVertexBuffers(commandBuffer.Handle, 0, 1,
		[]vk.Buffer{vertexBuffer.Handle}, []vk.DeviceSize{vk.DeviceSize(g.VertexBufferOffset)})
	vk.CmdBindIndexBuffer(commandBuffer.Handle, indexBuffer.Handle, vk.DeviceSize(g.IndexBufferOffset), vk.IndexTypeUint32)
	vk.CmdDrawIndexed(commandBuffer.Handle, g.IndexCount, 1, 0, 0, 0)
}
