package metadata

import "github.com/go-gl/mathgl/mgl32"

/**
 * @brief CPU-side mesh data produced by the mesh loader, before upload
 * to GPU buffers.
 */
type GeometryConfig struct {
	/** @brief The Name of the geometry. */
	Name string
	/** @brief An array of interleaved Vertices. */
	Vertices []Vertex3D
	/** @brief An array of Indices. */
	Indices []uint32

	Center     mgl32.Vec3
	MinExtents mgl32.Vec3
	MaxExtents mgl32.Vec3
}

/**
 * @brief A mesh uploaded to the renderer backend: handles into the
 * shared vertex and index buffers.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The internal geometry identifier, used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The geometry name. */
	Name string
	/** @brief The number of indices to draw. */
	IndexCount uint32
	/** @brief The number of vertices uploaded. */
	VertexCount uint32
}
