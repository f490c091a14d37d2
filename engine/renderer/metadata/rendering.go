package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	/** @brief An invalid 32-bit identifier. */
	InvalidID uint32 = 0xFFFFFFFF
	/** @brief An invalid 8-bit identifier. */
	InvalidIDUint8 uint8 = 0xFF
	/** @brief An invalid 64-bit identifier. */
	InvalidIDUint64 uint64 = 0xFFFFFFFFFFFFFFFF
)

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. Used by the PBR pipeline because the demo meshes are wound for it. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
	/** @brief Both front and back faces are culled. */
	FaceCullModeFrontAndBack FaceCullMode = 0x3
)

/**
 * @brief A single interleaved vertex: position, normal, texture
 * coordinate. The pipeline's one vertex binding matches this layout
 * exactly.
 */
type Vertex3D struct {
	/** @brief The position of the vertex. */
	Position mgl32.Vec3
	/** @brief The surface normal. */
	Normal mgl32.Vec3
	/** @brief The texture coordinate. */
	TexCoord mgl32.Vec2
}

const (
	/** @brief Byte size of one Vertex3D (8 floats). */
	Vertex3DSize uint32 = 32
	/** @brief Byte offset of the normal attribute. */
	Vertex3DNormalOffset uint32 = 12
	/** @brief Byte offset of the texture coordinate attribute. */
	Vertex3DTexCoordOffset uint32 = 24
)

/**
 * @brief The per-view uniform block at descriptor binding 0. One
 * instance for the scene view and one for the skybox view; the skybox
 * copy strips the translation from the view matrix. Field order and
 * padding match the std140 layout of the vertex shader block.
 */
type UBOMatrices struct {
	Projection mgl32.Mat4
	Model      mgl32.Mat4
	View       mgl32.Mat4
	CamPos     mgl32.Vec3
	_          float32
}

/** @brief Byte size of the UBOMatrices std140 block. */
const UBOMatricesSize uint64 = 208

/** @brief The number of point lights in the shared lighting rig. */
const LightCount = 4

/**
 * @brief The shared lighting parameter block at descriptor binding 1.
 * All materials read the same instance. Field order and padding match
 * the std140 layout of the fragment shader block.
 */
type UBOParams struct {
	/** @brief Light positions; w is unused. */
	Lights [LightCount]mgl32.Vec4
	/** @brief Global roughness, always inside [0.05, 1.0]. */
	Roughness float32
	/** @brief Global metallic, always inside [0.0, 1.0]. */
	Metallic float32
	_        [2]float32
}

/** @brief Byte size of the UBOParams std140 block. */
const UBOParamsSize uint64 = 80

const (
	/** @brief Descriptor binding of the view matrices uniform buffer. */
	BindingSlotMatrices uint32 = 0
	/** @brief Descriptor binding of the lighting parameters uniform buffer. */
	BindingSlotParams uint32 = 1
	/** @brief Number of uniform-buffer bindings per descriptor set. */
	UniformBindingCount uint32 = 2
	/** @brief Number of sampler bindings per descriptor set. */
	SamplerBindingCount uint32 = uint32(TextureRoleCount)
	/** @brief Total bindings per set (0..6). */
	BindingCount uint32 = UniformBindingCount + SamplerBindingCount
)

/**
 * @brief One entry of the per-frame draw list: which mesh, with which
 * material, at which world offset. The offset reaches the vertex shader
 * as a push constant.
 */
type DrawItem struct {
	/** @brief Index into the scene's mesh table. */
	MeshIndex uint32
	/** @brief The material bound for this draw. */
	Material *Material
	/** @brief Per-draw world-space offset. */
	WorldOffset mgl32.Vec3
}

/**
 * @brief Everything the backend needs to draw one frame.
 */
type RenderPacket struct {
	DeltaTime float64
	/** @brief Ordered draw list, traversed front to back as given. */
	Items []DrawItem
	/** @brief Whether the skybox is drawn before the items. */
	DrawSkybox bool
}

type MemoryRange struct {
	Offset uint64
	Size   uint64
}
