package metadata

/** @brief The name of the shared dummy map texture. */
const DUMMY_TEXTURE_NAME string = "dummy"

/**
 * @brief Identifies which of the five PBR slots a texture map fills.
 * Every material carries exactly one map per role.
 */
type TextureRole int

const (
	/** @brief The base colour map, stored gamma-encoded. */
	TextureRoleAlbedo TextureRole = iota
	/** @brief The tangent-space normal map. */
	TextureRoleNormal
	/** @brief The metallic map (single channel). */
	TextureRoleMetallic
	/** @brief The roughness map (single channel). */
	TextureRoleRoughness
	/** @brief The ambient occlusion map (single channel). */
	TextureRoleAO
	/** @brief The number of roles. Always 5. */
	TextureRoleCount
)

func (r TextureRole) String() string {
	switch r {
	case TextureRoleAlbedo:
		return "albedo"
	case TextureRoleNormal:
		return "normal"
	case TextureRoleMetallic:
		return "metallic"
	case TextureRoleRoughness:
		return "roughness"
	case TextureRoleAO:
		return "ao"
	}
	return "unknown"
}

// AllTextureRoles in build order.
func AllTextureRoles() []TextureRole {
	return []TextureRole{
		TextureRoleAlbedo,
		TextureRoleNormal,
		TextureRoleMetallic,
		TextureRoleRoughness,
		TextureRoleAO,
	}
}

/**
 * @brief BindingSlot returns the fixed descriptor binding index for the
 * role. Bindings 0 and 1 are the two uniform buffers; the sampler slots
 * follow with roughness deliberately before metallic. The fragment
 * shader depends on this exact order.
 */
func (r TextureRole) BindingSlot() uint32 {
	switch r {
	case TextureRoleAlbedo:
		return 2
	case TextureRoleNormal:
		return 3
	case TextureRoleRoughness:
		return 4
	case TextureRoleMetallic:
		return 5
	case TextureRoleAO:
		return 6
	}
	return InvalidID
}

/**
 * @brief Describes a single texture map of a material before it is
 * loaded: the file it comes from and whether it is a semantically inert
 * placeholder. Dummy maps are loaded and bound exactly like real ones.
 */
type ImageMapSpec struct {
	/** @brief Path relative to the material base path. Empty selects the dummy. */
	Filename string
	/** @brief The role this map fills. */
	Role TextureRole
	/** @brief Marks a placeholder map. Affects nothing but intent. */
	Dummy bool
}

/**
 * @brief Represents a texture held by the renderer backend.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uint32
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The texture Name. */
	Name string
	/** @brief A pointer to render API-specific data (image, memory, view, sampler). */
	InternalData interface{}
}

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
	TextureRepeatClampToBorder  TextureRepeat = 0x4
)

/**
 * @brief A texture paired with its role and sampler configuration.
 */
type TextureMap struct {
	/** @brief A pointer to a Texture. */
	Texture *Texture
	/** @brief The role of the texture. */
	Role TextureRole
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilter
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	RepeatU TextureRepeat
	/** @brief The repeat mode on the V axis (or Y, or T) */
	RepeatV TextureRepeat
	/** @brief A pointer to internal, render API-specific data. Typically the internal sampler. */
	InternalData interface{}
}

/**
 * @brief DummyPixels generates the flat pixel data used when a material
 * declares no file for a role. Neutral values per role: mid-grey albedo,
 * flat +Z normal, black metallic, white roughness, white ao. 16x16 RGBA.
 */
func DummyPixels(role TextureRole) (pixels []uint8, dimension uint32) {
	const dim = 16
	pixels = make([]uint8, dim*dim*4)
	var r, g, b uint8
	switch role {
	case TextureRoleAlbedo:
		r, g, b = 128, 128, 128
	case TextureRoleNormal:
		r, g, b = 128, 128, 255
	case TextureRoleMetallic:
		r, g, b = 0, 0, 0
	case TextureRoleRoughness:
		r, g, b = 255, 255, 255
	case TextureRoleAO:
		r, g, b = 255, 255, 255
	}
	for i := 0; i < dim*dim; i++ {
		pixels[i*4+0] = r
		pixels[i*4+1] = g
		pixels[i*4+2] = b
		pixels[i*4+3] = 255
	}
	return pixels, dim
}
