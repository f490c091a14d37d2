package metadata

/**
 * @brief Material configuration, typically decoded from the material
 * roster in the application config. Carries one ImageMapSpec per role;
 * roles without a file get a dummy spec.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string
	/** @brief Directory the map filenames are relative to. */
	BasePath string
	/** @brief One spec per role, indexed by TextureRole. */
	Maps [TextureRoleCount]ImageMapSpec
}

/**
 * @brief A PBR material: five texture maps plus the descriptor set that
 * binds them together with the two shared uniform buffers. Built once,
 * bound once, destroyed once.
 */
type Material struct {
	/** @brief The material id. */
	ID uint32
	/** @brief The material generation. Incremented every time the material is changed. */
	Generation uint32
	/** @brief The internal material id. Used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The material name. */
	Name string
	/** @brief The five texture maps, indexed by TextureRole. All populated after a successful build. */
	Maps [TextureRoleCount]*TextureMap
	/** @brief Render API-specific binding data. Typically the descriptor set. */
	InternalData interface{}
}

// Complete reports whether every role has a loaded map. Holds for every
// registered material; a failed build registers nothing.
func (m *Material) Complete() bool {
	for _, tm := range m.Maps {
		if tm == nil || tm.Texture == nil {
			return false
		}
	}
	return true
}
