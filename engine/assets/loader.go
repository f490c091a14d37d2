package assets

// AssetType classifies files under the asset root by extension.
type AssetType int

const (
	AssetTypeNone AssetType = iota
	AssetTypeImage
	AssetTypeMesh
	AssetTypeShader
	AssetTypeConfig
)
