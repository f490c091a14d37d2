package loaders

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

type MeshLoader struct{}

// Load reads the first mesh primitive of a glTF file and converts it into
// the interleaved vertex layout the pipeline draws. Positions are
// required; missing normals default to +Y and missing texture
// coordinates to zero.
func (ml *MeshLoader) Load(path string, name string) (*metadata.GeometryConfig, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, core.LoadFailure(path, err)
	}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		err := fmt.Errorf("func Load - mesh file '%s' contains no primitives", path)
		core.LogError(err.Error())
		return nil, err
	}
	prim := doc.Meshes[0].Primitives[0]

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		err := fmt.Errorf("func Load - mesh file '%s' has no POSITION attribute", path)
		core.LogError(err.Error())
		return nil, err
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		err := fmt.Errorf("func Load - failed to read positions from '%s': %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	vertices := make([]metadata.Vertex3D, len(positions))
	minExtents := mgl32.Vec3{}
	maxExtents := mgl32.Vec3{}
	for i, p := range positions {
		v := metadata.Vertex3D{
			Position: mgl32.Vec3{p[0], p[1], p[2]},
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			v.Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
		if i < len(uvs) {
			v.TexCoord = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
		vertices[i] = v

		if i == 0 {
			minExtents = v.Position
			maxExtents = v.Position
			continue
		}
		for c := 0; c < 3; c++ {
			if v.Position[c] < minExtents[c] {
				minExtents[c] = v.Position[c]
			}
			if v.Position[c] > maxExtents[c] {
				maxExtents[c] = v.Position[c]
			}
		}
	}

	if prim.Indices == nil {
		err := fmt.Errorf("func Load - mesh file '%s' has no index data", path)
		core.LogError(err.Error())
		return nil, err
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		err := fmt.Errorf("func Load - failed to read indices from '%s': %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}

	return &metadata.GeometryConfig{
		Name:       name,
		Vertices:   vertices,
		Indices:    indices,
		Center:     minExtents.Add(maxExtents).Mul(0.5),
		MinExtents: minExtents,
		MaxExtents: maxExtents,
	}, nil
}
