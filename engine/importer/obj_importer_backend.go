package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/g3n/engine/loader/obj"
)

// objImporterBackendImpl decodes Wavefront OBJ files with the g3n OBJ decoder.
// Materials are not loaded; faces are grouped by the material name they reference.
type objImporterBackendImpl struct{}

var _ ImporterBackend = &objImporterBackendImpl{}

// newOBJImporterBackend creates a new OBJ decoder.
//
// Returns:
//   - ImporterBackend: the decoder for .obj files
func newOBJImporterBackend() ImporterBackend {
	return &objImporterBackendImpl{}
}

func (b *objImporterBackendImpl) Decode(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// An empty material library keeps the decoder from looking for .mtl files next to the model.
	dec, err := obj.DecodeReader(f, strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode OBJ: %w", err)
	}

	s := &scene.Scene{Root: scene.NewNode(filepath.Base(path))}
	materials := make(map[string]int)

	for _, object := range dec.Objects {
		node := scene.NewNode(object.Name)

		// Faces are grouped per material in first-use order.
		var order []string
		groups := make(map[string][]obj.Face)
		for _, face := range object.Faces {
			if _, ok := groups[face.Material]; !ok {
				order = append(order, face.Material)
			}
			groups[face.Material] = append(groups[face.Material], face)
		}

		for _, material := range order {
			m, err := objMesh(dec, object.Name, groups[material])
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", object.Name, err)
			}
			m.MaterialIndex = scene.NoMaterial
			if material != "" {
				idx, ok := materials[material]
				if !ok {
					idx = len(materials)
					materials[material] = idx
				}
				m.MaterialIndex = idx
			}
			node.Meshes = append(node.Meshes, len(s.Meshes))
			s.Meshes = append(s.Meshes, m)
		}

		s.Root.Children = append(s.Root.Children, node)
	}
	return s, nil
}

// objCorner identifies a unique face corner. OBJ indexes positions, UVs and normals
// separately, so every distinct combination becomes one mesh vertex.
type objCorner struct {
	v, t, n int
}

// objMesh builds an indexed mesh from OBJ faces. A UV channel is emitted when any corner
// references a UV; normals are kept only when every corner references one.
func objMesh(dec *obj.Decoder, name string, faces []obj.Face) (*scene.Mesh, error) {
	m := &scene.Mesh{Name: name}
	var uvs [][2]float32
	vertices := make(map[objCorner]uint32)
	anyUV, allNormals := false, true

	for _, face := range faces {
		poly := make([]uint32, 0, len(face.Vertices))
		for k, vi := range face.Vertices {
			if !objIndexValid(vi, 3, len(dec.Vertices)) {
				return nil, fmt.Errorf("face references vertex %d of %d", vi, len(dec.Vertices)/3)
			}
			c := objCorner{v: vi, t: -1, n: -1}
			if k < len(face.Uvs) && objIndexValid(face.Uvs[k], 2, len(dec.Uvs)) {
				c.t = face.Uvs[k]
			}
			if k < len(face.Normals) && objIndexValid(face.Normals[k], 3, len(dec.Normals)) {
				c.n = face.Normals[k]
			}

			idx, ok := vertices[c]
			if !ok {
				idx = uint32(len(m.Positions))
				vertices[c] = idx
				m.Positions = append(m.Positions, [3]float32{dec.Vertices[3*c.v], dec.Vertices[3*c.v+1], dec.Vertices[3*c.v+2]})

				var uv [2]float32
				if c.t >= 0 {
					uv = [2]float32{dec.Uvs[2*c.t], dec.Uvs[2*c.t+1]}
					anyUV = true
				}
				uvs = append(uvs, uv)

				var normal [3]float32
				if c.n >= 0 {
					normal = [3]float32{dec.Normals[3*c.n], dec.Normals[3*c.n+1], dec.Normals[3*c.n+2]}
				} else {
					allNormals = false
				}
				m.Normals = append(m.Normals, normal)
			}
			poly = append(poly, idx)
		}
		m.Faces = append(m.Faces, poly)
	}

	if anyUV {
		m.TexCoords = [][][2]float32{uvs}
	}
	if !allNormals {
		m.Normals = nil
	}
	return m, nil
}

func objIndexValid(idx, stride, length int) bool {
	return idx >= 0 && stride*idx+stride-1 < length
}
