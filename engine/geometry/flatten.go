package geometry

import (
	"fmt"

	"cogentcore.org/core/base/logx"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
)

// FlattenScene walks the scene in pre-order and flattens every mesh a node references.
// A node's meshes come before its children's, children are taken in stored order, and a mesh
// referenced by several nodes is flattened once per reference.
//
// Parameters:
//   - s: the scene to flatten
//   - options: flatten options such as WithMissingTexCoords
//
// Returns:
//   - []Geometry: one entry per mesh reference, in traversal order
//   - error: a *MeshError for the first mesh that cannot be flattened
func FlattenScene(s *scene.Scene, options ...FlattenOption) ([]Geometry, error) {
	cfg := newFlattenConfig(options)

	var out []Geometry
	err := s.Walk(func(n *scene.Node, _ int) error {
		for _, idx := range n.Meshes {
			if idx < 0 || idx >= len(s.Meshes) || s.Meshes[idx] == nil {
				return &MeshError{Mesh: n.Name, Err: fmt.Errorf("%w: index %d, table holds %d", ErrMeshReference, idx, len(s.Meshes))}
			}
			g, err := flattenMesh(s.Meshes[idx], cfg)
			if err != nil {
				return err
			}
			out = append(out, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FlattenMesh converts a single triangulated mesh into contiguous attribute arrays.
//
// Parameters:
//   - m: the mesh to flatten
//   - options: flatten options such as WithMissingTexCoords
//
// Returns:
//   - Geometry: the flattened mesh
//   - error: a *MeshError if the mesh data is malformed
func FlattenMesh(m *scene.Mesh, options ...FlattenOption) (Geometry, error) {
	return flattenMesh(m, newFlattenConfig(options))
}

func flattenMesh(m *scene.Mesh, cfg flattenConfig) (Geometry, error) {
	vertexCount := m.VertexCount()
	g := Geometry{
		Name:      m.Name,
		Positions: make([]float32, 0, PositionComponents*vertexCount),
		TexCoords: make([]float32, 0, TexCoordComponents*vertexCount),
		Normals:   make([]float32, 0, NormalComponents*vertexCount),
		Indices:   make([]uint32, 0, 3*len(m.Faces)),
	}

	for _, p := range m.Positions {
		g.Positions = append(g.Positions, p[0], p[1], p[2])
	}

	if len(m.Normals) != vertexCount {
		return Geometry{}, &MeshError{Mesh: m.Name, Err: fmt.Errorf("%w: %d normals for %d vertices", ErrMissingNormals, len(m.Normals), vertexCount)}
	}
	for _, n := range m.Normals {
		g.Normals = append(g.Normals, n[0], n[1], n[2])
	}

	switch {
	case m.HasTexCoords(0):
		uvs := m.TexCoords[0]
		if len(uvs) != vertexCount {
			return Geometry{}, &MeshError{Mesh: m.Name, Err: fmt.Errorf("%w: %d texcoords for %d vertices", ErrTexCoordCount, len(uvs), vertexCount)}
		}
		for _, uv := range uvs {
			g.TexCoords = append(g.TexCoords, uv[0], uv[1])
		}
	case cfg.missingTexCoords == MissingTexCoordsFail:
		return Geometry{}, &MeshError{Mesh: m.Name, Err: ErrMissingTexCoords}
	default:
		logx.PrintlnDebug("flatten: mesh", m.Name, "has no texcoords, zero-filling")
		g.TexCoords = g.TexCoords[:TexCoordComponents*vertexCount]
		clear(g.TexCoords)
	}

	for i, f := range m.Faces {
		if len(f) != 3 {
			return Geometry{}, &MeshError{Mesh: m.Name, Err: fmt.Errorf("%w: face %d has %d indices", ErrNonTriangleFace, i, len(f))}
		}
		for _, idx := range f {
			if int(idx) >= vertexCount {
				return Geometry{}, &MeshError{Mesh: m.Name, Err: fmt.Errorf("%w: face %d references vertex %d of %d", ErrIndexOutOfRange, i, idx, vertexCount)}
			}
		}
		g.Indices = append(g.Indices, f...)
	}

	return g, nil
}
