// package scene holds the decoded, format-independent scene graph produced by the importer.
// A Scene is plain data owned by Go: once a decoder has copied a file into it, nothing
// refers back to the decoder. It only lives long enough to be flattened into geometry.
package scene

import (
	"errors"
	"fmt"
)

// NoMaterial marks a mesh that does not reference any material.
const NoMaterial = -1

// ErrMeshReference is returned when a node references a mesh index outside the scene's mesh table.
var ErrMeshReference = errors.New("mesh reference out of range")

// Scene is an imported scene graph: a root node plus the scene-wide mesh table that nodes index into.
type Scene struct {
	// Root is the top of the node hierarchy. A valid scene always has a root.
	Root *Node

	// Meshes is the scene-wide mesh table. Nodes reference entries by index.
	Meshes []*Mesh
}

// Node is one element of the scene hierarchy.
type Node struct {
	// Name is the node name as stored in the source file (may be empty).
	Name string

	// Meshes holds indices into Scene.Meshes, in stored order.
	Meshes []int

	// Children holds the child nodes, in stored order.
	Children []*Node
}

// Mesh is a single decoded mesh with per-vertex attribute arrays and polygon faces.
// All attribute arrays that are present have exactly VertexCount entries.
type Mesh struct {
	// Name is the mesh name as stored in the source file (may be empty).
	Name string

	// Positions holds one position per vertex.
	Positions [][3]float32

	// Normals holds one normal per vertex, or nil if the source carried none.
	Normals [][3]float32

	// TexCoords holds the UV channels of the mesh. Channel 0 is the one used for rendering.
	// Each present channel has one entry per vertex.
	TexCoords [][][2]float32

	// Faces holds the polygons of the mesh as vertex indices. After triangulation every face has 3 entries.
	Faces [][]uint32

	// MaterialIndex is the index of the material used by this mesh, or NoMaterial.
	MaterialIndex int
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// HasNormals reports whether the mesh carries one normal per vertex.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0 && len(m.Normals) == len(m.Positions)
}

// HasTexCoords reports whether the given UV channel is present on the mesh.
//
// Parameters:
//   - channel: the UV channel index
//
// Returns:
//   - bool: true if the channel exists and is non-empty
func (m *Mesh) HasTexCoords(channel int) bool {
	return channel >= 0 && channel < len(m.TexCoords) && len(m.TexCoords[channel]) > 0
}

// Walk visits every node of the scene in pre-order: a node is visited before its children, and
// children are visited in stored order. Walking stops at the first error returned by fn.
//
// Parameters:
//   - fn: the visitor, receiving the node and its depth (the root has depth 0)
//
// Returns:
//   - error: the first error returned by fn, or nil
func (s *Scene) Walk(fn func(n *Node, depth int) error) error {
	if s == nil || s.Root == nil {
		return nil
	}
	return walk(s.Root, 0, fn)
}

func walk(n *Node, depth int, fn func(n *Node, depth int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// MeshCount returns the number of mesh references reachable from the root. A mesh shared by two
// nodes is counted twice, matching how many meshes a flattened model will hold.
//
// Returns:
//   - int: the total number of mesh references across all nodes
func (s *Scene) MeshCount() int {
	count := 0
	_ = s.Walk(func(n *Node, _ int) error {
		count += len(n.Meshes)
		return nil
	})
	return count
}

// Validate checks that the scene has a root and that every node's mesh references resolve.
//
// Returns:
//   - error: an error wrapping ErrMeshReference for the first dangling reference, or nil
func (s *Scene) Validate() error {
	if s == nil || s.Root == nil {
		return errors.New("scene has no root node")
	}
	return s.Walk(func(n *Node, _ int) error {
		for _, idx := range n.Meshes {
			if idx < 0 || idx >= len(s.Meshes) || s.Meshes[idx] == nil {
				return fmt.Errorf("node %q: %w: %d (table holds %d)", n.Name, ErrMeshReference, idx, len(s.Meshes))
			}
		}
		return nil
	})
}
