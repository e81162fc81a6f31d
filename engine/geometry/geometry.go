// package geometry flattens imported scene meshes into the contiguous attribute arrays that
// are uploaded to the GPU: positions and normals as 3 floats per vertex, texture coordinates as
// 2 floats per vertex, and triangle indices.
package geometry

import (
	"errors"
	"fmt"
)

const (
	// PositionComponents is the number of floats per vertex in Positions.
	PositionComponents = 3

	// TexCoordComponents is the number of floats per vertex in TexCoords.
	TexCoordComponents = 2

	// NormalComponents is the number of floats per vertex in Normals.
	NormalComponents = 3
)

var (
	// ErrMissingTexCoords is returned when the first UV channel is absent and the flattener is
	// configured to fail instead of zero-filling.
	ErrMissingTexCoords = errors.New("mesh has no texture coordinates in channel 0")

	// ErrTexCoordCount is returned when the first UV channel does not have one entry per vertex.
	ErrTexCoordCount = errors.New("texture coordinate count does not match vertex count")

	// ErrMissingNormals is returned when the mesh does not carry one normal per vertex.
	ErrMissingNormals = errors.New("normal count does not match vertex count")

	// ErrNonTriangleFace is returned when a face does not have exactly three indices.
	ErrNonTriangleFace = errors.New("face is not a triangle")

	// ErrIndexOutOfRange is returned when a face references a vertex that does not exist.
	ErrIndexOutOfRange = errors.New("face index out of range")

	// ErrMeshReference is returned when a node references a mesh outside the scene's mesh table.
	ErrMeshReference = errors.New("node references missing mesh")
)

// MeshError ties a flattening failure to the mesh that caused it.
type MeshError struct {
	// Mesh is the name of the offending mesh, or the node name for reference errors.
	Mesh string

	// Err is one of the package's sentinel errors, possibly wrapped with detail.
	Err error
}

func (e *MeshError) Error() string {
	return fmt.Sprintf("mesh %q: %v", e.Mesh, e.Err)
}

func (e *MeshError) Unwrap() error {
	return e.Err
}

// Geometry is one flattened mesh, ready for upload.
type Geometry struct {
	// Name is the source mesh name.
	Name string

	// Positions holds x, y, z for each vertex.
	Positions []float32

	// TexCoords holds u, v from the first UV channel for each vertex.
	TexCoords []float32

	// Normals holds x, y, z for each vertex.
	Normals []float32

	// Indices holds three vertex indices per triangle, in face order.
	Indices []uint32
}

// VertexCount returns the number of vertices described by Positions.
func (g Geometry) VertexCount() int {
	return len(g.Positions) / PositionComponents
}

// IndexCount returns the number of indices to draw.
func (g Geometry) IndexCount() int {
	return len(g.Indices)
}

// Validate checks the array-length invariants of a flattened mesh: positions and normals hold
// 3 floats per vertex, texcoords hold 2, indices come in triangles and stay below the vertex count.
//
// Returns:
//   - error: a *MeshError describing the first violated invariant, or nil
func (g Geometry) Validate() error {
	if len(g.Positions)%PositionComponents != 0 {
		return &MeshError{Mesh: g.Name, Err: fmt.Errorf("positions length %d is not a multiple of %d", len(g.Positions), PositionComponents)}
	}
	vertexCount := g.VertexCount()
	if len(g.Normals) != NormalComponents*vertexCount {
		return &MeshError{Mesh: g.Name, Err: fmt.Errorf("%w: %d floats for %d vertices", ErrMissingNormals, len(g.Normals), vertexCount)}
	}
	if len(g.TexCoords) != TexCoordComponents*vertexCount {
		return &MeshError{Mesh: g.Name, Err: fmt.Errorf("%w: %d floats for %d vertices", ErrTexCoordCount, len(g.TexCoords), vertexCount)}
	}
	if len(g.Indices)%3 != 0 {
		return &MeshError{Mesh: g.Name, Err: fmt.Errorf("%w: %d indices", ErrNonTriangleFace, len(g.Indices))}
	}
	for i, idx := range g.Indices {
		if int(idx) >= vertexCount {
			return &MeshError{Mesh: g.Name, Err: fmt.Errorf("%w: index %d at position %d, %d vertices", ErrIndexOutOfRange, idx, i, vertexCount)}
		}
	}
	return nil
}
