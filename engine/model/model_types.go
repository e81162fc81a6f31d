package model

// Handle is an opaque GPU object name issued by a renderer backend. Zero is never a live handle.
type Handle uint32

// Buffer slots of a Mesh.
const (
	// BufferPosition is the vertex buffer holding 3 floats per vertex.
	BufferPosition = iota

	// BufferTexCoord is the vertex buffer holding 2 floats per vertex.
	BufferTexCoord

	// BufferNormal is the vertex buffer holding 3 floats per vertex.
	BufferNormal

	// BufferIndex is the element buffer holding uint32 triangle indices.
	BufferIndex

	// BufferCount is the number of buffers every Mesh owns.
	BufferCount
)

// Mesh is one GPU-resident mesh: a vertex array binding its attribute buffers, the four
// buffers themselves, and the number of indices to draw.
type Mesh struct {
	// Name is the source mesh name.
	Name string

	// VertexArray is the vertex array object recording the attribute bindings.
	VertexArray Handle

	// Buffers holds the position, texcoord, normal and index buffers, indexed by the Buffer* constants.
	Buffers [BufferCount]Handle

	// IndexCount is the number of indices to draw (not the number of vertices).
	IndexCount int32
}

// Handles returns every GPU handle owned by the mesh, vertex array first.
//
// Returns:
//   - []Handle: the vertex array handle followed by the buffer handles in slot order
func (m Mesh) Handles() []Handle {
	handles := make([]Handle, 0, BufferCount+1)
	handles = append(handles, m.VertexArray)
	return append(handles, m.Buffers[:]...)
}
