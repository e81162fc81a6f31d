package model

// model is the implementation of the Model interface.
type model struct {
	path   string
	meshes []Mesh
}

// Model defines the interface for a loaded 3D model.
// A Model is identified by the file it was loaded from and owns an ordered list of GPU meshes,
// in the pre-order traversal order of the source scene graph.
// It is produced by the Loader and stays immutable until its GPU resources are freed.
type Model interface {
	// Path retrieves the source file path the model was loaded from.
	//
	// Returns:
	//   - string: the model's file path
	Path() string

	// Meshes retrieves the GPU meshes of the model in traversal order.
	//
	// Returns:
	//   - []Mesh: the meshes
	Meshes() []Mesh

	// MeshCount returns the number of meshes in the model.
	//
	// Returns:
	//   - int: the mesh count
	MeshCount() int

	// IndexCount returns the total number of indices across all meshes.
	//
	// Returns:
	//   - int: the summed index count
	IndexCount() int
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Path() string {
	return m.path
}

func (m *model) Meshes() []Mesh {
	out := make([]Mesh, len(m.meshes))
	copy(out, m.meshes)
	return out
}

func (m *model) MeshCount() int {
	return len(m.meshes)
}

func (m *model) IndexCount() int {
	total := 0
	for _, mesh := range m.meshes {
		total += int(mesh.IndexCount)
	}
	return total
}
