package renderer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeGL selects the OpenGL 4.1 core backend. It needs a current GL context.
	BackendTypeGL RendererBackendType = iota

	// BackendTypeWGPU selects a headless WebGPU backend. It can upload meshes but not draw them.
	BackendTypeWGPU
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeGL:
		return "gl"
	case BackendTypeWGPU:
		return "wgpu"
	default:
		return "unknown"
	}
}

// RendererBackend is the per-API half of the Renderer. The Renderer validates input and
// tracks live meshes; the backend only talks to the graphics API.
type RendererBackend interface {
	// BuildMesh allocates a vertex array and four buffers and uploads the geometry into them.
	// On failure nothing stays allocated.
	//
	// Parameters:
	//   - g: validated geometry to upload
	//
	// Returns:
	//   - model.Mesh: the mesh holding the new handles
	//   - error: error if any graphics call failed
	BuildMesh(g geometry.Geometry) (model.Mesh, error)

	// DrawMeshes issues one indexed triangle draw per mesh.
	//
	// Parameters:
	//   - meshes: the meshes to draw, in order
	//   - wireframe: true to rasterize triangle edges only
	//
	// Returns:
	//   - error: error if drawing failed or is unsupported
	DrawMeshes(meshes []model.Mesh, wireframe bool) error

	// FreeMesh deletes the vertex array and buffers of a mesh.
	//
	// Parameters:
	//   - mesh: the mesh to delete
	//
	// Returns:
	//   - error: error if deletion failed
	FreeMesh(mesh model.Mesh) error

	// Release tears down backend-wide state such as devices.
	Release()
}
