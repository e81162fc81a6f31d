package renderer

import (
	"errors"
	"fmt"
	"sync"

	"cogentcore.org/core/base/logx"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
)

var (
	// ErrUnknownMesh is returned when freeing or drawing a mesh this renderer did not build or already freed.
	ErrUnknownMesh = errors.New("mesh is not live on this renderer")

	// ErrReleased is returned by every operation after Release.
	ErrReleased = errors.New("renderer has been released")

	// ErrDrawUnsupported is returned by backends that cannot draw, such as the headless WebGPU backend.
	ErrDrawUnsupported = errors.New("backend does not support drawing")
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	released    bool

	// live holds every mesh built and not yet freed, keyed by vertex array handle.
	live map[model.Handle]model.Mesh

	// Pre-creation config collected from builder options
	glContext            GLContext
	forceFallbackAdapter bool
}

// Renderer defines the interface for uploading, drawing and releasing mesh GPU resources.
//
// The Renderer owns one backend implementation for a specific graphics API, and keeps track of
// which meshes it has built so that every handle is freed exactly once.
type Renderer interface {
	// BackendType returns the graphics API this renderer uses.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// BuildMesh uploads flattened geometry as static data: one vertex array plus position,
	// texcoord and normal buffers bound to slots 0, 1 and 2, and an index buffer bound as the
	// element buffer.
	//
	// Parameters:
	//   - g: the geometry to upload
	//
	// Returns:
	//   - model.Mesh: the mesh with its vertex array, 4 buffer handles and index count
	//   - error: a *geometry.MeshError for malformed geometry, a *GLError for API errors
	BuildMesh(g geometry.Geometry) (model.Mesh, error)

	// DrawModel draws every mesh of the model as indexed triangles.
	//
	// Parameters:
	//   - m: the model to draw
	//   - wireframe: true to draw triangle edges only
	//
	// Returns:
	//   - error: error if a mesh is not live or the backend fails
	DrawModel(m model.Model, wireframe bool) error

	// FreeMesh deletes the GPU objects of a single mesh.
	//
	// Parameters:
	//   - mesh: the mesh to free
	//
	// Returns:
	//   - error: ErrUnknownMesh if the mesh is not live, or a backend error
	FreeMesh(mesh model.Mesh) error

	// FreeModel deletes the GPU objects of every mesh in the model. Freeing continues past
	// individual failures; all failures are joined into the returned error.
	//
	// Parameters:
	//   - m: the model to free
	//
	// Returns:
	//   - error: the joined errors of all meshes that failed to free, or nil
	FreeModel(m model.Model) error

	// LiveMeshes returns the number of meshes built and not yet freed.
	//
	// Returns:
	//   - int: the live mesh count
	LiveMeshes() int

	// Release frees every remaining live mesh and tears down the backend.
	// The renderer cannot be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., BackendTypeGL)
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: error if the backend could not be created
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		live:        make(map[model.Handle]model.Mesh),
	}

	// Apply options first so config flags (e.g. the GL context) are available
	// before the backend is created.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeGL:
		ctx := r.glContext
		if ctx == nil {
			var err error
			if ctx, err = NewGLContext(); err != nil {
				return nil, err
			}
		}
		r.backend = newGLRendererBackend(ctx)
	case BackendTypeWGPU:
		backend, err := newWGPURendererBackend(r.forceFallbackAdapter)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	default:
		return nil, fmt.Errorf("unsupported renderer backend: %s", backendType)
	}

	logx.PrintlnDebug("renderer: created", backendType, "backend")
	return r, nil
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) BuildMesh(g geometry.Geometry) (model.Mesh, error) {
	if err := g.Validate(); err != nil {
		return model.Mesh{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return model.Mesh{}, ErrReleased
	}

	mesh, err := r.backend.BuildMesh(g)
	if err != nil {
		return model.Mesh{}, err
	}
	r.live[mesh.VertexArray] = mesh
	return mesh, nil
}

func (r *renderer) DrawModel(m model.Model, wireframe bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}

	meshes := m.Meshes()
	for _, mesh := range meshes {
		if _, ok := r.live[mesh.VertexArray]; !ok {
			return fmt.Errorf("draw %s: mesh %q: %w", m.Path(), mesh.Name, ErrUnknownMesh)
		}
	}
	if err := r.backend.DrawMeshes(meshes, wireframe); err != nil {
		return fmt.Errorf("draw %s: %w", m.Path(), err)
	}
	return nil
}

func (r *renderer) FreeMesh(mesh model.Mesh) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	return r.freeMesh(mesh)
}

func (r *renderer) FreeModel(m model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}

	var errs []error
	for _, mesh := range m.Meshes() {
		if err := r.freeMesh(mesh); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("free %s: %w", m.Path(), err)
	}
	return nil
}

// freeMesh deletes a live mesh. Caller must hold the mutex.
func (r *renderer) freeMesh(mesh model.Mesh) error {
	live, ok := r.live[mesh.VertexArray]
	if !ok || live != mesh {
		return fmt.Errorf("mesh %q: %w", mesh.Name, ErrUnknownMesh)
	}
	delete(r.live, mesh.VertexArray)
	return r.backend.FreeMesh(mesh)
}

func (r *renderer) LiveMeshes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}

	if len(r.live) > 0 {
		logx.PrintlnWarn("renderer: releasing", len(r.live), "meshes that were never freed")
	}
	for _, mesh := range r.live {
		if err := r.freeMesh(mesh); err != nil {
			logx.PrintlnError("renderer:", err)
		}
	}
	r.backend.Release()
	r.released = true
}
