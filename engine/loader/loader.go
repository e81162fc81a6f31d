package loader

import (
	"errors"
	"fmt"
	"sync"

	"cogentcore.org/core/base/logx"
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/importer"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
)

// ErrNoRenderer is returned by Load and Free when the Loader was built without a Renderer.
var ErrNoRenderer = errors.New("loader has no renderer")

// loader is the implementation of the Loader interface.
type loader struct {
	renderer renderer.Renderer
	importer importer.Importer

	flattenOptions []geometry.FlattenOption

	inspectWorkers int
	poolOnce       sync.Once
	pool           worker.DynamicWorkerPool
}

// Loader defines the public-facing interface for turning model files into GPU-resident models.
// Every load runs the same pipeline: import the file into a scene graph, flatten each mesh
// reference in pre-order into position/texcoord/normal/index arrays, and upload each array set
// as one mesh through the Renderer.
//
// Loads are synchronous and uncached: loading the same path twice produces two independent
// models with distinct GPU handles, each of which must be released with Free.
type Loader interface {
	// Load imports, flattens and uploads a model file.
	// If any mesh fails to upload, the meshes already uploaded for this call are freed and no
	// model is returned.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded model with one GPU mesh per scene mesh reference
	//   - error: an *importer.ImportError, a *geometry.MeshError or a renderer error
	Load(path string) (model.Model, error)

	// Upload uploads already flattened geometries as one model, with the same all-or-nothing
	// cleanup as Load. Load is Inspect followed by Upload.
	//
	// Parameters:
	//   - path: the source path recorded on the model
	//   - geometries: the flattened meshes, in traversal order
	//
	// Returns:
	//   - model.Model: the uploaded model
	//   - error: ErrNoRenderer or the first renderer error
	Upload(path string, geometries []geometry.Geometry) (model.Model, error)

	// Free releases every GPU object owned by a model returned from Load.
	//
	// Parameters:
	//   - m: the model to release
	//
	// Returns:
	//   - error: error if any mesh could not be released
	Free(m model.Model) error

	// Inspect imports and flattens a model file without touching the GPU.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - []geometry.Geometry: one flattened geometry per mesh reference, in traversal order
	//   - error: an *importer.ImportError or a *geometry.MeshError
	Inspect(path string) ([]geometry.Geometry, error)

	// InspectAll runs Inspect over many independent files on the loader's worker pool.
	// The pool is started by the first call and reused by every later one; its size is set
	// with WithInspectWorkers.
	//
	// Parameters:
	//   - paths: the files to inspect
	//
	// Returns:
	//   - []InspectResult: one result per path, in the order of paths
	InspectAll(paths []string) []InspectResult
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified options applied.
// Without WithImporter the Loader uses an importer with the default post-processing steps.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{inspectWorkers: defaultInspectWorkers}
	for _, option := range options {
		option(l)
	}
	if l.importer == nil {
		l.importer = importer.NewImporter()
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if l.renderer == nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, ErrNoRenderer)
	}

	geometries, err := l.Inspect(path)
	if err != nil {
		return nil, err
	}
	return l.Upload(path, geometries)
}

func (l *loader) Upload(path string, geometries []geometry.Geometry) (model.Model, error) {
	if l.renderer == nil {
		return nil, fmt.Errorf("failed to upload %s: %w", path, ErrNoRenderer)
	}

	meshes := make([]model.Mesh, 0, len(geometries))
	for _, g := range geometries {
		mesh, err := l.renderer.BuildMesh(g)
		if err != nil {
			l.freeMeshes(meshes)
			return nil, fmt.Errorf("failed to upload %s: %w", path, err)
		}
		meshes = append(meshes, mesh)
	}

	logx.PrintfDebug("loaded %s: %d meshes\n", path, len(meshes))
	return model.NewModel(
		model.WithPath(path),
		model.WithMeshes(meshes...),
	), nil
}

// freeMeshes releases the meshes of a partial load. Failures are logged since the upload error
// that triggered the cleanup is the one returned.
func (l *loader) freeMeshes(meshes []model.Mesh) {
	for _, mesh := range meshes {
		if err := l.renderer.FreeMesh(mesh); err != nil {
			logx.PrintlnError("loader: failed to free mesh", mesh.Name, "after upload error:", err)
		}
	}
}

func (l *loader) Free(m model.Model) error {
	if l.renderer == nil {
		return fmt.Errorf("failed to free %s: %w", m.Path(), ErrNoRenderer)
	}
	return l.renderer.FreeModel(m)
}

func (l *loader) Inspect(path string) ([]geometry.Geometry, error) {
	s, err := l.importer.Import(path)
	if err != nil {
		return nil, err
	}

	geometries, err := geometry.FlattenScene(s, l.flattenOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten %s: %w", path, err)
	}
	return geometries, nil
}
