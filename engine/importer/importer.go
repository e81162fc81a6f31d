package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/logx"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
)

var (
	// ErrPathNotFound is returned when the import path does not name a regular file.
	ErrPathNotFound = errors.New("path not found")

	// ErrImportFailure is returned when no decoder could produce a scene from the file.
	ErrImportFailure = errors.New("import failure")

	errEmptyScene = errors.New("scene contains no meshes")
)

// ImportError describes a failed import. Kind is one of ErrPathNotFound or ErrImportFailure,
// Err is the underlying cause when there is one. Both are visible to errors.Is and errors.As.
type ImportError struct {
	Path string
	Kind error
	Err  error
}

func (e *ImportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("import %s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("import %s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *ImportError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// importer is the implementation of the Importer interface.
type importer struct {
	postProcess PostProcess
	backends    map[BackendType]ImporterBackend
}

// Importer decodes model files into owned scene graphs.
// The decoder is selected from the file extension, falling back to content sniffing, and every
// decoded scene is run through the configured post-processing steps before it is returned.
type Importer interface {
	// Import decodes the file at path into a post-processed scene.
	//
	// Parameters:
	//   - path: the model file to decode
	//
	// Returns:
	//   - *scene.Scene: the decoded scene, owned by the caller
	//   - error: an *ImportError wrapping ErrPathNotFound or ErrImportFailure
	Import(path string) (*scene.Scene, error)

	// PostProcess returns the post-processing steps applied to every imported scene.
	//
	// Returns:
	//   - PostProcess: the post-process flag set
	PostProcess() PostProcess
}

var _ Importer = &importer{}

// NewImporter creates a new Importer with the glTF and OBJ backends registered and
// DefaultPostProcess enabled, then applies the given options.
//
// Parameters:
//   - options: a variadic list of ImporterBuilderOption functions to configure the Importer
//
// Returns:
//   - Importer: the configured importer
func NewImporter(options ...ImporterBuilderOption) Importer {
	i := &importer{
		postProcess: DefaultPostProcess,
		backends: map[BackendType]ImporterBackend{
			BackendTypeGLTF: newGLTFImporterBackend(),
			BackendTypeOBJ:  newOBJImporterBackend(),
		},
	}
	for _, opt := range options {
		opt(i)
	}
	return i
}

func (i *importer) PostProcess() PostProcess {
	return i.postProcess
}

func (i *importer) Import(path string) (*scene.Scene, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ImportError{Path: path, Kind: ErrPathNotFound, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &ImportError{Path: path, Kind: ErrPathNotFound, Err: fmt.Errorf("not a regular file (mode %s)", info.Mode())}
	}

	backendType, err := resolveBackendType(path)
	if err != nil {
		return nil, &ImportError{Path: path, Kind: ErrImportFailure, Err: err}
	}
	backend, ok := i.backends[backendType]
	if !ok {
		return nil, &ImportError{Path: path, Kind: ErrImportFailure, Err: fmt.Errorf("no decoder registered for %s", backendType)}
	}

	logx.PrintfDebug("importing %s with %s decoder\n", path, backendType)
	s, err := backend.Decode(path)
	if err != nil {
		return nil, &ImportError{Path: path, Kind: ErrImportFailure, Err: err}
	}
	if s == nil {
		return nil, &ImportError{Path: path, Kind: ErrImportFailure, Err: errors.New("decoder returned no scene")}
	}
	if err := s.Validate(); err != nil {
		return nil, &ImportError{Path: path, Kind: ErrImportFailure, Err: err}
	}
	if len(s.Meshes) == 0 {
		return nil, &ImportError{Path: path, Kind: ErrImportFailure, Err: errEmptyScene}
	}

	ApplyPostProcess(s, i.postProcess)
	logx.PrintfDebug("imported %s: %d meshes in table, %d referenced\n", path, len(s.Meshes), s.MeshCount())
	return s, nil
}

// glbMagic is the little-endian "glTF" header of a binary glTF container.
const glbMagic = "glTF"

// resolveBackendType selects a decoder from the file extension. Unknown extensions are
// sniffed for the binary glTF header before giving up.
func resolveBackendType(path string) (BackendType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return BackendTypeGLTF, nil
	case ".obj":
		return BackendTypeOBJ, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	header := make([]byte, len(glbMagic))
	if _, err := io.ReadFull(f, header); err == nil && string(header) == glbMagic {
		return BackendTypeGLTF, nil
	}
	return 0, fmt.Errorf("unsupported model format %q", ext)
}
