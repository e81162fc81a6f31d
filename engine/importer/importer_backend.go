package importer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
)

// BackendType identifies the model file format decoder to use.
type BackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB decoder.
	BackendTypeGLTF BackendType = iota

	// BackendTypeOBJ selects the Wavefront OBJ decoder.
	BackendTypeOBJ
)

func (b BackendType) String() string {
	switch b {
	case BackendTypeGLTF:
		return "gltf"
	case BackendTypeOBJ:
		return "obj"
	default:
		return "unknown"
	}
}

// ImporterBackend decodes one file format into a scene graph.
// Decoders copy everything they need into the returned scene and release their own
// resources before returning.
type ImporterBackend interface {
	// Decode reads the file at path and converts it into a scene.
	// No post-processing is applied by the backend.
	//
	// Parameters:
	//   - path: the file to decode
	//
	// Returns:
	//   - *scene.Scene: the decoded scene
	//   - error: error if the file cannot be decoded
	Decode(path string) (*scene.Scene, error)
}
