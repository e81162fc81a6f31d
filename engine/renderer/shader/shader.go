package shader

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
)

//go:embed assets/phong.vert
var phongVertexSource string

//go:embed assets/phong.frag
var phongFragmentSource string

// ShaderType identifies the pipeline stage a shader runs in.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// shader is the implementation of the Shader interface.
// It holds the pre-processed source and the declarations parsed from it.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	inputs     []VertexInput
	uniforms   []Uniform
	includes   []AnnotationArg
}

// Shader defines the interface for a loaded and pre-processed GLSL shader. It exposes the
// shader's key, processed source, vertex inputs and uniforms so that programs can be linked
// and checked against the attribute slots the renderer binds.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used in error messages and logs.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed GLSL source code.
	//
	// Returns:
	//   - string: the GLSL source code of the shader
	Source() string

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Inputs returns the vertex inputs declared with explicit locations, sorted by location.
	// Fragment shaders return nil.
	//
	// Returns:
	//   - []VertexInput: the declared vertex inputs
	Inputs() []VertexInput

	// Uniforms returns the global uniforms declared by the shader in source order.
	//
	// Returns:
	//   - []Uniform: the declared uniforms
	Uniforms() []Uniform

	// Includes returns the @oxy:include blocks injected into the source.
	//
	// Returns:
	//   - []AnnotationArg: the included block keys
	Includes() []AnnotationArg
}

var _ Shader = &shader{}

// NewShader creates a new Shader from a GLSL source file.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage of the shader
//   - sourcePath: the file path to read GLSL source from
//
// Returns:
//   - Shader: the pre-processed shader
//   - error: error if the file cannot be read or pre-processing fails
func NewShader(key string, shaderType ShaderType, sourcePath string) (Shader, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to read source file %q: %w", key, sourcePath, err)
	}
	return NewShaderFromSource(key, shaderType, string(data))
}

// NewShaderFromSource creates a new Shader from GLSL source text.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage of the shader
//   - source: the raw GLSL source, possibly containing @oxy annotations
//
// Returns:
//   - Shader: the pre-processed shader
//   - error: error if pre-processing fails
func NewShaderFromSource(key string, shaderType ShaderType, source string) (Shader, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to pre-process source: %w", key, err)
	}

	s := &shader{
		key:        key,
		source:     processed,
		shaderType: shaderType,
		uniforms:   parseUniforms(processed),
		includes:   append([]AnnotationArg(nil), pp.Includes()...),
	}
	if shaderType == ShaderTypeVertex {
		s.inputs = parseVertexInputs(processed)
	}
	return s, nil
}

// DefaultShaders returns the built-in Phong vertex and fragment shaders.
//
// Returns:
//   - Shader: the vertex shader
//   - Shader: the fragment shader
func DefaultShaders() (Shader, Shader) {
	vs, err := NewShaderFromSource("phong.vert", ShaderTypeVertex, phongVertexSource)
	if err != nil {
		panic(err)
	}
	fs, err := NewShaderFromSource("phong.frag", ShaderTypeFragment, phongFragmentSource)
	if err != nil {
		panic(err)
	}
	return vs, fs
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Inputs() []VertexInput {
	return s.inputs
}

func (s *shader) Uniforms() []Uniform {
	return s.uniforms
}

func (s *shader) Includes() []AnnotationArg {
	return s.includes
}

// meshSlots lists the attribute slots the renderer fills and their component counts.
var meshSlots = []struct {
	name       string
	location   uint32
	components int32
}{
	{"position", renderer.AttribPosition, geometry.PositionComponents},
	{"texcoord", renderer.AttribTexCoord, geometry.TexCoordComponents},
	{"normal", renderer.AttribNormal, geometry.NormalComponents},
}

// CheckMeshInputs verifies that a vertex shader reads meshes the way the renderer uploads
// them: a position input at slot 0 is required, and any input declared at the texcoord or
// normal slot must have the matching component count.
//
// Parameters:
//   - s: the vertex shader to check
//
// Returns:
//   - error: error describing the first mismatch, or nil
func CheckMeshInputs(s Shader) error {
	if s.ShaderType() != ShaderTypeVertex {
		return fmt.Errorf("shader %s: expected a vertex shader, got %s", s.Key(), s.ShaderType())
	}

	byLocation := make(map[uint32]VertexInput, len(s.Inputs()))
	for _, in := range s.Inputs() {
		byLocation[in.Location] = in
	}

	for i, slot := range meshSlots {
		in, ok := byLocation[slot.location]
		if !ok {
			if i == 0 {
				return fmt.Errorf("shader %s: no %s input at location %d", s.Key(), slot.name, slot.location)
			}
			continue
		}
		if in.Components() != slot.components {
			return fmt.Errorf("shader %s: %s input %q at location %d is %s, expected %d components",
				s.Key(), slot.name, in.Name, slot.location, in.Type, slot.components)
		}
	}
	return nil
}
