// pre_processor.go implements the Oxy GLSL shader pre-processor. It scans shader source
// code for @oxy: annotations and replaces them with the registered declaration blocks.
package shader

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed assets/vertex_inputs.glsl
var vertexInputsSource string

//go:embed assets/camera.glsl
var cameraSource string

//go:embed assets/light.glsl
var lightSource string

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// blockRegistry maps include keys to the GLSL text injected by @oxy:include.
	blockRegistry map[AnnotationArg]string

	// includes accumulates the blocks injected during a Process call, in source order.
	includes []AnnotationArg
}

// PreProcessor processes raw GLSL shader source code containing @oxy: annotations,
// replacing them with the registered declaration blocks.
type PreProcessor interface {
	// Process replaces every @oxy:include annotation with its registered block. Each block is
	// injected at most once per source; repeated includes are dropped.
	//
	// Parameters:
	//   - source: the raw GLSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed GLSL shader source code with annotations replaced
	//   - error: an error if any annotation is malformed or references an unknown block
	Process(source string) (string, error)

	// Includes returns the blocks injected by the most recent call to Process, in source order.
	//
	// Returns:
	//   - []AnnotationArg: the injected block keys
	Includes() []AnnotationArg
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with the engine's declaration blocks registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		blockRegistry: map[AnnotationArg]string{
			AnnotationArgVertexInputs: vertexInputsSource,
			AnnotationArgCamera:       cameraSource,
			AnnotationArgLight:        lightSource,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.includes = p.includes[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[AnnotationArg]bool)

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			key := a.Args[0]
			block, ok := p.blockRegistry[key]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, key)
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimRight(block, "\n"))
			p.includes = append(p.includes, key)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Includes() []AnnotationArg {
	return p.includes
}
