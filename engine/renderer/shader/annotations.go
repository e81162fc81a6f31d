// annotations.go defines the annotation types and parser for the Oxy GLSL shader
// pre-processor. Annotations are single-line GLSL comments prefixed with @oxy: that pull
// shared declaration blocks into a shader, so that every shader agrees with the renderer
// on attribute slots and uniform names.
package shader

import (
	"fmt"
	"slices"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a GLSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a GLSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects a registered GLSL declaration block into the shader at the
	// annotation site. It is consumed entirely during pre-processing.
	//
	// Syntax: //@oxy:include <block>
	//
	// Example: //@oxy:include vertex_inputs
	annotationTypeInclude AnnotationType = "include"
)

// AnnotationArg is an argument of an annotation.
type AnnotationArg string

const (
	// AnnotationArgVertexInputs is the block declaring position, texcoord and normal inputs at
	// the attribute slots the renderer binds.
	AnnotationArgVertexInputs AnnotationArg = "vertex_inputs"

	// AnnotationArgCamera is the block declaring the projection, view and model matrices.
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgLight is the block declaring the directional light and eye position.
	AnnotationArgLight AnnotationArg = "light"
)

var validIncludeBlocks = []AnnotationArg{
	AnnotationArgVertexInputs,
	AnnotationArgCamera,
	AnnotationArgLight,
}

// Annotation represents a single parsed @oxy: annotation from a GLSL shader source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments. For include, [0] is the block key.
	Args []AnnotationArg

	// Line is the 1-based source line the annotation was found on.
	Line int
}

// parseAnnotation parses a single line of GLSL source as an @oxy annotation.
// Lines that are not annotations return nil with no error.
//
// Parameters:
//   - line: the raw source line
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	comment, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	after, ok := strings.CutPrefix(strings.TrimSpace(comment), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validIncludeBlocks, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown block %q in @oxy include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown annotation type %q", lineNum, args[0])
	}
}
