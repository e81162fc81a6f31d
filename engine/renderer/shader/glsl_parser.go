package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	vertexInputRegex = regexp.MustCompile(`layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*in\s+(\w+)\s+(\w+)\s*;`)
	uniformRegex     = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
)

// glslComponents maps GLSL attribute types to their float component counts.
var glslComponents = map[string]int32{
	"float": 1,
	"vec2":  2,
	"vec3":  3,
	"vec4":  4,
}

// VertexInput is a vertex shader input declared with an explicit attribute location.
type VertexInput struct {
	Location uint32
	Type     string
	Name     string
}

// Components returns the number of float components of the input type, or 0 for
// non-float types.
func (v VertexInput) Components() int32 {
	return glslComponents[v.Type]
}

// Uniform is a uniform declared at global scope.
type Uniform struct {
	Type string
	Name string
}

// parseVertexInputs extracts all `layout(location = N) in type name;` declarations,
// sorted by location.
//
// Parameters:
//   - source: pre-processed GLSL source
//
// Returns:
//   - []VertexInput: the declared inputs
func parseVertexInputs(source string) []VertexInput {
	cleaned := stripComments(source)
	var inputs []VertexInput
	for _, m := range vertexInputRegex.FindAllStringSubmatch(cleaned, -1) {
		loc, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			continue
		}
		inputs = append(inputs, VertexInput{Location: uint32(loc), Type: m[2], Name: m[3]})
	}
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Location < inputs[j].Location })
	return inputs
}

// parseUniforms extracts all global uniform declarations in source order.
//
// Parameters:
//   - source: pre-processed GLSL source
//
// Returns:
//   - []Uniform: the declared uniforms
func parseUniforms(source string) []Uniform {
	cleaned := stripComments(source)
	var uniforms []Uniform
	for _, m := range uniformRegex.FindAllStringSubmatch(cleaned, -1) {
		uniforms = append(uniforms, Uniform{Type: m[1], Name: m[2]})
	}
	return uniforms
}

// stripComments removes all comments from GLSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments from GLSL source so they
// do not interfere with declaration parsing
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes block comments (/* ... */) from GLSL source. GLSL block
// comments do not nest.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	inComment := false
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			if !inComment && source[i] == '/' && source[i+1] == '*' {
				inComment = true
				i++
				continue
			}
			if inComment && source[i] == '*' && source[i+1] == '/' {
				inComment = false
				i++
				continue
			}
		}
		// Keep line breaks so line numbers in driver logs stay meaningful.
		if !inComment || source[i] == '\n' {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
