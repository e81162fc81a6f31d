package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultShaders(t *testing.T) {
	vs, fs := DefaultShaders()

	assert.Equal(t, ShaderTypeVertex, vs.ShaderType())
	assert.Equal(t, ShaderTypeFragment, fs.ShaderType())
	assert.NotContains(t, vs.Source(), annotationPrefix)
	assert.NotContains(t, fs.Source(), annotationPrefix)

	assert.Equal(t, []VertexInput{
		{Location: 0, Type: "vec3", Name: "aPosition"},
		{Location: 1, Type: "vec2", Name: "aTexCoord"},
		{Location: 2, Type: "vec3", Name: "aNormal"},
	}, vs.Inputs())
	assert.NoError(t, CheckMeshInputs(vs))

	var names []string
	for _, u := range vs.Uniforms() {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"uProjection", "uView", "uModel"}, names)
	assert.Equal(t, []AnnotationArg{AnnotationArgVertexInputs, AnnotationArgCamera}, vs.Includes())

	assert.Nil(t, fs.Inputs())
	assert.Contains(t, fs.Uniforms(), Uniform{Type: "vec3", Name: "uLightDir"})
	assert.Contains(t, fs.Uniforms(), Uniform{Type: "int", Name: "uShowTexCoords"})
}

func TestPreProcessorIncludesOnce(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@oxy:include camera\n// @oxy:include camera\nvoid main() {}")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "uniform mat4 uView;"))
	assert.Equal(t, []AnnotationArg{AnnotationArgCamera}, pp.Includes())
}

func TestPreProcessorErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		source string
		want   string
	}{
		{"unknown block", "//@oxy:include textures", `unknown block "textures"`},
		{"missing argument", "//@oxy:include", "exactly one argument"},
		{"empty", "//@oxy:", "empty @oxy annotation"},
		{"unknown type", "//@oxy:group 0 0 camera", `unknown annotation type "group"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPreProcessor().Process("#version 410 core\n" + tc.source)
			assert.ErrorContains(t, err, "line 2")
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestParseIgnoresComments(t *testing.T) {
	source := `#version 410 core
/* layout(location = 3) in vec4 aColor;
   uniform float uHidden; */
// uniform float uAlsoHidden;
layout ( location = 2 ) in vec3 aNormal;
layout(location=0) in vec3 aPosition;
uniform float uBones[4];
`
	inputs := parseVertexInputs(source)
	assert.Equal(t, []VertexInput{
		{Location: 0, Type: "vec3", Name: "aPosition"},
		{Location: 2, Type: "vec3", Name: "aNormal"},
	}, inputs)
	assert.Equal(t, []Uniform{{Type: "float", Name: "uBones"}}, parseUniforms(source))
}

func TestCheckMeshInputs(t *testing.T) {
	for _, tc := range []struct {
		name   string
		source string
		want   string
	}{
		{"position only", "layout(location = 0) in vec3 p;", ""},
		{"no position", "layout(location = 1) in vec2 uv;", "no position input at location 0"},
		{"wide texcoord", "layout(location = 0) in vec3 p;\nlayout(location = 1) in vec3 uv;", `texcoord input "uv" at location 1 is vec3`},
		{"int normal", "layout(location = 0) in vec3 p;\nlayout(location = 2) in ivec3 n;", "expected 3 components"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewShaderFromSource(tc.name, ShaderTypeVertex, tc.source)
			require.NoError(t, err)
			err = CheckMeshInputs(s)
			if tc.want == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.want)
			}
		})
	}

	_, fs := DefaultShaders()
	assert.ErrorContains(t, CheckMeshInputs(fs), "expected a vertex shader")
}

func TestNewShaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.vert")
	require.NoError(t, os.WriteFile(path, []byte("#version 410 core\n//@oxy:include vertex_inputs\nvoid main() {}\n"), 0o644))

	s, err := NewShader("flat", ShaderTypeVertex, path)
	require.NoError(t, err)
	assert.Len(t, s.Inputs(), 3)
	assert.Equal(t, "flat", s.Key())

	_, err = NewShader("missing", ShaderTypeVertex, filepath.Join(t.TempDir(), "missing.vert"))
	assert.ErrorContains(t, err, "failed to read source file")
}
