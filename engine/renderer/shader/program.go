package shader

import (
	"strings"

	"cogentcore.org/core/base/logx"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// program is the implementation of the Program interface.
type program struct {
	id             uint32
	vertexShader   uint32
	fragmentShader uint32

	// uniforms caches the location of every uniform declared by either stage. Uniforms the
	// driver optimized out map to -1, which GL ignores on upload.
	uniforms map[string]int32
}

// Program is a linked GL program built from a vertex and a fragment Shader.
// All methods must be called on the thread owning the GL context.
type Program interface {
	// ID returns the GL program name.
	//
	// Returns:
	//   - uint32: the program name
	ID() uint32

	// Use makes the program current for subsequent draws.
	Use()

	// SetMat4 uploads a 4x4 matrix uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - m: the matrix value
	SetMat4(name string, m mgl32.Mat4)

	// SetVec3 uploads a vec3 uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the vector value
	SetVec3(name string, v mgl32.Vec3)

	// SetInt uploads an int uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the int value
	SetInt(name string, v int32)

	// Delete detaches and deletes the shaders and the program.
	Delete()
}

var _ Program = &program{}

// NewProgram compiles both shaders and links them into a program. The vertex shader must pass
// CheckMeshInputs. Must be called with a current GL context.
//
// Parameters:
//   - vertex: the vertex shader
//   - fragment: the fragment shader
//
// Returns:
//   - Program: the linked program
//   - error: error carrying the driver's info log if compilation or linking failed
func NewProgram(vertex, fragment Shader) (Program, error) {
	if err := CheckMeshInputs(vertex); err != nil {
		return nil, err
	}
	if fragment.ShaderType() != ShaderTypeFragment {
		return nil, errors.Errorf("shader %s: expected a fragment shader, got %s", fragment.Key(), fragment.ShaderType())
	}

	p := &program{uniforms: make(map[string]int32)}

	vs, err := compileShader(gl.VERTEX_SHADER, vertex.Source())
	if err != nil {
		return nil, errors.Wrapf(err, "vertex shader %s", vertex.Key())
	}
	p.vertexShader = vs

	fs, err := compileShader(gl.FRAGMENT_SHADER, fragment.Source())
	if err != nil {
		gl.DeleteShader(p.vertexShader)
		return nil, errors.Wrapf(err, "fragment shader %s", fragment.Key())
	}
	p.fragmentShader = fs

	p.id = gl.CreateProgram()
	gl.AttachShader(p.id, p.vertexShader)
	gl.AttachShader(p.id, p.fragmentShader)
	gl.LinkProgram(p.id)

	var isLinked int32
	gl.GetProgramiv(p.id, gl.LINK_STATUS, &isLinked)
	if isLinked == gl.FALSE {
		var logSize int32
		gl.GetProgramiv(p.id, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetProgramInfoLog(p.id, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])

		p.Delete()
		return nil, errors.Errorf("failed to link program %s+%s: %q", vertex.Key(), fragment.Key(), errString)
	}

	for _, u := range append(vertex.Uniforms(), fragment.Uniforms()...) {
		if _, ok := p.uniforms[u.Name]; ok {
			continue
		}
		loc := gl.GetUniformLocation(p.id, gl.Str(u.Name+"\x00"))
		if loc < 0 {
			logx.PrintlnDebug("shader: uniform", u.Name, "is inactive in program", vertex.Key()+"+"+fragment.Key())
		}
		p.uniforms[u.Name] = loc
	}

	return p, nil
}

func compileShader(xtype uint32, text string) (uint32, error) {
	shader := gl.CreateShader(xtype)
	csource, free := gl.Strs(text + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logSize int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetShaderInfoLog(shader, int32(len(buf)), &logSize, &buf[0])
		errString := strings.TrimSpace(string(buf[:logSize]))

		gl.DeleteShader(shader)
		return 0, errors.Errorf("failed to compile shader: %q", errString)
	}
	return shader, nil
}

func (p *program) ID() uint32 {
	return p.id
}

func (p *program) Use() {
	gl.UseProgram(p.id)
}

func (p *program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (p *program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

func (p *program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.location(name), v[0], v[1], v[2])
}

func (p *program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

func (p *program) Delete() {
	gl.DetachShader(p.id, p.vertexShader)
	gl.DetachShader(p.id, p.fragmentShader)
	gl.DeleteProgram(p.id)
	gl.DeleteShader(p.vertexShader)
	gl.DeleteShader(p.fragmentShader)
}
