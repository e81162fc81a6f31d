package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLContext is the subset of the OpenGL API used by the GL renderer backend. Each method has the
// signature of the go-gl function of the same name. Calls must happen on the thread that owns the
// current context.
type GLContext interface {
	GenVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	DeleteVertexArrays(n int32, arrays *uint32)

	GenBuffers(n int32, buffers *uint32)
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	DeleteBuffers(n int32, buffers *uint32)

	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, pointer unsafe.Pointer)
	EnableVertexAttribArray(index uint32)

	PolygonMode(face uint32, mode uint32)
	DrawElements(mode uint32, count int32, xtype uint32, indices unsafe.Pointer)

	GetError() uint32
}

// goGLContext forwards every call to go-gl.
type goGLContext struct{}

var _ GLContext = goGLContext{}

// NewGLContext loads the OpenGL function pointers for the context current on the calling thread
// and returns a GLContext backed by them.
//
// Returns:
//   - GLContext: the go-gl backed context
//   - error: error if the OpenGL bindings could not be initialized
func NewGLContext() (GLContext, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}
	return goGLContext{}, nil
}

func (goGLContext) GenVertexArrays(n int32, arrays *uint32)    { gl.GenVertexArrays(n, arrays) }
func (goGLContext) BindVertexArray(array uint32)               { gl.BindVertexArray(array) }
func (goGLContext) DeleteVertexArrays(n int32, arrays *uint32) { gl.DeleteVertexArrays(n, arrays) }
func (goGLContext) GenBuffers(n int32, buffers *uint32)        { gl.GenBuffers(n, buffers) }
func (goGLContext) BindBuffer(target uint32, buffer uint32)    { gl.BindBuffer(target, buffer) }
func (goGLContext) DeleteBuffers(n int32, buffers *uint32)     { gl.DeleteBuffers(n, buffers) }
func (goGLContext) EnableVertexAttribArray(index uint32)       { gl.EnableVertexAttribArray(index) }
func (goGLContext) PolygonMode(face uint32, mode uint32)       { gl.PolygonMode(face, mode) }
func (goGLContext) GetError() uint32                           { return gl.GetError() }

func (goGLContext) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (goGLContext) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, pointer unsafe.Pointer) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, pointer)
}

func (goGLContext) DrawElements(mode uint32, count int32, xtype uint32, indices unsafe.Pointer) {
	gl.DrawElements(mode, count, xtype, indices)
}

// GLError reports a non-zero OpenGL error code raised by an operation.
type GLError struct {
	// Op names the operation that raised the error.
	Op string

	// Code is the value returned by glGetError.
	Code uint32
}

func (e *GLError) Error() string {
	return fmt.Sprintf("%s: OpenGL error %s (0x%04X)", e.Op, glErrorName(e.Code), e.Code)
}

func glErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return "unknown"
	}
}

// drainGLErrors reads glGetError until it reports no error and returns the first code seen.
// OpenGL may queue several error flags; leaving any behind would blame the next operation.
func drainGLErrors(ctx GLContext) uint32 {
	first := uint32(gl.NO_ERROR)
	for i := 0; i < 16; i++ {
		code := ctx.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == gl.NO_ERROR {
			first = code
		}
	}
	return first
}
