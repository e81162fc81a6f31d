package renderer

import (
	"errors"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex attribute slots bound by BuildMesh. Shaders declare their inputs at these locations.
const (
	// AttribPosition is the attribute slot holding vec3 positions.
	AttribPosition uint32 = 0

	// AttribTexCoord is the attribute slot holding vec2 texture coordinates.
	AttribTexCoord uint32 = 1

	// AttribNormal is the attribute slot holding vec3 normals.
	AttribNormal uint32 = 2
)

type glRendererBackendImpl struct {
	gl GLContext
}

var _ RendererBackend = &glRendererBackendImpl{}

// newGLRendererBackend creates the OpenGL backend on top of the given context.
//
// Parameters:
//   - ctx: the GL entry points; the caller keeps the underlying context current
//
// Returns:
//   - RendererBackend: the OpenGL backend
func newGLRendererBackend(ctx GLContext) RendererBackend {
	return &glRendererBackendImpl{gl: ctx}
}

func (b *glRendererBackendImpl) BuildMesh(g geometry.Geometry) (model.Mesh, error) {
	// Clear stale flags so the check below only reports errors raised by this upload.
	drainGLErrors(b.gl)

	var vao uint32
	b.gl.GenVertexArrays(1, &vao)
	b.gl.BindVertexArray(vao)

	var buffers [model.BufferCount]uint32
	b.gl.GenBuffers(model.BufferCount, &buffers[0])

	b.uploadAttribute(buffers[model.BufferPosition], AttribPosition, geometry.PositionComponents, g.Positions)
	b.uploadAttribute(buffers[model.BufferTexCoord], AttribTexCoord, geometry.TexCoordComponents, g.TexCoords)
	b.uploadAttribute(buffers[model.BufferNormal], AttribNormal, geometry.NormalComponents, g.Normals)

	// The element buffer binding is recorded in the vertex array, so it stays bound until the
	// vertex array itself is unbound.
	b.gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buffers[model.BufferIndex])
	b.bufferData(gl.ELEMENT_ARRAY_BUFFER, common.SliceToBytes(g.Indices))

	b.gl.BindVertexArray(0)
	b.gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	mesh := model.Mesh{
		Name:        g.Name,
		VertexArray: model.Handle(vao),
		IndexCount:  int32(len(g.Indices)),
	}
	for i, buf := range buffers {
		mesh.Buffers[i] = model.Handle(buf)
	}

	if code := drainGLErrors(b.gl); code != gl.NO_ERROR {
		b.deleteMesh(mesh)
		return model.Mesh{}, &GLError{Op: "build mesh " + g.Name, Code: code}
	}
	for _, h := range mesh.Handles() {
		if h == 0 {
			b.deleteMesh(mesh)
			return model.Mesh{}, errors.New("build mesh " + g.Name + ": OpenGL returned a zero object name (is a context current?)")
		}
	}
	return mesh, nil
}

// uploadAttribute fills a vertex buffer with static float data and binds it to an attribute slot
// with tightly packed float components.
func (b *glRendererBackendImpl) uploadAttribute(buffer, slot uint32, components int32, data []float32) {
	b.gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	b.bufferData(gl.ARRAY_BUFFER, common.SliceToBytes(data))
	b.gl.VertexAttribPointer(slot, components, gl.FLOAT, false, 0, nil)
	b.gl.EnableVertexAttribArray(slot)
}

func (b *glRendererBackendImpl) bufferData(target uint32, data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	b.gl.BufferData(target, len(data), ptr, gl.STATIC_DRAW)
}

func (b *glRendererBackendImpl) DrawMeshes(meshes []model.Mesh, wireframe bool) error {
	if wireframe {
		b.gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		b.gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	for _, mesh := range meshes {
		b.gl.BindVertexArray(uint32(mesh.VertexArray))
		b.gl.DrawElements(gl.TRIANGLES, mesh.IndexCount, gl.UNSIGNED_INT, nil)
	}
	b.gl.BindVertexArray(0)

	if wireframe {
		b.gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if code := drainGLErrors(b.gl); code != gl.NO_ERROR {
		return &GLError{Op: "draw", Code: code}
	}
	return nil
}

func (b *glRendererBackendImpl) FreeMesh(mesh model.Mesh) error {
	b.deleteMesh(mesh)
	if code := drainGLErrors(b.gl); code != gl.NO_ERROR {
		return &GLError{Op: "free mesh " + mesh.Name, Code: code}
	}
	return nil
}

func (b *glRendererBackendImpl) deleteMesh(mesh model.Mesh) {
	vao := uint32(mesh.VertexArray)
	if vao != 0 {
		b.gl.DeleteVertexArrays(1, &vao)
	}
	var buffers [model.BufferCount]uint32
	for i, h := range mesh.Buffers {
		buffers[i] = uint32(h)
	}
	b.gl.DeleteBuffers(model.BufferCount, &buffers[0])
}

func (b *glRendererBackendImpl) Release() {}
