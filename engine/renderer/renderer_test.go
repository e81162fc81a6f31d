package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleGeometry(name string) geometry.Geometry {
	return geometry.Geometry{
		Name:      name,
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		TexCoords: []float32{0, 1, 1, 1, 0, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:   []uint32{0, 1, 2},
	}
}

func newTestRenderer(t *testing.T) (Renderer, *fakeGL) {
	t.Helper()
	fake := newFakeGL()
	r, err := NewRenderer(BackendTypeGL, WithGLContext(fake))
	require.NoError(t, err)
	return r, fake
}

func TestGLBuildMeshLayout(t *testing.T) {
	r, fake := newTestRenderer(t)
	g := triangleGeometry("tri")

	mesh, err := r.BuildMesh(g)
	require.NoError(t, err)

	assert.Equal(t, "tri", mesh.Name)
	assert.Equal(t, int32(3), mesh.IndexCount)
	for _, h := range mesh.Handles() {
		assert.NotZero(t, h)
	}

	vao, ok := fake.vaos[uint32(mesh.VertexArray)]
	require.True(t, ok)

	for _, tc := range []struct {
		slot   uint32
		buffer int
		size   int32
		data   []float32
	}{
		{AttribPosition, model.BufferPosition, 3, g.Positions},
		{AttribTexCoord, model.BufferTexCoord, 2, g.TexCoords},
		{AttribNormal, model.BufferNormal, 3, g.Normals},
	} {
		attrib, ok := vao.attribs[tc.slot]
		require.True(t, ok, "slot %d", tc.slot)
		assert.True(t, vao.enabled[tc.slot], "slot %d", tc.slot)
		assert.Equal(t, uint32(mesh.Buffers[tc.buffer]), attrib.buffer)
		assert.Equal(t, tc.size, attrib.size)
		assert.Equal(t, uint32(gl.FLOAT), attrib.xtype)
		assert.Equal(t, common.SliceToBytes(tc.data), fake.buffers[attrib.buffer])
	}

	assert.Equal(t, uint32(mesh.Buffers[model.BufferIndex]), vao.element)
	assert.Equal(t, common.SliceToBytes(g.Indices), fake.buffers[vao.element])

	assert.Zero(t, fake.boundVAO)
	assert.Zero(t, fake.boundArray)
	assert.Equal(t, 1, r.LiveMeshes())
}

func TestGLBuildMeshIgnoresStaleErrors(t *testing.T) {
	r, fake := newTestRenderer(t)
	fake.errs = []uint32{gl.INVALID_ENUM}

	_, err := r.BuildMesh(triangleGeometry("tri"))
	require.NoError(t, err)
}

func TestGLBuildMeshErrorFreesObjects(t *testing.T) {
	r, fake := newTestRenderer(t)
	fake.failOn = "BufferData"

	_, err := r.BuildMesh(triangleGeometry("tri"))
	require.Error(t, err)

	var glErr *GLError
	require.ErrorAs(t, err, &glErr)
	assert.Equal(t, uint32(gl.OUT_OF_MEMORY), glErr.Code)
	assert.Equal(t, "build mesh tri: OpenGL error GL_OUT_OF_MEMORY (0x0505)", glErr.Error())

	assert.Empty(t, fake.vaos)
	assert.Empty(t, fake.buffers)
	assert.Len(t, fake.deletedVAOs, 1)
	assert.Len(t, fake.deletedBuffers, model.BufferCount)
	assert.Zero(t, r.LiveMeshes())
}

func TestGLBuildMeshZeroNames(t *testing.T) {
	r, fake := newTestRenderer(t)
	fake.zeroNames = true

	_, err := r.BuildMesh(triangleGeometry("tri"))
	assert.ErrorContains(t, err, "zero object name")
	assert.Zero(t, r.LiveMeshes())
}

func TestBuildMeshRejectsMalformedGeometry(t *testing.T) {
	r, fake := newTestRenderer(t)
	g := triangleGeometry("bad")
	g.Indices = []uint32{0, 1, 7}

	_, err := r.BuildMesh(g)
	require.Error(t, err)

	var meshErr *geometry.MeshError
	require.ErrorAs(t, err, &meshErr)
	assert.Equal(t, "bad", meshErr.Mesh)
	assert.Empty(t, fake.vaos, "no GL objects may be created for rejected geometry")
}

func TestGLDrawModel(t *testing.T) {
	r, fake := newTestRenderer(t)

	a, err := r.BuildMesh(triangleGeometry("a"))
	require.NoError(t, err)
	b, err := r.BuildMesh(triangleGeometry("b"))
	require.NoError(t, err)
	m := model.NewModel(model.WithPath("two.glb"), model.WithMeshes(a, b))

	require.NoError(t, r.DrawModel(m, false))
	assert.Equal(t, []uint32{gl.FILL}, fake.polygonModes)
	assert.Equal(t, []fakeDraw{
		{vao: uint32(a.VertexArray), count: 3},
		{vao: uint32(b.VertexArray), count: 3},
	}, fake.draws)

	fake.polygonModes = nil
	require.NoError(t, r.DrawModel(m, true))
	assert.Equal(t, []uint32{gl.LINE, gl.FILL}, fake.polygonModes)
	assert.Zero(t, fake.boundVAO)

	fake.failOn = "DrawElements"
	err = r.DrawModel(m, false)
	var glErr *GLError
	assert.ErrorAs(t, err, &glErr)
}

func TestFreeModel(t *testing.T) {
	r, fake := newTestRenderer(t)

	a, err := r.BuildMesh(triangleGeometry("a"))
	require.NoError(t, err)
	b, err := r.BuildMesh(triangleGeometry("b"))
	require.NoError(t, err)
	m := model.NewModel(model.WithPath("two.glb"), model.WithMeshes(a, b))

	require.NoError(t, r.FreeModel(m))
	assert.Empty(t, fake.vaos)
	assert.Empty(t, fake.buffers)
	assert.ElementsMatch(t, []uint32{uint32(a.VertexArray), uint32(b.VertexArray)}, fake.deletedVAOs)
	assert.Len(t, fake.deletedBuffers, 2*model.BufferCount)
	assert.Zero(t, r.LiveMeshes())

	assert.ErrorIs(t, r.FreeModel(m), ErrUnknownMesh)
	assert.ErrorIs(t, r.DrawModel(m, false), ErrUnknownMesh)
	assert.Len(t, fake.deletedVAOs, 2, "a double free must not reach the driver")
}

func TestFreeMeshUnknown(t *testing.T) {
	r, _ := newTestRenderer(t)
	assert.ErrorIs(t, r.FreeMesh(model.Mesh{Name: "ghost", VertexArray: 42}), ErrUnknownMesh)
}

func TestRelease(t *testing.T) {
	r, fake := newTestRenderer(t)

	mesh, err := r.BuildMesh(triangleGeometry("leak"))
	require.NoError(t, err)

	r.Release()
	assert.Empty(t, fake.vaos)
	assert.Empty(t, fake.buffers)
	assert.Zero(t, r.LiveMeshes())

	_, err = r.BuildMesh(triangleGeometry("late"))
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, r.FreeMesh(mesh), ErrReleased)

	r.Release()
}

func TestNewRendererUnknownBackend(t *testing.T) {
	_, err := NewRenderer(RendererBackendType(99))
	assert.ErrorContains(t, err, "unsupported renderer backend: unknown")
}

func TestRendererBackendTypeString(t *testing.T) {
	assert.Equal(t, "gl", BackendTypeGL.String())
	assert.Equal(t, "wgpu", BackendTypeWGPU.String())
}

func TestWGPUVertexLayouts(t *testing.T) {
	layouts := WGPUVertexLayouts()
	require.Len(t, layouts, 3)

	expected := []struct {
		stride   uint64
		format   wgpu.VertexFormat
		location uint32
	}{
		{12, wgpu.VertexFormatFloat32x3, AttribPosition},
		{8, wgpu.VertexFormatFloat32x2, AttribTexCoord},
		{12, wgpu.VertexFormatFloat32x3, AttribNormal},
	}
	for i, want := range expected {
		assert.Equal(t, want.stride, layouts[i].ArrayStride, "layout %d", i)
		assert.Equal(t, wgpu.VertexStepModeVertex, layouts[i].StepMode, "layout %d", i)
		require.Len(t, layouts[i].Attributes, 1)
		assert.Equal(t, want.format, layouts[i].Attributes[0].Format, "layout %d", i)
		assert.Equal(t, want.location, layouts[i].Attributes[0].ShaderLocation, "layout %d", i)
		assert.Zero(t, layouts[i].Attributes[0].Offset, "layout %d", i)
	}
}

func TestWGPUBuildMesh(t *testing.T) {
	r, err := NewRenderer(BackendTypeWGPU)
	if err != nil {
		t.Skipf("no WebGPU adapter: %v", err)
	}
	defer r.Release()

	a, err := r.BuildMesh(triangleGeometry("a"))
	require.NoError(t, err)
	b, err := r.BuildMesh(triangleGeometry("b"))
	require.NoError(t, err)

	seen := map[model.Handle]bool{}
	for _, h := range append(a.Handles(), b.Handles()...) {
		assert.NotZero(t, h)
		assert.False(t, seen[h], "handle %d reused", h)
		seen[h] = true
	}

	m := model.NewModel(model.WithPath("two.glb"), model.WithMeshes(a, b))
	assert.ErrorIs(t, r.DrawModel(m, false), ErrDrawUnsupported)
	require.NoError(t, r.FreeModel(m))
	assert.Zero(t, r.LiveMeshes())
}
