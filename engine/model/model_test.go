package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewModel(t *testing.T) {
	a := Mesh{Name: "a", VertexArray: 1, Buffers: [BufferCount]Handle{2, 3, 4, 5}, IndexCount: 6}
	b := Mesh{Name: "b", VertexArray: 6, Buffers: [BufferCount]Handle{7, 8, 9, 10}, IndexCount: 3}

	m := NewModel(WithPath("models/cube.glb"), WithMeshes(a), WithMeshes(b))

	assert.Equal(t, "models/cube.glb", m.Path())
	assert.Equal(t, 2, m.MeshCount())
	assert.Equal(t, 9, m.IndexCount())
	assert.Equal(t, []Mesh{a, b}, m.Meshes())
}

func TestMeshesReturnsCopy(t *testing.T) {
	m := NewModel(WithMeshes(Mesh{Name: "a", IndexCount: 3}))
	meshes := m.Meshes()
	meshes[0].IndexCount = 99
	assert.Equal(t, int32(3), m.Meshes()[0].IndexCount)
}

func TestMeshHandles(t *testing.T) {
	mesh := Mesh{VertexArray: 1, Buffers: [BufferCount]Handle{2, 3, 4, 5}}
	assert.Equal(t, []Handle{1, 2, 3, 4, 5}, mesh.Handles())
}
