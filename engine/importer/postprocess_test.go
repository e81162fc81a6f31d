package importer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcessString(t *testing.T) {
	assert.Equal(t, "Triangulate|FlipUVs|OptimizeMeshes|GenNormals", DefaultPostProcess.String())
	assert.Equal(t, "None", PostProcess(0).String())
	assert.True(t, DefaultPostProcess.Has(FlipUVs|GenNormals))
	assert.False(t, Triangulate.Has(FlipUVs))
}

func TestTriangulate(t *testing.T) {
	m := &scene.Mesh{
		Positions: make([][3]float32, 6),
		Faces:     [][]uint32{{0, 1, 2, 3, 4}, {0, 1}, {5}, {3, 4, 5}},
	}
	triangulate(m)
	assert.Equal(t, [][]uint32{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {3, 4, 5}}, m.Faces)
}

func TestGenerateNormals(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 0}, {5, 5, 5}}
	faces := [][]uint32{{0, 1, 2}, {3, 3, 3}, {0, 1, 9}}

	normals := generateNormals(positions, faces)
	require.Len(t, normals, len(positions))
	for i := 0; i < 3; i++ {
		assert.InDeltaSlice(t, []float32{0, 0, 1}, normals[i][:], 1e-6)
	}
	assert.Equal(t, [3]float32{0, 1, 0}, normals[3])
	assert.Equal(t, [3]float32{0, 1, 0}, normals[4])
}

func TestGenerateNormalsAreaWeighted(t *testing.T) {
	// A large +Z triangle and a small +X triangle share vertex 0.
	positions := [][3]float32{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {0, 1, 0}, {0, 0, 1}}
	faces := [][]uint32{{0, 1, 2}, {0, 3, 4}}

	n := generateNormals(positions, faces)[0]
	assert.Greater(t, n[2], n[0])
	assert.Greater(t, n[0], float32(0))
}

func TestFlipUVs(t *testing.T) {
	m := &scene.Mesh{TexCoords: [][][2]float32{{{0.25, 0}, {0.5, 1}}, {{0, 0.5}}}}
	flipUVs(m)
	assert.Equal(t, [][][2]float32{{{0.25, 1}, {0.5, 0}}, {{0, 0.5}}}, m.TexCoords)
}

func triMesh(material int, offset float32) *scene.Mesh {
	return &scene.Mesh{
		Positions:     [][3]float32{{offset, 0, 0}, {offset + 1, 0, 0}, {offset, 1, 0}},
		Normals:       [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Faces:         [][]uint32{{0, 1, 2}},
		MaterialIndex: material,
	}
}

func TestOptimizeMeshesMergesWithinNode(t *testing.T) {
	s := &scene.Scene{
		Root: scene.NewNode("root",
			scene.WithMeshes(0, 1, 2),
			scene.WithChildren(scene.NewNode("child", scene.WithMeshes(3))),
		),
		Meshes: []*scene.Mesh{triMesh(0, 0), triMesh(1, 10), triMesh(0, 20), triMesh(0, 30), triMesh(0, 40)},
	}

	optimizeMeshes(s)

	require.Len(t, s.Meshes, 3)
	assert.Equal(t, []int{0, 1}, s.Root.Meshes)
	assert.Equal(t, []int{2}, s.Root.Children[0].Meshes)

	merged := s.Meshes[0]
	assert.Equal(t, 6, merged.VertexCount())
	assert.Len(t, merged.Normals, 6)
	assert.Equal(t, [][]uint32{{0, 1, 2}, {3, 4, 5}}, merged.Faces)
	assert.Equal(t, [3]float32{20, 0, 0}, merged.Positions[3])
	assert.Equal(t, float32(30), s.Meshes[2].Positions[0][0])
}

func TestOptimizeMeshesKeepsSharedMeshes(t *testing.T) {
	s := &scene.Scene{
		Root: scene.NewNode("root",
			scene.WithMeshes(0, 1),
			scene.WithChildren(scene.NewNode("child", scene.WithMeshes(0))),
		),
		Meshes: []*scene.Mesh{triMesh(0, 0), triMesh(0, 10)},
	}

	optimizeMeshes(s)

	require.Len(t, s.Meshes, 2)
	assert.Equal(t, []int{0, 1}, s.Root.Meshes)
	assert.Equal(t, []int{0}, s.Root.Children[0].Meshes)
	assert.Equal(t, 3, s.Meshes[0].VertexCount())
	assert.Equal(t, 3, s.MeshCount())
}
