package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addTriangleMesh appends a single-triangle mesh to doc and returns its mesh index.
func addTriangleMesh(doc *gltf.Document, name string, withUVs bool) uint32 {
	attrs := map[string]uint32{
		"POSITION": modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
	}
	if withUVs {
		attrs["TEXCOORD_0"] = modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 0.25}})
	}
	indices := modeler.WriteIndices(doc, []uint32{0, 1, 2})

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attrs,
		}},
	})
	return uint32(len(doc.Meshes) - 1)
}

func saveGLB(t *testing.T, doc *gltf.Document, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportPathNotFound(t *testing.T) {
	imp := NewImporter()

	_, err := imp.Import(filepath.Join(t.TempDir(), "missing.glb"))
	assert.ErrorIs(t, err, ErrPathNotFound)

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, ErrPathNotFound, importErr.Kind)

	_, err = imp.Import(t.TempDir())
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.NotErrorIs(t, err, ErrImportFailure)
}

func TestImportNonModelFile(t *testing.T) {
	imp := NewImporter()

	for _, tc := range []struct {
		name    string
		file    string
		content string
	}{
		{"unknown extension", "notes.txt", "just some notes\n"},
		{"broken gltf", "broken.gltf", "this is not json"},
		{"broken glb", "broken.glb", "glTF but truncated"},
		{"obj without geometry", "empty.obj", "# nothing to see here\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := imp.Import(writeFile(t, tc.file, tc.content))
			assert.ErrorIs(t, err, ErrImportFailure)
			assert.NotErrorIs(t, err, ErrPathNotFound)
		})
	}
}

func TestImportGLBTriangle(t *testing.T) {
	doc := gltf.NewDocument()
	mesh := addTriangleMesh(doc, "tri", true)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "tri", Mesh: gltf.Index(mesh)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	s, err := NewImporter().Import(saveGLB(t, doc, "tri.glb"))
	require.NoError(t, err)

	require.Len(t, s.Meshes, 1)
	assert.Equal(t, "tri", s.Root.Name)
	assert.Equal(t, []int{0}, s.Root.Meshes)

	m := s.Meshes[0]
	assert.Equal(t, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, m.Positions)
	assert.Equal(t, [][]uint32{{0, 1, 2}}, m.Faces)
	require.True(t, m.HasTexCoords(0))
	assert.Equal(t, [][2]float32{{0, 1}, {1, 1}, {0, 0.75}}, m.TexCoords[0])
	require.True(t, m.HasNormals())
	for _, n := range m.Normals {
		assert.InDeltaSlice(t, []float32{0, 0, 1}, n[:], 1e-6)
	}
}

func TestImportGLBHierarchy(t *testing.T) {
	doc := gltf.NewDocument()
	shared := addTriangleMesh(doc, "shared", false)
	single := addTriangleMesh(doc, "single", false)
	doc.Nodes = append(doc.Nodes,
		&gltf.Node{Name: "parent", Mesh: gltf.Index(shared), Children: []uint32{1, 2}},
		&gltf.Node{Name: "left", Mesh: gltf.Index(single)},
		&gltf.Node{Name: "right", Mesh: gltf.Index(shared)},
	)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	s, err := NewImporter().Import(saveGLB(t, doc, "tree.glb"))
	require.NoError(t, err)

	var names []string
	var refs [][]int
	require.NoError(t, s.Walk(func(n *scene.Node, _ int) error {
		names = append(names, n.Name)
		refs = append(refs, n.Meshes)
		return nil
	}))
	assert.Equal(t, []string{"parent", "left", "right"}, names)
	assert.Equal(t, [][]int{{0}, {1}, {0}}, refs)
	assert.Len(t, s.Meshes, 2)
	assert.Equal(t, 3, s.MeshCount())
}

func TestImportGLBMultipleRootsGetSyntheticRoot(t *testing.T) {
	doc := gltf.NewDocument()
	mesh := addTriangleMesh(doc, "tri", false)
	doc.Nodes = append(doc.Nodes,
		&gltf.Node{Name: "a", Mesh: gltf.Index(mesh)},
		&gltf.Node{Name: "b"},
	)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0, 1)

	s, err := NewImporter().Import(saveGLB(t, doc, "roots.glb"))
	require.NoError(t, err)

	assert.Equal(t, "root", s.Root.Name)
	require.Len(t, s.Root.Children, 2)
	assert.Equal(t, "a", s.Root.Children[0].Name)
	assert.Equal(t, "b", s.Root.Children[1].Name)
}

func TestImportSniffsBinaryGLTF(t *testing.T) {
	doc := gltf.NewDocument()
	mesh := addTriangleMesh(doc, "tri", false)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Mesh: gltf.Index(mesh)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	s, err := NewImporter().Import(saveGLB(t, doc, "model.bin"))
	require.NoError(t, err)
	assert.Equal(t, 1, s.MeshCount())
}

type stubBackend struct {
	s   *scene.Scene
	err error
}

func (b stubBackend) Decode(string) (*scene.Scene, error) {
	return b.s, b.err
}

func TestImportBackendFailures(t *testing.T) {
	path := writeFile(t, "model.obj", "o x\n")
	tri := &scene.Mesh{Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, Faces: [][]uint32{{0, 1, 2}}}

	for _, tc := range []struct {
		name    string
		backend stubBackend
	}{
		{"decoder error", stubBackend{err: errors.New("boom")}},
		{"no scene", stubBackend{}},
		{"dangling mesh reference", stubBackend{s: &scene.Scene{Root: scene.NewNode("r", scene.WithMeshes(3)), Meshes: []*scene.Mesh{tri}}}},
		{"no meshes", stubBackend{s: &scene.Scene{Root: scene.NewNode("r")}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			imp := NewImporter(WithBackend(BackendTypeOBJ, tc.backend))
			_, err := imp.Import(path)
			assert.ErrorIs(t, err, ErrImportFailure)
		})
	}
}

func TestImportAppliesConfiguredPostProcess(t *testing.T) {
	quad := &scene.Mesh{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Faces:     [][]uint32{{0, 1, 2, 3}},
	}
	backend := stubBackend{s: &scene.Scene{Root: scene.NewNode("r", scene.WithMeshes(0)), Meshes: []*scene.Mesh{quad}}}

	imp := NewImporter(WithBackend(BackendTypeOBJ, backend), WithPostProcess(Triangulate))
	assert.Equal(t, Triangulate, imp.PostProcess())

	s, err := imp.Import(writeFile(t, "quad.obj", "o quad\n"))
	require.NoError(t, err)
	assert.Len(t, s.Meshes[0].Faces, 2)
	assert.Nil(t, s.Meshes[0].Normals)
}
