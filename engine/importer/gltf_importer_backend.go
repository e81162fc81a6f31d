package importer

import (
	"fmt"

	"cogentcore.org/core/base/logx"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfImporterBackendImpl decodes glTF and GLB files with qmuntal/gltf.
type gltfImporterBackendImpl struct{}

var _ ImporterBackend = &gltfImporterBackendImpl{}

// newGLTFImporterBackend creates a new glTF/GLB decoder.
//
// Returns:
//   - ImporterBackend: the decoder for .gltf and .glb files
func newGLTFImporterBackend() ImporterBackend {
	return &gltfImporterBackendImpl{}
}

func (b *gltfImporterBackendImpl) Decode(path string) (*scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode glTF: %w", err)
	}
	return newGLTFSceneBuilder(doc).build()
}

// gltfSceneBuilder converts a glTF document into a scene. Each glTF primitive becomes one
// scene mesh; a glTF mesh used by several nodes maps to the same scene mesh indices.
type gltfSceneBuilder struct {
	doc      *gltf.Document
	s        *scene.Scene
	meshMap  map[uint32][]int
	visiting map[uint32]bool
}

func newGLTFSceneBuilder(doc *gltf.Document) *gltfSceneBuilder {
	return &gltfSceneBuilder{
		doc:      doc,
		s:        &scene.Scene{},
		meshMap:  make(map[uint32][]int),
		visiting: make(map[uint32]bool),
	}
}

func (b *gltfSceneBuilder) build() (*scene.Scene, error) {
	roots := b.rootNodes()

	nodes := make([]*scene.Node, 0, len(roots))
	for _, idx := range roots {
		n, err := b.convertNode(idx)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	if len(nodes) == 1 {
		b.s.Root = nodes[0]
	} else {
		b.s.Root = scene.NewNode("root", scene.WithChildren(nodes...))
	}
	return b.s, nil
}

// rootNodes returns the root node indices of the default scene. Documents without scenes
// fall back to every node that is nobody's child.
func (b *gltfSceneBuilder) rootNodes() []uint32 {
	doc := b.doc
	if len(doc.Scenes) > 0 {
		idx := uint32(0)
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

func (b *gltfSceneBuilder) convertNode(idx uint32) (*scene.Node, error) {
	if int(idx) >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range (%d nodes)", idx, len(b.doc.Nodes))
	}
	if b.visiting[idx] {
		return nil, fmt.Errorf("node %d is its own ancestor", idx)
	}
	b.visiting[idx] = true
	defer delete(b.visiting, idx)

	src := b.doc.Nodes[idx]
	n := scene.NewNode(src.Name)

	if src.Mesh != nil {
		meshes, err := b.convertMesh(*src.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", src.Name, err)
		}
		n.Meshes = append(n.Meshes, meshes...)
	}

	for _, c := range src.Children {
		child, err := b.convertNode(c)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// convertMesh appends the primitives of a glTF mesh to the scene mesh table, once per glTF mesh.
func (b *gltfSceneBuilder) convertMesh(idx uint32) ([]int, error) {
	if cached, ok := b.meshMap[idx]; ok {
		return cached, nil
	}
	if int(idx) >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range (%d meshes)", idx, len(b.doc.Meshes))
	}

	src := b.doc.Meshes[idx]
	var indices []int
	for primIndex, prim := range src.Primitives {
		name := src.Name
		if len(src.Primitives) > 1 {
			name = fmt.Sprintf("%s_prim%d", src.Name, primIndex)
		}
		m, err := b.extractPrimitive(prim, name)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, primIndex, err)
		}
		if m == nil {
			continue
		}
		indices = append(indices, len(b.s.Meshes))
		b.s.Meshes = append(b.s.Meshes, m)
	}

	b.meshMap[idx] = indices
	return indices, nil
}

// extractPrimitive converts a single primitive into a scene mesh. Point and line primitives
// carry no faces and are skipped with a nil mesh.
func (b *gltfSceneBuilder) extractPrimitive(prim *gltf.Primitive, name string) (*scene.Mesh, error) {
	switch prim.Mode {
	case gltf.PrimitivePoints, gltf.PrimitiveLines, gltf.PrimitiveLineLoop, gltf.PrimitiveLineStrip:
		logx.PrintlnWarn("gltf: skipping non-triangle primitive in mesh", name)
		return nil, nil
	}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	acr, err := b.accessor(posAccessor)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	m := &scene.Mesh{
		Name:          name,
		Positions:     positions,
		MaterialIndex: scene.NoMaterial,
	}

	if normalAccessor, ok := prim.Attributes["NORMAL"]; ok {
		acr, err := b.accessor(normalAccessor)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read normals: %w", err)
		}
		m.Normals = normals
	}

	for channel := 0; ; channel++ {
		uvAccessor, ok := prim.Attributes[fmt.Sprintf("TEXCOORD_%d", channel)]
		if !ok {
			break
		}
		acr, err := b.accessor(uvAccessor)
		if err != nil {
			return nil, err
		}
		uvs, err := modeler.ReadTextureCoord(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read texcoords %d: %w", channel, err)
		}
		m.TexCoords = append(m.TexCoords, uvs)
	}

	var indices []uint32
	if prim.Indices != nil {
		acr, err := b.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		indices, err = modeler.ReadIndices(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	m.Faces = gltfFaces(prim.Mode, indices)

	if prim.Material != nil {
		m.MaterialIndex = int(*prim.Material)
	}
	return m, nil
}

func (b *gltfSceneBuilder) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range (%d accessors)", idx, len(b.doc.Accessors))
	}
	return b.doc.Accessors[idx], nil
}

// gltfFaces groups a primitive's index list into triangles according to its topology.
// Strips alternate winding so every triangle keeps the orientation of the first one.
func gltfFaces(mode gltf.PrimitiveMode, indices []uint32) [][]uint32 {
	var faces [][]uint32
	switch mode {
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(indices); i++ {
			if i%2 == 0 {
				faces = append(faces, []uint32{indices[i], indices[i+1], indices[i+2]})
			} else {
				faces = append(faces, []uint32{indices[i+1], indices[i], indices[i+2]})
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(indices); i++ {
			faces = append(faces, []uint32{indices[0], indices[i], indices[i+1]})
		}
	default:
		faces = make([][]uint32, 0, len(indices)/3)
		for i := 0; i+2 < len(indices); i += 3 {
			faces = append(faces, []uint32{indices[i], indices[i+1], indices[i+2]})
		}
	}
	return faces
}
