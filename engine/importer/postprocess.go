package importer

import (
	"strings"

	"cogentcore.org/core/base/logx"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// PostProcess is a set of processing steps applied to a decoded scene.
type PostProcess uint32

const (
	// Triangulate splits polygons with more than three corners into triangle fans and drops
	// faces with fewer than three corners.
	Triangulate PostProcess = 1 << iota

	// FlipUVs replaces every texture coordinate v with 1 - v.
	FlipUVs

	// OptimizeMeshes merges the meshes of a node that share a material and attribute layout.
	OptimizeMeshes

	// GenNormals computes smooth per-vertex normals for meshes that carry none.
	GenNormals
)

// DefaultPostProcess is the fixed configuration used by model loading.
const DefaultPostProcess = Triangulate | FlipUVs | OptimizeMeshes | GenNormals

// Has reports whether every step in flag is enabled.
func (p PostProcess) Has(flag PostProcess) bool {
	return p&flag == flag
}

func (p PostProcess) String() string {
	var names []string
	for _, step := range []struct {
		flag PostProcess
		name string
	}{
		{Triangulate, "Triangulate"},
		{FlipUVs, "FlipUVs"},
		{OptimizeMeshes, "OptimizeMeshes"},
		{GenNormals, "GenNormals"},
	} {
		if p.Has(step.flag) {
			names = append(names, step.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// ApplyPostProcess runs the enabled steps on s in place. Triangulation runs first so that
// normal generation and mesh merging only ever see triangles.
//
// Parameters:
//   - s: the scene to process
//   - flags: the steps to apply
func ApplyPostProcess(s *scene.Scene, flags PostProcess) {
	if flags.Has(Triangulate) {
		for _, m := range s.Meshes {
			triangulate(m)
		}
	}
	if flags.Has(GenNormals) {
		for _, m := range s.Meshes {
			if !m.HasNormals() {
				m.Normals = generateNormals(m.Positions, m.Faces)
			}
		}
	}
	if flags.Has(FlipUVs) {
		for _, m := range s.Meshes {
			flipUVs(m)
		}
	}
	if flags.Has(OptimizeMeshes) {
		optimizeMeshes(s)
	}
}

func triangulate(m *scene.Mesh) {
	faces := make([][]uint32, 0, len(m.Faces))
	dropped := 0
	for _, f := range m.Faces {
		switch {
		case len(f) < 3:
			dropped++
		case len(f) == 3:
			faces = append(faces, f)
		default:
			for k := 1; k+1 < len(f); k++ {
				faces = append(faces, []uint32{f[0], f[k], f[k+1]})
			}
		}
	}
	if dropped > 0 {
		logx.PrintfDebug("triangulate: dropped %d point/line faces from mesh %q\n", dropped, m.Name)
	}
	m.Faces = faces
}

func flipUVs(m *scene.Mesh) {
	for _, channel := range m.TexCoords {
		for i := range channel {
			channel[i][1] = 1 - channel[i][1]
		}
	}
}

// generateNormals computes area-weighted smooth normals. Each polygon contributes its fan
// triangles' unnormalized cross products to its corners; vertices touched only by degenerate
// faces get +Y. Faces with out-of-range indices are ignored.
func generateNormals(positions [][3]float32, faces [][]uint32) [][3]float32 {
	n := len(positions)
	accum := make([]mgl32.Vec3, n)

	for _, f := range faces {
		for k := 1; k+1 < len(f); k++ {
			i0, i1, i2 := f[0], f[k], f[k+1]
			if int(i0) >= n || int(i1) >= n || int(i2) >= n {
				continue
			}
			p0 := mgl32.Vec3(positions[i0])
			faceNormal := mgl32.Vec3(positions[i1]).Sub(p0).Cross(mgl32.Vec3(positions[i2]).Sub(p0))
			accum[i0] = accum[i0].Add(faceNormal)
			accum[i1] = accum[i1].Add(faceNormal)
			accum[i2] = accum[i2].Add(faceNormal)
		}
	}

	normals := make([][3]float32, n)
	for i, a := range accum {
		if a.Len() < 1e-6 {
			normals[i] = [3]float32{0, 1, 0}
			continue
		}
		normals[i] = a.Normalize()
	}
	return normals
}

// meshLayout is the merge key for OptimizeMeshes: meshes only merge when they share a material
// and carry the same attribute arrays.
type meshLayout struct {
	material   int
	uvChannels int
	normals    bool
}

// optimizeMeshes merges meshes referenced by the same node that share a layout, then rebuilds
// the mesh table in pre-order of first reference. Meshes referenced by more than one node are
// never merged. Unreferenced meshes are dropped.
func optimizeMeshes(s *scene.Scene) {
	refs := make([]int, len(s.Meshes))
	_ = s.Walk(func(n *scene.Node, _ int) error {
		for _, idx := range n.Meshes {
			if idx >= 0 && idx < len(refs) {
				refs[idx]++
			}
		}
		return nil
	})

	table := make([]*scene.Mesh, 0, len(s.Meshes))
	shared := make(map[int]int)
	merged := 0

	_ = s.Walk(func(n *scene.Node, _ int) error {
		out := make([]int, 0, len(n.Meshes))
		open := make(map[meshLayout]int)

		for _, idx := range n.Meshes {
			if idx < 0 || idx >= len(refs) {
				continue
			}
			m := s.Meshes[idx]
			if refs[idx] > 1 {
				ni, ok := shared[idx]
				if !ok {
					ni = len(table)
					table = append(table, m)
					shared[idx] = ni
				}
				out = append(out, ni)
				continue
			}

			key := meshLayout{material: m.MaterialIndex, uvChannels: len(m.TexCoords), normals: m.HasNormals()}
			if target, ok := open[key]; ok {
				appendMesh(table[target], m)
				merged++
				continue
			}
			open[key] = len(table)
			out = append(out, len(table))
			table = append(table, m)
		}

		n.Meshes = out
		return nil
	})

	if merged > 0 {
		logx.PrintfDebug("optimize: merged %d meshes, table now holds %d\n", merged, len(table))
	}
	s.Meshes = table
}

// appendMesh concatenates src onto dst, rebasing src's face indices past dst's vertices.
func appendMesh(dst, src *scene.Mesh) {
	base := uint32(len(dst.Positions))
	dst.Positions = append(dst.Positions, src.Positions...)
	if dst.Normals != nil || src.Normals != nil {
		dst.Normals = append(dst.Normals, src.Normals...)
	}
	for c := range dst.TexCoords {
		dst.TexCoords[c] = append(dst.TexCoords[c], src.TexCoords[c]...)
	}
	for _, f := range src.Faces {
		rebased := make([]uint32, len(f))
		for i, idx := range f {
			rebased[i] = idx + base
		}
		dst.Faces = append(dst.Faces, rebased)
	}
}
