package geometry

import "github.com/go-gl/mathgl/mgl32"

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns half the length of the box diagonal, the radius of a sphere around Center
// that contains the box.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Len() * 0.5
}

// BoundsOf returns the box enclosing the positions of every geometry.
//
// Parameters:
//   - geometries: the flattened meshes to measure
//
// Returns:
//   - Bounds: the enclosing box
//   - bool: false when the geometries hold no vertices
func BoundsOf(geometries ...Geometry) (Bounds, bool) {
	var b Bounds
	found := false
	for _, g := range geometries {
		for i := 0; i+2 < len(g.Positions); i += PositionComponents {
			p := mgl32.Vec3{g.Positions[i], g.Positions[i+1], g.Positions[i+2]}
			if !found {
				b.Min, b.Max = p, p
				found = true
				continue
			}
			for axis := range 3 {
				b.Min[axis] = min(b.Min[axis], p[axis])
				b.Max[axis] = max(b.Max[axis], p[axis])
			}
		}
	}
	return b, found
}
