package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf()
	assert.False(t, ok)
	_, ok = BoundsOf(Geometry{Name: "empty"})
	assert.False(t, ok)

	a := Geometry{Positions: []float32{0, 0, 0, 2, 1, 0}}
	b := Geometry{Positions: []float32{-2, 3, 4}}
	bounds, ok := BoundsOf(a, b)
	assert.True(t, ok)
	assert.Equal(t, Bounds{Min: mgl32.Vec3{-2, 0, 0}, Max: mgl32.Vec3{2, 3, 4}}, bounds)
	assert.Equal(t, mgl32.Vec3{0, 1.5, 2}, bounds.Center())
	assert.InDelta(t, float32(mgl32.Vec3{4, 3, 4}.Len()/2), bounds.Radius(), 1e-6)
}
