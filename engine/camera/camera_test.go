package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func TestControllerPositionFromSphericalCoords(t *testing.T) {
	cc := NewCameraController(
		WithTarget(mgl32.Vec3{1, 2, 3}),
		WithPose(10, 0, 0),
	)
	assert.True(t, cc.Position().ApproxEqualThreshold(mgl32.Vec3{1, 2, 13}, eps), cc.Position())

	cc.SetElevation(math.Pi / 2)
	// Clamped just short of straight up.
	assert.Less(t, cc.Elevation(), float32(math.Pi/2))
	assert.InDelta(t, 10, cc.Position().Sub(cc.Target()).Len(), eps)
}

func TestControllerZoomClampsRadius(t *testing.T) {
	cc := NewCameraController(WithPose(10, 0, 0), WithRadiusBounds(5, 20), WithZoomSpeed(0.5))

	cc.Zoom(1)
	assert.InDelta(t, 5, cc.Radius(), eps)
	cc.Zoom(1)
	assert.InDelta(t, 5, cc.Radius(), eps)

	cc.SetRadius(100)
	assert.InDelta(t, 20, cc.Radius(), eps)
}

func TestControllerOrbitKeepsDistance(t *testing.T) {
	cc := NewCameraController(WithPose(4, 0, 0.3), WithOrbitSpeed(0.1), WithMouseSensitivity(0.01))
	before := cc.Azimuth()

	cc.OrbitRight()
	assert.InDelta(t, before+0.1, cc.Azimuth(), eps)
	cc.OrbitLeft()
	cc.OrbitLeft()
	assert.InDelta(t, before-0.1, cc.Azimuth(), eps)

	cc.Orbit(10, 0)
	assert.InDelta(t, before-0.2, cc.Azimuth(), eps)
	assert.InDelta(t, 4, cc.Position().Sub(cc.Target()).Len(), eps)
}

func TestControllerPanMovesTargetAndEye(t *testing.T) {
	cc := NewCameraController(WithPose(5, 0, 0), WithPanSpeed(1))
	offset := cc.Position().Sub(cc.Target())

	cc.PanRight(2)
	// Looking down -Z, right is +X.
	assert.True(t, cc.Target().ApproxEqualThreshold(mgl32.Vec3{2, 0, 0}, eps), cc.Target())
	assert.True(t, cc.Position().Sub(cc.Target()).ApproxEqualThreshold(offset, eps))

	cc.PanUp(1)
	assert.InDelta(t, 1, cc.Target().Y(), eps)

	cc.PanForward(1)
	assert.InDelta(t, -1, cc.Target().Z(), eps)
}

func TestControllerFrameAndReset(t *testing.T) {
	cc := NewCameraController()
	cc.Frame(mgl32.Vec3{0, 10, 0}, 4)

	assert.Equal(t, mgl32.Vec3{0, 10, 0}, cc.Target())
	assert.InDelta(t, 10, cc.Radius(), eps)

	cc.OrbitUp()
	cc.Zoom(1)
	cc.PanRight(50)
	cc.Reset()

	assert.Equal(t, mgl32.Vec3{0, 10, 0}, cc.Target())
	assert.InDelta(t, 10, cc.Radius(), eps)

	cc.Frame(mgl32.Vec3{}, 0)
	assert.InDelta(t, 2.5, cc.Radius(), eps)
}

func TestCameraMatrices(t *testing.T) {
	cc := NewCameraController(WithTarget(mgl32.Vec3{}), WithPose(5, 0, 0))
	c := NewCamera(WithController(cc), WithAspect(2), WithClipPlanes(0.1, 50))

	eye := c.Eye()
	assert.True(t, eye.ApproxEqualThreshold(mgl32.Vec3{0, 0, 5}, eps), eye)

	// The target lands at the view-space origin shifted back by the radius.
	viewTarget := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, viewTarget.ApproxEqualThreshold(mgl32.Vec4{0, 0, -5, 1}, eps), viewTarget)

	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 50), c.ProjectionMatrix())

	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())
	c.SetAspect(1)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 50), c.ProjectionMatrix())

	cc.SetTarget(mgl32.Vec3{1, 0, 0})
	c.Update()
	viewTarget = c.ViewMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, viewTarget.ApproxEqualThreshold(mgl32.Vec4{0, 0, -5, 1}, eps), viewTarget)
}

func TestCameraWithoutController(t *testing.T) {
	c := NewCamera()
	require.Nil(t, c.Controller())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
	assert.Equal(t, mgl32.Vec3{}, c.Eye())
	c.Update()
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
}
