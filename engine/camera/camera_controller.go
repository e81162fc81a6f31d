package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the union interface for camera control systems.
// The camera reads Position and Target once per frame through Update; every other method
// mutates the controller state in response to input.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the eye position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at target
	Target() mgl32.Vec3

	// SetTarget moves the orbit target, keeping radius, azimuth and elevation.
	//
	// Parameters:
	//   - target: the new look-at target
	SetTarget(target mgl32.Vec3)

	// Zoom moves the eye toward (positive delta) or away from the target. The radius is
	// clamped to the controller's bounds.
	//
	// Parameters:
	//   - delta: the zoom amount, scaled by the zoom speed
	Zoom(delta float32)

	// Frame points the controller at a sphere of the given center and radius and places the
	// eye far enough away to see all of it. The radius bounds are rescaled to the sphere so
	// zooming stays useful for both tiny and huge models. The framed state becomes the state
	// restored by Reset.
	//
	// Parameters:
	//   - center: the sphere center
	//   - radius: the sphere radius
	Frame(center mgl32.Vec3, radius float32)

	// Reset restores the state captured by the last Frame call, or the construction state.
	Reset()
}

// orbitCameraController defines orbit-style camera control around a target point.
type orbitCameraController interface {
	// OrbitLeft rotates the camera left by one orbit step.
	OrbitLeft()

	// OrbitRight rotates the camera right by one orbit step.
	OrbitRight()

	// OrbitUp raises the camera by one orbit step.
	OrbitUp()

	// OrbitDown lowers the camera by one orbit step.
	OrbitDown()

	// Orbit rotates the camera by a mouse delta, scaled by the mouse sensitivity.
	//
	// Parameters:
	//   - dx: horizontal cursor movement in pixels
	//   - dy: vertical cursor movement in pixels
	Orbit(dx, dy float32)

	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// SetRadius sets the distance from the target, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: the new orbit radius
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians.
	//
	// Returns:
	//   - float32: the azimuth
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	//
	// Returns:
	//   - float32: the elevation
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	//
	// Parameters:
	//   - elevation: the new elevation in radians
	SetElevation(elevation float32)
}

// planarCameraController defines panning that translates eye and target together.
type planarCameraController interface {
	// PanRight moves the camera along its right axis.
	//
	// Parameters:
	//   - delta: the distance, scaled by the pan speed
	PanRight(delta float32)

	// PanUp moves the camera along its up axis.
	//
	// Parameters:
	//   - delta: the distance, scaled by the pan speed
	PanUp(delta float32)

	// PanForward moves the camera along its view direction.
	//
	// Parameters:
	//   - delta: the distance, scaled by the pan speed
	PanForward(delta float32)
}
