package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption configures a CameraController in NewCameraController. The state the
// options leave behind is the home pose that Reset returns to.
type CameraControllerOption func(*cameraControllerImpl)

// WithPose places the eye on the orbit sphere around the target.
// Azimuth 0 looks from +Z toward the target; positive elevation looks down on it.
//
// Parameters:
//   - radius: distance from the target
//   - azimuth: angle around the Y axis in radians
//   - elevation: angle above the XZ plane in radians
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithPose(radius, azimuth, elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
		cc.azimuth = azimuth
		cc.elevation = elevation
	}
}

// WithTarget sets the point the camera orbits and looks at.
//
// Parameters:
//   - target: the pivot in world space
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
	}
}

// WithRadiusBounds limits how far Zoom and SetRadius can move the eye from the target.
// Frame replaces these bounds with ones scaled to the framed object.
//
// Parameters:
//   - min: closest distance
//   - max: farthest distance
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithOrbitSpeed sets the angle the OrbitLeft/Right/Up/Down steps turn by.
//
// Parameters:
//   - speed: radians per step
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithMouseSensitivity sets the angle Orbit turns by per pixel of drag.
//
// Parameters:
//   - sensitivity: radians per pixel
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the fraction of the current radius one unit of Zoom input covers.
//
// Parameters:
//   - speed: radius fraction per unit
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the world distance the target moves per unit of pan input.
//
// Parameters:
//   - speed: world units per unit
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}
