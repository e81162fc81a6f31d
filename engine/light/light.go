package light

import "github.com/go-gl/mathgl/mgl32"

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	direction mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	headlight bool
	enabled   bool
}

// Light defines the interface for the directional light of the viewer.
//
// A directional light has no position, only a direction, and affects all fragments uniformly
// with no distance attenuation. In headlight mode the direction follows the view direction so
// the visible side of a model is always lit.
type Light interface {
	// Direction returns the normalized direction the light travels in.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized direction
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled reports whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if the light is on
	Enabled() bool

	// Headlight reports whether the direction follows the camera.
	//
	// Returns:
	//   - bool: true in headlight mode
	Headlight() bool

	// Radiance returns color scaled by intensity, or black when the light is disabled.
	//
	// Returns:
	//   - mgl32.Vec3: the light color uploaded to shaders
	Radiance() mgl32.Vec3

	// DirectionFrom returns the direction to shade with for a camera at eye looking at target.
	// Outside headlight mode this is Direction.
	//
	// Parameters:
	//   - eye: the camera position
	//   - target: the camera target
	//
	// Returns:
	//   - mgl32.Vec3: the normalized light direction
	DirectionFrom(eye, target mgl32.Vec3) mgl32.Vec3

	// SetDirection sets the light direction. Zero vectors are ignored.
	//
	// Parameters:
	//   - direction: the new direction, normalized before storing
	SetDirection(direction mgl32.Vec3)

	// SetColor sets the RGB color of the light.
	SetColor(color mgl32.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled turns the light on or off.
	SetEnabled(enabled bool)

	// SetHeadlight switches headlight mode.
	SetHeadlight(headlight bool)
}

var _ Light = &lightImpl{}

// NewLight creates a white directional light pointing down and slightly forward.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		direction: mgl32.Vec3{-0.4, -1, -0.6}.Normalize(),
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) Headlight() bool {
	return l.headlight
}

func (l *lightImpl) Radiance() mgl32.Vec3 {
	if !l.enabled {
		return mgl32.Vec3{}
	}
	return l.color.Mul(l.intensity)
}

func (l *lightImpl) DirectionFrom(eye, target mgl32.Vec3) mgl32.Vec3 {
	if !l.headlight {
		return l.direction
	}
	view := target.Sub(eye)
	if view.Len() < 1e-8 {
		return l.direction
	}
	return view.Normalize()
}

func (l *lightImpl) SetDirection(direction mgl32.Vec3) {
	if direction.Len() < 1e-8 {
		return
	}
	l.direction = direction.Normalize()
}

func (l *lightImpl) SetColor(color mgl32.Vec3) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetHeadlight(headlight bool) {
	l.headlight = headlight
}
