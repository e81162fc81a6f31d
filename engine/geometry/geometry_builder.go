package geometry

// MissingTexCoords selects what the flattener does with a mesh that has no first UV channel.
type MissingTexCoords int

const (
	// MissingTexCoordsZeroFill substitutes a zero-filled texcoord array. This is the default.
	MissingTexCoordsZeroFill MissingTexCoords = iota

	// MissingTexCoordsFail fails the mesh with ErrMissingTexCoords.
	MissingTexCoordsFail
)

func (m MissingTexCoords) String() string {
	switch m {
	case MissingTexCoordsFail:
		return "fail"
	default:
		return "zero-fill"
	}
}

// flattenConfig holds the options collected for a flatten call.
type flattenConfig struct {
	missingTexCoords MissingTexCoords
}

// FlattenOption is a functional option for configuring FlattenScene and FlattenMesh.
type FlattenOption func(*flattenConfig)

// WithMissingTexCoords sets the policy for meshes without a first UV channel.
//
// Parameters:
//   - policy: MissingTexCoordsZeroFill or MissingTexCoordsFail
//
// Returns:
//   - FlattenOption: option function to apply
func WithMissingTexCoords(policy MissingTexCoords) FlattenOption {
	return func(c *flattenConfig) {
		c.missingTexCoords = policy
	}
}

func newFlattenConfig(options []FlattenOption) flattenConfig {
	c := flattenConfig{missingTexCoords: MissingTexCoordsZeroFill}
	for _, opt := range options {
		opt(&c)
	}
	return c
}
