package renderer

// RendererBuilderOption is a functional option for configuring a Renderer.
type RendererBuilderOption func(r *renderer)

// WithGLContext sets the OpenGL entry points used by the GL backend. When omitted, NewRenderer
// loads go-gl against the context current on the calling thread.
//
// Parameters:
//   - ctx: the GL context to issue calls through
//
// Returns:
//   - RendererBuilderOption: a function that applies the GL context option to a renderer
func WithGLContext(ctx GLContext) RendererBuilderOption {
	return func(r *renderer) {
		r.glContext = ctx
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe). Ignored by the GL backend.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
