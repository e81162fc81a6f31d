package engine

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// EngineBuilderOption configures an engine in NewEngine.
type EngineBuilderOption func(*engine)

// WithWindow sets the window whose message loop drives the engine. Run fails with ErrNoWindow
// when no window is set; the engine never opens one itself.
//
// Parameters:
//   - w: an opened Window with a current GL context
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithProfiling starts the engine with the frame profiler logging. It can be switched later with
// EnableProfiler and DisableProfiler.
//
// Parameters:
//   - enabled: true to log frame statistics every profiler interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets how many fixed ticks run per second. See SetTickRate for the accepted range.
//
// Parameters:
//   - fps: ticks per second; 0 or less selects 60
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickPeriod(fps)
	}
}

// WithRenderFrameLimit caps how many frames are rendered per second by sleeping out the rest of
// each frame.
//
// Parameters:
//   - fps: the frame cap; 0 or less leaves frames uncapped
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = framePeriod(fps)
	}
}
