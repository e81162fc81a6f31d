package engine

import (
	"errors"
	"time"

	"cogentcore.org/core/base/logx"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// maxTicksPerFrame bounds how many fixed ticks a single slow frame may catch up on.
const maxTicksPerFrame = 5

// defaultTickRate is the tick rate used when none, or a non-positive one, is given.
const defaultTickRate = 60

// tickPeriod converts a tick rate to the duration of one tick. Rates too high to be expressed in
// whole nanoseconds get a 1ns tick, so the period is never zero.
func tickPeriod(fps float64) time.Duration {
	if !(fps > 0) {
		fps = defaultTickRate
	}
	return max(time.Duration(float64(time.Second)/fps), time.Nanosecond)
}

// framePeriod converts a frame cap to the minimum frame duration; 0 means uncapped.
func framePeriod(fps float64) time.Duration {
	if !(fps > 0) {
		return 0
	}
	return max(time.Duration(float64(time.Second)/fps), time.Nanosecond)
}

// engine implements the Engine interface.
// The GL context is bound to the thread that created the window, so ticks and renders both
// run on the window's message loop instead of separate goroutines.
type engine struct {
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	lastFrame   time.Time
	accumulator time.Duration
	quit        bool
}

// Engine is the main entry point for the engine.
// It drives fixed-rate ticks and per-frame renders from the window's message loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Profiler returns the frame profiler, for registering counters.
	//
	// Returns:
	//   - *profiler.Profiler: the engine's profiler
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for input and camera updates.
	// Rates above one tick per nanosecond run with a 1ns tick.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the tick length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame, before the buffers
	// are swapped.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the frame time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run drives the message loop until the window closes or Quit is called. It must be
	// called from the thread that created the window. The window is left open so GL
	// resources can still be released; the caller closes it afterwards.
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// Quit stops Run after the current frame. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler:       profiler.NewProfiler(),
		engineTickRate: tickPeriod(defaultTickRate),
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	logx.PrintfDebug("engine: running at %v per tick, frame limit %v\n", e.engineTickRate, e.renderFrameLimit)

	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
	return nil
}

func (e *engine) Quit() {
	e.quit = true
	if e.window != nil {
		e.window.RequestClose()
	}
}

// frame runs one iteration of the loop: catch-up ticks, render, swap, profiling and the
// optional frame cap.
func (e *engine) frame() {
	if e.quit {
		return
	}

	now := time.Now()
	elapsed := now.Sub(e.lastFrame)
	e.lastFrame = now

	e.step(elapsed)

	if e.renderCallback != nil {
		e.renderCallback(float32(elapsed.Seconds()))
	}
	e.window.SwapBuffers()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// step advances the fixed-rate tick clock by elapsed and fires the tick callback for every
// whole tick that fits. Ticks beyond maxTicksPerFrame are dropped.
//
// Parameters:
//   - elapsed: wall time since the previous frame
//
// Returns:
//   - int: the number of ticks fired
func (e *engine) step(elapsed time.Duration) int {
	e.accumulator += elapsed
	ticks := 0
	for e.accumulator >= e.engineTickRate {
		if ticks == maxTicksPerFrame {
			logx.PrintlnDebug("engine: dropping", int64(e.accumulator/e.engineTickRate), "ticks after a slow frame")
			e.accumulator %= e.engineTickRate
			break
		}
		e.accumulator -= e.engineTickRate
		if e.tickCallback != nil {
			e.tickCallback(float32(e.engineTickRate.Seconds()))
		}
		ticks++
	}
	return ticks
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate = tickPeriod(fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = framePeriod(fps)
}
