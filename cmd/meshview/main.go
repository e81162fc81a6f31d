// Command meshview opens a model file in a window and renders it with a simple Phong shader.
//
// Controls: middle mouse drag orbits, shift + middle drag pans, scroll or W/S zooms, A/D and
// Q/E orbit, H toggles wireframe, N shows texture coordinates as colors, P toggles the frame
// profiler log, R resets the view and Esc quits.
package main

import (
	"fmt"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"github.com/Carmen-Shannon/oxy-gl/engine"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Config is the configuration for meshview.
type Config struct {

	// Model is the glTF, GLB or OBJ file to view.
	Model string `posarg:"0"`

	// VertexShader is an optional GLSL vertex shader replacing the built-in one.
	VertexShader string `flag:"vertex"`

	// FragmentShader is an optional GLSL fragment shader replacing the built-in one.
	FragmentShader string `flag:"fragment"`

	// Width is the initial window width.
	Width int `default:"1280"`

	// Height is the initial window height.
	Height int `default:"720"`

	// OrbitSpeed is the orbit step in radians per tick for the keyboard controls.
	OrbitSpeed float32 `default:"0.03"`

	// Sensitivity is the orbit angle in radians per pixel of mouse drag.
	Sensitivity float32 `default:"0.005"`

	// Wireframe starts the viewer in wireframe mode.
	Wireframe bool

	// VSync synchronizes buffer swaps with the display refresh.
	VSync bool `default:"true"`

	// FrameLimit caps the frame rate when VSync is off; 0 is uncapped.
	FrameLimit float64

	// Headlight lights the model from the camera instead of a fixed direction.
	Headlight bool

	// Profile logs frame rate and memory statistics every second. P toggles it while running.
	Profile bool

	// TickRate is the number of input and camera updates per second.
	TickRate float64 `default:"60"`
}

func main() {
	opts := cli.DefaultOptions("meshview", "Meshview renders a 3D model file in an interactive window.")
	cli.Run(opts, &Config{}, View)
}

var baseColor = mgl32.Vec3{0.75, 0.75, 0.78}

// View imports the model, uploads it and runs the viewer until the window closes.
func View(c *Config) error {
	w, err := window.NewWindow(
		window.WithTitle("meshview - "+filepath.Base(c.Model)),
		window.WithSize(c.Width, c.Height),
		window.WithVSync(c.VSync),
	)
	if err != nil {
		return err
	}
	defer func() { errors.Log(w.Close()) }()

	glctx, err := renderer.NewGLContext()
	if err != nil {
		return err
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeGL, renderer.WithGLContext(glctx))
	if err != nil {
		return err
	}
	defer r.Release()

	l := loader.NewLoader(loader.WithRenderer(r))
	geometries, err := l.Inspect(c.Model)
	if err != nil {
		return err
	}
	m, err := l.Upload(c.Model, geometries)
	if err != nil {
		return err
	}
	defer func() { errors.Log(l.Free(m)) }()
	fmt.Printf("%s: %d meshes, %d triangles\n", m.Path(), m.MeshCount(), m.IndexCount()/3)

	program, err := newProgram(c)
	if err != nil {
		return err
	}
	defer program.Delete()

	ctrl := camera.NewCameraController(
		camera.WithOrbitSpeed(c.OrbitSpeed),
		camera.WithMouseSensitivity(c.Sensitivity),
	)
	bounds, ok := geometry.BoundsOf(geometries...)
	if !ok {
		bounds = geometry.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	}
	radius := bounds.Radius()
	if radius <= 0 {
		radius = 1
	}
	ctrl.Frame(bounds.Center(), radius)
	logx.PrintfDebug("meshview: framing center %v radius %g\n", bounds.Center(), radius)

	cam := camera.NewCamera(
		camera.WithController(ctrl),
		camera.WithAspect(float32(w.Width())/float32(max(w.Height(), 1))),
		camera.WithClipPlanes(radius*0.01, radius*300),
	)

	sun := light.NewLight(light.WithHeadlight(c.Headlight))

	in := newControls(c.Wireframe, c.Profile)
	w.SetKeyDownCallback(in.keyDown)
	w.SetKeyUpCallback(in.keyUp)
	w.SetMiddleMouseDownCallback(in.middleDown)
	w.SetMiddleMouseUpCallback(in.middleUp)
	w.SetMouseMoveCallback(in.mouseMove)
	w.SetScrollCallback(in.scrolled)
	w.SetResizeCallback(func(width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		if height > 0 {
			cam.SetAspect(float32(width) / float32(height))
		}
	})

	gl.Viewport(0, 0, int32(w.Width()), int32(w.Height()))
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.12, 0.12, 0.14, 1)

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithProfiling(c.Profile),
		engine.WithTickRate(c.TickRate),
		engine.WithRenderFrameLimit(c.FrameLimit),
	)
	eng.Profiler().AddCounter("meshes", r.LiveMeshes)

	profiling := c.Profile
	eng.SetTickCallback(func(float32) {
		in.apply(ctrl)
		cam.Update()

		if in.profile != profiling {
			profiling = in.profile
			if profiling {
				eng.EnableProfiler()
			} else {
				eng.DisableProfiler()
			}
		}
	})

	var drawErr error
	eng.SetRenderCallback(func(float32) {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		program.Use()
		program.SetMat4("uProjection", cam.ProjectionMatrix())
		program.SetMat4("uView", cam.ViewMatrix())
		program.SetMat4("uModel", mgl32.Ident4())
		eye := cam.Eye()
		program.SetVec3("uLightDir", sun.DirectionFrom(eye, ctrl.Target()))
		program.SetVec3("uLightColor", sun.Radiance())
		program.SetVec3("uViewPos", eye)
		program.SetVec3("uBaseColor", baseColor)
		showTexCoords := int32(0)
		if in.showTexCoords {
			showTexCoords = 1
		}
		program.SetInt("uShowTexCoords", showTexCoords)

		if err := r.DrawModel(m, in.wireframe); err != nil {
			drawErr = err
			eng.Quit()
		}
	})

	if err := eng.Run(); err != nil {
		return err
	}
	return drawErr
}

// newProgram links the built-in shaders, or the shader files named in the config.
func newProgram(c *Config) (shader.Program, error) {
	vs, fs := shader.DefaultShaders()
	if c.VertexShader != "" {
		custom, err := shader.NewShader(filepath.Base(c.VertexShader), shader.ShaderTypeVertex, c.VertexShader)
		if err != nil {
			return nil, err
		}
		vs = custom
	}
	if c.FragmentShader != "" {
		custom, err := shader.NewShader(filepath.Base(c.FragmentShader), shader.ShaderTypeFragment, c.FragmentShader)
		if err != nil {
			return nil, err
		}
		fs = custom
	}

	program, err := shader.NewProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("failed to build shader program: %w", err)
	}
	return program, nil
}
