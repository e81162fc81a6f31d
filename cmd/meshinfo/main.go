// Command meshinfo imports model files and reports their flattened mesh statistics. With
// -upload wgpu every model is also uploaded to a headless WebGPU device and released again,
// which checks the buffer path without a window.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
)

// Config is the configuration for meshinfo.
type Config struct {

	// Paths are the model files to inspect.
	Paths []string `posarg:"all"`

	// Workers is the number of files imported at once.
	Workers int `flag:"w,workers" default:"4"`

	// Strict fails meshes without texture coordinates instead of zero-filling them.
	Strict bool

	// Meshes lists every mesh of each file, not just the totals.
	Meshes bool `flag:"m,meshes"`

	// Upload selects a backend to upload each model to. Only "wgpu" works without a window.
	Upload string

	// Software forces the WebGPU fallback adapter.
	Software bool
}

func main() {
	opts := cli.DefaultOptions("meshinfo", "Meshinfo reports the meshes, vertices and triangles of 3D model files.")
	cli.Run(opts, &Config{}, Inspect)
}

// Inspect imports every file, prints a report and optionally uploads the models.
func Inspect(c *Config) error {
	var flattenOptions []geometry.FlattenOption
	if c.Strict {
		flattenOptions = append(flattenOptions, geometry.WithMissingTexCoords(geometry.MissingTexCoordsFail))
	}

	var r renderer.Renderer
	switch c.Upload {
	case "":
	case renderer.BackendTypeWGPU.String():
		var err error
		r, err = renderer.NewRenderer(renderer.BackendTypeWGPU, renderer.WithForceSoftwareRenderer(c.Software))
		if err != nil {
			return err
		}
		defer r.Release()
	default:
		return fmt.Errorf("unsupported upload backend %q: only %q runs headless", c.Upload, renderer.BackendTypeWGPU)
	}

	l := loader.NewLoader(
		loader.WithRenderer(r),
		loader.WithFlattenOptions(flattenOptions...),
		loader.WithInspectWorkers(c.Workers),
	)
	results := l.InspectAll(c.Paths)
	writeReport(os.Stdout, results, c.Meshes)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			errors.Log(res.Err)
			failed++
			continue
		}
		if r != nil {
			if err := upload(l, res); err != nil {
				errors.Log(err)
				failed++
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// upload round-trips one inspected file through the renderer.
func upload(l loader.Loader, res loader.InspectResult) error {
	m, err := l.Upload(res.Path, res.Geometries)
	if err != nil {
		return err
	}
	logx.PrintlnDebug("meshinfo: uploaded", m.Path(), "as", m.MeshCount(), "meshes")
	return l.Free(m)
}

// writeReport prints one row per file, and per mesh when meshes is set.
func writeReport(out io.Writer, results []loader.InspectResult, meshes bool) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tMESHES\tVERTICES\tTRIANGLES\tSTATUS")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\tfailed\n", res.Path)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\tok\n", res.Path, res.MeshCount(), res.VertexCount(), res.TriangleCount())
		if !meshes {
			continue
		}
		for i, g := range res.Geometries {
			fmt.Fprintf(tw, "  %d %s\t\t%d\t%d\t\n", i, g.Name, g.VertexCount(), g.IndexCount()/3)
		}
	}
	tw.Flush()
}
