package loader

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/importer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithRenderer is an option builder that sets the Renderer used by the Loader.
//
// Parameters:
//   - r: the renderer instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the renderer option to a loader
func WithRenderer(r renderer.Renderer) LoaderBuilderOption {
	return func(l *loader) {
		l.renderer = r
	}
}

// WithImporter is an option builder that replaces the default Importer.
//
// Parameters:
//   - i: the importer instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the importer option to a loader
func WithImporter(i importer.Importer) LoaderBuilderOption {
	return func(l *loader) {
		l.importer = i
	}
}

// WithFlattenOptions is an option builder that sets the options passed to geometry.FlattenScene.
//
// Parameters:
//   - options: the flatten options, e.g. geometry.WithMissingTexCoords
//
// Returns:
//   - LoaderBuilderOption: a function that applies the flatten options to a loader
func WithFlattenOptions(options ...geometry.FlattenOption) LoaderBuilderOption {
	return func(l *loader) {
		l.flattenOptions = append(l.flattenOptions, options...)
	}
}

// WithInspectWorkers is an option builder that sets how many files InspectAll inspects at once.
// Values below 1 are ignored.
//
// Parameters:
//   - n: the worker pool size
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithInspectWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.inspectWorkers = n
		}
	}
}
