package loader

import (
	"sync"
	"time"

	"cogentcore.org/core/base/logx"
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
)

// InspectResult is the outcome of inspecting one file in a batch.
type InspectResult struct {
	// Path is the inspected file.
	Path string

	// Geometries holds the flattened meshes when Err is nil.
	Geometries []geometry.Geometry

	// Err is the import or flatten error, if any.
	Err error
}

// MeshCount returns the number of flattened meshes.
func (r InspectResult) MeshCount() int {
	return len(r.Geometries)
}

// VertexCount returns the number of vertices across all flattened meshes.
func (r InspectResult) VertexCount() int {
	total := 0
	for _, g := range r.Geometries {
		total += g.VertexCount()
	}
	return total
}

// TriangleCount returns the number of triangles across all flattened meshes.
func (r InspectResult) TriangleCount() int {
	total := 0
	for _, g := range r.Geometries {
		total += g.IndexCount() / 3
	}
	return total
}

// inspectQueueSize bounds the pending task queue; SubmitTask blocks once it is full.
const inspectQueueSize = 256

// defaultInspectWorkers is the pool size used when WithInspectWorkers is not given.
const defaultInspectWorkers = 4

// inspectPool returns the loader's worker pool, starting it on first use.
// The pool lives as long as the loader and is shared by every InspectAll call.
func (l *loader) inspectPool() worker.DynamicWorkerPool {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.inspectWorkers, inspectQueueSize, 1*time.Second)
	})
	return l.pool
}

func (l *loader) InspectAll(paths []string) []InspectResult {
	results := make([]InspectResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	pool := l.inspectPool()

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		idx := i
		p := path
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				// Each task writes only its own slot, so results needs no lock.
				geometries, err := l.Inspect(p)
				results[idx] = InspectResult{Path: p, Geometries: geometries, Err: err}
				return nil, err
			},
		})
	}
	wg.Wait()

	logx.PrintfDebug("inspected %d files with %d workers\n", len(paths), l.inspectWorkers)
	return results
}
