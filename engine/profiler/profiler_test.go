package profiler

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickReportsAfterInterval(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(time.Hour)
	assert.False(t, p.Tick())

	p.SetInterval(0)
	assert.Equal(t, time.Hour, p.updateInterval)

	live := 7
	p.AddCounter("meshes", func() int { return live })
	p.SetInterval(time.Nanosecond)
	p.lastTime = time.Now().Add(-time.Second)
	runtime.GC()

	assert.True(t, p.Tick())
	stats := p.Last()
	assert.Greater(t, stats.FPS, 0.0)
	assert.Greater(t, stats.GCCount, uint32(0))
	assert.Equal(t, []Counter{{Name: "meshes", Value: 7}}, stats.Counters)
	assert.Contains(t, stats.String(), "| meshes: 7")
	assert.Zero(t, p.frameCount)
}
