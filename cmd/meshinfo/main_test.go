package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

const bareOBJ = `o bare
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWriteReport(t *testing.T) {
	quad := writeFile(t, "quad.obj", quadOBJ)
	missing := filepath.Join(t.TempDir(), "missing.obj")

	results := loader.NewLoader(loader.WithInspectWorkers(2)).InspectAll([]string{quad, missing})
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)

	var buf bytes.Buffer
	writeReport(&buf, results, true)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, []string{"PATH", "MESHES", "VERTICES", "TRIANGLES", "STATUS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{quad, "1", "4", "2", "ok"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"4", "2"}, strings.Fields(lines[2])[2:])
	assert.Equal(t, []string{missing, "-", "-", "-", "failed"}, strings.Fields(lines[3]))
}

func TestInspectCountsFailures(t *testing.T) {
	quad := writeFile(t, "quad.obj", quadOBJ)
	bare := writeFile(t, "bare.obj", bareOBJ)

	assert.NoError(t, Inspect(&Config{Paths: []string{quad, bare}, Workers: 2}))

	err := Inspect(&Config{Paths: []string{quad, bare}, Workers: 2, Strict: true})
	assert.EqualError(t, err, "1 of 2 files failed")

	err = Inspect(&Config{Paths: []string{quad}, Upload: "gl"})
	assert.ErrorContains(t, err, `unsupported upload backend "gl"`)
}
