package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hsml/interaction"
	"github.com/katalvlaran/hsml/matrix"
	"github.com/katalvlaran/hsml/quantum"
)

func writeRunFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "run.yaml")
	body := `
basis: {n_min: 3, n_max: 4, l_max: 2, s: 0.5}
interaction:
  matrices_dir: ` + dir + `
metrics_file: ` + filepath.Join(dir, "hsml.prom") + `
log:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestRunBuildsAndSaves(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeRunFile(t, dir)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"hsml", "-config", cfgPath, "-env", "", "-angle", "45", "-save", "-workers", "2", "-spectrum"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "stark matrix")
	assert.Contains(t, stdout.String(), "zeeman matrix")
	assert.Contains(t, stderr.String(), "Calculating stark terms")
	assert.Contains(t, stdout.String(), "spectrum [")

	p := quantum.Params{NMin: 3, NMax: 4, LMax: 2, S: 0.5}
	cfg := interaction.DefaultConfig()
	cfg.FieldAngle = 45
	for _, kind := range []interaction.Kind{interaction.Stark, interaction.Zeeman} {
		_, err := os.Stat(filepath.Join(dir, interaction.CacheKey(kind, p, cfg)))
		assert.NoError(t, err, kind.String())
	}

	prom, err := os.ReadFile(filepath.Join(dir, "hsml.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `hsml_matrix_builds_total{kind="stark",source="computed"} 1`)

	// Second run loads from the cache.
	stdout.Reset()
	stderr.Reset()
	code = run(context.Background(), []string{"hsml", "-config", cfgPath, "-env", "", "-angle", "45", "-load", "-quiet"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.NotContains(t, stderr.String(), "Calculating")
	prom, err = os.ReadFile(filepath.Join(dir, "hsml.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `hsml_matrix_builds_total{kind="stark",source="store"} 1`)
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), []string{"hsml", "-bogus"}, &stdout, &stderr))
	assert.Equal(t, 0, run(context.Background(), []string{"hsml", "-h"}, &stdout, &stderr))

	stderr.Reset()
	cfgPath := writeRunFile(t, t.TempDir())
	assert.Equal(t, 1, run(context.Background(), []string{"hsml", "-config", cfgPath, "-env", "", "-kind", "foo"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unsupported interaction")

	assert.Equal(t, 1, run(context.Background(), []string{"hsml", "-config", filepath.Join(t.TempDir(), "missing.yaml"), "-env", ""}, &stdout, &stderr))
}

func TestSummarize(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{1, -3, -3, 0})
	require.NoError(t, err)
	s := summarize(m)
	assert.Equal(t, summary{size: 2, nonzero: 3, maxAbs: 3, blocks: 1, largest: 2}, s)

	var out bytes.Buffer
	printSummary(&out, interaction.Zeeman, s, "/tmp/x.npz")
	assert.Contains(t, out.String(), "zeeman matrix")
	assert.Contains(t, out.String(), "nonzero  3")
	assert.NotContains(t, out.String(), "spectrum")

	// [[1,-3],[-3,0]] has eigenvalues (1 ± √37)/2.
	require.NoError(t, s.addSpectrum(m))
	assert.InDelta(t, (1-math.Sqrt(37))/2, s.eigMin, 1e-9)
	assert.InDelta(t, (1+math.Sqrt(37))/2, s.eigMax, 1e-9)
	out.Reset()
	printSummary(&out, interaction.Zeeman, s, "/tmp/x.npz")
	assert.Contains(t, out.String(), "spectrum")
}

func TestBar(t *testing.T) {
	var out bytes.Buffer
	b := newBar(&out)
	b.Start(4, "rows")
	b.Add(2)
	b.Finish()
	assert.Contains(t, out.String(), "2/4")
}
