package interaction_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/hsml/interaction"
	"github.com/katalvlaran/hsml/matrix"
	"github.com/katalvlaran/hsml/quantum"
	"github.com/katalvlaran/hsml/radial"
	"github.com/katalvlaran/hsml/store"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]interaction.Kind{
		"stark": interaction.Stark, "Stark": interaction.Stark, "ZEEMAN": interaction.Zeeman, " zeeman ": interaction.Zeeman,
	} {
		got, err := interaction.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := interaction.ParseKind("foo")
	assert.ErrorIs(t, err, interaction.ErrUnsupportedInteraction)
}

func TestNewBuilderErrors(t *testing.T) {
	basis := twoStateBasis(t)

	_, err := interaction.NewBuilder(interaction.Kind(42), basis)
	assert.ErrorIs(t, err, interaction.ErrUnsupportedInteraction)

	_, err = interaction.NewBuilder(interaction.Zeeman, nil)
	assert.ErrorIs(t, err, interaction.ErrNilBasis)

	_, err = interaction.NewBuilder(interaction.Zeeman, rawBasis{})
	assert.ErrorIs(t, err, interaction.ErrEmptyBasis)

	_, err = interaction.NewBuilder(interaction.Stark, basis)
	assert.ErrorIs(t, err, interaction.ErrNilRadial)

	// Zeeman needs no radial overlap.
	b, err := interaction.NewBuilder(interaction.Zeeman, basis)
	require.NoError(t, err)
	assert.Equal(t, interaction.Zeeman, b.Kind())
	assert.Nil(t, b.Matrix())
}

func TestUnsupportedKindDoesNoWork(t *testing.T) {
	kind, err := interaction.ParseKind("foo")
	require.Error(t, err)
	_, err = interaction.Build(context.Background(), kind, twoStateBasis(t), interaction.DefaultConfig(),
		interaction.WithRadial(forbiddenRadial(t)), interaction.WithStore(store.NewMemory()))
	assert.ErrorIs(t, err, interaction.ErrUnsupportedInteraction)
}

func TestBuildInvalidConfig(t *testing.T) {
	cfg := interaction.DefaultConfig()
	cfg.FieldAngle = math.NaN()
	_, err := interaction.Build(context.Background(), interaction.Zeeman, twoStateBasis(t), cfg)
	assert.ErrorIs(t, err, interaction.ErrInvalidConfig)
}

func TestStarkTwoStateScenario(t *testing.T) {
	r := &countingRadial{value: 2.5}
	m, err := interaction.Build(context.Background(), interaction.Stark, twoStateBasis(t),
		interaction.DefaultConfig(), interaction.WithRadial(r))
	require.NoError(t, err)

	want := math.Sqrt(1.0/3) * 2.5
	for _, ij := range [][2]int{{0, 1}, {1, 0}} {
		v, err := m.At(ij[0], ij[1])
		require.NoError(t, err)
		assert.InDelta(t, want, v, 1e-12)
	}
	for i := 0; i < 2; i++ {
		v, _ := m.At(i, i)
		assert.Equal(t, 0.0, v)
	}
	assert.EqualValues(t, 1, r.calls.Load(), "one radial evaluation per allowed pair")
}

func TestZeemanMatrix(t *testing.T) {
	basis := smallBasis(t)
	m, err := interaction.Build(context.Background(), interaction.Zeeman, basis, interaction.DefaultConfig())
	require.NoError(t, err)

	states := basis.States()
	m.Do(func(i, j int, v float64) bool {
		if i == j {
			assert.Equal(t, float64(states[i].ML), v)
		} else {
			assert.Equal(t, 0.0, v)
		}

		return true
	})
}

func TestStarkMatrixSymmetricWithNumerov(t *testing.T) {
	memo, err := radial.NewMemo(radial.NewNumerov(), 1024)
	require.NoError(t, err)

	for _, angle := range []float64{0, 30, 90, 135} {
		cfg := interaction.DefaultConfig()
		cfg.FieldAngle = angle
		cfg.DMAllow = []int{-1, 0, 1}
		m, err := interaction.Build(context.Background(), interaction.Stark, smallBasis(t), cfg,
			interaction.WithRadial(memo))
		require.NoError(t, err)
		require.NoError(t, matrix.ValidateSymmetric(m, 0), "angle %v", angle)
	}
}

func TestStarkSelectionRuleZeros(t *testing.T) {
	basis := smallBasis(t)
	cfg := interaction.DefaultConfig()
	cfg.FieldAngle = 60
	cfg.DMAllow = []int{-1, 0, 1}
	m, err := interaction.Build(context.Background(), interaction.Stark, basis, cfg,
		interaction.WithRadial(&countingRadial{value: 1}))
	require.NoError(t, err)

	states := basis.States()
	m.Do(func(i, j int, v float64) bool {
		dL := states[j].L - states[i].L
		dM := states[j].ML - states[i].ML
		if (dL != 1 && dL != -1) || dM > 1 || dM < -1 {
			assert.Equal(t, 0.0, v, "%v %v", states[i], states[j])
		}

		return true
	})
}

func TestRadialCalledOncePerAllowedPair(t *testing.T) {
	basis := smallBasis(t)
	states := basis.States()
	var allowed int64
	for i := range states {
		for j := i; j < len(states); j++ {
			dL := states[j].L - states[i].L
			dM := states[j].ML - states[i].ML
			if (dL == 1 || dL == -1) && dM >= -1 && dM <= 1 {
				allowed++
			}
		}
	}

	r := &countingRadial{value: 1}
	cfg := interaction.DefaultConfig()
	cfg.Workers = 3
	_, err := interaction.Build(context.Background(), interaction.Stark, basis, cfg, interaction.WithRadial(r))
	require.NoError(t, err)
	assert.Equal(t, allowed, r.calls.Load())
}

func TestParallelAssemblyMatchesSerial(t *testing.T) {
	memo, err := radial.NewMemo(radial.NewNumerov(), 1024)
	require.NoError(t, err)
	basis := smallBasis(t)

	cfg := interaction.DefaultConfig()
	cfg.FieldAngle = 45
	serial, err := interaction.Build(context.Background(), interaction.Stark, basis, cfg, interaction.WithRadial(memo))
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 8} {
		cfg.Workers = workers
		par, err := interaction.Build(context.Background(), interaction.Stark, basis, cfg, interaction.WithRadial(memo))
		require.NoError(t, err)
		assert.Equal(t, serial.RawData(), par.RawData(), "workers=%d", workers)
	}
}

func TestBuildReusesHeldMatrix(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := &countingRadial{value: 1}
	b, err := interaction.NewBuilder(interaction.Stark, twoStateBasis(t),
		interaction.WithRadial(r), interaction.WithLogger(zap.New(core)))
	require.NoError(t, err)

	cfg := interaction.DefaultConfig()
	first, err := b.Build(context.Background(), cfg)
	require.NoError(t, err)
	second, err := b.Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.EqualValues(t, 1, r.calls.Load())
	assert.Equal(t, 1, logs.FilterMessage("using cached matrix").Len())

	cfg.CacheMatrices = false
	third, err := b.Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.EqualValues(t, 2, r.calls.Load())
}

func TestInvalidateAndRecompute(t *testing.T) {
	r := &countingRadial{value: 1}
	b, err := interaction.NewBuilder(interaction.Stark, twoStateBasis(t), interaction.WithRadial(r))
	require.NoError(t, err)
	cfg := interaction.DefaultConfig()

	_, err = b.Build(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, b.Matrix())

	b.Invalidate()
	assert.Nil(t, b.Matrix())

	r.value = 3
	m, err := b.Recompute(context.Background(), cfg)
	require.NoError(t, err)
	v, _ := m.At(0, 1)
	assert.InDelta(t, math.Sqrt(1.0/3)*3, v, 1e-12)
	assert.Same(t, m, b.Matrix())
}

func TestSaveLoadRoundTripFilesystem(t *testing.T) {
	dir := t.TempDir()
	memo, err := radial.NewMemo(radial.NewNumerov(), 1024)
	require.NoError(t, err)
	basis := smallBasis(t)

	cfg := interaction.DefaultConfig()
	cfg.FieldAngle = 45
	cfg.MatricesDir = dir
	cfg.SaveMatrices = true
	saved, err := interaction.Build(context.Background(), interaction.Stark, basis, cfg, interaction.WithRadial(memo))
	require.NoError(t, err)

	key := interaction.CacheKey(interaction.Stark, basis.Params(), cfg)
	_, err = os.Stat(filepath.Join(dir, key))
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	cfg.SaveMatrices = false
	cfg.LoadMatrices = true
	loaded, err := interaction.Build(context.Background(), interaction.Stark, basis, cfg,
		interaction.WithRadial(forbiddenRadial(t)), interaction.WithLogger(zap.New(core)))
	require.NoError(t, err)

	ok, err := matrix.AllClose(saved, loaded, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	entries := logs.FilterMessage("loaded matrix").All()
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(dir, key), entries[0].ContextMap()["path"])
}

func TestLoadMissingKeyComputes(t *testing.T) {
	mem := store.NewMemory()
	cfg := interaction.DefaultConfig()
	cfg.LoadMatrices = true
	r := &countingRadial{value: 1}
	_, err := interaction.Build(context.Background(), interaction.Stark, twoStateBasis(t), cfg,
		interaction.WithRadial(r), interaction.WithStore(mem))
	require.NoError(t, err)
	assert.EqualValues(t, 1, r.calls.Load())
	assert.Zero(t, mem.Len(), "nothing saved unless asked")
}

func TestZeemanRoundTripMemoryStore(t *testing.T) {
	mem := store.NewMemory()
	basis := smallBasis(t)
	cfg := interaction.DefaultConfig()
	cfg.SaveMatrices = true
	saved, err := interaction.Build(context.Background(), interaction.Zeeman, basis, cfg, interaction.WithStore(mem))
	require.NoError(t, err)

	ok, err := mem.Exists(context.Background(), interaction.CacheKey(interaction.Zeeman, basis.Params(), cfg))
	require.NoError(t, err)
	require.True(t, ok)

	cfg.SaveMatrices, cfg.LoadMatrices = false, true
	loaded, err := interaction.Build(context.Background(), interaction.Zeeman, basis, cfg, interaction.WithStore(mem))
	require.NoError(t, err)
	assert.Equal(t, saved.RawData(), loaded.RawData())
}

func TestLoadCorruptEntryFails(t *testing.T) {
	mem := store.NewMemory()
	basis := twoStateBasis(t)
	cfg := interaction.DefaultConfig()
	cfg.LoadMatrices = true
	key := interaction.CacheKey(interaction.Zeeman, basis.Params(), cfg)
	require.NoError(t, mem.Put(context.Background(), key, stringsReader("not an archive")))

	b, err := interaction.NewBuilder(interaction.Zeeman, basis, interaction.WithStore(mem))
	require.NoError(t, err)
	_, err = b.Build(context.Background(), cfg)
	assert.ErrorIs(t, err, interaction.ErrIO)
	assert.ErrorIs(t, err, store.ErrCorrupt)
	assert.Nil(t, b.Matrix())
}

func TestLoadSizeMismatch(t *testing.T) {
	mem := store.NewMemory()
	big := smallBasis(t)
	cfg := interaction.DefaultConfig()
	cfg.SaveMatrices = true
	_, err := interaction.Build(context.Background(), interaction.Zeeman, big, cfg, interaction.WithStore(mem))
	require.NoError(t, err)

	// Same parameters, hand-picked subset of states.
	small, err := quantum.NewBasisFromStates(big.States()[:2], big.Params())
	require.NoError(t, err)
	cfg.SaveMatrices, cfg.LoadMatrices = false, true
	_, err = interaction.Build(context.Background(), interaction.Zeeman, small, cfg, interaction.WithStore(mem))
	assert.ErrorIs(t, err, interaction.ErrCacheMismatch)
}

func TestSaveFailureKeepsMatrix(t *testing.T) {
	b, err := interaction.NewBuilder(interaction.Zeeman, smallBasis(t),
		interaction.WithStore(failingStore{store.NewMemory()}))
	require.NoError(t, err)

	cfg := interaction.DefaultConfig()
	cfg.SaveMatrices = true
	_, err = b.Build(context.Background(), cfg)
	assert.ErrorIs(t, err, interaction.ErrIO)
	assert.ErrorIs(t, err, errDiskFull)
	require.NotNil(t, b.Matrix())
	assert.NoError(t, matrix.ValidateSymmetric(b.Matrix(), 0))
}

func TestStrictDomain(t *testing.T) {
	nan := radial.OverlapFunc(func(float64, int, float64, int, float64) float64 { return math.NaN() })

	b, err := interaction.NewBuilder(interaction.Stark, twoStateBasis(t), interaction.WithRadial(nan))
	require.NoError(t, err)
	_, err = b.Build(context.Background(), interaction.DefaultConfig())
	require.ErrorIs(t, err, interaction.ErrDomain)
	assert.Contains(t, err.Error(), "(0,1)")
	assert.Nil(t, b.Matrix())

	cfg := interaction.DefaultConfig()
	cfg.StrictDomain = false
	m, err := b.Build(context.Background(), cfg)
	require.NoError(t, err)
	v, _ := m.At(1, 0)
	assert.True(t, math.IsNaN(v))
	d, _ := m.At(0, 0)
	assert.Equal(t, 0.0, d)
	assert.NoError(t, matrix.ValidateSymmetric(m, 0))
}

func TestStrictDomainUnphysicalState(t *testing.T) {
	// |ML| > L makes the angular radicand negative.
	basis := rawBasis{states: []quantum.State{
		{N: 5, NEff: 5, L: 1, ML: 3},
		{N: 5, NEff: 5, L: 2, ML: 3},
	}}
	cfg := interaction.DefaultConfig()
	cfg.Workers = 2
	_, err := interaction.Build(context.Background(), interaction.Stark, basis, cfg,
		interaction.WithRadial(&countingRadial{value: 1}))
	assert.ErrorIs(t, err, interaction.ErrDomain)
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{1, 4} {
		cfg := interaction.DefaultConfig()
		cfg.Workers = workers
		b, err := interaction.NewBuilder(interaction.Zeeman, smallBasis(t))
		require.NoError(t, err)
		_, err = b.Build(ctx, cfg)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, b.Matrix())
	}
}

func TestProgressReporting(t *testing.T) {
	basis := smallBasis(t)
	p := &recordingProgress{}
	cfg := interaction.DefaultConfig()
	cfg.Workers = 4
	_, err := interaction.Build(context.Background(), interaction.Zeeman, basis, cfg, interaction.WithProgress(p))
	require.NoError(t, err)
	assert.Equal(t, basis.Len(), p.total)
	assert.Equal(t, basis.Len(), p.added)
	assert.Equal(t, "Calculating zeeman terms", p.desc)
	assert.Equal(t, 1, p.finished)

	p = &recordingProgress{}
	cfg.Progress = interaction.ProgressOptions{Description: "zeeman rows"}
	_, err = interaction.Build(context.Background(), interaction.Zeeman, basis, cfg, interaction.WithProgress(p))
	require.NoError(t, err)
	assert.Equal(t, "zeeman rows", p.desc)

	p = &recordingProgress{}
	cfg.Progress.Disable = true
	_, err = interaction.Build(context.Background(), interaction.Zeeman, basis, cfg, interaction.WithProgress(p))
	require.NoError(t, err)
	assert.Zero(t, p.started)
	assert.Zero(t, p.added)
}

func TestLogProgress(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := interaction.NewLogProgress(zap.New(core), 50)
	p.Start(4, "rows")
	for i := 0; i < 4; i++ {
		p.Add(1)
	}
	p.Finish()
	assert.Equal(t, 4, p.Done())
	// start, 50 %, 100 %
	assert.Equal(t, 3, logs.FilterMessage("rows").Len())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	met, err := interaction.NewMetrics(reg)
	require.NoError(t, err)
	_, err = interaction.NewMetrics(reg)
	assert.Error(t, err, "duplicate registration")

	basis := smallBasis(t)
	n := float64(basis.Len())
	mem := store.NewMemory()
	b, err := interaction.NewBuilder(interaction.Zeeman, basis,
		interaction.WithMetrics(met), interaction.WithStore(mem), interaction.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	cfg := interaction.DefaultConfig()
	cfg.SaveMatrices = true
	_, err = b.Build(context.Background(), cfg)
	require.NoError(t, err)
	_, err = b.Build(context.Background(), cfg)
	require.NoError(t, err)
	cfg.SaveMatrices, cfg.LoadMatrices = false, true
	_, err = b.Recompute(context.Background(), cfg)
	require.NoError(t, err)

	const builds = "hsml_matrix_builds_total"
	assert.Equal(t, 1.0, counterValue(t, reg, builds, map[string]string{"kind": "zeeman", "source": interaction.SourceComputed}))
	assert.Equal(t, 1.0, counterValue(t, reg, builds, map[string]string{"kind": "zeeman", "source": interaction.SourceMemory}))
	assert.Equal(t, 1.0, counterValue(t, reg, builds, map[string]string{"kind": "zeeman", "source": interaction.SourceStore}))
	assert.Equal(t, n*(n+1)/2, counterValue(t, reg, "hsml_matrix_elements_total", map[string]string{"kind": "zeeman"}))
}

func TestParallelFieldConservesML(t *testing.T) {
	basis := smallBasis(t)
	m, err := interaction.Build(context.Background(), interaction.Stark, basis, interaction.DefaultConfig(),
		interaction.WithRadial(&countingRadial{value: 1}))
	require.NoError(t, err)

	blocks, err := matrix.Blocks(m, 0)
	require.NoError(t, err)
	states := basis.States()
	mls := make(map[int]bool)
	for _, block := range blocks {
		ml := states[block[0]].ML
		for _, i := range block {
			assert.Equal(t, ml, states[i].ML)
		}
		mls[ml] = true
	}
	assert.Len(t, mls, 5, "ML = -2..2")

	// A tilted field mixes ML.
	cfg := interaction.DefaultConfig()
	cfg.FieldAngle = 30
	tilted, err := interaction.Build(context.Background(), interaction.Stark, basis, cfg,
		interaction.WithRadial(&countingRadial{value: 1}))
	require.NoError(t, err)
	mixed, err := matrix.Blocks(tilted, 0)
	require.NoError(t, err)
	assert.Less(t, len(mixed), len(blocks))
}
