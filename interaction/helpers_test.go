package interaction_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hsml/quantum"
	"github.com/katalvlaran/hsml/radial"
	"github.com/katalvlaran/hsml/store"
)

// rawBasis is a Basis without validation, for feeding unphysical states.
type rawBasis struct {
	states []quantum.State
	params quantum.Params
}

func (b rawBasis) States() []quantum.State { return b.states }
func (b rawBasis) Params() quantum.Params  { return b.params }

// twoStateBasis is |n=10,L=0,ML=0⟩, |n=10,L=1,ML=0⟩ with n_eff = 10.
func twoStateBasis(t *testing.T) *quantum.Basis {
	t.Helper()
	b, err := quantum.NewBasisFromStates([]quantum.State{
		{N: 10, NEff: 10, L: 0, ML: 0},
		{N: 10, NEff: 10, L: 1, ML: 0},
	}, quantum.Params{NMin: 10, NMax: 10, LMax: 1, S: 0.5})
	require.NoError(t, err)

	return b
}

// smallBasis spans n=3..4, L ≤ 2, all ML.
func smallBasis(t *testing.T) *quantum.Basis {
	t.Helper()
	b, err := quantum.NewBasis(quantum.Params{NMin: 3, NMax: 4, LMax: 2, S: 0.5},
		quantum.WithQuantumDefects(map[int]float64{0: 0.3, 1: 0.15}))
	require.NoError(t, err)

	return b
}

// countingRadial returns a constant and counts calls.
type countingRadial struct {
	value float64
	calls atomic.Int64
}

func (c *countingRadial) Overlap(float64, int, float64, int, float64) float64 {
	c.calls.Add(1)

	return c.value
}

// forbiddenRadial fails the test when consulted.
func forbiddenRadial(t *testing.T) radial.Overlap {
	return radial.OverlapFunc(func(float64, int, float64, int, float64) float64 {
		t.Error("radial overlap must not be evaluated")

		return 0
	})
}

var errDiskFull = errors.New("disk full")

// failingStore refuses writes.
type failingStore struct{ *store.Memory }

func (failingStore) Put(context.Context, string, io.Reader) error { return errDiskFull }

// recordingProgress captures the calls a builder makes.
type recordingProgress struct {
	mu       sync.Mutex
	total    int
	desc     string
	added    int
	started  int
	finished int
}

func (p *recordingProgress) Start(total int, desc string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total, p.desc = total, desc
	p.started++
}

func (p *recordingProgress) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.added += n
}

func (p *recordingProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished++
}

// counterValue reads one counter sample from reg; 0 when absent.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metric
				}
			}

			return m.GetCounter().GetValue()
		}
	}

	return 0
}

func stringsReader(s string) io.Reader { return strings.NewReader(s) }
