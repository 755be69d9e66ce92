package interaction

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/hsml/matrix"
	"github.com/katalvlaran/hsml/quantum"
	"github.com/katalvlaran/hsml/radial"
	"github.com/katalvlaran/hsml/store"
)

// Basis is the ordered state list a Builder evaluates. *quantum.Basis
// satisfies it.
type Basis interface {
	States() []quantum.State
	Params() quantum.Params
}

// Builder computes one interaction matrix for a basis and holds it until
// invalidated. A Builder is not safe for concurrent Build calls.
type Builder struct {
	kind   Kind
	basis  Basis
	states []quantum.State

	radial   radial.Overlap
	store    store.Store
	log      *zap.Logger
	progress Progress
	metrics  *Metrics

	matrix *matrix.Dense
}

// NewBuilder validates kind and basis and applies opts.
//
// Errors: ErrUnsupportedInteraction, ErrNilBasis, ErrEmptyBasis, and
// ErrNilRadial for a Stark builder without WithRadial.
func NewBuilder(kind Kind, basis Basis, opts ...Option) (*Builder, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%v: %w", kind, ErrUnsupportedInteraction)
	}
	if basis == nil {
		return nil, ErrNilBasis
	}
	states := basis.States()
	if len(states) == 0 {
		return nil, ErrEmptyBasis
	}

	b := &Builder{
		kind:     kind,
		basis:    basis,
		states:   states,
		log:      zap.NewNop(),
		progress: nopProgress{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if kind == Stark && b.radial == nil {
		return nil, ErrNilRadial
	}
	b.log = b.log.With(zap.Stringer("kind", kind))

	return b, nil
}

// Kind returns the interaction the builder evaluates.
func (b *Builder) Kind() Kind { return b.kind }

// Matrix returns the held matrix, or nil when none has been built.
func (b *Builder) Matrix() *matrix.Dense { return b.matrix }

// Invalidate drops the held matrix so the next Build starts over.
func (b *Builder) Invalidate() { b.matrix = nil }

// Recompute invalidates and builds again.
func (b *Builder) Recompute(ctx context.Context, cfg Config) (*matrix.Dense, error) {
	b.Invalidate()

	return b.Build(ctx, cfg)
}

// Build returns the interaction matrix, from the first source that applies:
//  1. the held matrix, when cfg.CacheMatrices;
//  2. the cache store, when cfg.LoadMatrices and the key exists;
//  3. a fresh assembly, persisted when cfg.SaveMatrices.
//
// The returned matrix is shared with the builder; Clone it before mutating.
// A failed save returns an error wrapping ErrIO while the computed matrix
// stays available through Matrix.
func (b *Builder) Build(ctx context.Context, cfg Config) (*matrix.Dense, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.matrix != nil && cfg.CacheMatrices {
		b.log.Info("using cached matrix")
		b.metrics.observeBuild(b.kind, SourceMemory, 0)

		return b.matrix, nil
	}

	key := CacheKey(b.kind, b.basis.Params(), cfg)
	if cfg.LoadMatrices {
		m, ok, err := b.load(ctx, cfg, key)
		if err != nil {
			return nil, err
		}
		if ok {
			b.matrix = m
			b.metrics.observeBuild(b.kind, SourceStore, 0)

			return m, nil
		}
	}

	start := time.Now()
	m, err := b.assemble(ctx, cfg)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	b.matrix = m
	b.metrics.observeBuild(b.kind, SourceComputed, elapsed)
	b.log.Debug("matrix computed", zap.Int("size", len(b.states)), zap.Duration("elapsed", elapsed))

	if cfg.SaveMatrices {
		st := b.storeFor(cfg)
		if err := store.SaveMatrix(ctx, st, key, m); err != nil {
			return nil, fmt.Errorf("save %s: %w: %w", st.Locate(key), ErrIO, err)
		}
		b.log.Info("saved matrix", zap.String("path", st.Locate(key)))
	}

	return m, nil
}

// load reads key from the store. ok is false when the key is absent.
func (b *Builder) load(ctx context.Context, cfg Config, key string) (*matrix.Dense, bool, error) {
	st := b.storeFor(cfg)
	exists, err := st.Exists(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("stat %s: %w: %w", st.Locate(key), ErrIO, err)
	}
	if !exists {
		b.log.Debug("no cached matrix", zap.String("path", st.Locate(key)))

		return nil, false, nil
	}
	m, err := store.LoadMatrix(ctx, st, key)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w: %w", st.Locate(key), ErrIO, err)
	}
	if n := len(b.states); m.Rows() != n {
		return nil, false, fmt.Errorf("load %s: %dx%d for %d states: %w",
			st.Locate(key), m.Rows(), m.Cols(), n, ErrCacheMismatch)
	}
	b.log.Info("loaded matrix", zap.String("path", st.Locate(key)))

	return m, true, nil
}

// storeFor returns the injected store or a filesystem store rooted at cfg.MatricesDir.
func (b *Builder) storeFor(cfg Config) store.Store {
	if b.store != nil {
		return b.store
	}

	return store.NewFilesystem(cfg.MatricesDir)
}

// termFunc binds the per-pair evaluator for the builder's kind.
func (b *Builder) termFunc(cfg Config) func(s1, s2 quantum.State) float64 {
	if b.kind == Zeeman {
		return ZeemanTerm
	}
	r := b.radial

	return func(s1, s2 quantum.State) float64 { return StarkTerm(s1, s2, cfg, r) }
}

// Build is the one-shot form of NewBuilder followed by Builder.Build.
func Build(ctx context.Context, kind Kind, basis Basis, cfg Config, opts ...Option) (*matrix.Dense, error) {
	b, err := NewBuilder(kind, basis, opts...)
	if err != nil {
		return nil, err
	}

	return b.Build(ctx, cfg)
}
