package interaction

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/hsml/radial"
	"github.com/katalvlaran/hsml/store"
)

// Option customizes a Builder.
type Option func(*Builder)

// WithRadial sets the radial overlap used by Stark terms.
func WithRadial(r radial.Overlap) Option {
	return func(b *Builder) { b.radial = r }
}

// WithStore replaces the filesystem store rooted at Config.MatricesDir.
func WithStore(s store.Store) Option {
	return func(b *Builder) { b.store = s }
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithProgress sets the progress sink.
func WithProgress(p Progress) Option {
	return func(b *Builder) {
		if p != nil {
			b.progress = p
		}
	}
}

// WithMetrics records builds into m.
func WithMetrics(m *Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}
