package interaction

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hsml/matrix"
)

// assemble evaluates the upper triangle row by row and mirrors each cell.
// Rows touch disjoint cells, so workers share the matrix without locking.
func (b *Builder) assemble(ctx context.Context, cfg Config) (*matrix.Dense, error) {
	n := len(b.states)
	var mopts []matrix.Option
	if !cfg.StrictDomain {
		mopts = append(mopts, matrix.WithNoValidateNaNInf())
	}
	m, err := matrix.NewDense(n, n, mopts...)
	if err != nil {
		return nil, err
	}

	term := b.termFunc(cfg)
	row := func(i int) error {
		si := b.states[i]
		for j := i; j < n; j++ {
			v := term(si, b.states[j])
			if err := m.SetSymmetric(i, j, v); err != nil {
				if errors.Is(err, matrix.ErrNaNInf) {
					return fmt.Errorf("element (%d,%d) %v %v = %v: %w", i, j, si, b.states[j], v, ErrDomain)
				}

				return err
			}
		}
		b.metrics.addElements(b.kind, n-i)

		return nil
	}

	prog := b.progress
	if cfg.Progress.Disable {
		prog = nopProgress{}
	}
	desc := cfg.Progress.Description
	if desc == "" {
		desc = "Calculating " + b.kind.String() + " terms"
	}
	prog.Start(n, desc)
	defer prog.Finish()

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := row(i); err != nil {
				return nil, err
			}
			prog.Add(1)
		}

		return m, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n && gctx.Err() == nil; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := row(i); err != nil {
				return err
			}
			prog.Add(1)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return m, nil
}
