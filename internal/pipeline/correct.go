package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vk/prismc/internal/ctxlog"
	"github.com/vk/prismc/internal/rewrite"
	"github.com/vk/prismc/internal/unit"
)

// correctPhase re-attempts currently-failing units for up to
// MaxCorrectionRounds rounds, applying the mechanical rewrite before each
// retry. Rounds are strictly sequential; within a round, retries run in
// parallel under the same admission gate as the execute phase. Units still
// failing after the final round keep their last result.
func (p *Pipeline) correctPhase(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for round := 0; round < p.opts.MaxCorrectionRounds; round++ {
		failing := p.store.FailingPaths()
		if len(failing) == 0 {
			break
		}
		logger.Info("Correction round starting.", "round", round+1, "failing", len(failing))

		g, gctx := errgroup.WithContext(ctx)
		for _, path := range failing {
			path := path
			g.Go(func() error {
				if err := p.sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer p.sem.Release(1)

				u := p.store.Get(path)
				u.SetPhase(unit.Compiling)
				res := p.attempt(gctx, u, rewrite.Mechanical)
				p.store.SetResult(path, res)
				u.IncRetry()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		logger.Info("Correction round finished.", "round", round+1, "stillFailing", len(p.store.FailingPaths()))
	}
	return nil
}
