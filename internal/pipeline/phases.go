package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vk/prismc/internal/ctxlog"
	"github.com/vk/prismc/internal/unit"
)

// initPhase computes each unit's complexity weight in parallel. A file that
// cannot be stat-ed gets weight zero; nothing blocks the batch here.
func (p *Pipeline) initPhase(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.MaxParallel)

	for _, u := range p.store.Units() {
		u := u
		g.Go(func() error {
			var size int64
			if info, err := os.Stat(u.Path); err == nil {
				size = info.Size()
			}
			u.Weight = p.opts.Factors.Estimate(size, filepath.Ext(u.Path))
			return nil
		})
	}
	return g.Wait()
}

// linkPhase resolves every unit's imports in parallel and cross-links the
// reverse edges. The phase must fully drain before execute starts: reverse
// edges are only correct once every unit's dependencies are known.
func (p *Pipeline) linkPhase(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.MaxParallel)

	for _, u := range p.store.Units() {
		u := u
		g.Go(func() error {
			u.SetPhase(unit.Resolving)
			tokens := p.resolver.Resolve(u.Path)

			seen := make(map[string]struct{})
			var matched, unresolved []string
			for _, tok := range tokens {
				target, ok := p.matchImport(u.Path, tok)
				if !ok {
					unresolved = append(unresolved, tok)
					continue
				}
				if target == u.Path {
					continue
				}
				if _, dup := seen[target]; dup {
					continue
				}
				seen[target] = struct{}{}
				matched = append(matched, target)
			}

			p.store.SetDependencies(u.Path, matched, unresolved)
			if len(matched) > 0 {
				logger.Debug("Unit linked.", "path", u.Path, "dependencies", len(matched))
			}
			return nil
		})
	}
	return g.Wait()
}

// matchImport maps a textual import token onto a batch path. It tries the
// token as-is, joined against the importer's directory, and with each known
// source extension appended when the token carries none.
func (p *Pipeline) matchImport(importer, token string) (string, bool) {
	candidates := []string{token, filepath.Join(filepath.Dir(importer), token)}

	for _, cand := range candidates {
		if p.inBatch(cand) {
			return cand, true
		}
	}
	if filepath.Ext(token) == "" || !p.knownExt(filepath.Ext(token)) {
		for _, cand := range candidates {
			for _, ext := range p.opts.Extensions {
				if p.inBatch(cand + ext) {
					return cand + ext, true
				}
			}
		}
	}
	return "", false
}

func (p *Pipeline) inBatch(path string) bool {
	return p.store.Contains(path)
}

func (p *Pipeline) knownExt(ext string) bool {
	for _, e := range p.opts.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// executePhase runs one compile attempt per unit under the admission gate.
// Every unit has exactly one result when the phase drains.
func (p *Pipeline) executePhase(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, u := range p.store.Units() {
		u := u
		g.Go(func() error {
			if err := p.sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer p.sem.Release(1)

			u.SetPhase(unit.Compiling)
			p.store.SetResult(u.Path, p.attempt(gctx, u, nil))
			return nil
		})
	}
	return g.Wait()
}

// attempt reads the unit's source, optionally transforms it, and runs one
// executor attempt. An unreadable file becomes a failing result, never an
// error.
func (p *Pipeline) attempt(ctx context.Context, u *unit.Unit, transform func([]byte) []byte) unit.Result {
	src, err := p.opts.ReadFile(u.Path)
	if err != nil {
		return unit.Result{Success: false, Errors: []string{err.Error()}}
	}
	if transform != nil {
		src = transform(src)
	}
	return p.exec.Attempt(ctx, u.Path, src, u.Weight)
}
