package verify

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/dealer-scout/internal/model"
)

// Result pairs a candidate with its verdict. Err is set when the
// verification itself could not run.
type Result struct {
	Candidate model.Candidate `json:"candidate" yaml:"candidate"`
	Verdict   model.Verdict   `json:"verdict" yaml:"verdict"`
	Err       error           `json:"-" yaml:"-"`
}

// Key identifies a candidate within a batch.
func Key(c model.Candidate) string {
	return strings.ToLower(strings.TrimSpace(c.Name)) + "|" + strings.ToLower(strings.TrimSpace(c.Website))
}

// VerifyAll verifies candidates concurrently and returns results in input
// order. Verdicts are collected by candidate key, so completion order does
// not matter. Duplicate keys are rejected before any request is made.
func (v *Verifier) VerifyAll(ctx context.Context, candidates []model.Candidate, concurrency int) ([]Result, error) {
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		k := Key(c)
		if _, dup := seen[k]; dup {
			return nil, eris.Errorf("verify: duplicate candidate %q", c.Name)
		}
		seen[k] = struct{}{}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu       sync.Mutex
		verdicts = make(map[string]model.Verdict, len(candidates))
		failures = make(map[string]error)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, c := range candidates {
		g.Go(func() error {
			verdict, err := v.Verify(gctx, c)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[Key(c)] = err
				zap.L().Warn("verify: candidate not verified", zap.String("competitor", c.Name), zap.Error(err))
				return nil
			}
			verdicts[Key(c)] = verdict
			return nil
		})
	}
	_ = g.Wait()

	results := make([]Result, len(candidates))
	for i, c := range candidates {
		k := Key(c)
		results[i] = Result{Candidate: c, Verdict: verdicts[k], Err: failures[k]}
	}
	return results, ctx.Err()
}
