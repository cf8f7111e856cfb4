package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CheckResult pairs an entry file with the outcome of checking it.
type CheckResult struct {
	Entry  string
	Result *BuildResult
	Err    error
}

// CheckAll checks every entry independently, at most jobs at a time.
// Each entry gets its own FileSet and Bag; results keep the input order.
// A failing entry does not stop the others; only cancellation of ctx does.
func CheckAll(ctx context.Context, entries []string, opts BuildOptions, jobs int) ([]CheckResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckResult, len(entries))
	if len(entries) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(entries)))
	for i, entry := range entries {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			entryOpts := opts
			entryOpts.Entry = entry
			res, err := Check(gctx, entryOpts)
			results[i] = CheckResult{Entry: entry, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Failed reports whether any entry failed.
func Failed(results []CheckResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
