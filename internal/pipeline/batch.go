package pipeline

import (
	"context"
	"sync"

	pkgerrors "github.com/orizehavi/listingforge/internal/errors"
)

// BatchResult collects the outcomes of a batch run. Failed runs do not stop
// the rest of the batch; their errors are joined in Err.
type BatchResult struct {
	Results []*Result
	Err     error
}

// RunBatch executes count listing runs through a bounded worker pool.
// workers < 1 is treated as 1. Canceling the context stops workers between
// runs; in-flight runs abort through their own context checks.
func (p *Runner) RunBatch(ctx context.Context, count, workers int, brief string) BatchResult {
	if count <= 0 {
		return BatchResult{}
	}
	if workers < 1 {
		workers = 1
	}
	if workers > count {
		workers = count
	}

	jobs := make(chan int)
	var (
		mu      sync.Mutex
		results []*Result
		errs    []error
		wg      sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				res, err := p.Run(ctx, brief)
				mu.Lock()
				if err != nil {
					errs = append(errs, err)
				} else {
					results = append(results, res)
				}
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return BatchResult{Results: results, Err: pkgerrors.Join(errs...)}
}
