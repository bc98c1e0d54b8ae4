package pixelpack

import "sync"

// Runner drives the parameter sweep: it builds one Placer per
// configuration and keeps the best Solution among every one that
// produces a result.
type Runner interface {
	Run(req *Request) (*Solution, error)
}

// NewRunner returns the Runner implementation for mode.
func NewRunner(mode ThreadingMode) Runner {
	switch mode {
	case ThreadingParallel:
		return parallelRunner{}
	case ThreadingCooperative:
		return cooperativeRunner{}
	default:
		return sequentialRunner{}
	}
}

// sequentialRunner runs every placer on the calling goroutine,
// propagating smallest_observed_plate to later placers isn't needed here
// since each placer performs its own independent plate-sizing search;
// what Less does is keep only the best of everything tried.
type sequentialRunner struct{}

func (sequentialRunner) Run(req *Request) (*Solution, error) {
	placers, err := req.BuildPlacers()
	if err != nil {
		return nil, err
	}
	rec := NewRecommender(req.Timeout, len(placers))

	var best *Solution
	var firstErr error
	for _, pl := range placers {
		if req.Ctx.Err() != nil {
			break
		}
		sol, err := pl.Run()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if rec.Observe(nil) {
				break
			}
			continue
		}
		if best == nil || sol.Less(best) {
			best = sol
		}
		if rec.Observe(sol.BestSoFar) {
			break
		}
	}
	if best == nil {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, ErrNoSolutionFound
	}
	return best, nil
}

// parallelRunner fans every placer out across a bounded goroutine pool,
// the same buffered-channel work-queue pattern used by the corpus's batch
// compression tool: a fixed number of workers pull placer indices off a
// channel and report results over another, with a WaitGroup marking
// completion.
type parallelRunner struct{}

func (parallelRunner) Run(req *Request) (*Solution, error) {
	placers, err := req.BuildPlacers()
	if err != nil {
		return nil, err
	}

	type outcome struct {
		sol *Solution
		err error
	}
	jobs := make(chan int, len(placers))
	results := make(chan outcome, len(placers))

	workers := numWorkers(len(placers))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if req.Ctx.Err() != nil {
					results <- outcome{err: req.Ctx.Err()}
					continue
				}
				sol, err := placers[i].Run()
				results <- outcome{sol: sol, err: err}
			}
		}()
	}
	for i := range placers {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	rec := NewRecommender(req.Timeout, len(placers))
	var best *Solution
	var firstErr error
	for o := range results {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			rec.Observe(nil)
			continue
		}
		if best == nil || o.sol.Less(best) {
			best = o.sol
		}
		rec.Observe(o.sol.BestSoFar)
	}
	if best == nil {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, ErrNoSolutionFound
	}
	return best, nil
}

func numWorkers(n int) int {
	if n <= 0 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// cooperativeRunner runs sequentially but treats req.Ctx as authoritative:
// cancellation is observed between placers and propagated into each
// placer's own loop boundaries, returning whatever best solution has
// been found so far as a clean partial result rather than an error. If
// cancellation comes before any placer has produced a solution, it
// returns the context's error.
type cooperativeRunner struct{}

func (cooperativeRunner) Run(req *Request) (*Solution, error) {
	placers, err := req.BuildPlacers()
	if err != nil {
		return nil, err
	}

	var best *Solution
	for _, pl := range placers {
		select {
		case <-req.Ctx.Done():
			if best != nil {
				return best, nil
			}
			return nil, req.Ctx.Err()
		default:
		}
		sol, err := pl.Run()
		if err != nil {
			continue
		}
		if best == nil || sol.Less(best) {
			best = sol
		}
	}
	if best == nil {
		return nil, ErrNoSolutionFound
	}
	return best, nil
}
