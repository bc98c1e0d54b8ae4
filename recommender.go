package pixelpack

import "time"

// Recommender is the early-stop policy for a runner sweeping many placer
// configurations. Two independent triggers tell the runner to stop
// waiting on stragglers: the wall-clock deadline passing outright, or -
// once at least half of the placers have reported in - the best-so-far
// observations going quiet: either no solution at all for 10 consecutive
// reports, or the same concrete best-so-far value for 5 consecutive
// reports.
type Recommender struct {
	deadline time.Time
	total    int

	observed      int
	lastValue     *int
	noSolutionRun int
	sameValueRun  int
}

// NewRecommender starts the clock: timeout is seconds until the deadline
// kicks in, total is the number of placers in the sweep.
func NewRecommender(timeout float64, total int) *Recommender {
	r := &Recommender{total: total}
	if timeout > 0 {
		r.deadline = time.Now().Add(time.Duration(timeout * float64(time.Second)))
	}
	return r
}

// Observe records one placer's result (nil if it found no solution) and
// reports whether the runner should stop waiting on the rest.
func (r *Recommender) Observe(bestSoFar *int) (stop bool) {
	r.observed++

	if bestSoFar == nil {
		r.noSolutionRun++
		r.sameValueRun = 0
		r.lastValue = nil
	} else if r.lastValue != nil && *r.lastValue == *bestSoFar {
		r.sameValueRun++
		r.noSolutionRun = 0
	} else {
		r.lastValue = bestSoFar
		r.sameValueRun = 1
		r.noSolutionRun = 0
	}

	if !r.deadline.IsZero() && !time.Now().Before(r.deadline) {
		return true
	}
	if r.total > 0 && r.observed*2 < r.total {
		return false
	}
	return r.noSolutionRun >= 10 || r.sameValueRun >= 5
}
