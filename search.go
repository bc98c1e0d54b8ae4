package pixelpack

// runSinglePlateSearch finds a plate size that fits every unlocked part,
// using the algorithm selected by ExpansionMode: ExpansionLinear is a
// plain sequential grow-and-retry loop with no notion of a search index;
// ExpansionExponential contracts/doubles/binary-searches around a fixed
// baseline to find the minimal feasible plate.
func runSinglePlateSearch(pl *Placer) (*Solution, error) {
	if pl.req.ExpansionMode == ExpansionLinear {
		return runLinearSearch(pl)
	}
	return runExponentialSearch(pl)
}

// runLinearSearch tries the request's own shape first, then repeatedly
// widens it by one more LinearExpandStep and retries, stopping at the
// first size that fits every unlocked part. Unlike the exponential path
// there's no contraction, no doubling, and no search for a smaller plate
// once one is found - each step is just this step plus one.
func runLinearSearch(pl *Placer) (*Solution, error) {
	step := 0
	for {
		if pl.req.SearchIterationCap > 0 && step > pl.req.SearchIterationCap {
			return nil, ErrNoSolutionFound
		}

		shape := pl.req.Shape
		if step > 0 {
			shape = shape.ExtendRight(pl.req.LinearExpandStep * float64(step))
		}
		plate, err := pl.newPlate(shape)
		if err == nil {
			if leftover := pl.placeAllOrdered(plate, pl.order); len(leftover) == 0 {
				if step > 0 {
					plate.Align()
				} else {
					plate.Center()
				}
				idx := step
				return &Solution{Plates: []*Plate{plate}, BestSoFar: &idx}, nil
			}
		}
		step++
	}
}

// runExponentialSearch finds the smallest plate size (expressed as an
// integer search index around a fixed baseline N) that fits every
// unlocked part. Index N is the request's own shape unchanged; indices
// below N are the shape contracted by SearchContractStep per step below
// N (a tighter plate, tried in case the caller's requested size was
// generous); indices above N are the shape grown by SearchContractStep
// per step, reached via exponential doubling followed by a binary search
// for the minimal feasible index.
//
// Every probed index is memoized so repeated probes (the doubling phase
// revisits indices the binary-search phase also wants) never rebuild a
// plate twice.
func runExponentialSearch(pl *Placer) (*Solution, error) {
	N := pl.req.SearchBaseline
	if N <= 0 {
		N = 1
	}

	cache := make(map[int]*Solution)
	failed := make(map[int]bool)
	probes := 0

	probe := func(i int) (*Solution, bool) {
		if sol, ok := cache[i]; ok {
			return sol, true
		}
		if failed[i] {
			return nil, false
		}
		if pl.req.SearchIterationCap > 0 && probes >= pl.req.SearchIterationCap {
			failed[i] = true
			return nil, false
		}
		probes++

		shape, ok := pl.shapeForIndex(N, i)
		if !ok {
			failed[i] = true
			return nil, false
		}
		plate, err := pl.newPlate(shape)
		if err != nil {
			failed[i] = true
			return nil, false
		}
		if leftover := pl.placeAllOrdered(plate, pl.order); len(leftover) > 0 {
			failed[i] = true
			return nil, false
		}

		if i > N {
			plate.Align()
		} else {
			plate.Center()
		}
		idx := i
		sol := &Solution{Plates: []*Plate{plate}, BestSoFar: &idx}
		cache[i] = sol
		return sol, true
	}

	if sol, ok := probe(N); ok {
		best := binarySearchDown(0, N, func(i int) bool { _, ok := probe(i); return ok })
		if bestSol, ok := probe(best); ok {
			return bestSol, nil
		}
		return sol, nil
	}

	hi, ok := exponentialSearchUp(N, func(i int) bool { _, ok := probe(i); return ok })
	if !ok {
		return nil, ErrNoSolutionFound
	}
	sol, _ := probe(hi)
	return sol, nil
}

// shapeForIndex maps an exponential-search index to a concrete plate
// shape around baseline N, or (_, false) if the contraction at this
// index would collapse the plate to zero or negative size.
func (pl *Placer) shapeForIndex(N, i int) (PlateShape, bool) {
	switch {
	case i == N:
		return pl.req.Shape, true
	case i < N:
		return pl.req.Shape.Contract(pl.req.SearchContractStep * float64(N-i))
	default:
		return pl.req.Shape.ExtendRight(pl.req.SearchContractStep * float64(i-N)), true
	}
}

// binarySearchDown finds the smallest index in [lo,hi] for which probe
// returns true, assuming probe is monotonically non-decreasing over the
// range (a larger plate is never harder to fit than a smaller one).
// Returns hi if no smaller index succeeds.
func binarySearchDown(lo, hi int, probe func(int) bool) int {
	for lo < hi {
		mid := lo + (hi-lo)/2
		if probe(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return hi
}

// exponentialSearchUp finds the smallest index > start for which probe
// succeeds (start itself is never probed), by doubling the search window until a success is seen and
// then binary-searching the gap. Returns (_, false) if probe never
// succeeds within the doubling phase's own budget (the per-probe cap is
// enforced by the caller's probe closure).
func exponentialSearchUp(start int, probe func(int) bool) (int, bool) {
	lo, hi := start, start
	step := 1
	for i := 0; i < 32; i++ {
		hi = lo + step
		if probe(hi) {
			return binarySearchDown(lo+1, hi, probe), true
		}
		lo = hi
		step *= 2
	}
	return 0, false
}
