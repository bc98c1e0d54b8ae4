package pixelpack

// Placement is one part's resolved pose, in world units with rotation
// reported in degrees, kept as a standalone type so callers can inspect
// a single part's pose without building the full output map.
type Placement struct {
	CenterX, CenterY float64
	RotationDegrees  float64
}

// PlacingResult is the engine's external output: one Placement per
// unlocked part id (locked parts are omitted — the caller already knows
// their pose) plus the plate footprint that was used.
type PlacingResult struct {
	Models      map[string]Placement
	PlateWidth  float64
	PlateHeight float64

	// BestSoFar is the search index at which this solution was found,
	// when the engine ran a plate-sizing search; nil otherwise.
	BestSoFar *int
}

// Solution is an ordered list of plates, plus the search index at which
// it was produced (if any).
type Solution struct {
	Plates    []*Plate
	BestSoFar *int
}

// score is plates.len() + (1 - 1/(1+lastPlate.count)), lower is better.
// This is one orderable number, but the canonical "best" comparison used by the
// Runner is Area-then-count (Less), not this packed score; nothing in the
// package calls score.
func (s *Solution) score() float64 {
	if len(s.Plates) == 0 {
		return 0
	}
	last := s.Plates[len(s.Plates)-1]
	return float64(len(s.Plates)) + (1 - 1/(1+float64(last.CountParts())))
}

// Less reports whether s is a strictly better solution than other: by the
// last plate's area, then by plate count.
func (s *Solution) Less(other *Solution) bool {
	if other == nil {
		return true
	}
	if len(s.Plates) == 0 {
		return false
	}
	if len(other.Plates) == 0 {
		return true
	}
	sa := s.Plates[len(s.Plates)-1].Area()
	oa := other.Plates[len(other.Plates)-1].Area()
	if sa != oa {
		return sa < oa
	}
	if len(s.Plates) != len(other.Plates) {
		return len(s.Plates) < len(other.Plates)
	}
	return s.Plates[len(s.Plates)-1].CountParts() > other.Plates[len(other.Plates)-1].CountParts()
}

// Result converts s into the external PlacingResult, omitting locked
// parts.
func (s *Solution) Result() PlacingResult {
	models := make(map[string]Placement)
	var w, h float64
	for _, plate := range s.Plates {
		w, h = float64(plate.W)*plate.Precision, float64(plate.H)*plate.Precision
		for _, pp := range plate.PlacedParts {
			if pp.Part().Locked {
				continue
			}
			models[pp.Part().ID] = pp.Placement()
		}
	}
	return PlacingResult{Models: models, PlateWidth: w, PlateHeight: h, BestSoFar: s.BestSoFar}
}
