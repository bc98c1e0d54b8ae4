package pixelpack

import (
	"context"
	"sort"

	"github.com/kelindar/bitmap"

	"github.com/kelindar/pixelpack/internal/detrand"
	"github.com/kelindar/pixelpack/internal/enumerate"
	"github.com/kelindar/pixelpack/internal/score"
)

// Placer runs one configuration of the parameter sweep: a fixed sort
// order, rotation offset and direction, and (pixel-pack strategy only) a
// gravity direction; the spiral strategy tries every bounding-box score
// order itself. It holds no
// mutable plate state between calls other than its per-plate
// unplaceable-part cache, so the same Placer can be reused across the
// plate-sizing search's repeated resize-and-retry probes.
type Placer struct {
	req *Request
	cfg placerConfig

	order    []*Part
	partIdx  map[*Part]int
	cacheID  int64
	cacheHit *bitmap.Bitmap
}

func newPlacer(req *Request, cfg placerConfig) *Placer {
	if req.Ctx == nil {
		req.Ctx = context.Background()
	}
	partIdx := make(map[*Part]int, len(req.Parts))
	var unlocked []*Part
	for i, p := range req.Parts {
		partIdx[p] = i
		if !p.Locked {
			unlocked = append(unlocked, p)
		}
	}
	return &Placer{
		req:     req,
		cfg:     cfg,
		order:   sortParts(unlocked, cfg.sort),
		partIdx: partIdx,
	}
}

func sortParts(parts []*Part, sm SortMode) []*Part {
	out := append([]*Part(nil), parts...)
	switch sm.kind {
	case sortSurfaceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AvgSurface > out[j].AvgSurface })
	case sortSurfaceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AvgSurface < out[j].AvgSurface })
	case sortWidthDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].W > out[j].W })
	case sortHeightDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].H > out[j].H })
	case sortShuffle:
		detrand.Shuffle(sm.shuffleSeed, out)
	}
	return out
}

// rotationOrder returns the n rotation indices in the order this
// configuration tries them: starting at rotationOffset (mod n), stepping
// forward or backward depending on rotationCW.
func (pl *Placer) rotationOrder(n int) []int {
	out := make([]int, n)
	for i := range out {
		step := i
		if !pl.cfg.rotationCW {
			step = -step
		}
		out[i] = ((pl.cfg.rotationOffset+step)%n + n) % n
	}
	return out
}

func (pl *Placer) cacheFor(plateID int64) *bitmap.Bitmap {
	if pl.cacheHit == nil || pl.cacheID != plateID {
		bm := &bitmap.Bitmap{}
		bm.Grow(uint32(len(pl.partIdx)))
		pl.cacheHit = bm
		pl.cacheID = plateID
	}
	return pl.cacheHit
}

func (pl *Placer) isCachedUnplaceable(plateID int64, part *Part) bool {
	return pl.cacheFor(plateID).Contains(uint32(pl.partIdx[part]))
}

func (pl *Placer) markUnplaceable(plateID int64, part *Part) {
	pl.cacheFor(plateID).Set(uint32(pl.partIdx[part]))
}

// lockedPose returns the fixed world-space anchor for a locked part: the
// bitmap's own reference center is pinned to the part's original input
// center, so a locked part keeps the pose it was given.
func lockedPose(part *Part) (x, y float64) {
	bm := part.Bitmap(0)
	return part.OrigCenterX - bm.CenterX*part.Precision, part.OrigCenterY - bm.CenterY*part.Precision
}

// newPlate builds an empty plate of shape and places every locked part
// onto it at its fixed pose.
func (pl *Placer) newPlate(shape PlateShape) (*Plate, error) {
	plate := NewPlate(shape, pl.req.CenterX, pl.req.CenterY)
	for _, p := range pl.req.Parts {
		if !p.Locked {
			continue
		}
		x, y := lockedPose(p)
		pp := &PlacedPart{X: x, Y: y, part: p}
		if !plate.CanPlace(pp) {
			return nil, &PartError{PartID: p.ID, Err: ErrNoSolutionFound}
		}
		plate.Place(pp)
	}
	return plate, nil
}

// tryPlacePart searches every candidate anchor and rotation for the best
// legal pose for part on plate, per the placer's strategy and cfg. It
// returns (nil, false) without mutating plate if no legal pose exists,
// recording the failure in the per-plate cache.
func (pl *Placer) tryPlacePart(plate *Plate, part *Part, insertionIdx int) (*PlacedPart, bool) {
	if pl.isCachedUnplaceable(plate.ID, part) {
		return nil, false
	}

	var best *PlacedPart
	rotations := pl.rotationOrder(part.NumRotations())

	switch pl.req.Strategy {
	case StrategyPixelPack:
		bestScore := 0.0
		// Anchors are plate pixel coordinates; shift them by the plate's
		// lower-left world corner so the first candidate sits on it.
		leftX := plate.PlateCenterX - float64(plate.W)*plate.Precision/2
		leftY := plate.PlateCenterY - float64(plate.H)*plate.Precision/2
		for anchor := range enumerate.RowSweep(float64(plate.W), float64(plate.H), pl.req.Delta/plate.Precision, 0, 0) {
			for _, rot := range rotations {
				pp := &PlacedPart{
					X: leftX + anchor.X*plate.Precision, Y: leftY + anchor.Y*plate.Precision,
					Rotation: rot, InsertionIndex: insertionIdx, part: part,
				}
				if !plate.CanPlace(pp) {
					continue
				}
				bm := pp.Bitmap()
				gx, gy := bm.Centroid()
				ox, oy := plate.pixelOffset(pp)
				s := pl.cfg.gravity.GravityScore(float64(ox)+gx, float64(oy)+gy)
				if best == nil || pl.cfg.gravity.Less(s, bestScore) {
					best, bestScore = pp, s
				}
			}
		}
	case StrategySpiralPlace:
		// A stuck part retries every bounding-box order in turn against
		// this same plate before giving up - the first order that finds
		// any legal pose wins, rather than optimizing across orders.
		for _, order := range score.AllOrders {
			if pp, ok := pl.spiralScan(plate, part, insertionIdx, rotations, order); ok {
				best = pp
				break
			}
		}
	}

	if best == nil {
		pl.markUnplaceable(plate.ID, part)
		return nil, false
	}
	return best, true
}

// spiralScan runs one outward-spiral pass over plate, scoring every legal
// anchor/rotation candidate under order and returning the best one found.
func (pl *Placer) spiralScan(plate *Plate, part *Part, insertionIdx int, rotations []int, order score.Order) (*PlacedPart, bool) {
	var best *PlacedPart
	var bestKey score.BBoxKey
	cMinX, cMinY, cMaxX, cMaxY, hasContent := plate.ContentBBox()
	leftX := plate.PlateCenterX - float64(plate.W)*plate.Precision/2
	leftY := plate.PlateCenterY - float64(plate.H)*plate.Precision/2
	for anchor := range enumerate.Spiral(float64(plate.W), float64(plate.H), pl.req.Delta/plate.Precision, 0, 0) {
		for _, rot := range rotations {
			pp := &PlacedPart{
				X: leftX + anchor.X*plate.Precision, Y: leftY + anchor.Y*plate.Precision,
				Rotation: rot, InsertionIndex: insertionIdx, part: part,
			}
			if !plate.CanPlace(pp) {
				continue
			}
			bm := pp.Bitmap()
			minX, minY := pp.X, pp.Y
			maxX, maxY := pp.X+float64(bm.W)*plate.Precision, pp.Y+float64(bm.H)*plate.Precision
			if hasContent {
				minX, minY = min(minX, cMinX), min(minY, cMinY)
				maxX, maxY = max(maxX, cMaxX), max(maxY, cMaxY)
			}
			moment := score.MomentOfInertia(maxX-minX, maxY-minY)
			key := score.NewBBoxKey(order, true, moment, (minX+maxX)/2, (minY+maxY)/2)
			if best == nil || key.Less(bestKey) {
				best, bestKey = pp, key
			}
		}
	}
	return best, best != nil
}

// runMultiPlate opens plates on demand: parts that don't fit the current
// plate spill onto a freshly opened one, until
// every part is placed or a plate can't even accept its first part.
func (pl *Placer) runMultiPlate() (*Solution, error) {
	remaining := pl.order
	var plates []*Plate
	for len(remaining) > 0 {
		plate, err := pl.newPlate(pl.req.Shape)
		if err != nil {
			return nil, err
		}
		before := len(remaining)
		leftover := pl.placeAllOrdered(plate, remaining)
		if len(leftover) == before {
			return nil, &PartError{PartID: remaining[0].ID, Err: ErrNoSolutionFound}
		}
		plates = append(plates, plate)
		remaining = leftover
	}
	return &Solution{Plates: plates}, nil
}

// placeAllOrdered tries to place each of parts on plate in order and
// returns the ones that did not fit. Multi-plate mode calls it with a
// shrinking leftover set on each new plate; the single-plate searches
// call it with pl.order.
func (pl *Placer) placeAllOrdered(plate *Plate, parts []*Part) (leftover []*Part) {
	for i, part := range parts {
		select {
		case <-pl.req.Ctx.Done():
			return append(leftover, parts[i:]...)
		default:
		}
		pp, ok := pl.tryPlacePart(plate, part, i)
		if !ok {
			leftover = append(leftover, part)
			continue
		}
		plate.Place(pp)
	}
	return leftover
}

// Run executes this placer's configuration against its Request, returning
// a Solution or an error (never both).
func (pl *Placer) Run() (*Solution, error) {
	if !pl.req.SinglePlate {
		return pl.runMultiPlate()
	}
	return runSinglePlateSearch(pl)
}
