package pixelpack

import "sync/atomic"

var plateIDCounter int64

func nextPlateID() int64 { return atomic.AddInt64(&plateIDCounter, 1) }

// Plate is a PlateShape instantiated as an occupancy bitmap with placed
// parts. Its id is a process-wide monotonically increasing counter:
// rebuilding a plate at a new size (MakeFromShape) produces a fresh id,
// which is exactly what invalidates a Placer's per-plate unplaceable-part
// cache.
type Plate struct {
	ID        int64
	W, H      int // pixels
	Precision float64

	PlacedParts []*PlacedPart
	Occupancy   *Bitmap

	PlateCenterX, PlateCenterY float64 // world units

	hasContent                     bool
	cMinX, cMinY, cMaxX, cMaxY float64 // world-unit bbox of placed content, excluding shape masking
}

// NewPlate builds an empty plate of the given shape, pre-masked per the
// shape's rules, centered at (centerX, centerY) in world units.
func NewPlate(shape PlateShape, centerX, centerY float64) *Plate {
	occ := shape.MakeMaskedBitmap(shape.Resolution())
	return &Plate{
		ID:           nextPlateID(),
		W:            occ.W,
		H:            occ.H,
		Precision:    shape.Resolution(),
		Occupancy:    occ,
		PlateCenterX: centerX,
		PlateCenterY: centerY,
	}
}

// pixelOffset converts pp's current world offset to the plate's pixel
// coordinate system.
func (p *Plate) pixelOffset(pp *PlacedPart) (int, int) {
	px := (pp.X - (p.PlateCenterX - float64(p.W)*p.Precision/2)) / p.Precision
	py := (pp.Y - (p.PlateCenterY - float64(p.H)*p.Precision/2)) / p.Precision
	return int(px), int(py)
}

// CanPlace reports whether pp can be painted onto the plate at its
// current offset and rotation: its AABB must fit the plate bounds and its
// bitmap must not overlap anything already painted.
func (p *Plate) CanPlace(pp *PlacedPart) bool {
	ox, oy := p.pixelOffset(pp)
	bm := pp.Bitmap()
	if ox < 0 || oy < 0 || ox+bm.W > p.W || oy+bm.H > p.H {
		return false
	}
	return !p.Occupancy.Overlaps(bm, ox, oy)
}

// Place paints pp's bitmap into the occupancy grid and records it. Callers
// must have confirmed CanPlace(pp) first (invariant I3 is enforced by this
// ordering, never by Place itself).
func (p *Plate) Place(pp *PlacedPart) {
	ox, oy := p.pixelOffset(pp)
	p.Occupancy.Write(pp.Bitmap(), ox, oy)
	p.PlacedParts = append(p.PlacedParts, pp)

	bm := pp.Bitmap()
	minX, minY := pp.X, pp.Y
	maxX, maxY := pp.X+float64(bm.W)*p.Precision, pp.Y+float64(bm.H)*p.Precision
	if !p.hasContent {
		p.cMinX, p.cMinY, p.cMaxX, p.cMaxY = minX, minY, maxX, maxY
		p.hasContent = true
		return
	}
	p.cMinX, p.cMinY = min(p.cMinX, minX), min(p.cMinY, minY)
	p.cMaxX, p.cMaxY = max(p.cMaxX, maxX), max(p.cMaxY, maxY)
}

// ContentBBox returns the world-unit bounding box of everything placed so
// far, and whether anything has been placed at all.
func (p *Plate) ContentBBox() (minX, minY, maxX, maxY float64, ok bool) {
	return p.cMinX, p.cMinY, p.cMaxX, p.cMaxY, p.hasContent
}

// CountParts returns the number of placed parts.
func (p *Plate) CountParts() int { return len(p.PlacedParts) }

// Area returns the plate's footprint area in world units.
func (p *Plate) Area() float64 {
	return float64(p.W) * p.Precision * float64(p.H) * p.Precision
}

// Center translates every placed part so the bounding box of painted
// pixels is centered on the plate grid.
func (p *Plate) Center() {
	top, bottom, left, right := p.Occupancy.GetBound()
	dx := (right - left) / 2
	dy := (bottom - top) / 2
	p.shiftPixels(dx, dy)
}

// Align translates placed parts so they sit flush against the lower-left
// corner of the plate - used for search indices above the baseline, where
// the plate was right-extended and the placed content should stay pinned
// to its original corner rather than recentered.
func (p *Plate) Align() {
	top, _, left, _ := p.Occupancy.GetBound()
	p.shiftPixels(-left, -top)
}

func (p *Plate) shiftPixels(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	worldDX := float64(dx) * p.Precision
	worldDY := float64(dy) * p.Precision

	newOcc := NewBitmap(p.W, p.H)
	p.hasContent = false
	placed := p.PlacedParts
	p.PlacedParts = make([]*PlacedPart, 0, len(placed))
	for _, pp := range placed {
		pp.X += worldDX
		pp.Y += worldDY
		ox, oy := p.pixelOffset(pp)
		newOcc.Write(pp.Bitmap(), ox, oy)
		p.PlacedParts = append(p.PlacedParts, pp)
		bm := pp.Bitmap()
		minX, minY := pp.X, pp.Y
		maxX, maxY := pp.X+float64(bm.W)*p.Precision, pp.Y+float64(bm.H)*p.Precision
		if !p.hasContent {
			p.cMinX, p.cMinY, p.cMaxX, p.cMaxY = minX, minY, maxX, maxY
			p.hasContent = true
		} else {
			p.cMinX, p.cMinY = min(p.cMinX, minX), min(p.cMinY, minY)
			p.cMaxX, p.cMaxY = max(p.cMaxX, maxX), max(p.cMaxY, maxY)
		}
	}
	p.Occupancy = newOcc
}

// MakeFromShape builds a new plate from shape, re-placing every currently
// placed part onto it. Used to enlarge a plate in place during the
// single-plate search: the new plate gets a fresh id, invalidating the
// old plate's Placer cache.
func (p *Plate) MakeFromShape(shape PlateShape, centerX, centerY float64) *Plate {
	np := NewPlate(shape, centerX, centerY)
	np.PlacedParts = make([]*PlacedPart, 0, len(p.PlacedParts))
	for _, pp := range p.PlacedParts {
		np.Place(pp)
	}
	return np
}
