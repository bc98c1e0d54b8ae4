package pixelpack

import "math"

// PlacedPart is a Part placed with a concrete pose: a world-space offset,
// a rotation index into the Part's bitmap catalog, and a stable insertion
// index used to restore input order when a part is reclaimed for retry.
// It holds a non-owning reference to its Part.
type PlacedPart struct {
	X, Y           float64
	Rotation       int
	InsertionIndex int

	part *Part
}

// NewPlacedPart creates a PlacedPart referencing part, at the origin with
// rotation 0.
func NewPlacedPart(part *Part, insertionIndex int) *PlacedPart {
	return &PlacedPart{part: part, InsertionIndex: insertionIndex}
}

// Part returns the back-referenced Part.
func (pp *PlacedPart) Part() *Part { return pp.part }

// Bitmap returns the bitmap for the part's current rotation.
func (pp *PlacedPart) Bitmap() *Bitmap { return pp.part.Bitmap(pp.Rotation) }

// Width/Height return the current rotation's footprint in world units.
func (pp *PlacedPart) Width() float64 {
	return float64(pp.Bitmap().W) * pp.part.Precision
}

func (pp *PlacedPart) Height() float64 {
	return float64(pp.Bitmap().H) * pp.part.Precision
}

// Placement reports the part's pose for output: the world-space centroid
// and the rotation in degrees.
func (pp *PlacedPart) Placement() Placement {
	bm := pp.Bitmap()
	gx, gy := bm.Centroid()
	degrees := math.Mod(float64(pp.Rotation)*pp.part.DeltaR*180/math.Pi, 360)
	return Placement{
		CenterX:         pp.X + gx*pp.part.Precision,
		CenterY:         pp.Y + gy*pp.part.Precision,
		RotationDegrees: degrees,
	}
}
