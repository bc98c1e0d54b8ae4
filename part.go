package pixelpack

import "math"

// RawBitmap is the external input for one part silhouette: a row-major
// width*height byte buffer (0 empty, nonzero occupied) plus the part's
// original center in world units.
type RawBitmap struct {
	Width, Height int
	Cells         []byte
	CenterX       float64
	CenterY       float64
}

func (r RawBitmap) toBitmap() (*Bitmap, error) {
	if len(r.Cells) != r.Width*r.Height {
		return nil, ErrBitmapSize
	}
	b := NewBitmap(r.Width, r.Height)
	b.CenterX, b.CenterY = float64(r.Width)/2, float64(r.Height)/2
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			b.SetPoint(x, y, r.Cells[y*r.Width+x])
		}
	}
	return b, nil
}

// Part is an immutable catalog of a silhouette's rotated, dilated bitmaps.
// It never changes after NewPart returns (invariant I2: at least one
// rotation, every rotation's bitmap has positive extent).
type Part struct {
	ID        string
	Locked    bool
	Precision float64
	DeltaR    float64

	OrigCenterX, OrigCenterY float64
	W, H                     float64 // bounding size of rotation 0, including spacing

	Rotations []*Bitmap

	// AvgSurface is the mean pixel area (width*height) across every
	// rotation; used to rank parts for placement order (SurfaceDesc/
	// SurfaceAsc sort modes). Plate-fit is the placement search's concern,
	// not construction's - a single-plate request may grow the plate well
	// past its initial size.
	AvgSurface float64
}

// NewPart builds a Part's full rotation catalog from a raw input bitmap.
func NewPart(id string, locked bool, raw RawBitmap, precision, spacingWorld, deltaR float64) (*Part, error) {
	src, err := raw.toBitmap()
	if err != nil {
		return nil, err
	}
	trimmed := src.Trim()

	numRotations := int(math.Ceil(2 * math.Pi / deltaR))
	if locked {
		numRotations = 1
	}
	if numRotations < 1 {
		numRotations = 1
	}

	spacingPx := int(math.Round(spacingWorld / precision))
	if spacingPx < 0 {
		spacingPx = 0
	}
	half := spacingPx / 2
	oddRemainder := spacingPx%2 == 1

	p := &Part{
		ID:          id,
		Locked:      locked,
		Precision:   precision,
		DeltaR:      deltaR,
		OrigCenterX: raw.CenterX,
		OrigCenterY: raw.CenterY,
		Rotations:   make([]*Bitmap, numRotations),
	}

	var sumArea float64
	var countValid int
	for k := 0; k < numRotations; k++ {
		rotated := trimmed.Rotate(float64(k) * deltaR).Trim()
		grown := rotated.Grow(spacingPx, spacingPx)
		dilated := grown.Dilate(half)
		if oddRemainder {
			dilated = dilated.DilateTopLeft()
		}
		final := dilated.Trim()
		p.Rotations[k] = final

		if k == 0 {
			p.W, p.H = float64(final.W), float64(final.H)
		}
		if final.W > 0 && final.H > 0 {
			sumArea += float64(final.W * final.H)
			countValid++
		}
	}

	if countValid == 0 {
		return nil, &PartError{PartID: id, Err: ErrNoRotationFits}
	}
	p.AvgSurface = sumArea / float64(countValid)
	return p, nil
}

// Bitmap returns the rotation-index k bitmap, wrapping modulo the
// rotation count.
func (p *Part) Bitmap(k int) *Bitmap {
	n := len(p.Rotations)
	return p.Rotations[((k%n)+n)%n]
}

// NumRotations returns the number of discrete rotations in the catalog.
func (p *Part) NumRotations() int { return len(p.Rotations) }
