package pixelpack

import "math"

// PlateShape describes a build plate's outer boundary: either a rectangle
// or a circle. Shapes are cheap to clone and are scoped to a single
// placement attempt.
type PlateShape interface {
	Width() float64
	Height() float64
	Resolution() float64

	// MakeMaskedBitmap returns a fresh occupancy bitmap of
	// ceil(Width/precision) x ceil(Height/precision) cells, with any
	// shape-excluded cells pre-filled with the sentinel value 2.
	MakeMaskedBitmap(precision float64) *Bitmap

	// Expand returns a shape grown symmetrically by size world units on
	// every side.
	Expand(size float64) PlateShape

	// Contract returns a shape shrunk symmetrically by size world units
	// on every side, or (nil, false) if the result would be non-positive.
	Contract(size float64) (PlateShape, bool)

	// ExtendRight returns a shape whose width grows by size world units
	// (a Circle scales size by its ExpansionFactor) on the right edge
	// only, height unchanged — used by linear expansion and by the
	// plate-sizing search's right-extension regime (search indices > N).
	ExtendRight(size float64) PlateShape

	Clone() PlateShape
}

// Rectangle is an unmasked rectangular build plate.
type Rectangle struct {
	W, H, Res float64
}

func (r Rectangle) Width() float64      { return r.W }
func (r Rectangle) Height() float64     { return r.H }
func (r Rectangle) Resolution() float64 { return r.Res }

func (r Rectangle) MakeMaskedBitmap(precision float64) *Bitmap {
	w := int(math.Ceil(r.W / precision))
	h := int(math.Ceil(r.H / precision))
	return NewBitmap(max(w, 0), max(h, 0))
}

func (r Rectangle) Expand(size float64) PlateShape {
	return Rectangle{W: r.W + 2*size, H: r.H + 2*size, Res: r.Res}
}

func (r Rectangle) Contract(size float64) (PlateShape, bool) {
	w, h := r.W-2*size, r.H-2*size
	if w <= 0 || h <= 0 {
		return nil, false
	}
	return Rectangle{W: w, H: h, Res: r.Res}, true
}

func (r Rectangle) ExtendRight(size float64) PlateShape {
	return Rectangle{W: r.W + size, H: r.H, Res: r.Res}
}

func (r Rectangle) Clone() PlateShape { return r }

// Circle is a circular build plate: cells whose center lies outside the
// inscribed disc are masked with the sentinel value 2 so placements can
// never land there. ExpansionFactor lets a later rectangular extension
// widen the plate without losing the masked disc (the disc stays pinned
// to the original diameter; only the bounding rectangle grows).
type Circle struct {
	Diameter        float64
	Res             float64
	ExpansionFactor float64
	extraRight      float64
}

func (c Circle) Width() float64      { return c.Diameter + c.extraRight }
func (c Circle) Height() float64     { return c.Diameter }
func (c Circle) Resolution() float64 { return c.Res }

func (c Circle) MakeMaskedBitmap(precision float64) *Bitmap {
	w := int(math.Ceil(c.Width() / precision))
	h := int(math.Ceil(c.Height() / precision))
	b := NewBitmap(max(w, 0), max(h, 0))
	radiusPx := c.Diameter / 2 / precision
	cx, cy := c.Diameter/2/precision, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy > radiusPx*radiusPx {
				b.SetPoint(x, y, 2)
			}
		}
	}
	return b
}

func (c Circle) Expand(size float64) PlateShape {
	c.Diameter += 2 * size
	return c
}

func (c Circle) Contract(size float64) (PlateShape, bool) {
	d := c.Diameter - 2*size
	if d <= 0 {
		return nil, false
	}
	c.Diameter = d
	return c, true
}

func (c Circle) ExtendRight(size float64) PlateShape {
	c.extraRight += size * c.ExpansionFactor
	return c
}

func (c Circle) Clone() PlateShape { return c }
