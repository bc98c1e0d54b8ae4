// Package enumerate provides the two lazy candidate-anchor sequences the
// placer scans: a row-major sweep and an outward rectangular spiral. Both
// are built the way kelindar/noise builds its sparse point sequences —
// as iter.Seq closures a caller can range over and abandon early — and
// the spiral's join-point dedup reuses kelindar/bitmap the same way
// kelindar/noise's SSI1 uses it for its spatial occupancy grid.
package enumerate

import (
	"iter"
	"math"

	"github.com/kelindar/bitmap"

	"github.com/kelindar/pixelpack/internal/geom"
)

// RowSweep yields {(i*delta, j*delta) | 0 <= i*delta < w, 0 <= j*delta < h},
// outer loop over x, offset so the first candidate sits at (originX,
// originY) — normally the plate's lower-left corner.
func RowSweep(w, h, delta, originX, originY float64) iter.Seq[geom.PointF] {
	return func(yield func(geom.PointF) bool) {
		if delta <= 0 {
			return
		}
		for x := 0.0; x < w; x += delta {
			for y := 0.0; y < h; y += delta {
				if !yield(geom.PointF{X: originX + x, Y: originY + y}) {
					return
				}
			}
		}
	}
}

var spiralDirs = [4][2]int{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}

// Spiral yields an outward rectangular spiral of lattice points (scaled by
// delta and offset by the origin), starting at (originX, originY). Step
// lengths follow 1,1,2,2,3,3,... with direction cycling +x,-y,-x,+y.
// Points are clipped to the rectangle [0,clipW) x [0,clipH) expressed in
// the same coordinate space as the origin; duplicate points at segment
// joins are suppressed via a bitset. The sequence is finite: it stops
// once a full ring (one segment in each of the four directions) has
// landed completely outside the clip rectangle.
func Spiral(clipW, clipH, delta, originX, originY float64) iter.Seq[geom.PointF] {
	return func(yield func(geom.PointF) bool) {
		if delta <= 0 {
			return
		}

		// Dedup domain: the clip rect expressed in grid steps relative to
		// the origin, plus two steps of margin on every side.
		minGX := int(math.Floor(-originX/delta)) - 2
		minGY := int(math.Floor(-originY/delta)) - 2
		gw := int(math.Ceil((clipW-originX)/delta)) + 2 - minGX
		gh := int(math.Ceil((clipH-originY)/delta)) + 2 - minGY
		var seen bitmap.Bitmap
		seen.Grow(uint32(gw * gh))

		tryEmit := func(gx, gy int) (inside, stop bool) {
			wx := originX + float64(gx)*delta
			wy := originY + float64(gy)*delta
			in := wx >= 0 && wx < clipW && wy >= 0 && wy < clipH
			kx, ky := gx-minGX, gy-minGY
			if kx < 0 || kx >= gw || ky < 0 || ky >= gh {
				return in, false
			}
			ukey := uint32(ky*gw + kx)
			if seen.Contains(ukey) {
				return in, false
			}
			seen.Set(ukey)
			if !in {
				return false, false
			}
			return true, !yield(geom.PointF{X: wx, Y: wy})
		}

		x, y := 0, 0
		_, stop := tryEmit(x, y)
		if stop {
			return
		}

		segLen := 1
		legsAtLen := 0
		dirIdx := 0
		consecutiveOutside := 0

		for consecutiveOutside < 4 {
			d := spiralDirs[dirIdx]
			segmentHadInside := false
			for s := 0; s < segLen; s++ {
				x += d[0]
				y += d[1]
				in, stop := tryEmit(x, y)
				if stop {
					return
				}
				segmentHadInside = segmentHadInside || in
			}
			if segmentHadInside {
				consecutiveOutside = 0
			} else {
				consecutiveOutside++
			}

			dirIdx = (dirIdx + 1) % 4
			legsAtLen++
			if legsAtLen == 2 {
				legsAtLen = 0
				segLen++
			}
		}
	}
}
