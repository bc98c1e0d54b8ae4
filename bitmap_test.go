package pixelpack

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareBitmap(w, h int, fill func(x, y int) byte) *Bitmap {
	b := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if v := fill(x, y); v != 0 {
				b.SetPoint(x, y, v)
			}
		}
	}
	return b
}

func TestBitmapSetPointTracksMoments(t *testing.T) {
	b := NewBitmap(4, 4)
	b.SetPoint(1, 1, 1)
	b.SetPoint(2, 2, 1)
	assert.Equal(t, 2, b.Pixels())
	cx, cy := b.Centroid()
	assert.InDelta(t, 1.5, cx, 1e-9)
	assert.InDelta(t, 1.5, cy, 1e-9)

	b.SetPoint(1, 1, 0)
	assert.Equal(t, 1, b.Pixels())
	cx, cy = b.Centroid()
	assert.InDelta(t, 2, cx, 1e-9)
	assert.InDelta(t, 2, cy, 1e-9)
}

func TestBitmapSetPointOutOfBoundsNoop(t *testing.T) {
	b := NewBitmap(2, 2)
	b.SetPoint(-1, 0, 1)
	b.SetPoint(5, 5, 1)
	assert.Equal(t, 0, b.Pixels())
}

func TestBitmapCentroidEmpty(t *testing.T) {
	b := NewBitmap(3, 3)
	x, y := b.Centroid()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestBitmapOverlaps(t *testing.T) {
	a := squareBitmap(4, 4, func(x, y int) byte {
		if x == 1 && y == 1 {
			return 1
		}
		return 0
	})
	b := squareBitmap(2, 2, func(x, y int) byte { return 1 })

	assert.True(t, a.Overlaps(b, 0, 0))
	assert.False(t, a.Overlaps(b, 2, 2))
}

func TestBitmapWritePreservesMoments(t *testing.T) {
	dst := NewBitmap(5, 5)
	src := squareBitmap(2, 2, func(x, y int) byte { return 1 })
	dst.Write(src, 1, 1)
	assert.Equal(t, 4, dst.Pixels())
	cx, cy := dst.Centroid()
	assert.InDelta(t, 1.5, cx, 1e-9)
	assert.InDelta(t, 1.5, cy, 1e-9)
}

func TestBitmapTrim(t *testing.T) {
	b := squareBitmap(5, 5, func(x, y int) byte {
		if x == 2 && y == 3 {
			return 1
		}
		return 0
	})
	trimmed := b.Trim()
	require.Equal(t, 1, trimmed.W)
	require.Equal(t, 1, trimmed.H)
	assert.Equal(t, 1, trimmed.Pixels())
}

func TestBitmapTrimEmpty(t *testing.T) {
	b := NewBitmap(4, 4)
	trimmed := b.Trim()
	assert.Equal(t, 0, trimmed.W)
	assert.Equal(t, 0, trimmed.H)
}

func TestBitmapGrow(t *testing.T) {
	b := squareBitmap(2, 2, func(x, y int) byte { return 1 })
	grown := b.Grow(1, 2)
	assert.Equal(t, 4, grown.W)
	assert.Equal(t, 6, grown.H)
	assert.Equal(t, 4, grown.Pixels())
	assert.Equal(t, byte(1), grown.At(1, 2))
}

func TestBitmapDilateGrowsByRadius(t *testing.T) {
	b := NewBitmap(5, 5)
	b.SetPoint(2, 2, 1)
	d := b.Dilate(1)
	assert.Equal(t, 9, d.Pixels())
	d2 := b.Dilate(2)
	assert.Equal(t, 25, d2.Pixels())
}

func TestBitmapDilateTopLeftAsymmetric(t *testing.T) {
	b := NewBitmap(4, 4)
	b.SetPoint(2, 2, 1)
	d := b.DilateTopLeft()
	assert.Equal(t, byte(1), d.At(1, 2))
	assert.Equal(t, byte(1), d.At(2, 1))
	assert.Equal(t, byte(1), d.At(1, 1))
	assert.Equal(t, byte(0), d.At(3, 2))
	assert.Equal(t, byte(0), d.At(2, 3))
}

func TestBitmapGetBound(t *testing.T) {
	b := NewBitmap(5, 5)
	b.SetPoint(1, 2, 1)
	top, bottom, left, right := b.GetBound()
	assert.Equal(t, 2, top)
	assert.Equal(t, 2, bottom)
	assert.Equal(t, 1, left)
	assert.Equal(t, 3, right)
}

func TestBitmapRotateQuarterTurnsPreservePixelCount(t *testing.T) {
	b := squareBitmap(3, 2, func(x, y int) byte {
		if y == 0 {
			return 1
		}
		return 0
	})
	r := b.Rotate(quarterTurn)
	assert.Equal(t, b.Pixels(), r.Pixels())
	assert.Equal(t, b.H, r.W)
	assert.Equal(t, b.W, r.H)

	full := b.Rotate(2 * math.Pi)
	assert.Equal(t, b.W, full.W)
	assert.Equal(t, b.H, full.H)
	assert.Equal(t, b.Pixels(), full.Pixels())
}

func TestBitmapRotateGeneralAngleKeepsPixelsNonEmpty(t *testing.T) {
	b := squareBitmap(6, 6, func(x, y int) byte {
		if x >= 2 && x <= 3 && y >= 2 && y <= 3 {
			return 1
		}
		return 0
	})
	r := b.Rotate(math.Pi / 6)
	assert.Equal(t, b.W, r.W)
	assert.Equal(t, b.H, r.H)
	assert.Greater(t, r.Pixels(), 0)
}

func TestBitmapWriteImageRoundTripsHeader(t *testing.T) {
	b := squareBitmap(2, 2, func(x, y int) byte { return 1 })
	var buf bytes.Buffer
	require.NoError(t, b.WriteImage(&buf))
	assert.Contains(t, buf.String()[:2], "P6")
}
