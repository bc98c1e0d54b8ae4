package pixelpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangleMaskedBitmapUnmasked(t *testing.T) {
	r := Rectangle{W: 10, H: 20, Res: 1}
	bm := r.MakeMaskedBitmap(1)
	assert.Equal(t, 10, bm.W)
	assert.Equal(t, 20, bm.H)
	assert.Equal(t, 0, bm.Pixels())
}

func TestRectangleExpandContractExtend(t *testing.T) {
	r := Rectangle{W: 10, H: 10, Res: 1}
	expanded := r.Expand(5).(Rectangle)
	assert.Equal(t, 20.0, expanded.W)
	assert.Equal(t, 20.0, expanded.H)

	contracted, ok := r.Contract(4)
	require.True(t, ok)
	assert.Equal(t, 2.0, contracted.(Rectangle).W)

	_, ok = r.Contract(10)
	assert.False(t, ok)

	extended := r.ExtendRight(3).(Rectangle)
	assert.Equal(t, 13.0, extended.W)
	assert.Equal(t, 10.0, extended.H)
}

func TestCircleMasksOutsideDisc(t *testing.T) {
	c := Circle{Diameter: 10, Res: 1, ExpansionFactor: 1}
	bm := c.MakeMaskedBitmap(1)
	assert.Equal(t, byte(2), bm.At(0, 0))
	center := bm.W / 2
	assert.Equal(t, byte(0), bm.At(center, center))
}

func TestCircleExtendRightScalesByExpansionFactor(t *testing.T) {
	c := Circle{Diameter: 10, Res: 1, ExpansionFactor: 2}
	extended := c.ExtendRight(3).(Circle)
	assert.Equal(t, 10.0, extended.Diameter)
	assert.Equal(t, 16.0, extended.Width())
	assert.Equal(t, 10.0, extended.Height())
}

func TestCircleContractCollapse(t *testing.T) {
	c := Circle{Diameter: 4, Res: 1, ExpansionFactor: 1}
	_, ok := c.Contract(3)
	assert.False(t, ok)
}
