package pixelpack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func platedPart(t *testing.T, id string, locked bool, plateW, plateH float64) (*Plate, *PlacedPart) {
	t.Helper()
	shape := Rectangle{W: plateW, H: plateH, Res: 1}
	plate := NewPlate(shape, 0, 0)
	part, err := NewPart(id, locked, squareRaw(4), 1, 0, math.Pi/2)
	require.NoError(t, err)
	pp := NewPlacedPart(part, 0)
	require.True(t, plate.CanPlace(pp))
	plate.Place(pp)
	return plate, pp
}

func TestSolutionLessByArea(t *testing.T) {
	small, _ := platedPart(t, "a", false, 10, 10)
	big, _ := platedPart(t, "b", false, 20, 20)

	s1 := &Solution{Plates: []*Plate{small}}
	s2 := &Solution{Plates: []*Plate{big}}
	assert.True(t, s1.Less(s2))
	assert.False(t, s2.Less(s1))
}

func TestSolutionLessNilOther(t *testing.T) {
	s, _ := platedPart(t, "a", false, 10, 10)
	sol := &Solution{Plates: []*Plate{s}}
	assert.True(t, sol.Less(nil))
}

func TestSolutionLessEmpty(t *testing.T) {
	empty := &Solution{}
	s, _ := platedPart(t, "a", false, 10, 10)
	sol := &Solution{Plates: []*Plate{s}}
	assert.False(t, empty.Less(sol))
	assert.True(t, sol.Less(empty))
}

func TestSolutionResultOmitsLockedParts(t *testing.T) {
	shape := Rectangle{W: 20, H: 20, Res: 1}
	plate := NewPlate(shape, 0, 0)

	unlocked, err := NewPart("u", false, squareRaw(4), 1, 0, math.Pi/2)
	require.NoError(t, err)
	locked, err := NewPart("l", true, squareRaw(4), 1, 0, math.Pi/2)
	require.NoError(t, err)

	uPP := NewPlacedPart(unlocked, 0)
	lPP := NewPlacedPart(locked, 1)
	lPP.X = 5
	require.True(t, plate.CanPlace(uPP))
	plate.Place(uPP)
	require.True(t, plate.CanPlace(lPP))
	plate.Place(lPP)

	sol := &Solution{Plates: []*Plate{plate}}
	result := sol.Result()
	assert.Contains(t, result.Models, "u")
	assert.NotContains(t, result.Models, "l")
	assert.Equal(t, 20.0, result.PlateWidth)
	assert.Equal(t, 20.0, result.PlateHeight)
}
