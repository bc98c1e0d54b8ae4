package pixelpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseSearchRequest(shapeW, shapeH float64) *Request {
	req := NewRequest(Rectangle{W: shapeW, H: shapeH, Res: 1}, 1)
	req.Precision = 1
	req.Spacing = 0
	req.Delta = 1
	req.SortModes = []SortMode{SortSurfaceDesc}
	req.Strategy = StrategySpiralPlace
	return req
}

func TestSearchBaselineAlreadyFits(t *testing.T) {
	req := baseSearchRequest(20, 20)
	req.SearchBaseline = 4
	req.SearchContractStep = 1
	require.NoError(t, req.AddPart("a", false, squareRaw(4)))

	placers, err := req.BuildPlacers()
	require.NoError(t, err)
	sol, err := placers[0].Run()
	require.NoError(t, err)
	require.NotNil(t, sol.BestSoFar)
	assert.LessOrEqual(t, *sol.BestSoFar, req.SearchBaseline)
	assert.Len(t, sol.Plates, 1)
}

func TestSearchGrowsWhenBaselineTooSmall(t *testing.T) {
	// Height already accommodates the part; only width needs to grow, and
	// ExtendRight only ever grows width, so this is the one dimension the
	// single-plate search can actually widen.
	req := baseSearchRequest(2, 4)
	req.LinearExpandStep = 1
	req.ExpansionMode = ExpansionLinear
	require.NoError(t, req.AddPart("a", false, squareRaw(4)))

	placers, err := req.BuildPlacers()
	require.NoError(t, err)
	sol, err := placers[0].Run()
	require.NoError(t, err)
	require.NotNil(t, sol.BestSoFar)
	// Linear mode has no baseline to grow from - it counts plain grow
	// steps starting at 0, so a nonzero value means it had to widen at
	// least once before the part fit.
	assert.Greater(t, *sol.BestSoFar, 0)
}

func TestSearchIterationCapGivesUp(t *testing.T) {
	req := baseSearchRequest(2, 2)
	req.SearchBaseline = 2
	req.SearchContractStep = 1
	req.LinearExpandStep = 1
	req.SearchIterationCap = 1
	require.NoError(t, req.AddPart("a", false, squareRaw(4)))

	placers, err := req.BuildPlacers()
	require.NoError(t, err)
	_, err = placers[0].Run()
	assert.ErrorIs(t, err, ErrNoSolutionFound)
}

func TestBinarySearchDownFindsSmallestTrue(t *testing.T) {
	probe := func(i int) bool { return i >= 5 }
	assert.Equal(t, 5, binarySearchDown(0, 10, probe))
}

func TestExponentialSearchUpFindsFirstSuccess(t *testing.T) {
	probe := func(i int) bool { return i >= 7 }
	got, ok := exponentialSearchUp(0, probe)
	require.True(t, ok)
	assert.Equal(t, 7, got)
}
