package pixelpack

import (
	"context"
	"math"

	"github.com/kelindar/pixelpack/internal/detrand"
	"github.com/kelindar/pixelpack/internal/score"
)

// DefaultResolution is the default resolution, world units per
// millimetre, matching the original pixelpack library's default; the
// request's precision, spacing, delta and expansion steps default to
// multiples of it.
const DefaultResolution = 1000.0

// Strategy selects the candidate-enumeration and scoring regime.
type Strategy int

const (
	// StrategyPixelPack combines the row sweep enumerator with gravity
	// scoring.
	StrategyPixelPack Strategy = iota
	// StrategySpiralPlace combines the outward spiral enumerator with
	// bounding-box scoring.
	StrategySpiralPlace
)

// ExpansionMode selects how a single plate grows when parts don't fit.
type ExpansionMode int

const (
	ExpansionLinear ExpansionMode = iota
	ExpansionExponential
)

// ThreadingMode selects how the orchestrator schedules its placers.
type ThreadingMode int

const (
	ThreadingSingle ThreadingMode = iota
	ThreadingParallel
	ThreadingCooperative
)

// SortMode orders the unlocked parts before a placement attempt.
type SortMode struct {
	kind        sortKind
	shuffleSeed uint32
}

type sortKind int

const (
	sortSurfaceDesc sortKind = iota
	sortSurfaceAsc
	sortWidthDesc
	sortHeightDesc
	sortShuffle
)

var (
	SortSurfaceDesc = SortMode{kind: sortSurfaceDesc}
	SortSurfaceAsc  = SortMode{kind: sortSurfaceAsc}
	SortWidthDesc   = SortMode{kind: sortWidthDesc}
	SortHeightDesc  = SortMode{kind: sortHeightDesc}
)

// SortShuffle returns a deterministic shuffle sort mode seeded by seed.
func SortShuffle(seed uint32) SortMode { return SortMode{kind: sortShuffle, shuffleSeed: seed} }

// shuffleCount is the number of deterministic shuffle orderings added to
// the default sort-mode sweep.
const shuffleCount = 21

// DefaultSortModes returns the 4 fixed orderings plus shuffleCount
// deterministic shuffles, with the shuffle seeds themselves permuted so
// sweep order doesn't bias early placers toward low seeds.
func DefaultSortModes() []SortMode {
	modes := []SortMode{SortSurfaceDesc, SortSurfaceAsc, SortWidthDesc, SortHeightDesc}
	seeds := make([]uint32, shuffleCount)
	for i := range seeds {
		seeds[i] = uint32(i)
	}
	detrand.Shuffle(0xA5A5A5A5, seeds)
	for _, s := range seeds {
		modes = append(modes, SortShuffle(s))
	}
	return modes
}

// Request describes one placement problem: the plate shape, the part
// catalog, and every tunable the engine exposes.
type Request struct {
	Shape PlateShape

	// SinglePlate, when true, places everything on one plate that grows
	// (via ExpansionMode) until it fits; when false, parts spill onto as
	// many plates as needed in multi-plate mode.
	SinglePlate bool

	Precision    float64 // pixel edge length, world units
	Spacing      float64 // minimum inter-part margin, world units
	Delta        float64 // candidate-anchor step, world units
	RotationStep float64 // delta_r, radians

	CenterX, CenterY float64

	Strategy      Strategy
	ExpansionMode ExpansionMode
	ThreadingMode ThreadingMode

	// LinearExpandStep is the plate growth increment used by
	// ExpansionLinear, in world units (defaults to 10mm scaled by
	// resolution).
	LinearExpandStep float64

	// SearchBaseline is N, the unexpanded-plate search index, used only
	// in single-plate mode. Defaults to 128.
	SearchBaseline int
	// SearchContractStep is the per-index contraction step used for
	// search indices below SearchBaseline, and the per-index right
	// extension step for indices above it.
	SearchContractStep float64
	// SearchIterationCap optionally bounds the number of probes the
	// exponential-then-binary search performs, and the number of widening
	// steps ExpansionLinear takes; 0 means no cap.
	SearchIterationCap int

	SortModes []SortMode

	Timeout float64 // seconds; 0 means no timeout

	// Ctx governs cancellation: every runner checks it between placers,
	// and a placer checks it between parts, never inside the candidate
	// scan. Defaults to context.Background() (never cancels).
	Ctx context.Context

	Parts []*Part
}

// NewRequest returns a Request with sensible defaults: precision =
// 0.5*resolution, spacing = 1.5*resolution, delta = 1.0*resolution,
// delta_r = pi/2, single-plate mode on.
func NewRequest(shape PlateShape, resolution float64) *Request {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &Request{
		Shape:              shape,
		SinglePlate:        true,
		Precision:          0.5 * resolution,
		Spacing:            1.5 * resolution,
		Delta:              1.0 * resolution,
		RotationStep:       math.Pi / 2,
		Strategy:           StrategySpiralPlace,
		ExpansionMode:      ExpansionExponential,
		ThreadingMode:      ThreadingParallel,
		LinearExpandStep:   10 * resolution,
		SearchBaseline:     128,
		SearchContractStep: 10 * resolution,
		SortModes:          DefaultSortModes(),
		Ctx:                context.Background(),
	}
}

// AddPart constructs a Part from raw and appends it to the catalog.
func (r *Request) AddPart(id string, locked bool, raw RawBitmap) error {
	part, err := NewPart(id, locked, raw, r.Precision, r.Spacing, r.RotationStep)
	if err != nil {
		return err
	}
	r.Parts = append(r.Parts, part)
	return nil
}

// placerConfig is the cross product of tunables the orchestrator sweeps:
// sort modes x 2 rotation offsets x 2 rotation directions x (3 gravity
// modes, pixel-pack strategy only). The spiral strategy's bounding-box
// order isn't a sweep axis here: a stuck part retries every order in
// turn against the same plate before giving up (see tryPlacePart), so
// every spiral configuration starts from score.OrderDefault.
type placerConfig struct {
	sort           SortMode
	rotationOffset int
	rotationCW     bool
	gravity        score.Gravity
}

func (r *Request) buildConfigs() []placerConfig {
	var configs []placerConfig
	for _, sm := range r.SortModes {
		for _, offset := range [2]int{0, 1} {
			for _, cw := range [2]bool{false, true} {
				base := placerConfig{sort: sm, rotationOffset: offset, rotationCW: cw}
				if r.Strategy == StrategyPixelPack {
					for _, g := range [3]score.Gravity{score.GravityDown, score.GravitySide, score.GravityDiag} {
						cfg := base
						cfg.gravity = g
						configs = append(configs, cfg)
					}
					continue
				}
				configs = append(configs, base)
			}
		}
	}
	return configs
}

// validate rejects out-of-range enum values before any placer is built.
func (r *Request) validate() error {
	if r.Strategy != StrategyPixelPack && r.Strategy != StrategySpiralPlace {
		return ErrUnknownStrategy
	}
	if r.ExpansionMode != ExpansionLinear && r.ExpansionMode != ExpansionExponential {
		return ErrUnknownExpansionMode
	}
	if r.ThreadingMode != ThreadingSingle && r.ThreadingMode != ThreadingParallel && r.ThreadingMode != ThreadingCooperative {
		return ErrUnknownThreadingMode
	}
	return nil
}

// BuildPlacers constructs one Placer per configuration in the parameter
// sweep.
func (r *Request) BuildPlacers() ([]*Placer, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	configs := r.buildConfigs()
	placers := make([]*Placer, len(configs))
	for i, cfg := range configs {
		placers[i] = newPlacer(r, cfg)
	}
	return placers, nil
}

// Place runs the configured Runner over the full parameter sweep and
// returns the best solution found.
func (r *Request) Place() (PlacingResult, error) {
	if err := r.validate(); err != nil {
		return PlacingResult{}, err
	}
	runner := NewRunner(r.ThreadingMode)
	sol, err := runner.Run(r)
	if err != nil {
		return PlacingResult{}, err
	}
	return sol.Result(), nil
}
