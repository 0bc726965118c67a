package phasecurve

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultSmoothing scales the residual budget of the smoothing spline: the fit may deviate
	// from the data by about one noise standard deviation per knot.
	DefaultSmoothing = 1.0

	// DefaultGridPoints is the number of phase samples used when searching for the minimum.
	DefaultGridPoints = 1000

	// MinGridPoints and MaxGridPoints bound the grid accepted by WithGridPoints.
	MinGridPoints = 100
	MaxGridPoints = 1_000_000

	// MinAnchorSamples is the fewest samples for which minimum anchoring is attempted.
	MinAnchorSamples = 4
)

// ErrInvalidGrid is returned when the minimum search grid is too coarse or too fine.
var ErrInvalidGrid = errors.New("invalid minimum search grid")

type foldConfig struct {
	smoothing  float64
	gridPoints int
}

// FoldOption tunes the minimum anchoring step of Fold.
type FoldOption func(*foldConfig)

// WithSmoothing sets the smoothing factor of the spline used to find the minimum.
// Zero makes the spline pass through every (merged) point.
func WithSmoothing(s float64) FoldOption {
	return func(c *foldConfig) {
		c.smoothing = s
	}
}

// WithGridPoints sets how many evenly spaced phases in [0,1) are searched for the minimum.
func WithGridPoints(n int) FoldOption {
	return func(c *foldConfig) {
		c.gridPoints = n
	}
}

func newFoldConfig(opts []FoldOption) (foldConfig, error) {
	cfg := foldConfig{smoothing: DefaultSmoothing, gridPoints: DefaultGridPoints}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.smoothing < 0 || math.IsNaN(cfg.smoothing) || math.IsInf(cfg.smoothing, 0) {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidSmoothing, cfg.smoothing)
	}
	if cfg.gridPoints < MinGridPoints || cfg.gridPoints > MaxGridPoints {
		return cfg, fmt.Errorf("%w: %d points (need %d to %d)", ErrInvalidGrid, cfg.gridPoints, MinGridPoints, MaxGridPoints)
	}
	return cfg, nil
}

// Fold folds series onto period. Each sample yields a point at phase (t/period) mod 1,
// and a copy of it at phase+1. With anchorToMinimum, phases are shifted so that phase 0
// falls on the minimum of a smoothing spline fitted to the folded curve.
//
// The input series is not modified and nothing is cached: identical inputs give identical output.
func Fold(series TimeSeries, period float64, anchorToMinimum bool, opts ...FoldOption) (FoldedCurve, error) {
	if !(period > 0) || math.IsInf(period, 1) {
		return FoldedCurve{}, fmt.Errorf("%w: got %v", ErrInvalidPeriod, period)
	}
	if len(series) == 0 {
		return FoldedCurve{}, ErrEmptySeries
	}
	cfg, err := newFoldConfig(opts)
	if err != nil {
		return FoldedCurve{}, err
	}

	mags := series.Mags()
	phases := series.Times()
	for i, t := range phases {
		cycles := t / period
		if !isFinite(cycles) || !isFinite(mags[i]) {
			return FoldedCurve{}, fmt.Errorf("%w: sample %d (t=%v, mag=%v, period %v)", ErrNonFinite, i, t, mags[i], period)
		}
		phases[i] = wrapPhase(cycles)
	}

	curve := FoldedCurve{Period: period}

	if anchorToMinimum {
		minPhase, err := MinimumPhase(phases, mags, cfg.smoothing, cfg.gridPoints)
		if err != nil {
			return FoldedCurve{}, err
		}
		for i := range phases {
			phases[i] = wrapPhase(phases[i] - minPhase)
		}
		curve.Anchored = true
		curve.AnchorPhase = minPhase
	}

	curve.Points = duplicatePhases(phases, mags)
	return curve, nil
}

// wrapPhase reduces x into [0,1). The result is also kept small enough that adding 1 stays below 2.
func wrapPhase(x float64) float64 {
	p := x - math.Floor(x)
	if p+1 >= 2 {
		p = 0
	}
	return p
}

func duplicatePhases(phases, mags []float64) []PhasePoint {
	n := len(phases)
	pts := make([]PhasePoint, 2*n)
	for i := range phases {
		pts[i] = PhasePoint{Phase: phases[i], Mag: mags[i]}
		pts[n+i] = PhasePoint{Phase: phases[i] + 1, Mag: mags[i]}
	}
	return pts
}
