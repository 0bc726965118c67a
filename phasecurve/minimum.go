package phasecurve

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Phases closer than this are treated as the same knot.
const knotTolerance = 1e-9

// MinimumPhase returns the phase in [0,1) at which a smoothing spline through the folded
// points (phases[i], mags[i]) is smallest. The spline is evaluated at gridPoints evenly spaced
// phases k/gridPoints, so the result is a multiple of 1/gridPoints. Magnitudes are taken as
// they are; inverting the axis for display does not change which point is the minimum.
//
// The folded points are extended by one period on each side before fitting so that a
// minimum near phase 0 or 1 is located as well as one in the middle of the cycle.
// For a flat curve the location is arbitrary (the first grid phase).
func MinimumPhase(phases, mags []float64, smoothing float64, gridPoints int) (float64, error) {
	if len(phases) != len(mags) {
		return 0, fmt.Errorf("phases and magnitudes lengths differ (%d != %d)", len(phases), len(mags))
	}
	if len(phases) < MinAnchorSamples {
		return 0, fmt.Errorf("%w: %d samples (need at least %d)", ErrInsufficientData, len(phases), MinAnchorSamples)
	}
	if smoothing < 0 || math.IsNaN(smoothing) {
		return 0, ErrInvalidSmoothing
	}
	if gridPoints < 1 || gridPoints > MaxGridPoints {
		return 0, fmt.Errorf("%w: %d points", ErrInvalidGrid, gridPoints)
	}
	for i := range phases {
		if !isFinite(phases[i]) || !isFinite(mags[i]) {
			return 0, fmt.Errorf("%w: point %d (phase %v, mag %v)", ErrNonFinite, i, phases[i], mags[i])
		}
	}

	xs, ys, ws := mergeKnots(phases, mags)
	if len(xs) < MinAnchorSamples {
		return 0, fmt.Errorf("%w: %d distinct phases (need at least %d)", ErrInsufficientData, len(xs), MinAnchorSamples)
	}

	sigma2 := noiseVariance(ys)
	xs, ys, ws = padPeriodic(xs, ys, ws)
	budget := smoothing * float64(len(xs)) * sigma2

	var fit interp.FittablePredictor
	if budget == 0 {
		fit = &interp.NaturalCubic{}
	} else {
		fit = &SmoothingSpline{Budget: budget, Weights: ws}
	}
	if err := fit.Fit(xs, ys); err != nil {
		return 0, fmt.Errorf("spline fit failed: %w", err)
	}

	values := make([]float64, gridPoints)
	for k := range values {
		values[k] = fit.Predict(float64(k) / float64(gridPoints))
	}
	return float64(floats.MinIdx(values)) / float64(gridPoints), nil
}

// mergeKnots sorts the points by phase (stable) and collapses points with the same phase
// into one knot carrying the mean magnitude and a weight equal to the number of points.
func mergeKnots(phases, mags []float64) (xs, ys, ws []float64) {
	sorted := make([]float64, len(phases))
	copy(sorted, phases)
	inds := make([]int, len(phases))
	floats.ArgsortStable(sorted, inds)

	for i, x := range sorted {
		y := mags[inds[i]]
		last := len(xs) - 1
		if last >= 0 && x-xs[last] <= knotTolerance {
			ys[last] = (ys[last]*ws[last] + y) / (ws[last] + 1)
			ws[last]++
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
		ws = append(ws, 1)
	}

	// A knot just below phase 1 is the same phase as one at 0 once the curve is wrapped.
	if last := len(xs) - 1; last > 0 && xs[0]+1-xs[last] <= knotTolerance {
		ys[0] = (ys[0]*ws[0] + ys[last]*ws[last]) / (ws[0] + ws[last])
		ws[0] += ws[last]
		xs, ys, ws = xs[:last], ys[:last], ws[:last]
	}
	return xs, ys, ws
}

// padPeriodic wraps the last and first few knots around to phase-1 and phase+1.
func padPeriodic(xs, ys, ws []float64) (px, py, pw []float64) {
	n := len(xs)
	k := min(max(3, n/10), n)
	size := n + 2*k
	px = make([]float64, 0, size)
	py = make([]float64, 0, size)
	pw = make([]float64, 0, size)
	for i := n - k; i < n; i++ {
		px = append(px, xs[i]-1)
		py = append(py, ys[i])
		pw = append(pw, ws[i])
	}
	px = append(px, xs...)
	py = append(py, ys...)
	pw = append(pw, ws...)
	for i := 0; i < k; i++ {
		px = append(px, xs[i]+1)
		py = append(py, ys[i])
		pw = append(pw, ws[i])
	}
	return px, py, pw
}

// noiseVariance estimates the per-point scatter of a phase-sorted curve from the
// differences of neighbouring magnitudes, which removes most of the slow light curve trend.
func noiseVariance(ys []float64) float64 {
	diffs := make([]float64, len(ys)-1)
	for i := range diffs {
		diffs[i] = ys[i+1] - ys[i]
	}
	mad, err := stats.MedianAbsoluteDeviationPopulation(diffs)
	if err == nil && mad > 0 {
		sigma := 1.4826 * mad / math.Sqrt2
		return sigma * sigma
	}
	sd, err := stats.StandardDeviationPopulation(diffs)
	if err != nil {
		return 0
	}
	return sd * sd / 2
}
