// Package phasecurve provides functions for reading fitted period catalogs and raw photometry,
// folding a light curve onto a period, re-anchoring phase zero at the curve minimum,
// and rendering the folded V and I band curves as phase diagrams.
package phasecurve

import (
	"errors"

	"gonum.org/v1/plot/plotter"
)

// Band identifies a photometric band.
type Band string

const (
	BandV Band = "V"
	BandI Band = "I"
)

// Bands lists the bands in display order.
var Bands = []Band{BandV, BandI}

// Sample is a single raw observation.
type Sample struct {
	Time float64 // Observation time (same unit as 1/frequency in the catalog)
	Mag  float64 // Measured magnitude
}

// TimeSeries holds the raw observations of one band. Times need not be sorted or unique.
type TimeSeries []Sample

// Times returns the observation times in sample order.
func (s TimeSeries) Times() []float64 {
	out := make([]float64, len(s))
	for i, smp := range s {
		out[i] = smp.Time
	}
	return out
}

// Mags returns the magnitudes in sample order.
func (s TimeSeries) Mags() []float64 {
	out := make([]float64, len(s))
	for i, smp := range s {
		out[i] = smp.Mag
	}
	return out
}

// PeriodEntry is one fitted period read from a catalog file.
type PeriodEntry struct {
	Period    float64 // 1/Frequency
	Epoch     float64 // Reference epoch from the upstream fit (provenance only)
	Frequency float64 // Fitted frequency as it appeared in the file
}

// Catalog is the ordered list of fitted periods for one band, in file order.
type Catalog []PeriodEntry

// Periods returns just the period values.
func (c Catalog) Periods() []float64 {
	out := make([]float64, len(c))
	for i, e := range c {
		out[i] = e.Period
	}
	return out
}

// PhasePoint is a single point of a folded curve.
type PhasePoint struct {
	Phase float64
	Mag   float64
}

// FoldedCurve is the result of folding a TimeSeries. For a series of n samples,
// Points[i] is the primary point of sample i (phase in [0,1)) and Points[n+i]
// is its duplicate shifted to phase+1.
type FoldedCurve struct {
	Period      float64
	Anchored    bool    // Phase zero was moved to the fitted minimum
	AnchorPhase float64 // Unanchored phase of the minimum (0 when not anchored)
	Points      []PhasePoint
}

// Len returns the number of samples that were folded.
func (c FoldedCurve) Len() int {
	return len(c.Points) / 2
}

// Primary returns the points in [0,1), in original sample order.
func (c FoldedCurve) Primary() []PhasePoint {
	return c.Points[:c.Len()]
}

// Duplicates returns the points in [1,2); Duplicates()[i] pairs with Primary()[i].
func (c FoldedCurve) Duplicates() []PhasePoint {
	return c.Points[c.Len():]
}

// XYs adapts the curve for gonum/plot.
func (c FoldedCurve) XYs() plotter.XYs {
	pts := make(plotter.XYs, len(c.Points))
	for i, p := range c.Points {
		pts[i].X = p.Phase
		pts[i].Y = p.Mag
	}
	return pts
}

var (
	// ErrMalformedCatalog is returned when a catalog data line cannot be parsed.
	ErrMalformedCatalog = errors.New("malformed catalog")

	// ErrMalformedSeries is returned when a raw data line cannot be parsed.
	ErrMalformedSeries = errors.New("malformed series")

	// ErrInvalidPeriod is returned when the fold period is not a positive finite number.
	ErrInvalidPeriod = errors.New("period must be positive")

	// ErrEmptySeries is returned when there is nothing to fold.
	ErrEmptySeries = errors.New("time series is empty")

	// ErrNonFinite is returned by Fold when a sample, or its time in cycles of the period, is not a finite number.
	ErrNonFinite = errors.New("sample is not finite")

	// ErrInsufficientData is returned when there are too few points to fit a smoothing spline.
	ErrInsufficientData = errors.New("not enough points to locate a minimum")

	// ErrInvalidSmoothing is returned for a negative smoothing factor.
	ErrInvalidSmoothing = errors.New("smoothing factor must not be negative")

	// ErrUnsortedKnots is returned by SmoothingSpline.Fit when xs is not strictly increasing.
	ErrUnsortedKnots = errors.New("spline knots must be strictly increasing")

	// ErrNoSuchPeriod is returned when a period index is out of range for a band.
	ErrNoSuchPeriod = errors.New("no such period")

	// ErrMissingParameter is returned when a required parameter file entry is absent.
	ErrMissingParameter = errors.New("required parameter not found")
)
