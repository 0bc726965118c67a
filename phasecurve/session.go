package phasecurve

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Default sizes of a rendered two band phase plot, in pixels.
const (
	DefaultPlotWidthPx  = 1200
	DefaultPlotHeightPx = 500
)

// Session describes where the data of one star lives and how it should be folded.
// Data files follow the naming used by the fitting pipeline:
//
//	<DataDir>/<Identifier>_V.dat_data       raw V band photometry
//	<DataDir>/<Identifier>_V.dat_data_fit   fitted V band frequencies
//
// and likewise for the I band.
type Session struct {
	Identifier      string
	DataDir         string
	ExportDir       string
	Smoothing       float64
	GridPoints      int
	AnchorToMinimum bool
	PlotWidthPx     float64
	PlotHeightPx    float64
}

// NewSession returns a session for identifier with default settings, reading and writing
// files in the current directory.
func NewSession(identifier string) Session {
	return Session{
		Identifier:      identifier,
		DataDir:         ".",
		ExportDir:       ".",
		Smoothing:       DefaultSmoothing,
		GridPoints:      DefaultGridPoints,
		AnchorToMinimum: true,
		PlotWidthPx:     DefaultPlotWidthPx,
		PlotHeightPx:    DefaultPlotHeightPx,
	}
}

// SeriesPath is the raw data file of a band.
func (s Session) SeriesPath(band Band) string {
	return filepath.Join(s.DataDir, fmt.Sprintf("%s_%s.dat_data", s.Identifier, band))
}

// CatalogPath is the fit result file of a band.
func (s Session) CatalogPath(band Band) string {
	return s.SeriesPath(band) + "_fit"
}

// FoldOptions returns the fold options implied by the session settings.
func (s Session) FoldOptions() []FoldOption {
	return []FoldOption{WithSmoothing(s.Smoothing), WithGridPoints(s.GridPoints)}
}

// Star holds everything loaded for one star: both raw series and both period catalogs.
type Star struct {
	Identifier string
	Series     map[Band]TimeSeries
	Catalogs   map[Band]Catalog
}

// Load reads both bands of the session's star. A missing catalog leaves that band
// without periods; a missing or malformed series is an error.
func (s Session) Load() (*Star, error) {
	if s.Identifier == "" {
		return nil, errors.New("session has no star identifier")
	}
	star := &Star{
		Identifier: s.Identifier,
		Series:     make(map[Band]TimeSeries, len(Bands)),
		Catalogs:   make(map[Band]Catalog, len(Bands)),
	}
	for _, band := range Bands {
		series, err := ReadSeries(s.SeriesPath(band))
		if err != nil {
			return nil, fmt.Errorf("%s band data: %w", band, err)
		}
		catalog, err := ReadCatalog(s.CatalogPath(band))
		if err != nil {
			return nil, fmt.Errorf("%s band periods: %w", band, err)
		}
		star.Series[band] = series
		star.Catalogs[band] = catalog
	}
	return star, nil
}

// Periods returns the fitted periods of a band (possibly none).
func (st *Star) Periods(band Band) Catalog {
	return st.Catalogs[band]
}

// Select returns entry index of the band's catalog.
func (st *Star) Select(band Band, index int) (PeriodEntry, error) {
	catalog := st.Catalogs[band]
	if index < 0 || index >= len(catalog) {
		return PeriodEntry{}, fmt.Errorf("%w: %s band index %d (have %d)", ErrNoSuchPeriod, band, index, len(catalog))
	}
	return catalog[index], nil
}

// FoldBoth folds the V and I series onto the same period.
func (st *Star) FoldBoth(period float64, anchorToMinimum bool, opts ...FoldOption) (v, i FoldedCurve, err error) {
	v, err = st.foldBand(BandV, period, anchorToMinimum, opts)
	if err != nil {
		return FoldedCurve{}, FoldedCurve{}, err
	}
	i, err = st.foldBand(BandI, period, anchorToMinimum, opts)
	if err != nil {
		return FoldedCurve{}, FoldedCurve{}, err
	}
	return v, i, nil
}

func (st *Star) foldBand(band Band, period float64, anchorToMinimum bool, opts []FoldOption) (FoldedCurve, error) {
	series := st.Series[band]
	if len(series) == 0 {
		// A band without observations is drawn as an empty panel.
		return FoldedCurve{Period: period}, nil
	}
	curve, err := FoldWithFallback(series, period, anchorToMinimum, opts...)
	if err != nil {
		return FoldedCurve{}, fmt.Errorf("%s band: %w", band, err)
	}
	return curve, nil
}

// Phase is the command behind a "Phase" button: pick period index of band and fold
// both bands onto it.
func (st *Star) Phase(band Band, index int, anchorToMinimum bool, opts ...FoldOption) (PeriodEntry, FoldedCurve, FoldedCurve, error) {
	entry, err := st.Select(band, index)
	if err != nil {
		return PeriodEntry{}, FoldedCurve{}, FoldedCurve{}, err
	}
	v, i, err := st.FoldBoth(entry.Period, anchorToMinimum, opts...)
	if err != nil {
		return PeriodEntry{}, FoldedCurve{}, FoldedCurve{}, err
	}
	return entry, v, i, nil
}

// FoldWithFallback folds like Fold, but when anchoring fails for lack of data it
// returns the unanchored curve instead. The returned curve's Anchored field tells which happened.
func FoldWithFallback(series TimeSeries, period float64, anchorToMinimum bool, opts ...FoldOption) (FoldedCurve, error) {
	curve, err := Fold(series, period, anchorToMinimum, opts...)
	if anchorToMinimum && errors.Is(err, ErrInsufficientData) {
		return Fold(series, period, false, opts...)
	}
	return curve, err
}
