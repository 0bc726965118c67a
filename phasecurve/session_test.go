package phasecurve

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesFile(series TimeSeries) string {
	var b strings.Builder
	b.WriteString("# time mag\n")
	for _, s := range series {
		fmt.Fprintf(&b, "%.6f %.6f\n", s.Time, s.Mag)
	}
	return b.String()
}

// writeStar writes both bands of a synthetic star into dir. The I band catalog is left out.
func writeStar(t *testing.T, dir, id string) {
	t.Helper()
	writeFile(t, dir, id+"_V.dat_data", seriesFile(cosineSeries(120, 1.25, 0.3, 0.01)))
	writeFile(t, dir, id+"_I.dat_data", seriesFile(cosineSeries(90, 1.25, 0.32, 0.01)))
	writeFile(t, dir, id+"_V.dat_data_fit", catalogHeader+"0.8 0 0 0 2450000.5\n0.4 0 0 0 2450001\n")
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("star")
	assert.Equal(t, "star", s.Identifier)
	assert.Equal(t, ".", s.DataDir)
	assert.Equal(t, ".", s.ExportDir)
	assert.Equal(t, DefaultSmoothing, s.Smoothing)
	assert.Equal(t, DefaultGridPoints, s.GridPoints)
	assert.True(t, s.AnchorToMinimum)
	assert.Len(t, s.FoldOptions(), 2)
}

func TestSessionPaths(t *testing.T) {
	s := NewSession("OGLE-1")
	s.DataDir = "data"
	assert.Equal(t, filepath.Join("data", "OGLE-1_V.dat_data"), s.SeriesPath(BandV))
	assert.Equal(t, filepath.Join("data", "OGLE-1_I.dat_data_fit"), s.CatalogPath(BandI))
}

func TestSessionLoad(t *testing.T) {
	dir := t.TempDir()
	writeStar(t, dir, "star")
	s := NewSession("star")
	s.DataDir = dir

	star, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "star", star.Identifier)
	assert.Len(t, star.Series[BandV], 120)
	assert.Len(t, star.Series[BandI], 90)
	assert.InDeltaSlice(t, []float64{1.25, 2.5}, star.Periods(BandV).Periods(), 1e-12)
	assert.Empty(t, star.Periods(BandI), "missing catalog means no periods")
}

func TestSessionLoadErrors(t *testing.T) {
	dir := t.TempDir()
	s := NewSession("star")
	s.DataDir = dir

	_, err := s.Load()
	assert.Error(t, err, "raw data missing")

	writeStar(t, dir, "star")
	writeFile(t, dir, "star_I.dat_data_fit", catalogHeader+"zero 0 0 0 1\n")
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrMalformedCatalog)

	_, err = NewSession("").Load()
	assert.Error(t, err)
}

func TestStarSelect(t *testing.T) {
	star := &Star{Catalogs: map[Band]Catalog{BandV: {{Period: 2}, {Period: 3}}}}

	e, err := star.Select(BandV, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, e.Period)

	for _, idx := range []int{-1, 2} {
		_, err = star.Select(BandV, idx)
		assert.ErrorIs(t, err, ErrNoSuchPeriod)
	}
	_, err = star.Select(BandI, 0)
	assert.ErrorIs(t, err, ErrNoSuchPeriod)
}

func TestStarPhase(t *testing.T) {
	dir := t.TempDir()
	writeStar(t, dir, "star")
	s := NewSession("star")
	s.DataDir = dir
	star, err := s.Load()
	require.NoError(t, err)

	entry, v, i, err := star.Phase(BandV, 0, true, s.FoldOptions()...)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, entry.Period, 1e-12)
	assert.Equal(t, 2450000.5, entry.Epoch)

	// Both bands are folded on the selected period.
	assert.Equal(t, entry.Period, v.Period)
	assert.Equal(t, entry.Period, i.Period)
	assert.Equal(t, 120, v.Len())
	assert.Equal(t, 90, i.Len())
	assert.True(t, v.Anchored)
	assert.InDelta(t, 0.3, v.AnchorPhase, 0.05)
	assert.InDelta(t, 0.32, i.AnchorPhase, 0.05)

	_, _, _, err = star.Phase(BandI, 0, true)
	assert.ErrorIs(t, err, ErrNoSuchPeriod)
}

func TestStarFoldBothEmptyBand(t *testing.T) {
	star := &Star{Series: map[Band]TimeSeries{BandV: cosineSeries(20, 1, 0.5, 0)}}
	v, i, err := star.FoldBoth(1, false)
	require.NoError(t, err)
	assert.Equal(t, 20, v.Len())
	assert.Equal(t, 0, i.Len())
	assert.Equal(t, 1.0, i.Period)

	_, _, err = star.FoldBoth(0, false)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestFoldWithFallback(t *testing.T) {
	few := TimeSeries{{0, 1}, {0.3, 2}, {0.6, 1.5}}
	curve, err := FoldWithFallback(few, 1, true)
	require.NoError(t, err)
	assert.False(t, curve.Anchored)
	assert.Equal(t, 3, curve.Len())

	curve, err = FoldWithFallback(cosineSeries(50, 1, 0.5, 0), 1, true)
	require.NoError(t, err)
	assert.True(t, curve.Anchored)

	_, err = FoldWithFallback(few, -1, true)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
