package phasecurve

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldAllMatchesFold(t *testing.T) {
	series := cosineSeries(150, 1.6, 0.7, 0.02)
	periods := []float64{0.5, 1.6, 3.2, 0.8, 1.6}

	curves, err := FoldAll(context.Background(), series, periods, true, WithSmoothing(2))
	require.NoError(t, err)
	require.Len(t, curves, len(periods))
	for k, period := range periods {
		want, err := Fold(series, period, true, WithSmoothing(2))
		require.NoError(t, err)
		assert.Equal(t, want, curves[k], "period %v", period)
	}
}

func TestFoldAllErrors(t *testing.T) {
	series := cosineSeries(40, 1, 0.1, 0)

	_, err := FoldAll(context.Background(), series, []float64{1, -2, 3}, false)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FoldAll(ctx, series, []float64{1, 2}, false)
	assert.ErrorIs(t, err, context.Canceled)

	curves, err := FoldAll(context.Background(), series, nil, false)
	require.NoError(t, err)
	assert.Empty(t, curves)
}

func TestExportAll(t *testing.T) {
	dataDir, exportDir := t.TempDir(), t.TempDir()
	writeStar(t, dataDir, "star")
	s := NewSession("star")
	s.DataDir = dataDir
	s.ExportDir = exportDir
	s.PlotWidthPx, s.PlotHeightPx = 400, 200
	star, err := s.Load()
	require.NoError(t, err)

	paths, err := ExportAll(context.Background(), s, star, BandV)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(exportDir, "star_1.2500.png"),
		filepath.Join(exportDir, "star_2.5000.png"),
	}, paths)
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}

	paths, err = ExportAll(context.Background(), s, star, BandI)
	require.NoError(t, err)
	assert.Empty(t, paths, "no I band periods")
}
