package phasecurve

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "star_2.0000.png", ExportFileName("star", 2))
	assert.Equal(t, "OGLE-17_0.7341.png", ExportFileName("OGLE-17", 0.734123))
}

func TestStepTicks(t *testing.T) {
	ticks := StepTicks{Step: 0.25, Format: "%.2f"}.Ticks(0, 2)
	require.Len(t, ticks, 9)
	assert.Equal(t, "0.00", ticks[0].Label)
	assert.Equal(t, "2.00", ticks[8].Label)

	ticks = StepTicks{Step: 0.1, Format: "%.1f"}.Ticks(0.05, 0.3)
	require.Len(t, ticks, 3)
	assert.Equal(t, "0.1", ticks[0].Label)
	assert.Equal(t, "0.3", ticks[2].Label)
}

func TestPhasePanel(t *testing.T) {
	curve, err := Fold(cosineSeries(60, 1.3, 0.2, 0), 1.3, true)
	require.NoError(t, err)

	p, err := PhasePanel(BandV, curve)
	require.NoError(t, err)
	assert.Contains(t, p.Title.Text, "V band")
	assert.Contains(t, p.Title.Text, "minimum")
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 2.0, p.X.Max)
	assert.InDelta(t, 11.6, p.Y.Min, 0.05)
	assert.InDelta(t, 12.4, p.Y.Max, 0.05)

	empty, err := PhasePanel(BandI, FoldedCurve{Period: 1.3})
	require.NoError(t, err)
	assert.Equal(t, "I band (no data)", empty.Title.Text)
}

func TestSavePhasePlot(t *testing.T) {
	dir := t.TempDir()
	v, err := Fold(cosineSeries(80, 0.9, 0.4, 0.01), 0.9, true)
	require.NoError(t, err)
	i, err := Fold(cosineSeries(40, 0.9, 0.45, 0.01), 0.9, false)
	require.NoError(t, err)

	path, err := SavePhasePlot(dir, "star", 0.9, v, i, 600, 300)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "star_0.9000.png"), path)

	img := decodePNG(t, path)
	bounds := img.Bounds()
	assert.Greater(t, bounds.Dx(), bounds.Dy(), "two panels side by side")
}

func TestSavePhasePlotWithEmptyBand(t *testing.T) {
	dir := t.TempDir()
	v, err := Fold(cosineSeries(30, 2.5, 0.1, 0), 2.5, false)
	require.NoError(t, err)

	path, err := SavePhasePlot(dir, "lonely", 2.5, v, FoldedCurve{Period: 2.5}, 400, 200)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSavePhasePlotBadDirectory(t *testing.T) {
	v, err := Fold(cosineSeries(10, 1, 0.1, 0), 1, false)
	require.NoError(t, err)
	_, err = SavePhasePlot(filepath.Join(t.TempDir(), "missing"), "x", 1, v, v, 400, 200)
	assert.Error(t, err)
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}
