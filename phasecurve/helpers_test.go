package phasecurve

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// goldenStep spreads sample times so that their phases do not repeat for any test period.
const goldenStep = 0.6180339887498949

// cosineSeries builds n samples of a light curve whose smallest magnitude falls at
// phase minPhase of period. noise > 0 adds deterministic gaussian scatter.
func cosineSeries(n int, period, minPhase, noise float64) TimeSeries {
	rng := rand.New(rand.NewSource(1))
	series := make(TimeSeries, n)
	for i := range series {
		t := 2450000.0 + float64(i)*goldenStep*3.7
		phase := t / period
		mag := 12.0 - 0.4*math.Cos(2*math.Pi*(phase-minPhase))
		if noise > 0 {
			mag += noise * rng.NormFloat64()
		}
		series[i] = Sample{Time: t, Mag: mag}
	}
	return series
}

// circularDistance is the distance between two phases on the unit circle.
func circularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 1)
	return math.Min(d, 1-d)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const catalogHeader = "Fit results\nfreq amp phase err epoch\n------\n"
