package phasecurve

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCatalogMissingFileIsEmpty(t *testing.T) {
	catalog, err := ReadCatalog(filepath.Join(t.TempDir(), "missing_file"))
	require.NoError(t, err)
	assert.NotNil(t, catalog)
	assert.Empty(t, catalog)
}

func TestReadCatalogSingleEntry(t *testing.T) {
	path := writeFile(t, t.TempDir(), "star_V.dat_data_fit", catalogHeader+"0.5 0 0 0 2.0\n")

	catalog, err := ReadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, Catalog{{Period: 2.0, Epoch: 2.0, Frequency: 0.5}}, catalog)
}

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		periods []float64
		epochs  []float64
	}{
		{
			name: "header only",
			body: "",
		},
		{
			name:    "file order kept",
			body:    "0.25 1 2 3 100.5\n4.0 1 2 3 200.5 extra fields\n0.5 9 9 9 300\n",
			periods: []float64{4.0, 0.25, 2.0},
			epochs:  []float64{100.5, 200.5, 300},
		},
		{
			name:    "tabs and repeated spaces",
			body:    "2.5\t0.1   0.2 0.3\t\t7\n",
			periods: []float64{0.4},
			epochs:  []float64{7},
		},
		{
			name:    "blank lines skipped",
			body:    "\n0.5 0 0 0 1\n   \n0.25 0 0 0 2\n\n",
			periods: []float64{2, 4},
			epochs:  []float64{1, 2},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog, err := ParseCatalog(strings.NewReader(catalogHeader + tc.body))
			require.NoError(t, err)
			require.Len(t, catalog, len(tc.periods))
			for k, e := range catalog {
				assert.InDelta(t, tc.periods[k], e.Period, 1e-12)
				assert.Equal(t, tc.epochs[k], e.Epoch)
			}
		})
	}
}

func TestParseCatalogHeaderIgnoredWhateverItHolds(t *testing.T) {
	// Header lines that look like data, or are garbage, are never parsed.
	header := "0.5 0 0 0 2.0\nnot numbers at all\n\n"
	catalog, err := ParseCatalog(strings.NewReader(header + "0.1 0 0 0 5\n"))
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.InDelta(t, 10.0, catalog[0].Period, 1e-12)
}

func TestParseCatalogShortFile(t *testing.T) {
	catalog, err := ParseCatalog(strings.NewReader("only one header line\n"))
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestParseCatalogMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		line string
	}{
		{"too few fields", "0.5 0 0 0 1\n0.5 0 0 0\n", "line 5"},
		{"non numeric frequency", "abc 0 0 0 1\n", "line 4"},
		{"non numeric epoch", "0.5 0 0 0 epoch\n", "line 4"},
		{"zero frequency", "0 0 0 0 1\n", "line 4"},
		{"negative frequency", "-0.5 0 0 0 1\n", "line 4"},
		{"infinite frequency", "inf 0 0 0 1\n", "line 4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog, err := ParseCatalog(strings.NewReader(catalogHeader + tc.body))
			require.Error(t, err)
			assert.Nil(t, catalog, "no partial catalog on failure")
			assert.True(t, errors.Is(err, ErrMalformedCatalog))
			assert.Contains(t, err.Error(), tc.line)
		})
	}
}

func TestReadCatalogMalformedNamesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad_fit", catalogHeader+"0.5 x\n")
	_, err := ReadCatalog(path)
	require.ErrorIs(t, err, ErrMalformedCatalog)
	assert.Contains(t, err.Error(), path)
}

func TestReadCatalogDirectoryIsError(t *testing.T) {
	_, err := ReadCatalog(t.TempDir())
	require.Error(t, err)
}

func TestCatalogPeriods(t *testing.T) {
	c := Catalog{{Period: 1}, {Period: 3}}
	assert.Equal(t, []float64{1, 3}, c.Periods())
}
