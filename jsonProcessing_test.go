package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/PhasePlot/phasecurve"
)

func TestLoadParametersStarID(t *testing.T) {
	params, data, err := loadParameters("OGLE-LMC-CEP-0002")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, phasecurve.NewSession("OGLE-LMC-CEP-0002"), params.Session)
}

func TestLoadParametersFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "star.json5")
	content := `{
  star_id: "s7",
  data_dir: "raw",
  smoothing: 0, // interpolate
  show_input_bool: true,
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	params, data, err := loadParameters(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.Equal(t, "s7", params.Identifier)
	assert.Equal(t, filepath.Join(dir, "raw"), params.DataDir)
	assert.Equal(t, dir, params.ExportDir)
	assert.Equal(t, 0.0, params.Smoothing)
	assert.True(t, params.ShowInput)
}

func TestLoadParametersErrors(t *testing.T) {
	dir := t.TempDir()
	_, _, err := loadParameters(filepath.Join(dir, "missing.json5"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.JSON")
	require.NoError(t, os.WriteFile(bad, []byte(`{data_dir: "x"}`), 0o644))
	_, _, err = loadParameters(bad)
	assert.ErrorIs(t, err, phasecurve.ErrMissingParameter)
}
