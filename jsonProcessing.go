package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bob-anderson-ok/PhasePlot/phasecurve"
)

// isParameterFile reports whether the command line argument names a JSON5 (or JSON)
// parameter file rather than a star identifier.
func isParameterFile(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".json", ".json5":
		return true
	}
	return false
}

// loadParameters turns the single command line argument into session parameters. A star
// identifier gets the default settings; a parameter file is read and validated.
// The raw file content is returned so that it can be echoed when show_input_bool is set.
func loadParameters(arg string) (phasecurve.Parameters, []byte, error) {
	if !isParameterFile(arg) {
		return phasecurve.Parameters{Session: phasecurve.NewSession(arg)}, nil, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return phasecurve.Parameters{}, nil, fmt.Errorf("attempt to read parameter file %q failed: %w", arg, err)
	}

	params, err := phasecurve.ParseParameters(data)
	if err != nil {
		return phasecurve.Parameters{}, nil, fmt.Errorf("parameter file %q: %w", arg, err)
	}

	// Relative directories in a parameter file are relative to the file itself.
	base := filepath.Dir(arg)
	if !filepath.IsAbs(params.DataDir) {
		params.DataDir = filepath.Join(base, params.DataDir)
	}
	if !filepath.IsAbs(params.ExportDir) {
		params.ExportDir = filepath.Join(base, params.ExportDir)
	}
	return params, data, nil
}
