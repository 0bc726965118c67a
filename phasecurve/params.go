package phasecurve

import (
	"fmt"
	"math"

	json "github.com/KevinWang15/go-json5"
)

// Parameters is the content of a JSON5 parameter file.
type Parameters struct {
	Session
	ShowInput bool
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// ParseParameters reads a JSON5 (or JSON) parameter file such as
//
//	{
//	  star_id: "OGLE-LMC-ECL-0042",
//	  data_dir: "data",              // default "."
//	  export_dir: "plots",           // default "."
//	  smoothing: 1.0,                // default 1.0, 0 = interpolate
//	  grid_points: 1000,
//	  anchor_to_minimum_bool: true,
//	  plot_width_pixels: 1200,
//	  plot_height_pixels: 500,
//	  show_input_bool: false,
//	}
//
// Only star_id is required.
func ParseParameters(data []byte) (Parameters, error) {
	var jsonTable map[string]interface{}
	if err := json.Unmarshal(data, &jsonTable); err != nil {
		return Parameters{}, fmt.Errorf("format error: %w", err)
	}

	params := Parameters{}

	starID, ok := getLeafValue(jsonTable, "star_id")
	if !ok {
		return Parameters{}, fmt.Errorf("star_id: %w", ErrMissingParameter)
	}
	id, ok := starID.(string)
	if !ok || id == "" {
		return Parameters{}, fmt.Errorf("star_id: is not a non-empty string")
	}
	params.Session = NewSession(id)

	if err := stringParam(jsonTable, "data_dir", &params.DataDir); err != nil {
		return Parameters{}, err
	}
	if err := stringParam(jsonTable, "export_dir", &params.ExportDir); err != nil {
		return Parameters{}, err
	}
	if err := floatParam(jsonTable, "smoothing", &params.Smoothing); err != nil {
		return Parameters{}, err
	}
	if params.Smoothing < 0 {
		return Parameters{}, fmt.Errorf("smoothing: %w", ErrInvalidSmoothing)
	}

	gridPoints := float64(params.GridPoints)
	if err := floatParam(jsonTable, "grid_points", &gridPoints); err != nil {
		return Parameters{}, err
	}
	if gridPoints != math.Trunc(gridPoints) || gridPoints < MinGridPoints || gridPoints > MaxGridPoints {
		return Parameters{}, fmt.Errorf("grid_points: must be a whole number from %d to %d, got %v",
			MinGridPoints, MaxGridPoints, gridPoints)
	}
	params.GridPoints = int(gridPoints)

	if err := boolParam(jsonTable, "anchor_to_minimum_bool", &params.AnchorToMinimum); err != nil {
		return Parameters{}, err
	}
	if err := floatParam(jsonTable, "plot_width_pixels", &params.PlotWidthPx); err != nil {
		return Parameters{}, err
	}
	if err := floatParam(jsonTable, "plot_height_pixels", &params.PlotHeightPx); err != nil {
		return Parameters{}, err
	}
	if params.PlotWidthPx <= 0 || params.PlotHeightPx <= 0 {
		return Parameters{}, fmt.Errorf("plot_width_pixels and plot_height_pixels must be positive")
	}
	if err := boolParam(jsonTable, "show_input_bool", &params.ShowInput); err != nil {
		return Parameters{}, err
	}

	return params, nil
}

// Optional entries keep the value already in dst when absent.

func stringParam(jsonTable map[string]interface{}, key string, dst *string) error {
	v, ok := getLeafValue(jsonTable, key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%s: is not a string", key)
	}
	*dst = s
	return nil
}

func floatParam(jsonTable map[string]interface{}, key string, dst *float64) error {
	v, ok := getLeafValue(jsonTable, key)
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return fmt.Errorf("%s: is not a float64", key)
	}
	*dst = f
	return nil
}

func boolParam(jsonTable map[string]interface{}, key string, dst *bool) error {
	v, ok := getLeafValue(jsonTable, key)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%s: is not a bool", key)
	}
	*dst = b
	return nil
}
