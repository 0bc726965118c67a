package phasecurve

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ReadSeries loads a two column (time, magnitude) data file. Extra columns are ignored.
func ReadSeries(path string) (series TimeSeries, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	series, err = ParseSeries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// ParseSeries reads (time, magnitude) pairs from r. Blank lines and lines starting with '#' are skipped.
func ParseSeries(r io.Reader) (TimeSeries, error) {
	var series TimeSeries
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected 2 columns, got %d", ErrMalformedSeries, lineNum, len(fields))
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil || !isFinite(t) {
			return nil, fmt.Errorf("%w: line %d: time %q", ErrMalformedSeries, lineNum, fields[0])
		}
		mag, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || !isFinite(mag) {
			return nil, fmt.Errorf("%w: line %d: magnitude %q", ErrMalformedSeries, lineNum, fields[1])
		}
		series = append(series, Sample{Time: t, Mag: mag})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return series, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
