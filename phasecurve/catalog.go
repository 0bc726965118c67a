package phasecurve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// catalogHeaderLines is the number of lines at the top of a fit file that are always skipped.
const catalogHeaderLines = 3

const (
	frequencyField = 0
	epochField     = 4
)

// ReadCatalog reads a fit result file and returns its periods in file order.
// A file that does not exist yields an empty catalog and no error: a band whose
// fit has not been computed yet simply has no candidate periods.
func ReadCatalog(path string) (catalog Catalog, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Catalog{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	catalog, err = ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog parses fit result lines from r. The first three lines are a header.
// Any data line that cannot be parsed fails the whole catalog.
func ParseCatalog(r io.Reader) (Catalog, error) {
	catalog := Catalog{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= catalogHeaderLines {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		entry, err := parseCatalogFields(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCatalog, lineNum, err)
		}
		catalog = append(catalog, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func parseCatalogFields(fields []string) (PeriodEntry, error) {
	if len(fields) <= epochField {
		return PeriodEntry{}, fmt.Errorf("expected at least %d fields, got %d", epochField+1, len(fields))
	}
	freq, err := strconv.ParseFloat(fields[frequencyField], 64)
	if err != nil {
		return PeriodEntry{}, fmt.Errorf("frequency %q: %w", fields[frequencyField], err)
	}
	if freq <= 0 || math.IsInf(freq, 0) || math.IsNaN(freq) {
		return PeriodEntry{}, fmt.Errorf("frequency %v does not give a positive period", freq)
	}
	epoch, err := strconv.ParseFloat(fields[epochField], 64)
	if err != nil {
		return PeriodEntry{}, fmt.Errorf("epoch %q: %w", fields[epochField], err)
	}
	return PeriodEntry{
		Period:    1.0 / freq,
		Epoch:     epoch,
		Frequency: freq,
	}, nil
}
