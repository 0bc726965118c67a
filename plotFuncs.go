package main

import (
	"fmt"
	"image"
	"time"

	"github.com/bob-anderson-ok/PhasePlot/phasecurve"
)

// makePhaseImage folds both bands onto period index of band and renders the two panel plot.
func makePhaseImage(session phasecurve.Session, star *phasecurve.Star, band phasecurve.Band, index int) (phasecurve.PeriodEntry, image.Image, error) {
	start := time.Now()
	entry, v, i, err := star.Phase(band, index, session.AnchorToMinimum, session.FoldOptions()...)
	if err != nil {
		return phasecurve.PeriodEntry{}, nil, err
	}
	reportAnchoring(session, phasecurve.BandV, v)
	reportAnchoring(session, phasecurve.BandI, i)
	fmt.Printf("Folding of %s at period %0.6f took %s\n", star.Identifier, entry.Period, time.Since(start))

	img, err := phasecurve.PlotPhaseCurves(star.Identifier, entry.Period, v, i, session.PlotWidthPx, session.PlotHeightPx)
	if err != nil {
		return phasecurve.PeriodEntry{}, nil, fmt.Errorf("phase plot of period %0.6f failed: %w", entry.Period, err)
	}
	return entry, img, nil
}

// exportPhasePlot writes the phase plot of period index of band into the export directory.
func exportPhasePlot(session phasecurve.Session, star *phasecurve.Star, band phasecurve.Band, index int) (string, error) {
	start := time.Now()
	entry, v, i, err := star.Phase(band, index, session.AnchorToMinimum, session.FoldOptions()...)
	if err != nil {
		return "", err
	}
	path, err := phasecurve.SavePhasePlot(session.ExportDir, star.Identifier, entry.Period, v, i,
		session.PlotWidthPx, session.PlotHeightPx)
	if err != nil {
		return "", fmt.Errorf("export of period %0.6f failed: %w", entry.Period, err)
	}
	fmt.Printf("Export of %s took %s\n", path, time.Since(start))
	return path, nil
}

// A band too sparse for a spline is still shown, just without the minimum shift.
func reportAnchoring(session phasecurve.Session, band phasecurve.Band, curve phasecurve.FoldedCurve) {
	if session.AnchorToMinimum && !curve.Anchored && curve.Len() > 0 {
		fmt.Printf("%s band: only %d points, phase zero not moved to the minimum\n", band, curve.Len())
	}
}

func periodLabel(entry phasecurve.PeriodEntry) string {
	return fmt.Sprintf("P = %0.6f  (f = %0.6f)", entry.Period, entry.Frequency)
}
