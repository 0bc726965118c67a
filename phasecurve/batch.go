package phasecurve

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FoldAll folds series onto every period concurrently. Results are returned in the order of
// periods. Folds share nothing, so the first failure just abandons the rest.
func FoldAll(ctx context.Context, series TimeSeries, periods []float64, anchorToMinimum bool, opts ...FoldOption) ([]FoldedCurve, error) {
	curves := make([]FoldedCurve, len(periods))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, period := range periods {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			curve, err := Fold(series, period, anchorToMinimum, opts...)
			if err != nil {
				return fmt.Errorf("period %v: %w", period, err)
			}
			curves[k] = curve
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return curves, nil
}

// ExportAll writes a two band phase plot for every period of the band's catalog into
// the session's export directory and returns the written paths in catalog order.
func ExportAll(ctx context.Context, session Session, star *Star, band Band) ([]string, error) {
	catalog := star.Periods(band)
	paths := make([]string, len(catalog))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, entry := range catalog {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, i, err := star.FoldBoth(entry.Period, session.AnchorToMinimum, session.FoldOptions()...)
			if err != nil {
				return fmt.Errorf("period %v: %w", entry.Period, err)
			}
			path, err := SavePhasePlot(session.ExportDir, star.Identifier, entry.Period, v, i,
				session.PlotWidthPx, session.PlotHeightPx)
			if err != nil {
				return fmt.Errorf("period %v: %w", entry.Period, err)
			}
			paths[k] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
