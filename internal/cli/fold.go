package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"github.com/bob-anderson-ok/PhasePlot/phasecurve"
)

// FoldOptions holds the flags of the fold command.
type FoldOptions struct {
	Band    string
	Index   int
	Primary bool
	All     bool
}

// NewFoldCommand creates the fold command.
func NewFoldCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FoldOptions{}

	cmd := &cobra.Command{
		Use:   "fold <star-id>",
		Short: "Fold both bands on one fitted period and print the phase curve.",
		Long: `Fold the V and I band photometry on period --index of band --band and print
the folded points as tab separated band, phase and magnitude columns.

Each observation appears twice, at its phase and at phase+1, unless --primary is given.
A summary of each band goes to stderr.

With --all, only band --band is folded, on every one of its periods in parallel, and
the first column holds the period instead of the band.

Examples:
  # Fold on the first V band period with phase zero at the minimum
  phasetool fold OGLE-LMC-ECL-0042

  # Third I band period, raw phases, no duplicated cycle
  phasetool fold OGLE-LMC-ECL-0042 --band I --index 2 --anchor=false --primary

  # Every V band period
  phasetool fold OGLE-LMC-ECL-0042 --all --primary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.All {
				return runFoldAll(cmd.Context(), rootOpts, opts, cmd, args[0])
			}
			return runFold(rootOpts, opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Band, "band", string(phasecurve.BandV), "Band whose period list --index refers to")
	cmd.Flags().IntVar(&opts.Index, "index", 0, "Index into the band's period list")
	cmd.Flags().BoolVar(&opts.Primary, "primary", false, "Print only the points in [0,1)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Fold the band on every one of its periods")
	cmd.MarkFlagsMutuallyExclusive("index", "all")

	return cmd
}

func runFold(rootOpts *RootOptions, opts *FoldOptions, cmd *cobra.Command, id string) (err error) {
	band, err := parseBand(opts.Band)
	if err != nil {
		return err
	}
	session, star, err := rootOpts.load(id)
	if err != nil {
		return err
	}

	start := time.Now()
	entry, v, i, err := star.Phase(band, opts.Index, session.AnchorToMinimum, session.FoldOptions()...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if ferr := out.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	fmt.Fprintf(out, "# %s period %.6f (%s band index %d)\n", star.Identifier, entry.Period, band, opts.Index)
	fmt.Fprintln(out, "band\tphase\tmag")
	curves := map[phasecurve.Band]phasecurve.FoldedCurve{phasecurve.BandV: v, phasecurve.BandI: i}
	for _, b := range phasecurve.Bands {
		points := curves[b].Points
		if opts.Primary {
			points = curves[b].Primary()
		}
		writePoints(out, string(b), points)
	}

	for _, b := range phasecurve.Bands {
		summarize(cmd, session, b, curves[b])
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Folding took %s\n", elapsed)
	return nil
}

// summarize reports the size, magnitude range and anchoring of a folded band on stderr.
func summarize(cmd *cobra.Command, session phasecurve.Session, band phasecurve.Band, curve phasecurve.FoldedCurve) {
	w := cmd.ErrOrStderr()
	if curve.Len() == 0 {
		warnf(cmd, "%s band has no observations", band)
		return
	}
	mags := make([]float64, curve.Len())
	for k, p := range curve.Primary() {
		mags[k] = p.Mag
	}
	// None of these fail on a non-empty slice.
	mean, _ := stats.Mean(mags)
	sd, _ := stats.StandardDeviation(mags)
	lo, _ := stats.Min(mags)
	hi, _ := stats.Max(mags)
	fmt.Fprintf(w, "%s band: %d points, mag %.4f .. %.4f, mean %.4f, sd %.4f", band, curve.Len(), lo, hi, mean, sd)
	if curve.Anchored {
		fmt.Fprintf(w, ", minimum at raw phase %.3f", curve.AnchorPhase)
	}
	fmt.Fprintln(w)
	if session.AnchorToMinimum && !curve.Anchored {
		warnf(cmd, "%s band has too few points to locate the minimum; phases are not shifted", band)
	}
}

func runFoldAll(ctx context.Context, rootOpts *RootOptions, opts *FoldOptions, cmd *cobra.Command, id string) (err error) {
	band, err := parseBand(opts.Band)
	if err != nil {
		return err
	}
	session, star, err := rootOpts.load(id)
	if err != nil {
		return err
	}
	catalog := star.Periods(band)
	if len(catalog) == 0 {
		warnf(cmd, "%s band has no fitted periods, nothing to fold", band)
		return nil
	}

	start := time.Now()
	curves, err := phasecurve.FoldAll(ctx, star.Series[band], catalog.Periods(), session.AnchorToMinimum,
		session.FoldOptions()...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if ferr := out.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	fmt.Fprintf(out, "# %s %s band, %d periods\n", star.Identifier, band, len(curves))
	fmt.Fprintln(out, "period\tphase\tmag")
	for _, c := range curves {
		points := c.Points
		if opts.Primary {
			points = c.Primary()
		}
		writePoints(out, fmt.Sprintf("%.6f", c.Period), points)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Folding of %d periods took %s\n", len(curves), elapsed)
	return nil
}

// writePoints prints one TSV row per point. Phases are written with as many digits as they
// need, so a phase just below 1 never prints as 1.
func writePoints(w io.Writer, key string, points []phasecurve.PhasePoint) {
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%s\t%.4f\n", key, strconv.FormatFloat(p.Phase, 'f', -1, 64), p.Mag)
	}
}
