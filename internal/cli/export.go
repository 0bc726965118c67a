package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bob-anderson-ok/PhasePlot/phasecurve"
)

// ExportOptions holds the flags of the export command.
type ExportOptions struct {
	Band  string
	Index int
	All   bool
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <star-id>",
		Short: "Write two band phase plots as PNG files.",
		Long: `Write the V and I band phase plot for one period (--index) or for every period
of a band (--all) into the export directory as <star-id>_<period>.png.

With --all the plots are rendered in parallel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), rootOpts, opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Band, "band", string(phasecurve.BandV), "Band whose period list is used")
	cmd.Flags().IntVar(&opts.Index, "index", 0, "Index into the band's period list")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Export every period of the band")
	cmd.MarkFlagsMutuallyExclusive("index", "all")

	return cmd
}

func runExport(ctx context.Context, rootOpts *RootOptions, opts *ExportOptions, cmd *cobra.Command, id string) error {
	band, err := parseBand(opts.Band)
	if err != nil {
		return err
	}
	session, star, err := rootOpts.load(id)
	if err != nil {
		return err
	}

	start := time.Now()
	var paths []string
	if opts.All {
		if len(star.Periods(band)) == 0 {
			warnf(cmd, "%s band has no fitted periods, nothing to export", band)
			return nil
		}
		paths, err = phasecurve.ExportAll(ctx, session, star, band)
	} else {
		var path string
		path, err = exportOne(session, star, band, opts.Index)
		paths = []string{path}
	}
	if err != nil {
		if errors.Is(err, phasecurve.ErrNoSuchPeriod) {
			return fmt.Errorf("%w (see: phasetool periods %s)", err, id)
		}
		return err
	}

	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Export of %d plot(s) took %s\n", len(paths), time.Since(start))
	return nil
}

func exportOne(session phasecurve.Session, star *phasecurve.Star, band phasecurve.Band, index int) (string, error) {
	entry, v, i, err := star.Phase(band, index, session.AnchorToMinimum, session.FoldOptions()...)
	if err != nil {
		return "", err
	}
	return phasecurve.SavePhasePlot(session.ExportDir, star.Identifier, entry.Period, v, i,
		session.PlotWidthPx, session.PlotHeightPx)
}
