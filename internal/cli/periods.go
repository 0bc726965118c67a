package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/bob-anderson-ok/PhasePlot/phasecurve"
)

// NewPeriodsCommand creates the periods command.
func NewPeriodsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "periods <star-id>",
		Short: "List the fitted periods of both bands.",
		Long: `List the fitted periods of a star's V and I bands in file order.

The index column is what fold and export take as --index.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, star, err := rootOpts.load(args[0])
			if err != nil {
				return err
			}
			return printPeriods(cmd, star)
		},
	}
}

func printPeriods(cmd *cobra.Command, star *phasecurve.Star) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header([]string{"Band", "Index", "Period", "Frequency", "Epoch", "Points"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, band := range phasecurve.Bands {
		catalog := star.Periods(band)
		if len(catalog) == 0 {
			warnf(cmd, "%s band has no fitted periods", band)
			continue
		}
		for k, e := range catalog {
			data = append(data, []string{
				string(band),
				strconv.Itoa(k),
				fmt.Sprintf("%.6f", e.Period),
				fmt.Sprintf("%.6f", e.Frequency),
				fmt.Sprintf("%.4f", e.Epoch),
				strconv.Itoa(len(star.Series[band])),
			})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
