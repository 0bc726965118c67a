// Package cli defines the phasetool command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bob-anderson-ok/PhasePlot/phasecurve"
)

// Flag names shared by every command. They can also be given as PHASETOOL_* environment
// variables, e.g. PHASETOOL_DATA_DIR.
const (
	flagDataDir   = "data-dir"
	flagExportDir = "export-dir"
	flagParams    = "params"
	flagSmoothing = "smoothing"
	flagGrid      = "grid"
	flagAnchor    = "anchor"
	flagWidth     = "width"
	flagHeight    = "height"
)

var warnColor = color.New(color.FgYellow, color.Bold)

// RootOptions holds the configuration shared by all commands.
type RootOptions struct {
	v *viper.Viper
}

func newRootOptions() *RootOptions {
	v := viper.New()
	v.SetEnvPrefix("PHASETOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &RootOptions{v: v}
}

// NewRootCommand creates the root command for phasetool.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newRootOptions())
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phasetool",
		Short: "Fold variable star photometry on its fitted periods.",
		Long: `phasetool lists the fitted periods of a star, folds its V and I band light curves
on any of them and writes phase plots, without opening a window.

A star's files are <id>_V.dat_data and <id>_I.dat_data (raw photometry) plus the
matching <id>_V.dat_data_fit and <id>_I.dat_data_fit fit results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := phasecurve.NewSession("")
	cmd.PersistentFlags().String(flagDataDir, defaults.DataDir, "Directory holding the star's data files")
	cmd.PersistentFlags().String(flagExportDir, defaults.ExportDir, "Directory for exported phase plots")
	cmd.PersistentFlags().String(flagParams, "", "JSON5 parameter file; flags given explicitly override it")
	cmd.PersistentFlags().Float64(flagSmoothing, defaults.Smoothing, "Spline smoothing factor (0 = interpolate)")
	cmd.PersistentFlags().Int(flagGrid, defaults.GridPoints, "Number of phases searched for the minimum")
	cmd.PersistentFlags().Bool(flagAnchor, defaults.AnchorToMinimum, "Move phase zero to the light curve minimum")
	cmd.PersistentFlags().Float64(flagWidth, defaults.PlotWidthPx, "Width of exported plots in pixels")
	cmd.PersistentFlags().Float64(flagHeight, defaults.PlotHeightPx, "Height of exported plots in pixels")
	if err := opts.v.BindPFlags(cmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("binding root flags: %v", err))
	}

	cmd.AddCommand(NewPeriodsCommand(opts))
	cmd.AddCommand(NewFoldCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// Session resolves the settings for star id: defaults, then the parameter file, then
// environment variables and explicitly given flags.
func (o *RootOptions) Session(id string) (phasecurve.Session, error) {
	session := phasecurve.NewSession(id)

	if path := o.v.GetString(flagParams); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return phasecurve.Session{}, fmt.Errorf("could not read parameter file: %w", err)
		}
		params, err := phasecurve.ParseParameters(data)
		if err != nil {
			return phasecurve.Session{}, fmt.Errorf("parameter file %s: %w", path, err)
		}
		session = params.Session
		session.Identifier = id
	}

	if o.v.IsSet(flagDataDir) {
		session.DataDir = o.v.GetString(flagDataDir)
	}
	if o.v.IsSet(flagExportDir) {
		session.ExportDir = o.v.GetString(flagExportDir)
	}
	if o.v.IsSet(flagSmoothing) {
		session.Smoothing = o.v.GetFloat64(flagSmoothing)
	}
	if o.v.IsSet(flagGrid) {
		session.GridPoints = o.v.GetInt(flagGrid)
	}
	if o.v.IsSet(flagAnchor) {
		session.AnchorToMinimum = o.v.GetBool(flagAnchor)
	}
	if o.v.IsSet(flagWidth) {
		session.PlotWidthPx = o.v.GetFloat64(flagWidth)
	}
	if o.v.IsSet(flagHeight) {
		session.PlotHeightPx = o.v.GetFloat64(flagHeight)
	}

	if session.Smoothing < 0 {
		return phasecurve.Session{}, fmt.Errorf("--%s: %w", flagSmoothing, phasecurve.ErrInvalidSmoothing)
	}
	if session.GridPoints < phasecurve.MinGridPoints || session.GridPoints > phasecurve.MaxGridPoints {
		return phasecurve.Session{}, fmt.Errorf("--%s must be from %d to %d", flagGrid,
			phasecurve.MinGridPoints, phasecurve.MaxGridPoints)
	}
	if session.PlotWidthPx <= 0 || session.PlotHeightPx <= 0 {
		return phasecurve.Session{}, fmt.Errorf("--%s and --%s must be positive", flagWidth, flagHeight)
	}
	return session, nil
}

// load resolves the session for id and reads the star.
func (o *RootOptions) load(id string) (phasecurve.Session, *phasecurve.Star, error) {
	session, err := o.Session(id)
	if err != nil {
		return phasecurve.Session{}, nil, err
	}
	star, err := session.Load()
	if err != nil {
		return phasecurve.Session{}, nil, err
	}
	return session, star, nil
}

func parseBand(s string) (phasecurve.Band, error) {
	for _, b := range phasecurve.Bands {
		if strings.EqualFold(s, string(b)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown band %q: must be one of %v", s, phasecurve.Bands)
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	_, _ = warnColor.Fprintf(cmd.ErrOrStderr(), "Warning: "+format+"\n", args...)
}
