package phasecurve

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Colors used for the two bands in a phase plot.
var bandColors = map[Band]color.RGBA{
	BandV: {R: 0, G: 128, B: 0, A: 255},
	BandI: {R: 200, G: 0, B: 0, A: 255},
}

// StepTicks is a custom tick marker for plots with fixed step intervals.
type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max+t.Step*1e-9; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

func setLiberationFonts(p *plot.Plot) {
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)
}

// PhasePanel builds the phase diagram of one band. Magnitudes are drawn with the
// axis inverted so that brighter points are higher up.
func PhasePanel(band Band, curve FoldedCurve) (*plot.Plot, error) {
	p := plot.New()
	setLiberationFonts(p)

	p.Title.Text = fmt.Sprintf("%s band", band)
	if curve.Anchored {
		p.Title.Text += fmt.Sprintf(" (phase 0 at minimum, shift %.3f)", curve.AnchorPhase)
	}
	p.X.Label.Text = "phase"
	p.Y.Label.Text = fmt.Sprintf("%s magnitude", band)
	p.X.Min = 0
	p.X.Max = 2
	p.X.Tick.Marker = StepTicks{Step: 0.25, Format: "%.2f"}
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	if len(curve.Points) == 0 {
		p.Title.Text = fmt.Sprintf("%s band (no data)", band)
		return p, nil
	}

	scatter, err := plotter.NewScatter(curve.XYs())
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Shape = vgdraw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Color = bandColors[band]
	p.Add(scatter)

	// Mark the wraparound between the primary and duplicated cycle.
	vpts := plotter.XYs{
		{X: 1.0, Y: p.Y.Min},
		{X: 1.0, Y: p.Y.Max},
	}
	vline, err := plotter.NewLine(vpts)
	if err != nil {
		return nil, err
	}
	vline.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	vline.Color = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	p.Add(vline)

	return p, nil
}

// PlotPhaseCurves renders the V and I phase diagrams side by side for one period.
// Returns the plot as an image.Image.
func PlotPhaseCurves(title string, period float64, v, i FoldedCurve, wPx, hPx float64) (image.Image, error) {
	left, err := PhasePanel(BandV, v)
	if err != nil {
		return nil, err
	}
	right, err := PhasePanel(BandI, i)
	if err != nil {
		return nil, err
	}
	if title != "" {
		left.Title.Text = fmt.Sprintf("%s  P = %.6f  %s", title, period, left.Title.Text)
	}

	// Render to image
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	dc := vgdraw.New(c)

	tiles := vgdraw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	return c.Image(), nil
}

// ExportFileName is the name of the exported phase plot for a star and period.
func ExportFileName(identifier string, period float64) string {
	return fmt.Sprintf("%s_%.4f.png", identifier, period)
}

// SavePhasePlot renders the phase plot and writes it into dir as ExportFileName(identifier, period).
// It returns the path of the written file.
func SavePhasePlot(dir, identifier string, period float64, v, i FoldedCurve, wPx, hPx float64) (string, error) {
	img, err := PlotPhaseCurves(identifier, period, v, i, wPx, hPx)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, ExportFileName(identifier, period))
	if err := SaveImageToFile(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveImageToFile saves an image to a PNG file.
func SaveImageToFile(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}
