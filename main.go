package main

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/bob-anderson-ok/PhasePlot/phasecurve"
)

// !!!!! This MUST match the app name given in the run configuration !!!!!
const version = "1_0_0"

func main() {

	programStart := time.Now()

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: PhasePlot <star-id | parameter-file.json5>")
		os.Exit(1)
	}

	params, data, err := loadParameters(args[1])
	if err != nil {
		fmt.Println(fmt.Errorf("\n\t%w\n", err))
		os.Exit(2)
	}

	// Check for user wanting printout of the parameter file
	if params.ShowInput {
		fmt.Printf("%s", "\nPrintout of complete parameter file contents...\n")
		fmt.Println(string(data))
	}

	fmt.Printf("\nVersion %s\n\n", version)

	session := params.Session
	star, err := session.Load()
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tLoading of star %q failed: %w\n", session.Identifier, err))
		os.Exit(3)
	}

	for _, band := range phasecurve.Bands {
		fmt.Printf("%s band: %d observations, %d periods\n", band, len(star.Series[band]), len(star.Periods(band)))
	}
	if len(star.Periods(phasecurve.BandV)) == 0 && len(star.Periods(phasecurve.BandI)) == 0 {
		fmt.Println("\nNo fitted periods were found in either band.")
	}

	fmt.Printf("\nLoading took %s\n", time.Since(programStart))

	// We supply an ID (hopefully unique) because we may need to use the preferences API
	myApp := app.NewWithID("com.gmail.ok.anderson.bob.phaseplot")
	w := myApp.NewWindow(fmt.Sprintf("PhasePlot - %s", star.Identifier))
	w.Resize(fyne.Size{Height: 800, Width: 600})

	columns := container.NewGridWithColumns(len(phasecurve.Bands))
	for _, band := range phasecurve.Bands {
		columns.Add(bandColumn(myApp, w, session, star, band))
	}

	w.SetContent(container.NewVScroll(columns))
	w.CenterOnScreen()
	w.ShowAndRun()
}

// bandColumn lists the periods of one band, each with a "Phase" and an "Export" button.
func bandColumn(myApp fyne.App, w fyne.Window, session phasecurve.Session, star *phasecurve.Star, band phasecurve.Band) fyne.CanvasObject {
	column := container.NewVBox(widget.NewLabelWithStyle(fmt.Sprintf("%s band", band),
		fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))

	catalog := star.Periods(band)
	if len(catalog) == 0 {
		column.Add(widget.NewLabel("no fitted periods"))
		return column
	}

	for index, entry := range catalog {
		phaseButton := widget.NewButton("Phase", func() {
			showPhaseWindow(myApp, w, session, star, band, index)
		})
		exportButton := widget.NewButton("Export", func() {
			path, err := exportPhasePlot(session, star, band, index)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export", fmt.Sprintf("Wrote %s", path), w)
		})
		column.Add(container.NewHBox(phaseButton, exportButton, widget.NewLabel(periodLabel(entry))))
	}
	return column
}

func showPhaseWindow(myApp fyne.App, w fyne.Window, session phasecurve.Session, star *phasecurve.Star, band phasecurve.Band, index int) {
	entry, img, err := makePhaseImage(session, star, band, index)
	if err != nil {
		dialog.ShowError(err, w)
		return
	}

	plotImg := canvas.NewImageFromImage(img)
	plotImg.FillMode = canvas.ImageFillContain
	plotImg.SetMinSize(fyne.NewSize(float32(session.PlotWidthPx), float32(session.PlotHeightPx)))

	w2 := myApp.NewWindow(fmt.Sprintf("%s  %s band period %0.6f", star.Identifier, band, entry.Period))
	w2.SetContent(container.NewCenter(plotImg))
	w2.Resize(fyne.NewSize(float32(session.PlotWidthPx)+50, float32(session.PlotHeightPx)+50))
	w2.Show()
}
