// Package plotting renders the derived observables of spec §4 (R, T,
// A, Ψ, Δ) as PNG line charts, for the same reason the teacher plots
// light curves: a quick visual check that a computed spectrum makes
// sense before trusting it. Built on the teacher's gonum/plot/vgimg
// scaffolding (lightcurve.go), adapted from one light curve per image
// to several named series sharing one wavelength axis.
package plotting

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/plot"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Series is one named curve sharing the wavelength axis of a Chart,
// e.g. {"R", obs.R} or {"T", obs.T}.
type Series struct {
	Name   string
	Values []float64
	Color  color.RGBA
}

// StepTicks places ticks at a fixed step, as the teacher's lightcurve
// package does for its distance axis.
type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(t.Format, v)})
	}
	return ticks
}

// Chart renders one or more Series against a shared wavelength axis
// (nm) into an image.Image, fixing the y-axis to [yMin, yMax] so R/T/A
// series (naturally in [0,1]) and Ψ/Δ series (in degrees) both render
// legibly depending on the caller's choice.
func Chart(title string, wvls []float64, series []Series, yMin, yMax, wPx, hPx float64) (image.Image, error) {
	if len(wvls) == 0 {
		return nil, fmt.Errorf("plotting: empty wavelength axis")
	}
	for _, s := range series {
		if len(s.Values) != len(wvls) {
			return nil, fmt.Errorf("plotting: series %q length %d does not match wavelength axis length %d", s.Name, len(s.Values), len(wvls))
		}
	}

	p := plot.New()
	p.Y.Min = yMin
	p.Y.Max = yMax

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

	span := wvls[len(wvls)-1] - wvls[0]
	p.Title.Text = title
	p.X.Label.Text = "wavelength (nm)"
	if span > 0 {
		p.X.Tick.Marker = StepTicks{Step: span / 10, Format: "%.0f"}
	}
	p.Y.Tick.Marker = StepTicks{Step: (yMax - yMin) / 10, Format: "%.2f"}
	p.Add(plotter.NewGrid())

	for _, s := range series {
		pts := make(plotter.XYs, len(wvls))
		for i, w := range wvls {
			pts[i] = plotter.XY{X: w, Y: s.Values[i]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = s.Color
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	dc := vgdraw.New(c)
	p.Draw(dc)

	return c.Image(), nil
}

// SaveChart renders Chart and writes it to filename as PNG.
func SaveChart(filename, title string, wvls []float64, series []Series, yMin, yMax, wPx, hPx float64) (err error) {
	img, err := Chart(title, wvls, series, yMin, yMax, wPx, hPx)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}

// RTA is a convenience wrapper around Chart for the most common case:
// reflectance, transmittance and absorptance on one [0,1] axis.
func RTA(filename string, wvls, r, t, a []float64) error {
	return SaveChart(filename, "Reflectance / transmittance / absorptance", wvls, []Series{
		{Name: "R", Values: r, Color: color.RGBA{R: 200, A: 255}},
		{Name: "T", Values: t, Color: color.RGBA{B: 200, A: 255}},
		{Name: "A", Values: a, Color: color.RGBA{G: 150, A: 255}},
	}, 0, 1, 800, 500)
}
