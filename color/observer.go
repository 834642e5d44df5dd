// Package color implements the colorimetry pipeline of spec §4.6: CIE
// XYZ tristimulus integration against an observer/illuminant pair,
// resampling by natural cubic spline, and the standard conversions to
// xyY, L*u*v*, L*a*b*, L*C*h, gamma-encoded sRGB (via the linear-sRGB
// matrix), and the ΔE76/ΔE2000 color
// difference metrics.
package color

import "fmt"

// Observer is a tristimulus function triple (x̄, ȳ, z̄) sampled on its
// own wavelength grid.
type Observer struct {
	Wvl              []float64
	XBar, YBar, ZBar []float64
}

// Illuminant is a spectral power distribution on its own wavelength
// grid.
type Illuminant struct {
	Wvl   []float64
	Power []float64
}

func (o Observer) validate() error {
	n := len(o.Wvl)
	if len(o.XBar) != n || len(o.YBar) != n || len(o.ZBar) != n {
		return fmt.Errorf("color: observer array length mismatch")
	}
	if n < 2 {
		return fmt.Errorf("color: observer needs at least two samples")
	}
	for i := 1; i < n; i++ {
		if o.Wvl[i] <= o.Wvl[i-1] {
			return fmt.Errorf("color: observer wavelengths must be strictly increasing")
		}
	}
	return nil
}

func (i Illuminant) validate() error {
	n := len(i.Wvl)
	if len(i.Power) != n {
		return fmt.Errorf("color: illuminant array length mismatch")
	}
	if n < 2 {
		return fmt.Errorf("color: illuminant needs at least two samples")
	}
	for k := 1; k < n; k++ {
		if i.Wvl[k] <= i.Wvl[k-1] {
			return fmt.Errorf("color: illuminant wavelengths must be strictly increasing")
		}
	}
	return nil
}
