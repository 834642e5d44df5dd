package color

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// XYZ is a CIE tristimulus value, normalized so Y=100 for the
// illuminant's own white point.
type XYZ struct {
	X, Y, Z float64
}

// Spectrum pairs a reflectance/transmittance array with its own
// wavelength grid, as produced by a filter computation.
type Spectrum struct {
	Wvl    []float64
	Values []float64
}

// XYZFromSpectrum integrates a sample spectrum against an illuminant
// and observer, per spec §4.6:
//
//	X = k·Σ I(λ)·S(λ)·x̄(λ), similarly Y, Z
//	k = 100/Σ I(λ)·ȳ(λ)
//
// Both the spectrum and the illuminant are first resampled onto the
// observer's own wavelength grid by natural cubic spline.
func XYZFromSpectrum(spec Spectrum, ill Illuminant, obs Observer) (XYZ, error) {
	if err := obs.validate(); err != nil {
		return XYZ{}, err
	}
	if err := ill.validate(); err != nil {
		return XYZ{}, err
	}
	if len(spec.Wvl) != len(spec.Values) || len(spec.Wvl) < 2 {
		return XYZ{}, fmt.Errorf("color: spectrum needs matching, non-degenerate arrays")
	}

	sOnObs, err := resampleNaturalCubic(spec.Wvl, spec.Values, obs.Wvl)
	if err != nil {
		return XYZ{}, err
	}
	iOnObs, err := resampleNaturalCubic(ill.Wvl, ill.Power, obs.Wvl)
	if err != nil {
		return XYZ{}, err
	}

	w := make([]float64, len(obs.Wvl))
	copy(w, iOnObs)
	floats.Mul(w, sOnObs)
	sumX := floats.Dot(w, obs.XBar)
	sumY := floats.Dot(w, obs.YBar)
	sumZ := floats.Dot(w, obs.ZBar)
	sumIY := floats.Dot(iOnObs, obs.YBar)
	if sumIY == 0 {
		return XYZ{}, fmt.Errorf("color: illuminant has zero luminous integral over observer")
	}
	k := 100 / sumIY
	return XYZ{X: k * sumX, Y: k * sumY, Z: k * sumZ}, nil
}
