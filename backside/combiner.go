// Package backside implements the incoherent substrate combiner and the
// ellipsometric Ψ/Δ computations of spec §4.5: combining a coherent
// front-side stack with a coherent back-side stack through a thick,
// incoherent substrate.
package backside

import "math"

// Substrate carries the one-way propagation quantities of a thick
// incoherent substrate at a single wavelength: its thickness (nm),
// complex index, and the angle-propagated normal index N_s,z.
type Substrate struct {
	D  float64
	Nz complex128
}

// Tau2 returns the one-way intensity transmission through the
// substrate, exp(2·Im(β_s)) with β_s = (2π d_s/λ)·N_s,z: the squared
// modulus of the one-way amplitude transmission exp(-i·β_s). Loss is
// carried as a negative imaginary part of N_s,z, so the result is at
// most 1 for an absorbing substrate.
func (s Substrate) Tau2(wvl float64) float64 {
	beta := complex(2*math.Pi*s.D/wvl, 0) * s.Nz
	return math.Exp(2 * imag(beta))
}

// Faces holds the four amplitude/intensity coefficients of one coherent
// side of the substrate (front or back), for a single polarization.
type Faces struct {
	Rf, Tf       float64
	RfRev, TfRev float64
	Rb, Tb       float64
}

// Combine applies the standard incoherent R/T sum of spec §4.5 to one
// polarization, given the front/back intensity coefficients and the
// one-way substrate transmission tau2.
func Combine(f Faces, tau2 float64) (r, tr float64) {
	denom := 1 - f.RfRev*f.Rb*tau2
	r = f.Rf + (f.Tf*f.TfRev*f.Rb*tau2)/denom
	tr = (f.Tf * f.Tb * tau2) / denom
	return r, tr
}
