package dispersion

import "math"

// Cauchy implements the Cauchy dispersion formula of spec §3:
//
//	n(λ) = A + B/λ² + C/λ⁴                                   (λ in µm)
//	k(λ) = -Ak · exp(12400·exponent·(1/(10⁴·λ) - 1/edge))
//
// wavelengths passed to N/DN are in nm, matching the rest of the engine;
// the µm conversion for the n(λ) term happens internally.
type Cauchy struct {
	A, B, C  float64
	Ak       float64
	Exponent float64
	Edge     float64
}

// NewCauchy constructs a Cauchy dispersion from its six parameters.
func NewCauchy(a, b, c, ak, exponent, edge float64) *Cauchy {
	return &Cauchy{A: a, B: b, C: c, Ak: ak, Exponent: exponent, Edge: edge}
}

func (d *Cauchy) nReal(wvlNm float64) float64 {
	lum := wvlNm / 1000.0
	lum2 := lum * lum
	return d.A + d.B/lum2 + d.C/(lum2*lum2)
}

func (d *Cauchy) kVal(wvlNm float64) float64 {
	u := 12400.0 * d.Exponent * (1.0/(1e4*wvlNm) - 1.0/d.Edge)
	return -d.Ak * math.Exp(u)
}

func (d *Cauchy) N(wvlNm float64) complex128 {
	return complex(d.nReal(wvlNm), d.kVal(wvlNm))
}

func (d *Cauchy) DN(wvlNm float64) complex128 {
	lum := wvlNm / 1000.0
	lum2 := lum * lum
	// dn/dλ, with the internal λ measured in µm: n = A + B/λ² + C/λ⁴.
	dnDlum := -2.0*d.B/(lum2*lum) - 4.0*d.C/(lum2*lum2*lum)
	dnDwvl := dnDlum / 1000.0

	u := 12400.0 * d.Exponent * (1.0/(1e4*wvlNm) - 1.0/d.Edge)
	duDwvl := -12400.0 * d.Exponent / (1e4 * wvlNm * wvlNm)
	dkDwvl := -d.Ak * math.Exp(u) * duDwvl

	return complex(dnDwvl, dkDwvl)
}

func (d *Cauchy) Range(wvlC float64) (float64, float64) {
	n := d.nReal(wvlC)
	return n, n
}

func (d *Cauchy) DepositionSteps(wvlC float64) []float64 {
	return []float64{d.nReal(wvlC)}
}

func (d *Cauchy) IsMixture() bool { return false }
