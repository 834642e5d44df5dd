package dispersion

import "math"

// Sellmeier implements the Sellmeier dispersion formula of spec §3:
//
//	n²(λ) - 1 = Σ Bi·λ²/(λ²-Ci)         i = 1..3
//	k(λ) as in Cauchy (Ak, exponent, edge)
//
// λ is in µm for the Sellmeier sum, matching the historical convention;
// N/DN accept nm to stay consistent with the rest of the engine.
type Sellmeier struct {
	B1, C1, B2, C2, B3, C3 float64
	Ak                     float64
	Exponent               float64
	Edge                   float64
}

// NewSellmeier constructs a Sellmeier dispersion from its nine parameters.
func NewSellmeier(b1, c1, b2, c2, b3, c3, ak, exponent, edge float64) *Sellmeier {
	return &Sellmeier{B1: b1, C1: c1, B2: b2, C2: c2, B3: b3, C3: c3, Ak: ak, Exponent: exponent, Edge: edge}
}

func (d *Sellmeier) fAndDf(lum float64) (f, df float64) {
	lum2 := lum * lum
	terms := [3][2]float64{{d.B1, d.C1}, {d.B2, d.C2}, {d.B3, d.C3}}
	f = 1.0
	for _, t := range terms {
		b, c := t[0], t[1]
		denom := lum2 - c
		f += b * lum2 / denom
		df += -2.0 * lum * b * c / (denom * denom)
	}
	return f, df
}

func (d *Sellmeier) nReal(wvlNm float64) float64 {
	lum := wvlNm / 1000.0
	f, _ := d.fAndDf(lum)
	return math.Sqrt(f)
}

func (d *Sellmeier) kVal(wvlNm float64) float64 {
	u := 12400.0 * d.Exponent * (1.0/(1e4*wvlNm) - 1.0/d.Edge)
	return -d.Ak * math.Exp(u)
}

func (d *Sellmeier) N(wvlNm float64) complex128 {
	return complex(d.nReal(wvlNm), d.kVal(wvlNm))
}

func (d *Sellmeier) DN(wvlNm float64) complex128 {
	lum := wvlNm / 1000.0
	f, df := d.fAndDf(lum)
	n := math.Sqrt(f)
	dnDlum := df / (2.0 * n)
	dnDwvl := dnDlum / 1000.0

	u := 12400.0 * d.Exponent * (1.0/(1e4*wvlNm) - 1.0/d.Edge)
	duDwvl := -12400.0 * d.Exponent / (1e4 * wvlNm * wvlNm)
	dkDwvl := -d.Ak * math.Exp(u) * duDwvl

	return complex(dnDwvl, dkDwvl)
}

func (d *Sellmeier) Range(wvlC float64) (float64, float64) {
	n := d.nReal(wvlC)
	return n, n
}

func (d *Sellmeier) DepositionSteps(wvlC float64) []float64 {
	return []float64{d.nReal(wvlC)}
}

func (d *Sellmeier) IsMixture() bool { return false }
