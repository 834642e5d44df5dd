package backside

import "math"

// PsiDelta holds one ellipsometric measurement pair, in degrees.
type PsiDelta struct {
	Psi   float64
	Delta float64
}

// Coherent computes Ψ/Δ from the coherent amplitude reflection
// coefficients, per spec §4.6: Ψ=atan2(|r_p|,|r_s|)·180/π,
// Δ=(arg(−r_p)−arg(r_s))·180/π, with the r_s=r_p=0 degenerate case
// defined as Ψ=45, Δ=180. rp carries the sign abeles.Compute returns
// (the admittance formula, opposite to the Fresnel r_p, so r_p equals
// r_s at normal incidence). Δ is reported in (−180, 180].
func Coherent(rp, rs complex128) PsiDelta {
	if rp == 0 && rs == 0 {
		return PsiDelta{Psi: 45, Delta: 180}
	}
	psi := math.Atan2(cabs(rp), cabs(rs)) * 180 / math.Pi
	delta := (cargNeg(rp) - carg(rs)) * 180 / math.Pi
	return PsiDelta{Psi: psi, Delta: wrapDegrees(delta)}
}

// Incoherent computes Ψ/Δ for the backside/incoherent configuration of
// spec §4.6, given the coherent front-side amplitudes rp/rs (rp in the
// same sign as for Coherent), the
// incoherent partial sums Ri_p and Ri_s (the intensity contributions
// from light returning through the substrate), and Bi2, the partial
// sum for the mixed cross term Re(−r_p·r_s*).
func Incoherent(rp, rs complex128, riP, riS, bi2 float64) PsiDelta {
	pNum := cabs(rp)*cabs(rp) + riP
	sNum := cabs(rs)*cabs(rs) + riS
	psi := math.Atan2(math.Sqrt(pNum), math.Sqrt(sNum)) * 180 / math.Pi

	mixed := real(-rp*conj(rs)) + bi2
	denom := math.Sqrt(pNum * sNum)
	var cosDelta float64
	if denom == 0 {
		cosDelta = 0
	} else {
		cosDelta = mixed / denom
	}
	if cosDelta > 1 {
		cosDelta = 1
	} else if cosDelta < -1 {
		cosDelta = -1
	}
	delta := math.Acos(cosDelta) * 180 / math.Pi
	return PsiDelta{Psi: psi, Delta: delta}
}

func cabs(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}

func carg(z complex128) float64 {
	return math.Atan2(imag(z), real(z))
}

func cargNeg(z complex128) float64 {
	return carg(-z)
}

func conj(z complex128) complex128 {
	return complex(real(z), -imag(z))
}

func wrapDegrees(d float64) float64 {
	for d <= -180 {
		d += 360
	}
	for d > 180 {
		d -= 360
	}
	return d
}
