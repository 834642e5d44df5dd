package abeles

import "math"

// Sin2Theta0 computes the Snell invariant sin²θ(λ), normalized by N²,
// for an incidence angle theta0 (radians) in the entry medium whose
// complex index at each grid wavelength is n0. The result is constant
// through the stack (spec §4.1 "Sin²θ propagator") and is applied,
// unchanged, to every sublayer as N_i² - sin2Theta0.
func Sin2Theta0(n0 []complex128, theta0 float64) []complex128 {
	s := sinTheta0(theta0)
	out := make([]complex128, len(n0))
	for i, n := range n0 {
		v := n * complex(s, 0)
		out[i] = v * v
	}
	return out
}

// DSin2Theta0 computes d(sin2Theta0)/dλ given the entry medium's index
// n0 and its wavelength derivative dn0, reusing the already-computed
// sin2Theta0 = (n0·sinθ0)². Since sin2Theta0/n0² = sin²θ0 is constant,
// d(sin2Theta0)/dλ = 2·dn0·sin2Theta0/n0.
func DSin2Theta0(n0, dn0, sin2Theta0 []complex128) []complex128 {
	out := make([]complex128, len(n0))
	for i := range n0 {
		out[i] = 2 * dn0[i] * sin2Theta0[i] / n0[i]
	}
	return out
}

func sinTheta0(theta0 float64) float64 {
	return math.Sin(theta0)
}
