package backside

// RiSums computes the incoherent partial sums Ri_p, Ri_s and the mixed
// cross term Bi2 needed by Incoherent, from the reverse-direction front
// coefficients (Rf_rev, reflection of light traveling back up through
// the front stack from inside the substrate) and the back-side
// coefficients, combined through the substrate's one-way transmission
// tau2 (spec §4.5/§4.6).
//
// These three sums are the incoherent-regime analogue of the r_s/r_p
// cross terms that the coherent formulas use directly: rather than a
// single complex amplitude, the backside configuration accumulates
// power (and the power-like mixed product) over every round trip
// through the lossy substrate, which Combine already sums to infinite
// order via its geometric series; RiSums performs the same sum for the
// quantities the Ψ/Δ formulas need beyond |r_p|²/|r_s|².
func RiSums(tfP, tfS, rfRevP, rfRevS, rbP, rbS, tau2 float64, rfRevMixed, rbMixed complex128) (riP, riS, bi2 float64) {
	denomP := 1 - rfRevP*rbP*tau2
	denomS := 1 - rfRevS*rbS*tau2
	riP = (tfP * tfP * rbP * tau2) / denomP
	riS = (tfS * tfS * rbS * tau2) / denomS

	mixedDenom := 1 - real(rfRevMixed*rbMixed)*tau2
	if mixedDenom == 0 {
		mixedDenom = 1
	}
	bi2 = (tfP * tfS * real(rbMixed) * tau2) / mixedDenom
	return riP, riS, bi2
}
