package abeles

import "fmt"

// Layer is one homogeneous sublayer of the stack, as seen by the matrix
// engine: a complex index at every grid wavelength and a physical
// thickness in nm. Layer order runs from the substrate side (index 0,
// adjacent to the substrate) to the ambient side (index len-1), per
// spec §4.1 "Ordering guarantees".
type Layer struct {
	N []complex128
	D float64
}

// Result holds the four amplitude coefficient arrays of spec §4.1,
// one complex value per grid wavelength.
type Result struct {
	Rs, Rp []complex128
	Ts, Tp []complex128
}

// Compute propagates the field through sublayers using the incidence
// medium index n0, the substrate index nSub, and the incidence angle
// theta0 (radians), returning amplitude reflection and transmission
// coefficients for both polarizations at every wavelength in wvls (nm).
//
// Compute never errors on physically degenerate inputs (zero thickness,
// vanishing admittance): those are handled by explicit conventions
// (spec §4.1 "Failure semantics") rather than surfaced as errors. It
// does validate that all index arrays have matching length.
func Compute(wvls []float64, n0, nSub []complex128, theta0 float64, sublayers []Layer) (*Result, error) {
	w := len(wvls)
	if len(n0) != w || len(nSub) != w {
		return nil, fmt.Errorf("abeles: n0/nSub length must match grid length %d, got %d/%d", w, len(n0), len(nSub))
	}
	for i, l := range sublayers {
		if len(l.N) != w {
			return nil, fmt.Errorf("abeles: sublayer %d index length %d does not match grid length %d", i, len(l.N), w)
		}
	}

	sin2Theta0 := Sin2Theta0(n0, theta0)

	res := &Result{
		Rs: make([]complex128, w), Rp: make([]complex128, w),
		Ts: make([]complex128, w), Tp: make([]complex128, w),
	}

	for wi := 0; wi < w; wi++ {
		s2t := sin2Theta0[wi]
		wvl := wvls[wi]

		n0Z := niz(n0[wi], s2t)
		nSubZ := niz(nSub[wi], s2t)

		eta0s := etaS(n0Z)
		eta0p := etaP(n0[wi], n0Z)
		etaSubS := etaS(nSubZ)
		etaSubP := etaP(nSub[wi], nSubZ)

		rs, ts := amplitudeAt(sublayers, wi, wvl, s2t, eta0s, etaSubS, true)
		rp, tp := amplitudeAt(sublayers, wi, wvl, s2t, eta0p, etaSubP, false)

		res.Rs[wi], res.Ts[wi] = rs, ts
		res.Rp[wi], res.Tp[wi] = rp, tp
	}
	return res, nil
}

// amplitudeAt computes r and t for one wavelength and one polarization
// (sPol selects s vs p admittance), given the already evaluated ambient
// and substrate admittances. Sublayers are multiplied in the order
// M_{F-1}·...·M_1·M_0, consistent with Layer index 0 sitting adjacent
// to the substrate.
func amplitudeAt(sublayers []Layer, wi int, wvl float64, sin2Theta0, eta0, etaSub complex128, sPol bool) (r, t complex128) {
	m := identity2
	for _, l := range sublayers {
		nz := niz(l.N[wi], sin2Theta0)
		var eta complex128
		if sPol {
			eta = etaS(nz)
		} else {
			eta = etaP(l.N[wi], nz)
		}
		mi := sublayerMatrix(nz, eta, l.D, wvl)
		m = mul(mi, m)
	}
	b := m[0][0] + m[0][1]*etaSub
	c := m[1][0] + m[1][1]*etaSub
	denom := eta0*b + c
	r = (eta0*b - c) / denom
	t = 2 * eta0 / denom
	return r, t
}
