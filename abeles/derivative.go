package abeles

import (
	"fmt"
	"math/cmplx"
)

// DLayer is a Layer augmented with the wavelength derivative of its
// index, dN/dλ, required to propagate derivatives through the matrix
// recursion (spec §4.1 "Wavelength-derivative recursion").
type DLayer struct {
	Layer
	DN []complex128
}

// Derivative holds d/dλ of the four Result arrays.
type Derivative struct {
	DRs, DRp []complex128
	DTs, DTp []complex128
}

// ComputeWithDerivative computes the same amplitude coefficients as
// Compute, plus their first derivative with respect to wavelength,
// without resorting to finite differences: every intermediate quantity
// (β_i, η_i, M_i) carries its own analytic derivative alongside its
// value, combined by the ordinary product and quotient rules (spec
// §4.1). dn0 and dnSub are the wavelength derivatives of the ambient
// and substrate indices.
func ComputeWithDerivative(wvls []float64, n0, nSub []complex128, dn0, dnSub []complex128, theta0 float64, sublayers []DLayer) (*Result, *Derivative, error) {
	w := len(wvls)
	if len(n0) != w || len(nSub) != w || len(dn0) != w || len(dnSub) != w {
		return nil, nil, fmt.Errorf("abeles: n0/nSub/dn0/dnSub length must match grid length %d", w)
	}
	for i, l := range sublayers {
		if len(l.N) != w || len(l.DN) != w {
			return nil, nil, fmt.Errorf("abeles: sublayer %d N/DN length must match grid length %d", i, w)
		}
	}

	sin2Theta0 := Sin2Theta0(n0, theta0)
	dSin2Theta0 := DSin2Theta0(n0, dn0, sin2Theta0)

	res := &Result{
		Rs: make([]complex128, w), Rp: make([]complex128, w),
		Ts: make([]complex128, w), Tp: make([]complex128, w),
	}
	der := &Derivative{
		DRs: make([]complex128, w), DRp: make([]complex128, w),
		DTs: make([]complex128, w), DTp: make([]complex128, w),
	}

	for wi := 0; wi < w; wi++ {
		s2t := sin2Theta0[wi]
		ds2t := dSin2Theta0[wi]
		wvl := wvls[wi]

		n0Z, dn0Z := nizWithD(n0[wi], dn0[wi], s2t, ds2t)
		nSubZ, dnSubZ := nizWithD(nSub[wi], dnSub[wi], s2t, ds2t)

		eta0s, deta0s := etaS(n0Z), dn0Z
		eta0p, deta0p := etaPWithD(n0[wi], dn0[wi], n0Z, dn0Z)
		etaSubS, detaSubS := etaS(nSubZ), dnSubZ
		etaSubP, detaSubP := etaPWithD(nSub[wi], dnSub[wi], nSubZ, dnSubZ)

		rs, ts, drs, dts := amplitudeDAt(sublayers, wi, wvl, s2t, ds2t, eta0s, deta0s, etaSubS, detaSubS, true)
		rp, tp, drp, dtp := amplitudeDAt(sublayers, wi, wvl, s2t, ds2t, eta0p, deta0p, etaSubP, detaSubP, false)

		res.Rs[wi], res.Ts[wi] = rs, ts
		res.Rp[wi], res.Tp[wi] = rp, tp
		der.DRs[wi], der.DTs[wi] = drs, dts
		der.DRp[wi], der.DTp[wi] = drp, dtp
	}
	return res, der, nil
}

// nizWithD returns N_i,z and its wavelength derivative, given N_i,
// dN_i/dλ and the Snell invariant sin2Theta0 with its derivative.
func nizWithD(n, dn, sin2Theta0, dSin2Theta0 complex128) (nz, dnz complex128) {
	nz = niz(n, sin2Theta0)
	dNzSq := 2*n*dn - dSin2Theta0
	dnz = dNzSq / (2 * nz)
	return nz, dnz
}

func etaPWithD(n, dn, nz, dnz complex128) (eta, deta complex128) {
	eta = etaP(n, nz)
	deta = (2*n*dn)/nz - eta*dnz/nz
	return eta, deta
}

// sublayerMatrixD returns the characteristic matrix of one sublayer
// together with its wavelength derivative. A zero-thickness sublayer
// is the identity matrix with zero derivative, consistent with Compute.
func sublayerMatrixD(nz, dnz, eta, deta complex128, d, wvl float64) (m, dm Mat2) {
	m = sublayerMatrix(nz, eta, d, wvl)
	if d == 0 {
		return m, Mat2{}
	}
	k := 2 * pi * d / wvl
	beta := complex(k, 0) * nz
	dbeta := complex(-k/wvl, 0)*nz + complex(k, 0)*dnz

	cosB := cmplx.Cos(beta)
	sinB := cmplx.Sin(beta)
	dcosB := -sinB * dbeta
	dsinB := cosB * dbeta

	dm[0][0] = dcosB
	dm[1][1] = dcosB
	dm[0][1] = 1i * (dsinB*eta - sinB*deta) / (eta * eta)
	dm[1][0] = 1i * (deta*sinB + eta*dsinB)
	return m, dm
}

// mulD applies the product rule to a pair of (value, derivative)
// matrices: d/dλ(a·b) = da·b + a·db.
func mulD(a, da, b, db Mat2) (m, dm Mat2) {
	m = mul(a, b)
	dm = addMat(mul(da, b), mul(a, db))
	return m, dm
}

func addMat(a, b Mat2) Mat2 {
	return Mat2{
		{a[0][0] + b[0][0], a[0][1] + b[0][1]},
		{a[1][0] + b[1][0], a[1][1] + b[1][1]},
	}
}

func amplitudeDAt(sublayers []DLayer, wi int, wvl float64, sin2Theta0, dSin2Theta0, eta0, deta0, etaSub, detaSub complex128, sPol bool) (r, t, dr, dt complex128) {
	m := identity2
	dm := Mat2{}
	for _, l := range sublayers {
		nz, dnz := nizWithD(l.N[wi], l.DN[wi], sin2Theta0, dSin2Theta0)
		var eta, deta complex128
		if sPol {
			eta, deta = etaS(nz), dnz
		} else {
			eta, deta = etaPWithD(l.N[wi], l.DN[wi], nz, dnz)
		}
		mi, dmi := sublayerMatrixD(nz, dnz, eta, deta, l.D, wvl)
		m, dm = mulD(mi, dmi, m, dm)
	}

	b := m[0][0] + m[0][1]*etaSub
	c := m[1][0] + m[1][1]*etaSub
	db := dm[0][0] + dm[0][1]*etaSub + m[0][1]*detaSub
	dc := dm[1][0] + dm[1][1]*etaSub + m[1][1]*detaSub

	denom := eta0*b + c
	ddenom := deta0*b + eta0*db + dc

	num := eta0*b - c
	dnum := deta0*b + eta0*db - dc

	r = num / denom
	dr = (dnum*denom - num*ddenom) / (denom * denom)

	t = 2 * eta0 / denom
	dt = (2*deta0*denom - 2*eta0*ddenom) / (denom * denom)
	return r, t, dr, dt
}
