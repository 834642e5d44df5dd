// Package abeles implements the characteristic-matrix optical engine of
// spec §4.1: the Abelès formalism for propagating the electromagnetic
// field through a stack of homogeneous sublayers, producing amplitude
// reflection/transmission coefficients and, optionally, their first
// wavelength derivatives.
//
// The engine is a pure function of its inputs (spec §5): it allocates no
// global state and may be called concurrently for distinct stacks
// without coordination. A single call is sequential in the sublayer
// dimension (matrix multiplication order is part of the contract, see
// spec §5 "Ordering guarantees") but independent across wavelengths.
package abeles

import "math/cmplx"

// Mat2 is a 2x2 complex matrix, row-major: [row][col].
type Mat2 [2][2]complex128

// identity2 is the characteristic matrix of a zero-thickness sublayer.
var identity2 = Mat2{{1, 0}, {0, 1}}

// mul multiplies two 2x2 matrices, a*b.
func mul(a, b Mat2) Mat2 {
	return Mat2{
		{a[0][0]*b[0][0] + a[0][1]*b[1][0], a[0][0]*b[0][1] + a[0][1]*b[1][1]},
		{a[1][0]*b[0][0] + a[1][1]*b[1][0], a[1][0]*b[0][1] + a[1][1]*b[1][1]},
	}
}

// branchSqrt returns the principal square root of z, with the branch
// selected so that Re(result) >= 0; if Re is exactly 0, the sign of the
// imaginary part is flipped so that Im(result) >= 0 (spec §4.1
// "Per-sublayer quantities").
func branchSqrt(z complex128) complex128 {
	r := cmplx.Sqrt(z)
	if real(r) < 0 {
		r = -r
	}
	if real(r) == 0 && imag(r) < 0 {
		r = -r
	}
	return r
}

// niz returns N_i,z = sqrt(N_i^2 - sin2Theta0) with the branch rule of
// branchSqrt, for a single sublayer index N_i and the (wavelength-
// dependent but sublayer-independent) Snell invariant sin2Theta0.
func niz(n, sin2Theta0 complex128) complex128 {
	return branchSqrt(n*n - sin2Theta0)
}

// etaS and etaP are the s- and p-polarization admittances of spec §4.1.
func etaS(nz complex128) complex128 { return nz }

func etaP(n, nz complex128) complex128 { return n * n / nz }

// sublayerMatrix builds the characteristic matrix of one homogeneous
// sublayer of thickness d (nm) and admittance eta, at wavelength wvl
// (nm), given its branch-corrected normal index nz. A zero-thickness
// sublayer is the identity matrix exactly, avoiding the 0/0 that the
// naive cos/sin formula would produce when eta is degenerate (spec §4.1
// "Failure semantics", §9 open question on d_i=0).
func sublayerMatrix(nz, eta complex128, d, wvl float64) Mat2 {
	if d == 0 {
		return identity2
	}
	beta := complex(2*piOverWvl(wvl)*d, 0) * nz
	cosB := cmplx.Cos(beta)
	sinB := cmplx.Sin(beta)
	return Mat2{
		{cosB, 1i * sinB / eta},
		{1i * eta * sinB, cosB},
	}
}

func piOverWvl(wvl float64) float64 { return pi / wvl }

const pi = 3.14159265358979323846
