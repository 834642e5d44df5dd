// Package dispersion implements the material dispersion models of
// spec §4.2: fixed-index, tabulated, Cauchy and Sellmeier dispersions,
// behind a single Index capability set. Materials are loaded once by an
// external collaborator (see package catalog) and owned read-only by a
// Catalog shared across filters.
package dispersion

import "errors"

// ErrOutOfRange is returned when a requested operation needs an index
// value outside a material's supported range by more than sqrt(epsilon).
var ErrOutOfRange = errors.New("dispersion: index out of range")

// Index is the capability set the characteristic-matrix engine and the
// graded-index discretizer consume for any material, per spec §6: a
// uniform trait/interface exposing N(λ), dN/dλ, its supported index
// range, and (for materials that can be deposited as graded layers) the
// ladder of indices the process can realize.
type Index interface {
	// N returns the complex refractive index n-ik at wavelength wvl (nm).
	// Im(N) <= 0 always (loss is carried as a non-positive imaginary part).
	N(wvl float64) complex128

	// DN returns dN/dλ at wavelength wvl.
	DN(wvl float64) complex128

	// Range returns the minimum and maximum real refractive index this
	// material can take at the center wavelength wvlC. For non-graded
	// dispersions this is a degenerate (n, n) pair.
	Range(wvlC float64) (nMin, nMax float64)

	// DepositionSteps returns the intrinsic, materially-realizable ladder
	// of index values at the center wavelength wvlC (the
	// DEPOSITION_STEP_SPACING ladder of spec §3/§4.4). Dispersions with
	// no intrinsic step structure return a single-element ladder {n}.
	DepositionSteps(wvlC float64) []float64

	// IsMixture reports whether this Index is a Mixture (see package
	// mixture), i.e. parameterized by a 1-D mixing coordinate x rather
	// than being a fixed material.
	IsMixture() bool
}
