// Package wavelength defines the ordered wavelength grid shared by every
// spectral quantity computed by the thin-film engine.
package wavelength

import (
	"errors"
	"fmt"
)

// Grid is an ordered sequence of strictly increasing, positive
// wavelengths. Every array the engine produces (index, amplitude,
// reflectance, ...) has the same length as the Grid it was computed on.
//
// Identity matters: two Grids with identical values are still distinct
// cache keys. Callers that want the mixture PCHIP caches to be reused
// across calls must reuse the same *Grid, not merely an equal one.
type Grid struct {
	wvls []float64
}

// ErrNotIncreasing is returned by New when the supplied wavelengths are
// not strictly increasing.
var ErrNotIncreasing = errors.New("wavelength: values must be strictly increasing")

// ErrEmpty is returned by New when no wavelengths are supplied.
var ErrEmpty = errors.New("wavelength: grid must have at least one point")

// New builds a Grid from an explicit, caller-owned list of wavelengths.
// The slice is copied; later mutation of wvls does not affect the Grid.
func New(wvls []float64) (*Grid, error) {
	if len(wvls) == 0 {
		return nil, ErrEmpty
	}
	for i := 1; i < len(wvls); i++ {
		if wvls[i] <= wvls[i-1] {
			return nil, fmt.Errorf("%w: wvls[%d]=%g <= wvls[%d]=%g", ErrNotIncreasing, i, wvls[i], i-1, wvls[i-1])
		}
	}
	if wvls[0] <= 0 {
		return nil, fmt.Errorf("wavelength: values must be positive, got %g", wvls[0])
	}
	cp := make([]float64, len(wvls))
	copy(cp, wvls)
	return &Grid{wvls: cp}, nil
}

// Linspace builds a Grid of n evenly spaced wavelengths from start to end
// inclusive, matching the teacher's numpy-style Linspace helper.
func Linspace(start, end float64, n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("wavelength: n must be positive, got %d", n)
	}
	if n == 1 {
		return New([]float64{start})
	}
	step := (end - start) / float64(n-1)
	wvls := make([]float64, n)
	for i := 0; i < n; i++ {
		wvls[i] = start + float64(i)*step
	}
	return New(wvls)
}

// Len returns the number of wavelengths in the grid (W in spec notation).
func (g *Grid) Len() int { return len(g.wvls) }

// At returns the i-th wavelength.
func (g *Grid) At(i int) float64 { return g.wvls[i] }

// Values returns the grid's wavelengths. The returned slice must not be
// mutated by the caller; it is the Grid's own backing array.
func (g *Grid) Values() []float64 { return g.wvls }

// NewBuffer allocates a caller-owned buffer of the grid's length, for use
// as one of the per-wavelength arrays described in §3 (r_s, r_p, R, T, ...).
func (g *Grid) NewBuffer() []float64 { return make([]float64, len(g.wvls)) }

// NewComplexBuffer is the complex128 equivalent of NewBuffer.
func (g *Grid) NewComplexBuffer() []complex128 { return make([]complex128, len(g.wvls)) }
