// Package mixture implements materials parameterized by a 1-D mixing
// coordinate x, per spec §4.2. A Mixture holds one dispersion curve
// (constant, table, Cauchy, or Sellmeier -- any dispersion.Index) per
// point of a strictly increasing mixing coordinate X, and interpolates
// n(x, λ) and k(x, λ) across X using a monotonicity-preserving PCHIP.
//
// This folds four parallel mixture kinds (constant, table, Cauchy and
// Sellmeier mixtures, all differing only in how they compute n_i(λ) for
// component i) into a single implementation parameterized over
// dispersion.Index, since in Go
// that variation is exactly what the Index interface already captures.
package mixture

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gyger/thinfilm/dispersion"
	"github.com/gyger/thinfilm/pchip"
	"github.com/gyger/thinfilm/wavelength"
)

// Mixture is a material whose optical properties are interpolated
// across a mixing coordinate X, one dispersion curve per knot.
type Mixture struct {
	x          []float64
	components []dispersion.Index

	centerWvl    float64
	nCenter      *mat.VecDense
	nCenterPCHIP *pchip.PCHIP

	otherWvl    float64
	nOther      *mat.VecDense
	otherPCHIP  *pchip.PCHIP

	grid       *wavelength.Grid
	nGrid      [][]float64 // [w][component]
	kGrid      [][]float64
	nGridPCHIP []*pchip.PCHIP // one per wavelength of grid
	kGridPCHIP []*pchip.PCHIP
}

// New builds a Mixture from a strictly increasing mixing coordinate x
// and one dispersion.Index per knot (len(x) == len(components)).
func New(x []float64, components []dispersion.Index) (*Mixture, error) {
	if len(x) != len(components) {
		return nil, fmt.Errorf("mixture: x and components must have equal length, got %d and %d", len(x), len(components))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("mixture: need at least two components")
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("mixture: x must be strictly increasing, x[%d]=%g <= x[%d]=%g", i, x[i], i-1, x[i-1])
		}
	}
	return &Mixture{x: x, components: components}, nil
}

// Len is the number of components (L in spec notation).
func (m *Mixture) Len() int { return len(m.x) }

// swapCenterOther swaps the center and "other" wavelength slots in O(1),
// the reference design of spec §4.2/§5 for the common case of
// alternating between two wavelengths (the user-facing λ and an
// integration λ).
func (m *Mixture) swapCenterOther() {
	m.centerWvl, m.otherWvl = m.otherWvl, m.centerWvl
	m.nCenter, m.nOther = m.nOther, m.nCenter
	m.nCenterPCHIP, m.otherPCHIP = m.otherPCHIP, m.nCenterPCHIP
}

// nAt evaluates the real index of every component at wvl into a
// mat.VecDense, the knot-value vector the center/other PCHIPs of spec
// §4.2 are rebuilt from whenever the reference wavelength changes.
func (m *Mixture) nAt(components []dispersion.Index, wvl float64) *mat.VecDense {
	n := mat.NewVecDense(len(components), nil)
	for i, c := range components {
		n.SetVec(i, real(c.N(wvl)))
	}
	return n
}

// setCenterWvl recomputes n_i(wvl) for every component and resets the
// center PCHIP, swapping with the other slot first if it already holds
// this wavelength.
func (m *Mixture) setCenterWvl(wvl float64) error {
	if wvl == m.otherWvl && m.otherPCHIP != nil {
		m.swapCenterOther()
		return nil
	}
	m.centerWvl = wvl
	m.nCenter = m.nAt(m.components, wvl)
	p, err := pchip.New(m.x, m.nCenter.RawVector().Data, true, false)
	if err != nil {
		return err
	}
	m.nCenterPCHIP = p
	return nil
}

func (m *Mixture) setOtherWvl(wvl float64) error {
	m.otherWvl = wvl
	m.nOther = m.nAt(m.components, wvl)
	p, err := pchip.New(m.x, m.nOther.RawVector().Data, true, false)
	if err != nil {
		return err
	}
	m.otherPCHIP = p
	return nil
}

// Monotone reports whether n(X, wvl) is strictly increasing, i.e.
// whether the mixture is usable at that wavelength (spec §4.2).
func (m *Mixture) Monotone(wvl float64) (bool, error) {
	if wvl != m.centerWvl {
		if err := m.setCenterWvl(wvl); err != nil {
			return false, err
		}
	}
	for i := 1; i < m.nCenter.Len(); i++ {
		if m.nCenter.AtVec(i) <= m.nCenter.AtVec(i-1) {
			return false, nil
		}
	}
	return true, nil
}

// IndexAt returns the real part of the refractive index at mixing
// coordinate x and wavelength wvl.
func (m *Mixture) IndexAt(x, wvl float64) (float64, error) {
	if wvl != m.centerWvl {
		if err := m.setCenterWvl(wvl); err != nil {
			return 0, err
		}
	}
	idx, err := pchip.Locate(m.x, x, false)
	if err != nil {
		return 0, err
	}
	return m.nCenterPCHIP.Evaluate(x, idx)
}

// Range returns (n_min, n_max) of the mixture at the center wavelength,
// i.e. the index at the two endpoints of X.
func (m *Mixture) Range(wvl float64) (float64, float64) {
	if wvl != m.centerWvl {
		_ = m.setCenterWvl(wvl)
	}
	return m.nCenter.AtVec(0), m.nCenter.AtVec(m.nCenter.Len() - 1)
}

// ChangeIndexWavelength maps a real index n known at oldWvl to the
// corresponding index at newWvl, through the mixing coordinate: it
// locates x such that n(x, oldWvl) == oldN, then evaluates n(x, newWvl).
// Used by the graded-profile re-discretizer when the center wavelength
// changes (spec §4.4 "Inverse direction").
func (m *Mixture) ChangeIndexWavelength(oldN, oldWvl, newWvl float64) (float64, error) {
	if oldWvl != m.centerWvl {
		if err := m.setCenterWvl(oldWvl); err != nil {
			return 0, err
		}
	}
	if newWvl != m.otherWvl {
		if err := m.setOtherWvl(newWvl); err != nil {
			return 0, err
		}
	}
	idx, err := pchip.Locate(m.nCenter.RawVector().Data, oldN, false)
	if err != nil {
		return 0, err
	}
	x, err := m.nCenterPCHIP.EvaluateInverse(oldN, idx)
	if err != nil {
		return 0, err
	}
	return m.otherPCHIP.Evaluate(x, idx)
}

// InverseAtCenter finds the mixing coordinate x such that the real part
// of N(x, wvlC) equals the requested n, by locating the bracketing X
// interval of the center-wavelength PCHIP and inverting it (spec §4.2
// "Inverse mapping at center wavelength").
func (m *Mixture) InverseAtCenter(n, wvlC float64) (float64, error) {
	if wvlC != m.centerWvl {
		if err := m.setCenterWvl(wvlC); err != nil {
			return 0, err
		}
	}
	idx, err := pchip.Locate(m.nCenter.RawVector().Data, n, false)
	if err != nil {
		return 0, err
	}
	return m.nCenterPCHIP.EvaluateInverse(n, idx)
}

// prepareGrid builds, for every wavelength of grid, a PCHIP of n and k
// across X, caching the result keyed by the grid's identity (a pointer
// comparison, per spec §3 "identity (by reference) of grids is used as
// a cache key").
func (m *Mixture) prepareGrid(grid *wavelength.Grid) error {
	if m.grid == grid {
		return nil
	}
	w := grid.Len()
	m.grid = grid
	m.nGrid = make([][]float64, w)
	m.kGrid = make([][]float64, w)
	m.nGridPCHIP = make([]*pchip.PCHIP, w)
	m.kGridPCHIP = make([]*pchip.PCHIP, w)

	for iw := 0; iw < w; iw++ {
		wvl := grid.At(iw)
		n := make([]float64, len(m.components))
		k := make([]float64, len(m.components))
		for ic, c := range m.components {
			ni := c.N(wvl)
			n[ic] = real(ni)
			k[ic] = imag(ni)
		}
		m.nGrid[iw] = n
		m.kGrid[iw] = k
		np, err := pchip.New(m.x, n, true, false)
		if err != nil {
			return err
		}
		kp, err := pchip.New(m.x, k, true, false)
		if err != nil {
			return err
		}
		m.nGridPCHIP[iw] = np
		m.kGridPCHIP[iw] = kp
	}
	return nil
}

// NAtGrid fills N (length grid.Len()) with the mixture's complex index
// at mixing coordinate x for every wavelength of grid. k is clamped to
// be non-positive, since the PCHIP across X may overshoot above zero.
func (m *Mixture) NAtGrid(grid *wavelength.Grid, x float64, out []complex128) error {
	if err := m.prepareGrid(grid); err != nil {
		return err
	}
	idx, err := pchip.Locate(m.x, x, false)
	if err != nil {
		return err
	}
	for iw := 0; iw < grid.Len(); iw++ {
		n, err := m.nGridPCHIP[iw].Evaluate(x, idx)
		if err != nil {
			return err
		}
		k, err := m.kGridPCHIP[iw].Evaluate(x, idx)
		if err != nil {
			return err
		}
		if k > 0.0 {
			k = 0.0
		}
		out[iw] = complex(n, k)
	}
	return nil
}

// DNAtGrid fills dN (length grid.Len()) with the gradient, across every
// wavelength of grid, of the mixture's complex index with respect to
// the optimization parameter n(wvlC) -- the real index at a reference
// wavelength used as the free parameter instead of the raw mixing
// coordinate x (a common re-parametrization: "how much does N(λ) change
// per unit change of the index specified at the design wavelength").
// This is the outer-optimization derivative of spec §4.2, distinct from
// the per-material dN/dλ at fixed x the characteristic-matrix engine
// uses for GD/GDD (see Bound.DN and DESIGN.md).
func (m *Mixture) DNAtGrid(grid *wavelength.Grid, x, wvlC float64, out []complex128) error {
	if err := m.prepareGrid(grid); err != nil {
		return err
	}
	if wvlC != m.centerWvl {
		if err := m.setCenterWvl(wvlC); err != nil {
			return err
		}
	}
	idx, err := pchip.Locate(m.x, x, false)
	if err != nil {
		return err
	}
	dnCenter, err := m.nCenterPCHIP.EvaluateDerivative(x, idx)
	if err != nil {
		return err
	}
	if dnCenter == 0 {
		return fmt.Errorf("mixture: degenerate dn/dx at center wavelength, cannot normalize derivative")
	}

	for iw := 0; iw < grid.Len(); iw++ {
		dn, err := m.nGridPCHIP[iw].EvaluateDerivative(x, idx)
		if err != nil {
			return err
		}
		dk, err := m.kGridPCHIP[iw].EvaluateDerivative(x, idx)
		if err != nil {
			return err
		}
		k, err := m.kGridPCHIP[iw].Evaluate(x, idx)
		if err != nil {
			return err
		}
		if k > 0.0 {
			dk = 0.0
		}
		out[iw] = complex(dn/dnCenter, dk/dnCenter)
	}
	return nil
}

// DIndexDX returns dN/dx at (x, wvl): the derivative of the index with
// respect to the mixing coordinate at a single wavelength, used by the
// outer optimization driver and by the characteristic-matrix derivative
// recursion when the mixing coordinate itself is a free parameter.
func (m *Mixture) DIndexDX(x, wvl float64) (complex128, error) {
	n := make([]float64, len(m.components))
	k := make([]float64, len(m.components))
	for i, c := range m.components {
		v := c.N(wvl)
		n[i] = real(v)
		k[i] = imag(v)
	}
	np, err := pchip.New(m.x, n, true, false)
	if err != nil {
		return 0, err
	}
	kp, err := pchip.New(m.x, k, true, false)
	if err != nil {
		return 0, err
	}
	idx, err := pchip.Locate(m.x, x, false)
	if err != nil {
		return 0, err
	}
	dn, err := np.EvaluateDerivative(x, idx)
	if err != nil {
		return 0, err
	}
	dk, err := kp.EvaluateDerivative(x, idx)
	if err != nil {
		return 0, err
	}
	return complex(dn, dk), nil
}

// Bound adapts a Mixture fixed at a given mixing coordinate x into a
// dispersion.Index, so that the characteristic-matrix engine and the
// graded discretizer can treat a mixture layer exactly like any other
// material.
type Bound struct {
	m *Mixture
	x float64
}

// At returns a dispersion.Index bound to mixing coordinate x.
func (m *Mixture) At(x float64) *Bound { return &Bound{m: m, x: x} }

func (b *Bound) N(wvl float64) complex128 {
	n, k, err := b.m.nkAt(b.x, wvl)
	if err != nil {
		return complex(math.NaN(), math.NaN())
	}
	if k > 0.0 {
		k = 0.0
	}
	return complex(n, k)
}

func (b *Bound) DN(wvl float64) complex128 {
	dn, dk, err := b.m.dnkAt(b.x, wvl)
	if err != nil {
		return 0
	}
	return complex(dn, dk)
}

func (b *Bound) Range(wvlC float64) (float64, float64) {
	nMin, nMax := b.m.Range(wvlC)
	return nMin, nMax
}

func (b *Bound) DepositionSteps(wvlC float64) []float64 {
	n, _ := b.m.IndexAt(b.x, wvlC)
	return []float64{n}
}

func (b *Bound) IsMixture() bool { return true }

// nkAt computes (n, k) at mixing coordinate x and a single wavelength,
// independent of any grid cache -- used by Bound, which the matrix
// engine calls one wavelength at a time.
func (m *Mixture) nkAt(x, wvl float64) (n, k float64, err error) {
	nv := make([]float64, len(m.components))
	kv := make([]float64, len(m.components))
	for i, c := range m.components {
		v := c.N(wvl)
		nv[i] = real(v)
		kv[i] = imag(v)
	}
	np, err := pchip.New(m.x, nv, true, false)
	if err != nil {
		return 0, 0, err
	}
	kp, err := pchip.New(m.x, kv, true, false)
	if err != nil {
		return 0, 0, err
	}
	idx, err := pchip.Locate(m.x, x, false)
	if err != nil {
		return 0, 0, err
	}
	n, err = np.Evaluate(x, idx)
	if err != nil {
		return 0, 0, err
	}
	k, err = kp.Evaluate(x, idx)
	if err != nil {
		return 0, 0, err
	}
	return n, k, nil
}

// dnkAt computes (dn/dλ, dk/dλ) at fixed mixing coordinate x. A mixture's
// N(x, ·) has no closed form in λ (the PCHIP interpolating across X is
// rebuilt at every λ from each component's own dispersion), so unlike
// the analytic and table dispersions this one narrow case falls back to
// a central difference on the composed scalar function N(x, λ); this is
// an explicit, local simplification (see DESIGN.md), not a relaxation of
// the matrix-recursion's own no-finite-difference contract in §4.1.
func (m *Mixture) dnkAt(x, wvl float64) (dn, dk float64, err error) {
	const h = 1e-3
	n1, k1, err := m.nkAt(x, wvl-h)
	if err != nil {
		return 0, 0, err
	}
	n2, k2, err := m.nkAt(x, wvl+h)
	if err != nil {
		return 0, 0, err
	}
	return (n2 - n1) / (2 * h), (k2 - k1) / (2 * h), nil
}
