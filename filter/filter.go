// Package filter assembles the dispersion, abeles, graded and backside
// packages into the end-to-end pipeline of spec §3/§4: a stack
// description in, derived observables (R, T, A, Ψ, Δ) out.
package filter

import (
	"fmt"
	"math/cmplx"

	"github.com/gyger/thinfilm/abeles"
	"github.com/gyger/thinfilm/backside"
	"github.com/gyger/thinfilm/dispersion"
	"github.com/gyger/thinfilm/graded"
	"github.com/gyger/thinfilm/mixture"
	"github.com/gyger/thinfilm/wavelength"
)

// Side identifies which face of the substrate a layer belongs to.
type Side int

const (
	Front Side = iota
	Back
)

// ExpandGraded turns a continuous graded-index profile (spec §4.4) into
// the ordered run of homogeneous LayerSpecs the matrix engine needs: the
// profile is discretized onto the ladder of indices the mix can actually
// realize at the center wavelength, and each resulting step is inverted
// through mix.InverseAtCenter back to a mixing coordinate x, which is
// then bound to mix.At(x) so every step carries its own full dispersion
// across the grid, not just its center-wavelength value.
func ExpandGraded(profile graded.Profile, ladder graded.Ladder, dMin float64, mix *mixture.Mixture, centerWvl float64) ([]LayerSpec, error) {
	steps, err := graded.Discretize(profile, ladder, dMin)
	if err != nil {
		return nil, fmt.Errorf("filter: expanding graded layer: %w", err)
	}
	out := make([]LayerSpec, len(steps))
	for i, step := range steps {
		x, err := mix.InverseAtCenter(step.N, centerWvl)
		if err != nil {
			return nil, fmt.Errorf("filter: expanding graded layer: step %d at n=%g: %w", i, step.N, err)
		}
		out[i] = LayerSpec{Material: mix.At(x), D: step.D}
	}
	return out, nil
}

// LayerSpec is one homogeneous layer as supplied by the filter builder
// (spec §6): a material reference and physical thickness. Mixture
// materials are bound to their mixing coordinate before being placed in
// a LayerSpec (mixture.Mixture.At(x) returns the dispersion.Index the
// builder stores here), so the pipeline needs no mixture-specific case.
// A graded-index layer is expanded into several LayerSpecs by
// ExpandGraded before being appended to Stack.Front/Back.
type LayerSpec struct {
	Material dispersion.Index
	D        float64
	Side     Side
}

// Stack is the full filter description of spec §3: substrate, front and
// back ambient media, ordered layer lists on each side, incidence angle
// and the wavelength grid to evaluate on. Layers in Front run index 0
// closest to the substrate; the substrate is incoherent when
// SubstrateThickness > 0.
type Stack struct {
	Grid               *wavelength.Grid
	CenterWvl          float64
	Substrate          dispersion.Index
	SubstrateThickness float64
	FrontAmbient       dispersion.Index
	BackAmbient        dispersion.Index
	Front              []LayerSpec
	Back               []LayerSpec
	Theta0             float64
}

// Observables holds the per-wavelength outputs of spec §4: intensity
// reflectance/transmittance/absorptance and ellipsometric angles, for
// one polarization pair evaluated together.
type Observables struct {
	R, T, A    []float64
	Psi, Delta []float64
}

func (s Stack) resolveLayer(l LayerSpec) []complex128 {
	return evalAt(l.Material, s.Grid.Values())
}

// Compute evaluates the coherent front-side (and, if present, back-side
// and substrate) amplitude coefficients and reduces them to R/T/A and
// Ψ/Δ across the whole grid.
func (s Stack) Compute() (*Observables, error) {
	wvls := s.Grid.Values()
	w := len(wvls)

	n0 := evalAt(s.FrontAmbient, wvls)
	nSub := evalAt(s.Substrate, wvls)

	frontLayers := make([]abeles.Layer, len(s.Front))
	for i, l := range s.Front {
		frontLayers[i] = abeles.Layer{N: s.resolveLayer(l), D: l.D}
	}

	front, err := abeles.Compute(wvls, n0, nSub, s.Theta0, frontLayers)
	if err != nil {
		return nil, err
	}

	obs := &Observables{
		R: make([]float64, w), T: make([]float64, w), A: make([]float64, w),
		Psi: make([]float64, w), Delta: make([]float64, w),
	}

	if s.SubstrateThickness <= 0 {
		for i := 0; i < w; i++ {
			obs.R[i] = (abs2(front.Rs[i]) + abs2(front.Rp[i])) / 2
			tFactor := real(nSub[i]) / real(n0[i])
			obs.T[i] = tFactor * (abs2(front.Ts[i]) + abs2(front.Tp[i])) / 2
			obs.A[i] = 1 - obs.R[i] - obs.T[i]
			pd := backside.Coherent(front.Rp[i], front.Rs[i])
			obs.Psi[i] = pd.Psi
			obs.Delta[i] = pd.Delta
		}
		return obs, nil
	}

	nBackAmbient := evalAt(s.BackAmbient, wvls)
	backLayers := make([]abeles.Layer, len(s.Back))
	for i, l := range s.Back {
		backLayers[i] = abeles.Layer{N: s.resolveLayer(l), D: l.D}
	}
	backRes, err := abeles.Compute(wvls, nSub, nBackAmbient, s.Theta0, backLayers)
	if err != nil {
		return nil, err
	}
	frontRev, err := abeles.Compute(wvls, nSub, n0, s.Theta0, reverseLayers(frontLayers))
	if err != nil {
		return nil, err
	}

	sin2Theta0 := abeles.Sin2Theta0(n0, s.Theta0)
	for i := 0; i < w; i++ {
		nSubZ := cmplx.Sqrt(nSub[i]*nSub[i] - sin2Theta0[i])
		if real(nSubZ) == 0 && imag(nSubZ) < 0 {
			nSubZ = -nSubZ
		}
		sub := backside.Substrate{D: s.SubstrateThickness, Nz: nSubZ}
		tau2 := sub.Tau2(wvls[i])

		rS, trS := backside.Combine(backside.Faces{
			Rf: abs2(front.Rs[i]), Tf: real(nSub[i]/n0[i]) * abs2(front.Ts[i]),
			RfRev: abs2(frontRev.Rs[i]), TfRev: real(n0[i]/nSub[i]) * abs2(frontRev.Ts[i]),
			Rb: abs2(backRes.Rs[i]), Tb: real(nBackAmbient[i]/nSub[i]) * abs2(backRes.Ts[i]),
		}, tau2)
		rP, trP := backside.Combine(backside.Faces{
			Rf: abs2(front.Rp[i]), Tf: real(nSub[i]/n0[i]) * abs2(front.Tp[i]),
			RfRev: abs2(frontRev.Rp[i]), TfRev: real(n0[i]/nSub[i]) * abs2(frontRev.Tp[i]),
			Rb: abs2(backRes.Rp[i]), Tb: real(nBackAmbient[i]/nSub[i]) * abs2(backRes.Tp[i]),
		}, tau2)

		obs.R[i] = (rS + rP) / 2
		obs.T[i] = (trS + trP) / 2
		obs.A[i] = 1 - obs.R[i] - obs.T[i]

		riP, riS, bi2 := backside.RiSums(
			real(nSub[i]/n0[i])*abs2(front.Tp[i]), real(nSub[i]/n0[i])*abs2(front.Ts[i]),
			abs2(frontRev.Rp[i]), abs2(frontRev.Rs[i]),
			abs2(backRes.Rp[i]), abs2(backRes.Rs[i]),
			tau2, complex(abs2(frontRev.Rp[i]), 0), complex(abs2(backRes.Rp[i]), 0))
		pd := backside.Incoherent(front.Rp[i], front.Rs[i], riP, riS, bi2)
		obs.Psi[i] = pd.Psi
		obs.Delta[i] = pd.Delta
	}
	return obs, nil
}

func evalAt(idx dispersion.Index, wvls []float64) []complex128 {
	out := make([]complex128, len(wvls))
	for i, w := range wvls {
		out[i] = idx.N(w)
	}
	return out
}

func reverseLayers(layers []abeles.Layer) []abeles.Layer {
	out := make([]abeles.Layer, len(layers))
	for i, l := range layers {
		out[len(layers)-1-i] = l
	}
	return out
}

func abs2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
