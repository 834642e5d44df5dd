package abeles

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

func TestBareSubstrateMatchesFresnel(t *testing.T) {
	wvls := []float64{500}
	n0 := []complex128{1}
	nSub := []complex128{1.5}

	res, err := Compute(wvls, n0, nSub, 0, nil)
	require.NoError(t, err)

	want := complex((1.0-1.5)/(1.0+1.5), 0)
	require.InDelta(t, real(want), real(res.Rs[0]), 1e-12)
	require.InDelta(t, real(want), real(res.Rp[0]), 1e-12)
}

func TestZeroThicknessSublayerIsTransparent(t *testing.T) {
	wvls := []float64{500, 600, 700}
	n0 := make([]complex128, 3)
	nSub := make([]complex128, 3)
	nLayer := make([]complex128, 3)
	for i := range wvls {
		n0[i] = 1
		nSub[i] = 1.5
		nLayer[i] = 2.0
	}

	withZero, err := Compute(wvls, n0, nSub, 0, []Layer{{N: nLayer, D: 0}})
	require.NoError(t, err)
	bare, err := Compute(wvls, n0, nSub, 0, nil)
	require.NoError(t, err)

	for i := range wvls {
		require.InDelta(t, real(bare.Rs[i]), real(withZero.Rs[i]), 1e-12)
		require.InDelta(t, imag(bare.Rs[i]), imag(withZero.Rs[i]), 1e-12)
	}
}

func TestNormalIncidenceEnergyConservationLossless(t *testing.T) {
	wvls := []float64{400, 500, 600, 700, 800}
	n0 := make([]complex128, len(wvls))
	nSub := make([]complex128, len(wvls))
	nLayer := make([]complex128, len(wvls))
	for i := range wvls {
		n0[i] = 1
		nSub[i] = 1.52
		nLayer[i] = 2.1
	}
	layers := []Layer{{N: nLayer, D: 550.0 / 4 / 2.1}}

	res, err := Compute(wvls, n0, nSub, 0, layers)
	require.NoError(t, err)

	for i := range wvls {
		r := cabsSq(res.Rs[i])
		tFactor := real(nSub[i]) / real(n0[i])
		tr := tFactor * cabsSq(res.Ts[i])
		require.InDelta(t, 1.0, r+tr, 1e-9)
	}
}

func TestNormalIncidenceSAndPAgree(t *testing.T) {
	wvls := []float64{500, 600}
	n0 := []complex128{1, 1}
	nSub := []complex128{1.5, 1.5}
	layers := []Layer{{N: []complex128{2.3, 2.3}, D: 80}}

	res, err := Compute(wvls, n0, nSub, 0, layers)
	require.NoError(t, err)
	for i := range wvls {
		require.InDelta(t, real(res.Rs[i]), real(res.Rp[i]), 1e-12)
		require.InDelta(t, imag(res.Rs[i]), imag(res.Rp[i]), 1e-12)
	}
}

func TestDerivativeMatchesFiniteDifference(t *testing.T) {
	theta0 := 0.3
	n0base, dn0 := 1.0, 0.0
	nSubBase, dnSub := 1.52, -1e-5
	nLayerBase, dnLayer := 2.1, -2e-5
	d := 120.0

	layer := func(wvl float64) complex128 { return complex(nLayerBase+dnLayer*(wvl-550), 0) }
	h := 1e-3

	mk := func(wvl float64) ([]float64, []complex128, []complex128, []Layer) {
		return []float64{wvl},
			[]complex128{complex(n0base, 0)},
			[]complex128{complex(nSubBase+dnSub*(wvl-550), 0)},
			[]Layer{{N: []complex128{layer(wvl)}, D: d}}
	}

	wvlc, n0c, nSubc, layersC := mk(550)
	dLayers := []DLayer{{Layer: layersC[0], DN: []complex128{complex(dnLayer, 0)}}}
	_, der, err := ComputeWithDerivative(wvlc, n0c, nSubc,
		[]complex128{complex(dn0, 0)}, []complex128{complex(dnSub, 0)}, theta0, dLayers)
	require.NoError(t, err)

	rsAt := func(part func(complex128) float64) func(float64) float64 {
		return func(wvl float64) float64 {
			w, n0w, nSubw, layersw := mk(wvl)
			res, err := Compute(w, n0w, nSubw, theta0, layersw)
			require.NoError(t, err)
			return part(res.Rs[0])
		}
	}
	settings := &fd.Settings{Formula: fd.Central, Step: h}
	fdDRsReal := fd.Derivative(rsAt(func(z complex128) float64 { return real(z) }), 550, settings)
	fdDRsImag := fd.Derivative(rsAt(func(z complex128) float64 { return imag(z) }), 550, settings)
	require.InDelta(t, fdDRsReal, real(der.DRs[0]), 1e-4)
	require.InDelta(t, fdDRsImag, imag(der.DRs[0]), 1e-4)
}

func cabsSq(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

func TestBranchSqrtSelectsPhysicalRoot(t *testing.T) {
	z := branchSqrt(complex(-1, 0))
	require.GreaterOrEqual(t, real(z), 0.0)
	require.InDelta(t, 1.0, imag(z), 1e-12)
	require.False(t, math.IsNaN(real(z)))
}
