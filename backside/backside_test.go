package backside

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoherentDegenerateCase(t *testing.T) {
	pd := Coherent(0, 0)
	require.Equal(t, 45.0, pd.Psi)
	require.Equal(t, 180.0, pd.Delta)
}

func TestCoherentBareInterfaceAirToGlass(t *testing.T) {
	rs := complex((1.0-1.5)/(1.0+1.5), 0)
	// r_p in the admittance-formula sign Coherent takes: equal to r_s at
	// normal incidence.
	rp := complex((1.0-1.5)/(1.0+1.5), 0)
	pd := Coherent(rp, rs)
	require.InDelta(t, 45.0, pd.Psi, 1e-9)
	require.InDelta(t, 180.0, pd.Delta, 1e-9)
}

func TestTau2IsOneForLosslessSubstrate(t *testing.T) {
	s := Substrate{D: 1_000_000, Nz: complex(1.5, 0)}
	require.InDelta(t, 1.0, s.Tau2(550), 1e-12)
}

func TestTau2DecaysForAbsorbingSubstrate(t *testing.T) {
	s := Substrate{D: 1000, Nz: complex(1.5, -0.01)}
	tau2 := s.Tau2(550)
	require.Less(t, tau2, 1.0)
	require.Greater(t, tau2, 0.0)
}

func TestCombineReducesToFrontOnlyWhenBackIsOpaque(t *testing.T) {
	f := Faces{Rf: 0.04, Tf: 0.96, RfRev: 0.04, TfRev: 0.96, Rb: 0, Tb: 0}
	r, tr := Combine(f, 1.0)
	require.InDelta(t, 0.04, r, 1e-12)
	require.InDelta(t, 0.0, tr, 1e-12)
}
