package dispersion

import (
	"fmt"

	"github.com/gyger/thinfilm/pchip"
)

// Table is a material defined by paired (λ, n, k) samples, evaluated by
// monotone PCHIP in n and in k over λ, with extrapolation allowed at the
// endpoints per spec §3.
type Table struct {
	wvls, n, k []float64
	nPCHIP     *pchip.PCHIP
	kPCHIP     *pchip.PCHIP
}

// NewTable builds a Table dispersion from parallel λ (nm), n and k
// arrays. wvls must be strictly increasing.
func NewTable(wvls, n, k []float64) (*Table, error) {
	if len(wvls) != len(n) || len(wvls) != len(k) {
		return nil, fmt.Errorf("dispersion: table wvls/n/k must have equal length, got %d/%d/%d", len(wvls), len(n), len(k))
	}
	for i := 1; i < len(wvls); i++ {
		if wvls[i] <= wvls[i-1] {
			return nil, fmt.Errorf("dispersion: table wavelengths must be strictly increasing at index %d", i)
		}
	}
	nPCHIP, err := pchip.New(wvls, n, true, true)
	if err != nil {
		return nil, err
	}
	kPCHIP, err := pchip.New(wvls, k, true, true)
	if err != nil {
		return nil, err
	}
	return &Table{wvls: wvls, n: n, k: k, nPCHIP: nPCHIP, kPCHIP: kPCHIP}, nil
}

func (t *Table) N(wvl float64) complex128 {
	n, _ := t.nPCHIP.Evaluate(wvl, -1)
	k, _ := t.kPCHIP.Evaluate(wvl, -1)
	if k > 0.0 {
		k = 0.0
	}
	return complex(n, k)
}

func (t *Table) DN(wvl float64) complex128 {
	dn, _ := t.nPCHIP.EvaluateDerivative(wvl, -1)
	dk, _ := t.kPCHIP.EvaluateDerivative(wvl, -1)
	return complex(dn, dk)
}

func (t *Table) Range(wvlC float64) (float64, float64) {
	n, _ := t.nPCHIP.Evaluate(wvlC, -1)
	return n, n
}

func (t *Table) DepositionSteps(wvlC float64) []float64 {
	n, _ := t.nPCHIP.Evaluate(wvlC, -1)
	return []float64{n}
}

func (t *Table) IsMixture() bool { return false }
