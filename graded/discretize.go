// Package graded implements the graded-index discretization algorithm of
// spec §4.4: converting a continuous index profile into a sequence of
// homogeneous sublayers drawn from a fixed step ladder, while preserving
// both the total physical thickness and the total optical thickness and
// enforcing a minimum sublayer thickness.
package graded

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ErrOutOfRange is returned when the profile strays outside the ladder
// by more than the clamp tolerance.
var ErrOutOfRange = errors.New("graded: index out of ladder range")

// ErrUnrealizable is returned when the minimum-thickness repair loop of
// step 7 cannot make progress.
var ErrUnrealizable = errors.New("graded: cannot discretize to minimum thickness")

// clampTolerance bounds how far outside [ladder[0], ladder[-1]] a sample
// may fall and still be silently clamped rather than rejected.
const clampTolerance = 1e-6

// Step is one homogeneous sublayer of the discretized output: an index
// drawn from the ladder and a physical thickness in nm.
type Step struct {
	N float64
	D float64
}

// Profile is a sampled continuous index profile, given as parallel
// arrays of the independent coordinate (Depth, strictly increasing) and
// index (N). InOT selects whether Depth carries physical thickness (nm)
// or optical thickness (x = ∫n dz, nm).
type Profile struct {
	Depth []float64
	N     []float64
	InOT  bool
}

// physical returns the profile's depth and index arrays expressed in
// physical-thickness coordinates, converting from optical thickness via
// local trapezoidal averaging when InOT is set.
func (p Profile) physical() ([]float64, []float64, error) {
	if len(p.Depth) != len(p.N) {
		return nil, nil, fmt.Errorf("graded: profile depth/n length mismatch %d/%d", len(p.Depth), len(p.N))
	}
	if len(p.Depth) < 2 {
		return nil, nil, errors.New("graded: profile needs at least two points")
	}
	for i := 1; i < len(p.Depth); i++ {
		if p.Depth[i] <= p.Depth[i-1] {
			return nil, nil, errors.New("graded: profile coordinate must be strictly increasing")
		}
	}
	if !p.InOT {
		d := append([]float64(nil), p.Depth...)
		n := append([]float64(nil), p.N...)
		return d, n, nil
	}
	n := append([]float64(nil), p.N...)
	incr := make([]float64, len(p.Depth))
	for i := 1; i < len(p.Depth); i++ {
		dx := p.Depth[i] - p.Depth[i-1]
		navg := (n[i] + n[i-1]) / 2
		incr[i] = dx / navg
	}
	d := make([]float64, len(p.Depth))
	floats.CumSum(d, incr)
	return d, n, nil
}

// Ladder is a strictly increasing list of index values the deposition
// process can realize.
type Ladder []float64

func (l Ladder) clamp(n float64) (float64, error) {
	lo, hi := l[0], l[len(l)-1]
	switch {
	case n < lo:
		if lo-n > clampTolerance {
			return 0, fmt.Errorf("%w: %g below ladder minimum %g", ErrOutOfRange, n, lo)
		}
		return lo, nil
	case n > hi:
		if n-hi > clampTolerance {
			return 0, fmt.Errorf("%w: %g above ladder maximum %g", ErrOutOfRange, n, hi)
		}
		return hi, nil
	default:
		return n, nil
	}
}

// indexOf returns the ladder interval [i, i+1] containing n, clamping
// n first.
func (l Ladder) indexOf(n float64) (int, error) {
	n, err := l.clamp(n)
	if err != nil {
		return 0, err
	}
	i := sort.SearchFloat64s(l, n)
	if i >= len(l) {
		i = len(l) - 1
	}
	if i > 0 && l[i] > n {
		i--
	}
	if i == len(l)-1 && i > 0 {
		i--
	}
	return i, nil
}

// Discretize converts a continuous profile into a sequence of Steps on
// ladder, preserving Σd and Σ(d·n) and enforcing dMin, per spec §4.4.
func Discretize(profile Profile, ladder Ladder, dMin float64) ([]Step, error) {
	if len(ladder) < 2 {
		return nil, errors.New("graded: ladder needs at least two levels")
	}
	d, n, err := profile.physical()
	if err != nil {
		return nil, err
	}
	for i := range n {
		if n[i], err = ladder.clamp(n[i]); err != nil {
			return nil, err
		}
	}

	steps, err := walk(d, n, ladder)
	if err != nil {
		return nil, err
	}
	steps = cleanup(steps)
	steps, err = repair(steps, dMin)
	if err != nil {
		return nil, err
	}
	return steps, nil
}

// walk implements steps 2-5: it advances along the sampled profile,
// splitting at ladder crossings and turning points, each split solving
// the 2x2 physical/optical budget system of spec §4.4 step 3.
func walk(d, n []float64, ladder Ladder) ([]Step, error) {
	var steps []Step

	idx, err := ladder.indexOf(n[0])
	if err != nil {
		return nil, err
	}
	dir := direction(n)

	segDepth := d[0]
	segN := n[0]

	appendSplit := func(dStart, dEnd, xBudget float64, nLower, nUpper int) {
		split := splitBudget(dEnd-dStart, xBudget, ladder[nLower], ladder[nUpper])
		if dir > 0 {
			steps = append(steps, Step{N: ladder[nLower], D: split.lower}, Step{N: ladder[nUpper], D: split.upper})
		} else {
			steps = append(steps, Step{N: ladder[nUpper], D: split.upper}, Step{N: ladder[nLower], D: split.lower})
		}
	}

	for i := 1; i < len(n); i++ {
		newDir := localDirection(n[i-1], n[i], dir)
		for {
			var target float64
			if dir > 0 {
				if idx+1 >= len(ladder) {
					break
				}
				target = ladder[idx+1]
			} else {
				if idx <= 0 {
					break
				}
				target = ladder[idx]
			}
			if !crosses(n[i-1], n[i], target, dir) {
				break
			}
			depthCross := interpolateDepth(d[i-1], n[i-1], d[i], n[i], target)
			xBudget := trapezoid(segDepth, segN, depthCross, target)
			lowerIdx, upperIdx := idx, idx
			if dir > 0 {
				upperIdx = idx + 1
			} else {
				lowerIdx = idx - 1
			}
			appendSplit(segDepth, depthCross, xBudget, lowerIdx, upperIdx)
			if dir > 0 {
				idx++
			} else {
				idx--
			}
			segDepth = depthCross
			segN = target
		}
		if newDir != dir && newDir != 0 {
			xBudget := trapezoid(segDepth, segN, d[i], n[i])
			lowerIdx, upperIdx := idx, idx
			if idx+1 < len(ladder) {
				upperIdx = idx + 1
			} else if idx > 0 {
				lowerIdx = idx - 1
			}
			appendSplit(segDepth, d[i], xBudget, lowerIdx, upperIdx)
			dir = newDir
			segDepth = d[i]
			segN = n[i]
		}
	}

	// Close (step 5): the final residual, from the last split point to the
	// end of the profile, gets the same two-level split.
	last := len(d) - 1
	lowerIdx, upperIdx := idx, idx
	if idx+1 < len(ladder) {
		upperIdx = idx + 1
	} else if idx > 0 {
		lowerIdx = idx - 1
	}
	appendSplit(segDepth, d[last], trapezoid(segDepth, segN, d[last], n[last]), lowerIdx, upperIdx)
	return steps, nil
}

func direction(n []float64) int {
	for i := 1; i < len(n); i++ {
		if n[i] > n[i-1] {
			return 1
		}
		if n[i] < n[i-1] {
			return -1
		}
	}
	return 1
}

func localDirection(n0, n1 float64, cur int) int {
	if n1 > n0 {
		return 1
	}
	if n1 < n0 {
		return -1
	}
	return cur
}

func crosses(n0, n1, target float64, dir int) bool {
	if dir > 0 {
		return n0 < target && n1 >= target
	}
	return n0 > target && n1 <= target
}

func interpolateDepth(d0, n0, d1, n1, target float64) float64 {
	if n1 == n0 {
		return d1
	}
	return d0 + (target-n0)/(n1-n0)*(d1-d0)
}

// trapezoid computes the optical-thickness budget ∫n dz between (d0,n0)
// and (d1,n1), treating the profile as affine over that span (the
// caller has already restricted it to a single monotone segment).
func trapezoid(d0, n0, d1, n1 float64) float64 {
	return (n0 + n1) / 2 * (d1 - d0)
}

type splitResult struct{ lower, upper float64 }

// splitBudget solves the 2x2 system of spec §4.4 step 3 for the two
// sublayer thicknesses bracketing a ladder crossing or turning point.
func splitBudget(dDelta, xDelta, nLower, nUpper float64) splitResult {
	if nUpper == nLower {
		return splitResult{lower: dDelta, upper: 0}
	}
	upper := (xDelta - dDelta*nLower) / (nUpper - nLower)
	lower := dDelta - upper
	return splitResult{lower: lower, upper: upper}
}

// cleanup implements step 6: merge adjacent sublayers sharing the same
// ladder index and drop non-positive-thickness artefacts.
func cleanup(steps []Step) []Step {
	var out []Step
	for _, s := range steps {
		if s.D <= 0 {
			continue
		}
		if len(out) > 0 && out[len(out)-1].N == s.N {
			out[len(out)-1].D += s.D
			continue
		}
		out = append(out, s)
	}
	return out
}
