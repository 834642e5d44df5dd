package graded

// repair enforces d_i >= dMin on every step while preserving the
// physical and optical thickness totals (the optical total only within
// the limit noted on repairInterior), per spec §4.4 step 7. It loops
// until no step is under-thickness or no repair made progress, in which
// case it fails with ErrUnrealizable.
func repair(steps []Step, dMin float64) ([]Step, error) {
	if dMin <= 0 {
		return steps, nil
	}
	for {
		i := firstUnderThickness(steps, dMin)
		if i < 0 {
			return steps, nil
		}
		next, ok := repairOne(steps, i, dMin)
		if !ok {
			return nil, ErrUnrealizable
		}
		steps = next
	}
}

func firstUnderThickness(steps []Step, dMin float64) int {
	for i, s := range steps {
		if s.D < dMin {
			return i
		}
	}
	return -1
}

func repairOne(steps []Step, i int, dMin float64) ([]Step, bool) {
	switch {
	case i == 0:
		return repairEdge(steps, 0, 1, dMin)
	case i == len(steps)-1:
		return repairEdge(steps, i, i-1, dMin)
	case isInteriorExtremum(steps, i):
		return repairExtremum(steps, i, dMin)
	default:
		return repairInterior(steps, i, dMin)
	}
}

// repairEdge handles the first/last sublayer case: borrow `need`
// thickness from the adjacent sublayer (donor) to bring the offender up
// to dMin, then let the next one out (far) absorb whatever extra
// thickness is required to keep the three-step window's optical budget
// exact, since far's own ladder index differs from donor's in general.
func repairEdge(steps []Step, i, donor int, dMin float64) ([]Step, bool) {
	if donor < 0 || donor >= len(steps) || len(steps) < 3 {
		return nil, false
	}
	var far int
	if i == 0 {
		far = 2
	} else {
		far = len(steps) - 3
	}
	if far < 0 || far >= len(steps) || far == donor || isInteriorExtremum(steps, donor) {
		return nil, false
	}
	need := dMin - steps[i].D
	nFirst, nDonor, nFar := steps[i].N, steps[donor].N, steps[far].N
	if nFar == nDonor {
		return nil, false
	}
	deltaFar := -need * (nFirst - nDonor) / (nFar - nDonor)
	deltaDonor := need + deltaFar
	if steps[donor].D-deltaDonor < dMin || steps[far].D+deltaFar < dMin {
		return nil, false
	}
	out := append([]Step(nil), steps...)
	out[i].D = dMin
	out[donor].D -= deltaDonor
	out[far].D += deltaFar
	return out, true
}

// isInteriorExtremum reports whether step i is a local extremum of the
// ladder index relative to both neighbors (a turning point sublayer).
func isInteriorExtremum(steps []Step, i int) bool {
	if i <= 0 || i >= len(steps)-1 {
		return false
	}
	left, mid, right := steps[i-1].N, steps[i].N, steps[i+1].N
	return (mid > left && mid > right) || (mid < left && mid < right)
}

// repairExtremum rebalances the neighbors of an under-thickness interior
// extremum, solving the same 2x2 budget system as splitBudget (in
// reverse). Because the extremum's index lies outside its neighbors'
// range, one neighbor gives up thickness and the other receives some;
// together the changes exactly offset, in both thickness and optical
// thickness, the amount added to the extremum.
func repairExtremum(steps []Step, i int, dMin float64) ([]Step, bool) {
	if i-1 < 0 || i+1 >= len(steps) {
		return nil, false
	}
	need := dMin - steps[i].D
	left, right := i-1, i+1
	nLeft, nMid, nRight := steps[left].N, steps[i].N, steps[right].N
	if nLeft == nRight {
		return repairInterior(steps, i, dMin)
	}
	taken := splitBudget(-need, -need*nMid, nLeft, nRight)
	if steps[left].D+taken.lower < dMin || steps[right].D+taken.upper < dMin {
		return repairInterior(steps, i, dMin)
	}
	out := append([]Step(nil), steps...)
	out[left].D += taken.lower
	out[right].D += taken.upper
	out[i].D = dMin
	return out, true
}

// repairInterior first tries to steal thickness symmetrically from both
// neighbors while keeping them >= dMin; this keeps Σd exact, and keeps
// Σ(d·n) exact only when the offender's index is the mean of its
// neighbors' (as on a uniformly spaced ladder). If that is infeasible it
// dissolves the offending step, redistributing its (d, n·d) budget
// across its two neighbors, which preserves both totals exactly.
func repairInterior(steps []Step, i int, dMin float64) ([]Step, bool) {
	if i-1 < 0 || i+1 >= len(steps) {
		return dissolve(steps, i)
	}
	need := dMin - steps[i].D
	half := need / 2
	if steps[i-1].D-half >= dMin && steps[i+1].D-half >= dMin {
		out := append([]Step(nil), steps...)
		out[i-1].D -= half
		out[i+1].D -= half
		out[i].D = dMin
		return out, true
	}
	return dissolve(steps, i)
}

// dissolve removes step i, splitting its (d, optical) budget across its
// two neighbors using their own ladder indices as the basis, preserving
// Σd and Σ(d·n) exactly (spec §4.4 step 7, "any other interior sublayer
// too thin").
func dissolve(steps []Step, i int) ([]Step, bool) {
	if i-1 < 0 || i+1 >= len(steps) || len(steps) < 3 {
		return nil, false
	}
	left, right := steps[i-1], steps[i+1]
	dOffender := steps[i].D
	xOffender := steps[i].D * steps[i].N

	// Split the offender's own budget across the two neighbors using
	// their own ladder indices, so each neighbor keeps its original N
	// (every n_out stays an element of the ladder) while both Σd and
	// Σ(d·n) are preserved exactly.
	split := splitBudget(dOffender, xOffender, left.N, right.N)

	out := make([]Step, 0, len(steps)-1)
	out = append(out, steps[:i-1]...)
	out = append(out, Step{N: left.N, D: left.D + split.lower}, Step{N: right.N, D: right.D + split.upper})
	out = append(out, steps[i+2:]...)
	return out, true
}
