// Package pchip implements piecewise cubic Hermite interpolation with
// optional monotonicity preservation, following James M. Hyman,
// "Accurate Monotonicity Preserving Cubic Interpolation", SIAM J. Sci.
// and Stat. Comput., vol. 4, 1983, pp. 645-654.
//
// It is used both across the mixing coordinate of material mixtures and
// across wavelength for table dispersions.
package pchip

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// epsilon is the machine epsilon used to terminate the Newton/bisection
// loop in EvaluateInverse, deriving the tolerance from floating-point
// epsilon rather than a fixed constant.
const epsilon = 2.220446049250313e-16

// ErrTooFewPoints is returned when fewer than two knots are supplied.
var ErrTooFewPoints = errors.New("pchip: need at least two knots")

// ErrExtrapolation is returned by Evaluate/EvaluateDerivative/
// EvaluateInverse when x (or y) falls outside the knot range and
// extrapolation was not requested.
var ErrExtrapolation = errors.New("pchip: extrapolation not allowed")

// PCHIP is a prepared piecewise cubic Hermite interpolant over strictly
// increasing knots xa with values ya.
type PCHIP struct {
	xa, ya               []float64
	preserveMonotonicity bool
	allowExtrapolation   bool
	a0, a1, a2, a3       []float64
	prepared             bool
}

// New creates a PCHIP over the given knots. xa must be strictly
// increasing and at least two points long; the two slices are not
// copied, so the caller must not mutate them without calling Reset.
func New(xa, ya []float64, preserveMonotonicity, allowExtrapolation bool) (*PCHIP, error) {
	if len(xa) != len(ya) {
		return nil, fmt.Errorf("pchip: xa and ya must have the same length, got %d and %d", len(xa), len(ya))
	}
	if len(xa) < 2 {
		return nil, ErrTooFewPoints
	}
	return &PCHIP{
		xa:                   xa,
		ya:                   ya,
		preserveMonotonicity: preserveMonotonicity,
		allowExtrapolation:   allowExtrapolation,
	}, nil
}

// Reset invalidates the prepared coefficients, e.g. after xa/ya have been
// mutated in place by the caller.
func (p *PCHIP) Reset() { p.prepared = false }

// prepare computes the per-interval cubic coefficients. Two-knot input
// degenerates to linear interpolation.
func (p *PCHIP) prepare() {
	n := len(p.xa)

	if n == 2 {
		slope := (p.ya[1] - p.ya[0]) / (p.xa[1] - p.xa[0])
		p.a0 = []float64{p.ya[0], p.ya[0]}
		p.a1 = []float64{slope, slope}
		p.a2 = []float64{0.0}
		p.a3 = []float64{0.0}
		p.prepared = true
		return
	}

	dx := make([]float64, n-1)
	dy := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		dx[i] = p.xa[i+1] - p.xa[i]
		dy[i] = p.ya[i+1] - p.ya[i]
	}
	s := make([]float64, n-1)
	floats.DivTo(s, dy, dx)

	df := make([]float64, n)
	df[0] = ((2.0*dx[0]+dx[1])*s[0] - dx[0]*s[1]) / (dx[0] + dx[1])
	for i := 1; i < n-1; i++ {
		df[i] = (dx[i-1]*s[i] + dx[i]*s[i-1]) / (dx[i-1] + dx[i])
	}
	df[n-1] = ((2.0*dx[n-2]+dx[n-3])*s[n-2] - dx[n-2]*s[n-3]) / (dx[n-2] + dx[n-3])

	if p.preserveMonotonicity {
		switch {
		case s[0] > 0.0:
			df[0] = math.Min(math.Max(0.0, df[0]), 3.0*s[0])
		case s[0] < 0.0:
			df[0] = math.Max(math.Min(0.0, df[0]), 3.0*s[0])
		default:
			df[0] = 0.0
		}

		for i := 1; i < n-1; i++ {
			sMin := math.Min(s[i-1], s[i])
			sMax := math.Max(s[i-1], s[i])
			switch {
			case sMin > 0.0:
				df[i] = math.Min(math.Max(0.0, df[i]), 3.0*sMin)
			case sMax < 0.0:
				df[i] = math.Max(math.Min(0.0, df[i]), 3.0*sMax)
			case df[i] >= 0.0:
				df[i] = math.Min(math.Max(0.0, df[i]), 3.0*math.Min(math.Abs(s[i-1]), math.Abs(s[i])))
			default:
				df[i] = math.Max(math.Min(0.0, df[i]), -3.0*math.Min(math.Abs(s[i-1]), math.Abs(s[i])))
			}
		}

		switch {
		case s[n-2] > 0.0:
			df[n-1] = math.Min(math.Max(0.0, df[n-1]), 3.0*s[n-2])
		case s[n-2] < 0.0:
			df[n-1] = math.Max(math.Min(0.0, df[n-1]), 3.0*s[n-2])
		default:
			df[n-1] = 0.0
		}
	}

	p.a0 = p.ya
	p.a1 = df
	p.a2 = make([]float64, n-1)
	p.a3 = make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		p.a2[i] = (3.0*s[i] - df[i+1] - 2.0*df[i]) / dx[i]
		p.a3[i] = -(2.0*s[i] - df[i+1] - df[i]) / (dx[i] * dx[i])
	}
	p.prepared = true
}

// Locate returns the index i such that xa[i] <= x <= xa[i+1] (the lower
// knot bounding the interval containing x), using bisection. If x falls
// outside [xa[0], xa[len-1]], it returns 0 or len(xa)-2 when
// allowExtrapolation is true, or an error otherwise.
func Locate(xa []float64, x float64, allowExtrapolation bool) (int, error) {
	n := len(xa)
	if x < xa[0] {
		if allowExtrapolation {
			return 0, nil
		}
		return 0, ErrExtrapolation
	}
	if x > xa[n-1] {
		if allowExtrapolation {
			return n - 2, nil
		}
		return 0, ErrExtrapolation
	}

	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (hi + lo) / 2
		if x <= xa[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, nil
}

// indexFor resolves the bracketing interval for x, honoring an optional
// precomputed index (pass -1 to force a fresh Locate call).
func (p *PCHIP) indexFor(x float64, index int) (int, error) {
	if index >= 0 {
		return index, nil
	}
	return Locate(p.xa, x, p.allowExtrapolation)
}

// Evaluate computes the interpolant at x. index, if >= 0, skips the
// bisection search (the caller already knows the bracketing interval).
func (p *PCHIP) Evaluate(x float64, index int) (float64, error) {
	if !p.prepared {
		p.prepare()
	}
	i, err := p.indexFor(x, index)
	if err != nil {
		return 0, err
	}
	dx := x - p.xa[i]
	return p.a0[i] + dx*(p.a1[i]+dx*(p.a2[i]+dx*p.a3[i])), nil
}

// EvaluateDerivative computes the first derivative of the interpolant at x.
func (p *PCHIP) EvaluateDerivative(x float64, index int) (float64, error) {
	if !p.prepared {
		p.prepare()
	}
	i, err := p.indexFor(x, index)
	if err != nil {
		return 0, err
	}
	dx := x - p.xa[i]
	return p.a1[i] + dx*(2.0*p.a2[i]+dx*3.0*p.a3[i]), nil
}

// EvaluateInverse finds x such that Evaluate(x) == y, using Newton's
// method secured by bisection (Press et al., Numerical Recipes in C,
// 2nd ed., pp. 362-368). The analytical cubic-root approach is avoided
// because it is unstable when the cubic coefficient nears zero, which
// happens regularly for near-linear segments.
//
// ya must be monotonically increasing over the bracketing interval for
// this to be well defined; PCHIP does not verify that itself.
func (p *PCHIP) EvaluateInverse(y float64, index int) (float64, error) {
	if !p.prepared {
		p.prepare()
	}

	var i int
	var err error
	if index >= 0 {
		i = index
	} else {
		i, err = Locate(p.ya, y, p.allowExtrapolation)
		if err != nil {
			return 0, err
		}
	}

	xLo, yLo := 0.0, p.ya[i]-y
	xHi, yHi := p.xa[i+1]-p.xa[i], p.ya[i+1]-y

	a0 := yLo
	a1, a2, a3 := p.a1[i], p.a2[i], p.a3[i]

	var x, yv float64
	if -yLo < yHi {
		x, yv = xLo, yLo
	} else {
		x, yv = xHi, yHi
	}

	for yv != 0.0 {
		dy := a1 + x*(2.0*a2+x*3.0*a3)
		if dy != 0.0 {
			x -= yv / dy
		}
		if dy == 0.0 || x <= xLo || x >= xHi {
			x = 0.5 * (xLo + xHi)
		}

		yv = a0 + x*(a1+x*(a2+x*a3))
		if yv < 0.0 {
			xLo, yLo = x, yv
		} else {
			xHi, yHi = x, yv
		}

		if xHi-xLo <= (xLo+xHi)*epsilon {
			break
		}
	}

	return p.xa[i] + x, nil
}
