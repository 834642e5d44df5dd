package color

import "gonum.org/v1/gonum/interp"

// resampleNaturalCubic resamples (x, y) onto the target grid using a
// natural cubic spline, per spec §4.6 ("Resample spectrum and
// illuminant to the observer grid by natural cubic spline"); this is a
// distinct interpolant from the PCHIP used by the dispersion/discretizer
// packages, since color resampling has no monotonicity requirement.
func resampleNaturalCubic(x, y, target []float64) ([]float64, error) {
	var sp interp.NaturalCubic
	if err := sp.Fit(x, y); err != nil {
		return nil, err
	}
	out := make([]float64, len(target))
	lo, hi := x[0], x[len(x)-1]
	for i, t := range target {
		v := t
		if v < lo {
			v = lo
		} else if v > hi {
			v = hi
		}
		out[i] = sp.Predict(v)
	}
	return out, nil
}
