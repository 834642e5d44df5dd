package dispersion

// Constant is a dispersionless material: the same complex index at
// every wavelength.
type Constant struct {
	n complex128
}

// NewConstant builds a Constant dispersion from n (real part) and k
// (extinction coefficient, stored internally as -k per the Im(N) <= 0
// convention).
func NewConstant(n, k float64) *Constant {
	return &Constant{n: complex(n, -k)}
}

func (c *Constant) N(float64) complex128  { return c.n }
func (c *Constant) DN(float64) complex128 { return 0 }

func (c *Constant) Range(float64) (float64, float64) {
	r := real(c.n)
	return r, r
}

func (c *Constant) DepositionSteps(float64) []float64 {
	return []float64{real(c.n)}
}

func (c *Constant) IsMixture() bool { return false }
