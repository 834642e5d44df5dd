package color

import "math"

// WhitePoint is the reference XYZ white point used by the L*a*b*/L*u*v*
// conversions (spec §4.6 conversions are always relative to a white
// point; callers typically pass the XYZ of their illuminant under the
// same observer).
type WhitePoint = XYZ

// XyY converts XYZ to chromaticity coordinates plus luminance.
type XyY struct {
	X, Y, YY float64
}

func (c XYZ) XyY() XyY {
	sum := c.X + c.Y + c.Z
	if sum == 0 {
		return XyY{}
	}
	return XyY{X: c.X / sum, Y: c.Y / sum, YY: c.Y}
}

// Lab is CIE L*a*b*.
type Lab struct{ L, A, B float64 }

const labDelta = 6.0 / 29.0

func labF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3 * labDelta * labDelta * (t - 4.0/29.0)
}

// ToLab converts XYZ to L*a*b* relative to white point wp.
func (c XYZ) ToLab(wp WhitePoint) Lab {
	fx := labF(c.X / wp.X)
	fy := labF(c.Y / wp.Y)
	fz := labF(c.Z / wp.Z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// FromLab recovers XYZ from L*a*b* relative to white point wp.
func (l Lab) FromLab(wp WhitePoint) XYZ {
	fy := (l.L + 16) / 116
	fx := fy + l.A/500
	fz := fy - l.B/200
	return XYZ{X: wp.X * labFInv(fx), Y: wp.Y * labFInv(fy), Z: wp.Z * labFInv(fz)}
}

// Luv is CIE L*u*v*.
type Luv struct{ L, U, V float64 }

func uvPrime(c XYZ) (u, v float64) {
	denom := c.X + 15*c.Y + 3*c.Z
	if denom == 0 {
		return 0, 0
	}
	return 4 * c.X / denom, 9 * c.Y / denom
}

// ToLuv converts XYZ to L*u*v* relative to white point wp.
func (c XYZ) ToLuv(wp WhitePoint) Luv {
	yr := c.Y / wp.Y
	var l float64
	if yr > labDelta*labDelta*labDelta {
		l = 116*math.Cbrt(yr) - 16
	} else {
		l = (29.0 / 3) * (29.0 / 3) * (29.0 / 3) * yr
	}
	u, v := uvPrime(c)
	un, vn := uvPrime(wp)
	return Luv{L: l, U: 13 * l * (u - un), V: 13 * l * (v - vn)}
}

// LCh is a polar (lightness, chroma, hue-in-degrees) representation of
// either L*a*b* or L*u*v*.
type LCh struct{ L, C, H float64 }

// ToLCh converts L*a*b* to L*C*h(ab).
func (l Lab) ToLCh() LCh {
	c := math.Hypot(l.A, l.B)
	h := math.Atan2(l.B, l.A) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return LCh{L: l.L, C: c, H: h}
}

// ToLCh converts L*u*v* to L*C*h(uv).
func (l Luv) ToLCh() LCh {
	c := math.Hypot(l.U, l.V)
	h := math.Atan2(l.V, l.U) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return LCh{L: l.L, C: c, H: h}
}
