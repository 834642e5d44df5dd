package color

import "math"

// sRGB is the fixed CIE XYZ (D65, Y=100 scale) to linear sRGB matrix
// (IEC 61966-2-1), scaled for XYZ values normalized to Y=100.
var srgbMatrix = [3][3]float64{
	{3.2406, -1.5372, -0.4986},
	{-0.9689, 1.8758, 0.0415},
	{0.0557, -0.2040, 1.0570},
}

// RGB is an sRGB color; OutOfGamut is set when any of R,G,B fell
// outside [0,1] before clamping, per spec §4.6.
type RGB struct {
	R, G, B    float64
	OutOfGamut bool
}

// ToSRGB converts XYZ (Y=100 scale) to gamma-encoded sRGB, clamping to
// [0,1] and reporting whether clamping was needed.
func (c XYZ) ToSRGB() RGB {
	x, y, z := c.X/100, c.Y/100, c.Z/100
	r := srgbMatrix[0][0]*x + srgbMatrix[0][1]*y + srgbMatrix[0][2]*z
	g := srgbMatrix[1][0]*x + srgbMatrix[1][1]*y + srgbMatrix[1][2]*z
	b := srgbMatrix[2][0]*x + srgbMatrix[2][1]*y + srgbMatrix[2][2]*z

	out := RGB{}
	out.OutOfGamut = r < 0 || r > 1 || g < 0 || g > 1 || b < 0 || b > 1
	out.R = gammaEncode(clamp01(r))
	out.G = gammaEncode(clamp01(g))
	out.B = gammaEncode(clamp01(b))
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func gammaEncode(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}
