package rawimage

import "math"

const (
	xn           = 0.950456
	zn           = 1.088754
	labThreshold = 0.00856
)

// LAB is a CIE L*a*b* triple computed from raw, unscaled RGB
// magnitudes. The source does not pre-scale R, G, B by the channel
// maximum before converting — L*a*b* is computed directly on the raw
// sensor integers. Re-implementations must preserve this or ties in
// the homogeneity vote will not reproduce.
type LAB struct {
	L, A, B float64
}

// FromRGB converts an RGB triple (raw integer magnitudes cast to
// float64, not normalized) to CIE L*a*b* under the D65 illuminant.
func FromRGB(r, g, b float64) LAB {
	x := (0.412453*r + 0.357580*g + 0.180423*b) / xn
	y := 0.212671*r + 0.715160*g + 0.072169*b
	z := (0.019334*r + 0.119193*g + 0.950227*b) / zn

	var l float64
	if y > labThreshold {
		l = 116*math.Cbrt(y) - 16
	} else {
		l = 903.3 * y
	}

	return LAB{
		L: l,
		A: 500 * (labF(x) - labF(y)),
		B: 200 * (labF(y) - labF(z)),
	}
}

func labF(t float64) float64 {
	if t > labThreshold {
		return math.Cbrt(t)
	}
	return 7.787*t + 0.1379310
}
