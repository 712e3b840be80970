package rawimage

import (
	"math"
	"testing"
)

func TestFromRGBBlackIsZero(t *testing.T) {
	got := FromRGB(0, 0, 0)
	if got.L != 0 || got.A != 0 || got.B != 0 {
		t.Errorf("black should convert to L=a=b=0, got %+v", got)
	}
}

func TestFromRGBGrayHasZeroChroma(t *testing.T) {
	// The matrix rows sum to Xn, 1 and Zn, so X = Y = Z for gray and
	// a, b are zero up to floating-point rounding.
	got := FromRGB(10000, 10000, 10000)
	if math.Abs(got.A) > 1e-9 {
		t.Errorf("gray should have a=0, got %v", got.A)
	}
	if math.Abs(got.B) > 1e-9 {
		t.Errorf("gray should have b=0, got %v", got.B)
	}
	if got.L <= 0 {
		t.Errorf("gray should have positive L, got %v", got.L)
	}
}

func TestFromRGBDeterministic(t *testing.T) {
	a := FromRGB(1234, 5678, 910)
	b := FromRGB(1234, 5678, 910)
	if a != b {
		t.Errorf("FromRGB is not deterministic: %+v != %+v", a, b)
	}
}
