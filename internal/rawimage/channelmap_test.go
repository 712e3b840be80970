package rawimage

import "testing"

func TestChannelMapLayoutSwap(t *testing.T) {
	rgba := NewRaw(1, 1, 16, RGBA)
	bgra := NewRaw(1, 1, 16, BGRA)

	rgba.At(0, 0).Set(ChannelRed, 111)
	rgba.At(0, 0).Set(ChannelGreen, 222)
	rgba.At(0, 0).Set(ChannelBlue, 333)
	rgba.At(0, 0).Set(ChannelAlpha, 444)

	bgra.At(0, 0).Set(ChannelRed, 111)
	bgra.At(0, 0).Set(ChannelGreen, 222)
	bgra.At(0, 0).Set(ChannelBlue, 333)
	bgra.At(0, 0).Set(ChannelAlpha, 444)

	// Logical reads must agree regardless of byte ordering.
	if rgba.At(0, 0).Get(ChannelRed) != bgra.At(0, 0).Get(ChannelRed) {
		t.Error("red channel mismatch across layouts")
	}
	if rgba.At(0, 0).Get(ChannelGreen) != bgra.At(0, 0).Get(ChannelGreen) {
		t.Error("green channel mismatch across layouts")
	}
	if rgba.At(0, 0).Get(ChannelBlue) != bgra.At(0, 0).Get(ChannelBlue) {
		t.Error("blue channel mismatch across layouts")
	}

	// The underlying bytes must actually be swapped, not identical.
	rb := rgba.Bytes()
	bb := bgra.Bytes()
	if rb[0] == bb[0] && rb[4] == bb[4] {
		t.Error("expected R/B byte positions to differ between RGBA and BGRA")
	}
}

func TestChannelMapRGBHasNoAlpha(t *testing.T) {
	rgb := NewRaw(1, 1, 8, RGB)
	rgb.At(0, 0).Set(ChannelAlpha, 0xFF)
	if got := rgb.At(0, 0).Get(ChannelAlpha); got != 0 {
		t.Errorf("RGB alpha set should be a no-op, got %d", got)
	}
}

func TestCursorOutOfBoundsIsNoop(t *testing.T) {
	r := NewRaw(2, 2, 16, RGBA)
	c := r.At(1, 1).Plus(Point{X: 5, Y: 5})
	if got := c.Get(ChannelRed); got != 0 {
		t.Errorf("out-of-range get: got %d, want 0", got)
	}
	c.Set(ChannelRed, 999) // must not panic or corrupt the buffer
	for _, b := range r.Bytes() {
		if b != 0 {
			t.Fatal("out-of-range set corrupted the buffer")
		}
	}
}
