package rawimage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRawSize(t *testing.T) {
	r := NewRaw(4, 4, 16, Bayer)
	if r.Empty() {
		t.Fatal("expected non-empty raw")
	}
	if got, want := len(r.Bytes()), 4*4*2; got != want {
		t.Errorf("size: got %d, want %d", got, want)
	}
	if r.Stride() != 4*2 {
		t.Errorf("stride: got %d, want %d", r.Stride(), 4*2)
	}
}

func TestNewRawInvalidDimensions(t *testing.T) {
	for _, r := range []Raw{
		NewRaw(0, 4, 16, Bayer),
		NewRaw(4, 0, 16, Bayer),
		NewRaw(-1, 4, 16, Bayer),
	} {
		if !r.Empty() {
			t.Error("expected empty raw for invalid dimensions")
		}
	}
}

func TestNewRawFromBytesShortData(t *testing.T) {
	r := NewRawFromBytes([]byte{1, 2, 3}, 4, 4, 16, Bayer)
	if !r.Empty() {
		t.Error("expected empty raw when data shorter than required size")
	}
}

func TestClonePreservesRangeUpscale(t *testing.T) {
	src := NewRaw(2, 2, 8, Bayer)
	copy(src.Bytes(), []byte{0x10, 0x20, 0x30, 0x40})

	dst := src.Clone(16)
	if dst.Depth() != 16 {
		t.Fatalf("depth: got %d, want 16", dst.Depth())
	}
	got := dst.At(0, 0).Get(ChannelGreen)
	if want := uint32(0x10) << 8; got != want {
		t.Errorf("upscaled sample: got %#x, want %#x", got, want)
	}
}

func TestCloneDownscale(t *testing.T) {
	src := NewRaw(1, 1, 16, Bayer)
	src.At(0, 0).Set(ChannelGreen, 0xFF00)

	dst := src.Clone(8)
	if got, want := dst.At(0, 0).Get(ChannelGreen), uint32(0xFF); got != want {
		t.Errorf("downscaled sample: got %#x, want %#x", got, want)
	}
}

func TestLoadRawRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.raw")

	width, height, bpp := 2, 2, 2
	header := []byte{
		byte(width), 0, 0, 0,
		byte(height), 0, 0, 0,
		byte(bpp), 0, 0, 0,
	}
	body := make([]byte, width*height*bpp)
	for i := range body {
		body[i] = byte(i + 1)
	}
	if err := os.WriteFile(path, append(header, body...), 0o644); err != nil {
		t.Fatal(err)
	}

	r := LoadRaw(path)
	if r.Empty() {
		t.Fatal("expected non-empty raw")
	}
	if r.Layout() != Bayer {
		t.Errorf("layout: got %v, want Bayer", r.Layout())
	}
	if r.Width() != width || r.Height() != height {
		t.Errorf("dims: got %dx%d, want %dx%d", r.Width(), r.Height(), width, height)
	}
}

func TestLoadRawMissingFile(t *testing.T) {
	r := LoadRaw(filepath.Join(t.TempDir(), "does-not-exist.raw"))
	if !r.Empty() {
		t.Error("expected empty raw for missing file")
	}
}
