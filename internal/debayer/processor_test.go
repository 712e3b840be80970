package debayer

import (
	"testing"

	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/rawimage"
)

type collector struct {
	batch []rawimage.Raw
}

func (c *collector) Consume(batch []rawimage.Raw) {
	c.batch = batch
}

func TestProcessor_DefaultsOutputLayoutToBGRA(t *testing.T) {
	p := New(Config{})
	raw := makeBayer(4, 4, func(x, y int) uint16 { return 1000 })

	var c collector
	p.Consume([]rawimage.Raw{raw}, &c)

	if len(c.batch) != 1 {
		t.Fatalf("expected 1 result, got %d", len(c.batch))
	}
	if c.batch[0].Layout() != rawimage.BGRA {
		t.Errorf("layout: got %v, want BGRA", c.batch[0].Layout())
	}
}

// S6 — non-Bayer pass-through.
func TestProcessor_NonBayerPassThrough(t *testing.T) {
	p := New(Config{})
	raw := rawimage.NewRaw(4, 4, 8, rawimage.RGBA)
	for i := range raw.Bytes() {
		raw.Bytes()[i] = byte(i)
	}

	var c collector
	p.Consume([]rawimage.Raw{raw}, &c)

	if len(c.batch) != 1 {
		t.Fatalf("expected 1 result, got %d", len(c.batch))
	}
	if string(c.batch[0].Bytes()) != string(raw.Bytes()) {
		t.Error("non-Bayer input should pass through byte-for-byte unchanged")
	}
}

func TestProcessor_MixedBatch(t *testing.T) {
	p := New(Config{OutputLayout: rawimage.RGBA})
	bayer := makeBayer(4, 4, func(x, y int) uint16 { return 2000 })
	passthrough := rawimage.NewRaw(4, 4, 8, rawimage.RGB)

	var c collector
	p.Consume([]rawimage.Raw{bayer, passthrough}, &c)

	if len(c.batch) != 2 {
		t.Fatalf("expected 2 results, got %d", len(c.batch))
	}
	if c.batch[0].Layout() != rawimage.RGBA {
		t.Errorf("bayer result layout: got %v, want RGBA", c.batch[0].Layout())
	}
	if c.batch[1].Layout() != rawimage.RGB {
		t.Errorf("pass-through result layout: got %v, want RGB", c.batch[1].Layout())
	}
}

func TestProcessor_CustomDemosaicer(t *testing.T) {
	p := New(Config{Demosaicer: Bilinear{}, OutputLayout: rawimage.RGBA, Workers: 2})
	raw := makeBayer(4, 4, func(x, y int) uint16 { return 5000 })

	var c collector
	p.Consume([]rawimage.Raw{raw}, &c)

	if len(c.batch) != 1 || c.batch[0].Empty() {
		t.Fatal("expected one non-empty result")
	}
}
