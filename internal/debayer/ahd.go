// Package debayer implements the Adaptive Homogeneity-Directed (AHD)
// demosaicer, its bilinear reference path, and the orchestrator that
// dispatches a batch of images through either.
package debayer

import (
	"math"

	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/rawimage"
)

// Sample is the pixel element type the AHD kernel is specialized for.
type Sample interface {
	~uint8 | ~uint16
}

// bayerSite classifies a Bayer-pattern position.
type bayerSite int

const (
	siteClearRed bayerSite = iota
	siteRed
	siteBlue
	siteClearBlue
)

// position returns the Bayer site for (x, y) under a fixed tiling:
// position(x,y) = (x mod 2) + 2*(y mod 2). Bayer phase is assumed
// fixed; this kernel does not auto-detect it.
func position(x, y int) bayerSite {
	return bayerSite((x & 1) + 2*(y&1))
}

// AHD is the Adaptive Homogeneity-Directed demosaicer: two directional
// candidates (horizontal, vertical) are interpolated, scored by their
// L*a*b* neighborhood homogeneity, and the higher-scoring candidate is
// emitted per pixel (or their average on a tie).
type AHD struct{}

// Debayer runs the AHD algorithm over raw, which must be a Bayer-layout
// buffer at 8 or 16 bits per sample. outputLayout must be a 4-channel
// layout (RGBA or BGRA). Any contract violation yields an empty Raw;
// AHD never returns an error value.
func (AHD) Debayer(raw rawimage.Raw, outputLayout rawimage.Layout) rawimage.Raw {
	if raw.Empty() || raw.Layout() != rawimage.Bayer {
		return rawimage.Raw{}
	}
	if !outputLayout.Is4Channel() {
		return rawimage.Raw{}
	}
	switch raw.Depth() {
	case 8:
		return ahdRun[uint8](raw, outputLayout)
	case 16:
		return ahdRun[uint16](raw, outputLayout)
	default:
		return rawimage.Raw{}
	}
}

// maxValue returns the maximum representable value for T.
func maxValue[T Sample]() uint32 {
	var v T = ^T(0)
	return uint32(v)
}

// ahdRun is the generic entry point. T only determines the output
// element type's max value, used for alpha saturation — all byte
// traffic goes through rawimage.Raw/Cursor, which already derives its
// own bytes-per-channel from raw.Depth(), so the four passes below are
// untyped and shared between both element sizes. This replaces the
// source's template specialization over u8/u16 with a single generic
// entry point plus concrete helpers underneath, per the algorithm being
// identical modulo element size.
func ahdRun[T Sample](raw rawimage.Raw, outputLayout rawimage.Layout) rawimage.Raw {
	w, h := raw.Width(), raw.Height()
	depth := raw.Depth()
	alphaMax := maxValue[T]()

	H := rawimage.NewRaw(w, h, depth, outputLayout)
	V := rawimage.NewRaw(w, h, depth, outputLayout)
	if H.Empty() || V.Empty() {
		return rawimage.Raw{}
	}

	passGreen(&raw, &H, &V, alphaMax)
	passRedBlue(&raw, &H, &V)

	hlab := make([]rawimage.LAB, w*h)
	vlab := make([]rawimage.LAB, w*h)
	passLAB(&H, &V, hlab, vlab)

	out := rawimage.NewRaw(w, h, depth, outputLayout)
	if out.Empty() {
		return rawimage.Raw{}
	}
	passVote(&H, &V, hlab, vlab, &out)
	return out
}

// rawSample reads the single Bayer sample at (x, y), or 0 if (x, y)
// falls outside the frame. This centralizes the zero-fill edge policy
// the AHD kernel relies on throughout, in place of scattered ternaries.
func rawSample(raw *rawimage.Raw, x, y int) int64 {
	if x < 0 || x >= raw.Width() || y < 0 || y >= raw.Height() {
		return 0
	}
	return int64(raw.At(x, y).Get(rawimage.ChannelGreen))
}

// greenOf reads candidate's green channel at (x, y), or 0 if (x, y) is
// outside the frame — the same zero-fill edge policy as rawSample.
func greenOf(candidate *rawimage.Raw, x, y int) int64 {
	if x < 0 || x >= candidate.Width() || y < 0 || y >= candidate.Height() {
		return 0
	}
	return int64(candidate.At(x, y).Get(rawimage.ChannelGreen))
}

// clampRange clamps v to [min(a,b), max(a,b)].
func clampRange(v, a, b int64) int64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// clampFull pins v to [0, 65535] regardless of the output element
// type's own range. The source hard-codes this literal bound even in
// its uint8 specialization; this is a preserved quirk, not a
// depth-aware clamp — see the open-question note in SPEC_FULL.md.
func clampFull(v int64) int64 {
	switch {
	case v < 0:
		return 0
	case v > 65535:
		return 65535
	default:
		return v
	}
}

// --- Pass 1: green plane ---------------------------------------------

func passGreen(raw, H, V *rawimage.Raw, alphaMax uint32) {
	w, h := raw.Width(), raw.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hc := H.At(x, y)
			vc := V.At(x, y)
			hc.Set(rawimage.ChannelAlpha, alphaMax)
			vc.Set(rawimage.ChannelAlpha, alphaMax)

			switch position(x, y) {
			case siteRed, siteBlue:
				hc.Set(rawimage.ChannelGreen, uint32(greenHorizontal(raw, x, y)))
				vc.Set(rawimage.ChannelGreen, uint32(greenVertical(raw, x, y)))
			default:
				g := uint32(rawSample(raw, x, y))
				hc.Set(rawimage.ChannelGreen, g)
				vc.Set(rawimage.ChannelGreen, g)
			}
		}
	}
}

func greenHorizontal(raw *rawimage.Raw, x, y int) int64 {
	m1 := rawSample(raw, x-1, y)
	c := rawSample(raw, x, y)
	p1 := rawSample(raw, x+1, y)
	m2 := rawSample(raw, x-2, y)
	p2 := rawSample(raw, x+2, y)
	g := ((m1+c+p1)*2 - m2 - p2) >> 2
	return clampRange(g, m1, p1)
}

func greenVertical(raw *rawimage.Raw, x, y int) int64 {
	m1 := rawSample(raw, x, y-1)
	c := rawSample(raw, x, y)
	p1 := rawSample(raw, x, y+1)
	m2 := rawSample(raw, x, y-2)
	p2 := rawSample(raw, x, y+2)
	g := ((m1+c+p1)*2 - m2 - p2) >> 2
	return clampRange(g, m1, p1)
}

// --- Pass 2: red/blue planes ------------------------------------------

func passRedBlue(raw, H, V *rawimage.Raw) {
	w, h := raw.Width(), raw.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			redBlueAt(raw, H, x, y)
			redBlueAt(raw, V, x, y)
		}
	}
}

func redBlueAt(raw, candidate *rawimage.Raw, x, y int) {
	cur := candidate.At(x, y)
	green := greenOf(candidate, x, y)

	switch position(x, y) {
	case siteRed:
		cur.Set(rawimage.ChannelRed, uint32(rawSample(raw, x, y)))
		cur.Set(rawimage.ChannelBlue, uint32(diagonalEstimate(raw, candidate, x, y, green)))
	case siteBlue:
		cur.Set(rawimage.ChannelBlue, uint32(rawSample(raw, x, y)))
		cur.Set(rawimage.ChannelRed, uint32(diagonalEstimate(raw, candidate, x, y, green)))
	default: // ClearRed or ClearBlue: a green site
		redLike := clampFull(green + ((rawSample(raw, x-1, y) - greenOf(candidate, x-1, y) +
			rawSample(raw, x+1, y) - greenOf(candidate, x+1, y)) >> 1))
		blueLike := clampFull(green + ((rawSample(raw, x, y-1) - greenOf(candidate, x, y-1) +
			rawSample(raw, x, y+1) - greenOf(candidate, x, y+1)) >> 1))
		if position(x, y) == siteClearRed {
			cur.Set(rawimage.ChannelRed, uint32(redLike))
			cur.Set(rawimage.ChannelBlue, uint32(blueLike))
		} else {
			cur.Set(rawimage.ChannelBlue, uint32(redLike))
			cur.Set(rawimage.ChannelRed, uint32(blueLike))
		}
	}
}

func diagonalEstimate(raw, candidate *rawimage.Raw, x, y int, green int64) int64 {
	delta := (rawSample(raw, x-1, y-1) - greenOf(candidate, x-1, y-1)) +
		(rawSample(raw, x-1, y+1) - greenOf(candidate, x-1, y+1)) +
		(rawSample(raw, x+1, y-1) - greenOf(candidate, x+1, y-1)) +
		(rawSample(raw, x+1, y+1) - greenOf(candidate, x+1, y+1))
	delta >>= 2
	return clampFull(green + delta)
}

// --- Pass 3: LAB conversion ---------------------------------------------

func passLAB(H, V *rawimage.Raw, hlab, vlab []rawimage.LAB) {
	w, h := H.Width(), H.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x + y*w
			hc := H.At(x, y)
			vc := V.At(x, y)
			hlab[i] = rawimage.FromRGB(
				float64(hc.Get(rawimage.ChannelRed)),
				float64(hc.Get(rawimage.ChannelGreen)),
				float64(hc.Get(rawimage.ChannelBlue)),
			)
			vlab[i] = rawimage.FromRGB(
				float64(vc.Get(rawimage.ChannelRed)),
				float64(vc.Get(rawimage.ChannelGreen)),
				float64(vc.Get(rawimage.ChannelBlue)),
			)
		}
	}
}

// --- Pass 4: homogeneity voting -----------------------------------------

func passVote(H, V *rawimage.Raw, hlab, vlab []rawimage.LAB, out *rawimage.Raw) {
	w, h := H.Width(), H.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x + y*w

			var lh, lv [2]float64
			var ch, cv [2]float64

			if x > 0 {
				lh[0] = localAbs(hlab[i].L, hlab[i-1].L)
				ch[0] = chromaDist(hlab[i], hlab[i-1])
			}
			if x < w-1 {
				lh[1] = localAbs(hlab[i].L, hlab[i+1].L)
				ch[1] = chromaDist(hlab[i], hlab[i+1])
			}
			if y > 0 {
				lv[0] = localAbs(vlab[i].L, vlab[i-w].L)
				cv[0] = chromaDist(vlab[i], vlab[i-w])
			}
			if y < h-1 {
				lv[1] = localAbs(vlab[i].L, vlab[i+w].L)
				cv[1] = chromaDist(vlab[i], vlab[i+w])
			}

			epsL := math.Min(math.Max(lh[0], lh[1]), math.Max(lv[0], lv[1]))
			epsC := math.Min(math.Max(ch[0], ch[1]), math.Max(cv[0], cv[1]))

			hh := 0
			if lh[0] <= epsL && ch[0] <= epsC {
				hh++
			}
			if lh[1] <= epsL && ch[1] <= epsC {
				hh++
			}
			hv := 0
			if lv[0] <= epsL && cv[0] <= epsC {
				hv++
			}
			if lv[1] <= epsL && cv[1] <= epsC {
				hv++
			}

			hc := H.At(x, y)
			vc := V.At(x, y)
			oc := out.At(x, y)

			switch {
			case hh > hv:
				copyPixel(hc, oc)
			case hv > hh:
				copyPixel(vc, oc)
			default:
				averagePixel(hc, vc, oc)
			}
		}
	}
}

// localAbs returns |a-b|, except it returns 0 if either operand falls
// outside [0, 65535] — a guard preserved from the source's local_abs
// helper that suppresses contributions from 0-filled edge taps.
func localAbs(a, b float64) float64 {
	if a < 0 || a > 65535 || b < 0 || b > 65535 {
		return 0
	}
	return math.Abs(a - b)
}

func chromaDist(a, b rawimage.LAB) float64 {
	da := a.A - b.A
	db := a.B - b.B
	return da*da + db*db
}

func copyPixel(src, dst rawimage.Cursor) {
	dst.Set(rawimage.ChannelRed, src.Get(rawimage.ChannelRed))
	dst.Set(rawimage.ChannelGreen, src.Get(rawimage.ChannelGreen))
	dst.Set(rawimage.ChannelBlue, src.Get(rawimage.ChannelBlue))
	dst.Set(rawimage.ChannelAlpha, src.Get(rawimage.ChannelAlpha))
}

func averagePixel(h, v, dst rawimage.Cursor) {
	dst.Set(rawimage.ChannelRed, (h.Get(rawimage.ChannelRed)+v.Get(rawimage.ChannelRed))/2)
	dst.Set(rawimage.ChannelGreen, (h.Get(rawimage.ChannelGreen)+v.Get(rawimage.ChannelGreen))/2)
	dst.Set(rawimage.ChannelBlue, (h.Get(rawimage.ChannelBlue)+v.Get(rawimage.ChannelBlue))/2)
	ha, va := h.Get(rawimage.ChannelAlpha), v.Get(rawimage.ChannelAlpha)
	if ha > va {
		dst.Set(rawimage.ChannelAlpha, ha)
	} else {
		dst.Set(rawimage.ChannelAlpha, va)
	}
}
