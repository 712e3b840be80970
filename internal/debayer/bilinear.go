package debayer

import "github.com/DanielMovsesyanBRT/cuda-image-view/internal/rawimage"

// Bilinear is a simpler reference demosaicer: each missing color is the
// average of its in-range same-color neighbors — diagonal for the
// diagonal color at a Red/Blue site, cross for the green channel at a
// Red/Blue site, cross for both missing colors at a green site — with
// no perceptual scoring. The denominator is the count of in-range taps,
// so edges average over fewer neighbors rather than treating
// out-of-range ones as zero.
type Bilinear struct{}

// Debayer implements the same contract as AHD.Debayer.
func (Bilinear) Debayer(raw rawimage.Raw, outputLayout rawimage.Layout) rawimage.Raw {
	if raw.Empty() || raw.Layout() != rawimage.Bayer {
		return rawimage.Raw{}
	}
	if !outputLayout.Is4Channel() {
		return rawimage.Raw{}
	}
	if raw.Depth() != 8 && raw.Depth() != 16 {
		return rawimage.Raw{}
	}

	w, h := raw.Width(), raw.Height()
	alphaMax := uint32(1)<<uint(raw.Depth()) - 1

	out := rawimage.NewRaw(w, h, raw.Depth(), outputLayout)
	if out.Empty() {
		return rawimage.Raw{}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cur := out.At(x, y)
			cur.Set(rawimage.ChannelAlpha, alphaMax)

			switch position(x, y) {
			case siteRed:
				cur.Set(rawimage.ChannelRed, uint32(rawSample(&raw, x, y)))
				cur.Set(rawimage.ChannelGreen, uint32(crossAverage(&raw, x, y)))
				cur.Set(rawimage.ChannelBlue, uint32(diagonalAverage(&raw, x, y)))
			case siteBlue:
				cur.Set(rawimage.ChannelBlue, uint32(rawSample(&raw, x, y)))
				cur.Set(rawimage.ChannelGreen, uint32(crossAverage(&raw, x, y)))
				cur.Set(rawimage.ChannelRed, uint32(diagonalAverage(&raw, x, y)))
			case siteClearRed:
				cur.Set(rawimage.ChannelGreen, uint32(rawSample(&raw, x, y)))
				cur.Set(rawimage.ChannelRed, uint32(horizontalAverage(&raw, x, y)))
				cur.Set(rawimage.ChannelBlue, uint32(verticalAverage(&raw, x, y)))
			case siteClearBlue:
				cur.Set(rawimage.ChannelGreen, uint32(rawSample(&raw, x, y)))
				cur.Set(rawimage.ChannelBlue, uint32(horizontalAverage(&raw, x, y)))
				cur.Set(rawimage.ChannelRed, uint32(verticalAverage(&raw, x, y)))
			}
		}
	}
	return out
}

var (
	crossTaps      = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalTaps   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	horizontalTaps = [][2]int{{-1, 0}, {1, 0}}
	verticalTaps   = [][2]int{{0, -1}, {0, 1}}
)

func crossAverage(raw *rawimage.Raw, x, y int) int64      { return averageInRange(raw, x, y, crossTaps) }
func diagonalAverage(raw *rawimage.Raw, x, y int) int64    { return averageInRange(raw, x, y, diagonalTaps) }
func horizontalAverage(raw *rawimage.Raw, x, y int) int64  { return averageInRange(raw, x, y, horizontalTaps) }
func verticalAverage(raw *rawimage.Raw, x, y int) int64    { return averageInRange(raw, x, y, verticalTaps) }

func averageInRange(raw *rawimage.Raw, x, y int, taps [][2]int) int64 {
	var sum, count int64
	for _, t := range taps {
		nx, ny := x+t[0], y+t[1]
		if nx < 0 || nx >= raw.Width() || ny < 0 || ny >= raw.Height() {
			continue
		}
		sum += rawSample(raw, nx, ny)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / count
}
