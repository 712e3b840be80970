package rawimage

// Channel identifies a logical pixel channel, independent of layout.
type Channel int

const (
	ChannelBlue Channel = iota
	ChannelGreen
	ChannelRed
	ChannelAlpha
)

// channelMap is the single source of truth mapping (layout, channel) to
// a channel's index within a pixel. An index of -1 means the layout
// does not carry that channel at all (RGB/BGR have no alpha). Bayer
// carries exactly one sample per pixel, so every logical channel reads
// the same index — there is nothing to disambiguate until a color
// plane has actually been reconstructed.
//
// RGBA: Blue=0, Green=1, Red=2, Alpha=3.
// BGRA: Red=0, Green=1, Blue=2, Alpha=3 — equivalently Blue=2, Green=1,
// Red=0, Alpha=3, which matches the source's color_map table exactly.
var channelMap = map[Layout][4]int{
	Bayer: {0, 0, 0, 0},
	RGB:   {2, 1, 0, -1},
	BGR:   {0, 1, 2, -1},
	RGBA:  {0, 1, 2, 3},
	BGRA:  {2, 1, 0, 3},
}
