package rawimage

// Point is an integer (x, y) delta or coordinate, used for cursor
// arithmetic.
type Point struct {
	X, Y int
}

// Cursor is a logical (image, byte-offset) pair used to address a
// pixel. Get/Set route through ChannelMap; any channel offset that
// would fall outside the buffer, or that the layout does not carry at
// all, is a no-op — Get returns 0, Set is dropped.
//
// The cursor never bounds-checks (x, y) against width/height directly,
// only the resulting byte offset against the buffer length. Kernels
// that need the "neighbor outside the frame contributes 0" edge policy
// check (x, y) against width/height themselves rather than relying on
// the cursor for it.
type Cursor struct {
	raw    *Raw
	offset int
}

// At returns a cursor addressing pixel (x, y) of raw.
func (r *Raw) At(x, y int) Cursor {
	cpp := r.ChannelsPerPixel()
	bpc := r.BytesPerChannel()
	return Cursor{raw: r, offset: (x + r.width*y) * cpp * bpc}
}

func (c Cursor) channelOffset(ch Channel) (int, bool) {
	idx := channelMap[c.raw.layout][ch]
	if idx < 0 {
		return 0, false
	}
	bpc := c.raw.BytesPerChannel()
	off := c.offset + idx*bpc
	if off < 0 || off+bpc > len(c.raw.buf) {
		return 0, false
	}
	return off, true
}

// Get reads ch's value, or 0 if it is out of range or the cursor's
// layout does not carry that channel.
func (c Cursor) Get(ch Channel) uint32 {
	off, ok := c.channelOffset(ch)
	if !ok {
		return 0
	}
	bpc := c.raw.BytesPerChannel()
	return readLE(c.raw.buf[off : off+bpc])
}

// Set writes value to ch, little-endian, or does nothing if the
// channel is out of range or absent from this cursor's layout.
func (c Cursor) Set(ch Channel, value uint32) {
	off, ok := c.channelOffset(ch)
	if !ok {
		return
	}
	bpc := c.raw.BytesPerChannel()
	writeLE(c.raw.buf[off:off+bpc], value)
}

// Plus returns a cursor shifted by a coordinate delta.
func (c Cursor) Plus(p Point) Cursor {
	cpp := c.raw.ChannelsPerPixel()
	bpc := c.raw.BytesPerChannel()
	return Cursor{raw: c.raw, offset: c.offset + (p.X+c.raw.width*p.Y)*cpp*bpc}
}

// Minus returns a cursor shifted by the negation of a coordinate delta.
func (c Cursor) Minus(p Point) Cursor {
	return c.Plus(Point{X: -p.X, Y: -p.Y})
}
