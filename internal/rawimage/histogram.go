package rawimage

// Histogram is an optional attachment to a Raw. It is populated only by
// the GPU variant of this pipeline; the CPU core never builds one, and
// callers must tolerate its absence.
type Histogram struct {
	Full   []uint32 // one bucket per representable intensity
	Coarse [9]uint32
	Max    uint32
}
