//go:build ignore

// gen_fixtures creates small synthetic Bayer .raw frames for E2E smoke
// testing the debayer/bilinear CLI. Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	writeRaw(filepath.Join(dir, "gray-8bit.raw"), 64, 48, 8, flat(120, 120, 120))
	writeRaw(filepath.Join(dir, "gradient-8bit.raw"), 64, 48, 8, gradient)
	writeRaw(filepath.Join(dir, "gradient-16bit.raw"), 96, 64, 16, gradient)
	writeRaw(filepath.Join(dir, "red-swatch-8bit.raw"), 32, 32, 8, flat(200, 20, 20))
	writeRaw(filepath.Join(dir, "checker-8bit.raw"), 48, 48, 8, checker)

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 5 Bayer frames in %s\n", dir)
}

// scene returns the (r, g, b) value, on an 8-bit scale, a fully
// resolved sensor would see at (x, y) in an image of the given
// width/height.
type scene func(x, y, w, h int) (r, g, b uint32)

func flat(r, g, b uint32) scene {
	return func(x, y, w, h int) (uint32, uint32, uint32) { return r, g, b }
}

func gradient(x, y, w, h int) (r, g, b uint32) {
	return uint32(x * 255 / w), uint32(y * 255 / h), 128
}

func checker(x, y, w, h int) (r, g, b uint32) {
	if ((x/8)+(y/8))%2 == 0 {
		return 30, 30, 30
	}
	return 220, 220, 220
}

// mosaic renders sc through a GRBG Bayer color filter array at the
// given bit depth: even rows sample green/red alternately, odd rows
// sample blue/green alternately, matching the demosaicer's position()
// site classification.
func mosaic(w, h, depth int, sc scene) []byte {
	bpc := (depth + 7) / 8
	maxVal := uint32(1)<<uint(depth) - 1
	buf := make([]byte, w*h*bpc)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := sc(x, y, w, h)
			var v uint32
			switch (x & 1) + 2*(y&1) {
			case 0, 3: // green sites (clear-red row / clear-blue row)
				v = scaleTo(g, maxVal)
			case 1: // red site
				v = scaleTo(r, maxVal)
			case 2: // blue site
				v = scaleTo(b, maxVal)
			}
			off := (y*w + x) * bpc
			writeSample(buf[off:off+bpc], v)
		}
	}
	return buf
}

func scaleTo(v8, maxVal uint32) uint32 {
	if maxVal == 255 {
		return v8
	}
	return v8 * maxVal / 255
}

func writeSample(b []byte, v uint32) {
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	}
}

// writeRaw renders sc at the given shape and writes it with the
// {width, height, bytes_per_pixel} little-endian u32 header the CLI's
// loader expects.
func writeRaw(path string, w, h, depth int, sc scene) {
	bpc := (depth + 7) / 8
	body := mosaic(w, h, depth, sc)

	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:4], uint32(w))
	binary.LittleEndian.PutUint32(header[4:8], uint32(h))
	binary.LittleEndian.PutUint32(header[8:12], uint32(bpc))
	if _, err := f.Write(header); err != nil {
		panic(err)
	}
	if _, err := f.Write(body); err != nil {
		panic(err)
	}
}
