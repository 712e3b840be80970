package cmd

import (
	"fmt"
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/rawimage"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	inspectThumb   string
	inspectCompare string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <raw_file>",
	Short: "Decode a debayered .raw frame and write a PNG thumbnail",
	Long: `Loads a four-channel .raw file produced by "debayer" or
"bilinear", converts it to a standard image.Image, and writes a
resized PNG thumbnail for quick visual inspection.

With --compare, a reference image (PNG/JPEG/BMP/TIFF/WebP) is decoded
and placed side by side with the debayered frame in the thumbnail.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectThumb, "thumb", "t", "", "thumbnail output path (default: <raw_file>.png)")
	inspectCmd.Flags().StringVarP(&inspectCompare, "compare", "c", "", "reference image to place alongside the frame")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	rawPath := args[0]
	raw := rawimage.LoadRaw(rawPath)
	if raw.Empty() {
		return fmt.Errorf("%s: could not be read as a .raw frame", rawPath)
	}
	if !raw.Layout().Is4Channel() {
		return fmt.Errorf("%s: layout %s is not a 4-channel debayered output", rawPath, raw.Layout())
	}

	logVerbose("loaded %dx%d %s frame, depth %d", raw.Width(), raw.Height(), raw.Layout(), raw.Depth())

	img := rawToNRGBA(raw)
	thumb := imaging.Resize(img, 512, 0, imaging.Lanczos)

	if inspectCompare != "" {
		ref, err := loadReference(inspectCompare)
		if err != nil {
			return fmt.Errorf("load reference: %w", err)
		}
		refThumb := imaging.Resize(ref, 512, 0, imaging.Lanczos)
		leftW := thumb.Bounds().Dx()
		canvas := imaging.New(leftW+refThumb.Bounds().Dx(), max(thumb.Bounds().Dy(), refThumb.Bounds().Dy()), color.Black)
		canvas = imaging.Paste(canvas, thumb, goimage.Pt(0, 0))
		canvas = imaging.Paste(canvas, refThumb, goimage.Pt(leftW, 0))
		thumb = canvas
	}

	outPath := inspectThumb
	if outPath == "" {
		outPath = rawPath + ".png"
	}
	if err := writePNG(thumb, outPath); err != nil {
		return fmt.Errorf("write thumbnail: %w", err)
	}

	fmt.Printf("wrote %s (%dx%d)\n", outPath, thumb.Bounds().Dx(), thumb.Bounds().Dy())
	return nil
}

// rawToNRGBA reinterprets a 4-channel debayered Raw as a standard
// library image.Image, applying the layout's channel map so the
// result is always true RGBA regardless of source byte order.
func rawToNRGBA(raw rawimage.Raw) *goimage.NRGBA {
	out := goimage.NewNRGBA(goimage.Rect(0, 0, raw.Width(), raw.Height()))
	bpc := raw.BytesPerChannel()
	shift := raw.Depth() - 8
	if shift < 0 {
		shift = 0
	}

	for y := 0; y < raw.Height(); y++ {
		for x := 0; x < raw.Width(); x++ {
			c := raw.At(x, y)
			r := sampleToByte(c.Get(rawimage.ChannelRed), bpc, shift)
			g := sampleToByte(c.Get(rawimage.ChannelGreen), bpc, shift)
			b := sampleToByte(c.Get(rawimage.ChannelBlue), bpc, shift)
			a := sampleToByte(c.Get(rawimage.ChannelAlpha), bpc, shift)
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return out
}

func sampleToByte(v uint32, bpc, shift int) uint8 {
	if bpc <= 1 {
		return uint8(v)
	}
	return uint8(v >> uint(shift))
}

func loadReference(path string) (goimage.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := goimage.Decode(f)
	return img, err
}

func writePNG(img goimage.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && filepath.Dir(path) != "." {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
