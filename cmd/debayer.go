package cmd

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/debayer"
	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/hasher"
	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/manifest"
	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/rawimage"
	"github.com/spf13/cobra"
)

var (
	debayerOutDir  string
	debayerLayout  string
	debayerWorkers int
)

var debayerCmd = &cobra.Command{
	Use:   "debayer <input_dir>",
	Short: "Run the AHD demosaicer over a directory of .raw Bayer frames",
	Long: `Scans input directory for .raw Bayer frames, runs the
Adaptive Homogeneity-Directed demosaicer over them, and writes
content-addressed four-channel .raw outputs plus a manifest.

Output filenames are content-addressed: <key>.<layout>.<hash>.raw`,
	Args: cobra.ExactArgs(1),
	RunE: runDebayer,
}

func init() {
	debayerCmd.Flags().StringVarP(&debayerOutDir, "out", "o", "./debayer_out", "output directory")
	debayerCmd.Flags().StringVarP(&debayerLayout, "layout", "l", "bgra", "output layout: rgba or bgra")
	debayerCmd.Flags().IntVarP(&debayerWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	rootCmd.AddCommand(debayerCmd)
}

func runDebayer(cmd *cobra.Command, args []string) error {
	return runOrchestrator(args[0], debayer.AHD{}, "ahd")
}

// runOrchestrator is shared by the debayer and bilinear subcommands: it
// scans inputDir for .raw frames, runs them through the given
// demosaicer via debayer.Processor, writes content-addressed outputs,
// and emits a manifest.
func runOrchestrator(inputDir string, demosaicer debayer.Demosaicer, algorithm string) error {
	start := time.Now()

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(debayerOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	layout, err := parseLayout(debayerLayout)
	if err != nil {
		return err
	}

	logVerbose("input:  %s", absInput)
	logVerbose("output: %s", absOutput)
	logVerbose("layout: %s, algorithm: %s", layout, algorithm)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	sources, err := scanRawFrames(absInput)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no .raw frames found in %s", absInput)
	}
	logVerbose("found %d frames", len(sources))

	batch := make([]rawimage.Raw, len(sources))
	for i, src := range sources {
		batch[i] = rawimage.LoadRaw(src.absPath)
	}

	workers := debayerWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	proc := debayer.New(debayer.Config{
		Demosaicer:   demosaicer,
		OutputLayout: layout,
		Workers:      workers,
	})

	m := manifest.New(algorithm)
	coll := &manifestCollector{m: m, sources: sources, outDir: absOutput}
	proc.Consume(batch, coll)

	if err := coll.err; err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:      workers,
		Algorithm:    algorithm,
		OutputLayout: layout.String(),
	}

	manifestPath := filepath.Join(absOutput, "debayer.manifest.json")
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printDebayerReport(m, time.Since(start))
	return nil
}

type rawSource struct {
	absPath string
	key     string
	size    int64
}

// scanRawFrames walks inputDir and returns every .raw file found.
func scanRawFrames(inputDir string) ([]rawSource, error) {
	var sources []rawSource
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".raw" {
			return nil
		}
		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		key := strings.TrimSuffix(filepath.ToSlash(relPath), filepath.Ext(path))
		sources = append(sources, rawSource{absPath: path, key: key, size: info.Size()})
		return nil
	})
	return sources, err
}

func parseLayout(s string) (rawimage.Layout, error) {
	switch strings.ToLower(s) {
	case "rgba":
		return rawimage.RGBA, nil
	case "bgra":
		return rawimage.BGRA, nil
	default:
		return 0, fmt.Errorf("unsupported output layout %q (want rgba or bgra)", s)
	}
}

// manifestCollector implements debayer.Consumer: it writes each
// debayered frame to disk, content-addressed, and records the result
// in a manifest.Manifest.
type manifestCollector struct {
	m       *manifest.Manifest
	sources []rawSource
	outDir  string
	err     error
}

func (c *manifestCollector) Consume(batch []rawimage.Raw) {
	for i, out := range batch {
		src := c.sources[i]
		if out.Empty() {
			c.m.Stats.Failed++
			fmt.Fprintf(os.Stderr, "[debayer] error: %s produced an empty output\n", src.key)
			continue
		}

		data := out.Bytes()
		hash := hasher.ContentHash(data, 16)
		fileName := fmt.Sprintf("%s.%s.%s.raw", filepath.Base(src.key), strings.ToLower(out.Layout().String()), hash)
		relPath := filepath.ToSlash(filepath.Join(filepath.Dir(src.key), fileName))
		outPath := filepath.Join(c.outDir, relPath)

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			c.err = err
			return
		}
		// Prefix the {width, height, bytes_per_pixel} header that
		// rawimage.LoadRaw (and so the inspect command) reads back.
		file := make([]byte, 0, 12+len(data))
		file = binary.LittleEndian.AppendUint32(file, uint32(out.Width()))
		file = binary.LittleEndian.AppendUint32(file, uint32(out.Height()))
		file = binary.LittleEndian.AppendUint32(file, uint32(out.BytesPerChannel()))
		file = append(file, data...)
		if err := os.WriteFile(outPath, file, 0o644); err != nil {
			c.err = err
			return
		}

		c.m.Assets[src.key] = manifest.Asset{
			Source: manifest.SourceInfo{
				Width: out.Width(), Height: out.Height(),
				Depth: out.Depth(), Layout: rawimage.Bayer.String(), Size: src.size,
			},
			Output: manifest.OutputInfo{
				Layout: out.Layout().String(),
				Size:   int64(len(file)),
				Hash:   hash,
				Path:   relPath,
			},
		}

		logVerbose("done: %s -> %s", src.key, relPath)
	}
}

func printDebayerReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("  debayer build complete")
	fmt.Println()
	fmt.Printf("  Assets:      %d\n", m.Stats.TotalAssets)
	if m.Stats.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", m.Stats.Failed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(m.Stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(m.Stats.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Algorithm:   %s (%s, %d workers)\n", m.BuildInfo.Algorithm, m.BuildInfo.OutputLayout, m.BuildInfo.Workers)
	}
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
