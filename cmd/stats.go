package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built debayer output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "debayer.manifest.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	printStats(&m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Algorithm:        %s\n", m.BuildInfo.Algorithm)
		fmt.Printf("  Output layout:    %s\n", m.BuildInfo.OutputLayout)
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	if s.Failed > 0 {
		fmt.Printf("  Failed:           %d\n", s.Failed)
	}
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))

	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Expansion:        %.1f%% of raw sensor bytes\n", ratio)
	}
	fmt.Println()

	// Per output-layout breakdown.
	layoutStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		ls := layoutStats[a.Output.Layout]
		ls.count++
		ls.bytes += a.Output.Size
		layoutStats[a.Output.Layout] = ls
	}
	var layouts []string
	for l := range layoutStats {
		layouts = append(layouts, l)
	}
	sort.Strings(layouts)
	fmt.Println("  Output layout breakdown:")
	for _, l := range layouts {
		ls := layoutStats[l]
		fmt.Printf("    %-6s  %4d frames  %s\n", l, ls.count, formatBytes(ls.bytes))
	}
	fmt.Println()

	// Per source-depth breakdown.
	depthStats := map[int]int{}
	for _, a := range m.Assets {
		depthStats[a.Source.Depth]++
	}
	var depths []int
	for d := range depthStats {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	fmt.Println("  Source bit-depth breakdown:")
	for _, d := range depths {
		fmt.Printf("    %3d-bit  %4d frames\n", d, depthStats[d])
	}
	fmt.Println()

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if a.Output.Hash == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q missing output hash", key))
		}
		if a.Output.Path == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q missing output path", key))
		}
	}
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
