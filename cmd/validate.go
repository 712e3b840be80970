package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a debayer manifest and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	baseDir := filepath.Dir(manifestPath)
	errors := validateManifest(&m, baseDir)

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets — all output files present\n", m.Stats.TotalAssets)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenPaths := map[string]bool{}
	for key, asset := range m.Assets {
		if asset.Source.Width <= 0 || asset.Source.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid source dimensions %dx%d",
				key, asset.Source.Width, asset.Source.Height))
		}
		if asset.Source.Layout != "Bayer" {
			errs = append(errs, fmt.Sprintf("asset %q: source layout %q, want Bayer", key, asset.Source.Layout))
		}

		out := asset.Output
		if out.Layout != "RGBA" && out.Layout != "BGRA" {
			errs = append(errs, fmt.Sprintf("asset %q: output layout %q is not 4-channel", key, out.Layout))
		}
		if out.Hash == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing output hash", key))
		}
		if out.Path == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing output path", key))
			continue
		}

		if seenPaths[out.Path] {
			errs = append(errs, fmt.Sprintf("asset %q: duplicate output path %q", key, out.Path))
		}
		seenPaths[out.Path] = true

		fullPath := filepath.Join(baseDir, out.Path)
		info, err := os.Stat(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: output file not found: %s", key, out.Path))
		} else if out.Size > 0 && info.Size() != out.Size {
			errs = append(errs, fmt.Sprintf("asset %q: size mismatch: manifest=%d, disk=%d",
				key, out.Size, info.Size()))
		}
	}

	assetCount := len(m.Assets)
	if m.Stats.TotalAssets != assetCount {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, assetCount))
	}

	return errs
}
