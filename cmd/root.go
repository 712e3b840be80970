package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "debayer",
	Short: "Adaptive Homogeneity-Directed demosaicing for raw Bayer frames",
	Long: `debayer — reconstructs four-channel color images from raw
single-channel Bayer sensor data using the Adaptive Homogeneity-Directed
(AHD) algorithm, with a bilinear path for comparison.

Writes content-addressed output frames and a manifest describing each
source/output pair.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"debayer %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[debayer] "+format+"\n", args...)
	}
}
