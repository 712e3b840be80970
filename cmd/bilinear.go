package cmd

import (
	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/debayer"
	"github.com/spf13/cobra"
)

var bilinearCmd = &cobra.Command{
	Use:   "bilinear <input_dir>",
	Short: "Run the bilinear demosaicer over a directory of .raw Bayer frames",
	Long: `Same pipeline as debayer, but forces the fixed-tap bilinear
reconstruction instead of AHD. Useful as a speed/quality baseline.`,
	Args: cobra.ExactArgs(1),
	RunE: runBilinear,
}

func init() {
	bilinearCmd.Flags().StringVarP(&debayerOutDir, "out", "o", "./debayer_out", "output directory")
	bilinearCmd.Flags().StringVarP(&debayerLayout, "layout", "l", "bgra", "output layout: rgba or bgra")
	bilinearCmd.Flags().IntVarP(&debayerWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	rootCmd.AddCommand(bilinearCmd)
}

func runBilinear(cmd *cobra.Command, args []string) error {
	return runOrchestrator(args[0], debayer.Bilinear{}, "bilinear")
}
