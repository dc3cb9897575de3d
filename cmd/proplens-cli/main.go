// Command proplens-cli extracts listing data from a single page without
// running the HTTP service.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagURL      string
	flagOut      string
	flagHeadless bool
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:     "proplens-cli",
	Short:   "Extract property listing data from a single page",
	Long:    `proplens-cli drives a headless browser against one listing page and writes the extracted records to a JSON file.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Target page URL (required)")
	rootCmd.PersistentFlags().StringVar(&flagOut, "out", "", "Output JSON file path (required)")
	rootCmd.PersistentFlags().BoolVar(&flagHeadless, "headless", true, "Run the browser headless")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(elementsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
