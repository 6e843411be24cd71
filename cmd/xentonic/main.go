// Command xentonic is a calculator for just-intonation and equal-tempered
// intervals: exact ratio/cents/monzo arithmetic plus FJS and color names.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xentonic/internal/config"
	"xentonic/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "xentonic",
	Short: "xentonic - exact musical interval calculator",
	Long: `xentonic computes with musical intervals as exact ratios, monzos
(prime-exponent vectors) and cents, preserving exactness wherever the
mathematics allows, and derives canonical FJS and color-notation names.

Interval literals:
  3/2  1.25  7        ratios
  700c  -3.5¢         cents
  7\12  -4\17         equal-division steps`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "xentonic.yaml", "path to config file")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(approxCmd)
	rootCmd.AddCommand(convergentsCmd)
	rootCmd.AddCommand(subgroupCmd)
	rootCmd.AddCommand(tuningCmd)
	rootCmd.AddCommand(infoboxCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
