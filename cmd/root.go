package cmd

import (
	"fmt"
	"os"

	"github.com/hanneshbsrt/fehlmengen/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "fehlmengen",
	Short: "Shortage and open order reconciliation",
	Long: `Fehlmengen checks a list of item identifiers against a stock export and
the open purchase orders of the ERP system and reports, per item, how much is
in stock and whether it is already on order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// configDir is the directory holding the .env file.
var configDir string

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory of the .env file")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps reads best on a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
