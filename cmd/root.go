package cmd

import (
	"fmt"
	"os"

	"asset-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "asset-sync",
	Short: "Asset Sync Service",
	Long: `Asset Sync keeps commercetools product variants in line with Cloudinary asset metadata.
It accepts Cloudinary notifications, fans them out per asset and reconciles asset records,
thumbnails and attributes on the product carrying the asset's SKU.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config keeps CLI errors readable.
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
