package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adamdince/ShopifyAuditor/internal/app"
	"github.com/adamdince/ShopifyAuditor/internal/config"
)

// Populated via -ldflags at build time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "shopmon",
	Short: "Run one storefront uptime check and record the results",
	Long: `shopmon loads the storefront in a headless browser, checks key pages,
samples internal links and records PASS/WARN/FAIL results to a dated JSON
file and to a Google Sheet.

All settings come from the environment (or a .env file); set MONITOR_CONFIG
to layer a YAML file underneath. Schedule it externally, e.g. with cron.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), os.Getenv(config.ConfigPathEnv), app.Options{Stdout: cmd.OutOrStdout()})
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "shopmon: %v\n", err)
		stop()
		os.Exit(1)
	}
}
