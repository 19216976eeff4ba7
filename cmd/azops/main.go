package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/azops/cmd/azops/commands"
	"github.com/systmms/azops/internal/config"
	dserrors "github.com/systmms/azops/internal/errors"
	"github.com/systmms/azops/internal/logging"
	"github.com/systmms/azops/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", dserrors.SimplifyError(err))
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile    string
		subscription  string
		outputFormat  string
		noColor       bool
		debug         bool
		skipDirectory bool
		metricsFile   string
	)

	cfg := &config.Config{}
	defer cfg.Close()

	rootCmd := &cobra.Command{
		Use:   "azops",
		Short: "Azure management-plane inspection for Key Vault and Automation",
		Long: `azops reads Key Vault resources and Automation connections through Azure
Resource Manager and prints them as flattened, display-friendly records.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.Logger = logging.New(debug, noColor)
			cfg.Path = configFile
			cfg.PathExplicit = cmd.Flags().Changed("config")
			cfg.SubscriptionID = subscription
			cfg.Output = outputFormat
			cfg.SkipDirectory = skipDirectory
			cfg.MetricsFile = metricsFile

			metrics.Init()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().StringVar(&subscription, "subscription", "", "Azure subscription id (overrides azops.yaml and "+config.SubscriptionEnvVar+")")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&skipDirectory, "skip-directory", false, "Do not resolve tenant and principal names")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-textfile", "", "Write request metrics to this file on exit (node exporter textfile format)")

	rootCmd.AddCommand(
		commands.NewKeyVaultCommand(cfg),
		commands.NewAutomationCommand(cfg),
	)

	err := rootCmd.Execute()

	if cfg.MetricsFile != "" {
		if mErr := metrics.WriteTextfile(cfg.MetricsFile); mErr != nil && cfg.Logger != nil {
			cfg.Logger.Warn("failed to write metrics to %s: %v", cfg.MetricsFile, mErr)
		}
	}

	return err
}
