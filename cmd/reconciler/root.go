package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hours-reconciliation/internal/config"
	"hours-reconciliation/internal/logging"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log zerolog.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "reconciler",
		Short: "Reconcile timesheet hours against payroll hours",
		Long: `reconciler cross-checks weekly timesheet CSV exports against the
payroll system's Excel export. It normalizes both sources into a canonical
per-employee, per-category hour table, matches employees by staff number,
reports per-category and total differences, and flags anomalies such as
excessive weekly hours or staff paid without a recorded pay rate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = opts.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Log.Format = opts.logFormat
			}
			opts.cfg = cfg
			opts.log = logging.New(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default reconciler.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: auto, console, json")

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}
