package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/funnelsim/pipeline"
)

var (
	// CLI flags for a comparative run
	configsPattern string // Glob for funnel configuration files
	customers      int    // Customers simulated per configuration
	outDir         string // Directory for the report and exports
	writeWorkbook  bool   // Also write the XLSX workbook
	logLevel       string // Log verbosity level
)

// rootCmd compares every discovered onboarding funnel
var rootCmd = &cobra.Command{
	Use:           "funnelsim",
	Short:         "Simulate onboarding funnels and compare them side by side",
	Long:          "Simulate every discovered funnel configuration and write comparative_summary.md.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		refs, err := pipeline.Discover(configsPattern)
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			logrus.Warnf("No configurations match %q", configsPattern)
		}

		runner := &pipeline.Runner{
			Simulator: pipeline.FunnelSimulator,
			Customers: customers,
			OutDir:    outDir,
			Workbook:  writeWorkbook,
			Log:       logrus.StandardLogger(),
		}
		out, err := runner.Run(refs)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), out)
		return nil
	},
}

// setupLogging applies the --log level to the standard logger.
func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configsPattern, "configs", pipeline.DefaultPattern, "Glob matching funnel configuration files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.Flags().IntVar(&customers, "customers", pipeline.DefaultCustomers, "Number of customers simulated per configuration")
	rootCmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for comparative_summary.md and per-configuration exports")
	rootCmd.Flags().BoolVar(&writeWorkbook, "xlsx", false, "Also write comparative_summary.xlsx")

	rootCmd.AddCommand(validateCmd)
}
