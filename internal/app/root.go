// Package app contains the Cobra command tree for accountpulse.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "accountpulse",
	Short: "Customer account health scoring and churn alerting",
	Long: `accountpulse scores customer accounts from CRM, support, and issue
tracker signals. It computes a 0-10 health score, a 0-100 churn risk,
renewal likelihood, behavior categories, and prioritized alerts, for a
single profile or a whole portfolio.

Profiles are JSON files or customers stored with 'accountpulse import'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			output.SetNoColor(true)
		} else {
			output.AutoColor()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("accountpulse", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  score      Compute the 0-10 health score for a profile")
		fmt.Println("  risk       Compute the 0-100 churn risk for a profile")
		fmt.Println("  renewal    Estimate renewal likelihood for a profile")
		fmt.Println("  behavior   Categorize a profile's engagement behavior")
		fmt.Println("  trends     Analyze health, engagement, and satisfaction trends")
		fmt.Println("  alerts     Run the alert detectors against a profile")
		fmt.Println("  evaluate   Run every engine and optionally snapshot the result")
		fmt.Println("  portfolio  Evaluate many profiles and summarize the book")
		fmt.Println("  import     Store profiles in the local database")
		fmt.Println("  serve      Expose the engines over HTTP")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/accountpulse/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
