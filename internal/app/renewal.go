package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/health"
	"github.com/meridian-systems/accountpulse/internal/output"
)

var renewalCmd = &cobra.Command{
	Use:   "renewal <profile.json|customer-id>",
	Short: "Estimate renewal likelihood for a profile",
	Long: `Renewal estimates the likelihood of renewal from health, adoption,
satisfaction, open-ticket load, and activity recency. Signals without
data drop out and their weight renormalizes; the 0-1 score bands to
high (>= 0.7), medium (>= 0.4), or low.`,
	Args: cobra.ExactArgs(1),
	RunE: runRenewal,
}

func init() {
	rootCmd.AddCommand(renewalCmd)
}

func runRenewal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := loadProfile(cfg, args[0])
	if err != nil {
		return err
	}

	est := health.EstimateRenewal(p, time.Now())

	if flagJSON {
		return printJSON(est)
	}

	style := output.StyleSuccess
	switch est.Likelihood {
	case "low":
		style = output.StyleError
	case "medium":
		style = output.StyleWarning
	}

	fmt.Println(output.Section(fmt.Sprintf("Renewal Estimate: %s", displayName(p))))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Likelihood:"),
		style.Render(string(est.Likelihood)))
	fmt.Printf(" %s %s\n\n",
		output.StyleLabel.Render("Score:"),
		output.StyleValue.Render(fmt.Sprintf("%.2f", est.Score)))

	for _, f := range est.Factors {
		fmt.Printf("   %s\n", f)
	}
	return nil
}
