package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/output"
)

var riskCmd = &cobra.Command{
	Use:   "risk <profile.json|customer-id>",
	Short: "Compute the 0-100 churn risk for a profile",
	Long: `Risk scores churn exposure across six dimensions: health, engagement
recency, support load, renewal outlook, product adoption, and recent
feedback. Dimensions without data drop out and the score renormalizes
over what remains; a profile with no usable dimensions lands at the
midpoint 50 and is treated as high risk.`,
	Args: cobra.ExactArgs(1),
	RunE: runRisk,
}

func init() {
	rootCmd.AddCommand(riskCmd)
}

func runRisk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := loadProfile(cfg, args[0])
	if err != nil {
		return err
	}

	score := newEvaluator(cfg).Risk.Score(p, time.Now())

	if flagJSON {
		return printJSON(score)
	}

	fmt.Println(output.Section(fmt.Sprintf("Churn Risk: %s", displayName(p))))
	fmt.Println()
	fmt.Printf(" %s  %s\n\n",
		output.RiskBar(float64(score.Score), 30),
		output.RiskStyle(string(score.Level)).Render(string(score.Level)))

	tbl := output.NewTable("Dimension", "Points", "Budget")
	for _, f := range score.Breakdown {
		tbl.AddRow(f.Name, fmt.Sprintf("%.0f", f.Value), fmt.Sprintf("%.0f", f.Weight))
	}
	tbl.Print()
	return nil
}
