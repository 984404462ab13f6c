package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/output"
)

var scoreCmd = &cobra.Command{
	Use:   "score <profile.json|customer-id>",
	Short: "Compute the 0-10 health score for a profile",
	Long: `Score computes the weighted health score from feedback, sentiment,
ticket volume, product adoption, renewal likelihood, social engagement,
and integration health. Missing signal categories are left out and the
remaining weights renormalized; a profile with no data scores 5.0.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := loadProfile(cfg, args[0])
	if err != nil {
		return err
	}

	score := newEvaluator(cfg).Health.Score(p, time.Now())

	if flagJSON {
		return printJSON(score)
	}

	fmt.Println(output.Section(fmt.Sprintf("Health Score: %s", displayName(p))))
	fmt.Println()
	fmt.Printf(" %s\n\n", output.HealthBar(score.Score, 30))

	tbl := output.NewTable("Signal", "Value", "Weight", "Contribution")
	for _, f := range score.Breakdown {
		tbl.AddRow(
			f.Name,
			fmt.Sprintf("%.2f", f.Value),
			fmt.Sprintf("%.1f", f.Weight),
			fmt.Sprintf("%.2f", f.Contribution),
		)
	}
	tbl.Print()

	if score.AppliedWeight == 0 {
		fmt.Println(output.StyleMuted.Render("\n No signals present; neutral score."))
	}
	return nil
}
