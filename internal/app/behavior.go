package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/output"
)

var behaviorCmd = &cobra.Command{
	Use:   "behavior <profile.json|customer-id>",
	Short: "Categorize a profile's engagement behavior",
	Long: `Behavior sums tiered contributions from product adoption, support
satisfaction, development engagement, sales engagement, and activity
recency into a 0-100 score, then bands it: Champion, Advocate, Passive,
At Risk, or Critical.`,
	Args: cobra.ExactArgs(1),
	RunE: runBehavior,
}

func init() {
	rootCmd.AddCommand(behaviorCmd)
}

func runBehavior(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := loadProfile(cfg, args[0])
	if err != nil {
		return err
	}

	score := newEvaluator(cfg).Behavior.Score(p, time.Now())

	if flagJSON {
		return printJSON(score)
	}

	fmt.Println(output.Section(fmt.Sprintf("Behavior: %s", displayName(p))))
	fmt.Println()
	fmt.Printf(" %s  %s\n\n",
		output.ScoreBar(float64(score.Score), 30),
		output.StyleBold.Render(string(score.Category)))

	for _, f := range score.Factors {
		fmt.Printf("   %s\n", f)
	}
	return nil
}
