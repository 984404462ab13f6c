package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/output"
	"github.com/meridian-systems/accountpulse/internal/trend"
)

var trendsFlagWindow int

var trendsCmd = &cobra.Command{
	Use:   "trends <profile.json|customer-id>",
	Short: "Analyze health, engagement, and satisfaction trends",
	Long: `Trends compares the endpoints of each series: the stored health
history, an engagement proxy built from integration sync recency and
ticket load, and the recent-vs-older split of feedback ratings. Moves
inside +/-5% count as stable; fewer than two points yield
insufficient_data.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrends,
}

func init() {
	trendsCmd.Flags().IntVar(&trendsFlagWindow, "window", 0, "Only consider the most recent N health points (0 = all)")
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := loadProfile(cfg, args[0])
	if err != nil {
		return err
	}

	now := time.Now()
	results := map[string]trend.Trend{
		"health":       trend.HealthTrend(p, trendsFlagWindow),
		"engagement":   trend.EngagementTrend(p, now),
		"satisfaction": trend.SatisfactionTrend(p),
	}

	if flagJSON {
		return printJSON(results)
	}

	fmt.Println(output.Section(fmt.Sprintf("Trends: %s", displayName(p))))
	fmt.Println()

	tbl := output.NewTable("Metric", "Direction", "Change", "Confidence")
	for _, name := range []string{"health", "engagement", "satisfaction"} {
		t := results[name]
		change := output.TrendArrowPercent(t.ChangePct, true)
		if t.Direction == trend.InsufficientData {
			change = output.StyleMuted.Render("n/a")
		}
		tbl.AddRow(
			name,
			string(t.Direction),
			change,
			fmt.Sprintf("%.0f%%", t.Confidence),
		)
	}
	tbl.Print()
	return nil
}
