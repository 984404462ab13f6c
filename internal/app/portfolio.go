package app

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/model"
	"github.com/meridian-systems/accountpulse/internal/output"
	"github.com/meridian-systems/accountpulse/internal/portfolio"
	"github.com/meridian-systems/accountpulse/internal/store"
)

var (
	portfolioFlagStored      bool
	portfolioFlagConcurrency int
	portfolioFlagSort        string
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio [profiles.json]",
	Short: "Evaluate many profiles and summarize the book",
	Long: `Portfolio evaluates a JSON array of profiles (or, with --stored, every
customer in the local database) in parallel, then reduces the results
into health, risk, behavior, and trend distributions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPortfolio,
}

func init() {
	portfolioCmd.Flags().BoolVar(&portfolioFlagStored, "stored", false, "Evaluate every customer in the local database")
	portfolioCmd.Flags().IntVar(&portfolioFlagConcurrency, "concurrency", 0, "Parallel evaluations (0 = config default)")
	portfolioCmd.Flags().StringVar(&portfolioFlagSort, "sort", "risk", "Sort customers by: risk, health, arr, name")
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var profiles []*model.CustomerProfile
	switch {
	case portfolioFlagStored:
		db, err := store.Open(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()
		profiles, err = db.ListCustomers()
		if err != nil {
			return err
		}
	case len(args) == 1:
		profiles, err = readProfilesFile(args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("provide a profiles file or --stored")
	}

	if len(profiles) == 0 {
		fmt.Println(output.StyleMuted.Render("No customers to evaluate."))
		return nil
	}

	concurrency := portfolioFlagConcurrency
	if concurrency <= 0 {
		concurrency = cfg.Portfolio.Concurrency
	}

	evaluator := newEvaluator(cfg)
	evals, err := evaluator.EvaluateAll(cmd.Context(), profiles, time.Now(), concurrency)
	if err != nil {
		return err
	}
	summary := portfolio.Summarize(evals)

	if flagJSON {
		return printJSON(map[string]any{
			"summary":     summary,
			"evaluations": evals,
		})
	}

	byID := make(map[string]*model.CustomerProfile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	sortEvaluations(evals, byID, portfolioFlagSort)

	renderPortfolioTable(evals, byID)
	renderPortfolioSummary(summary)
	return nil
}

func sortEvaluations(evals []portfolio.Evaluation, byID map[string]*model.CustomerProfile, sortBy string) {
	sort.SliceStable(evals, func(i, j int) bool {
		switch sortBy {
		case "health":
			return evals[i].Health.Score < evals[j].Health.Score
		case "arr":
			return byID[evals[i].CustomerID].ARR > byID[evals[j].CustomerID].ARR
		case "name":
			return displayName(byID[evals[i].CustomerID]) < displayName(byID[evals[j].CustomerID])
		default: // "risk"
			return evals[i].Risk.Score > evals[j].Risk.Score
		}
	})
}

func renderPortfolioTable(evals []portfolio.Evaluation, byID map[string]*model.CustomerProfile) {
	fmt.Println(output.Section("Portfolio"))
	fmt.Println()

	tbl := output.NewTable("Customer", "ARR", "Health", "Risk", "Behavior", "Trend", "Alerts")
	for _, ev := range evals {
		p := byID[ev.CustomerID]

		alerts := output.StyleMuted.Render("0")
		if n := len(ev.Alerts); n > 0 {
			alerts = output.StyleWarning.Render(fmt.Sprintf("%d", n))
		}

		tbl.AddRow(
			displayName(p),
			fmt.Sprintf("%.0f", p.ARR),
			output.HealthStyle(ev.Health.Score).Render(fmt.Sprintf("%.1f", ev.Health.Score)),
			output.RiskStyle(string(ev.Risk.Level)).Render(fmt.Sprintf("%d %s", ev.Risk.Score, ev.Risk.Level)),
			string(ev.Behavior.Category),
			string(ev.HealthTrend.Direction),
			alerts,
		)
	}
	tbl.Print()
}

func renderPortfolioSummary(s portfolio.Summary) {
	fmt.Println(output.Section("Summary"))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Customers:"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.Customers)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Mean health:"),
		output.StyleValue.Render(fmt.Sprintf("%.1f/10", s.AverageHealth)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Mean risk:"),
		output.StyleValue.Render(fmt.Sprintf("%.1f/100", s.AverageRisk)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Open alerts:"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.AlertCount)))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Health bands:"),
		formatDistribution(s.HealthBuckets, []string{"good", "fair", "poor"}))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Risk levels:"),
		formatDistribution(s.RiskLevels, []string{"critical", "high", "medium", "low"}))
	fmt.Println()
}

// formatDistribution renders counted buckets in a stable order,
// skipping empty ones.
func formatDistribution(counts map[string]int, order []string) string {
	out := ""
	for _, key := range order {
		if counts[key] == 0 {
			continue
		}
		if out != "" {
			out += "  "
		}
		out += fmt.Sprintf("%s %d", key, counts[key])
	}
	if out == "" {
		return output.StyleMuted.Render("none")
	}
	return out
}
