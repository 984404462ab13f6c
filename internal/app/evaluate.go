package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/output"
	"github.com/meridian-systems/accountpulse/internal/store"
)

var evaluateFlagSave bool

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <profile.json|customer-id>",
	Short: "Run every engine and optionally snapshot the result",
	Long: `Evaluate runs the health, risk, renewal, behavior, trend, and alert
engines against one profile. With --save the result is snapshotted to
the local database and the health score appended to the customer's
stored history (only when it changed).`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().BoolVar(&evaluateFlagSave, "save", false, "Snapshot the evaluation to the local database")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := loadProfile(cfg, args[0])
	if err != nil {
		return err
	}

	ev := newEvaluator(cfg).Evaluate(p, time.Now())

	if evaluateFlagSave {
		db, err := store.Open(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		if err := db.UpsertCustomer(p); err != nil {
			return err
		}
		id, err := db.SaveEvaluation(ev)
		if err != nil {
			return err
		}
		if _, err := db.AppendHealthPoint(p.ID, ev.ComputedAt, ev.Health.Score); err != nil {
			return err
		}
		if flagVerbose {
			fmt.Fprintln(cmd.ErrOrStderr(), "saved snapshot", id)
		}
	}

	if flagJSON {
		return printJSON(ev)
	}

	fmt.Println(output.Section(fmt.Sprintf("Evaluation: %s", displayName(p))))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Health:"),
		output.HealthBar(ev.Health.Score, 20))
	fmt.Printf(" %s %s  %s\n",
		output.StyleLabel.Render("Churn risk:"),
		output.RiskBar(float64(ev.Risk.Score), 20),
		output.RiskStyle(string(ev.Risk.Level)).Render(string(ev.Risk.Level)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Behavior:"),
		output.StyleBold.Render(fmt.Sprintf("%s (%d)", ev.Behavior.Category, ev.Behavior.Score)))
	fmt.Printf(" %s %s (%.2f)\n",
		output.StyleLabel.Render("Renewal:"),
		string(ev.Renewal.Likelihood), ev.Renewal.Score)
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Health trend:"),
		string(ev.HealthTrend.Direction))
	fmt.Printf(" %s %d\n",
		output.StyleLabel.Render("Alerts:"),
		len(ev.Alerts))

	if len(ev.Alerts) > 0 {
		fmt.Println()
		for _, a := range ev.Alerts {
			fmt.Printf("   %s %s\n",
				output.SeverityStyle(string(a.Severity)).Render(fmt.Sprintf("[%s]", a.Severity)),
				a.Title)
		}
	}
	return nil
}
