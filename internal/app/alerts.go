package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/output"
)

var alertsFlagSeverity string

var alertsCmd = &cobra.Command{
	Use:   "alerts <profile.json|customer-id>",
	Short: "Run the alert detectors against a profile",
	Long: `Alerts runs every detector with thresholds adjusted to the customer:
high-ARR and poor-health accounts trip earlier, accounts with no
products yet get a grace. Alerts come back sorted by priority, which
weighs severity, account value, and current health.`,
	Args: cobra.ExactArgs(1),
	RunE: runAlerts,
}

func init() {
	alertsCmd.Flags().StringVar(&alertsFlagSeverity, "severity", "", "Only show alerts of this severity (critical, high, medium, low)")
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := loadProfile(cfg, args[0])
	if err != nil {
		return err
	}

	alerts := newEvaluator(cfg).Alerts.Generate(p, time.Now())

	if alertsFlagSeverity != "" {
		filtered := alerts[:0]
		for _, a := range alerts {
			if string(a.Severity) == alertsFlagSeverity {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}

	if flagJSON {
		return printJSON(alerts)
	}

	fmt.Println(output.Section(fmt.Sprintf("Alerts: %s", displayName(p))))
	fmt.Println()

	if len(alerts) == 0 {
		fmt.Println(output.StyleMuted.Render(" No alerts."))
		return nil
	}

	tbl := output.NewTable("Priority", "Severity", "Alert", "Action Required")
	for _, a := range alerts {
		action := output.StyleMuted.Render("no")
		if a.ActionRequired {
			action = output.StyleWarning.Render("yes")
		}
		tbl.AddRow(
			fmt.Sprintf("%3d %s", a.PriorityScore, a.Priority),
			output.SeverityStyle(string(a.Severity)).Render(string(a.Severity)),
			a.Title,
			action,
		)
	}
	tbl.Print()

	if flagVerbose {
		fmt.Println()
		for _, a := range alerts {
			fmt.Printf(" %s %s\n", output.StyleBold.Render(string(a.Type)+":"), a.Description)
		}
	}
	return nil
}
