package output

import (
	"fmt"
	"strings"
)

// ScoreBar renders a visual bar for a 0-100 score where higher is better.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	return bar(score, width, score >= 70, score >= 40)
}

// RiskBar renders a visual bar for a 0-100 risk score where higher is
// worse.
func RiskBar(score float64, width int) string {
	return bar(score, width, score < 30, score < 50)
}

// HealthBar renders a visual bar for a 0-10 health score.
func HealthBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := clampFill(score/10.0, width)
	b := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s",
		HealthStyle(score).Render(b),
		StyleMuted.Render(fmt.Sprintf("%.1f/10", score)))
}

func bar(score float64, width int, good, fair bool) string {
	if width <= 0 {
		width = 20
	}
	filled := clampFill(score/100.0, width)
	b := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleError
	switch {
	case good:
		style = StyleSuccess
	case fair:
		style = StyleWarning
	}

	return fmt.Sprintf("%s %s", style.Render(b), StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

func clampFill(frac float64, width int) int {
	filled := int(frac * float64(width))
	if filled > width {
		return width
	}
	if filled < 0 {
		return 0
	}
	return filled
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// The higherIsBetter parameter indicates whether higher values are better.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := (isPositive && higherIsBetter) || (!isPositive && !higherIsBetter)

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// TrendArrowPercent returns a styled trend indicator for a percentage delta.
func TrendArrowPercent(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := (isPositive && higherIsBetter) || (!isPositive && !higherIsBetter)

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.0f%%", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.0f%%", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
