package alerting

import (
	"sort"

	"github.com/meridian-systems/accountpulse/internal/model"
)

// severityPoints is the base priority contribution per severity.
var severityPoints = map[Severity]int{
	SeverityCritical: 40,
	SeverityHigh:     30,
	SeverityMedium:   20,
	SeverityLow:      10,
}

// PriorityScore ranks an alert inside the customer's value and health
// context: base severity points plus an ARR tier bonus plus a
// health-score tier bonus. This is the tie-break between alerts of
// equal severity — the higher-value, lower-health customer sorts first.
func PriorityScore(severity Severity, p *model.CustomerProfile) int {
	score := severityPoints[severity]

	switch {
	case p.ARR > 100000:
		score += 20
	case p.ARR > 50000:
		score += 10
	case p.ARR > 20000:
		score += 5
	}

	switch {
	case p.HealthScore < 4:
		score += 15
	case p.HealthScore < 6:
		score += 10
	case p.HealthScore < 8:
		score += 5
	}

	return score
}

// PriorityBucket maps a priority score to its label.
func PriorityBucket(score int) string {
	switch {
	case score >= 70:
		return "urgent"
	case score >= 50:
		return "high"
	case score >= 30:
		return "medium"
	default:
		return "low"
	}
}

// prioritize stamps every alert with its priority score and bucket,
// then sorts descending by score. The sort is stable so detection
// order breaks exact score ties deterministically.
func prioritize(alerts []Alert, p *model.CustomerProfile) []Alert {
	for i := range alerts {
		alerts[i].PriorityScore = PriorityScore(alerts[i].Severity, p)
		alerts[i].Priority = PriorityBucket(alerts[i].PriorityScore)
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].PriorityScore > alerts[j].PriorityScore
	})
	return alerts
}
