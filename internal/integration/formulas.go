// Package integration converts raw third-party metrics into 0-100
// health sub-scores. Each formula starts from a baseline, applies
// penalties and bonuses, and clamps the result to [0,100].
package integration

import (
	"math"
	"time"
)

// LifecycleScores maps a CRM lifecycle stage to its base sales-health
// score. Stages absent from the table fall back to the "unknown" entry.
type LifecycleScores map[string]float64

// DefaultLifecycleScores is the stock lifecycle-stage lookup table.
var DefaultLifecycleScores = LifecycleScores{
	"customer":               100,
	"evangelist":             100,
	"opportunity":            70,
	"salesqualifiedlead":     60,
	"marketingqualifiedlead": 50,
	"lead":                   40,
	"subscriber":             35,
	"unknown":                30,
}

// score returns the base score for a lifecycle stage.
func (ls LifecycleScores) score(stage string) float64 {
	if s, ok := ls[stage]; ok {
		return s
	}
	return ls["unknown"]
}

// DevelopmentHealth scores issue-tracker metrics.
//
// Penalties from a 100 baseline:
//   - 15 points per critical issue
//   - open ratio above 30%: (ratio - 0.3) x 100
//   - average resolution above 72h: (hours - 72) / 24 x 5, capped at 30
func DevelopmentHealth(openIssues, resolvedIssues, criticalIssues int, avgResolutionHours float64) int {
	score := 100.0

	score -= float64(criticalIssues) * 15

	if total := openIssues + resolvedIssues; total > 0 {
		openRatio := float64(openIssues) / float64(total)
		if openRatio > 0.3 {
			score -= (openRatio - 0.3) * 100
		}
	}

	if avgResolutionHours > 72 {
		score -= math.Min(30, (avgResolutionHours-72)/24*5)
	}

	return clampRound(score)
}

// SupportHealth scores ticketing metrics.
//
// Penalties from a 100 baseline:
//   - 10 points per urgent ticket
//   - open ratio above 20%: (ratio - 0.2) x 125
//   - average first response above 24h: (hours - 24) / 12 x 5, capped at 25
//
// When at least one satisfaction rating exists, the result is blended
// with the satisfaction score at weight 0.3.
func SupportHealth(openTickets, solvedTickets, urgentTickets int, avgFirstResponseHours, satisfactionScore float64, satisfactionRatings int) int {
	score := 100.0

	score -= float64(urgentTickets) * 10

	if total := openTickets + solvedTickets; total > 0 {
		openRatio := float64(openTickets) / float64(total)
		if openRatio > 0.2 {
			score -= (openRatio - 0.2) * 125
		}
	}

	if avgFirstResponseHours > 24 {
		score -= math.Min(25, (avgFirstResponseHours-24)/12*5)
	}

	if satisfactionRatings > 0 {
		score = score*0.7 + satisfactionScore*0.3
	}

	return clampRound(score)
}

// SalesHealth scores CRM metrics.
//
// The base is the lifecycle-stage score blended 70/30 with a flat 100.
// Adjustments:
//   - inactivity beyond 30 days: (days - 30) / 30 x 10, capped at 20
//   - open deals: 5 points each, capped at 15
//   - deal win rate above 0.5 or below 0.3: 20% of the delta from 0.5
func SalesHealth(stages LifecycleScores, lifecycleStage string, lastActivityAt *time.Time, openDeals, wonDeals, lostDeals int, now time.Time) int {
	if stages == nil {
		stages = DefaultLifecycleScores
	}
	score := 0.3*100 + 0.7*stages.score(lifecycleStage)

	if lastActivityAt != nil {
		days := now.Sub(*lastActivityAt).Hours() / 24
		if days > 30 {
			score -= math.Min(20, (days-30)/30*10)
		}
	}

	if openDeals > 0 {
		score += math.Min(15, float64(openDeals)*5)
	}

	if closed := wonDeals + lostDeals; closed > 0 {
		winRate := float64(wonDeals) / float64(closed)
		if winRate > 0.5 || winRate < 0.3 {
			score += (winRate - 0.5) * 20
		}
	}

	return clampRound(score)
}

// clampRound clamps to [0,100] and rounds to the nearest integer.
func clampRound(score float64) int {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
