// Package risk computes the composite 0-100 churn-risk score.
package risk

import (
	"math"
	"time"

	"github.com/meridian-systems/accountpulse/internal/model"
)

// Level is a qualitative churn-risk band.
type Level string

// Risk levels, highest first.
const (
	LevelCritical Level = "critical"
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelLow      Level = "low"
)

// Score is the result of one risk computation.
type Score struct {
	// Score is the composite churn risk, 0-100, higher = more likely
	// to churn.
	Score int `json:"score"`

	// Level is the banded risk level.
	Level Level `json:"level"`

	// AppliedMax is the summed point budget of the dimensions that had
	// data; the raw point sum is normalized against it.
	AppliedMax float64 `json:"applied_max"`

	// Breakdown lists each dimension's points for explainability.
	Breakdown []model.ScoreFactor `json:"breakdown"`
}

// dimension is one weighted risk contributor. The points func returns
// false when the profile lacks the data the dimension needs, in which
// case it is excluded from both the sum and the normalization budget.
type dimension struct {
	name   string
	max    float64
	points func(p *model.CustomerProfile, now time.Time) (float64, bool)
}

// Engine computes churn-risk scores. The dimension table is built once
// at construction and never mutated.
type Engine struct {
	dimensions []dimension
}

// NewEngine creates a risk engine with the stock dimension table.
//
// Point budgets (sum 100):
//   - health-score tier        25
//   - engagement recency       20
//   - support-issue pressure   20
//   - renewal-likelihood tier  15
//   - product-adoption breadth 10
//   - feedback-sentiment risk  10
func NewEngine() *Engine {
	return &Engine{
		dimensions: []dimension{
			{"health_score", 25, healthPoints},
			{"engagement_recency", 20, engagementPoints},
			{"support_pressure", 20, supportPoints},
			{"renewal_likelihood", 15, renewalPoints},
			{"product_adoption", 10, adoptionPoints},
			{"feedback_sentiment", 10, feedbackPoints},
		},
	}
}

// Score computes the composite risk for a profile. Dimensions without
// data renormalize away; the final score is the applicable point sum
// over the applicable budget, scaled to 0-100.
func (e *Engine) Score(p *model.CustomerProfile, now time.Time) Score {
	var total, totalMax float64
	var breakdown []model.ScoreFactor

	for _, d := range e.dimensions {
		pts, ok := d.points(p, now)
		if !ok {
			continue
		}
		total += pts
		totalMax += d.max
		breakdown = append(breakdown, model.ScoreFactor{
			Name:         d.name,
			Value:        pts,
			Weight:       d.max,
			Contribution: pts,
		})
	}

	if totalMax == 0 {
		// No evidence at all: midpoint default rather than divide by zero.
		return Score{Score: 50, Level: LevelHigh}
	}

	score := int(math.Round(total / totalMax * 100))
	return Score{
		Score:      score,
		Level:      LevelFor(score),
		AppliedMax: totalMax,
		Breakdown:  breakdown,
	}
}

// LevelFor bands a 0-100 risk score.
func LevelFor(score int) Level {
	switch {
	case score >= 70:
		return LevelCritical
	case score >= 50:
		return LevelHigh
	case score >= 30:
		return LevelMedium
	default:
		return LevelLow
	}
}

// healthPoints penalizes low stored health scores. A profile always
// carries a health score, so this dimension always applies.
func healthPoints(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	switch {
	case p.HealthScore < 4:
		return 25, true
	case p.HealthScore < 6:
		return 15, true
	case p.HealthScore < 8:
		return 8, true
	default:
		return 0, true
	}
}

// engagementPoints penalizes inactivity, tiered by days since the last
// recorded activity.
func engagementPoints(p *model.CustomerProfile, now time.Time) (float64, bool) {
	days, ok := p.DaysSinceActivity(now)
	if !ok {
		return 0, false
	}
	switch {
	case days > 30:
		return 20, true
	case days > 14:
		return 12, true
	case days > 7:
		return 6, true
	default:
		return 0, true
	}
}

// supportPoints combines issue-tracker and ticketing pressure, capped
// at the dimension budget.
func supportPoints(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	if p.Jira == nil && p.Zendesk == nil {
		return 0, false
	}

	pts := 0.0
	if j := p.Jira; j != nil {
		switch {
		case j.CriticalIssues >= 3:
			pts += 10
		case j.CriticalIssues >= 1:
			pts += 6
		}
		switch {
		case j.OpenIssues > 10:
			pts += 5
		case j.OpenIssues > 5:
			pts += 3
		}
	}
	if z := p.Zendesk; z != nil {
		switch {
		case z.UrgentTickets >= 3:
			pts += 8
		case z.UrgentTickets >= 1:
			pts += 4
		}
		if z.SatisfactionRatings > 0 {
			switch {
			case z.SatisfactionScore < 50:
				pts += 7
			case z.SatisfactionScore < 70:
				pts += 4
			}
		}
	}

	return math.Min(pts, 20), true
}

// renewalPoints penalizes weak stored renewal likelihood.
func renewalPoints(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	switch p.RenewalLikelihood {
	case model.LikelihoodLow:
		return 15, true
	case model.LikelihoodMedium:
		return 8, true
	case model.LikelihoodHigh:
		return 0, true
	default:
		return 0, false
	}
}

// adoptionPoints is the inverse of distinct product breadth. Zero
// products is itself a signal, so this dimension always applies.
func adoptionPoints(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	switch p.ProductCount() {
	case 0:
		return 10, true
	case 1:
		return 7, true
	case 2:
		return 4, true
	case 3:
		return 2, true
	default:
		return 0, true
	}
}

// feedbackPoints penalizes poor recent feedback: the mean rating of the
// 5 most recent entries within 90 days.
func feedbackPoints(p *model.CustomerProfile, now time.Time) (float64, bool) {
	recent := p.RecentFeedback(now, 90*24*time.Hour, 5)
	if len(recent) == 0 {
		return 0, false
	}

	sum := 0
	for _, f := range recent {
		sum += f.Rating
	}
	mean := float64(sum) / float64(len(recent))

	switch {
	case mean < 2:
		return 10, true
	case mean < 3:
		return 7, true
	case mean < 3.5:
		return 4, true
	case mean < 4:
		return 2, true
	default:
		return 0, true
	}
}
