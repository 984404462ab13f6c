// Package behavior categorizes customers into engagement bands from
// adoption and engagement sub-metrics.
package behavior

import (
	"fmt"
	"time"

	"github.com/meridian-systems/accountpulse/internal/integration"
	"github.com/meridian-systems/accountpulse/internal/model"
)

// Category is a qualitative engagement band.
type Category string

// Behavior categories, strongest first.
const (
	Champion Category = "Champion"
	Advocate Category = "Advocate"
	Passive  Category = "Passive"
	AtRisk   Category = "At Risk"
	Critical Category = "Critical"
)

// Score is the result of one behavior computation.
type Score struct {
	// Score is the 0-100 behavior score.
	Score int `json:"score"`

	// Category is the banded engagement category.
	Category Category `json:"category"`

	// Factors lists the contributing sub-scores for explainability.
	Factors []string `json:"factors"`
}

// Scorer computes behavior scores from customer profiles.
type Scorer struct {
	stages integration.LifecycleScores
}

// NewScorer creates a behavior scorer. A nil lifecycle table falls back
// to the defaults.
func NewScorer(stages integration.LifecycleScores) *Scorer {
	if stages == nil {
		stages = integration.DefaultLifecycleScores
	}
	return &Scorer{stages: stages}
}

// Score sums five tiered contributions into a 0-100 behavior score.
//
// Point budgets:
//   - product adoption        0-25
//   - support satisfaction    0-20
//   - development engagement  0-20
//   - sales engagement        0-15
//   - activity recency        0-20
func (s *Scorer) Score(p *model.CustomerProfile, now time.Time) Score {
	score := 0
	var factors []string

	adoption := adoptionPoints(p.ProductCount())
	score += adoption
	factors = append(factors, fmt.Sprintf("Product adoption: %d product(s) (+%d)", p.ProductCount(), adoption))

	sub := integration.ScoreProfile(s.stages, p, now)

	if sub.Support != nil {
		pts := supportPoints(*sub.Support)
		score += pts
		factors = append(factors, fmt.Sprintf("Support health %d (+%d)", *sub.Support, pts))
	}
	if sub.Development != nil {
		pts := developmentPoints(*sub.Development)
		score += pts
		factors = append(factors, fmt.Sprintf("Development health %d (+%d)", *sub.Development, pts))
	}
	if sub.Sales != nil {
		pts := salesPoints(*sub.Sales)
		score += pts
		factors = append(factors, fmt.Sprintf("Sales health %d (+%d)", *sub.Sales, pts))
	}

	if days, ok := p.DaysSinceActivity(now); ok {
		pts := activityPoints(days)
		score += pts
		factors = append(factors, fmt.Sprintf("Last activity %.0f day(s) ago (+%d)", days, pts))
	}

	if score > 100 {
		score = 100
	}

	return Score{
		Score:    score,
		Category: CategoryFor(score),
		Factors:  factors,
	}
}

// CategoryFor bands a 0-100 behavior score.
func CategoryFor(score int) Category {
	switch {
	case score >= 80:
		return Champion
	case score >= 60:
		return Advocate
	case score >= 40:
		return Passive
	case score >= 20:
		return AtRisk
	default:
		return Critical
	}
}

func adoptionPoints(count int) int {
	switch {
	case count >= 4:
		return 25
	case count == 3:
		return 18
	case count == 2:
		return 12
	case count == 1:
		return 6
	default:
		return 0
	}
}

func supportPoints(health int) int {
	switch {
	case health >= 90:
		return 20
	case health >= 75:
		return 15
	case health >= 60:
		return 10
	case health >= 40:
		return 5
	default:
		return 0
	}
}

func developmentPoints(health int) int {
	switch {
	case health >= 80:
		return 20
	case health >= 60:
		return 14
	case health >= 40:
		return 8
	case health >= 20:
		return 3
	default:
		return 0
	}
}

func salesPoints(health int) int {
	switch {
	case health >= 80:
		return 15
	case health >= 60:
		return 10
	case health >= 40:
		return 6
	case health >= 20:
		return 3
	default:
		return 0
	}
}

func activityPoints(days float64) int {
	switch {
	case days <= 3:
		return 20
	case days <= 7:
		return 15
	case days <= 14:
		return 10
	case days <= 30:
		return 5
	default:
		return 0
	}
}
