package integration

import (
	"time"

	"github.com/meridian-systems/accountpulse/internal/model"
)

// Scores holds the sub-scores computed from whichever integration
// metrics a profile carries. A nil field means the corresponding
// system had no data and contributes no weight downstream.
type Scores struct {
	Development *int `json:"development,omitempty"`
	Support     *int `json:"support,omitempty"`
	Sales       *int `json:"sales,omitempty"`
}

// ScoreProfile computes every sub-score the profile has raw metrics for.
func ScoreProfile(stages LifecycleScores, p *model.CustomerProfile, now time.Time) Scores {
	var s Scores
	if j := p.Jira; j != nil {
		v := DevelopmentHealth(j.OpenIssues, j.ResolvedIssues, j.CriticalIssues, j.AvgResolutionHours)
		s.Development = &v
	}
	if z := p.Zendesk; z != nil {
		v := SupportHealth(z.OpenTickets, z.SolvedTickets, z.UrgentTickets, z.AvgFirstResponseHours, z.SatisfactionScore, z.SatisfactionRatings)
		s.Support = &v
	}
	if h := p.Hubspot; h != nil {
		v := SalesHealth(stages, h.LifecycleStage, h.LastActivityAt, h.OpenDeals, h.WonDeals, h.LostDeals, now)
		s.Sales = &v
	}
	return s
}

// Average returns the mean of the available sub-scores. The second
// return is false when no sub-score is available.
func (s Scores) Average() (float64, bool) {
	sum, n := 0, 0
	for _, v := range []*int{s.Development, s.Support, s.Sales} {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
