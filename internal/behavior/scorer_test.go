package behavior

import (
	"testing"
	"time"

	"github.com/meridian-systems/accountpulse/internal/model"
)

func TestScore_Champion(t *testing.T) {
	s := NewScorer(nil)
	now := time.Now()
	activity := now.Add(-2 * 24 * time.Hour)
	crmActivity := now.Add(-24 * time.Hour)

	// Four products (25), support health 97 (20), development health 85
	// (20), sales health 100 -> capped contribution (15), activity two
	// days ago (20). Total clamps at 100.
	p := &model.CustomerProfile{
		ProductUsage: []model.Product{
			{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
		},
		Zendesk: &model.ZendeskMetrics{
			SolvedTickets: 20, SatisfactionScore: 90, SatisfactionRatings: 10,
		},
		Jira: &model.JiraMetrics{OpenIssues: 0, ResolvedIssues: 10, CriticalIssues: 1},
		Hubspot: &model.HubspotMetrics{
			LifecycleStage: "customer", LastActivityAt: &crmActivity, OpenDeals: 1,
		},
		LastActivityAt: &activity,
	}

	got := s.Score(p, now)
	if got.Score < 80 {
		t.Errorf("expected score >= 80, got %d", got.Score)
	}
	if got.Category != Champion {
		t.Errorf("expected Champion, got %s", got.Category)
	}
	if len(got.Factors) != 5 {
		t.Errorf("expected 5 factors, got %d", len(got.Factors))
	}
}

func TestScore_EmptyProfile(t *testing.T) {
	s := NewScorer(nil)
	got := s.Score(&model.CustomerProfile{}, time.Now())

	if got.Score != 0 {
		t.Errorf("expected 0, got %d", got.Score)
	}
	if got.Category != Critical {
		t.Errorf("expected Critical, got %s", got.Category)
	}
}

func TestScore_NoIntegrations(t *testing.T) {
	s := NewScorer(nil)
	now := time.Now()
	activity := now.Add(-10 * 24 * time.Hour)

	// Two products (12) + activity 10 days ago (10) = 22.
	p := &model.CustomerProfile{
		ProductUsage:   []model.Product{{Name: "a"}, {Name: "b"}},
		LastActivityAt: &activity,
	}

	got := s.Score(p, now)
	if got.Score != 22 {
		t.Errorf("expected 22, got %d", got.Score)
	}
	if got.Category != AtRisk {
		t.Errorf("expected At Risk, got %s", got.Category)
	}
}

func TestScore_ClampsAt100(t *testing.T) {
	s := NewScorer(nil)
	got := s.Score(maxedProfile(time.Now()), time.Now())
	if got.Score != 100 {
		t.Errorf("expected clamp at 100, got %d", got.Score)
	}
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		score int
		want  Category
	}{
		{100, Champion},
		{80, Champion},
		{79, Advocate},
		{60, Advocate},
		{59, Passive},
		{40, Passive},
		{39, AtRisk},
		{20, AtRisk},
		{19, Critical},
		{0, Critical},
	}
	for _, tt := range tests {
		if got := CategoryFor(tt.score); got != tt.want {
			t.Errorf("CategoryFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func maxedProfile(now time.Time) *model.CustomerProfile {
	activity := now.Add(-24 * time.Hour)
	return &model.CustomerProfile{
		ProductUsage: []model.Product{
			{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"},
		},
		Zendesk: &model.ZendeskMetrics{SolvedTickets: 30, SatisfactionScore: 100, SatisfactionRatings: 20},
		Jira:    &model.JiraMetrics{ResolvedIssues: 40},
		Hubspot: &model.HubspotMetrics{
			LifecycleStage: "customer", LastActivityAt: &activity, OpenDeals: 3, WonDeals: 5,
		},
		LastActivityAt: &activity,
	}
}
