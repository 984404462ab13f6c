package health

import (
	"reflect"
	"testing"
	"time"

	"github.com/meridian-systems/accountpulse/internal/model"
)

func TestScore_EmptyProfile(t *testing.T) {
	e := NewEngine(DefaultWeights, nil)
	got := e.Score(&model.CustomerProfile{}, time.Now())

	if got.Score != 5.0 {
		t.Errorf("expected neutral default 5.0, got %v", got.Score)
	}
	if got.AppliedWeight != 0 {
		t.Errorf("expected applied weight 0, got %v", got.AppliedWeight)
	}
	if len(got.Breakdown) != 0 {
		t.Errorf("expected empty breakdown, got %d factors", len(got.Breakdown))
	}
}

func TestScore_FeedbackOnly(t *testing.T) {
	e := NewEngine(DefaultWeights, nil)
	now := time.Now()

	// Average rating 4: the only signal, so score == avg/10*10 == 4.0.
	p := &model.CustomerProfile{
		FeedbackEntries: []model.FeedbackEntry{
			{Date: now, Rating: 4},
			{Date: now, Rating: 4},
		},
	}

	got := e.Score(p, now)
	if got.Score != 4.0 {
		t.Errorf("expected 4.0, got %v", got.Score)
	}
	if got.AppliedWeight != DefaultWeights.Feedback {
		t.Errorf("expected applied weight %v, got %v", DefaultWeights.Feedback, got.AppliedWeight)
	}
}

func TestScore_Renormalization(t *testing.T) {
	e := NewEngine(DefaultWeights, nil)
	now := time.Now()

	// Feedback avg 5 (value 0.5, weight 2.0) + 4 products (value 1.0,
	// weight 1.5): (0.5*2 + 1*1.5) / 3.5 * 10 = 7.1
	p := &model.CustomerProfile{
		FeedbackEntries: []model.FeedbackEntry{{Date: now, Rating: 5}},
		ProductUsage: []model.Product{
			{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
		},
	}

	got := e.Score(p, now)
	if got.Score != 7.1 {
		t.Errorf("expected 7.1, got %v", got.Score)
	}
	if got.AppliedWeight != 3.5 {
		t.Errorf("expected applied weight 3.5, got %v", got.AppliedWeight)
	}
	if len(got.Breakdown) != 2 {
		t.Errorf("expected 2 breakdown factors, got %d", len(got.Breakdown))
	}
}

func TestScore_SentimentDirection(t *testing.T) {
	e := NewEngine(DefaultWeights, nil)
	now := time.Now()

	rising := &model.CustomerProfile{
		SentimentTrend: []model.SentimentPoint{
			{Date: now.Add(-48 * time.Hour), Score: 60},
			{Date: now.Add(-24 * time.Hour), Score: 70},
		},
	}
	falling := &model.CustomerProfile{
		SentimentTrend: []model.SentimentPoint{
			{Date: now.Add(-48 * time.Hour), Score: 70},
			{Date: now.Add(-24 * time.Hour), Score: 60},
		},
	}

	// Rising sentiment: value 1.0 -> score 10. Falling: 0.5 -> score 5.
	if got := e.Score(rising, now); got.Score != 10.0 {
		t.Errorf("rising sentiment: expected 10.0, got %v", got.Score)
	}
	if got := e.Score(falling, now); got.Score != 5.0 {
		t.Errorf("falling sentiment: expected 5.0, got %v", got.Score)
	}
}

func TestScore_RenewalLookup(t *testing.T) {
	e := NewEngine(DefaultWeights, nil)
	now := time.Now()

	tests := []struct {
		likelihood model.Likelihood
		want       float64
	}{
		{model.LikelihoodHigh, 10.0},
		{model.LikelihoodMedium, 6.0},
		{model.LikelihoodLow, 2.0},
	}
	for _, tt := range tests {
		p := &model.CustomerProfile{RenewalLikelihood: tt.likelihood}
		if got := e.Score(p, now); got.Score != tt.want {
			t.Errorf("likelihood %s: expected %v, got %v", tt.likelihood, tt.want, got.Score)
		}
	}
}

func TestScore_IntegrationSignal(t *testing.T) {
	e := NewEngine(DefaultWeights, nil)
	now := time.Now()

	// A single clean tracker: sub-score 100, signal value 1.0 -> 10.0.
	p := &model.CustomerProfile{
		Jira: &model.JiraMetrics{OpenIssues: 1, ResolvedIssues: 9},
	}
	if got := e.Score(p, now); got.Score != 10.0 {
		t.Errorf("expected 10.0, got %v", got.Score)
	}
}

func TestScore_Range(t *testing.T) {
	e := NewEngine(DefaultWeights, nil)
	now := time.Now()
	volume := 50

	p := &model.CustomerProfile{
		FeedbackEntries:   []model.FeedbackEntry{{Date: now, Rating: 1}},
		TicketVolume:      &volume,
		RenewalLikelihood: model.LikelihoodLow,
		SocialStats:       &model.SocialStats{},
		Jira:              &model.JiraMetrics{OpenIssues: 50, CriticalIssues: 10},
	}

	got := e.Score(p, now)
	if got.Score < 0 || got.Score > 10 {
		t.Errorf("score %v outside [0,10]", got.Score)
	}
}

func TestScore_Deterministic(t *testing.T) {
	e := NewEngine(DefaultWeights, nil)
	now := time.Now()
	sync := now.Add(-24 * time.Hour)
	volume := 3

	p := &model.CustomerProfile{
		ARR:         120000,
		HealthScore: 6.5,
		FeedbackEntries: []model.FeedbackEntry{
			{Date: now.Add(-24 * time.Hour), Rating: 4},
			{Date: now.Add(-72 * time.Hour), Rating: 3},
		},
		SentimentTrend: []model.SentimentPoint{
			{Date: now.Add(-48 * time.Hour), Score: 55},
			{Date: now.Add(-24 * time.Hour), Score: 62},
		},
		ProductUsage:      []model.Product{{Name: "core"}, {Name: "addon"}},
		RenewalLikelihood: model.LikelihoodMedium,
		SocialStats:       &model.SocialStats{LinkedIn: 4, Twitter: 3},
		TicketVolume:      &volume,
		Jira:              &model.JiraMetrics{OpenIssues: 2, ResolvedIssues: 20, LastSyncAt: &sync},
	}

	first := e.Score(p, now)
	second := e.Score(p, now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different outputs:\n%+v\n%+v", first, second)
	}
}
