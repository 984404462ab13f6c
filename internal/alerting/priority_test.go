package alerting

import (
	"testing"

	"github.com/meridian-systems/accountpulse/internal/model"
)

func TestPriorityScore_Tiers(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		arr      float64
		health   float64
		want     int
	}{
		{"critical top account in trouble", SeverityCritical, 150000, 3, 75},
		{"critical small healthy account", SeverityCritical, 5000, 9, 40},
		{"high mid account", SeverityHigh, 60000, 6.5, 45},
		{"medium with small bonus", SeverityMedium, 25000, 7, 30},
		{"low baseline", SeverityLow, 1000, 9, 10},
	}
	for _, tt := range tests {
		p := &model.CustomerProfile{ARR: tt.arr, HealthScore: tt.health}
		if got := PriorityScore(tt.severity, p); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestPriorityScore_MonotonicInARR(t *testing.T) {
	prev := -1
	for _, arr := range []float64{0, 10000, 25000, 60000, 120000, 500000} {
		p := &model.CustomerProfile{ARR: arr, HealthScore: 6.5}
		got := PriorityScore(SeverityHigh, p)
		if got < prev {
			t.Errorf("priority score decreased to %d when ARR rose to %.0f", got, arr)
		}
		prev = got
	}
}

func TestPriorityBucket(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{75, "urgent"},
		{70, "urgent"},
		{69, "high"},
		{50, "high"},
		{49, "medium"},
		{30, "medium"},
		{29, "low"},
		{10, "low"},
	}
	for _, tt := range tests {
		if got := PriorityBucket(tt.score); got != tt.want {
			t.Errorf("PriorityBucket(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestPrioritize_CustomerContextBreaksTies(t *testing.T) {
	bigTrouble := &model.CustomerProfile{ARR: 150000, HealthScore: 3}
	smallFine := &model.CustomerProfile{ARR: 5000, HealthScore: 9}

	alert := Alert{Type: TypeLowEngagement, Severity: SeverityHigh}

	big := prioritize([]Alert{alert}, bigTrouble)[0]
	small := prioritize([]Alert{alert}, smallFine)[0]

	// Equal severity: the higher-ARR, lower-health customer ranks first.
	if big.PriorityScore <= small.PriorityScore {
		t.Errorf("expected the high-ARR low-health customer to outrank: %d vs %d",
			big.PriorityScore, small.PriorityScore)
	}
}

func TestPrioritize_SortsDescending(t *testing.T) {
	p := &model.CustomerProfile{ARR: 60000, HealthScore: 5}
	alerts := prioritize([]Alert{
		{Type: TypeSalesStagnation, Severity: SeverityMedium},
		{Type: TypeEscalationRisk, Severity: SeverityCritical},
		{Type: TypeLowEngagement, Severity: SeverityHigh},
	}, p)

	if alerts[0].Type != TypeEscalationRisk {
		t.Errorf("expected escalation_risk first, got %s", alerts[0].Type)
	}
	for i := 1; i < len(alerts); i++ {
		if alerts[i].PriorityScore > alerts[i-1].PriorityScore {
			t.Errorf("not sorted descending at index %d", i)
		}
	}
}
