package alerting

import (
	"math"

	"github.com/meridian-systems/accountpulse/internal/model"
)

// Thresholds are the alert-triggering cutoffs the detectors evaluate
// against. The base table is tightened or loosened per customer before
// detection, so the same raw metric can produce different severities
// for different customers.
type Thresholds struct {
	// NegativeFeedbackCount is the number of ratings <= 2 inside the
	// window that triggers the negative-feedback detector.
	NegativeFeedbackCount int `mapstructure:"negative_feedback_count"`

	// NegativeFeedbackWindowDays is the lookback window for negative
	// feedback.
	NegativeFeedbackWindowDays int `mapstructure:"negative_feedback_window_days"`

	// LowEngagementDays is the inactivity span that triggers the
	// low-engagement detector.
	LowEngagementDays int `mapstructure:"low_engagement_days"`

	// CriticalIssues is the tracker critical-issue count that triggers
	// the critical-issues detector.
	CriticalIssues int `mapstructure:"critical_issues"`

	// UrgentTickets is the ticketing urgent count that triggers the
	// support-overload detector.
	UrgentTickets int `mapstructure:"urgent_tickets"`

	// HealthDecline is the score drop across the last three history
	// points that triggers the health-decline detector.
	HealthDecline float64 `mapstructure:"health_decline"`

	// SalesInactivityDays is the CRM inactivity span for the
	// sales-stagnation detector.
	SalesInactivityDays int `mapstructure:"sales_inactivity_days"`

	// AdoptionInactivityDays is the inactivity span for the
	// product-adoption-stagnation detector.
	AdoptionInactivityDays int `mapstructure:"adoption_inactivity_days"`

	// HighValueARR is the ARR floor above which adoption stagnation is
	// evaluated at all.
	HighValueARR float64 `mapstructure:"high_value_arr"`
}

// BaseThresholds is the stock threshold table before per-customer
// adjustment.
var BaseThresholds = Thresholds{
	NegativeFeedbackCount:      2,
	NegativeFeedbackWindowDays: 14,
	LowEngagementDays:          21,
	CriticalIssues:             2,
	UrgentTickets:              3,
	HealthDecline:              1.0,
	SalesInactivityDays:        30,
	AdoptionInactivityDays:     60,
	HighValueARR:               50000,
}

// ForCustomer derives the customer-specific threshold table. Higher-ARR
// accounts get tighter cutoffs, as do accounts already in poor health
// or with deep product adoption; accounts with no products yet get a
// new-customer grace.
func (t Thresholds) ForCustomer(p *model.CustomerProfile) Thresholds {
	switch {
	case p.ARR > 100000:
		t = t.scaled(0.5)
	case p.ARR > 50000:
		t = t.scaled(0.75)
	}

	if p.HealthScore < 5 {
		t = t.scaled(0.8)
	}

	switch {
	case p.ProductCount() == 0:
		t = t.scaled(1.5)
	case p.ProductCount() >= 3:
		t = t.scaled(0.9)
	}

	return t
}

// scaled multiplies every trigger cutoff by factor, with floors so
// tightening can never scale a threshold out of existence. The
// feedback lookback window and the ARR floor are detection scopes, not
// cutoffs, and stay fixed.
func (t Thresholds) scaled(factor float64) Thresholds {
	t.NegativeFeedbackCount = scaleInt(t.NegativeFeedbackCount, factor, 1)
	t.LowEngagementDays = scaleInt(t.LowEngagementDays, factor, 5)
	t.CriticalIssues = scaleInt(t.CriticalIssues, factor, 1)
	t.UrgentTickets = scaleInt(t.UrgentTickets, factor, 1)
	t.SalesInactivityDays = scaleInt(t.SalesInactivityDays, factor, 7)
	t.AdoptionInactivityDays = scaleInt(t.AdoptionInactivityDays, factor, 14)
	t.HealthDecline = math.Max(0.3, t.HealthDecline*factor)
	return t
}

func scaleInt(v int, factor float64, floor int) int {
	scaled := int(math.Round(float64(v) * factor))
	if scaled < floor {
		return floor
	}
	return scaled
}
