// Package alerting evaluates rule-based alert detectors against customer
// profiles and ranks the resulting alerts.
package alerting

import "time"

// Type identifies which detector produced an alert.
type Type string

// Alert types, one per detector.
const (
	TypeNegativeFeedback     Type = "negative_feedback"
	TypeRenewalRisk          Type = "renewal_risk"
	TypeLowEngagement        Type = "low_engagement"
	TypeCriticalIssues       Type = "critical_issues"
	TypeSupportOverload      Type = "support_overload"
	TypeSalesStagnation      Type = "sales_stagnation"
	TypeHealthScoreDecline   Type = "health_score_decline"
	TypeAdoptionStagnation   Type = "product_adoption_stagnation"
	TypeEscalationRisk       Type = "escalation_risk"
)

// Severity classifies how serious an alert is.
type Severity string

// Alert severities, lowest first.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Alert is a stateless value object generated fresh on every
// evaluation. Lifecycle state (open/ack/resolved) belongs to the
// persistence layer, not here.
type Alert struct {
	Type           Type           `json:"type"`
	Severity       Severity       `json:"severity"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Data           map[string]any `json:"data,omitempty"`
	ActionRequired bool           `json:"action_required"`
	Priority       string         `json:"priority"`
	PriorityScore  int            `json:"priority_score"`
	CreatedAt      time.Time      `json:"created_at"`
}
