// Package model defines the customer profile consumed by the scoring
// engines and the shared value types they produce.
package model

import "time"

// Likelihood is a qualitative renewal likelihood band.
type Likelihood string

// Renewal likelihood values.
const (
	LikelihoodHigh   Likelihood = "high"
	LikelihoodMedium Likelihood = "medium"
	LikelihoodLow    Likelihood = "low"
)

// CustomerProfile is the immutable input to every engine computation.
// It is assembled by the external data layer; optional integration
// metrics are nil when the upstream fetch produced no data, and every
// engine treats a nil block as a missing signal rather than an error.
type CustomerProfile struct {
	// ID uniquely identifies the customer account.
	ID string `json:"id"`

	// Name is the display name of the account.
	Name string `json:"name,omitempty"`

	// ARR is the annual contract value in dollars.
	ARR float64 `json:"arr"`

	// HealthScore is the last stored 0-10 health score.
	HealthScore float64 `json:"health_score"`

	// HealthScoreHistory is the append-only, chronological score history.
	HealthScoreHistory []HealthScorePoint `json:"health_score_history,omitempty"`

	// FeedbackEntries are surveyed feedback records, most recent first.
	FeedbackEntries []FeedbackEntry `json:"feedback_entries,omitempty"`

	// SentimentTrend is the chronological sentiment history (0-100).
	SentimentTrend []SentimentPoint `json:"sentiment_trend,omitempty"`

	// ProductUsage lists distinct product/tool enrollments.
	ProductUsage []Product `json:"product_usage,omitempty"`

	// RenewalLikelihood is the last computed or manually set likelihood.
	RenewalLikelihood Likelihood `json:"renewal_likelihood,omitempty"`

	// RenewalDate is the upcoming contract renewal date, if known.
	RenewalDate *time.Time `json:"renewal_date,omitempty"`

	// SocialStats holds social engagement counters, if tracked.
	SocialStats *SocialStats `json:"social_stats,omitempty"`

	// TicketVolume is the legacy support ticket count, if tracked.
	TicketVolume *int `json:"ticket_volume,omitempty"`

	// Jira holds raw issue-tracker metrics from the last sync, if any.
	Jira *JiraMetrics `json:"jira,omitempty"`

	// Zendesk holds raw ticketing metrics from the last sync, if any.
	Zendesk *ZendeskMetrics `json:"zendesk,omitempty"`

	// Hubspot holds raw CRM metrics from the last sync, if any.
	Hubspot *HubspotMetrics `json:"hubspot,omitempty"`

	// LastActivityAt is the most recent recorded customer activity.
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
}

// HealthScorePoint is one entry in the health score history.
type HealthScorePoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// FeedbackEntry is a single surveyed feedback record.
type FeedbackEntry struct {
	Date      time.Time `json:"date"`
	Rating    int       `json:"rating"` // 1-5
	Sentiment string    `json:"sentiment,omitempty"`
	Category  string    `json:"category,omitempty"`
}

// SentimentPoint is one entry in the sentiment history.
type SentimentPoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"` // 0-100
}

// Product is a distinct product or tool enrollment.
type Product struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// SocialStats holds follower/engagement counters per network.
type SocialStats struct {
	LinkedIn int `json:"linkedin"`
	Twitter  int `json:"twitter"`
}

// JiraMetrics are raw issue-tracker metrics for one customer.
type JiraMetrics struct {
	OpenIssues         int        `json:"open_issues"`
	ResolvedIssues     int        `json:"resolved_issues"`
	CriticalIssues     int        `json:"critical_issues"`
	AvgResolutionHours float64    `json:"avg_resolution_hours"`
	LastSyncAt         *time.Time `json:"last_sync_at,omitempty"`
}

// ZendeskMetrics are raw ticketing metrics for one customer.
type ZendeskMetrics struct {
	OpenTickets           int        `json:"open_tickets"`
	SolvedTickets         int        `json:"solved_tickets"`
	UrgentTickets         int        `json:"urgent_tickets"`
	AvgFirstResponseHours float64    `json:"avg_first_response_hours"`
	SatisfactionScore     float64    `json:"satisfaction_score"` // 0-100
	SatisfactionRatings   int        `json:"satisfaction_ratings"`
	LastSyncAt            *time.Time `json:"last_sync_at,omitempty"`
}

// HubspotMetrics are raw CRM metrics for one customer.
type HubspotMetrics struct {
	LifecycleStage string     `json:"lifecycle_stage,omitempty"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	OpenDeals      int        `json:"open_deals"`
	WonDeals       int        `json:"won_deals"`
	LostDeals      int        `json:"lost_deals"`
}

// ScoreFactor is one named contribution to a composite score, kept for
// explainability.
type ScoreFactor struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// ProductCount returns the number of distinct product enrollments.
func (p *CustomerProfile) ProductCount() int {
	return len(p.ProductUsage)
}

// AverageFeedbackRating returns the mean rating across all feedback
// entries. The second return is false when no feedback exists.
func (p *CustomerProfile) AverageFeedbackRating() (float64, bool) {
	if len(p.FeedbackEntries) == 0 {
		return 0, false
	}
	sum := 0
	for _, f := range p.FeedbackEntries {
		sum += f.Rating
	}
	return float64(sum) / float64(len(p.FeedbackEntries)), true
}

// RecentFeedback returns up to max feedback entries dated within the
// window before now, preserving the most-recent-first ordering of
// FeedbackEntries. A max of 0 means no limit.
func (p *CustomerProfile) RecentFeedback(now time.Time, window time.Duration, max int) []FeedbackEntry {
	cutoff := now.Add(-window)
	var recent []FeedbackEntry
	for _, f := range p.FeedbackEntries {
		if f.Date.Before(cutoff) {
			continue
		}
		recent = append(recent, f)
		if max > 0 && len(recent) == max {
			break
		}
	}
	return recent
}

// DaysSinceActivity returns whole days since the last recorded activity.
// The second return is false when no activity timestamp exists.
func (p *CustomerProfile) DaysSinceActivity(now time.Time) (float64, bool) {
	if p.LastActivityAt == nil {
		return 0, false
	}
	return now.Sub(*p.LastActivityAt).Hours() / 24, true
}
