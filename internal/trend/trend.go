// Package trend computes direction and confidence for metric time series.
package trend

import (
	"math"
	"time"

	"github.com/meridian-systems/accountpulse/internal/model"
)

// Direction classifies how a series is moving.
type Direction string

// Trend directions.
const (
	Increasing       Direction = "increasing"
	Decreasing       Direction = "decreasing"
	Stable           Direction = "stable"
	InsufficientData Direction = "insufficient_data"
)

// changeThreshold is the percentage change beyond which a series stops
// being stable.
const changeThreshold = 5.0

// Trend is the result of analyzing one series.
type Trend struct {
	Direction  Direction `json:"direction"`
	ChangePct  float64   `json:"change_pct"`
	Confidence float64   `json:"confidence"` // 0-100
}

// Analyze computes the trend of an ordered numeric series. With window
// > 0 only the most recent window points are considered. The change is
// measured between the endpoints; direction is increasing above +5%,
// decreasing below -5%, stable otherwise. Confidence grows with the
// magnitude of the change and caps at 100. Fewer than two points yield
// insufficient_data with zero confidence.
func Analyze(series []float64, window int) Trend {
	if window > 1 && window < len(series) {
		series = series[len(series)-window:]
	}
	if len(series) < 2 {
		return Trend{Direction: InsufficientData}
	}

	first, last := series[0], series[len(series)-1]

	var change float64
	switch {
	case first != 0:
		change = (last - first) / math.Abs(first) * 100
	case last != 0:
		change = math.Copysign(100, last)
	}

	dir := Stable
	switch {
	case change > changeThreshold:
		dir = Increasing
	case change < -changeThreshold:
		dir = Decreasing
	}

	return Trend{
		Direction:  dir,
		ChangePct:  math.Round(change*10) / 10,
		Confidence: math.Min(100, math.Abs(change)*2),
	}
}

// HealthTrend analyzes the profile's health score history over the
// given recent window (0 = whole history).
func HealthTrend(p *model.CustomerProfile, window int) Trend {
	series := make([]float64, len(p.HealthScoreHistory))
	for i, h := range p.HealthScoreHistory {
		series[i] = h.Score
	}
	return Analyze(series, window)
}

// EngagementTrend analyzes an engagement proxy derived from integration
// sync recency and ticket load, compared against a neutral baseline of
// 50. Sync freshness standing in for engagement is a known modeling
// shortcut, kept for parity with the established scoring behavior.
func EngagementTrend(p *model.CustomerProfile, now time.Time) Trend {
	proxy, ok := engagementProxy(p, now)
	if !ok {
		return Trend{Direction: InsufficientData}
	}
	return Analyze([]float64{50, proxy}, 0)
}

// engagementProxy scores current engagement 0-100 from sync recency and
// open/urgent ticket pressure. Returns false without integration data.
func engagementProxy(p *model.CustomerProfile, now time.Time) (float64, bool) {
	if p.Jira == nil && p.Zendesk == nil {
		return 0, false
	}

	proxy := 50.0

	var lastSync *time.Time
	if p.Jira != nil && p.Jira.LastSyncAt != nil {
		lastSync = p.Jira.LastSyncAt
	}
	if p.Zendesk != nil && p.Zendesk.LastSyncAt != nil {
		if lastSync == nil || p.Zendesk.LastSyncAt.After(*lastSync) {
			lastSync = p.Zendesk.LastSyncAt
		}
	}
	if lastSync != nil {
		days := now.Sub(*lastSync).Hours() / 24
		switch {
		case days <= 7:
			proxy += 20
		case days <= 30:
			proxy += 10
		default:
			proxy -= 10
		}
	}

	open := 0
	if p.Jira != nil {
		open += p.Jira.OpenIssues
	}
	if p.Zendesk != nil {
		open += p.Zendesk.OpenTickets
		if p.Zendesk.UrgentTickets > 0 {
			proxy -= 10
		}
	}
	switch {
	case open == 0:
		proxy += 15
	case open <= 5:
		proxy += 5
	case open > 10:
		proxy -= 15
	}

	return math.Max(0, math.Min(100, proxy)), true
}

// SatisfactionTrend compares the mean rating of the more recent half of
// the 5 most recent feedback entries against the older half. Feedback
// entries are ordered most recent first: index 0 is the newest.
func SatisfactionTrend(p *model.CustomerProfile) Trend {
	ratings := p.FeedbackEntries
	if len(ratings) > 5 {
		ratings = ratings[:5]
	}
	if len(ratings) < 2 {
		return Trend{Direction: InsufficientData}
	}

	mid := len(ratings) / 2
	recentMean := meanRating(ratings[:mid])
	olderMean := meanRating(ratings[mid:])

	return Analyze([]float64{olderMean, recentMean}, 0)
}

func meanRating(entries []model.FeedbackEntry) float64 {
	sum := 0
	for _, f := range entries {
		sum += f.Rating
	}
	return float64(sum) / float64(len(entries))
}
