package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-systems/accountpulse/internal/cache"
	"github.com/meridian-systems/accountpulse/internal/health"
	"github.com/meridian-systems/accountpulse/internal/model"
	"github.com/meridian-systems/accountpulse/internal/portfolio"
	"github.com/meridian-systems/accountpulse/internal/store"
	"github.com/meridian-systems/accountpulse/internal/trend"
)

// Handlers holds the engines and optional persistence behind the API.
// DB and Cache may be nil; customer endpoints answer 501 without a DB,
// and evaluation simply recomputes without a cache.
type Handlers struct {
	Evaluator   *portfolio.Evaluator
	DB          *store.DB
	Cache       *cache.Cache
	Concurrency int
	Version     string
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeProfile reads and validates a profile from the request body.
// It writes the error response itself and reports success.
func decodeProfile(w http.ResponseWriter, r *http.Request) (*model.CustomerProfile, bool) {
	var p model.CustomerProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return nil, false
	}
	if err := model.Validate(&p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &p, true
}

// Liveness answers the health check.
func (h *Handlers) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.Version,
	})
}

// ScoreHealth computes the 0-10 health score for a posted profile.
func (h *Handlers) ScoreHealth(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Evaluator.Health.Score(p, time.Now()))
}

// ScoreRisk computes the 0-100 churn risk for a posted profile.
func (h *Handlers) ScoreRisk(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Evaluator.Risk.Score(p, time.Now()))
}

// EstimateRenewal computes the renewal likelihood for a posted profile.
func (h *Handlers) EstimateRenewal(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, health.EstimateRenewal(p, time.Now()))
}

// ScoreBehavior computes the behavior score for a posted profile.
func (h *Handlers) ScoreBehavior(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Evaluator.Behavior.Score(p, time.Now()))
}

// trendsResponse bundles the three trend analyses.
type trendsResponse struct {
	Health       trend.Trend `json:"health"`
	Engagement   trend.Trend `json:"engagement"`
	Satisfaction trend.Trend `json:"satisfaction"`
}

// Trends analyzes health, engagement, and satisfaction trends for a
// posted profile. An optional ?window=N bounds the health series.
func (h *Handlers) Trends(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	window := 0
	if raw := r.URL.Query().Get("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "window must be a non-negative integer")
			return
		}
		window = n
	}

	now := time.Now()
	writeJSON(w, http.StatusOK, trendsResponse{
		Health:       trend.HealthTrend(p, window),
		Engagement:   trend.EngagementTrend(p, now),
		Satisfaction: trend.SatisfactionTrend(p),
	})
}

// Alerts runs the alert detectors against a posted profile.
func (h *Handlers) Alerts(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	alerts := h.Evaluator.Alerts.Generate(p, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"customer_id": p.ID,
		"count":       len(alerts),
		"alerts":      alerts,
	})
}

// Evaluate runs every engine against a posted profile.
func (h *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Evaluator.Evaluate(p, time.Now()))
}

// PortfolioSummary evaluates a posted list of profiles and returns the
// aggregate distributions with the per-customer evaluations.
func (h *Handlers) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	var profiles []*model.CustomerProfile
	if err := json.NewDecoder(r.Body).Decode(&profiles); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	for _, p := range profiles {
		if err := model.Validate(p); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	evals, err := h.Evaluator.EvaluateAll(r.Context(), profiles, time.Now(), h.Concurrency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary":     portfolio.Summarize(evals),
		"evaluations": evals,
	})
}

// StoredPortfolioSummary summarizes every stored customer, serving the
// cached summary while fresh. Customer upserts and deletes invalidate
// it, so a recompute follows any change made through the API.
func (h *Handlers) StoredPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	if h.Cache != nil {
		if s, hit, err := h.Cache.GetSummary(r.Context()); err == nil && hit {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	profiles, err := h.DB.ListCustomers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	evals, err := h.Evaluator.EvaluateAll(r.Context(), profiles, time.Now(), h.Concurrency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary := portfolio.Summarize(evals)
	if h.Cache != nil {
		_ = h.Cache.SetSummary(r.Context(), summary)
	}
	writeJSON(w, http.StatusOK, summary)
}

// requireDB guards the customer endpoints.
func (h *Handlers) requireDB(w http.ResponseWriter) bool {
	if h.DB == nil {
		writeError(w, http.StatusNotImplemented, "no store configured")
		return false
	}
	return true
}

// UpsertCustomer stores a profile under the URL id.
func (h *Handlers) UpsertCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if p.ID == "" {
		p.ID = id
	}
	if p.ID != id {
		writeError(w, http.StatusBadRequest, "profile id does not match URL")
		return
	}

	if err := h.DB.UpsertCustomer(p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if h.Cache != nil {
		_ = h.Cache.InvalidateCustomer(r.Context(), id)
	}
	writeJSON(w, http.StatusOK, p)
}

// GetCustomer returns a stored profile.
func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	p, err := h.DB.GetCustomer(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListCustomers returns every stored profile.
func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	profiles, err := h.DB.ListCustomers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profiles == nil {
		profiles = []*model.CustomerProfile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

// DeleteCustomer removes a stored profile and its history.
func (h *Handlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.DB.DeleteCustomer(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if h.Cache != nil {
		_ = h.Cache.InvalidateCustomer(r.Context(), id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// CustomerEvaluation returns the evaluation for a stored customer,
// serving from cache when fresh. A recompute is snapshotted and its
// health score appended to the stored history.
func (h *Handlers) CustomerEvaluation(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id := chi.URLParam(r, "id")

	if h.Cache != nil {
		if ev, hit, err := h.Cache.GetEvaluation(r.Context(), id); err == nil && hit {
			writeJSON(w, http.StatusOK, ev)
			return
		}
	}

	p, err := h.DB.GetCustomer(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}

	ev := h.Evaluator.Evaluate(p, time.Now())
	if _, err := h.DB.SaveEvaluation(ev); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := h.DB.AppendHealthPoint(id, ev.ComputedAt, ev.Health.Score); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if h.Cache != nil {
		_ = h.Cache.SetEvaluation(r.Context(), ev)
	}
	writeJSON(w, http.StatusOK, ev)
}

// CustomerHistory returns a customer's stored health history. An
// optional ?limit=N keeps only the newest N points.
func (h *Handlers) CustomerHistory(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id := chi.URLParam(r, "id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	points, err := h.DB.HealthHistory(id, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if points == nil {
		points = []store.HealthPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}
