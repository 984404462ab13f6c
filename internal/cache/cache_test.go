package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/meridian-systems/accountpulse/internal/model"
	"github.com/meridian-systems/accountpulse/internal/portfolio"
)

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewWithClient(client, 30*time.Minute, time.Hour)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func testEvaluation(customerID string) portfolio.Evaluation {
	now := time.Now().UTC().Truncate(time.Second)
	p := &model.CustomerProfile{
		ID:                customerID,
		ARR:               60000,
		HealthScore:       6.5,
		ProductUsage:      []model.Product{{Name: "analytics"}},
		RenewalLikelihood: model.LikelihoodMedium,
		LastActivityAt:    &now,
	}
	return portfolio.NewEvaluator().Evaluate(p, now)
}

func TestEvaluationRoundTrip(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	_, hit, err := c.GetEvaluation(ctx, "cust-1")
	require.NoError(t, err)
	require.False(t, hit)

	ev := testEvaluation("cust-1")
	require.NoError(t, c.SetEvaluation(ctx, ev))

	got, hit, err := c.GetEvaluation(ctx, "cust-1")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, ev.Health.Score, got.Health.Score)
	require.Equal(t, ev.Risk.Score, got.Risk.Score)
	require.Equal(t, len(ev.Alerts), len(got.Alerts))
}

func TestEvaluationExpires(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetEvaluation(ctx, testEvaluation("cust-1")))

	mr.FastForward(31 * time.Minute)

	_, hit, err := c.GetEvaluation(ctx, "cust-1")
	require.NoError(t, err)
	require.False(t, hit)
}

func TestSummaryRoundTripAndTTL(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	evals := []portfolio.Evaluation{testEvaluation("cust-1"), testEvaluation("cust-2")}
	s := portfolio.Summarize(evals)
	require.NoError(t, c.SetSummary(ctx, s))

	got, hit, err := c.GetSummary(ctx)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, 2, got.Customers)

	// The summary outlives a per-customer evaluation.
	mr.FastForward(45 * time.Minute)
	_, hit, err = c.GetSummary(ctx)
	require.NoError(t, err)
	require.True(t, hit)

	mr.FastForward(20 * time.Minute)
	_, hit, err = c.GetSummary(ctx)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestInvalidateCustomer(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetEvaluation(ctx, testEvaluation("cust-1")))
	require.NoError(t, c.SetEvaluation(ctx, testEvaluation("cust-2")))
	require.NoError(t, c.SetSummary(ctx, portfolio.Summary{Customers: 2}))

	require.NoError(t, c.InvalidateCustomer(ctx, "cust-1"))

	_, hit, err := c.GetEvaluation(ctx, "cust-1")
	require.NoError(t, err)
	require.False(t, hit)

	// Other customers stay cached; the summary is dropped.
	_, hit, err = c.GetEvaluation(ctx, "cust-2")
	require.NoError(t, err)
	require.True(t, hit)

	_, hit, err = c.GetSummary(ctx)
	require.NoError(t, err)
	require.False(t, hit)
}
