package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridian-systems/accountpulse/internal/model"
	"github.com/meridian-systems/accountpulse/internal/portfolio"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testProfile() *model.CustomerProfile {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.CustomerProfile{
		ID:          "cust-1",
		Name:        "Acme Corp",
		ARR:         85000,
		HealthScore: 7.2,
		ProductUsage: []model.Product{
			{Name: "analytics"}, {Name: "alerts"},
		},
		RenewalLikelihood: model.LikelihoodHigh,
		LastActivityAt:    &now,
	}
}

func TestOpen_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "accountpulse.db")

	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Parent directory was created and the file exists.
	_, err = os.Stat(path)
	require.NoError(t, err)

	// On-disk databases run in WAL mode.
	var mode string
	require.NoError(t, db.Conn().QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)

	require.NoError(t, db.UpsertCustomer(testProfile()))
	got, err := db.GetCustomer("cust-1")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestUpsertAndGetCustomer(t *testing.T) {
	db := openTestDB(t)
	p := testProfile()

	require.NoError(t, db.UpsertCustomer(p))

	got, err := db.GetCustomer("cust-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, p.Name, got.Name)
	require.Equal(t, p.ARR, got.ARR)
	require.Len(t, got.ProductUsage, 2)

	// Upsert replaces in place.
	p.ARR = 90000
	require.NoError(t, db.UpsertCustomer(p))
	got, err = db.GetCustomer("cust-1")
	require.NoError(t, err)
	require.Equal(t, 90000.0, got.ARR)

	missing, err := db.GetCustomer("nobody")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUpsertCustomer_RejectsInvalid(t *testing.T) {
	db := openTestDB(t)
	require.Error(t, db.UpsertCustomer(&model.CustomerProfile{ID: "bad", ARR: -1}))
}

func TestListCustomers(t *testing.T) {
	db := openTestDB(t)

	for _, id := range []string{"cust-b", "cust-a", "cust-c"} {
		p := testProfile()
		p.ID = id
		require.NoError(t, db.UpsertCustomer(p))
	}

	profiles, err := db.ListCustomers()
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	require.Equal(t, "cust-a", profiles[0].ID)
	require.Equal(t, "cust-c", profiles[2].ID)
}

func TestAppendHealthPoint_OnlyOnChange(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.UpsertCustomer(testProfile()))
	now := time.Now()

	written, err := db.AppendHealthPoint("cust-1", now, 7.2)
	require.NoError(t, err)
	require.True(t, written)

	// Same score again: no new row.
	written, err = db.AppendHealthPoint("cust-1", now.Add(time.Hour), 7.2)
	require.NoError(t, err)
	require.False(t, written)

	written, err = db.AppendHealthPoint("cust-1", now.Add(2*time.Hour), 6.8)
	require.NoError(t, err)
	require.True(t, written)

	points, err := db.HealthHistory("cust-1", 0)
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.Equal(t, 7.2, points[0].Score)
	require.Equal(t, 6.8, points[1].Score)
}

func TestHealthHistory_LimitKeepsNewest(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.UpsertCustomer(testProfile()))
	now := time.Now()

	for i, score := range []float64{5.0, 6.0, 7.0, 8.0} {
		_, err := db.AppendHealthPoint("cust-1", now.Add(time.Duration(i)*time.Hour), score)
		require.NoError(t, err)
	}

	points, err := db.HealthHistory("cust-1", 2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	// Newest two, still chronological.
	require.Equal(t, 7.0, points[0].Score)
	require.Equal(t, 8.0, points[1].Score)
}

func TestSaveAndLoadEvaluation(t *testing.T) {
	db := openTestDB(t)
	p := testProfile()
	require.NoError(t, db.UpsertCustomer(p))

	now := time.Now().UTC().Truncate(time.Second)
	ev := portfolio.NewEvaluator().Evaluate(p, now)

	id, err := db.SaveEvaluation(ev)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := db.LatestEvaluation("cust-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, id, rec.ID)
	require.Equal(t, ev.Health.Score, rec.HealthScore)
	require.Equal(t, ev.Risk.Score, rec.RiskScore)
	require.Equal(t, string(ev.Behavior.Category), rec.BehaviorCategory)
	require.Equal(t, ev.Health.Score, rec.Evaluation.Health.Score)

	byID, err := db.GetEvaluation(id)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, rec.CustomerID, byID.CustomerID)

	missing, err := db.LatestEvaluation("nobody")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestListEvaluations_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	p := testProfile()
	require.NoError(t, db.UpsertCustomer(p))

	base := time.Now().UTC().Truncate(time.Second)
	evaluator := portfolio.NewEvaluator()
	for i := 0; i < 3; i++ {
		ev := evaluator.Evaluate(p, base.Add(time.Duration(i)*time.Hour))
		_, err := db.SaveEvaluation(ev)
		require.NoError(t, err)
	}

	records, err := db.ListEvaluations("cust-1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.True(t, records[0].ComputedAt.After(records[1].ComputedAt))
}

func TestDeleteCustomer_RemovesHistory(t *testing.T) {
	db := openTestDB(t)
	p := testProfile()
	require.NoError(t, db.UpsertCustomer(p))

	_, err := db.AppendHealthPoint("cust-1", time.Now(), 7.2)
	require.NoError(t, err)
	_, err = db.SaveEvaluation(portfolio.NewEvaluator().Evaluate(p, time.Now()))
	require.NoError(t, err)

	require.NoError(t, db.DeleteCustomer("cust-1"))

	got, err := db.GetCustomer("cust-1")
	require.NoError(t, err)
	require.Nil(t, got)

	points, err := db.HealthHistory("cust-1", 0)
	require.NoError(t, err)
	require.Empty(t, points)

	rec, err := db.LatestEvaluation("cust-1")
	require.NoError(t, err)
	require.Nil(t, rec)
}
