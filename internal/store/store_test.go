package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/aggregate"
)

func fptr(v float64) *float64 { return &v }

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveJobsRoundtrip(t *testing.T) {
	db := openTestDB(t)

	jobs := []aggregate.FlatJob{
		{
			Site:       "indeed",
			Title:      "Go Engineer",
			JobURL:     "https://indeed.example/job/1",
			City:       "Austin",
			Country:    "USA",
			DatePosted: "2026-08-10",
			JobType:    []string{"fulltime"},
			Interval:   "yearly",
			MinAmount:  fptr(120000),
			Currency:   "USD",
		},
		{
			Site:   "bayt",
			Title:  "DevOps Engineer",
			JobURL: "https://bayt.example/job/2",
		},
	}

	added, err := db.SaveJobs(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	var title, jobType string
	var minAmount *float64
	err = db.Pool.QueryRowContext(context.Background(),
		`SELECT title, job_type, min_amount FROM jobs WHERE site = 'indeed'`,
	).Scan(&title, &jobType, &minAmount)
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", title)
	assert.Equal(t, "fulltime", jobType)
	require.NotNil(t, minAmount)
	assert.Equal(t, 120000.0, *minAmount)
}

func TestSaveJobsIgnoresDuplicates(t *testing.T) {
	db := openTestDB(t)

	job := aggregate.FlatJob{Site: "seek", Title: "Engineer", JobURL: "https://seek.example/job/1"}

	added, err := db.SaveJobs(context.Background(), []aggregate.FlatJob{job})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	added, err = db.SaveJobs(context.Background(), []aggregate.FlatJob{job})
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	var count int
	require.NoError(t, db.Pool.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSameURLOnDifferentSitesIsKept(t *testing.T) {
	db := openTestDB(t)

	added, err := db.SaveJobs(context.Background(), []aggregate.FlatJob{
		{Site: "indeed", Title: "A", JobURL: "https://example.com/j"},
		{Site: "google", Title: "A", JobURL: "https://example.com/j"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
}
