package ziprecruiter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/domain"
	"jobscout/internal/logx"
	"jobscout/internal/region"
)

func testRequest(n int) *domain.ScrapeRequest {
	usa, _ := region.Resolve("usa")
	return &domain.ScrapeRequest{
		SearchTerm:        "go engineer",
		ResultsWanted:     n,
		Country:           usa,
		DescriptionFormat: domain.FormatPlain,
	}
}

func page(jobs []map[string]any, continueFrom string) []byte {
	b, _ := json.Marshal(map[string]any{
		"jobs":          jobs,
		"continue_from": continueFrom,
	})
	return b
}

func TestScrapePaginatesAndDedups(t *testing.T) {
	page1 := page([]map[string]any{
		{
			"name":    "Go Engineer",
			"job_url": "https://zip.example/job/1?tracking=abc",
			"hiring_company": map[string]any{"name": "Acme"},
			"location":       "Austin, TX",
			"employment_type": "full_time",
			"posted_time":     "2026-08-10T12:00:00Z",
			"compensation_interval": "yearly",
			"compensation_min":      120000.0,
			"compensation_max":      150000.0,
			"compensation_currency": "USD",
		},
		{"name": "Platform Engineer", "job_url": "https://zip.example/job/2"},
	}, "tok-1")
	page2 := page([]map[string]any{
		// same job as page 1 after the tracking query is stripped
		{"name": "Go Engineer", "job_url": "https://zip.example/job/1?tracking=xyz"},
		{"name": "SRE", "job_url": "https://zip.example/job/3"},
	}, "")

	var gotContinue []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jobs-app/event":
			w.WriteHeader(http.StatusOK)
		case "/jobs-app/jobs":
			cf := r.URL.Query().Get("continue_from")
			gotContinue = append(gotContinue, cf)
			if cf == "" {
				w.Write(page1)
			} else {
				w.Write(page2)
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	jobs, err := s.Scrape(context.Background(), testRequest(10))
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, []string{"", "tok-1"}, gotContinue)

	first := jobs[0]
	assert.Equal(t, "Go Engineer", first.Title)
	assert.Equal(t, "https://zip.example/job/1", first.JobURL)
	assert.Equal(t, "Acme", first.CompanyName)
	require.NotNil(t, first.Location)
	assert.Equal(t, "Austin", first.Location.City)
	assert.Equal(t, "TX", first.Location.State)
	assert.Equal(t, []domain.JobType{domain.JobTypeFullTime}, first.JobType)
	assert.Equal(t, "2026-08-10", first.DatePosted)
	require.NotNil(t, first.Compensation)
	assert.Equal(t, domain.IntervalYearly, first.Compensation.Interval)
	assert.Equal(t, 120000.0, *first.Compensation.MinAmount)
}

func TestScrapeTruncatesToResultsWanted(t *testing.T) {
	many := make([]map[string]any, 0, 5)
	for _, u := range []string{"a", "b", "c", "d", "e"} {
		many = append(many, map[string]any{"name": "Job " + u, "job_url": "https://zip.example/job/" + u})
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/jobs-app/jobs" {
			w.Write(page(many, ""))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	jobs, err := s.Scrape(context.Background(), testRequest(2))
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestScrapeErrorPageKeepsEarlierResults(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs-app/jobs" {
			w.WriteHeader(http.StatusOK)
			return
		}
		calls++
		if calls == 1 {
			w.Write(page([]map[string]any{
				{"name": "First", "job_url": "https://zip.example/job/1"},
			}, "tok"))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	jobs, err := s.Scrape(context.Background(), testRequest(10))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "First", jobs[0].Title)
}

func TestScrapeOffset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs-app/jobs" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write(page([]map[string]any{
			{"name": "One", "job_url": "https://zip.example/job/1"},
			{"name": "Two", "job_url": "https://zip.example/job/2"},
			{"name": "Three", "job_url": "https://zip.example/job/3"},
		}, ""))
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	req := testRequest(5)
	req.Offset = 2
	jobs, err := s.Scrape(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Three", jobs[0].Title)
}
