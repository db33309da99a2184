package naukri

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
)

func page(details []map[string]any) []byte {
	b, _ := json.Marshal(map[string]any{
		"noOfJobs":   len(details),
		"jobDetails": details,
	})
	return b
}

func detail(title, jdURL string) map[string]any {
	return map[string]any{"title": title, "jdURL": jdURL}
}

func TestScrapeMapsJobDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNo") != "1" {
			w.Write(page(nil))
			return
		}
		w.Write(page([]map[string]any{{
			"title":         "Golang Developer",
			"jdURL":         "/job-listings-golang-developer-1",
			"companyName":   "Acme India",
			"tagsAndSkills": "go, docker ,kubernetes",
			"createdDate":   1765344000000,
			"mode":          "hybrid",
			"placeholders": []map[string]any{
				{"type": "location", "label": "Bengaluru"},
				{"type": "experience", "label": "5-8 Yrs"},
			},
			"ambitionBoxData": map[string]any{"AggregateRating": "4.2", "ReviewsCount": 310},
			"vacancy":         3,
		}}))
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	jobs, err := s.Scrape(context.Background(), &domain.ScrapeRequest{
		SearchTerm:    "golang",
		ResultsWanted: 10,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "Golang Developer", job.Title)
	assert.Equal(t, srv.URL+"/job-listings-golang-developer-1", job.JobURL)
	assert.Equal(t, "Acme India", job.CompanyName)
	assert.Equal(t, []string{"go", "docker", "kubernetes"}, job.Skills)
	require.NotNil(t, job.Location)
	assert.Equal(t, "Bengaluru", job.Location.City)
	assert.Equal(t, "India", job.Location.Country)
	assert.Equal(t, "5-8 Yrs", job.ExperienceRange)
	assert.Equal(t, 4.2, job.CompanyRating)
	assert.Equal(t, 310, job.CompanyReviewsCount)
	assert.Equal(t, 3, job.VacancyCount)
	assert.Equal(t, "hybrid", job.WorkFromHomeType)
}

func TestScrapeSmallOffsetSkipsWithinPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNo") != "1" {
			w.Write(page(nil))
			return
		}
		w.Write(page([]map[string]any{
			detail("One", "/j1"),
			detail("Two", "/j2"),
			detail("Three", "/j3"),
		}))
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	jobs, err := s.Scrape(context.Background(), &domain.ScrapeRequest{
		SearchTerm:    "golang",
		ResultsWanted: 5,
		Offset:        2,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Three", jobs[0].Title)
}

func TestScrapeOffsetBeyondResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNo") != "1" {
			w.Write(page(nil))
			return
		}
		w.Write(page([]map[string]any{detail("Only", "/j1")}))
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	jobs, err := s.Scrape(context.Background(), &domain.ScrapeRequest{
		SearchTerm:    "golang",
		ResultsWanted: 5,
		Offset:        4,
	})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
