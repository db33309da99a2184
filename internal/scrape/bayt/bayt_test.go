package bayt

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/domain"
	"jobscout/internal/logx"
)

const listingHTML = `<html><body><ul>
<li data-js-job>
  <h2><a href="/en/job/devops-engineer-123/">DevOps  Engineer</a></h2>
  <div class="t-nowrap p10l"><span>Gulf Tech</span></div>
  <div class="t-mute t-small">Dubai</div>
</li>
<li data-js-job>
  <h2><a href="https://www.bayt.example/en/job/remote-go-dev-456/">Remote Go Developer</a></h2>
  <b class="jb-company">Acme FZ</b>
  <div class="t-mute t-small">Riyadh</div>
</li>
<li data-js-job>
  <h2>No link card</h2>
</li>
</ul></body></html>`

func TestScrapeParsesCards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, listingHTML)
			return
		}
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	jobs, err := s.Scrape(context.Background(), &domain.ScrapeRequest{
		SearchTerm:    "go developer",
		ResultsWanted: 10,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	first := jobs[0]
	assert.Equal(t, "DevOps Engineer", first.Title)
	assert.Equal(t, srv.URL+"/en/job/devops-engineer-123/", first.JobURL)
	assert.Equal(t, "Gulf Tech", first.CompanyName)
	require.NotNil(t, first.Location)
	assert.Equal(t, "Dubai", first.Location.City)
	assert.Equal(t, "Worldwide", first.Location.Country)
	require.NotNil(t, first.IsRemote)
	assert.False(t, *first.IsRemote)

	second := jobs[1]
	assert.Equal(t, "Remote Go Developer", second.Title)
	assert.Equal(t, "https://www.bayt.example/en/job/remote-go-dev-456/", second.JobURL)
	assert.Equal(t, "Acme FZ", second.CompanyName)
	require.NotNil(t, second.IsRemote)
	assert.True(t, *second.IsRemote)
}

func TestScrapeSlugsSearchTerm(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	_, err := s.Scrape(context.Background(), &domain.ScrapeRequest{
		SearchTerm:    "senior go developer",
		ResultsWanted: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "/en/international/jobs/senior-go-developer-jobs/", gotPath)
}

func TestScrapeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := New(nil, logx.New(logx.LevelError))
	s.baseURL = srv.URL

	jobs, err := s.Scrape(context.Background(), &domain.ScrapeRequest{ResultsWanted: 5})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
