package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/aggregate"
)

func fakeRun(jobs []aggregate.FlatJob, err error) RunFunc {
	return func(context.Context, aggregate.Params, ...aggregate.Option) ([]aggregate.FlatJob, error) {
		return jobs, err
	}
}

func postScrape(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestScrapeReturnsSummary(t *testing.T) {
	jobs := []aggregate.FlatJob{
		{Site: "indeed", Title: "Go Engineer", CompanyName: "Acme", City: "Austin", State: "TX", JobURL: "u1"},
		{Site: "seek", Title: "Platform Engineer", JobURL: "u2"},
	}
	mux := NewMux(Deps{Run: fakeRun(jobs, nil)})

	rec := postScrape(t, mux, `{"search_term":"go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Jobs, 2)
	assert.Contains(t, resp.Message, "found 2 jobs")
	assert.Contains(t, resp.Message, "[indeed] Go Engineer at Acme (Austin, TX)")
	assert.Contains(t, resp.Message, "[seek] Platform Engineer")
}

func TestScrapeEmptyResultIsExplicit(t *testing.T) {
	mux := NewMux(Deps{Run: fakeRun(nil, nil)})

	rec := postScrape(t, mux, `{"search_term":"underwater basket weaving"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Jobs)
	assert.Equal(t, `no jobs found for "underwater basket weaving"`, resp.Message)
}

func TestScrapeConfigErrorIs400(t *testing.T) {
	mux := NewMux(Deps{Run: fakeRun(nil, fmt.Errorf(`unknown site "monster"`))})

	rec := postScrape(t, mux, `{"site_names":["monster"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown site")
}

func TestScrapeBadBody(t *testing.T) {
	mux := NewMux(Deps{Run: fakeRun(nil, nil)})
	rec := postScrape(t, mux, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScrapeMethodNotAllowed(t *testing.T) {
	mux := NewMux(Deps{Run: fakeRun(nil, nil)})
	req := httptest.NewRequest(http.MethodGet, "/scrape", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	mux := NewMux(Deps{Run: fakeRun(nil, nil)})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
