// Package server exposes the aggregator over HTTP for tool callers.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobscout/internal/aggregate"
)

// RunFunc matches aggregate.Run; tests substitute a fake.
type RunFunc func(ctx context.Context, p aggregate.Params, opts ...aggregate.Option) ([]aggregate.FlatJob, error)

type Deps struct {
	Run     RunFunc
	Timeout time.Duration
}

// NewMux wires the routes. Callers attach the mux to their own http.Server.
func NewMux(d Deps) *http.ServeMux {
	if d.Run == nil {
		d.Run = aggregate.Run
	}
	if d.Timeout <= 0 {
		d.Timeout = 3 * time.Minute
	}

	mux := http.NewServeMux()

	sh := scrapeHandler{deps: d}
	mux.HandleFunc("/scrape", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))
	mux.HandleFunc("/healthz", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"ok": true})
		},
	}))

	return mux
}

type scrapeHandler struct {
	deps Deps
}

type scrapeRequest struct {
	Sites             []string `json:"site_names,omitempty"`
	SearchTerm        string   `json:"search_term,omitempty"`
	GoogleSearchTerm  string   `json:"google_search_term,omitempty"`
	Location          string   `json:"location,omitempty"`
	Distance          int      `json:"distance,omitempty"`
	IsRemote          bool     `json:"is_remote,omitempty"`
	JobType           string   `json:"job_type,omitempty"`
	ResultsWanted     int      `json:"results_wanted,omitempty"`
	Country           string   `json:"country,omitempty"`
	DescriptionFormat string   `json:"description_format,omitempty"`
	HoursOld          int      `json:"hours_old,omitempty"`
}

type scrapeResponse struct {
	Message string              `json:"message"`
	Count   int                 `json:"count"`
	Jobs    []aggregate.FlatJob `json:"jobs"`
}

func (h scrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deps.Timeout)
	defer cancel()

	jobs, err := h.deps.Run(ctx, aggregate.Params{
		Sites:             req.Sites,
		SearchTerm:        req.SearchTerm,
		GoogleSearchTerm:  req.GoogleSearchTerm,
		Location:          req.Location,
		Distance:          req.Distance,
		IsRemote:          req.IsRemote,
		JobType:           req.JobType,
		ResultsWanted:     req.ResultsWanted,
		Country:           req.Country,
		DescriptionFormat: req.DescriptionFormat,
		HoursOld:          req.HoursOld,
	})
	if err != nil {
		// config errors only; scrape failures degrade to fewer jobs
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if jobs == nil {
		jobs = []aggregate.FlatJob{}
	}
	writeJSON(w, scrapeResponse{
		Message: summarize(jobs, req.SearchTerm),
		Count:   len(jobs),
		Jobs:    jobs,
	})
}

// summarize builds the human-readable run report. An empty result set says
// so explicitly rather than returning a bare empty list.
func summarize(jobs []aggregate.FlatJob, term string) string {
	if len(jobs) == 0 {
		if term != "" {
			return fmt.Sprintf("no jobs found for %q", term)
		}
		return "no jobs found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d jobs:", len(jobs))
	for _, j := range jobs {
		fmt.Fprintf(&b, "\n- [%s] %s", j.Site, j.Title)
		if j.CompanyName != "" {
			fmt.Fprintf(&b, " at %s", j.CompanyName)
		}
		if loc := locationLine(j); loc != "" {
			fmt.Fprintf(&b, " (%s)", loc)
		}
	}
	return b.String()
}

func locationLine(j aggregate.FlatJob) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{j.City, j.State, j.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
