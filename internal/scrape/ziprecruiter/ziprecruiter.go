// Package ziprecruiter scrapes the ZipRecruiter jobs-app API. Pagination is
// an opaque continuation token carried between pages.
package ziprecruiter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobscout/internal/domain"
	"jobscout/internal/logx"
	"jobscout/internal/normalize"
	"jobscout/internal/scrape/util"
	"jobscout/internal/textconv"
)

const pageSize = 20

type Scraper struct {
	limiter *util.HostLimiter
	log     *logx.Logger
	baseURL string
}

func New(limiter *util.HostLimiter, log *logx.Logger) *Scraper {
	return &Scraper{
		limiter: limiter,
		log:     log,
		baseURL: "https://api.ziprecruiter.com",
	}
}

func (s *Scraper) Name() string { return string(domain.SiteZipRecruiter) }

type searchResponse struct {
	Jobs         []posting `json:"jobs"`
	ContinueFrom string    `json:"continue_from"`
}

type posting struct {
	Title          string `json:"name"`
	JobURL         string `json:"job_url"`
	Description    string `json:"job_description"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	PostedTime     string `json:"posted_time"`
	ListingKey     string `json:"listing_key"`
	HiringCompany  struct {
		Name string `json:"name"`
	} `json:"hiring_company"`
	CompensationInterval string   `json:"compensation_interval"`
	CompensationMin      *float64 `json:"compensation_min"`
	CompensationMax      *float64 `json:"compensation_max"`
	CompensationCurrency string   `json:"compensation_currency"`
}

func (s *Scraper) Scrape(ctx context.Context, req *domain.ScrapeRequest) ([]domain.JobPost, error) {
	hc := util.NewClient(req.Proxy, 20*time.Second)

	// The jobs-app API wants an event ping first to mint session cookies.
	s.bootstrap(ctx, hc)

	seen := map[string]bool{}
	var out []domain.JobPost
	continueFrom := ""

	maxPages := req.ResultsWanted/pageSize + 2
	for page := 0; page < maxPages && len(out) < req.ResultsWanted+req.Offset; page++ {
		if page > 0 {
			// fixed politeness delay between pages, same as the site's app
			if err := util.Pause(ctx, 3*time.Second); err != nil {
				break
			}
		}

		res, err := s.fetchPage(ctx, hc, req, continueFrom)
		if err != nil {
			s.log.Warnf("[zip_recruiter] page %d: %v", page+1, err)
			break
		}
		if len(res.Jobs) == 0 {
			break
		}

		for _, p := range res.Jobs {
			job, ok := s.mapPosting(p, req)
			if !ok || seen[job.JobURL] {
				continue
			}
			seen[job.JobURL] = true
			out = append(out, job)
		}

		continueFrom = res.ContinueFrom
		if continueFrom == "" {
			break
		}
	}

	if req.Offset > 0 {
		if req.Offset >= len(out) {
			return nil, nil
		}
		out = out[req.Offset:]
	}
	if len(out) > req.ResultsWanted {
		out = out[:req.ResultsWanted]
	}
	s.log.Infof("[zip_recruiter] found %d jobs", len(out))
	return out, nil
}

func (s *Scraper) bootstrap(ctx context.Context, hc *http.Client) {
	u := s.baseURL + "/jobs-app/event"
	body := strings.NewReader(`{"event_type":"session_start"}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return
	}
	s.setHeaders(req)
	res, err := hc.Do(req)
	if err != nil {
		return
	}
	res.Body.Close()
}

func (s *Scraper) fetchPage(ctx context.Context, hc *http.Client, req *domain.ScrapeRequest, continueFrom string) (*searchResponse, error) {
	q := url.Values{}
	q.Set("search", req.SearchTerm)
	q.Set("location", req.Location)
	if req.Distance > 0 {
		q.Set("radius", fmt.Sprint(req.Distance))
	}
	if req.HoursOld > 0 {
		q.Set("days", fmt.Sprint((req.HoursOld+23)/24))
	}
	if req.IsRemote {
		q.Set("refine_by_location_type", "only_remote")
	}
	if req.JobType != nil {
		q.Set("refine_by_employment", "employment_type:employment_type:"+strings.ToUpper(string(*req.JobType)))
	}
	if continueFrom != "" {
		q.Set("continue_from", continueFrom)
	}

	u := s.baseURL + "/jobs-app/jobs?" + q.Encode()
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	s.setHeaders(hreq)

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}
	res, err := hc.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("zip_recruiter get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("zip_recruiter rate limited (429)")
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("zip_recruiter status %d", res.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("zip_recruiter decode: %w", err)
	}
	return &sr, nil
}

func (s *Scraper) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Job Search/87.0 (iPhone; CPU iOS 16_6_1 like Mac OS X)")
	req.Header.Set("Accept", "application/json")
}

func (s *Scraper) mapPosting(p posting, req *domain.ScrapeRequest) (domain.JobPost, bool) {
	title := util.CleanText(p.Title)
	jobURL := strings.TrimSpace(p.JobURL)
	if title == "" || jobURL == "" {
		return domain.JobPost{}, false
	}
	// strip tracking params so the URL stays a stable dedup key
	if u, err := url.Parse(jobURL); err == nil {
		u.RawQuery = ""
		jobURL = u.String()
	}

	job := domain.JobPost{
		Title:       title,
		JobURL:      jobURL,
		CompanyName: util.CleanText(p.HiringCompany.Name),
		Location:    util.ParseLocation(p.Location),
	}

	if p.Description != "" {
		job.Description = textconv.Render(p.Description, req.DescriptionFormat)
		job.Emails = normalize.ExtractEmails(job.Description)
	}
	if jt, ok := normalize.JobTypeFromString(p.EmploymentType); ok {
		job.JobType = []domain.JobType{jt}
	}
	if t, err := time.Parse(time.RFC3339, p.PostedTime); err == nil {
		job.DatePosted = t.Format("2006-01-02")
	}
	if iv, ok := normalize.IntervalFromString(p.CompensationInterval); ok {
		job.Compensation = &domain.Compensation{
			Interval:  iv,
			MinAmount: p.CompensationMin,
			MaxAmount: p.CompensationMax,
			Currency:  util.FirstNonEmpty(p.CompensationCurrency, "USD"),
		}
	}
	remote := normalize.IsRemote(title, job.Description, p.Location)
	job.IsRemote = &remote

	return job, true
}
