// Package seek scrapes seek.com.au search pages. The job data lives in a
// JSON blob assigned to window.SEEK_REDUX_DATA inside the page; pagination
// is a page number.
package seek

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"jobscout/internal/domain"
	"jobscout/internal/logx"
	"jobscout/internal/normalize"
	"jobscout/internal/scrape/util"
)

const maxPages = 15

type Scraper struct {
	limiter *util.HostLimiter
	log     *logx.Logger
	baseURL string
}

func New(limiter *util.HostLimiter, log *logx.Logger) *Scraper {
	return &Scraper{
		limiter: limiter,
		log:     log,
		baseURL: "https://www.seek.com.au",
	}
}

func (s *Scraper) Name() string { return string(domain.SiteSeek) }

var reduxRe = regexp.MustCompile(`(?s)window\.SEEK_REDUX_DATA\s*=\s*(\{.*?\})\s*;\s*\n`)

type reduxData struct {
	Results struct {
		Results struct {
			Jobs []seekJob `json:"jobs"`
		} `json:"results"`
	} `json:"results"`
}

type seekJob struct {
	ID         json.Number `json:"id"`
	Title      string      `json:"title"`
	Teaser     string      `json:"teaser"`
	Advertiser struct {
		Description string `json:"description"`
	} `json:"advertiser"`
	Location    string `json:"location"`
	ListingDate string `json:"listingDate"`
	Salary      string `json:"salary"`
	WorkType    string `json:"workType"`
}

func (s *Scraper) Scrape(ctx context.Context, req *domain.ScrapeRequest) ([]domain.JobPost, error) {
	hc := util.NewClient(req.Proxy, 20*time.Second)

	seen := map[string]bool{}
	var out []domain.JobPost

	for page := 1; page <= maxPages && len(out) < req.ResultsWanted+req.Offset; page++ {
		if page > 1 {
			if err := util.Pause(ctx, time.Second); err != nil {
				break
			}
		}
		jobs, err := s.fetchPage(ctx, hc, req, page)
		if err != nil {
			s.log.Warnf("[seek] page %d: %v", page, err)
			break
		}
		if len(jobs) == 0 {
			break
		}
		for _, sj := range jobs {
			job, ok := s.mapJob(sj)
			if !ok || seen[job.JobURL] {
				continue
			}
			seen[job.JobURL] = true
			out = append(out, job)
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
	s.log.Infof("[seek] found %d jobs", len(out))
	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, hc *http.Client, req *domain.ScrapeRequest, page int) ([]seekJob, error) {
	q := url.Values{}
	q.Set("keywords", req.SearchTerm)
	if req.Location != "" {
		q.Set("where", req.Location)
	}
	if req.IsRemote {
		q.Set("workarrangement", "2") // fully remote facet
	}
	if req.HoursOld > 0 {
		q.Set("daterange", fmt.Sprint((req.HoursOld+23)/24))
	}
	q.Set("page", fmt.Sprint(page))

	u := s.baseURL + "/jobs?" + q.Encode()
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}
	res, err := hc.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("seek get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("seek status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	m := reduxRe.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("seek: redux blob not found")
	}
	var rd reduxData
	if err := json.Unmarshal(m[1], &rd); err != nil {
		return nil, fmt.Errorf("seek decode: %w", err)
	}
	return rd.Results.Results.Jobs, nil
}

func (s *Scraper) mapJob(sj seekJob) (domain.JobPost, bool) {
	title := util.CleanText(sj.Title)
	id := sj.ID.String()
	if title == "" || id == "" || id == "0" {
		return domain.JobPost{}, false
	}
	jobURL := fmt.Sprintf("%s/job/%s", s.baseURL, id)

	job := domain.JobPost{
		Title:       title,
		JobURL:      jobURL,
		CompanyName: util.CleanText(sj.Advertiser.Description),
		Description: util.CleanText(sj.Teaser),
	}
	if job.Description != "" {
		job.Emails = normalize.ExtractEmails(job.Description)
	}
	if loc := util.CleanText(sj.Location); loc != "" {
		job.Location = util.ParseLocation(loc)
		if job.Location.Country == "" {
			job.Location.Country = "Australia"
		}
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(sj.ListingDate)); err == nil {
		job.DatePosted = t.UTC().Format("2006-01-02")
	}
	if jt, ok := normalize.JobTypeFromString(sj.WorkType); ok {
		job.JobType = []domain.JobType{jt}
	}
	remote := normalize.IsRemote(title, sj.Teaser, sj.Location)
	job.IsRemote = &remote
	return job, true
}
