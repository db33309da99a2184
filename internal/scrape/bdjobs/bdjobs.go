// Package bdjobs scrapes jobs.bdjobs.com search result pages. Plain HTML,
// numbered pages.
package bdjobs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobscout/internal/domain"
	"jobscout/internal/logx"
	"jobscout/internal/normalize"
	"jobscout/internal/scrape/util"
)

const maxPages = 10

type Scraper struct {
	limiter *util.HostLimiter
	log     *logx.Logger
	baseURL string
}

func New(limiter *util.HostLimiter, log *logx.Logger) *Scraper {
	return &Scraper{
		limiter: limiter,
		log:     log,
		baseURL: "https://jobs.bdjobs.com",
	}
}

func (s *Scraper) Name() string { return string(domain.SiteBDJobs) }

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
			s.log.Warnf("[bdjobs] page %d: %v", page, err)
			break
		}
		if len(jobs) == 0 {
			break
		}
		for _, job := range jobs {
			if seen[job.JobURL] {
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
	s.log.Infof("[bdjobs] found %d jobs", len(out))
	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, hc *http.Client, req *domain.ScrapeRequest, page int) ([]domain.JobPost, error) {
	q := url.Values{}
	q.Set("txtsearch", req.SearchTerm)
	q.Set("pg", fmt.Sprint(page))

	u := s.baseURL + "/jobsearch.asp?" + q.Encode()
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
		return nil, fmt.Errorf("bdjobs get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("bdjobs status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("bdjobs parse html: %w", err)
	}

	var jobs []domain.JobPost
	doc.Find("div.sout-jobs-wrapper").Each(func(_ int, card *goquery.Selection) {
		job, ok := s.mapCard(card)
		if !ok {
			return
		}
		jobs = append(jobs, job)
	})
	return jobs, nil
}

func (s *Scraper) mapCard(card *goquery.Selection) (domain.JobPost, bool) {
	link := card.Find("a.job-title-text, div.job-title-text a").First()
	title := util.CleanText(link.Text())
	href, ok := link.Attr("href")
	if title == "" || !ok {
		return domain.JobPost{}, false
	}
	jobURL := strings.TrimSpace(href)
	if !strings.HasPrefix(jobURL, "http") {
		jobURL = s.baseURL + "/" + strings.TrimPrefix(jobURL, "/")
	}

	job := domain.JobPost{
		Title:       title,
		JobURL:      jobURL,
		CompanyName: util.CleanText(card.Find(".comp-name-text").First().Text()),
	}
	if loc := util.CleanText(card.Find(".locon-text-d, .locon-text").First().Text()); loc != "" {
		job.Location = &domain.Location{City: loc, Country: "Bangladesh"}
	}
	// the listing shows an application deadline, not a posting date, so
	// DatePosted stays empty
	remote := normalize.IsRemote(title)
	job.IsRemote = &remote
	return job, true
}
