// Package bayt scrapes bayt.com's server-rendered international search
// pages. Pagination is a plain page number.
package bayt

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
		baseURL: "https://www.bayt.com",
	}
}

func (s *Scraper) Name() string { return string(domain.SiteBayt) }

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
			s.log.Warnf("[bayt] page %d: %v", page, err)
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
	s.log.Infof("[bayt] found %d jobs", len(out))
	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, hc *http.Client, req *domain.ScrapeRequest, page int) ([]domain.JobPost, error) {
	slug := strings.ReplaceAll(strings.TrimSpace(req.SearchTerm), " ", "-")
	u := fmt.Sprintf("%s/en/international/jobs/%s-jobs/?page=%d", s.baseURL, url.PathEscape(slug), page)

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
		return nil, fmt.Errorf("bayt get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("bayt status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("bayt parse html: %w", err)
	}

	var jobs []domain.JobPost
	doc.Find("li[data-js-job]").Each(func(_ int, li *goquery.Selection) {
		job, ok := s.mapCard(li)
		if !ok {
			return
		}
		jobs = append(jobs, job)
	})
	return jobs, nil
}

func (s *Scraper) mapCard(li *goquery.Selection) (domain.JobPost, bool) {
	h2 := li.Find("h2").First()
	title := util.CleanText(h2.Text())
	href, ok := h2.Find("a").Attr("href")
	if title == "" || !ok {
		return domain.JobPost{}, false
	}
	jobURL := strings.TrimSpace(href)
	if strings.HasPrefix(jobURL, "/") {
		jobURL = s.baseURL + jobURL
	}

	company := util.CleanText(li.Find("div.t-nowrap.p10l span").First().Text())
	if company == "" {
		company = util.CleanText(li.Find("b.jb-company").First().Text())
	}
	location := util.CleanText(li.Find("div.t-mute.t-small").First().Text())

	job := domain.JobPost{
		Title:       title,
		JobURL:      jobURL,
		CompanyName: company,
	}
	if location != "" {
		job.Location = &domain.Location{City: location, Country: "Worldwide"}
	}
	remote := normalize.IsRemote(title, location)
	job.IsRemote = &remote
	return job, true
}
