// Package linkedin scrapes the public guest search endpoint. Pages are
// server-rendered HTML, 25 cards per offset step, capped at 1000 results.
package linkedin

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
	"jobscout/internal/textconv"
)

const (
	pageSize  = 25
	maxOffset = 1000
)

type Scraper struct {
	limiter *util.HostLimiter
	log     *logx.Logger
	baseURL string
}

func New(limiter *util.HostLimiter, log *logx.Logger) *Scraper {
	return &Scraper{
		limiter: limiter,
		log:     log,
		baseURL: "https://www.linkedin.com",
	}
}

func (s *Scraper) Name() string { return string(domain.SiteLinkedIn) }

func (s *Scraper) Scrape(ctx context.Context, req *domain.ScrapeRequest) ([]domain.JobPost, error) {
	hc := util.NewClient(req.Proxy, 20*time.Second)

	seen := map[string]bool{}
	var out []domain.JobPost

	for offset := req.Offset; offset < req.Offset+maxOffset && len(out) < req.ResultsWanted; offset += pageSize {
		if offset > req.Offset {
			if err := util.Pause(ctx, 2*time.Second); err != nil {
				break
			}
		}

		jobs, err := s.fetchPage(ctx, hc, req, offset)
		if err != nil {
			s.log.Warnf("[linkedin] offset %d: %v", offset, err)
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
			if req.FetchFullDescription {
				if err := s.hydrateJob(ctx, hc, &job, req); err != nil {
					s.log.Infof("[linkedin] detail fetch %s: %v", job.JobURL, err)
				}
			}
			out = append(out, job)
			if len(out) >= req.ResultsWanted {
				break
			}
		}
	}

	s.log.Infof("[linkedin] found %d jobs", len(out))
	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, hc *http.Client, req *domain.ScrapeRequest, offset int) ([]domain.JobPost, error) {
	q := url.Values{}
	q.Set("keywords", req.SearchTerm)
	q.Set("location", req.Location)
	if req.Distance > 0 {
		q.Set("distance", fmt.Sprint(req.Distance))
	}
	if req.IsRemote {
		q.Set("f_WT", "2")
	}
	if req.EasyApply != nil && *req.EasyApply {
		q.Set("f_AL", "true")
	}
	if req.JobType != nil {
		q.Set("f_JT", jobTypeCode(*req.JobType))
	}
	if req.HoursOld > 0 {
		q.Set("f_TPR", fmt.Sprintf("r%d", req.HoursOld*3600))
	}
	if len(req.LinkedInCompanyIDs) > 0 {
		ids := make([]string, len(req.LinkedInCompanyIDs))
		for i, id := range req.LinkedInCompanyIDs {
			ids[i] = fmt.Sprint(id)
		}
		q.Set("f_C", strings.Join(ids, ","))
	}
	q.Set("start", fmt.Sprint(offset))

	u := s.baseURL + "/jobs-guest/jobs/api/seeMoreJobPostings/search?" + q.Encode()
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	hreq.Header.Set("Accept", "text/html")

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}
	res, err := hc.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("linkedin get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("linkedin rate limited (429)")
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("linkedin status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("linkedin parse html: %w", err)
	}

	var jobs []domain.JobPost
	doc.Find("div.base-search-card").Each(func(_ int, card *goquery.Selection) {
		job, ok := s.mapCard(card)
		if !ok {
			return
		}
		jobs = append(jobs, job)
	})
	return jobs, nil
}

func (s *Scraper) mapCard(card *goquery.Selection) (domain.JobPost, bool) {
	href, ok := card.Find("a.base-card__full-link").Attr("href")
	if !ok {
		href, ok = card.Find("a[href]").Attr("href")
	}
	if !ok {
		return domain.JobPost{}, false
	}
	// canonical URL without tracking query
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return domain.JobPost{}, false
	}
	u.RawQuery = ""
	jobURL := u.String()

	title := util.CleanText(card.Find("span.sr-only").First().Text())
	if title == "" {
		title = util.CleanText(card.Find("h3.base-search-card__title").Text())
	}
	if title == "" {
		return domain.JobPost{}, false
	}

	job := domain.JobPost{
		Title:       title,
		JobURL:      jobURL,
		CompanyName: util.CleanText(card.Find("h4.base-search-card__subtitle a").Text()),
		Location:    util.ParseLocation(card.Find("span.job-search-card__location").Text()),
	}
	if cu, ok := card.Find("h4.base-search-card__subtitle a").Attr("href"); ok {
		if p, err := url.Parse(strings.TrimSpace(cu)); err == nil {
			p.RawQuery = ""
			job.CompanyURL = p.String()
		}
	}
	if dt, ok := card.Find("time.job-search-card__listdate").Attr("datetime"); ok {
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(dt)); err == nil {
			job.DatePosted = t.Format("2006-01-02")
		}
	}
	remote := normalize.IsRemote(title, job.Location.Display())
	job.IsRemote = &remote
	return job, true
}

// hydrateJob pulls the full description and job criteria off the posting
// page. Best effort, one extra request per job.
func (s *Scraper) hydrateJob(ctx context.Context, hc *http.Client, job *domain.JobPost, req *domain.ScrapeRequest) error {
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, job.JobURL, nil)
	if err != nil {
		return err
	}
	hreq.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	if err := s.limiter.WaitURL(ctx, job.JobURL); err != nil {
		return err
	}
	res, err := hc.Do(hreq)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("job page status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return err
	}

	if sel := doc.Find("div.show-more-less-html__markup").First(); sel.Length() > 0 {
		if h, err := sel.Html(); err == nil {
			job.Description = textconv.Render(h, req.DescriptionFormat)
			job.Emails = normalize.ExtractEmails(job.Description)
			if job.IsRemote != nil && !*job.IsRemote {
				remote := normalize.IsRemote(job.Title, job.Description, job.Location.Display())
				job.IsRemote = &remote
			}
		}
	}

	doc.Find("li.description__job-criteria-item").Each(func(_ int, item *goquery.Selection) {
		label := util.CleanText(item.Find("h3").Text())
		value := util.CleanText(item.Find("span").Text())
		switch strings.ToLower(label) {
		case "seniority level":
			job.JobLevel = value
		case "employment type":
			if jt, ok := normalize.JobTypeFromString(value); ok {
				job.JobType = []domain.JobType{jt}
			}
		case "job function":
			job.JobFunction = value
		case "industries":
			job.CompanyIndustry = value
		}
	})

	if u, ok := doc.Find("code#applyUrl").Attr("data-apply-url"); ok {
		job.JobURLDirect = strings.TrimSpace(u)
	}
	return nil
}

func jobTypeCode(jt domain.JobType) string {
	switch jt {
	case domain.JobTypeFullTime:
		return "F"
	case domain.JobTypePartTime:
		return "P"
	case domain.JobTypeInternship:
		return "I"
	case domain.JobTypeContract:
		return "C"
	case domain.JobTypeTemporary:
		return "T"
	case domain.JobTypeVolunteer:
		return "V"
	default:
		return "O"
	}
}
