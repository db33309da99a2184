// Package naukri scrapes naukri.com's public search API. Pagination is a
// page number, 20 results per page.
package naukri

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
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
		baseURL: "https://www.naukri.com",
	}
}

func (s *Scraper) Name() string { return string(domain.SiteNaukri) }

type searchResponse struct {
	NoOfJobs   int         `json:"noOfJobs"`
	JobDetails []jobDetail `json:"jobDetails"`
}

type jobDetail struct {
	Title          string `json:"title"`
	JdURL          string `json:"jdURL"`
	CompanyName    string `json:"companyName"`
	StaticURL      string `json:"staticUrl"`
	JobDescription string `json:"jobDescription"`
	TagsAndSkills  string `json:"tagsAndSkills"`
	Logo           string `json:"logoPathV3"`
	CreatedDate    int64  `json:"createdDate"`
	Mode           string `json:"mode"`
	Placeholders   []struct {
		Type  string `json:"type"`
		Label string `json:"label"`
	} `json:"placeholders"`
	AmbitionBoxData *struct {
		AggregateRating string `json:"AggregateRating"`
		ReviewsCount    int    `json:"ReviewsCount"`
	} `json:"ambitionBoxData"`
	Vacancy int `json:"vacancy"`
}

func (s *Scraper) Scrape(ctx context.Context, req *domain.ScrapeRequest) ([]domain.JobPost, error) {
	hc := util.NewClient(req.Proxy, 20*time.Second)

	seen := map[string]bool{}
	var out []domain.JobPost

	maxPages := (req.ResultsWanted+req.Offset)/pageSize + 2
	for page := 1; page <= maxPages && len(out) < req.ResultsWanted+req.Offset; page++ {
		jobs, err := s.fetchPage(ctx, hc, req, page)
		if err != nil {
			s.log.Warnf("[naukri] page %d: %v", page, err)
			break
		}
		if len(jobs) == 0 {
			break
		}
		for _, jd := range jobs {
			job, ok := s.mapJob(jd, req)
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
	s.log.Infof("[naukri] found %d jobs", len(out))
	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, hc *http.Client, req *domain.ScrapeRequest, page int) ([]jobDetail, error) {
	q := url.Values{}
	q.Set("noOfResults", fmt.Sprint(pageSize))
	q.Set("urlType", "search_by_keyword")
	q.Set("searchType", "adv")
	q.Set("keyword", req.SearchTerm)
	q.Set("pageNo", fmt.Sprint(page))
	q.Set("seoKey", strings.ToLower(strings.ReplaceAll(req.SearchTerm, " ", "-"))+"-jobs")
	q.Set("src", "jobsearchDesk")
	if req.Location != "" {
		q.Set("location", req.Location)
	}
	if req.IsRemote {
		q.Set("wfhType", "2")
	}
	if req.HoursOld > 0 {
		q.Set("days", fmt.Sprint((req.HoursOld+23)/24))
	}

	u := s.baseURL + "/jobapi/v3/search?" + q.Encode()
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set("appid", "109")
	hreq.Header.Set("systemid", "Naukri")

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}
	res, err := hc.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("naukri get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("naukri status %d", res.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("naukri decode: %w", err)
	}
	return sr.JobDetails, nil
}

func (s *Scraper) mapJob(jd jobDetail, req *domain.ScrapeRequest) (domain.JobPost, bool) {
	title := util.CleanText(jd.Title)
	if title == "" || jd.JdURL == "" {
		return domain.JobPost{}, false
	}
	jobURL := jd.JdURL
	if !strings.HasPrefix(jobURL, "http") {
		jobURL = s.baseURL + "/" + strings.TrimPrefix(jobURL, "/")
	}

	job := domain.JobPost{
		Title:       title,
		JobURL:      jobURL,
		CompanyName: util.CleanText(jd.CompanyName),
		CompanyLogo: jd.Logo,
	}
	if jd.StaticURL != "" {
		job.CompanyURL = s.baseURL + "/" + strings.TrimPrefix(jd.StaticURL, "/")
	}
	if jd.JobDescription != "" {
		job.Description = textconv.Render(jd.JobDescription, req.DescriptionFormat)
		job.Emails = normalize.ExtractEmails(job.Description)
	}
	if jd.TagsAndSkills != "" {
		job.Skills = strings.Split(jd.TagsAndSkills, ",")
		for i := range job.Skills {
			job.Skills[i] = strings.TrimSpace(job.Skills[i])
		}
	}
	if jd.CreatedDate > 0 {
		job.DatePosted = time.UnixMilli(jd.CreatedDate).UTC().Format("2006-01-02")
	}

	for _, ph := range jd.Placeholders {
		switch ph.Type {
		case "location":
			job.Location = util.ParseLocation(ph.Label)
			if job.Location != nil && job.Location.Country == "" {
				job.Location.Country = "India"
			}
		case "experience":
			job.ExperienceRange = ph.Label
		}
	}

	if ab := jd.AmbitionBoxData; ab != nil {
		if r, err := strconv.ParseFloat(ab.AggregateRating, 64); err == nil {
			job.CompanyRating = r
		}
		job.CompanyReviewsCount = ab.ReviewsCount
	}
	job.VacancyCount = jd.Vacancy
	if strings.EqualFold(jd.Mode, "wfh") || strings.EqualFold(jd.Mode, "hybrid") {
		job.WorkFromHomeType = jd.Mode
	}

	remote := normalize.IsRemote(title, job.Description, jd.Mode)
	job.IsRemote = &remote
	return job, true
}
