// Package glassdoor scrapes the Glassdoor GraphQL endpoint. A token is
// pulled off a board page first, then search pages advance through numbered
// cursors returned alongside each response.
package glassdoor

import (
	"bytes"
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

const (
	pageSize = 30
	maxPages = 30
)

type Scraper struct {
	limiter *util.HostLimiter
	log     *logx.Logger
	baseURL string // per-country, set in Scrape unless overridden
}

func New(limiter *util.HostLimiter, log *logx.Logger) *Scraper {
	return &Scraper{limiter: limiter, log: log}
}

func (s *Scraper) Name() string { return string(domain.SiteGlassdoor) }

var tokenRe = regexp.MustCompile(`"token":\s*"([^"]+)"`)

type searchPayload struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

type searchResponse []struct {
	Data struct {
		JobListings struct {
			JobListings []struct {
				JobView jobView `json:"jobview"`
			} `json:"jobListings"`
			PaginationCursors []struct {
				PageNumber int    `json:"pageNumber"`
				Cursor     string `json:"cursor"`
			} `json:"paginationCursors"`
			TotalJobsCount int `json:"totalJobsCount"`
		} `json:"jobListings"`
	} `json:"data"`
}

type jobView struct {
	Job struct {
		ListingID    int64  `json:"listingId"`
		JobTitleText string `json:"jobTitleText"`
	} `json:"job"`
	Header struct {
		Employer struct {
			Name string `json:"name"`
			ID   int64  `json:"id"`
		} `json:"employer"`
		EmployerNameFromSearch string `json:"employerNameFromSearch"`
		LocationName           string `json:"locationName"`
		LocationType           string `json:"locationType"`
		AgeInDays              int    `json:"ageInDays"`
		PayPeriod              string `json:"payPeriod"`
		PayPeriodAdjustedPay   *struct {
			P10 float64 `json:"p10"`
			P90 float64 `json:"p90"`
		} `json:"payPeriodAdjustedPay"`
		PayCurrency string `json:"payCurrency"`
	} `json:"header"`
}

func (s *Scraper) Scrape(ctx context.Context, req *domain.ScrapeRequest) ([]domain.JobPost, error) {
	gdDomain, ok := req.Country.Glassdoor()
	if !ok {
		return nil, fmt.Errorf("glassdoor: country %s not supported", req.Country.Name)
	}
	base := s.baseURL
	if base == "" {
		base = fmt.Sprintf("https://www.glassdoor.%s", gdDomain)
	}

	hc := util.NewClient(req.Proxy, 20*time.Second)

	token, err := s.fetchToken(ctx, hc, base)
	if err != nil {
		s.log.Warnf("[glassdoor] token: %v", err)
		return nil, nil
	}
	locID, locType, err := s.lookupLocation(ctx, hc, base, req.Location)
	if err != nil {
		s.log.Warnf("[glassdoor] location lookup: %v", err)
	}

	seen := map[string]bool{}
	var out []domain.JobPost
	cursor := ""
	cursors := map[int]string{}

	wantPages := (req.ResultsWanted+req.Offset)/pageSize + 2
	if wantPages > maxPages {
		wantPages = maxPages
	}
	for page := 1; page <= wantPages && len(out) < req.ResultsWanted+req.Offset; page++ {
		if c, ok := cursors[page]; ok {
			cursor = c
		}
		jobs, nextCursors, err := s.fetchPage(ctx, hc, base, token, req, locID, locType, page, cursor)
		if err != nil {
			s.log.Warnf("[glassdoor] page %d: %v", page, err)
			break
		}
		if len(jobs) == 0 {
			break
		}
		for _, jv := range jobs {
			job, ok := s.mapJob(jv, base, req)
			if !ok || seen[job.JobURL] {
				continue
			}
			seen[job.JobURL] = true
			out = append(out, job)
		}
		for num, c := range nextCursors {
			cursors[num] = c
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
	s.log.Infof("[glassdoor] found %d jobs", len(out))
	return out, nil
}

// fetchToken scrapes the CSRF token embedded in any board page.
func (s *Scraper) fetchToken(ctx context.Context, hc *http.Client, base string) (string, error) {
	u := base + "/Job/computer-science-jobs.htm"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	setHeaders(req, "")
	res, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return "", fmt.Errorf("token page status %d", res.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, 2<<20))
	if err != nil {
		return "", err
	}
	m := tokenRe.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("token not found in board page")
	}
	return string(m[1]), nil
}

func (s *Scraper) lookupLocation(ctx context.Context, hc *http.Client, base, location string) (int64, string, error) {
	if strings.TrimSpace(location) == "" {
		return 0, "", nil
	}
	u := base + "/findPopularLocationAjax.htm?maxLocationsToReturn=10&term=" + url.QueryEscape(location)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, "", err
	}
	setHeaders(req, "")
	res, err := hc.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return 0, "", fmt.Errorf("location lookup status %d", res.StatusCode)
	}
	var hits []struct {
		LocationID   int64  `json:"locationId"`
		LocationType string `json:"locationType"`
	}
	if err := json.NewDecoder(res.Body).Decode(&hits); err != nil {
		return 0, "", fmt.Errorf("location decode: %w", err)
	}
	if len(hits) == 0 {
		return 0, "", fmt.Errorf("no location match for %q", location)
	}
	// C city, S state, N country
	lt := hits[0].LocationType
	switch lt {
	case "C":
		lt = "CITY"
	case "S":
		lt = "STATE"
	case "N":
		lt = "COUNTRY"
	}
	return hits[0].LocationID, lt, nil
}

func (s *Scraper) fetchPage(ctx context.Context, hc *http.Client, base, token string, req *domain.ScrapeRequest, locID int64, locType string, page int, cursor string) ([]jobView, map[int]string, error) {
	var filterParams []map[string]string
	if req.HoursOld > 0 {
		filterParams = append(filterParams, map[string]string{"filterKey": "fromAge", "values": fmt.Sprint((req.HoursOld + 23) / 24)})
	}
	if req.IsRemote {
		filterParams = append(filterParams, map[string]string{"filterKey": "remoteWorkType", "values": "1"})
	}
	if req.JobType != nil {
		filterParams = append(filterParams, map[string]string{"filterKey": "jobType", "values": string(*req.JobType)})
	}

	vars := map[string]any{
		"excludeJobListingIds": []int64{},
		"keyword":              req.SearchTerm,
		"numJobsToShow":        pageSize,
		"pageNumber":           page,
		"pageCursor":           cursor,
		"filterParams":         filterParams,
		"originalPageUrl":      base + "/Job/jobs.htm",
		"parameterUrlInput":    fmt.Sprintf("IL.0,12_I%s%d", locType, locID),
		"seoFriendlyUrlInput":  "jobs",
		"seoUrl":               true,
	}
	if locID == 0 {
		delete(vars, "parameterUrlInput")
	}

	payload, err := json.Marshal([]searchPayload{{
		OperationName: "JobSearchResultsQuery",
		Variables:     vars,
		Query:         jobSearchQuery,
	}})
	if err != nil {
		return nil, nil, err
	}

	u := base + "/graph"
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	setHeaders(hreq, token)

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return nil, nil, err
	}
	res, err := hc.Do(hreq)
	if err != nil {
		return nil, nil, fmt.Errorf("glassdoor post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, nil, fmt.Errorf("glassdoor status %d", res.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, nil, fmt.Errorf("glassdoor decode: %w", err)
	}
	if len(sr) == 0 {
		return nil, nil, nil
	}

	listings := sr[0].Data.JobListings
	jobs := make([]jobView, 0, len(listings.JobListings))
	for _, l := range listings.JobListings {
		jobs = append(jobs, l.JobView)
	}
	cursors := map[int]string{}
	for _, pc := range listings.PaginationCursors {
		cursors[pc.PageNumber] = pc.Cursor
	}
	return jobs, cursors, nil
}

func (s *Scraper) mapJob(jv jobView, base string, req *domain.ScrapeRequest) (domain.JobPost, bool) {
	title := util.CleanText(jv.Job.JobTitleText)
	if title == "" || jv.Job.ListingID == 0 {
		return domain.JobPost{}, false
	}
	jobURL := fmt.Sprintf("%s/job-listing/j?jl=%d", base, jv.Job.ListingID)

	company := util.FirstNonEmpty(jv.Header.Employer.Name, jv.Header.EmployerNameFromSearch)
	job := domain.JobPost{
		Title:       title,
		JobURL:      jobURL,
		CompanyName: util.CleanText(company),
	}
	if jv.Header.Employer.ID != 0 {
		job.CompanyURL = fmt.Sprintf("%s/Overview/W-EI_IE%d.htm", base, jv.Header.Employer.ID)
	}
	if loc := jv.Header.LocationName; loc != "" && !strings.EqualFold(loc, "remote") {
		job.Location = util.ParseLocation(loc)
	}
	job.ListingType = strings.ToLower(jv.Header.LocationType)
	if jv.Header.AgeInDays > 0 {
		job.DatePosted = time.Now().UTC().AddDate(0, 0, -jv.Header.AgeInDays).Format("2006-01-02")
	} else {
		job.DatePosted = time.Now().UTC().Format("2006-01-02")
	}

	if pay := jv.Header.PayPeriodAdjustedPay; pay != nil && jv.Header.PayPeriod != "" {
		if iv, ok := normalize.IntervalFromString(jv.Header.PayPeriod); ok {
			min, max := pay.P10, pay.P90
			job.Compensation = &domain.Compensation{
				Interval:  iv,
				MinAmount: &min,
				MaxAmount: &max,
				Currency:  util.FirstNonEmpty(jv.Header.PayCurrency, "USD"),
			}
		}
	}

	remote := strings.EqualFold(jv.Header.LocationType, "S") ||
		normalize.IsRemote(title, jv.Header.LocationName)
	job.IsRemote = &remote
	return job, true
}

func setHeaders(req *http.Request, token string) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apollographql-client-name", "job-search-next")
	if token != "" {
		req.Header.Set("gd-csrf-token", token)
	}
}

const jobSearchQuery = `
query JobSearchResultsQuery($excludeJobListingIds: [Long!], $keyword: String, $locationId: Int, $numJobsToShow: Int!, $pageCursor: String, $pageNumber: Int, $filterParams: [FilterParams], $originalPageUrl: String, $seoFriendlyUrlInput: String, $parameterUrlInput: String, $seoUrl: Boolean) {
  jobListings(
    contextHolder: {searchParams: {excludeJobListingIds: $excludeJobListingIds, keyword: $keyword, locationId: $locationId, numPerPage: $numJobsToShow, pageCursor: $pageCursor, pageNumber: $pageNumber, filterParams: $filterParams, originalPageUrl: $originalPageUrl, seoFriendlyUrlInput: $seoFriendlyUrlInput, parameterUrlInput: $parameterUrlInput, seoUrl: $seoUrl, searchType: SR}}
  ) {
    jobListings {
      jobview {
        job { listingId jobTitleText }
        header {
          employer { id name }
          employerNameFromSearch
          locationName
          locationType
          ageInDays
          payPeriod
          payPeriodAdjustedPay { p10 p90 }
          payCurrency
        }
      }
    }
    paginationCursors { cursor pageNumber }
    totalJobsCount
  }
}`
