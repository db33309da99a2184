// Package indeed scrapes Indeed's mobile GraphQL API. Pagination is an
// opaque cursor; the regional domain and locale come from the resolved
// country descriptor.
package indeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobscout/internal/domain"
	"jobscout/internal/logx"
	"jobscout/internal/normalize"
	"jobscout/internal/scrape/util"
	"jobscout/internal/textconv"
)

const (
	pageSize = 100
	// public mobile-app key, same for every client
	apiKey = "109745F4-A59B-4A5B-8E45-1E6A6E1E7F15"
)

type Scraper struct {
	limiter *util.HostLimiter
	log     *logx.Logger
	apiURL  string
}

func New(limiter *util.HostLimiter, log *logx.Logger) *Scraper {
	return &Scraper{
		limiter: limiter,
		log:     log,
		apiURL:  "https://apis.indeed.com/graphql",
	}
}

func (s *Scraper) Name() string { return string(domain.SiteIndeed) }

// Search filters are keyed attribute codes on the API side.
var jobTypeCodes = map[domain.JobType]string{
	domain.JobTypeFullTime:   "CF3CP",
	domain.JobTypePartTime:   "75GKK",
	domain.JobTypeContract:   "NJXCK",
	domain.JobTypeInternship: "VDTG7",
}

const remoteCode = "DSQF7"

type gqlResponse struct {
	Data struct {
		JobSearch struct {
			PageInfo struct {
				NextCursor string `json:"nextCursor"`
			} `json:"pageInfo"`
			Results []struct {
				Job rawJob `json:"job"`
			} `json:"results"`
		} `json:"jobSearch"`
	} `json:"data"`
}

type rawJob struct {
	Key           string `json:"key"`
	Title         string `json:"title"`
	DatePublished int64  `json:"datePublished"`
	Location      struct {
		City        string `json:"city"`
		Admin1Code  string `json:"admin1Code"`
		CountryCode string `json:"countryCode"`
	} `json:"location"`
	Description struct {
		HTML string `json:"html"`
	} `json:"description"`
	Compensation struct {
		BaseSalary *struct {
			UnitOfWork string `json:"unitOfWork"`
			Range      struct {
				Min *float64 `json:"min"`
				Max *float64 `json:"max"`
			} `json:"range"`
		} `json:"baseSalary"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"compensation"`
	Attributes []struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	} `json:"attributes"`
	Employer *struct {
		RelativeCompanyPageURL string `json:"relativeCompanyPageUrl"`
		Dossier                *struct {
			EmployerDetails struct {
				AddressesText    []string `json:"addressesText"`
				EmployeesText    string   `json:"employeesLocalizedLabel"`
				RevenueText      string   `json:"revenueLocalizedLabel"`
				BriefDescription string   `json:"briefDescription"`
				Industry         string   `json:"industry"`
			} `json:"employerDetails"`
			Images *struct {
				SquareLogoURL string `json:"squareLogoUrl"`
			} `json:"images"`
		} `json:"dossier"`
	} `json:"employer"`
	Recruit *struct {
		ViewJobURL string `json:"viewJobUrl"`
	} `json:"recruit"`
	EmployerName string `json:"sourceEmployerName"`
}

func (s *Scraper) Scrape(ctx context.Context, req *domain.ScrapeRequest) ([]domain.JobPost, error) {
	hc := util.NewClient(req.Proxy, 20*time.Second)

	seen := map[string]bool{}
	var out []domain.JobPost
	cursor := ""

	maxPages := (req.ResultsWanted+req.Offset)/pageSize + 2
	for page := 0; page < maxPages && len(out) < req.ResultsWanted+req.Offset; page++ {
		jobs, next, err := s.fetchPage(ctx, hc, req, cursor)
		if err != nil {
			s.log.Warnf("[indeed] page %d: %v", page+1, err)
			break
		}
		if len(jobs) == 0 {
			break
		}
		for _, j := range jobs {
			job, ok := s.mapJob(j, req)
			if !ok || seen[job.JobURL] {
				continue
			}
			seen[job.JobURL] = true
			out = append(out, job)
		}
		if next == "" {
			break
		}
		cursor = next
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
	s.log.Infof("[indeed] found %d jobs", len(out))
	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, hc *http.Client, req *domain.ScrapeRequest, cursor string) ([]rawJob, string, error) {
	query := s.buildQuery(req, cursor)
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, "", err
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set("indeed-api-key", apiKey)
	hreq.Header.Set("indeed-locale", "en-US")
	hreq.Header.Set("indeed-co", req.Country.APICode())
	hreq.Header.Set("User-Agent", "Indeed App 193.1")

	if err := s.limiter.WaitURL(ctx, s.apiURL); err != nil {
		return nil, "", err
	}
	res, err := hc.Do(hreq)
	if err != nil {
		return nil, "", fmt.Errorf("indeed post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, "", fmt.Errorf("indeed status %d", res.StatusCode)
	}

	var gr gqlResponse
	if err := json.NewDecoder(res.Body).Decode(&gr); err != nil {
		return nil, "", fmt.Errorf("indeed decode: %w", err)
	}

	jobs := make([]rawJob, 0, len(gr.Data.JobSearch.Results))
	for _, r := range gr.Data.JobSearch.Results {
		jobs = append(jobs, r.Job)
	}
	return jobs, gr.Data.JobSearch.PageInfo.NextCursor, nil
}

func (s *Scraper) buildQuery(req *domain.ScrapeRequest, cursor string) string {
	var filters []string
	if req.HoursOld > 0 {
		filters = append(filters, fmt.Sprintf(`date: {field: "dateOnIndeed", start: "%dh"}`, req.HoursOld))
	}
	var keys []string
	if req.IsRemote {
		keys = append(keys, remoteCode)
	}
	if req.JobType != nil {
		if code, ok := jobTypeCodes[*req.JobType]; ok {
			keys = append(keys, code)
		}
	}
	if len(keys) > 0 {
		quoted := make([]string, len(keys))
		for i, k := range keys {
			quoted[i] = fmt.Sprintf("%q", k)
		}
		filters = append(filters, fmt.Sprintf(`composite: {filters: [{keyword: {field: "attributes", keys: [%s]}}]}`, strings.Join(quoted, ",")))
	}
	filterBlock := ""
	if len(filters) > 0 {
		filterBlock = fmt.Sprintf("filters: {%s}", strings.Join(filters, ", "))
	}

	cursorArg := ""
	if cursor != "" {
		cursorArg = fmt.Sprintf("cursor: %q,", cursor)
	}
	locationArg := ""
	if req.Location != "" {
		locationArg = fmt.Sprintf(`location: {where: %q, radius: %d, radiusUnit: MILES},`, req.Location, req.Distance)
	}

	return fmt.Sprintf(`
query GetJobData {
  jobSearch(
    what: %q
    %s
    limit: %d
    %s
    sort: RELEVANCE
    %s
  ) {
    pageInfo { nextCursor }
    results {
      job {
        key
        title
        datePublished
        location { city admin1Code countryCode }
        description { html }
        compensation {
          baseSalary { unitOfWork range { ... on Range { min max } } }
          currencyCode
        }
        attributes { key label }
        employer {
          relativeCompanyPageUrl
          dossier {
            employerDetails {
              addressesText
              employeesLocalizedLabel
              revenueLocalizedLabel
              briefDescription
              industry
            }
            images { squareLogoUrl }
          }
        }
        recruit { viewJobUrl }
        sourceEmployerName
      }
    }
  }
}`, req.SearchTerm, locationArg, pageSize, cursorArg, filterBlock)
}

func (s *Scraper) mapJob(r rawJob, req *domain.ScrapeRequest) (domain.JobPost, bool) {
	title := util.CleanText(r.Title)
	if title == "" || r.Key == "" {
		return domain.JobPost{}, false
	}
	jobURL := fmt.Sprintf("https://%s.indeed.com/viewjob?jk=%s", req.Country.DomainSuffix(), r.Key)

	job := domain.JobPost{
		Title:       title,
		JobURL:      jobURL,
		CompanyName: util.CleanText(r.EmployerName),
		Location: &domain.Location{
			City:    r.Location.City,
			State:   r.Location.Admin1Code,
			Country: r.Location.CountryCode,
		},
	}
	if r.Recruit != nil {
		job.JobURLDirect = r.Recruit.ViewJobURL
	}
	if r.DatePublished > 0 {
		job.DatePosted = time.UnixMilli(r.DatePublished).UTC().Format("2006-01-02")
	}
	if r.Description.HTML != "" {
		job.Description = textconv.Render(r.Description.HTML, req.DescriptionFormat)
		job.Emails = normalize.ExtractEmails(job.Description)
	}

	for _, a := range r.Attributes {
		if jt, ok := normalize.JobTypeFromString(a.Label); ok {
			job.JobType = append(job.JobType, jt)
		}
	}

	if bs := r.Compensation.BaseSalary; bs != nil {
		if iv, ok := normalize.IntervalFromString(bs.UnitOfWork); ok {
			job.Compensation = &domain.Compensation{
				Interval:  iv,
				MinAmount: bs.Range.Min,
				MaxAmount: bs.Range.Max,
				Currency:  util.FirstNonEmpty(r.Compensation.CurrencyCode, "USD"),
			}
		}
	}

	if e := r.Employer; e != nil {
		if e.RelativeCompanyPageURL != "" {
			job.CompanyURL = fmt.Sprintf("https://%s.indeed.com%s", req.Country.DomainSuffix(), e.RelativeCompanyPageURL)
		}
		if d := e.Dossier; d != nil {
			det := d.EmployerDetails
			job.CompanyAddresses = strings.Join(det.AddressesText, "; ")
			job.CompanyNumEmployees = det.EmployeesText
			job.CompanyRevenue = det.RevenueText
			job.CompanyDescription = det.BriefDescription
			job.CompanyIndustry = util.CleanText(strings.ReplaceAll(det.Industry, "Iv1", ""))
			if d.Images != nil {
				job.CompanyLogo = d.Images.SquareLogoURL
			}
		}
	}

	remote := normalize.IsRemote(title, job.Description, job.Location.Display())
	for _, a := range r.Attributes {
		if a.Key == remoteCode {
			remote = true
		}
	}
	job.IsRemote = &remote

	return job, true
}
