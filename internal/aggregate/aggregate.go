// Package aggregate is the orchestrator: it resolves the user-facing
// parameter bag, fans one request out to every selected site adapter
// concurrently, collects whatever settled, and produces the flattened,
// sorted result set.
package aggregate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"jobscout/internal/domain"
	"jobscout/internal/logx"
	"jobscout/internal/normalize"
	"jobscout/internal/region"
	"jobscout/internal/salary"
	"jobscout/internal/scrape/types"
	"jobscout/internal/scrape/util"
)

// Params is the user-facing parameter bag. Zero values mean "not set".
type Params struct {
	Sites            []string
	SearchTerm       string
	GoogleSearchTerm string
	Location         string
	Distance         int
	IsRemote         bool
	JobType          string
	EasyApply        *bool
	ResultsWanted    int
	Country          string
	Proxies          []string
	DescriptionFormat    string
	FetchFullDescription bool
	LinkedInCompanyIDs   []int
	Offset              int
	HoursOld            int
	EnforceAnnualSalary bool
	Verbose             int

	// SalaryBounds overrides the plausibility window for description
	// inference; nil keeps the defaults.
	SalaryBounds *salary.Bounds
	// RateRPS and RateBurst shape the shared per-host limiter; zero
	// keeps the defaults.
	RateRPS   int
	RateBurst int
}

type runner struct {
	log     *logx.Logger
	limiter *util.HostLimiter
	scraperFor func(domain.Site, *util.HostLimiter, *logx.Logger) types.Scraper
}

// Option tweaks a runner; tests use it to substitute fake adapters.
type Option func(*runner)

// WithScraperFunc overrides adapter construction.
func WithScraperFunc(f func(domain.Site, *util.HostLimiter, *logx.Logger) types.Scraper) Option {
	return func(r *runner) { r.scraperFor = f }
}

// Run resolves params, dispatches every selected adapter concurrently and
// returns the flattened, sorted jobs. It only errors on configuration
// problems (bad site, country or job type); scrape-level failures degrade
// to fewer results.
func Run(ctx context.Context, p Params, opts ...Option) ([]FlatJob, error) {
	sites, err := domain.ResolveSites(p.Sites)
	if err != nil {
		return nil, err
	}

	countryName := p.Country
	if strings.TrimSpace(countryName) == "" {
		countryName = "usa"
	}
	country, err := region.Resolve(countryName)
	if err != nil {
		return nil, err
	}

	var jobType *domain.JobType
	if strings.TrimSpace(p.JobType) != "" {
		jt, ok := normalize.JobTypeFromString(p.JobType)
		if !ok {
			valid := make([]string, 0, len(domain.AllJobTypes()))
			for _, t := range domain.AllJobTypes() {
				valid = append(valid, string(t))
			}
			return nil, fmt.Errorf("invalid job type %q (valid: %s)", p.JobType, strings.Join(valid, ", "))
		}
		jobType = &jt
	}

	resultsWanted := p.ResultsWanted
	if resultsWanted <= 0 {
		resultsWanted = 15
	}
	format := domain.DescriptionFormat(p.DescriptionFormat)
	switch format {
	case domain.FormatMarkdown, domain.FormatHTML, domain.FormatPlain:
	case "":
		format = domain.FormatMarkdown
	default:
		return nil, fmt.Errorf("invalid description format %q (valid: markdown, html, plain)", p.DescriptionFormat)
	}

	rps, burst := p.RateRPS, p.RateBurst
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 4
	}
	r := &runner{
		log:        logx.New(logx.Level(p.Verbose)),
		limiter:    util.NewHostLimiter(float64(rps), burst),
		scraperFor: newScraper,
	}
	for _, opt := range opts {
		opt(r)
	}

	base := domain.ScrapeRequest{
		SearchTerm:           p.SearchTerm,
		GoogleSearchTerm:     p.GoogleSearchTerm,
		Location:             p.Location,
		Distance:             p.Distance,
		IsRemote:             p.IsRemote,
		JobType:              jobType,
		EasyApply:            p.EasyApply,
		ResultsWanted:        resultsWanted,
		Offset:               p.Offset,
		HoursOld:             p.HoursOld,
		Country:              country,
		DescriptionFormat:    format,
		FetchFullDescription: p.FetchFullDescription,
		LinkedInCompanyIDs:   p.LinkedInCompanyIDs,
	}

	results := make(chan types.Result, len(sites))
	var g errgroup.Group

	for i, site := range sites {
		site := site
		req := base
		if len(p.Proxies) > 0 {
			// round-robin: each adapter keeps one proxy for its whole run
			req.Proxy = p.Proxies[i%len(p.Proxies)]
		}

		sc := r.scraperFor(site, r.limiter, r.log)
		if sc == nil {
			continue
		}
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					// panic values can be arbitrarily large; keep the log line sane
					r.log.Errorf("[%s] panic: %s", site, util.Truncate(fmt.Sprint(rec), 300))
					results <- types.Result{Site: site, Err: fmt.Errorf("panic: %v", rec)}
				}
			}()
			r.log.Infof("[%s] scraping...", site)
			jobs, err := sc.Scrape(ctx, &req)
			if err != nil {
				// best effort: a failed adapter never cancels siblings
				r.log.Errorf("[%s] error: %v", site, err)
				results <- types.Result{Site: site, Err: err}
				return nil
			}
			results <- types.Result{Site: site, Jobs: jobs}
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	bounds := salary.DefaultBounds()
	if p.SalaryBounds != nil {
		bounds = *p.SalaryBounds
	}
	var out []FlatJob
	for res := range results {
		if res.Err != nil {
			continue
		}
		for _, job := range res.Jobs {
			flat := Flatten(res.Site, job)
			applySalary(&flat, job, country, bounds, p.EnforceAnnualSalary)
			out = append(out, flat)
		}
	}

	sortJobs(out)
	r.log.Infof("found %d jobs across %d sites", len(out), len(sites))
	return out, nil
}

// sortJobs orders by site name ascending, then posting date descending.
// Dates compare lexically as ISO strings, so undated jobs sink to the end
// of their site group.
func sortJobs(jobs []FlatJob) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].Site != jobs[j].Site {
			return jobs[i].Site < jobs[j].Site
		}
		return jobs[i].DatePosted > jobs[j].DatePosted
	})
}
