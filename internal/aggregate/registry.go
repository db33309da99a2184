package aggregate

import (
	"jobscout/internal/domain"
	"jobscout/internal/logx"
	"jobscout/internal/scrape/bayt"
	"jobscout/internal/scrape/bdjobs"
	"jobscout/internal/scrape/glassdoor"
	"jobscout/internal/scrape/google"
	"jobscout/internal/scrape/indeed"
	"jobscout/internal/scrape/linkedin"
	"jobscout/internal/scrape/naukri"
	"jobscout/internal/scrape/seek"
	"jobscout/internal/scrape/types"
	"jobscout/internal/scrape/util"
	"jobscout/internal/scrape/ziprecruiter"
)

// newScraper builds the adapter for one site. Every adapter instance is
// fresh per run; the limiter is the only piece shared across them.
func newScraper(site domain.Site, limiter *util.HostLimiter, log *logx.Logger) types.Scraper {
	switch site {
	case domain.SiteIndeed:
		return indeed.New(limiter, log)
	case domain.SiteLinkedIn:
		return linkedin.New(limiter, log)
	case domain.SiteZipRecruiter:
		return ziprecruiter.New(limiter, log)
	case domain.SiteGlassdoor:
		return glassdoor.New(limiter, log)
	case domain.SiteGoogle:
		return google.New(limiter, log)
	case domain.SiteBayt:
		return bayt.New(limiter, log)
	case domain.SiteNaukri:
		return naukri.New(limiter, log)
	case domain.SiteBDJobs:
		return bdjobs.New(limiter, log)
	case domain.SiteSeek:
		return seek.New(limiter, log)
	}
	return nil
}
