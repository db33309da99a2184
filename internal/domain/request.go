package domain

import "jobscout/internal/region"

// DescriptionFormat selects how adapters render job description HTML.
type DescriptionFormat string

const (
	FormatMarkdown DescriptionFormat = "markdown"
	FormatHTML     DescriptionFormat = "html"
	FormatPlain    DescriptionFormat = "plain"
)

// ScrapeRequest is the shared per-run input. The orchestrator builds one and
// hands the same pointer to every adapter; nothing mutates it after dispatch
// except the orchestrator stamping the per-adapter Proxy before launch.
type ScrapeRequest struct {
	SearchTerm       string
	GoogleSearchTerm string // google adapter override, falls back to SearchTerm
	Location         string
	Distance         int
	IsRemote         bool
	JobType          *JobType
	EasyApply        *bool
	ResultsWanted    int
	Offset           int
	HoursOld         int

	Country           region.Country
	DescriptionFormat DescriptionFormat

	// FetchFullDescription turns on the per-job detail fetch for adapters
	// whose listing responses only carry a summary.
	FetchFullDescription bool
	LinkedInCompanyIDs   []int

	Proxy string
}
