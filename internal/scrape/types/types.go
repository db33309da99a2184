package types

import (
	"context"

	"jobscout/internal/domain"
)

// Scraper is one job board adapter. Implementations own their pagination,
// request construction and field mapping; they only share the read-only
// request.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, req *domain.ScrapeRequest) ([]domain.JobPost, error)
}

// Result is one adapter's settled outcome inside an aggregate run.
type Result struct {
	Site domain.Site
	Jobs []domain.JobPost
	Err  error
}
