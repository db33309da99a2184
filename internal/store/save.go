package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobscout/internal/aggregate"
)

// SaveJobs inserts the flat records, skipping rows already present for the
// same site+URL pair. Returns how many rows were newly added.
func (d *DB) SaveJobs(ctx context.Context, jobs []aggregate.FlatJob) (added int, err error) {
	now := time.Now().UTC().Format(time.RFC3339)

	for _, j := range jobs {
		var remote any
		if j.IsRemote != nil {
			remote = *j.IsRemote
		}
		_, err := d.Pool.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs
  (site, title, company, city, state, country, job_url, job_url_direct,
   date_posted, job_type, is_remote, salary_source, interval,
   min_amount, max_amount, currency, description, scraped_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			j.Site, j.Title, j.CompanyName, j.City, j.State, j.Country,
			j.JobURL, j.JobURLDirect, j.DatePosted, strings.Join(j.JobType, ","),
			remote, j.SalarySource, j.Interval, j.MinAmount, j.MaxAmount,
			j.Currency, j.Description, now,
		)
		if err != nil {
			return added, fmt.Errorf("insert job %s: %w", j.JobURL, err)
		}
		var changes int
		if e := d.Pool.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil && changes > 0 {
			added++
		}
	}
	return added, nil
}
