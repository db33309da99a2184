// Package output serializes aggregated results to JSON, CSV or SQLite,
// chosen by the destination file's extension.
package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"jobscout/internal/aggregate"
	"jobscout/internal/store"
)

// Write picks a format from the path extension and writes the jobs there.
func Write(path string, jobs []aggregate.FlatJob) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return WriteJSON(f, jobs)
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return WriteCSV(f, jobs)
	case ".db", ".sqlite", ".sqlite3":
		db, err := store.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		_, err = db.SaveJobs(context.Background(), jobs)
		return err
	}
	return fmt.Errorf("unsupported output extension %q (use .json, .csv or .db)", filepath.Ext(path))
}

// WriteJSON emits the jobs as a pretty-printed array.
func WriteJSON(w io.Writer, jobs []aggregate.FlatJob) error {
	if jobs == nil {
		jobs = []aggregate.FlatJob{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(jobs)
}

var csvHeader = []string{
	"site", "title", "company", "city", "state", "country",
	"job_url", "job_url_direct", "date_posted", "job_type", "is_remote",
	"salary_source", "interval", "min_amount", "max_amount", "currency",
	"description", "emails",
	"job_level", "job_function", "listing_type", "company_industry",
	"company_url", "company_logo", "company_addresses",
	"company_num_employees", "company_revenue", "company_description",
	"skills", "experience_range", "company_rating",
	"company_reviews_count", "vacancy_count", "work_from_home_type",
}

// WriteCSV emits one row per job. Multi-valued fields join with commas,
// which the writer quotes as needed.
func WriteCSV(w io.Writer, jobs []aggregate.FlatJob) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, j := range jobs {
		if err := cw.Write(csvRow(j)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// csvRow emits every FlatJob scalar in header order. Absent optionals stay
// empty cells, matching the JSON form's omitempty.
func csvRow(j aggregate.FlatJob) []string {
	return []string{
		j.Site, j.Title, j.CompanyName, j.City, j.State, j.Country,
		j.JobURL, j.JobURLDirect, j.DatePosted,
		strings.Join(j.JobType, ","),
		boolField(j.IsRemote),
		j.SalarySource, j.Interval,
		floatField(j.MinAmount), floatField(j.MaxAmount), j.Currency,
		j.Description,
		strings.Join(j.Emails, ","),
		j.JobLevel, j.JobFunction, j.ListingType, j.CompanyIndustry,
		j.CompanyURL, j.CompanyLogo, j.CompanyAddresses,
		j.CompanyNumEmployees, j.CompanyRevenue, j.CompanyDescription,
		strings.Join(j.Skills, ","),
		j.ExperienceRange,
		ratingField(j.CompanyRating),
		countField(j.CompanyReviewsCount),
		countField(j.VacancyCount),
		j.WorkFromHomeType,
	}
}

func boolField(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func floatField(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func ratingField(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func countField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
