package aggregate

import (
	"jobscout/internal/domain"
	"jobscout/internal/region"
	"jobscout/internal/salary"
)

// SalarySource tags where the compensation figures came from.
const (
	SalarySourceDirect      = "direct_data"
	SalarySourceDescription = "description"
)

// FlatJob is the externally visible record: one canonical post with nested
// fields spread into scalars plus the site and salary-source tags. Absent
// optionals stay absent in serialized output.
type FlatJob struct {
	Site         string `json:"site"`
	Title        string `json:"title"`
	CompanyName  string `json:"company,omitempty"`
	JobURL       string `json:"job_url"`
	JobURLDirect string `json:"job_url_direct,omitempty"`

	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`

	DatePosted string   `json:"date_posted,omitempty"`
	JobType    []string `json:"job_type,omitempty"`
	IsRemote   *bool    `json:"is_remote,omitempty"`

	SalarySource string   `json:"salary_source,omitempty"`
	Interval     string   `json:"interval,omitempty"`
	MinAmount    *float64 `json:"min_amount,omitempty"`
	MaxAmount    *float64 `json:"max_amount,omitempty"`
	Currency     string   `json:"currency,omitempty"`

	Description string   `json:"description,omitempty"`
	Emails      []string `json:"emails,omitempty"`

	JobLevel            string   `json:"job_level,omitempty"`
	JobFunction         string   `json:"job_function,omitempty"`
	ListingType         string   `json:"listing_type,omitempty"`
	CompanyIndustry     string   `json:"company_industry,omitempty"`
	CompanyURL          string   `json:"company_url,omitempty"`
	CompanyLogo         string   `json:"company_logo,omitempty"`
	CompanyAddresses    string   `json:"company_addresses,omitempty"`
	CompanyNumEmployees string   `json:"company_num_employees,omitempty"`
	CompanyRevenue      string   `json:"company_revenue,omitempty"`
	CompanyDescription  string   `json:"company_description,omitempty"`
	Skills              []string `json:"skills,omitempty"`
	ExperienceRange     string   `json:"experience_range,omitempty"`
	CompanyRating       float64  `json:"company_rating,omitempty"`
	CompanyReviewsCount int      `json:"company_reviews_count,omitempty"`
	VacancyCount        int      `json:"vacancy_count,omitempty"`
	WorkFromHomeType    string   `json:"work_from_home_type,omitempty"`
}

// Flatten spreads one canonical post into the external record shape.
func Flatten(site domain.Site, job domain.JobPost) FlatJob {
	flat := FlatJob{
		Site:         string(site),
		Title:        job.Title,
		CompanyName:  job.CompanyName,
		JobURL:       job.JobURL,
		JobURLDirect: job.JobURLDirect,
		DatePosted:   job.DatePosted,
		IsRemote:     job.IsRemote,
		Description:  job.Description,
		Emails:       job.Emails,

		JobLevel:            job.JobLevel,
		JobFunction:         job.JobFunction,
		ListingType:         job.ListingType,
		CompanyIndustry:     job.CompanyIndustry,
		CompanyURL:          job.CompanyURL,
		CompanyLogo:         job.CompanyLogo,
		CompanyAddresses:    job.CompanyAddresses,
		CompanyNumEmployees: job.CompanyNumEmployees,
		CompanyRevenue:      job.CompanyRevenue,
		CompanyDescription:  job.CompanyDescription,
		Skills:              job.Skills,
		ExperienceRange:     job.ExperienceRange,
		CompanyRating:       job.CompanyRating,
		CompanyReviewsCount: job.CompanyReviewsCount,
		VacancyCount:        job.VacancyCount,
		WorkFromHomeType:    job.WorkFromHomeType,
	}
	if job.Location != nil {
		flat.City = job.Location.City
		flat.State = job.Location.State
		flat.Country = job.Location.Country
	}
	for _, jt := range job.JobType {
		flat.JobType = append(flat.JobType, string(jt))
	}
	return flat
}

// applySalary fills the compensation scalars. Structured source data wins;
// otherwise, for US searches only, a conservative pass over the description
// tries to infer a range. The salary_source tag survives only when some
// amount did.
func applySalary(flat *FlatJob, job domain.JobPost, country region.Country, bounds salary.Bounds, enforceAnnual bool) {
	if c := job.Compensation; c != nil && (c.MinAmount != nil || c.MaxAmount != nil) {
		comp := *c
		if enforceAnnual {
			salary.Annualize(&comp)
		}
		flat.SalarySource = SalarySourceDirect
		flat.Interval = string(comp.Interval)
		flat.MinAmount = comp.MinAmount
		flat.MaxAmount = comp.MaxAmount
		flat.Currency = comp.Currency
		return
	}

	if country.IsUSA() && job.Description != "" {
		if ex, ok := salary.ExtractFromText(job.Description, bounds); ok {
			flat.SalarySource = SalarySourceDescription
			flat.Currency = ex.Currency
			if enforceAnnual {
				flat.Interval = string(domain.IntervalYearly)
				flat.MinAmount = &ex.AnnualMin
				flat.MaxAmount = &ex.AnnualMax
			} else {
				flat.Interval = string(ex.Interval)
				flat.MinAmount = &ex.MinAmount
				flat.MaxAmount = &ex.MaxAmount
			}
			return
		}
	}

	flat.SalarySource = ""
}
