package domain

// Location is the city/state/country triple attached to a posting. Any part
// may be empty when the source does not supply it.
type Location struct {
	City    string
	State   string
	Country string
}

// Display joins the non-empty location parts with ", ".
func (l *Location) Display() string {
	if l == nil {
		return ""
	}
	out := ""
	for _, p := range []string{l.City, l.State, l.Country} {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

// Compensation is the structured pay data supplied by a source, when any.
type Compensation struct {
	Interval  CompensationInterval
	MinAmount *float64
	MaxAmount *float64
	Currency  string
}

// JobPost is the normalized, site-agnostic posting produced by one adapter.
// JobURL is the dedup key: an adapter never emits two posts sharing one URL.
type JobPost struct {
	Title        string
	JobURL       string
	JobURLDirect string

	CompanyName string
	CompanyURL  string

	Location     *Location
	Description  string
	JobType      []JobType
	Compensation *Compensation
	DatePosted   string // ISO date, empty when unknown
	IsRemote     *bool
	Emails       []string

	// Site-specific optionals.
	JobLevel            string
	JobFunction         string
	ListingType         string
	CompanyIndustry     string
	CompanyLogo         string
	CompanyAddresses    string
	CompanyNumEmployees string
	CompanyRevenue      string
	CompanyDescription  string
	Skills              []string
	ExperienceRange     string
	CompanyRating       float64
	CompanyReviewsCount int
	VacancyCount        int
	WorkFromHomeType    string
}
