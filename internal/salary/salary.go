// Package salary infers a compensation range from free-text descriptions
// when a board supplies no structured pay data, and annualizes structured
// ranges reported in shorter pay periods.
package salary

import (
	"regexp"
	"strconv"
	"strings"

	"jobscout/internal/domain"
)

// Fixed multipliers for converting a period amount to a yearly figure.
const (
	HoursPerYear  = 2080
	MonthsPerYear = 12
	WeeksPerYear  = 52
	DaysPerYear   = 260
)

// Bounds holds the numeric sanity limits for text extraction. Amounts whose
// annualized values fall outside [LowerAnnual, UpperAnnual] are rejected
// outright to avoid picking up revenue or benefit figures.
type Bounds struct {
	LowerAnnual      float64
	UpperAnnual      float64
	HourlyThreshold  float64
	MonthlyThreshold float64
}

// DefaultBounds returns the stock plausibility window.
func DefaultBounds() Bounds {
	return Bounds{
		LowerAnnual:      1000,
		UpperAnnual:      700000,
		HourlyThreshold:  350,
		MonthlyThreshold: 30000,
	}
}

// Extracted is an all-or-nothing inference result: both the raw-period pair
// and the annualized pair are always populated together.
type Extracted struct {
	Interval  domain.CompensationInterval
	MinAmount float64
	MaxAmount float64
	AnnualMin float64
	AnnualMax float64
	Currency  string
}

// Narrow by intent: a dollar range like "$70,000 - $90,000", "$50000-$70000",
// "$50 - $70" or "$100k-120k". Anything looser produces too many false hits
// in free text; the plausibility bounds below catch what slips through.
var rangeRe = regexp.MustCompile(`\$\s?(\d+(?:,\d{3})*(?:\.\d+)?)([kK])?\s*[-–—]\s*\$?\s?(\d+(?:,\d{3})*(?:\.\d+)?)([kK])?`)

func parseAmount(num, suffix string) float64 {
	num = strings.ReplaceAll(num, ",", "")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if suffix != "" {
		v *= 1000
	}
	return v
}

// ExtractFromText scans text for a single dollar range and classifies its
// pay period off the lower bound: below the hourly threshold means hourly,
// below the monthly threshold means monthly, otherwise yearly. Returns
// false when no range is found or the annualized figures fail the bounds.
func ExtractFromText(text string, b Bounds) (Extracted, bool) {
	m := rangeRe.FindStringSubmatch(text)
	if m == nil {
		return Extracted{}, false
	}

	min := parseAmount(m[1], m[2])
	max := parseAmount(m[3], m[4])
	if min <= 0 || max <= 0 {
		return Extracted{}, false
	}

	var interval domain.CompensationInterval
	var mult float64
	switch {
	case min < b.HourlyThreshold:
		interval, mult = domain.IntervalHourly, HoursPerYear
	case min < b.MonthlyThreshold:
		interval, mult = domain.IntervalMonthly, MonthsPerYear
	default:
		interval, mult = domain.IntervalYearly, 1
	}

	annualMin := min * mult
	annualMax := max * mult
	if annualMin >= annualMax {
		return Extracted{}, false
	}
	if annualMin < b.LowerAnnual || annualMax > b.UpperAnnual {
		return Extracted{}, false
	}

	return Extracted{
		Interval:  interval,
		MinAmount: min,
		MaxAmount: max,
		AnnualMin: annualMin,
		AnnualMax: annualMax,
		Currency:  "USD",
	}, true
}

// Annualize converts a source-supplied compensation to a yearly range in
// place. Yearly input is left untouched.
func Annualize(c *domain.Compensation) {
	if c == nil || c.Interval == domain.IntervalYearly || c.Interval == "" {
		return
	}
	var mult float64
	switch c.Interval {
	case domain.IntervalHourly:
		mult = HoursPerYear
	case domain.IntervalMonthly:
		mult = MonthsPerYear
	case domain.IntervalWeekly:
		mult = WeeksPerYear
	case domain.IntervalDaily:
		mult = DaysPerYear
	default:
		return
	}
	if c.MinAmount != nil {
		v := *c.MinAmount * mult
		c.MinAmount = &v
	}
	if c.MaxAmount != nil {
		v := *c.MaxAmount * mult
		c.MaxAmount = &v
	}
	c.Interval = domain.IntervalYearly
}
