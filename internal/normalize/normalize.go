// Package normalize maps site-specific vocabulary onto the canonical
// enumerations. The boards localize employment-type labels into the site's
// language, so the alias table carries the variants seen in the wild.
package normalize

import (
	"regexp"
	"strings"

	"jobscout/internal/domain"
)

// jobTypeAliases keys are pre-normalized: lowercase, separators removed.
// Unknown labels are dropped silently, never reported.
var jobTypeAliases = map[string]domain.JobType{
	// full-time
	"fulltime":        domain.JobTypeFullTime,
	"periodointegral": domain.JobTypeFullTime,
	"períodointegral": domain.JobTypeFullTime,
	"tiempocompleto":  domain.JobTypeFullTime,
	"tempointegral":   domain.JobTypeFullTime,
	"vollzeit":        domain.JobTypeFullTime,
	"tempsplein":      domain.JobTypeFullTime,
	"voltijds":        domain.JobTypeFullTime,
	"heltid":          domain.JobTypeFullTime,
	"fuldtid":         domain.JobTypeFullTime,
	"kokopäiväinen":   domain.JobTypeFullTime,
	"tamzamanlı":      domain.JobTypeFullTime,
	"pełnyetat":       domain.JobTypeFullTime,
	"plnýúvazek":      domain.JobTypeFullTime,
	"полнаязанятость": domain.JobTypeFullTime,
	"全職":              domain.JobTypeFullTime,
	"全职":              domain.JobTypeFullTime,
	"正社員":             domain.JobTypeFullTime,
	"월급":              domain.JobTypeFullTime,

	// part-time
	"parttime":       domain.JobTypePartTime,
	"teilzeit":       domain.JobTypePartTime,
	"tiempoparcial":  domain.JobTypePartTime,
	"meioperíodo":    domain.JobTypePartTime,
	"meioperiodo":    domain.JobTypePartTime,
	"tempspartiel":   domain.JobTypePartTime,
	"deeltijds":      domain.JobTypePartTime,
	"deltid":         domain.JobTypePartTime,
	"osaaikainen":    domain.JobTypePartTime,
	"niepełnyetat":   domain.JobTypePartTime,
	"částečnýúvazek": domain.JobTypePartTime,
	"兼職":             domain.JobTypePartTime,
	"兼职":             domain.JobTypePartTime,
	"アルバイト":          domain.JobTypePartTime,

	// internship
	"internship":    domain.JobTypeInternship,
	"prácticas":     domain.JobTypeInternship,
	"practicas":     domain.JobTypeInternship,
	"stage":         domain.JobTypeInternship,
	"praktikum":     domain.JobTypeInternship,
	"estágio":       domain.JobTypeInternship,
	"estagio":       domain.JobTypeInternship,
	"staż":          domain.JobTypeInternship,
	"stáž":          domain.JobTypeInternship,
	"harjoittelu":   domain.JobTypeInternship,
	"實習":            domain.JobTypeInternship,
	"实习":            domain.JobTypeInternship,
	"インターンシップ":      domain.JobTypeInternship,
	"인턴":            domain.JobTypeInternship,
	"stagiairestage": domain.JobTypeInternship,

	// contract
	"contract":   domain.JobTypeContract,
	"contractor": domain.JobTypeContract,
	"contrato":   domain.JobTypeContract,
	"contrat":    domain.JobTypeContract,
	"szerződés":  domain.JobTypeContract,

	// temporary
	"temporary":    domain.JobTypeTemporary,
	"temporal":     domain.JobTypeTemporary,
	"temporário":   domain.JobTypeTemporary,
	"temporario":   domain.JobTypeTemporary,
	"temporaire":   domain.JobTypeTemporary,
	"befristet":    domain.JobTypeTemporary,
	"tijdelijk":    domain.JobTypeTemporary,
	"tillfällig":   domain.JobTypeTemporary,
	"väliaikainen": domain.JobTypeTemporary,
	"tymczasowa":   domain.JobTypeTemporary,
	"dočasné":      domain.JobTypeTemporary,

	// the rest
	"perdiem":    domain.JobTypePerDiem,
	"nights":     domain.JobTypeNights,
	"overnight":  domain.JobTypeNights,
	"summer":     domain.JobTypeSummer,
	"volunteer":  domain.JobTypeVolunteer,
	"voluntario": domain.JobTypeVolunteer,
	"bénévole":   domain.JobTypeVolunteer,
	"other":      domain.JobTypeOther,
	"otro":       domain.JobTypeOther,
	"autre":      domain.JobTypeOther,
}

func jobTypeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sep := range []string{"-", "_", " ", "/", "."} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return s
}

// JobTypeFromString maps a raw employment-type label onto a canonical tag.
// The bool is false when the label is unrecognized; it never errors.
func JobTypeFromString(text string) (domain.JobType, bool) {
	jt, ok := jobTypeAliases[jobTypeKey(text)]
	return jt, ok
}

var intervalAliases = map[string]domain.CompensationInterval{
	"year": domain.IntervalYearly, "years": domain.IntervalYearly, "yearly": domain.IntervalYearly, "annual": domain.IntervalYearly,
	"month": domain.IntervalMonthly, "months": domain.IntervalMonthly, "monthly": domain.IntervalMonthly,
	"week": domain.IntervalWeekly, "weeks": domain.IntervalWeekly, "weekly": domain.IntervalWeekly,
	"day": domain.IntervalDaily, "days": domain.IntervalDaily, "daily": domain.IntervalDaily,
	"hour": domain.IntervalHourly, "hours": domain.IntervalHourly, "hourly": domain.IntervalHourly,
}

// IntervalFromString maps a pay-period label onto a canonical interval.
func IntervalFromString(text string) (domain.CompensationInterval, bool) {
	iv, ok := intervalAliases[strings.ToLower(strings.TrimSpace(text))]
	return iv, ok
}

var remoteKeywords = []string{
	"remote",
	"work from home",
	"wfh",
	"home office",
	"remoto",
	"télétravail",
	"teletravail",
}

// IsRemote reports whether any fragment contains a remote-work keyword.
// Pure substring matching: "not remote" still matches "remote". That is the
// documented heuristic, kept as-is.
func IsRemote(fragments ...string) bool {
	for _, f := range fragments {
		low := strings.ToLower(f)
		for _, kw := range remoteKeywords {
			if strings.Contains(low, kw) {
				return true
			}
		}
	}
	return false
}

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// ExtractEmails pulls RFC-loose email addresses out of free text. Returns
// nil, not an empty slice, when nothing matches.
func ExtractEmails(text string) []string {
	return emailRe.FindAllString(text, -1)
}
