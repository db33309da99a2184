package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Site identifies one supported job board.
type Site string

const (
	SiteIndeed       Site = "indeed"
	SiteLinkedIn     Site = "linkedin"
	SiteZipRecruiter Site = "zip_recruiter"
	SiteGlassdoor    Site = "glassdoor"
	SiteGoogle       Site = "google"
	SiteBayt         Site = "bayt"
	SiteNaukri       Site = "naukri"
	SiteBDJobs       Site = "bdjobs"
	SiteSeek         Site = "seek"
)

// AllSites returns every supported site in stable order.
func AllSites() []Site {
	return []Site{
		SiteIndeed,
		SiteLinkedIn,
		SiteZipRecruiter,
		SiteGlassdoor,
		SiteGoogle,
		SiteBayt,
		SiteNaukri,
		SiteBDJobs,
		SiteSeek,
	}
}

func siteKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sep := range []string{"-", "_", " ", "."} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return s
}

// ResolveSite maps a user-supplied name onto a Site. Matching ignores case
// and separators, so "zip-recruiter", "zip_recruiter" and "Zip Recruiter"
// all resolve to the same site.
func ResolveSite(name string) (Site, error) {
	want := siteKey(name)
	for _, s := range AllSites() {
		if siteKey(string(s)) == want {
			return s, nil
		}
	}
	valid := make([]string, 0, len(AllSites()))
	for _, s := range AllSites() {
		valid = append(valid, string(s))
	}
	sort.Strings(valid)
	return "", fmt.Errorf("unknown site %q (valid: %s)", name, strings.Join(valid, ", "))
}

// ResolveSites resolves a list of names. An empty list selects every site.
func ResolveSites(names []string) ([]Site, error) {
	if len(names) == 0 {
		return AllSites(), nil
	}
	out := make([]Site, 0, len(names))
	seen := map[Site]bool{}
	for _, n := range names {
		s, err := ResolveSite(n)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}
