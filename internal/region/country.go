// Package region maps country names and aliases onto the regional domains
// and API locale codes the job boards use.
package region

import (
	"fmt"
	"sort"
	"strings"
)

// Country is a static descriptor resolved from a user-supplied alias.
// The indeed field uses a combined "domain:api-code" notation when the
// board subdomain differs from the locale code ("www:us", "uk:gb").
type Country struct {
	Name      string
	aliases   []string
	indeed    string
	glassdoor string
}

// DomainSuffix returns the Indeed board subdomain ("www", "au", "co.in", ...).
func (c Country) DomainSuffix() string {
	if d, _, ok := strings.Cut(c.indeed, ":"); ok {
		return d
	}
	return c.indeed
}

// APICode returns the locale code used by API payloads ("us", "gb", ...).
func (c Country) APICode() string {
	if _, code, ok := strings.Cut(c.indeed, ":"); ok {
		return code
	}
	return c.indeed
}

// Glassdoor returns the Glassdoor domain suffix, false when the country has
// no Glassdoor presence.
func (c Country) Glassdoor() (string, bool) {
	return c.glassdoor, c.glassdoor != ""
}

// IsUSA reports whether the descriptor is the United States entry. Salary
// inference from free text only runs for US-domain searches.
func (c Country) IsUSA() bool { return c.Name == "USA" }

func entry(names, indeed, glassdoor string) Country {
	aliases := strings.Split(names, ",")
	for i := range aliases {
		aliases[i] = strings.TrimSpace(aliases[i])
	}
	return Country{
		Name:      aliases[0],
		aliases:   aliases,
		indeed:    indeed,
		glassdoor: glassdoor,
	}
}

var countries = []Country{
	entry("Argentina", "com.ar", "com.ar"),
	entry("Australia,au", "au", "com.au"),
	entry("Austria,at", "at", "at"),
	entry("Bahrain", "bh", ""),
	entry("Belgium,be", "be", "be"),
	entry("Brazil,br", "com.br", "com.br"),
	entry("Bulgaria", "bg", ""),
	entry("Canada,ca", "ca", "ca"),
	entry("Chile", "cl", ""),
	entry("China", "cn", ""),
	entry("Colombia", "co", ""),
	entry("Costa Rica", "cr", ""),
	entry("Croatia", "hr", ""),
	entry("Cyprus", "cy", ""),
	entry("Czech Republic,czechia", "cz", ""),
	entry("Denmark", "dk", ""),
	entry("Ecuador", "ec", ""),
	entry("Egypt", "eg", ""),
	entry("Estonia", "ee", ""),
	entry("Finland", "fi", ""),
	entry("France,fr", "fr", "fr"),
	entry("Germany,de", "de", "de"),
	entry("Greece", "gr", ""),
	entry("Hong Kong,hk", "hk", "com.hk"),
	entry("Hungary", "hu", ""),
	entry("India,in", "in", "co.in"),
	entry("Indonesia", "id", ""),
	entry("Ireland,ie", "ie", "ie"),
	entry("Israel", "il", ""),
	entry("Italy,it", "it", "it"),
	entry("Japan", "jp", ""),
	entry("Kuwait", "kw", ""),
	entry("Latvia", "lv", ""),
	entry("Lithuania", "lt", ""),
	entry("Luxembourg", "lu", ""),
	entry("Malaysia", "malaysia:my", ""),
	entry("Malta", "malta:mt", ""),
	entry("Mexico,mx", "mx", "com.mx"),
	entry("Morocco", "ma", ""),
	entry("Netherlands,nl", "nl", "nl"),
	entry("New Zealand,nz", "nz", "co.nz"),
	entry("Nigeria", "ng", ""),
	entry("Norway", "no", ""),
	entry("Oman", "om", ""),
	entry("Pakistan", "pk", ""),
	entry("Panama", "pa", ""),
	entry("Peru", "pe", ""),
	entry("Philippines", "ph", ""),
	entry("Poland,pl", "pl", ""),
	entry("Portugal", "pt", ""),
	entry("Qatar", "qa", ""),
	entry("Romania", "ro", ""),
	entry("Saudi Arabia", "sa", ""),
	entry("Singapore,sg", "sg", "sg"),
	entry("Slovakia", "sk", ""),
	entry("Slovenia", "sl", ""),
	entry("South Africa", "za", ""),
	entry("South Korea", "kr", ""),
	entry("Spain,es", "es", "es"),
	entry("Sweden", "se", ""),
	entry("Switzerland,ch", "ch", "ch"),
	entry("Taiwan", "tw", ""),
	entry("Thailand", "th", ""),
	entry("Turkey", "com.tr", ""),
	entry("Ukraine", "ua", ""),
	entry("United Arab Emirates,uae", "ae", ""),
	entry("UK,united kingdom", "uk:gb", "co.uk"),
	entry("USA,us,united states", "www:us", "com"),
	entry("Uruguay", "uy", ""),
	entry("Venezuela", "ve", ""),
	entry("Vietnam", "vn", ""),
	entry("Worldwide,global", "www", ""),
}

var byAlias = func() map[string]Country {
	m := make(map[string]Country)
	for _, c := range countries {
		for _, a := range c.aliases {
			m[strings.ToLower(a)] = c
		}
	}
	return m
}()

// Resolve looks a country up by name or alias, case-insensitively. Unknown
// names fail with an error that enumerates the valid canonical names.
func Resolve(name string) (Country, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := byAlias[key]; ok {
		return c, nil
	}
	valid := make([]string, 0, len(countries))
	for _, c := range countries {
		valid = append(valid, c.Name)
	}
	sort.Strings(valid)
	return Country{}, fmt.Errorf("unknown country %q (valid: %s)", name, strings.Join(valid, ", "))
}
