// Package google scrapes the Google Jobs universal result. Job records sit
// inside an embedded JSON blob keyed "520084652"; pagination is a forward
// cursor lifted from a data attribute and replayed against an async
// endpoint.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobscout/internal/domain"
	"jobscout/internal/logx"
	"jobscout/internal/normalize"
	"jobscout/internal/scrape/util"
)

const jobsBlockKey = "520084652"

type Scraper struct {
	limiter *util.HostLimiter
	log     *logx.Logger
	baseURL string
}

func New(limiter *util.HostLimiter, log *logx.Logger) *Scraper {
	return &Scraper{
		limiter: limiter,
		log:     log,
		baseURL: "https://www.google.com",
	}
}

func (s *Scraper) Name() string { return string(domain.SiteGoogle) }

var (
	cursorRe    = regexp.MustCompile(`data-async-fc="([^"]+)"`)
	jobsBlockRe = regexp.MustCompile(`(?s)` + jobsBlockKey + `":(\[.*?\]\s*])\s*}`)
	daysAgoRe   = regexp.MustCompile(`(\d+)\s+days?\s+ago`)
)

func (s *Scraper) Scrape(ctx context.Context, req *domain.ScrapeRequest) ([]domain.JobPost, error) {
	hc := util.NewClient(req.Proxy, 20*time.Second)

	term := strings.TrimSpace(req.GoogleSearchTerm)
	if term == "" {
		term = buildSearchTerm(req)
	}

	body, err := s.get(ctx, hc, s.baseURL+"/search?q="+url.QueryEscape(term)+"&ibp=htl;jobs")
	if err != nil {
		s.log.Warnf("[google] initial page: %v", err)
		return nil, nil
	}

	seen := map[string]bool{}
	var out []domain.JobPost
	s.collect(body, req, seen, &out)

	cursor := firstMatch(cursorRe, body)
	for page := 0; cursor != "" && len(out) < req.ResultsWanted+req.Offset && page < 20; page++ {
		if err := util.Pause(ctx, 2*time.Second); err != nil {
			break
		}
		u := s.baseURL + "/async/callback:550?fc=" + url.QueryEscape(cursor) + "&fcv=3&async=_fmt:prog"
		body, err = s.get(ctx, hc, u)
		if err != nil {
			s.log.Warnf("[google] cursor page: %v", err)
			break
		}
		before := len(out)
		s.collect(body, req, seen, &out)
		if len(out) == before {
			break
		}
		cursor = firstMatch(cursorRe, body)
	}

	if req.Offset > 0 {
		if req.Offset >= len(out) {
			return nil, nil
		}
		out = out[req.Offset:]
	}
	if len(out) > req.ResultsWanted {
		out = out[:req.ResultsWanted]
	}
	s.log.Infof("[google] found %d jobs", len(out))
	return out, nil
}

func buildSearchTerm(req *domain.ScrapeRequest) string {
	term := req.SearchTerm + " jobs"
	if req.Location != "" {
		term += " near " + req.Location
	}
	if req.IsRemote {
		term += " remote"
	}
	if req.HoursOld > 0 && req.HoursOld <= 24 {
		term += " since yesterday"
	}
	return term
}

func (s *Scraper) get(ctx context.Context, hc *http.Client, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return "", err
	}
	res, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("google get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return "", fmt.Errorf("google status %d", res.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// collect parses every embedded jobs blob in body into out, deduping by URL.
func (s *Scraper) collect(body string, req *domain.ScrapeRequest, seen map[string]bool, out *[]domain.JobPost) {
	for _, m := range jobsBlockRe.FindAllStringSubmatch(body, -1) {
		var block any
		if err := json.Unmarshal([]byte(m[1]), &block); err != nil {
			// one bad blob never aborts the page
			continue
		}
		info := findJobInfo(block)
		if info == nil {
			info = asJobArray(block)
		}
		if info == nil {
			continue
		}
		job, ok := s.mapJob(info, req)
		if !ok || seen[job.JobURL] {
			continue
		}
		seen[job.JobURL] = true
		*out = append(*out, job)
	}
}

// findJobInfo walks the decoded blob for the nested array stored under the
// jobs key.
func findJobInfo(v any) []any {
	switch t := v.(type) {
	case map[string]any:
		if raw, ok := t[jobsBlockKey]; ok {
			if arr, ok := raw.([]any); ok {
				return arr
			}
		}
		for _, val := range t {
			if r := findJobInfo(val); r != nil {
				return r
			}
		}
	case []any:
		for _, val := range t {
			if r := findJobInfo(val); r != nil {
				return r
			}
		}
	}
	return nil
}

// asJobArray accepts a blob that already is the job array (title first).
func asJobArray(v any) []any {
	arr, ok := v.([]any)
	if !ok || len(arr) < 4 {
		return nil
	}
	if _, ok := arr[0].(string); !ok {
		return nil
	}
	return arr
}

// Field layout inside the job array, by observed index.
const (
	idxTitle       = 0
	idxCompany     = 1
	idxLocation    = 2
	idxURL         = 3
	idxPostedAgo   = 12
	idxDescription = 19
)

func (s *Scraper) mapJob(info []any, req *domain.ScrapeRequest) (domain.JobPost, bool) {
	title := util.CleanText(strAt(info, idxTitle))
	jobURL := urlAt(info, idxURL)
	if title == "" || jobURL == "" {
		return domain.JobPost{}, false
	}

	job := domain.JobPost{
		Title:       title,
		JobURL:      jobURL,
		CompanyName: util.CleanText(strAt(info, idxCompany)),
		Location:    util.ParseLocation(strAt(info, idxLocation)),
		Description: util.CleanText(strAt(info, idxDescription)),
	}
	if job.Description != "" {
		job.Emails = normalize.ExtractEmails(job.Description)
	}
	if ago := strAt(info, idxPostedAgo); ago != "" {
		if m := daysAgoRe.FindStringSubmatch(ago); m != nil {
			if days, err := strconv.Atoi(m[1]); err == nil {
				job.DatePosted = time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
			}
		}
	}
	remote := normalize.IsRemote(title, job.Description, strAt(info, idxLocation))
	job.IsRemote = &remote
	return job, true
}

func strAt(arr []any, i int) string {
	if i >= len(arr) {
		return ""
	}
	s, _ := arr[i].(string)
	return s
}

// urlAt digs the first URL string out of the nested link cell.
func urlAt(arr []any, i int) string {
	if i >= len(arr) {
		return ""
	}
	return firstURL(arr[i])
}

func firstURL(v any) string {
	switch t := v.(type) {
	case string:
		if strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://") {
			return t
		}
	case []any:
		for _, val := range t {
			if u := firstURL(val); u != "" {
				return u
			}
		}
	}
	return ""
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
