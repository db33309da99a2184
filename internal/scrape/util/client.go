package util

import (
	"net/http"
	"net/url"
	"time"
)

// NewClient builds the per-adapter HTTP client. Each adapter invocation
// gets a fresh client so cookies and TLS state never leak across runs.
// proxy may be empty, "host:port" or a full URL.
func NewClient(proxy string, timeout time.Duration) *http.Client {
	tr := &http.Transport{}
	if proxy != "" {
		if u := parseProxy(proxy); u != nil {
			tr.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

func parseProxy(raw string) *url.URL {
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return u
	}
	if u, err := url.Parse("http://" + raw); err == nil && u.Host != "" {
		return u
	}
	return nil
}
