// Package httpclient builds the http.Client shared by the catalog and
// geocoding clients.
package httpclient

import (
	"net/http"
	"time"
)

type userAgentTripper struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	r.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(r)
}

// New returns a client that stamps every request with the given
// User-Agent and applies a hard request timeout.
func New(userAgent string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTripper{
			next:      http.DefaultTransport,
			userAgent: userAgent,
		},
	}
}
