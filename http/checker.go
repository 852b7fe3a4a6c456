package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/musictechlab/ddexmap"
)

// Ensure Checker implements ddexmap.LivenessChecker at compile time.
var _ ddexmap.LivenessChecker = (*Checker)(nil)

// Checker validates URLs with a HEAD request, falling back to GET when
// the server rejects HEAD.
type Checker struct {
	client    *http.Client
	userAgent string
}

// NewChecker creates a new Checker. The timeout defaults to
// ddexmap.DefaultCheckTimeout (8s). Redirects are followed.
func NewChecker(opts ...Option) *Checker {
	o := buildOptions(ddexmap.DefaultCheckTimeout, opts)
	return &Checker{
		client: &http.Client{
			Timeout:   o.timeout,
			Transport: o.transport,
		},
		userAgent: o.userAgent,
	}
}

// Alive reports whether url answers HEAD with 200, 301 or 302, or, when
// HEAD is not allowed, answers GET with 200.
func (c *Checker) Alive(ctx context.Context, url string) bool {
	if !hasHTTPScheme(url) {
		return false
	}

	status, err := c.status(ctx, http.MethodHead, url)
	if err != nil {
		return false
	}
	switch status {
	case http.StatusOK, http.StatusMovedPermanently, http.StatusFound:
		return true
	case http.StatusMethodNotAllowed:
		status, err = c.status(ctx, http.MethodGet, url)
		return err == nil && status == http.StatusOK
	}
	return false
}

func (c *Checker) status(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	return resp.StatusCode, nil
}

func hasHTTPScheme(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
