// Package http provides HTTP implementations of ddexmap.Fetcher and
// ddexmap.LivenessChecker for static documentation sites.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/musictechlab/ddexmap"
)

// Ensure Fetcher implements ddexmap.Fetcher at compile time.
var _ ddexmap.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages with GET requests.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher or a Checker.
type Option func(*options)

type options struct {
	timeout   time.Duration
	userAgent string
	transport http.RoundTripper
}

// WithTimeout sets the timeout for each request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithTransport replaces the default HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

func buildOptions(timeout time.Duration, opts []Option) options {
	o := options{
		timeout:   timeout,
		userAgent: ddexmap.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewFetcher creates a new Fetcher. The timeout defaults to
// ddexmap.DefaultFetchTimeout (15s).
func NewFetcher(opts ...Option) *Fetcher {
	o := buildOptions(ddexmap.DefaultFetchTimeout, opts)
	return &Fetcher{
		client: &http.Client{
			Timeout:   o.timeout,
			Transport: o.transport,
		},
		userAgent: o.userAgent,
	}
}

// Fetch retrieves the HTML content from the given URL. It fails unless the
// server answers 200 with an HTML content type.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", ddexmap.Errorf(ddexmap.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ddexmap.Errorf(ddexmap.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		return "", ddexmap.Errorf(ddexmap.EINVALID, "unexpected content type %q for %s", ct, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
