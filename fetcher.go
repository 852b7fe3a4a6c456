package ddexmap

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML body of the URL.
	// Any failure, including a non-HTML response, is returned as an error
	// and means the page is unusable.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// LivenessChecker probes whether a URL currently resolves to a usable page.
type LivenessChecker interface {
	// Alive reports whether the URL is reachable. It never returns an error;
	// any failure means not alive.
	Alive(ctx context.Context, url string) bool
}
