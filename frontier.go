package ddexmap

import "context"

// QueuedURL is a URL waiting in the crawl frontier.
type QueuedURL struct {
	URL   string
	Depth int
}

// URLFrontier is the queue of URLs awaiting a visit.
type URLFrontier interface {
	// Push appends a URL to the back of the queue.
	Push(item QueuedURL)

	// Pop removes the URL at the front of the queue.
	// Returns false if the frontier is empty.
	Pop() (QueuedURL, bool)

	// Len returns the number of queued URLs.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
