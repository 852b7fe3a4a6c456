package mock

import (
	"context"

	"github.com/musictechlab/ddexmap"
)

var _ ddexmap.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of ddexmap.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ ddexmap.LivenessChecker = (*LivenessChecker)(nil)

// LivenessChecker is a mock implementation of ddexmap.LivenessChecker.
type LivenessChecker struct {
	AliveFn func(ctx context.Context, url string) bool
}

func (c *LivenessChecker) Alive(ctx context.Context, url string) bool {
	return c.AliveFn(ctx, url)
}
