package mock

import (
	"context"

	"github.com/musictechlab/ddexmap"
)

var _ ddexmap.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ddexmap.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
