package ddexmap

import (
	"context"
	"time"
)

// Candidate is the best page found for a tag during a crawl.
type Candidate struct {
	Tag   string `json:"tag"`
	URL   string `json:"url"`
	Score int    `json:"score"`
}

// Run records the outcome of one crawl and reconcile pass.
type Run struct {
	ID         string       `json:"id"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Pages      int          `json:"pages"`
	Visited    int          `json:"visited"`
	Tags       int          `json:"tags"`
	Replaced   int          `json:"replaced"`
	Cleared    int          `json:"cleared"`
	Candidates []*Candidate `json:"candidates"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.StartedAt.IsZero() {
		return Errorf(EINVALID, "run start time required")
	}
	for _, c := range r.Candidates {
		if c.Tag == "" {
			return Errorf(EINVALID, "candidate tag required")
		}
		if c.URL == "" {
			return Errorf(EINVALID, "candidate URL required for tag %q", c.Tag)
		}
	}
	return nil
}

// RunService records crawl runs for later inspection.
type RunService interface {
	// CreateRun stores a run and its candidates. An ID is assigned if empty.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its candidates.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, most recent first, without candidates.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
