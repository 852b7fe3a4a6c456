// Package crawl provides the breadth-first crawl that finds the most
// relevant documentation page for each tag.
package crawl

import (
	"context"
	"sort"
	"time"

	"github.com/musictechlab/ddexmap"
	"github.com/musictechlab/ddexmap/bloom"
)

// Visited-set sizing.
const (
	// visitedExpectedURLs is the expected number of URLs for Bloom filter sizing.
	visitedExpectedURLs = 10000
	// visitedFalsePositiveRate is the Bloom filter false positive rate.
	visitedFalsePositiveRate = 0.01
)

// Crawler explores the allow-listed sites breadth-first and tracks the
// best-scoring page for every tag.
type Crawler struct {
	Fetcher   ddexmap.Fetcher
	Extractor ddexmap.Extractor
	Config    ddexmap.Config

	// Sleep pauses between pages. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Result holds the outcome of a crawl.
type Result struct {
	// Best maps each matched tag to its highest-scoring page.
	// Tags that never matched are absent.
	Best map[string]ddexmap.Candidate

	// Pages is the number of pages fetched and parsed.
	Pages int

	// Visited is the number of distinct URLs dequeued and attempted.
	Visited int
}

// URLs returns the best URL for each matched tag.
func (r *Result) URLs() map[string]string {
	urls := make(map[string]string, len(r.Best))
	for tag, c := range r.Best {
		urls[tag] = c.URL
	}
	return urls
}

// Candidates returns the best candidates sorted by tag.
func (r *Result) Candidates() []*ddexmap.Candidate {
	candidates := make([]*ddexmap.Candidate, 0, len(r.Best))
	for _, c := range r.Best {
		c := c
		candidates = append(candidates, &c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Tag < candidates[j].Tag
	})
	return candidates
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Depth int
	Pages int
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressFetched reports a page that was fetched and scored.
	ProgressFetched ProgressType = iota
	// ProgressSkipped reports a page that could not be fetched or parsed.
	ProgressSkipped
	// ProgressFinished reports the end of the crawl.
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl runs a depth-limited breadth-first crawl from the configured seeds
// and scores every fetched page against tags.
//
// Per-page failures never abort the crawl. If ctx is canceled the crawl
// stops and returns the partial result along with the context error.
func (c *Crawler) Crawl(ctx context.Context, tags []string, progress ProgressFunc) (*Result, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}
	sleep := c.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	report := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	visited := bloom.NewSet(visitedExpectedURLs, visitedFalsePositiveRate)
	frontier := NewFrontier()
	seeded := make(map[string]bool)
	for _, seed := range c.Config.Seeds {
		if seeded[seed] {
			continue
		}
		seeded[seed] = true
		frontier.Push(ddexmap.QueuedURL{URL: seed, Depth: 0})
	}

	result := &Result{Best: make(map[string]ddexmap.Candidate)}

	for frontier.Len() > 0 && result.Pages < c.Config.MaxPages {
		if err := ctx.Err(); err != nil {
			result.Visited = visited.Len()
			return result, err
		}

		item, _ := frontier.Pop()
		if visited.Has(item.URL) || !c.Config.AllowedDomains.Allows(item.URL) {
			continue
		}
		visited.Add(item.URL)

		html, err := c.Fetcher.Fetch(ctx, item.URL)
		if err != nil {
			report(ProgressEvent{Type: ProgressSkipped, URL: item.URL, Depth: item.Depth, Pages: result.Pages, Error: err})
			continue
		}

		page, err := c.Extractor.Extract(item.URL, html)
		if err != nil {
			report(ProgressEvent{Type: ProgressSkipped, URL: item.URL, Depth: item.Depth, Pages: result.Pages, Error: err})
			continue
		}
		result.Pages++
		report(ProgressEvent{Type: ProgressFetched, URL: item.URL, Depth: item.Depth, Pages: result.Pages})

		c.scorePage(result.Best, tags, item.URL, page.Text)

		if item.Depth < c.Config.MaxDepth {
			for _, link := range page.Links {
				if !visited.Has(link) {
					frontier.Push(ddexmap.QueuedURL{URL: link, Depth: item.Depth + 1})
				}
			}
		}

		if err := sleep(ctx, c.Config.Delay); err != nil {
			result.Visited = visited.Len()
			return result, err
		}
	}

	result.Visited = visited.Len()
	report(ProgressEvent{Type: ProgressFinished, Pages: result.Pages})
	return result, nil
}

// scorePage updates best with every tag that occurs in text. An existing
// entry is only replaced by a strictly higher score, so ties keep the
// page found first.
func (c *Crawler) scorePage(best map[string]ddexmap.Candidate, tags []string, pageURL, text string) {
	for _, tag := range tags {
		if CountWord(text, tag) == 0 {
			continue
		}
		score := Score(c.Config.DomainPriority, pageURL, text, tag)
		if current, ok := best[tag]; ok && score <= current.Score {
			continue
		}
		best[tag] = ddexmap.Candidate{Tag: tag, URL: pageURL, Score: score}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
