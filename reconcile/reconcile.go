// Package reconcile merges crawl results into an existing tag map and
// clears entries whose URLs are no longer alive.
package reconcile

import (
	"context"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/musictechlab/ddexmap"
)

// DefaultCacheSize is the number of liveness results remembered per run.
const DefaultCacheSize = 4096

// Reconciler updates placeholder entries with crawl candidates and
// validates every resulting URL.
type Reconciler struct {
	Checker ddexmap.LivenessChecker

	// Limiter paces liveness probes per domain. Optional.
	Limiter ddexmap.DomainLimiter

	// Cache remembers liveness per URL so tags sharing a page are probed
	// once. Optional.
	Cache *lru.Cache[string, bool]

	// PlaceholderPrefix marks entries eligible for replacement.
	PlaceholderPrefix string
}

// Result holds the reconciled map and what happened to its entries.
type Result struct {
	Map *ddexmap.TagMap

	// Replaced counts placeholders filled with a live candidate.
	Replaced int
	// Kept counts non-empty entries that survived unchanged.
	Kept int
	// Cleared counts entries emptied because they were dead or unresolved.
	Cleared int
}

// Action describes what reconciliation did with one tag.
type Action int

const (
	// ActionKept means the existing URL was kept (possibly empty).
	ActionKept Action = iota
	// ActionReplaced means a placeholder was replaced by a live candidate.
	ActionReplaced
	// ActionCleared means the URL was cleared.
	ActionCleared
)

// Event reports the outcome for one tag.
type Event struct {
	Tag    string
	Old    string
	New    string
	Action Action
}

// ProgressFunc is a callback invoked once per tag.
type ProgressFunc func(Event)

// Reconcile builds the output map from in, in the same key order.
// A placeholder entry takes the tag's candidate when one exists; other
// non-empty entries are never replaced. Every non-empty result is probed
// and cleared if not alive. A placeholder without a candidate is cleared
// without a probe.
//
// Reconcile only fails if ctx is canceled while waiting on the limiter.
func (r *Reconciler) Reconcile(ctx context.Context, in *ddexmap.TagMap, candidates map[string]string, progress ProgressFunc) (*Result, error) {
	result := &Result{Map: ddexmap.NewTagMap()}

	for _, tag := range in.Tags() {
		raw, _ := in.Get(tag)
		old := strings.TrimSpace(raw)
		final := old

		placeholder := ddexmap.IsPlaceholder(old, r.PlaceholderPrefix)
		if placeholder {
			final = strings.TrimSpace(candidates[tag])
		}

		if final != "" {
			alive, err := r.alive(ctx, final)
			if err != nil {
				return nil, err
			}
			if !alive {
				final = ""
			}
		}

		action := ActionKept
		switch {
		case final == "" && old != "":
			action = ActionCleared
			result.Cleared++
		case placeholder:
			action = ActionReplaced
			result.Replaced++
		case final != "":
			result.Kept++
		}

		result.Map.Set(tag, final)
		if progress != nil {
			progress(Event{Tag: tag, Old: old, New: final, Action: action})
		}
	}

	return result, nil
}

func (r *Reconciler) alive(ctx context.Context, rawURL string) (bool, error) {
	if r.Cache != nil {
		if alive, ok := r.Cache.Get(rawURL); ok {
			return alive, nil
		}
	}

	if r.Limiter != nil {
		var host string
		if u, err := url.Parse(rawURL); err == nil {
			host = strings.ToLower(u.Hostname())
		}
		if err := r.Limiter.Wait(ctx, host); err != nil {
			return false, err
		}
	}
	alive := r.Checker.Alive(ctx, rawURL)
	if r.Cache != nil {
		r.Cache.Add(rawURL, alive)
	}
	return alive, nil
}
