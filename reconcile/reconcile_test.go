package reconcile_test

import (
	"context"
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/musictechlab/ddexmap"
	"github.com/musictechlab/ddexmap/mock"
	"github.com/musictechlab/ddexmap/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeholder = "https://ddex.net/docs/"

func tagMap(pairs ...string) *ddexmap.TagMap {
	m := ddexmap.NewTagMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// checker reports the given URLs as alive and records every probe.
func checker(probed *[]string, alive ...string) *mock.LivenessChecker {
	live := make(map[string]bool)
	for _, u := range alive {
		live[u] = true
	}
	return &mock.LivenessChecker{
		AliveFn: func(_ context.Context, url string) bool {
			*probed = append(*probed, url)
			return live[url]
		},
	}
}

func values(m *ddexmap.TagMap) map[string]string {
	out := make(map[string]string)
	for _, tag := range m.Tags() {
		out[tag], _ = m.Get(tag)
	}
	return out
}

func TestReconciler_Reconcile(t *testing.T) {
	t.Parallel()

	t.Run("replaces placeholder with live candidate", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{
			Checker:           checker(&probed, "https://ern.ddex.net/isrc-spec"),
			PlaceholderPrefix: placeholder,
		}

		result, err := r.Reconcile(context.Background(),
			tagMap("ISRC", "https://ddex.net/docs/isrc"),
			map[string]string{"ISRC": "https://ern.ddex.net/isrc-spec"}, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ISRC": "https://ern.ddex.net/isrc-spec"}, values(result.Map))
		assert.Equal(t, 1, result.Replaced)
		assert.Equal(t, []string{"https://ern.ddex.net/isrc-spec"}, probed)
	})

	t.Run("clears placeholder when candidate is dead", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{Checker: checker(&probed), PlaceholderPrefix: placeholder}

		result, err := r.Reconcile(context.Background(),
			tagMap("ISRC", "https://ddex.net/docs/isrc"),
			map[string]string{"ISRC": "https://ern.ddex.net/isrc-spec"}, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ISRC": ""}, values(result.Map))
		assert.Equal(t, 1, result.Cleared)
	})

	t.Run("clears placeholder without candidate and without probing", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{Checker: checker(&probed, "https://ddex.net/docs/grid"), PlaceholderPrefix: placeholder}

		result, err := r.Reconcile(context.Background(), tagMap("GRid", "https://ddex.net/docs/grid"), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"GRid": ""}, values(result.Map))
		assert.Empty(t, probed)
		assert.Equal(t, 1, result.Cleared)
	})

	t.Run("never replaces a non-placeholder URL", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{Checker: checker(&probed, "https://example.com/working"), PlaceholderPrefix: placeholder}

		result, err := r.Reconcile(context.Background(),
			tagMap("Foo", "https://example.com/working"),
			map[string]string{"Foo": "https://ern.ddex.net/foo"}, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Foo": "https://example.com/working"}, values(result.Map))
		assert.Equal(t, 1, result.Kept)
	})

	t.Run("clears a dead non-placeholder URL", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{Checker: checker(&probed), PlaceholderPrefix: placeholder}

		result, err := r.Reconcile(context.Background(),
			tagMap("Foo", "https://example.com/working"),
			map[string]string{"Foo": "https://ern.ddex.net/foo"}, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Foo": ""}, values(result.Map))
	})

	t.Run("leaves empty entries empty without probing", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{Checker: checker(&probed), PlaceholderPrefix: placeholder}

		result, err := r.Reconcile(context.Background(),
			tagMap("Deal", "", "Party", "   "),
			map[string]string{"Deal": "https://ern.ddex.net/deal"}, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Deal": "", "Party": ""}, values(result.Map))
		assert.Empty(t, probed)
	})

	t.Run("trims whitespace before validating", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{Checker: checker(&probed, "https://ern.ddex.net/release"), PlaceholderPrefix: placeholder}

		result, err := r.Reconcile(context.Background(), tagMap("Release", "  https://ern.ddex.net/release\n"), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Release": "https://ern.ddex.net/release"}, values(result.Map))
	})

	t.Run("preserves key set and order", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{Checker: checker(&probed, "https://ern.ddex.net/b"), PlaceholderPrefix: placeholder}
		in := tagMap("Zeta", "", "Alpha", "https://ddex.net/docs/alpha", "Mid", "https://ern.ddex.net/b")

		result, err := r.Reconcile(context.Background(), in, map[string]string{"Unknown": "https://ern.ddex.net/u"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, result.Map.Tags())
	})

	t.Run("is idempotent on a resolved map", func(t *testing.T) {
		t.Parallel()

		var probed []string
		live := []string{"https://ern.ddex.net/a", "https://service.ddex.net/b"}
		r := &reconcile.Reconciler{Checker: checker(&probed, live...), PlaceholderPrefix: placeholder}
		in := tagMap("A", live[0], "B", live[1], "C", "")

		first, err := r.Reconcile(context.Background(), in, nil, nil)
		require.NoError(t, err)
		second, err := r.Reconcile(context.Background(), first.Map, map[string]string{"A": "https://ern.ddex.net/other"}, nil)
		require.NoError(t, err)

		a, err := first.Map.Encode()
		require.NoError(t, err)
		b, err := second.Map.Encode()
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
		assert.Equal(t, values(in), values(second.Map))
	})

	t.Run("reports one event per tag", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{Checker: checker(&probed, "https://ern.ddex.net/isrc"), PlaceholderPrefix: placeholder}
		var events []reconcile.Event

		_, err := r.Reconcile(context.Background(),
			tagMap("ISRC", "https://ddex.net/docs/isrc", "Dead", "https://ern.ddex.net/dead", "Empty", ""),
			map[string]string{"ISRC": "https://ern.ddex.net/isrc"},
			func(e reconcile.Event) { events = append(events, e) })

		require.NoError(t, err)
		assert.Equal(t, []reconcile.Event{
			{Tag: "ISRC", Old: "https://ddex.net/docs/isrc", New: "https://ern.ddex.net/isrc", Action: reconcile.ActionReplaced},
			{Tag: "Dead", Old: "https://ern.ddex.net/dead", New: "", Action: reconcile.ActionCleared},
			{Tag: "Empty", Old: "", New: "", Action: reconcile.ActionKept},
		}, events)
	})

	t.Run("waits on the limiter with the URL host", func(t *testing.T) {
		t.Parallel()

		var probed, domains []string
		r := &reconcile.Reconciler{
			Checker: checker(&probed, "https://ERN.ddex.net/a"),
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					domains = append(domains, domain)
					return nil
				},
			},
			PlaceholderPrefix: placeholder,
		}

		_, err := r.Reconcile(context.Background(), tagMap("A", "https://ERN.ddex.net/a", "B", ""), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"ern.ddex.net"}, domains)
	})

	t.Run("returns limiter error", func(t *testing.T) {
		t.Parallel()

		var probed []string
		r := &reconcile.Reconciler{
			Checker: checker(&probed),
			Limiter: &mock.DomainLimiter{
				WaitFn: func(ctx context.Context, _ string) error {
					return context.Canceled
				},
			},
			PlaceholderPrefix: placeholder,
		}

		_, err := r.Reconcile(context.Background(), tagMap("A", "https://ern.ddex.net/a"), nil, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, probed)
	})

	t.Run("probes a shared URL once when caching", func(t *testing.T) {
		t.Parallel()

		cache, err := lru.New[string, bool](reconcile.DefaultCacheSize)
		require.NoError(t, err)
		var probed, domains []string
		r := &reconcile.Reconciler{
			Checker: checker(&probed, "https://ern.ddex.net/release"),
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					domains = append(domains, domain)
					return nil
				},
			},
			Cache:             cache,
			PlaceholderPrefix: placeholder,
		}

		result, err := r.Reconcile(context.Background(),
			tagMap("Release", "https://ern.ddex.net/release", "ReleaseId", "https://ddex.net/docs/rid", "Dead", "https://ern.ddex.net/dead", "Dead2", "https://ern.ddex.net/dead"),
			map[string]string{"ReleaseId": "https://ern.ddex.net/release"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://ern.ddex.net/release", "https://ern.ddex.net/dead"}, probed)
		assert.Len(t, domains, 2)
		assert.Equal(t, map[string]string{
			"Release":   "https://ern.ddex.net/release",
			"ReleaseId": "https://ern.ddex.net/release",
			"Dead":      "",
			"Dead2":     "",
		}, values(result.Map))
	})
}
