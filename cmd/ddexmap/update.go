package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/musictechlab/ddexmap"
	"github.com/musictechlab/ddexmap/crawl"
	"github.com/musictechlab/ddexmap/fs"
	"github.com/musictechlab/ddexmap/goquery"
	ddexhttp "github.com/musictechlab/ddexmap/http"
	"github.com/musictechlab/ddexmap/reconcile"
	ddexslog "github.com/musictechlab/ddexmap/slog"
	"github.com/musictechlab/ddexmap/sqlite"
)

// update loads the tag map, crawls for candidates, reconciles them into
// the map and writes the result.
func (m *Main) update(ctx context.Context, cli *CLI, stdout, stderr io.Writer) error {
	cfg := m.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	var store ddexmap.MapStore = fs.NewMapStore()
	if m.MapStore != nil {
		store = m.MapStore
	}
	tagMap, err := store.Load(ctx, cli.Map)
	if err != nil {
		return err
	}
	tags := tagMap.Tags()
	fmt.Fprintf(stdout, "Loaded %d tags from %s\n", len(tags), cli.Map)

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = ddexhttp.NewFetcher(
			ddexhttp.WithTimeout(cfg.FetchTimeout),
			ddexhttp.WithUserAgent(cfg.UserAgent),
		)
	}
	defer fetcher.Close()
	if logger != nil {
		fetcher = ddexslog.NewLoggingFetcher(fetcher, logger)
	}

	crawler := &crawl.Crawler{
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(cfg.AllowedDomains),
		Config:    cfg,
		Sleep:     m.Sleep,
	}

	fmt.Fprintf(stdout, "BFS crawl up to depth %d, cap %d pages\n", cfg.MaxDepth, cfg.MaxPages)
	startedAt := time.Now()
	found, err := crawler.Crawl(ctx, tags, func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressFetched:
			fmt.Fprintf(stdout, "depth=%d | %s (ok)\n", e.Depth, e.URL)
		case crawl.ProgressSkipped:
			fmt.Fprintf(stdout, "depth=%d | %s (skip)\n", e.Depth, e.URL)
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Found candidate URLs for %d tags (%d pages, %d URLs visited)\n",
		len(found.Best), found.Pages, found.Visited)

	checker := m.Checker
	if checker == nil {
		checker = ddexhttp.NewChecker(
			ddexhttp.WithTimeout(cfg.CheckTimeout),
			ddexhttp.WithUserAgent(cfg.UserAgent),
		)
	}
	if logger != nil {
		checker = ddexslog.NewLoggingChecker(checker, logger)
	}

	cache, err := lru.New[string, bool](reconcile.DefaultCacheSize)
	if err != nil {
		return err
	}
	reconciler := &reconcile.Reconciler{
		Checker:           checker,
		Limiter:           reconcile.NewDomainLimiter(m.ProbeRate),
		Cache:             cache,
		PlaceholderPrefix: cfg.PlaceholderPrefix,
	}
	result, err := reconciler.Reconcile(ctx, tagMap, found.URLs(), func(e reconcile.Event) {
		if e.Action == reconcile.ActionCleared {
			fmt.Fprintf(stdout, "DEAD %s: %s -> cleared\n", e.Tag, e.Old)
		}
	})
	if err != nil {
		return err
	}

	changed, err := store.Save(ctx, cli.Out, result.Map)
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintf(stdout, "Updated map saved to %s\n", cli.Out)
	} else {
		fmt.Fprintf(stdout, "Map unchanged at %s\n", cli.Out)
	}
	fmt.Fprintf(stdout, "%d replaced, %d kept, %d cleared\n", result.Replaced, result.Kept, result.Cleared)

	if cli.DB == "" {
		return nil
	}

	run := &ddexmap.Run{
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Pages:      found.Pages,
		Visited:    found.Visited,
		Tags:       len(tags),
		Replaced:   result.Replaced,
		Cleared:    result.Cleared,
		Candidates: found.Candidates(),
	}
	if err := m.recordRun(ctx, cli.DB, run, logger); err != nil {
		fmt.Fprintf(stderr, "warning: failed to record run in %s: %s\n", cli.DB, err)
		return nil
	}
	fmt.Fprintf(stdout, "Recorded run %s\n", run.ID)
	return nil
}

// recordRun stores run in the audit database at path.
func (m *Main) recordRun(ctx context.Context, path string, run *ddexmap.Run, logger *slog.Logger) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return err
	}

	var runs ddexmap.RunService = sqlite.NewRunService(m.DB)
	if logger != nil {
		runs = ddexslog.NewLoggingRunService(runs, logger)
	}
	return runs.CreateRun(ctx, run)
}
