// Package pipeline composes the fetch and parse halves of an
// acquisition into the one-call search the CLI and library consumers
// use. It also owns the run-directory cleanup discipline the core
// deliberately stays out of.
package pipeline

import (
	"context"
	"log/slog"
	"os"

	"juscraper/lib/scrape"
)

type Options struct {
	Fetcher scrape.FetcherOptions
	// keep the run directory around after parsing instead of removing it
	KeepFiles bool
	// keep heavy nested collections in extracted records
	Verbose bool
}

// Search downloads every page of one query and parses the run into a
// table. The run directory is removed after a successful parse unless
// KeepFiles is set; on error it is always left intact so the run can be
// inspected or resumed with an explicit page range.
func Search(ctx context.Context, transport scrape.Transport, profile *scrape.Profile, q scrape.Query, pages *scrape.PageRange, opts Options) (*scrape.Table, error) {
	fetcher := scrape.NewFetcher(transport, opts.Fetcher)
	rc, err := fetcher.Fetch(ctx, profile, q, pages)
	if err != nil {
		return nil, err
	}

	table, err := scrape.Aggregate(ctx, rc.Dir, profile.Extractor, scrape.ExtractOptions{
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	if !opts.KeepFiles {
		err := os.RemoveAll(rc.Dir)
		if err != nil {
			slog.WarnContext(ctx, "failed to remove run directory", "dir", rc.Dir, "err", err)
		}
	} else {
		slog.InfoContext(ctx, "keeping run directory", "dir", rc.Dir)
	}

	return table, nil
}

// Parse aggregates an existing run directory (or a single page file)
// without touching the network. The path is never deleted.
func Parse(ctx context.Context, profile *scrape.Profile, path string, verbose bool) (*scrape.Table, error) {
	return scrape.Aggregate(ctx, path, profile.Extractor, scrape.ExtractOptions{
		Verbose: verbose,
	})
}
