package scrape

import "fmt"

// BlockedError means the court answered the first page with an
// anti-automation challenge instead of results. Callers should back off
// for minutes, not retry with the per-page delay.
type BlockedError struct {
	Court     string
	Message   string
	DebugFile string
}

func (e BlockedError) Error() string {
	return fmt.Sprintf(
		"%s: blocked by the court portal: %s (first page saved to %s)",
		e.Court, e.Message, e.DebugFile,
	)
}

// UnparseableError means the page-count indicator could not be located
// or read, which usually means the site structure drifted. The raw first
// page is kept on disk so a human can diff it against the selectors.
type UnparseableError struct {
	Court     string
	Snippet   string
	DebugFile string
}

func (e UnparseableError) Error() string {
	return fmt.Sprintf(
		"%s: could not infer the page count from the first page (saved to %s): %q",
		e.Court, e.DebugFile, e.Snippet,
	)
}

// FetchError reports a page fetch that still failed after the retry
// budget. LastGoodPage allows resuming with an explicit page range.
type FetchError struct {
	Page         int
	LastGoodPage int
	Err          error
}

func (e FetchError) Error() string {
	return fmt.Sprintf(
		"failed to fetch page %d (last page fetched successfully: %d): %s",
		e.Page, e.LastGoodPage, e.Err,
	)
}

func (e FetchError) Unwrap() error { return e.Err }

// ParseError reports one file that could not be decoded. The batch
// aggregator logs and skips these, it never aborts on them.
type ParseError struct {
	File string
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %s", e.File, e.Err)
}

func (e ParseError) Unwrap() error { return e.Err }
