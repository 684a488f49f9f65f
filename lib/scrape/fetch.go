package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("juscraper/scrape")

type FetcherOptions struct {
	// base directory run directories are created under
	BaseDir string
	// mandatory pause between page requests. This is the only defense
	// the pipeline has against being blocked; it is never skipped.
	Delay time.Duration
	// upper bound of the random extra pause added on top of Delay
	JitterMax time.Duration
	// immediate retries per page after a transport failure
	Retries int
}

// Fetcher drives the bounded page loop for one query: first request,
// page-count inference, then one rate-limited request per remaining
// page, each persisted under a fresh run directory.
type Fetcher struct {
	transport Transport
	opts      FetcherOptions
	limiter   *rate.Limiter
}

func NewFetcher(transport Transport, opts FetcherOptions) *Fetcher {
	if opts.Delay <= 0 {
		opts.Delay = 500 * time.Millisecond
	}
	if opts.Retries <= 0 {
		opts.Retries = 2
	}
	if opts.BaseDir == "" {
		opts.BaseDir = os.TempDir()
	}
	return &Fetcher{
		transport: transport,
		opts:      opts,
		limiter:   rate.NewLimiter(rate.Every(opts.Delay), 1),
	}
}

// Fetch runs one acquisition. A nil page range means "everything the
// first page says exists"; an explicit range is clamped so it never
// runs past the last real page. The returned RunContext is non-nil
// whenever a run directory was created, including on mid-run errors,
// so a partial run can be inspected or resumed.
func (f *Fetcher) Fetch(ctx context.Context, profile *Profile, q Query, pages *PageRange) (*RunContext, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()

	first, err := f.fetchPage(ctx, profile, q, 1, 0)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch the first page")
		return nil, err
	}

	outcome := profile.PageCount.Infer(first.Body)
	switch outcome.State {
	case StateBlocked:
		debugFile := f.dumpFirstPage(ctx, profile, first.Body)
		span.SetStatus(codes.Error, "blocked by the portal")
		return nil, BlockedError{
			Court:     profile.Name(),
			Message:   outcome.Message,
			DebugFile: debugFile,
		}
	case StateUnparseable:
		debugFile := f.dumpFirstPage(ctx, profile, first.Body)
		span.SetStatus(codes.Error, "page count unparseable")
		return nil, UnparseableError{
			Court:     profile.Name(),
			Snippet:   outcome.Message,
			DebugFile: debugFile,
		}
	}

	dir, err := newRunDir(f.opts.BaseDir, profile.Kind, time.Now())
	if err != nil {
		return nil, err
	}
	rc := &RunContext{Dir: dir, Profile: profile}

	if outcome.State == StateEmpty {
		slog.InfoContext(ctx, "search matched nothing", "court", profile.Name())
		rc.Pages = PageRange{Start: 1, End: 0}
		return rc, nil
	}

	resolved := PageRange{Start: 1, End: outcome.Pages}
	if pages != nil {
		resolved = pages.Clamp(outcome.Pages)
	}
	rc.Pages = resolved
	if resolved.Empty() {
		return rc, nil
	}

	slog.InfoContext(
		ctx, "starting download",
		"court", profile.Name(),
		"total_pages", outcome.Pages,
		"first_page", resolved.Start,
		"last_page", resolved.End,
		"dir", dir,
	)

	lastGood := 0
	for page := resolved.Start; page <= resolved.End; page++ {
		// cancellation is honored between iterations, never mid-request,
		// and the partially populated run directory is left intact
		if err := ctx.Err(); err != nil {
			return rc, err
		}

		var body []byte
		if page == 1 {
			// the inference response is page 1; re-requesting it would
			// waste the portal's rate budget
			body = first.Body
		} else {
			res, err := f.fetchPage(ctx, profile, q, page, lastGood)
			if err != nil {
				return rc, err
			}
			body = res.Body
		}

		file := filepath.Join(dir, PageFileName(profile.Kind, page, profile.Content))
		err = os.WriteFile(file, body, 0644)
		if err != nil {
			return rc, err
		}
		lastGood = page

		slog.InfoContext(
			ctx, "fetched page",
			"court", profile.Name(),
			"page", page,
			"last_page", resolved.End,
		)
	}

	return rc, nil
}

// fetchPage issues one page request through the rate limiter, retrying
// transport failures a bounded number of times with the standard delay
// between attempts. Failure past the retry budget is a FetchError; a
// page is never silently skipped.
func (f *Fetcher) fetchPage(ctx context.Context, profile *Profile, q Query, page, lastGood int) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= f.opts.Retries; attempt++ {
		err := f.wait(ctx)
		if err != nil {
			return nil, err
		}

		var res *Response
		if page == 1 {
			res, lastErr = profile.Strategy.FirstPage(ctx, f.transport, q)
		} else {
			res, lastErr = profile.Strategy.Page(ctx, f.transport, q, page)
		}
		if lastErr == nil && !res.Ok() {
			lastErr = fmt.Errorf("unexpected status %d", res.Status)
		}
		if lastErr == nil {
			return res, nil
		}

		slog.WarnContext(
			ctx, "page request failed",
			"court", profile.Name(),
			"page", page,
			"attempt", attempt+1,
			"err", lastErr,
		)
	}
	return nil, FetchError{Page: page, LastGoodPage: lastGood, Err: lastErr}
}

// wait enforces the inter-request delay plus a little random jitter so
// the request cadence does not look mechanical.
func (f *Fetcher) wait(ctx context.Context) error {
	err := f.limiter.Wait(ctx)
	if err != nil {
		return err
	}
	if f.opts.JitterMax <= 0 {
		return nil
	}
	extra, err := random.IntRange(0, int(f.opts.JitterMax.Milliseconds())+1)
	if err != nil {
		return nil
	}
	select {
	case <-time.After(time.Duration(extra) * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fetcher) dumpFirstPage(ctx context.Context, profile *Profile, body []byte) string {
	file, err := writeDebugDump(f.opts.BaseDir, profile.Kind, body, time.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to write debug dump", "err", err)
		return ""
	}
	slog.ErrorContext(
		ctx, "page count inference failed, first page saved",
		"court", profile.Name(),
		"debug_file", file,
	)
	return file
}
