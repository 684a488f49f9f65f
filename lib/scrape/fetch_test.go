package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"juscraper/lib/telemetry"
)

// nullTransport satisfies the Transport interface for strategies that
// answer from memory.
type nullTransport struct{}

func (nullTransport) Get(context.Context, string, url.Values) (*Response, error) {
	return nil, errors.New("not used")
}

func (nullTransport) PostForm(context.Context, string, url.Values) (*Response, error) {
	return nil, errors.New("not used")
}

func (nullTransport) PostJSON(context.Context, string, any) (*Response, error) {
	return nil, errors.New("not used")
}

type fakeStrategy struct {
	firstCalls int
	pageCalls  []int
	// page whose request always fails at the transport level
	failPage int
	// observer invoked on every request, before it is answered
	onPage func(page int)
}

func (s *fakeStrategy) FirstPage(ctx context.Context, t Transport, q Query) (*Response, error) {
	s.firstCalls++
	return s.respond(1)
}

func (s *fakeStrategy) Page(ctx context.Context, t Transport, q Query, page int) (*Response, error) {
	s.pageCalls = append(s.pageCalls, page)
	return s.respond(page)
}

func (s *fakeStrategy) respond(page int) (*Response, error) {
	if s.onPage != nil {
		s.onPage(page)
	}
	if page == s.failPage {
		return nil, errors.New("connection reset")
	}
	return &Response{
		Status: 200,
		Body:   []byte(fmt.Sprintf("page %d", page)),
	}, nil
}

func testProfile(strategy Strategy, count PageCountResult) *Profile {
	return &Profile{
		Court:    "tjzz",
		Kind:     "cjsg",
		Content:  KindHtml,
		PageSize: 10,
		Strategy: strategy,
		PageCount: PageCountFunc(func([]byte) PageCountResult {
			return count
		}),
	}
}

func testFetcher(t *testing.T) *Fetcher {
	return NewFetcher(nullTransport{}, FetcherOptions{
		BaseDir: t.TempDir(),
		Delay:   time.Millisecond,
	})
}

func runDirFiles(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFetchAllPages(t *testing.T) {
	defer telemetry.SetupForTesting(t, "lib/scrape")()

	strategy := &fakeStrategy{}
	fetcher := testFetcher(t)

	rc, err := fetcher.Fetch(context.Background(), testProfile(strategy, Count(3)), Query{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, PageRange{Start: 1, End: 3}, rc.Pages)
	require.Equal(t, []string{
		"cjsg_00001.html",
		"cjsg_00002.html",
		"cjsg_00003.html",
	}, runDirFiles(t, rc.Dir))

	// page 1 is persisted from the inference response, never re-requested
	require.Equal(t, 1, strategy.firstCalls)
	require.Equal(t, []int{2, 3}, strategy.pageCalls)

	content, err := os.ReadFile(filepath.Join(rc.Dir, "cjsg_00001.html"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "page 1", string(content))
}

func TestFetchClampsRange(t *testing.T) {
	strategy := &fakeStrategy{}
	fetcher := testFetcher(t)

	rc, err := fetcher.Fetch(
		context.Background(),
		testProfile(strategy, Count(3)),
		Query{},
		&PageRange{Start: 2, End: 99},
	)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, PageRange{Start: 2, End: 3}, rc.Pages)
	require.Equal(t, []string{
		"cjsg_00002.html",
		"cjsg_00003.html",
	}, runDirFiles(t, rc.Dir))
}

func TestFetchRangePastLastPage(t *testing.T) {
	strategy := &fakeStrategy{}
	fetcher := testFetcher(t)

	rc, err := fetcher.Fetch(
		context.Background(),
		testProfile(strategy, Count(3)),
		Query{},
		&PageRange{Start: 5, End: 9},
	)
	if err != nil {
		t.Fatal(err)
	}

	// the range clamps to nothing: a run directory exists, no page files,
	// no requests past the first
	require.Empty(t, runDirFiles(t, rc.Dir))
	require.Empty(t, strategy.pageCalls)
}

func TestFetchEmptyResult(t *testing.T) {
	strategy := &fakeStrategy{}
	fetcher := testFetcher(t)

	rc, err := fetcher.Fetch(context.Background(), testProfile(strategy, Empty()), Query{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, PageRange{Start: 1, End: 0}, rc.Pages)
	require.True(t, rc.Pages.Empty())
	require.Empty(t, runDirFiles(t, rc.Dir))
	require.Equal(t, 1, strategy.firstCalls)
	require.Empty(t, strategy.pageCalls)
}

func TestFetchBlocked(t *testing.T) {
	strategy := &fakeStrategy{}
	fetcher := testFetcher(t)

	_, err := fetcher.Fetch(
		context.Background(),
		testProfile(strategy, Blocked("Confirme que você não é um robô")),
		Query{},
		nil,
	)

	var blocked BlockedError
	require.ErrorAs(t, err, &blocked)
	require.Equal(t, "tjzz-cjsg", blocked.Court)

	// the raw first page is dumped for diagnostics
	require.NotEmpty(t, blocked.DebugFile)
	content, readErr := os.ReadFile(blocked.DebugFile)
	if readErr != nil {
		t.Fatal(readErr)
	}
	require.Equal(t, "page 1", string(content))

	// no pages are requested once the portal pushed back
	require.Empty(t, strategy.pageCalls)
}

func TestFetchUnparseable(t *testing.T) {
	strategy := &fakeStrategy{}
	fetcher := testFetcher(t)

	_, err := fetcher.Fetch(
		context.Background(),
		testProfile(strategy, Unparseable("Resultados da pesquisa")),
		Query{},
		nil,
	)

	var unparseable UnparseableError
	require.ErrorAs(t, err, &unparseable)
	require.Equal(t, "Resultados da pesquisa", unparseable.Snippet)
	require.NotEmpty(t, unparseable.DebugFile)
}

func TestFetchRetriesThenFails(t *testing.T) {
	strategy := &fakeStrategy{failPage: 2}
	fetcher := testFetcher(t)

	rc, err := fetcher.Fetch(context.Background(), testProfile(strategy, Count(3)), Query{}, nil)

	var fetchErr FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 2, fetchErr.Page)
	require.Equal(t, 1, fetchErr.LastGoodPage)

	// default budget is two retries, so three attempts total
	require.Equal(t, []int{2, 2, 2}, strategy.pageCalls)

	// the partial run is left intact for inspection and resumption
	require.NotNil(t, rc)
	require.Equal(t, []string{"cjsg_00001.html"}, runDirFiles(t, rc.Dir))
}

func TestFetchCancellationBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy := &fakeStrategy{}
	strategy.onPage = func(page int) {
		if page == 2 {
			cancel()
		}
	}
	fetcher := testFetcher(t)

	rc, err := fetcher.Fetch(ctx, testProfile(strategy, Count(3)), Query{}, nil)
	require.ErrorIs(t, err, context.Canceled)

	// the in-flight page finished and was persisted; the next iteration
	// saw the cancellation and stopped without touching the directory
	require.NotNil(t, rc)
	require.Equal(t, []string{
		"cjsg_00001.html",
		"cjsg_00002.html",
	}, runDirFiles(t, rc.Dir))
	require.Equal(t, []int{2}, strategy.pageCalls)
}
