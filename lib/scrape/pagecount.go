package scrape

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"juscraper/lib/htmlutil"
)

type PageCountState int

const (
	// the count indicator was found and parsed
	StateCount PageCountState = iota
	// the search matched nothing; zero pages, not an error
	StateEmpty
	// the portal answered with an anti-automation challenge
	StateBlocked
	// the count indicator is missing or unreadable
	StateUnparseable
)

// PageCountResult is the tagged outcome of inferring the total page
// count from the first page of a search.
type PageCountResult struct {
	State PageCountState
	// total pages, valid only when State == StateCount
	Pages int
	// challenge text (blocked) or raw indicator snippet (unparseable)
	Message string
}

func Count(pages int) PageCountResult {
	return PageCountResult{State: StateCount, Pages: pages}
}

func Empty() PageCountResult {
	return PageCountResult{State: StateEmpty}
}

func Blocked(message string) PageCountResult {
	return PageCountResult{State: StateBlocked, Message: message}
}

func Unparseable(snippet string) PageCountResult {
	return PageCountResult{State: StateUnparseable, Message: snippet}
}

// PagesForResults converts a result count into a page count given the
// court's fixed page size.
func PagesForResults(results, pageSize int) PageCountResult {
	if results <= 0 {
		return Empty()
	}
	pages := results / pageSize
	if results%pageSize != 0 {
		pages++
	}
	return Count(pages)
}

// PageCountRule infers the page count from the raw first page.
type PageCountRule interface {
	Infer(content []byte) PageCountResult
}

type PageCountFunc func(content []byte) PageCountResult

func (f PageCountFunc) Infer(content []byte) PageCountResult {
	return f(content)
}

// HtmlCountRule is the shared shape of page-count inference on
// server-rendered portals: check the explicit zero-result marker, then
// the block/error markers, then read the trailing integer off the
// pagination indicator node.
type HtmlCountRule struct {
	PageSize int

	// node whose presence (with matching text, when EmptyText is set)
	// declares a zero-result search
	EmptySelector string
	EmptyText     string

	// nodes whose presence means the portal refused the query;
	// their text becomes the blocked message
	BlockedSelectors []string

	// node holding the result-count indicator, e.g.
	// "Resultados 1 a 20 de 513"
	CounterSelector string
	// tolerant pattern anchored to the indicator label; first capture
	// group is the total result count
	CounterPattern *regexp.Regexp
}

var trailingInt = regexp.MustCompile(`([0-9]+)\s*$`)

func (r HtmlCountRule) Infer(content []byte) PageCountResult {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return Unparseable(err.Error())
	}

	for _, selector := range r.BlockedSelectors {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			return Blocked(htmlutil.CleanText(sel.First()))
		}
	}

	if r.EmptySelector != "" {
		empty := doc.Find(r.EmptySelector)
		if r.EmptyText != "" {
			empty = htmlutil.FindByText(doc.Selection, r.EmptySelector, r.EmptyText)
		}
		if empty.Length() > 0 {
			return Empty()
		}
	}

	counter := doc.Find(r.CounterSelector)
	if counter.Length() == 0 {
		return Unparseable(fmt.Sprintf(
			"no node matched the count indicator selector %q", r.CounterSelector,
		))
	}
	indicator := htmlutil.CleanText(counter.First())

	pattern := r.CounterPattern
	if pattern == nil {
		pattern = trailingInt
	}
	groups := pattern.FindStringSubmatch(indicator)
	if len(groups) < 2 {
		return Unparseable(indicator)
	}
	results, err := strconv.Atoi(groups[1])
	if err != nil {
		return Unparseable(indicator)
	}
	return PagesForResults(results, r.PageSize)
}
