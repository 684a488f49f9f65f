package scrape

import "context"

type ContentKind int

const (
	KindHtml ContentKind = iota
	KindJson
)

func (k ContentKind) Ext() string {
	switch k {
	case KindJson:
		return "json"
	default:
		return "html"
	}
}

// Strategy issues the page requests for one search surface. It owns the
// query-parameter mapping and whatever request shape the portal wants
// (GET with params, form POST, JSON POST). It is selected once per run.
type Strategy interface {
	// FirstPage issues the initial search request. Its response feeds
	// page-count inference and is reused as the persisted page 1.
	FirstPage(ctx context.Context, t Transport, q Query) (*Response, error)
	// Page requests the given 1-based page of an already-issued search.
	Page(ctx context.Context, t Transport, q Query, page int) (*Response, error)
}

// Profile is the per-court configuration consumed by the core pipeline:
// everything that varies between courts, and nothing that doesn't.
type Profile struct {
	// court identifier, e.g. "tjsp"
	Court string
	// search surface within the court, e.g. "cjsg"; used in run paths
	// and page file names
	Kind string

	Content  ContentKind
	PageSize int

	Strategy  Strategy
	PageCount PageCountRule
	Extractor Extractor
}

// Name identifies the profile in logs and registries, e.g. "tjsp-cjsg".
func (p *Profile) Name() string {
	if p.Kind == "" {
		return p.Court
	}
	return p.Court + "-" + p.Kind
}
