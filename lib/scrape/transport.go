package scrape

import (
	"context"
	"net/url"
)

// Response is the transport-level view of one page request. A non-2xx
// status is not an error here; the fetcher decides how to treat it.
type Response struct {
	Status int
	Body   []byte
}

func (r *Response) Ok() bool {
	return r.Status >= 200 && r.Status < 300
}

// Transport is the authenticated HTTP capability the pipeline runs on.
// Implementations must persist cookies and headers across calls within
// one run; see lib/transport for the resty-backed session.
type Transport interface {
	Get(ctx context.Context, path string, params url.Values) (*Response, error)
	PostForm(ctx context.Context, path string, form url.Values) (*Response, error)
	PostJSON(ctx context.Context, path string, body any) (*Response, error)
}
