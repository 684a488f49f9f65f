// Package transport provides the cookie-preserving HTTP session the
// scrape pipeline runs on. One session is owned by one run; sharing it
// across concurrent runs would mix authentication state.
package transport

import (
	"context"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"

	"juscraper/lib/restyutil"
	"juscraper/lib/scrape"
	"juscraper/lib/telemetry"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	BaseUrl   string
	UserAgent string
	// every request carries this timeout; a timed-out page is a fetch
	// failure, never a silent empty result
	Timeout time.Duration
	// when set, raw request/response pairs are mirrored here
	Debug restyutil.InstrumentOutput
}

// Session is a resty-backed implementation of scrape.Transport.
type Session struct {
	BaseUrl *url.URL
	Http    *resty.Client

	authenticated bool
}

func NewSession(opts Options) (*Session, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "juscraper/transport")
	restyutil.InstrumentClient(client, opts.Debug)

	return &Session{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

func (s *Session) Get(ctx context.Context, path string, params url.Values) (*scrape.Response, error) {
	req := s.Http.R().SetContext(ctx)
	if params != nil {
		req.SetQueryParamsFromValues(params)
	}
	res, err := req.Get(path)
	if err != nil {
		return nil, err
	}
	return &scrape.Response{Status: res.StatusCode(), Body: res.Body()}, nil
}

func (s *Session) PostForm(ctx context.Context, path string, form url.Values) (*scrape.Response, error) {
	res, err := s.Http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(path)
	if err != nil {
		return nil, err
	}
	return &scrape.Response{Status: res.StatusCode(), Body: res.Body()}, nil
}

func (s *Session) PostJSON(ctx context.Context, path string, body any) (*scrape.Response, error) {
	res, err := s.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, err
	}
	return &scrape.Response{Status: res.StatusCode(), Body: res.Body()}, nil
}

// SetBearerToken attaches an access token to every subsequent request.
// Courts behind an authenticated API (jus.br) need this; the public
// jurisprudence portals do not.
func (s *Session) SetBearerToken(token string) {
	s.Http.SetAuthToken(token)
	s.authenticated = token != ""
}

func (s *Session) IsAuthenticated() bool {
	return s.authenticated
}
