package tjdft

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"juscraper/lib/scrape"
)

func TestPageCount(t *testing.T) {
	t.Run("results", func(t *testing.T) {
		out := pageCount([]byte(`{"totalRegistros": 31, "registros": []}`))
		require.Equal(t, scrape.Count(4), out)
	})
	t.Run("empty", func(t *testing.T) {
		out := pageCount([]byte(`{"totalRegistros": 0, "registros": []}`))
		require.Equal(t, scrape.StateEmpty, out.State)
	})
	t.Run("total missing", func(t *testing.T) {
		out := pageCount([]byte(`{"registros": []}`))
		require.Equal(t, scrape.StateUnparseable, out.State)
	})
}

type jsonRecorder struct {
	path string
	body any
}

func (r *jsonRecorder) Get(context.Context, string, url.Values) (*scrape.Response, error) {
	return &scrape.Response{Status: 200}, nil
}

func (r *jsonRecorder) PostForm(context.Context, string, url.Values) (*scrape.Response, error) {
	return &scrape.Response{Status: 200}, nil
}

func (r *jsonRecorder) PostJSON(ctx context.Context, path string, body any) (*scrape.Response, error) {
	r.path = path
	r.body = body
	return &scrape.Response{Status: 200, Body: []byte("{}")}, nil
}

func TestStrategyRequestBody(t *testing.T) {
	rt := &jsonRecorder{}
	q := scrape.Query{Text: "responsabilidade civil", Verbose: true}

	_, err := Cjsg().Strategy.Page(context.Background(), rt, q, 2)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, "/api/v1/pesquisa", rt.path)
	req, ok := rt.body.(searchRequest)
	require.True(t, ok)
	require.Equal(t, "responsabilidade civil", req.Query)
	require.Equal(t, 2, req.Pagina)
	require.Equal(t, pageSize, req.Tamanho)
	// verbose queries ask the API for the full decision text
	require.True(t, req.RetornaInteiroTeor)
}
