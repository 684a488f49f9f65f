// Package tjdft holds the extraction profile for the Federal District
// court, whose jurisprudence search is a plain JSON REST API.
package tjdft

import (
	"context"
	"encoding/json"

	"juscraper/lib/scrape"
)

const BaseUrl = "https://jurisdf.tjdft.jus.br"

const pageSize = 10

func Cjsg() *scrape.Profile {
	return &scrape.Profile{
		Court:     "tjdft",
		Kind:      "cjsg",
		Content:   scrape.KindJson,
		PageSize:  pageSize,
		Strategy:  strategy{},
		PageCount: scrape.PageCountFunc(pageCount),
		Extractor: scrape.JsonExtractor{
			Path: []string{"registros"},
			Drop: []string{"inteiroTeor", "documentos"},
		},
	}
}

func pageCount(content []byte) scrape.PageCountResult {
	var payload struct {
		TotalRegistros *int `json:"totalRegistros"`
	}
	err := json.Unmarshal(content, &payload)
	if err != nil {
		return scrape.Unparseable(err.Error())
	}
	if payload.TotalRegistros == nil {
		return scrape.Unparseable("totalRegistros missing from the search payload")
	}
	return scrape.PagesForResults(*payload.TotalRegistros, pageSize)
}

type searchRequest struct {
	Query              string   `json:"query"`
	TermosAcessorios   []string `json:"termosAcessorios"`
	Pagina             int      `json:"pagina"`
	Tamanho            int      `json:"tamanho"`
	Sinonimos          bool     `json:"sinonimos"`
	Espelho            bool     `json:"espelho"`
	InteiroTeor        bool     `json:"inteiroTeor"`
	RetornaInteiroTeor bool     `json:"retornaInteiroTeor"`
	RetornaTotalizacao bool     `json:"retornaTotalizacao"`
}

type strategy struct{}

func (s strategy) FirstPage(ctx context.Context, t scrape.Transport, q scrape.Query) (*scrape.Response, error) {
	return s.Page(ctx, t, q, 1)
}

func (strategy) Page(ctx context.Context, t scrape.Transport, q scrape.Query, page int) (*scrape.Response, error) {
	return t.PostJSON(ctx, "/api/v1/pesquisa", searchRequest{
		Query:              q.Text,
		TermosAcessorios:   []string{},
		Pagina:             page,
		Tamanho:            pageSize,
		Sinonimos:          true,
		Espelho:            true,
		InteiroTeor:        q.Verbose,
		RetornaInteiroTeor: q.Verbose,
		RetornaTotalizacao: true,
	})
}
