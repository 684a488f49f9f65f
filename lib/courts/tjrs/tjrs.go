// Package tjrs holds the extraction profile for the Rio Grande do Sul
// state court, whose jurisprudence search is a solr index behind an
// ajax endpoint answering JSON.
package tjrs

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"juscraper/lib/scrape"
)

const BaseUrl = "https://www.tjrs.jus.br"

const pageSize = 10

func Cjsg() *scrape.Profile {
	return &scrape.Profile{
		Court:     "tjrs",
		Kind:      "cjsg",
		Content:   scrape.KindJson,
		PageSize:  pageSize,
		Strategy:  strategy{},
		PageCount: scrape.PageCountFunc(pageCount),
		Extractor: scrape.JsonExtractor{
			Path:        []string{"response", "docs"},
			UnwrapLists: true,
			// the full decision text multiplies the payload size and is
			// rarely wanted in tabular output
			Drop: []string{"documento_text"},
		},
	}
}

func pageCount(content []byte) scrape.PageCountResult {
	var payload struct {
		Error    *string `json:"error"`
		Response *struct {
			NumFound int `json:"numFound"`
		} `json:"response"`
	}
	err := json.Unmarshal(content, &payload)
	if err != nil {
		return scrape.Unparseable(err.Error())
	}
	if payload.Error != nil {
		return scrape.Blocked(*payload.Error)
	}
	if payload.Response == nil {
		return scrape.Unparseable("response object missing from the solr payload")
	}
	return scrape.PagesForResults(payload.Response.NumFound, pageSize)
}

type strategy struct{}

func (s strategy) FirstPage(ctx context.Context, t scrape.Transport, q scrape.Query) (*scrape.Response, error) {
	return s.Page(ctx, t, q, 1)
}

func (strategy) Page(ctx context.Context, t scrape.Transport, q scrape.Query, page int) (*scrape.Response, error) {
	search := url.Values{}
	search.Set("aba", "jurisprudencia")
	search.Set("realizando_pesquisa", "1")
	search.Set("pagina_atual", strconv.Itoa(page))
	search.Set("start", "0")
	search.Set("q_palavra_chave", q.Text)
	search.Set("conteudo_busca", "ementa_completa")
	search.Set("filtroComAExpressao", "")
	search.Set("filtroComQualquerPalavra", "")
	search.Set("filtroSemAsPalavras", "")
	search.Set("filtroTribunal", "-1")
	search.Set("filtroRelator", "-1")
	search.Set("filtroOrgaoJulgador", orDefault(q.Units, "-1"))
	search.Set("filtroTipoProcesso", "-1")
	search.Set("filtroClasseCnj", orDefault(q.Classes, "-1"))
	search.Set("assuntoCnj", orDefault(q.Subjects, "-1"))
	search.Set("filtroNumeroProcesso", q.ProcessId)
	search.Set("data_julgamento_de", q.DateStart)
	search.Set("data_julgamento_ate", q.DateEnd)
	search.Set("data_publicacao_de", "")
	search.Set("data_publicacao_ate", "")
	search.Set("facet", "on")
	search.Set("facet.sort", "index")
	search.Set("wt", "json")
	search.Set("ordem", "desc")

	form := url.Values{}
	form.Set("action", "consultas_solr_ajax")
	form.Set("metodo", "buscar_resultados")
	form.Set("parametros", search.Encode())
	return t.PostForm(ctx, "/buscas/jurisprudencia/ajax.php", form)
}

func orDefault(values []string, def string) string {
	if len(values) == 0 {
		return def
	}
	return values[0]
}
