// Package tjpr holds the extraction profile for the Paraná state
// court: a server-rendered form behind a JSESSIONID session that must
// be bootstrapped from the home page before the first search.
package tjpr

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"juscraper/lib/scrape"
)

const BaseUrl = "https://portal.tjpr.jus.br"

const pageSize = 10

func Cjsg() *scrape.Profile {
	return &scrape.Profile{
		Court:    "tjpr",
		Kind:     "cjsg",
		Content:  scrape.KindHtml,
		PageSize: pageSize,
		Strategy: strategy{},
		PageCount: scrape.HtmlCountRule{
			PageSize:      pageSize,
			EmptySelector: "div.semResultado",
			BlockedSelectors: []string{
				".g-recaptcha",
				"#challenge-form",
			},
			CounterSelector: "div.paginacao",
			CounterPattern:  regexp.MustCompile(`de\s+([0-9]+)`),
		},
		Extractor: scrape.HtmlExtractor{
			Rules: scrape.HtmlRules{
				Container: "table.resultTable.jurisprudencia tbody tr",
				LabelRows: "div",
				Labels: map[string]string{
					"processo":        "processo",
					"relator":         "relator",
					"orgao julgador":  "orgao_julgador",
					"data julgamento": "data_julgamento",
					"data publicacao": "data_publicacao",
				},
				Fields: []scrape.FieldRule{
					{Name: "processo", Selector: "a.decisao.negrito", Label: "processo"},
					{Name: "id_decisao", Selector: `input[name="idsSelecionados"]`, Attr: "value"},
					{Name: "ementa", Selector: "td:nth-child(2)"},
				},
			},
		},
	}
}

var cryptoTokenPattern = regexp.MustCompile(`tjpr\.url\.crypto=[a-f0-9]+`)

// strategy bootstraps the search session off the home page before the
// first query: the portal only answers searches once the JSESSIONID
// cookie is in the jar, and the crypto token in the page markup is the
// sign the session was actually issued rather than an error page.
type strategy struct{}

func (s strategy) FirstPage(ctx context.Context, t scrape.Transport, q scrape.Query) (*scrape.Response, error) {
	home, err := t.Get(ctx, "/jurisprudencia/", nil)
	if err != nil {
		return nil, err
	}
	if !cryptoTokenPattern.Match(home.Body) {
		return nil, fmt.Errorf("could not find the session token on the home page")
	}

	return s.Page(ctx, t, q, 1)
}

func (strategy) Page(ctx context.Context, t scrape.Transport, q scrape.Query, page int) (*scrape.Response, error) {
	form := url.Values{}
	form.Set("usuarioCienteSegredoJustica", "false")
	form.Set("segredoJustica", "pesquisar com")
	form.Set("criterioPesquisa", q.Text)
	form.Set("processo", q.ProcessId)
	form.Set("dataJulgamentoInicio", q.DateStart)
	form.Set("dataJulgamentoFim", q.DateEnd)
	form.Set("idClasseProcessual", orEmpty(q.Classes))
	form.Set("idAssunto", orEmpty(q.Subjects))
	form.Set("idOrgaoJulgador", orEmpty(q.Units))
	form.Set("idLocalPesquisa", "1")
	form.Set("ambito", "-1")
	form.Set("pageSize", strconv.Itoa(pageSize))
	form.Set("pageNumber", strconv.Itoa(page))
	form.Set("page", strconv.Itoa(page-1))
	form.Set("sortColumn", "processo_sDataJulgamento")
	form.Set("sortOrder", "DESC")
	form.Set("iniciar", "Pesquisar")
	return t.PostForm(ctx, "/jurisprudencia/publico/pesquisa.do?actionType=pesquisar", form)
}

func orEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
