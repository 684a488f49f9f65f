// Package tjsp holds the extraction profiles for the São Paulo state
// court's ESAJ portal: the first and second degree jurisprudence
// searches (cjpg/cjsg) and the first degree case lookup (cpopg).
package tjsp

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"juscraper/lib/cnj"
	"juscraper/lib/scrape"
)

const BaseUrl = "https://esaj.tjsp.jus.br"

// the gray pagination bar at the bottom of every ESAJ result list;
// its text ends with the total result count
const counterSelector = `[bgcolor="#EEEEEE"]`

var blockedSelectors = []string{
	"#recaptchaResposta",
	".g-recaptcha",
	"#divCaptcha",
}

// Cjpg is the first degree jurisprudence search: plain GET pagination,
// 10 results per page.
func Cjpg() *scrape.Profile {
	return &scrape.Profile{
		Court:    "tjsp",
		Kind:     "cjpg",
		Content:  scrape.KindHtml,
		PageSize: 10,
		Strategy: cjpgStrategy{},
		PageCount: scrape.HtmlCountRule{
			PageSize:         10,
			EmptySelector:    "td#mensagemRetorno",
			EmptyText:        "Não foi encontrado",
			BlockedSelectors: blockedSelectors,
			CounterSelector:  counterSelector,
		},
		Extractor: scrape.HtmlExtractor{
			Rules: scrape.HtmlRules{
				Container: "div#divDadosResultado tr.fundocinza1",
				LabelRows: "tr.fonte",
				Labels: map[string]string{
					"classe":                   "classe",
					"assunto":                  "assunto",
					"magistrado":               "magistrado",
					"comarca":                  "comarca",
					"foro":                     "foro",
					"vara":                     "vara",
					"data de disponibilizacao": "data_disponibilizacao",
					"data disponibilizacao":    "data_disponibilizacao",
				},
				Fields: []scrape.FieldRule{
					{Name: "id_processo", Selector: "span.fonteNegrito"},
					{Name: "cd_processo", Selector: `a[style="vertical-align: top"]`, Attr: "name"},
					{Name: "decisao", Selector: `div[align="justify"]`},
				},
			},
		},
	}
}

type cjpgStrategy struct{}

func (cjpgStrategy) FirstPage(ctx context.Context, t scrape.Transport, q scrape.Query) (*scrape.Response, error) {
	id := cnj.Clean(q.ProcessId)
	params := url.Values{}
	params.Set("conversationId", "")
	params.Set("dadosConsulta.pesquisaLivre", q.Text)
	params.Set("tipoNumero", "UNIFICADO")
	if len(id) == 20 {
		params.Set("numeroDigitoAnoUnificado", id[:15])
		params.Set("foroNumeroUnificado", id[16:])
	}
	params.Set("dadosConsulta.nuProcesso", id)
	params.Set("classeTreeSelection.values", strings.Join(q.Classes, ","))
	params.Set("assuntoTreeSelection.values", strings.Join(q.Subjects, ","))
	params.Set("varasTreeSelection.values", strings.Join(q.Units, ","))
	params.Set("dadosConsulta.dtInicio", q.DateStart)
	params.Set("dadosConsulta.dtFim", q.DateEnd)
	params.Set("dadosConsulta.ordenacao", "DESC")
	return t.Get(ctx, "/cjpg/pesquisar.do", params)
}

func (cjpgStrategy) Page(ctx context.Context, t scrape.Transport, q scrape.Query, page int) (*scrape.Response, error) {
	params := url.Values{}
	params.Set("pagina", strconv.Itoa(page))
	params.Set("conversationId", "")
	return t.Get(ctx, "/cjpg/trocarDePagina.do", params)
}

// Cjsg is the second degree jurisprudence search (acórdãos), 20
// results per page.
func Cjsg() *scrape.Profile {
	return &scrape.Profile{
		Court:    "tjsp",
		Kind:     "cjsg",
		Content:  scrape.KindHtml,
		PageSize: 20,
		Strategy: cjsgStrategy{},
		PageCount: scrape.HtmlCountRule{
			PageSize:         20,
			EmptySelector:    "td#mensagemRetorno",
			EmptyText:        "Não foi encontrado",
			BlockedSelectors: blockedSelectors,
			CounterSelector:  counterSelector,
			CounterPattern:   regexp.MustCompile(`de\s+([0-9]+)\s*$`),
		},
		Extractor: scrape.HtmlExtractor{
			Rules: scrape.HtmlRules{
				Container: "tr.fundocinza1",
				LabelRows: "tr.ementaClass2",
				Labels: map[string]string{
					"relator(a)":         "relator",
					"relator":            "relator",
					"orgao julgador":     "orgao_julgador",
					"comarca":            "comarca",
					"classe/assunto":     "classe_assunto",
					"data do julgamento": "data_julgamento",
					"data de publicacao": "data_publicacao",
					"data publicacao":    "data_publicacao",
					"data de registro":   "data_registro",
				},
				Fields: []scrape.FieldRule{
					{Name: "processo", Selector: "a.esajLinkLogin.downloadEmenta"},
					{Name: "cd_acordao", Selector: "a.esajLinkLogin.downloadEmenta", Attr: "cdacordao"},
					{Name: "cd_foro", Selector: "a.esajLinkLogin.downloadEmenta", Attr: "cdforo"},
					{Name: "ementa", Selector: `div[align="justify"]`},
				},
			},
		},
	}
}

type cjsgStrategy struct{}

func (cjsgStrategy) FirstPage(ctx context.Context, t scrape.Transport, q scrape.Query) (*scrape.Response, error) {
	params := url.Values{}
	params.Set("conversationId", "")
	params.Set("dados.buscaInteiroTeor", q.Text)
	params.Set("dados.ementa", q.Summary)
	params.Set("dados.nuProcOrigem", cnj.Clean(q.ProcessId))
	params.Set("dados.classe", strings.Join(q.Classes, ","))
	params.Set("dados.assunto", strings.Join(q.Subjects, ","))
	params.Set("dados.orgaoJulgador", strings.Join(q.Units, ","))
	params.Set("dados.dtJulgamentoInicio", q.DateStart)
	params.Set("dados.dtJulgamentoFim", q.DateEnd)
	params.Set("tipoDecisaoSelecionados", "A")
	return t.Get(ctx, "/cjsg/resultadoCompleta.do", params)
}

func (cjsgStrategy) Page(ctx context.Context, t scrape.Transport, q scrape.Query, page int) (*scrape.Response, error) {
	params := url.Values{}
	params.Set("tipoDeDecisao", "A")
	params.Set("pagina", strconv.Itoa(page))
	params.Set("conversationId", "")
	return t.Get(ctx, "/cjsg/trocaDePagina.do", params)
}

// Cpopg looks one first degree case up by its CNJ number. The "search"
// always resolves to a single page holding the full case record, with
// its movements and parties extracted as nested lists.
func Cpopg() *scrape.Profile {
	return &scrape.Profile{
		Court:     "tjsp",
		Kind:      "cpopg",
		Content:   scrape.KindHtml,
		PageSize:  1,
		Strategy:  cpopgStrategy{},
		PageCount: scrape.PageCountFunc(cpopgPageCount),
		Extractor: scrape.HtmlExtractor{
			Rules: scrape.HtmlRules{
				Container: "body",
				Fields: []scrape.FieldRule{
					{Name: "id_processo", Selector: "span#numeroProcesso"},
					{Name: "classe", Selector: "span#classeProcesso"},
					{Name: "assunto", Selector: "span#assuntoProcesso"},
					{Name: "foro", Selector: "span#foroProcesso"},
					{Name: "vara", Selector: "span#varaProcesso"},
					{Name: "juiz", Selector: "span#juizProcesso"},
					{Name: "data_distribuicao", Selector: "div#dataHoraDistribuicaoProcesso"},
					{Name: "valor_acao", Selector: "div#valorAcaoProcesso"},
				},
				Nested: []scrape.NestedRule{
					{
						Name:      "movimentacoes",
						Container: "tbody#tabelaTodasMovimentacoes > tr",
						Fields: []scrape.FieldRule{
							{Name: "data", Selector: "td.dataMovimentacao"},
							{Name: "movimento", Selector: "td.descricaoMovimentacao"},
						},
					},
					{
						Name:      "partes",
						Container: "table#tablePartesPrincipais tr",
						Fields: []scrape.FieldRule{
							{Name: "tipo", Selector: "span.tipoDeParticipacao"},
							{Name: "nome", Selector: "td.nomeParteEAdvogado"},
						},
					},
				},
			},
		},
	}
}

func cpopgPageCount(content []byte) scrape.PageCountResult {
	if bytes.Contains(content, []byte("Não existem informações disponíveis")) {
		return scrape.Empty()
	}
	if bytes.Contains(content, []byte("numeroProcesso")) {
		return scrape.Count(1)
	}
	return scrape.Unparseable("case page has no recognizable process header")
}

type cpopgStrategy struct{}

func (cpopgStrategy) FirstPage(ctx context.Context, t scrape.Transport, q scrape.Query) (*scrape.Response, error) {
	parts, err := cnj.Split(q.ProcessId)
	if err != nil {
		return nil, err
	}
	id := cnj.Clean(q.ProcessId)

	params := url.Values{}
	params.Set("conversationId", "")
	params.Set("cbPesquisa", "NUMPROC")
	params.Set("dadosConsulta.tipoNuProcesso", "UNIFICADO")
	params.Set("numeroDigitoAnoUnificado", id[:15])
	params.Set("foroNumeroUnificado", parts.Unit)
	params.Set("dadosConsulta.valorConsultaNuUnificado", id)
	return t.Get(ctx, "/cpopg/search.do", params)
}

func (cpopgStrategy) Page(ctx context.Context, t scrape.Transport, q scrape.Query, page int) (*scrape.Response, error) {
	// a case lookup is a single page; the fetch loop never gets here
	return cpopgStrategy{}.FirstPage(ctx, t, q)
}
