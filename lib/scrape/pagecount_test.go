package scrape

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagesForResults(t *testing.T) {
	testCases := []struct {
		results  int
		pageSize int
		expect   PageCountResult
	}{
		{results: 25, pageSize: 10, expect: Count(3)},
		{results: 20, pageSize: 10, expect: Count(2)},
		{results: 1, pageSize: 10, expect: Count(1)},
		{results: 0, pageSize: 10, expect: Empty()},
		{results: -3, pageSize: 10, expect: Empty()},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expect, PagesForResults(tc.results, tc.pageSize))
	}
}

func TestHtmlCountRuleCounter(t *testing.T) {
	rule := HtmlCountRule{
		PageSize:        10,
		CounterSelector: `[bgcolor="#EEEEEE"]`,
		CounterPattern:  regexp.MustCompile(`de\s+([0-9]+)`),
	}

	page := []byte(`<html><body>
		<table><tr><td bgcolor="#EEEEEE">Resultados 1 a 10 de 25</td></tr></table>
	</body></html>`)

	out := rule.Infer(page)
	require.Equal(t, StateCount, out.State)
	require.Equal(t, 3, out.Pages)
}

func TestHtmlCountRuleTrailingInt(t *testing.T) {
	// with no explicit pattern the rule reads the trailing integer,
	// which is the shape "1 a 10 de 3162" collapses into
	rule := HtmlCountRule{
		PageSize:        20,
		CounterSelector: "div.paginacao",
	}

	page := []byte(`<html><body>
		<div class="paginacao">1 a 20 de 3162</div>
	</body></html>`)

	out := rule.Infer(page)
	require.Equal(t, StateCount, out.State)
	require.Equal(t, 159, out.Pages)
}

func TestHtmlCountRuleEmpty(t *testing.T) {
	rule := HtmlCountRule{
		PageSize:        10,
		EmptySelector:   "td.mensagemRetorno",
		EmptyText:       "Não foi encontrado nenhum resultado",
		CounterSelector: `[bgcolor="#EEEEEE"]`,
	}

	page := []byte(`<html><body><table><tr>
		<td class="mensagemRetorno">Não foi encontrado nenhum resultado correspondente à pesquisa.</td>
	</tr></table></body></html>`)

	out := rule.Infer(page)
	require.Equal(t, StateEmpty, out.State)
}

func TestHtmlCountRuleEmptyTextMismatch(t *testing.T) {
	rule := HtmlCountRule{
		PageSize:        10,
		EmptySelector:   "td.mensagemRetorno",
		EmptyText:       "Não foi encontrado nenhum resultado",
		CounterSelector: `[bgcolor="#EEEEEE"]`,
	}

	// the marker node exists but carries some other message, so the
	// page does not read as a zero-result search
	page := []byte(`<html><body><table><tr>
		<td class="mensagemRetorno">Sistema indisponível no momento.</td>
	</tr></table></body></html>`)

	out := rule.Infer(page)
	require.Equal(t, StateUnparseable, out.State)
}

func TestHtmlCountRuleBlocked(t *testing.T) {
	rule := HtmlCountRule{
		PageSize:         10,
		BlockedSelectors: []string{".g-recaptcha", "#challenge-form"},
		CounterSelector:  `[bgcolor="#EEEEEE"]`,
	}

	page := []byte(`<html><body>
		<div class="g-recaptcha">Confirme que você não é um robô</div>
		<table><tr><td bgcolor="#EEEEEE">Resultados 1 a 10 de 25</td></tr></table>
	</body></html>`)

	// the blocked markers are checked before the counter so a challenge
	// page with a stale counter still reads as blocked
	out := rule.Infer(page)
	require.Equal(t, StateBlocked, out.State)
	require.Contains(t, out.Message, "robô")
}

func TestHtmlCountRuleUnparseable(t *testing.T) {
	rule := HtmlCountRule{
		PageSize:        10,
		CounterSelector: `[bgcolor="#EEEEEE"]`,
	}

	t.Run("counter node missing", func(t *testing.T) {
		out := rule.Infer([]byte(`<html><body><p>layout changed</p></body></html>`))
		require.Equal(t, StateUnparseable, out.State)
	})

	t.Run("counter text has no number", func(t *testing.T) {
		out := rule.Infer([]byte(`<html><body><table><tr>
			<td bgcolor="#EEEEEE">Resultados da pesquisa</td>
		</tr></table></body></html>`))
		require.Equal(t, StateUnparseable, out.State)
		// the raw indicator text is kept for diagnostics
		require.Contains(t, out.Message, "Resultados da pesquisa")
	})
}
