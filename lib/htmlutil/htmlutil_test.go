package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCleanText(t *testing.T) {
	doc := parse(t, "<div>\n\t\tRelator:\n\t\t\tFulano de​ Tal\n\t</div>")
	// the zero-width space is dropped, the layout whitespace collapsed
	require.Equal(t, "Relator: Fulano de Tal", CleanText(doc.Find("div")))
}

func TestCleanTextDescendsIntoChildren(t *testing.T) {
	doc := parse(t, `<div>Processo <span class="negrito">0001234-55.2021.8.16.0001</span> digital</div>`)
	require.Equal(t, "Processo 0001234-55.2021.8.16.0001 digital", CleanText(doc.Find("div")))
}

func TestFindByText(t *testing.T) {
	doc := parse(t, `<ul>
		<li>Comarca: Campinas</li>
		<li>Relator: Fulano</li>
		<li>Comarca: Santos</li>
	</ul>`)

	sel := FindByText(doc.Selection, "li", "Comarca")
	require.Equal(t, 2, sel.Length())
	require.Contains(t, sel.First().Text(), "Campinas")
}
