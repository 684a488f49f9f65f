package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"juscraper/lib/textutil"
)

func collectText(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, buffer)
	}
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || c == '\n' || c == '\t' {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText extracts the visible text of a selection with non-printable
// characters dropped and whitespace collapsed.
func CleanText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, node := range sel.Nodes {
		collectText(node, &buffer)
	}
	return textutil.CollapseWhitespace(removeNonPrintable(buffer.String()))
}

// FindByText returns the selections under root (matching selector) whose
// own text contains the given substring.
func FindByText(root *goquery.Selection, selector, substring string) *goquery.Selection {
	return root.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), substring)
	})
}
