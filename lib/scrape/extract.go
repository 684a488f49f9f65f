package scrape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"juscraper/lib/htmlutil"
	"juscraper/lib/textutil"
)

type ExtractOptions struct {
	// keep heavy nested collections in the output
	Verbose bool
}

// Extractor turns one raw payload into zero or more records.
type Extractor interface {
	Extract(content []byte, opts ExtractOptions) ([]Record, error)
}

// FieldRule extracts one field from a record container, trying up to
// three strategies in order: an anchored selector lookup, a label-text
// lookup, and a regular expression over the whole payload. Whatever
// misses is simply left off the record.
type FieldRule struct {
	Name string

	// attribute/id-anchored lookup inside the container; the fastest
	// and the first to break when the site changes
	Selector string
	// attribute to read off the selected node; node text when empty
	Attr string

	// normalized label ("relator", not "Relator:") looked up among the
	// container's label rows
	Label string

	// whole-payload fallback, first capture group
	Pattern *regexp.Regexp
}

// NestedRule extracts an ordered list of sub-records (movements,
// parties, decisions) embedded as one field of the parent record.
type NestedRule struct {
	Name      string
	Container string
	Fields    []FieldRule
}

// HtmlRules describes how to pull records out of one court's markup.
type HtmlRules struct {
	// repeating record container, one per case entry
	Container string

	// selector for "Label: value" rows inside a container; every row it
	// matches is swept through the Labels table
	LabelRows string
	// normalized label -> field name; several labels may map to the
	// same field
	Labels map[string]string

	Fields []FieldRule
	Nested []NestedRule
}

type HtmlExtractor struct {
	Rules HtmlRules
}

func (e HtmlExtractor) Extract(content []byte, opts ExtractOptions) ([]Record, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("payload is not valid utf-8")
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var records []Record
	doc.Find(e.Rules.Container).Each(func(_ int, container *goquery.Selection) {
		records = append(records, e.extractOne(container, content))
	})
	return records, nil
}

func (e HtmlExtractor) extractOne(container *goquery.Selection, payload []byte) Record {
	rec := Record{}

	for _, field := range e.Rules.Fields {
		value, ok := lookupField(container, e.Rules.LabelRows, field, payload)
		if ok {
			rec[field.Name] = value
		}
	}

	e.sweepLabelRows(container, rec)

	for _, nested := range e.Rules.Nested {
		var children []Record
		container.Find(nested.Container).Each(func(_ int, sub *goquery.Selection) {
			child := Record{}
			for _, field := range nested.Fields {
				value, ok := lookupField(sub, e.Rules.LabelRows, field, nil)
				if ok {
					child[field.Name] = value
				}
			}
			children = append(children, child)
		})
		if children != nil {
			rec[nested.Name] = children
		}
	}

	return rec
}

// sweepLabelRows harvests every "Label: value" row the container has,
// keyed through the label table. Explicit field rules win over the
// sweep so attribute-anchored values are not clobbered.
func (e HtmlExtractor) sweepLabelRows(container *goquery.Selection, rec Record) {
	if e.Rules.LabelRows == "" || len(e.Rules.Labels) == 0 {
		return
	}
	container.Find(e.Rules.LabelRows).Each(func(_ int, row *goquery.Selection) {
		text := htmlutil.CleanText(row)
		head, tail, found := strings.Cut(text, ":")
		if !found {
			return
		}
		name, known := e.Rules.Labels[textutil.NormalizeLabel(head)]
		if !known {
			return
		}
		if _, taken := rec[name]; taken {
			return
		}
		rec[name] = strings.Trim(tail, " \n\t")
	})
}

func lookupField(container *goquery.Selection, labelRows string, field FieldRule, payload []byte) (string, bool) {
	if field.Selector != "" {
		sel := container.Find(field.Selector)
		if sel.Length() > 0 {
			if field.Attr != "" {
				value, ok := sel.First().Attr(field.Attr)
				if ok {
					return value, true
				}
			} else {
				value := htmlutil.CleanText(sel.First())
				if value != "" {
					return value, true
				}
			}
		}
	}

	if field.Label != "" && labelRows != "" {
		value, ok := labelValue(container, labelRows, field.Label)
		if ok {
			return value, true
		}
	}

	if field.Pattern != nil && payload != nil {
		groups := field.Pattern.FindSubmatch(payload)
		if len(groups) >= 2 {
			return textutil.CollapseWhitespace(string(groups[1])), true
		}
	}

	return "", false
}

// labelValue matches tolerantly: "Relator(a):" still satisfies a rule
// looking for "relator", so decorated label variants don't break the
// lookup.
func labelValue(container *goquery.Selection, rows, label string) (string, bool) {
	value := ""
	found := false
	container.Find(rows).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		text := htmlutil.CleanText(row)
		head, tail, cut := strings.Cut(text, ":")
		if !cut {
			return true
		}
		if !textutil.MatchLabel(head, []string{label}) {
			return true
		}
		value = strings.Trim(tail, " \n\t")
		found = true
		return false
	})
	return value, found
}

// JsonExtractor walks an API payload structurally: no label heuristics,
// records are taken as-is from the array the path points at.
type JsonExtractor struct {
	// path from the document root to the record array,
	// e.g. ["response", "docs"]
	Path []string
	// keys dropped from each record unless verbose output was requested
	Drop []string
	// unwrap single-element arrays into their only value (solr returns
	// most scalar fields as one-element lists)
	UnwrapLists bool
}

func (e JsonExtractor) Extract(content []byte, opts ExtractOptions) ([]Record, error) {
	var root any
	err := json.Unmarshal(content, &root)
	if err != nil {
		return nil, err
	}

	node := root
	for _, key := range e.Path {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected an object at %q in the payload", key)
		}
		node = obj[key]
	}

	items, ok := node.([]any)
	if !ok {
		if node == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("record array not found at path %v", e.Path)
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record entry is not an object")
		}

		rec := Record{}
		for key, value := range obj {
			if !opts.Verbose && e.dropped(key) {
				continue
			}
			if e.UnwrapLists {
				value = unwrapList(value)
			}
			rec[key] = value
		}
		records = append(records, rec)
	}
	return records, nil
}

func (e JsonExtractor) dropped(key string) bool {
	for _, d := range e.Drop {
		if d == key {
			return true
		}
	}
	return false
}

func unwrapList(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}
	if len(list) == 0 {
		return nil
	}
	if len(list) == 1 {
		return list[0]
	}
	return list
}
