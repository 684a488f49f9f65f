package scrape

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

var payloadExts = map[string]bool{
	".html": true,
	".htm":  true,
	".json": true,
}

// Aggregate parses one page file, or every payload file under a run
// directory, into a single union-of-columns table. A file that fails to
// parse is logged and skipped; the batch never aborts because of one
// file. A batch that is all failures yields an empty table.
func Aggregate(ctx context.Context, path string, extractor Extractor, opts ExtractOptions) (*Table, error) {
	ctx, span := tracer.Start(ctx, "Aggregate")
	defer span.End()

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var files []string
	if !info.IsDir() {
		files = []string{path}
	} else {
		// WalkDir is lexical, so enumeration is reproducible for a
		// given directory snapshot
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if payloadExts[strings.ToLower(filepath.Ext(p))] {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	table := &Table{}
	failures := 0
	for _, file := range files {
		records, err := parseFile(file, extractor, opts)
		if err != nil {
			failures++
			slog.ErrorContext(ctx, "skipping unparseable file", "file", file, "err", err)
			continue
		}
		table.Append(records...)
	}

	span.SetAttributes(
		attribute.Int("files", len(files)),
		attribute.Int("failures", failures),
		attribute.Int("rows", table.Len()),
	)
	return table, nil
}

func parseFile(file string, extractor Extractor, opts ExtractOptions) ([]Record, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, ParseError{File: file, Err: err}
	}
	records, err := extractor.Extract(content, opts)
	if err != nil {
		return nil, ParseError{File: file, Err: err}
	}
	return records, nil
}
