package scrape

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunContext is one acquisition run: the directory its page files were
// written to and the page range that ended up there. The directory is
// owned by the caller; the core never deletes it.
type RunContext struct {
	Dir     string
	Pages   PageRange
	Profile *Profile
}

// PageFileName encodes the 1-based page number with fixed-width zero
// padding so lexicographic and numeric ordering agree.
func PageFileName(kind string, page int, content ContentKind) string {
	return fmt.Sprintf("%s_%05d.%s", kind, page, content.Ext())
}

const runIdLayout = "20060102_150405"

func newRunDir(base, kind string, now time.Time) (string, error) {
	dir := filepath.Join(base, kind, now.Format(runIdLayout))
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}
	return dir, nil
}

// writeDebugDump persists the raw first page outside the normal page
// files so site-structure drift can be diagnosed without re-issuing the
// request against a rate-limited portal.
func writeDebugDump(base, kind string, content []byte, now time.Time) (string, error) {
	dir := filepath.Join(base, kind+"_debug")
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}
	file := filepath.Join(dir, fmt.Sprintf(
		"%s_primeira_pagina_%s.html", kind, now.Format("20060102150405"),
	))
	err = os.WriteFile(file, content, 0644)
	if err != nil {
		return "", err
	}
	return file, nil
}
