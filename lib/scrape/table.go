package scrape

import "sort"

// Record is one extracted case/decision entry. Values are strings,
// []Record for nested sub-entities (movements, parties), or nil when a
// field is structurally absent. No two courts share a schema; the keys
// are whatever the extraction rules found.
type Record map[string]any

// Table is the union-of-columns aggregate of a batch. Column order is
// first-seen order across appended records; rows missing a column hold
// nil there.
type Table struct {
	Columns []string
	Rows    []Record
}

func (t *Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func (t *Table) Append(records ...Record) {
	for _, rec := range records {
		for _, key := range recordKeys(rec) {
			if !t.hasColumn(key) {
				t.Columns = append(t.Columns, key)
			}
		}
		t.Rows = append(t.Rows, rec)
	}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Value returns the cell at (row, column), nil when the record does not
// carry that column.
func (t *Table) Value(row int, column string) any {
	return t.Rows[row][column]
}

// sorted so column discovery does not depend on map iteration order
func recordKeys(rec Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
