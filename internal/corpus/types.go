// File path: internal/corpus/types.go
package corpus

import (
	"strconv"
	"strings"
)

// Source identifies one of the two text corpora served by the system.
type Source string

const (
	SourceGita Source = "Gita"
	SourcePYS  Source = "PYS"
)

// Sources lists the known sources in canonical corpus order.
var Sources = []Source{SourceGita, SourcePYS}

// ParseSource resolves a user-supplied source code to a known Source.
func ParseSource(value string) (Source, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "gita":
		return SourceGita, true
	case "pys":
		return SourcePYS, true
	}
	return "", false
}

// VerseRow is one normalized, schema-unified record representing a single
// verse. Rows are built once during startup and never mutated afterwards.
type VerseRow struct {
	Source Source

	// Chapter and VerseNumber are zero when the upstream value was missing
	// or unparseable; the raw strings are retained so assembly can re-run
	// the permissive parse independently of load-time normalization.
	Chapter     int
	VerseNumber int
	ChapterRaw  string
	VerseRaw    string

	Sanskrit string

	// Primary is the translation selected by the per-source priority list;
	// empty when no translator column carried text for this row.
	Primary string

	Concept string
	Keyword string

	// Translations holds the trimmed value of every translator column that
	// was present for this row, keyed by column name, so downstream code can
	// re-apply the priority list without re-probing raw tables.
	Translations map[string]string

	// SearchText feeds the precise index; it always equals Primary.
	SearchText string

	// SemanticText feeds the semantic index: Primary enriched with concept,
	// keyword and alternate translations that differ from Primary.
	SemanticText string
}

// Table is a raw tabular source: a header row plus data rows. Column names
// are kept verbatim, including trailing-whitespace variants.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// value returns the trimmed cell for row i under the first column whose
// name matches one of the given aliases, and whether any alias matched a
// column at all.
func (t *Table) value(i int, aliases []string) (string, bool) {
	if t == nil || i < 0 || i >= len(t.Rows) {
		return "", false
	}
	for _, alias := range aliases {
		for c, name := range t.Columns {
			if name != alias {
				continue
			}
			if c < len(t.Rows[i]) {
				return strings.TrimSpace(t.Rows[i][c]), true
			}
			return "", true
		}
	}
	return "", false
}

// hasColumn reports whether any alias names an existing column.
func (t *Table) hasColumn(aliases []string) bool {
	if t == nil {
		return false
	}
	for _, alias := range aliases {
		for _, name := range t.Columns {
			if name == alias {
				return true
			}
		}
	}
	return false
}

// RawTables bundles the tabular inputs for one source: a mandatory primary
// verse table and zero or more supplementary tables joined on
// (chapter, verse) to backfill concept/keyword metadata.
type RawTables struct {
	Primary     *Table
	Supplements []*Table
}

// ParseVerseNumber permissively parses a chapter or verse field. It accepts
// plain integers and integer-valued floats such as "2.0". Values below one
// are treated as absent.
func ParseVerseNumber(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 1 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	n := int(f)
	if float64(n) != f || n < 1 {
		return 0, false
	}
	return n, true
}
