// File path: internal/corpus/normalize.go
package corpus

import (
	"fmt"
	"strings"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
)

type refKey struct {
	chapter int
	verse   int
}

type supplementMeta struct {
	concept string
	keyword string
}

// Normalize reconciles the raw per-source tables into the canonical verse
// corpus. Sources are processed in declared order so the resulting row
// positions are stable across runs. Rows with no searchable content (empty
// primary translation and empty Sanskrit) are excluded.
func Normalize(sources map[Source]RawTables) ([]VerseRow, error) {
	logger := common.Logger()
	var rows []VerseRow
	for _, source := range Sources {
		tables, ok := sources[source]
		if !ok {
			spec := sourceSpecs[source]
			if spec.Required {
				return nil, fmt.Errorf("%w: %s", ErrDataLoad, source)
			}
			continue
		}
		if tables.Primary.Empty() {
			spec := sourceSpecs[source]
			if spec.Required {
				return nil, fmt.Errorf("%w: %s", ErrDataLoad, source)
			}
			continue
		}
		sourceRows := normalizeSource(sourceSpecs[source], tables)
		logger.Info("corpus: normalized source", "source", source, "rows", len(sourceRows))
		rows = append(rows, sourceRows...)
	}
	return rows, nil
}

func normalizeSource(spec SourceSpec, tables RawTables) []VerseRow {
	supplements := buildSupplementIndex(spec, tables.Supplements)
	primary := tables.Primary

	rows := make([]VerseRow, 0, len(primary.Rows))
	for i := range primary.Rows {
		row := VerseRow{Source: spec.Source}
		row.ChapterRaw, _ = primary.value(i, spec.ChapterAliases)
		row.VerseRaw, _ = primary.value(i, spec.VerseAliases)
		row.Sanskrit, _ = primary.value(i, spec.SanskritAliases)
		if n, ok := ParseVerseNumber(row.ChapterRaw); ok {
			row.Chapter = n
		}
		if n, ok := ParseVerseNumber(row.VerseRaw); ok {
			row.VerseNumber = n
		}

		row.Translations = make(map[string]string, len(spec.Translators))
		for _, col := range spec.Translators {
			if v, present := primary.value(i, []string{col}); present && v != "" {
				row.Translations[col] = v
			}
		}
		row.Primary = SelectTranslation(spec, row.Translations)

		row.Concept, _ = primary.value(i, spec.ConceptAliases)
		row.Keyword, _ = primary.value(i, spec.KeywordAliases)
		if meta, ok := supplements[refKey{row.Chapter, row.VerseNumber}]; ok {
			if row.Concept == "" {
				row.Concept = meta.concept
			}
			if row.Keyword == "" {
				row.Keyword = meta.keyword
			}
		}

		if row.Primary == "" && row.Sanskrit == "" {
			continue
		}

		row.SearchText = row.Primary
		row.SemanticText = buildSemanticText(spec, row)
		rows = append(rows, row)
	}
	return rows
}

// SelectTranslation applies the source's translator priority list over the
// available column values: the first non-empty entry wins, the floor is the
// empty string. Deterministic for a given row.
func SelectTranslation(spec SourceSpec, translations map[string]string) string {
	for _, col := range spec.Translators {
		if v := strings.TrimSpace(translations[col]); v != "" {
			return v
		}
	}
	return ""
}

func buildSemanticText(spec SourceSpec, row VerseRow) string {
	parts := []string{row.Primary}
	if row.Concept != "" {
		parts = append(parts, row.Concept)
	}
	if row.Keyword != "" {
		parts = append(parts, row.Keyword)
	}
	for _, col := range spec.Alternates {
		alt := row.Translations[col]
		if alt != "" && alt != row.Primary {
			parts = append(parts, alt)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// buildSupplementIndex flattens the supplementary tables into a lookup on
// (chapter, verse). Earlier tables win; the join is left-outer, it only
// backfills metadata and never drops or adds primary rows.
func buildSupplementIndex(spec SourceSpec, supplements []*Table) map[refKey]supplementMeta {
	index := make(map[refKey]supplementMeta)
	for _, table := range supplements {
		if !table.hasColumn(spec.ConceptAliases) && !table.hasColumn(spec.KeywordAliases) {
			continue
		}
		for i := range table.Rows {
			chRaw, _ := table.value(i, spec.ChapterAliases)
			vsRaw, _ := table.value(i, spec.VerseAliases)
			ch, okCh := ParseVerseNumber(chRaw)
			vs, okVs := ParseVerseNumber(vsRaw)
			if !okCh || !okVs {
				continue
			}
			key := refKey{ch, vs}
			meta := index[key]
			if meta.concept == "" {
				meta.concept, _ = table.value(i, spec.ConceptAliases)
			}
			if meta.keyword == "" {
				meta.keyword, _ = table.value(i, spec.KeywordAliases)
			}
			index[key] = meta
		}
	}
	return index
}
