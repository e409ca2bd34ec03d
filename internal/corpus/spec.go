// File path: internal/corpus/spec.go
package corpus

// SourceSpec declares, for one source, how its raw tabular schema maps onto
// canonical fields: file names on disk, column-name aliases (upstream files
// disagree on casing and carry trailing-whitespace variants), and the
// priority order over translator columns. Adding a source means adding a
// spec entry, not a new code path.
type SourceSpec struct {
	Source      Source
	Name        string
	Description string
	Required    bool

	// Dir and file names locate the tables under the data directory.
	Dir             string
	PrimaryFile     string
	SupplementFiles []string

	ChapterAliases  []string
	VerseAliases    []string
	SanskritAliases []string
	ConceptAliases  []string
	KeywordAliases  []string

	// Translators is the priority order for primary-translation selection;
	// the first column with non-empty trimmed text wins.
	Translators []string

	// Alternates are translator columns whose text, when it differs from
	// the primary, enriches the semantic search text.
	Alternates []string

	// DefaultChapters is reported in the sources summary when the corpus
	// carries no parseable chapter numbers for the source.
	DefaultChapters int
}

var sourceSpecs = map[Source]SourceSpec{
	SourceGita: {
		Source:      SourceGita,
		Name:        "Bhagavad Gita",
		Description: "A 700-verse Hindu scripture that is part of the epic Mahabharata",
		Required:    true,
		Dir:         "BWG data",
		PrimaryFile: "Bhagwad_Gita_Verses_English.csv",
		SupplementFiles: []string{
			"Bhagwad_Gita_Verses_Concepts.csv",
			"Bhagwad_Gita_Verses_English_Questions.csv",
		},
		ChapterAliases:  []string{"Chapter", "chapter"},
		VerseAliases:    []string{"Verse", "verse"},
		SanskritAliases: []string{"Sanskrit ", "Sanskrit", "sanskrit"},
		ConceptAliases:  []string{"Concept", "concept"},
		KeywordAliases:  []string{"Keyword", "keyword"},
		Translators: []string{
			"Swami Adidevananda",
			"Swami Gambirananda",
			"Swami Sivananda",
			"Dr. S. Sankaranarayan",
			"Shri Purohit Swami",
			"English",
		},
		Alternates:      []string{"Swami Gambirananda", "Swami Sivananda"},
		DefaultChapters: 18,
	},
	SourcePYS: {
		Source:      SourcePYS,
		Name:        "Patanjali Yoga Sutras",
		Description: "A collection of 196 Indian sutras on the theory and practice of yoga",
		Required:    true,
		Dir:         "PYS Data",
		PrimaryFile: "Patanjali_Yoga_Sutras_Verses_English.csv",
		SupplementFiles: []string{
			"Patanjali_Yoga_Sutras_Verses_English_Questions.csv",
		},
		ChapterAliases:  []string{"Chapter", "chapter"},
		VerseAliases:    []string{"Verse", "verse"},
		SanskritAliases: []string{"Sanskrit ", "Sanskrit", "sanskrit"},
		ConceptAliases:  []string{"Concept", "concept"},
		KeywordAliases:  []string{"Keyword", "keyword"},
		Translators: []string{
			"English",
			"Translation ",
			"translation",
		},
		DefaultChapters: 4,
	},
}

// Spec returns the declared schema mapping for a source.
func Spec(source Source) (SourceSpec, bool) {
	spec, ok := sourceSpecs[source]
	return spec, ok
}
