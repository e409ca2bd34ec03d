// File path: internal/corpus/normalize_test.go
package corpus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func gitaTable() *Table {
	return &Table{
		Columns: []string{"Chapter", "Verse", "Sanskrit ", "Swami Adidevananda", "Swami Sivananda", "Shri Purohit Swami"},
		Rows: [][]string{
			{"2", "47", "कर्मण्येवाधिकारस्ते", "You have a right to perform your prescribed duty, but not to the fruits of action.", "Thy right is to work only.", ""},
			{"2", "48", "योगस्थः कुरु कर्माणि", "", "Perform action being steadfast in yoga.", ""},
			{"18", "1", "", "", "", ""},
		},
	}
}

func TestNormalizeSelectsPrimaryByPriority(t *testing.T) {
	rows, err := Normalize(map[Source]RawTables{
		SourceGita: {Primary: gitaTable()},
		SourcePYS: {Primary: &Table{
			Columns: []string{"Chapter", "Verse", "Translation "},
			Rows:    [][]string{{"1", "2", "Yoga is the cessation of the fluctuations of the mind."}},
		}},
	})
	require.NoError(t, err)
	// the third Gita row has no searchable content and is excluded
	require.Len(t, rows, 3)

	first := rows[0]
	require.Equal(t, SourceGita, first.Source)
	require.Equal(t, "You have a right to perform your prescribed duty, but not to the fruits of action.", first.Primary)
	require.Equal(t, first.Primary, first.SearchText)
	require.Equal(t, 2, first.Chapter)
	require.Equal(t, 47, first.VerseNumber)

	// second row: priority column empty, next translator wins
	second := rows[1]
	require.Equal(t, "Perform action being steadfast in yoga.", second.Primary)

	// PYS resolves the trailing-whitespace column variant
	pys := rows[2]
	require.Equal(t, SourcePYS, pys.Source)
	require.Equal(t, "Yoga is the cessation of the fluctuations of the mind.", pys.Primary)
}

func TestNormalizeSemanticTextIncludesAlternates(t *testing.T) {
	rows, err := Normalize(map[Source]RawTables{
		SourceGita: {Primary: gitaTable()},
		SourcePYS: {Primary: &Table{
			Columns: []string{"Chapter", "Verse", "English"},
			Rows:    [][]string{{"1", "1", "Now, the teachings of yoga."}},
		}},
	})
	require.NoError(t, err)

	first := rows[0]
	require.Contains(t, first.SemanticText, first.Primary)
	require.Contains(t, first.SemanticText, "Thy right is to work only.")
}

func TestNormalizeSupplementJoinBackfillsMetadata(t *testing.T) {
	supplement := &Table{
		Columns: []string{"chapter", "verse", "concept", "keyword"},
		Rows: [][]string{
			{"2.0", "47.0", "Karma Yoga", "Detachment"},
			{"9", "9", "Unmatched", "Unmatched"},
		},
	}
	rows, err := Normalize(map[Source]RawTables{
		SourceGita: {Primary: gitaTable(), Supplements: []*Table{supplement}},
		SourcePYS: {Primary: &Table{
			Columns: []string{"Chapter", "Verse", "English"},
			Rows:    [][]string{{"1", "1", "Now, the teachings of yoga."}},
		}},
	})
	require.NoError(t, err)

	require.Equal(t, "Karma Yoga", rows[0].Concept)
	require.Equal(t, "Detachment", rows[0].Keyword)
	require.Contains(t, rows[0].SemanticText, "Karma Yoga")

	// unmatched rows keep defaults, and the join never drops primary rows
	require.Empty(t, rows[1].Concept)
	require.Empty(t, rows[1].Keyword)
}

func TestNormalizeMissingRequiredSource(t *testing.T) {
	_, err := Normalize(map[Source]RawTables{
		SourceGita: {Primary: gitaTable()},
	})
	require.ErrorIs(t, err, ErrDataLoad)
}

func TestParseVerseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2", 2, true},
		{"2.0", 2, true},
		{"  47.0  ", 47, true},
		{"2.5", 0, false},
		{"0", 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseVerseNumber(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
