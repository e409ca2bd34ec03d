// File path: internal/summary/composer.go
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/corpus"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/llm"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/retriever"
)

const (
	noResultsMessage = "No relevant verses found for your query."

	teachingLimit   = 120
	excerptLimit    = 100
	excerptCount    = 3
	themeLimit      = 3
	defaultTimeout  = 20 * time.Second
	universalThemes = "universal spiritual principles"
)

// Composer renders a structured textual summary from ranked verses. The
// deterministic template path is always available; a collaborator, when
// configured, contributes an extra analysis paragraph. Compose never
// returns an error: collaborator failures are absorbed silently.
type Composer struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewComposer wires an optional collaborator. A nil provider disables the
// enrichment path entirely.
func NewComposer(provider llm.Provider, timeout time.Duration) *Composer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Composer{provider: provider, timeout: timeout}
}

// Compose produces the summary text for a query and its ranked verses.
func (c *Composer) Compose(ctx context.Context, query string, verses []retriever.Verse) string {
	if len(verses) == 0 {
		return noResultsMessage
	}

	lines := verseLines(verses)

	if c.provider != nil {
		if analysis := c.queryAnalysis(ctx, query, verses); analysis != "" {
			return "**Query Analysis:** " + analysis + "\n\n**Retrieved Verses:**\n" + strings.Join(lines, "\n")
		}
	}

	theme := analyzeThemes(verses)
	var b strings.Builder
	fmt.Fprintf(&b, "**Spiritual Guidance on '%s'**\n\n", query)
	fmt.Fprintf(&b, "**Analysis:** Found %d relevant teachings from ancient scriptures with %s.\n\n", len(verses), theme)
	b.WriteString("**Key Verses:**\n")
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\n**Teaching Summary:** These verses collectively guide us toward understanding '%s' through the wisdom of dharma, self-discipline, and spiritual awareness.", strings.ToLower(query))
	return b.String()
}

// queryAnalysis submits the query and a few truncated translations to the
// collaborator under a deadline. Any failure or empty reply yields "".
func (c *Composer) queryAnalysis(ctx context.Context, query string, verses []retriever.Verse) string {
	excerpts := make([]string, 0, excerptCount)
	for _, verse := range verses {
		if verse.Translation == "" {
			continue
		}
		excerpts = append(excerpts, truncate(verse.Translation, excerptLimit))
		if len(excerpts) == excerptCount {
			break
		}
	}
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	analysis, err := llm.Summarize(callCtx, c.provider, query, excerpts)
	if err != nil {
		common.Logger().Warn("summary: collaborator enrichment skipped", "error", err)
		return ""
	}
	return analysis
}

func verseLines(verses []retriever.Verse) []string {
	lines := make([]string, 0, len(verses))
	for i, verse := range verses {
		reference := fmt.Sprintf("Verse %d", i+1)
		if verse.Chapter != nil && verse.VerseNumber != nil {
			name := string(verse.Source)
			if spec, ok := corpus.Spec(verse.Source); ok {
				name = spec.Name
			}
			reference = fmt.Sprintf("%s %d.%d", name, *verse.Chapter, *verse.VerseNumber)
		}
		line := "**" + reference + "**"
		if verse.Translation != "" {
			line += ": " + truncate(strings.TrimSpace(verse.Translation), teachingLimit)
		}
		lines = append(lines, line)
	}
	return lines
}

// analyzeThemes names a common theme from up to three distinct concepts,
// falling back to keywords and then to a generic phrase.
func analyzeThemes(verses []retriever.Verse) string {
	if concepts := distinct(verses, func(v retriever.Verse) string { return v.Concept }); len(concepts) > 0 {
		return "themes of " + strings.Join(concepts, ", ")
	}
	if keywords := distinct(verses, func(v retriever.Verse) string { return v.Keyword }); len(keywords) > 0 {
		return "concepts of " + strings.Join(keywords, ", ")
	}
	return universalThemes
}

func distinct(verses []retriever.Verse, field func(retriever.Verse) string) []string {
	seen := make(map[string]struct{}, themeLimit)
	out := make([]string, 0, themeLimit)
	for _, verse := range verses {
		value := strings.TrimSpace(field(verse))
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
		if len(out) == themeLimit {
			break
		}
	}
	return out
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
