// File path: internal/index/tfidf.go
package index

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Options control how a vectorizer is fitted over a document set.
type Options struct {
	// NgramMin and NgramMax bound the token n-gram lengths included in the
	// vocabulary.
	NgramMin int
	NgramMax int

	// MaxFeatures caps the vocabulary, keeping the terms with the highest
	// corpus-wide frequency. Zero means unbounded.
	MaxFeatures int

	// MaxDF excludes terms present in more than this fraction of documents.
	// Terms occurring even once are otherwise kept.
	MaxDF float64

	// SublinearTF replaces raw term frequency with 1 + ln(tf).
	SublinearTF bool
}

// Vector is a sparse weighted-term vector keyed by vocabulary index.
type Vector map[int]float64

// vectorizer holds the vocabulary and weighting parameters fitted over a
// corpus, so future query strings can be projected into the same space
// without re-fitting.
type vectorizer struct {
	opts  Options
	vocab map[string]int
	idf   []float64
}

func fitVectorizer(texts []string, opts Options) *vectorizer {
	if opts.NgramMin < 1 {
		opts.NgramMin = 1
	}
	if opts.NgramMax < opts.NgramMin {
		opts.NgramMax = opts.NgramMin
	}

	df := make(map[string]int)
	total := make(map[string]int)
	for _, text := range texts {
		terms := analyze(text, opts)
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			total[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				df[term]++
			}
		}
	}

	n := len(texts)
	candidates := make([]string, 0, len(df))
	maxDocs := n
	if opts.MaxDF > 0 && opts.MaxDF < 1 {
		maxDocs = int(opts.MaxDF * float64(n))
	}
	for term, count := range df {
		if count > maxDocs {
			continue
		}
		candidates = append(candidates, term)
	}
	if opts.MaxFeatures > 0 && len(candidates) > opts.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			if total[candidates[i]] != total[candidates[j]] {
				return total[candidates[i]] > total[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:opts.MaxFeatures]
	}
	sort.Strings(candidates)

	v := &vectorizer{
		opts:  opts,
		vocab: make(map[string]int, len(candidates)),
		idf:   make([]float64, len(candidates)),
	}
	for i, term := range candidates {
		v.vocab[term] = i
		v.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
	return v
}

// transform projects a text into the fitted vector space. Out-of-vocabulary
// terms are dropped; a text sharing no terms with the vocabulary yields an
// empty (all-zero) vector rather than an error.
func (v *vectorizer) transform(text string) Vector {
	counts := make(map[int]float64)
	for _, term := range analyze(text, v.opts) {
		if idx, ok := v.vocab[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}
	vec := make(Vector, len(counts))
	var norm float64
	for idx, tf := range counts {
		if v.opts.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		w := tf * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return Vector{}
	}
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// analyze lowercases, tokenizes, strips stop words, and expands the token
// stream into the configured n-gram range.
func analyze(text string, opts Options) []string {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	if opts.NgramMax == 1 {
		return tokens
	}
	terms := make([]string, 0, len(tokens)*opts.NgramMax)
	for n := opts.NgramMin; n <= opts.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// tokenize extracts lowercase word tokens of at least two characters,
// splitting on anything that is not a letter or digit.
func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	var tokens []string
	var current []rune
	flush := func() {
		if len(current) >= 2 {
			token := string(current)
			if _, stop := englishStopWords[token]; !stop {
				tokens = append(tokens, token)
			}
		}
		current = current[:0]
	}
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current = append(current, r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}
