package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	apperrors "jobtrack/internal/platform/errors"
)

// MinDocumentFrequency is the number of role titles a term must appear in
// before it can rank.
const MinDocumentFrequency = 2

var nonWordRun = regexp.MustCompile(`[^\p{L}\p{M}\p{N}]+`)

var defaultStopwords = []string{
	"summer", "fall", "spring", "jr", "sr", "the", "and", "of", "for", "with",
	"to", "a", "an", "job", "2024", "2025", "2026", "id", "hybrid", "graduate",
	"i", "ii", "iii", "usds", "new", "grad", "program", "internship", "intern",
	"staff", "co", "op",
}

type TermCount struct {
	Term  string
	Count int
}

type NgramRange struct {
	Min int
	Max int
}

func (r NgramRange) Validate() error {
	if r.Min < 1 || r.Max < r.Min {
		return fmt.Errorf("%w: ngram range must satisfy 1 <= min <= max, got (%d, %d)", apperrors.ErrInvalidInput, r.Min, r.Max)
	}
	return nil
}

// Stoplist holds lowercase words removed before n-grams are formed.
type Stoplist map[string]struct{}

func DefaultStoplist() Stoplist {
	s := make(Stoplist, len(defaultStopwords))
	for _, w := range defaultStopwords {
		s[w] = struct{}{}
	}
	return s
}

// With returns a copy of s extended by words.
func (s Stoplist) With(words ...string) Stoplist {
	out := make(Stoplist, len(s)+len(words))
	for w := range s {
		out[w] = struct{}{}
	}
	for _, w := range words {
		w = NormalizeRole(w)
		if w != "" {
			out[w] = struct{}{}
		}
	}
	return out
}

// NormalizeRole lowercases text and collapses every run of punctuation or
// whitespace into a single space.
func NormalizeRole(text string) string {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = nonWordRun.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// TopRoleTerms ranks word n-grams of the role titles. Stopwords and
// single-character tokens are removed before n-grams are built. Terms found in
// fewer than MinDocumentFrequency titles are dropped. Ties keep first-seen
// order. A nil stoplist means DefaultStoplist.
func TopRoleTerms(records []Record, n int, ngrams NgramRange, stop Stoplist) ([]TermCount, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be >= 0, got %d", apperrors.ErrInvalidInput, n)
	}
	if err := ngrams.Validate(); err != nil {
		return nil, err
	}
	if stop == nil {
		stop = DefaultStoplist()
	}

	type stat struct {
		count int
		docs  int
		order int
	}
	stats := make(map[string]*stat)
	var order []string

	for _, r := range records {
		tokens := tokenize(NormalizeRole(r.Role), stop)
		seen := make(map[string]bool)
		for size := ngrams.Min; size <= ngrams.Max; size++ {
			for i := 0; i+size <= len(tokens); i++ {
				term := strings.Join(tokens[i:i+size], " ")
				st, ok := stats[term]
				if !ok {
					st = &stat{order: len(order)}
					stats[term] = st
					order = append(order, term)
				}
				st.count++
				if !seen[term] {
					seen[term] = true
					st.docs++
				}
			}
		}
	}

	out := make([]TermCount, 0)
	for _, term := range order {
		if st := stats[term]; st.docs >= MinDocumentFrequency {
			out = append(out, TermCount{Term: term, Count: st.count})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func tokenize(normalized string, stop Stoplist) []string {
	fields := strings.Fields(normalized)
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 {
			continue
		}
		if _, skip := stop[f]; skip {
			continue
		}
		out = append(out, f)
	}
	return out
}
