// Package memory implements the translation-memory index: exact and fuzzy
// lookup of previously translated text.
//
// The index is a query capability over the record store, not a separate write
// path: every stored record with a non-empty translation is a candidate
// entry, keyed by its original content and language.
package memory

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"

	"github.com/nesmachny/translio"
)

// RecordSource supplies translation memory candidates for a language.
// Implemented by the store package.
type RecordSource interface {
	ListTranslated(ctx context.Context, languageCode string) ([]translio.Record, error)
}

// Cache memoizes exact-match lookups by fingerprint key.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Match is one translation memory hit.
type Match struct {
	Original   string
	Translated string
	Similarity int // 0..100
	ObjectType string
	FieldName  string
}

// Index provides exact and fuzzy translation memory lookup.
type Index struct {
	source RecordSource
	cache  Cache
}

// Option is a functional option for configuring the Index.
type Option func(*Index)

// WithCache memoizes exact-match hits under fingerprint:language keys.
func WithCache(cache Cache) Option {
	return func(ix *Index) {
		ix.cache = cache
	}
}

// NewIndex creates an Index over the given record source.
func NewIndex(source RecordSource, opts ...Option) *Index {
	ix := &Index{source: source}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// FindExact returns a stored translation whose original content equals text
// exactly, or nil when none exists. When several records share the same
// original, the most recently updated one wins; among equal timestamps the
// (object_type, object_id, field_name) ordering of the source breaks the tie.
//
// Hits served from the cache carry no ObjectType/FieldName provenance: the
// cache stores only the translated text, under the same keys the engine warms
// after a batch, so a cached entry may not correspond to any single record.
func (ix *Index) FindExact(ctx context.Context, text, languageCode string) (*Match, error) {
	if ix.cache != nil {
		key := translio.CacheKey(translio.Fingerprint(text), languageCode)
		if translated, ok := ix.cache.Get(key); ok {
			return &Match{Original: text, Translated: translated, Similarity: 100}, nil
		}
	}

	records, err := ix.source.ListTranslated(ctx, languageCode)
	if err != nil {
		return nil, err
	}

	var best *translio.Record
	for i := range records {
		rec := &records[i]
		if rec.OriginalContent != text {
			continue
		}
		if best == nil || rec.UpdatedAt.After(best.UpdatedAt) {
			best = rec
		}
	}
	if best == nil {
		return nil, nil
	}

	if ix.cache != nil {
		key := translio.CacheKey(translio.Fingerprint(text), languageCode)
		_ = ix.cache.Set(key, best.TranslatedContent)
	}
	return &Match{
		Original:   best.OriginalContent,
		Translated: best.TranslatedContent,
		Similarity: 100,
		ObjectType: best.ObjectType,
		FieldName:  best.FieldName,
	}, nil
}

// Lookup adapts FindExact to the engine's reuse interface.
func (ix *Index) Lookup(ctx context.Context, text, languageCode string) (string, bool, error) {
	m, err := ix.FindExact(ctx, text, languageCode)
	if err != nil || m == nil {
		return "", false, err
	}
	return m.Translated, true, nil
}

// FindFuzzy scores every candidate original against text and returns the
// matches scoring at or above minSimilarity, ranked by similarity descending.
// Ties break by shorter original, then lexically, so results are
// deterministic. limit <= 0 means no truncation.
//
// Candidates are pre-filtered by length ratio: a pair of strings whose
// normalized lengths differ by more than the similarity floor allows cannot
// reach minSimilarity, so skipping them never drops a qualifying match.
func (ix *Index) FindFuzzy(ctx context.Context, text, languageCode string, minSimilarity, limit int) ([]Match, error) {
	if minSimilarity < 0 {
		minSimilarity = 0
	}
	if minSimilarity > 100 {
		minSimilarity = 100
	}

	records, err := ix.source.ListTranslated(ctx, languageCode)
	if err != nil {
		return nil, err
	}

	query := normalize(text)
	seen := make(map[string]bool)
	var matches []Match

	for i := range records {
		rec := &records[i]
		if seen[rec.OriginalContent] {
			continue
		}
		seen[rec.OriginalContent] = true

		candidate := normalize(rec.OriginalContent)
		if !lengthsCompatible(utf8.RuneCountInString(query), utf8.RuneCountInString(candidate), minSimilarity) {
			continue
		}

		score := Similarity(query, candidate)
		if score < minSimilarity {
			continue
		}
		matches = append(matches, Match{
			Original:   rec.OriginalContent,
			Translated: rec.TranslatedContent,
			Similarity: score,
			ObjectType: rec.ObjectType,
			FieldName:  rec.FieldName,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if len(a.Original) != len(b.Original) {
			return len(a.Original) < len(b.Original)
		}
		return a.Original < b.Original
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Stats aggregates the memory for one language.
type Stats struct {
	TotalEntries    int // records with non-empty translations
	UniqueOriginals int // distinct original contents
	TotalChars      int // sum of original content lengths (runes)
}

// Stats computes aggregate statistics over the memory for a language.
func (ix *Index) Stats(ctx context.Context, languageCode string) (Stats, error) {
	records, err := ix.source.ListTranslated(ctx, languageCode)
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	originals := make(map[string]bool)
	for i := range records {
		s.TotalEntries++
		s.TotalChars += len([]rune(records[i].OriginalContent))
		originals[records[i].OriginalContent] = true
	}
	s.UniqueOriginals = len(originals)
	return s, nil
}

// Similarity scores two already-normalized strings on a 0..100 scale using a
// normalized Levenshtein edit-distance ratio. Identical strings score 100;
// strings differing only in trailing punctuation score in the 90s for typical
// sentence lengths.
func Similarity(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	return int(levenshtein.Similarity(a, b, nil)*100 + 0.5)
}

// normalize folds case and collapses runs of whitespace, so near-identical
// strings differing only in casing or spacing score very high.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// lengthsCompatible is the fuzzy pre-filter over rune counts. The
// edit-distance ratio of two strings is bounded above by shorter/longer
// rune length, so any pair failing that bound against minSimilarity cannot
// qualify. Byte lengths would understate the ratio for multibyte text.
func lengthsCompatible(la, lb, minSimilarity int) bool {
	if minSimilarity <= 0 {
		return true
	}
	shorter, longer := la, lb
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if longer == 0 {
		return true
	}
	return shorter*100 >= minSimilarity*longer
}
