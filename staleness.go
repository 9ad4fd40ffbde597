package translio

import (
	"context"
	"sort"
)

// Classify compares the current source value against a stored record.
//
// The source value supplied by the caller is the authoritative snapshot for
// this classification: the engine never re-fetches live content, so one call
// site observing one source read always gets one consistent answer.
func Classify(source string, rec *Record) Status {
	if rec == nil || rec.TranslatedContent == "" {
		return StatusMissing
	}
	if Fingerprint(source) == rec.OriginalHash {
		return StatusFresh
	}
	return StatusStale
}

// FieldStatus pairs a source field with its classification.
type FieldStatus struct {
	Field  SourceField
	Status Status
}

// ClassifyFields classifies every field against the supplied record set.
// Records are keyed by the field's record key for the given language; a field
// with no entry classifies as missing. Input order is preserved.
func ClassifyFields(fields []SourceField, records map[Key]*Record, languageCode string) []FieldStatus {
	out := make([]FieldStatus, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldStatus{
			Field:  f,
			Status: Classify(f.Value, records[f.FieldKey(languageCode)]),
		})
	}
	return out
}

// StatusCounts aggregates per-field classifications.
type StatusCounts struct {
	Missing int
	Stale   int
	Fresh   int
}

// Total returns the number of classified fields.
func (c StatusCounts) Total() int {
	return c.Missing + c.Stale + c.Fresh
}

// Count folds a set of field statuses into aggregate counts.
func Count(statuses []FieldStatus) StatusCounts {
	var c StatusCounts
	for _, s := range statuses {
		switch s.Status {
		case StatusMissing:
			c.Missing++
		case StatusStale:
			c.Stale++
		case StatusFresh:
			c.Fresh++
		}
	}
	return c
}

// ObjectProgress summarizes how many objects are fully translated. An object
// counts as fully translated only if every non-empty translatable field is
// fresh. Objects with zero non-empty fields are excluded from both counts.
type ObjectProgress struct {
	Objects         int // objects with at least one non-empty field
	FullyTranslated int
}

// Progress folds field statuses into per-object completion. Fields with empty
// source values are ignored.
func Progress(statuses []FieldStatus) ObjectProgress {
	type objKey struct{ id, typ string }
	allFresh := make(map[objKey]bool)
	for _, s := range statuses {
		if s.Field.Value == "" {
			continue
		}
		k := objKey{s.Field.ObjectID, s.Field.ObjectType}
		fresh, seen := allFresh[k]
		if !seen {
			fresh = true
		}
		allFresh[k] = fresh && s.Status == StatusFresh
	}
	var p ObjectProgress
	for _, fresh := range allFresh {
		p.Objects++
		if fresh {
			p.FullyTranslated++
		}
	}
	return p
}

// CountStatuses classifies candidate fields against the store with one bulk
// lookup per object type, avoiding per-field point reads. The result is
// independent of candidate ordering.
func CountStatuses(ctx context.Context, s RecordStore, languageCode string, fields []SourceField) (StatusCounts, error) {
	records, err := fetchRecords(ctx, s, languageCode, fields)
	if err != nil {
		return StatusCounts{}, err
	}
	return Count(ClassifyFields(fields, records, languageCode)), nil
}

// fetchRecords bulk-loads the records backing a candidate field set, grouped
// by object type so each type costs a single store round trip.
func fetchRecords(ctx context.Context, s RecordStore, languageCode string, fields []SourceField) (map[Key]*Record, error) {
	idsByType := make(map[string][]string)
	seen := make(map[[2]string]bool)
	for _, f := range fields {
		k := [2]string{f.ObjectType, f.ObjectID}
		if seen[k] {
			continue
		}
		seen[k] = true
		idsByType[f.ObjectType] = append(idsByType[f.ObjectType], f.ObjectID)
	}

	types := make([]string, 0, len(idsByType))
	for t := range idsByType {
		types = append(types, t)
	}
	sort.Strings(types)

	records := make(map[Key]*Record)
	for _, t := range types {
		got, err := s.BulkGet(ctx, t, languageCode, idsByType[t])
		if err != nil {
			return nil, err
		}
		for k, r := range got {
			records[k] = r
		}
	}
	return records, nil
}
