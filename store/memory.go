package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nesmachny/translio"
)

// MemoryStore is a thread-safe in-memory record store. It backs tests and
// single-process setups; production deployments use SQLiteStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[translio.Key]translio.Record
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[translio.Key]translio.Record),
		now:     time.Now,
	}
}

// Save upserts a record under its composite key. The original hash is always
// recomputed from originalContent; writing an empty translation is legal and
// represents clearing a manual translation.
func (s *MemoryStore) Save(ctx context.Context, key translio.Key, originalContent, translatedContent string, isAuto bool) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec, exists := s.records[key]
	if !exists {
		rec = translio.Record{
			ObjectID:     key.ObjectID,
			ObjectType:   key.ObjectType,
			FieldName:    key.FieldName,
			LanguageCode: key.LanguageCode,
			CreatedAt:    now,
		}
	}
	rec.OriginalContent = originalContent
	rec.OriginalHash = translio.Fingerprint(originalContent)
	rec.TranslatedContent = translatedContent
	rec.IsAutoTranslated = isAuto
	rec.UpdatedAt = now
	s.records[key] = rec
	return nil
}

// Get returns the record for key, or nil when none exists.
func (s *MemoryStore) Get(ctx context.Context, key translio.Key) (*translio.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// BulkGet loads records for the given object ids in one pass.
func (s *MemoryStore) BulkGet(ctx context.Context, objectType, languageCode string, objectIDs []string) (map[translio.Key]*translio.Record, error) {
	wanted := make(map[string]bool, len(objectIDs))
	for _, id := range objectIDs {
		wanted[id] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[translio.Key]*translio.Record)
	for key, rec := range s.records {
		if key.ObjectType != objectType || key.LanguageCode != languageCode || !wanted[key.ObjectID] {
			continue
		}
		r := rec
		out[key] = &r
	}
	return out, nil
}

// GetAllForObject returns every field record of one object, ordered by field name.
func (s *MemoryStore) GetAllForObject(ctx context.Context, objectID, objectType, languageCode string) ([]translio.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []translio.Record
	for key, rec := range s.records {
		if key.ObjectID == objectID && key.ObjectType == objectType && key.LanguageCode == languageCode {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldName < out[j].FieldName })
	return out, nil
}

// ListTranslated returns every record with a non-empty translation for the language.
func (s *MemoryStore) ListTranslated(ctx context.Context, languageCode string) ([]translio.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []translio.Record
	for key, rec := range s.records {
		if key.LanguageCode == languageCode && rec.TranslatedContent != "" {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ObjectType != b.ObjectType {
			return a.ObjectType < b.ObjectType
		}
		if a.ObjectID != b.ObjectID {
			return a.ObjectID < b.ObjectID
		}
		return a.FieldName < b.FieldName
	})
	return out, nil
}

// CountTranslated counts non-empty translations for the language, optionally
// restricted to one object type.
func (s *MemoryStore) CountTranslated(ctx context.Context, languageCode, objectType string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for key, rec := range s.records {
		if key.LanguageCode != languageCode || rec.TranslatedContent == "" {
			continue
		}
		if objectType != "" && key.ObjectType != objectType {
			continue
		}
		n++
	}
	return n, nil
}

// DeleteByType removes every record of one object type across all languages.
func (s *MemoryStore) DeleteByType(ctx context.Context, objectType string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key := range s.records {
		if key.ObjectType == objectType {
			delete(s.records, key)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Verify MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
