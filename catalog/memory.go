package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nesmachny/translio"
)

// MemoryCatalog is a thread-safe in-memory catalog, joining against any
// record backend for translation state.
type MemoryCatalog struct {
	mu      sync.RWMutex
	strings map[string]ScannedString
	records recordBackend
	now     func() time.Time
}

// NewMemoryCatalog creates an empty catalog joined against the given record
// backend (typically a store.MemoryStore).
func NewMemoryCatalog(records recordBackend) *MemoryCatalog {
	return &MemoryCatalog{
		strings: make(map[string]ScannedString),
		records: records,
		now:     time.Now,
	}
}

// RecordString upserts by id; first-seen wins, repeats are silent no-ops.
func (c *MemoryCatalog) RecordString(ctx context.Context, s ScannedString) error {
	if s.ID == "" {
		s.ID = translio.StringID(s.Text, s.Domain)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.strings[s.ID]; exists {
		return nil
	}
	s.CreatedAt = c.now()
	c.strings[s.ID] = s
	return nil
}

// List returns a filtered page ordered by (domain, text) for determinism.
func (c *MemoryCatalog) List(ctx context.Context, f Filter) ([]Entry, error) {
	entries, err := c.match(ctx, f)
	if err != nil {
		return nil, err
	}

	if f.Offset > 0 {
		if f.Offset >= len(entries) {
			return nil, nil
		}
		entries = entries[f.Offset:]
	}
	if f.Limit > 0 && len(entries) > f.Limit {
		entries = entries[:f.Limit]
	}
	return entries, nil
}

// Count returns the number of matching entries, ignoring pagination.
func (c *MemoryCatalog) Count(ctx context.Context, f Filter) (int, error) {
	entries, err := c.match(ctx, f)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// ClearAll deletes every scanned string and cascades to the "string"
// translation records.
func (c *MemoryCatalog) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	c.strings = make(map[string]ScannedString)
	c.mu.Unlock()

	_, err := c.records.DeleteByType(ctx, translio.TypeString)
	return err
}

// Len returns the number of catalog entries.
func (c *MemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.strings)
}

func (c *MemoryCatalog) match(ctx context.Context, f Filter) ([]Entry, error) {
	c.mu.RLock()
	candidates := make([]ScannedString, 0, len(c.strings))
	for _, s := range c.strings {
		if f.Domain != "" && s.Domain != f.Domain {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(s.Text), strings.ToLower(f.Search)) {
			continue
		}
		candidates = append(candidates, s)
	}
	c.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Domain != candidates[j].Domain {
			return candidates[i].Domain < candidates[j].Domain
		}
		return candidates[i].Text < candidates[j].Text
	})

	// One bulk join covers translation state for the whole candidate set.
	var records map[translio.Key]*translio.Record
	if f.LanguageCode != "" {
		ids := make([]string, len(candidates))
		for i, s := range candidates {
			ids[i] = s.ID
		}
		var err error
		records, err = c.records.BulkGet(ctx, translio.TypeString, f.LanguageCode, ids)
		if err != nil {
			return nil, err
		}
	}

	var entries []Entry
	for _, s := range candidates {
		e := Entry{ScannedString: s}
		if rec := records[s.RecordKey(f.LanguageCode)]; rec != nil && rec.TranslatedContent != "" {
			e.Translated = true
			e.Translation = rec.TranslatedContent
		}
		switch f.Translated {
		case Translated:
			if !e.Translated {
				continue
			}
		case Untranslated:
			if e.Translated {
				continue
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Verify MemoryCatalog implements Catalog
var _ Catalog = (*MemoryCatalog)(nil)
