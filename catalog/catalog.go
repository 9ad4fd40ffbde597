// Package catalog maintains the registry of translatable strings discovered
// by static scanning. The catalog is an independent object space: a scanned
// string's translation lives in the shared record store under
// object_type "string", field "text", keyed by the string's derived id.
package catalog

import (
	"context"
	"time"

	"github.com/nesmachny/translio"
)

// TextField is the field name under which scanned string translations are stored.
const TextField = "text"

// ScannedString is one discovered translatable string. The ID is derived
// deterministically from (text, domain) via translio.StringID, making
// repeated scans idempotent.
type ScannedString struct {
	ID        string
	Text      string
	Domain    string // originating theme/plugin namespace
	Context   string
	CreatedAt time.Time
}

// RecordKey returns the key of the string's translation record for a language.
func (s ScannedString) RecordKey(languageCode string) translio.Key {
	return translio.Key{
		ObjectID:     s.ID,
		ObjectType:   translio.TypeString,
		FieldName:    TextField,
		LanguageCode: languageCode,
	}
}

// SourceField returns the string as an engine candidate field.
func (s ScannedString) SourceField() translio.SourceField {
	return translio.SourceField{
		ObjectID:   s.ID,
		ObjectType: translio.TypeString,
		FieldName:  TextField,
		Value:      s.Text,
		Context:    s.Context,
	}
}

// TranslatedFilter partitions listings by translation presence.
type TranslatedFilter int

const (
	// Any lists every string regardless of translation state.
	Any TranslatedFilter = iota
	// Translated lists strings with a non-empty translation.
	Translated
	// Untranslated lists strings without one.
	Untranslated
)

// Filter narrows catalog listings. LanguageCode is required whenever
// Translated is not Any, and controls which language's records the
// translation columns join against.
type Filter struct {
	Domain       string
	Translated   TranslatedFilter
	Search       string // case-insensitive substring of the string text
	LanguageCode string
	Limit        int // 0 = no limit
	Offset       int
}

// Entry is a catalog listing row: a scanned string joined against its
// translation record for the filter's language.
type Entry struct {
	ScannedString
	Translated  bool
	Translation string
}

// Catalog is the scanned-string registry.
type Catalog interface {
	// RecordString upserts by id with first-seen-wins semantics: re-recording
	// an existing id is a no-op, not an error. An empty ID is derived from
	// (Text, Domain).
	RecordString(ctx context.Context, s ScannedString) error

	// List returns a filtered, deterministically ordered page of entries.
	List(ctx context.Context, f Filter) ([]Entry, error)

	// Count returns the number of entries matching the filter, ignoring
	// Limit/Offset.
	Count(ctx context.Context, f Filter) (int, error)

	// ClearAll deletes every scanned string and cascades to the associated
	// "string" translation records, so no orphaned translations remain.
	ClearAll(ctx context.Context) error
}

// recordBackend is the slice of the record store the catalog needs for
// translation joins and the ClearAll cascade.
type recordBackend interface {
	BulkGet(ctx context.Context, objectType, languageCode string, objectIDs []string) (map[translio.Key]*translio.Record, error)
	DeleteByType(ctx context.Context, objectType string) (int, error)
}
