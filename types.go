// Package translio provides a translation state and change-detection engine for CMS content.
package translio

import "time"

// Status classifies a stored translation against the current source value.
type Status string

const (
	// StatusMissing means no translation exists (no record, or empty translated content).
	StatusMissing Status = "missing"
	// StatusFresh means the stored translation matches the current source.
	StatusFresh Status = "fresh"
	// StatusStale means the source changed since the translation was produced.
	StatusStale Status = "stale"
)

// Well-known object types. The type is part of the record identity, so the
// same numeric id can exist independently under several types.
const (
	TypePost        = "post"
	TypeTerm        = "term"
	TypeAttachment  = "attachment"
	TypeOption      = "option"
	TypeWidget      = "widget"
	TypeWCAttribute = "wc_attribute"
	TypeCF7Form     = "cf7_form"
	TypeCF7Mail     = "cf7_mail"
	TypeCF7Message  = "cf7_message"
	TypeDivi        = "divi"
	TypeAvada       = "avada"
	TypeBlockItem   = "block_item"
	TypeString      = "string"
)

// Key is the composite identity of a translation record.
type Key struct {
	ObjectID     string
	ObjectType   string
	FieldName    string
	LanguageCode string
}

// Record is the atomic unit of translated content. At most one record exists
// per Key; saves are upserts, never appends.
type Record struct {
	ObjectID          string
	ObjectType        string
	FieldName         string
	LanguageCode      string
	OriginalContent   string // source snapshot at last save
	OriginalHash      string // Fingerprint(OriginalContent)
	TranslatedContent string
	IsAutoTranslated  bool // true if produced by the provider, false if hand-entered
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Key returns the record's composite identity.
func (r *Record) Key() Key {
	return Key{
		ObjectID:     r.ObjectID,
		ObjectType:   r.ObjectType,
		FieldName:    r.FieldName,
		LanguageCode: r.LanguageCode,
	}
}

// SourceField is one translatable field of a content object, paired with its
// current live value. Adapters at the boundary produce these; the engine never
// fetches field values itself.
type SourceField struct {
	ObjectID   string
	ObjectType string
	FieldName  string
	Value      string
	Context    string // free-form hint forwarded to the provider (e.g. "Category name")
}

// FieldKey returns the record key for this field in the given language.
func (f SourceField) FieldKey(languageCode string) Key {
	return Key{
		ObjectID:     f.ObjectID,
		ObjectType:   f.ObjectType,
		FieldName:    f.FieldName,
		LanguageCode: languageCode,
	}
}

// BatchRequestItem is one entry of a provider batch. The ID is caller-defined
// and exists only to correlate the asynchronous result back to a field; it is
// never persisted.
type BatchRequestItem struct {
	ID      string
	Text    string
	Context string
}
