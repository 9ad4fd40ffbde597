// Package store provides translation record persistence implementations.
package store

import (
	"context"

	"github.com/nesmachny/translio"
)

// Store is the full persistence surface over translation records. It extends
// the engine-facing translio.RecordStore with the lookups the memory index,
// catalog, and progress reporting need.
type Store interface {
	translio.RecordStore

	// GetAllForObject returns every field record of one object in one language,
	// ordered by field name.
	GetAllForObject(ctx context.Context, objectID, objectType, languageCode string) ([]translio.Record, error)

	// ListTranslated returns every record with a non-empty translation for the
	// language. This is the translation memory candidate set.
	ListTranslated(ctx context.Context, languageCode string) ([]translio.Record, error)

	// CountTranslated counts records with non-empty translations for the
	// language, optionally restricted to one object type ("" = all).
	CountTranslated(ctx context.Context, languageCode, objectType string) (int, error)

	// DeleteByType removes every record of one object type, returning how many
	// rows were deleted. Used by the catalog's cascading clear.
	DeleteByType(ctx context.Context, objectType string) (int, error)
}

// ValidateKey rejects malformed record identities before any write. ObjectID
// and LanguageCode must also be present: a record without them is
// unaddressable.
func ValidateKey(k translio.Key) error {
	switch {
	case k.ObjectType == "":
		return &translio.InvalidKeyError{Field: "object_type"}
	case k.FieldName == "":
		return &translio.InvalidKeyError{Field: "field_name"}
	case k.ObjectID == "":
		return &translio.InvalidKeyError{Field: "object_id"}
	case k.LanguageCode == "":
		return &translio.InvalidKeyError{Field: "language_code"}
	}
	return nil
}
