package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nesmachny/translio"
)

// SQLiteStore persists translation records in a single SQLite table with a
// uniqueness constraint over the composite key. Upserts are row-level atomic,
// so concurrent saves to the same key resolve last-writer-wins without mixed
// column state.
type SQLiteStore struct {
	db *sql.DB
	sq sq.StatementBuilderType
}

const schema = `
CREATE TABLE IF NOT EXISTS translation_records (
    object_id         TEXT NOT NULL,
    object_type       TEXT NOT NULL,
    field_name        TEXT NOT NULL,
    language_code     TEXT NOT NULL,
    original_content  TEXT NOT NULL DEFAULT '',
    original_hash     TEXT NOT NULL DEFAULT '',
    translated_content TEXT NOT NULL DEFAULT '',
    is_auto_translated INTEGER NOT NULL DEFAULT 0,
    created_at        TEXT NOT NULL,
    updated_at        TEXT NOT NULL,
    PRIMARY KEY (object_id, object_type, field_name, language_code)
);
CREATE INDEX IF NOT EXISTS idx_records_lang_type ON translation_records (language_code, object_type);

CREATE TABLE IF NOT EXISTS scanned_strings (
    id          TEXT PRIMARY KEY,
    string_text TEXT NOT NULL,
    domain      TEXT NOT NULL,
    context     TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scanned_domain ON scanned_strings (domain);
`

// OpenSQLite opens (creating if needed) the SQLite database at dbPath and
// bootstraps the schema.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("make db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return NewSQLiteStore(db), nil
}

// NewSQLiteStore wraps an already-opened database. The schema must exist.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, sq: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

// DB exposes the underlying handle so the catalog can share one database.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts a record under its composite key.
func (s *SQLiteStore) Save(ctx context.Context, key translio.Key, originalContent, translatedContent string, isAuto bool) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	q := s.sq.Insert("translation_records").
		Columns("object_id", "object_type", "field_name", "language_code",
			"original_content", "original_hash", "translated_content", "is_auto_translated",
			"created_at", "updated_at").
		Values(key.ObjectID, key.ObjectType, key.FieldName, key.LanguageCode,
			originalContent, translio.Fingerprint(originalContent), translatedContent, boolToInt(isAuto),
			now, now).
		Suffix(`ON CONFLICT(object_id, object_type, field_name, language_code) DO UPDATE SET
            original_content=excluded.original_content,
            original_hash=excluded.original_hash,
            translated_content=excluded.translated_content,
            is_auto_translated=excluded.is_auto_translated,
            updated_at=excluded.updated_at`)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return &translio.StorageError{Op: "save", Cause: err}
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return &translio.StorageError{Op: "save", Cause: err}
	}
	return nil
}

const recordColumns = "object_id, object_type, field_name, language_code, original_content, original_hash, translated_content, is_auto_translated, created_at, updated_at"

// Get returns the record for key, or nil when none exists.
func (s *SQLiteStore) Get(ctx context.Context, key translio.Key) (*translio.Record, error) {
	q := s.sq.Select(recordColumns).From("translation_records").
		Where(sq.Eq{
			"object_id":     key.ObjectID,
			"object_type":   key.ObjectType,
			"field_name":    key.FieldName,
			"language_code": key.LanguageCode,
		}).Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, &translio.StorageError{Op: "get", Cause: err}
	}
	rec, err := scanRecord(s.db.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &translio.StorageError{Op: "get", Cause: err}
	}
	return rec, nil
}

// BulkGet loads records for the given object ids with a single IN query.
func (s *SQLiteStore) BulkGet(ctx context.Context, objectType, languageCode string, objectIDs []string) (map[translio.Key]*translio.Record, error) {
	out := make(map[translio.Key]*translio.Record)
	if len(objectIDs) == 0 {
		return out, nil
	}
	q := s.sq.Select(recordColumns).From("translation_records").
		Where(sq.Eq{"object_type": objectType, "language_code": languageCode, "object_id": objectIDs})
	recs, err := s.queryRecords(ctx, q, "bulk get")
	if err != nil {
		return nil, err
	}
	for i := range recs {
		out[recs[i].Key()] = &recs[i]
	}
	return out, nil
}

// GetAllForObject returns every field record of one object, ordered by field name.
func (s *SQLiteStore) GetAllForObject(ctx context.Context, objectID, objectType, languageCode string) ([]translio.Record, error) {
	q := s.sq.Select(recordColumns).From("translation_records").
		Where(sq.Eq{"object_id": objectID, "object_type": objectType, "language_code": languageCode}).
		OrderBy("field_name")
	return s.queryRecords(ctx, q, "get all for object")
}

// ListTranslated returns every record with a non-empty translation for the language.
func (s *SQLiteStore) ListTranslated(ctx context.Context, languageCode string) ([]translio.Record, error) {
	q := s.sq.Select(recordColumns).From("translation_records").
		Where(sq.Eq{"language_code": languageCode}).
		Where(sq.NotEq{"translated_content": ""}).
		OrderBy("object_type", "object_id", "field_name")
	return s.queryRecords(ctx, q, "list translated")
}

// CountTranslated counts non-empty translations for the language, optionally
// restricted to one object type.
func (s *SQLiteStore) CountTranslated(ctx context.Context, languageCode, objectType string) (int, error) {
	q := s.sq.Select("COUNT(*)").From("translation_records").
		Where(sq.Eq{"language_code": languageCode}).
		Where(sq.NotEq{"translated_content": ""})
	if objectType != "" {
		q = q.Where(sq.Eq{"object_type": objectType})
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, &translio.StorageError{Op: "count translated", Cause: err}
	}
	var n int
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, &translio.StorageError{Op: "count translated", Cause: err}
	}
	return n, nil
}

// DeleteByType removes every record of one object type across all languages.
func (s *SQLiteStore) DeleteByType(ctx context.Context, objectType string) (int, error) {
	q := s.sq.Delete("translation_records").Where(sq.Eq{"object_type": objectType})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, &translio.StorageError{Op: "delete by type", Cause: err}
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, &translio.StorageError{Op: "delete by type", Cause: err}
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *SQLiteStore) queryRecords(ctx context.Context, q sq.SelectBuilder, op string) ([]translio.Record, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, &translio.StorageError{Op: op, Cause: err}
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, &translio.StorageError{Op: op, Cause: err}
	}
	defer rows.Close()

	var out []translio.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, &translio.StorageError{Op: op, Cause: err}
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &translio.StorageError{Op: op, Cause: err}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*translio.Record, error) {
	var rec translio.Record
	var isAuto int
	var created, updated string
	if err := row.Scan(&rec.ObjectID, &rec.ObjectType, &rec.FieldName, &rec.LanguageCode,
		&rec.OriginalContent, &rec.OriginalHash, &rec.TranslatedContent, &isAuto,
		&created, &updated); err != nil {
		return nil, err
	}
	rec.IsAutoTranslated = isAuto != 0
	rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Verify SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
