package catalog

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nesmachny/translio"
)

// SQLiteCatalog stores scanned strings in the same SQLite database as the
// record store, so listings join translation state in one query instead of
// per-row point lookups.
type SQLiteCatalog struct {
	db *sql.DB
	sq sq.StatementBuilderType
}

// NewSQLiteCatalog wraps an open database that already carries the store
// schema (see store.OpenSQLite).
func NewSQLiteCatalog(db *sql.DB) *SQLiteCatalog {
	return &SQLiteCatalog{db: db, sq: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

// RecordString upserts by id; first-seen wins via INSERT OR IGNORE.
func (c *SQLiteCatalog) RecordString(ctx context.Context, s ScannedString) error {
	if s.ID == "" {
		s.ID = translio.StringID(s.Text, s.Domain)
	}

	q := c.sq.Insert("scanned_strings").
		Options("OR IGNORE").
		Columns("id", "string_text", "domain", "context", "created_at").
		Values(s.ID, s.Text, s.Domain, s.Context, time.Now().UTC().Format(time.RFC3339))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return &translio.StorageError{Op: "record string", Cause: err}
	}
	if _, err := c.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return &translio.StorageError{Op: "record string", Cause: err}
	}
	return nil
}

// List returns a filtered page ordered by (domain, text).
func (c *SQLiteCatalog) List(ctx context.Context, f Filter) ([]Entry, error) {
	q := c.filtered(f, "s.id, s.string_text, s.domain, s.context, s.created_at, COALESCE(r.translated_content, '')").
		OrderBy("s.domain", "s.string_text")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
		if f.Offset > 0 {
			q = q.Offset(uint64(f.Offset))
		}
	} else if f.Offset > 0 {
		// SQLite rejects OFFSET without LIMIT; LIMIT -1 means unlimited.
		q = q.Suffix("LIMIT -1 OFFSET ?", f.Offset)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, &translio.StorageError{Op: "list strings", Cause: err}
	}
	rows, err := c.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, &translio.StorageError{Op: "list strings", Cause: err}
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Text, &e.Domain, &e.Context, &created, &e.Translation); err != nil {
			return nil, &translio.StorageError{Op: "list strings", Cause: err}
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		e.Translated = e.Translation != ""
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &translio.StorageError{Op: "list strings", Cause: err}
	}
	return entries, nil
}

// Count returns the number of matching entries, ignoring pagination.
func (c *SQLiteCatalog) Count(ctx context.Context, f Filter) (int, error) {
	sqlStr, args, err := c.filtered(f, "COUNT(*)").ToSql()
	if err != nil {
		return 0, &translio.StorageError{Op: "count strings", Cause: err}
	}
	var n int
	if err := c.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, &translio.StorageError{Op: "count strings", Cause: err}
	}
	return n, nil
}

// ClearAll deletes every scanned string and its "string" translation records
// in one transaction, so a partial clear never leaves orphans.
func (c *SQLiteCatalog) ClearAll(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return &translio.StorageError{Op: "clear strings", Cause: err}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM scanned_strings`); err != nil {
		_ = tx.Rollback()
		return &translio.StorageError{Op: "clear strings", Cause: err}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM translation_records WHERE object_type = ?`, translio.TypeString); err != nil {
		_ = tx.Rollback()
		return &translio.StorageError{Op: "clear strings", Cause: err}
	}
	if err := tx.Commit(); err != nil {
		return &translio.StorageError{Op: "clear strings", Cause: err}
	}
	return nil
}

// filtered builds the shared select with the translation join and filter
// predicates applied.
func (c *SQLiteCatalog) filtered(f Filter, columns string) sq.SelectBuilder {
	q := c.sq.Select(columns).From("scanned_strings s").
		LeftJoin(`translation_records r ON r.object_id = s.id
            AND r.object_type = ? AND r.field_name = ? AND r.language_code = ?`,
			translio.TypeString, TextField, f.LanguageCode)

	if f.Domain != "" {
		q = q.Where(sq.Eq{"s.domain": f.Domain})
	}
	if f.Search != "" {
		q = q.Where("s.string_text LIKE ? COLLATE NOCASE", "%"+f.Search+"%")
	}
	switch f.Translated {
	case Translated:
		q = q.Where("COALESCE(r.translated_content, '') != ''")
	case Untranslated:
		q = q.Where("COALESCE(r.translated_content, '') = ''")
	}
	return q
}

// Verify SQLiteCatalog implements Catalog
var _ Catalog = (*SQLiteCatalog)(nil)
