package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nesmachny/translio"
)

// ExportFormat is the JSON structure for translation memory export/import.
type ExportFormat struct {
	Version      string            `json:"version"`
	LanguageCode string            `json:"language_code"`
	ExportedAt   string            `json:"exported_at"`
	Entries      []ExportEntry     `json:"entries"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// ExportEntry is a single memory entry.
type ExportEntry struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	ObjectType string `json:"object_type,omitempty"`
	FieldName  string `json:"field_name,omitempty"`
}

// Exporter writes translation memory contents for one language.
type Exporter struct {
	source RecordSource
}

// NewExporter creates a new memory exporter.
func NewExporter(source RecordSource) *Exporter {
	return &Exporter{source: source}
}

// Export writes the memory for a language to w in JSON format. Duplicate
// originals keep only the most recently updated translation.
func (e *Exporter) Export(ctx context.Context, w io.Writer, languageCode string, metadata map[string]string) error {
	records, err := e.source.ListTranslated(ctx, languageCode)
	if err != nil {
		return fmt.Errorf("listing memory entries: %w", err)
	}

	latest := make(map[string]*translio.Record)
	var order []string
	for i := range records {
		rec := &records[i]
		prev, ok := latest[rec.OriginalContent]
		if !ok {
			order = append(order, rec.OriginalContent)
			latest[rec.OriginalContent] = rec
			continue
		}
		if rec.UpdatedAt.After(prev.UpdatedAt) {
			latest[rec.OriginalContent] = rec
		}
	}

	export := ExportFormat{
		Version:      "1.0",
		LanguageCode: languageCode,
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		Metadata:     metadata,
	}
	for _, original := range order {
		rec := latest[original]
		export.Entries = append(export.Entries, ExportEntry{
			Original:   rec.OriginalContent,
			Translated: rec.TranslatedContent,
			ObjectType: rec.ObjectType,
			FieldName:  rec.FieldName,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ExportToFile exports the memory for a language to a file.
func (e *Exporter) ExportToFile(ctx context.Context, path, languageCode string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(ctx, f, languageCode, metadata)
}

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Version      string
	LanguageCode string
	Imported     int
	Failed       int
}

// Importer seeds an exact-match cache from an exported memory file, so a new
// environment reuses translations without re-querying the store per lookup.
type Importer struct {
	cache Cache
}

// NewImporter creates a new memory importer.
func NewImporter(cache Cache) *Importer {
	return &Importer{cache: cache}
}

// Import reads exported memory entries and loads them into the cache under
// fingerprint:language keys.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	result := &ImportResult{
		Version:      export.Version,
		LanguageCode: export.LanguageCode,
	}
	for _, entry := range export.Entries {
		if entry.Translated == "" {
			result.Failed++
			continue
		}
		key := translio.CacheKey(translio.Fingerprint(entry.Original), export.LanguageCode)
		if err := i.cache.Set(key, entry.Translated); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}
	return result, nil
}

// ImportFromFile imports memory entries from a file.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}
