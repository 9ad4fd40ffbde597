package translio

import "context"

// RecordStore is the persistence surface the engine writes translations
// through. Implementations live in the store package.
type RecordStore interface {
	// Save upserts a record: existing rows are overwritten in full, the
	// original hash is recomputed from originalContent.
	Save(ctx context.Context, key Key, originalContent, translatedContent string, isAuto bool) error

	// Get returns the record for key, or nil when none exists.
	Get(ctx context.Context, key Key) (*Record, error)

	// BulkGet loads every record for the given object ids in one round trip.
	BulkGet(ctx context.Context, objectType, languageCode string, objectIDs []string) (map[Key]*Record, error)
}

// TranslationCache memoizes exact-match translations by fingerprint key.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// TranslationProvider is the opaque external translation service. It returns
// translated text per item id; absent ids are treated as failed items. The
// engine never retries the provider; wrap it with RetryableProvider if the
// backing API is flaky.
type TranslationProvider interface {
	Translate(ctx context.Context, req BatchRequest) (map[string]string, error)
}

// ExactMemory suggests reuse of a previously stored translation for an
// identical source text.
type ExactMemory interface {
	Lookup(ctx context.Context, text, languageCode string) (translated string, ok bool, err error)
}

// Engine drives one bounded translation pass: classify candidates, reuse
// translation memory, send the rest to the provider, reconcile results.
// Large jobs are modeled as repeated calls, one batch each; the engine never
// blocks on more than a single provider invocation.
type Engine struct {
	store        RecordStore
	provider     TranslationProvider
	memory       ExactMemory
	cache        TranslationCache
	sourceLang   string
	context      string
	maxBatchSize int
}

// EngineOption is a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithMemory enables exact-match reuse from a translation memory index.
func WithMemory(memory ExactMemory) EngineOption {
	return func(e *Engine) {
		e.memory = memory
	}
}

// WithCache warms an exact-match cache on every reconciled save.
func WithCache(cache TranslationCache) EngineOption {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithSourceLang sets the source language forwarded to the provider.
func WithSourceLang(lang string) EngineOption {
	return func(e *Engine) {
		e.sourceLang = lang
	}
}

// WithGlobalContext sets a context string applied to every batch
// (e.g. "WooCommerce store front").
func WithGlobalContext(ctx string) EngineOption {
	return func(e *Engine) {
		e.context = ctx
	}
}

// WithMaxBatchSize bounds how many objects enter one batch.
func WithMaxBatchSize(n int) EngineOption {
	return func(e *Engine) {
		e.maxBatchSize = n
	}
}

// DefaultMaxBatchSize is the per-call object bound when none is configured.
const DefaultMaxBatchSize = 10

// NewEngine creates an Engine over the given store and provider.
func NewEngine(store RecordStore, provider TranslationProvider, opts ...EngineOption) *Engine {
	e := &Engine{
		store:        store,
		provider:     provider,
		sourceLang:   "en",
		maxBatchSize: DefaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BatchSummary reports one engine pass.
type BatchSummary struct {
	BatchID    string
	Candidates int      // fields supplied
	Pending    int      // fields classified missing or stale
	Planned    int      // fields that entered this batch
	Remaining  int      // pending fields left for subsequent calls
	FromMemory int      // items satisfied by translation memory
	Requested  int      // items sent to the provider
	Saved      []string // item ids persisted
	Failed     []string // item ids not persisted
}

// Done reports whether nothing was pending: the caller can stop iterating.
func (s *BatchSummary) Done() bool {
	return s.Pending == 0
}

// ItemID builds the correlation id for a field: it round-trips through the
// provider untouched and maps a result back to its record key.
func ItemID(f SourceField) string {
	return f.ObjectType + ":" + f.ObjectID + ":" + f.FieldName
}

// TranslateBatch runs one bounded pass over the candidate fields for the
// target language. Candidates must arrive in the caller's priority order;
// objects beyond the batch bound are left for the next call and counted in
// Remaining.
//
// A provider fault fails the whole provider portion of the batch (a timeout
// is indistinguishable from all items failing); memory hits gathered before
// the fault are still persisted, and the error is returned alongside the
// summary.
func (e *Engine) TranslateBatch(ctx context.Context, languageCode string, candidates []SourceField) (*BatchSummary, error) {
	records, err := fetchRecords(ctx, e.store, languageCode, candidates)
	if err != nil {
		return nil, err
	}

	var pending []SourceField
	for _, fs := range ClassifyFields(candidates, records, languageCode) {
		if fs.Field.Value == "" || fs.Status == StatusFresh {
			continue
		}
		pending = append(pending, fs.Field)
	}

	summary := &BatchSummary{
		Candidates: len(candidates),
		Pending:    len(pending),
	}
	if len(pending) == 0 {
		return summary, nil
	}

	planned := e.planFields(pending)
	summary.Planned = len(planned)
	summary.Remaining = len(pending) - len(planned)

	results := make(map[string]ItemResult, len(planned))
	originals := make(map[string]SourceRef, len(planned))
	var items []BatchRequestItem

	for _, f := range planned {
		id := ItemID(f)
		originals[id] = SourceRef{
			ObjectID:        f.ObjectID,
			ObjectType:      f.ObjectType,
			FieldName:       f.FieldName,
			LanguageCode:    languageCode,
			OriginalContent: f.Value,
		}

		if e.memory != nil {
			if translated, ok, err := e.memory.Lookup(ctx, f.Value, languageCode); err == nil && ok {
				results[id] = ItemResult{Text: translated}
				summary.FromMemory++
				continue
			}
		}
		items = append(items, BatchRequestItem{ID: id, Text: f.Value, Context: f.Context})
	}

	req := BuildRequest(languageCode, items)
	req.SourceLang = e.sourceLang
	req.Context = e.context
	summary.BatchID = req.BatchID
	summary.Requested = len(req.Items)

	var providerErr error
	if !req.Empty() {
		translated, err := e.provider.Translate(ctx, req)
		if err != nil {
			providerErr = err
		}
		for id, text := range translated {
			results[id] = ItemResult{Text: text}
		}
	}

	reconciler := NewReconciler(e.store)
	if e.cache != nil {
		reconciler = NewReconciler(e.store, WithReconcilerCache(e.cache))
	}
	outcome, err := reconciler.ApplyBatchResult(ctx, results, originals)
	summary.Saved = outcome.Saved
	summary.Failed = outcome.Failed
	if err != nil {
		return summary, err
	}
	return summary, providerErr
}

// planFields applies the object-level batch bound to an ordered field list,
// keeping every field of each selected object together.
func (e *Engine) planFields(pending []SourceField) []SourceField {
	type objKey struct{ id, typ string }
	var objects []objKey
	fieldsByObject := make(map[objKey][]SourceField)
	for _, f := range pending {
		k := objKey{f.ObjectID, f.ObjectType}
		if _, seen := fieldsByObject[k]; !seen {
			objects = append(objects, k)
		}
		fieldsByObject[k] = append(fieldsByObject[k], f)
	}

	var planned []SourceField
	for _, k := range PlanBatch(objects, e.maxBatchSize) {
		planned = append(planned, fieldsByObject[k]...)
	}
	return planned
}
