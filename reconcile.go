package translio

import (
	"context"
	"sort"
)

// ItemResult is one entry of a provider batch result: translated text or a
// per-item error. A missing entry in the result map is equivalent to an
// errored one.
type ItemResult struct {
	Text string
	Err  error
}

// SourceRef identifies where a batch item's translation must be persisted,
// together with the source snapshot it was produced from.
type SourceRef struct {
	ObjectID        string
	ObjectType      string
	FieldName       string
	LanguageCode    string
	OriginalContent string
}

// BatchOutcome summarizes a reconciled batch. Saved and Failed are sorted by
// item id so re-applying the same result reports identically.
type BatchOutcome struct {
	Saved  []string
	Failed []string
}

// NothingToDo reports whether the batch carried no items at all, as opposed
// to items that all failed. Callers use this to distinguish "all done" from
// an actionable error state.
func (o BatchOutcome) NothingToDo() bool {
	return len(o.Saved) == 0 && len(o.Failed) == 0
}

// AllFailed reports whether every item in a non-empty batch failed.
func (o BatchOutcome) AllFailed() bool {
	return len(o.Saved) == 0 && len(o.Failed) > 0
}

// Reconciler persists provider batch results through a record store.
type Reconciler struct {
	store RecordStore
	cache TranslationCache
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithReconcilerCache warms an exact-match translation cache on every
// successful save.
func WithReconcilerCache(cache TranslationCache) ReconcilerOption {
	return func(r *Reconciler) {
		r.cache = cache
	}
}

// NewReconciler creates a Reconciler writing through the given store.
func NewReconciler(store RecordStore, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ApplyBatchResult persists every successfully translated item and reports
// the rest as failed. Semantics:
//
//   - Per-item isolation: one failed item never blocks its siblings.
//   - At-least-preserve: an absent, errored, or empty result never overwrites
//     an existing stored translation.
//   - Idempotence: re-applying the same successful result is an upsert and
//     leaves the store in the same state.
//
// Only ids present in originals are considered; unknown result ids are
// ignored. Storage faults are not per-item failures: the first one aborts and
// propagates, returning the outcome accumulated so far.
func (r *Reconciler) ApplyBatchResult(ctx context.Context, results map[string]ItemResult, originals map[string]SourceRef) (BatchOutcome, error) {
	ids := make([]string, 0, len(originals))
	for id := range originals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var outcome BatchOutcome
	for _, id := range ids {
		res, ok := results[id]
		if !ok || res.Err != nil || res.Text == "" {
			outcome.Failed = append(outcome.Failed, id)
			continue
		}

		ref := originals[id]
		key := Key{
			ObjectID:     ref.ObjectID,
			ObjectType:   ref.ObjectType,
			FieldName:    ref.FieldName,
			LanguageCode: ref.LanguageCode,
		}
		if err := r.store.Save(ctx, key, ref.OriginalContent, res.Text, true); err != nil {
			return outcome, err
		}
		if r.cache != nil {
			cacheKey := CacheKey(Fingerprint(ref.OriginalContent), ref.LanguageCode)
			_ = r.cache.Set(cacheKey, res.Text) // cache faults are not batch failures
		}
		outcome.Saved = append(outcome.Saved, id)
	}
	return outcome, nil
}
