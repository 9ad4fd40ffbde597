package translio

import "github.com/google/uuid"

// BatchRequest is the payload handed to a translation provider: a bounded set
// of items plus a target language. The batch id exists for reporting and
// logging; correlation back to fields uses the per-item ids.
type BatchRequest struct {
	BatchID      string
	LanguageCode string
	SourceLang   string
	Context      string // global context applied to every item
	Items        []BatchRequestItem
}

// Empty reports whether the request carries no translatable items.
func (r BatchRequest) Empty() bool {
	return len(r.Items) == 0
}

// PlanBatch truncates an ordered candidate list to the first maxBatchSize
// entries. A maxBatchSize of zero or below means no truncation: the whole
// candidate list becomes one batch. Ordering is the caller's responsibility
// (e.g. oldest untranslated first); planning adds no reordering or scoring,
// so the same input always produces the same batch.
func PlanBatch[T any](candidates []T, maxBatchSize int) []T {
	if maxBatchSize <= 0 || len(candidates) <= maxBatchSize {
		return candidates
	}
	return candidates[:maxBatchSize]
}

// BuildRequest assembles a provider request from correlation items, dropping
// any item with empty text. Item order is preserved.
func BuildRequest(languageCode string, items []BatchRequestItem) BatchRequest {
	req := BatchRequest{
		BatchID:      uuid.NewString(),
		LanguageCode: languageCode,
	}
	for _, it := range items {
		if it.Text == "" {
			continue
		}
		req.Items = append(req.Items, it)
	}
	return req
}
