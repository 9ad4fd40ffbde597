package translio

import "testing"

func TestPlanBatch(t *testing.T) {
	candidates := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name         string
		maxBatchSize int
		expected     []string
	}{
		{name: "smaller than bound", maxBatchSize: 10, expected: []string{"a", "b", "c", "d", "e"}},
		{name: "equal to bound", maxBatchSize: 5, expected: []string{"a", "b", "c", "d", "e"}},
		{name: "truncated", maxBatchSize: 2, expected: []string{"a", "b"}},
		{name: "zero means unbounded", maxBatchSize: 0, expected: []string{"a", "b", "c", "d", "e"}},
		{name: "negative means unbounded", maxBatchSize: -1, expected: []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanBatch(candidates, tt.maxBatchSize)
			if len(got) != len(tt.expected) {
				t.Fatalf("PlanBatch() len = %d, want %d", len(got), len(tt.expected))
			}
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Errorf("PlanBatch()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestPlanBatchDeterministic(t *testing.T) {
	candidates := []int{3, 1, 4, 1, 5}
	a := PlanBatch(candidates, 3)
	b := PlanBatch(candidates, 3)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("PlanBatch not deterministic: %v vs %v", a, b)
		}
	}
	// Truncation keeps the caller's order.
	if a[0] != 3 || a[1] != 1 || a[2] != 4 {
		t.Errorf("PlanBatch reordered input: %v", a)
	}
}

func TestPlanBatchEmpty(t *testing.T) {
	if got := PlanBatch([]string(nil), 5); len(got) != 0 {
		t.Errorf("PlanBatch(nil) = %v, want empty", got)
	}
}

func TestBuildRequest(t *testing.T) {
	items := []BatchRequestItem{
		{ID: "post:1:title", Text: "Hello", Context: "Page title"},
		{ID: "post:1:excerpt", Text: ""},
		{ID: "post:2:title", Text: "Goodbye"},
	}

	req := BuildRequest("es_ES", items)

	if req.BatchID == "" {
		t.Error("BatchID should be assigned")
	}
	if req.LanguageCode != "es_ES" {
		t.Errorf("LanguageCode = %q, want es_ES", req.LanguageCode)
	}
	if len(req.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2 (empty text dropped)", len(req.Items))
	}
	if req.Items[0].ID != "post:1:title" || req.Items[1].ID != "post:2:title" {
		t.Errorf("item order not preserved: %v", req.Items)
	}
	if req.Empty() {
		t.Error("Empty() = true for a populated request")
	}
}

func TestBuildRequestAllEmpty(t *testing.T) {
	req := BuildRequest("es_ES", []BatchRequestItem{{ID: "a", Text: ""}})
	if !req.Empty() {
		t.Error("Empty() = false, want true")
	}
}

func TestBuildRequestUniqueBatchIDs(t *testing.T) {
	a := BuildRequest("es_ES", nil)
	b := BuildRequest("es_ES", nil)
	if a.BatchID == b.BatchID {
		t.Errorf("batch ids collide: %q", a.BatchID)
	}
}
