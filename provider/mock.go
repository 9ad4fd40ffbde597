package provider

import (
	"context"
	"fmt"
)

// MockProvider is a mock translation provider for testing.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	FailIDs      map[string]bool   // Item ids to omit from results (simulated per-item failure)
	Err          error             // Forced batch-level error
	CallCount    int               // Number of times Translate was called
	LastRequest  *Request          // Last request received
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":                "Hola",
			"World":                "Mundo",
			"Hello World":          "Hola Mundo",
			"Welcome to our site.": "Bienvenido a nuestro sitio.",
		},
	}
}

// Translate returns mock translations keyed by item id.
func (m *MockProvider) Translate(ctx context.Context, req Request) (map[string]string, error) {
	m.CallCount++
	reqCopy := req
	m.LastRequest = &reqCopy

	if m.Err != nil {
		return nil, m.Err
	}

	results := make(map[string]string, len(req.Items))
	for _, item := range req.Items {
		if m.FailIDs[item.ID] {
			continue
		}
		if translation, ok := m.Translations[item.Text]; ok {
			results[item.ID] = translation
		} else {
			// Return bracketed text for unknown translations
			results[item.ID] = fmt.Sprintf("[%s]", item.Text)
		}
	}
	return results, nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements TranslationProvider
var _ TranslationProvider = (*MockProvider)(nil)
