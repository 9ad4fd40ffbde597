package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/nesmachny/translio"
)

func TestMockProviderTranslate(t *testing.T) {
	p := NewMockProvider()

	req := Request{
		BatchID:      "batch-1",
		SourceLang:   "en_US",
		LanguageCode: "es_ES",
		Items: []translio.BatchRequestItem{
			{ID: "post:1:title", Text: "Hello"},
			{ID: "post:1:content", Text: "Welcome to our site."},
		},
	}

	results, err := p.Translate(context.Background(), req)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if results["post:1:title"] != "Hola" {
		t.Errorf("expected 'Hola', got %q", results["post:1:title"])
	}
	if results["post:1:content"] != "Bienvenido a nuestro sitio." {
		t.Errorf("expected 'Bienvenido a nuestro sitio.', got %q", results["post:1:content"])
	}

	if p.CallCount != 1 {
		t.Errorf("expected CallCount 1, got %d", p.CallCount)
	}
	if p.LastRequest == nil || p.LastRequest.BatchID != "batch-1" {
		t.Errorf("expected LastRequest to carry batch-1, got %+v", p.LastRequest)
	}
}

func TestMockProviderUnknownText(t *testing.T) {
	p := NewMockProvider()

	req := Request{
		LanguageCode: "es_ES",
		Items: []translio.BatchRequestItem{
			{ID: "post:9:title", Text: "Something unexpected"},
		},
	}

	results, err := p.Translate(context.Background(), req)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if results["post:9:title"] != "[Something unexpected]" {
		t.Errorf("expected bracketed fallback, got %q", results["post:9:title"])
	}
}

func TestMockProviderFailIDs(t *testing.T) {
	p := NewMockProvider()
	p.FailIDs = map[string]bool{"post:1:title": true}

	req := Request{
		LanguageCode: "es_ES",
		Items: []translio.BatchRequestItem{
			{ID: "post:1:title", Text: "Hello"},
			{ID: "post:2:title", Text: "World"},
		},
	}

	results, err := p.Translate(context.Background(), req)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if _, ok := results["post:1:title"]; ok {
		t.Error("expected failing id to be omitted from results")
	}
	if results["post:2:title"] != "Mundo" {
		t.Errorf("expected sibling to succeed, got %q", results["post:2:title"])
	}
}

func TestMockProviderForcedError(t *testing.T) {
	forced := errors.New("provider is down")
	p := NewMockProvider()
	p.Err = forced

	req := Request{
		LanguageCode: "es_ES",
		Items: []translio.BatchRequestItem{
			{ID: "post:1:title", Text: "Hello"},
		},
	}

	results, err := p.Translate(context.Background(), req)
	if !errors.Is(err, forced) {
		t.Fatalf("expected forced error, got %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results on error, got %v", results)
	}
	if p.CallCount != 1 {
		t.Errorf("expected CallCount 1 even on error, got %d", p.CallCount)
	}
}

func TestMockProviderReset(t *testing.T) {
	p := NewMockProvider()

	req := Request{
		LanguageCode: "es_ES",
		Items: []translio.BatchRequestItem{
			{ID: "post:1:title", Text: "Hello"},
		},
	}

	if _, err := p.Translate(context.Background(), req); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	p.Reset()

	if p.CallCount != 0 {
		t.Errorf("expected CallCount 0 after Reset, got %d", p.CallCount)
	}
	if p.LastRequest != nil {
		t.Error("expected LastRequest nil after Reset")
	}
}
