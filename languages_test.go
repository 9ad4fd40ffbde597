package translio

import "testing"

func TestGetLanguageName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"es_ES", "Spanish (Spain)"},
		{"de_DE", "German (Germany)"},
		{"es", "Spanish (Spain)"},
		{"xx_XX", "xx_XX"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := GetLanguageName(tt.code); got != tt.expected {
				t.Errorf("GetLanguageName(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"es-ES", "es_ES"},
		{"es_ES", "es_ES"},
		{"zh-CN", "zh_CN"},
		{"en", "en"},
	}

	for _, tt := range tests {
		if got := NormalizeLocale(tt.input); got != tt.expected {
			t.Errorf("NormalizeLocale(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		fallback  string
		expected  string
	}{
		{"explicit wins", "de_DE", "es_ES", "de_DE"},
		{"fallback when empty", "", "es_ES", "es_ES"},
		{"normalizes requested", "de-DE", "es_ES", "de_DE"},
		{"normalizes fallback", "", "es-ES", "es_ES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLanguage(tt.requested, tt.fallback); got != tt.expected {
				t.Errorf("ResolveLanguage(%q, %q) = %q, want %q", tt.requested, tt.fallback, got, tt.expected)
			}
		})
	}
}
