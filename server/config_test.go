package server

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "translio.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
[database]
file = "/var/lib/translio/translations.db"

[server]
port = 9090

[redis]
url = "redis://localhost:6379"
ttl = 3600

[openai]
api_key = "sk-test"
model = "gpt-4o"

[translate]
source_lang = "en_US"
max_batch_size = 25
context = "an online bakery"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DB.File != "/var/lib/translio/translations.db" {
		t.Errorf("unexpected db file: %s", cfg.DB.File)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Redis.URL != "redis://localhost:6379" || cfg.Redis.TTL != 3600 {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("unexpected openai config: %+v", cfg.OpenAI)
	}
	if cfg.Translate.SourceLang != "en_US" || cfg.Translate.MaxBatchSize != 25 {
		t.Errorf("unexpected translate config: %+v", cfg.Translate)
	}
	if cfg.Translate.Context != "an online bakery" {
		t.Errorf("unexpected context: %s", cfg.Translate.Context)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DB.File != filepath.FromSlash("./translations.db") {
		t.Errorf("expected default db file, got %s", cfg.DB.File)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("expected default port 8181, got %d", cfg.Server.Port)
	}
	if cfg.Translate.SourceLang != "en" {
		t.Errorf("expected default source lang en, got %s", cfg.Translate.SourceLang)
	}
	if cfg.Translate.MaxBatchSize != 10 {
		t.Errorf("expected default batch size 10, got %d", cfg.Translate.MaxBatchSize)
	}
	if cfg.Redis.URL != "" {
		t.Errorf("expected redis disabled by default, got %s", cfg.Redis.URL)
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := writeConfigFile(t, `
[server]
port = 3000
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected overridden port 3000, got %d", cfg.Server.Port)
	}
	if cfg.DB.File != filepath.FromSlash("./translations.db") {
		t.Errorf("expected default db file to survive, got %s", cfg.DB.File)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty database file",
			content: `
[database]
file = ""
`,
		},
		{
			name: "negative port",
			content: `
[server]
port = -1
`,
		},
		{
			name: "negative batch size",
			content: `
[translate]
max_batch_size = -5
`,
		},
		{
			name:    "malformed toml",
			content: `[server`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
