// Package server exposes the translation core as a JSON admin API.
//
// Handlers are thin: they decode filters and candidate fields, call into the
// engine/store/catalog, and encode results. All translation decisions stay in
// the core packages.
package server

import (
	"errors"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the parsed configuration for the admin API.
type Config struct {
	DB        DbConfig        `toml:"database"`
	Server    ServerConfig    `toml:"server"`
	Redis     RedisConfig     `toml:"redis"`
	OpenAI    OpenAIConfig    `toml:"openai"`
	Translate TranslateConfig `toml:"translate"`
}

// DbConfig contains database configuration.
type DbConfig struct {
	// Path to the SQLite database file.
	File string `toml:"file"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Port that the server should run on.
	Port int `toml:"port"`
}

// RedisConfig contains the optional shared translation cache.
type RedisConfig struct {
	// Connection URL, e.g. "redis://localhost:6379". Empty disables Redis and
	// falls back to the in-process cache.
	URL string `toml:"url"`
	// TTL in seconds (0 = no expiration).
	TTL int `toml:"ttl"`
}

// OpenAIConfig contains translation provider configuration.
type OpenAIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// TranslateConfig contains engine defaults.
type TranslateConfig struct {
	SourceLang   string `toml:"source_lang"`
	MaxBatchSize int    `toml:"max_batch_size"`
	Context      string `toml:"context"`
}

// valid checks if the Config is usable in its current state.
func (c *Config) valid() error {
	if c.DB.File == "" {
		return errors.New("config: missing database.file value")
	}
	if c.Server.Port < 0 {
		return errors.New("config: server.port is invalid")
	}
	if c.Translate.MaxBatchSize < 0 {
		return errors.New("config: translate.max_batch_size is invalid")
	}
	return nil
}

// defaults creates a Config with usable default values.
func defaults() Config {
	return Config{
		DB: DbConfig{
			File: filepath.FromSlash("./translations.db"),
		},
		Server: ServerConfig{
			Port: 8181,
		},
		Translate: TranslateConfig{
			SourceLang:   "en",
			MaxBatchSize: 10,
		},
	}
}

// LoadConfig loads config from a TOML file and checks its validity.
func LoadConfig(file string) (Config, error) {
	conf := defaults()
	if _, err := toml.DecodeFile(file, &conf); err != nil {
		return conf, err
	}
	if err := conf.valid(); err != nil {
		return conf, err
	}
	return conf, nil
}
