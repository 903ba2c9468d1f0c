package config

import (
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORAGE_DRIVER", "DATA_FILE", "REDIS_URL", "EVENT_BUFFER", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort: got %q", cfg.ServerPort)
	}
	if cfg.UsesPostgres() {
		t.Errorf("expected json storage by default, got %q", cfg.StorageDriver)
	}
	if cfg.DataFile != "data/kinderbook.json" {
		t.Errorf("DataFile: got %q", cfg.DataFile)
	}
	if cfg.RedisURL != "" {
		t.Errorf("Redis should be disabled by default, got %q", cfg.RedisURL)
	}
	if cfg.EventBuffer != 256 {
		t.Errorf("EventBuffer: got %d", cfg.EventBuffer)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins: got %v", cfg.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("EVENT_BUFFER", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	if !cfg.UsesPostgres() {
		t.Errorf("expected postgres storage, got %q", cfg.StorageDriver)
	}
	if cfg.EventBuffer != 256 {
		t.Errorf("invalid int should fall back, got %d", cfg.EventBuffer)
	}
	if want := []string{"http://a.test", "http://b.test"}; !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins: want %v, got %v", want, cfg.AllowedOrigins)
	}
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey.SubjectScoresKey("math"); got != "subject:MATH:scores" {
		t.Errorf("SubjectScoresKey: got %q", got)
	}
	if got := CacheKey.SubjectScoresChannel("Science"); got != "subject:SCIENCE:scores" {
		t.Errorf("SubjectScoresChannel: got %q", got)
	}
}
