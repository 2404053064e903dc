package domain_test

import (
	"testing"
	"time"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
	"gopkg.in/yaml.v3"
)

func TestConfigUnmarshal_RejectsUnknownKeys(t *testing.T) {
	var cfg domain.Config
	in := "" +
		"collection_file: mine.json\n" +
		"unknown_key: 123\n"

	err := yaml.Unmarshal([]byte(in), &cfg)
	if err == nil {
		t.Fatalf("expected error for unsupported config keys")
	}
}

func TestConfigUnmarshal_ParsesDuration(t *testing.T) {
	var cfg domain.Config
	in := "" +
		"collection_file: mine.json\n" +
		"database_file: db.json\n" +
		"save_interval: 2s\n"

	if err := yaml.Unmarshal([]byte(in), &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SaveInterval != 2*time.Second {
		t.Fatalf("expected 2s, got %s", cfg.SaveInterval)
	}
	if cfg.CollectionFile != "mine.json" || cfg.DatabaseFile != "db.json" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
}
