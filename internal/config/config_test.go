package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_DefaultsResolvedAgainstRoot(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, FileName)
	writeFile(t, cfgPath, "log_level: DEBUG\n")

	s, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Root != dir {
		t.Fatalf("expected root %q, got %q", dir, s.Root)
	}
	if want := filepath.Join(dir, DefaultCollectionFile); s.CollectionFile != want {
		t.Fatalf("expected %q, got %q", want, s.CollectionFile)
	}
	if want := filepath.Join(dir, DefaultDatabaseFile); s.DatabaseFile != want {
		t.Fatalf("expected %q, got %q", want, s.DatabaseFile)
	}
	if s.SaveInterval != DefaultSaveInterval {
		t.Fatalf("expected default interval, got %s", s.SaveInterval)
	}
	if s.LogLevel != "debug" {
		t.Fatalf("expected normalized log level, got %q", s.LogLevel)
	}
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, FileName)
	abs := filepath.Join(t.TempDir(), "elsewhere.json")
	writeFile(t, cfgPath, ""+
		"collection_file: "+abs+"\n"+
		"database_file: data/db.json\n"+
		"save_interval: 250ms\n"+
		"export_dir: xlsx\n")

	s, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CollectionFile != abs {
		t.Fatalf("absolute path must be kept, got %q", s.CollectionFile)
	}
	if want := filepath.Join(dir, "data", "db.json"); s.DatabaseFile != want {
		t.Fatalf("expected %q, got %q", want, s.DatabaseFile)
	}
	if s.SaveInterval != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", s.SaveInterval)
	}
	if want := filepath.Join(dir, "xlsx"); s.ExportDir != want {
		t.Fatalf("expected %q, got %q", want, s.ExportDir)
	}
}

func TestLoad_RejectsNegativeInterval(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, FileName)
	writeFile(t, cfgPath, "save_interval: -1s\n")
	if _, err := Load(cfgPath); err == nil {
		t.Fatalf("expected error for negative save_interval")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, FileName)
	writeFile(t, cfgPath, "collection_file: from_yaml.json\n")
	writeFile(t, filepath.Join(dir, ".env"), "BEYX_DATABASE_FILE=from_dotenv.json\n")
	t.Setenv("BEYX_COLLECTION_FILE", "from_env.json")
	t.Cleanup(func() { _ = os.Unsetenv("BEYX_DATABASE_FILE") })

	s, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "from_env.json"); s.CollectionFile != want {
		t.Fatalf("expected env override %q, got %q", want, s.CollectionFile)
	}
	if want := filepath.Join(dir, "from_dotenv.json"); s.DatabaseFile != want {
		t.Fatalf("expected .env override %q, got %q", want, s.DatabaseFile)
	}
}
