package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

const (
	FileName = "beyx_config.yaml"

	DefaultCollectionFile = "beyblade_collection.json"
	DefaultDatabaseFile   = "beyblade_parts_db.json"
	DefaultSaveInterval   = 5 * time.Second
	DefaultExportDir      = "output"
	DefaultLogLevel       = "info"
)

// Settings is the resolved configuration: defaults applied, environment
// overrides merged, and every path absolute.
type Settings struct {
	Root           string
	CollectionFile string
	DatabaseFile   string
	SaveInterval   time.Duration
	ExportDir      string
	LogLevel       string
}

// FindRoot walks up from the working directory looking for beyx_config.yaml.
// When none is found the working directory is used and found is false.
func FindRoot() (root string, found bool, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, err
	}
	dir := cwd
	for i := 0; i < 10; i++ {
		probe := filepath.Join(dir, FileName)
		if _, err := os.Stat(probe); err == nil {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd, false, nil
}

// Load reads the config file at path (an empty path triggers FindRoot),
// applies .env and environment overrides, then defaults.
func Load(path string) (Settings, error) {
	var root string
	if strings.TrimSpace(path) != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return Settings{}, err
		}
		path = abs
		root = filepath.Dir(abs)
	} else {
		r, found, err := FindRoot()
		if err != nil {
			return Settings{}, fmt.Errorf("find config root: %w", err)
		}
		root = r
		if found {
			path = filepath.Join(root, FileName)
		}
	}

	var cfg domain.Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Settings{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// godotenv.Load never overrides variables already present in the environment.
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("read .env: %w", err)
	}
	if v := strings.TrimSpace(os.Getenv("BEYX_COLLECTION_FILE")); v != "" {
		cfg.CollectionFile = v
	}
	if v := strings.TrimSpace(os.Getenv("BEYX_DATABASE_FILE")); v != "" {
		cfg.DatabaseFile = v
	}
	if v := strings.TrimSpace(os.Getenv("BEYX_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}

	return resolve(root, cfg)
}

func resolve(root string, cfg domain.Config) (Settings, error) {
	s := Settings{
		Root:           root,
		CollectionFile: cfg.CollectionFile,
		DatabaseFile:   cfg.DatabaseFile,
		SaveInterval:   cfg.SaveInterval,
		ExportDir:      cfg.ExportDir,
		LogLevel:       strings.ToLower(strings.TrimSpace(cfg.LogLevel)),
	}
	if strings.TrimSpace(s.CollectionFile) == "" {
		s.CollectionFile = DefaultCollectionFile
	}
	if strings.TrimSpace(s.DatabaseFile) == "" {
		s.DatabaseFile = DefaultDatabaseFile
	}
	if strings.TrimSpace(s.ExportDir) == "" {
		s.ExportDir = DefaultExportDir
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.SaveInterval == 0 {
		s.SaveInterval = DefaultSaveInterval
	}
	if s.SaveInterval < 0 {
		return Settings{}, fmt.Errorf("invalid save_interval: %s", s.SaveInterval)
	}

	s.CollectionFile = absUnder(root, s.CollectionFile)
	s.DatabaseFile = absUnder(root, s.DatabaseFile)
	s.ExportDir = absUnder(root, s.ExportDir)
	return s, nil
}

func absUnder(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// EnsureDir creates dir (and parents) if missing.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
