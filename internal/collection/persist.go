package collection

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

// Files at or below this size are treated as trivially empty by the save guard.
const guardMinSize = 10

func readCollection(path string) (*domain.Collection, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewCollection(), nil
		}
		return nil, err
	}
	return decodeCollection(b)
}

func decodeCollection(b []byte) (*domain.Collection, error) {
	c := domain.NewCollection()
	if err := json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}
	c.Normalize()
	return c, nil
}

func encodeCollection(c *domain.Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BackupPath is the sibling file refreshed before every overwrite.
func (m *Manager) BackupPath() string {
	return m.path + ".backup"
}

// Save writes the collection to disk. Unless force is set, it only writes
// when there are unsaved changes and the save interval has elapsed since the
// last write. An empty collection is never written over a non-empty file
// (ErrStorageUnsafe) unless AllowEmptySave was called. On a write failure
// the collection stays dirty.
func (m *Manager) Save(force bool) error {
	now := m.clock.Now()
	if !force && !m.dirty {
		return nil
	}
	if !force && now.Sub(m.lastSave) < m.interval {
		return nil
	}

	info, statErr := os.Stat(m.path)
	exists := statErr == nil
	if m.coll.TotalParts() == 0 && exists && info.Size() > guardMinSize && !m.allowEmpty {
		m.log.WithFields(logrus.Fields{
			"file": m.path,
			"size": humanize.Bytes(uint64(info.Size())),
		}).Warn("Refusing to overwrite existing collection with an empty one")
		return domain.ErrStorageUnsafe
	}

	data, err := encodeCollection(m.coll)
	if err != nil {
		return fmt.Errorf("%w: encode collection: %v", domain.ErrIOFailure, err)
	}

	if exists && info.Size() > 0 {
		if err := copyFile(m.path, m.BackupPath()); err != nil {
			m.log.WithFields(logrus.Fields{
				"file":   m.path,
				"backup": m.BackupPath(),
			}).Warnf("Backup failed: %v", err)
		}
	}

	if err := writeFileAtomic(m.path, data); err != nil {
		m.log.WithFields(logrus.Fields{
			"file": m.path,
		}).Errorf("Save failed: %v", err)
		return fmt.Errorf("%w: %v", domain.ErrIOFailure, err)
	}

	m.dirty = false
	m.lastSave = now
	m.log.WithFields(logrus.Fields{
		"file": m.path,
		"size": humanize.Bytes(uint64(len(data))),
	}).Debug("Collection saved")
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// copyFile copies src to dst keeping the mode and modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// BackupSummary describes the backup file without applying it.
type BackupSummary struct {
	Path   string
	Size   int64
	Counts map[domain.Category]int
	Decks  int
}

// ReadBackup loads the backup file. ErrNotFound when there is none.
func (m *Manager) ReadBackup() (*domain.Collection, BackupSummary, error) {
	path := m.BackupPath()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, BackupSummary{}, fmt.Errorf("%w: no backup at %s", domain.ErrNotFound, path)
		}
		return nil, BackupSummary{}, fmt.Errorf("%w: %v", domain.ErrIOFailure, err)
	}
	c, err := decodeCollection(b)
	if err != nil {
		return nil, BackupSummary{}, err
	}
	sum := BackupSummary{
		Path:   path,
		Size:   int64(len(b)),
		Counts: make(map[domain.Category]int, len(domain.Categories)),
		Decks:  len(c.Decks),
	}
	for _, cat := range domain.Categories {
		sum.Counts[cat] = len(*c.Parts(cat))
	}
	return c, sum, nil
}

// RestoreFromBackup replaces the collection and decks with the backup
// content, rebuilds the index and force-saves.
func (m *Manager) RestoreFromBackup() error {
	c, _, err := m.ReadBackup()
	if err != nil {
		return err
	}
	m.coll = c
	m.index = BuildIndex(m.coll)
	m.loadErr = nil
	m.markDirty()
	return m.Save(true)
}
