// Package backup keeps timestamped copies of the event store next to it.
package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/timetable/internal/logger"
)

const (
	// DefaultKeep is the number of backups kept after rotation
	DefaultKeep = 14
	// DirName is the directory, beside the store, that holds the backups
	DirName = "backups"

	stampLayout = "20060102-150405"
)

var ErrInvalidBackup = errors.New("invalid backup file")

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, rotates and restores backups of one store file.
// SQLite stores are copied with VACUUM INTO, JSON stores byte for byte.
type Manager struct {
	storePath string
	dir       string
	prefix    string
	ext       string
	Keep      int
	now       func() time.Time
}

func NewManager(storePath string) *Manager {
	ext := filepath.Ext(storePath)
	base := strings.TrimSuffix(filepath.Base(storePath), ext)
	return &Manager{
		storePath: storePath,
		dir:       filepath.Join(filepath.Dir(storePath), DirName),
		prefix:    base + "-",
		ext:       ext,
		Keep:      DefaultKeep,
		now:       time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

func (m *Manager) isJSON() bool {
	return strings.EqualFold(m.ext, ".json")
}

// Create writes a new backup and rotates old ones
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "dir", m.dir, "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.storePath); err != nil {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	if m.isJSON() {
		err = copyFile(m.storePath, path)
	} else {
		err = vacuumInto(m.storePath, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", m.storePath, err)
	}
	logger.Info("Backup created", "path", path)
	return path, nil
}

// nextPath names the backup after the current time, adding a counter on collisions
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampLayout)
	path := filepath.Join(m.dir, m.prefix+stamp+m.ext)
	for n := 1; exists(path); n++ {
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", m.prefix, stamp, n, m.ext))
	}
	return path, nil
}

// List returns the backups of the store, newest first
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := m.parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	slices.SortStableFunc(backups, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

// parseName reads the timestamp of "<prefix><stamp>[-N]<ext>"
func (m *Manager) parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, m.prefix) || !strings.HasSuffix(name, m.ext) {
		return time.Time{}, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, m.prefix), m.ext)
	if len(rest) < len(stampLayout) {
		return time.Time{}, false
	}
	stamp, counter := rest[:len(stampLayout)], rest[len(stampLayout):]
	if counter != "" {
		n, ok := strings.CutPrefix(counter, "-")
		if !ok {
			return time.Time{}, false
		}
		if _, err := strconv.Atoi(n); err != nil {
			return time.Time{}, false
		}
	}
	ts, err := time.ParseInLocation(stampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if m.Keep <= 0 || len(backups) <= m.Keep {
		return nil
	}
	for _, b := range backups[m.Keep:] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
	}
	return nil
}

// Resolve turns a bare backup filename into a path inside the backup directory
func (m *Manager) Resolve(name string) string {
	if filepath.IsAbs(name) || exists(name) {
		return name
	}
	if candidate := filepath.Join(m.dir, name); exists(candidate) {
		return candidate
	}
	return name
}

// Restore replaces the store with the backup at path. The current store is backed up
// first and that copy is returned. The store must be closed by the caller.
func (m *Manager) Restore(path string) (string, error) {
	if !exists(path) {
		return "", fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := m.verify(path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	var previous string
	if exists(m.storePath) {
		var err error
		if previous, err = m.create(); err != nil {
			return "", fmt.Errorf("failed to back up current store before restore: %w", err)
		}
	}

	tmp := m.storePath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.storePath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return "", fmt.Errorf("failed to restore store: %w", err)
	}
	logger.Info("Store restored", "from", path)
	return previous, nil
}

func (m *Manager) verify(path string) error {
	if m.isJSON() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return errors.New("not a JSON document")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

// vacuumInto writes a compacted copy of the database, falling back to a file copy
// when the source cannot be vacuumed
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		db.Close()
		return copyFile(src, dst)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
