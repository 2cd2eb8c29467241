package status

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pika-pm/pika/pkg/config"
	"github.com/pika-pm/pika/pkg/errors"
	"github.com/pika-pm/pika/pkg/model"
)

// RecordParser turns one status-record text block back into a package
// record. Control-file parsing lives outside this core; the database
// only splits the file into blocks.
type RecordParser interface {
	ParseRecord(text string) (*model.Package, error)
}

// DB is the status database: the set of package records persisted as
// ordered status-record text. One process owns it exclusively for the
// duration of a run; the mutex only guards accidental in-process sharing.
type DB struct {
	mu        sync.RWMutex
	packages  []*model.Package
	formatter *Formatter

	// LastUpdate tracks the most recent mutation, for diagnostics.
	LastUpdate time.Time
}

// NewDB creates an empty status database.
func NewDB(cfg *config.Config) *DB {
	return &DB{
		formatter: NewFormatter(cfg),
	}
}

// Load reads a status file, handing each blank-line-separated record
// block to the parser. A missing file yields an empty database.
func (db *DB) Load(path string, parser RecordParser) error {
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return errors.Wrapf(errors.ErrInvalidPath, "status file path must be absolute: %s", path)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read status file %s", cleanPath)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	for _, block := range strings.Split(string(data), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		pkg, err := parser.ParseRecord(block)
		if err != nil {
			return errors.Wrapf(err, "malformed status record in %s", cleanPath)
		}
		db.packages = append(db.packages, pkg)
	}
	return nil
}

// Save writes every record to the status file, atomically: the content
// goes to a unique temp file in the target directory which is then
// renamed over the destination.
func (db *DB) Save(path string) (err error) {
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return errors.Wrapf(errors.ErrInvalidPath, "status file path must be absolute: %s", path)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(cleanPath), "pika-status-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file in %s", filepath.Dir(cleanPath))
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	db.mu.RLock()
	var sb strings.Builder
	for _, pkg := range db.packages {
		db.formatter.FormatStatusEntry(&sb, pkg)
	}
	db.mu.RUnlock()

	if _, err := tmpFile.WriteString(sb.String()); err != nil {
		tmpFile.Close()
		return errors.Wrapf(err, "failed to write %s", tmpPath)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return errors.Wrapf(err, "failed to sync %s", tmpPath)
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", tmpPath)
	}

	if err := os.Rename(tmpPath, cleanPath); err != nil {
		return errors.Wrapf(err, "failed to rename temporary file to %s", cleanPath)
	}
	return nil
}

// Find returns the record with the given name, or nil.
func (db *DB) Find(name string) *model.Package {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, pkg := range db.packages {
		if pkg.Name == name {
			return pkg
		}
	}
	return nil
}

// Add inserts a record, merging into an existing record of the same name
// so partial records discovered from multiple sources coalesce into one
// canonical record.
func (db *DB) Add(pkg *model.Package) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.packages {
		if existing.Name == pkg.Name && existing.Architecture == pkg.Architecture {
			db.LastUpdate = time.Now()
			return model.Merge(existing, pkg)
		}
	}

	db.packages = append(db.packages, pkg)
	db.LastUpdate = time.Now()
	return nil
}

// Remove deletes a record by name, reporting whether one was present.
func (db *DB) Remove(name string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, pkg := range db.packages {
		if pkg.Name == name {
			db.packages = append(db.packages[:i], db.packages[i+1:]...)
			db.LastUpdate = time.Now()
			return true
		}
	}
	return false
}

// Packages returns a copy of the record list.
func (db *DB) Packages() []*model.Package {
	db.mu.RLock()
	defer db.mu.RUnlock()

	packages := make([]*model.Package, len(db.packages))
	copy(packages, db.packages)
	return packages
}

// InstalledPackages returns the records currently installed, satisfying
// the files package's InstalledSet.
func (db *DB) InstalledPackages() []*model.Package {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var installed []*model.Package
	for _, pkg := range db.packages {
		if pkg.Status == model.StatusInstalled {
			installed = append(installed, pkg)
		}
	}
	return installed
}

// Filtered returns records whose names contain the filter,
// case-insensitively. An empty filter returns everything.
func (db *DB) Filtered(nameFilter string) []*model.Package {
	if nameFilter == "" {
		return db.Packages()
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	var filtered []*model.Package
	for _, pkg := range db.packages {
		if strings.Contains(strings.ToLower(pkg.Name), strings.ToLower(nameFilter)) {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}

// Info renders the full info output for every record matching the name
// filter, returning how many matched.
func (db *DB) Info(w io.Writer, nameFilter, fieldFilter string) int {
	matched := db.Filtered(nameFilter)
	for _, pkg := range matched {
		db.formatter.FormatInfo(w, pkg, fieldFilter)
	}
	return len(matched)
}
