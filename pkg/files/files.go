// Package files materializes and tracks the list of filesystem paths a
// package owns. Lists are populated lazily, either from the archive's
// data-file manifest (packages not yet installed) or from the persisted
// per-package list file under the destination's metadata directory, and
// are reference counted so independent call sites can nest acquire and
// release without duplicate population or premature eviction.
//
// Persisted list format: one entry per line, path[\tmode[\ttarget]],
// mode as an octal-friendly unsigned integer, target present only for
// symlinks.
package files

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pika-pm/pika/internal/logger"
	"github.com/pika-pm/pika/pkg/config"
	"github.com/pika-pm/pika/pkg/errors"
	"github.com/pika-pm/pika/pkg/model"
)

// Manager performs file-ownership operations against one configuration.
type Manager struct {
	cfg       *config.Config
	extractor Extractor
}

// NewManager creates a Manager using the given extractor for packages
// whose lists are not yet authoritative on disk.
func NewManager(cfg *config.Config, extractor Extractor) *Manager {
	return &Manager{cfg: cfg, extractor: extractor}
}

// ListFilePath returns the persisted list file location for a package.
func (m *Manager) ListFilePath(pkg *model.Package) (string, error) {
	if pkg.Dest == nil {
		return "", errors.Wrapf(errors.ErrNoDestination, "package %s", pkg.Name)
	}
	return filepath.Join(pkg.Dest.InfoDir, pkg.Name+".list"), nil
}

// GetInstalledFiles returns the package's file list, populating it on
// first use and incrementing the reference count on every call. For
// packages that are not installed (or have no destination bound) the
// list is derived from the archive's data manifest; otherwise it is read
// from the persisted list file.
func (m *Manager) GetInstalledFiles(ctx context.Context, pkg *model.Package) (*model.FileList, error) {
	if cached := pkg.AcquireInstalledFiles(); cached != nil {
		return cached, nil
	}

	list := &model.FileList{}

	fromPackage := pkg.Status == model.StatusNotInstalled || pkg.Dest == nil

	if fromPackage {
		if pkg.LocalFilename == "" {
			pkg.SetInstalledFiles(list)
			return list, nil
		}
		if err := m.populateFromArchive(ctx, pkg, list); err != nil {
			pkg.DropInstalledFiles()
			return nil, err
		}
	} else {
		if err := m.populateFromListFile(pkg, list); err != nil {
			pkg.DropInstalledFiles()
			return nil, err
		}
	}

	pkg.SetInstalledFiles(list)
	return list, nil
}

// populateFromArchive extracts the data-file manifest into a scratch
// stream and parses it. The temp file is unlinked on every exit path.
func (m *Manager) populateFromArchive(ctx context.Context, pkg *model.Package, list *model.FileList) error {
	tmp, err := os.CreateTemp(m.cfg.Settings.TempDir, pkg.Name+".list.*")
	if err != nil {
		return errors.Wrapf(err, "failed to make temp file in %s", m.cfg.Settings.TempDir)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if err := m.extractor.ExtractDataFileNames(ctx, pkg, tmp); err != nil {
		logger.Errorf("Error extracting file list from %s.", pkg.LocalFilename)
		return errors.Wrapf(errors.ErrFilelistExtract, "%s: %v", pkg.LocalFilename, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "failed to rewind %s", tmpName)
	}

	root := "/"
	if pkg.Dest != nil {
		root = pkg.Dest.RootDir
	}

	scanner := bufio.NewScanner(tmp)
	for scanner.Scan() {
		name, modeStr, target := splitListLine(scanner.Text())
		if name == "" {
			continue
		}
		// Package-relative entries: strip a single leading "." and "/",
		// then prepend the destination root.
		name = strings.TrimPrefix(name, ".")
		name = strings.TrimPrefix(name, "/")
		list.Append(filepath.Join(root, name), parseMode(modeStr), target)
	}
	return scanner.Err()
}

// populateFromListFile reads the persisted per-package list. A missing
// list file yields an empty list; that happens legitimately for
// half-installed packages.
func (m *Manager) populateFromListFile(pkg *model.Package, list *model.FileList) error {
	listPath, err := m.ListFilePath(pkg)
	if err != nil {
		return err
	}

	f, err := os.Open(listPath)
	if err != nil {
		if pkg.Status != model.StatusHalfInstalled {
			logger.Errorf("Failed to open %s: %v", listPath, err)
		}
		return nil
	}
	defer f.Close()

	offlineRoot := m.cfg.Settings.OfflineRoot

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name, modeStr, target := splitListLine(scanner.Text())
		if name == "" {
			continue
		}

		// Already-rooted entries are used as-is unless an offline root is
		// configured and not already present.
		installedName := name
		if offlineRoot != "" && !strings.HasPrefix(name, offlineRoot) {
			installedName = offlineRoot + name
		}

		// Filesystem truth is authoritative only when the recorded line
		// carries no mode/target data.
		mode := parseMode(modeStr)
		if mode == 0 {
			if info, err := os.Lstat(installedName); err == nil {
				mode = info.Mode()
			}
		}
		if target == "" && mode&fs.ModeSymlink != 0 {
			if linked, err := os.Readlink(installedName); err == nil {
				target = linked
			}
		}

		list.Append(installedName, mode, target)
	}
	return scanner.Err()
}

// Release decrements the reference count, evicting the cached list once
// it reaches zero.
func (m *Manager) Release(pkg *model.Package) {
	pkg.ReleaseInstalledFiles()
}

// WriteFilelist serializes the current live ownership relation for a
// package: every path in the owner index attributed to it, re-probed
// against the filesystem for mode and symlink target. Clears the
// package's filelist-changed flag on success.
func (m *Manager) WriteFilelist(pkg *model.Package, owners OwnerIndex) error {
	listPath, err := m.ListFilePath(pkg)
	if err != nil {
		return err
	}

	logger.Infof("Creating %s file for pkg %s.", listPath, pkg.Name)

	f, err := os.Create(listPath)
	if err != nil {
		logger.Errorf("Failed to open %s: %v", listPath, err)
		return errors.Wrapf(err, "failed to open %s", listPath)
	}

	w := bufio.NewWriter(f)
	offlineRoot := m.cfg.Settings.OfflineRoot

	var writeErr error
	owners.ForEach(func(path string, owner *model.Package) {
		if owner != pkg || writeErr != nil {
			return
		}

		entry := strings.TrimSuffix(path, "/")

		probePath := entry
		if offlineRoot != "" && !strings.HasPrefix(entry, offlineRoot) {
			probePath = offlineRoot + entry
		}

		var mode fs.FileMode
		var target string
		if info, err := os.Lstat(probePath); err == nil {
			mode = info.Mode()
			if mode&fs.ModeSymlink != 0 {
				target, _ = os.Readlink(probePath)
			}
		}

		_, writeErr = fmt.Fprintln(w, formatListLine(entry, mode, target))
	})

	if writeErr == nil {
		writeErr = w.Flush()
	}
	if err := f.Close(); err != nil && writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		return errors.Wrapf(writeErr, "failed to write %s", listPath)
	}

	pkg.Flag &^= model.FlagFilelistChanged
	return nil
}

// WriteChangedFilelists writes the list file of every installed package
// flagged as changed. Best-effort: the first failure is reported but the
// remaining packages are still processed.
func (m *Manager) WriteChangedFilelists(set InstalledSet, owners OwnerIndex) error {
	if m.cfg.Settings.NoAction {
		return nil
	}

	logger.Infof("Saving changed filelists.")

	var firstErr error
	for _, pkg := range set.InstalledPackages() {
		if pkg.Flag&model.FlagFilelistChanged == 0 {
			continue
		}
		if err := m.WriteFilelist(pkg, owners); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RemoveFilelist deletes the persisted list file, honouring no-action
// mode. A missing file is not an error.
func (m *Manager) RemoveFilelist(pkg *model.Package) error {
	listPath, err := m.ListFilePath(pkg)
	if err != nil {
		return err
	}
	if m.cfg.Settings.NoAction {
		return nil
	}
	os.Remove(listPath)
	return nil
}

// UpdateOwnerIndex feeds every installed package's file list into the
// owner index, acquiring and releasing each list around the walk.
func (m *Manager) UpdateOwnerIndex(ctx context.Context, set InstalledSet, owners OwnerIndex) error {
	logger.Infof("Updating file owner list.")

	for _, pkg := range set.InstalledPackages() {
		list, err := m.GetInstalledFiles(ctx, pkg)
		if err != nil {
			logger.Errorf("Failed to determine installed files for pkg %s.", pkg.Name)
			return err
		}
		for _, entry := range list.Entries {
			owners.SetOwner(entry.Path, pkg)
		}
		m.Release(pkg)
	}
	return nil
}

// splitListLine splits path[\tmode[\ttarget]]; all fields except the
// path are optional.
func splitListLine(line string) (name, modeStr, target string) {
	name = line
	if idx := strings.IndexByte(name, '\t'); idx >= 0 {
		modeStr = name[idx+1:]
		name = name[:idx]
		if idx := strings.IndexByte(modeStr, '\t'); idx >= 0 {
			target = modeStr[idx+1:]
			modeStr = modeStr[:idx]
		}
	}
	return name, modeStr, target
}

func parseMode(modeStr string) fs.FileMode {
	if modeStr == "" {
		return 0
	}
	mode, err := strconv.ParseUint(modeStr, 0, 32)
	if err != nil {
		return 0
	}
	return fs.FileMode(mode)
}

// formatListLine renders an entry in the persisted format. A path whose
// ownership data could not be resolved writes back as just the path.
func formatListLine(path string, mode fs.FileMode, target string) string {
	switch {
	case target != "":
		return fmt.Sprintf("%s\t%#o\t%s", path, uint32(mode), target)
	case mode != 0:
		return fmt.Sprintf("%s\t%#o", path, uint32(mode))
	default:
		return path
	}
}
