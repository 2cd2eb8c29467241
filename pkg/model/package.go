// Package model provides the data structures representing packages,
// their dependency relations and their installation state in the pika
// package manager.
package model

import (
	"io/fs"

	"github.com/pika-pm/pika/internal/logger"
	"github.com/pika-pm/pika/pkg/config"
	"github.com/pika-pm/pika/pkg/version"
)

// Conffile is a configuration file under special upgrade/removal
// handling. Value holds the content hash recorded at install time, or a
// marker supplied by the control data.
type Conffile struct {
	Name  string
	Value string
}

// UserField is an arbitrary name/value pair carried through the status
// database when verbose-status mode is configured.
type UserField struct {
	Name  string
	Value string
}

// FileEntry is one filesystem path owned by a package.
type FileEntry struct {
	Path       string
	Mode       fs.FileMode
	LinkTarget string
}

// FileList is the materialized list of paths a package owns. A nil
// *FileList on a Package means "not yet populated"; an empty one is a
// valid, populated list.
type FileList struct {
	Entries []FileEntry
}

// Append adds an entry to the list.
func (l *FileList) Append(path string, mode fs.FileMode, linkTarget string) {
	l.Entries = append(l.Entries, FileEntry{Path: path, Mode: mode, LinkTarget: linkTarget})
}

// Package is the canonical package record: identity, version, dependency
// relations, installation state and provenance. Dest and Src are
// non-owning references into the externally-owned configuration.
type Package struct {
	Name         string
	Epoch        uint
	Version      string
	Revision     string
	Architecture string
	// ArchPriority is the resolution tie-break weight of Architecture.
	ArchPriority int

	PreDepends []*CompoundDepend
	Depends    []*CompoundDepend
	Recommends []*CompoundDepend
	Suggests   []*CompoundDepend
	Conflicts  []*CompoundDepend
	Replaces   []*CompoundDepend
	// Provides lists provided package identities; index 0 conventionally
	// is the package's own self-provide.
	Provides []string

	Want   StateWant
	Flag   StateFlag
	Status StateStatus

	Size          int64
	InstalledSize int64
	MD5Sum        string
	SHA256Sum     string
	InstalledTime int64

	Filename      string
	LocalFilename string
	TmpUnpackDir  string
	Source        string
	Section       string
	Maintainer    string
	Description   string
	Tags          string
	Priority      string

	Essential      bool
	AutoInstalled  bool
	ForceReinstall bool
	ProvidedByHand bool

	Dest *config.Dest
	Src  *config.Feed

	Conffiles  []Conffile
	UserFields []UserField

	// InstalledFiles is populated lazily through the files package and
	// guarded by a reference count so independent call sites can nest
	// acquire/release without duplicate population or premature eviction.
	InstalledFiles       *FileList
	installedFilesRefCnt int
}

// New returns an empty record: want unknown, flags clear, not installed.
func New() *Package {
	return &Package{
		Want:   WantUnknown,
		Flag:   FlagOK,
		Status: StatusNotInstalled,
	}
}

// VersionSpec returns the record's version triple.
func (p *Package) VersionSpec() version.Spec {
	return version.Spec{Epoch: p.Epoch, Upstream: p.Version, Revision: p.Revision}
}

// SetVersion parses a [epoch:]upstream[-revision] string into the record.
func (p *Package) SetVersion(s string) error {
	spec, err := version.Parse(s)
	if err != nil {
		return err
	}
	p.Epoch = spec.Epoch
	p.Version = spec.Upstream
	p.Revision = spec.Revision
	return nil
}

// VersionString renders the version, omitting a zero epoch and an absent
// revision.
func (p *Package) VersionString() string {
	return p.VersionSpec().String()
}

// GetConffile returns the conffile entry for a path, or nil.
func (p *Package) GetConffile(fileName string) *Conffile {
	if p == nil {
		return nil
	}
	for i := range p.Conffiles {
		if p.Conffiles[i].Name == fileName {
			return &p.Conffiles[i]
		}
	}
	return nil
}

// ArchSupported reports whether the record's architecture is in the
// configured architecture list. A record without an architecture is
// always supported.
func (p *Package) ArchSupported(cfg *config.Config) bool {
	if p.Architecture == "" {
		return true
	}
	if prio := cfg.ArchPriority(p.Architecture); prio > 0 {
		logger.Debugf("Arch %s (priority %d) supported for pkg %s.", p.Architecture, prio, p.Name)
		return true
	}
	logger.Debugf("Arch %s unsupported for pkg %s.", p.Architecture, p.Name)
	return false
}

// AcquireInstalledFiles increments the reference count and returns the
// cached list, or nil when the list has not been populated yet. Callers
// that receive nil must populate via SetInstalledFiles or undo the
// acquisition with DropInstalledFiles.
func (p *Package) AcquireInstalledFiles() *FileList {
	p.installedFilesRefCnt++
	return p.InstalledFiles
}

// SetInstalledFiles caches a freshly populated list.
func (p *Package) SetInstalledFiles(l *FileList) {
	p.InstalledFiles = l
}

// ReleaseInstalledFiles decrements the reference count and evicts the
// cached list once it reaches zero.
func (p *Package) ReleaseInstalledFiles() {
	p.installedFilesRefCnt--
	if p.installedFilesRefCnt > 0 {
		return
	}
	p.installedFilesRefCnt = 0
	p.InstalledFiles = nil
}

// DropInstalledFiles discards the cache after a failed population attempt
// so the bookkeeping of that attempt does not persist.
func (p *Package) DropInstalledFiles() {
	p.installedFilesRefCnt--
	if p.installedFilesRefCnt < 0 {
		p.installedFilesRefCnt = 0
	}
	p.InstalledFiles = nil
}

// InstalledFilesRefCount exposes the current reference count.
func (p *Package) InstalledFilesRefCount() int {
	return p.installedFilesRefCnt
}

// Reset returns the record to its freshly-constructed state. The
// installed-file cache goes through the reference-count path, treating
// this as the final release.
func (p *Package) Reset() {
	p.installedFilesRefCnt = 1
	p.ReleaseInstalledFiles()
	*p = *New()
}

// AbstractPackage is a name-keyed node in the dependency graph, distinct
// from any concrete versioned record. Created on first reference during
// index construction and never destroyed during a run. DependedUponBy
// holds non-owning back-references.
type AbstractPackage struct {
	Name                string
	ProvidedBy          []*Package
	DependedUponBy      []*AbstractPackage
	DependenciesChecked bool
	Status              StateStatus
}

// NewAbstractPackage returns a graph node for the given name.
func NewAbstractPackage(name string) *AbstractPackage {
	return &AbstractPackage{
		Name:   name,
		Status: StatusNotInstalled,
	}
}
