package model

import (
	"strings"

	"github.com/pika-pm/pika/internal/logger"
	"github.com/pika-pm/pika/pkg/version"
)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CompareVersionsNoReinstall orders two records by epoch, upstream
// version and revision only.
func (p *Package) CompareVersionsNoReinstall(ref *Package) int {
	return version.Compare(p.VersionSpec(), ref.VersionSpec())
}

// CompareVersions orders two records by version and breaks exact ties by
// the force-reinstall flag, false sorting before true. Used when ordering
// installation candidates so a forced reinstall is preferred over an
// otherwise-identical candidate.
func (p *Package) CompareVersions(ref *Package) int {
	if r := p.CompareVersionsNoReinstall(ref); r != 0 {
		return r
	}
	return boolToInt(p.ForceReinstall) - boolToInt(ref.ForceReinstall)
}

// VersionSatisfied reports whether this record's version stands in the
// given relation to ref's. An unrecognized operator is an error.
func (p *Package) VersionSatisfied(ref *Package, op string) (bool, error) {
	constraint, err := version.ParseConstraint(op)
	if err != nil {
		return false, err
	}

	r := p.CompareVersions(ref)
	switch constraint {
	case version.ConstraintEarlierEqual:
		return r <= 0, nil
	case version.ConstraintLaterEqual:
		return r >= 0, nil
	case version.ConstraintEarlier:
		return r < 0, nil
	case version.ConstraintLater:
		return r > 0, nil
	default:
		return r == 0, nil
	}
}

// ComparePackages orders records by name, then version, then
// architecture priority. Records missing a name or an architecture
// priority indicate an index inconsistency; the comparison logs and
// degrades to equal rather than crashing.
func ComparePackages(a, b *Package) int {
	if a.Name == "" || b.Name == "" {
		logger.Errorf("Internal error: comparing packages with empty names (%q, %q).", a.Name, b.Name)
		return 0
	}

	if namecmp := strings.Compare(a.Name, b.Name); namecmp != 0 {
		return namecmp
	}
	if vercmp := a.CompareVersions(b); vercmp != 0 {
		return vercmp
	}

	if a.ArchPriority == 0 || b.ArchPriority == 0 {
		logger.Errorf("Internal error: a.ArchPriority=%d b.ArchPriority=%d.", a.ArchPriority, b.ArchPriority)
		return 0
	}
	switch {
	case a.ArchPriority > b.ArchPriority:
		return 1
	case a.ArchPriority < b.ArchPriority:
		return -1
	default:
		return 0
	}
}

// CompareAbstractPackages orders dependency-graph nodes by name.
func CompareAbstractPackages(a, b *AbstractPackage) int {
	if a.Name == "" || b.Name == "" {
		logger.Errorf("Internal error: comparing abstract packages with empty names (%q, %q).", a.Name, b.Name)
		return 0
	}
	return strings.Compare(a.Name, b.Name)
}
