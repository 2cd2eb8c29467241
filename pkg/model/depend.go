package model

import (
	"fmt"
	"strings"

	"github.com/pika-pm/pika/pkg/version"
)

// Depend is a single dependency possibility: a package name with an
// optional version constraint.
type Depend struct {
	Name       string
	Constraint version.Constraint
	Version    string
}

// String renders the possibility in control-file form, e.g.
// "libfoo (>=1.2)".
func (d *Depend) String() string {
	if d.Version == "" || d.Constraint == version.ConstraintNone {
		return d.Name
	}
	return fmt.Sprintf("%s (%s%s)", d.Name, d.Constraint, d.Version)
}

// SatisfiedBy reports whether the given record satisfies this
// possibility. The name must match directly; provides-based satisfaction
// is the resolver's business, not checked here.
func (d *Depend) SatisfiedBy(p *Package) (bool, error) {
	if p.Name != d.Name {
		return false, nil
	}
	if d.Version == "" || d.Constraint == version.ConstraintNone {
		return true, nil
	}
	ref, err := version.Parse(d.Version)
	if err != nil {
		return false, err
	}
	return version.SatisfiesConstraint(p.VersionSpec(), d.Constraint, ref)
}

// CompoundDepend is a dependency slot offering alternative packages, any
// one of which satisfies it.
type CompoundDepend struct {
	Possibilities []*Depend
}

// String joins the alternatives in control-file form, e.g.
// "libfoo (>=1.2) | libbar".
func (cd *CompoundDepend) String() string {
	parts := make([]string, 0, len(cd.Possibilities))
	for _, d := range cd.Possibilities {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, " | ")
}
