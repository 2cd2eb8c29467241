// Package version implements Debian-style package version ordering: an
// epoch compared numerically, then the upstream version and revision
// compared with the dpkg verrevcmp algorithm. The ordering is a strict
// total order and matches the ordering used across package feeds, so it
// must not be replaced by semantic-version comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pika-pm/pika/pkg/errors"
)

// Spec is a parsed package version: [epoch:]upstream[-revision].
type Spec struct {
	Epoch    uint
	Upstream string
	Revision string
}

// Constraint is a version relation used in dependency declarations.
type Constraint int

// Version constraints in dependency order.
const (
	ConstraintNone Constraint = iota
	ConstraintEarlier
	ConstraintEarlierEqual
	ConstraintEqual
	ConstraintLaterEqual
	ConstraintLater
)

// String returns the persisted operator literal for a constraint.
func (c Constraint) String() string {
	switch c {
	case ConstraintEarlier:
		return "<"
	case ConstraintEarlierEqual:
		return "<="
	case ConstraintEqual:
		return "="
	case ConstraintLaterEqual:
		return ">="
	case ConstraintLater:
		return ">"
	default:
		return ""
	}
}

// ParseConstraint maps an operator literal to a Constraint. The dpkg
// aliases "<<" and ">>" are accepted for strictly-earlier and
// strictly-later.
func ParseConstraint(op string) (Constraint, error) {
	switch op {
	case "<<", "<":
		return ConstraintEarlier, nil
	case "<=":
		return ConstraintEarlierEqual, nil
	case "=":
		return ConstraintEqual, nil
	case ">=":
		return ConstraintLaterEqual, nil
	case ">>", ">":
		return ConstraintLater, nil
	default:
		return ConstraintNone, errors.Wrapf(errors.ErrUnknownOperator, "%q", op)
	}
}

// Parse splits a version string into epoch, upstream version and revision.
// The epoch is everything before the first colon (digits only, default 0);
// the revision is everything after the last hyphen.
func Parse(s string) (Spec, error) {
	var spec Spec

	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		epoch, err := strconv.ParseUint(s[:idx], 10, 32)
		if err != nil {
			return Spec{}, errors.Wrapf(err, "malformed epoch in version %q", s)
		}
		spec.Epoch = uint(epoch)
		s = s[idx+1:]
	}

	if idx := strings.LastIndexByte(s, '-'); idx >= 0 {
		spec.Revision = s[idx+1:]
		s = s[:idx]
	}

	if s == "" {
		return Spec{}, errors.Wrap(errors.ErrConfigValidation, "empty upstream version")
	}
	spec.Upstream = s

	return spec, nil
}

// String renders the version back to [epoch:]upstream[-revision] form,
// omitting a zero epoch and an absent revision.
func (s Spec) String() string {
	switch {
	case s.Epoch != 0 && s.Revision != "":
		return fmt.Sprintf("%d:%s-%s", s.Epoch, s.Upstream, s.Revision)
	case s.Epoch != 0:
		return fmt.Sprintf("%d:%s", s.Epoch, s.Upstream)
	case s.Revision != "":
		return fmt.Sprintf("%s-%s", s.Upstream, s.Revision)
	default:
		return s.Upstream
	}
}

// Compare orders two versions: negative if a sorts before b, zero if they
// are equal, positive if a sorts after b.
func Compare(a, b Spec) int {
	if a.Epoch != b.Epoch {
		return int(a.Epoch) - int(b.Epoch)
	}
	if r := verrevcmp(a.Upstream, b.Upstream); r != 0 {
		return r
	}
	return verrevcmp(a.Revision, b.Revision)
}

// Satisfies reports whether version a stands in the given relation to
// version ref. An unrecognized operator is an error, never a silent false.
func Satisfies(a Spec, op string, ref Spec) (bool, error) {
	constraint, err := ParseConstraint(op)
	if err != nil {
		return false, err
	}
	return SatisfiesConstraint(a, constraint, ref)
}

// SatisfiesConstraint is Satisfies with an already-parsed constraint.
func SatisfiesConstraint(a Spec, c Constraint, ref Spec) (bool, error) {
	r := Compare(a, ref)
	switch c {
	case ConstraintEarlierEqual:
		return r <= 0, nil
	case ConstraintLaterEqual:
		return r >= 0, nil
	case ConstraintEarlier:
		return r < 0, nil
	case ConstraintLater:
		return r > 0, nil
	case ConstraintEqual:
		return r == 0, nil
	default:
		return false, errors.Wrapf(errors.ErrUnknownOperator, "%d", int(c))
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// order ranks a character for the non-digit comparison phase: tilde sorts
// before everything including end-of-string, digits and end-of-string rank
// zero, letters rank by code point, everything else ranks above letters.
func order(c byte) int {
	switch {
	case c == '~':
		return -1
	case isDigit(c):
		return 0
	case isAlpha(c):
		return int(c)
	default:
		return 256 + int(c)
	}
}

// verrevcmp is the dpkg comparison over a single version component.
// It alternates between a character phase (using order) and a numeric
// phase where a longer remaining digit run wins outright.
func verrevcmp(val, ref string) int {
	i, j := 0, 0
	for i < len(val) || j < len(ref) {
		firstDiff := 0

		for (i < len(val) && !isDigit(val[i])) || (j < len(ref) && !isDigit(ref[j])) {
			vc, rc := 0, 0
			if i < len(val) {
				vc = order(val[i])
			}
			if j < len(ref) {
				rc = order(ref[j])
			}
			if vc != rc {
				return vc - rc
			}
			i++
			j++
		}

		for i < len(val) && val[i] == '0' {
			i++
		}
		for j < len(ref) && ref[j] == '0' {
			j++
		}
		for i < len(val) && j < len(ref) && isDigit(val[i]) && isDigit(ref[j]) {
			if firstDiff == 0 {
				firstDiff = int(val[i]) - int(ref[j])
			}
			i++
			j++
		}
		if i < len(val) && isDigit(val[i]) {
			return 1
		}
		if j < len(ref) && isDigit(ref[j]) {
			return -1
		}
		if firstDiff != 0 {
			return firstDiff
		}
	}
	return 0
}
