// Package status renders and parses the textual status-record
// representation of packages: ordered "Field: value" lines with a blank
// line terminating each record. The same renderer backs the persisted
// package database and human-facing info output; the field literals are
// a persisted, externally-read format.
package status

import (
	"fmt"
	"io"
	"strings"

	"github.com/pika-pm/pika/internal/logger"
	"github.com/pika-pm/pika/pkg/config"
	"github.com/pika-pm/pika/pkg/errors"
	"github.com/pika-pm/pika/pkg/model"
)

// Formatter renders package records field by field.
type Formatter struct {
	cfg *config.Config
}

// NewFormatter creates a Formatter bound to the given configuration.
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// shouldInclude applies the field-name filter: a comma-or-substring list
// restricting which fields are emitted.
func shouldInclude(field, filter string) bool {
	return field != "" && (filter == "" || strings.Contains(filter, field))
}

func formatDependList(w io.Writer, label string, deps []*model.CompoundDepend) {
	if len(deps) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:", label)
	for i, cd := range deps {
		sep := ","
		if i == 0 {
			sep = ""
		}
		fmt.Fprintf(w, "%s %s", sep, cd.String())
	}
	fmt.Fprintln(w)
}

// formatRelationList renders conflicts/replaces, which carry a single
// possibility per slot.
func formatRelationList(w io.Writer, label string, deps []*model.CompoundDepend) {
	if len(deps) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:", label)
	for i, cd := range deps {
		if len(cd.Possibilities) == 0 {
			continue
		}
		sep := ","
		if i == 0 {
			sep = ""
		}
		fmt.Fprintf(w, "%s %s", sep, cd.Possibilities[0].String())
	}
	fmt.Fprintln(w)
}

// FormatField writes one named field of the record, subject to the
// field-name filter. Unknown field names indicate an internal error and
// are logged rather than written.
func (f *Formatter) FormatField(w io.Writer, pkg *model.Package, field, filter string) {
	if !shouldInclude(field, filter) {
		return
	}

	switch strings.ToLower(field) {
	case "architecture":
		if pkg.Architecture != "" {
			fmt.Fprintf(w, "Architecture: %s\n", pkg.Architecture)
		}
	case "auto-installed":
		if pkg.AutoInstalled {
			fmt.Fprintf(w, "Auto-Installed: yes\n")
		}
	case "conffiles":
		f.formatConffiles(w, pkg)
	case "conflicts":
		formatRelationList(w, "Conflicts", pkg.Conflicts)
	case "depends":
		formatDependList(w, "Depends", pkg.Depends)
	case "description":
		f.formatDescription(w, pkg)
	case "essential":
		if pkg.Essential {
			fmt.Fprintf(w, "Essential: yes\n")
		}
	case "filename":
		if pkg.Filename != "" {
			fmt.Fprintf(w, "Filename: %s\n", pkg.Filename)
		}
	case "installed-size":
		if pkg.InstalledSize != 0 {
			fmt.Fprintf(w, "Installed-Size: %d\n", pkg.InstalledSize)
		}
	case "installed-time":
		if pkg.InstalledTime != 0 {
			fmt.Fprintf(w, "Installed-Time: %d\n", pkg.InstalledTime)
		}
	case "maintainer":
		if pkg.Maintainer != "" {
			fmt.Fprintf(w, "Maintainer: %s\n", pkg.Maintainer)
		}
	case "md5sum":
		if pkg.MD5Sum != "" {
			fmt.Fprintf(w, "MD5Sum: %s\n", pkg.MD5Sum)
		}
	case "package":
		fmt.Fprintf(w, "Package: %s\n", pkg.Name)
	case "priority":
		if pkg.Priority != "" {
			fmt.Fprintf(w, "Priority: %s\n", pkg.Priority)
		}
	case "provides":
		f.formatProvides(w, pkg)
	case "recommends":
		formatDependList(w, "Recommends", pkg.Recommends)
	case "replaces":
		formatRelationList(w, "Replaces", pkg.Replaces)
	case "section":
		if pkg.Section != "" {
			fmt.Fprintf(w, "Section: %s\n", pkg.Section)
		}
	case "sha256sum":
		if pkg.SHA256Sum != "" {
			fmt.Fprintf(w, "SHA256sum: %s\n", pkg.SHA256Sum)
		}
	case "size":
		if pkg.Size != 0 {
			fmt.Fprintf(w, "Size: %d\n", pkg.Size)
		}
	case "source":
		if pkg.Source != "" {
			fmt.Fprintf(w, "Source: %s\n", pkg.Source)
		}
	case "status":
		fmt.Fprintf(w, "Status: %s %s %s\n", pkg.Want, pkg.Flag, pkg.Status)
	case "suggests":
		formatDependList(w, "Suggests", pkg.Suggests)
	case "tags":
		if pkg.Tags != "" {
			fmt.Fprintf(w, "Tags: %s\n", pkg.Tags)
		}
	case "version":
		fmt.Fprintf(w, "Version: %s\n", pkg.VersionString())
	default:
		logger.Errorf("Internal error: field=%s", field)
	}
}

func (f *Formatter) formatConffiles(w io.Writer, pkg *model.Package) {
	if len(pkg.Conffiles) == 0 {
		return
	}
	fmt.Fprintf(w, "Conffiles:\n")
	for _, cf := range pkg.Conffiles {
		if cf.Name != "" && cf.Value != "" {
			fmt.Fprintf(w, " %s %s\n", cf.Name, cf.Value)
		}
	}
}

func (f *Formatter) formatDescription(w io.Writer, pkg *model.Package) {
	if pkg.Description == "" {
		return
	}
	if f.cfg.Settings.ShortDescription {
		if idx := strings.IndexByte(pkg.Description, '\n'); idx >= 0 {
			fmt.Fprintf(w, "Description: %s\n", pkg.Description[:idx])
			return
		}
	}
	fmt.Fprintf(w, "Description: %s\n", pkg.Description)
}

// formatProvides skips the conventional self-provide at index 0; a
// package providing only itself emits nothing.
func (f *Formatter) formatProvides(w io.Writer, pkg *model.Package) {
	if len(pkg.Provides) <= 1 {
		return
	}
	fmt.Fprintf(w, "Provides:")
	for i, name := range pkg.Provides[1:] {
		sep := ","
		if i == 0 {
			sep = ""
		}
		fmt.Fprintf(w, "%s %s", sep, name)
	}
	fmt.Fprintln(w)
}

func (f *Formatter) formatUserFields(w io.Writer, pkg *model.Package, filter string) {
	for _, uf := range pkg.UserFields {
		if shouldInclude(uf.Name, filter) && uf.Value != "" {
			fmt.Fprintf(w, "%s: %s\n", uf.Name, uf.Value)
		}
	}
}

// FormatInfo writes the full info record for a package. Package and
// Version are always emitted regardless of the filter; user fields are
// included only in verbose-status mode.
func (f *Formatter) FormatInfo(w io.Writer, pkg *model.Package, filter string) {
	f.FormatField(w, pkg, "Package", "")
	f.FormatField(w, pkg, "Version", "")
	f.FormatField(w, pkg, "Depends", filter)
	f.FormatField(w, pkg, "Recommends", filter)
	f.FormatField(w, pkg, "Suggests", filter)
	f.FormatField(w, pkg, "Provides", filter)
	f.FormatField(w, pkg, "Replaces", filter)
	f.FormatField(w, pkg, "Conflicts", filter)
	f.FormatField(w, pkg, "Status", filter)
	f.FormatField(w, pkg, "Section", filter)
	f.FormatField(w, pkg, "Essential", filter)
	f.FormatField(w, pkg, "Architecture", filter)
	f.FormatField(w, pkg, "Maintainer", filter)
	f.FormatField(w, pkg, "MD5sum", filter)
	f.FormatField(w, pkg, "SHA256sum", filter)
	f.FormatField(w, pkg, "Size", filter)
	f.FormatField(w, pkg, "Filename", filter)
	f.FormatField(w, pkg, "Conffiles", filter)
	f.FormatField(w, pkg, "Source", filter)
	f.FormatField(w, pkg, "Description", filter)
	f.FormatField(w, pkg, "Installed-Size", filter)
	f.FormatField(w, pkg, "Installed-Time", filter)
	f.FormatField(w, pkg, "Auto-Installed", filter)
	f.FormatField(w, pkg, "Tags", filter)
	if f.cfg.Settings.VerboseStatus {
		f.formatUserFields(w, pkg, filter)
	}
	fmt.Fprintln(w)
}

// FormatStatusEntry writes the status-database record for a package.
// Verbose-status mode widens the field set; size and time fields are
// only meaningful for packages actually on disk.
func (f *Formatter) FormatStatusEntry(w io.Writer, pkg *model.Package) {
	verbose := f.cfg.Settings.VerboseStatus

	isInstalled := pkg.Status == model.StatusInstalled ||
		pkg.Status == model.StatusUnpacked ||
		pkg.Status == model.StatusHalfInstalled

	f.FormatField(w, pkg, "Package", "")
	f.FormatField(w, pkg, "Version", "")
	f.FormatField(w, pkg, "Depends", "")
	f.FormatField(w, pkg, "Recommends", "")
	f.FormatField(w, pkg, "Suggests", "")
	f.FormatField(w, pkg, "Provides", "")
	f.FormatField(w, pkg, "Replaces", "")
	f.FormatField(w, pkg, "Conflicts", "")
	f.FormatField(w, pkg, "Status", "")
	if verbose {
		f.FormatField(w, pkg, "Section", "")
	}
	f.FormatField(w, pkg, "Essential", "")
	f.FormatField(w, pkg, "Architecture", "")
	if verbose {
		f.FormatField(w, pkg, "Maintainer", "")
		f.FormatField(w, pkg, "MD5sum", "")
		f.FormatField(w, pkg, "SHA256sum", "")
		f.FormatField(w, pkg, "Size", "")
		f.FormatField(w, pkg, "Filename", "")
	}
	f.FormatField(w, pkg, "Conffiles", "")
	if verbose {
		f.FormatField(w, pkg, "Source", "")
		f.FormatField(w, pkg, "Description", "")
	}
	if isInstalled {
		f.FormatField(w, pkg, "Installed-Size", "")
		f.FormatField(w, pkg, "Installed-Time", "")
		f.FormatField(w, pkg, "Auto-Installed", "")
	}
	if verbose {
		f.formatUserFields(w, pkg, "")
	}
	fmt.Fprintln(w)
}

// ParseStatusValue splits a rendered Status value ("want flags status")
// back into its three tokens.
func ParseStatusValue(s string) (model.StateWant, model.StateFlag, model.StateStatus, error) {
	tokens := strings.Fields(s)
	if len(tokens) != 3 {
		return model.WantUnknown, model.FlagOK, model.StatusNotInstalled,
			errors.Wrapf(errors.ErrConfigValidation, "malformed status value %q", s)
	}
	return model.ParseWant(tokens[0]), model.ParseFlag(tokens[1]), model.ParseStatus(tokens[2]), nil
}
