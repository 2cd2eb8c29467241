//go:generate mockgen -destination=./mocks/files.go -package=mocks . Extractor,OwnerIndex,InstalledSet

package files

import (
	"context"
	"io"

	"github.com/pika-pm/pika/pkg/model"
)

// Extractor lists the data-file names contained in a package archive,
// one per line, to the given stream. Implemented by pkg/extract; the
// archive format itself is not this package's business.
type Extractor interface {
	ExtractDataFileNames(ctx context.Context, pkg *model.Package, w io.Writer) error
}

// OwnerIndex is the global path-to-owner table. Ownership is established
// elsewhere; this package only reads it back when writing file lists and
// feeds it when refreshing before an install.
type OwnerIndex interface {
	SetOwner(path string, owner *model.Package)
	ForEach(fn func(path string, owner *model.Package))
}

// InstalledSet enumerates the currently installed package records.
type InstalledSet interface {
	InstalledPackages() []*model.Package
}
