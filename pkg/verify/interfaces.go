//go:generate mockgen -destination=./mocks/verify.go -package=mocks . SignatureFetcher

package verify

import (
	"context"

	"github.com/pika-pm/pika/pkg/model"
)

// SignatureFetcher obtains the detached signature for a package archive
// and returns the local path it was stored at. Fetching is the download
// layer's business; an implementation may just resolve an already-present
// sidecar file.
type SignatureFetcher interface {
	FetchSignature(ctx context.Context, pkg *model.Package) (string, error)
}
