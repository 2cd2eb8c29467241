// Package extract reads package archives: the control file and the
// data-file manifest. An archive holds a "control" file at its root and
// the payload under "data/"; any archive format the archives library
// recognizes is accepted. Everything else about control data is the
// parser's business, supplied by the caller.
package extract

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/mholt/archives"
	"github.com/pika-pm/pika/internal/logger"
	"github.com/pika-pm/pika/pkg/config"
	"github.com/pika-pm/pika/pkg/errors"
	"github.com/pika-pm/pika/pkg/files"
	"github.com/pika-pm/pika/pkg/model"
)

const (
	controlFile = "control"
	dataDir     = "data"
)

// ControlParser turns extracted control text into a package record.
type ControlParser interface {
	ParseRecord(text string) (*model.Package, error)
}

// ControlExtractor extracts a package's control file to a stream.
type ControlExtractor interface {
	ExtractControl(ctx context.Context, pkg *model.Package, w io.Writer) error
}

var (
	_ ControlExtractor = (*ArchiveExtractor)(nil)
	_ files.Extractor  = (*ArchiveExtractor)(nil)
)

// ArchiveExtractor implements the extraction collaborators against a
// local archive file.
type ArchiveExtractor struct{}

// NewArchiveExtractor creates an ArchiveExtractor.
func NewArchiveExtractor() *ArchiveExtractor {
	return &ArchiveExtractor{}
}

func openArchive(ctx context.Context, filePath string) (fs.FS, func(), error) {
	fsys, err := archives.FileSystem(ctx, filePath, nil)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open archive %s", filePath)
	}
	closeFn := func() {
		// Close the underlying archive filesystem when done (important on Windows)
		if closer, ok := fsys.(io.Closer); ok {
			closer.Close()
		}
	}
	return fsys, closeFn, nil
}

// ExtractControl copies the archive's control file to the stream.
func (e *ArchiveExtractor) ExtractControl(ctx context.Context, pkg *model.Package, w io.Writer) error {
	fsys, closeFn, err := openArchive(ctx, pkg.LocalFilename)
	if err != nil {
		return err
	}
	defer closeFn()

	f, err := fsys.Open(controlFile)
	if err != nil {
		return errors.Wrapf(err, "no control file in %s", pkg.LocalFilename)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return errors.Wrapf(err, "failed to read control file from %s", pkg.LocalFilename)
	}
	return nil
}

// ExtractDataFileNames lists the archive's payload paths to the stream,
// one per line, package-relative with a leading "./".
func (e *ArchiveExtractor) ExtractDataFileNames(ctx context.Context, pkg *model.Package, w io.Writer) error {
	fsys, closeFn, err := openArchive(ctx, pkg.LocalFilename)
	if err != nil {
		return err
	}
	defer closeFn()

	if _, err := fs.Stat(fsys, dataDir); err != nil {
		// Meta packages carry no payload.
		return nil
	}

	return fs.WalkDir(fsys, dataDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := path.Clean(p[len(dataDir):])
		if _, err := fmt.Fprintf(w, ".%s\n", rel); err != nil {
			return err
		}
		return nil
	})
}

// LoadPackage constructs a record from a local archive: the control file
// is extracted to a scratch file, parsed by the caller-supplied parser,
// and the record is bound to the archive path. The scratch file is
// unlinked on every exit path.
func LoadPackage(ctx context.Context, cfg *config.Config, filePath string, parser ControlParser) (*model.Package, error) {
	probe := &model.Package{LocalFilename: filePath}

	tmp, err := os.CreateTemp(cfg.Settings.TempDir, filepath.Base(filePath)+".control.*")
	if err != nil {
		logger.Errorf("Failed to make temp file in %s: %v", cfg.Settings.TempDir, err)
		return nil, errors.Wrapf(err, "failed to make temp file in %s", cfg.Settings.TempDir)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	extractor := NewArchiveExtractor()
	if err := extractor.ExtractControl(ctx, probe, tmp); err != nil {
		logger.Errorf("Failed to extract control file from %s.", filePath)
		return nil, err
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrapf(err, "failed to rewind %s", tmpName)
	}
	control, err := io.ReadAll(tmp)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", tmpName)
	}

	pkg, err := parser.ParseRecord(string(control))
	if err != nil {
		logger.Errorf("Malformed package file %s.", filePath)
		return nil, errors.Wrapf(err, "malformed package file %s", filePath)
	}

	pkg.LocalFilename = filePath
	return pkg, nil
}
