// Package verify validates a downloaded package archive before the
// record is trusted for install: the file must exist, match the
// feed-declared size, match its checksum, and, when signature checking
// is enabled, carry a valid detached signature. The force-checksum
// override downgrades hard failures to warnings for trusted-but-unsigned
// local builds; it must never be the default.
package verify

import (
	"context"
	"os"

	"github.com/pika-pm/pika/internal/logger"
	"github.com/pika-pm/pika/pkg/config"
	"github.com/pika-pm/pika/pkg/errors"
	"github.com/pika-pm/pika/pkg/model"
)

// Verifier runs the verification pipeline against one configuration.
type Verifier struct {
	cfg  *config.Config
	sigs SignatureFetcher
}

// NewVerifier creates a Verifier. The signature fetcher may be nil when
// signature checking is disabled in the configuration.
func NewVerifier(cfg *config.Config, sigs SignatureFetcher) *Verifier {
	return &Verifier{cfg: cfg, sigs: sigs}
}

// Verify validates the package's local archive. A missing archive
// returns ErrNotDownloaded with the filesystem untouched so the caller
// may trigger a download; any other failure is hard and removes the
// offending files unless the force-checksum override is set.
func (v *Verifier) Verify(ctx context.Context, pkg *model.Package) error {
	info, err := os.Stat(pkg.LocalFilename)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ErrNotDownloaded
		}
		logger.Errorf("Failed to stat %s: %v", pkg.LocalFilename, err)
		return v.fail(pkg, "", errors.Wrapf(err, "failed to stat %s", pkg.LocalFilename))
	}

	// Check size to mitigate hash collisions.
	if info.Size() < 1 || info.Size() != pkg.Size {
		logger.Errorf("File size mismatch: %s is %d bytes, expecting %d bytes",
			pkg.LocalFilename, info.Size(), pkg.Size)
		return v.fail(pkg, "", errors.Wrapf(errors.ErrSizeMismatch,
			"%s is %d bytes, expecting %d bytes", pkg.LocalFilename, info.Size(), pkg.Size))
	}

	switch {
	case pkg.SHA256Sum != "":
		if err := VerifySHA256Sum(pkg.LocalFilename, pkg.SHA256Sum); err != nil {
			return v.fail(pkg, "", err)
		}
	case pkg.MD5Sum != "":
		if err := VerifyMD5Sum(pkg.LocalFilename, pkg.MD5Sum); err != nil {
			return v.fail(pkg, "", err)
		}
	default:
		if !v.cfg.Settings.ForceChecksum {
			logger.Errorf("Checksum is missing for %s. To bypass verification use force_checksum.",
				pkg.Name)
			return v.fail(pkg, "", errors.Wrapf(errors.ErrChecksumMissing, "%s", pkg.Name))
		}
		logger.Warnf("No checksum for %s, verification skipped.", pkg.Name)
	}

	if v.cfg.Settings.CheckSignature {
		sigPath, err := v.fetchSignature(ctx, pkg)
		if err != nil {
			return v.fail(pkg, sigPath, err)
		}
		if err := v.verifySignature(pkg.LocalFilename, sigPath); err != nil {
			return v.fail(pkg, sigPath, err)
		}
		logger.Debugf("Signature verification passed for %s.", pkg.LocalFilename)
	}

	return nil
}

func (v *Verifier) fetchSignature(ctx context.Context, pkg *model.Package) (string, error) {
	if v.sigs == nil {
		return "", errors.Wrapf(errors.ErrSignatureMissing, "no signature source for %s", pkg.Name)
	}
	sigPath, err := v.sigs.FetchSignature(ctx, pkg)
	if err != nil {
		return "", errors.Wrapf(errors.ErrSignatureMissing, "%s: %v", pkg.Name, err)
	}
	if sigPath == "" {
		return "", errors.Wrapf(errors.ErrSignatureMissing, "%s", pkg.Name)
	}
	return sigPath, nil
}

// fail applies the hard-failure policy: remove the corrupt archive and
// any fetched signature file, unless the force-checksum override
// downgrades the failure to a warning and keeps the file.
func (v *Verifier) fail(pkg *model.Package, sigPath string, err error) error {
	if v.cfg.Settings.ForceChecksum {
		logger.Warnf("Ignored %s verification failure: %v", pkg.LocalFilename, err)
		return nil
	}

	logger.Warnf("Removing corrupt package file %s.", pkg.LocalFilename)
	os.Remove(pkg.LocalFilename)

	if sigPath != "" {
		if _, statErr := os.Stat(sigPath); statErr == nil {
			logger.Warnf("Removing unmatched signature file %s.", sigPath)
			os.Remove(sigPath)
		}
	}
	return err
}
