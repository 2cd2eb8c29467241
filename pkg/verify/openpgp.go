package verify

import (
	"context"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/pika-pm/pika/pkg/errors"
	"github.com/pika-pm/pika/pkg/model"
)

// verifySignature checks the archive against a detached OpenPGP
// signature using the configured trusted keyring. Both armored and
// binary signatures are accepted.
func (v *Verifier) verifySignature(path, sigPath string) error {
	keyringPath := v.cfg.Settings.KeyringPath
	if keyringPath == "" {
		return errors.Wrap(errors.ErrSignatureMismatch, "no trusted keyring configured")
	}

	keyring, err := readKeyRing(keyringPath)
	if err != nil {
		return err
	}

	if err := checkDetached(keyring, path, sigPath, openpgp.CheckArmoredDetachedSignature); err == nil {
		return nil
	}
	if err := checkDetached(keyring, path, sigPath, openpgp.CheckDetachedSignature); err != nil {
		return errors.Wrapf(errors.ErrSignatureMismatch, "%s: %v", path, err)
	}
	return nil
}

func readKeyRing(path string) (openpgp.EntityList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open keyring %s", path)
	}
	defer f.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err == nil {
		return keyring, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrapf(err, "failed to rewind keyring %s", path)
	}
	keyring, err = openpgp.ReadKeyRing(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keyring %s", path)
	}
	return keyring, nil
}

func checkDetached(keyring openpgp.EntityList, path, sigPath string,
	check func(openpgp.KeyRing, io.Reader, io.Reader, *packet.Config) (*openpgp.Entity, error)) error {
	signed, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer signed.Close()

	sig, err := os.Open(sigPath)
	if err != nil {
		return errors.Wrapf(err, "failed to open signature %s", sigPath)
	}
	defer sig.Close()

	_, err = check(keyring, signed, sig, nil)
	return err
}

// SidecarSignatureFetcher resolves a detached signature that was
// downloaded next to the archive as <local_filename><suffix>. It
// performs no network I/O of its own.
type SidecarSignatureFetcher struct {
	Suffix string
}

// NewSidecarSignatureFetcher returns a fetcher for ".sig" sidecar files.
func NewSidecarSignatureFetcher() *SidecarSignatureFetcher {
	return &SidecarSignatureFetcher{Suffix: ".sig"}
}

// FetchSignature implements SignatureFetcher.
func (f *SidecarSignatureFetcher) FetchSignature(_ context.Context, pkg *model.Package) (string, error) {
	sigPath := pkg.LocalFilename + f.Suffix
	if _, err := os.Stat(sigPath); err != nil {
		return "", errors.Wrapf(err, "signature %s", sigPath)
	}
	return sigPath, nil
}
