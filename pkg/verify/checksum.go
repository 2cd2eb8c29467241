package verify

import (
	"crypto/md5" //nolint:gosec // md5 is a legacy feed format, not a security primitive here
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/pika-pm/pika/internal/logger"
	"github.com/pika-pm/pika/pkg/errors"
)

func fileChecksumHex(path string, h hash.Hash) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyMD5Sum checks a file against its expected hex MD5 digest.
func VerifyMD5Sum(path, expected string) error {
	sum, err := fileChecksumHex(path, md5.New()) //nolint:gosec
	if err != nil {
		return err
	}
	return compareChecksums(path, "md5", sum, expected)
}

// VerifySHA256Sum checks a file against its expected hex SHA-256 digest.
func VerifySHA256Sum(path, expected string) error {
	sum, err := fileChecksumHex(path, sha256.New())
	if err != nil {
		return err
	}
	return compareChecksums(path, "sha256", sum, expected)
}

func compareChecksums(path, algo, got, expected string) error {
	if strings.EqualFold(got, expected) {
		return nil
	}
	logger.Errorf("Checksum mismatch for %s: got %s %s, expected %s", path, algo, got, expected)
	return errors.Wrapf(errors.ErrChecksumMismatch,
		"%s: got %s %s, expected %s", path, algo, got, expected)
}
