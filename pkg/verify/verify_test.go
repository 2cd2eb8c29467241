package verify

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pika-pm/pika/pkg/config"
	"github.com/pika-pm/pika/pkg/errors"
	"github.com/pika-pm/pika/pkg/model"
	"github.com/pika-pm/pika/pkg/verify/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testArchiveContent = []byte("not really an archive, but bytes to hash\n")

func writeArchive(t *testing.T) *model.Package {
	t.Helper()

	path := filepath.Join(t.TempDir(), "foo_1.0_all.pika")
	require.NoError(t, os.WriteFile(path, testArchiveContent, 0o644))

	sha := sha256.Sum256(testArchiveContent)

	pkg := model.New()
	pkg.Name = "foo"
	pkg.LocalFilename = path
	pkg.Size = int64(len(testArchiveContent))
	pkg.SHA256Sum = hex.EncodeToString(sha[:])
	return pkg
}

func TestVerifyPasses(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewVerifier(cfg, nil)

	pkg := writeArchive(t)
	require.NoError(t, v.Verify(context.Background(), pkg))

	_, err := os.Stat(pkg.LocalFilename)
	assert.NoError(t, err)
}

func TestVerifyMD5Fallback(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewVerifier(cfg, nil)

	pkg := writeArchive(t)
	pkg.SHA256Sum = ""
	sum := md5.Sum(testArchiveContent)
	pkg.MD5Sum = hex.EncodeToString(sum[:])

	require.NoError(t, v.Verify(context.Background(), pkg))
}

func TestVerifyMissingArchiveIsSoft(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewVerifier(cfg, nil)

	dir := t.TempDir()
	pkg := model.New()
	pkg.Name = "foo"
	pkg.LocalFilename = filepath.Join(dir, "missing.pika")
	pkg.Size = 10

	// A sidecar signature must survive a not-downloaded outcome.
	sigPath := pkg.LocalFilename + ".sig"
	require.NoError(t, os.WriteFile(sigPath, []byte("sig"), 0o644))

	err := v.Verify(context.Background(), pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotDownloaded)

	_, statErr := os.Stat(sigPath)
	assert.NoError(t, statErr)
}

func TestVerifySizeMismatchDeletesArchive(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewVerifier(cfg, nil)

	pkg := writeArchive(t)
	pkg.Size = pkg.Size + 1

	err := v.Verify(context.Background(), pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSizeMismatch)

	_, statErr := os.Stat(pkg.LocalFilename)
	assert.True(t, os.IsNotExist(statErr))
}

func TestVerifyChecksumMismatchDeletesArchive(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewVerifier(cfg, nil)

	pkg := writeArchive(t)
	pkg.SHA256Sum = "0000000000000000000000000000000000000000000000000000000000000000"

	err := v.Verify(context.Background(), pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrChecksumMismatch)

	_, statErr := os.Stat(pkg.LocalFilename)
	assert.True(t, os.IsNotExist(statErr))
}

func TestVerifyMissingChecksumIsHard(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewVerifier(cfg, nil)

	pkg := writeArchive(t)
	pkg.SHA256Sum = ""
	pkg.MD5Sum = ""

	err := v.Verify(context.Background(), pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrChecksumMissing)
}

func TestVerifyForceChecksumDowngrades(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Settings.ForceChecksum = true
	v := NewVerifier(cfg, nil)

	pkg := writeArchive(t)
	pkg.SHA256Sum = "0000000000000000000000000000000000000000000000000000000000000000"

	require.NoError(t, v.Verify(context.Background(), pkg))

	_, statErr := os.Stat(pkg.LocalFilename)
	assert.NoError(t, statErr, "force mode keeps the archive")

	// A missing checksum is also only warned about.
	pkg.SHA256Sum = ""
	require.NoError(t, v.Verify(context.Background(), pkg))
}

func TestVerifySignatureFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := config.DefaultConfig()
	cfg.Settings.CheckSignature = true

	sigs := mocks.NewMockSignatureFetcher(ctrl)
	sigs.EXPECT().FetchSignature(gomock.Any(), gomock.Any()).Return("", assert.AnError)

	v := NewVerifier(cfg, sigs)
	pkg := writeArchive(t)

	err := v.Verify(context.Background(), pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSignatureMissing)

	_, statErr := os.Stat(pkg.LocalFilename)
	assert.True(t, os.IsNotExist(statErr))
}

func TestVerifyNoSignatureSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Settings.CheckSignature = true

	v := NewVerifier(cfg, nil)
	pkg := writeArchive(t)

	err := v.Verify(context.Background(), pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSignatureMissing)
}

func TestChecksumHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, testArchiveContent, 0o644))

	sha := sha256.Sum256(testArchiveContent)
	require.NoError(t, VerifySHA256Sum(path, hex.EncodeToString(sha[:])))

	sum := md5.Sum(testArchiveContent)
	require.NoError(t, VerifyMD5Sum(path, hex.EncodeToString(sum[:])))

	err := VerifySHA256Sum(path, "deadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrChecksumMismatch)

	// Hex case must not matter.
	require.NoError(t, VerifySHA256Sum(path, strings.ToUpper(hex.EncodeToString(sha[:]))))
}

func TestSidecarSignatureFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foo.pika")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path+".sig", []byte("sig"), 0o644))

	pkg := model.New()
	pkg.LocalFilename = path

	f := NewSidecarSignatureFetcher()
	sigPath, err := f.FetchSignature(context.Background(), pkg)
	require.NoError(t, err)
	assert.Equal(t, path+".sig", sigPath)

	require.NoError(t, os.Remove(path+".sig"))
	_, err = f.FetchSignature(context.Background(), pkg)
	assert.Error(t, err)
}
