package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/devmatteini/dag/log"
	"github.com/devmatteini/dag/models"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const maxChecksumFileSize = 1 << 20

// ErrNoChecksum is returned when the release has no checksum file covering
// the asset.
var ErrNoChecksum = errors.New("no checksum file found in release")

type MismatchError struct {
	Asset    string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Asset, e.Expected, e.Actual)
}

type Source interface {
	DownloadAssetStream(ctx context.Context, asset models.Asset) (io.ReadCloser, int64, error)
}

type Verifier struct {
	Source Source
	Fs     afero.Fs
}

func NewVerifier(source Source) *Verifier {
	return &Verifier{Source: source, Fs: afero.NewOsFs()}
}

// Verify compares the SHA-256 of the file at path with the digest published
// for asset in release.
func (v *Verifier) Verify(ctx context.Context, release models.Release, asset models.Asset, path string) error {
	sumAsset, ok := Find(release, asset)
	if !ok {
		return ErrNoChecksum
	}
	log.G(ctx).Debugf("Verifying %s with %s", asset.Name, sumAsset.Name)

	stream, _, err := v.Source.DownloadAssetStream(ctx, sumAsset)
	if err != nil {
		return errors.Wrapf(err, "could not download %s", sumAsset.Name)
	}
	defer stream.Close()
	data, err := ioutil.ReadAll(io.LimitReader(stream, maxChecksumFileSize))
	if err != nil {
		return errors.Wrapf(err, "could not read %s", sumAsset.Name)
	}

	expected, err := Extract(data, asset.Name)
	if err != nil {
		return err
	}
	actual, err := v.sum(path)
	if err != nil {
		return err
	}
	if actual != expected {
		return &MismatchError{Asset: asset.Name, Expected: expected, Actual: actual}
	}
	return nil
}

func (v *Verifier) sum(path string) (string, error) {
	f, err := v.Fs.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "could not open %s", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "error while calculating shasum of %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Find returns the asset of release holding the checksum of asset. A
// dedicated "<asset>.sha256" file wins over a combined checksums file.
func Find(release models.Release, asset models.Asset) (models.Asset, bool) {
	candidates := []string{
		asset.Name + ".sha256",
		asset.Name + ".sha256sum",
		asset.Name + ".sha256.txt",
		"checksums.txt",
		"SHA256SUMS",
		"SHA256SUMS.txt",
		"sha256sums.txt",
		fmt.Sprintf("%s_%s_checksums.txt", release.Repository.Name, release.Tag.Version()),
		fmt.Sprintf("%s_%s_checksums.txt", release.Repository.Name, release.Tag),
		release.Repository.Name + "_checksums.txt",
	}
	for _, name := range candidates {
		for _, a := range release.Assets {
			if a.Name == name {
				return a, true
			}
		}
	}
	return models.Asset{}, false
}

// Extract returns the lower case SHA-256 digest for assetName. data is
// either a bare digest or lines of "<digest> <name>".
func Extract(data []byte, assetName string) (string, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("checksum file is empty")
	}
	if isSHA256(text) {
		return strings.ToLower(text), nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !isSHA256(fields[0]) {
			continue
		}
		// sha256sum marks binary mode with a leading '*'
		name := strings.TrimPrefix(fields[len(fields)-1], "*")
		if filepath.Base(name) == assetName {
			return strings.ToLower(fields[0]), nil
		}
	}

	return "", errors.Errorf("checksum for %s not found", assetName)
}

func isSHA256(value string) bool {
	if len(value) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(value)
	return err == nil
}
