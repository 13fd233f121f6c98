// Package layout translates digests to on-disk paths, in the style of
// upspin.io/cloud/storage/disk's fan-out "path()" helper, generalized
// to the two-level, 62-trailing-hex-char scheme the repository's
// content-addressed layout requires (see original_source's repo-mode
// path scheme: <root>/<XX>/<YY...>).
package layout

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/reposerrors"
)

// NameDir is the fan-out directory holding name-indexed symlinks,
// keyed purely by hex digest (spec §9: symlink semantics collide
// across suites sharing a digest; accepted as a known edge case).
const NameDir = "zz"

// DigestToPath returns root/XX/YYYY... where XX is the hex of the
// digest's first byte and YYYY... is the hex of the remaining 31
// bytes: 62 trailing hex characters in total.
func DigestToPath(root string, d digest.Digest) string {
	hexAll := d.Hex()
	return filepath.Join(root, hexAll[:2], hexAll[2:])
}

// NamePath returns the path of the name-index symlink for d.
func NamePath(root string, d digest.Digest) string {
	return filepath.Join(root, NameDir, d.Hex())
}

// FanoutDir returns the fan-out directory (root/XX) that would hold d's
// canonical object file.
func FanoutDir(root string, d digest.Digest) string {
	return filepath.Join(root, d.Hex()[:2])
}

// EnsureFanoutDir creates root/XX if absent. It is idempotent and
// fails only on errors other than "already exists".
func EnsureFanoutDir(root string, d digest.Digest) error {
	const op = reposerrors.Op("layout.EnsureFanoutDir")
	dir := FanoutDir(root, d)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return reposerrors.E(op, reposerrors.IO, err)
	}
	return nil
}

// EnsureNameDir creates root/zz if absent.
func EnsureNameDir(root string) error {
	const op = reposerrors.Op("layout.EnsureNameDir")
	if err := os.MkdirAll(filepath.Join(root, NameDir), 0o755); err != nil {
		return reposerrors.E(op, reposerrors.IO, err)
	}
	return nil
}

// ReadWhole returns the full contents of path.
func ReadWhole(path string) ([]byte, error) {
	const op = reposerrors.Op("layout.ReadWhole")
	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, reposerrors.E(op, reposerrors.NotExist, err)
	} else if err != nil {
		return nil, reposerrors.E(op, reposerrors.IO, err)
	}
	return b, nil
}

// WriteNew creates path, truncating any prior contents. Used only by
// the importer.
func WriteNew(path string, data []byte) error {
	const op = reposerrors.Op("layout.WriteNew")
	if err := ioutil.WriteFile(path, data, 0o644); err != nil {
		return reposerrors.E(op, reposerrors.IO, err)
	}
	return nil
}

// Stat reports whether path exists, without reading its contents.
func Stat(path string) (os.FileInfo, error) {
	const op = reposerrors.Op("layout.Stat")
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, reposerrors.E(op, reposerrors.NotExist, err)
	} else if err != nil {
		return nil, reposerrors.E(op, reposerrors.IO, err)
	}
	return fi, nil
}
