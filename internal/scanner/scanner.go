// Package scanner implements the startup scan (SPEC_FULL.md §4.7): it
// walks the repository root at boot to populate the index tables from
// already-stored files, in index mode validating each file's canonical
// path against its recomputed digest, and in file mode following the
// zz/ name-symlink directory instead.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/index"
	"github.com/repodigest/repod/internal/layout"
	"github.com/repodigest/repod/internal/repolog"
	"github.com/repodigest/repod/internal/resolve"
	"github.com/repodigest/repod/internal/wire"
)

// Result summarizes one scan.
type Result struct {
	Loaded  int
	Ignored int
}

// Scan walks root (index mode) or root/zz (file mode), populating
// tables. It is idempotent: scanning the same root twice yields
// identical index contents (spec §8 Idempotence).
func Scan(root string, tables *index.Tables, mode resolve.Mode) (Result, error) {
	if mode == resolve.FileMode {
		return scanFileMode(root, tables)
	}
	return scanIndexMode(root, tables)
}

func scanIndexMode(root string, tables *index.Tables) (Result, error) {
	var res Result
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if isDotDir(d.Name(), path, root) {
				return filepath.SkipDir
			}
			// The zz/ symlink directory is file-mode-only; index
			// mode treats the raw object path as authoritative and
			// never follows it.
			if path != root && d.Name() == layout.NameDir && filepath.Dir(path) == root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			repolog.Error.Printf("scanner: read %s: %v", path, err)
			res.Ignored++
			return nil
		}
		pkt, _, err := wire.Parse(data, 0)
		if err != nil || !pkt.HasDigestRestriction() {
			repolog.Debug.Printf("scanner: skip %s: not a parseable object", path)
			res.Ignored++
			return nil
		}
		d2 := *pkt.Digest
		if layout.DigestToPath(root, d2) != path {
			repolog.Error.Printf("scanner: %s does not match its canonical path for digest %s, ignoring", path, d2)
			res.Ignored++
			return nil
		}
		load(tables, pkt, d2)
		res.Loaded++
		return nil
	})
	return res, err
}

func scanFileMode(root string, tables *index.Tables) (Result, error) {
	var res Result
	nameDir := filepath.Join(root, layout.NameDir)
	if _, err := os.Stat(nameDir); os.IsNotExist(err) {
		return res, nil
	}
	err := filepath.WalkDir(nameDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if isDotDir(d.Name(), path, nameDir) {
				return filepath.SkipDir
			}
			return nil
		}
		// Symlinks are followed only in file mode.
		data, err := os.ReadFile(path)
		if err != nil {
			repolog.Error.Printf("scanner: read %s: %v", path, err)
			res.Ignored++
			return nil
		}
		pkt, _, err := wire.Parse(data, 0)
		if err != nil || !pkt.HasDigestRestriction() {
			repolog.Debug.Printf("scanner: skip %s: not a parseable object", path)
			res.Ignored++
			return nil
		}
		load(tables, pkt, *pkt.Digest)
		res.Loaded++
		return nil
	})
	return res, err
}

func load(tables *index.Tables, pkt wire.Packet, d digest.Digest) {
	k := digest.MakeSuiteKey(pkt.Suite, d)
	tables.OKInsert(k)
	if pkt.HasName() {
		nk := index.MakeNameKey(pkt.Suite, pkt.Name)
		if !tables.NMInsertIfAbsent(nk, k) {
			repolog.Info.Printf("scanner: name already claimed, ignoring duplicate for digest %s", d)
		}
	}
}

func isDotDir(name, path, base string) bool {
	if path == base {
		return false
	}
	return strings.HasPrefix(name, ".")
}
