// Package importer implements the one-shot ingestion mode described in
// SPEC_FULL.md §4.6: it scans a source directory, parses each file,
// computes its digest, writes it to the canonical digest-addressed
// path, and maintains name-indexed symlinks. Grounded on
// cmd/storeserver/file.go's read-whole-file idiom and on
// original_source/src/ccn-lite-repo256.c's repo importer (first-writer-
// wins name claims, skip-not-fail on bad input).
package importer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/index"
	"github.com/repodigest/repod/internal/layout"
	"github.com/repodigest/repod/internal/repolog"
	"github.com/repodigest/repod/internal/wire"
)

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
	Existing int
}

// Import walks srcDir recursively (skipping dot-prefixed directories),
// parsing each regular file or symlink under any supported suite and
// ingesting it into root. Files that fail to parse are skipped with a
// debug message; the run as a whole never fails because of them.
//
// File reads are dispatched onto a bounded worker pool via
// golang.org/x/sync/errgroup so a large import tree isn't gated on
// single-file I/O latency; the Tables mutation for each file still
// happens back on the calling goroutine to preserve the single-writer
// invariant (spec §5).
func Import(srcDir, root string, tables *index.Tables) (Result, error) {
	if err := layout.EnsureNameDir(root); err != nil {
		return Result{}, err
	}

	type parsed struct {
		path string
		data []byte
		pkt  wire.Packet
		d    digest.Digest
		ok   bool
	}

	var paths []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() != filepath.Base(srcDir) && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	results := make([]parsed, len(paths))
	g := new(errgroup.Group)
	g.SetLimit(8)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			data, err := os.ReadFile(p)
			if err != nil {
				repolog.Debug.Printf("importer: skip %s: %v", p, err)
				return nil
			}
			pkt, _, err := wire.Parse(data, 0)
			if err != nil {
				repolog.Debug.Printf("importer: skip %s: parse failure: %v", p, err)
				return nil
			}
			d := digest.Of(data)
			results[i] = parsed{path: p, data: data, pkt: pkt, d: d, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var res Result
	for _, pr := range results {
		if !pr.ok {
			res.Skipped++
			continue
		}
		wrote, err := writeOne(root, tables, pr.path, pr.data, pr.pkt, pr.d)
		if err != nil {
			repolog.Debug.Printf("importer: skip %s: %v", pr.path, err)
			res.Skipped++
			continue
		}
		if wrote {
			res.Imported++
		} else {
			res.Existing++
		}
	}
	return res, nil
}

func writeOne(root string, tables *index.Tables, srcPath string, data []byte, pkt wire.Packet, d digest.Digest) (bool, error) {
	objPath := layout.DigestToPath(root, d)
	wrote := false
	if _, err := layout.Stat(objPath); err != nil {
		if err := layout.EnsureFanoutDir(root, d); err != nil {
			return false, err
		}
		if err := layout.WriteNew(objPath, data); err != nil {
			return false, err
		}
		wrote = true
	}

	k := digest.MakeSuiteKey(pkt.Suite, d)
	tables.OKInsert(k)

	if pkt.HasName() {
		linkPath := layout.NamePath(root, d)
		rel := filepath.Join("..", d.Hex()[:2], d.Hex()[2:])
		if _, err := os.Lstat(linkPath); os.IsNotExist(err) {
			if err := os.Symlink(rel, linkPath); err != nil {
				return wrote, err
			}
		}
		nk := index.MakeNameKey(pkt.Suite, pkt.Name)
		if !tables.NMInsertIfAbsent(nk, k) {
			if existing, _ := tables.NMLookup(nk); existing != k {
				repolog.Info.Printf("importer: name already claimed, ignoring %s from %s", pkt.Name, srcPath)
			}
		}
	}
	return wrote, nil
}
