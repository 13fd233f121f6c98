// Package repo defines the Repository value that owns the index
// tables and is handed by reference to the resolver, importer, and
// scanner (spec §9's "global mutable tables" re-architecture note: no
// package-level globals anywhere in this module).
package repo

import (
	"github.com/repodigest/repod/internal/importer"
	"github.com/repodigest/repod/internal/index"
	"github.com/repodigest/repod/internal/metrics"
	"github.com/repodigest/repod/internal/resolve"
	"github.com/repodigest/repod/internal/scanner"
)

// Repository is the single owner of a root directory's index state.
type Repository struct {
	Root   string
	Mode   resolve.Mode
	Tables *index.Tables
	Stats  *metrics.Counters
}

// Open constructs a Repository and runs the startup scan (spec §4.7)
// to populate its tables from whatever is already on disk under root.
func Open(root string, mode resolve.Mode) (*Repository, scanner.Result, error) {
	r := &Repository{
		Root:   root,
		Mode:   mode,
		Tables: index.New(),
		Stats:  metrics.New(),
	}
	res, err := scanner.Scan(root, r.Tables, mode)
	if err != nil {
		return nil, scanner.Result{}, err
	}
	return r, res, nil
}

// Resolver returns a resolve.Resolver bound to this Repository's
// tables, root, and mode.
func (r *Repository) Resolver() *resolve.Resolver {
	return resolve.New(r.Root, r.Tables, r.Mode, r.Stats)
}

// Import runs the one-shot importer against this Repository (spec
// §4.6), updating its tables in place.
func (r *Repository) Import(srcDir string) (importer.Result, error) {
	return importer.Import(srcDir, r.Root, r.Tables)
}
