// Repoimport is a standalone one-shot ingest tool: it runs the startup
// scan against an existing repository root, imports a source directory
// into it, and exits, without binding any transport or starting the
// event loop (SPEC_FULL.md's package-layout expansion lists this
// alongside cmd/repod as the two entry points).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/repodigest/repod/internal/repo"
	"github.com/repodigest/repod/internal/repolog"
	"github.com/repodigest/repod/internal/resolve"
)

func main() {
	mode := flag.String("m", "ndx", "operating mode: file|ndx")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-m file|ndx] ROOT SRCDIR\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	root, srcDir := flag.Arg(0), flag.Arg(1)

	var m resolve.Mode
	switch *mode {
	case "file":
		m = resolve.FileMode
	case "ndx":
		m = resolve.IndexMode
	default:
		repolog.Error.Fatalf("repoimport: invalid -m %q, want \"file\" or \"ndx\"", *mode)
	}

	r, scanRes, err := repo.Open(root, m)
	if err != nil {
		repolog.Error.Fatalf("repoimport: opening repository at %q: %v", root, err)
	}
	repolog.Info.Printf("repoimport: scanned %q: %d loaded, %d ignored", root, scanRes.Loaded, scanRes.Ignored)

	res, err := r.Import(srcDir)
	if err != nil {
		repolog.Error.Fatalf("repoimport: import from %q: %v", srcDir, err)
	}
	repolog.Info.Printf("repoimport: imported %q: %d imported, %d existing, %d skipped",
		srcDir, res.Imported, res.Existing, res.Skipped)
}
