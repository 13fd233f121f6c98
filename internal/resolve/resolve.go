// Package resolve implements the lookup resolver (SPEC_FULL.md §4.5):
// given a parsed Interest, it resolves a digest through the index
// tables, loads the object bytes, performs mode-dependent
// re-verification, and yields the reply buffer. No error is ever
// returned to the wire — an Interest that cannot be served elicits no
// reply (spec §7); Resolve reports only whether a reply exists, and the
// reason for each drop goes to the debug/error log and the metrics
// counters, never onto the network.
package resolve

import (
	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/index"
	"github.com/repodigest/repod/internal/layout"
	"github.com/repodigest/repod/internal/metrics"
	"github.com/repodigest/repod/internal/repolog"
	"github.com/repodigest/repod/internal/suite"
	"github.com/repodigest/repod/internal/wire"
)

// Mode selects the resolver's trust model, fixed at startup (spec §4.5).
type Mode int

const (
	// IndexMode trusts the startup scan: on the hot path it only reads
	// the indexed object file, with no stat, negative cache or
	// re-verification.
	IndexMode Mode = iota
	// FileMode treats on-disk state as authoritative and
	// re-verifies the object on every hit.
	FileMode
)

// Resolver resolves parsed Interests against a Tables value and a
// repository root, per the two operating modes in spec §4.5.
type Resolver struct {
	Root   string
	Tables *index.Tables
	Mode   Mode
	Stats  *metrics.Counters
}

// New returns a Resolver for the given root, tables, and mode.
func New(root string, tables *index.Tables, mode Mode, stats *metrics.Counters) *Resolver {
	if stats == nil {
		stats = metrics.New()
	}
	return &Resolver{Root: root, Tables: tables, Mode: mode, Stats: stats}
}

// Resolve resolves p and returns the reply bytes, or (nil, false) if
// the Interest should be silently dropped. The drop reason is recorded
// in r.Stats (and, for disk failures, the log).
func (r *Resolver) Resolve(p wire.Packet) ([]byte, bool) {
	r.Stats.Inc(metrics.InterestsTotal)

	d, ok := r.lookupDigest(p)
	if !ok {
		return nil, false
	}

	switch r.Mode {
	case IndexMode:
		return r.resolveIndexMode(p.Suite, d)
	default:
		return r.resolveFileMode(p.Suite, d)
	}
}

// lookupDigest implements §4.5 steps 1-2, common to both modes: a
// digest restriction is taken as is, and a name is looked up in NM.
// The OK check for index mode happens afterwards in resolveIndexMode;
// file mode never consults OK.
func (r *Resolver) lookupDigest(p wire.Packet) (digest.Digest, bool) {
	if p.HasDigestRestriction() {
		return *p.Digest, true
	}
	if p.HasName() {
		nk := index.MakeNameKey(p.Suite, p.Name)
		k, ok := r.Tables.NMLookup(nk)
		if !ok {
			r.Stats.Inc(metrics.DropsNoName)
			return digest.Digest{}, false
		}
		return k.Digest(), true
	}
	r.Stats.Inc(metrics.DropsNoSelector)
	return digest.Digest{}, false
}

func (r *Resolver) resolveIndexMode(s suite.Tag, d digest.Digest) ([]byte, bool) {
	k := digest.MakeSuiteKey(s, d)
	if !r.Tables.OKContains(k) {
		r.Stats.Inc(metrics.DropsNotIndexed)
		return nil, false
	}
	path := layout.DigestToPath(r.Root, d)
	data, err := layout.ReadWhole(path)
	if err != nil {
		// The index is trusted; a read failure here means disk
		// corruption external to this process. Log and drop.
		repolog.Error.Printf("resolve: index-mode read failure for %s: %v", d, err)
		r.Stats.Inc(metrics.DropsDiskError)
		return nil, false
	}
	r.Stats.Inc(metrics.RepliesTotal)
	return data, true
}

func (r *Resolver) resolveFileMode(s suite.Tag, d digest.Digest) ([]byte, bool) {
	k := digest.MakeSuiteKey(s, d)

	if r.Tables.ERContains(k) || r.Tables.NOContains(k) {
		r.Stats.Inc(metrics.DropsNegativeCache)
		return nil, false
	}

	path := layout.DigestToPath(r.Root, d)
	r.Stats.Inc(metrics.DiskReadsTotal)

	if _, err := layout.Stat(path); err != nil {
		r.Tables.NOInsert(k)
		repolog.Debug.Printf("resolve: file-mode miss for %s: %v", d, err)
		r.Stats.Inc(metrics.DropsNotFound)
		return nil, false
	}

	data, err := layout.ReadWhole(path)
	if err != nil {
		r.Tables.ERInsert(k)
		repolog.Debug.Printf("resolve: file-mode open failure for %s: %v", d, err)
		r.Stats.Inc(metrics.DropsDiskError)
		return nil, false
	}

	pkt, _, err := wire.Parse(data, 0)
	if err != nil || !pkt.HasDigestRestriction() {
		r.Tables.ERInsert(k)
		repolog.Debug.Printf("resolve: file-mode reparse failure for %s: %v", d, err)
		r.Stats.Inc(metrics.DropsParseFailure)
		return nil, false
	}
	if *pkt.Digest != d {
		r.Tables.ERInsert(k)
		repolog.Debug.Printf("resolve: digest mismatch for %s", d)
		r.Stats.Inc(metrics.DropsDigestMismatch)
		return nil, false
	}

	r.Stats.Inc(metrics.RepliesTotal)
	return data, true
}
