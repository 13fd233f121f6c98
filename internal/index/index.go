// Package index implements the four in-memory associative structures
// that map digests and names to on-disk objects: OK, ER, NO, and NM.
// There is no package-level mutable state (spec §9's "global mutable
// tables" re-architecture note): callers own a *Tables value and pass
// it by reference, in the style of a upspin.io-flavored "server value
// owned by its caller" rather than a singleton.
//
// Tables is not safe for concurrent use; the event loop's single
// dispatcher goroutine is its only writer and reader (spec §5).
package index

import (
	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/suite"
)

// NameKey is the canonical key for the name map: a suite tag paired
// with the name's raw wire bytes. Lookup is exact; there is no
// longest-prefix match in this version (spec §9 Open Question).
type NameKey struct {
	Suite suite.Tag
	Name  string // wire-form name bytes, used as a comparable map key
}

// MakeNameKey builds a NameKey from a suite tag and raw name bytes.
func MakeNameKey(s suite.Tag, name []byte) NameKey {
	return NameKey{Suite: s, Name: string(name)}
}

// Tables holds the four index sets described in spec.md §3. The zero
// value is not usable; construct with New.
type Tables struct {
	ok map[digest.SuiteKey]struct{}
	er map[digest.SuiteKey]struct{}
	no map[digest.SuiteKey]struct{}

	// nm maps a NameKey to a *copy* of the OK entry's SuiteKey (spec
	// §9 Open Question: option (a), not a pointer/handle into OK, to
	// avoid raw-pointer aliasing between tables).
	nm map[NameKey]digest.SuiteKey
}

// New returns an empty, ready-to-use Tables value.
func New() *Tables {
	return &Tables{
		ok: make(map[digest.SuiteKey]struct{}),
		er: make(map[digest.SuiteKey]struct{}),
		no: make(map[digest.SuiteKey]struct{}),
		nm: make(map[NameKey]digest.SuiteKey),
	}
}

// OKContains reports whether k is a verified-present digest.
func (t *Tables) OKContains(k digest.SuiteKey) bool {
	_, ok := t.ok[k]
	return ok
}

// OKInsert records k as verified-present. It clears k from ER and NO
// to preserve the disjointness invariant (a key may appear in at most
// one of OK, ER, NO at any instant).
func (t *Tables) OKInsert(k digest.SuiteKey) {
	delete(t.er, k)
	delete(t.no, k)
	t.ok[k] = struct{}{}
}

// ERContains reports whether k names a file that failed verification.
func (t *Tables) ERContains(k digest.SuiteKey) bool {
	_, ok := t.er[k]
	return ok
}

// ERInsert records k as present-but-corrupt. ER and NO are negative
// caches populated only in file mode, lazily, on resolver failures;
// they are never persisted and are lost at restart.
func (t *Tables) ERInsert(k digest.SuiteKey) {
	if t.OKContains(k) {
		return // OK entries are never deleted at runtime (spec §3 lifecycle).
	}
	delete(t.no, k)
	t.er[k] = struct{}{}
}

// NOContains reports whether k names a digest known absent from disk.
func (t *Tables) NOContains(k digest.SuiteKey) bool {
	_, ok := t.no[k]
	return ok
}

// NOInsert records k as known absent from disk.
func (t *Tables) NOInsert(k digest.SuiteKey) {
	if t.OKContains(k) {
		return
	}
	delete(t.er, k)
	t.no[k] = struct{}{}
}

// NMLookup returns the SuiteKey named by n, if any.
func (t *Tables) NMLookup(n NameKey) (digest.SuiteKey, bool) {
	k, ok := t.nm[n]
	return k, ok
}

// NMInsertIfAbsent claims name n for k, first-writer-wins: if n is
// already claimed the call is a no-op and reports false so the caller
// can log the conflict (spec §3 NM lifecycle, §8 boundary behavior).
func (t *Tables) NMInsertIfAbsent(n NameKey, k digest.SuiteKey) bool {
	if _, exists := t.nm[n]; exists {
		return false
	}
	t.nm[n] = k
	return true
}

// OKLen, ERLen, NOLen, NMLen report table sizes, for diagnostics and
// tests only; no iteration order over the tables is exposed elsewhere.
func (t *Tables) OKLen() int { return len(t.ok) }
func (t *Tables) ERLen() int { return len(t.er) }
func (t *Tables) NOLen() int { return len(t.no) }
func (t *Tables) NMLen() int { return len(t.nm) }
