// Package face implements the server's handle for a remote peer on a
// specific interface (spec glossary: "Face"), keyed by the
// (interface-index, source-address) pair spec.md §4.8 requires.
package face

import (
	"fmt"
)

// ID identifies one face: a specific network interface paired with a
// specific peer address string (the string form of whatever net.Addr
// the transport produced).
type ID struct {
	InterfaceIndex int
	PeerAddr       string
}

func (id ID) String() string {
	return fmt.Sprintf("if%d/%s", id.InterfaceIndex, id.PeerAddr)
}

// Frame is one received datagram, tagged with the face it arrived on.
type Frame struct {
	Face    ID
	Payload []byte
}

// Outbound is a reply queued for transmission to a specific face.
type Outbound struct {
	Face ID
	Data []byte
}

// Table tracks known faces per interface, creating entries on demand
// (spec §4.8 step 3: "look up or create a peer handle (face) for that
// pair"). It is not safe for concurrent use; only the event loop's
// single dispatcher goroutine touches it (spec §5).
type Table struct {
	seen map[ID]struct{}
}

// NewTable returns an empty face Table.
func NewTable() *Table {
	return &Table{seen: make(map[ID]struct{})}
}

// Lookup returns id, creating a bookkeeping entry for it if this is
// the first time it has been seen. The bool result reports whether
// the face was already known.
func (t *Table) Lookup(id ID) (ID, bool) {
	_, known := t.seen[id]
	t.seen[id] = struct{}{}
	return id, known
}

// Count returns the number of distinct faces seen so far.
func (t *Table) Count() int { return len(t.seen) }
