// Package wtypes holds the Packet/Codec types shared by the wire
// parser facade and its per-suite codec implementations. It is split
// out from package wire itself so the codecs (internal/wire/ccnxtlv,
// internal/wire/ndntlv) can depend on the shared types without the
// facade package depending on them in a cycle.
package wtypes

import (
	"errors"

	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/suite"
)

// ErrUnknownPacketType is returned by a codec when the outer TLV's
// type is not one this codec recognizes.
var ErrUnknownPacketType = errors.New("wire: unknown packet type")

// PacketType distinguishes Interest from Content packets.
type PacketType int

const (
	// Interest requests an object by digest or name.
	Interest PacketType = iota
	// Content is a served, self-describing object.
	Content
)

// Packet is the parsed form of one wire frame.
type Packet struct {
	Type   PacketType
	Suite  suite.Tag
	Name   []byte         // optional; nil if the packet carries no name
	Digest *digest.Digest // optional digest restriction (Interest) or computed digest (Content)
	Raw    []byte         // the exact byte span consumed, for verbatim forwarding
}

// HasName reports whether the packet carries a name.
func (p Packet) HasName() bool { return p.Name != nil }

// HasDigestRestriction reports whether the packet names a digest.
func (p Packet) HasDigestRestriction() bool { return p.Digest != nil }

// Codec is the per-suite sniff/parse interface the core consumes. It
// has no serialize method: replies are the stored packet bytes, sent
// verbatim.
// The TLV codec implementations themselves are external collaborators
// per spec §1; Codec is the seam between them and the core.
type Codec interface {
	// Sniff reports whether buf[offset:] looks like this codec's
	// encoding, by inspecting the leading discriminator bytes only.
	Sniff(buf []byte, offset int) bool
	// Parse decodes one frame starting at offset and returns the
	// parsed Packet along with the offset just past the consumed
	// frame (so multiple concatenated packets can be iterated).
	Parse(buf []byte, offset int) (Packet, int, error)
}
