// Package ccnxtlv implements the minimal CCNx-TLV codec described in
// SPEC_FULL.md §4.4, grounded on original_source/src/ccn-lite-repo256.c's
// suite-discriminator constants for the CCNx dialect.
package ccnxtlv

import (
	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/suite"
	"github.com/repodigest/repod/internal/wire/tlv"
	"github.com/repodigest/repod/internal/wire/wtypes"
)

// Top-level and nested TLV types for the reduced CCNx-TLV grammar.
const (
	TypeInterest       byte = 0x01
	TypeContent        byte = 0x02
	TypeName           byte = 0x00
	TypeExactDigest    byte = 0x02 // nested inside Interest only
)

// Codec implements wire.Codec for CCNx-TLV.
type Codec struct{}

// Sniff reports whether buf[offset] names a CCNx-TLV top-level type.
func (Codec) Sniff(buf []byte, offset int) bool {
	if offset >= len(buf) {
		return false
	}
	switch buf[offset] {
	case TypeInterest, TypeContent:
		return true
	}
	return false
}

// Parse decodes one CCNx-TLV frame at offset.
func (Codec) Parse(buf []byte, offset int) (wtypes.Packet, int, error) {
	outer, err := tlv.Read(buf, offset)
	if err != nil {
		return wtypes.Packet{}, offset, err
	}

	p := wtypes.Packet{Suite: suite.CCNxTLV, Raw: buf[outer.Start:outer.End]}

	switch outer.Type {
	case TypeInterest:
		p.Type = wtypes.Interest
		if name, ok := tlv.ReadNested(outer.Value, TypeName); ok {
			p.Name = name
		}
		if dv, ok := tlv.ReadNested(outer.Value, TypeExactDigest); ok && len(dv) == digest.Size {
			var d digest.Digest
			copy(d[:], dv)
			p.Digest = &d
		}
	case TypeContent:
		p.Type = wtypes.Content
		if name, ok := tlv.ReadNested(outer.Value, TypeName); ok {
			p.Name = name
		}
		d := digest.Of(p.Raw)
		p.Digest = &d
	default:
		return wtypes.Packet{}, offset, wtypes.ErrUnknownPacketType
	}
	return p, outer.End, nil
}
