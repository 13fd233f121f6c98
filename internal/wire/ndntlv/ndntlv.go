// Package ndntlv implements the minimal NDN-TLV codec described in
// SPEC_FULL.md §4.4, grounded on the NDN engine file retrieved in
// other_examples (Tankmaster48/ndnd) for the Interest/Data type shape,
// and on original_source/src/ccn-lite-repo256.c for suite sniffing.
package ndntlv

import (
	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/suite"
	"github.com/repodigest/repod/internal/wire/tlv"
	"github.com/repodigest/repod/internal/wire/wtypes"
)

// Top-level and nested TLV types for the reduced NDN-TLV grammar.
const (
	TypeInterest  byte = 0x05
	TypeData      byte = 0x06
	TypeName      byte = 0x07
	TypeHashRestr byte = 0x1E // "MustBeFresh"-analog digest restriction
)

// Codec implements wire.Codec for NDN-TLV.
type Codec struct{}

// Sniff reports whether buf[offset] names an NDN-TLV top-level type.
func (Codec) Sniff(buf []byte, offset int) bool {
	if offset >= len(buf) {
		return false
	}
	switch buf[offset] {
	case TypeInterest, TypeData:
		return true
	}
	return false
}

// Parse decodes one NDN-TLV frame at offset.
func (Codec) Parse(buf []byte, offset int) (wtypes.Packet, int, error) {
	outer, err := tlv.Read(buf, offset)
	if err != nil {
		return wtypes.Packet{}, offset, err
	}

	p := wtypes.Packet{Suite: suite.NDNTLV, Raw: buf[outer.Start:outer.End]}

	switch outer.Type {
	case TypeInterest:
		p.Type = wtypes.Interest
		if name, ok := tlv.ReadNested(outer.Value, TypeName); ok {
			p.Name = name
		}
		if dv, ok := tlv.ReadNested(outer.Value, TypeHashRestr); ok && len(dv) == digest.Size {
			var d digest.Digest
			copy(d[:], dv)
			p.Digest = &d
		}
	case TypeData:
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
