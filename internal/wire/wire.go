// Package wire implements the parser facade described in SPEC_FULL.md
// §4.4: it dispatches raw datagram bytes to the correct suite codec
// and returns a parsed Packet, advancing the caller's offset past the
// consumed frame so a single datagram carrying multiple concatenated
// packets can be iterated (SPEC_FULL.md §4.8, spec §8 scenario 6).
package wire

import (
	"github.com/repodigest/repod/internal/reposerrors"
	"github.com/repodigest/repod/internal/suite"
	"github.com/repodigest/repod/internal/wire/ccnxtlv"
	"github.com/repodigest/repod/internal/wire/ndntlv"
	"github.com/repodigest/repod/internal/wire/wtypes"
)

// Re-exported so callers only need to import package wire.
type (
	Packet     = wtypes.Packet
	PacketType = wtypes.PacketType
	Codec      = wtypes.Codec
)

const (
	Interest = wtypes.Interest
	Content  = wtypes.Content
)

var codecs = map[suite.Tag]Codec{
	suite.CCNxTLV: ccnxtlv.Codec{},
	suite.NDNTLV:  ndntlv.Codec{},
}

// sniffOrder is fixed so suite sniffing is deterministic when a
// datagram's first byte happens to collide across suites.
var sniffOrder = []suite.Tag{suite.CCNxTLV, suite.NDNTLV}

// Parse implements the §4.4 algorithm: consume an optional
// encoding-switch prefix, else sniff; fail with UnknownSuite if no
// suite matches; otherwise invoke that suite's codec and return the
// offset just past the consumed frame.
func Parse(buf []byte, offset int) (Packet, int, error) {
	const op = reposerrors.Op("wire.Parse")

	s, offset, err := detectSuite(buf, offset)
	if err != nil {
		return Packet{}, offset, err
	}

	codec, ok := codecs[s]
	if !ok {
		return Packet{}, offset, reposerrors.E(op, reposerrors.UnknownSuite)
	}
	p, next, err := codec.Parse(buf, offset)
	if err != nil {
		return Packet{}, offset, reposerrors.E(op, reposerrors.ParseFailure, err)
	}
	return p, next, nil
}

// detectSuite implements §4.4 steps 1-3: explicit encoding-switch
// framing takes priority over sniffing.
func detectSuite(buf []byte, offset int) (suite.Tag, int, error) {
	const op = reposerrors.Op("wire.detectSuite")

	if offset < len(buf) && buf[offset] == suite.SwitchByte {
		if offset+1 >= len(buf) {
			return suite.Unknown, offset, reposerrors.E(op, reposerrors.ParseFailure,
				reposerrors.Str("truncated encoding-switch frame"))
		}
		tag := suite.Tag(buf[offset+1])
		if !tag.Valid() {
			return suite.Unknown, offset, reposerrors.E(op, reposerrors.UnknownSuite)
		}
		return tag, offset + 2, nil
	}

	for _, tag := range sniffOrder {
		if codecs[tag].Sniff(buf, offset) {
			return tag, offset, nil
		}
	}
	return suite.Unknown, offset, reposerrors.E(op, reposerrors.UnknownSuite)
}
