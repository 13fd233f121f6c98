package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/reposerrors"
	"github.com/repodigest/repod/internal/suite"
	"github.com/repodigest/repod/internal/wire/ccnxtlv"
	"github.com/repodigest/repod/internal/wire/ndntlv"
	"github.com/repodigest/repod/internal/wire/tlv"
)

func buildCCNxInterestByDigest(d digest.Digest) []byte {
	body := tlv.Append(nil, ccnxtlv.TypeExactDigest, d[:])
	return tlv.Append(nil, ccnxtlv.TypeInterest, body)
}

func buildNDNInterestByName(name []byte) []byte {
	body := tlv.Append(nil, ndntlv.TypeName, name)
	return tlv.Append(nil, ndntlv.TypeInterest, body)
}

func TestParseSniffsCCNx(t *testing.T) {
	d := digest.Of([]byte("x"))
	buf := buildCCNxInterestByDigest(d)

	p, next, err := Parse(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(buf), next)
	assert.Equal(t, suite.CCNxTLV, p.Suite)
	require.True(t, p.HasDigestRestriction())
	assert.Equal(t, d, *p.Digest)
}

func TestParseSniffsNDN(t *testing.T) {
	buf := buildNDNInterestByName([]byte("/a/b"))

	p, _, err := Parse(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, suite.NDNTLV, p.Suite)
	assert.Equal(t, []byte("/a/b"), p.Name)
}

func TestParseEncodingSwitchPrefix(t *testing.T) {
	inner := buildNDNInterestByName([]byte("/a/b"))
	buf := append([]byte{suite.SwitchByte, byte(suite.NDNTLV)}, inner...)

	p, next, err := Parse(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(buf), next)
	assert.Equal(t, suite.NDNTLV, p.Suite)
}

func TestParseConcatenatedPackets(t *testing.T) {
	d1 := digest.Of([]byte("one"))
	d2 := digest.Of([]byte("two"))
	buf := append(buildCCNxInterestByDigest(d1), buildCCNxInterestByDigest(d2)...)

	p1, off, err := Parse(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, d1, *p1.Digest)

	p2, off2, err := Parse(buf, off)
	require.NoError(t, err)
	assert.Equal(t, d2, *p2.Digest)
	assert.Equal(t, len(buf), off2)
}

func TestParseUnknownSuite(t *testing.T) {
	buf := []byte{0xFF, 0x00, 0x00}
	_, _, err := Parse(buf, 0)
	require.Error(t, err)
	assert.True(t, reposerrors.Is(reposerrors.UnknownSuite, err))
}

func TestParseEmptyDatagram(t *testing.T) {
	_, _, err := Parse(nil, 0)
	require.Error(t, err)
}
