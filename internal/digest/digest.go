// Package digest provides the content-addressable hashing and key
// construction primitives used throughout the repository, in the style
// of upspin.io/key/sha256key's "Of"/hex-string idiom.
package digest

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/repodigest/repod/internal/suite"
)

// Size is the number of bytes in a digest.
const Size = sha256.Size

// Digest is a SHA-256 content hash. It is a value type so it can be
// compared and used as a map key directly.
type Digest [Size]byte

// Zero is the zero-valued digest.
var Zero Digest

// Of returns the SHA-256 digest of data.
func Of(data []byte) Digest {
	return sha256.Sum256(data)
}

// Hex returns the lowercase, fixed-width, separator-free hex encoding
// of the digest.
func (d Digest) Hex() string {
	var buf [2 * Size]byte
	hex.Encode(buf[:], d[:])
	return string(buf[:])
}

// String implements fmt.Stringer.
func (d Digest) String() string { return d.Hex() }

// Parse decodes a 64-character lowercase hex string into a Digest.
func Parse(s string) (Digest, error) {
	var d Digest
	if len(s) != 2*Size {
		return d, errBadLength
	}
	n, err := hex.Decode(d[:], []byte(s))
	if err != nil {
		return Digest{}, err
	}
	if n != Size {
		return Digest{}, errBadLength
	}
	return d, nil
}

var errBadLength = errBadLengthError{}

type errBadLengthError struct{}

func (errBadLengthError) Error() string { return "digest: bad hex length" }

// SuiteKeySize is the width of a SuiteKey: one suite-tag byte followed
// by a 32-byte digest.
const SuiteKeySize = 1 + Size

// SuiteKey is the 33-byte (suite-tag ∥ digest) tuple used as the key
// type for all three digest-indexed tables (OK, ER, NO). Two objects
// with identical digest bytes but expected under different suites are
// distinct keys.
type SuiteKey [SuiteKeySize]byte

// MakeSuiteKey builds a SuiteKey from a suite tag and a digest.
func MakeSuiteKey(s suite.Tag, d Digest) SuiteKey {
	var k SuiteKey
	k[0] = byte(s)
	copy(k[1:], d[:])
	return k
}

// Split decomposes a SuiteKey back into its suite tag and digest.
func (k SuiteKey) Split() (suite.Tag, Digest) {
	var d Digest
	copy(d[:], k[1:])
	return suite.Tag(k[0]), d
}

// Digest returns just the digest component of the key.
func (k SuiteKey) Digest() Digest {
	_, d := k.Split()
	return d
}

// Suite returns just the suite-tag component of the key.
func (k SuiteKey) Suite() suite.Tag {
	s, _ := k.Split()
	return s
}
