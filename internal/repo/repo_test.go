package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/layout"
	"github.com/repodigest/repod/internal/resolve"
	"github.com/repodigest/repod/internal/suite"
	"github.com/repodigest/repod/internal/wire"
	"github.com/repodigest/repod/internal/wire/ccnxtlv"
	"github.com/repodigest/repod/internal/wire/tlv"
)

func contentBytes() []byte {
	return tlv.Append(nil, ccnxtlv.TypeContent, nil)
}

func TestOpenEmptyRoot(t *testing.T) {
	root := t.TempDir()
	r, res, err := Open(root, resolve.IndexMode)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Loaded)
	assert.Equal(t, 0, r.Tables.OKLen())
}

func TestOpenScansExistingObjects(t *testing.T) {
	root := t.TempDir()
	data := contentBytes()
	d := digest.Of(data)
	require.NoError(t, layout.EnsureFanoutDir(root, d))
	require.NoError(t, layout.WriteNew(layout.DigestToPath(root, d), data))

	r, res, err := Open(root, resolve.IndexMode)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Loaded)

	k := digest.MakeSuiteKey(suite.CCNxTLV, d)
	assert.True(t, r.Tables.OKContains(k))
}

func TestRepositoryImportThenResolve(t *testing.T) {
	root := t.TempDir()
	srcDir := t.TempDir()

	data := contentBytes()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "object.bin"), data, 0o644))

	r, _, err := Open(root, resolve.IndexMode)
	require.NoError(t, err)

	res, err := r.Import(srcDir)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	d := digest.Of(data)
	k := digest.MakeSuiteKey(suite.CCNxTLV, d)
	assert.True(t, r.Tables.OKContains(k))

	resolver := r.Resolver()
	assert.NotNil(t, resolver)

	got, ok := resolver.Resolve(wire.Packet{Suite: suite.CCNxTLV, Type: wire.Interest, Digest: &d})
	require.True(t, ok)
	assert.Equal(t, data, got)
}
