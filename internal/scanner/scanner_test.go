package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repodigest/repod/internal/digest"
	"github.com/repodigest/repod/internal/importer"
	"github.com/repodigest/repod/internal/index"
	"github.com/repodigest/repod/internal/layout"
	"github.com/repodigest/repod/internal/resolve"
	"github.com/repodigest/repod/internal/suite"
	"github.com/repodigest/repod/internal/wire/ccnxtlv"
	"github.com/repodigest/repod/internal/wire/tlv"
)

func contentBytes(name []byte) []byte {
	var body []byte
	if name != nil {
		body = tlv.Append(body, ccnxtlv.TypeName, name)
	}
	return tlv.Append(nil, ccnxtlv.TypeContent, body)
}

func TestScanIndexModePopulatesOK(t *testing.T) {
	root := t.TempDir()
	data := contentBytes(nil)
	d := digest.Of(data)
	require.NoError(t, layout.EnsureFanoutDir(root, d))
	require.NoError(t, layout.WriteNew(layout.DigestToPath(root, d), data))

	tables := index.New()
	res, err := Scan(root, tables, resolve.IndexMode)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Loaded)

	k := digest.MakeSuiteKey(suite.CCNxTLV, d)
	assert.True(t, tables.OKContains(k))
}

func TestScanIndexModeIgnoresWrongPath(t *testing.T) {
	root := t.TempDir()
	data := contentBytes(nil)
	d := digest.Of(data)
	badDir := filepath.Join(root, "ff")
	require.NoError(t, os.MkdirAll(badDir, 0o755))
	require.NoError(t, layout.WriteNew(filepath.Join(badDir, d.Hex()[2:]), data))

	tables := index.New()
	res, err := Scan(root, tables, resolve.IndexMode)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Loaded)
	assert.Equal(t, 1, res.Ignored)
}

func TestScanIsIdempotent(t *testing.T) {
	root := t.TempDir()
	data := contentBytes([]byte("/x"))
	d := digest.Of(data)
	require.NoError(t, layout.EnsureFanoutDir(root, d))
	require.NoError(t, layout.WriteNew(layout.DigestToPath(root, d), data))

	tables := index.New()
	_, err := Scan(root, tables, resolve.IndexMode)
	require.NoError(t, err)
	okBefore, nmBefore := tables.OKLen(), tables.NMLen()

	_, err = Scan(root, tables, resolve.IndexMode)
	require.NoError(t, err)
	assert.Equal(t, okBefore, tables.OKLen())
	assert.Equal(t, nmBefore, tables.NMLen())
}

func TestScanFileModeFollowsSymlinks(t *testing.T) {
	src := t.TempDir()
	root := t.TempDir()
	data := contentBytes([]byte("/named"))
	require.NoError(t, os.WriteFile(filepath.Join(src, "o.bin"), data, 0o644))

	tables := index.New()
	_, err := importer.Import(src, root, tables)
	require.NoError(t, err)

	fresh := index.New()
	res, err := Scan(root, fresh, resolve.FileMode)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Loaded)

	d := digest.Of(data)
	k := digest.MakeSuiteKey(suite.CCNxTLV, d)
	assert.True(t, fresh.OKContains(k))
	nk := index.MakeNameKey(suite.CCNxTLV, []byte("/named"))
	got, ok := fresh.NMLookup(nk)
	require.True(t, ok)
	assert.Equal(t, k, got)
}
