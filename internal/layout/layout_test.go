package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repodigest/repod/internal/digest"
)

func TestDigestToPath(t *testing.T) {
	d := digest.Of([]byte("hello, world"))
	p := DigestToPath("/root", d)
	hexAll := d.Hex()
	assert.Equal(t, filepath.Join("/root", hexAll[:2], hexAll[2:]), p)
	assert.Len(t, hexAll, 64)
}

func TestEnsureFanoutDirIdempotent(t *testing.T) {
	root := t.TempDir()
	d := digest.Of([]byte("payload"))

	require.NoError(t, EnsureFanoutDir(root, d))
	require.NoError(t, EnsureFanoutDir(root, d)) // idempotent

	fi, err := os.Stat(FanoutDir(root, d))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestWriteNewThenReadWhole(t *testing.T) {
	root := t.TempDir()
	d := digest.Of([]byte("payload"))
	require.NoError(t, EnsureFanoutDir(root, d))

	path := DigestToPath(root, d)
	require.NoError(t, WriteNew(path, []byte("payload")))

	got, err := ReadWhole(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestReadWholeNotFound(t *testing.T) {
	root := t.TempDir()
	_, err := ReadWhole(filepath.Join(root, "missing"))
	require.Error(t, err)
}
