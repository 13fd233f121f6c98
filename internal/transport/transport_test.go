package transport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveIfSocketOnRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-socket")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, removeIfSocket(path))
	_, err := os.Stat(path)
	assert.NoError(t, err, "removeIfSocket must not touch a non-socket file")
}

func TestRemoveIfSocketMissing(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, removeIfSocket(filepath.Join(dir, "missing")))
}

func TestRemoveIfSocketRemovesStaleSocket(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repod.sock")

	u, err := NewUnixgram(0, path)
	require.NoError(t, err)
	require.NoError(t, u.Close())

	// The listener left its socket file behind; a fresh bind at the
	// same path must succeed rather than fail with "address in use".
	u2, err := NewUnixgram(0, path)
	require.NoError(t, err)
	defer u2.Close()
}

func TestNewUDPBindsEphemeralPort(t *testing.T) {
	server, err := NewUDP(0, 0) // port 0: kernel picks a free port
	require.NoError(t, err)
	defer server.Close()
	assert.Equal(t, 0, server.Index())
}

func TestNewEthernetFailsWithoutDevice(t *testing.T) {
	_, err := NewEthernet(0, "", 0)
	assert.Error(t, err)
}
