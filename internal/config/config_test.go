package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	f, err := Parse([]string{"/var/lib/repod"})
	require.NoError(t, err)
	assert.Equal(t, 7777, f.UDPPort)
	assert.Equal(t, ModeIndex, f.Mode)
	assert.Equal(t, "/var/lib/repod", f.Root)
	assert.Equal(t, "", f.ImportDir)
}

func TestParseOverrides(t *testing.T) {
	f, err := Parse([]string{
		"-u", "9000",
		"-x", "/run/repod.sock",
		"-e", "eth0",
		"-m", "file",
		"-i", "/tmp/import",
		"-v", "debug",
		"/srv/repo",
	})
	require.NoError(t, err)
	assert.Equal(t, 9000, f.UDPPort)
	assert.Equal(t, "/run/repod.sock", f.UnixgramPath)
	assert.Equal(t, "eth0", f.EthDevice)
	assert.Equal(t, ModeFile, f.Mode)
	assert.Equal(t, "/tmp/import", f.ImportDir)
	assert.Equal(t, "debug", f.LogLevel)
	assert.Equal(t, "/srv/repo", f.Root)
}

func TestParseRejectsUnknownMode(t *testing.T) {
	_, err := Parse([]string{"-m", "bogus", "/var/lib/repod"})
	assert.Error(t, err)
}

func TestParseRequiresExactlyOneRoot(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)

	_, err = Parse([]string{"/a", "/b"})
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repod.yaml")
	contents := `
mode: file
root: /var/lib/repod
udp:
  - port: 7777
  - port: 7778
unixgram:
  - path: /run/repod.sock
ethernet:
  - device: eth0
    ethertype: 0x8624
`
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ModeFile, f.Mode)
	assert.Equal(t, "/var/lib/repod", f.Root)
	require.Len(t, f.UDP, 2)
	assert.Equal(t, 7777, f.UDP[0].Port)
	assert.Equal(t, 7778, f.UDP[1].Port)
	require.Len(t, f.Unixgram, 1)
	assert.Equal(t, "/run/repod.sock", f.Unixgram[0].Path)
	require.Len(t, f.Ethernet, 1)
	assert.Equal(t, "eth0", f.Ethernet[0].Device)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(os.TempDir(), "does-not-exist-repod.yaml"))
	assert.Error(t, err)
}
