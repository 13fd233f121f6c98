// Package transport abstracts the datagram socket plumbing the core
// consumes only through a "named interface that yields (payload,
// peer-address) records" (spec §1): UDP/IPv4, UNIX datagram, and
// optionally Ethernet framing. The individual transports are external
// collaborators per spec §1 scope; this package is the seam.
package transport

import (
	"errors"
	"net"
	"os"
)

// ErrUnsupported is returned by a transport constructor when the
// requested transport cannot be created on the current platform (for
// example, raw Ethernet sockets outside Linux).
var ErrUnsupported = errors.New("transport: unsupported on this platform")

// Interface is one network interface the event loop multiplexes: a
// socket and its address, per spec §4.8. The interface's outbound
// queue is kept by ioloop.Loop, keyed by Index.
type Interface interface {
	// Name identifies the interface for logging and face bookkeeping.
	Name() string
	// Index is a stable small integer used as the face key's
	// interface-index component.
	Index() int
	// ReadFrom blocks until one datagram is available, returning its
	// payload and the peer address string it arrived from.
	ReadFrom() (payload []byte, peerAddr string, err error)
	// WriteTo sends one datagram to the given peer address.
	WriteTo(data []byte, peerAddr string) error
	// Close releases the underlying socket.
	Close() error
}

// MaxDatagramSize bounds the per-receive buffer (spec §5: per-face
// buffers are bounded by a fixed per-interface maximum).
const MaxDatagramSize = 65507

// addrString is a small helper transports use to render a net.Addr
// as the peer-address string used in face.ID.
func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}

// removeIfSocket removes path if it exists and is a socket file, so a
// stale listener from a previous run doesn't block re-binding.
func removeIfSocket(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if fi.Mode()&os.ModeSocket != 0 {
		return os.Remove(path)
	}
	return nil
}
