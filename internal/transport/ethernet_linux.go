//go:build linux

package transport

import "fmt"

// Ethernet is a transport.Interface bound to a raw Ethernet device
// filtered to a single ethertype. Full raw-socket framing (AF_PACKET
// setup, interface binding, the BPF ethertype filter) is the kind of
// per-transport plumbing spec §1 places outside the core; this type
// exists so -e DEV has a named, constructible transport, but it does
// not yet open a real socket. ReadFrom/WriteTo report ErrUnsupported
// until that socket exists, and ioloop.Loop.readLoop treats that error
// as permanent: it logs once and drops the interface rather than
// spinning on it.
type Ethernet struct {
	index     int
	device    string
	ethertype uint16
}

// NewEthernet constructs an Ethernet transport for device, filtering
// to frames carrying ethertype. Opening the actual AF_PACKET socket
// and compiling its BPF ethertype filter is deferred to a future Start
// method, since it requires elevated privileges the rest of this
// package's tests must not assume.
func NewEthernet(index int, device string, ethertype uint16) (*Ethernet, error) {
	if device == "" {
		return nil, fmt.Errorf("transport: ethernet device name required")
	}
	return &Ethernet{index: index, device: device, ethertype: ethertype}, nil
}

// Name implements transport.Interface.
func (e *Ethernet) Name() string { return fmt.Sprintf("eth/%s", e.device) }

// Index implements transport.Interface.
func (e *Ethernet) Index() int { return e.index }

// ReadFrom implements transport.Interface. See the type doc comment:
// no AF_PACKET socket is opened yet, so every call fails the same way.
func (e *Ethernet) ReadFrom() ([]byte, string, error) {
	return nil, "", ErrUnsupported
}

// WriteTo implements transport.Interface.
func (e *Ethernet) WriteTo(data []byte, peerAddr string) error {
	return ErrUnsupported
}

// Close implements transport.Interface.
func (e *Ethernet) Close() error { return nil }
