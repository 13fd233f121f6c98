//go:build !linux

package transport

import "fmt"

// Ethernet is the non-Linux stub: raw Ethernet framing is not
// available, so NewEthernet always fails with ErrUnsupported and the
// server runs with whatever UDP/unixgram transports were configured
// (SPEC_FULL.md §4.8 expansion).
type Ethernet struct{}

// NewEthernet always returns ErrUnsupported on non-Linux platforms.
func NewEthernet(index int, device string, ethertype uint16) (*Ethernet, error) {
	return nil, fmt.Errorf("transport: ethernet device %q: %w", device, ErrUnsupported)
}

func (e *Ethernet) Name() string { return "eth/unsupported" }
func (e *Ethernet) Index() int   { return -1 }

func (e *Ethernet) ReadFrom() ([]byte, string, error) {
	return nil, "", ErrUnsupported
}

func (e *Ethernet) WriteTo(data []byte, peerAddr string) error { return ErrUnsupported }
func (e *Ethernet) Close() error                               { return nil }
