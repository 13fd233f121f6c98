package transport

import (
	"fmt"
	"net"
)

// UDP is a transport.Interface bound to a UDP/IPv4 port. Each
// configured UDP entry is its own spec §4.8 "interface" (one socket,
// one static interface index assigned at construction); a single
// socket is never shared across multiple configured interfaces, so
// the face key's interface-index component is this transport's own
// index, not anything read off the wire.
type UDP struct {
	index int
	conn  *net.UDPConn
}

// NewUDP binds a UDP/IPv4 socket on port.
func NewUDP(index, port int) (*UDP, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, err
	}
	return &UDP{index: index, conn: conn}, nil
}

// Name implements transport.Interface.
func (u *UDP) Name() string { return fmt.Sprintf("udp/%s", u.conn.LocalAddr()) }

// Index implements transport.Interface.
func (u *UDP) Index() int { return u.index }

// ReadFrom implements transport.Interface.
func (u *UDP) ReadFrom() ([]byte, string, error) {
	buf := make([]byte, MaxDatagramSize)
	n, peer, err := u.conn.ReadFromUDP(buf)
	if err != nil {
		return nil, "", err
	}
	return buf[:n], addrString(peer), nil
}

// WriteTo implements transport.Interface.
func (u *UDP) WriteTo(data []byte, peerAddr string) error {
	addr, err := net.ResolveUDPAddr("udp4", peerAddr)
	if err != nil {
		return err
	}
	_, err = u.conn.WriteToUDP(data, addr)
	return err
}

// Close implements transport.Interface.
func (u *UDP) Close() error { return u.conn.Close() }
