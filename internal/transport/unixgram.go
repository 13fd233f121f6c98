package transport

import (
	"fmt"
	"net"
)

// Unixgram is a transport.Interface bound to a UNIX datagram socket.
type Unixgram struct {
	index int
	conn  *net.UnixConn
	addr  string
}

// NewUnixgram binds a UNIX datagram socket at path, removing any stale
// socket file left behind by a previous run.
func NewUnixgram(index int, path string) (*Unixgram, error) {
	_ = removeIfSocket(path)
	addr := &net.UnixAddr{Name: path, Net: "unixgram"}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return nil, err
	}
	return &Unixgram{index: index, conn: conn, addr: path}, nil
}

// Name implements transport.Interface.
func (u *Unixgram) Name() string { return fmt.Sprintf("unixgram/%s", u.addr) }

// Index implements transport.Interface.
func (u *Unixgram) Index() int { return u.index }

// ReadFrom implements transport.Interface.
func (u *Unixgram) ReadFrom() ([]byte, string, error) {
	buf := make([]byte, MaxDatagramSize)
	n, peer, err := u.conn.ReadFromUnix(buf)
	if err != nil {
		return nil, "", err
	}
	return buf[:n], addrString(peer), nil
}

// WriteTo implements transport.Interface.
func (u *Unixgram) WriteTo(data []byte, peerAddr string) error {
	if peerAddr == "" {
		// Client dialed without binding a local socket; there is
		// nowhere to reply, so the send is a silent no-op, matching
		// the spec's "dropping is silent at the wire level" stance.
		return nil
	}
	addr := &net.UnixAddr{Name: peerAddr, Net: "unixgram"}
	_, err := u.conn.WriteToUnix(data, addr)
	return err
}

// Close implements transport.Interface.
func (u *Unixgram) Close() error { return u.conn.Close() }
