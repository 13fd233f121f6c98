package face

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableLookupCreatesOnFirstSight(t *testing.T) {
	tbl := NewTable()
	id := ID{InterfaceIndex: 0, PeerAddr: "10.0.0.1:5000"}

	_, known := tbl.Lookup(id)
	assert.False(t, known)
	assert.Equal(t, 1, tbl.Count())

	_, known = tbl.Lookup(id)
	assert.True(t, known)
	assert.Equal(t, 1, tbl.Count())
}

func TestTableDistinguishesInterfaceAndPeer(t *testing.T) {
	tbl := NewTable()
	a := ID{InterfaceIndex: 0, PeerAddr: "10.0.0.1:5000"}
	b := ID{InterfaceIndex: 1, PeerAddr: "10.0.0.1:5000"}
	c := ID{InterfaceIndex: 0, PeerAddr: "10.0.0.2:5000"}

	tbl.Lookup(a)
	tbl.Lookup(b)
	tbl.Lookup(c)
	assert.Equal(t, 3, tbl.Count())
}

func TestIDString(t *testing.T) {
	id := ID{InterfaceIndex: 2, PeerAddr: "peer-1"}
	assert.Equal(t, "if2/peer-1", id.String())
}
