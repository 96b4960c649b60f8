package dom

import (
	"encoding/binary"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/ggdom/arena"
)

// Type tags written ahead of each node type's payload.
const (
	hashDiv byte = iota + 1
	hashLabel
	hashText
	hashImage
	hashTexture
)

// Hash returns the structural digest of the node: its type and content
// handle, id, ordered classes and ordered event bindings. Callbacks take
// part through their code address. Style is not part of the digest, and
// neither is the hit-test tag.
func (n *NodeData) Hash() uint64 {
	h := xxhash.New()
	var buf [9]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:8], v)
		_, _ = h.Write(buf[:8])
	}
	writeStr := func(s string) {
		writeU64(uint64(len(s)))
		_, _ = h.WriteString(s)
	}

	switch t := n.Type.(type) {
	case Div, nil:
		_, _ = h.Write([]byte{hashDiv})
	case Label:
		_, _ = h.Write([]byte{hashLabel})
		writeStr(t.Text)
	case Text:
		_, _ = h.Write([]byte{hashText})
		writeU64(uint64(t.ID))
	case Image:
		_, _ = h.Write([]byte{hashImage})
		writeU64(uint64(t.ID))
	case Texture:
		_, _ = h.Write([]byte{hashTexture})
		writeU64(t.ID)
	default:
		panic("dom: unknown node type in Hash")
	}

	if n.ID == "" {
		_, _ = h.Write([]byte{0})
	} else {
		_, _ = h.Write([]byte{1})
		writeStr(n.ID)
	}

	writeU64(uint64(len(n.Classes)))
	for _, c := range n.Classes {
		writeStr(c)
	}

	writeU64(uint64(len(n.Events)))
	for _, b := range n.Events {
		buf[8] = byte(b.On)
		_, _ = h.Write(buf[8:9])
		writeU64(callbackIdentity(b.Callback))
	}

	return h.Sum64()
}

// Hashes returns an arena with the same topology as d holding the
// structural digest of every node.
func (d *Dom) Hashes() *arena.Arena[uint64] {
	return arena.Transform(d.arena, func(n *NodeData, _ arena.NodeID) uint64 {
		return n.Hash()
	})
}

// callbackIdentity returns the code address of cb, or zero for nil.
func callbackIdentity(cb Callback) uint64 {
	if cb == nil {
		return 0
	}
	return uint64(reflect.ValueOf(cb).Pointer())
}
