// Package arena provides index-addressed tree storage.
//
// Nodes live in one growable slice and refer to each other through five
// integer links (parent, first child, last child, previous sibling, next
// sibling). An Arena never shrinks: nodes are only appended, and a new
// arena replaces the old one between frames.
//
// Indices are only meaningful for the arena revision they were produced
// against. Code that moves nodes between arenas (see package dom) must
// rewrite every link by the receiving arena's pre-merge length.
//
// Out-of-range lookups are programmer errors and panic.
package arena

import (
	"fmt"
	"iter"
)

// NodeID is the index of a node in its arena.
type NodeID int

// None marks an absent link.
const None NodeID = -1

// IsNone reports whether id is the absent link.
func (id NodeID) IsNone() bool { return id == None }

// Index returns id as a slice index.
func (id NodeID) Index() int { return int(id) }

// Add returns id shifted by offset. None stays None.
func (id NodeID) Add(offset int) NodeID {
	if id == None {
		return None
	}
	return id + NodeID(offset)
}

// String implements fmt.Stringer.
func (id NodeID) String() string {
	if id == None {
		return "None"
	}
	return fmt.Sprintf("#%d", int(id))
}

// Node is one arena slot: the payload plus its tree links.
type Node[T any] struct {
	Parent      NodeID
	FirstChild  NodeID
	LastChild   NodeID
	PrevSibling NodeID
	NextSibling NodeID

	Data T
}

// newNode returns an unlinked node carrying data.
func newNode[T any](data T) Node[T] {
	return Node[T]{
		Parent:      None,
		FirstChild:  None,
		LastChild:   None,
		PrevSibling: None,
		NextSibling: None,
		Data:        data,
	}
}

// Arena stores the nodes of a tree (or a forest of sibling roots).
type Arena[T any] struct {
	nodes []Node[T]
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// WithCapacity creates an empty arena with room for n nodes.
func WithCapacity[T any](n int) *Arena[T] {
	return &Arena[T]{nodes: make([]Node[T], 0, n)}
}

// Len returns the number of nodes.
func (a *Arena[T]) Len() int {
	return len(a.nodes)
}

// IsEmpty reports whether the arena has no nodes.
func (a *Arena[T]) IsEmpty() bool {
	return len(a.nodes) == 0
}

// Allocate appends an unlinked node and returns its id.
func (a *Arena[T]) Allocate(data T) NodeID {
	a.nodes = append(a.nodes, newNode(data))
	return NodeID(len(a.nodes) - 1)
}

// Node returns a pointer to the node with the given id.
// The pointer is invalidated by the next Allocate or Append.
func (a *Arena[T]) Node(id NodeID) *Node[T] {
	a.check(id)
	return &a.nodes[id]
}

// Data returns a pointer to the payload of the node.
func (a *Arena[T]) Data(id NodeID) *T {
	a.check(id)
	return &a.nodes[id].Data
}

// Parent returns the parent link of id.
func (a *Arena[T]) Parent(id NodeID) NodeID {
	a.check(id)
	return a.nodes[id].Parent
}

// FirstChild returns the first-child link of id.
func (a *Arena[T]) FirstChild(id NodeID) NodeID {
	a.check(id)
	return a.nodes[id].FirstChild
}

// LastChild returns the last-child link of id.
func (a *Arena[T]) LastChild(id NodeID) NodeID {
	a.check(id)
	return a.nodes[id].LastChild
}

// PrevSibling returns the previous-sibling link of id.
func (a *Arena[T]) PrevSibling(id NodeID) NodeID {
	a.check(id)
	return a.nodes[id].PrevSibling
}

// NextSibling returns the next-sibling link of id.
func (a *Arena[T]) NextSibling(id NodeID) NodeID {
	a.check(id)
	return a.nodes[id].NextSibling
}

// Append moves every node of other onto the end of a, verbatim.
// Links are not rewritten; the caller must already have shifted them.
// other is left empty.
func (a *Arena[T]) Append(other *Arena[T]) {
	a.nodes = append(a.nodes, other.nodes...)
	other.nodes = nil
}

// Clone returns a copy of the arena. Payloads are copied by value.
func (a *Arena[T]) Clone() *Arena[T] {
	nodes := make([]Node[T], len(a.nodes))
	copy(nodes, a.nodes)
	return &Arena[T]{nodes: nodes}
}

// Children yields the direct children of id in sibling order.
func (a *Arena[T]) Children(id NodeID) iter.Seq[NodeID] {
	a.check(id)
	return func(yield func(NodeID) bool) {
		for c := a.nodes[id].FirstChild; c != None; c = a.nodes[c].NextSibling {
			if !yield(c) {
				return
			}
		}
	}
}

// Ancestors yields the parent of id, its parent, and so on up to a root.
func (a *Arena[T]) Ancestors(id NodeID) iter.Seq[NodeID] {
	a.check(id)
	return func(yield func(NodeID) bool) {
		for p := a.nodes[id].Parent; p != None; p = a.nodes[p].Parent {
			if !yield(p) {
				return
			}
		}
	}
}

// Linear yields every node id in storage order.
func (a *Arena[T]) Linear() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for i := range a.nodes {
			if !yield(NodeID(i)) {
				return
			}
		}
	}
}

// Preorder yields root and all of its descendants depth-first.
// The sequence is finite; ranging over it again restarts from root.
func (a *Arena[T]) Preorder(root NodeID) iter.Seq[NodeID] {
	return a.walk(root, false)
}

// Document yields first, its descendants, then each following sibling of
// first with its descendants, in document order. It is the traversal for
// trees whose top level is a sibling chain rather than a single root.
func (a *Arena[T]) Document(first NodeID) iter.Seq[NodeID] {
	return a.walk(first, true)
}

func (a *Arena[T]) walk(start NodeID, siblings bool) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if start == None || len(a.nodes) == 0 {
			return
		}
		a.check(start)
		boundary := a.nodes[start].Parent
		cur := start
		for {
			if !yield(cur) {
				return
			}
			if fc := a.nodes[cur].FirstChild; fc != None {
				cur = fc
				continue
			}
			for {
				if cur == start && !siblings {
					return
				}
				if ns := a.nodes[cur].NextSibling; ns != None {
					cur = ns
					break
				}
				p := a.nodes[cur].Parent
				if p == boundary {
					return
				}
				cur = p
			}
		}
	}
}

// Transform returns an arena with the same link topology as a, where each
// payload is replaced by fn(data, id). Node i of the result corresponds to
// node i of a.
func Transform[T, U any](a *Arena[T], fn func(data *T, id NodeID) U) *Arena[U] {
	out := make([]Node[U], len(a.nodes))
	for i := range a.nodes {
		src := &a.nodes[i]
		out[i] = Node[U]{
			Parent:      src.Parent,
			FirstChild:  src.FirstChild,
			LastChild:   src.LastChild,
			PrevSibling: src.PrevSibling,
			NextSibling: src.NextSibling,
			Data:        fn(&src.Data, NodeID(i)),
		}
	}
	return &Arena[U]{nodes: out}
}

func (a *Arena[T]) check(id NodeID) {
	if id < 0 || int(id) >= len(a.nodes) {
		panic(fmt.Sprintf("arena: node id %v out of range [0, %d)", id, len(a.nodes)))
	}
}
