// Package dom builds the document tree an application hands to the window
// every frame.
//
// A Dom is an arena of NodeData plus two positions: the root (always the
// first node) and the head, the node that attribute setters modify and
// that AddChild and AddSibling attach to. Independently built trees are
// composed by merging their arenas:
//
//	tree := dom.New(dom.Div{}).WithClass("window").
//		WithChild(dom.New(dom.Label{Text: "Hello"})).
//		WithChild(dom.New(dom.Label{Text: "World"}).WithID("second"))
//
// Merging costs O(size of the attached tree): the receiving arena is never
// walked. The attached tree is drained and must not be reused.
package dom

import (
	"iter"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggdom/arena"
)

// Dom is a tree of UI nodes under construction.
type Dom struct {
	arena *arena.Arena[NodeData]
	root  arena.NodeID
	head  arena.NodeID
}

// New creates a tree with a single root node of the given type.
func New(t NodeType) *Dom {
	a := arena.New[NodeData]()
	root := a.Allocate(NewNodeData(t))
	return &Dom{arena: a, root: root, head: root}
}

// Empty creates a tree with no nodes.
func Empty() *Dom {
	return &Dom{arena: arena.New[NodeData](), root: arena.None, head: arena.None}
}

// Container creates a div node holding each of children in order.
func Container(children ...*Dom) *Dom {
	d := New(Div{})
	for _, c := range children {
		d.AddChild(c)
	}
	return d
}

// FromNodes creates a tree whose top level is the sibling chain of nodes
// in iteration order. The first node becomes root and head.
func FromNodes(nodes iter.Seq[NodeData]) *Dom {
	d := Empty()
	prev := arena.None
	for n := range nodes {
		id := d.arena.Allocate(n)
		if prev != arena.None {
			d.arena.Node(prev).NextSibling = id
			d.arena.Node(id).PrevSibling = prev
		}
		prev = id
	}
	if d.arena.Len() > 0 {
		d.root = 0
		d.head = 0
	}
	return d
}

// FromTypes creates a sibling chain with one node per type.
func FromTypes(types iter.Seq[NodeType]) *Dom {
	return FromNodes(func(yield func(NodeData) bool) {
		for t := range types {
			if !yield(NewNodeData(t)) {
				return
			}
		}
	})
}

// FromDoms creates a tree whose top level is the top-level nodes of each
// of trees in iteration order. Each tree is drained. The first node
// becomes root and head.
func FromDoms(trees iter.Seq[*Dom]) *Dom {
	d := Empty()
	for t := range trees {
		if t.IsEmpty() {
			continue
		}
		d.AddSibling(t)
		for next := d.arena.NextSibling(d.head); next != arena.None; next = d.arena.NextSibling(next) {
			d.head = next
		}
	}
	d.head = d.root
	return d
}

// NewTexture wraps an externally rendered texture in a node type with a
// fresh id from s.
func NewTexture(s *Session, handle gpucontext.Texture, width, height uint32) Texture {
	return Texture{ID: s.NextTextureID(), Width: width, Height: height, Handle: handle}
}

// Arena returns the node storage.
func (d *Dom) Arena() *arena.Arena[NodeData] { return d.arena }

// Root returns the first top-level node, or arena.None for an empty tree.
func (d *Dom) Root() arena.NodeID { return d.root }

// Head returns the current insertion point.
func (d *Dom) Head() arena.NodeID { return d.head }

// Len returns the number of nodes.
func (d *Dom) Len() int { return d.arena.Len() }

// IsEmpty reports whether the tree has no nodes.
func (d *Dom) IsEmpty() bool { return d.arena.Len() == 0 }

// Node returns the data of node id.
func (d *Dom) Node(id arena.NodeID) *NodeData { return d.arena.Data(id) }

// Clone returns a deep copy of the tree.
func (d *Dom) Clone() *Dom {
	a := arena.Transform(d.arena, func(n *NodeData, _ arena.NodeID) NodeData { return n.clone() })
	return &Dom{arena: a, root: d.root, head: d.head}
}

// AddChild attaches child's top-level nodes after the last existing child
// of the head. child is drained.
func (d *Dom) AddChild(child *Dom) {
	if child == d {
		panic("dom: cannot attach a tree to itself")
	}
	selfLen := d.arena.Len()
	childLen := child.arena.Len()
	if childLen == 0 {
		return
	}
	if selfLen == 0 {
		d.take(child)
		return
	}

	head := d.head
	prevLast := d.arena.LastChild(head)
	lastRoot := arena.None

	for i := range childLen {
		n := child.arena.Node(arena.NodeID(i))
		topLevel := n.Parent == arena.None

		if n.PrevSibling != arena.None {
			n.PrevSibling += arena.NodeID(selfLen)
		} else if topLevel {
			n.PrevSibling = prevLast
		}

		if topLevel {
			n.Parent = head
			if n.NextSibling == arena.None {
				lastRoot = arena.NodeID(i + selfLen)
			}
		} else {
			n.Parent += arena.NodeID(selfLen)
		}

		n.NextSibling = n.NextSibling.Add(selfLen)
		n.FirstChild = n.FirstChild.Add(selfLen)
		n.LastChild = n.LastChild.Add(selfLen)
	}

	firstRoot := child.root.Add(selfLen)
	if prevLast != arena.None {
		d.arena.Node(prevLast).NextSibling = firstRoot
	}
	h := d.arena.Node(head)
	if h.FirstChild == arena.None {
		h.FirstChild = firstRoot
	}
	h.LastChild = lastRoot

	d.arena.Append(child.arena)
	child.reset()
}

// AddSibling attaches other's top-level nodes directly after the head,
// under the head's parent, and moves the head to other's root. other is
// drained.
func (d *Dom) AddSibling(other *Dom) {
	if other == d {
		panic("dom: cannot attach a tree to itself")
	}
	selfLen := d.arena.Len()
	otherLen := other.arena.Len()
	if otherLen == 0 {
		return
	}
	if selfLen == 0 {
		d.take(other)
		return
	}

	head := d.head
	parent := d.arena.Parent(head)
	oldNext := d.arena.NextSibling(head)
	lastRoot := arena.None

	for i := range otherLen {
		n := other.arena.Node(arena.NodeID(i))
		topLevel := n.Parent == arena.None

		if topLevel {
			n.Parent = parent
		} else {
			n.Parent += arena.NodeID(selfLen)
		}

		if n.PrevSibling != arena.None {
			n.PrevSibling += arena.NodeID(selfLen)
		} else if topLevel {
			n.PrevSibling = head
		}

		if n.NextSibling != arena.None {
			n.NextSibling += arena.NodeID(selfLen)
		} else if topLevel {
			n.NextSibling = oldNext
			lastRoot = arena.NodeID(i + selfLen)
		}

		n.FirstChild = n.FirstChild.Add(selfLen)
		n.LastChild = n.LastChild.Add(selfLen)
	}

	firstRoot := other.root.Add(selfLen)
	d.arena.Node(head).NextSibling = firstRoot
	switch {
	case oldNext != arena.None:
		d.arena.Node(oldNext).PrevSibling = lastRoot
	case parent != arena.None:
		d.arena.Node(parent).LastChild = lastRoot
	}
	d.head = firstRoot

	d.arena.Append(other.arena)
	other.reset()
}

// WithChild is AddChild for method chaining.
func (d *Dom) WithChild(child *Dom) *Dom {
	d.AddChild(child)
	return d
}

// WithSibling is AddSibling for method chaining.
func (d *Dom) WithSibling(other *Dom) *Dom {
	d.AddSibling(other)
	return d
}

// SetID sets the #id of the head node.
func (d *Dom) SetID(id string) {
	d.arena.Data(d.head).ID = id
}

// SetClass appends class to the head node's class list.
func (d *Dom) SetClass(class string) {
	n := d.arena.Data(d.head)
	n.Classes = append(n.Classes, class)
}

// SetCallback binds cb to on for the head node. The first binding gives
// the node a hit-test tag from s; later bindings keep it.
func (d *Dom) SetCallback(s *Session, on On, cb Callback) {
	n := d.arena.Data(d.head)
	n.bind(on, cb)
	if n.Tag == 0 {
		n.Tag = s.NextTag()
	}
}

// WithID is SetID for method chaining.
func (d *Dom) WithID(id string) *Dom {
	d.SetID(id)
	return d
}

// WithClass is SetClass for method chaining.
func (d *Dom) WithClass(class string) *Dom {
	d.SetClass(class)
	return d
}

// WithCallback is SetCallback for method chaining.
func (d *Dom) WithCallback(s *Session, on On, cb Callback) *Dom {
	d.SetCallback(s, on, cb)
	return d
}

// Nodes yields every node in document order.
func (d *Dom) Nodes() iter.Seq[arena.NodeID] {
	return d.arena.Document(d.root)
}

func (d *Dom) take(other *Dom) {
	*d = *other
	other.reset()
}

func (d *Dom) reset() {
	d.arena = arena.New[NodeData]()
	d.root = arena.None
	d.head = arena.None
}
