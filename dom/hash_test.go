package dom

import "testing"

func onClickA(*Event) UpdateScreen { return Redraw }
func onClickB(*Event) UpdateScreen { return DontRedraw }

func baseNode() NodeData {
	n := NewNodeData(Label{Text: "hello"})
	n.ID = "main"
	n.Classes = []string{"a", "b"}
	n.bind(MouseUp, onClickA)
	return n
}

func TestHashDeterministic(t *testing.T) {
	n := baseNode()
	if n.Hash() != n.Hash() {
		t.Error("hashing the same node twice gave different digests")
	}
	m := baseNode()
	if n.Hash() != m.Hash() {
		t.Error("structurally identical nodes should hash equal")
	}
}

func TestHashSensitivity(t *testing.T) {
	baseData := baseNode()
	base := baseData.Hash()

	tests := []struct {
		name   string
		mutate func(n *NodeData)
	}{
		{"class renamed", func(n *NodeData) { n.Classes[1] = "c" }},
		{"class order", func(n *NodeData) { n.Classes = []string{"b", "a"} }},
		{"class added", func(n *NodeData) { n.Classes = append(n.Classes, "c") }},
		{"id changed", func(n *NodeData) { n.ID = "other" }},
		{"id removed", func(n *NodeData) { n.ID = "" }},
		{"event kind added", func(n *NodeData) { n.bind(MouseOver, onClickA) }},
		{"event kind changed", func(n *NodeData) { n.Events = nil; n.bind(MouseDown, onClickA) }},
		{"callback rebound", func(n *NodeData) { n.bind(MouseUp, onClickB) }},
		{"label text", func(n *NodeData) { n.Type = Label{Text: "bye"} }},
		{"node type", func(n *NodeData) { n.Type = Div{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := baseNode()
			tt.mutate(&n)
			if n.Hash() == base {
				t.Error("digest did not change")
			}
		})
	}
}

func TestHashIgnoresTag(t *testing.T) {
	n := baseNode()
	before := n.Hash()
	n.Tag = 99
	if n.Hash() != before {
		t.Error("hit-test tag must not take part in the digest")
	}
}

func TestHashTypeVariants(t *testing.T) {
	seen := map[uint64]NodeType{}
	for _, typ := range []NodeType{Div{}, Label{}, Text{ID: 1}, Image{ID: 1}, Texture{ID: 1}} {
		n := NewNodeData(typ)
		h := n.Hash()
		if prev, dup := seen[h]; dup {
			t.Errorf("%T and %T hash equal", prev, typ)
		}
		seen[h] = typ
	}
}

func TestHashesArena(t *testing.T) {
	d := New(Div{}).WithChild(New(Label{Text: "x"}))
	hashes := d.Hashes()
	if hashes.Len() != 2 {
		t.Fatalf("Len = %d, want 2", hashes.Len())
	}
	if *hashes.Data(1) != d.Node(1).Hash() {
		t.Error("arena digest does not match node digest")
	}
	if hashes.Parent(1) != 0 {
		t.Error("hash arena must keep the tree topology")
	}
}
