package dom

import (
	"reflect"
	"slices"
	"testing"

	"github.com/gogpu/ggdom/arena"
)

func idOf(d *Dom, id arena.NodeID) string {
	return d.Node(id).ID
}

func TestNestedChildren(t *testing.T) {
	d := New(Div{}).
		WithChild(New(Div{}).WithID("sibling-1").
			WithChild(New(Div{}).WithID("sibling-1-child-1"))).
		WithChild(New(Div{}).WithID("sibling-2").
			WithChild(New(Div{}).WithID("sibling-2-child-1")))

	a := d.Arena()
	if d.Root() != 0 {
		t.Fatalf("Root = %v, want #0", d.Root())
	}

	first := a.FirstChild(d.Root())
	if got := idOf(d, first); got != "sibling-1" {
		t.Errorf("root first child = %q, want sibling-1", got)
	}
	second := a.NextSibling(first)
	if got := idOf(d, second); got != "sibling-2" {
		t.Errorf("root second child = %q, want sibling-2", got)
	}
	if got := idOf(d, a.FirstChild(first)); got != "sibling-1-child-1" {
		t.Errorf("first child's child = %q", got)
	}
	if got := idOf(d, a.FirstChild(second)); got != "sibling-2-child-1" {
		t.Errorf("second child's child = %q", got)
	}
	if a.LastChild(d.Root()) != second {
		t.Errorf("root LastChild = %v, want %v", a.LastChild(d.Root()), second)
	}
	if a.PrevSibling(second) != first {
		t.Errorf("PrevSibling(second) = %v, want %v", a.PrevSibling(second), first)
	}
	if a.Parent(a.FirstChild(second)) != second {
		t.Error("grandchild parent not rewritten")
	}
}

func TestFromNodesChain(t *testing.T) {
	labels := []string{"1", "2", "3", "4", "5"}
	d := FromTypes(func(yield func(NodeType) bool) {
		for _, s := range labels {
			if !yield(Label{Text: s}) {
				return
			}
		}
	})

	a := d.Arena()
	if a.Len() != 5 {
		t.Fatalf("Len = %d, want 5", a.Len())
	}
	last := a.Node(4)
	if last.Parent != arena.None || last.NextSibling != arena.None ||
		last.FirstChild != arena.None || last.LastChild != arena.None {
		t.Errorf("last node links = %+v", last)
	}
	if last.PrevSibling != 3 {
		t.Errorf("last PrevSibling = %v, want #3", last.PrevSibling)
	}
	if lbl, ok := last.Data.Type.(Label); !ok || lbl.Text != "5" {
		t.Errorf("last type = %#v", last.Data.Type)
	}
}

func TestAddChildVisitsRootLevelInOrder(t *testing.T) {
	parent := New(Div{}).WithChild(New(Label{Text: "existing"}))
	child := FromTypes(slices.Values([]NodeType{Label{Text: "a"}, Label{Text: "b"}, Label{Text: "c"}}))
	child.AddChild(New(Div{}).WithID("under-a"))

	parent.AddChild(child)

	a := parent.Arena()
	var got []string
	for c := range a.Children(parent.Head()) {
		got = append(got, a.Data(c).Type.(Label).Text)
	}
	want := []string{"existing", "a", "b", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}

	// Every node formerly in child is reachable from the root.
	reach := slices.Collect(a.Preorder(parent.Root()))
	if len(reach) != a.Len() {
		t.Errorf("reachable %d nodes, arena holds %d", len(reach), a.Len())
	}
	if !child.IsEmpty() {
		t.Error("attached tree should be drained")
	}
}

func TestIndexRewrite(t *testing.T) {
	for _, op := range []string{"child", "sibling"} {
		t.Run(op, func(t *testing.T) {
			self := New(Div{}).WithChild(New(Div{}).WithChild(New(Div{})))
			other := New(Div{}).
				WithChild(New(Label{Text: "x"})).
				WithChild(New(Div{}).WithChild(New(Label{Text: "y"})))
			other.AddSibling(New(Div{}))

			selfLen := self.Len()
			head := self.Head()
			prevLast := self.Arena().LastChild(head)
			before := make([]arena.Node[NodeData], other.Len())
			for i := range before {
				before[i] = *other.Arena().Node(arena.NodeID(i))
			}

			if op == "child" {
				self.AddChild(other)
			} else {
				self.AddSibling(other)
			}

			a := self.Arena()
			for i, old := range before {
				cur := a.Node(arena.NodeID(i + selfLen))
				check := func(name string, was, now arena.NodeID, allowed ...arena.NodeID) {
					if was != arena.None {
						if now != was+arena.NodeID(selfLen) {
							t.Errorf("node %d %s = %v, want %v", i, name, now, was+arena.NodeID(selfLen))
						}
						return
					}
					if now == arena.None {
						return
					}
					if !slices.Contains(allowed, now) {
						t.Errorf("node %d %s bound to %v, want None or one of %v", i, name, now, allowed)
					}
				}
				switch op {
				case "child":
					check("Parent", old.Parent, cur.Parent, head)
					check("PrevSibling", old.PrevSibling, cur.PrevSibling, prevLast)
				default:
					check("Parent", old.Parent, cur.Parent, a.Parent(head))
					check("PrevSibling", old.PrevSibling, cur.PrevSibling, head)
				}
				check("NextSibling", old.NextSibling, cur.NextSibling)
				check("FirstChild", old.FirstChild, cur.FirstChild)
				check("LastChild", old.LastChild, cur.LastChild)
			}
		})
	}
}

func TestMergeEmpty(t *testing.T) {
	for _, op := range []string{"child", "sibling"} {
		t.Run(op, func(t *testing.T) {
			d := New(Div{}).WithClass("a").WithChild(New(Label{Text: "x"}))
			snapshot := d.Clone()

			if op == "child" {
				d.AddChild(Empty())
			} else {
				d.AddSibling(Empty())
			}

			if d.Len() != snapshot.Len() || d.Head() != snapshot.Head() || d.Root() != snapshot.Root() {
				t.Fatal("merging an empty tree changed the receiver")
			}
			for id := range d.Arena().Linear() {
				if !reflect.DeepEqual(*d.Arena().Node(id), *snapshot.Arena().Node(id)) {
					t.Errorf("node %v changed", id)
				}
			}
		})
	}
}

func TestMergeIntoEmptyReplaces(t *testing.T) {
	d := Empty()
	d.AddChild(New(Label{Text: "only"}).WithID("x"))
	if d.Len() != 1 || d.Root() != 0 || d.Head() != 0 {
		t.Fatalf("Len/Root/Head = %d/%v/%v", d.Len(), d.Root(), d.Head())
	}
	if d.Node(0).ID != "x" {
		t.Errorf("ID = %q, want x", d.Node(0).ID)
	}

	e := Empty()
	e.AddSibling(New(Div{}))
	if e.Len() != 1 {
		t.Errorf("Len = %d, want 1", e.Len())
	}
}

func TestAddSiblingMovesHead(t *testing.T) {
	d := New(Div{}).WithChild(
		New(Label{Text: "a"}).
			WithSibling(New(Label{Text: "b"})).
			WithClass("on-b").
			WithSibling(New(Label{Text: "c"})),
	)
	a := d.Arena()

	var texts []string
	for c := range a.Children(d.Root()) {
		texts = append(texts, a.Data(c).Type.(Label).Text)
	}
	if !slices.Equal(texts, []string{"a", "b", "c"}) {
		t.Errorf("children = %v", texts)
	}
	b := a.NextSibling(a.FirstChild(d.Root()))
	if !a.Data(b).HasClass("on-b") {
		t.Error("class should be set on the sibling that became head")
	}
}

func TestAddSiblingUnderParentUpdatesLastChild(t *testing.T) {
	d := New(Div{}).WithChild(New(Label{Text: "a"}))
	// Move the head onto the child, then add a sibling under the root.
	d.head = d.Arena().FirstChild(d.Root())
	d.AddSibling(New(Label{Text: "b"}))

	a := d.Arena()
	last := a.LastChild(d.Root())
	if lbl := a.Data(last).Type.(Label); lbl.Text != "b" {
		t.Errorf("root LastChild = %q, want b", lbl.Text)
	}
	if a.Parent(last) != d.Root() {
		t.Error("sibling should inherit the head's parent")
	}
}

func TestAddSiblingInsertsBeforeExistingNext(t *testing.T) {
	d := FromTypes(slices.Values([]NodeType{Label{Text: "a"}, Label{Text: "c"}}))
	d.AddSibling(New(Label{Text: "b"}))

	var got []string
	for id := range d.Nodes() {
		got = append(got, d.Node(id).Type.(Label).Text)
	}
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("document order = %v, want [a b c]", got)
	}
	c := d.Arena().NextSibling(d.Head())
	if d.Arena().PrevSibling(c) != d.Head() {
		t.Error("old next sibling must point back to the inserted node")
	}
}

func TestAttachToSelfPanics(t *testing.T) {
	d := New(Div{})
	defer func() {
		if recover() == nil {
			t.Error("AddChild(self) should panic")
		}
	}()
	d.AddChild(d)
}

func TestContainer(t *testing.T) {
	d := Container(New(Label{Text: "1"}), New(Label{Text: "2"}))
	if n := len(slices.Collect(d.Arena().Children(d.Root()))); n != 2 {
		t.Errorf("Container children = %d, want 2", n)
	}
	if _, ok := d.Node(d.Root()).Type.(Div); !ok {
		t.Error("root should be a Div")
	}
}

func TestCSSNames(t *testing.T) {
	tests := []struct {
		t    NodeType
		want string
	}{
		{Div{}, "div"},
		{Label{}, "p"},
		{Text{}, "p"},
		{Image{}, "image"},
		{Texture{}, "texture"},
	}
	for _, tt := range tests {
		if got := tt.t.CSSName(); got != tt.want {
			t.Errorf("%T.CSSName() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestFromDomsKeepsTreeOrder(t *testing.T) {
	trees := []*Dom{
		Container(New(Label{Text: "a"}), New(Label{Text: "b"})),
		Empty(),
		FromTypes(slices.Values([]NodeType{Label{Text: "x"}, Label{Text: "y"}})),
		New(Label{Text: "z"}),
	}
	d := FromDoms(slices.Values(trees))

	a := d.Arena()
	if a.Len() != 6 || d.Root() != 0 || d.Head() != 0 {
		t.Fatalf("Len = %d, root = %v, head = %v", a.Len(), d.Root(), d.Head())
	}
	var top []string
	for id := d.Root(); id != arena.None; id = a.NextSibling(id) {
		if a.Parent(id) != arena.None {
			t.Errorf("top-level %v has parent %v", id, a.Parent(id))
		}
		top = append(top, d.Node(id).Type.CSSName()+":"+label(d.Node(id)))
	}
	want := []string{"div:", "p:x", "p:y", "p:z"}
	if !slices.Equal(top, want) {
		t.Errorf("top level = %v, want %v", top, want)
	}
	if n := len(slices.Collect(a.Children(d.Root()))); n != 2 {
		t.Errorf("div children = %d, want 2", n)
	}
	for _, tree := range trees {
		if !tree.IsEmpty() {
			t.Error("source trees should be drained")
		}
	}
}

func label(n *NodeData) string {
	if l, ok := n.Type.(Label); ok {
		return l.Text
	}
	return ""
}
