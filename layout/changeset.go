package layout

import "github.com/gogpu/ggdom/arena"

// ChangeSet lists the node indices that differ from the previous frame.
type ChangeSet struct {
	Added   []arena.NodeID
	Removed []arena.NodeID
	Changed []arena.NodeID
}

// IsEmpty reports whether nothing changed.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

// Len returns the total number of entries.
func (c ChangeSet) Len() int {
	return len(c.Added) + len(c.Removed) + len(c.Changed)
}

type treeEntry struct {
	hash   uint64
	parent arena.NodeID
}

// TreeCache remembers the previous frame's node hashes and computes the
// ChangeSet of each new frame by index.
//
// A node counts as changed when its hash or its parent index differs, or
// when any ancestor changed, since constraints are derived from ancestor
// sizes.
type TreeCache struct {
	prev []treeEntry
}

// Update compares hashes with the previous frame, stores hashes as the
// new previous frame and returns the differences.
func (t *TreeCache) Update(hashes *arena.Arena[uint64]) ChangeSet {
	var cs ChangeSet
	n := hashes.Len()
	next := make([]treeEntry, n)
	dirty := make([]bool, n)

	visit := func(id arena.NodeID) {
		i := id.Index()
		parent := hashes.Parent(id)
		next[i] = treeEntry{hash: *hashes.Data(id), parent: parent}
		switch {
		case i >= len(t.prev):
			dirty[i] = true
			cs.Added = append(cs.Added, id)
		case next[i] != t.prev[i] || (!parent.IsNone() && dirty[parent.Index()]):
			dirty[i] = true
			cs.Changed = append(cs.Changed, id)
		}
	}
	if n > 0 {
		for id := range hashes.Document(0) {
			visit(id)
		}
	}
	for i := n; i < len(t.prev); i++ {
		cs.Removed = append(cs.Removed, arena.NodeID(i))
	}
	t.prev = next
	return cs
}

// Len returns the number of nodes in the remembered frame.
func (t *TreeCache) Len() int { return len(t.prev) }

// Reset forgets the previous frame.
func (t *TreeCache) Reset() { t.prev = nil }
