package dom

// CallbackTable maps hit-test tags to the callbacks bound on their nodes
// for one frame.
type CallbackTable struct {
	// Callbacks holds every binding of the frame by its fresh id.
	Callbacks map[CallbackID]Callback
	// ByTag maps a node's tag to its event kinds and callback ids.
	ByTag map[Tag]map[On]CallbackID
}

// CollectCallbacks walks the tree in document order and assigns each
// binding a fresh CallbackID from s.
func (d *Dom) CollectCallbacks(s *Session) *CallbackTable {
	t := &CallbackTable{
		Callbacks: make(map[CallbackID]Callback),
		ByTag:     make(map[Tag]map[On]CallbackID),
	}
	if d.IsEmpty() {
		return t
	}
	for id := range d.Nodes() {
		n := d.arena.Data(id)
		if len(n.Events) == 0 && n.Tag == 0 {
			continue
		}
		ids := make(map[On]CallbackID, len(n.Events))
		for _, b := range n.Events {
			cid := s.NextCallbackID()
			t.Callbacks[cid] = b.Callback
			ids[b.On] = cid
		}
		if n.Tag != 0 {
			t.ByTag[n.Tag] = ids
		}
	}
	return t
}

// Lookup returns the callback bound to on for the node tagged tag.
func (t *CallbackTable) Lookup(tag Tag, on On) (Callback, bool) {
	ids, ok := t.ByTag[tag]
	if !ok {
		return nil, false
	}
	cid, ok := ids[on]
	if !ok {
		return nil, false
	}
	cb, ok := t.Callbacks[cid]
	return cb, ok
}

// Dispatch runs the callback bound to on for tag. A miss does not redraw.
func (t *CallbackTable) Dispatch(tag Tag, on On, app any) UpdateScreen {
	cb, ok := t.Lookup(tag, on)
	if !ok || cb == nil {
		return DontRedraw
	}
	return cb(&Event{On: on, Tag: tag, App: app})
}
