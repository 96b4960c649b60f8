package resources

// TextCache stores long strings referenced by text nodes, so that the
// node hash covers a small id instead of the whole string.
type TextCache struct {
	next  TextID
	texts map[TextID]string
}

// NewTextCache returns an empty cache.
func NewTextCache() *TextCache {
	return &TextCache{texts: make(map[TextID]string)}
}

// Add stores s and returns its id.
func (c *TextCache) Add(s string) TextID {
	c.next++
	c.texts[c.next] = s
	return c.next
}

// Get returns the string stored under id.
func (c *TextCache) Get(id TextID) (string, bool) {
	s, ok := c.texts[id]
	return s, ok
}

// Delete removes id.
func (c *TextCache) Delete(id TextID) { delete(c.texts, id) }

// Clear removes every string. Ids are not reused.
func (c *TextCache) Clear() { clear(c.texts) }

// Len returns the number of stored strings.
func (c *TextCache) Len() int { return len(c.texts) }
