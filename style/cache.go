package style

import (
	"github.com/gogpu/ggdom/arena"
	"github.com/gogpu/ggdom/dom"
	"github.com/gogpu/ggdom/internal/cache"
	"github.com/gogpu/ggdom/internal/logging"
)

// Cache memoizes resolved styles by structural node hash. Matching depends
// only on the node's type, id and classes, all of which take part in the
// hash, so the cached record stays valid until the sheet or the override
// set changes. Either change clears the cache.
type Cache struct {
	lru              *cache.LRU[uint64, Styled]
	sheet            *Sheet
	sheetVersion     uint64
	overridesVersion uint64
	overrides        *Overrides
	resolved         int
}

// NewCache returns a cache holding up to capacity records.
func NewCache(capacity int) *Cache {
	return &Cache{lru: cache.NewLRU[uint64, Styled](capacity)}
}

// Resolve returns the style of n, resolving it on a miss.
func (c *Cache) Resolve(sheet *Sheet, overrides *Overrides, n *dom.NodeData, hash uint64) Styled {
	c.sync(sheet, overrides)
	return c.lru.GetOrCreate(hash, func() Styled {
		c.resolved++
		return Resolve(sheet.Match(n), overrides)
	})
}

// Tree resolves every node of d and returns the results in an arena with
// the same topology. hashes must come from d.Hashes.
func (c *Cache) Tree(d *dom.Dom, hashes *arena.Arena[uint64], sheet *Sheet, overrides *Overrides) *arena.Arena[Styled] {
	before := c.resolved
	out := arena.Transform(d.Arena(), func(n *dom.NodeData, id arena.NodeID) Styled {
		return c.Resolve(sheet, overrides, n, *hashes.Data(id))
	})
	logging.Logger().Debug("style: resolved tree",
		"nodes", out.Len(), "resolved", c.resolved-before)
	return out
}

// Resolved returns how many records were computed rather than served from
// the cache since the cache was created.
func (c *Cache) Resolved() int { return c.resolved }

// Stats returns the underlying cache statistics.
func (c *Cache) Stats() cache.Stats { return c.lru.Stats() }

func (c *Cache) sync(sheet *Sheet, overrides *Overrides) {
	sv, ov := sheet.Version(), overrides.Version()
	if sheet == c.sheet && sv == c.sheetVersion && ov == c.overridesVersion && overrides == c.overrides {
		return
	}
	c.lru.Clear()
	c.sheet, c.sheetVersion = sheet, sv
	c.overridesVersion, c.overrides = ov, overrides
}
