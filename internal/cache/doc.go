// Package cache provides the bounded LRU used by the per-frame pipeline.
//
// The pipeline runs on a single thread, so LRU carries no lock. It backs
// the resolved-style cache (keyed by structural node hash) and the text
// measurement cache (keyed by font, size and word).
//
//	c := cache.NewLRU[uint64, style.Styled](1024)
//	c.Put(hash, styled)
//	v, ok := c.Get(hash)
package cache
