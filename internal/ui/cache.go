package ui

import (
	"hash/fnv"
	"math"
)

// renderCache keeps the last rendering of each surface, keyed by everything
// that affects it. Line versions change on every recompute, so a slider
// move invalidates exactly the surfaces it redrew.
type renderCache struct {
	entries map[int]cacheEntry
	hits    int
	misses  int
}

type cacheEntry struct {
	key     uint64
	content string
}

func newRenderCache() *renderCache {
	return &renderCache{entries: make(map[int]cacheEntry)}
}

// computeKey hashes the supported input types with FNV-1a.
func computeKey(inputs ...interface{}) uint64 {
	h := fnv.New64a()
	var b [8]byte
	put := func(u uint64) {
		for i := range b {
			b[i] = byte(u >> (8 * i))
		}
		h.Write(b[:])
	}
	for _, input := range inputs {
		switch v := input.(type) {
		case string:
			h.Write([]byte(v))
			h.Write([]byte{0})
		case int:
			put(uint64(v))
		case float64:
			put(math.Float64bits(v))
		case bool:
			if v {
				put(1)
			} else {
				put(0)
			}
		}
	}
	return h.Sum64()
}

// render returns the cached content for slot when key matches, otherwise
// computes and stores it.
func (c *renderCache) render(slot int, key uint64, compute func() string) string {
	if e, ok := c.entries[slot]; ok && e.key == key {
		c.hits++
		return e.content
	}
	c.misses++
	content := compute()
	c.entries[slot] = cacheEntry{key: key, content: content}
	return content
}

// invalidate drops every entry.
func (c *renderCache) invalidate() {
	c.entries = make(map[int]cacheEntry)
}
