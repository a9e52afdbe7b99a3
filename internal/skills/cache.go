// Package skills is an injected name→text cache for prompt skill
// content, with content-hash invalidation and explicit load/save hooks.
//
// The embedding application owns persistence: it calls Load with
// whatever it stored and Snapshot when it wants to store again. Nothing
// here is a process-wide singleton; pass the cache to whoever needs it.
package skills

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

type entry struct {
	text string
	hash string
}

// Cache holds named skill text.
type Cache struct {
	entries map[string]entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

func hashOf(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Put stores skill text under a name. It reports whether the stored
// content actually changed, so callers can decide whether dependent
// state needs rebuilding.
func (c *Cache) Put(name, text string) bool {
	h := hashOf(text)
	if existing, ok := c.entries[name]; ok && existing.hash == h {
		return false
	}
	c.entries[name] = entry{text: text, hash: h}
	return true
}

// Get returns the text for a skill name.
func (c *Cache) Get(name string) (string, bool) {
	e, ok := c.entries[name]
	return e.text, ok
}

// Delete removes a skill.
func (c *Cache) Delete(name string) {
	delete(c.entries, name)
}

// Names returns the stored skill names, sorted.
func (c *Cache) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load replaces the cache contents from persisted data.
func (c *Cache) Load(data map[string]string) {
	c.entries = make(map[string]entry, len(data))
	for name, text := range data {
		c.entries[name] = entry{text: text, hash: hashOf(text)}
	}
}

// Snapshot returns the cache contents for persistence.
func (c *Cache) Snapshot() map[string]string {
	out := make(map[string]string, len(c.entries))
	for name, e := range c.entries {
		out[name] = e.text
	}
	return out
}
