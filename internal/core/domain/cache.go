package domain

import (
	"encoding/json"
	"time"
)

// Cache is an addressable forest of definition roots. A cache is either one
// persisted layer or the in-memory aggregate of all layers for a run.
type Cache struct {
	roots []*Item
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// NewCacheFrom creates a cache holding roots as-is, without merging.
func NewCacheFrom(roots []*Item) *Cache {
	c := &Cache{}
	for _, r := range roots {
		c.AddRoot(r)
	}
	return c
}

// Add folds item into the roots following the override rules of Merge.
func (c *Cache) Add(item *Item) {
	c.roots = Merge(c.roots, item)
}

// AddRoot appends item as a root without any override resolution.
func (c *Cache) AddRoot(item *Item) {
	if item == nil {
		return
	}
	c.roots = append(c.roots, item)
}

// Len returns the number of roots.
func (c *Cache) Len() int {
	return len(c.roots)
}

// Roots returns the roots in insertion order. The returned slice is a copy,
// the nodes are shared.
func (c *Cache) Roots() []*Item {
	out := make([]*Item, len(c.roots))
	copy(out, c.roots)
	return out
}

// Get resolves a node by name segments, e.g. Get("conf", "read"). When a
// level holds several nodes of the same name the most recently added wins.
func (c *Cache) Get(path ...string) *Item {
	return find(c.roots, path, nil, false)
}

// GetOriginal resolves like Get but prefers the first node added at each level.
func (c *Cache) GetOriginal(path ...string) *Item {
	return find(c.roots, path, nil, true)
}

// GetBuiltIn resolves a path among built-in roots only.
func (c *Cache) GetBuiltIn(path ...string) *Item {
	return c.getKind(KindBuiltIn, path)
}

// GetLanguage resolves a path among language roots only.
func (c *Cache) GetLanguage(path ...string) *Item {
	return c.getKind(KindLanguage, path)
}

// GetLanguageScript resolves a path among language scripts. Language scripts
// hang beneath their language node, so the path starts at the script name.
func (c *Cache) GetLanguageScript(path ...string) *Item {
	return find(c.RootsOf(KindLanguageScript), path, nil, false)
}

// GetScript resolves a path among script roots only.
func (c *Cache) GetScript(path ...string) *Item {
	return c.getKind(KindScript, path)
}

func (c *Cache) getKind(kind Kind, path []string) *Item {
	return find(c.roots, path, func(it *Item) bool { return it.Kind == kind }, false)
}

// RootsOf returns the topmost nodes of the given kind: roots of that kind plus any
// node of that kind whose parent has a different kind.
func (c *Cache) RootsOf(kind Kind) []*Item {
	var out []*Item
	var visit func(items []*Item)
	visit = func(items []*Item) {
		for _, it := range items {
			if it.Kind == kind {
				out = append(out, it)
				continue
			}
			visit(it.Children)
		}
	}
	visit(c.roots)
	return out
}

// LocationsOf returns the distinct locations recorded for nodes of the given
// kind, in insertion order.
func (c *Cache) LocationsOf(kind Kind) []string {
	seen := make(map[string]struct{})
	var out []string
	c.walk(func(it *Item) {
		if it.Kind != kind || it.Location == "" {
			return
		}
		if _, ok := seen[it.Location]; ok {
			return
		}
		seen[it.Location] = struct{}{}
		out = append(out, it.Location)
	})
	return out
}

// OldestUpdate returns the oldest update time recorded for any node that
// originates from location. The boolean is false when no node does.
func (c *Cache) OldestUpdate(location string) (time.Time, bool) {
	var oldest time.Time
	found := false
	c.walk(func(it *Item) {
		if it.Location != location {
			return
		}
		if !found || it.UpdatedAt.Before(oldest) {
			oldest = it.UpdatedAt
			found = true
		}
	})
	return oldest, found
}

// Oldest returns the oldest update time over all nodes.
func (c *Cache) Oldest() (time.Time, bool) {
	var oldest time.Time
	found := false
	c.walk(func(it *Item) {
		if !found || it.UpdatedAt.Before(oldest) {
			oldest = it.UpdatedAt
			found = true
		}
	})
	return oldest, found
}

func (c *Cache) walk(fn func(*Item)) {
	for _, r := range c.roots {
		r.Walk(func(it *Item) bool {
			fn(it)
			return true
		})
	}
}

// MarshalJSON encodes the cache as the array of its roots.
func (c *Cache) MarshalJSON() ([]byte, error) {
	roots := c.roots
	if roots == nil {
		roots = []*Item{}
	}
	return json.Marshal(roots)
}

// UnmarshalJSON decodes an array of roots into the cache.
func (c *Cache) UnmarshalJSON(data []byte) error {
	var roots []*Item
	if err := json.Unmarshal(data, &roots); err != nil {
		return err
	}
	c.roots = roots
	return nil
}
