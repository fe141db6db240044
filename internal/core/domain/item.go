// Package domain holds the command definition model shared by every layer.
package domain

import "time"

// Item is a node in the command definition tree. Roots are commands, and
// descendants are sub-commands or parameters.
type Item struct {
	Kind        Kind      `json:"kind"`
	Location    string    `json:"location,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
	Override    bool      `json:"override,omitempty"`
	Required    bool      `json:"required,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Children    []*Item   `json:"children,omitempty"`
}

// Add attaches child beneath i. The child and its whole subtree take over
// the origin of i (kind, location and update time).
func (i *Item) Add(child *Item) *Item {
	child.Stamp(i.Kind, i.Location, i.UpdatedAt)
	i.Children = append(i.Children, child)
	return child
}

// Stamp sets the origin of i and all of its descendants.
func (i *Item) Stamp(kind Kind, location string, updatedAt time.Time) {
	i.Kind = kind
	i.Location = location
	i.UpdatedAt = updatedAt
	for _, c := range i.Children {
		c.Stamp(kind, location, updatedAt)
	}
}

// Clone returns a deep copy of i.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	out := *i
	out.Children = nil
	if len(i.Children) > 0 {
		out.Children = make([]*Item, len(i.Children))
		for idx, c := range i.Children {
			out.Children[idx] = c.Clone()
		}
	}
	return &out
}

// Find resolves a descendant of i by name segments. An empty path returns i.
func (i *Item) Find(path ...string) *Item {
	if len(path) == 0 {
		return i
	}
	return find(i.Children, path, nil, false)
}

// Walk visits i and all of its descendants depth first. Returning false from
// fn stops the walk.
func (i *Item) Walk(fn func(*Item) bool) bool {
	if !fn(i) {
		return false
	}
	for _, c := range i.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Merge folds incoming into the sibling list target and returns the new list.
//
// When incoming is marked Override and target already holds nodes with the
// same name, those nodes and their subtrees are replaced by a copy of
// incoming, placed where the first of them was. Otherwise incoming is
// appended as a new alternative, and its children are merged beneath it one
// by one using the same rule.
func Merge(target []*Item, incoming *Item) []*Item {
	if incoming == nil {
		return target
	}

	if incoming.Override && indexOf(target, incoming.Name) >= 0 {
		out := make([]*Item, 0, len(target))
		placed := false
		for _, existing := range target {
			if existing.Name != incoming.Name {
				out = append(out, existing)
				continue
			}
			if !placed {
				out = append(out, incoming.Clone())
				placed = true
			}
		}
		return out
	}

	node := *incoming
	node.Children = nil
	for _, c := range incoming.Children {
		node.Children = Merge(node.Children, c)
	}
	return append(target, &node)
}

func indexOf(items []*Item, name string) int {
	for idx, it := range items {
		if it.Name == name {
			return idx
		}
	}
	return -1
}

// find resolves path against the sibling list items. With several nodes of
// the same name at one level, the last one wins unless first is set. accept,
// when non-nil, filters the nodes at the first level only.
func find(items []*Item, path []string, accept func(*Item) bool, first bool) *Item {
	if len(path) == 0 {
		return nil
	}

	var match *Item
	for _, it := range items {
		if it.Name != path[0] {
			continue
		}
		if accept != nil && !accept(it) {
			continue
		}
		if len(path) > 1 {
			it = find(it.Children, path[1:], nil, first)
			if it == nil {
				continue
			}
		}
		match = it
		if first {
			break
		}
	}
	return match
}
