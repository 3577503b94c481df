// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

// selectNode is one node of a selected-properties projection tree: the
// client-requested $select/$expand shape, mirrored alongside the scope
// chain so the writer can tell whether the scope it is about to push was
// actually asked for. A nil *selectNode means "everything is selected"
// (no projection in effect), matching an absent $select.
//
// Descent by link name is a linear scan over Children, the same idiom as
// jtree/ast.Object.Find and jtree/query's objKey.eval: these trees are
// shallow and short, so a map buys nothing a slice doesn't already give.
type selectNode struct {
	Name        string
	Children    []*selectNode
	AllSelected bool // true if this node's "*" was requested (select everything beneath it)
}

// find returns the child of s named name, or nil if it is not present.
func (s *selectNode) find(name string) *selectNode {
	if s == nil {
		return nil
	}
	for _, c := range s.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// descend resolves the projection for a nested link named name, returning
// the child node to propagate into the pushed scope (nil continues to mean
// unrestricted) and whether the link itself was projected at all. The
// caller uses the second result to set the pushed scope's skipWriting
// flag: an unprojected link is still pushed and walked, just not written.
func (s *selectNode) descend(name string) (child *selectNode, selected bool) {
	if s == nil || s.AllSelected {
		return nil, true
	}
	if len(s.Children) == 0 {
		// A node with an explicit (non-"*") select but no recorded children
		// projects nothing beneath it.
		return nil, false
	}
	c := s.find(name)
	return c, c != nil
}
