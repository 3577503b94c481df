// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"fmt"
	"strings"

	"github.com/creachadair/odata/edm"
)

// segmentKind classifies one element of an OData resource path, mirroring
// the step operators jtree/jpath used for JSONPath (member, recursive
// member, index, slice): here the vocabulary is OData's instead, but the
// shape — a typed operator plus one or two string arguments — is the same.
type segmentKind byte

const (
	segRoot segmentKind = iota
	segKey
	segCast
	segProperty
	segNavigation
	segContainment
)

// pathSegment is one element of a pathBuilder's chain.
type pathSegment struct {
	kind segmentKind
	name string // entity set / singleton name, property name, nav name, or cast type name
	key  string // rendered key predicate, for segKey
}

// pathBuilder composes the OData resource path that mirrors the current
// scope chain, appending one segment per scope push and resetting to a
// new root when a navigation targets an entity set or singleton rather
// than a contained collection.
type pathBuilder struct {
	segments []pathSegment
}

// newRootPath starts a path at the named entity set or singleton.
func newRootPath(rootName string) *pathBuilder {
	return &pathBuilder{segments: []pathSegment{{kind: segRoot, name: rootName}}}
}

// clone returns an independent copy of p so sibling scopes (e.g. two
// resources in the same set) do not alias each other's path.
func (p *pathBuilder) clone() *pathBuilder {
	if p == nil {
		return nil
	}
	cp := &pathBuilder{segments: make([]pathSegment, len(p.segments))}
	copy(cp.segments, p.segments)
	return cp
}

// appendKey appends a key segment, e.g. "(1)" or "(ID=1,Name='a')".
func (p *pathBuilder) appendKey(key string) *pathBuilder {
	return p.append(pathSegment{kind: segKey, key: key})
}

// appendCast appends a type-cast segment for typeName.
func (p *pathBuilder) appendCast(typeName string) *pathBuilder {
	return p.append(pathSegment{kind: segCast, name: typeName})
}

// appendProperty appends a structural (non-navigation) property segment.
func (p *pathBuilder) appendProperty(name string) *pathBuilder {
	return p.append(pathSegment{kind: segProperty, name: name})
}

// appendNavigation appends a navigation-property segment.
func (p *pathBuilder) appendNavigation(name string) *pathBuilder {
	return p.append(pathSegment{kind: segNavigation, name: name})
}

// resetRoot starts a fresh path rooted at rootName, discarding everything
// appended so far — used when a navigation property targets an entity set
// or singleton rather than a contained collection.
func (p *pathBuilder) resetRoot(rootName string) *pathBuilder {
	return newRootPath(rootName)
}

// appendContainment appends a containment-navigation segment onto the
// existing (non-empty) path; the caller is responsible for having checked
// Empty() first, since a contained entity set requires a non-empty path
// to contain it.
func (p *pathBuilder) appendContainment(name string) *pathBuilder {
	return p.append(pathSegment{kind: segContainment, name: name})
}

// rootedPath returns parent unchanged if newSource is nil or is the same
// navigation source the enclosing scope already carried, and a fresh root
// path named after newSource otherwise: a resource or resource set that
// establishes a navigation source different from its parent's starts a new
// path there rather than extending the enclosing one, per resetRoot.
func rootedPath(parent *pathBuilder, parentSource, newSource edm.NavigationSource) *pathBuilder {
	if newSource != nil && newSource != parentSource {
		return newRootPath(newSource.Name())
	}
	return parent
}

func (p *pathBuilder) append(seg pathSegment) *pathBuilder {
	cp := p.clone()
	if cp == nil {
		cp = &pathBuilder{}
	}
	cp.segments = append(cp.segments, seg)
	return cp
}

// Empty reports whether p has no segments at all (not even a root).
func (p *pathBuilder) Empty() bool { return p == nil || len(p.segments) == 0 }

// String renders the path in OData URI syntax, e.g. "Customers(1)/Orders".
func (p *pathBuilder) String() string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for _, seg := range p.segments {
		switch seg.kind {
		case segRoot, segProperty, segNavigation:
			if sb.Len() > 0 {
				sb.WriteByte('/')
			}
			sb.WriteString(seg.name)
		case segKey:
			fmt.Fprintf(&sb, "(%s)", seg.key)
		case segCast:
			sb.WriteByte('/')
			sb.WriteString(seg.name)
		case segContainment:
			sb.WriteByte('/')
			sb.WriteString(seg.name)
		}
	}
	return sb.String()
}
