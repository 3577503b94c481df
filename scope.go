// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "github.com/creachadair/odata/edm"

// scope is one entry on the writer's nesting stack. It is modeled as a
// single tagged-variant struct rather than an interface with one
// implementation per State, per the "dynamic dispatch on scope kind" design
// note: the state machine already switches on State everywhere, so a second
// dispatch layer through interface methods would only duplicate it. Fields
// that apply only to certain states are simply left zero otherwise.
type scope struct {
	state State

	// item is the payload descriptor the caller supplied to the call that
	// pushed this scope (*ResourceSet, *Resource — the embedded Resource for
	// a deleted resource —, *NestedResourceInfo, *Property, *DeltaLinkItem),
	// or nil for states with no payload item of their own (Primitive,
	// Stream, String).
	item any

	navigationSource edm.NavigationSource
	itemType         string // declared type name, e.g. "NS.Customer" or "Collection(NS.Order)"
	resourceType     *edm.EntityType

	selected *selectNode
	path     *pathBuilder

	skipWriting bool
	enableDelta bool

	derivedConstraints *edm.DerivedTypeConstraint

	// -- ResourceBaseScope fields (state == StateResource || StateDeletedResource) --

	resourceTypeFromMetadata *edm.EntityType
	dupChecker               *duplicatePropertyChecker
	annotationWritten        bool
	typeContext              *typeContext // see typeContext

	// -- ResourceSetBaseScope fields (state == StateResourceSet || StateDeltaResourceSet) --

	resourceCount  int
	setValidator   *resourceSetValidator

	// -- NestedResourceInfoScope fields (state == StateNestedResourceInfo(WithContent)) --

	parentIndex  int  // index into the owning Writer's stack, for cloning on promotion
	skipDupCheck bool // true for a complex-typed link, checked at property granularity instead
	// resourceCount is reused here (see ResourceSetBaseScope fields above) to
	// count content items already written under this link, so a second
	// item on a non-collection link can be rejected.

	// -- PropertyInfoScope fields (state == StateProperty) --

	valueWritten bool

	// depth is the resource-nesting depth at this scope (number of
	// enclosing Resource/DeletedResource scopes, inclusive), used to bound
	// nesting depth without rescanning the stack.
	depth int
}

// typeContext holds a navigation source / resource type pair for a
// resource scope. Nothing in this package sets or reads a scope's
// typeContext field; resolution results live in the scope's own
// navigationSource and resourceType fields.
type typeContext struct {
	navigationSource edm.NavigationSource
	resourceType     *edm.EntityType
}

// isResourceBase reports whether s is a Resource or DeletedResource scope.
func (s *scope) isResourceBase() bool {
	return s.state == StateResource || s.state == StateDeletedResource
}

// isResourceSetBase reports whether s is a ResourceSet or DeltaResourceSet
// scope.
func (s *scope) isResourceSetBase() bool {
	return s.state == StateResourceSet || s.state == StateDeltaResourceSet
}

// isNestedLink reports whether s is a NestedResourceInfo scope, open or
// with content.
func (s *scope) isNestedLink() bool {
	return s.state == StateNestedResourceInfo || s.state == StateNestedResourceInfoWithContent
}

// duplicatePropertyChecker tracks property names already written directly
// on one resource, rejecting a repeat. It is a plain slice with a linear
// scan rather than a set: a resource rarely has more than a few dozen
// properties, so the scan is cheaper than a map and its allocation.
type duplicatePropertyChecker struct {
	seen []string
}

func (d *duplicatePropertyChecker) markWritten(name string) bool {
	for _, n := range d.seen {
		if n == name {
			return false
		}
	}
	d.seen = append(d.seen, name)
	return true
}

// resourceSetValidator enforces that every resource written into one
// resource set resolves to a type assignable to the set's own declared
// element type.
type resourceSetValidator struct {
	declared *edm.EntityType // nil if the set is untyped / has no declared element type
}

func (v *resourceSetValidator) validate(candidate *edm.EntityType) *Error {
	if v.declared == nil || candidate == nil {
		return nil
	}
	if !v.declared.IsAssignableFrom(candidate) {
		return newError(CodeIncompatibleResourceTypes, candidate.Name(), v.declared.Name())
	}
	return nil
}
