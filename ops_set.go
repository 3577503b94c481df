// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"context"

	"github.com/creachadair/odata/edm"
)

// StartResourceSet begins a resource set. See Writer.StartResourceSetAsync
// for the asynchronous form.
func (w *Writer) StartResourceSet(set *ResourceSet) error {
	return w.startResourceSet(context.Background(), set, false, StateResourceSet)
}

// StartResourceSetAsync is the asynchronous form of StartResourceSet.
func (w *Writer) StartResourceSetAsync(ctx context.Context, set *ResourceSet) error {
	return w.startResourceSet(ctx, set, true, StateResourceSet)
}

// StartDeltaResourceSet begins a delta resource set.
func (w *Writer) StartDeltaResourceSet(set *ResourceSet) error {
	return w.startResourceSet(context.Background(), set, false, StateDeltaResourceSet)
}

// StartDeltaResourceSetAsync is the asynchronous form of
// StartDeltaResourceSet.
func (w *Writer) StartDeltaResourceSetAsync(ctx context.Context, set *ResourceSet) error {
	return w.startResourceSet(ctx, set, true, StateDeltaResourceSet)
}

func (w *Writer) startResourceSet(ctx context.Context, set *ResourceSet, async bool, target State) error {
	return w.in(async, func() {
		checkRequestPayloadShape(w.opts.Request, set, !w.stack.atRoot())

		cur := w.promoteNestedLinkIfOpen(ctx, async)

		w.validatePush(cur, target)
		if cur.state == StateStart && !w.forResourceSet {
			fail(CodeInvalidTransitionFromStart, target)
		}

		elementType, elementTypeName := resolveResourceSetElementType(w.model, cur, set)
		navSource := resolveNavigationSource(w.model, cur, set.SerializationInfo, nil)

		next := &scope{
			state:              target,
			item:               set,
			navigationSource:   navSource,
			itemType:           elementTypeName,
			resourceType:       elementType,
			selected:           cur.selected,
			path:               rootedPath(cur.path, cur.navigationSource, navSource),
			skipWriting:        cur.skipWriting,
			enableDelta:        target == StateDeltaResourceSet,
			derivedConstraints: cur.derivedConstraints,
			setValidator:       &resourceSetValidator{declared: elementType},
			depth:              cur.depth,
		}
		w.maybeStartPayload(ctx, async)
		w.pushScope(next)

		if target == StateDeltaResourceSet {
			if async {
				invoke(w.async.StartDeltaResourceSetAsync(ctx, set))
			} else {
				invoke(w.backend.StartDeltaResourceSet(set))
			}
			return
		}
		if async {
			invoke(w.async.StartResourceSetAsync(ctx, set))
		} else {
			invoke(w.backend.StartResourceSet(set))
		}
	})
}

// checkRequestPayloadShape enforces the payload-shape errors in 7 that
// apply to any resource set on a request payload, plus the
// delta-link-on-expanded-set rule that applies regardless of request mode.
func checkRequestPayloadShape(isRequest bool, set *ResourceSet, nested bool) {
	if isRequest {
		if set.Count != nil {
			fail(CodeCountInRequest)
		}
		if set.NextPageLink != "" {
			fail(CodeNextLinkInRequest)
		}
		if set.DeltaLink != "" {
			fail(CodeDeltaLinkInRequest)
		}
	}
	if nested && set.DeltaLink != "" {
		fail(CodeDeltaLinkOnExpandedSet)
	}
}

// resolveResourceSetElementType resolves a pushed set's declared element
// type, used to seed its resourceSetValidator and to become the
// resourceTypeFromMetadata inherited by resources written into it.
func resolveResourceSetElementType(m edm.Model, parent *scope, set *ResourceSet) (*edm.EntityType, string) {
	if set.TypeName == "" {
		return parent.resourceType, parent.itemType
	}
	if t, ok := m.ElementType(set.TypeName); ok {
		return t, set.TypeName
	}
	if t, ok := m.FindEntityType(set.TypeName); ok {
		return t, set.TypeName
	}
	return nil, set.TypeName
}

// validatePush checks the unconditional transition table, widening the
// allowed next states when cur is an untyped resource set.
func (w *Writer) validatePush(cur *scope, next State) {
	allowed := transitions[cur.state]
	if cur.state == StateResourceSet && cur.resourceType == nil {
		allowed = append(append([]State{}, allowed...), untypedResourceSetChildren...)
	}
	if cur.state == StateNestedResourceInfoWithContent && next == StateDeltaResourceSet && w.opts.Version < ODataV401 {
		fail(CodeInvalidTransitionFromExpandedLink, next)
	}
	if cur.state == StateNestedResourceInfoWithContent && next == StateDeletedResource && w.opts.Version < ODataV401 {
		fail(CodeInvalidTransitionFromExpandedLink, next)
	}
	if !stateOneOf(next, allowed) {
		if e := checkTransition(cur.state, next); e != nil {
			panic(e)
		}
	}
}
