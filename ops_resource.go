// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"context"

	"github.com/creachadair/odata/edm"
)

// StartResource begins a resource (an entity or complex value).
func (w *Writer) StartResource(res *Resource) error {
	return w.startResource(context.Background(), res, nil, false)
}

// StartResourceAsync is the asynchronous form of StartResource.
func (w *Writer) StartResourceAsync(ctx context.Context, res *Resource) error {
	return w.startResource(ctx, res, nil, true)
}

// StartDeletedResource begins a deleted resource inside a delta resource
// set, or (OData >= 4.01) inside a nested resource info.
func (w *Writer) StartDeletedResource(res *DeletedResource) error {
	return w.startResource(context.Background(), &res.Resource, res, false)
}

// StartDeletedResourceAsync is the asynchronous form of
// StartDeletedResource.
func (w *Writer) StartDeletedResourceAsync(ctx context.Context, res *DeletedResource) error {
	return w.startResource(ctx, &res.Resource, res, true)
}

func (w *Writer) startResource(ctx context.Context, res *Resource, deleted *DeletedResource, async bool) error {
	return w.in(async, func() {
		cur := w.promoteNestedLinkIfOpen(ctx, async)

		target := StateResource
		if deleted != nil {
			target = StateDeletedResource
		}
		w.validatePush(cur, target)
		if cur.state == StateStart && w.forResourceSet {
			fail(CodeInvalidTransitionFromStart, target)
		}

		resourceType, typeName, rerr := resolveItemType(w.model, cur, res.TypeName, res.SerializationInfo)
		if rerr != nil {
			panic(rerr)
		}

		if cur.isResourceSetBase() && cur.setValidator != nil {
			if e := cur.setValidator.validate(resourceType); e != nil {
				panic(e)
			}
		}
		if e := checkDerivedTypeConstraint(cur.resourceType, resourceType, cur.derivedConstraints); e != nil {
			panic(e)
		}

		newDepth := w.stack.resourceDepth() + 1
		if newDepth > w.opts.maxDepth() {
			fail(CodeMaxNestingDepthExceeded, w.opts.maxDepth())
		}

		if cur.state == StateDeltaResourceSet && w.stack.isTopLevel() {
			checkDeltaIDOrKey(res, resourceType)
		}

		navSource := resolveNavigationSource(w.model, cur, res.SerializationInfo, nil)
		path := extendResourcePath(rootedPath(cur.path, cur.navigationSource, navSource), resourceType, res, cur.resourceType)

		next := &scope{
			state:                    target,
			item:                     res,
			navigationSource:         navSource,
			itemType:                 typeName,
			resourceType:             resourceType,
			selected:                 cur.selected,
			path:                     path,
			skipWriting:              cur.skipWriting,
			enableDelta:              cur.enableDelta,
			derivedConstraints:       cur.derivedConstraints,
			resourceTypeFromMetadata: cur.resourceType,
			dupChecker:               &duplicatePropertyChecker{},
			depth:                    newDepth,
		}
		w.maybeStartPayload(ctx, async)
		w.pushScope(next)
		if cur.isResourceSetBase() {
			cur.resourceCount++
		}
		if cur.isNestedLink() {
			cur.resourceCount++
		}

		if deleted != nil {
			if prep, ok := w.backend.(DeletedResourcePreparer); ok {
				invoke(prep.PrepareDeletedResourceForWriteStart(deleted))
			}
			if async {
				invoke(w.async.StartDeletedResourceAsync(ctx, deleted))
			} else {
				invoke(w.backend.StartDeletedResource(deleted))
			}
			return
		}
		if prep, ok := w.backend.(ResourcePreparer); ok {
			invoke(prep.PrepareResourceForWriteStart(res))
		}
		if async {
			invoke(w.async.StartResourceAsync(ctx, res))
		} else {
			invoke(w.backend.StartResource(res))
		}
	})
}

// checkDeltaIDOrKey enforces that a top-level resource or deleted resource
// inside a delta resource set must carry either an Id or all of its entity
// type's key properties.
func checkDeltaIDOrKey(res *Resource, t *edm.EntityType) {
	if res.ID != "" {
		return
	}
	if t == nil {
		fail(CodeDeltaResourceWithoutIDOrKey, res.TypeName)
	}
	keys := t.KeyProperties()
	if len(keys) == 0 {
		fail(CodeDeltaResourceWithoutIDOrKey, t.Name())
	}
	if _, ok := buildResourceKey(keys, res.Properties); !ok {
		fail(CodeDeltaResourceWithoutIDOrKey, t.Name())
	}
}

// extendResourcePath implements the resource-scope part of path
// composition: append a key segment when the resource's type has keys and
// a value is available, then a cast segment if the concrete type differs
// from the type declared at the enclosing position.
func extendResourcePath(parent *pathBuilder, t *edm.EntityType, res *Resource, declared *edm.EntityType) *pathBuilder {
	p := parent
	if t != nil {
		if keys := t.KeyProperties(); len(keys) > 0 {
			if key, ok := buildResourceKey(keys, res.Properties); ok {
				p = p.appendKey(key)
			}
		}
		if declared != nil && t.Name() != declared.Name() {
			p = p.appendCast(t.Name())
		}
	}
	return p
}
