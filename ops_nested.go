// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "context"

// StartNestedResourceInfo begins a named link from the current resource to
// another resource or resource set (a navigation property or a
// complex-typed structural property).
func (w *Writer) StartNestedResourceInfo(link *NestedResourceInfo) error {
	return w.startNestedResourceInfo(context.Background(), link, false)
}

// StartNestedResourceInfoAsync is the asynchronous form of
// StartNestedResourceInfo.
func (w *Writer) StartNestedResourceInfoAsync(ctx context.Context, link *NestedResourceInfo) error {
	return w.startNestedResourceInfo(ctx, link, true)
}

func (w *Writer) startNestedResourceInfo(ctx context.Context, link *NestedResourceInfo, async bool) error {
	return w.in(async, func() {
		cur := w.stack.top()
		if !cur.isResourceBase() {
			if e := checkTransition(cur.state, StateNestedResourceInfo); e != nil {
				panic(e)
			}
		}
		if cur.state == StateDeletedResource && w.opts.Version < ODataV401 {
			fail(CodeInvalidTransitionFrom40DeletedResource)
		}

		structural, nav := resolveLinkProperty(cur.resourceType, link.Name)
		if structural == nil && nav == nil && cur.resourceType != nil {
			fail(CodePropertyNotFound, link.Name, cur.resourceType.Name())
		}

		var itemType string
		var resourceType = cur.resourceType
		navSource := cur.navigationSource
		constraint := cur.derivedConstraints
		isComplex := false
		path := cur.path

		switch {
		case nav != nil:
			itemType = nav.TargetType.Name()
			resourceType = nav.TargetType
			constraint = intersectConstraints(constraint, nav.Constraint)
			if ns, ok := w.model.NavigationTarget(pathNames(cur.path), link.Name); ok {
				navSource = ns
				switch {
				case ns.IsContained():
					if cur.path.Empty() {
						fail(CodeContainmentWithoutPath, link.Name)
					}
					path = cur.path.appendContainment(link.Name)
				default:
					path = path.resetRoot(ns.Name())
				}
			} else {
				path = cur.path.appendNavigation(link.Name)
			}
		case structural != nil:
			itemType = structural.TypeName
			resourceType = structural.ComplexType
			isComplex = true
			constraint = intersectConstraints(constraint, structural.Constraint)
			path = cur.path.appendProperty(link.Name)
		default:
			path = cur.path.appendNavigation(link.Name)
		}

		childSelected, selected := cur.selected.descend(link.Name)

		next := &scope{
			state:              StateNestedResourceInfo,
			item:               link,
			navigationSource:   navSource,
			itemType:           itemType,
			resourceType:       resourceType,
			selected:           childSelected,
			path:               path,
			skipWriting:        cur.skipWriting || !selected,
			derivedConstraints: constraint,
			parentIndex:        w.stack.index(),
			skipDupCheck:       isComplex,
			depth:              cur.depth,
		}
		w.pushScope(next)
	})
}

// pathNames renders p's segments as a flat slice of names, the form
// edm.Model.NavigationTarget expects as its binding-path key.
func pathNames(p *pathBuilder) []string {
	if p == nil {
		return nil
	}
	var names []string
	for _, seg := range p.segments {
		switch seg.kind {
		case segRoot, segProperty, segNavigation, segContainment:
			names = append(names, seg.name)
		}
	}
	return names
}

// promoteNestedLinkIfOpen handles the case where the current scope is an
// open NestedResourceInfo and the caller is about to write content into it
// (resource, resource set, entity reference link, or primitive), the scope
// is cloned in place into NestedResourceInfoWithContent, duplicate-property
// detection runs against the owning resource, and the back-end's
// with-content hook fires. If the current scope is already
// NestedResourceInfoWithContent, this instead enforces that a second
// content item is only accepted when the link is a collection. It returns
// the (possibly replaced) current scope either way; for any other current
// state it is a no-op that returns the unmodified current scope.
func (w *Writer) promoteNestedLinkIfOpen(ctx context.Context, async bool) *scope {
	cur := w.stack.top()
	switch cur.state {
	case StateNestedResourceInfo:
		link := cur.item.(*NestedResourceInfo)
		if owner := w.stack.at(cur.parentIndex); owner != nil && !cur.skipDupCheck {
			if owner.dupChecker == nil {
				owner.dupChecker = &duplicatePropertyChecker{}
			}
			if !owner.dupChecker.markWritten(link.Name) {
				fail(CodePropertyValueAlreadyWritten, link.Name)
			}
		}
		promoted := &scope{
			state:              StateNestedResourceInfoWithContent,
			item:               cur.item,
			navigationSource:   cur.navigationSource,
			itemType:           cur.itemType,
			resourceType:       cur.resourceType,
			selected:           cur.selected,
			path:               cur.path,
			skipWriting:        cur.skipWriting,
			derivedConstraints: cur.derivedConstraints,
			parentIndex:        cur.parentIndex,
			skipDupCheck:       cur.skipDupCheck,
			depth:              cur.depth,
			resourceCount:      1, // the content item that triggered promotion
		}
		w.stack.entries[w.stack.index()] = promoted
		if async {
			invoke(w.async.StartNestedResourceInfoWithContentAsync(ctx, link))
		} else {
			invoke(w.backend.StartNestedResourceInfoWithContent(link))
		}
		return promoted

	case StateNestedResourceInfoWithContent:
		link := cur.item.(*NestedResourceInfo)
		if cur.resourceCount > 0 && !link.IsCollection {
			fail(CodeMultipleItemsInNonCollectionNestedResourceInfo, link.Name)
		}
		cur.resourceCount++
		return cur

	default:
		return cur
	}
}

// WriteEntityReferenceLink writes a reference link inside an open nested
// resource info on a request payload; it does not push a scope.
func (w *Writer) WriteEntityReferenceLink(ref *EntityReferenceLink) error {
	return w.writeEntityReferenceLink(context.Background(), ref, false)
}

// WriteEntityReferenceLinkAsync is the asynchronous form of
// WriteEntityReferenceLink.
func (w *Writer) WriteEntityReferenceLinkAsync(ctx context.Context, ref *EntityReferenceLink) error {
	return w.writeEntityReferenceLink(ctx, ref, true)
}

func (w *Writer) writeEntityReferenceLink(ctx context.Context, ref *EntityReferenceLink, async bool) error {
	return w.in(async, func() {
		cur := w.stack.top()
		if !cur.isNestedLink() {
			fail(CodeEntityReferenceLinkWithoutNestedLink)
		}
		link := cur.item.(*NestedResourceInfo)
		w.promoteNestedLinkIfOpen(ctx, async)
		if async {
			invoke(w.async.WriteEntityReferenceLinkAsync(ctx, link, ref))
		} else {
			invoke(w.backend.WriteEntityReferenceLink(link, ref))
		}
	})
}
