// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "context"

// StartProperty begins a single property value on the current resource.
func (w *Writer) StartProperty(prop *Property) error {
	return w.startProperty(context.Background(), prop, false)
}

// StartPropertyAsync is the asynchronous form of StartProperty.
func (w *Writer) StartPropertyAsync(ctx context.Context, prop *Property) error {
	return w.startProperty(ctx, prop, true)
}

func (w *Writer) startProperty(ctx context.Context, prop *Property, async bool) error {
	return w.in(async, func() {
		cur := w.stack.top()
		if !cur.isResourceBase() {
			if e := checkTransition(cur.state, StateProperty); e != nil {
				panic(e)
			}
		}
		if cur.dupChecker == nil {
			cur.dupChecker = &duplicatePropertyChecker{}
		}
		if !cur.dupChecker.markWritten(prop.Name) {
			fail(CodePropertyValueAlreadyWritten, prop.Name)
		}

		childSelected, selected := cur.selected.descend(prop.Name)

		next := &scope{
			state:        StateProperty,
			item:         prop,
			itemType:     prop.TypeName,
			selected:     childSelected,
			path:         cur.path.appendProperty(prop.Name),
			skipWriting:  cur.skipWriting || !selected,
			depth:        cur.depth,
			navigationSource: cur.navigationSource,
		}
		w.pushScope(next)

		if async {
			invoke(w.async.StartPropertyAsync(ctx, prop))
		} else {
			invoke(w.backend.StartProperty(prop))
		}
	})
}

// WritePrimitive writes a primitive value, either as the content of an open
// property (StateProperty -> StatePrimitive -> pop) or directly inside a
// collection-typed nested resource info or untyped resource set.
func (w *Writer) WritePrimitive(v any) error {
	return w.writePrimitive(context.Background(), v, false)
}

// WritePrimitiveAsync is the asynchronous form of WritePrimitive.
func (w *Writer) WritePrimitiveAsync(ctx context.Context, v any) error {
	return w.writePrimitive(ctx, v, true)
}

func (w *Writer) writePrimitive(ctx context.Context, v any, async bool) error {
	return w.in(async, func() {
		cur := w.promoteNestedLinkIfOpen(ctx, async)

		if cur.state == StateProperty && cur.valueWritten {
			fail(CodePropertyValueAlreadyWritten, propertyName(cur))
		}
		w.validatePush(cur, StatePrimitive)
		if cur.state == StateProperty {
			cur.valueWritten = true
		}

		next := &scope{
			state:       StatePrimitive,
			selected:    cur.selected,
			path:        cur.path,
			skipWriting: cur.skipWriting,
			depth:       cur.depth,
		}
		w.pushScope(next)

		if async {
			invoke(w.async.WritePrimitiveValueAsync(ctx, v))
		} else {
			invoke(w.backend.WritePrimitiveValue(v))
		}

		w.popScope()
	})
}

func propertyName(s *scope) string {
	if p, ok := s.item.(*Property); ok {
		return p.Name
	}
	return ""
}
