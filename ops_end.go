// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"context"

	"github.com/hashicorp/go-multierror"
)

// End closes the writer's current scope, firing the matching EndX hook and,
// if the scope stack drains back to its root, completing the payload.
func (w *Writer) End() error {
	return w.end(context.Background(), false)
}

// EndAsync is the asynchronous form of End.
func (w *Writer) EndAsync(ctx context.Context) error {
	return w.end(ctx, true)
}

func (w *Writer) end(ctx context.Context, async bool) error {
	return w.in(async, func() {
		cur := w.stack.top()
		if cur.state == StateStart || cur.state == StateCompleted {
			fail(CodeWriteEndInInvalidState, cur.state)
		}

		s := w.popScope()
		w.endScope(ctx, s, async)

		if w.stack.atRoot() {
			if async {
				invoke(w.async.EndPayloadAsync(ctx))
			} else {
				invoke(w.backend.EndPayload())
			}
			w.stack.top().state = StateCompleted
			w.opts.listener().OnCompleted()
		}
	})
}

// endScope dispatches the End hook matching s's state, mirroring the
// Start dispatch in ops_resource.go/ops_set.go/ops_property.go. s has
// already been popped off the stack.
func (w *Writer) endScope(ctx context.Context, s *scope, async bool) {
	switch s.state {
	case StateResource:
		res := s.item.(*Resource)
		if async {
			invoke(w.async.EndResourceAsync(ctx, res))
		} else {
			invoke(w.backend.EndResource(res))
		}

	case StateDeletedResource:
		res := s.item.(*Resource)
		dr := &DeletedResource{Resource: *res}
		if async {
			invoke(w.async.EndDeletedResourceAsync(ctx, dr))
		} else {
			invoke(w.backend.EndDeletedResource(dr))
		}

	case StateResourceSet:
		set := s.item.(*ResourceSet)
		if async {
			invoke(w.async.EndResourceSetAsync(ctx, set))
		} else {
			invoke(w.backend.EndResourceSet(set))
		}

	case StateDeltaResourceSet:
		set := s.item.(*ResourceSet)
		if async {
			invoke(w.async.EndDeltaResourceSetAsync(ctx, set))
		} else {
			invoke(w.backend.EndDeltaResourceSet(set))
		}

	case StateProperty:
		// A property with no value written (s.valueWritten == false) and no
		// stream/string child is legitimate, e.g. an OData null.
		prop := s.item.(*Property)
		if async {
			invoke(w.async.EndPropertyAsync(ctx, prop))
		} else {
			invoke(w.backend.EndProperty(prop))
		}

	case StateNestedResourceInfo:
		link := s.item.(*NestedResourceInfo)
		if w.opts.Request {
			fail(CodeDeferredLinkInRequest, link.Name)
		}
		if async {
			invoke(w.async.WriteDeferredNestedResourceInfoAsync(ctx, link))
		} else {
			invoke(w.backend.WriteDeferredNestedResourceInfo(link))
		}

	case StateNestedResourceInfoWithContent:
		link := s.item.(*NestedResourceInfo)
		if async {
			invoke(w.async.EndNestedResourceInfoWithContentAsync(ctx, link))
		} else {
			invoke(w.backend.EndNestedResourceInfoWithContent(link))
		}

	case StatePrimitive:
		// No dedicated end hook: WritePrimitiveValue already delivered the
		// value to the back-end in full; popping the scope is enough.

	case StateDeltaLink, StateDeltaDeletedLink:
		// Not reached in practice: writeDeltaLinkItem pushes and pops these
		// within one call, so End never finds one on top of the stack.
	}
}

// Flush asks the back-end to flush any buffered output.
func (w *Writer) Flush() error {
	return w.flush(context.Background(), false)
}

// FlushAsync is the asynchronous form of Flush.
func (w *Writer) FlushAsync(ctx context.Context) error {
	return w.flush(ctx, true)
}

func (w *Writer) flush(ctx context.Context, async bool) error {
	return w.in(async, func() {
		if async {
			invoke(w.async.FlushAsync(ctx))
		} else {
			invoke(w.backend.Flush())
		}
	})
}

// Dispose releases the writer, refusing all further calls. Calling Dispose
// more than once is a no-op, an idempotent-Close convention. If a binary
// stream or text writer was left open, Dispose ends it and flushes the
// back-end; either step can fail independently, so their errors are
// aggregated rather than one silently shadowing the other.
func (w *Writer) Dispose() error {
	if w.disposed {
		return nil
	}
	w.disposed = true

	var result *multierror.Error
	if w.openStream != nil {
		if err := w.openStream.dispose(); err != nil {
			result = multierror.Append(result, err)
		}
		w.openStream = nil
	}
	if err := w.backend.Flush(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
