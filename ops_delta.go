// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "context"

// WriteDeltaLink writes a top-level delta link (an unchanged-relationship
// entry) inside an open delta resource set.
func (w *Writer) WriteDeltaLink(link *DeltaLinkItem) error {
	return w.writeDeltaLinkItem(context.Background(), link, false, false)
}

// WriteDeltaLinkAsync is the asynchronous form of WriteDeltaLink.
func (w *Writer) WriteDeltaLinkAsync(ctx context.Context, link *DeltaLinkItem) error {
	return w.writeDeltaLinkItem(ctx, link, true, false)
}

// WriteDeltaDeletedLink writes a top-level delta deleted-link entry inside
// an open delta resource set.
func (w *Writer) WriteDeltaDeletedLink(link *DeltaLinkItem) error {
	return w.writeDeltaLinkItem(context.Background(), link, false, true)
}

// WriteDeltaDeletedLinkAsync is the asynchronous form of
// WriteDeltaDeletedLink.
func (w *Writer) WriteDeltaDeletedLinkAsync(ctx context.Context, link *DeltaLinkItem) error {
	return w.writeDeltaLinkItem(ctx, link, true, true)
}

// writeDeltaLinkItem implements the immediate push+write+pop shape a delta
// link entry has: unlike a resource, it carries no content of its own, so
// there is no matching End call. It is permitted only directly inside a
// top-level delta resource set (transitions.go admits StateDeltaLink and
// StateDeltaDeletedLink only from StateDeltaResourceSet).
func (w *Writer) writeDeltaLinkItem(ctx context.Context, link *DeltaLinkItem, async, deleted bool) error {
	return w.in(async, func() {
		cur := w.stack.top()
		target := StateDeltaLink
		if deleted {
			target = StateDeltaDeletedLink
		}
		if cur.state != StateDeltaResourceSet {
			if e := checkTransition(cur.state, target); e != nil {
				panic(e)
			}
		}
		if !w.stack.isTopLevel() {
			fail(CodeDeltaLinkOnExpandedSet)
		}

		w.pushScope(&scope{state: target, item: link, depth: cur.depth})

		if deleted {
			if async {
				invoke(w.async.WriteDeltaDeletedLinkAsync(ctx, link))
			} else {
				invoke(w.backend.WriteDeltaDeletedLink(link))
			}
		} else {
			if async {
				invoke(w.async.WriteDeltaLinkAsync(ctx, link))
			} else {
				invoke(w.backend.WriteDeltaLink(link))
			}
		}

		w.popScope()
	})
}
