// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"context"
	"io"
)

// subWriterState tracks an open binary stream or text writer sub-writer:
// the writer refuses every other call while one is open, and the caller
// must Close it (which pops the Stream/String scope and invokes the End
// hook) before resuming the main writer.
type subWriterState struct {
	w       *Writer
	async   bool
	ctx     context.Context
	sink    io.Writer
	isText  bool
	closed  bool
}

// Write implements io.Writer, forwarding to the back-end's stream sink.
// Writing after Close returns io.ErrClosedPipe, the same signal a spent
// pipe gives a caller that keeps writing.
func (s *subWriterState) Write(p []byte) (int, error) {
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	return s.sink.Write(p)
}

// Close ends the sub-writer, invoking the matching End hook and popping the
// Stream/String scope, then clears the Writer's openStream so ordinary
// calls may resume. Close runs under the same guard as every other Writer
// operation, so a failing End hook drives the writer into its Error state
// exactly as any other back-end failure would.
func (s *subWriterState) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	w := s.w
	w.openStream = nil
	return w.in(s.async, func() {
		invoke(s.dispose())
		w.popScope()
	})
}

func (s *subWriterState) dispose() error {
	if s.isText {
		if s.async {
			return s.w.async.EndTextWriterAsync(s.ctx)
		}
		return s.w.backend.EndTextWriter()
	}
	if s.async {
		return s.w.async.EndBinaryStreamAsync(s.ctx)
	}
	return s.w.backend.EndBinaryStream()
}

// CreateBinaryWriteStream opens a binary stream for the current property
// or as an element of an untyped resource set; expanded nested-link
// content does not admit a stream. The returned
// io.WriteCloser must be closed before any other Writer method is called.
func (w *Writer) CreateBinaryWriteStream() (io.WriteCloser, error) {
	return w.createSubWriter(context.Background(), false, false)
}

// CreateBinaryWriteStreamAsync is the asynchronous form of
// CreateBinaryWriteStream.
func (w *Writer) CreateBinaryWriteStreamAsync(ctx context.Context) (io.WriteCloser, error) {
	return w.createSubWriter(ctx, true, false)
}

// CreateTextWriter opens a text (string) sub-writer for the current
// property. The returned io.WriteCloser must be closed before any other
// Writer method is called.
func (w *Writer) CreateTextWriter() (io.WriteCloser, error) {
	return w.createSubWriter(context.Background(), false, true)
}

// CreateTextWriterAsync is the asynchronous form of CreateTextWriter.
func (w *Writer) CreateTextWriterAsync(ctx context.Context) (io.WriteCloser, error) {
	return w.createSubWriter(ctx, true, true)
}

func (w *Writer) createSubWriter(ctx context.Context, async, text bool) (sw io.WriteCloser, err error) {
	err = w.in(async, func() {
		cur := w.promoteNestedLinkIfOpen(ctx, async)

		target := StateStream
		if text {
			target = StateString
		}
		w.validatePush(cur, target)

		var sink io.Writer
		var herr error
		if text {
			if async {
				sink, herr = w.async.StartTextWriterAsync(ctx)
			} else {
				sink, herr = w.backend.StartTextWriter()
			}
		} else {
			if async {
				sink, herr = w.async.StartBinaryStreamAsync(ctx)
			} else {
				sink, herr = w.backend.StartBinaryStream()
			}
		}
		invoke(herr)

		w.pushScope(&scope{state: target, selected: cur.selected, path: cur.path, skipWriting: cur.skipWriting, depth: cur.depth})

		state := &subWriterState{w: w, async: async, ctx: ctx, sink: sink, isText: text}
		w.openStream = state
		sw = state
	})
	return sw, err
}
