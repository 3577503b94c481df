// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odatajson

import "bytes"

// frameKind distinguishes the two JSON container shapes a frame renders.
type frameKind byte

const (
	frameObject frameKind = iota
	frameArray
)

// frame is one open JSON container on the writer's output stack: either an
// object (comma-separated "key":value members) or an array (comma-separated
// bare values). It plays the same role for rendering that scope.go's scope
// plays for validation in the root package, but it only ever needs to know
// "what comes next needs a comma or not" — far less state than a scope.
type frame struct {
	kind      frameKind
	first     bool // true until the first member/element has been written
	pendingKey bool // true immediately after an object member's key has been written and is awaiting its value
	wrapsRoot bool // true for the "value" array of a top-level resource set
}

// out accumulates the rendered document in memory; Writer.Flush is what
// actually reaches the caller's io.Writer, matching odata.Backend's
// separation between per-hook writes and an explicit Flush.
type out struct {
	buf bytes.Buffer
}

func (o *out) writeByte(b byte) { o.buf.WriteByte(b) }
func (o *out) writeString(s string) { o.buf.WriteString(s) }
func (o *out) writeBytes(b []byte) { o.buf.Write(b) }

// frameStack is the writer's stack of open JSON containers.
type frameStack struct {
	frames []*frame
}

func (s *frameStack) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *frameStack) push(f *frame) { s.frames = append(s.frames, f) }

func (s *frameStack) pop() *frame {
	n := len(s.frames)
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return f
}

func (s *frameStack) empty() bool { return len(s.frames) == 0 }

// beforeValue prepares the top frame for a value about to be written,
// emitting a separating comma where needed. It must be called immediately
// before every value a back-end hook writes, whether that value is a
// literal, a quoted string, or the opening brace/bracket of a nested
// container: the comma-or-not decision is identical in every case, which is
// why every Write*/Start* hook below funnels through it rather than each
// re-deriving the same first/pendingKey logic.
func (w *Writer) beforeValue() {
	f := w.stack.top()
	if f == nil {
		return
	}
	if f.pendingKey {
		f.pendingKey = false
		return
	}
	if !f.first {
		w.o.writeByte(',')
	}
	f.first = false
}

// writeKey emits an object member's key (with a separating comma against
// any prior member) and marks the frame as awaiting that member's value.
func (w *Writer) writeKey(name string) {
	f := w.stack.top()
	if !f.first {
		w.o.writeByte(',')
	}
	f.first = false
	w.writeQuoted(name)
	w.o.writeByte(':')
	f.pendingKey = true
}

// pushContainer writes the opening delimiter for kind, comma-separated
// against the enclosing frame, and pushes a new frame for it.
func (w *Writer) pushContainer(kind frameKind) *frame {
	w.beforeValue()
	if kind == frameObject {
		w.o.writeByte('{')
	} else {
		w.o.writeByte('[')
	}
	f := &frame{kind: kind, first: true}
	w.stack.push(f)
	return f
}

// popContainer closes the top frame, writing its closing delimiter.
func (w *Writer) popContainer() *frame {
	f := w.stack.pop()
	if f.kind == frameObject {
		w.o.writeByte('}')
	} else {
		w.o.writeByte(']')
	}
	return f
}
