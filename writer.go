// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"github.com/creachadair/odata/edm"
)

type writerMode byte

const (
	modeSync writerMode = iota
	modeAsync
)

// Writer is a push-based, stateful OData writer. See the package doc
// comment for the calling discipline. A Writer is not safe for concurrent
// use from multiple goroutines.
type Writer struct {
	model   edm.Model
	backend Backend
	async   AsyncBackend
	mode    writerMode
	opts    WriterOptions

	// forResourceSet records whether the writer's top-level payload shape
	// is a resource set (Start -> ResourceSet/DeltaResourceSet) or a single
	// resource (Start -> Resource/DeletedResource); it is fixed at
	// construction. A top-level resource writer refuses a top-level set
	// start, and vice versa.
	forResourceSet bool

	stack *scopeStack

	disposed bool
	errored  bool

	// openStream holds the currently open Stream/String scope's disposer,
	// non-nil exactly while a binary/text sub-writer has not yet been
	// disposed.
	openStream *subWriterState
}

// NewWriter constructs a Writer in synchronous calling mode. forResourceSet
// selects whether the writer's top-level payload is a resource set
// (StartResourceSet/StartDeltaResourceSet) or a single resource
// (StartResource/StartDeletedResource); calling the other family at the
// top level fails.
func NewWriter(model edm.Model, backend Backend, forResourceSet bool, opts WriterOptions) *Writer {
	w := newWriter(model, forResourceSet, opts)
	w.backend = backend
	w.mode = modeSync
	return w
}

// NewAsyncWriter constructs a Writer in asynchronous calling mode; only the
// *Async family of methods may be called.
func NewAsyncWriter(model edm.Model, backend AsyncBackend, forResourceSet bool, opts WriterOptions) *Writer {
	w := newWriter(model, forResourceSet, opts)
	w.backend = backend
	w.async = backend
	w.mode = modeAsync
	return w
}

func newWriter(model edm.Model, forResourceSet bool, opts WriterOptions) *Writer {
	root := &scope{state: StateStart}
	return &Writer{
		model:          model,
		opts:           opts,
		forResourceSet: forResourceSet,
		stack:          &scopeStack{entries: []*scope{root}},
	}
}

// Depth reports the writer's current scope stack depth (1 means nothing has
// been written yet).
func (w *Writer) Depth() int { return w.stack.depth() }

// State reports the writer's current state.
func (w *Writer) State() State {
	if w.errored {
		return StateError
	}
	return w.stack.top().state
}
