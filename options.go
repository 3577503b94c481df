// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "go.uber.org/zap"

// ODataVersion selects version-gated behavior: a DeletedResource carrying
// a nested resource link, for instance, is only valid under OData 4.01
// and later.
type ODataVersion int

const (
	ODataV4 ODataVersion = iota
	ODataV401
)

// WriterOptions configures a Writer at construction. The zero value is a
// response-payload writer at OData 4.0 with a nesting depth limit of 128
// and no observability hooks.
type WriterOptions struct {
	// Request, if true, constructs a request-payload writer: Count,
	// NextPageLink, DeltaLink, and deferred (unexpanded) nested links are
	// all rejected.
	Request bool

	// Version gates the 4.01-only transitions (DeletedResource ->
	// NestedResourceInfo, DeltaResourceSet under an expanded link).
	Version ODataVersion

	// MaxNestingDepth bounds how deeply resources may nest. Zero means the
	// default of 128.
	MaxNestingDepth int

	// Listener, if non-nil, is notified of OnCompleted / OnException.
	Listener Listener

	// Metrics, if non-nil, receives Prometheus observations of scope
	// pushes, depth, and errors.
	Metrics *Metrics

	// Logger, if non-nil, receives structured diagnostic logging of state
	// transitions and back-end hook failures. A nil Logger is treated as
	// zap.NewNop().
	Logger *zap.Logger
}

func (o WriterOptions) maxDepth() int {
	if o.MaxNestingDepth > 0 {
		return o.MaxNestingDepth
	}
	return 128
}

func (o WriterOptions) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o WriterOptions) listener() Listener {
	if o.Listener != nil {
		return o.Listener
	}
	return NopListener{}
}
