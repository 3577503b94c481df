// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"context"
	"io"
)

// Backend is the abstract extension point a format back-end (JSON, for the
// reference implementation in package odatajson) implements. Writer calls
// exactly one Backend method per state transition, after validating the
// transition and updating its own scope stack; Backend never sees an
// invalid call.
//
// Every method may return an error, which the Writer's exception
// interceptor turns into a transition to StateError before re-raising it
// to the caller (see driver.go).
type Backend interface {
	StartPayload() error
	EndPayload() error

	StartResource(*Resource) error
	EndResource(*Resource) error

	StartResourceSet(*ResourceSet) error
	EndResourceSet(*ResourceSet) error

	StartDeltaResourceSet(*ResourceSet) error
	EndDeltaResourceSet(*ResourceSet) error

	StartDeletedResource(*DeletedResource) error
	EndDeletedResource(*DeletedResource) error

	StartProperty(*Property) error
	EndProperty(*Property) error

	StartNestedResourceInfoWithContent(*NestedResourceInfo) error
	EndNestedResourceInfoWithContent(*NestedResourceInfo) error

	WriteDeferredNestedResourceInfo(*NestedResourceInfo) error
	WriteEntityReferenceLink(parent *NestedResourceInfo, ref *EntityReferenceLink) error

	WritePrimitiveValue(v any) error

	StartBinaryStream() (io.Writer, error)
	EndBinaryStream() error

	StartTextWriter() (io.Writer, error)
	EndTextWriter() error

	WriteDeltaLink(*DeltaLinkItem) error
	WriteDeltaDeletedLink(*DeltaLinkItem) error

	Flush() error
}

// AsyncBackend is implemented by a back-end that wants to observe
// cancellation on its I/O-capable hooks. A Writer constructed with
// NewAsyncWriter requires its Backend also implement AsyncBackend; the
// engine calls the Async method in preference to the synchronous one in
// that mode, threading through the caller's context.Context at every
// point the engine would otherwise block on back-end I/O.
type AsyncBackend interface {
	Backend

	StartPayloadAsync(context.Context) error
	EndPayloadAsync(context.Context) error

	StartResourceAsync(context.Context, *Resource) error
	EndResourceAsync(context.Context, *Resource) error

	StartResourceSetAsync(context.Context, *ResourceSet) error
	EndResourceSetAsync(context.Context, *ResourceSet) error

	StartDeltaResourceSetAsync(context.Context, *ResourceSet) error
	EndDeltaResourceSetAsync(context.Context, *ResourceSet) error

	StartDeletedResourceAsync(context.Context, *DeletedResource) error
	EndDeletedResourceAsync(context.Context, *DeletedResource) error

	StartPropertyAsync(context.Context, *Property) error
	EndPropertyAsync(context.Context, *Property) error

	StartNestedResourceInfoWithContentAsync(context.Context, *NestedResourceInfo) error
	EndNestedResourceInfoWithContentAsync(context.Context, *NestedResourceInfo) error

	WriteDeferredNestedResourceInfoAsync(context.Context, *NestedResourceInfo) error
	WriteEntityReferenceLinkAsync(context.Context, *NestedResourceInfo, *EntityReferenceLink) error

	WritePrimitiveValueAsync(context.Context, any) error

	StartBinaryStreamAsync(context.Context) (io.Writer, error)
	EndBinaryStreamAsync(context.Context) error

	StartTextWriterAsync(context.Context) (io.Writer, error)
	EndTextWriterAsync(context.Context) error

	WriteDeltaLinkAsync(context.Context, *DeltaLinkItem) error
	WriteDeltaDeletedLinkAsync(context.Context, *DeltaLinkItem) error

	FlushAsync(context.Context) error
}

// ResourcePreparer is an optional interface a Backend may implement to
// inspect or adjust a resource immediately before the writer starts it
// (the "prepare_resource_for_write_start" scope-factory hook). A Backend
// that does not implement it is treated exactly as if PrepareResourceForWriteStart
// were a no-op: an optional-capability pattern gated by a type assertion,
// the same shape as an optional comment handler on a parse stream.
type ResourcePreparer interface {
	PrepareResourceForWriteStart(*Resource) error
}

// DeletedResourcePreparer is ResourcePreparer's counterpart for
// StartDeletedResource ("prepare_deleted_resource_for_write_start").
type DeletedResourcePreparer interface {
	PrepareDeletedResourceForWriteStart(*DeletedResource) error
}
