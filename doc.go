// Copyright (C) 2026 The odata Authors. All Rights Reserved.

// Package odata implements a push-based, stateful writer engine for OData
// payloads.
//
// # Writing
//
// The Writer type drives a format back-end through a sequence of high-level
// calls — StartResourceSet, StartResource, StartNestedResourceInfo,
// WritePrimitive, End, and so on — validating at every step that the call
// sequence produces a well-formed OData document against a supplied EDM
// model. Writer itself emits no bytes; it delegates byte production to a
// Backend (or AsyncBackend) implementation through a small set of hook
// methods.
//
//	w := odata.NewWriter(model, backend, true, odata.WriterOptions{})
//	if err := w.StartResourceSet(&odata.ResourceSet{}); err != nil {
//	   log.Fatalf("StartResourceSet failed: %v", err)
//	}
//
// # State and scopes
//
// A Writer tracks its position in the document with a stack of scopes, one
// per nesting level, each carrying the State the writer was in when the
// scope was pushed. Every public call first validates the requested
// transition against the writer's current State; an illegal transition
// returns an *Error without invoking the back-end.
//
// # Sync and async
//
// Every operation has a synchronous form (Writer.StartResource) and an
// asynchronous form (Writer.StartResourceAsync) that differ only in
// whether the back-end hook is given a context.Context it may use to
// observe cancellation. A Writer is constructed for one calling mode or the
// other; calling the wrong family fails with CodeSyncCallOnAsyncWriter or
// CodeAsyncCallOnSyncWriter. A Writer is not safe for concurrent use.
//
// # Errors
//
// Once a back-end hook or a validation step fails, the Writer transitions
// to StateError and every subsequent call (other than a second failure)
// returns CodeInvalidTransitionFromError. Errors are reported as *Error,
// whose Code identifies which of the taxonomy in this package's error
// constants applies.
package odata
