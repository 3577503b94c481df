// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"context"

	"go.uber.org/zap"
)

// This file holds the exception-interceptor plumbing every public entry
// point in ops_*.go / streamio.go goes through. It
// mirrors jtree/stream.go's recoverParseError / checkError / syntaxError
// trio: internal validation failures and back-end hook failures are both
// raised by panicking with a typed value, and a single recover at the
// boundary of each public call turns that panic into a returned error —
// while also, unlike the read-only parser, driving the writer's Error
// transition and listener notification.

// fail raises a validation error, to be caught by the deferred recover in
// the public method that called in().
func fail(code ErrorCode, args ...any) { panic(newError(code, args...)) }

// invoke panics with a backendError if a back-end hook returned a non-nil
// error; see jtree/stream.go's checkError.
func invoke(err error) {
	if err != nil {
		panic(backendError{err})
	}
}

// in runs body, the shared per-operation validation-and-hook-call logic,
// under the standard guard: sync/async affinity, disposal, and the
// already-in-Error short-circuit are checked first; any panic raised by
// body (via fail or invoke) is recovered, turned into the returned error,
// and (save for a second error transition, which is a no-op so teardown
// paths stay simple) drives the writer into StateError and notifies the
// listener exactly once.
func (w *Writer) in(async bool, body func()) (err error) {
	defer w.recoverInto(&err)

	if async && w.mode != modeAsync {
		fail(CodeAsyncCallOnSyncWriter)
	}
	if !async && w.mode != modeSync {
		fail(CodeSyncCallOnAsyncWriter)
	}
	if w.disposed {
		fail(CodeWriterDisposed)
	}
	if w.errored {
		fail(CodeInvalidTransitionFromError)
	}
	if w.openStream != nil {
		fail(CodeStreamNotDisposed)
	}
	body()
	return nil
}

func (w *Writer) recoverInto(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	switch e := r.(type) {
	case *Error:
		w.enterError(e)
		*errp = e
	case backendError:
		w.enterError(e.error)
		*errp = e.error
	default:
		panic(r)
	}
}

func (w *Writer) enterError(cause error) {
	if w.errored {
		return // second error transition is a no-op; see package doc.
	}
	w.errored = true
	if oe, ok := cause.(*Error); ok {
		w.opts.Metrics.observeError(oe.Code)
	}
	w.opts.logger().Error("writer entering error state", zap.Error(cause))
	w.opts.listener().OnException(cause)
}

// maybeStartPayload fires the StartPayload hook the first time a top-level
// Start* call pushes past the root scope. Called before the new scope is
// pushed, so atRoot still reflects the pre-push stack.
func (w *Writer) maybeStartPayload(ctx context.Context, async bool) {
	if !w.stack.atRoot() {
		return
	}
	if async {
		invoke(w.async.StartPayloadAsync(ctx))
	} else {
		invoke(w.backend.StartPayload())
	}
}

// pushScope pushes s, updating depth/metrics bookkeeping shared by every
// Start* operation.
func (w *Writer) pushScope(s *scope) {
	w.stack.push(s)
	w.opts.Metrics.observePush(s.state)
	w.opts.Metrics.observeDepth(w.stack.depth())
}

// popScope pops the current scope and updates the depth gauge. It does not
// complete the payload: when the stack has drained back to just the root,
// the End operation invokes EndPayload and marks the root completed itself,
// since that must happen under the same guarded/recovered call.
func (w *Writer) popScope() *scope {
	s := w.stack.pop()
	w.opts.Metrics.observeDepth(w.stack.depth())
	return s
}
