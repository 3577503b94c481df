// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"errors"
	"testing"

	"github.com/creachadair/mds/mtest"
)

// countingListener records how many times each terminal event fires, so
// tests can assert the "exactly once" invariants in listener.go.
type countingListener struct {
	exceptions int
	completed  int
	lastErr    error
}

func (l *countingListener) OnException(err error) {
	l.exceptions++
	l.lastErr = err
}

func (l *countingListener) OnCompleted() { l.completed++ }

func TestFailPanics(t *testing.T) {
	mtest.MustPanic(t, func() { fail(CodeWriterDisposed) })
}

func TestInvokePropagatesBackendError(t *testing.T) {
	mtest.MustPanic(t, func() { invoke(errors.New("backend exploded")) })
	invoke(nil) // must not panic
}

// TestInRecoversValidationAndBackendErrors confirms w.in turns a fail() or
// invoke() panic into a returned error and drives the writer into its
// Error state, without leaking the panic to the caller.
func TestInRecoversValidationAndBackendErrors(t *testing.T) {
	w := newTestWriter(t, false)

	err := w.in(false, func() { fail(CodeWriterDisposed) })
	if err == nil {
		t.Fatal("in: got nil error, want CodeWriterDisposed")
	}
	var oe *Error
	if !errors.As(err, &oe) || oe.Code != CodeWriterDisposed {
		t.Errorf("in: got %v, want *Error{Code: CodeWriterDisposed}", err)
	}
	if !w.errored {
		t.Error("in: writer should be in the error state after a fail() panic")
	}

	w2 := newTestWriter(t, false)
	cause := errors.New("backend exploded")
	if err := w2.in(false, func() { invoke(cause) }); !errors.Is(err, cause) {
		t.Errorf("in: got %v, want the backend error %v", err, cause)
	}
	if !w2.errored {
		t.Error("in: writer should be in the error state after an invoke() panic")
	}
}

func TestInReRaisesUnexpectedPanics(t *testing.T) {
	w := newTestWriter(t, false)
	mtest.MustPanic(t, func() {
		w.in(false, func() { panic("not an odata error") })
	})
}

// TestEnterErrorIsIdempotent confirms a second error transition is a no-op,
// matching the "second error transition is a no-op" invariant documented
// in driver.go: the listener's OnException fires exactly once, for the
// first error.
func TestEnterErrorIsIdempotent(t *testing.T) {
	w := newTestWriter(t, false)
	lis := &countingListener{}
	w.opts.Listener = lis

	first := newError(CodeWriterDisposed)
	second := newError(CodeStreamNotDisposed)

	w.enterError(first)
	w.enterError(second)

	if !w.errored {
		t.Fatal("writer should be in the error state")
	}
	if lis.exceptions != 1 {
		t.Errorf("OnException called %d times, want 1", lis.exceptions)
	}
	if lis.lastErr != first {
		t.Errorf("OnException reported %v, want the first error %v", lis.lastErr, first)
	}
}
