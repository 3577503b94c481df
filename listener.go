// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

// Listener is notified of a Writer's two terminal events. A Listener's
// methods are invoked synchronously on whichever goroutine drives the
// Writer; an implementation that needs to cross goroutines must do its own
// hand-off.
type Listener interface {
	// OnException is called exactly once, the first time the writer
	// transitions to StateError.
	OnException(err error)

	// OnCompleted is called exactly once, when the writer reaches
	// StateCompleted.
	OnCompleted()
}

// NopListener implements Listener with no-op methods.
type NopListener struct{}

func (NopListener) OnException(error) {}
func (NopListener) OnCompleted()      {}
