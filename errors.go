// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "fmt"

// ErrorCode classifies the errors a Writer can report. See the Code*
// constants below for the concrete taxonomy.
type ErrorCode int

const (
	codeInvalid ErrorCode = iota

	CodeInvalidStateTransition
	CodeInvalidTransitionFromStart
	CodeInvalidTransitionFromResourceSet
	CodeInvalidTransitionFromExpandedLink
	CodeInvalidTransitionFromCompleted
	CodeInvalidTransitionFromError
	CodeInvalidTransitionFromNullResource
	CodeInvalidTransitionFrom40DeletedResource

	CodeMultipleItemsInNonCollectionNestedResourceInfo
	CodeEntityReferenceLinkWithoutNestedLink
	CodeDeferredLinkInRequest
	CodePropertyValueAlreadyWritten
	CodeStreamNotDisposed
	CodeWriteEndInInvalidState

	CodeIncompatibleResourceTypes
	CodeDerivedTypeConstraintViolated
	CodeTypeNameNotFound
	CodePropertyNotFound

	CodeCountInRequest
	CodeNextLinkInRequest
	CodeDeltaLinkInRequest
	CodeDeltaLinkOnExpandedSet
	CodeDeltaResourceWithoutIDOrKey
	CodeContainmentWithoutPath
	CodeMaxNestingDepthExceeded

	CodeSyncCallOnAsyncWriter
	CodeAsyncCallOnSyncWriter
	CodeWriterDisposed
)

// codeMessage is the injected strings table for error messages, mirroring
// scanner.go's tokenStr: swapping these strings (e.g. for localization) never
// touches control flow.
var codeMessage = map[ErrorCode]string{
	CodeInvalidStateTransition:                         "invalid state transition from %s to %s",
	CodeInvalidTransitionFromStart:                      "invalid transition from start state to %s",
	CodeInvalidTransitionFromResourceSet:                "invalid transition from resource set to %s",
	CodeInvalidTransitionFromExpandedLink:               "invalid transition from expanded nested resource info to %s",
	CodeInvalidTransitionFromCompleted:                  "no further writes permitted after completion",
	CodeInvalidTransitionFromError:                      "writer is in the error state and cannot continue",
	CodeInvalidTransitionFromNullResource:                "cannot transition from a null resource",
	CodeInvalidTransitionFrom40DeletedResource:           "deleted resources may not contain nested resource info before OData 4.01",
	CodeMultipleItemsInNonCollectionNestedResourceInfo:   "multiple items in non-collection nested resource info %q",
	CodeEntityReferenceLinkWithoutNestedLink:             "entity reference link written without an open nested resource info",
	CodeDeferredLinkInRequest:                            "deferred nested resource info %q is not permitted in a request payload",
	CodePropertyValueAlreadyWritten:                      "value for property %q has already been written",
	CodeStreamNotDisposed:                                "cannot end scope while a stream or text sub-writer is still open",
	CodeWriteEndInInvalidState:                           "End is not valid in state %s",
	CodeIncompatibleResourceTypes:                        "resource type %q is not assignable to declared type %q",
	CodeDerivedTypeConstraintViolated:                    "type %q is excluded by the derived type constraint on %q",
	CodeTypeNameNotFound:                                 "type %q was not found in the model",
	CodePropertyNotFound:                                 "property %q was not found on type %q",
	CodeCountInRequest:                                   "Count is not permitted in a request payload",
	CodeNextLinkInRequest:                                "NextPageLink is not permitted in a request payload",
	CodeDeltaLinkInRequest:                               "DeltaLink is not permitted in a request payload",
	CodeDeltaLinkOnExpandedSet:                           "DeltaLink is not permitted on an expanded resource set",
	CodeDeltaResourceWithoutIDOrKey:                      "top-level delta resource %q has neither Id nor a complete set of key properties",
	CodeContainmentWithoutPath:                           "containment navigation %q requires a non-empty enclosing path",
	CodeMaxNestingDepthExceeded:                          "maximum resource nesting depth (%d) exceeded",
	CodeSyncCallOnAsyncWriter:                             "synchronous call made on a writer constructed for asynchronous use",
	CodeAsyncCallOnSyncWriter:                             "asynchronous call made on a writer constructed for synchronous use",
	CodeWriterDisposed:                                    "writer has already been disposed",
}

// Error is the concrete error type reported by a Writer, mirroring
// jtree.SyntaxError: a stable Code plus a rendered Message, with the
// original cause (if any, such as a failing Backend hook) preserved via
// Unwrap.
type Error struct {
	Code    ErrorCode
	Message string

	err error
}

func (e *Error) Error() string { return e.Message }

// Unwrap supports errors.Is / errors.As against a wrapped Backend error.
func (e *Error) Unwrap() error { return e.err }

func newError(code ErrorCode, args ...any) *Error {
	msg, ok := codeMessage[code]
	if !ok {
		msg = "unknown error"
	}
	return &Error{Code: code, Message: fmt.Sprintf(msg, args...)}
}

func wrapError(code ErrorCode, cause error, args ...any) *Error {
	e := newError(code, args...)
	e.err = cause
	return e
}

// errorCodeLabel renders code as a Prometheus label value.
func errorCodeLabel(code ErrorCode) string {
	if name, ok := codeName[code]; ok {
		return name
	}
	return "unknown"
}

var codeName = map[ErrorCode]string{
	CodeInvalidStateTransition:                         "invalid_state_transition",
	CodeInvalidTransitionFromStart:                      "invalid_transition_from_start",
	CodeInvalidTransitionFromResourceSet:                "invalid_transition_from_resource_set",
	CodeInvalidTransitionFromExpandedLink:               "invalid_transition_from_expanded_link",
	CodeInvalidTransitionFromCompleted:                  "invalid_transition_from_completed",
	CodeInvalidTransitionFromError:                      "invalid_transition_from_error",
	CodeInvalidTransitionFromNullResource:                "invalid_transition_from_null_resource",
	CodeInvalidTransitionFrom40DeletedResource:           "invalid_transition_from_40_deleted_resource",
	CodeMultipleItemsInNonCollectionNestedResourceInfo:   "multiple_items_in_non_collection_nested_resource_info",
	CodeEntityReferenceLinkWithoutNestedLink:             "entity_reference_link_without_nested_link",
	CodeDeferredLinkInRequest:                            "deferred_link_in_request",
	CodePropertyValueAlreadyWritten:                      "property_value_already_written",
	CodeStreamNotDisposed:                                "stream_not_disposed",
	CodeWriteEndInInvalidState:                           "write_end_in_invalid_state",
	CodeIncompatibleResourceTypes:                        "incompatible_resource_types",
	CodeDerivedTypeConstraintViolated:                    "derived_type_constraint_violated",
	CodeTypeNameNotFound:                                 "type_name_not_found",
	CodePropertyNotFound:                                 "property_not_found",
	CodeCountInRequest:                                   "count_in_request",
	CodeNextLinkInRequest:                                "next_link_in_request",
	CodeDeltaLinkInRequest:                               "delta_link_in_request",
	CodeDeltaLinkOnExpandedSet:                           "delta_link_on_expanded_set",
	CodeDeltaResourceWithoutIDOrKey:                      "delta_resource_without_id_or_key",
	CodeContainmentWithoutPath:                           "containment_without_path",
	CodeMaxNestingDepthExceeded:                          "max_nesting_depth_exceeded",
	CodeSyncCallOnAsyncWriter:                             "sync_call_on_async_writer",
	CodeAsyncCallOnSyncWriter:                             "async_call_on_sync_writer",
	CodeWriterDisposed:                                    "writer_disposed",
}

// backendError marks an error returned by a Backend/AsyncBackend hook so the
// exception interceptor (see driver.go) can distinguish "the engine refused
// this call" from "the back-end failed while handling a call the engine
// allowed", matching jtree's handlerError / SyntaxError split.
type backendError struct{ error }

func (b backendError) Unwrap() error { return b.error }
