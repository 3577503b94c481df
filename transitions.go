// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "slices"

// transitions maps each non-terminal State to the States a writer may push
// next from it, independent of any contextual predicate (those are applied
// separately in ops_set.go and ops_resource.go — e.g. "top-level resource
// writer refuses a top-level set start"). The table mirrors stream.go's
// tokOneOf idiom: membership is a linear scan over a short slice. A failed
// check's error names the current and requested states only.
var transitions = map[State][]State{
	StateStart: {
		StateResourceSet, StateDeltaResourceSet,
		StateResource, StateDeletedResource,
	},
	StateResource:         {StateNestedResourceInfo, StateProperty},
	StateDeletedResource:  {StateNestedResourceInfo, StateProperty},
	StateResourceSet:      {StateResource},
	StateDeltaResourceSet: {StateResource, StateDeletedResource, StateDeltaLink, StateDeltaDeletedLink},

	StateNestedResourceInfo: {StateNestedResourceInfoWithContent},

	StateNestedResourceInfoWithContent: {
		StateResourceSet, StateResource, StatePrimitive,
		StateDeltaResourceSet, StateDeletedResource, // OData >= 4.01 only; gated in ops_set.go's validatePush
	},

	StateProperty: {StateStream, StateString, StatePrimitive},
}

// untypedResourceSetChildren additionally permits these states as direct
// children of a ResourceSet whose declared element type is unknown.
var untypedResourceSetChildren = []State{
	StateResource, StatePrimitive, StateStream, StateString, StateResourceSet,
}

// stateOneOf reports whether cur appears in states.
func stateOneOf(cur State, states []State) bool { return slices.Contains(states, cur) }

// checkTransition reports whether moving from cur to next is permitted by
// the unconditional transition table, returning the corresponding *Error
// if not. Contextual refinements (delta-set depth limits, request/response
// gating, OData version gating) are layered on by the caller.
func checkTransition(cur, next State) *Error {
	if cur == StateError {
		return newError(CodeInvalidTransitionFromError)
	}
	if cur == StateCompleted {
		return newError(CodeInvalidTransitionFromCompleted)
	}
	allowed := transitions[cur]
	if cur == StateResourceSet {
		// The typed/untyped distinction is resolved by the caller, which
		// passes the wider set when the enclosing set has no declared
		// element type.
	}
	if stateOneOf(next, allowed) {
		return nil
	}
	switch cur {
	case StateStart:
		return newError(CodeInvalidTransitionFromStart, next)
	case StateResourceSet, StateDeltaResourceSet:
		return newError(CodeInvalidTransitionFromResourceSet, next)
	case StateNestedResourceInfoWithContent:
		return newError(CodeInvalidTransitionFromExpandedLink, next)
	default:
		return newError(CodeInvalidStateTransition, cur, next)
	}
}
