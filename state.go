// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

// State is the writer's position in the OData state machine. Each value on
// the scope stack records the State it was pushed under.
type State byte

// Constants defining the valid State values.
const (
	StateStart State = iota // initial state, nothing written yet

	StateResourceSet
	StateDeltaResourceSet
	StateResource
	StateDeletedResource
	StateNestedResourceInfo
	StateNestedResourceInfoWithContent
	StatePrimitive
	StateProperty
	StateStream
	StateString
	StateDeltaLink
	StateDeltaDeletedLink
	StateCompleted
	StateError

	// Do not modify the order of these constants without updating
	// stateOneOf and the transition tables below.
)

var stateStr = [...]string{
	StateStart:                         "start",
	StateResourceSet:                   "resource set",
	StateDeltaResourceSet:              "delta resource set",
	StateResource:                      "resource",
	StateDeletedResource:               "deleted resource",
	StateNestedResourceInfo:            "nested resource info",
	StateNestedResourceInfoWithContent: "nested resource info with content",
	StatePrimitive:                     "primitive",
	StateProperty:                      "property",
	StateStream:                        "binary stream",
	StateString:                        "text writer",
	StateDeltaLink:                     "delta link",
	StateDeltaDeletedLink:              "delta deleted link",
	StateCompleted:                     "completed",
	StateError:                         "error",
}

func (s State) String() string {
	v := int(s)
	if v < 0 || v >= len(stateStr) {
		return "invalid state"
	}
	return stateStr[v]
}

// IsTerminal reports whether s admits no further transition except Error
// reaching itself again (StateCompleted, StateError).
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateError
}
