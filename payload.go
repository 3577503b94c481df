// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

// A ResourceSet is the payload item passed to StartResourceSet. Count and
// the link fields are only meaningful on a response payload; writing any of
// them on a request payload is an error.
type ResourceSet struct {
	// TypeName, if set, names the declared (possibly untyped-collection)
	// element type of the set, e.g. "Collection(NS.Customer)".
	TypeName string

	Count          *int64
	NextPageLink   string
	DeltaLink      string

	SerializationInfo *SerializationInfo
}

// A Resource is the payload item passed to StartResource.
type Resource struct {
	// TypeName, if set, is the resource's declared concrete type name,
	// e.g. "NS.Customer". If empty, the type is inferred from context (the
	// enclosing scope's declared type).
	TypeName string

	// Properties are the resource's already-known structural property
	// values, used only for delta-id/key validation and for the key
	// segment of the resource's path; individual values are still written
	// with StartProperty / WritePrimitive.
	Properties []PropertyValue

	// ID is the resource's odata.id, if already known. A top-level
	// resource or deleted resource in a delta resource set must carry
	// either an ID or all of its entity type's key properties (invariant
	// 7); this field supplies the former.
	ID string

	SerializationInfo *SerializationInfo
}

// A DeletedResource is the payload item passed to StartDeletedResource.
// Reason distinguishes a hard delete from a stale/deactivated link; the
// back-end is responsible for encoding it.
type DeletedResource struct {
	Resource
	Reason DeletedReason
}

// DeletedReason is the reason a DeletedResource was removed from its set.
type DeletedReason int

const (
	DeletedReasonUnspecified DeletedReason = iota
	DeletedReasonDeleted
	DeletedReasonChanged
)

// A PropertyValue names an already-known property and its primitive value,
// used for delta key validation; it does not itself cause anything to be
// written.
type PropertyValue struct {
	Name  string
	Value any
}

// A NestedResourceInfo is the payload item passed to StartNestedResourceInfo.
type NestedResourceInfo struct {
	Name         string
	IsCollection bool

	// URL is handed to the back-end as the link's URL when the link is
	// written as deferred. The writer does not compute a URL from the
	// current path when it is empty.
	URL string
}

// A Property is the payload item passed to StartProperty.
type Property struct {
	Name     string
	TypeName string // declared property type, if known ahead of the value
}

// An EntityReferenceLink is written with WriteEntityReferenceLink inside an
// open NestedResourceInfo on a request payload.
type EntityReferenceLink struct {
	URL string
}

// A DeltaLink or DeltaDeletedLink item, written with WriteDeltaLink /
// WriteDeltaDeletedLink at the top level of a DeltaResourceSet.
type DeltaLinkItem struct {
	Source string
	Target string
	Relationship string
}

// SerializationInfo carries hints the back-end or caller supplies out of
// band to help the writer resolve a resource's type and navigation source
// without consulting the model, e.g. when the EDM model does not declare a
// usable binding. Resolution failures from these hints are silently
// ignored (legacy compatibility; see typeresolver.go).
type SerializationInfo struct {
	ExpectedTypeName            string
	NavigationSourceName        string
	NavigationSourceEntityTypeName string
}
