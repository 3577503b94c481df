// Copyright (C) 2026 The odata Authors. All Rights Reserved.

// Package edm defines the read-only schema surface the writer engine
// queries while it validates and types a payload as it is written.
//
// The engine never mutates a Model and never infers one: a Model is
// supplied by the caller (typically loaded once from a $metadata document
// or hand-built, as Schema in this package allows) and shared across any
// number of writers.
package edm

import "fmt"

// A Model answers the handful of schema questions the writer engine needs
// in order to validate and type a payload as it is produced. Implementations
// must be safe for concurrent read access; the engine never calls a
// mutating method.
type Model interface {
	// FindEntityType returns the entity or complex type named name, or
	// reports ok=false if no such type is declared.
	FindEntityType(name string) (*EntityType, bool)

	// FindEntitySet returns the entity set named name, or ok=false.
	FindEntitySet(name string) (*EntitySet, bool)

	// FindSingleton returns the singleton named name, or ok=false.
	FindSingleton(name string) (*Singleton, bool)

	// NavigationTarget resolves the navigation source reached by following
	// navProperty from the source reached by following path (a sequence of
	// path segment names previously appended by the path composer, rooted
	// at an entity set or singleton). It reports ok=false if no binding is
	// configured, in which case the target is unresolved but not an error
	// (the writer falls back to the enclosing scope's source, if any).
	NavigationTarget(path []string, navProperty string) (NavigationSource, bool)

	// ElementType returns the element type of a collection-typed name, e.g.
	// "Collection(NS.Order)" returns the EntityType for "NS.Order". It
	// reports ok=false if name does not name a known collection.
	ElementType(name string) (*EntityType, bool)
}

// A NavigationSource is an entity set, a singleton, or a contained entity
// set from which resources originate.
type NavigationSource interface {
	// Name returns the navigation source's name as it appears in a path.
	Name() string

	// EntityType returns the declared element type of the source.
	EntityType() *EntityType

	// IsContained reports whether the source is reached only by navigation
	// from a containing entity (never addressable as a top-level path root).
	IsContained() bool
}

// An EntitySet is a top-level, addressable collection of entities of a
// single declared (base) entity type.
type EntitySet struct {
	SetName    string
	Type       *EntityType
	Contained  bool
	Constraint *DerivedTypeConstraint
}

func (s *EntitySet) Name() string           { return s.SetName }
func (s *EntitySet) EntityType() *EntityType { return s.Type }
func (s *EntitySet) IsContained() bool       { return s.Contained }

// A Singleton is a single addressable entity of a declared entity type.
type Singleton struct {
	SingletonName string
	Type          *EntityType
	Constraint    *DerivedTypeConstraint
}

func (s *Singleton) Name() string           { return s.SingletonName }
func (s *Singleton) EntityType() *EntityType { return s.Type }
func (s *Singleton) IsContained() bool       { return false }

// An EntityType describes a structured (entity or complex) type: its
// properties, navigation properties, declared key, and base type.
type EntityType struct {
	TypeName   string
	BaseType   *EntityType // nil for a root type
	IsComplex  bool        // complex types have no key and no navigation targets
	Keys       []string    // declared key property names, inherited from BaseType if empty
	Properties []*StructuralProperty
	NavProps   []*NavigationProperty
}

// Name returns the fully-qualified type name, e.g. "NS.Customer".
func (t *EntityType) Name() string { return t.TypeName }

// KeyProperties returns the type's declared key, walking to the base type
// if this type does not declare one directly.
func (t *EntityType) KeyProperties() []string {
	for ty := t; ty != nil; ty = ty.BaseType {
		if len(ty.Keys) > 0 {
			return ty.Keys
		}
	}
	return nil
}

// FindProperty returns the structural (non-navigation) property named name,
// searching this type and then its base types.
func (t *EntityType) FindProperty(name string) (*StructuralProperty, bool) {
	for ty := t; ty != nil; ty = ty.BaseType {
		for _, p := range ty.Properties {
			if p.Name == name {
				return p, true
			}
		}
	}
	return nil, false
}

// FindNavigationProperty returns the navigation property named name,
// searching this type and then its base types.
func (t *EntityType) FindNavigationProperty(name string) (*NavigationProperty, bool) {
	for ty := t; ty != nil; ty = ty.BaseType {
		for _, p := range ty.NavProps {
			if p.Name == name {
				return p, true
			}
		}
	}
	return nil, false
}

// IsAssignableFrom reports whether a value of type other may appear where
// t is declared, i.e. other is t or a (possibly indirect) sub-type of t.
func (t *EntityType) IsAssignableFrom(other *EntityType) bool {
	for ty := other; ty != nil; ty = ty.BaseType {
		if ty == t || ty.TypeName == t.TypeName {
			return true
		}
	}
	return false
}

// A StructuralProperty is a primitive- or complex-typed property of a
// structured type.
type StructuralProperty struct {
	Name         string
	TypeName     string      // e.g. "Edm.String", "NS.Address", "Collection(NS.Address)"
	ComplexType  *EntityType // non-nil when TypeName names a complex type
	IsCollection bool
	Constraint   *DerivedTypeConstraint
}

// A NavigationProperty links a structured type to another entity or
// entity collection.
type NavigationProperty struct {
	Name         string
	TargetType   *EntityType
	IsCollection bool
	Constraint   *DerivedTypeConstraint
}

// A DerivedTypeConstraint restricts the concrete types permitted at a
// given position in a payload to a named set of sub-types of the declared
// type (plus the declared type itself, unless ExcludeBase is set).
type DerivedTypeConstraint struct {
	Names       []string
	ExcludeBase bool
}

// Permits reports whether typeName satisfies the constraint. A nil
// constraint permits anything.
func (c *DerivedTypeConstraint) Permits(declared, typeName string) bool {
	if c == nil {
		return true
	}
	if typeName == declared && !c.ExcludeBase {
		return true
	}
	for _, n := range c.Names {
		if n == typeName {
			return true
		}
	}
	return false
}

// ErrTypeNotFound is returned by Model lookups for an unrecognized name.
type ErrTypeNotFound struct{ Name string }

func (e *ErrTypeNotFound) Error() string { return fmt.Sprintf("type %q not found in model", e.Name) }
