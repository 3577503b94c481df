// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package edm

import "strings"

// A Schema is an in-memory Model, suitable for tests, fixtures, and the
// odatawrite demonstration command. It is not a general $metadata parser;
// callers construct one directly or via NewSchema and Add*.
type Schema struct {
	types     []*EntityType
	sets      []*EntitySet
	singles   []*Singleton
	bindings  map[string]NavigationSource // "path/navProp" -> target
}

// NewSchema constructs an empty Schema.
func NewSchema() *Schema {
	return &Schema{bindings: make(map[string]NavigationSource)}
}

// AddType registers t, returning t for chaining.
func (s *Schema) AddType(t *EntityType) *EntityType {
	s.types = append(s.types, t)
	return t
}

// AddEntitySet registers set, returning it for chaining.
func (s *Schema) AddEntitySet(set *EntitySet) *EntitySet {
	s.sets = append(s.sets, set)
	return set
}

// AddSingleton registers v, returning it for chaining.
func (s *Schema) AddSingleton(v *Singleton) *Singleton {
	s.singles = append(s.singles, v)
	return v
}

// Bind records that, from the entity reached at path, the navigation
// property navProperty targets target. path is joined with "/" to form the
// binding key, mirroring the containment-navigation binding paths used in
// $metadata NavigationPropertyBinding elements.
func (s *Schema) Bind(path []string, navProperty string, target NavigationSource) {
	s.bindings[bindingKey(path, navProperty)] = target
}

func bindingKey(path []string, navProperty string) string {
	return strings.Join(path, "/") + "/" + navProperty
}

func (s *Schema) FindEntityType(name string) (*EntityType, bool) {
	for _, t := range s.types {
		if t.TypeName == name {
			return t, true
		}
	}
	return nil, false
}

func (s *Schema) FindEntitySet(name string) (*EntitySet, bool) {
	for _, set := range s.sets {
		if set.SetName == name {
			return set, true
		}
	}
	return nil, false
}

func (s *Schema) FindSingleton(name string) (*Singleton, bool) {
	for _, v := range s.singles {
		if v.SingletonName == name {
			return v, true
		}
	}
	return nil, false
}

func (s *Schema) NavigationTarget(path []string, navProperty string) (NavigationSource, bool) {
	// Try the exact path first, then progressively shorter suffixes of it
	// (dropping leading segments), so a binding declared against the
	// trailing segments still matches a longer path ending in them. A
	// binding declared against a leading prefix alone, such as just the
	// entity set root, does not match a longer path.
	for i := 0; i <= len(path); i++ {
		if ns, ok := s.bindings[bindingKey(path[i:], navProperty)]; ok {
			return ns, true
		}
	}
	return nil, false
}

func (s *Schema) ElementType(name string) (*EntityType, bool) {
	const prefix, suffix = "Collection(", ")"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return nil, false
	}
	return s.FindEntityType(name[len(prefix) : len(name)-len(suffix)])
}
