// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "github.com/creachadair/odata/edm"

// resolveNavigationSource picks a pushed scope's navigation source by
// priority: serialization info (legacy, errors swallowed), then the
// enclosing scope, then — for nested-link pushes — the model's
// navigation-target resolver.
// fromModel is called lazily only when the first two sources yield nothing,
// since it is the only one modeled as potentially absent-but-fine (a
// resource with no navigation source at all, e.g. a bare complex value, is
// not an error).
func resolveNavigationSource(m edm.Model, parent *scope, si *SerializationInfo, fromModel func() (edm.NavigationSource, bool)) edm.NavigationSource {
	if si != nil && si.NavigationSourceName != "" {
		if ns, ok := m.FindEntitySet(si.NavigationSourceName); ok {
			return ns
		}
		if ns, ok := m.FindSingleton(si.NavigationSourceName); ok {
			return ns
		}
		// Resolution failure from serialization info is silently ignored
		// (see DESIGN.md's note on legacy swallowing): fall through.
	}
	if parent != nil && parent.navigationSource != nil {
		return parent.navigationSource
	}
	if fromModel != nil {
		if ns, ok := fromModel(); ok {
			return ns
		}
	}
	return nil
}

// resolveItemType picks a pushed scope's item/resource type by priority:
// an explicit TypeName on the resource itself (fatal if unresolvable),
// then serialization-info hints (legacy, errors swallowed), then the
// enclosing scope's declared type.
func resolveItemType(m edm.Model, parent *scope, explicitTypeName string, si *SerializationInfo) (*edm.EntityType, string, *Error) {
	if explicitTypeName != "" {
		t, ok := m.FindEntityType(explicitTypeName)
		if !ok {
			return nil, "", newError(CodeTypeNameNotFound, explicitTypeName)
		}
		return t, explicitTypeName, nil
	}
	if si != nil {
		if si.ExpectedTypeName != "" {
			if t, ok := m.FindEntityType(si.ExpectedTypeName); ok {
				return t, si.ExpectedTypeName, nil
			}
		}
		if si.NavigationSourceEntityTypeName != "" {
			if t, ok := m.FindEntityType(si.NavigationSourceEntityTypeName); ok {
				return t, si.NavigationSourceEntityTypeName, nil
			}
		}
		// Both are legacy hints: resolution failure is silently ignored.
	}
	if parent != nil {
		return parent.resourceType, parent.itemType, nil
	}
	return nil, "", nil
}

// checkDerivedTypeConstraint checks a resource whose concrete resourceType
// differs from the type declared by the enclosing position
// (resourceTypeFromMetadata) against the constraints active at that
// position.
func checkDerivedTypeConstraint(declared *edm.EntityType, actual *edm.EntityType, constraint *edm.DerivedTypeConstraint) *Error {
	if declared == nil || actual == nil {
		return nil
	}
	if !declared.IsAssignableFrom(actual) {
		return newError(CodeIncompatibleResourceTypes, actual.Name(), declared.Name())
	}
	if constraint != nil && !constraint.Permits(declared.Name(), actual.Name()) {
		return newError(CodeDerivedTypeConstraintViolated, actual.Name(), declared.Name())
	}
	return nil
}

// intersectConstraints intersects the derived-type constraints declared on
// the navigation property, structural property, and navigation source that
// apply at one position: a nil constraint is the universal set, so
// intersecting with nil yields the other operand; intersecting two
// non-nil constraints keeps only names present in both.
func intersectConstraints(a, b *edm.DerivedTypeConstraint) *edm.DerivedTypeConstraint {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	var names []string
	for _, n := range a.Names {
		for _, m := range b.Names {
			if n == m {
				names = append(names, n)
				break
			}
		}
	}
	return &edm.DerivedTypeConstraint{Names: names, ExcludeBase: a.ExcludeBase || b.ExcludeBase}
}

// resolveLinkProperty resolves a nested resource info's declared name
// against the owner's resource type: either a structural (complex or
// primitive collection) property or a navigation property.
func resolveLinkProperty(owner *edm.EntityType, name string) (structural *edm.StructuralProperty, nav *edm.NavigationProperty) {
	if owner == nil {
		return nil, nil
	}
	if p, ok := owner.FindNavigationProperty(name); ok {
		return nil, p
	}
	if p, ok := owner.FindProperty(name); ok {
		return p, nil
	}
	return nil, nil
}

// buildResourceKey renders a resource's key predicate, e.g. "1" for a
// single-key entity or "ID=1,Name='a'" for a composite key, from the
// property values supplied on the Resource item. It returns ok=false (not
// an error: a key segment is only appended when a key value is available)
// if any key property's value was not supplied.
func buildResourceKey(keys []string, props []PropertyValue) (string, bool) {
	if len(keys) == 0 {
		return "", false
	}
	find := func(name string) (any, bool) {
		for _, p := range props {
			if p.Name == name {
				return p.Value, true
			}
		}
		return nil, false
	}
	if len(keys) == 1 {
		v, ok := find(keys[0])
		if !ok {
			return "", false
		}
		return formatKeyValue(v), true
	}
	var sb []byte
	for i, k := range keys {
		v, ok := find(k)
		if !ok {
			return "", false
		}
		if i > 0 {
			sb = append(sb, ',')
		}
		sb = append(sb, k...)
		sb = append(sb, '=')
		sb = append(sb, formatKeyValue(v)...)
	}
	return string(sb), true
}

func formatKeyValue(v any) string {
	switch t := v.(type) {
	case string:
		return "'" + t + "'"
	default:
		return formatAny(t)
	}
}
