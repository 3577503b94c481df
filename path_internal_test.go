// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"strings"
	"testing"

	"github.com/creachadair/odata/edm"
)

// pathCompositionModel is a minimal edm.Model built by hand (rather than
// via edm.Schema) so each test can control exactly which navigation
// properties resolve to a bound source and which don't.
type pathCompositionModel struct {
	types map[string]*edm.EntityType
	sets  map[string]*edm.EntitySet
	nav   map[string]edm.NavigationSource
}

func (m pathCompositionModel) FindEntityType(name string) (*edm.EntityType, bool) {
	t, ok := m.types[name]
	return t, ok
}

func (m pathCompositionModel) FindEntitySet(name string) (*edm.EntitySet, bool) {
	s, ok := m.sets[name]
	return s, ok
}

func (m pathCompositionModel) FindSingleton(string) (*edm.Singleton, bool) { return nil, false }

func (m pathCompositionModel) NavigationTarget(_ []string, navProperty string) (edm.NavigationSource, bool) {
	ns, ok := m.nav[navProperty]
	return ns, ok
}

func (m pathCompositionModel) ElementType(name string) (*edm.EntityType, bool) {
	const prefix, suffix = "Collection(", ")"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return nil, false
	}
	return m.FindEntityType(name[len(prefix) : len(name)-len(suffix)])
}

// TestPathCompositionRootKeyAndCast drives a root resource push through
// resolveNavigationSource + extendResourcePath and checks that the result
// establishes a root segment (from the serialization info hint, since
// there is no enclosing scope to inherit from), appends a key segment, and
// appends a cast segment when the concrete type is a sub-type of the type
// declared by the enclosing resource set.
func TestPathCompositionRootKeyAndCast(t *testing.T) {
	parent := &edm.EntityType{TypeName: "NS.Parent", Keys: []string{"ID"}}
	vip := &edm.EntityType{TypeName: "NS.VipParent", BaseType: parent}
	parents := &edm.EntitySet{SetName: "Parents", Type: parent}
	m := pathCompositionModel{
		types: map[string]*edm.EntityType{"NS.Parent": parent, "NS.VipParent": vip},
		sets:  map[string]*edm.EntitySet{"Parents": parents},
	}

	w := NewWriter(m, nopBackend{}, true, WriterOptions{})
	if err := w.StartResourceSet(&ResourceSet{
		TypeName:          "Collection(NS.Parent)",
		SerializationInfo: &SerializationInfo{NavigationSourceName: "Parents"},
	}); err != nil {
		t.Fatalf("StartResourceSet: %v", err)
	}
	if err := w.StartResource(&Resource{
		TypeName:   "NS.VipParent",
		Properties: []PropertyValue{{Name: "ID", Value: 1}},
	}); err != nil {
		t.Fatalf("StartResource: %v", err)
	}
	if got, want := w.stack.top().path.String(), "Parents(1)/NS.VipParent"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

// TestPathCompositionNavigationContainedAndReset exercises
// startNestedResourceInfo's three navigation branches: an unresolvable
// link falls back to a plain navigation segment, a resolved but
// non-contained target resets the path to a new root, and a resolved
// contained target appends onto the existing path instead.
func TestPathCompositionNavigationContainedAndReset(t *testing.T) {
	parent := &edm.EntityType{TypeName: "NS.Parent", Keys: []string{"ID"}}
	child := &edm.EntityType{TypeName: "NS.Child"}
	sibling := &edm.EntityType{TypeName: "NS.Sibling"}
	parent.NavProps = []*edm.NavigationProperty{
		{Name: "Items", TargetType: child, IsCollection: true},
		{Name: "Siblings", TargetType: sibling, IsCollection: true},
		{Name: "Unbound", TargetType: sibling, IsCollection: true},
	}
	parents := &edm.EntitySet{SetName: "Parents", Type: parent}
	items := &edm.EntitySet{SetName: "Items", Type: child, Contained: true}
	siblings := &edm.EntitySet{SetName: "Siblings", Type: sibling}
	m := pathCompositionModel{
		types: map[string]*edm.EntityType{"NS.Parent": parent, "NS.Child": child, "NS.Sibling": sibling},
		sets:  map[string]*edm.EntitySet{"Parents": parents},
		nav:   map[string]edm.NavigationSource{"Items": items, "Siblings": siblings},
	}

	newParent := func(t *testing.T) *Writer {
		w := NewWriter(m, nopBackend{}, false, WriterOptions{})
		if err := w.StartResource(&Resource{
			TypeName:          "NS.Parent",
			Properties:        []PropertyValue{{Name: "ID", Value: 1}},
			SerializationInfo: &SerializationInfo{NavigationSourceName: "Parents"},
		}); err != nil {
			t.Fatalf("StartResource: %v", err)
		}
		return w
	}

	t.Run("unbound falls back to a navigation segment", func(t *testing.T) {
		w := newParent(t)
		if err := w.StartNestedResourceInfo(&NestedResourceInfo{Name: "Unbound", IsCollection: true}); err != nil {
			t.Fatalf("StartNestedResourceInfo: %v", err)
		}
		if got, want := w.stack.top().path.String(), "Parents(1)/Unbound"; got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})

	t.Run("non-contained target resets to a new root", func(t *testing.T) {
		w := newParent(t)
		if err := w.StartNestedResourceInfo(&NestedResourceInfo{Name: "Siblings", IsCollection: true}); err != nil {
			t.Fatalf("StartNestedResourceInfo: %v", err)
		}
		if got, want := w.stack.top().path.String(), "Siblings"; got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})

	t.Run("contained target appends onto the existing path", func(t *testing.T) {
		w := newParent(t)
		if err := w.StartNestedResourceInfo(&NestedResourceInfo{Name: "Items", IsCollection: true}); err != nil {
			t.Fatalf("StartNestedResourceInfo: %v", err)
		}
		if got, want := w.stack.top().path.String(), "Parents(1)/Items"; got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}
