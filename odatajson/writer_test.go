// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odatajson_test

import (
	"bytes"
	"testing"

	"github.com/creachadair/odata"
	"github.com/creachadair/odata/edm"
	"github.com/creachadair/odata/odatajson"
)

// untypedModel declares nothing, so every resource/link written against it
// has no declared EDM type, exercising odatajson's own rendering rather
// than the engine's type-validation paths (those are covered in package
// odata's own tests). TestSingleResource instead uses a schema declaring
// only the one type name it renders, since an explicit TypeName must
// resolve in the model.
type untypedModel struct{}

func (untypedModel) FindEntityType(string) (*edm.EntityType, bool) { return nil, false }
func (untypedModel) FindEntitySet(string) (*edm.EntitySet, bool)   { return nil, false }
func (untypedModel) FindSingleton(string) (*edm.Singleton, bool)   { return nil, false }
func (untypedModel) NavigationTarget([]string, string) (edm.NavigationSource, bool) {
	return nil, false
}
func (untypedModel) ElementType(string) (*edm.EntityType, bool) { return nil, false }

func mustNot(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSingleResource(t *testing.T) {
	var buf bytes.Buffer
	jw := odatajson.New(&buf)
	model := edm.NewSchema()
	model.AddType(&edm.EntityType{TypeName: "NS.Customer"})
	w := odata.NewWriter(model, jw, false, odata.WriterOptions{})

	mustNot(t, w.StartResource(&odata.Resource{TypeName: "NS.Customer", ID: "Customers(1)"}))
	mustNot(t, w.StartProperty(&odata.Property{Name: "Name"}))
	mustNot(t, w.WritePrimitive("Ada")) // pushes and pops the primitive value scope internally
	mustNot(t, w.End())                 // pops the property scope
	mustNot(t, w.StartProperty(&odata.Property{Name: "Missing"}))
	mustNot(t, w.End()) // no value written: renders null
	mustNot(t, w.End()) // resource
	mustNot(t, w.Dispose())

	const want = `{"@odata.type":"#NS.Customer","@odata.id":"Customers(1)","Name":"Ada","Missing":null}`
	if got := buf.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestResourceSetWithCountAndNextLink(t *testing.T) {
	var buf bytes.Buffer
	jw := odatajson.New(&buf)
	w := odata.NewWriter(untypedModel{}, jw, true, odata.WriterOptions{})

	count := int64(2)
	mustNot(t, w.StartResourceSet(&odata.ResourceSet{Count: &count, NextPageLink: "next?page=2"}))
	for _, id := range []string{"Customers(1)", "Customers(2)"} {
		mustNot(t, w.StartResource(&odata.Resource{ID: id}))
		mustNot(t, w.End())
	}
	mustNot(t, w.End())
	mustNot(t, w.Dispose())

	const want = `{"@odata.count":2,"value":[{"@odata.id":"Customers(1)"},{"@odata.id":"Customers(2)"}],"@odata.nextLink":"next?page=2"}`
	if got := buf.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestExpandedCollectionRendersBareArray(t *testing.T) {
	var buf bytes.Buffer
	jw := odatajson.New(&buf)
	w := odata.NewWriter(untypedModel{}, jw, false, odata.WriterOptions{})

	mustNot(t, w.StartResource(&odata.Resource{ID: "Customers(1)"}))
	mustNot(t, w.StartNestedResourceInfo(&odata.NestedResourceInfo{Name: "Orders", IsCollection: true}))
	mustNot(t, w.StartResourceSet(&odata.ResourceSet{}))
	mustNot(t, w.StartResource(&odata.Resource{ID: "Orders(9)"}))
	mustNot(t, w.End()) // resource
	mustNot(t, w.End()) // resource set
	mustNot(t, w.End()) // nested resource info with content
	mustNot(t, w.End()) // owning resource
	mustNot(t, w.Dispose())

	const want = `{"@odata.id":"Customers(1)","Orders":[{"@odata.id":"Orders(9)"}]}`
	if got := buf.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDeferredNestedResourceInfo(t *testing.T) {
	var buf bytes.Buffer
	jw := odatajson.New(&buf)
	w := odata.NewWriter(untypedModel{}, jw, false, odata.WriterOptions{})

	mustNot(t, w.StartResource(&odata.Resource{ID: "Customers(1)"}))
	mustNot(t, w.StartNestedResourceInfo(&odata.NestedResourceInfo{Name: "Orders", IsCollection: true, URL: "Customers(1)/Orders"}))
	mustNot(t, w.End()) // closes the deferred link, never given content
	mustNot(t, w.End()) // owning resource
	mustNot(t, w.Dispose())

	const want = `{"@odata.id":"Customers(1)","Orders@odata.navigationLink":"Customers(1)/Orders"}`
	if got := buf.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEntityReferenceLinkCollection(t *testing.T) {
	var buf bytes.Buffer
	jw := odatajson.New(&buf)
	w := odata.NewWriter(untypedModel{}, jw, false, odata.WriterOptions{Request: true})

	mustNot(t, w.StartResource(&odata.Resource{}))
	mustNot(t, w.StartNestedResourceInfo(&odata.NestedResourceInfo{Name: "Orders", IsCollection: true}))
	mustNot(t, w.WriteEntityReferenceLink(&odata.EntityReferenceLink{URL: "Orders(1)"}))
	mustNot(t, w.WriteEntityReferenceLink(&odata.EntityReferenceLink{URL: "Orders(2)"}))
	mustNot(t, w.End())
	mustNot(t, w.End())
	mustNot(t, w.Dispose())

	const want = `{"Orders":[{"@odata.id":"Orders(1)"},{"@odata.id":"Orders(2)"}]}`
	if got := buf.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDeltaResourceSetWithLinks(t *testing.T) {
	var buf bytes.Buffer
	jw := odatajson.New(&buf)
	w := odata.NewWriter(untypedModel{}, jw, true, odata.WriterOptions{})

	mustNot(t, w.StartDeltaResourceSet(&odata.ResourceSet{}))
	mustNot(t, w.StartResource(&odata.Resource{ID: "Customers(1)"}))
	mustNot(t, w.End())
	mustNot(t, w.StartDeletedResource(&odata.DeletedResource{Resource: odata.Resource{ID: "Customers(2)"}, Reason: odata.DeletedReasonDeleted}))
	mustNot(t, w.End())
	mustNot(t, w.WriteDeltaLink(&odata.DeltaLinkItem{Source: "Customers(1)", Relationship: "Orders", Target: "Orders(1)"}))
	mustNot(t, w.End())
	mustNot(t, w.Dispose())

	const want = `{"value":[{"@odata.id":"Customers(1)"},{"@odata.id":"Customers(2)","@removed":{"reason":"deleted"}},{"source":"Customers(1)","relationship":"Orders","target":"Orders(1)"}]}`
	if got := buf.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestBinaryStreamAndTextWriter(t *testing.T) {
	var buf bytes.Buffer
	jw := odatajson.New(&buf)
	w := odata.NewWriter(untypedModel{}, jw, false, odata.WriterOptions{})

	mustNot(t, w.StartResource(&odata.Resource{}))

	mustNot(t, w.StartProperty(&odata.Property{Name: "Photo"}))
	sw, err := w.CreateBinaryWriteStream()
	mustNot(t, err)
	if _, err := sw.Write([]byte("hi")); err != nil {
		t.Fatal(err)
	}
	mustNot(t, sw.Close())
	mustNot(t, w.End())

	mustNot(t, w.StartProperty(&odata.Property{Name: "Notes"}))
	tw, err := w.CreateTextWriter()
	mustNot(t, err)
	if _, err := tw.Write([]byte("hello \"world\"")); err != nil {
		t.Fatal(err)
	}
	mustNot(t, tw.Close())
	mustNot(t, w.End())

	mustNot(t, w.End()) // resource
	mustNot(t, w.Dispose())

	const want = `{"Photo":"aGk=","Notes":"hello \"world\""}`
	if got := buf.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
