// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata_test

import (
	"context"
	"testing"

	"github.com/creachadair/odata"
	"github.com/creachadair/odata/odatatest"
)

// TestWriterEndToEndAgainstFixtureModel drives a single Writer through a
// resource carrying an expanded collection-valued navigation property and
// a binary stream property, against odatatest's fixture model and
// Recorder. It exercises the full engine (type resolution, nested-link
// promotion, scope validation) in a way odatajson's own tests deliberately
// avoid (those use an untyped or near-empty model to isolate rendering).
func TestWriterEndToEndAgainstFixtureModel(t *testing.T) {
	model := odatatest.NewFixtureModel()
	rec := odatatest.NewRecorder()
	w := odata.NewWriter(model, rec, false, odata.WriterOptions{})

	if err := w.StartResource(&odata.Resource{
		TypeName:          "NS.Customer",
		ID:                "Customers(1)",
		SerializationInfo: &odata.SerializationInfo{NavigationSourceName: "Customers"},
	}); err != nil {
		t.Fatalf("StartResource: %v", err)
	}
	if err := w.StartProperty(&odata.Property{Name: "Name"}); err != nil {
		t.Fatalf("StartProperty Name: %v", err)
	}
	if err := w.WritePrimitive("Ada"); err != nil { // pushes and pops StatePrimitive internally
		t.Fatalf("WritePrimitive: %v", err)
	}
	if err := w.End(); err != nil { // property scope
		t.Fatalf("End (property): %v", err)
	}

	if err := w.StartNestedResourceInfo(&odata.NestedResourceInfo{Name: "Orders", IsCollection: true}); err != nil {
		t.Fatalf("StartNestedResourceInfo Orders: %v", err)
	}
	if err := w.StartResourceSet(&odata.ResourceSet{}); err != nil {
		t.Fatalf("StartResourceSet: %v", err)
	}
	if err := w.StartResource(&odata.Resource{TypeName: "NS.Order", ID: "Orders(9)"}); err != nil {
		t.Fatalf("StartResource Order: %v", err)
	}
	if err := w.End(); err != nil { // order resource
		t.Fatalf("End (order): %v", err)
	}
	if err := w.End(); err != nil { // resource set
		t.Fatalf("End (set): %v", err)
	}
	if err := w.End(); err != nil { // nested resource info with content
		t.Fatalf("End (link): %v", err)
	}

	if err := w.StartProperty(&odata.Property{Name: "Photo"}); err != nil {
		t.Fatalf("StartProperty Photo: %v", err)
	}
	sw, err := w.CreateBinaryWriteStream()
	if err != nil {
		t.Fatalf("CreateBinaryWriteStream: %v", err)
	}
	if _, err := sw.Write([]byte("hi")); err != nil {
		t.Fatalf("stream Write: %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Fatalf("stream Close: %v", err)
	}
	if err := w.End(); err != nil { // Photo property
		t.Fatalf("End (photo): %v", err)
	}

	if err := w.End(); err != nil { // customer resource
		t.Fatalf("End (customer): %v", err)
	}
	if err := w.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}

	const want = `StartPayload
StartResource NS.Customer Customers(1)
StartProperty Name
WritePrimitiveValue Ada
EndProperty Name
StartNestedResourceInfoWithContent Orders collection=true
StartResourceSet
StartResource NS.Order Orders(9)
EndResource NS.Order Orders(9)
EndResourceSet
EndNestedResourceInfoWithContent Orders
StartProperty Photo
StartBinaryStream
EndBinaryStream 2 bytes
EndProperty Photo
EndResource NS.Customer Customers(1)
EndPayload
Flush
.`
	if got := rec.Events(); got != want {
		t.Errorf("event log mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if rec.FlushCount() != 1 {
		t.Errorf("FlushCount = %d, want 1", rec.FlushCount())
	}
}

// TestAsyncWriterDeltaSetAndDeltaLink exercises NewAsyncWriter's path
// through a delta resource set carrying a deleted resource and a delta
// link item, confirming the engine calls the Async hook variants (not
// their synchronous counterparts) when driven with a context.
func TestAsyncWriterDeltaSetAndDeltaLink(t *testing.T) {
	model := odatatest.NewFixtureModel()
	rec := odatatest.NewRecorder()
	w := odata.NewAsyncWriter(model, rec, true, odata.WriterOptions{})
	ctx := context.Background()

	if err := w.StartDeltaResourceSetAsync(ctx, &odata.ResourceSet{}); err != nil {
		t.Fatalf("StartDeltaResourceSetAsync: %v", err)
	}
	if err := w.StartDeletedResourceAsync(ctx, &odata.DeletedResource{
		Resource: odata.Resource{TypeName: "NS.Customer", ID: "Customers(2)"},
		Reason:   odata.DeletedReasonDeleted,
	}); err != nil {
		t.Fatalf("StartDeletedResourceAsync: %v", err)
	}
	if err := w.EndAsync(ctx); err != nil {
		t.Fatalf("EndAsync (deleted resource): %v", err)
	}
	if err := w.WriteDeltaLinkAsync(ctx, &odata.DeltaLinkItem{Source: "Customers(1)", Relationship: "Orders", Target: "Orders(1)"}); err != nil {
		t.Fatalf("WriteDeltaLinkAsync: %v", err)
	}
	if err := w.EndAsync(ctx); err != nil {
		t.Fatalf("EndAsync (set): %v", err)
	}
	if err := w.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}

	const want = `StartPayload
StartDeltaResourceSet
StartDeletedResource NS.Customer Customers(2) reason=1
EndDeletedResource NS.Customer Customers(2)
WriteDeltaLink Customers(1)/Orders -> Orders(1)
EndDeltaResourceSet
EndPayload
Flush
.`
	if got := rec.Events(); got != want {
		t.Errorf("event log mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
