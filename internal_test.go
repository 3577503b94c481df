// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import (
	"io"
	"testing"

	"github.com/creachadair/odata/edm"
)

// nopBackend is a minimal Backend whose hooks never fail, for exercising the
// driver/state-machine plumbing without needing a real format back-end.
type nopBackend struct{}

func (nopBackend) StartPayload() error                                        { return nil }
func (nopBackend) EndPayload() error                                          { return nil }
func (nopBackend) StartResource(*Resource) error                              { return nil }
func (nopBackend) EndResource(*Resource) error                                { return nil }
func (nopBackend) StartResourceSet(*ResourceSet) error                        { return nil }
func (nopBackend) EndResourceSet(*ResourceSet) error                          { return nil }
func (nopBackend) StartDeltaResourceSet(*ResourceSet) error                   { return nil }
func (nopBackend) EndDeltaResourceSet(*ResourceSet) error                     { return nil }
func (nopBackend) StartDeletedResource(*DeletedResource) error                { return nil }
func (nopBackend) EndDeletedResource(*DeletedResource) error                  { return nil }
func (nopBackend) StartProperty(*Property) error                              { return nil }
func (nopBackend) EndProperty(*Property) error                                { return nil }
func (nopBackend) StartNestedResourceInfoWithContent(*NestedResourceInfo) error { return nil }
func (nopBackend) EndNestedResourceInfoWithContent(*NestedResourceInfo) error   { return nil }
func (nopBackend) WriteDeferredNestedResourceInfo(*NestedResourceInfo) error  { return nil }
func (nopBackend) WriteEntityReferenceLink(*NestedResourceInfo, *EntityReferenceLink) error {
	return nil
}
func (nopBackend) WritePrimitiveValue(any) error { return nil }
func (nopBackend) StartBinaryStream() (io.Writer, error) {
	return io.Discard, nil
}
func (nopBackend) EndBinaryStream() error { return nil }
func (nopBackend) StartTextWriter() (io.Writer, error) {
	return io.Discard, nil
}
func (nopBackend) EndTextWriter() error                     { return nil }
func (nopBackend) WriteDeltaLink(*DeltaLinkItem) error        { return nil }
func (nopBackend) WriteDeltaDeletedLink(*DeltaLinkItem) error { return nil }
func (nopBackend) Flush() error                               { return nil }

// emptyModel implements edm.Model with no declared types, enough to
// construct a Writer for tests that never resolve a type name.
type emptyModel struct{}

func (emptyModel) FindEntityType(string) (*edm.EntityType, bool) { return nil, false }
func (emptyModel) FindEntitySet(string) (*edm.EntitySet, bool)   { return nil, false }
func (emptyModel) FindSingleton(string) (*edm.Singleton, bool)   { return nil, false }
func (emptyModel) NavigationTarget(path []string, navProperty string) (edm.NavigationSource, bool) {
	return nil, false
}
func (emptyModel) ElementType(string) (*edm.EntityType, bool) { return nil, false }

func newTestWriter(t *testing.T, forResourceSet bool) *Writer {
	t.Helper()
	return NewWriter(emptyModel{}, nopBackend{}, forResourceSet, WriterOptions{})
}
