// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odatatest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/odata"
)

// Recorder is an odata.Backend (and odata.AsyncBackend) that records each
// hook call it receives as a line of text, in the order received, so a
// test can assert on a call sequence without comparing rendered bytes
// directly.
//
// A Recorder is not safe for concurrent use; the engine never calls a
// Backend concurrently with itself, so none is needed.
type Recorder struct {
	lines []string

	stream  bytes.Buffer
	flushed int // number of Flush calls observed so far
}

var (
	_ odata.Backend      = (*Recorder)(nil)
	_ odata.AsyncBackend = (*Recorder)(nil)
)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Events returns the recorded call log, newline-joined, with a trailing
// "." sentinel so a diff against a golden string shows a missing final
// line instead of silently truncating.
func (r *Recorder) Events() string {
	return strings.Join(r.lines, "\n") + "\n."
}

// FlushCount reports how many times Flush/FlushAsync has been called.
func (r *Recorder) FlushCount() int { return r.flushed }

func (r *Recorder) log(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *Recorder) StartPayload() error { r.log("StartPayload"); return nil }
func (r *Recorder) EndPayload() error   { r.log("EndPayload"); return nil }

func (r *Recorder) StartResource(res *odata.Resource) error {
	r.log("StartResource %s %s", res.TypeName, res.ID)
	return nil
}
func (r *Recorder) EndResource(res *odata.Resource) error {
	r.log("EndResource %s %s", res.TypeName, res.ID)
	return nil
}

func (r *Recorder) StartResourceSet(set *odata.ResourceSet) error {
	r.log("StartResourceSet%s", typeSuffix(set.TypeName))
	return nil
}
func (r *Recorder) EndResourceSet(set *odata.ResourceSet) error {
	r.log("EndResourceSet%s", typeSuffix(set.TypeName))
	return nil
}

func (r *Recorder) StartDeltaResourceSet(set *odata.ResourceSet) error {
	r.log("StartDeltaResourceSet%s", typeSuffix(set.TypeName))
	return nil
}
func (r *Recorder) EndDeltaResourceSet(set *odata.ResourceSet) error {
	r.log("EndDeltaResourceSet%s", typeSuffix(set.TypeName))
	return nil
}

// typeSuffix renders a leading-space-qualified type name, or the empty
// string when none is declared, so an untyped set's log line carries no
// trailing whitespace.
func typeSuffix(typeName string) string {
	if typeName == "" {
		return ""
	}
	return " " + typeName
}

func (r *Recorder) StartDeletedResource(res *odata.DeletedResource) error {
	r.log("StartDeletedResource %s %s reason=%d", res.TypeName, res.ID, res.Reason)
	return nil
}
func (r *Recorder) EndDeletedResource(res *odata.DeletedResource) error {
	r.log("EndDeletedResource %s %s", res.TypeName, res.ID)
	return nil
}

func (r *Recorder) StartProperty(prop *odata.Property) error {
	r.log("StartProperty %s", prop.Name)
	return nil
}
func (r *Recorder) EndProperty(prop *odata.Property) error {
	r.log("EndProperty %s", prop.Name)
	return nil
}

func (r *Recorder) StartNestedResourceInfoWithContent(link *odata.NestedResourceInfo) error {
	r.log("StartNestedResourceInfoWithContent %s collection=%v", link.Name, link.IsCollection)
	return nil
}
func (r *Recorder) EndNestedResourceInfoWithContent(link *odata.NestedResourceInfo) error {
	r.log("EndNestedResourceInfoWithContent %s", link.Name)
	return nil
}

func (r *Recorder) WriteDeferredNestedResourceInfo(link *odata.NestedResourceInfo) error {
	r.log("WriteDeferredNestedResourceInfo %s url=%s", link.Name, link.URL)
	return nil
}

func (r *Recorder) WriteEntityReferenceLink(parent *odata.NestedResourceInfo, ref *odata.EntityReferenceLink) error {
	r.log("WriteEntityReferenceLink %s -> %s", parent.Name, ref.URL)
	return nil
}

func (r *Recorder) WritePrimitiveValue(v any) error {
	r.log("WritePrimitiveValue %v", v)
	return nil
}

func (r *Recorder) StartBinaryStream() (io.Writer, error) {
	r.log("StartBinaryStream")
	r.stream.Reset()
	return &r.stream, nil
}
func (r *Recorder) EndBinaryStream() error {
	r.log("EndBinaryStream %d bytes", r.stream.Len())
	return nil
}

func (r *Recorder) StartTextWriter() (io.Writer, error) {
	r.log("StartTextWriter")
	r.stream.Reset()
	return &r.stream, nil
}
func (r *Recorder) EndTextWriter() error {
	r.log("EndTextWriter %q", r.stream.String())
	return nil
}

func (r *Recorder) WriteDeltaLink(link *odata.DeltaLinkItem) error {
	r.log("WriteDeltaLink %s/%s -> %s", link.Source, link.Relationship, link.Target)
	return nil
}
func (r *Recorder) WriteDeltaDeletedLink(link *odata.DeltaLinkItem) error {
	r.log("WriteDeltaDeletedLink %s/%s -> %s", link.Source, link.Relationship, link.Target)
	return nil
}

func (r *Recorder) Flush() error {
	r.flushed++
	r.log("Flush")
	return nil
}

// The Async variants below discard their context.Context: a Recorder never
// blocks, so there is nothing for cancellation to interrupt. They exist so
// a Recorder can back an odata.NewAsyncWriter in tests exercising the async
// call path itself, not any genuine asynchrony.

func (r *Recorder) StartPayloadAsync(context.Context) error { return r.StartPayload() }
func (r *Recorder) EndPayloadAsync(context.Context) error   { return r.EndPayload() }

func (r *Recorder) StartResourceAsync(_ context.Context, res *odata.Resource) error {
	return r.StartResource(res)
}
func (r *Recorder) EndResourceAsync(_ context.Context, res *odata.Resource) error {
	return r.EndResource(res)
}

func (r *Recorder) StartResourceSetAsync(_ context.Context, set *odata.ResourceSet) error {
	return r.StartResourceSet(set)
}
func (r *Recorder) EndResourceSetAsync(_ context.Context, set *odata.ResourceSet) error {
	return r.EndResourceSet(set)
}

func (r *Recorder) StartDeltaResourceSetAsync(_ context.Context, set *odata.ResourceSet) error {
	return r.StartDeltaResourceSet(set)
}
func (r *Recorder) EndDeltaResourceSetAsync(_ context.Context, set *odata.ResourceSet) error {
	return r.EndDeltaResourceSet(set)
}

func (r *Recorder) StartDeletedResourceAsync(_ context.Context, res *odata.DeletedResource) error {
	return r.StartDeletedResource(res)
}
func (r *Recorder) EndDeletedResourceAsync(_ context.Context, res *odata.DeletedResource) error {
	return r.EndDeletedResource(res)
}

func (r *Recorder) StartPropertyAsync(_ context.Context, prop *odata.Property) error {
	return r.StartProperty(prop)
}
func (r *Recorder) EndPropertyAsync(_ context.Context, prop *odata.Property) error {
	return r.EndProperty(prop)
}

func (r *Recorder) StartNestedResourceInfoWithContentAsync(_ context.Context, link *odata.NestedResourceInfo) error {
	return r.StartNestedResourceInfoWithContent(link)
}
func (r *Recorder) EndNestedResourceInfoWithContentAsync(_ context.Context, link *odata.NestedResourceInfo) error {
	return r.EndNestedResourceInfoWithContent(link)
}

func (r *Recorder) WriteDeferredNestedResourceInfoAsync(_ context.Context, link *odata.NestedResourceInfo) error {
	return r.WriteDeferredNestedResourceInfo(link)
}
func (r *Recorder) WriteEntityReferenceLinkAsync(_ context.Context, parent *odata.NestedResourceInfo, ref *odata.EntityReferenceLink) error {
	return r.WriteEntityReferenceLink(parent, ref)
}

func (r *Recorder) WritePrimitiveValueAsync(_ context.Context, v any) error {
	return r.WritePrimitiveValue(v)
}

func (r *Recorder) StartBinaryStreamAsync(context.Context) (io.Writer, error) { return r.StartBinaryStream() }
func (r *Recorder) EndBinaryStreamAsync(context.Context) error                { return r.EndBinaryStream() }

func (r *Recorder) StartTextWriterAsync(context.Context) (io.Writer, error) { return r.StartTextWriter() }
func (r *Recorder) EndTextWriterAsync(context.Context) error                { return r.EndTextWriter() }

func (r *Recorder) WriteDeltaLinkAsync(_ context.Context, link *odata.DeltaLinkItem) error {
	return r.WriteDeltaLink(link)
}
func (r *Recorder) WriteDeltaDeletedLinkAsync(_ context.Context, link *odata.DeltaLinkItem) error {
	return r.WriteDeltaDeletedLink(link)
}

func (r *Recorder) FlushAsync(context.Context) error { return r.Flush() }
