// Copyright (C) 2026 The odata Authors. All Rights Reserved.

// Package odatajson is a JSON format back-end for odata.Writer: it
// implements odata.Backend (and odata.AsyncBackend) by rendering every hook
// call directly onto an io.Writer, following OData's JSON representation
// (a top-level resource set as {"value":[...]}, expanded navigation
// properties as bare arrays, Edm.Int64/binary values quoted).
//
// A Writer is a thin state machine over an output stack (frame.go) plus a
// handful of literal-encoding rules (literal.go); it trusts the caller's
// odata.Writer to have already validated every transition, the same
// division of labor jtree/jwcc's Formatter has with the parser that feeds
// it: by the time a hook fires, the call is known-good.
package odatajson

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strconv"

	"github.com/creachadair/odata"
)

// Writer renders an OData payload as JSON onto an underlying io.Writer. It
// is not safe for concurrent use; odata.Writer never calls it that way.
type Writer struct {
	sink  io.Writer
	o     out
	stack frameStack

	// refArrayOpen is true while a collection-valued nested resource info
	// is receiving WriteEntityReferenceLink calls and has already opened
	// its JSON array; see WriteEntityReferenceLink.
	refArrayOpen bool

	// streamEnc, when non-nil, is the base64 encoder wrapping the current
	// open binary stream (StartBinaryStream/EndBinaryStream).
	streamEnc io.WriteCloser

	// textBuf buffers an open text sub-writer's content so it can be
	// quoted as a single JSON string on EndTextWriter, rather than
	// streaming partially-escaped fragments that could split a multi-byte
	// rune across two Write calls.
	textBuf *bytes.Buffer
}

// New constructs a Writer that renders onto sink.
func New(sink io.Writer) *Writer {
	return &Writer{sink: sink}
}

// Flush writes any buffered output to the underlying sink. odata.Writer's
// Dispose calls this once after any open stream has been disposed.
func (w *Writer) Flush() error {
	if w.o.buf.Len() == 0 {
		return nil
	}
	_, err := w.sink.Write(w.o.buf.Bytes())
	w.o.buf.Reset()
	return err
}

func (w *Writer) StartPayload() error { return nil }
func (w *Writer) EndPayload() error   { return w.Flush() }

func (w *Writer) StartResource(res *odata.Resource) error {
	w.pushContainer(frameObject)
	w.writeResourceHeader(res.TypeName, res.ID)
	return nil
}

func (w *Writer) EndResource(*odata.Resource) error {
	w.popContainer()
	return nil
}

func (w *Writer) StartDeletedResource(res *odata.DeletedResource) error {
	w.pushContainer(frameObject)
	w.writeResourceHeader(res.TypeName, res.ID)
	w.writeKey("@removed")
	w.pushContainer(frameObject)
	w.writeKey("reason")
	w.writeQuoted(deletedReasonString(res.Reason))
	w.popContainer()
	return nil
}

func (w *Writer) EndDeletedResource(*odata.DeletedResource) error {
	w.popContainer()
	return nil
}

func deletedReasonString(r odata.DeletedReason) string {
	switch r {
	case odata.DeletedReasonDeleted:
		return "deleted"
	case odata.DeletedReasonChanged:
		return "changed"
	default:
		return "unspecified"
	}
}

// writeResourceHeader writes the @odata.type and @odata.id annotations a
// resource object opens with, when known; both are optional (inferred
// context is common, per payload.go's doc comments on Resource).
func (w *Writer) writeResourceHeader(typeName, id string) {
	if typeName != "" {
		w.writeKey("@odata.type")
		w.writeQuoted("#" + typeName)
	}
	if id != "" {
		w.writeKey("@odata.id")
		w.writeQuoted(id)
	}
}

func (w *Writer) StartResourceSet(set *odata.ResourceSet) error {
	w.startSet(set)
	return nil
}

func (w *Writer) EndResourceSet(set *odata.ResourceSet) error {
	w.endSet(set)
	return nil
}

func (w *Writer) StartDeltaResourceSet(set *odata.ResourceSet) error {
	w.startSet(set)
	return nil
}

func (w *Writer) EndDeltaResourceSet(set *odata.ResourceSet) error {
	w.endSet(set)
	return nil
}

// startSet implements the shared rendering for StartResourceSet and
// StartDeltaResourceSet: a top-level set (nothing open yet on the output
// stack) is wrapped as {"@odata.count":N, "value": [ ... with nextLink and
// deltaLink written after the array closes; a set reached through an
// expanded navigation property renders as a bare array, since its key was
// already written by StartNestedResourceInfoWithContent.
func (w *Writer) startSet(set *odata.ResourceSet) {
	top := w.stack.empty()
	if top {
		w.pushContainer(frameObject)
		if set.Count != nil {
			w.writeKey("@odata.count")
			w.o.writeString(strconv.FormatInt(*set.Count, 10))
		}
		w.writeKey("value")
	}
	f := w.pushContainer(frameArray)
	f.wrapsRoot = top
}

func (w *Writer) endSet(set *odata.ResourceSet) {
	f := w.popContainer()
	if !f.wrapsRoot {
		return
	}
	if set.NextPageLink != "" {
		w.writeKey("@odata.nextLink")
		w.writeQuoted(set.NextPageLink)
	}
	if set.DeltaLink != "" {
		w.writeKey("@odata.deltaLink")
		w.writeQuoted(set.DeltaLink)
	}
	w.popContainer()
}

func (w *Writer) StartProperty(prop *odata.Property) error {
	w.writeKey(prop.Name)
	return nil
}

// EndProperty writes a JSON null for a property whose value was never
// supplied (a legitimate OData null, per ops_end.go's endScope comment):
// that state is visible here as the frame's pendingKey flag still being
// set, since every value-writing hook clears it via beforeValue.
func (w *Writer) EndProperty(*odata.Property) error {
	if f := w.stack.top(); f != nil && f.pendingKey {
		w.beforeValue()
		w.o.writeString("null")
	}
	return nil
}

func (w *Writer) WritePrimitiveValue(v any) error {
	w.beforeValue()
	w.writeLiteral(v)
	return nil
}

func (w *Writer) StartNestedResourceInfoWithContent(link *odata.NestedResourceInfo) error {
	w.writeKey(link.Name)
	w.refArrayOpen = false
	return nil
}

func (w *Writer) EndNestedResourceInfoWithContent(*odata.NestedResourceInfo) error {
	if w.refArrayOpen {
		w.popContainer()
		w.refArrayOpen = false
	}
	return nil
}

// WriteDeferredNestedResourceInfo writes a deferred link's navigationLink
// annotation as a sibling member of the resource that owns it; the nested
// info scope it closes never opened a frame of its own (only a
// NestedResourceInfoWithContent does, via StartNestedResourceInfoWithContent
// above), so the owning resource's object frame is still on top.
func (w *Writer) WriteDeferredNestedResourceInfo(link *odata.NestedResourceInfo) error {
	w.writeKey(link.Name + "@odata.navigationLink")
	url := link.URL
	w.beforeValue()
	w.writeQuoted(url)
	return nil
}

// WriteEntityReferenceLink renders a $ref entry. A collection-valued link
// accumulates its entries into a JSON array, opened on the first call and
// closed by EndNestedResourceInfoWithContent; a single-valued link writes
// its one object directly as the already-keyed value.
func (w *Writer) WriteEntityReferenceLink(parent *odata.NestedResourceInfo, ref *odata.EntityReferenceLink) error {
	if parent.IsCollection && !w.refArrayOpen {
		w.pushContainer(frameArray)
		w.refArrayOpen = true
	}
	w.pushContainer(frameObject)
	w.writeKey("@odata.id")
	w.writeQuoted(ref.URL)
	w.popContainer()
	return nil
}

func (w *Writer) StartBinaryStream() (io.Writer, error) {
	w.beforeValue()
	w.o.writeByte('"')
	enc := base64.NewEncoder(base64.StdEncoding, &bufWriter{o: &w.o})
	w.streamEnc = enc
	return enc, nil
}

func (w *Writer) EndBinaryStream() error {
	err := w.streamEnc.Close()
	w.streamEnc = nil
	w.o.writeByte('"')
	return err
}

func (w *Writer) StartTextWriter() (io.Writer, error) {
	w.beforeValue()
	w.textBuf = new(bytes.Buffer)
	return w.textBuf, nil
}

func (w *Writer) EndTextWriter() error {
	w.writeQuoted(w.textBuf.String())
	w.textBuf = nil
	return nil
}

func (w *Writer) WriteDeltaLink(link *odata.DeltaLinkItem) error {
	w.writeDeltaLinkItem(link, false)
	return nil
}

func (w *Writer) WriteDeltaDeletedLink(link *odata.DeltaLinkItem) error {
	w.writeDeltaLinkItem(link, true)
	return nil
}

func (w *Writer) writeDeltaLinkItem(link *odata.DeltaLinkItem, deleted bool) {
	w.pushContainer(frameObject)
	w.writeKey("source")
	w.writeQuoted(link.Source)
	w.writeKey("relationship")
	w.writeQuoted(link.Relationship)
	w.writeKey("target")
	w.writeQuoted(link.Target)
	if deleted {
		w.writeKey("@removed")
		w.pushContainer(frameObject)
		w.popContainer()
	}
	w.popContainer()
}

// bufWriter adapts *out to io.Writer so base64.NewEncoder can write through
// it without exposing out's other methods.
type bufWriter struct{ o *out }

func (b *bufWriter) Write(p []byte) (int, error) {
	b.o.writeBytes(p)
	return len(p), nil
}

// Async variants. odatajson's rendering never blocks or depends on ctx, so
// every Async hook just discards it and calls its synchronous counterpart;
// this still satisfies odata.AsyncBackend's shape for callers that
// constructed the engine with NewAsyncWriter (cmd/odatawrite demonstrates
// both modes against the same back-end).

func (w *Writer) StartPayloadAsync(context.Context) error { return w.StartPayload() }
func (w *Writer) EndPayloadAsync(context.Context) error   { return w.EndPayload() }

func (w *Writer) StartResourceAsync(_ context.Context, res *odata.Resource) error {
	return w.StartResource(res)
}
func (w *Writer) EndResourceAsync(_ context.Context, res *odata.Resource) error {
	return w.EndResource(res)
}

func (w *Writer) StartResourceSetAsync(_ context.Context, set *odata.ResourceSet) error {
	return w.StartResourceSet(set)
}
func (w *Writer) EndResourceSetAsync(_ context.Context, set *odata.ResourceSet) error {
	return w.EndResourceSet(set)
}

func (w *Writer) StartDeltaResourceSetAsync(_ context.Context, set *odata.ResourceSet) error {
	return w.StartDeltaResourceSet(set)
}
func (w *Writer) EndDeltaResourceSetAsync(_ context.Context, set *odata.ResourceSet) error {
	return w.EndDeltaResourceSet(set)
}

func (w *Writer) StartDeletedResourceAsync(_ context.Context, res *odata.DeletedResource) error {
	return w.StartDeletedResource(res)
}
func (w *Writer) EndDeletedResourceAsync(_ context.Context, res *odata.DeletedResource) error {
	return w.EndDeletedResource(res)
}

func (w *Writer) StartPropertyAsync(_ context.Context, prop *odata.Property) error {
	return w.StartProperty(prop)
}
func (w *Writer) EndPropertyAsync(_ context.Context, prop *odata.Property) error {
	return w.EndProperty(prop)
}

func (w *Writer) StartNestedResourceInfoWithContentAsync(_ context.Context, link *odata.NestedResourceInfo) error {
	return w.StartNestedResourceInfoWithContent(link)
}
func (w *Writer) EndNestedResourceInfoWithContentAsync(_ context.Context, link *odata.NestedResourceInfo) error {
	return w.EndNestedResourceInfoWithContent(link)
}

func (w *Writer) WriteDeferredNestedResourceInfoAsync(_ context.Context, link *odata.NestedResourceInfo) error {
	return w.WriteDeferredNestedResourceInfo(link)
}
func (w *Writer) WriteEntityReferenceLinkAsync(_ context.Context, parent *odata.NestedResourceInfo, ref *odata.EntityReferenceLink) error {
	return w.WriteEntityReferenceLink(parent, ref)
}

func (w *Writer) WritePrimitiveValueAsync(_ context.Context, v any) error {
	return w.WritePrimitiveValue(v)
}

func (w *Writer) StartBinaryStreamAsync(context.Context) (io.Writer, error) { return w.StartBinaryStream() }
func (w *Writer) EndBinaryStreamAsync(context.Context) error                { return w.EndBinaryStream() }

func (w *Writer) StartTextWriterAsync(context.Context) (io.Writer, error) { return w.StartTextWriter() }
func (w *Writer) EndTextWriterAsync(context.Context) error                { return w.EndTextWriter() }

func (w *Writer) WriteDeltaLinkAsync(_ context.Context, link *odata.DeltaLinkItem) error {
	return w.WriteDeltaLink(link)
}
func (w *Writer) WriteDeltaDeletedLinkAsync(_ context.Context, link *odata.DeltaLinkItem) error {
	return w.WriteDeltaDeletedLink(link)
}

func (w *Writer) FlushAsync(context.Context) error { return w.Flush() }
