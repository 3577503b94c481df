// Copyright (C) 2026 The odata Authors. All Rights Reserved.

// Package demo drives the writer engine end to end against a small
// built-in Customer/Order model, for odatawrite to run as a demonstration
// and for its own tests to assert against.
package demo

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/creachadair/odata"
	"github.com/creachadair/odata/odatajson"
	"github.com/creachadair/odata/odatatest"
)

// Options configures a single demonstration run.
type Options struct {
	// Request writes a request payload (entity reference links instead of
	// expanded content) rather than a response payload.
	Request bool

	// Delta writes a delta resource set (one changed customer, one
	// deleted customer, one delta link) instead of a plain resource set.
	Delta bool

	// Async drives the writer through its asynchronous entry points
	// (threading a context.Context to every back-end hook) instead of its
	// synchronous ones. Both paths exercise the same underlying driver
	// core (driver.go and ops_*.go), so this flag exists to demonstrate both call
	// surfaces odatawrite exposes rather than to change the payload.
	Async bool

	Logger  *zap.Logger
	Metrics prometheus.Registerer
}

// ops adapts the writer's duplicated sync/async method pairs behind one
// set of function values, so the sample-payload builders below don't have
// to be written twice: the writer's own sync and async entry points share
// one internal driver and differ only in which entry point (and which
// context) they bind, not in what they do, and this lets the call site
// mirror that shape instead of duplicating it.
type ops struct {
	startResourceSet      func(*odata.ResourceSet) error
	startDeltaResourceSet func(*odata.ResourceSet) error
	startResource         func(*odata.Resource) error
	startDeletedResource  func(*odata.DeletedResource) error
	startProperty         func(*odata.Property) error
	startNestedLink       func(*odata.NestedResourceInfo) error
	writeEntityRefLink    func(*odata.EntityReferenceLink) error
	writePrimitive        func(any) error
	writeDeltaLink        func(*odata.DeltaLinkItem) error
	end                   func() error
	dispose               func() error
}

func asyncOps(ctx context.Context, w *odata.Writer) ops {
	return ops{
		startResourceSet:      func(s *odata.ResourceSet) error { return w.StartResourceSetAsync(ctx, s) },
		startDeltaResourceSet: func(s *odata.ResourceSet) error { return w.StartDeltaResourceSetAsync(ctx, s) },
		startResource:         func(r *odata.Resource) error { return w.StartResourceAsync(ctx, r) },
		startDeletedResource:  func(r *odata.DeletedResource) error { return w.StartDeletedResourceAsync(ctx, r) },
		startProperty:         func(p *odata.Property) error { return w.StartPropertyAsync(ctx, p) },
		startNestedLink:       func(l *odata.NestedResourceInfo) error { return w.StartNestedResourceInfoAsync(ctx, l) },
		writeEntityRefLink:    func(r *odata.EntityReferenceLink) error { return w.WriteEntityReferenceLinkAsync(ctx, r) },
		writePrimitive:        func(v any) error { return w.WritePrimitiveAsync(ctx, v) },
		writeDeltaLink:        func(l *odata.DeltaLinkItem) error { return w.WriteDeltaLinkAsync(ctx, l) },
		end:                   func() error { return w.EndAsync(ctx) },
		dispose:               w.Dispose,
	}
}

func syncOps(w *odata.Writer) ops {
	return ops{
		startResourceSet:      w.StartResourceSet,
		startDeltaResourceSet: w.StartDeltaResourceSet,
		startResource:         w.StartResource,
		startDeletedResource:  w.StartDeletedResource,
		startProperty:         w.StartProperty,
		startNestedLink:       w.StartNestedResourceInfo,
		writeEntityRefLink:    w.WriteEntityReferenceLink,
		writePrimitive:        w.WritePrimitive,
		writeDeltaLink:        w.WriteDeltaLink,
		end:                   w.End,
		dispose:               w.Dispose,
	}
}

// Run writes one demonstration payload to w according to opts.
func Run(w io.Writer, opts Options) error {
	model := odatatest.NewFixtureModel()
	jw := odatajson.New(w)

	var metrics *odata.Metrics
	if opts.Metrics != nil {
		metrics = odata.NewMetrics(opts.Metrics, "odatawrite", "writer")
	}
	writerOpts := odata.WriterOptions{
		Request: opts.Request,
		Logger:  opts.Logger,
		Metrics: metrics,
	}

	var o ops
	if opts.Async {
		writer := odata.NewAsyncWriter(model, jw, true, writerOpts)
		o = asyncOps(context.Background(), writer)
	} else {
		writer := odata.NewWriter(model, jw, true, writerOpts)
		o = syncOps(writer)
	}

	if opts.Delta {
		return writeDeltaSet(o)
	}
	return writeResourceSet(o, opts.Request)
}

func writeResourceSet(o ops, request bool) error {
	if err := o.startResourceSet(&odata.ResourceSet{
		TypeName:          "Collection(NS.Customer)",
		SerializationInfo: &odata.SerializationInfo{NavigationSourceName: "Customers"},
	}); err != nil {
		return err
	}
	for _, c := range sampleCustomers {
		if err := writeCustomer(o, c, request); err != nil {
			return err
		}
	}
	if err := o.end(); err != nil {
		return err
	}
	return o.dispose()
}

func writeCustomer(o ops, c customer, request bool) error {
	if err := o.startResource(&odata.Resource{TypeName: "NS.Customer", ID: c.id}); err != nil {
		return err
	}
	if err := writeStringProperty(o, "Name", c.name); err != nil {
		return err
	}

	if err := o.startNestedLink(&odata.NestedResourceInfo{Name: "Orders", IsCollection: true}); err != nil {
		return err
	}
	if request {
		for _, oid := range c.orderIDs {
			if err := o.writeEntityRefLink(&odata.EntityReferenceLink{URL: oid}); err != nil {
				return err
			}
		}
	} else {
		if err := o.startResourceSet(&odata.ResourceSet{TypeName: "Collection(NS.Order)"}); err != nil {
			return err
		}
		for _, oid := range c.orderIDs {
			if err := o.startResource(&odata.Resource{TypeName: "NS.Order", ID: oid}); err != nil {
				return err
			}
			if err := o.end(); err != nil {
				return err
			}
		}
		if err := o.end(); err != nil { // resource set
			return err
		}
	}
	if err := o.end(); err != nil { // nested resource info (with content)
		return err
	}

	return o.end() // customer resource
}

func writeStringProperty(o ops, name, value string) error {
	if err := o.startProperty(&odata.Property{Name: name}); err != nil {
		return err
	}
	if err := o.writePrimitive(value); err != nil { // pushes and pops StatePrimitive internally
		return err
	}
	return o.end() // property scope
}

func writeDeltaSet(o ops) error {
	if err := o.startDeltaResourceSet(&odata.ResourceSet{
		TypeName:          "Collection(NS.Customer)",
		SerializationInfo: &odata.SerializationInfo{NavigationSourceName: "Customers"},
	}); err != nil {
		return err
	}
	if err := o.startResource(&odata.Resource{TypeName: "NS.Customer", ID: "Customers(1)"}); err != nil {
		return err
	}
	if err := writeStringProperty(o, "Name", "Ada (updated)"); err != nil {
		return err
	}
	if err := o.end(); err != nil { // resource
		return err
	}

	if err := o.startDeletedResource(&odata.DeletedResource{
		Resource: odata.Resource{TypeName: "NS.Customer", ID: "Customers(2)"},
		Reason:   odata.DeletedReasonDeleted,
	}); err != nil {
		return err
	}
	if err := o.end(); err != nil { // deleted resource
		return err
	}

	if err := o.writeDeltaLink(&odata.DeltaLinkItem{
		Source: "Customers(1)", Relationship: "Orders", Target: "Orders(1)",
	}); err != nil {
		return err
	}

	if err := o.end(); err != nil { // delta resource set
		return err
	}
	return o.dispose()
}

type customer struct {
	id       string
	name     string
	orderIDs []string
}

var sampleCustomers = []customer{
	{id: "Customers(1)", name: "Ada", orderIDs: []string{"Orders(9)", "Orders(10)"}},
	{id: "Customers(2)", name: "Grace", orderIDs: []string{"Orders(11)"}},
}
