// Copyright (C) 2026 The odata Authors. All Rights Reserved.

// Package odatatest provides fixtures shared by external (black-box) tests
// of the writer engine: a small in-memory EDM model and a recording Backend
// that captures the hook calls the engine makes against it so a test can
// assert on call sequence rather than rendered bytes.
//
// It is a separate package, not part of odata's own test files, because it
// implements odata.Backend and therefore must import package odata; the
// engine's own white-box tests (package odata) cannot import anything that
// imports odata without creating a cycle.
package odatatest

import "github.com/creachadair/odata/edm"

// NewFixtureModel returns a Schema declaring a small Customer/Order graph:
// NS.Customer has a collection-valued navigation property Orders to
// NS.Order, and NS.Order has a single-valued navigation property Customer
// back to NS.Customer. The entity sets Customers and Orders are bound to
// each other along that navigation, so path-relative lookups the engine
// performs while validating a payload (see typeresolver.go) resolve the
// way a real $metadata document would.
func NewFixtureModel() *edm.Schema {
	s := edm.NewSchema()

	customer := s.AddType(&edm.EntityType{
		TypeName: "NS.Customer",
		Keys:     []string{"ID"},
		Properties: []*edm.StructuralProperty{
			{Name: "ID", TypeName: "Edm.Int32"},
			{Name: "Name", TypeName: "Edm.String"},
		},
	})
	order := s.AddType(&edm.EntityType{
		TypeName: "NS.Order",
		Keys:     []string{"ID"},
		Properties: []*edm.StructuralProperty{
			{Name: "ID", TypeName: "Edm.Int32"},
			{Name: "Amount", TypeName: "Edm.Decimal"},
		},
	})
	customer.NavProps = []*edm.NavigationProperty{
		{Name: "Orders", TargetType: order, IsCollection: true},
	}
	order.NavProps = []*edm.NavigationProperty{
		{Name: "Customer", TargetType: customer},
	}

	customers := s.AddEntitySet(&edm.EntitySet{SetName: "Customers", Type: customer})
	orders := s.AddEntitySet(&edm.EntitySet{SetName: "Orders", Type: order})

	s.Bind([]string{"Customers"}, "Orders", orders)
	s.Bind([]string{"Orders"}, "Customer", customers)

	return s
}
