// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package demo

import (
	"strings"
	"testing"
)

func TestRunResourceSet(t *testing.T) {
	var buf strings.Builder
	if err := Run(&buf, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		`"@odata.type":"#NS.Customer"`,
		`"@odata.id":"Customers(1)"`,
		`"Name":"Ada"`,
		`"Orders":[`,
		`"@odata.id":"Orders(9)"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got: %s", want, got)
		}
	}
}

func TestRunRequestPayloadUsesEntityReferenceLinks(t *testing.T) {
	var buf strings.Builder
	if err := Run(&buf, Options{Request: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		`"Orders":[{"@odata.id":"Orders(9)"}`,
		`"@odata.id":"Orders(10)"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got: %s", want, got)
		}
	}
}

func TestRunAsyncProducesSameShapeAsSync(t *testing.T) {
	var syncBuf, asyncBuf strings.Builder
	if err := Run(&syncBuf, Options{}); err != nil {
		t.Fatalf("Run (sync): %v", err)
	}
	if err := Run(&asyncBuf, Options{Async: true}); err != nil {
		t.Fatalf("Run (async): %v", err)
	}
	if got, want := asyncBuf.String(), syncBuf.String(); got != want {
		t.Errorf("async output differs from sync:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRunDeltaSet(t *testing.T) {
	var buf strings.Builder
	if err := Run(&buf, Options{Delta: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		`"Name":"Ada (updated)"`,
		`"@removed":{"reason":"deleted"}`,
		`"source":"Customers(1)"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got: %s", want, got)
		}
	}
}
