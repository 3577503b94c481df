// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "fmt"

// formatAny renders a non-string key value in OData literal form. Only the
// primitive kinds that can legally appear in an entity key are handled;
// anything else falls back to fmt's default rendering.
func formatAny(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(t)
	}
}
