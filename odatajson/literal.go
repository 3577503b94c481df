// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odatajson

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"go4.org/mem"

	"github.com/creachadair/odata/internal/escape"
)

// writeQuoted writes s as a JSON string literal, including its enclosing
// quotation marks. Escaping goes through internal/escape.Quote over a
// go4.org/mem view of s: control characters, the quotation mark and
// backslash, and the replacement, line-separator and paragraph-separator
// runes are escaped; other runes pass through unchanged.
func (w *Writer) writeQuoted(s string) {
	w.o.writeByte('"')
	w.o.writeBytes(escape.Quote(mem.S(s)))
	w.o.writeByte('"')
}

// writeLiteral renders v as a JSON value with no enclosing key, following
// OData JSON's primitive encoding rules: Edm.Int64 and arbitrary-precision
// decimals round-trip through JavaScript numbers badly, so they (like every
// other non-numeric, non-boolean Go value this function doesn't recognize)
// are written as quoted strings rather than bare numbers.
func (w *Writer) writeLiteral(v any) {
	switch x := v.(type) {
	case nil:
		w.o.writeString("null")
	case bool:
		if x {
			w.o.writeString("true")
		} else {
			w.o.writeString("false")
		}
	case string:
		w.writeQuoted(x)
	case []byte:
		w.writeQuoted(base64.StdEncoding.EncodeToString(x))
	case int:
		w.o.writeString(strconv.FormatInt(int64(x), 10))
	case int32:
		w.o.writeString(strconv.FormatInt(int64(x), 10))
	case int64:
		w.writeQuoted(strconv.FormatInt(x, 10))
	case float32:
		w.o.writeString(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case float64:
		w.o.writeString(strconv.FormatFloat(x, 'g', -1, 64))
	case time.Time:
		w.writeQuoted(x.Format(time.RFC3339Nano))
	case fmt.Stringer:
		w.writeQuoted(x.String())
	default:
		w.writeQuoted(fmt.Sprint(x))
	}
}
