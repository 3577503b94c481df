// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"go4.org/mem"

	"github.com/creachadair/odata/internal/escape"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{" ", " "},
		{"abc", "abc"},
		{"a\tb\nc", "a\\tb\\nc"},
		{"\b\f\r", "\\b\\f\\r"},
		{"\x00\x01\x02", "\\u0000\\u0001\\u0002"},
		{"a\"b", "a\\\"b"},
		{"a\\b", "a\\\\b"},
		{"caf\u00e9", "caf\u00e9"}, // ordinary non-ASCII passes through unescaped
		{"\ufffd", "\\ufffd"},
		{"\u2028\u2029", "\\u2028\\u2029"},
	}
	for _, test := range tests {
		got := string(escape.Quote(mem.S(test.input)))
		if got != test.want {
			t.Errorf("Quote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{"", "", false},
		{"ok go", "ok go", false},
		{"abc\\ndef", "abc\ndef", false},
		{"\\tabc\\n", "\tabc\n", false},
		{"\\b\\f\\n\\r\\t", "\b\f\n\r\t", false},
		{"a & b", "a & b", false},
		{"\\u", "", true},
		{"\\u00", "", true},
		{"\\u00x9", "\ufffd", false},
		{"\\u019 ", "\ufffd", false},
		{"a\\\"b", "a\"b", false},
		{"a\\\\b\\\\cd", "a\\b\\cd", false},
	}

	for _, test := range tests {
		got, err := escape.Unquote(mem.S(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if s := string(got); s != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, s, test.want)
		}
	}
}
