package sanitize

import (
	"strings"
	"testing"
)

func TestContentRemovesNulls(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "Terms", want: "Terms"},
		{in: "Term\x00s", want: "Terms"},
		{in: "\x00\x00", want: ""},
		{in: "café 日本\x00語", want: "café 日本語"},
	}
	for _, tc := range cases {
		got := Content(tc.in)
		if got != tc.want {
			t.Fatalf("Content(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if strings.ContainsRune(got, '\x00') {
			t.Fatalf("Content(%q) still contains NUL", tc.in)
		}
	}
}

func TestContentIdempotent(t *testing.T) {
	inputs := []string{"", "plain", "a\x00b\x00c", "unicode ☃"}
	for _, in := range inputs {
		once := Content(in)
		twice := Content(once)
		if once != twice {
			t.Fatalf("Content not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
