package sanitize

import "strings"

// Content removes null characters from extracted text. Postgres rejects NUL
// bytes in text columns, so this must run before any content is persisted.
// All other characters pass through unchanged. Idempotent.
func Content(s string) string {
	if !strings.ContainsRune(s, '\x00') {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}
