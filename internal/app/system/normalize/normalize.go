// Package normalize provides canonical forms for user-entered identity
// fields so lookups and uniqueness checks behave predictably.
package normalize

import "strings"

// Email returns the canonical form of an email address: trimmed and
// lowercased. Email lookups (admin resolution, winner resolution) always
// go through this.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
