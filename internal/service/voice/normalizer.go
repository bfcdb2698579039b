package voice

import "strings"

// Normalize prepares a raw transcript for classification: lowercase,
// trimmed, internal whitespace runs collapsed to a single space.
// Empty input yields empty output, which classifies as Unknown.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
