// Package scripture recognizes Bible citations in free text. The match shape
// ("Book chapter:verse", with optional numbered-book prefixes and verse
// ranges) drives the save-verse and read-context affordances on finished
// assistant messages.
package scripture

import "regexp"

var referencePattern = regexp.MustCompile(
	`\b((?:1|2|3|I|II|III)\s?)?[A-Z][a-z]+\.?\s\d+(?::\d+(?:-\d+)?)?\b`,
)

// FindReference returns the first Bible reference in text, or "" if none.
func FindReference(text string) string {
	return referencePattern.FindString(text)
}
