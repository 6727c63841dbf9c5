package domain

import (
	"strings"
	"unicode"
)

// Document is a rendered profile ready to be sent as an attachment.
type Document struct {
	Filename string
	Content  []byte
}

// Filename derives the attachment name from a celebrity name, replacing each
// whitespace character with an underscore.
func Filename(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name) + "_profile.pdf"
}
