package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth. Existing line breaks are kept.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// List joins items with commas: "A", "A, B", "A, B, C".
func List(items []string) string {
	return strings.Join(items, ", ")
}
