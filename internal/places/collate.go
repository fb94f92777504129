package places

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale orders names and cities when a query does not name a locale.
var DefaultLocale = language.English

// newCollator returns a case-insensitive collator for tag. Collators are not
// safe for concurrent use, so every call site builds its own.
func newCollator(tag language.Tag) *collate.Collator {
	if tag == language.Und {
		tag = DefaultLocale
	}
	return collate.New(tag, collate.IgnoreCase)
}
