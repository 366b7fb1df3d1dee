// Package dailynote works out where a vault keeps today's daily note.
package dailynote

import (
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// DefaultFormat is the daily note filename template Obsidian uses when the
// vault does not configure one.
const DefaultFormat = "YYYY-MM-DD"

// tokens is ordered longest-first within each family so that YYYY is never
// consumed as two YY and MMMM never as MMM+M.
var tokens = []string{
	"YYYY", "%Y",
	"MMMM", "%B",
	"dddd", "%A",
	"MMM", "%b",
	"ddd", "%a",
	"YY", "%y",
	"MM", "%m",
	"DD", "%d",
}

// strings.Replacer does a single left-to-right pass and tries old strings
// in argument order, so output is never rescanned.
var translator = strings.NewReplacer(tokens...)

// Translate rewrites date tokens in template into strftime directives.
// Other characters, "%" included, pass through untouched.
func Translate(template string) string {
	return translator.Replace(template)
}

// Render formats date using template.
func Render(template string, date time.Time) (string, error) {
	return strftime.Format(Translate(template), date)
}
