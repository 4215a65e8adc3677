package table

import (
	"regexp"
	"strings"
)

// entityPrefix matches a character entity at the start of the input:
// a named entity (&amp;), a decimal reference (&#60;), or a hex
// reference (&#x3C;). Used to keep EscapeCell idempotent.
var entityPrefix = regexp.MustCompile(`^&(?:[a-zA-Z][a-zA-Z0-9]{1,31}|#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6});`)

// EscapeCell HTML-escapes cell text so a model rendered as HTML cannot
// inject markup from parsed content. Escaping happens when text enters the
// model (parse, cell edit), never at render time.
//
// It is idempotent: an ampersand that already begins a character entity is
// left alone, so serializing and re-parsing a table does not double-escape.
// The cost is that a literal "&amp;" typed by a user stays "&amp;".
func EscapeCell(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			if ent := entityPrefix.FindString(s[i:]); ent != "" {
				b.WriteString(ent)
				i += len(ent) - 1
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
