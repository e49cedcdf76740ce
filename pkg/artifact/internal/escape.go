package internal

import (
	"regexp"
	"strings"
)

var doubleQuoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
	"\n", `\n`,
)

var plainNumber = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)

// EscapeDoubleQuoted escapes s for use inside a double-quoted shell string.
// Containerfile LABEL values follow the same rules.
func EscapeDoubleQuoted(s string) string {
	return doubleQuoteEscaper.Replace(s)
}

// QuoteDouble returns s escaped and wrapped in double quotes.
func QuoteDouble(s string) string {
	return `"` + EscapeDoubleQuoted(s) + `"`
}

// ShellNumber returns s bare when it is a plain decimal number and
// QuoteDouble(s) otherwise.
func ShellNumber(s string) string {
	if plainNumber.MatchString(s) {
		return s
	}
	return QuoteDouble(s)
}
