// Package linefmt implements the line-oriented record format shared by the
// credential store and the report log.
//
// A record is one newline-terminated line whose fields are separated by
// Delimiter. Short fields are right-padded to PadWidth when written, so
// readers must compare fields after trimming.
package linefmt

import (
	"fmt"
	"strings"
)

const (
	Delimiter = "|"
	PadWidth  = 10
	quote     = "'"
)

// Pad right-pads s with spaces to PadWidth. Longer values are left as is.
func Pad(s string) string {
	return fmt.Sprintf("%-*s", PadWidth, s)
}

// Fields splits line on Delimiter and trims every field. A terminating
// delimiter does not produce a trailing empty field.
func Fields(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	parts := strings.Split(line, Delimiter)
	if n := len(parts); n > 1 && strings.TrimSpace(parts[n-1]) == "" {
		parts = parts[:n-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// HasReserved reports whether s contains the delimiter or a line break and
// therefore cannot be stored unescaped.
func HasReserved(s string) bool {
	return strings.ContainsAny(s, Delimiter+"\r\n")
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	Delimiter, `\`+Delimiter,
	"\n", `\n`,
	"\r", `\r`,
)

// Escape makes free text safe to store as the last field of a record.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape. Unknown escape sequences are kept verbatim.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '|':
			b.WriteByte('|')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Quote wraps s in single quotes.
func Quote(s string) string {
	return quote + s + quote
}

// Unquote strips one pair of surrounding single quotes, if present.
func Unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) {
		return s[1 : len(s)-1]
	}
	return s
}
