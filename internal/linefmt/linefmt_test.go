package linefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	assert.Equal(t, "Ana       ", Pad("Ana"))
	assert.Equal(t, "abcdefghijkl", Pad("abcdefghijkl"))
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"user record", "Ana       |a@x.com   |argon2id$x$y|\n", []string{"Ana", "a@x.com", "argon2id$x$y"}},
		{"crlf", "Ana |b|c|\r\n", []string{"Ana", "b", "c"}},
		{"no trailing delimiter", "Ana       |'broken button'", []string{"Ana", "'broken button'"}},
		{"blank", "   \n", nil},
		{"single field", "garbage\n", []string{"garbage"}},
		{"empty middle field", "a||c|", []string{"a", "", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fields(tt.line))
		})
	}
}

func TestHasReserved(t *testing.T) {
	assert.False(t, HasReserved("plain text"))
	assert.True(t, HasReserved("a|b"))
	assert.True(t, HasReserved("a\nb"))
	assert.True(t, HasReserved("a\rb"))
}

func TestEscapeUnescape(t *testing.T) {
	inputs := []string{
		"broken button",
		"a|b",
		`back\slash`,
		"two\nlines\r\n",
		`\|`,
		"",
	}
	for _, in := range inputs {
		esc := Escape(in)
		assert.False(t, HasReserved(esc), "escaped %q still has reserved chars", in)
		assert.Equal(t, in, Unescape(esc))
	}
}

func TestUnescape_UnknownAndTrailing(t *testing.T) {
	assert.Equal(t, `\t`, Unescape(`\t`))
	assert.Equal(t, `end\`, Unescape(`end\`))
}

func TestQuoteUnquote(t *testing.T) {
	assert.Equal(t, "'x'", Quote("x"))
	assert.Equal(t, "x", Unquote("'x'"))
	assert.Equal(t, "", Unquote("''"))
	assert.Equal(t, "'", Unquote("'"))
	assert.Equal(t, "x'", Unquote("x'"))
}
