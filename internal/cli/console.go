package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mitchellh/go-wordwrap"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Terminal is a line-based console over a reader and a writer.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	width int
}

// NewTerminal builds a Terminal. Assistant text is wrapped to width columns.
func NewTerminal(in io.Reader, out io.Writer, width int) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, width: width}
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	return getSimpleText(t.in, prompt, t.out)
}

func (t *Terminal) ReadSecret(prompt string) ([]byte, error) {
	return getPassword(t.in, prompt, t.out)
}

func (t *Terminal) Println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

// PrintText prints text word-wrapped to the terminal width. Words longer
// than the width are kept whole.
func (t *Terminal) PrintText(text string) {
	fmt.Fprintln(t.out, wordwrap.WrapString(text, uint(t.width)))
}
