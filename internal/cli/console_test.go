package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_PrintTextWraps(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out, 20)

	term.PrintText("Formula E races use fully electric single-seater cars")

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 20, line)
	}
	assert.Equal(t, "Formula E races use fully electric single-seater cars",
		strings.Join(strings.Fields(out.String()), " "))
}

func TestTerminal_ReadLineAndSecret(t *testing.T) {
	stubTerminal(t, false, nil, nil)

	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("ana\npw123\n"), &out, 50)

	name, err := term.ReadLine("Name: ")
	require.NoError(t, err)
	pw, err := term.ReadSecret("Password: ")
	require.NoError(t, err)
	term.Println("done", 1)

	assert.Equal(t, "ana", name)
	assert.Equal(t, []byte("pw123"), pw)
	assert.Equal(t, "Name: Password: done 1\n", out.String())
}

func TestTerminal_InputErrorsPropagate(t *testing.T) {
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origST, origGP })
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return "", io.EOF }
	getPassword = func(*bufio.Reader, string, io.Writer) ([]byte, error) { return nil, errors.New("tty gone") }

	term := NewTerminal(strings.NewReader("ignored\n"), io.Discard, 50)

	_, err := term.ReadLine("Name: ")
	assert.ErrorIs(t, err, io.EOF)
	_, err = term.ReadSecret("Password: ")
	assert.EqualError(t, err, "tty gone")
}
