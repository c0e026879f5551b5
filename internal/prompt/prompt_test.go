package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("first\r\nsecond\nlast"), &out)

	got, err := r.Line("a? ")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = r.Line("b? ")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	got, err = r.Line("c? ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = r.Line("d? ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "a? b? c? d? ", out.String())
}

func TestLine_KeepsInnerSpaces(t *testing.T) {
	r := NewReader(strings.NewReader("  buy milk  \n"), io.Discard)

	got, err := r.Line("")
	require.NoError(t, err)
	assert.Equal(t, "  buy milk  ", got)
}

func TestSecret_NonTerminalFallsBackToLine(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("hunter2\n"), &out)

	got, err := r.Secret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
	assert.Equal(t, "Password: ", out.String())
}
