package runner

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "single line without newline", input: "42", want: "42\n"},
		{name: "unix newlines", input: "a\nb\n", want: "a\nb\n"},
		{name: "windows newlines", input: "a\r\nb\r\n", want: "a\nb\n"},
		{name: "mixed newlines", input: "a\r\nb\nc", want: "a\nb\nc\n"},
		{name: "inner empty lines kept", input: "a\n\nb\n", want: "a\n\nb\n"},
		{name: "trailing empty lines dropped", input: "a\nb\n\n\n", want: "a\nb\n"},
		{name: "leading empty lines kept", input: "\n\na\n", want: "\n\na\n"},
		{name: "only newlines", input: "\n\r\n\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, PipeLines(&out, strings.NewReader(tt.input)))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestPipeLinesLongLine(t *testing.T) {
	line := strings.Repeat("#", 200_000)
	var out bytes.Buffer
	require.NoError(t, PipeLines(&out, strings.NewReader(line)))
	assert.Equal(t, line+"\n", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPipeLinesWriteError(t *testing.T) {
	err := PipeLines(failingWriter{}, strings.NewReader("a\nb\n"))
	assert.ErrorContains(t, err, "closed")
}

func TestTailBuffer(t *testing.T) {
	buf := newTailBuffer(8)
	_, err := buf.Write([]byte("hello "))
	require.NoError(t, err)
	assert.False(t, buf.Truncated())

	_, err = buf.Write([]byte("world!"))
	require.NoError(t, err)
	assert.Equal(t, "o world!", buf.String())
	assert.Equal(t, int64(12), buf.TotalBytes())
	assert.True(t, buf.Truncated())
}
