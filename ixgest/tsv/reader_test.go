package tsv

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/castgraph/errors"
)

func TestReader_LinesInOrder(t *testing.T) {
	r := NewReader(strings.NewReader("header\r\nfirst\nsecond"), "input.tsv", 0)

	require.NoError(t, r.SkipHeader())

	line, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "first", line)
	assert.Equal(t, 2, r.Line())

	line, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "second", line, "last line without terminator is still a line")

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_SkipHeaderOnEmptyStream(t *testing.T) {
	r := NewReader(strings.NewReader(""), "empty.tsv", 0)

	require.NoError(t, r.SkipHeader())
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_Record(t *testing.T) {
	input := "h1\th2\th3\th4\th5\th6\n" +
		"tt1\tx\tnm1\tx\tx\tx\n" +
		"\n" +
		"tt1\tx\tnm2\tx\tx\n"
	r := NewReader(strings.NewReader(input), "title.principals.tsv", 0)
	require.NoError(t, r.SkipHeader())

	fields, err := r.Record()
	require.NoError(t, err)
	assert.Equal(t, "nm1", fields[2])

	fields, err = r.Record()
	require.NoError(t, err)
	assert.Nil(t, fields, "blank line is skipped")

	_, err = r.Record()
	require.Error(t, err)
	assert.True(t, errors.IsMalformedRecord(err))
	assert.Contains(t, err.Error(), "title.principals.tsv line 4")
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestReader_StreamFailure(t *testing.T) {
	failing := io.MultiReader(strings.NewReader("header\n"), iotest.ErrReader(io.ErrUnexpectedEOF))
	r := NewReader(failing, "broken.tsv", 0)

	require.NoError(t, r.SkipHeader())
	_, err := r.Next()
	require.Error(t, err)
	assert.True(t, errors.IsStreamIO(err))
	assert.NotEqual(t, io.EOF, err)
	assert.Contains(t, err.Error(), "broken.tsv")
}

func TestReader_LineTooLong(t *testing.T) {
	long := "header\n" + strings.Repeat("x", 4096) + "\n"
	r := NewReader(bytes.NewBufferString(long), "long.tsv", 128)

	require.NoError(t, r.SkipHeader())
	_, err := r.Next()
	require.Error(t, err)
	assert.True(t, errors.IsStreamIO(err))
}
