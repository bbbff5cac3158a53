package tsv

import (
	"bufio"
	"io"
	"strconv"

	"github.com/teranos/castgraph/errors"
)

const writeBufferSize = 256 * 1024

// Writer accepts one fully formed line at a time.
// The first failure is sticky: later writes are no-ops that return it.
type Writer struct {
	w    *bufio.Writer
	name string
	line []byte
	err  error
}

// NewWriter wraps w. name identifies the artifact in errors.
func NewWriter(w io.Writer, name string) *Writer {
	return &Writer{
		w:    bufio.NewWriterSize(w, writeBufferSize),
		name: name,
		line: make([]byte, 0, 256),
	}
}

// Begin starts a new line with its first field
func (w *Writer) Begin(field string) *Writer {
	w.line = append(w.line[:0], field...)
	return w
}

// BeginInt starts a new line with an integer first field
func (w *Writer) BeginInt(v int) *Writer {
	w.line = strconv.AppendInt(w.line[:0], int64(v), 10)
	return w
}

// Field appends a string field to the current line
func (w *Writer) Field(field string) *Writer {
	w.line = append(w.line, Delimiter)
	w.line = append(w.line, field...)
	return w
}

// Int appends an integer field to the current line
func (w *Writer) Int(v int) *Writer {
	w.line = append(w.line, Delimiter)
	w.line = strconv.AppendInt(w.line, int64(v), 10)
	return w
}

// End terminates the current line with a single newline and writes it.
func (w *Writer) End() error {
	if w.err != nil {
		return w.err
	}
	w.line = append(w.line, '\n')
	if _, err := w.w.Write(w.line); err != nil {
		w.err = errors.WrapStreamIO(err, w.name)
	}
	return w.err
}

// WriteLine writes fields joined by tabs as one line
func (w *Writer) WriteLine(fields ...string) error {
	if len(fields) == 0 {
		w.line = w.line[:0]
		return w.End()
	}
	w.Begin(fields[0])
	for _, f := range fields[1:] {
		w.Field(f)
	}
	return w.End()
}

// Flush writes any buffered data to the underlying writer
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		w.err = errors.WrapStreamIO(err, w.name)
	}
	return w.err
}
