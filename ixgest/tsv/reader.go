package tsv

import (
	"bufio"
	"io"

	"github.com/teranos/castgraph/errors"
)

const (
	initialBufferSize   = 64 * 1024
	defaultMaxLineBytes = 1 << 20
)

// Reader yields the lines of a stream in file order.
// End of stream is reported as io.EOF; every other failure matches
// errors.ErrStreamIO and names the stream.
type Reader struct {
	scanner *bufio.Scanner
	name    string
	line    int
}

// NewReader wraps r. name identifies the stream in errors (usually the file
// path). maxLineBytes bounds the longest accepted line.
func NewReader(r io.Reader, name string, maxLineBytes int) *Reader {
	if maxLineBytes <= 0 {
		maxLineBytes = defaultMaxLineBytes
	}
	scanner := bufio.NewScanner(r)
	initial := initialBufferSize
	if maxLineBytes < initial {
		initial = maxLineBytes
	}
	scanner.Buffer(make([]byte, 0, initial), maxLineBytes)

	return &Reader{scanner: scanner, name: name}
}

// Name returns the stream name used in errors
func (r *Reader) Name() string {
	return r.name
}

// Line returns the 1-based number of the last line read
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next line without its terminator (\n or \r\n).
func (r *Reader) Next() (string, error) {
	if r.scanner.Scan() {
		r.line++
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", errors.WrapStreamIO(errors.Wrapf(err, "after line %d", r.line), r.name)
	}
	return "", io.EOF
}

// SkipHeader discards the first line unconditionally. An empty stream is not
// an error; the following Next returns io.EOF.
func (r *Reader) SkipHeader() error {
	if _, err := r.Next(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Record reads the next line and parses it with ParseRecord.
// Blank lines return (nil, nil). A malformed line returns an error naming the
// stream and line number.
func (r *Reader) Record() ([]string, error) {
	line, err := r.Next()
	if err != nil {
		return nil, err
	}

	fields, err := ParseRecord(line)
	if err != nil {
		return nil, errors.WithHintf(
			errors.Wrapf(err, "%s line %d", r.name, r.line),
			"every non-empty line of %s must have exactly %d tab-separated fields", r.name, Fields,
		)
	}
	return fields, nil
}
