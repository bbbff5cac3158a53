// Package tsv reads and writes the tab-separated snapshots castgraph consumes
// and produces.
//
// Splitting is a literal split on the tab character: no quoting, no escaping
// and no trimming of individual fields.
package tsv

import (
	"strings"

	"github.com/teranos/castgraph/errors"
)

// Fields is the exact field count of every record in both input streams
const Fields = 6

// Delimiter separates fields on a line
const Delimiter = '\t'

// ParseRecord splits one line into exactly Fields fields.
//
// Empty or whitespace-only input returns (nil, nil): there is no record and the
// caller skips the line. Any other line whose field count differs from Fields
// returns an error matching errors.ErrMalformedRecord.
func ParseRecord(line string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}

	// N delimiters always yield N+1 fields
	if n := strings.Count(line, string(Delimiter)) + 1; n != Fields {
		return nil, errors.Wrapf(errors.ErrMalformedRecord, "expected %d fields, got %d", Fields, n)
	}

	return strings.Split(line, string(Delimiter)), nil
}
