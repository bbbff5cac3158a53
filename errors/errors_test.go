package errors

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WrapStreamIO(nil, "nomi.txt"))
}

func TestWrapStreamIO(t *testing.T) {
	_, openErr := os.Open("/definitely/not/here.tsv")
	require.Error(t, openErr)

	err := WrapStreamIO(openErr, "name.basics.tsv")

	assert.True(t, IsStreamIO(err))
	assert.ErrorIs(t, err, fs.ErrNotExist, "original cause must stay reachable")
	assert.Contains(t, err.Error(), "name.basics.tsv")
	assert.Contains(t, FlattenHints(err), "name.basics.tsv")
}

func TestSentinelClassification(t *testing.T) {
	malformed := Wrapf(ErrMalformedRecord, "line %d has %d fields", 7, 5)
	assert.True(t, IsMalformedRecord(malformed))
	assert.False(t, IsInvalidIdentity(malformed))
	assert.False(t, IsStreamIO(malformed))

	invalid := Wrap(ErrInvalidIdentity, "code \"nmX\"")
	assert.True(t, IsInvalidIdentity(invalid))
	assert.False(t, IsMalformedRecord(nil))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"stream", WrapStreamIO(New("disk full"), "grafo.txt"), ExitStreamIO},
		{"malformed", Wrap(ErrMalformedRecord, "line 2"), ExitInvalidInput},
		{"identity", Wrap(ErrInvalidIdentity, "line 3"), ExitInvalidInput},
		{"birth year", Wrap(ErrInvalidValue, "line 3"), ExitInvalidInput},
		{"verify", Wrap(ErrArtifactMismatch, "line 4"), ExitVerifyFailed},
		{"config", Wrap(ErrInvalidConfig, "build.workers"), ExitUsage},
		{"other", New("boom"), ExitUsage},
		{"cancelled", context.Canceled, ExitInterrupted},
		{"cancelled wrapped", Wrap(context.Canceled, "aggregating neighbors"), ExitInterrupted},
		{"deadline", context.DeadlineExceeded, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func ExampleWrap() {
	baseErr := New("connection failed")
	err := Wrap(baseErr, "failed to open relations source")
	fmt.Println(err)
	// Output: failed to open relations source: connection failed
}
