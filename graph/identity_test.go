package graph

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		prefix string
		want   int
		wantOK bool
	}{
		{"person code", "nm0000001", PersonPrefix, 1, true},
		{"title code", "tt0111161", GroupPrefix, 111161, true},
		{"no leading zeros", "nm42", PersonPrefix, 42, true},
		{"zero", "nm0", PersonPrefix, 0, true},
		{"any prefix when empty", "xx123", "", 123, true},
		{"empty", "", PersonPrefix, 0, false},
		{"prefix only", "nm", PersonPrefix, 0, false},
		{"single char", "n", PersonPrefix, 0, false},
		{"wrong prefix", "xx123", PersonPrefix, 0, false},
		{"title code as person", "tt0000001", PersonPrefix, 0, false},
		{"plus sign", "nm+5", PersonPrefix, 0, false},
		{"minus sign", "nm-5", PersonPrefix, 0, false},
		{"separator", "nm1_000", PersonPrefix, 0, false},
		{"trailing space", "nm12 ", PersonPrefix, 0, false},
		{"unknown marker", `\N`, PersonPrefix, 0, false},
		{"overflow", "nm99999999999999999999", PersonPrefix, 0, false},
		{"above 31 bits", "nm2147483648", PersonPrefix, 0, false},
		{"max 31 bits", "nm2147483647", PersonPrefix, 2147483647, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseIdentity(tt.code, tt.prefix)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseIdentity_DigitsRoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, 7, 10, 99, 1234567, 9999999, 123456789} {
		for _, width := range []int{0, 7, 9} {
			digits := strconv.Itoa(v)
			for len(digits) < width {
				digits = "0" + digits
			}
			got, ok := PersonIdentity(PersonPrefix + digits)
			if !ok || got != v {
				t.Errorf("PersonIdentity(%q) = %d, %v; want %d, true", PersonPrefix+digits, got, ok, v)
			}
		}
	}
}
