package urlparts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s, sep string
		side   Side
		want   string
		wantOK bool
	}{
		{"before found", "a/b", "/", Before, "a", true},
		{"after found", "a/b", "/", After, "b", true},
		{"before missing separator", "ab", "/", Before, "ab", true},
		{"after missing separator", "ab", "/", After, "", false},
		{"first occurrence only", "a/b/c", "/", After, "b/c", true},
		{"empty before", "/b", "/", Before, "", false},
		{"empty after", "a/", "/", After, "", false},
		{"empty input before", "", "/", Before, "", false},
		{"empty input after", "", "/", After, "", false},
		{"multi-byte separator", "http://x", "://", Before, "http", true},
		{"unknown side", "a/b", "/", Side(7), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Truncate(tt.s, tt.sep, tt.side)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
