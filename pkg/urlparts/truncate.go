package urlparts

import "strings"

// Side selects which piece of a split Truncate returns.
type Side int

const (
	Before Side = iota // piece before the separator, or the whole input if absent
	After              // piece after the separator; absent if the separator is absent
)

// Truncate splits s on the first occurrence of sep and returns the piece
// selected by side. An empty piece is reported as absent ("", false), the
// same as a missing one.
//
// The returned string shares s's backing bytes.
func Truncate(s, sep string, side Side) (string, bool) {
	before, after, found := strings.Cut(s, sep)

	var piece string
	switch side {
	case Before:
		piece = before
	case After:
		if !found {
			return "", false
		}
		piece = after
	default:
		return "", false
	}

	if piece == "" {
		return "", false
	}
	return piece, true
}
