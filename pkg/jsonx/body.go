// Package jsonx binds low-trust JSON request bodies.
package jsonx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodyBytes caps how much of a request body ParseStrictJSONBody reads.
const MaxBodyBytes = 1 << 20

var (
	ErrEmptyBody    = errors.New("empty body")
	ErrTrailingJSON = errors.New("trailing data")
	ErrBodyTooLarge = errors.New("body too large")
)

// ParseStrictJSONBody reads and strictly decodes a single JSON value from the
// request body into dst.
//
// Every failure is a client mistake and should map to 400 Bad Request:
//   - empty body (ErrEmptyBody)
//   - body over MaxBodyBytes (ErrBodyTooLarge)
//   - malformed JSON, type mismatches, unknown fields (encoding/json errors)
//   - more than one JSON value (ErrTrailingJSON)
//
// Required fields and semantic rules are the caller's business.
func ParseStrictJSONBody[T any](r *http.Request, dst *T) error {
	if r == nil || r.Body == nil {
		return ErrEmptyBody
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return err
	}
	if len(body) > MaxBodyBytes {
		return ErrBodyTooLarge
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// exactly one value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return ErrTrailingJSON
	}
	return nil
}
