// Package payload is the domain layer for received webhook bodies: the
// Payload entity, the Repository port the store implements, and the
// Service the HTTP endpoint and viewer go through.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyBody   = errors.New("payload body is empty")
	ErrInvalidJSON = errors.New("payload body is not valid JSON")
)

// NotFoundError is returned when no payload has the requested ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("payload not found: %s", e.ID)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Payload is one stored JSON body. Body is always valid, compact JSON
// with object keys in the order they were received.
type Payload struct {
	ID         string
	ReceivedAt time.Time
	Path       string
	Body       json.RawMessage
}

// Normalize validates body and returns it compacted.
func Normalize(body []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return json.RawMessage(buf.Bytes()), nil
}

// Pretty returns Body indented by two spaces, keys in stored order.
func (p *Payload) Pretty() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, p.Body, "", "  "); err != nil {
		return string(p.Body)
	}
	return buf.String()
}

// Preview returns the compact single-line body.
func (p *Payload) Preview() string {
	return string(p.Body)
}

// Size is the compact body length in bytes.
func (p *Payload) Size() int {
	return len(p.Body)
}

// Change is published on every store mutation.
type Change struct {
	// Payload is set for created events.
	Payload *Payload
	// ID is set for deleted events.
	ID string
	// Removed counts the payloads dropped by a cleared event.
	Removed int
}
