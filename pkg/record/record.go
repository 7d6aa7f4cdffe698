// Package record models BDR search result documents.
//
// A Record keeps the verbatim JSON object returned by the search API so that
// unknown fields, and their order, survive the trip to storage. Only the
// identifier field (pid) is interpreted.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Field names interpreted by this package.
const (
	FieldPID     = "pid"
	FieldCreator = "creator"
)

// PIDSeparator separates the namespace from the local id in a pid.
const PIDSeparator = ":"

var (
	// ErrNotObject is returned when a document is not a JSON object.
	ErrNotObject = errors.New("record is not a JSON object")

	// ErrMissingPID is returned when the pid field is absent or not a string.
	ErrMissingPID = errors.New("record has no pid")

	// ErrMalformedPID is returned when the pid is not of the form <namespace>:<local-id>.
	ErrMalformedPID = errors.New("malformed pid")
)

// Record is a single search result document.
type Record struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
	pid    string
	hasPID bool
}

// Parse decodes a JSON object into a Record.
func Parse(data []byte) (Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Record{}, ErrNotObject
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}

	rec := Record{
		raw:    append(json.RawMessage(nil), trimmed...),
		fields: fields,
	}

	if v, ok := fields[FieldPID]; ok {
		// A JSON null decodes to a nil pointer and counts as absent.
		var pid *string
		if err := json.Unmarshal(v, &pid); err == nil && pid != nil {
			rec.pid = *pid
			rec.hasPID = true
		}
	}

	return rec, nil
}

// New builds a Record from a map. Keys are stored in sorted order.
func New(fields map[string]any) (Record, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return Record{}, fmt.Errorf("encode record: %w", err)
	}
	return Parse(data)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := Parse(data)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// MarshalJSON implements json.Marshaler and returns the original bytes.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("{}"), nil
	}
	return r.raw, nil
}

// PID returns the raw identifier, or "" if the record has none.
func (r Record) PID() string {
	return r.pid
}

// LocalID returns the pid with its namespace prefix stripped.
// For "bdr:12345" it returns "12345".
func (r Record) LocalID() (string, error) {
	if !r.hasPID {
		return "", ErrMissingPID
	}

	parts := strings.Split(r.pid, PIDSeparator)
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %q", ErrMalformedPID, r.pid)
	}

	local := parts[1]
	if local == "" || local == "." || local == ".." || strings.ContainsAny(local, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrMalformedPID, r.pid)
	}

	return local, nil
}

// Field returns the raw JSON value of a field.
func (r Record) Field(name string) (json.RawMessage, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Len returns the number of top-level fields.
func (r Record) Len() int {
	return len(r.fields)
}
