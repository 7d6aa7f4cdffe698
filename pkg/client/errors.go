package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed search request. The set is closed: every
// error returned by Client.Search is a *SearchError of one of these kinds.
type ErrorKind string

const (
	// KindTransport means the request did not complete (network failure,
	// timeout, unreadable body).
	KindTransport ErrorKind = "transport"

	// KindHTTPStatus means the request completed with a status other than 200.
	KindHTTPStatus ErrorKind = "http_status"

	// KindParse means the body was not JSON or lacked response.docs.
	KindParse ErrorKind = "parse"
)

var (
	// ErrMissingResponse is returned when the body has no response object.
	ErrMissingResponse = errors.New("response field missing")

	// ErrMissingDocs is returned when response.docs is absent.
	ErrMissingDocs = errors.New("response.docs field missing")
)

// SearchError represents a failed search request with additional context.
type SearchError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	msg := fmt.Sprintf("BDR %s error", e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *SearchError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a *SearchError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var searchErr *SearchError
	if errors.As(err, &searchErr) {
		return searchErr.Kind, true
	}
	return "", false
}

func transportError(message string, err error) *SearchError {
	return &SearchError{Kind: KindTransport, Message: message, Err: err}
}

func statusError(statusCode int, status string) *SearchError {
	return &SearchError{Kind: KindHTTPStatus, StatusCode: statusCode, Message: status}
}

func parseError(message string, err error) *SearchError {
	return &SearchError{Kind: KindParse, Message: message, Err: err}
}
