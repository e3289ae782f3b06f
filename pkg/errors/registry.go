package errors

import (
	"errors"
	"fmt"
)

// ClientError indicates the registry could not be queried at all: the search
// command failed to start or exited with an error, or the HTTP request failed.
//
// Fields:
//   - Name: The crate that was being queried
//   - Reason: Short description, e.g. "error running search"
//   - Err: Underlying execution or transport error
type ClientError struct {
	Name   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "error running search"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", reason, e.Err)
	}
	return reason
}

// Unwrap returns the underlying execution or transport error.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// IsClientError checks if err is a ClientError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ClientError: The ClientError if err is one, nil otherwise
//   - bool: true if err is a ClientError
func IsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// NotFoundError indicates the registry has no crate with the queried name.
//
// Fields:
//   - Registry: Registry identifier, e.g. "crates-io"
//   - Name: The crate that was queried
type NotFoundError struct {
	Registry string
	Name     string
}

// Error implements the error interface.
//
// Returns:
//   - string: Message in the form `crates-io has no crate named "foo"`
func (e *NotFoundError) Error() string {
	registry := e.Registry
	if registry == "" {
		registry = "registry"
	}
	return fmt.Sprintf("%s has no crate named %q", registry, e.Name)
}

// IsNotFoundError checks if err is a NotFoundError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *NotFoundError: The NotFoundError if err is one, nil otherwise
//   - bool: true if err is a NotFoundError
func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// BadResponseError indicates the registry answered but the answer could not
// be interpreted as a version.
//
// Fields:
//   - Name: The crate that was queried
//   - Reason: Short description, e.g. "search returned invalid data"
//   - Err: Optional underlying decode or validation error
type BadResponseError struct {
	Name   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *BadResponseError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "search returned invalid data"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", reason, e.Err)
	}
	return reason
}

// Unwrap returns the underlying decode or validation error.
func (e *BadResponseError) Unwrap() error {
	return e.Err
}

// IsBadResponseError checks if err is a BadResponseError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *BadResponseError: The BadResponseError if err is one, nil otherwise
//   - bool: true if err is a BadResponseError
func IsBadResponseError(err error) (*BadResponseError, bool) {
	var br *BadResponseError
	if errors.As(err, &br) {
		return br, true
	}
	return nil, false
}
