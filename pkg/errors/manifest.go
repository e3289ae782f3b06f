package errors

import (
	"errors"
	"fmt"
)

// IOError indicates the manifest file could not be read or written.
//
// Fields:
//   - Op: The attempted operation ("read" or "write")
//   - Path: Path of the manifest file
//   - Err: Underlying filesystem error
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
//
// Returns:
//   - string: Message in the form "failed to read Cargo.toml: <cause>"
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError checks if err is an IOError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *IOError: The IOError if err is one, nil otherwise
//   - bool: true if err is an IOError
func IsIOError(err error) (*IOError, bool) {
	var ioe *IOError
	if errors.As(err, &ioe) {
		return ioe, true
	}
	return nil, false
}

// ParseError indicates the manifest content is not valid TOML.
//
// Fields:
//   - Path: Path of the manifest file
//   - Line: 1-based line of the syntax error, 0 when unknown
//   - Column: 1-based column of the syntax error, 0 when unknown
//   - Err: Underlying decoder error
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

// Error implements the error interface.
//
// Returns:
//   - string: Message including the position when known
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s (line %d, column %d): %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError checks if err is a ParseError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ParseError: The ParseError if err is one, nil otherwise
//   - bool: true if err is a ParseError
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// ShapeError indicates a value has the wrong structure, e.g. a manifest
// whose top level is not a table or a dependency section that is an array.
//
// Fields:
//   - Subject: What was malformed ("manifest", "dependencies", ...)
//   - Detail: Optional description of what was found instead
type ShapeError struct {
	Subject string
	Detail  string
}

// Error implements the error interface.
//
// Returns:
//   - string: "Invalid <subject>", followed by the detail when present
func (e *ShapeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("Invalid %s: %s", e.Subject, e.Detail)
	}
	return "Invalid " + e.Subject
}

// IsShapeError checks if err is a ShapeError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ShapeError: The ShapeError if err is one, nil otherwise
//   - bool: true if err is a ShapeError
func IsShapeError(err error) (*ShapeError, bool) {
	var se *ShapeError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsManifestInvalid reports whether err means the manifest as a whole
// cannot be used: a ParseError or a ShapeError about the manifest itself.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if the manifest is unusable
func IsManifestInvalid(err error) bool {
	if _, ok := IsParseError(err); ok {
		return true
	}
	se, ok := IsShapeError(err)
	return ok && se.Subject == "manifest"
}

// MissingSectionError indicates a dependency section is absent from the manifest.
type MissingSectionError struct {
	Section string
}

// Error implements the error interface.
//
// Returns:
//   - string: "No <section>", e.g. "No dependencies"
func (e *MissingSectionError) Error() string {
	return "No " + e.Section
}

// IsMissingSection reports whether err is a MissingSectionError.
func IsMissingSection(err error) bool {
	var me *MissingSectionError
	return errors.As(err, &me)
}
