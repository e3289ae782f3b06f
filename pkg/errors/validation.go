package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationCategory identifies the source of a validation error.
type ValidationCategory string

const (
	// ValidationCategoryConfig indicates a configuration file or flag validation error.
	ValidationCategoryConfig ValidationCategory = "config"

	// ValidationCategoryPreflight indicates a preflight check failure (missing command).
	ValidationCategoryPreflight ValidationCategory = "preflight"
)

// ValidationError represents a configuration or preflight validation failure.
//
// Fields:
//   - Category: Source of validation ("config", "preflight")
//   - Field: Name of the invalid field or setting
//   - Message: Description of what's wrong
//   - ValidKeys: List of valid options (for enum-like fields)
//   - Command: For preflight errors, the command that failed
//   - Hint: Actionable hint for fixing the error
//
// Example:
//
//	return &ValidationError{
//	    Category:  ValidationCategoryConfig,
//	    Field:     "registry.source",
//	    Message:   "unknown source \"git\"",
//	    ValidKeys: []string{"search", "api"},
//	}
type ValidationError struct {
	Category  ValidationCategory
	Field     string
	Message   string
	ValidKeys []string
	Command   string
	Hint      string
}

// Error implements the error interface.
//
// Formats the error message based on the Category. For preflight errors,
// includes command and resolution. For config errors, includes field and message.
//
// Returns:
//   - string: Formatted error message appropriate for the validation category
func (e *ValidationError) Error() string {
	var sb strings.Builder

	switch e.Category {
	case ValidationCategoryPreflight:
		sb.WriteString(fmt.Sprintf("command not found: %s", e.Command))
		if e.Hint != "" {
			sb.WriteString(fmt.Sprintf("\n  Resolution: %s", e.Hint))
		} else {
			sb.WriteString(fmt.Sprintf("\n  Resolution: Ensure '%s' is installed and available in your PATH.", e.Command))
		}
		return sb.String()
	default:
		if e.Field != "" {
			sb.WriteString(fmt.Sprintf("%s: %s", e.Field, e.Message))
		} else {
			sb.WriteString(e.Message)
		}
		if len(e.ValidKeys) > 0 {
			sb.WriteString(fmt.Sprintf(" (valid: %s)", strings.Join(e.ValidKeys, ", ")))
		}
		return sb.String()
	}
}

// IsValidationError checks if err is a ValidationError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ValidationError: The ValidationError if err is one, nil otherwise
//   - bool: true if err is a ValidationError
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NewConfigValidationError creates a ValidationError for configuration issues.
//
// Parameters:
//   - field: The field name that failed validation
//   - message: Description of the error
//   - validKeys: Optional list of accepted values
//
// Returns:
//   - *ValidationError: New validation error with config category
func NewConfigValidationError(field, message string, validKeys ...string) *ValidationError {
	return &ValidationError{
		Category:  ValidationCategoryConfig,
		Field:     field,
		Message:   message,
		ValidKeys: validKeys,
	}
}

// NewPreflightValidationError creates a ValidationError for a missing command.
//
// Parameters:
//   - command: The command that was not found
//   - hint: Resolution hint for installing the command
//
// Returns:
//   - *ValidationError: New validation error with preflight category
func NewPreflightValidationError(command, hint string) *ValidationError {
	return &ValidationError{
		Category: ValidationCategoryPreflight,
		Command:  command,
		Hint:     hint,
	}
}
