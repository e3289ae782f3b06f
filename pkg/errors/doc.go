// Package errors provides the error taxonomy and exit codes for cargo-stabilize.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - PartialSuccessError: Some registry queries succeeded, some failed
//   - IOError, ParseError, ShapeError: The manifest could not be read, parsed or used
//   - ClientError, NotFoundError, BadResponseError: A registry query failed
//   - ValidationError: Configuration or preflight validation failures
//
// Error Display:
//
// The package provides consistent error formatting with actionable hints:
//
//	errors.PrintErrorWithHints(os.Stderr, errs, verbose)
//
// Error Checking:
//
// Use the Is* functions to check error types:
//
//	if nf, ok := errors.IsNotFoundError(err); ok {
//	    fmt.Println(nf.Name)
//	}
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): The run completed and every query succeeded
//   - ExitIOError (1): The manifest could not be read or written
//   - ExitParseError (2): The manifest is not valid TOML or not a table
//   - ExitPartialFailure (3): The manifest was written but some queries failed
//   - ExitConfigError (4): Configuration or flag validation error
package errors
