package errors

import (
	"fmt"
	"io"
)

// PrintErrorWithHints prints errors with actionable hints to the writer.
//
// This is the single implementation for fatal error display. It formats
// errors consistently and looks up hints for each error.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - errs: Slice of errors to display
//   - verbose: If true, lists the individual failures of a PartialSuccessError
//
// Example output:
//
//	Error: <error message>
//	  💡 <actionable hint if available>
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		printSingleError(w, err, verbose)
	}
}

// printSingleError prints a single error with appropriate formatting.
func printSingleError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	if _, ok := IsValidationError(err); ok {
		_, _ = fmt.Fprintf(w, "Validation Error: %s\n", err.Error())
		return
	}

	if pse, ok := IsPartialSuccess(err); ok {
		_, _ = fmt.Fprintf(w, "Partial Success: %s\n", pse.Error())
		if verbose && len(pse.Errors) > 0 {
			_, _ = fmt.Fprintf(w, "  Failed queries:\n")
			for _, e := range pse.Errors {
				_, _ = fmt.Fprintf(w, "    - %s\n", EnhanceErrorWithHint(e))
			}
		}
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}
