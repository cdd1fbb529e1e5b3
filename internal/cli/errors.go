package cli

import (
	"errors"
	"fmt"
	"io"

	seederrors "stackit.dev/seedissues/internal/errors"
)

// HandleError prints the diagnostic for err and returns the process exit code
func HandleError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var precondition *seederrors.PreconditionError
	var apiErr *seederrors.APIError
	switch {
	case errors.As(err, &precondition):
		_, _ = fmt.Fprintln(w, precondition.Message)
	case errors.As(err, &apiErr):
		_, _ = fmt.Fprintf(w, "GitHub API request failed: %v\n", apiErr)
	default:
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	}
	return 1
}
