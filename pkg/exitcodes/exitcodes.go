// Package exitcodes provides centralized exit code definitions for permnorm.
// Exit codes are organized in ranges:
//
//	0:     Success (including batches where individual paths failed)
//	1-9:   Input/Configuration Errors (e.g., no paths, invalid config)
//	20-29: Runtime Errors (e.g., the path list could not be read)
//	30-39: Internal Errors
//
// Per-path normalization failures never produce a non-zero exit code; they
// are logged and the batch continues.
package exitcodes

import (
	"errors"
	"fmt"
)

// Exit code constants organized by category
const (
	// Success (0)
	ExitSuccess = 0

	// Input/Configuration Errors (1-9)
	ExitMissingRequiredFlag     = 1 // No paths given as arguments or via --paths-from
	ExitInputConfigurationError = 2 // Invalid flag value, config file or path list format

	// Runtime Errors (20-29)
	ExitGeneralRuntimeError = 20 // General runtime/system error
	ExitIOError             = 21 // IO operation error

	// Internal Errors (30-39)
	ExitInternalError = 30 // Internal error in command execution
)

// ExitCodeError wraps an error with an exit code for consistent error handling.
type ExitCodeError struct {
	Code int   // Exit code to return
	Err  error // Underlying error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// IsExitCodeError checks if an error is an ExitCodeError and returns its code.
// Returns false and 0 if the error is not an ExitCodeError.
func IsExitCodeError(err error) (int, bool) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// CodeFor returns the exit code for err: ExitSuccess for nil, the carried
// code for an ExitCodeError and ExitGeneralRuntimeError otherwise.
func CodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if code, ok := IsExitCodeError(err); ok {
		return code
	}
	return ExitGeneralRuntimeError
}

// CodeDescriptions maps exit codes to their human-readable descriptions
var CodeDescriptions = map[int]string{
	ExitSuccess:                 "Success",
	ExitMissingRequiredFlag:     "No paths to normalize",
	ExitInputConfigurationError: "General configuration error",
	ExitGeneralRuntimeError:     "General runtime/system error",
	ExitIOError:                 "IO operation error",
	ExitInternalError:           "Internal error in command execution",
}
