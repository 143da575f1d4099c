package exitcodes

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeError_Error(t *testing.T) {
	testCases := []struct {
		name     string
		code     int
		err      error
		expected string
	}{
		{
			name:     "with simple error message",
			code:     ExitMissingRequiredFlag,
			err:      errors.New("no paths to normalize"),
			expected: "exit code 1: no paths to normalize",
		},
		{
			name:     "with formatted error message",
			code:     ExitIOError,
			err:      fmt.Errorf("failed to read path list %s", "paths.txt"),
			expected: "exit code 21: failed to read path list paths.txt",
		},
		{
			name:     "with nil error",
			code:     ExitSuccess,
			err:      nil,
			expected: "exit code 0: <nil>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exitErr := &ExitCodeError{
				Code: tc.code,
				Err:  tc.err,
			}
			if got := exitErr.Error(); got != tc.expected {
				t.Errorf("Error() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestExitCodeError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	exitErr := &ExitCodeError{
		Code: ExitIOError,
		Err:  originalErr,
	}

	if unwrapped := exitErr.Unwrap(); !errors.Is(unwrapped, originalErr) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, originalErr)
	}

	// Test with nil error
	exitErrWithNil := &ExitCodeError{
		Code: ExitSuccess,
		Err:  nil,
	}
	if unwrapped := exitErrWithNil.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() with nil error = %v, want nil", unwrapped)
	}
}

func TestIsExitCodeError(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantCode   int
		wantIsExit bool
	}{
		{
			name:       "exit code error",
			err:        &ExitCodeError{Code: ExitInputConfigurationError, Err: errors.New("bad log level")},
			wantCode:   ExitInputConfigurationError,
			wantIsExit: true,
		},
		{
			name:       "wrapped exit code error",
			err:        fmt.Errorf("context: %w", &ExitCodeError{Code: ExitIOError, Err: errors.New("io error")}),
			wantCode:   ExitIOError,
			wantIsExit: true,
		},
		{
			name:       "regular error",
			err:        errors.New("regular error"),
			wantCode:   0,
			wantIsExit: false,
		},
		{
			name:       "nil error",
			err:        nil,
			wantCode:   0,
			wantIsExit: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotCode, gotIsExit := IsExitCodeError(tc.err)
			if gotCode != tc.wantCode || gotIsExit != tc.wantIsExit {
				t.Errorf("IsExitCodeError() = (%d, %v), want (%d, %v)",
					gotCode, gotIsExit, tc.wantCode, tc.wantIsExit)
			}
		})
	}
}

func TestCodeFor(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "exit code error", err: &ExitCodeError{Code: ExitIOError, Err: errors.New("read")}, want: ExitIOError},
		{name: "wrapped", err: fmt.Errorf("run: %w", &ExitCodeError{Code: ExitMissingRequiredFlag}), want: ExitMissingRequiredFlag},
		{name: "plain", err: errors.New("boom"), want: ExitGeneralRuntimeError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeFor(tc.err); got != tc.want {
				t.Errorf("CodeFor() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCodeDescriptionsComplete(t *testing.T) {
	for _, code := range []int{ExitSuccess, ExitMissingRequiredFlag, ExitInputConfigurationError, ExitGeneralRuntimeError, ExitIOError, ExitInternalError} {
		if CodeDescriptions[code] == "" {
			t.Errorf("missing description for exit code %d", code)
		}
	}
}
