// Package testutil holds helpers shared by tests across permnorm packages.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/lucas-albers-lz4/permnorm/pkg/log"
	"github.com/stretchr/testify/assert"
)

// withCapture redirects pkg/log into a buffer with the given level and
// format, runs testFunc and restores everything. A panic in testFunc is
// returned as an error.
func withCapture(logLevel log.Level, format string, testFunc func()) (string, error) {
	originalLevel := log.CurrentLevel()
	originalFormat := log.CurrentFormat()

	var logBuf bytes.Buffer
	restoreLog := log.SetOutput(&logBuf)
	defer restoreLog()

	if err := log.SetFormat(format); err != nil {
		return "", err
	}
	defer func() {
		_ = log.SetFormat(originalFormat) //nolint:errcheck // previous value was valid
	}()

	log.SetLevel(logLevel)
	defer log.SetLevel(originalLevel)

	var panicErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = fmt.Errorf("panic during log capture: %v", r)
			}
		}()
		testFunc()
	}()

	return logBuf.String(), panicErr
}

// CaptureLogOutput captures text-format log output produced while testFunc
// runs.
// Example usage:
//
//	output, err := testutil.CaptureLogOutput(log.LevelDebug, func() {
//	    log.Info("This will be captured")
//	})
//	require.NoError(t, err)
//	assert.Contains(t, output, "This will be captured")
func CaptureLogOutput(logLevel log.Level, testFunc func()) (string, error) {
	return withCapture(logLevel, log.FormatText, testFunc)
}

// ContainsLog checks if the log output contains the specified message
func ContainsLog(output, message string) bool {
	return strings.Contains(output, message)
}

// CaptureJSONLogs captures JSON log output produced while testFunc runs and
// parses each line into a map.
func CaptureJSONLogs(logLevel log.Level, testFunc func()) (logOutput string, parsedLogs []map[string]interface{}, err error) {
	logOutput, err = withCapture(logLevel, log.FormatJSON, testFunc)
	if err != nil || strings.TrimSpace(logOutput) == "" {
		return logOutput, nil, err
	}

	for i, line := range strings.Split(strings.TrimSpace(logOutput), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]interface{}
		if unmarshalErr := json.Unmarshal([]byte(line), &entry); unmarshalErr != nil {
			return logOutput, parsedLogs, fmt.Errorf("failed to unmarshal log line %d as JSON: %w\nLine content: %s", i+1, unmarshalErr, line)
		}
		parsedLogs = append(parsedLogs, entry)
	}
	return logOutput, parsedLogs, nil
}

// AssertLogContainsJSON checks that some captured entry contains every
// key-value pair of expectedLog.
func AssertLogContainsJSON(t *testing.T, logs []map[string]interface{}, expectedLog map[string]interface{}) {
	t.Helper()
	for _, logEntry := range logs {
		if containsAll(logEntry, expectedLog) {
			return
		}
	}

	var logBuffer bytes.Buffer
	encoder := json.NewEncoder(&logBuffer)
	encoder.SetIndent("", "  ")
	for _, entry := range logs {
		_ = encoder.Encode(entry) //nolint:errcheck // Ignore error for test helper
	}
	expectedLogJSON, _ := json.MarshalIndent(expectedLog, "", "  ") //nolint:errcheck // Ignore error for test helper

	assert.Fail(t, "Expected log entry not found",
		"Expected log containing:\n%s\n\nActual captured logs:\n%s",
		string(expectedLogJSON), logBuffer.String())
}

// AssertLogDoesNotContainJSON checks that no captured entry contains every
// key-value pair of unexpectedLog.
func AssertLogDoesNotContainJSON(t *testing.T, logs []map[string]interface{}, unexpectedLog map[string]interface{}) {
	t.Helper()
	for _, logEntry := range logs {
		if containsAll(logEntry, unexpectedLog) {
			foundEntryJSON, _ := json.MarshalIndent(logEntry, "", "  ")         //nolint:errcheck // Ignore error for test helper
			unexpectedLogJSON, _ := json.MarshalIndent(unexpectedLog, "", "  ") //nolint:errcheck // Ignore error for test helper
			assert.Fail(t, "Unexpected log entry found",
				"Found log entry:\n%s\n\nUnexpected log containing:\n%s",
				string(foundEntryJSON), string(unexpectedLogJSON))
			return
		}
	}
}

// containsAll checks top-level keys only. JSON numbers decode as float64, so
// int expectations are converted before comparing.
func containsAll(actual, expected map[string]interface{}) bool {
	for key, expectedValue := range expected {
		actualValue, ok := actual[key]
		if !ok {
			return false
		}
		if f, isFloat := actualValue.(float64); isFloat {
			switch ev := expectedValue.(type) {
			case float64:
				if f != ev {
					return false
				}
			case int:
				if f != float64(ev) {
					return false
				}
			default:
				return false
			}
			continue
		}
		if actualValue != expectedValue {
			return false
		}
	}
	return true
}
