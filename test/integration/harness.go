// Package integration provides a test harness for running the permnorm
// binary against a real filesystem.
package integration

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/permnorm/pkg/fileutil"
)

const binaryName = "permnorm"

// TestHarness runs the permnorm binary inside a per-test temp directory.
type TestHarness struct {
	t       *testing.T
	tempDir string
	rootDir string
	env     []string
	logger  *log.Logger
}

// NewTestHarness creates a harness. HOME points into the temp directory so a
// developer's own config file is never picked up.
func NewTestHarness(t *testing.T) *TestHarness {
	t.Helper()

	rootDir, err := getProjectRoot()
	require.NoError(t, err, "Failed to get project root in NewTestHarness")

	tempDir := t.TempDir()
	h := &TestHarness{
		t:       t,
		tempDir: tempDir,
		rootDir: rootDir,
		env:     append(os.Environ(), "HOME="+tempDir),
		logger:  log.New(os.Stdout, fmt.Sprintf("[HARNESS %s] ", t.Name()), log.LstdFlags),
	}
	h.logger.Printf("Initialized harness in temp dir: %s", tempDir)
	return h
}

// Path returns the absolute path of rel inside the temp directory.
func (h *TestHarness) Path(rel string) string {
	return filepath.Join(h.tempDir, rel)
}

// WriteFile creates rel with exactly perm, ignoring the process umask.
func (h *TestHarness) WriteFile(rel, data string, perm os.FileMode) string {
	h.t.Helper()
	p := h.Path(rel)
	require.NoError(h.t, os.WriteFile(p, []byte(data), fileutil.ReadWriteUserPermission))
	require.NoError(h.t, os.Chmod(p, perm))
	return p
}

// Mkdir creates rel with exactly perm, ignoring the process umask.
func (h *TestHarness) Mkdir(rel string, perm os.FileMode) string {
	h.t.Helper()
	p := h.Path(rel)
	require.NoError(h.t, os.Mkdir(p, fileutil.ReadWriteExecuteUserReadExecuteOthers))
	require.NoError(h.t, os.Chmod(p, perm))
	return p
}

// Mode returns the permission and special bits of p without following
// symlinks.
func (h *TestHarness) Mode(p string) os.FileMode {
	h.t.Helper()
	info, err := os.Lstat(p)
	require.NoError(h.t, err)
	return info.Mode() & (os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky)
}

// Execute runs the binary with stdin and args and returns stdout and stderr
// separately.
func (h *TestHarness) Execute(stdin string, args ...string) (stdoutStr, stderrStr string, err error) {
	// #nosec G204 -- the binary and its args are controlled by the test.
	cmd := exec.Command(h.getBinaryPath(), args...)
	cmd.Dir = h.tempDir
	cmd.Env = h.env
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	h.logger.Printf("[HARNESS EXECUTE] Command: %s %s", binaryName, strings.Join(args, " "))
	err = cmd.Run()
	if stdout.Len() > 0 {
		h.logger.Printf("[HARNESS EXECUTE] Stdout:\n%s", stdout.String())
	}
	if stderr.Len() > 0 {
		h.logger.Printf("[HARNESS EXECUTE] Stderr:\n%s", stderr.String())
	}
	if err != nil {
		return stdout.String(), stderr.String(), fmt.Errorf("permnorm command execution failed: %w", err)
	}
	return stdout.String(), stderr.String(), nil
}

// AssertExitCode runs the binary and checks its exit code. It returns stderr.
func (h *TestHarness) AssertExitCode(expected int, args ...string) string {
	h.t.Helper()
	_, stderr, err := h.Execute("", args...)

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		assert.Equal(h.t, expected, exitErr.ExitCode(),
			"Expected exit code %d but got %d\nArgs: %v\nStderr:\n%s", expected, exitErr.ExitCode(), args, stderr)
	case err != nil:
		h.t.Fatalf("Command failed unexpectedly (expected exit code %d): %v\nArgs: %v", expected, err, args)
	case expected != 0:
		h.t.Fatalf("Expected exit code %d but command succeeded.\nArgs: %v\nStderr:\n%s", expected, args, stderr)
	}
	return stderr
}

func (h *TestHarness) getBinaryPath() string {
	return filepath.Join(h.rootDir, "bin", binaryName)
}

// getProjectRoot finds the project root directory by searching upwards for go.mod
func getProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("failed to find project root (go.mod) starting from %s", wd)
		}
		dir = parent
	}
}

// buildBinary compiles cmd/permnorm into <root>/bin. TestMain calls it once.
func buildBinary() error {
	rootDir, err := getProjectRoot()
	if err != nil {
		return fmt.Errorf("failed to find project root: %w", err)
	}

	binDir := filepath.Join(rootDir, "bin")
	if err := os.MkdirAll(binDir, fileutil.ReadWriteExecuteUserReadExecuteOthers); err != nil {
		return fmt.Errorf("failed to create bin directory %s: %w", binDir, err)
	}

	// #nosec G204 -- building the project's own binary.
	cmd := exec.Command("go", "build", "-o", filepath.Join(binDir, binaryName), "./cmd/permnorm")
	cmd.Dir = rootDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("go build failed with exit code %d: %w\nOutput:\n%s", exitErr.ExitCode(), err, string(output))
		}
		return fmt.Errorf("go build failed: %w\nOutput:\n%s", err, string(output))
	}
	return nil
}
