package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI provides a clean interface for running sloty in tests.
// It manages a temp working directory and an isolated environment.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory. HOME and
// XDG_CONFIG_HOME point into the temp directory so no user config or
// history leaks into the test.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()
	home := filepath.Join(dir, "home")

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{
			"HOME":            home,
			"XDG_CONFIG_HOME": filepath.Join(home, ".config"),
		},
	}
}

// Run executes sloty with the given script on stdin and returns stdout,
// stderr, and exit code. Args should not include "sloty" or "--cwd" -
// those are added automatically.
func (r *CLI) Run(script string, args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"sloty", "--cwd", r.Dir}, args...)
	code := Run(strings.NewReader(script), &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the script and fails the test on a non-zero exit code.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(script string, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(script, args...)
	if code != 0 {
		r.t.Fatalf("script %q %v failed with exit code %d\nstderr: %s", script, args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the script and fails the test if it succeeds.
// Returns trimmed stderr.
func (r *CLI) MustFail(script string, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(script, args...)
	if code == 0 {
		r.t.Fatalf("script %q %v should have failed but succeeded\nstdout: %s", script, args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// WriteFile writes content to a file relative to the working directory,
// creating parent directories.
func (r *CLI) WriteFile(rel, content string) string {
	r.t.Helper()

	path := filepath.Join(r.Dir, rel)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		r.t.Fatalf("failed to create dir for %s: %v", rel, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		r.t.Fatalf("failed to write %s: %v", rel, err)
	}

	return path
}

// Lines splits trimmed output into lines.
func Lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
