package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestRun_EchoCommand(t *testing.T) {
	result, err := Run("echo", "hello world")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stdout != "hello world" {
		t.Errorf("Run() stdout = %q, want %q", result.Stdout, "hello world")
	}

	if result.ExitCode != 0 {
		t.Errorf("Run() exitCode = %d, want 0", result.ExitCode)
	}

	if result.Duration <= 0 {
		t.Errorf("Run() duration = %v, want > 0", result.Duration)
	}
}

func TestRun_NonExistentCommand(t *testing.T) {
	result, err := Run("this-command-does-not-exist-12345")
	if err == nil {
		t.Error("Run() expected error for non-existent command")
	}

	if result.ExitCode != -1 {
		t.Errorf("Run() exitCode = %d, want -1 for non-existent command", result.ExitCode)
	}
}

func TestRun_CommandWithExitCode(t *testing.T) {
	// 'false' command always exits with code 1
	result, err := Run("false")
	if err != nil {
		t.Fatalf("Run() error = %v, want nil (exit codes are not errors)", err)
	}

	if result.ExitCode != 1 {
		t.Errorf("Run() exitCode = %d, want 1", result.ExitCode)
	}
}

func TestRun_CapturesStderr(t *testing.T) {
	result, err := Run("sh", "-c", "echo error >&2")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stderr != "error" {
		t.Errorf("Run() stderr = %q, want %q", result.Stderr, "error")
	}
}

func TestRun_TrimsWhitespace(t *testing.T) {
	result, err := Run("echo", "  spaced  ")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if strings.TrimSpace(result.Stdout) != "spaced" {
		t.Errorf("Run() stdout should be trimmed, got %q", result.Stdout)
	}
}

func TestRunWithTimeout_Succeeds(t *testing.T) {
	result, err := RunWithTimeout(5*time.Second, "echo", "fast")
	if err != nil {
		t.Fatalf("RunWithTimeout() error = %v", err)
	}

	if result.Stdout != "fast" {
		t.Errorf("RunWithTimeout() stdout = %q, want %q", result.Stdout, "fast")
	}
}

func TestRunWithTimeout_TimesOut(t *testing.T) {
	result, err := RunWithTimeout(100*time.Millisecond, "sleep", "10")

	if err == nil && result != nil && result.ExitCode == 0 {
		t.Error("RunWithTimeout() expected non-zero exit or error for timed out command")
	}
}

func TestCommandExists(t *testing.T) {
	if !CommandExists("echo") {
		t.Error("CommandExists(echo) = false, want true")
	}
	if CommandExists("this-command-definitely-does-not-exist-xyz") {
		t.Error("CommandExists(nonexistent) = true, want false")
	}
}

func TestWhich_Found(t *testing.T) {
	path := Which("echo")
	if path == "" {
		t.Error("Which(echo) = empty, want path")
	}

	if !filepath.IsAbs(path) {
		t.Errorf("Which(echo) = %q, want absolute path", path)
	}
}

func TestWhich_NotFound(t *testing.T) {
	path := Which("this-command-definitely-does-not-exist-xyz")
	if path != "" {
		t.Errorf("Which(nonexistent) = %q, want empty", path)
	}
}

func TestDefaultRunner_Run(t *testing.T) {
	runner := NewRunner()
	ctx := context.Background()

	result, err := runner.Run(ctx, "echo", "test")
	if err != nil {
		t.Fatalf("DefaultRunner.Run() error = %v", err)
	}

	if result.Stdout != "test" {
		t.Errorf("DefaultRunner.Run() stdout = %q, want %q", result.Stdout, "test")
	}
}

func TestDefaultRunner_WithCancelledContext(t *testing.T) {
	runner := NewRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, "sleep", "10")
	if err == nil {
		t.Error("DefaultRunner.Run() with cancelled context should return error")
	}
}

func TestStartDetached(t *testing.T) {
	pid, err := StartDetached("sleep", "0.1")
	if err != nil {
		t.Fatalf("StartDetached() error = %v", err)
	}
	if pid <= 0 {
		t.Errorf("StartDetached() pid = %d, want > 0", pid)
	}
}

func TestStartDetached_OwnSession(t *testing.T) {
	pid, err := StartDetached("sleep", "5")
	if err != nil {
		t.Fatalf("StartDetached() error = %v", err)
	}
	defer func() {
		if p, err := os.FindProcess(pid); err == nil {
			p.Kill()
		}
	}()

	childSid, err := unix.Getsid(pid)
	if err != nil {
		t.Fatalf("Getsid(child) error = %v", err)
	}
	selfSid, err := unix.Getsid(0)
	if err != nil {
		t.Fatalf("Getsid(self) error = %v", err)
	}

	if childSid == selfSid {
		t.Errorf("child session = %d, same as parent; want its own session", childSid)
	}
	if childSid != pid {
		t.Errorf("child session = %d, want %d (session leader)", childSid, pid)
	}
}

func TestStartDetached_NonExistent(t *testing.T) {
	if _, err := StartDetached("this-command-does-not-exist-12345"); err == nil {
		t.Error("StartDetached() expected error for non-existent command")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
	if FileExists(dir) {
		t.Error("FileExists(directory) = true, want false")
	}
}

func TestResult_Fields(t *testing.T) {
	result, err := Run("sh", "-c", "echo out; echo err >&2; exit 42")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stdout != "out" {
		t.Errorf("Result.Stdout = %q, want %q", result.Stdout, "out")
	}

	if result.Stderr != "err" {
		t.Errorf("Result.Stderr = %q, want %q", result.Stderr, "err")
	}

	if result.ExitCode != 42 {
		t.Errorf("Result.ExitCode = %d, want 42", result.ExitCode)
	}
}
