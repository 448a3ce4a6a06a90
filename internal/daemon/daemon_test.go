package daemon

import (
	"bufio"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pomokit/pomo/internal/config"
	"github.com/pomokit/pomo/internal/protocol"
	"github.com/pomokit/pomo/internal/timer"
)

func TestListen_RemovesStaleSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "stale.sock")
	if err := os.WriteFile(sock, []byte("stale"), 0o600); err != nil {
		t.Fatalf("seed stale file: %v", err)
	}

	ln, err := Listen(sock)
	if err != nil {
		t.Fatalf("Listen() error = %v, want stale socket removed", err)
	}
	ln.Close()
}

func TestListen_RefusesLiveSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "live.sock")

	ln, err := Listen(sock)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	_, err = Listen(sock)
	if !errors.Is(err, ErrDaemonRunning) {
		t.Errorf("Listen() on live socket error = %v, want ErrDaemonRunning", err)
	}
}

func TestPidfile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomo.pid")

	if err := WritePidfile(path); err != nil {
		t.Fatalf("WritePidfile() error = %v", err)
	}
	if got := ReadPidfile(path); got != os.Getpid() {
		t.Errorf("ReadPidfile() = %d, want %d", got, os.Getpid())
	}

	pid, running := Running(path)
	if !running || pid != os.Getpid() {
		t.Errorf("Running() = (%d, %v), want (%d, true)", pid, running, os.Getpid())
	}

	RemovePidfile(path)
	if got := ReadPidfile(path); got != 0 {
		t.Errorf("ReadPidfile() after remove = %d, want 0", got)
	}
}

func TestPidfile_Garbage(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"text", "not a pid"},
		{"negative", "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pomo.pid")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("seed pidfile: %v", err)
			}
			if got := ReadPidfile(path); got != 0 {
				t.Errorf("ReadPidfile() = %d, want 0", got)
			}
			if _, running := Running(path); running {
				t.Error("Running() = true, want false")
			}
		})
	}
}

func TestRunning_DeadProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomo.pid")
	// A pid far beyond any real process table.
	if err := os.WriteFile(path, []byte("999999999"), 0o644); err != nil {
		t.Fatalf("seed pidfile: %v", err)
	}

	if _, running := Running(path); running {
		t.Error("Running() = true for a dead pid, want false")
	}
}

func TestCollector_MirrorsEngineState(t *testing.T) {
	c := NewCollector()
	engine := timer.NewEngine(c)

	cfg := timer.Config{WorkMinutes: 1, BreakMinutes: 1, LongBreakMinutes: 1}
	if _, err := engine.Start(cfg, "metrics"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if got := testutil.ToFloat64(c.phase); got != float64(timer.Working) {
		t.Errorf("phase gauge = %v, want %v", got, float64(timer.Working))
	}
	if got := testutil.ToFloat64(c.remaining); got != 60 {
		t.Errorf("remaining gauge = %v, want 60", got)
	}

	engine.Tick()
	if got := testutil.ToFloat64(c.ticks); got != 1 {
		t.Errorf("ticks counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.remaining); got != 59 {
		t.Errorf("remaining gauge = %v, want 59", got)
	}

	for i := 0; i < 59; i++ {
		engine.Tick()
	}
	if got := testutil.ToFloat64(c.pomodoros); got != 1 {
		t.Errorf("pomodoros counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.phase); got != float64(timer.Breaking) {
		t.Errorf("phase gauge = %v, want %v", got, float64(timer.Breaking))
	}
}

func TestCollector_BreakEndWithoutAutoCycleReadsStopped(t *testing.T) {
	c := NewCollector()
	engine := timer.NewEngine(c)

	cfg := timer.Config{WorkMinutes: 1, BreakMinutes: 1, LongBreakMinutes: 1}
	if _, err := engine.Start(cfg, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i := 0; i < 120; i++ {
		engine.Tick()
	}

	if got := testutil.ToFloat64(c.phase); got != float64(timer.Stopped) {
		t.Errorf("phase gauge = %v, want %v", got, float64(timer.Stopped))
	}
	if got := testutil.ToFloat64(c.remaining); got != 0 {
		t.Errorf("remaining gauge = %v, want 0", got)
	}
}

func TestCollector_RecordCommand(t *testing.T) {
	c := NewCollector()

	c.RecordCommand("start", true)
	c.RecordCommand("start", true)
	c.RecordCommand("pause", false)

	if got := testutil.ToFloat64(c.commands.WithLabelValues("start", "success")); got != 2 {
		t.Errorf("start/success = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.commands.WithLabelValues("pause", "error")); got != 1 {
		t.Errorf("pause/error = %v, want 1", got)
	}
}

func testDaemonConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Notifications.Enabled = false
	cfg.Sound.Enabled = false
	return *cfg
}

func waitForSocket(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.Dial("unix", path)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("socket %s never came up", path)
}

func TestDaemon_RunAndShutdown(t *testing.T) {
	dir := t.TempDir()
	sock := filepath.Join(dir, "pomo.sock")
	pidPath := filepath.Join(dir, "pomo.pid")

	d := New(Options{
		SocketPath: sock,
		PidPath:    pidPath,
		Config:     testDaemonConfig(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	waitForSocket(t, sock)

	if pid, running := Running(pidPath); !running || pid != os.Getpid() {
		t.Errorf("Running() = (%d, %v) while daemon up, want (%d, true)", pid, running, os.Getpid())
	}

	conn, err := net.Dial("unix", sock)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if _, err := conn.Write([]byte(`{"command":"status","params":{}}` + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	conn.Close()
	resp, err := protocol.DecodeResponse(line)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success() || resp.Data.State != timer.Stopped {
		t.Errorf("status round trip = %q/%v, want success/stopped", resp.Status, resp.Data.State)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil on clean shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not shut down")
	}

	if _, err := os.Stat(pidPath); !os.IsNotExist(err) {
		t.Errorf("pidfile still present after shutdown")
	}
}

func TestDaemon_RefusesSecondInstance(t *testing.T) {
	dir := t.TempDir()
	sock := filepath.Join(dir, "pomo.sock")
	pidPath := filepath.Join(dir, "pomo.pid")

	first := New(Options{
		SocketPath: sock,
		PidPath:    pidPath,
		Config:     testDaemonConfig(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- first.Run(ctx) }()
	waitForSocket(t, sock)

	second := New(Options{
		SocketPath: sock,
		PidPath:    pidPath,
		Config:     testDaemonConfig(),
	})
	if err := second.Run(ctx); !errors.Is(err, ErrDaemonRunning) {
		t.Errorf("second Run() error = %v, want ErrDaemonRunning", err)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("first daemon did not shut down")
	}
}
