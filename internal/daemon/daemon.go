// Package daemon runs the timer engine behind its Unix socket: it owns
// the listener, the 1-second tick loop, the event sinks and the pidfile,
// and tears all of them down on shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pomokit/pomo/internal/config"
	"github.com/pomokit/pomo/internal/notify"
	"github.com/pomokit/pomo/internal/timer"
	"github.com/pomokit/pomo/pkg/shell"
)

// Options configure one daemon instance.
type Options struct {
	SocketPath string
	PidPath    string
	Config     config.Config

	// NoSound suppresses the sound sink regardless of configuration.
	NoSound bool
	// MetricsPort overrides the configured metrics port when positive.
	MetricsPort int

	Logger *slog.Logger
}

// Daemon wires the engine, server, sinks and lifecycle together.
type Daemon struct {
	opts Options
	log  *slog.Logger
}

// New creates a daemon from options. A nil logger falls back to
// slog.Default.
func New(opts Options) *Daemon {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Daemon{opts: opts, log: log}
}

// Run starts the daemon and blocks until ctx is cancelled or the accept
// loop fails. The socket and pidfile are cleaned up on return. Only one
// daemon may own the state directory at a time.
func (d *Daemon) Run(ctx context.Context) error {
	if pid, running := Running(d.opts.PidPath); running {
		return fmt.Errorf("%w: pid %d", ErrDaemonRunning, pid)
	}

	cfg := d.opts.Config

	var collector *Collector
	if cfg.Metrics.Enabled {
		collector = NewCollector()
	}

	engine := timer.NewEngine(d.buildSink(collector))

	ln, err := Listen(d.opts.SocketPath)
	if err != nil {
		return err
	}

	if err := WritePidfile(d.opts.PidPath); err != nil {
		ln.Close()
		return err
	}
	defer RemovePidfile(d.opts.PidPath)

	server := NewServer(engine, cfg.SessionConfig(), collector, d.log.With("component", "server"))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	var metricsSrv *http.Server
	if collector != nil {
		port := cfg.Metrics.Port
		if d.opts.MetricsPort > 0 {
			port = d.opts.MetricsPort
		}
		metricsSrv = d.serveMetrics(collector, port)
	}

	// time.Ticker drops ticks a stalled receiver missed, so a wakeup
	// after a long sleep advances the countdown once, not N times.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	d.log.Info("daemon started",
		"socket", d.opts.SocketPath,
		"pid", os.Getpid(),
	)

	for {
		select {
		case <-ticker.C:
			engine.Tick()

		case err := <-serveErr:
			d.shutdownMetrics(metricsSrv)
			return err

		case <-ctx.Done():
			d.log.Info("daemon shutting down")
			d.shutdownMetrics(metricsSrv)
			closeErr := server.Close()
			if err := <-serveErr; err != nil {
				return err
			}
			return closeErr
		}
	}
}

// buildSink assembles the event sinks the configuration asks for. The
// log sink always runs; the focus sink gates itself on the per-session
// focus flag.
func (d *Daemon) buildSink(collector *Collector) timer.Sink {
	cfg := d.opts.Config
	runner := shell.NewRunner()

	sinks := []timer.Sink{
		notify.NewLogSink(d.log.With("component", "timer")),
	}
	if cfg.Notifications.Enabled {
		sinks = append(sinks, notify.NewNotificationSink(runner, d.log.With("component", "notify")))
	}
	if cfg.Sound.Enabled && !d.opts.NoSound {
		sinks = append(sinks, notify.NewSoundSink(runner, cfg.Sound.CompletionSound, d.log.With("component", "sound")))
	}
	sinks = append(sinks, notify.NewFocusSink(
		runner,
		cfg.Focus.EnableShortcut,
		cfg.Focus.DisableShortcut,
		d.log.With("component", "focus"),
	))
	if collector != nil {
		sinks = append(sinks, collector)
	}

	return notify.NewFanout(sinks...)
}

// serveMetrics exposes the collector on localhost. A metrics failure is
// logged, never fatal.
func (d *Daemon) serveMetrics(collector *Collector, port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}

	log := d.log.With("component", "metrics")
	go func() {
		log.Info("metrics listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server failed", "error", err)
		}
	}()
	return srv
}

func (d *Daemon) shutdownMetrics(srv *http.Server) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
