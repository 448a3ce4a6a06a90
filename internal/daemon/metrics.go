package daemon

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pomokit/pomo/internal/timer"
)

// Collector exposes daemon counters and timer state as Prometheus
// metrics. It owns its registry so multiple daemons in one process (as
// in tests) never collide on registration. It implements timer.Sink to
// mirror engine state into the gauges.
type Collector struct {
	registry *prometheus.Registry

	commands  *prometheus.CounterVec
	ticks     prometheus.Counter
	pomodoros prometheus.Counter
	phase     prometheus.Gauge
	remaining prometheus.Gauge
}

// NewCollector creates and registers the metric set.
func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.commands = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pomo_commands_total",
		Help: "Commands processed, by command and result status.",
	}, []string{"command", "status"})
	c.ticks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pomo_ticks_total",
		Help: "Seconds counted down in active phases.",
	})
	c.pomodoros = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pomo_pomodoros_completed_total",
		Help: "Completed work phases.",
	})
	c.phase = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pomo_phase",
		Help: "Current phase index (0 stopped, 1 working, 2 breaking, 3 long breaking, 4 paused).",
	})
	c.remaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pomo_remaining_seconds",
		Help: "Seconds remaining in the current phase.",
	})

	c.registry.MustRegister(c.commands, c.ticks, c.pomodoros, c.phase, c.remaining)
	return c
}

// RecordCommand counts one processed command and its outcome.
func (c *Collector) RecordCommand(command string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.commands.WithLabelValues(command, status).Inc()
}

// Handle implements timer.Sink.
func (c *Collector) Handle(ev timer.Event) {
	c.phase.Set(float64(ev.Phase))
	c.remaining.Set(float64(ev.RemainingSeconds))

	switch ev.Kind {
	case timer.EventTick:
		c.ticks.Inc()
	case timer.EventWorkCompleted:
		c.pomodoros.Inc()
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
