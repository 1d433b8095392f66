// Package metrics exposes server counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pixil98/go-tinymud/internal/session"
)

const namespace = "tinymud"

// Metrics holds the server's Prometheus collectors on a private registry.
// Counters are safe to update from the main loop while being scraped.
type Metrics struct {
	registry  *prometheus.Registry
	startTime time.Time

	connections     *prometheus.CounterVec
	sessions        *prometheus.GaugeVec
	commandsTotal   prometheus.Counter
	bytesReadTotal  prometheus.Counter
	bytesWriteTotal prometheus.Counter
	loopIterations  prometheus.Counter
	rooms           prometheus.Gauge
	uptimeSeconds   prometheus.Gauge
}

// New creates and registers the server metrics.
func New() *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
		connections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Incoming connections by outcome.",
		}, []string{"outcome"}),
		sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Live sessions by login state.",
		}, []string{"state"}),
		commandsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_lines_total",
			Help:      "Lines of client input processed.",
		}),
		bytesReadTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_received_total",
			Help:      "Bytes received from clients.",
		}),
		bytesWriteTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_sent_total",
			Help:      "Bytes sent to clients.",
		}),
		loopIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loop_iterations_total",
			Help:      "Main loop iterations.",
		}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Rooms in the loaded world.",
		}),
		uptimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Server uptime in seconds.",
		}),
	}

	m.registry.MustRegister(
		m.connections,
		m.sessions,
		m.commandsTotal,
		m.bytesReadTotal,
		m.bytesWriteTotal,
		m.loopIterations,
		m.rooms,
		m.uptimeSeconds,
	)

	return m
}

func (m *Metrics) ConnectionAccepted() {
	m.connections.WithLabelValues("accepted").Inc()
}

func (m *Metrics) ConnectionRejected() {
	m.connections.WithLabelValues("rejected").Inc()
}

func (m *Metrics) LineProcessed() {
	m.commandsTotal.Inc()
}

func (m *Metrics) BytesRead(n int) {
	m.bytesReadTotal.Add(float64(n))
}

func (m *Metrics) BytesWritten(n int) {
	m.bytesWriteTotal.Add(float64(n))
}

func (m *Metrics) LoopIteration() {
	m.loopIterations.Inc()
}

func (m *Metrics) SetRooms(n int) {
	m.rooms.Set(float64(n))
}

// SetSessions records the number of sessions in each login state.
func (m *Metrics) SetSessions(counts map[session.State]int) {
	for _, st := range session.States {
		m.sessions.WithLabelValues(st.String()).Set(float64(counts[st]))
	}
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics, refreshing uptime first.
func (m *Metrics) Handler() http.Handler {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.uptimeSeconds.Set(time.Since(m.startTime).Seconds())
		h.ServeHTTP(w, r)
	})
}
