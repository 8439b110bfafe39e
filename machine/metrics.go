package machine

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the transport's Prometheus collectors.
type Metrics struct {
	LinesWritten  prometheus.Counter
	WriteFailures prometheus.Counter
	AckTimeouts   prometheus.Counter
	Halts         prometheus.Counter
	Remaining     prometheus.Gauge
	Status        prometheus.Gauge
}

// NewMetrics creates the transport collectors and registers them
// with reg, if non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LinesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drawbot_transport_lines_written_total",
			Help: "Command lines written to the controller.",
		}),
		WriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drawbot_transport_write_failures_total",
			Help: "Writes to the controller link that failed.",
		}),
		AckTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drawbot_transport_ack_timeouts_total",
			Help: "Lines that were not acknowledged in time.",
		}),
		Halts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drawbot_transport_halts_total",
			Help: "Halt bytes written to the controller.",
		}),
		Remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "drawbot_transport_remaining_lines",
			Help: "Buffered lines not yet written.",
		}),
		Status: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "drawbot_transport_status",
			Help: "Transport status (0=waiting 1=running 2=paused 3=stopped 4=cancelling).",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.LinesWritten, m.WriteFailures, m.AckTimeouts, m.Halts, m.Remaining, m.Status)
	}
	return m
}
