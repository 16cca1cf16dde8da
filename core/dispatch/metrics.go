package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	assignmentsTotal *prometheus.CounterVec
	backlogDepth     prometheus.Gauge
	backlogWaitTicks prometheus.Histogram
	repositionsTotal prometheus.Counter
	movesIssued      prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Gauge, prometheus.Histogram, prometheus.Counter, prometheus.Counter) {
	asn := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lift_assignments_total",
			Help: "Number of passengers assigned to elevators",
		},
		[]string{"source"},
	)
	depth := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lift_backlog_depth",
			Help: "Pending calls currently held in the backlog",
		},
	)
	wait := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lift_backlog_wait_ticks",
			Help:    "Ticks spent in the backlog before assignment",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)
	rep := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lift_repositions_total",
			Help: "Idle elevators sent to a strategic floor",
		},
	)
	moves := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lift_moves_issued_total",
			Help: "Move commands issued to the engine",
		},
	)
	return asn, depth, wait, rep, moves
}

func init() {
	assignmentsTotal, backlogDepth, backlogWaitTicks, repositionsTotal, movesIssued = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(assignmentsTotal, backlogDepth, backlogWaitTicks, repositionsTotal, movesIssued)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	assignmentsTotal, backlogDepth, backlogWaitTicks, repositionsTotal, movesIssued = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
