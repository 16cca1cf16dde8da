package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records assignment events in Prometheus metrics.
type PromSink struct {
	events *prometheus.CounterVec
	waited *prometheus.HistogramVec
	depth  prometheus.Gauge
}

// NewPromSink registers assignment metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lift_assignment_events_total",
		Help: "Total number of recorded passenger assignments",
	}, []string{"vehicle_id", "source"})
	waited := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lift_assignment_waited_ticks",
		Help:    "Ticks a passenger waited in the backlog before assignment",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	}, []string{"source"})
	depth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lift_backlog_depth_recorded",
		Help: "Backlog depth as reported by the dispatcher",
	})

	if err := reg.Register(events); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			events = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(waited); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			waited = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(depth); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			depth = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{events: events, waited: waited, depth: depth}, nil
}

// RecordAssignments increments the counters for each assignment.
func (s *PromSink) RecordAssignments(recs []AssignmentRecord) error {
	for _, r := range recs {
		s.events.WithLabelValues(strconv.Itoa(r.VehicleID), r.Source).Inc()
		s.waited.WithLabelValues(r.Source).Observe(float64(r.WaitedTicks))
	}
	return nil
}

// RecordBacklogDepth sets the backlog depth gauge.
func (s *PromSink) RecordBacklogDepth(_, depth int) error {
	s.depth.Set(float64(depth))
	return nil
}
