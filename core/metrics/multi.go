package metrics

// MultiSink fans assignment records out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignments forwards the records to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordAssignments(recs []AssignmentRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssignments(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordBacklogDepth forwards the depth when supported by the sink.
func (m *MultiSink) RecordBacklogDepth(tick, depth int) error {
	for _, s := range m.Sinks {
		if br, ok := s.(BacklogDepthRecorder); ok {
			if err := br.RecordBacklogDepth(tick, depth); err != nil {
				return err
			}
		}
	}
	return nil
}
