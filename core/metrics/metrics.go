package metrics

import (
	"time"

	"github.com/liftcore/liftcore/core/model"
)

// AssignmentRecord represents one passenger-to-elevator assignment to be
// recorded for observability purposes.
type AssignmentRecord struct {
	Tick        int
	VehicleID   int
	PassengerID int
	Origin      int
	Destination int
	Direction   model.Direction
	Score       float64
	WaitedTicks int
	// Source is "call" for immediate assignments, "backlog" for calls
	// placed by the backlog sweep, "intercept" for opportunistic pickups.
	Source string
	Time   time.Time
}

// Sink records assignment results for observability purposes.
type Sink interface {
	RecordAssignments(recs []AssignmentRecord) error
}

// BacklogDepthRecorder is implemented by sinks able to record the
// backlog depth over time.
type BacklogDepthRecorder interface {
	RecordBacklogDepth(tick, depth int) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordAssignments([]AssignmentRecord) error { return nil }

// Ensure NopSink implements BacklogDepthRecorder.
func (NopSink) RecordBacklogDepth(int, int) error { return nil }
