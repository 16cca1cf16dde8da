package events

import "github.com/liftcore/liftcore/core/model"

// CallEvent is published when a hall call reaches the dispatcher.
type CallEvent struct {
	PassengerID int
	Floor       int
	Direction   model.Direction
}

// AssignmentEvent is published when a passenger is assigned to an
// elevator. Source is "call", "backlog" or "intercept".
type AssignmentEvent struct {
	Tick        int
	VehicleID   int
	PassengerID int
	Origin      int
	Destination int
	Score       float64
	Source      string
}

// BacklogEvent records a backlog mutation. Action is "push", "purge" or
// "match"; Depth is the backlog size after the mutation.
type BacklogEvent struct {
	PassengerID int
	Action      string
	Depth       int
}

// InterceptEvent is published when an approaching elevator picks up a
// backlog passenger at the approached floor.
type InterceptEvent struct {
	VehicleID   int
	PassengerID int
	Floor       int
	Direction   model.Direction
}

// RepositionEvent is published when an idle elevator is sent to a
// strategic floor.
type RepositionEvent struct {
	VehicleID int
	Floor     int
	Strategy  string
}
