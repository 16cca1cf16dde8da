package model

// Direction is the last observed travel direction of an elevator, or the
// requested direction of a hall call. It is owned by the engine; the
// dispatch core only reads it.
type Direction int

const (
	DirectionStopped Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "stopped"
	}
}

// TravelDirection returns the direction a passenger intends to travel.
func TravelDirection(origin, destination int) Direction {
	switch {
	case destination > origin:
		return DirectionUp
	case destination < origin:
		return DirectionDown
	default:
		return DirectionStopped
	}
}

// Vehicle is the read-only view of an elevator exposed by the engine.
// Floor, position, direction, target and occupancy are engine-owned
// state; the dispatch core never mutates them directly.
type Vehicle interface {
	ID() int
	// CurrentFloor is the discrete floor, Position the continuous one.
	CurrentFloor() int
	Position() float64
	Direction() Direction
	// TargetFloor reports the floor the elevator is travelling to, if any.
	TargetFloor() (int, bool)
	// Occupants returns the ids of passengers currently aboard.
	Occupants() []int
	Capacity() int
}

// Floor is the read-only view of a floor.
type Floor interface {
	Index() int
	// UpWaiting and DownWaiting report passengers waiting at the floor,
	// as observed by the engine.
	UpWaiting() []int
	DownWaiting() []int
}

// Passenger is the read-only view of a passenger. The core holds only
// passenger ids; a view obtained earlier may stop resolving at any time
// once the engine completes or removes the passenger.
type Passenger interface {
	ID() int
	Origin() int
	Destination() int
}
