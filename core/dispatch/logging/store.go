package logging

import (
	"context"
	"time"
)

// Record captures one assignment decision.
type Record struct {
	ID          string    `json:"id"`
	Tick        int       `json:"tick"`
	Timestamp   time.Time `json:"timestamp"`
	VehicleID   int       `json:"vehicle_id"`
	PassengerID int       `json:"passenger_id"`
	Origin      int       `json:"origin"`
	Destination int       `json:"destination"`
	Direction   string    `json:"direction"`
	Score       float64   `json:"score"`
	WaitedTicks int       `json:"waited_ticks"`
	Source      string    `json:"source"`
	// Queue is the vehicle's stop queue right after the decision.
	Queue []int `json:"queue"`
}

// Query defines filters for retrieving records. A nil VehicleID matches
// every vehicle; a zero id is a valid vehicle.
type Query struct {
	Start     time.Time
	End       time.Time
	VehicleID *int
	Source    string
}

// LogStore persists Records and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
