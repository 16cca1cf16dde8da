package dispatch

import "fmt"

// Config holds the tunable dispatch parameters. The defaults reproduce
// the production tuning; SetDefaults fills any zero value.
type Config struct {
	// LoadPenalty scales the occupancy share added to the distance base.
	LoadPenalty float64 `json:"load_penalty"`
	// IdleFactor discounts idle elevators.
	IdleFactor float64 `json:"idle_factor"`
	// OnPathFactor discounts elevators already travelling towards the
	// call in the requested direction.
	OnPathFactor float64 `json:"on_path_factor"`
	// OvershootFactor penalizes same-direction elevators that have
	// already passed the call floor.
	OvershootFactor float64 `json:"overshoot_factor"`
	// OppositeFactor applies to empty elevators moving the other way
	// within OppositeMaxDistance floors.
	OppositeFactor      float64 `json:"opposite_factor"`
	OppositeMaxDistance int     `json:"opposite_max_distance"`
	// WaitWeight converts backlog waiting ticks into a distance credit
	// when matching pending calls.
	WaitWeight float64 `json:"wait_weight"`
	// ShortQueueMax is the stop-queue length up to which a vehicle is
	// offered backlog calls at tick end and on idle/stopped signals.
	ShortQueueMax int `json:"short_queue_max"`
	// Reposition selects the idle strategy: "static" or "demand".
	Reposition string `json:"reposition"`
	// CallHistorySize bounds the call-origin history kept for the
	// demand strategy.
	CallHistorySize int `json:"call_history_size"`
	// DispersalDisabled skips the initial spread of elevators across
	// the building.
	DispersalDisabled bool `json:"dispersal_disabled"`
}

// SetDefaults applies the production tuning to unset fields.
func (c *Config) SetDefaults() {
	if c.LoadPenalty == 0 {
		c.LoadPenalty = 0.3
	}
	if c.IdleFactor == 0 {
		c.IdleFactor = 0.7
	}
	if c.OnPathFactor == 0 {
		c.OnPathFactor = 0.4
	}
	if c.OvershootFactor == 0 {
		c.OvershootFactor = 2.0
	}
	if c.OppositeFactor == 0 {
		c.OppositeFactor = 1.5
	}
	if c.OppositeMaxDistance == 0 {
		c.OppositeMaxDistance = 2
	}
	if c.WaitWeight == 0 {
		c.WaitWeight = 0.5
	}
	if c.ShortQueueMax == 0 {
		c.ShortQueueMax = 2
	}
	if c.Reposition == "" {
		c.Reposition = "static"
	}
	if c.CallHistorySize == 0 {
		c.CallHistorySize = 256
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Reposition != "static" && c.Reposition != "demand" {
		return fmt.Errorf("unknown reposition strategy %s", c.Reposition)
	}
	if c.LoadPenalty < 0 || c.IdleFactor < 0 || c.OnPathFactor < 0 ||
		c.OvershootFactor < 0 || c.OppositeFactor < 0 || c.WaitWeight < 0 {
		return fmt.Errorf("dispatch factors must be non-negative")
	}
	if c.OppositeMaxDistance < 0 || c.ShortQueueMax < 0 || c.CallHistorySize < 0 {
		return fmt.Errorf("dispatch distances and sizes must be non-negative")
	}
	return nil
}
