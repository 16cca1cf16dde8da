package dispatch

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Repositioner picks the floor an idle elevator should park at while no
// work is pending. ordinal is the vehicle's position in the
// initialization ordering, fleet the number of vehicles.
type Repositioner interface {
	Name() string
	StrategicFloor(ordinal, fleet, maxFloor int, origins []float64) int
}

// NewRepositioner builds the strategy named by the configuration.
func NewRepositioner(cfg Config) Repositioner {
	if cfg.Reposition == "demand" {
		return DemandSpread{}
	}
	return StaticSpread{}
}

// StaticSpread parks vehicles evenly across the building: vehicle i of
// N targets round(i*maxFloor/(N-1)), a single vehicle the midpoint.
type StaticSpread struct{}

func (StaticSpread) Name() string { return "static" }

func (StaticSpread) StrategicFloor(ordinal, fleet, maxFloor int, _ []float64) int {
	if fleet <= 1 {
		return maxFloor / 2
	}
	return int(math.Round(float64(ordinal) * float64(maxFloor) / float64(fleet-1)))
}

// DemandSpread parks vehicle i of N at the (i+0.5)/N empirical quantile
// of recently observed call origins, so coverage tracks where calls
// actually come from. With too few observations it falls back to the
// static spread.
type DemandSpread struct {
	// MinSamples is the observation count below which the static
	// spread is used. Zero means 16.
	MinSamples int
}

func (DemandSpread) Name() string { return "demand" }

func (d DemandSpread) StrategicFloor(ordinal, fleet, maxFloor int, origins []float64) int {
	min := d.MinSamples
	if min == 0 {
		min = 16
	}
	if len(origins) < min {
		return StaticSpread{}.StrategicFloor(ordinal, fleet, maxFloor, nil)
	}
	sorted := append([]float64(nil), origins...)
	sort.Float64s(sorted)
	if fleet < 1 {
		fleet = 1
	}
	q := (float64(ordinal) + 0.5) / float64(fleet)
	floor := int(math.Round(stat.Quantile(q, stat.Empirical, sorted, nil)))
	if floor < 0 {
		floor = 0
	}
	if floor > maxFloor {
		floor = maxFloor
	}
	return floor
}

// callHistory is a bounded ring of recent call origin floors feeding the
// demand strategy.
type callHistory struct {
	origins []float64
	next    int
	full    bool
}

func newCallHistory(size int) *callHistory {
	if size <= 0 {
		size = 1
	}
	return &callHistory{origins: make([]float64, size)}
}

func (h *callHistory) Record(origin int) {
	h.origins[h.next] = float64(origin)
	h.next++
	if h.next == len(h.origins) {
		h.next = 0
		h.full = true
	}
}

func (h *callHistory) Samples() []float64 {
	if h.full {
		return append([]float64(nil), h.origins...)
	}
	return append([]float64(nil), h.origins[:h.next]...)
}
